package yts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	endpointList        = "list_movies.json"
	endpointDetails     = "movie_details.json"
	endpointSuggestions = "movie_suggestions.json"
)

// Client talks to a catalog through an ordered list of equivalent mirrors.
// The mirror that last answered correctly is tried first on the next call.
type Client struct {
	mirrors        []string
	httpClient     *http.Client
	probeTimeout   time.Duration
	requestTimeout time.Duration
	userAgent      string
	skipProbe      bool
	logger         zerolog.Logger

	mu        sync.Mutex
	preferred int
	knownGood bool
}

// ProbeResult is the outcome of probing one mirror
type ProbeResult struct {
	Mirror  string
	OK      bool
	Latency time.Duration
	Err     error
}

// NewClient creates a catalog client and selects a preferred mirror.
// An unreachable catalog is not an error: the client stays usable and
// KnownGood reports false until a call succeeds.
func NewClient(ctx context.Context, mirrors []string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	cleaned := make([]string, 0, len(mirrors))
	for _, m := range mirrors {
		m = strings.TrimRight(strings.TrimSpace(m), "/")
		if m != "" {
			cleaned = append(cleaned, m)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoMirrors
	}

	c := &Client{
		mirrors:        cleaned,
		httpClient:     &http.Client{},
		probeTimeout:   DefaultProbeTimeout,
		requestTimeout: DefaultRequestTimeout,
		userAgent:      DefaultUserAgent,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.skipProbe {
		return c, nil
	}

	for _, res := range c.probe(ctx, true) {
		if res.OK {
			c.logger.Info().Str("mirror", res.Mirror).Msg("Using catalog mirror")
			return c, nil
		}
	}

	c.logger.Warn().Int("mirrors", len(c.mirrors)).Msg("No catalog mirror reachable")
	return c, nil
}

// Probe checks every mirror and reports the result of each one.
// The first mirror that answers becomes preferred.
func (c *Client) Probe(ctx context.Context) []ProbeResult {
	return c.probe(ctx, false)
}

func (c *Client) probe(ctx context.Context, stopAtFirst bool) []ProbeResult {
	params := url.Values{}
	params.Set("limit", "1")

	results := make([]ProbeResult, 0, len(c.mirrors))
	found := false
	for idx, mirror := range c.mirrors {
		start := time.Now()
		err := c.fetch(ctx, mirror, endpointList, params, c.probeTimeout, true, func(data json.RawMessage) error {
			var list MovieList
			return json.Unmarshal(data, &list)
		})
		res := ProbeResult{Mirror: mirror, OK: err == nil, Latency: time.Since(start), Err: err}
		results = append(results, res)

		if err != nil {
			c.logger.Warn().Err(err).Str("mirror", mirror).Msg("Mirror probe failed")
			continue
		}
		if !found {
			found = true
			c.mu.Lock()
			c.preferred = idx
			c.knownGood = true
			c.mu.Unlock()
		}
		if stopAtFirst {
			break
		}
	}
	return results
}

// Mirrors returns the configured mirrors in priority order
func (c *Client) Mirrors() []string {
	out := make([]string, len(c.mirrors))
	copy(out, c.mirrors)
	return out
}

// Preferred returns the mirror that is tried first
func (c *Client) Preferred() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirrors[c.preferred]
}

// KnownGood reports whether any mirror has answered correctly so far
func (c *Client) KnownGood() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.knownGood
}

// ListMovies fetches one page of the catalog. A page without movies is a
// valid result, not an error.
func (c *Client) ListMovies(ctx context.Context, p ListParams) (*MovieList, error) {
	params := url.Values{}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		params.Set("sort_by", p.SortBy)
	}
	if p.OrderBy != "" {
		params.Set("order_by", p.OrderBy)
	}
	params.Set("minimum_rating", strconv.Itoa(p.MinimumRating))
	if p.Genre != "" && !strings.EqualFold(p.Genre, GenreAll) {
		params.Set("genre", strings.ToLower(p.Genre))
	}
	if p.Query != "" {
		params.Set("query_term", p.Query)
	}

	var list MovieList
	err := c.tryRequest(ctx, endpointList, params, func(data json.RawMessage) error {
		list = MovieList{}
		return json.Unmarshal(data, &list)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	c.logger.Debug().
		Int("page", p.Page).
		Int("count", len(list.Movies)).
		Int("total", list.MovieCount).
		Msg("Retrieved catalog page")

	return &list, nil
}

// MovieDetails fetches a single movie with images and cast
func (c *Client) MovieDetails(ctx context.Context, id int) (*Movie, error) {
	params := url.Values{}
	params.Set("movie_id", strconv.Itoa(id))
	params.Set("with_images", "true")
	params.Set("with_cast", "true")

	var details detailsData
	err := c.tryRequest(ctx, endpointDetails, params, func(data json.RawMessage) error {
		details = detailsData{}
		return json.Unmarshal(data, &details)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	if details.Movie == nil || details.Movie.ID == 0 {
		return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}

	return details.Movie, nil
}

// MovieSuggestions fetches movies related to the given one
func (c *Client) MovieSuggestions(ctx context.Context, id int) ([]Movie, error) {
	params := url.Values{}
	params.Set("movie_id", strconv.Itoa(id))

	var suggestions suggestionsData
	err := c.tryRequest(ctx, endpointSuggestions, params, func(data json.RawMessage) error {
		suggestions = suggestionsData{}
		return json.Unmarshal(data, &suggestions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions for movie %d: %w", id, err)
	}

	return suggestions.Movies, nil
}

// decodeFunc unmarshals the data member of a valid envelope. A decode error
// fails the mirror like any other malformed response.
type decodeFunc func(data json.RawMessage) error

// tryRequest walks the failover order and decodes the data member of the
// first valid envelope. Cancellation of ctx stops the walk.
func (c *Client) tryRequest(ctx context.Context, endpoint string, params url.Values, decode decodeFunc) error {
	c.mu.Lock()
	preferred := c.preferred
	c.mu.Unlock()

	order := make([]int, 0, len(c.mirrors))
	order = append(order, preferred)
	for i := range c.mirrors {
		if i != preferred {
			order = append(order, i)
		}
	}

	var failures []*MirrorError
	for _, idx := range order {
		mirror := c.mirrors[idx]
		err := c.fetch(ctx, mirror, endpoint, params, c.requestTimeout, false, decode)
		if err == nil {
			c.mu.Lock()
			switched := c.preferred != idx
			c.preferred = idx
			c.knownGood = true
			c.mu.Unlock()

			if switched {
				c.logger.Info().Str("mirror", mirror).Str("endpoint", endpoint).Msg("Switched catalog mirror")
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		c.logger.Warn().Err(err).Str("mirror", mirror).Str("endpoint", endpoint).Msg("Mirror request failed")

		var mirrorErr *MirrorError
		if errors.As(err, &mirrorErr) {
			failures = append(failures, mirrorErr)
		} else {
			failures = append(failures, &MirrorError{Mirror: mirror, Endpoint: endpoint, Err: err})
		}
	}

	return &UnavailableError{Endpoint: endpoint, Failures: failures}
}

// fetch performs one GET against one mirror, validates the envelope and
// decodes its data. Probes set requireOK and only accept HTTP 200.
func (c *Client) fetch(ctx context.Context, mirror, endpoint string, params url.Values, timeout time.Duration, requireOK bool, decode decodeFunc) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/%s", mirror, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	fail := func(status int, err error) error {
		return &MirrorError{Mirror: mirror, Endpoint: endpoint, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (requireOK && resp.StatusCode != http.StatusOK) {
		return fail(resp.StatusCode, fmt.Errorf("unexpected status"))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if env.Status != "ok" {
		return fail(resp.StatusCode, fmt.Errorf("%w: status %q: %s", ErrMalformedResponse, env.Status, env.StatusMessage))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fail(resp.StatusCode, fmt.Errorf("%w: missing data", ErrMalformedResponse))
	}

	if decode != nil {
		if err := decode(env.Data); err != nil {
			return fail(resp.StatusCode, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
		}
	}

	return nil
}

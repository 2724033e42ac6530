package overseerr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents an Overseerr API client
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Overseerr client
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: overseerr URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: overseerr API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.TestConnection(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Overseerr: %w", err)
	}

	return client, nil
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/api/v1%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	return body, nil
}

// TestConnection tests the connection to Overseerr
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil)
	return err
}

// GetMovieRequests retrieves all movie requests from Overseerr
func (c *Client) GetMovieRequests(ctx context.Context) ([]MediaRequest, error) {
	var allRequests []MediaRequest

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("take", strconv.Itoa(c.pageSize))
		params.Set("skip", strconv.Itoa((page-1)*c.pageSize))
		params.Set("filter", "all")

		body, err := c.doRequest(ctx, http.MethodGet, "/request", params)
		if err != nil {
			return nil, fmt.Errorf("failed to get requests: %w", err)
		}

		var response RequestsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		for _, req := range response.Results {
			if req.IsMovieRequest() {
				allRequests = append(allRequests, req)
			}
		}

		c.logger.Debug().
			Int("page", page).
			Int("count", len(response.Results)).
			Int("total", len(allRequests)).
			Msg("Retrieved movie requests from Overseerr")

		if !response.HasMorePages() || len(response.Results) == 0 {
			break
		}
	}

	return allRequests, nil
}

// WatchlistCodes returns the IMDb codes of requested movies, skipping declined
// requests and media Overseerr has no IMDb id for.
func (c *Client) WatchlistCodes(ctx context.Context) ([]string, error) {
	requests, err := c.GetMovieRequests(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(requests))
	codes := make([]string, 0, len(requests))
	var missing int

	for i := range requests {
		req := &requests[i]
		if !req.OnWatchlist() {
			continue
		}
		code := strings.TrimSpace(req.Media.ImdbID)
		if code == "" {
			missing++
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if missing > 0 {
		c.logger.Debug().Int("count", missing).Msg("Skipped requests without IMDb id")
	}

	return codes, nil
}

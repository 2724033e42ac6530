package tautulli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPageLength is the number of history rows requested per call
const DefaultPageLength = 1000

var imdbCodeRegex = regexp.MustCompile(`tt\d{5,}`)

// Client wraps the Tautulli API
type Client struct {
	baseURL    string
	apiKey     string
	pageLength int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Tautulli client
func NewClient(baseURL, apiKey string, logger zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("tautulli URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("tautulli API key is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		pageLength: DefaultPageLength,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}

	if err := client.TestConnection(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Tautulli: %w", err)
	}

	return client, nil
}

// TestConnection tests the connection to Tautulli
func (c *Client) TestConnection(ctx context.Context) error {
	var resp struct {
		Response struct {
			Result  string `json:"result"`
			Message string `json:"message"`
		} `json:"response"`
	}
	if err := c.call(ctx, "get_server_info", nil, &resp); err != nil {
		return err
	}
	if resp.Response.Result != "success" {
		if resp.Response.Message != "" {
			return fmt.Errorf("%w: %s", ErrAPIFailure, resp.Response.Message)
		}
		return ErrAPIFailure
	}
	return nil
}

// WatchedCodes returns the IMDb codes of movies with at least one play
// reaching minWatchPercent.
func (c *Client) WatchedCodes(ctx context.Context, minWatchPercent float64) ([]string, error) {
	seen := make(map[string]struct{})
	var codes []string

	for start := 0; ; start += c.pageLength {
		history, err := c.getHistory(ctx, start)
		if err != nil {
			return nil, err
		}
		records := history.Response.Data.Data

		for i := range records {
			record := &records[i]
			if !record.IsWatched(minWatchPercent) {
				continue
			}
			code := record.IMDbCode()
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}

		c.logger.Debug().
			Int("start", start).
			Int("count", len(records)).
			Int("watched", len(codes)).
			Msg("Retrieved history page from Tautulli")

		if len(records) < c.pageLength || start+len(records) >= history.Response.Data.RecordsFiltered {
			break
		}
	}

	return codes, nil
}

// getHistory retrieves one page of movie history
func (c *Client) getHistory(ctx context.Context, start int) (*HistoryResponse, error) {
	params := url.Values{
		"media_type": {"movie"},
		"start":      {strconv.Itoa(start)},
		"length":     {strconv.Itoa(c.pageLength)},
	}

	var history HistoryResponse
	if err := c.call(ctx, "get_history", params, &history); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	if history.Response.Result != "success" {
		return nil, ErrAPIFailure
	}
	return &history, nil
}

// call performs one API command and decodes the JSON body into out
func (c *Client) call(ctx context.Context, cmd string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	params.Set("cmd", cmd)

	requestURL := fmt.Sprintf("%s/api/v2?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

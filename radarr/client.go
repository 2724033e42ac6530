package radarr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/s0up4200/marquee/library"
)

// Client is a read-only view of a Radarr instance
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger
}

// NewClient creates a new Radarr client and verifies the connection
func NewClient(url, apiKey string, logger zerolog.Logger) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("radarr URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("radarr API key is required")
	}

	config := starr.New(apiKey, url, 30*time.Second)
	radarrClient := radarr.New(config)

	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(radarrClient, logger), nil
}

// NewClientWithAPI wraps an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}

// GetAllMovies retrieves all movies from Radarr
func (c *Client) GetAllMovies(ctx context.Context) ([]*radarr.Movie, error) {
	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	c.logger.Debug().Msgf("Retrieved %d movies from Radarr", len(movies))
	return movies, nil
}

// OwnedCodes returns the IMDb codes of every movie Radarr has a file for
func (c *Client) OwnedCodes(ctx context.Context) ([]string, error) {
	movies, err := c.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(movies))
	for _, movie := range movies {
		if !movie.HasFile {
			continue
		}
		code := strings.TrimSpace(movie.ImdbID)
		if code == "" {
			c.logger.Debug().Str("movie", movie.Title).Msg("Skipping movie without IMDb ID")
			continue
		}
		codes = append(codes, code)
	}

	c.logger.Debug().Int("owned", len(codes)).Int("total", len(movies)).Msg("Collected owned movies from Radarr")
	return codes, nil
}

// LibraryEntries returns the downloaded movies as library entries, so they
// also match catalog titles that lack an IMDb code.
func (c *Client) LibraryEntries(ctx context.Context) ([]library.Entry, error) {
	movies, err := c.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]library.Entry, 0, len(movies))
	for _, movie := range movies {
		if !movie.HasFile || movie.Title == "" {
			continue
		}
		entries = append(entries, library.NewEntry(movie.Title, movie.Year, movie.Path))
	}
	return entries, nil
}

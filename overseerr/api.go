package overseerr

import (
	"context"
)

// API defines the interface for Overseerr operations
type API interface {
	// TestConnection verifies the client can connect to Overseerr
	TestConnection(ctx context.Context) error

	// GetMovieRequests retrieves all movie requests
	GetMovieRequests(ctx context.Context) ([]MediaRequest, error)

	// WatchlistCodes returns the IMDb codes of requested movies
	WatchlistCodes(ctx context.Context) ([]string, error)
}

var _ API = (*Client)(nil)

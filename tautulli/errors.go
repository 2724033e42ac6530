package tautulli

import "errors"

// Common errors returned by the Tautulli client.
var (
	// ErrInvalidResponse indicates the API returned an unexpected response format.
	ErrInvalidResponse = errors.New("invalid response from Tautulli API")

	// ErrAPIFailure indicates the API returned a failure status.
	ErrAPIFailure = errors.New("tautulli API returned failure status")
)

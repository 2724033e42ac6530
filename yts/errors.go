package yts

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the catalog client.
var (
	// ErrMirrorUnavailable is returned when every mirror rejected a call.
	ErrMirrorUnavailable = errors.New("all catalog mirrors failed")

	// ErrMalformedResponse indicates a mirror answered with JSON that is not a valid envelope.
	ErrMalformedResponse = errors.New("malformed catalog response")

	// ErrNotFound is returned when the details endpoint has no movie for the id.
	ErrNotFound = errors.New("movie not found")

	// ErrNoMirrors is returned when the client is built without any mirror.
	ErrNoMirrors = errors.New("no catalog mirrors configured")
)

// MirrorError describes why a single mirror rejected a request
type MirrorError struct {
	Mirror     string
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *MirrorError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("mirror %s %s: status %d: %v", e.Mirror, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("mirror %s %s: %v", e.Mirror, e.Endpoint, e.Err)
}

func (e *MirrorError) Unwrap() error {
	return e.Err
}

// UnavailableError is returned when the whole failover order was exhausted
type UnavailableError struct {
	Endpoint string
	Failures []*MirrorError
}

// Error implements the error interface
func (e *UnavailableError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s [%s]", ErrMirrorUnavailable, e.Endpoint, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrMirrorUnavailable) hold
func (e *UnavailableError) Is(target error) bool {
	return target == ErrMirrorUnavailable
}

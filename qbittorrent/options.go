package qbittorrent

import "time"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	category   string
	skipVerify bool
}

func defaultOptions() clientOptions {
	return clientOptions{timeout: 30 * time.Second}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithCategory restricts torrents to a single category.
func WithCategory(category string) Option {
	return func(o *clientOptions) {
		o.category = category
	}
}

// WithInsecureSkipVerify disables certificate verification.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.skipVerify = true
	}
}

package yts

import (
	"net/http"
	"time"
)

// Client defaults
const (
	DefaultProbeTimeout   = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultUserAgent      = "marquee/1.0"
)

// DefaultMirrors are the public mirrors in priority order
var DefaultMirrors = []string{
	"https://yts.lt/api/v2",
	"https://yts.mx/api/v2",
	"https://yts.rs/api/v2",
	"https://yts.torrentbay.to/api/v2",
}

// Option configures a Client.
type Option func(*Client)

// WithProbeTimeout sets the timeout of the startup probe against each mirror.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.probeTimeout = timeout
		}
	}
}

// WithRequestTimeout sets the timeout of a single request against one mirror.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent to every mirror.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithoutProbe skips the startup probe; the first mirror is preferred until a call says otherwise.
func WithoutProbe() Option {
	return func(c *Client) {
		c.skipProbe = true
	}
}

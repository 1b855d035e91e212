package apiclient

import (
	"net/http"
	"time"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultBackoff is the base unit of the linear retry backoff.
	DefaultBackoff = 400 * time.Millisecond
)

// Option configures a Client.
type Option func(*Client)

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// WithBackoff sets the base backoff. Retry n waits n times this duration.
func WithBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithHeader adds a header sent with every request.
// Setting Content-Type here replaces the JSON default.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// RequestOption configures a single request.
type RequestOption func(http.Header)

// WithRequestHeader sets a header on one request only.
func WithRequestHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}

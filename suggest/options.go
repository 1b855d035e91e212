package suggest

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the volumes search endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithCountry sets the country context sent with every search.
func WithCountry(country string) Option {
	return func(c *Client) {
		if country != "" {
			c.country = country
		}
	}
}

// WithMaxResults sets how many volumes are requested per search.
func WithMaxResults(maxResults int) Option {
	return func(c *Client) {
		if maxResults > 0 {
			c.maxResults = maxResults
		}
	}
}

// WithAPIKey attaches a Google API key to searches.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
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

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRateLimit caps outgoing searches per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

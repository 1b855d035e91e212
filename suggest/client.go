package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is the public Google Books volumes search endpoint
	DefaultEndpoint = "https://www.googleapis.com/books/v1/volumes"
	// DefaultCountry is the country context for searches
	DefaultCountry = "US"
	// DefaultMaxResults is the API's per-request maximum
	DefaultMaxResults = 40
	// MinQueryLength is the shortest trimmed query that is searched
	MinQueryLength = 3
)

// Client searches the Google Books API by title
type Client struct {
	endpoint   string
	country    string
	maxResults int
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// searchParams is encoded into the request query string
type searchParams struct {
	Query      string `url:"q"`
	Country    string `url:"country"`
	MaxResults int    `url:"maxResults"`
	Key        string `url:"key,omitempty"`
}

// NewClient creates a new search client
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		country:    DefaultCountry,
		maxResults: DefaultMaxResults,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = cleanhttp.DefaultPooledClient()
	}
	if c.timeout > 0 {
		// the client may be caller-owned, so the timeout goes on a copy
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}

	return c
}

// IsSearchable reports whether a query is long enough to be sent
func IsSearchable(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) >= MinQueryLength
}

// Search returns suggestions for a partial title.
// Short queries return an empty result without a network call.
func (c *Client) Search(ctx context.Context, title string) ([]Suggestion, error) {
	if !IsSearchable(title) {
		return []Suggestion{}, nil
	}

	params, err := query.Values(searchParams{
		Query:      "intitle:" + strings.TrimSpace(title),
		Country:    c.country,
		MaxResults: c.maxResults,
		Key:        c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	requestURL := c.endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("query", title).Msg("Searching Google Books")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(body.Items))
	for _, item := range body.Items {
		suggestions = append(suggestions, item.toSuggestion())
	}

	c.logger.Debug().
		Str("query", title).
		Int("count", len(suggestions)).
		Msg("Retrieved suggestions")

	return suggestions, nil
}

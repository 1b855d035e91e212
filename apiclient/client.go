package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Client performs JSON requests against the catalog backend with retries
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryable  *retryablehttp.Client
	headers    http.Header
	maxRetries int
	backoff    time.Duration
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new backend client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		headers:    make(http.Header),
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
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

	c.retryable = &retryablehttp.Client{
		HTTPClient:   c.httpClient,
		Logger:       leveledLogger{logger: logger},
		RetryWaitMin: c.backoff,
		RetryWaitMax: c.backoff * time.Duration(c.maxRetries+1),
		RetryMax:     c.maxRetries,
		CheckRetry:   checkRetry,
		Backoff:      linearBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return c, nil
}

// BaseURL returns the backend root the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request sends a JSON request and decodes the response into out.
// A nil out or a 204 response yields no value.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	return c.Do(ctx, method, path, body, out)
}

// Do is Request with per-request options
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var rawBody any
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		rawBody = payload
	}

	endpoint := c.baseURL + path
	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, rawBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	for _, opt := range opts {
		opt(req.Header)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("Making backend API request")

	resp, err := c.retryable.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       readBody(resp.Body),
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}

	return nil
}

// checkRetry retries transport failures and transient statuses
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return true, nil
	}
	return IsRetryableStatus(resp.StatusCode), nil
}

// linearBackoff waits base*(n) before retry n, where the first retry is n=1
func linearBackoff(base, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	return base * time.Duration(attemptNum+1)
}

// statusText strips the numeric code from resp.Status
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// readBody reads an error body best-effort
func readBody(r io.Reader) string {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return ""
	}
	return buf.String()
}

package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid api client configuration")
	// ErrDecode indicates a success response whose body was not valid JSON
	ErrDecode = errors.New("failed to decode response body")
)

// retryableStatuses are transient statuses that are safe to retry.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooEarly:            true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// IsRetryableStatus reports whether a response status is retried by the client
func IsRetryableStatus(code int) bool {
	return retryableStatuses[code]
}

// APIError represents a non-2xx response from the backend
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return strings.TrimSpace(fmt.Sprintf("HTTP %d %s %s", e.StatusCode, e.Status, e.Body))
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRetryable checks if the status was transient
func (e *APIError) IsRetryable() bool {
	return IsRetryableStatus(e.StatusCode)
}

// TransportError represents a request that never produced a response
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

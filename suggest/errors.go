package suggest

import "fmt"

// APIError represents a non-2xx response from the search API
type APIError struct {
	StatusCode int
	Status     string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("Google API %d %s", e.StatusCode, e.Status)
}

// IsRateLimited checks if the API rejected the request for quota reasons
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

package library

import "errors"

var (
	// ErrDeclined is returned when the user declines a confirmation
	ErrDeclined = errors.New("cancelled by user")
	// ErrMissingID is returned when an operation needs a saved record
	ErrMissingID = errors.New("record has no id")
)

// ErrBlankName is returned when a name is empty after trimming.
// No request is sent.
var ErrBlankName = errors.New("name is blank")

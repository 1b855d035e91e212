package library

import (
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/suggest"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Formatter renders views for display
type Formatter interface {
	FormatAuthors(authors []catalog.Author) string
	FormatGenres(genres []catalog.Genre) string
	FormatBooks(books []catalog.Book) string
	FormatSuggestions(suggestions []suggest.Suggestion, options FormatOptions) string
	FormatError(err error) string
}

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
}

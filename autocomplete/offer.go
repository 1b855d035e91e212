package autocomplete

import (
	"strings"

	"github.com/s0up4200/librarr/suggest"
)

// UnknownAuthor seeds the create-author offer when no suggestion has an author
const UnknownAuthor = "Unknown"

// NeedsAuthorOffer reports whether the form should offer to create an author:
// a title is present but no author is selected.
func NeedsAuthorOffer(title string, authorID int64) bool {
	return authorID == 0 && strings.TrimSpace(title) != ""
}

// OfferName returns the name proposed for a new author: the first
// comma-separated segment of the first suggestion's author field.
func OfferName(suggestions []suggest.Suggestion) string {
	if len(suggestions) == 0 {
		return UnknownAuthor
	}

	first, _, _ := strings.Cut(suggestions[0].Author, ",")
	if name := strings.TrimSpace(first); name != "" {
		return name
	}
	return UnknownAuthor
}

package autocomplete

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/s0up4200/librarr/catalog"
)

// authorSeparators splits free-text author fields such as "A, B & C and D"
var authorSeparators = regexp.MustCompile(`(?i),|&|\s+and\s+`)

// SplitAuthors breaks an author field into trimmed, non-empty name tokens
func SplitAuthors(field string) []string {
	parts := authorSeparators.Split(field, -1)

	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Normalize decomposes s, strips combining marks, lower-cases and trims it,
// so that "José García" and "jose garcia" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

// MatchAuthor resolves a free-text author field to a known author.
// It returns the first author, in list order, whose normalized name equals
// any normalized token of the field.
func MatchAuthor(field string, authors []catalog.Author) (int64, bool) {
	names := SplitAuthors(field)
	if len(names) == 0 {
		return 0, false
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[Normalize(name)] = struct{}{}
	}

	for _, author := range authors {
		if author.ID == 0 {
			continue
		}
		if _, ok := wanted[Normalize(author.Name)]; ok {
			return author.ID, true
		}
	}

	return 0, false
}

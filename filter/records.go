package filter

import (
	"github.com/s0up4200/librarr/catalog"
)

// BookEnv exposes a book to filter expressions.
// Author and Genre fall back to author#N and genre#N.
func BookEnv(b catalog.Book) map[string]any {
	return map[string]any{
		"ID":       b.ID,
		"Title":    b.GetTitle(),
		"AuthorID": b.AuthorID,
		"Author":   b.GetAuthorName(),
		"GenreID":  b.GenreID,
		"Genre":    b.GetGenreName(),
	}
}

// AuthorEnv exposes an author to filter expressions
func AuthorEnv(a catalog.Author) map[string]any {
	return map[string]any{
		"ID":   a.ID,
		"Name": a.Name,
	}
}

// GenreEnv exposes a genre to filter expressions
func GenreEnv(g catalog.Genre) map[string]any {
	return map[string]any{
		"ID":   g.ID,
		"Name": g.Name,
	}
}

// Apply returns the records matched by f, preserving order
func Apply[T any](f Filter, records []T, env func(T) map[string]any) []T {
	matched := make([]T, 0, len(records))
	for _, record := range records {
		if f.Match(env(record)) {
			matched = append(matched, record)
		}
	}
	return matched
}

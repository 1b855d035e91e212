package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteBook is returned when a book write lacks a title, author or genre
var ErrIncompleteBook = errors.New("fill in title, author, and genre")

// Author represents a catalog author. ID is zero until the backend assigns one.
type Author struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// AuthorWrite is the payload for creating or updating an author
type AuthorWrite struct {
	Name string `json:"name"`
}

// Genre represents a catalog genre
type Genre struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// GenreWrite is the payload for creating or updating a genre
type GenreWrite struct {
	Name string `json:"name"`
}

// Book represents a book as listed by the backend.
// The title and denormalized names may be null.
type Book struct {
	ID         int64   `json:"id"`
	Title      *string `json:"title"`
	AuthorID   int64   `json:"authorId"`
	AuthorName *string `json:"authorName,omitempty"`
	GenreID    int64   `json:"genreId"`
	GenreName  *string `json:"genreName,omitempty"`
}

// GetTitle returns the title or an empty string
func (b *Book) GetTitle() string {
	if b.Title == nil {
		return ""
	}
	return *b.Title
}

// GetAuthorName returns the denormalized author name, falling back to author#<id>
func (b *Book) GetAuthorName() string {
	if b.AuthorName != nil {
		return *b.AuthorName
	}
	return fmt.Sprintf("author#%d", b.AuthorID)
}

// GetGenreName returns the denormalized genre name, falling back to genre#<id>
func (b *Book) GetGenreName() string {
	if b.GenreName != nil {
		return *b.GenreName
	}
	return fmt.Sprintf("genre#%d", b.GenreID)
}

// ToWrite converts a listed book back into its write shape
func (b *Book) ToWrite() BookWrite {
	return BookWrite{
		Title:    b.GetTitle(),
		AuthorID: b.AuthorID,
		GenreID:  b.GenreID,
	}
}

// BookWrite is the payload for creating or updating a book.
// It carries no id and no denormalized names.
type BookWrite struct {
	Title    string `json:"title"`
	AuthorID int64  `json:"authorId"`
	GenreID  int64  `json:"genreId"`
}

// Validate blocks submissions missing a title, author or genre
func (w BookWrite) Validate() error {
	if strings.TrimSpace(w.Title) == "" || w.AuthorID == 0 || w.GenreID == 0 {
		return ErrIncompleteBook
	}
	return nil
}

// Normalized returns the write with a trimmed title
func (w BookWrite) Normalized() BookWrite {
	w.Title = strings.TrimSpace(w.Title)
	return w
}

package library

import (
	"github.com/s0up4200/librarr/catalog"
)

// View is a loaded list or the error that replaced it
type View[T any] struct {
	Items []T
	Err   error
}

// NewView captures the outcome of a load
func NewView[T any](items []T, err error) View[T] {
	if err != nil {
		return View[T]{Err: err}
	}
	return View[T]{Items: items}
}

// Failed reports whether the view is in its error state
func (v View[T]) Failed() bool {
	return v.Err != nil
}

// BookForm is the book entry form state
type BookForm struct {
	// EditingID is zero when the form creates a new book
	EditingID int64
	Title     string
	AuthorID  int64
	GenreID   int64
}

// IsEditing reports whether the form updates an existing book
func (f BookForm) IsEditing() bool {
	return f.EditingID != 0
}

// Write returns the normalized write shape of the form
func (f BookForm) Write() catalog.BookWrite {
	return catalog.BookWrite{
		Title:    f.Title,
		AuthorID: f.AuthorID,
		GenreID:  f.GenreID,
	}.Normalized()
}

// EditForm fills a form from a listed book
func EditForm(book catalog.Book) BookForm {
	return BookForm{
		EditingID: book.ID,
		Title:     book.GetTitle(),
		AuthorID:  book.AuthorID,
		GenreID:   book.GenreID,
	}
}

// BookView holds everything the books screen shows
type BookView struct {
	Books   []catalog.Book
	Authors []catalog.Author
	Genres  []catalog.Genre
}

// NewForm returns an empty form with the genre defaulted to the first genre
func (v *BookView) NewForm() BookForm {
	var form BookForm
	if len(v.Genres) > 0 {
		form.GenreID = v.Genres[0].ID
	}
	return form
}

// FindBook returns the listed book with id
func (v *BookView) FindBook(id int64) (catalog.Book, bool) {
	for _, book := range v.Books {
		if book.ID == id {
			return book, true
		}
	}
	return catalog.Book{}, false
}

// AuthorName returns the name of a loaded author
func (v *BookView) AuthorName(id int64) (string, bool) {
	for _, author := range v.Authors {
		if author.ID == id {
			return author.Name, true
		}
	}
	return "", false
}

// GenreName returns the name of a loaded genre
func (v *BookView) GenreName(id int64) (string, bool) {
	for _, genre := range v.Genres {
		if genre.ID == id {
			return genre.Name, true
		}
	}
	return "", false
}

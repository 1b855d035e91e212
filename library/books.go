package library

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/librarr/autocomplete"
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/suggest"
)

// LoadBooks fetches every book
func (o *Operations) LoadBooks(ctx context.Context) ([]catalog.Book, error) {
	books, err := o.services.Books.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}

// LoadBookView fetches books, authors and genres concurrently.
// Any failure fails the whole view.
func (o *Operations) LoadBookView(ctx context.Context) (*BookView, error) {
	view := &BookView{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		books, err := o.LoadBooks(ctx)
		view.Books = books
		return err
	})
	g.Go(func() error {
		authors, err := o.LoadAuthors(ctx)
		view.Authors = authors
		return err
	})
	g.Go(func() error {
		genres, err := o.LoadGenres(ctx)
		view.Genres = genres
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Debug().
		Int("books", len(view.Books)).
		Int("authors", len(view.Authors)).
		Int("genres", len(view.Genres)).
		Msg("Loaded book view")

	return view, nil
}

// SaveBook creates or updates the book in form and reloads the view.
// Incomplete forms fail with catalog.ErrIncompleteBook before any request.
func (o *Operations) SaveBook(ctx context.Context, form BookForm) (*BookView, error) {
	payload := form.Write()
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	if form.IsEditing() {
		if err := o.services.Books.Update(ctx, form.EditingID, payload); err != nil {
			return nil, err
		}
		o.logger.Info().Int64("id", form.EditingID).Str("title", payload.Title).Msg("Updated book")
	} else {
		created, err := o.services.Books.Create(ctx, payload)
		if err != nil {
			return nil, err
		}
		o.logger.Info().Int64("id", created.ID).Str("title", payload.Title).Msg("Created book")
	}

	return o.LoadBookView(ctx)
}

// DeleteBook deletes a book after confirmation and reloads the view
func (o *Operations) DeleteBook(ctx context.Context, id int64) (*BookView, error) {
	if id == 0 {
		return nil, ErrMissingID
	}

	if o.confirmDelete && !o.confirm("Delete book?") {
		o.logger.Info().Int64("id", id).Msg("Deletion cancelled by user")
		return nil, ErrDeclined
	}

	if err := o.services.Books.Remove(ctx, id); err != nil {
		return nil, err
	}
	o.logger.Info().Int64("id", id).Msg("Deleted book")

	return o.LoadBookView(ctx)
}

// CreateAuthorFromSuggestion offers to create the author named by the first
// suggestion and reloads the view. It returns the created author.
func (o *Operations) CreateAuthorFromSuggestion(ctx context.Context, suggestions []suggest.Suggestion) (*catalog.Author, *BookView, error) {
	name := autocomplete.OfferName(suggestions)

	if !o.confirm(fmt.Sprintf("Create author %q?", name)) {
		return nil, nil, ErrDeclined
	}

	author, err := o.services.Authors.Create(ctx, catalog.AuthorWrite{Name: name})
	if err != nil {
		return nil, nil, err
	}
	o.logger.Info().Int64("id", author.ID).Str("name", name).Msg("Created author from suggestion")

	view, err := o.LoadBookView(ctx)
	if err != nil {
		return nil, nil, err
	}
	return author, view, nil
}

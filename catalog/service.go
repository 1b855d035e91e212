package catalog

import (
	"context"
	"fmt"
	"net/http"
)

// Resource paths on the backend
const (
	AuthorsPath = "/api/Authors"
	GenresPath  = "/api/Genres"
	BooksPath   = "/api/Books"
)

// Requester issues JSON requests. *apiclient.Client satisfies it.
type Requester interface {
	Request(ctx context.Context, method, path string, body, out any) error
}

// Resource is a CRUD façade over one backend resource.
// R is the read shape and W the write shape.
type Resource[R any, W any] struct {
	client Requester
	path   string
}

// NewResource creates a resource service rooted at path
func NewResource[R any, W any](client Requester, path string) *Resource[R, W] {
	return &Resource[R, W]{client: client, path: path}
}

// Path returns the collection path
func (r *Resource[R, W]) Path() string {
	return r.path
}

// GetAll lists every record
func (r *Resource[R, W]) GetAll(ctx context.Context) ([]R, error) {
	var records []R
	if err := r.client.Request(ctx, http.MethodGet, r.path, nil, &records); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.path, err)
	}
	return records, nil
}

// GetByID fetches a single record
func (r *Resource[R, W]) GetByID(ctx context.Context, id int64) (*R, error) {
	var record R
	if err := r.client.Request(ctx, http.MethodGet, r.itemPath(id), nil, &record); err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.itemPath(id), err)
	}
	return &record, nil
}

// Create posts a new record and returns the backend's copy
func (r *Resource[R, W]) Create(ctx context.Context, data W) (*R, error) {
	var record R
	if err := r.client.Request(ctx, http.MethodPost, r.path, data, &record); err != nil {
		return nil, fmt.Errorf("failed to create in %s: %w", r.path, err)
	}
	return &record, nil
}

// Update replaces a record. No response body is expected.
func (r *Resource[R, W]) Update(ctx context.Context, id int64, data W) error {
	if err := r.client.Request(ctx, http.MethodPut, r.itemPath(id), data, nil); err != nil {
		return fmt.Errorf("failed to update %s: %w", r.itemPath(id), err)
	}
	return nil
}

// Remove deletes a record
func (r *Resource[R, W]) Remove(ctx context.Context, id int64) error {
	if err := r.client.Request(ctx, http.MethodDelete, r.itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.itemPath(id), err)
	}
	return nil
}

func (r *Resource[R, W]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// AuthorService manages authors
type AuthorService = Resource[Author, AuthorWrite]

// GenreService manages genres
type GenreService = Resource[Genre, GenreWrite]

// BookService manages books
type BookService = Resource[Book, BookWrite]

// Services bundles the three entity services
type Services struct {
	Authors *AuthorService
	Genres  *GenreService
	Books   *BookService
}

// NewServices creates all entity services over one client
func NewServices(client Requester) *Services {
	return &Services{
		Authors: NewResource[Author, AuthorWrite](client, AuthorsPath),
		Genres:  NewResource[Genre, GenreWrite](client, GenresPath),
		Books:   NewResource[Book, BookWrite](client, BooksPath),
	}
}

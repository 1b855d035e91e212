package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/librarr/catalog"
)

// UnnamedEntity replaces a blank name on rename
const UnnamedEntity = "Unnamed"

// Operations runs the list and form actions of the catalog screens.
// Every mutation is followed by a full reload of the affected list.
type Operations struct {
	services      *catalog.Services
	confirmer     Confirmer
	logger        zerolog.Logger
	confirmDelete bool
	formatter     Formatter

	authors namedResource[catalog.Author, catalog.AuthorWrite]
	genres  namedResource[catalog.Genre, catalog.GenreWrite]
}

// NewOperations creates a new Operations instance
func NewOperations(services *catalog.Services, confirmer Confirmer, logger zerolog.Logger) *Operations {
	return &Operations{
		services:      services,
		confirmer:     confirmer,
		logger:        logger,
		confirmDelete: true,
		formatter:     NewConsoleFormatter(),
		authors: namedResource[catalog.Author, catalog.AuthorWrite]{
			resource: services.Authors,
			kind:     "author",
			write:    func(name string) catalog.AuthorWrite { return catalog.AuthorWrite{Name: name} },
		},
		genres: namedResource[catalog.Genre, catalog.GenreWrite]{
			resource: services.Genres,
			kind:     "genre",
			write:    func(name string) catalog.GenreWrite { return catalog.GenreWrite{Name: name} },
		},
	}
}

// SetConfirmDelete toggles the confirmation prompt before deletes
func (o *Operations) SetConfirmDelete(confirm bool) {
	o.confirmDelete = confirm
}

// SetFormatter replaces the console formatter
func (o *Operations) SetFormatter(formatter Formatter) {
	o.formatter = formatter
}

// Formatter returns the formatter used for display
func (o *Operations) Formatter() Formatter {
	return o.formatter
}

// confirm asks before destructive or creating actions
func (o *Operations) confirm(prompt string) bool {
	if o.confirmer == nil {
		return false
	}
	return o.confirmer.Confirm(prompt)
}

// LoadAuthors fetches every author
func (o *Operations) LoadAuthors(ctx context.Context) ([]catalog.Author, error) {
	return o.authors.load(ctx)
}

// AddAuthor creates an author and reloads the list
func (o *Operations) AddAuthor(ctx context.Context, name string) ([]catalog.Author, error) {
	return o.authors.add(ctx, o, name)
}

// RenameAuthor renames an author and reloads the list
func (o *Operations) RenameAuthor(ctx context.Context, id int64, name string) ([]catalog.Author, error) {
	return o.authors.rename(ctx, o, id, name)
}

// DeleteAuthor deletes an author after confirmation and reloads the list
func (o *Operations) DeleteAuthor(ctx context.Context, id int64) ([]catalog.Author, error) {
	return o.authors.remove(ctx, o, id)
}

// LoadGenres fetches every genre
func (o *Operations) LoadGenres(ctx context.Context) ([]catalog.Genre, error) {
	return o.genres.load(ctx)
}

// AddGenre creates a genre and reloads the list
func (o *Operations) AddGenre(ctx context.Context, name string) ([]catalog.Genre, error) {
	return o.genres.add(ctx, o, name)
}

// RenameGenre renames a genre and reloads the list
func (o *Operations) RenameGenre(ctx context.Context, id int64, name string) ([]catalog.Genre, error) {
	return o.genres.rename(ctx, o, id, name)
}

// DeleteGenre deletes a genre after confirmation and reloads the list
func (o *Operations) DeleteGenre(ctx context.Context, id int64) ([]catalog.Genre, error) {
	return o.genres.remove(ctx, o, id)
}

// namedResource holds the shared behavior of authors and genres
type namedResource[R any, W any] struct {
	resource *catalog.Resource[R, W]
	kind     string
	write    func(name string) W
}

func (n namedResource[R, W]) load(ctx context.Context) ([]R, error) {
	records, err := n.resource.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []R{}
	}
	return records, nil
}

func (n namedResource[R, W]) add(ctx context.Context, o *Operations, name string) ([]R, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	if _, err := n.resource.Create(ctx, n.write(name)); err != nil {
		return nil, err
	}
	o.logger.Info().Str("name", name).Msgf("Created %s", n.kind)

	return n.load(ctx)
}

func (n namedResource[R, W]) rename(ctx context.Context, o *Operations, id int64, name string) ([]R, error) {
	if id == 0 {
		return nil, ErrMissingID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = UnnamedEntity
	}

	if err := n.resource.Update(ctx, id, n.write(name)); err != nil {
		return nil, err
	}
	o.logger.Info().Int64("id", id).Str("name", name).Msgf("Renamed %s", n.kind)

	return n.load(ctx)
}

func (n namedResource[R, W]) remove(ctx context.Context, o *Operations, id int64) ([]R, error) {
	if id == 0 {
		return nil, ErrMissingID
	}

	if o.confirmDelete && !o.confirm(fmt.Sprintf("Delete %s?", n.kind)) {
		o.logger.Info().Int64("id", id).Msg("Deletion cancelled by user")
		return nil, ErrDeclined
	}

	if err := n.resource.Remove(ctx, id); err != nil {
		return nil, err
	}
	o.logger.Info().Int64("id", id).Msgf("Deleted %s", n.kind)

	return n.load(ctx)
}

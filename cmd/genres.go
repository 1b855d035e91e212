package cmd

import (
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/filter"
	"github.com/s0up4200/librarr/library"
)

// genresCmd represents the genres command group
var genresCmd = namedCommands[catalog.Genre]{
	noun:   "genre",
	plural: "genres",
	load:   (*library.Operations).LoadGenres,
	add:    (*library.Operations).AddGenre,
	rename: (*library.Operations).RenameGenre,
	remove: (*library.Operations).DeleteGenre,
	format: library.Formatter.FormatGenres,
	env:    filter.GenreEnv,
}.command()

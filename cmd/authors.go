package cmd

import (
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/filter"
	"github.com/s0up4200/librarr/library"
)

// authorsCmd represents the authors command group
var authorsCmd = namedCommands[catalog.Author]{
	noun:   "author",
	plural: "authors",
	load:   (*library.Operations).LoadAuthors,
	add:    (*library.Operations).AddAuthor,
	rename: (*library.Operations).RenameAuthor,
	remove: (*library.Operations).DeleteAuthor,
	format: library.Formatter.FormatAuthors,
	env:    filter.AuthorEnv,
}.command()

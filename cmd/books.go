package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/librarr/autocomplete"
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/filter"
	"github.com/s0up4200/librarr/library"
	"github.com/s0up4200/librarr/suggest"
)

// bookFlags holds the form values given on the command line
type bookFlags struct {
	title  string
	author string
	genre  string
}

var (
	bookFilterExpr string
	bookPreset     string
	addBookFlags   bookFlags
	editBookFlags  bookFlags
)

// booksCmd represents the books command group
var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List and manage books",
}

var listBooksCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	Args:  cobra.NoArgs,
	RunE:  runListBooks,
}

var addBookCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book",
	Long: `Add a book. Without --title on a terminal, the title is entered
interactively with suggestions from Google Books. When no author is given,
the author of the first suggestion is matched against your authors.`,
	Args: cobra.NoArgs,
	RunE: runAddBook,
}

var editBookCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a book",
	Args:  cobra.ExactArgs(1),
	RunE:  runEditBook,
}

var deleteBookCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a book after confirmation",
	Args:    cobra.ExactArgs(1),
	RunE:    runDeleteBook,
}

func init() {
	addFilterFlags(listBooksCmd, &bookFilterExpr, &bookPreset)

	addBookFlagSet(addBookCmd, &addBookFlags)
	addBookFlagSet(editBookCmd, &editBookFlags)

	booksCmd.AddCommand(listBooksCmd, addBookCmd, editBookCmd, deleteBookCmd)
}

func addBookFlagSet(cmd *cobra.Command, flags *bookFlags) {
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "book title")
	cmd.Flags().StringVarP(&flags.author, "author", "a", "", "author id or name")
	cmd.Flags().StringVarP(&flags.genre, "genre", "g", "", "genre id or name")
}

func runListBooks(cmd *cobra.Command, args []string) error {
	f, err := compileFilter(bookFilterExpr, bookPreset)
	if err != nil {
		return err
	}

	books, err := operations.LoadBooks(commandContext(cmd))
	view := library.NewView(books, err)

	return renderView(view, func(books []catalog.Book) string {
		return operations.Formatter().FormatBooks(filter.Apply(f, books, filter.BookEnv))
	})
}

func runAddBook(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	view, err := operations.LoadBookView(ctx)
	if done, err := handleResult(err); done {
		return err
	}

	form := view.NewForm()
	return editAndSave(ctx, view, form, addBookFlags)
}

func runEditBook(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	view, err := operations.LoadBookView(ctx)
	if done, err := handleResult(err); done {
		return err
	}

	book, ok := view.FindBook(id)
	if !ok {
		return fmt.Errorf("book #%d not found", id)
	}

	return editAndSave(ctx, view, library.EditForm(book), editBookFlags)
}

func runDeleteBook(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	view, err := operations.DeleteBook(commandContext(cmd), id)
	if done, err := handleResult(err); done {
		return err
	}

	fmt.Print(operations.Formatter().FormatBooks(view.Books))
	return nil
}

// editAndSave fills the form from flags or the terminal, resolves the
// author, and saves the book
func editAndSave(ctx context.Context, view *library.BookView, form library.BookForm, flags bookFlags) error {
	var err error

	if flags.author != "" {
		if form.AuthorID, err = resolveAuthor(view.Authors, flags.author); err != nil {
			return err
		}
	}
	if flags.genre != "" {
		if form.GenreID, err = resolveGenre(view.Genres, flags.genre); err != nil {
			return err
		}
	}

	field := autocomplete.NewField(ctx, suggestClient, logger,
		autocomplete.WithDelay(cfg.Suggest.Debounce))
	field.SetText(form.Title)

	switch {
	case flags.title != "":
		form.Title = flags.title
		if flags.author == "" && form.AuthorID == 0 {
			form.AuthorID = matchFirstSuggestion(ctx, field, view.Authors, form)
		}
	case term.interactive:
		if err := promptTitle(ctx, field, view, &form); err != nil {
			return err
		}
	case form.IsEditing():
		// keep the current title
	default:
		return fmt.Errorf("--title is required when not running in a terminal")
	}

	if autocomplete.NeedsAuthorOffer(form.Title, form.AuthorID) {
		fmt.Println("Author not found. Choose one with --author or create a new author.")

		author, reloaded, err := operations.CreateAuthorFromSuggestion(ctx, field.Suggestions())
		switch {
		case errors.Is(err, library.ErrDeclined):
		case err != nil:
			return showError(err)
		default:
			view = reloaded
			form.AuthorID = author.ID
		}
	}

	if form.GenreID == 0 && len(view.Genres) > 0 {
		form.GenreID = view.Genres[0].ID
	}

	view, err = operations.SaveBook(ctx, form)
	if done, err := handleResult(err); done {
		return err
	}

	fmt.Print(operations.Formatter().FormatBooks(view.Books))
	return nil
}

// matchFirstSuggestion searches the title and resolves the first
// suggestion's author, keeping the current author when nothing is found
func matchFirstSuggestion(ctx context.Context, field *autocomplete.Field, authors []catalog.Author, form library.BookForm) int64 {
	field.Input(form.Title)
	if state, err := field.Wait(ctx); err != nil || state != autocomplete.StateResolved {
		return form.AuthorID
	}

	suggestions := field.Suggestions()
	if len(suggestions) == 0 || suggestions[0].Author == "" {
		return form.AuthorID
	}

	id, _ := autocomplete.MatchAuthor(suggestions[0].Author, authors)
	return id
}

// promptTitle runs the interactive title entry: text searches, #N picks a
// suggestion and an empty line accepts the current title
func promptTitle(ctx context.Context, field *autocomplete.Field, view *library.BookView, form *library.BookForm) error {
	fmt.Println("Type a title to search, #N to pick a suggestion, or an empty line to accept.")
	if form.Title != "" {
		fmt.Printf("Current title: %s\n", form.Title)
	}

	for {
		line, err := term.ReadLine("Title")
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			if strings.TrimSpace(field.Text()) == "" {
				continue
			}
			form.Title = field.Text()
			return nil
		}

		suggestions := field.Suggestions()
		if n, ok := parsePick(line); ok {
			if !field.IsOpen() || len(suggestions) == 0 {
				fmt.Println("No suggestions to pick from. Type a title to search.")
				continue
			}
			if n < 1 || n > len(suggestions) {
				fmt.Printf("Pick a suggestion between #1 and #%d.\n", len(suggestions))
				continue
			}

			sel := field.Select(suggestions[n-1], view.Authors)
			form.Title = sel.Title
			if sel.HasAuthor {
				form.AuthorID = sel.AuthorID
			}
			printSelection(view, sel, suggestions[n-1])
			return nil
		}

		field.Input(line)
		state, err := field.Wait(ctx)
		if err != nil {
			return err
		}

		switch state {
		case autocomplete.StateIdle:
			fmt.Printf("Type at least %d characters to search.\n", suggest.MinQueryLength)
		default:
			fmt.Print(operations.Formatter().FormatSuggestions(field.Suggestions(), library.FormatOptions{}))
		}
	}
}

// parsePick reads a "#N" suggestion pick; bare numbers are titles
func parsePick(line string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "#")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, false
	}
	return n, true
}

func printSelection(view *library.BookView, sel autocomplete.Selection, s suggest.Suggestion) {
	fmt.Printf("Selected: %s\n", sel.Title)
	if !sel.HasAuthor {
		return
	}
	if name, ok := view.AuthorName(sel.AuthorID); ok {
		fmt.Printf("Author: %s\n", name)
		return
	}
	fmt.Printf("Author %q is not in your library.\n", s.Author)
}

// resolveAuthor accepts an author id or a name matched like suggestion authors
func resolveAuthor(authors []catalog.Author, value string) (int64, error) {
	if id, err := parseID(value); err == nil {
		for _, author := range authors {
			if author.ID == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("author #%d not found", id)
	}

	if id, ok := autocomplete.MatchAuthor(value, authors); ok {
		return id, nil
	}
	return 0, fmt.Errorf("author %q not found", value)
}

// resolveGenre accepts a genre id or name
func resolveGenre(genres []catalog.Genre, value string) (int64, error) {
	if id, err := parseID(value); err == nil {
		for _, genre := range genres {
			if genre.ID == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("genre #%d not found", id)
	}

	wanted := autocomplete.Normalize(value)
	for _, genre := range genres {
		if autocomplete.Normalize(genre.Name) == wanted {
			return genre.ID, nil
		}
	}
	return 0, fmt.Errorf("genre %q not found", value)
}

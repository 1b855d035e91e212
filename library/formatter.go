package library

import (
	"fmt"
	"strings"

	"github.com/s0up4200/librarr/autocomplete"
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/suggest"
)

// ErrorMessage heads the error state of every view
const ErrorMessage = "Error. Please try again later."

// descriptionWidth caps descriptions shown with details
const descriptionWidth = 160

// ConsoleFormatter provides console output formatting for catalog lists
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatAuthors formats the author list
func (f *ConsoleFormatter) FormatAuthors(authors []catalog.Author) string {
	if len(authors) == 0 {
		return "No authors yet.\n"
	}

	lines := make([]string, len(authors))
	for i, author := range authors {
		lines[i] = fmt.Sprintf("#%d %s", author.ID, author.Name)
	}
	return tree("Author", lines)
}

// FormatGenres formats the genre list
func (f *ConsoleFormatter) FormatGenres(genres []catalog.Genre) string {
	if len(genres) == 0 {
		return "No genres yet.\n"
	}

	lines := make([]string, len(genres))
	for i, genre := range genres {
		lines[i] = fmt.Sprintf("#%d %s", genre.ID, genre.Name)
	}
	return tree("Genre", lines)
}

// FormatBooks formats the book list as "#id, title, author, genre"
func (f *ConsoleFormatter) FormatBooks(books []catalog.Book) string {
	if len(books) == 0 {
		return "No books yet.\n"
	}

	lines := make([]string, len(books))
	for i := range books {
		book := &books[i]
		lines[i] = fmt.Sprintf("#%d, %s, %s, %s", book.ID, book.GetTitle(), book.GetAuthorName(), book.GetGenreName())
	}
	return tree("Book", lines)
}

// FormatSuggestions formats title suggestions, numbered #1 onwards for selection
func (f *ConsoleFormatter) FormatSuggestions(suggestions []suggest.Suggestion, options FormatOptions) string {
	if len(suggestions) == 0 {
		return "No suggestions found.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSuggestion%s (%d):\n\n", plural(len(suggestions)), len(suggestions))

	for i, s := range suggestions {
		isLast := i == len(suggestions)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── #%d %s\n", prefix, i+1, s.Title)
		fmt.Fprintf(&sb, "%s%s\n", indent, suggestionMeta(s))

		if options.ShowDetails {
			if s.Thumbnail != "" {
				fmt.Fprintf(&sb, "%sCover: %s\n", indent, s.Thumbnail)
			}
			if text := suggest.PlainText(s.Description); text != "" {
				fmt.Fprintf(&sb, "%s%s\n", indent, truncate(text, descriptionWidth))
			}
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatError renders the error state that replaces a view
func (f *ConsoleFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s\n  %s\n", ErrorMessage, err)
}

// suggestionMeta renders "author • date • ISBN x"
func suggestionMeta(s suggest.Suggestion) string {
	author := s.Author
	if author == "" {
		author = autocomplete.UnknownAuthor
	}

	parts := []string{author}
	if s.PublishedDate != "" {
		parts = append(parts, s.PublishedDate)
	}
	if s.ISBN != "" {
		parts = append(parts, "ISBN "+s.ISBN)
	} else {
		parts = append(parts, "No ISBN")
	}
	return strings.Join(parts, " • ")
}

func tree(noun string, lines []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s%s (%d):\n\n", noun, plural(len(lines)), len(lines))

	for i, line := range lines {
		prefix := "├"
		if i == len(lines)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %s\n", prefix, line)
	}

	sb.WriteString("\n")
	return sb.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return strings.TrimSpace(string(runes[:width-1])) + "…"
}

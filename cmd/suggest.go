package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/librarr/library"
	"github.com/s0up4200/librarr/suggest"
)

var showSuggestDetails bool

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest <title>",
	Short: "Search Google Books for title suggestions",
	Long: `Search Google Books by title. Unlike the autocomplete in "books add",
errors are reported instead of yielding an empty list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&showSuggestDetails, "details", false, "show covers and descriptions")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	if !suggest.IsSearchable(title) {
		return fmt.Errorf("title must be at least %d characters", suggest.MinQueryLength)
	}

	suggestions, err := suggestClient.Search(commandContext(cmd), title)
	if err != nil {
		return showError(err)
	}

	fmt.Print(operations.Formatter().FormatSuggestions(suggestions, library.FormatOptions{
		ShowDetails: showSuggestDetails,
	}))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the catalog backend",
	Long:  `Test the connection to the catalog backend and display basic statistics.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", apiClient.BaseURL())

	view, err := operations.LoadBookView(commandContext(cmd))
	if err != nil {
		return showError(err)
	}

	fmt.Println("✓ Connection successful!")

	fmt.Printf("\nCatalog Statistics:\n")
	fmt.Printf("- Total authors: %d\n", len(view.Authors))
	fmt.Printf("- Total genres: %d\n", len(view.Genres))
	fmt.Printf("- Total books: %d\n", len(view.Books))

	fmt.Printf("\nSafety:\n")
	fmt.Printf("- Confirm deletes: %s\n", boolToStatus(cfg.Safety.ConfirmDelete))
	fmt.Printf("- Retries: %d (backoff %s)\n", cfg.API.MaxRetries, cfg.API.Backoff)

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

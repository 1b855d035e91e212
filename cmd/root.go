package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/librarr/apiclient"
	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/config"
	"github.com/s0up4200/librarr/library"
	"github.com/s0up4200/librarr/suggest"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	apiClient     *apiclient.Client
	suggestClient *suggest.Client
	operations    *library.Operations
	term          *console

	// Command flags
	assumeYes bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "librarr",
	Short: "Manage a library catalog of authors, genres and books",
	Long: `librarr is a CLI for a library catalog backend. It lists, adds, edits
and deletes authors, genres and books, and completes book titles with
suggestions from Google Books.`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown *shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation prompt")

	// Add subcommands
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// flag errors above this point still print usage
	cmd.SilenceUsage = true

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	apiClient, err = apiclient.NewClient(cfg.API.BaseURL, logger,
		apiclient.WithMaxRetries(cfg.API.MaxRetries),
		apiclient.WithBackoff(cfg.API.Backoff),
		apiclient.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	suggestOpts := []suggest.Option{
		suggest.WithEndpoint(cfg.Suggest.Endpoint),
		suggest.WithCountry(cfg.Suggest.Country),
		suggest.WithMaxResults(cfg.Suggest.MaxResults),
		suggest.WithAPIKey(cfg.Suggest.APIKey),
	}
	if cfg.Suggest.RateLimit > 0 {
		suggestOpts = append(suggestOpts, suggest.WithRateLimit(cfg.Suggest.RateLimit))
	}
	suggestClient = suggest.NewClient(logger, suggestOpts...)

	term = newConsole(os.Stdin, os.Stdout, assumeYes)

	operations = library.NewOperations(catalog.NewServices(apiClient), term, logger)
	operations.SetConfirmDelete(cfg.Safety.ConfirmDelete)

	logger.Debug().
		Str("base_url", apiClient.BaseURL()).
		Int("max_retries", cfg.API.MaxRetries).
		Dur("backoff", cfg.API.Backoff).
		Msg("Clients initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	colorful := cfg.Color && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !colorful,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// shownError marks an error whose view has already been rendered
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// showError renders the error state of a view in place of its content
func showError(err error) error {
	fmt.Print(operations.Formatter().FormatError(err))
	return &shownError{err: err}
}

// renderView prints a loaded view, or its error state in place of the content
func renderView[T any](view library.View[T], render func([]T) string) error {
	if view.Failed() {
		return showError(view.Err)
	}
	fmt.Print(render(view.Items))
	return nil
}

// handleResult maps operation outcomes that are not failures
func handleResult(err error) (done bool, result error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, library.ErrDeclined):
		fmt.Println("Cancelled.")
		return true, nil
	case errors.Is(err, library.ErrBlankName):
		logger.Warn().Msg("Name is blank, nothing to do")
		return true, nil
	case errors.Is(err, catalog.ErrIncompleteBook):
		return true, err
	default:
		return true, showError(err)
	}
}

// commandContext returns the context for a command run
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

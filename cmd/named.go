package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/librarr/filter"
	"github.com/s0up4200/librarr/library"
)

// namedCommands builds the list/add/edit/delete group shared by authors and genres
type namedCommands[R any] struct {
	noun   string
	plural string
	load   func(*library.Operations, context.Context) ([]R, error)
	add    func(*library.Operations, context.Context, string) ([]R, error)
	rename func(*library.Operations, context.Context, int64, string) ([]R, error)
	remove func(*library.Operations, context.Context, int64) ([]R, error)
	format func(library.Formatter, []R) string
	env    func(R) map[string]any
}

func (n namedCommands[R]) command() *cobra.Command {
	group := &cobra.Command{
		Use:   n.plural,
		Short: fmt.Sprintf("List and manage %s", n.plural),
	}

	var filterExpr, preset string
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", n.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := compileFilter(filterExpr, preset)
			if err != nil {
				return err
			}

			records, err := n.load(operations, commandContext(cmd))
			view := library.NewView(records, err)

			return renderView(view, func(records []R) string {
				return n.format(operations.Formatter(), filter.Apply(f, records, n.env))
			})
		},
	}
	addFilterFlags(list, &filterExpr, &preset)

	add := &cobra.Command{
		Use:   "add <name>",
		Short: fmt.Sprintf("Add a %s", n.noun),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := n.add(operations, commandContext(cmd), strings.Join(args, " "))
			if done, err := handleResult(err); done {
				return err
			}

			n.print(records)
			return nil
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id> <name>",
		Short: fmt.Sprintf("Rename a %s; a blank name becomes %q", n.noun, library.UnnamedEntity),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			records, err := n.rename(operations, commandContext(cmd), id, strings.Join(args[1:], " "))
			if done, err := handleResult(err); done {
				return err
			}

			n.print(records)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s after confirmation", n.noun),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			records, err := n.remove(operations, commandContext(cmd), id)
			if done, err := handleResult(err); done {
				return err
			}

			n.print(records)
			return nil
		},
	}

	group.AddCommand(list, add, edit, remove)
	return group
}

func (n namedCommands[R]) print(records []R) {
	fmt.Print(n.format(operations.Formatter(), records))
}

// parseID parses a positive record id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// addFilterFlags registers --filter and --preset on a list command
func addFilterFlags(cmd *cobra.Command, filterExpr, preset *string) {
	cmd.Flags().StringVarP(filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(preset, "preset", "p", "", "use a preset filter from config")
}

// compileFilter determines and compiles the filter expression to use.
// Priority: command line filter > preset > match everything.
func compileFilter(filterExpr, preset string) (filter.CompiledFilter, error) {
	expression := filterExpr
	if expression == "" && preset != "" {
		presetExpr, ok := cfg.Filter.Presets[strings.ToLower(preset)]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		expression = presetExpr
	}

	f, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

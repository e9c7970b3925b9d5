package commands

import (
	"github.com/leapstack-labs/ecl/pkg/format"
	"github.com/spf13/cobra"
)

// SortOptions holds options for the sort command.
type SortOptions struct {
	EditOptions
	Section int // Zero-based section index, negative for all
}

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	opts := &SortOptions{}
	cmd := &cobra.Command{
		Use:   "sort [path...]",
		Short: "Sort properties within sections",
		Long: `Sort properties within sections.

Blank lines and comments split a section into groups; properties only
move within their group. Plain properties come first, then csharp_ and
dotnet_ rules, each ordered alphabetically.`,
		Example: `  # Sort every section
  ecl sort --write .editorconfig

  # Sort only the second section
  ecl sort --section 1 .editorconfig`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutCatalog(cmd)
			return runEdit(cmd, cmdCtx, args, &opts.EditOptions, func(_, text string) (string, error) {
				if opts.Section < 0 {
					return format.SortAll(text), nil
				}
				return format.SortSection(text, opts.Section)
			})
		},
	}

	addEditFlags(cmd, &opts.EditOptions)
	cmd.Flags().IntVar(&opts.Section, "section", -1, "Zero-based index of the section to sort (default all)")

	return cmd
}

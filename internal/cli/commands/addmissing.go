package commands

import (
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/format"
	"github.com/spf13/cobra"
)

// AddMissingOptions holds options for the add-missing command.
type AddMissingOptions struct {
	EditOptions
	Categories []string // Keyword categories to add
}

// NewAddMissingCommand creates the add-missing command.
func NewAddMissingCommand() *cobra.Command {
	opts := &AddMissingOptions{}
	cmd := &cobra.Command{
		Use:   "add-missing [path...]",
		Short: "Add default declarations for undeclared keywords",
		Long: `Add a default declaration for every catalog keyword a file does not
declare.

Rules go into the section matching their category ([*] for standard
keywords, [*.cs] for csharp_, [*.vb] for visual_basic_, [*.{cs,vb}] for
dotnet_). A section is appended when none exists. Keyword families,
root and max_line_length are never added.`,
		Example: `  # Preview the C# rules that would be added
  ecl add-missing --category csharp .editorconfig

  # Add every missing rule in place
  ecl add-missing --write`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			only, err := parseCategories(opts.Categories)
			if err != nil {
				return err
			}
			return runEdit(cmd, cmdCtx, args, &opts.EditOptions, func(path, text string) (string, error) {
				doc := document.New(document.Config{Path: path, Logger: cmdCtx.Logger})
				return format.AddMissingRules(doc.Parse(text), cmdCtx.Catalog, only...), nil
			})
		},
	}

	addEditFlags(cmd, &opts.EditOptions)
	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "Categories to add: standard, dotnet, csharp, visualbasic, cpp, ide")

	return cmd
}

package commands

import (
	"github.com/leapstack-labs/ecl/pkg/format"
	"github.com/spf13/cobra"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	EditOptions
	Align string // Alignment policy override
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}
	cmd := &cobra.Command{
		Use:     "format [path...]",
		Aliases: []string{"fmt"},
		Short:   "Normalize spacing in .editorconfig files",
		Long: `Normalize spacing around property separators.

Trailing whitespace is trimmed from every line. The alignment policy
decides whether separators line up within each section, across the
whole document, or not at all.`,
		Example: `  # Align separators within each section
  ecl format --align section .editorconfig

  # Rewrite in place using format.align from ecl.yaml
  ecl format --write`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutCatalog(cmd)

			alignName := cmdCtx.Cfg.Format.Align
			if opts.Align != "" {
				alignName = opts.Align
			}
			policy, err := format.ParsePolicy(alignName)
			if err != nil {
				return err
			}
			return runEdit(cmd, cmdCtx, args, &opts.EditOptions, func(_, text string) (string, error) {
				return format.Align(text, policy), nil
			})
		},
	}

	addEditFlags(cmd, &opts.EditOptions)
	cmd.Flags().StringVar(&opts.Align, "align", "", "Alignment policy: none, section, document")
	_ = cmd.RegisterFlagCompletionFunc("align", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"none", "section", "document"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

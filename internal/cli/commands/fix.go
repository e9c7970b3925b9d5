package commands

import (
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/format"
	"github.com/leapstack-labs/ecl/pkg/workspace"
	"github.com/spf13/cobra"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	EditOptions
	Sort  bool   // Also sort every section
	Align string // Alignment policy override
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Apply automatic fixes to .editorconfig files",
		Long: `Apply automatic fixes to .editorconfig files.

Duplicate properties, including those repeating an inherited declaration,
are removed. Sections are sorted when --sort or format.sort is set, then
spacing is normalized using the configured alignment policy.

Without --write the fixed text is printed.`,
		Example: `  # Preview fixes
  ecl fix .editorconfig

  # Fix every file in place
  ecl fix --write

  # Fail in CI when fixes are pending
  ecl fix --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	addEditFlags(cmd, &opts.EditOptions)
	cmd.Flags().BoolVar(&opts.Sort, "sort", false, "Also sort properties in every section")
	cmd.Flags().StringVar(&opts.Align, "align", "", "Alignment policy: none, section, document")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	alignName := cmdCtx.Cfg.Format.Align
	if opts.Align != "" {
		alignName = opts.Align
	}
	policy, err := format.ParsePolicy(alignName)
	if err != nil {
		return err
	}
	sortAll := opts.Sort || cmdCtx.Cfg.Format.Sort

	reg := workspace.NewRegistry(workspace.RegistryConfig{Logger: cmdCtx.Logger})
	defer reg.CloseAll()

	return runEdit(cmd, cmdCtx, args, &opts.EditOptions, func(path, text string) (string, error) {
		doc := reg.Open(path, text)
		if _, err := cmdCtx.Validator.Validate(doc); err != nil {
			return "", err
		}
		return fixSnapshot(doc.Snapshot(), sortAll, policy), nil
	})
}

// fixSnapshot removes duplicates from a validated snapshot, then sorts
// and aligns the result.
func fixSnapshot(snap *document.Snapshot, sortAll bool, policy format.Policy) string {
	text := format.RemoveDuplicates(snap)
	if sortAll {
		text = format.SortAll(text)
	}
	return format.Align(text, policy)
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/workspace"
	"github.com/spf13/cobra"
)

// ChainOptions holds options for the chain command.
type ChainOptions struct {
	Format string // Output format
}

// ChainJSONOutput is the JSON output of the chain command.
type ChainJSONOutput struct {
	Target     string              `json:"target,omitempty"`
	Chain      []ChainEntry        `json:"chain"`
	Properties []ResolvedJSONEntry `json:"properties,omitempty"`
}

// ChainEntry is one document of an inheritance chain.
type ChainEntry struct {
	Path string `json:"path"`
	Root bool   `json:"root"`
}

// ResolvedJSONEntry is one effective property.
type ResolvedJSONEntry struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Severity string `json:"severity,omitempty"`
	Source   string `json:"source"`
	Section  string `json:"section"`
}

// NewChainCommand creates the chain command.
func NewChainCommand() *cobra.Command {
	opts := &ChainOptions{}
	cmd := &cobra.Command{
		Use:   "chain [path]",
		Short: "Show the inheritance chain and effective properties",
		Long: `Show which .editorconfig files apply, nearest first.

Given a .editorconfig file or a directory, the chain starting at that
file is printed. Given any other file, the governing .editorconfig is
located and the properties that apply to the file are resolved as well.`,
		Example: `  # Chain for the current directory
  ecl chain

  # Effective properties for a source file
  ecl chain src/app/Program.cs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			return runChain(cmd, target, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func runChain(cmd *cobra.Command, target string, opts *ChainOptions) error {
	cmdCtx := NewCommandContextWithoutCatalog(cmd).WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer

	configPath, file, err := locateChain(target)
	if err != nil {
		return err
	}

	reg := workspace.NewRegistry(workspace.RegistryConfig{Logger: cmdCtx.Logger})
	defer reg.CloseAll()
	doc, err := reg.Load(configPath)
	if err != nil {
		return err
	}

	result := ChainJSONOutput{Chain: []ChainEntry{}}
	for _, d := range doc.Chain() {
		result.Chain = append(result.Chain, ChainEntry{Path: d.Path(), Root: d.Snapshot().IsRoot()})
	}
	if file != "" {
		result.Target = file
		for _, p := range doc.Resolve(file) {
			result.Properties = append(result.Properties, ResolvedJSONEntry{
				Name:     p.Name,
				Value:    p.Value,
				Severity: p.Severity,
				Source:   p.Source.Path(),
				Section:  p.Section,
			})
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}
	renderChain(r, result)
	return nil
}

// locateChain returns the .editorconfig to start from and, when target
// is an ordinary file, that file.
func locateChain(target string) (configPath, file string, err error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", err
	}

	info, statErr := os.Stat(abs)
	switch {
	case statErr == nil && info.IsDir():
		// FindFor searches the directory holding its argument first.
		if found, ok := document.FindFor(filepath.Join(abs, "x")); ok {
			return found, "", nil
		}
	case filepath.Base(abs) == document.FileName:
		if statErr != nil {
			return "", "", statErr
		}
		return abs, "", nil
	default:
		if found, ok := document.FindFor(abs); ok {
			return found, abs, nil
		}
	}
	return "", "", fmt.Errorf("no %s applies to %s", document.FileName, target)
}

func renderChain(r *output.Renderer, result ChainJSONOutput) {
	styles := r.Styles()

	r.Header(1, "Inheritance chain")
	for i, entry := range result.Chain {
		line := fmt.Sprintf("%d. %s", i+1, styles.ModelPath.Render(entry.Path))
		if entry.Root {
			line += " " + styles.Muted.Render("(root)")
		}
		r.Println(line)
	}

	if result.Target == "" {
		return
	}
	r.Println("")
	r.Header(2, "Effective properties for "+result.Target)
	if len(result.Properties) == 0 {
		r.Println(styles.Muted.Render("No properties apply."))
		return
	}

	rows := make([][]string, 0, len(result.Properties))
	for _, p := range result.Properties {
		rows = append(rows, []string{p.Name, p.Value, p.Severity, p.Section, p.Source})
	}
	r.Table([]string{"Property", "Value", "Severity", "Section", "Source"}, rows)
}

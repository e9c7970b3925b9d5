package commands

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/leapstack-labs/ecl/pkg/validate"
	"github.com/leapstack-labs/ecl/pkg/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, json, markdown
	Disable  []string // Error codes to disable
	Severity string   // Minimum category: error, warning, suggestion
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Validate .editorconfig files",
		Long: `Validate .editorconfig files and report diagnostics.

Directories are searched recursively for .editorconfig files. Each file
is checked against the keyword catalog and the files it inherits from.
Rules can be configured in ecl.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint every .editorconfig below the current directory
  ecl lint

  # Lint one file
  ecl lint src/.editorconfig

  # Output as JSON
  ecl lint --format json

  # Disable specific rules
  ecl lint --disable EC114,EC120

  # Include suggestions
  ecl lint --severity suggestion`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Error codes to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, suggestion")

	return cmd
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Diagnostics []core.DisplayError
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cmdCtx.WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer

	threshold, ok := core.ParseCategory(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", opts.Severity)
	}

	files, err := discoverFiles(cmdCtx.Cfg, args)
	if err != nil {
		return err
	}

	settings := cmdCtx.Cfg.Settings()
	for _, code := range opts.Disable {
		settings.Disable(strings.ToUpper(strings.TrimSpace(code)))
	}
	cmdCtx.Validator.SetSettings(settings)

	results, err := lintFiles(cmd.Context(), cmdCtx, files)
	if err != nil {
		return err
	}
	results = filterBySeverity(results, threshold)

	if renderLintResults(r, results, len(files)) {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// lintFiles validates files concurrently. Documents share one registry so
// common ancestors are parsed once.
func lintFiles(ctx context.Context, cmdCtx *CommandContext, files []string) ([]lintFileResult, error) {
	reg := workspace.NewRegistry(workspace.RegistryConfig{Logger: cmdCtx.Logger})
	defer reg.CloseAll()

	results := make([]lintFileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := readFile(path)
			if err != nil {
				return err
			}
			diags, err := lintText(cmdCtx.Validator, reg, path, text)
			if err != nil {
				return fmt.Errorf("failed to validate %s: %w", path, err)
			}
			cmdCtx.Logger.Debug("validated file", "path", path, "diagnostics", len(diags))
			results[i] = lintFileResult{Path: path, Diagnostics: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func lintText(v *validate.Validator, reg *workspace.Registry, path, text string) ([]core.DisplayError, error) {
	doc := reg.Open(path, text)
	return v.Validate(doc)
}

func filterBySeverity(results []lintFileResult, threshold core.ErrorCategory) []lintFileResult {
	var filtered []lintFileResult
	for _, r := range results {
		var diags []core.DisplayError
		for _, d := range r.Diagnostics {
			if d.Category <= threshold {
				diags = append(diags, d)
			}
		}
		if len(diags) > 0 {
			filtered = append(filtered, lintFileResult{
				Path:        r.Path,
				Diagnostics: diags,
			})
		}
	}
	return filtered
}

func summarize(results []lintFileResult, analyzed int) output.LintSummary {
	summary := output.LintSummary{
		FilesAnalyzed:   analyzed,
		FilesWithIssues: len(results),
	}
	for _, res := range results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Category {
			case core.CategoryError:
				summary.Errors++
			case core.CategoryWarning:
				summary.Warnings++
			case core.CategorySuggestion:
				summary.Suggestions++
			}
		}
	}
	return summary
}

func renderLintResults(r *output.Renderer, results []lintFileResult, analyzed int) bool {
	summary := summarize(results, analyzed)

	if r.EffectiveMode() == output.ModeJSON {
		jsonOutput := output.LintOutput{
			Summary: summary,
			Files:   []output.LintFileResult{},
		}
		for _, res := range results {
			fileResult := output.LintFileResult{Path: res.Path}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					Code:     d.Code,
					Category: d.Category.String(),
					Message:  d.Description,
					Line:     d.Line,
					Column:   d.Column,
					DocURL:   lint.BuildDocURL(d.Code),
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return len(results) > 0
	}

	if len(results) == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", analyzed))
		return false
	}

	// Text/Markdown output
	for _, res := range results {
		r.Println(r.Styles().ModelPath.Render(res.Path))
		writeDiagnostics(r, res.Diagnostics)
		r.Println("")
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Suggestions > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d suggestions", summary.Suggestions))
	}
	r.Printf("Summary: %s in %d of %d files\n", strings.Join(summaryParts, ", "), summary.FilesWithIssues, summary.FilesAnalyzed)

	return true
}

func severityStyle(r *output.Renderer, c core.ErrorCategory) string {
	switch c {
	case core.CategoryError:
		return r.Styles().Error.Render("error     ")
	case core.CategoryWarning:
		return r.Styles().Warning.Render("warning   ")
	case core.CategorySuggestion:
		return r.Styles().Info.Render("suggestion")
	default:
		return r.Styles().Muted.Render("unknown   ")
	}
}

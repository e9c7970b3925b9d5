package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/pkg/schema"
	"github.com/spf13/cobra"
)

// KeywordsOptions holds options for the keywords command.
type KeywordsOptions struct {
	Categories []string // Filter by category
	All        bool     // Include hidden keywords
	Format     string   // Output format
}

// KeywordsJSONOutput is the JSON output structure for keyword listing.
type KeywordsJSONOutput struct {
	Keywords   []schema.Keyword  `json:"keywords"`
	Severities []schema.Severity `json:"severities"`
	Sources    []string          `json:"sources"`
	Count      int               `json:"count"`
}

// NewKeywordsCommand creates the keywords command.
func NewKeywordsCommand() *cobra.Command {
	opts := &KeywordsOptions{}
	cmd := &cobra.Command{
		Use:     "keywords [name]",
		Aliases: []string{"kw"},
		Short:   "List known .editorconfig keywords",
		Long: `List the keywords of the catalog: the built-in schema plus every
registration named by the schemas setting or the --schema flag.

With a name, show the full definition of one keyword. Names of keyword
families such as dotnet_diagnostic.CA1822.severity resolve to the
family definition.`,
		Example: `  # List visible keywords grouped by category
  ecl keywords

  # Show a single keyword
  ecl keywords indent_style

  # List C# keywords as JSON
  ecl keywords --category csharp --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			cmdCtx.WithFormat(cmd, opts.Format)
			if len(args) > 0 {
				return showKeyword(cmdCtx, args[0])
			}
			return listKeywords(cmdCtx, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "Categories to list: standard, dotnet, csharp, visualbasic, cpp, ide")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include hidden keywords")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// selectKeywords returns the keywords to list, grouped by category in
// category order.
func selectKeywords(catalog *schema.Catalog, cats []schema.Category, all bool) map[schema.Category][]schema.Keyword {
	if len(cats) == 0 {
		for c := schema.CategoryStandard; c <= schema.CategoryIDE; c++ {
			cats = append(cats, c)
		}
	}
	out := make(map[schema.Category][]schema.Keyword)
	for _, c := range cats {
		for _, kw := range catalog.KeywordsByCategory(c) {
			if kw.IsVisible || all {
				out[c] = append(out[c], kw)
			}
		}
	}
	return out
}

func listKeywords(cmdCtx *CommandContext, opts *KeywordsOptions) error {
	r := cmdCtx.Renderer
	cats, err := parseCategories(opts.Categories)
	if err != nil {
		return err
	}
	grouped := selectKeywords(cmdCtx.Catalog, cats, opts.All)

	if r.EffectiveMode() == output.ModeJSON {
		keywords := []schema.Keyword{}
		for c := schema.CategoryStandard; c <= schema.CategoryIDE; c++ {
			keywords = append(keywords, grouped[c]...)
		}
		return r.JSON(KeywordsJSONOutput{
			Keywords:   keywords,
			Severities: cmdCtx.Catalog.Severities(),
			Sources:    cmdCtx.Catalog.Sources(),
			Count:      len(keywords),
		})
	}

	total := 0
	for c := schema.CategoryStandard; c <= schema.CategoryIDE; c++ {
		kws := grouped[c]
		if len(kws) == 0 {
			continue
		}
		total += len(kws)
		r.Header(2, fmt.Sprintf("%s (%d)", c, len(kws)))
		rows := make([][]string, 0, len(kws))
		for _, kw := range kws {
			rows = append(rows, []string{kw.Name, keywordValues(kw), kw.Source})
		}
		r.Table([]string{"Keyword", "Values", "Source"}, rows)
		r.Println("")
	}
	if total == 0 {
		r.Println(r.Styles().Muted.Render("No keywords found"))
		return nil
	}
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("%d keywords. Use 'ecl keywords <name>' for details", total)))
	return nil
}

func keywordValues(kw schema.Keyword) string {
	values := strings.Join(kw.Values, ", ")
	if kw.RequiresSeverity {
		values += " (:severity)"
	}
	return values
}

func showKeyword(cmdCtx *CommandContext, name string) error {
	r := cmdCtx.Renderer
	kw, ok := cmdCtx.Catalog.TryGetKeyword(strings.TrimSpace(name))
	if !ok {
		return fmt.Errorf("keyword %q not found", name)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(kw)
	}

	styles := r.Styles()
	r.Header(1, kw.Name)
	if kw.Description != "" {
		r.Println(kw.Description)
		r.Println("")
	}
	field := func(label, value string) {
		if value != "" {
			r.Printf("%s %s\n", styles.Bold.Render(label+":"), value)
		}
	}
	field("Category", kw.Category.String())
	field("Pattern", kw.Pattern)
	field("Values", strings.Join(kw.Values, ", "))
	field("Default", kw.DefaultValue())
	if kw.RequiresSeverity {
		field("Default severity", kw.DefaultSeverity)
	}
	field("Supported", fmt.Sprintf("%t", kw.IsSupported))
	field("Source", kw.Source)
	field("Docs", kw.DocumentationLink)
	if kw.Example != "" {
		r.Println("")
		r.Println(styles.Code.Render(kw.Example))
	}
	return nil
}

package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format
}

// RuleInfo describes one diagnostic in command output.
type RuleInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Category string `json:"category"`
	Message  string `json:"message"`
	DocURL   string `json:"doc_url"`
	Enabled  bool   `json:"enabled"`
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []RuleInfo `json:"rules"`
	Count int        `json:"count"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [code]",
		Short: "List diagnostics and their codes",
		Long: `List every diagnostic the validator can report.

Each diagnostic has a stable code used for suppression comments
("# suppress: EC101"), the lint.disabled setting and documentation links.`,
		Example: `  # List all rules
  ecl rules

  # Show details for one rule
  ecl rules EC103

  # List naming rules as JSON
  ecl rules --group naming --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group: syntax, duplicates, schema, style, naming")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func ruleInfo(e *lint.Error, settings *lint.Settings) RuleInfo {
	return RuleInfo{
		Code:     e.Code,
		Name:     e.Name,
		Group:    e.Group,
		Category: e.Category.String(),
		Message:  e.Template,
		DocURL:   e.DocURL(),
		Enabled:  e.IsEnabled(settings),
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutCatalog(cmd).WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer
	settings := cmdCtx.Cfg.Settings()

	errs := lint.AllErrors()
	if opts.Group != "" {
		errs = lint.ErrorsByGroup(strings.ToLower(opts.Group))
	}
	rules := make([]RuleInfo, 0, len(errs))
	for _, e := range errs {
		rules = append(rules, ruleInfo(e, settings))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(RulesJSONOutput{Rules: rules, Count: len(rules)})
	}

	r.Header(1, fmt.Sprintf("Diagnostics (%d)", len(rules)))
	title := cases.Title(language.English)
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		enabled := "yes"
		if !rule.Enabled {
			enabled = "no"
		}
		rows = append(rows, []string{rule.Code, title.String(rule.Group), rule.Name, rule.Category, enabled})
	}
	r.Table([]string{"Code", "Group", "Name", "Category", "Enabled"}, rows)
	r.Println("")
	r.Println(r.Styles().Muted.Render("Use 'ecl rules <code>' for details"))
	return nil
}

func showRule(cmd *cobra.Command, code string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutCatalog(cmd).WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer

	e, ok := lint.TryGetErrorCode(strings.ToUpper(strings.TrimSpace(code)))
	if !ok {
		return fmt.Errorf("rule %q not found", code)
	}
	rule := ruleInfo(e, cmdCtx.Cfg.Settings())

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rule)
	}

	styles := r.Styles()
	r.Header(1, rule.Code+" "+rule.Name)
	r.Printf("%s %s\n", styles.Bold.Render("Category:"), rule.Category)
	r.Printf("%s %s\n", styles.Bold.Render("Group:"), rule.Group)
	r.Printf("%s %t\n", styles.Bold.Render("Enabled:"), rule.Enabled)
	r.Printf("%s %s\n", styles.Bold.Render("Message:"), rule.Message)
	r.Printf("%s %s\n", styles.Bold.Render("Docs:"), rule.DocURL)
	r.Println("")
	r.Println(styles.Muted.Render(fmt.Sprintf("Suppress with: # suppress: %s", rule.Code)))
	return nil
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ecl/pkg/lint"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// groupOrder lists error groups in documentation order.
var groupOrder = []string{"syntax", "duplicates", "schema", "style", "naming"}

// groupDescriptions provides human-readable descriptions for error groups.
var groupDescriptions = map[string]string{
	"syntax":     "Lines and section headers that do not parse.",
	"duplicates": "Sections and properties declared more than once, in one file or along the inheritance chain.",
	"schema":     "Keywords, values and severities checked against the keyword catalog.",
	"style":      "Declarations that are legal but redundant or suspicious.",
	"naming":     "References between .NET naming rules, symbols and styles.",
}

// settingFor names the lint setting that toggles each optional diagnostic.
var settingFor = map[string]string{
	"EC103": "duplicate_properties",
	"EC104": "duplicate_sections",
	"EC105": "parent_duplicates",
	"EC107": "unknown_values",
	"EC112": "unknown_properties",
	"EC113": "allow_spaces_in_sections",
	"EC114": "globbing",
	"EC120": "unknown_properties",
}

// generateErrorDocs writes an index page and one page per error code.
// Page names match lint.BuildDocURL.
func generateErrorDocs(outDir string) error {
	log.Printf("Generating error docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateErrorIndex(outDir); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, e := range lint.AllErrors() {
		if err := generateErrorPage(outDir, e); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", e.Code, err)
		}
	}
	log.Printf("  Generated %d error pages", len(lint.AllErrors()))
	return nil
}

func errorPageName(code string) string {
	return strings.ToLower(code) + ".md"
}

// generateErrorIndex generates the error catalog overview page.
func generateErrorIndex(outDir string) error {
	w := NewMarkdownWriter()
	title := cases.Title(language.English)

	w.Frontmatter("Diagnostics", "Error codes reported by ecl")
	w.GeneratedMarker()

	w.Header(1, "Diagnostics")
	w.Paragraph(fmt.Sprintf("ecl reports **%d diagnostics**. Each has a stable code that can be used in suppression comments and in the `lint.disabled` setting.", len(lint.AllErrors())))

	w.Header(2, "Categories")
	w.Table(
		[]string{"Category", "Description"},
		[][]string{
			{InlineCode("error"), "The declaration is broken and is ignored by tools"},
			{InlineCode("warning"), "The declaration is likely a mistake"},
			{InlineCode("suggestion"), "The file can be simplified or tidied"},
		},
	)

	w.Header(2, "Suppression")
	w.Paragraph("A suppression comment at the top of the file silences codes for the whole file:")
	w.CodeBlock("ini", "# suppress: EC112 EC114\nroot = true")

	w.Header(2, "Configuration")
	w.Paragraph("Codes can also be disabled in `ecl.yaml`:")
	w.CodeBlock("yaml", "lint:\n  disabled: [EC114, EC120]\n  globbing: false")

	for _, group := range groupOrder {
		errs := lint.ErrorsByGroup(group)
		if len(errs) == 0 {
			continue
		}
		w.Header(2, title.String(group))
		w.Paragraph(groupDescriptions[group])

		rows := make([][]string, 0, len(errs))
		for _, e := range errs {
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s)", e.Code, errorPageName(e.Code)),
				InlineCode(e.Name),
				e.Category.String(),
			})
		}
		w.Table([]string{"Code", "Name", "Category"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateErrorPage generates documentation for a single error code.
func generateErrorPage(outDir string, e *lint.Error) error {
	w := NewMarkdownWriter()

	w.Frontmatter(e.Code, e.Name)
	w.GeneratedMarker()

	w.Header(1, fmt.Sprintf("%s - %s", e.Code, e.Name))
	w.Line(fmt.Sprintf("**Category:** %s", InlineCode(e.Category.String())))
	w.Newline()
	w.Line(fmt.Sprintf("**Group:** %s", e.Group))
	w.Newline()

	w.Header(2, "Message")
	w.CodeBlock("text", e.Template)

	w.Header(2, "Suppression")
	w.CodeBlock("ini", "# suppress: "+e.Code)
	if setting, ok := settingFor[e.Code]; ok {
		w.Paragraph(fmt.Sprintf("This diagnostic is controlled by the %s setting.", InlineCode("lint."+setting)))
	}

	return os.WriteFile(filepath.Join(outDir, errorPageName(e.Code)), w.Bytes(), 0600)
}

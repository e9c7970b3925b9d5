package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ecl/pkg/schema"
)

// generateKeywordDocs generates one page per keyword category from the
// built-in catalog.
func generateKeywordDocs(outDir string) error {
	log.Printf("Generating keyword docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	catalog := schema.Default()
	w := NewMarkdownWriter()
	w.Frontmatter("Keywords", "Keywords known to ecl")
	w.GeneratedMarker()
	w.Header(1, "Keywords")
	w.Paragraph(fmt.Sprintf("The built-in catalog knows %d keywords.", len(catalog.AllKeywords())))

	w.Header(2, "Severities")
	var sevRows [][]string
	for _, s := range catalog.Severities() {
		sevRows = append(sevRows, []string{InlineCode(s.Name), cleanDescription(s.Description)})
	}
	w.Table([]string{"Severity", "Description"}, sevRows)

	w.Header(2, "Categories")
	var links []string
	for c := schema.CategoryStandard; c <= schema.CategoryIDE; c++ {
		kws := catalog.KeywordsByCategory(c)
		if len(kws) == 0 {
			continue
		}
		page := strings.ToLower(c.String()) + ".md"
		if err := generateCategoryPage(filepath.Join(outDir, page), c, kws); err != nil {
			return fmt.Errorf("failed to generate %s: %w", page, err)
		}
		log.Printf("  Generated %s", page)
		links = append(links, fmt.Sprintf("[%s](%s) (%d)", c, page, len(kws)))
	}
	w.BulletList(links)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func generateCategoryPage(path string, c schema.Category, kws []schema.Keyword) error {
	w := NewMarkdownWriter()
	w.Frontmatter(c.String()+" keywords", fmt.Sprintf("%s keywords known to ecl", c))
	w.GeneratedMarker()
	w.Header(1, c.String()+" keywords")

	for _, kw := range kws {
		w.Header(2, kw.Name)
		if kw.Description != "" {
			w.Paragraph(kw.Description)
		}
		var facts []string
		if len(kw.Values) > 0 {
			facts = append(facts, Bold("Values:")+" "+InlineCode(strings.Join(kw.Values, ", ")))
		}
		if def := kw.DefaultValue(); def != "" {
			facts = append(facts, Bold("Default:")+" "+InlineCode(def))
		}
		if kw.RequiresSeverity {
			facts = append(facts, Bold("Severity:")+" required, default "+InlineCode(kw.DefaultSeverity))
		}
		if !kw.IsSupported {
			facts = append(facts, Bold("Unsupported")+" by the .NET tooling")
		}
		if kw.DocumentationLink != "" {
			facts = append(facts, fmt.Sprintf("[Documentation](%s)", kw.DocumentationLink))
		}
		if len(facts) > 0 {
			w.BulletList(facts)
		}
		if kw.Example != "" {
			w.CodeBlock("ini", kw.Example)
		}
	}
	return os.WriteFile(path, w.Bytes(), 0600)
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli/config"
	"github.com/leapstack-labs/ecl/pkg/lint"
)

// generateConfigDocs generates the ecl.yaml reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "general", "lint", "format", "watch"
}

// getConfigSchema returns the configuration fields with their defaults.
func getConfigSchema() []ConfigField {
	s := lint.DefaultSettings()
	return []ConfigField{
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json", Category: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "general"},
		{Name: "schemas", Type: "[]string", Description: "Keyword registration files merged into the catalog, relative to the config file", Category: "general"},

		{Name: "unknown_properties", Type: "bool", Default: fmt.Sprint(s.UnknownProperties), Description: "Report unknown and unsupported keywords (EC112, EC120)", Category: "lint"},
		{Name: "unknown_values", Type: "bool", Default: fmt.Sprint(s.UnknownValues), Description: "Report values outside the keyword's value list (EC107)", Category: "lint"},
		{Name: "duplicate_sections", Type: "bool", Default: fmt.Sprint(s.DuplicateSections), Description: "Report repeated section headers (EC104)", Category: "lint"},
		{Name: "duplicate_properties", Type: "bool", Default: fmt.Sprint(s.DuplicateProperties), Description: "Report overridden properties (EC103)", Category: "lint"},
		{Name: "parent_duplicates", Type: "bool", Default: fmt.Sprint(s.ParentDuplicates), Description: "Report properties repeating an inherited value (EC105)", Category: "lint"},
		{Name: "globbing", Type: "bool", Default: fmt.Sprint(s.Globbing), Description: "Report sections matching no file (EC114)", Category: "lint"},
		{Name: "allow_spaces_in_sections", Type: "bool", Default: fmt.Sprint(s.AllowSpacesInSections), Description: "Accept spaces in section headers (EC113)", Category: "lint"},
		{Name: "ignored_prefixes", Type: "[]string", Default: strings.Join(s.IgnoredPrefixes, ","), Description: "Keyword prefixes never reported as unknown", Category: "lint"},
		{Name: "ignore_paths", Type: "[]string", Default: strings.Join(s.IgnorePaths, ","), Description: "Directories skipped by discovery and the globbing probe", Category: "lint"},
		{Name: "disabled", Type: "[]string", Description: "Error codes never reported", Category: "lint"},

		{Name: "align", Type: "string", Default: config.DefaultAlign, Description: "Alignment policy for fix and format: none, section, document", Category: "format"},
		{Name: "sort", Type: "bool", Default: "false", Description: "Sort sections during fix", Category: "format"},

		{Name: "debounce", Type: "duration", Default: config.DefaultDebounce.String(), Description: "Quiet period before watch revalidates", Category: "watch"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "ecl configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("ecl reads `ecl.yaml`, `ecl.yml`, `.ecl.yaml` or `.ecl.yml`, searching upward from the working directory. Flags override environment variables, which override the file.")

	fields := getConfigSchema()
	sections := []struct {
		category string
		title    string
		prefix   string
	}{
		{"general", "General", ""},
		{"lint", "Lint", "lint."},
		{"format", "Format", "format."},
		{"watch", "Watch", "watch."},
	}
	for _, sec := range sections {
		w.Header(2, sec.title)
		var rows [][]string
		for _, f := range fields {
			if f.Category != sec.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			} else {
				defVal = InlineCode(defVal)
			}
			rows = append(rows, []string{InlineCode(sec.prefix + f.Name), f.Type, defVal, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: text
schemas:
  - ./tools/roslynator.yaml
lint:
  globbing: false
  disabled: [EC120]
format:
  align: section
watch:
  debounce: 250ms`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

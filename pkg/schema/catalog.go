// Package schema provides the catalog of known .editorconfig keywords and
// severities.
//
// The built-in catalog is embedded in the binary and loaded once by
// Default. Tests and tools that need isolation build their own instance
// with Load. Catalogs are immutable; Merge returns a new catalog that adds
// externally registered keywords.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

//go:embed data/schema.json
var builtinSchema []byte

// Catalog is an immutable set of keywords and severities.
type Catalog struct {
	keywords   map[string]Keyword // folded name -> keyword
	order      []Keyword          // declaration order, families included
	families   []*family
	severities []Severity
	sevIndex   map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog built from the embedded schema.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(builtinSchema)
		if err != nil {
			panic(fmt.Sprintf("schema: embedded schema is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// schemaFile mirrors the JSON schema document.
type schemaFile struct {
	Severities []Severity      `json:"severities"`
	Properties []schemaKeyword `json:"properties"`
}

// schemaKeyword is the on-disk keyword shape, shared by the JSON schema and
// YAML registrations.
type schemaKeyword struct {
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description" yaml:"description"`
	Values            []string `json:"values" yaml:"values"`
	DefaultValue      []string `json:"default_value" yaml:"default_value"`
	Unsupported       bool     `json:"unsupported" yaml:"unsupported"`
	Hidden            bool     `json:"hidden" yaml:"hidden"`
	Multiple          bool     `json:"multiple" yaml:"multiple"`
	Severity          bool     `json:"severity" yaml:"severity"`
	DefaultSeverity   string   `json:"default_severity" yaml:"default_severity"`
	DocumentationLink string   `json:"documentation_link" yaml:"documentation_link"`
	Example           string   `json:"example" yaml:"example"`
}

func (s schemaKeyword) toKeyword(source string) Keyword {
	return Keyword{
		Name:                   s.Name,
		Description:            s.Description,
		Values:                 s.Values,
		DefaultValues:          s.DefaultValue,
		IsSupported:            !s.Unsupported,
		IsVisible:              !s.Hidden,
		SupportsMultipleValues: s.Multiple,
		RequiresSeverity:       s.Severity,
		DefaultSeverity:        s.DefaultSeverity,
		DocumentationLink:      s.DocumentationLink,
		Example:                s.Example,
		Category:               CategoryOf(s.Name),
		Source:                 source,
	}
}

// Load builds a catalog from a JSON schema document.
func Load(data []byte) (*Catalog, error) {
	var file schemaFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := newCatalog()
	for _, sev := range file.Severities {
		if sev.Name == "" {
			return nil, errors.New("severity without a name")
		}
		c.sevIndex[fold(sev.Name)] = len(c.severities)
		c.severities = append(c.severities, sev)
	}

	for _, raw := range file.Properties {
		if raw.Name == "" {
			return nil, errors.New("property without a name")
		}
		if _, ok := c.keywords[fold(raw.Name)]; ok {
			return nil, fmt.Errorf("duplicate property %q", raw.Name)
		}
		if err := c.add(raw.toKeyword(BuiltinSource)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func newCatalog() *Catalog {
	return &Catalog{
		keywords: make(map[string]Keyword),
		sevIndex: make(map[string]int),
	}
}

func (c *Catalog) add(kw Keyword) error {
	key := fold(kw.Name)
	if isFamilyPattern(kw.Name) {
		re, err := compileFamily(kw.Name)
		if err != nil {
			return fmt.Errorf("invalid keyword pattern %q: %w", kw.Name, err)
		}
		kw.Pattern = kw.Name
		c.families = append(c.families, &family{re: re, keyword: kw})
	}
	c.keywords[key] = kw
	c.order = append(c.order, kw)
	return nil
}

// fold returns the case-folded lookup key for a name.
func fold(name string) string {
	// Casers are stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(name))
}

// TryGetKeyword looks up a keyword by name, case-insensitively. Family
// shapes are tried before exact names.
func (c *Catalog) TryGetKeyword(name string) (Keyword, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Keyword{}, false
	}
	for _, f := range c.families {
		if kw, ok := f.match(name); ok {
			return kw, true
		}
	}
	kw, ok := c.keywords[fold(name)]
	return kw, ok
}

// TryGetSeverity looks up a severity by name, case-insensitively.
func (c *Catalog) TryGetSeverity(name string) (Severity, bool) {
	i, ok := c.sevIndex[fold(name)]
	if !ok {
		return Severity{}, false
	}
	return c.severities[i], true
}

// AllKeywords returns every keyword in declaration order.
func (c *Catalog) AllKeywords() []Keyword {
	out := make([]Keyword, len(c.order))
	copy(out, c.order)
	return out
}

// VisibleKeywords returns the keywords not marked hidden.
func (c *Catalog) VisibleKeywords() []Keyword {
	var out []Keyword
	for _, kw := range c.order {
		if kw.IsVisible {
			out = append(out, kw)
		}
	}
	return out
}

// KeywordsByCategory returns the keywords of one category sorted by name.
func (c *Catalog) KeywordsByCategory(cat Category) []Keyword {
	var out []Keyword
	for _, kw := range c.order {
		if kw.Category == cat {
			out = append(out, kw)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Severities returns the severity vocabulary in declaration order.
func (c *Catalog) Severities() []Severity {
	out := make([]Severity, len(c.severities))
	copy(out, c.severities)
	return out
}

// Merge returns a new catalog that adds keywords registered by source.
// Keywords already present, built-in or from an earlier source, keep
// their original definition.
func (c *Catalog) Merge(source string, keywords []Keyword) *Catalog {
	merged := c.clone()
	for _, kw := range keywords {
		if strings.TrimSpace(kw.Name) == "" {
			continue
		}
		if _, ok := merged.keywords[fold(kw.Name)]; ok {
			continue
		}
		kw.Source = source
		kw.Category = CategoryOf(kw.Name)
		if err := merged.add(kw); err != nil {
			continue
		}
	}
	return merged
}

// Sources returns the distinct keyword sources in first-seen order.
func (c *Catalog) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, kw := range c.order {
		if !seen[kw.Source] {
			seen[kw.Source] = true
			out = append(out, kw.Source)
		}
	}
	return out
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		keywords:   make(map[string]Keyword, len(c.keywords)),
		order:      append([]Keyword(nil), c.order...),
		families:   append([]*family(nil), c.families...),
		severities: append([]Severity(nil), c.severities...),
		sevIndex:   make(map[string]int, len(c.sevIndex)),
	}
	for k, v := range c.keywords {
		out.keywords[k] = v
	}
	for k, v := range c.sevIndex {
		out.sevIndex[k] = v
	}
	return out
}

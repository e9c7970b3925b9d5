// Package naming models .NET naming conventions declared through
// dotnet_naming_rule, dotnet_naming_symbols and dotnet_naming_style
// properties.
package naming

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
)

// Property prefixes of the three naming families.
const (
	RulePrefix    = "dotnet_naming_rule."
	SymbolsPrefix = "dotnet_naming_symbols."
	StylePrefix   = "dotnet_naming_style."
)

// Rule is a dotnet_naming_rule.<name> declaration.
type Rule struct {
	Name     string
	Symbols  string
	Style    string
	Severity string

	// Declaration is the keyword that first declared the rule.
	Declaration *core.ParseItem
	// SymbolsValue and StyleValue are the value items of the .symbols
	// and .style properties, when present.
	SymbolsValue *core.ParseItem
	StyleValue   *core.ParseItem
}

// Symbols is a dotnet_naming_symbols.<name> declaration.
type Symbols struct {
	Name            string
	Kinds           Set
	Accessibilities Set
	Modifiers       Set

	Declaration *core.ParseItem
}

// Style is a dotnet_naming_style.<name> declaration.
type Style struct {
	Name           string
	Capitalization string
	Prefix         string
	Suffix         string
	Separator      string

	// Declaration is the keyword that first declared the style.
	Declaration *core.ParseItem
	// HasCapitalization is set when .capitalization was declared.
	HasCapitalization bool
}

// Model is the set of naming declarations of one document.
type Model struct {
	Rules   []*Rule // in declaration order
	Symbols map[string]*Symbols
	Styles  map[string]*Style

	styleOrder []string
}

// split breaks "prefix<name>.<field>" into name and field.
func split(keyword, prefix string) (name, field string, ok bool) {
	if len(keyword) <= len(prefix) || !strings.EqualFold(keyword[:len(prefix)], prefix) {
		return "", "", false
	}
	rest := keyword[len(prefix):]
	dot := strings.LastIndexByte(rest, '.')
	if dot <= 0 || dot == len(rest)-1 {
		return "", "", false
	}
	return strings.ToLower(rest[:dot]), strings.ToLower(rest[dot+1:]), true
}

// Build collects naming declarations from props. Later declarations of the
// same field override earlier ones.
func Build(props []*core.Property) *Model {
	m := &Model{
		Symbols: make(map[string]*Symbols),
		Styles:  make(map[string]*Style),
	}
	rules := make(map[string]*Rule)

	for _, p := range props {
		if p == nil || p.Keyword == nil {
			continue
		}
		keyword := p.Name()
		value := strings.TrimSpace(p.ValueText())

		if name, field, ok := split(keyword, RulePrefix); ok {
			r, seen := rules[name]
			if !seen {
				r = &Rule{Name: name, Declaration: p.Keyword}
				rules[name] = r
				m.Rules = append(m.Rules, r)
			}
			switch field {
			case "symbols":
				r.Symbols = strings.ToLower(value)
				r.SymbolsValue = p.Value
			case "style":
				r.Style = strings.ToLower(value)
				r.StyleValue = p.Value
			case "severity":
				r.Severity = strings.ToLower(value)
			}
			continue
		}

		if name, field, ok := split(keyword, SymbolsPrefix); ok {
			s, seen := m.Symbols[name]
			if !seen {
				s = &Symbols{Name: name, Declaration: p.Keyword}
				m.Symbols[name] = s
			}
			switch field {
			case "applicable_kinds":
				s.Kinds = ParseSet(value, nil)
			case "applicable_accessibilities":
				s.Accessibilities = ParseSet(value, accessibilityAliases)
			case "required_modifiers":
				s.Modifiers = ParseSet(value, modifierAliases)
			}
			continue
		}

		if name, field, ok := split(keyword, StylePrefix); ok {
			st, seen := m.Styles[name]
			if !seen {
				st = &Style{Name: name, Declaration: p.Keyword}
				m.Styles[name] = st
				m.styleOrder = append(m.styleOrder, name)
			}
			switch field {
			case "capitalization":
				st.Capitalization = strings.ToLower(value)
				st.HasCapitalization = true
			case "required_prefix":
				st.Prefix = value
			case "required_suffix":
				st.Suffix = value
			case "word_separator":
				st.Separator = value
			}
		}
	}

	return m
}

// StylesInOrder returns the declared styles in declaration order.
func (m *Model) StylesInOrder() []*Style {
	out := make([]*Style, 0, len(m.styleOrder))
	for _, name := range m.styleOrder {
		out = append(out, m.Styles[name])
	}
	return out
}

// UnknownStyles returns rules whose style has no capitalization declaration.
func (m *Model) UnknownStyles() []*Rule {
	var out []*Rule
	for _, r := range m.Rules {
		if r.Style == "" {
			continue
		}
		if st, ok := m.Styles[r.Style]; !ok || !st.HasCapitalization {
			out = append(out, r)
		}
	}
	return out
}

// UnknownSymbols returns rules referencing symbols that are not declared.
func (m *Model) UnknownSymbols() []*Rule {
	var out []*Rule
	for _, r := range m.Rules {
		if r.Symbols == "" {
			continue
		}
		if _, ok := m.Symbols[r.Symbols]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// UnusedStyles returns declared styles that no rule references.
func (m *Model) UnusedStyles() []*Style {
	used := make(map[string]bool, len(m.Rules))
	for _, r := range m.Rules {
		used[r.Style] = true
	}
	var out []*Style
	for _, st := range m.StylesInOrder() {
		if !used[st.Name] {
			out = append(out, st)
		}
	}
	return out
}

package core

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/token"
)

// Property is a keyword with an optional value and severity.
type Property struct {
	Keyword  *ParseItem
	Value    *ParseItem
	Severity *ParseItem
}

// IsValid reports whether both keyword and value are present.
func (p *Property) IsValid() bool {
	return p.Keyword != nil && p.Value != nil
}

// Span covers keyword through severity (or value).
func (p *Property) Span() token.Span {
	span := p.Keyword.Span
	if p.Value != nil {
		span = span.Union(p.Value.Span)
	}
	if p.Severity != nil {
		span = span.Union(p.Severity.Span)
	}
	return span
}

// Name returns the keyword text.
func (p *Property) Name() string {
	return p.Keyword.Text
}

// Is reports whether the property keyword equals name, ignoring case.
func (p *Property) Is(name string) bool {
	return strings.EqualFold(p.Keyword.Text, name)
}

// ValueText returns the value text or "" when there is no value.
func (p *Property) ValueText() string {
	if p.Value == nil {
		return ""
	}
	return p.Value.Text
}

// SeverityText returns the severity text or "" when there is no severity.
func (p *Property) SeverityText() string {
	if p.Severity == nil {
		return ""
	}
	return p.Severity.Text
}

// Items returns the non-nil items of the property in source order.
func (p *Property) Items() []*ParseItem {
	items := []*ParseItem{p.Keyword}
	if p.Value != nil {
		items = append(items, p.Value)
	}
	if p.Severity != nil {
		items = append(items, p.Severity)
	}
	return items
}

// Section is a bracketed header and the properties that follow it.
type Section struct {
	Item       *ParseItem
	Properties []*Property
}

// Span covers the header through the last property.
func (s *Section) Span() token.Span {
	span := s.Item.Span
	if n := len(s.Properties); n > 0 {
		span = span.Union(s.Properties[n-1].Span())
	}
	return span
}

// IsValid reports whether all properties are valid.
func (s *Section) IsValid() bool {
	for _, p := range s.Properties {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// Header returns the header text without brackets.
func (s *Section) Header() string {
	text := strings.TrimPrefix(s.Item.Text, "[")
	return strings.TrimSuffix(text, "]")
}

// Find returns the last property whose keyword equals name, ignoring case.
func (s *Section) Find(name string) *Property {
	return FindProperty(s.Properties, name)
}

// FindProperty returns the last property in props whose keyword equals
// name, ignoring case. The last one wins because later declarations
// override earlier ones.
func FindProperty(props []*Property, name string) *Property {
	for i := len(props) - 1; i >= 0; i-- {
		if props[i].Is(name) {
			return props[i]
		}
	}
	return nil
}

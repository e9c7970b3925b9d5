package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/ecl/pkg/core"
)

// Policy selects how property separators are aligned.
type Policy int

// Alignment policies.
const (
	// PolicyNone normalizes spacing without padding keywords.
	PolicyNone Policy = iota
	// PolicySection aligns separators within each section.
	PolicySection
	// PolicyDocument aligns separators across the whole document.
	PolicyDocument
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicySection:
		return "section"
	case PolicyDocument:
		return "document"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PolicyNone, nil
	case "section":
		return PolicySection, nil
	case "document":
		return PolicyDocument, nil
	default:
		return PolicyNone, fmt.Errorf("unknown alignment policy %q (want none, section or document)", s)
	}
}

// alignedProperty is a property line broken into its normalized parts.
type alignedProperty struct {
	indent   string
	keyword  string
	sep      string
	value    string
	severity string
	comment  string
}

func splitProperty(l textLine) (alignedProperty, bool) {
	if l.kind != lineProperty || !l.clean || l.prop.Value == nil {
		return alignedProperty{}, false
	}

	p := alignedProperty{
		indent:   l.text[:l.prop.Keyword.Span.Start],
		keyword:  l.prop.Keyword.Text,
		value:    l.prop.Value.Text,
		severity: l.prop.SeverityText(),
	}
	between := l.text[l.prop.Keyword.Span.End():l.prop.Value.Span.Start]
	p.sep = strings.TrimSpace(between)
	if p.sep == "" {
		p.sep = "="
	}
	if last := l.items[len(l.items)-1]; last.Kind == core.ItemComment {
		p.comment = last.Text
	}
	return p, true
}

func (p alignedProperty) render(width int) string {
	var b strings.Builder
	b.WriteString(p.indent)
	b.WriteString(p.keyword)
	if pad := width - utf8.RuneCountInString(p.keyword); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(" ")
	b.WriteString(p.sep)
	b.WriteString(" ")
	b.WriteString(p.value)
	if p.severity != "" {
		b.WriteString(":")
		b.WriteString(p.severity)
	}
	if p.comment != "" {
		b.WriteString(" ")
		b.WriteString(p.comment)
	}
	return b.String()
}

// Align normalizes spacing around property separators and pads keywords
// according to policy. Trailing whitespace is trimmed from every line.
// Lines holding unrecognized text are only trimmed.
func Align(text string, policy Policy) string {
	t := splitLines(text)
	for i := range t.lines {
		t.lines[i].text = strings.TrimRightFunc(t.lines[i].text, unicode.IsSpace)
	}

	// Group lines by alignment scope: the root block and each section.
	groups := [][]int{nil}
	for i, l := range t.lines {
		if l.kind == lineSection && policy == PolicySection {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], i)
	}

	for _, group := range groups {
		parts := make(map[int]alignedProperty)
		width := 0
		for _, i := range group {
			p, ok := splitProperty(t.lines[i])
			if !ok {
				continue
			}
			parts[i] = p
			if n := utf8.RuneCountInString(p.keyword); n > width {
				width = n
			}
		}
		if policy == PolicyNone {
			width = 0
		}
		for i, p := range parts {
			t.lines[i].text = p.render(width)
		}
	}
	return t.String()
}

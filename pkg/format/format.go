// Package format provides editing transforms for .editorconfig text.
//
// Every transform is a pure function: it takes text (or a validated
// snapshot) and returns new text, which callers feed back to the parser.
// Line terminators are preserved.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSection is returned when a section index is out of range.
var ErrNoSection = errors.New("no such section")

// isStyleRule reports whether keyword is a csharp_ or dotnet_ rule, which
// sort after plain properties.
func isStyleRule(keyword string) bool {
	lower := strings.ToLower(keyword)
	return strings.HasPrefix(lower, "csharp_") || strings.HasPrefix(lower, "dotnet_")
}

// SortSection sorts the properties of the section at index. Blank lines
// split a section into blocks and comment lines start sub-groups; only
// property lines within a sub-group move.
func SortSection(text string, index int) (string, error) {
	t := splitLines(text)
	sections := t.sections()
	if index < 0 || index >= len(sections) {
		return text, fmt.Errorf("%w: %d", ErrNoSection, index)
	}
	sortRange(t.lines[sections[index].start:sections[index].end])
	return t.String(), nil
}

// SortAll sorts the properties of every section. Root-level properties
// keep their order.
func SortAll(text string) string {
	t := splitLines(text)
	for _, s := range t.sections() {
		sortRange(t.lines[s.start:s.end])
	}
	return t.String()
}

// sortRange sorts each run of consecutive property lines in place.
func sortRange(lines []textLine) {
	start := -1
	for i := 0; i <= len(lines); i++ {
		if i < len(lines) && lines[i].kind == lineProperty {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			sortProperties(lines[start:i])
			start = -1
		}
	}
}

func sortProperties(lines []textLine) {
	less := func(a, b textLine) bool {
		sa, sb := isStyleRule(a.prop.Name()), isStyleRule(b.prop.Name())
		if sa != sb {
			return !sa
		}
		ta, tb := strings.ToLower(strings.TrimSpace(a.text)), strings.ToLower(strings.TrimSpace(b.text))
		if ta != tb {
			return ta < tb
		}
		return strings.TrimSpace(a.text) < strings.TrimSpace(b.text)
	}

	// Insertion sort keeps equal lines in place.
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0 && less(lines[j], lines[j-1]); j-- {
			lines[j], lines[j-1] = lines[j-1], lines[j]
		}
	}
}

package format

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/schema"
)

// fallbackSeverity is written for severity-requiring keywords that
// declare no default severity.
const fallbackSeverity = "silent"

// sectionHeaders maps a category to the section its missing rules go in.
var sectionHeaders = map[schema.Category]string{
	schema.CategoryStandard:    "[*]",
	schema.CategoryIDE:         "[*]",
	schema.CategoryDotNet:      "[*.{cs,vb}]",
	schema.CategoryCSharp:      "[*.cs]",
	schema.CategoryVisualBasic: "[*.vb]",
	schema.CategoryCPP:         "[*.{cpp,h}]",
}

// categoryOrder fixes the order new sections are appended in.
var categoryOrder = []schema.Category{
	schema.CategoryStandard, schema.CategoryIDE, schema.CategoryDotNet, schema.CategoryCSharp, schema.CategoryVisualBasic, schema.CategoryCPP,
}

// skipMissing lists keywords never added automatically.
var skipMissing = map[string]bool{
	"root":            true,
	"max_line_length": true,
}

// MissingRule renders the property line added for kw, or "" when the
// keyword has no usable default.
func MissingRule(kw schema.Keyword) string {
	value := kw.DefaultValue()
	if value == "" {
		for _, v := range kw.Values {
			if v != schema.PlaceholderInteger && v != schema.PlaceholderText {
				value = v
				break
			}
		}
	}
	if value == "" {
		return ""
	}

	line := kw.Name + " = " + value
	if kw.RequiresSeverity {
		sev := kw.DefaultSeverity
		if sev == "" {
			sev = fallbackSeverity
		}
		line += ":" + sev
	}
	return line
}

// MissingKeywords returns the catalog keywords not declared anywhere in
// snap, grouped by category. Families, hidden and unsupported keywords
// are left out. When only is non-empty, other categories are skipped.
func MissingKeywords(snap *document.Snapshot, catalog *schema.Catalog, only ...schema.Category) map[schema.Category][]schema.Keyword {
	declared := make(map[string]bool)
	for _, p := range snap.AllProperties() {
		declared[strings.ToLower(p.Name())] = true
	}

	out := make(map[schema.Category][]schema.Keyword)
	for _, kw := range catalog.VisibleKeywords() {
		name := strings.ToLower(kw.Name)
		switch {
		case kw.IsFamily(), !kw.IsSupported, skipMissing[name], declared[name]:
			continue
		case len(only) > 0 && !slices.Contains(only, kw.Category):
			continue
		case MissingRule(kw) == "":
			continue
		}
		out[kw.Category] = append(out[kw.Category], kw)
	}
	return out
}

// AddMissingRules appends a default declaration for every keyword the
// document does not declare. Rules go at the end of the last section
// whose header matches their category; a new section is appended when
// none exists.
func AddMissingRules(snap *document.Snapshot, catalog *schema.Catalog, only ...schema.Category) string {
	missing := MissingKeywords(snap, catalog, only...)
	if len(missing) == 0 {
		return snap.Text
	}

	// Categories sharing a header share one block.
	blocks := make(map[string][]string)
	var headers []string
	for _, cat := range categoryOrder {
		header := sectionHeaders[cat]
		for _, kw := range missing[cat] {
			if _, ok := blocks[header]; !ok {
				headers = append(headers, header)
			}
			blocks[header] = append(blocks[header], MissingRule(kw))
		}
	}

	t := splitLines(snap.Text)
	type insertion struct {
		at    int
		lines []string
	}
	var inserts []insertion
	var appended []string
	for _, header := range headers {
		at := -1
		for _, s := range t.sections() {
			if strings.EqualFold(t.lines[s.header].header(), header) {
				at = lastContentLine(t.lines, s) + 1
			}
		}
		if at < 0 {
			appended = append(appended, header)
			continue
		}
		inserts = append(inserts, insertion{at: at, lines: blocks[header]})
	}

	slices.SortStableFunc(inserts, func(a, b insertion) int { return b.at - a.at })
	for _, ins := range inserts {
		t.lines = slices.Insert(t.lines, ins.at, toTextLines(ins.lines)...)
	}

	for _, header := range appended {
		if n := len(t.lines); n > 0 && t.lines[n-1].kind != lineBlank {
			t.lines = append(t.lines, classify(""))
		}
		t.lines = append(t.lines, classify(header))
		t.lines = append(t.lines, toTextLines(blocks[header])...)
	}
	t.trailing = true
	return t.String()
}

// lastContentLine returns the index of the last non-blank line of s,
// which is the header itself for an empty section.
func lastContentLine(lines []textLine, s sectionRange) int {
	last := s.header
	for i := s.start; i < s.end; i++ {
		if lines[i].kind != lineBlank {
			last = i
		}
	}
	return last
}

func toTextLines(texts []string) []textLine {
	out := make([]textLine, len(texts))
	for i, text := range texts {
		out[i] = classify(text)
	}
	return out
}

package validate

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/leapstack-labs/ecl/pkg/parser"
	"github.com/leapstack-labs/ecl/pkg/schema"
)

func checkProperties(r *run) {
	for _, p := range r.snap.AllProperties() {
		if r.ignored(p) {
			continue
		}
		checkProperty(r, p)
	}
}

func checkProperty(r *run, p *core.Property) {
	if p.Value == nil {
		r.report(p.Keyword, lint.MissingValue, p.Name())
	}

	kw, ok := r.v.catalog.TryGetKeyword(p.Name())
	if !ok {
		r.report(p.Keyword, lint.UnknownKeyword, p.Name())
		return
	}
	if !kw.IsSupported {
		r.report(p.Keyword, lint.UnsupportedKeyword, p.Name())
	}

	checkSeverity(r, p, kw)
}

// checkSeverity validates the value and the severity suffix together,
// since an unrecognized suffix is folded into the value by the parser.
func checkSeverity(r *run, p *core.Property, kw schema.Keyword) {
	if p.Severity != nil {
		if !kw.RequiresSeverity {
			r.report(p.Severity, lint.SeverityNotApplicable, p.Name())
		} else if _, ok := r.v.catalog.TryGetSeverity(p.Severity.Text); !ok {
			r.report(p.Severity, lint.UnknownSeverity, p.Severity.Text)
		}
	}

	if p.Value == nil {
		return
	}
	value := p.Value.Text

	if kw.RequiresSeverity && p.Severity == nil {
		if tail, ok := severityTail(value); ok && !kw.IsValidValue(value) {
			r.report(p.Value, lint.UnknownSeverity, tail)
			return
		}
		r.report(p.Keyword, lint.MissingSeverity, p.Name())
	}

	if invalid := kw.InvalidValues(value); len(invalid) > 0 {
		r.report(p.Value, lint.UnknownValue, invalid[0], p.Name())
	}
}

// severityTail returns the text after the last colon of value when it
// looks like a misspelled severity.
func severityTail(value string) (string, bool) {
	colon := strings.LastIndexByte(value, ':')
	if colon < 0 || colon == len(value)-1 {
		return "", false
	}
	tail := strings.TrimSpace(value[colon+1:])
	if tail == "" || strings.ContainsAny(tail, `\/ `) || parser.IsSeverityName(tail) {
		return "", false
	}
	return tail, true
}

// checkIndentation flags indentation properties made redundant by their
// neighbours in the same section.
func checkIndentation(r *run) {
	for _, section := range r.snap.Sections {
		style := section.Find("indent_style")
		size := section.Find("indent_size")
		width := section.Find("tab_width")

		if size != nil && style != nil && strings.EqualFold(style.ValueText(), "tab") && !r.ignored(size) {
			r.report(size.Keyword, lint.IndentSizeUnneeded)
		}
		if width != nil && size != nil && width.ValueText() != "" &&
			strings.EqualFold(width.ValueText(), size.ValueText()) {
			r.report(width.Keyword, lint.TabWidthUnneeded)
		}
	}
}

// checkParentDuplicates flags properties that repeat, with the same value,
// a declaration in the same section of an ancestor document.
func checkParentDuplicates(r *run) {
	if !r.enabled(lint.ParentDuplicateProperty) || r.snap.IsRoot() {
		return
	}

	chain := r.doc.Chain()
	if len(chain) < 2 {
		return
	}

	for _, section := range r.snap.Sections {
		if section.Item == nil {
			continue
		}
		for _, p := range section.Properties {
			if r.ignored(p) || p.Value == nil {
				continue
			}
			if owner := findInAncestors(chain[1:], section.Item.Text, p); owner != nil {
				r.report(p.Keyword, lint.ParentDuplicateProperty, p.Name(), owner.Path())
			}
		}
	}
}

func findInAncestors(ancestors []*document.Document, header string, p *core.Property) *document.Document {
	for _, ancestor := range ancestors {
		for _, section := range ancestor.Snapshot().Sections {
			if section.Item == nil || section.Item.Text != header {
				continue
			}
			other := section.Find(p.Name())
			if other == nil {
				continue
			}
			if strings.EqualFold(other.ValueText(), p.ValueText()) &&
				strings.EqualFold(other.SeverityText(), p.SeverityText()) {
				return ancestor
			}
			// The nearest declaration wins; farther ones are shadowed.
			return nil
		}
	}
	return nil
}

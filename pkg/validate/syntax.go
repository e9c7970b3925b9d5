package validate

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/glob"
	"github.com/leapstack-labs/ecl/pkg/lint"
)

func checkUnknownElements(r *run) {
	for _, item := range r.snap.Items {
		if item.Kind == core.ItemUnknown {
			r.report(item, lint.UnknownElement, item.Text)
		}
	}
}

// checkRoot flags root properties that are not the document's first
// meaningful item.
func checkRoot(r *run) {
	valid := r.snap.RootProperty()
	for _, p := range r.snap.AllProperties() {
		if p.Is("root") && p != valid {
			r.report(p.Keyword, lint.RootInSection)
		}
	}
}

// SectionPattern returns the glob of a section header and a reason when
// the header is malformed.
func SectionPattern(header string) (pattern string, reason string) {
	if !strings.HasPrefix(header, "[") {
		return "", "missing opening bracket"
	}
	if !strings.HasSuffix(header, "]") || len(header) < 2 {
		return "", "missing closing bracket"
	}
	pattern = header[1 : len(header)-1]
	if strings.TrimSpace(pattern) == "" {
		return "", "empty pattern"
	}
	if _, err := glob.Compile(pattern); err != nil {
		var syntaxErr *glob.SyntaxError
		if errors.As(err, &syntaxErr) {
			return "", syntaxErr.Reason
		}
		return "", err.Error()
	}
	return pattern, ""
}

func checkSections(r *run) {
	for _, section := range r.snap.Sections {
		if section.Item == nil {
			continue
		}
		header := section.Item.Text
		if _, reason := SectionPattern(header); reason != "" {
			r.report(section.Item, lint.SectionSyntaxError, header, reason)
		}
		if strings.Contains(header, " ") {
			r.report(section.Item, lint.SpaceInSection, header)
		}
	}
}

// checkDuplicateSections flags repeated headers; the first stays clean.
func checkDuplicateSections(r *run) {
	seen := make(map[string]bool, len(r.snap.Sections))
	for _, section := range r.snap.Sections {
		if section.Item == nil {
			continue
		}
		header := section.Item.Text
		if seen[header] {
			r.report(section.Item, lint.DuplicateSection, header)
			continue
		}
		seen[header] = true
	}
}

// checkDuplicateProperties flags every occurrence of a keyword except the
// last one in the same section, since later declarations win.
func checkDuplicateProperties(r *run) {
	groups := [][]*core.Property{r.snap.Properties}
	for _, section := range r.snap.Sections {
		groups = append(groups, section.Properties)
	}

	for _, props := range groups {
		last := make(map[string]*core.Property, len(props))
		for _, p := range props {
			last[strings.ToLower(p.Name())] = p
		}
		for _, p := range props {
			if r.ignored(p) {
				continue
			}
			if last[strings.ToLower(p.Name())] != p {
				r.report(p.Keyword, lint.DuplicateProperty, p.Name())
			}
		}
	}
}

package document

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/glob"
)

// Resolved is the effective value of one property for a file.
type Resolved struct {
	Name     string
	Value    string
	Severity string
	Source   *Document // document that declared the winning value
	Section  string    // header of the declaring section
	Property *core.Property
}

// FindFor returns the .editorconfig that governs file: the one in the
// file's own directory or, failing that, the nearest ancestor.
func FindFor(file string) (string, bool) {
	dir := filepath.Dir(file)
	candidate := filepath.Join(dir, FileName)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	return FindParentFile(dir)
}

// Resolve computes the properties that apply to file, which must lie in
// or below the document's directory. Ancestors apply first and later
// sections override earlier ones. Names are lower-cased and the result
// keeps first-declaration order.
func (d *Document) Resolve(file string) []Resolved {
	chain := d.Chain()

	var order []string
	byName := make(map[string]Resolved)
	for i := len(chain) - 1; i >= 0; i-- {
		doc := chain[i]
		rel, ok := relativeTo(doc.Dir(), file)
		if !ok {
			continue
		}
		for _, section := range doc.Snapshot().Sections {
			m, ok := glob.TryCreateMatcher(section.Header())
			if !ok || !m.IsMatch(rel) {
				continue
			}
			for _, p := range section.Properties {
				if p.Value == nil {
					continue
				}
				name := strings.ToLower(p.Name())
				if _, seen := byName[name]; !seen {
					order = append(order, name)
				}
				byName[name] = Resolved{
					Name:     name,
					Value:    p.ValueText(),
					Severity: p.SeverityText(),
					Source:   doc,
					Section:  section.Item.Text,
					Property: p,
				}
			}
		}
	}

	out := make([]Resolved, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

// relativeTo returns file as a "/"-rooted slash path below dir.
func relativeTo(dir, file string) (string, bool) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}

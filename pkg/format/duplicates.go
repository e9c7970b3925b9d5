package format

import (
	"slices"

	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/lint"
)

// RemoveDuplicates deletes every property line flagged as a duplicate
// property or a duplicate of a parent declaration. The snapshot must have
// been validated.
func RemoveDuplicates(snap *document.Snapshot) string {
	t := splitLines(snap.Text)

	var doomed []int
	for _, p := range snap.AllProperties() {
		if p.Keyword.HasError(lint.DuplicateProperty.Code) || p.Keyword.HasError(lint.ParentDuplicateProperty.Code) {
			doomed = append(doomed, snap.Position(p.Keyword.Span.Start).Line-1)
		}
	}
	if len(doomed) == 0 {
		return snap.Text
	}

	slices.Sort(doomed)
	doomed = slices.Compact(doomed)
	for i := len(doomed) - 1; i >= 0; i-- {
		line := doomed[i]
		if line >= 0 && line < len(t.lines) {
			t.lines = slices.Delete(t.lines, line, line+1)
		}
	}
	if len(t.lines) == 0 {
		return ""
	}
	return t.String()
}

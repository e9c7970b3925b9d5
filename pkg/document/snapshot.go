package document

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/parser"
	"github.com/leapstack-labs/ecl/pkg/token"
)

// Snapshot is one immutable parse of a document's text. Readers keep
// using a snapshot while a newer parse is in flight; only item errors
// change after publication, and only through validation.
type Snapshot struct {
	Text         string
	Generation   uint64
	Items        []*core.ParseItem
	Sections     []*core.Section
	Properties   []*core.Property // root-level properties
	Suppressions map[string]bool

	lines *token.LineIndex
}

func newSnapshot(text string, gen uint64) *Snapshot {
	res := parser.Parse(text)
	return &Snapshot{
		Text:         text,
		Generation:   gen,
		Items:        res.Items,
		Sections:     res.Sections,
		Properties:   res.Properties,
		Suppressions: res.Suppressions,
		lines:        token.NewLineIndex(text),
	}
}

// Position converts a byte offset to a 1-based line and column.
func (s *Snapshot) Position(offset int) token.Position {
	return s.lines.Position(offset)
}

// Lines returns the line index of the snapshot text.
func (s *Snapshot) Lines() *token.LineIndex {
	return s.lines
}

// IsSuppressed reports whether code is listed in a suppression comment.
func (s *Snapshot) IsSuppressed(code string) bool {
	return s.Suppressions[strings.ToUpper(code)]
}

// RootProperty returns the root property if it is the first meaningful
// item of the document, or nil.
func (s *Snapshot) RootProperty() *core.Property {
	if len(s.Properties) == 0 || !s.Properties[0].Is("root") {
		return nil
	}
	first := s.FirstMeaningfulItem()
	if first == nil || first != s.Properties[0].Keyword {
		return nil
	}
	return s.Properties[0]
}

// IsRoot reports whether the document declares root = true without a
// severity, which stops inheritance.
func (s *Snapshot) IsRoot() bool {
	root := s.RootProperty()
	return root != nil && root.Severity == nil && strings.EqualFold(root.ValueText(), "true")
}

// FirstMeaningfulItem returns the first item that is not a comment or
// suppression.
func (s *Snapshot) FirstMeaningfulItem() *core.ParseItem {
	for _, item := range s.Items {
		if item.Kind != core.ItemComment && item.Kind != core.ItemSuppression {
			return item
		}
	}
	return nil
}

// AllProperties returns root-level properties followed by section
// properties in document order.
func (s *Snapshot) AllProperties() []*core.Property {
	out := make([]*core.Property, 0, len(s.Properties))
	out = append(out, s.Properties...)
	for _, section := range s.Sections {
		out = append(out, section.Properties...)
	}
	return out
}

// Errors returns every error attached to the snapshot's items, in item order.
func (s *Snapshot) Errors() []core.DisplayError {
	var out []core.DisplayError
	for _, item := range s.Items {
		out = append(out, item.Errors...)
	}
	return out
}

// ItemAt returns the item whose span contains offset, or nil.
func (s *Snapshot) ItemAt(offset int) *core.ParseItem {
	for _, item := range s.Items {
		if item.Span.Contains(offset) {
			return item
		}
	}
	return nil
}

// SectionAt returns the section enclosing offset, or nil when offset is
// before the first section header.
func (s *Snapshot) SectionAt(offset int) *core.Section {
	var found *core.Section
	for _, section := range s.Sections {
		if section.Item == nil || section.Item.Span.Start > offset {
			break
		}
		found = section
	}
	return found
}

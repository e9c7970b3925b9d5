// Package token defines source positions and spans for .editorconfig text.
package token

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span is a half-open byte range [Start, Start+Length) in the source text.
type Span struct {
	Start  int
	Length int
}

// NewSpan creates a span from start and end offsets.
func NewSpan(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, Length: end - start}
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Length <= 0
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	start := min(s.Start, other.Start)
	end := max(s.End(), other.End())
	return NewSpan(start, end)
}

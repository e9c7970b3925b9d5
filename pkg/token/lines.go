package token

import "sort"

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	text  string
	lines []int // byte offsets of line starts
}

// NewLineIndex builds a line index for text.
func NewLineIndex(text string) *LineIndex {
	return &LineIndex{text: text, lines: computeLineOffsets(text)}
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// LineCount returns the number of lines in the text.
func (l *LineIndex) LineCount() int {
	return len(l.lines)
}

// Position converts a byte offset to a 1-based Position.
func (l *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.text) {
		offset = len(l.text)
	}

	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}

	return Position{
		Line:   line + 1,
		Column: offset - l.lines[line] + 1,
		Offset: offset,
	}
}

// LineStart returns the byte offset at which the given 1-based line starts.
func (l *LineIndex) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(l.lines) {
		return len(l.text)
	}
	return l.lines[line-1]
}

// LineEnd returns the byte offset just past the given 1-based line,
// including its line terminator.
func (l *LineIndex) LineEnd(line int) int {
	if line < 1 {
		return 0
	}
	if line >= len(l.lines) {
		return len(l.text)
	}
	return l.lines[line]
}

// Line returns the content of a 1-based line without its terminator.
func (l *LineIndex) Line(line int) string {
	if line < 1 || line > len(l.lines) {
		return ""
	}

	start := l.lines[line-1]
	end := len(l.text)
	if line < len(l.lines) {
		end = l.lines[line] - 1 // Exclude newline
	}
	if end > start && l.text[end-1] == '\r' {
		end--
	}
	if end < start {
		end = start
	}

	return l.text[start:end]
}

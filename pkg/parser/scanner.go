package parser

import (
	"strings"
	"unicode"
)

// lineScanner walks a single line. Offsets are relative to the line;
// base converts them to offsets in the full text.
type lineScanner struct {
	line string
	base int
	pos  int
}

func newLineScanner(line string, base int) *lineScanner {
	return &lineScanner{line: line, base: base}
}

func (s *lineScanner) eof() bool {
	return s.pos >= len(s.line)
}

func (s *lineScanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.line[s.pos]
}

func (s *lineScanner) advance() {
	if !s.eof() {
		s.pos++
	}
}

func (s *lineScanner) rest() string {
	return s.line[s.pos:]
}

func (s *lineScanner) offset(pos int) int {
	return s.base + pos
}

func (s *lineScanner) skipSpace() {
	for !s.eof() && isSpace(s.line[s.pos]) {
		s.pos++
	}
}

// skipUntil advances to the first byte for which stop returns true.
func (s *lineScanner) skipUntil(stop func(byte) bool) {
	for !s.eof() && !stop(s.line[s.pos]) {
		s.pos++
	}
}

// consumeFold consumes word if the line continues with it, ignoring case.
func (s *lineScanner) consumeFold(word string) bool {
	if len(s.rest()) < len(word) || !strings.EqualFold(s.line[s.pos:s.pos+len(word)], word) {
		return false
	}
	s.pos += len(word)
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == '\r'
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}

func isCommentStart(c byte) bool {
	return c == '#' || c == ';'
}

// isKeywordStop reports bytes that end a keyword.
func isKeywordStop(c byte) bool {
	return isSpace(c) || c == ';' || c == '[' || c == '#' || c == ':' || c == '='
}

// Package parser turns .editorconfig text into parse items and a
// section/property tree.
//
// # Usage
//
//	res := parser.Parse(text)
//	for _, section := range res.Sections {
//	    fmt.Println(section.Item.Text, len(section.Properties))
//	}
//
// # Line Grammar
//
// Each line is classified independently, in priority order:
//
//	suppression → ws* "#" ws* "suppress" ws* [":"] ws* code (ws+ code)*
//	comment     → ws* ("#" | ";") text
//	section     → ws* "[" text ["]"] [comment]
//	property    → ws* keyword [ws* ("=" | ":") ws* value [":" severity]] [comment]
//
// Text a line scanner does not consume becomes an Unknown item. Parsing
// never fails; malformed input yields a best-effort item stream.
package parser

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/lint"
)

// Result is the output of a full parse.
type Result struct {
	Items        []*core.ParseItem
	Sections     []*core.Section
	Properties   []*core.Property // root-level properties declared before any section
	Suppressions map[string]bool  // upper-cased error codes
}

// IsSuppressed reports whether code was listed in a suppression comment.
func (r *Result) IsSuppressed(code string) bool {
	return r.Suppressions[strings.ToUpper(code)]
}

// severityNames is the severity vocabulary recognized after a value colon.
var severityNames = map[string]bool{
	"none":        true,
	"silent":      true,
	"suggestion":  true,
	"warning":     true,
	"error":       true,
	"default":     true,
	"refactoring": true,
}

// IsSeverityName reports whether s is a recognized severity name, ignoring case.
func IsSeverityName(s string) bool {
	return severityNames[strings.ToLower(s)]
}

// Parser holds the state of one parse.
type Parser struct {
	text    string
	result  *Result
	section *core.Section // currently open section
}

// Parse parses text into a new Result.
func Parse(text string) *Result {
	p := &Parser{
		text: text,
		result: &Result{
			Suppressions: make(map[string]bool),
		},
	}
	p.run()
	return p.result
}

func (p *Parser) run() {
	start := 0
	for start <= len(p.text) {
		end := strings.IndexByte(p.text[start:], '\n')
		next := 0
		if end < 0 {
			end = len(p.text)
			next = end + 1
		} else {
			end += start
			next = end + 1
		}

		line := p.text[start:end]
		line = strings.TrimSuffix(line, "\r")
		p.parseLine(newLineScanner(line, start))

		start = next
	}
}

func (p *Parser) parseLine(s *lineScanner) {
	s.skipSpace()
	if s.eof() {
		return
	}

	switch {
	case s.peek() == '#' && p.parseSuppression(s):
	case s.peek() == '#' || s.peek() == ';':
		p.parseComment(s)
	case s.peek() == '[':
		p.parseSection(s)
	default:
		p.parseProperty(s)
	}
}

// add appends an item unless it is empty.
func (p *Parser) add(kind core.ItemKind, start int, text string) *core.ParseItem {
	if text == "" {
		return nil
	}
	item := core.NewParseItem(kind, start, text)
	p.result.Items = append(p.result.Items, item)
	return item
}

// parseSuppression handles "# suppress: CODE1 CODE2". Returns false when
// the line is an ordinary comment.
func (p *Parser) parseSuppression(s *lineScanner) bool {
	mark := s.pos
	s.advance() // '#'
	s.skipSpace()
	if !s.consumeFold("suppress") {
		s.pos = mark
		return false
	}
	if !s.eof() && !isSpace(s.peek()) && s.peek() != ':' {
		s.pos = mark
		return false
	}

	end := s.pos
	s.skipSpace()
	if !s.eof() && s.peek() == ':' {
		s.advance()
		end = s.pos
	}
	p.add(core.ItemComment, s.offset(mark), s.line[mark:end])

	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		codeStart := s.pos
		s.skipUntil(isSpace)
		code := s.line[codeStart:s.pos]
		p.add(core.ItemSuppression, s.offset(codeStart), code)
		if lint.IsKnownCode(code) {
			p.result.Suppressions[strings.ToUpper(code)] = true
		}
	}
	return true
}

func (p *Parser) parseComment(s *lineScanner) {
	start := s.pos
	text := strings.TrimRightFunc(s.rest(), isSpaceRune)
	p.add(core.ItemComment, s.offset(start), text)
	s.pos = len(s.line)
}

// headerEnd returns the index of the ']' closing a section header: the
// first one followed only by blanks or a comment, else the last one.
func headerEnd(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ']' {
			continue
		}
		tail := strings.TrimLeftFunc(line[i+1:], isSpaceRune)
		if tail == "" || tail[0] == '#' || tail[0] == ';' {
			return i
		}
	}
	return strings.LastIndexByte(line, ']')
}

func (p *Parser) parseSection(s *lineScanner) {
	start := s.pos
	rest := strings.TrimRightFunc(s.rest(), isSpaceRune)

	header := rest
	if close := headerEnd(rest); close >= 0 {
		header = rest[:close+1]
	}
	item := p.add(core.ItemSection, s.offset(start), header)
	s.pos = start + len(header)

	p.section = &core.Section{Item: item}
	p.result.Sections = append(p.result.Sections, p.section)

	p.parseTrailing(s)
}

func (p *Parser) parseProperty(s *lineScanner) {
	keyStart := s.pos
	s.skipUntil(isKeywordStop)
	if s.pos == keyStart {
		p.parseTrailing(s)
		return
	}

	prop := &core.Property{
		Keyword: p.add(core.ItemKeyword, s.offset(keyStart), s.line[keyStart:s.pos]),
	}
	if p.section != nil {
		p.section.Properties = append(p.section.Properties, prop)
	} else {
		p.result.Properties = append(p.result.Properties, prop)
	}

	s.skipSpace()
	if s.eof() || isCommentStart(s.peek()) {
		p.parseTrailing(s)
		return
	}
	if s.peek() != '=' && s.peek() != ':' {
		p.parseTrailing(s)
		return
	}
	s.advance()
	s.skipSpace()

	valueStart := s.pos
	s.skipUntil(isCommentStart)
	raw := strings.TrimRightFunc(s.line[valueStart:s.pos], isSpaceRune)
	s.pos = valueStart + len(raw)
	if raw == "" {
		p.parseTrailing(s)
		return
	}

	value, sevStart, severity, leftover := splitSeverity(raw)
	prop.Value = p.add(core.ItemValue, s.offset(valueStart), value)
	if severity != "" {
		prop.Severity = p.add(core.ItemSeverity, s.offset(valueStart+sevStart), severity)
	}
	if leftover != "" {
		s.pos = valueStart + strings.LastIndex(raw, leftover)
	}

	p.parseTrailing(s)
}

// splitSeverity separates a trailing ":severity" from raw when the token after
// the last colon is a known severity name. Otherwise raw is returned whole, so
// values such as C:\path\file.cs keep their colons. leftover is any text after
// the severity token that the caller must report as unknown.
func splitSeverity(raw string) (value string, sevStart int, severity string, leftover string) {
	colon := strings.LastIndexByte(raw, ':')
	if colon < 0 {
		return raw, 0, "", ""
	}

	tail := raw[colon+1:]
	trimmed := strings.TrimLeftFunc(tail, isSpaceRune)
	tokenEnd := strings.IndexFunc(trimmed, isSpaceRune)
	if tokenEnd < 0 {
		tokenEnd = len(trimmed)
	}
	tok := trimmed[:tokenEnd]
	if tok == "" || !IsSeverityName(tok) {
		return raw, 0, "", ""
	}

	value = strings.TrimRightFunc(raw[:colon], isSpaceRune)
	if value == "" {
		return raw, 0, "", ""
	}
	sevStart = colon + 1 + (len(tail) - len(trimmed))
	leftover = strings.TrimSpace(trimmed[tokenEnd:])
	return value, sevStart, tok, leftover
}

// parseTrailing handles whatever follows the matched part of a line: an
// end-of-line comment or unknown text.
func (p *Parser) parseTrailing(s *lineScanner) {
	s.skipSpace()
	if s.eof() {
		return
	}
	start := s.pos
	text := strings.TrimRightFunc(s.rest(), isSpaceRune)
	if isCommentStart(s.peek()) {
		p.add(core.ItemComment, s.offset(start), text)
	} else {
		p.add(core.ItemUnknown, s.offset(start), text)
	}
	s.pos = len(s.line)
}

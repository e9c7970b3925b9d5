// Package glob matches file paths against .editorconfig section patterns.
//
// Supported syntax:
//
//	*          any run of characters except '/'
//	**         any run of characters including '/'
//	?          one character except '/'
//	[abc]      one listed character, ranges allowed ([a-z])
//	[!abc]     one character not listed
//	{a,b}      any alternative; alternatives may contain globs
//	{n..m}     an integer between n and m inclusive
//	\c         the literal character c
//
// A pattern starting with '/' is anchored at the root of the evaluated path.
// Any other pattern matches after a directory boundary, so "*.cs" matches
// "/any/depth/file.cs". Matching is case-sensitive and never touches the
// filesystem.
package glob

import (
	"regexp"
	"strconv"
	"strings"
)

// Matcher is a compiled section pattern.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// TryCreateMatcher compiles pattern. It returns false for malformed
// patterns such as an unterminated '[' or '{'.
func TryCreateMatcher(pattern string) (*Matcher, bool) {
	m, err := Compile(pattern)
	if err != nil {
		return nil, false
	}
	return m, true
}

// Compile compiles pattern or reports why it is malformed.
func Compile(pattern string) (*Matcher, error) {
	if pattern == "" {
		return nil, &SyntaxError{Pattern: pattern, Reason: "empty pattern"}
	}

	c := &compiler{pattern: pattern}
	var b strings.Builder
	body := pattern
	if strings.HasPrefix(pattern, "/") {
		b.WriteString("^")
	} else {
		b.WriteString("(?:^|.*/)")
	}

	expr, err := c.translate(body)
	if err != nil {
		return nil, err
	}
	b.WriteString(expr)
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Reason: err.Error()}
	}
	return &Matcher{pattern: pattern, re: re}, nil
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// IsMatch reports whether path matches. Backslashes are treated as path
// separators.
func (m *Matcher) IsMatch(path string) bool {
	path = strings.ReplaceAll(path, `\`, "/")
	return m.re.MatchString(path)
}

// MatchAny reports whether any of the matchers matches path.
func MatchAny(matchers []*Matcher, path string) bool {
	for _, m := range matchers {
		if m != nil && m.IsMatch(path) {
			return true
		}
	}
	return false
}

// SyntaxError describes a malformed pattern.
type SyntaxError struct {
	Pattern string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return "invalid glob " + strconv.Quote(e.Pattern) + ": " + e.Reason
}

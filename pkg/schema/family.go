package schema

import (
	"regexp"
	"strings"
)

// family recognizes keyword names of a declared shape such as
// dotnet_naming_rule.<name>.severity.
type family struct {
	re      *regexp.Regexp
	keyword Keyword
}

// isFamilyPattern reports whether name declares placeholder segments.
func isFamilyPattern(name string) bool {
	open := strings.IndexByte(name, '<')
	return open >= 0 && strings.IndexByte(name[open:], '>') > 0
}

// compileFamily turns a pattern into a case-insensitive recognizer. A
// placeholder matches one or more characters other than '.'.
func compileFamily(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`(?i)^`)

	rest := pattern
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		end := strings.IndexByte(rest[open:], '>')
		if end < 0 {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		b.WriteString(regexp.QuoteMeta(rest[:open]))
		b.WriteString(`[^.\s]+`)
		rest = rest[open+end+1:]
	}

	b.WriteString(`$`)
	return regexp.Compile(b.String())
}

func (f *family) match(name string) (Keyword, bool) {
	if !f.re.MatchString(name) {
		return Keyword{}, false
	}
	kw := f.keyword
	kw.Name = name
	return kw, true
}

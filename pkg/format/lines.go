package format

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/parser"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineSection
	lineProperty
	lineOther
)

// textLine is one line of a document, classified on its own. Lines parse
// independently, so this agrees with a full parse.
type textLine struct {
	text  string
	kind  lineKind
	items []*core.ParseItem
	prop  *core.Property
	clean bool // no unknown text
}

func classify(text string) textLine {
	res := parser.Parse(text)
	l := textLine{text: text, items: res.Items, clean: true}
	for _, item := range res.Items {
		if item.Kind == core.ItemUnknown {
			l.clean = false
		}
	}

	if len(res.Items) == 0 {
		l.kind = lineBlank
		return l
	}
	switch res.Items[0].Kind {
	case core.ItemComment, core.ItemSuppression:
		l.kind = lineComment
	case core.ItemSection:
		l.kind = lineSection
	case core.ItemKeyword:
		l.kind = lineProperty
		l.prop = res.Properties[0]
	default:
		l.kind = lineOther
	}
	return l
}

// header returns the section header of a section line.
func (l textLine) header() string {
	if l.kind != lineSection {
		return ""
	}
	return l.items[0].Text
}

// textLines is a document split into classified lines.
type textLines struct {
	lines    []textLine
	eol      string
	trailing bool // text ends with a line terminator
}

func splitLines(text string) *textLines {
	t := &textLines{eol: "\n"}
	if strings.Contains(text, "\r\n") {
		t.eol = "\r\n"
	}
	if text == "" {
		return t
	}

	t.trailing = strings.HasSuffix(text, "\n")
	body := strings.TrimSuffix(text, "\n")
	for _, raw := range strings.Split(body, "\n") {
		t.lines = append(t.lines, classify(strings.TrimSuffix(raw, "\r")))
	}
	return t
}

func (t *textLines) String() string {
	p := newPrinter(t.eol)
	p.lines(t.lines, t.trailing)
	return p.String()
}

// sectionRange is the half-open line range of a section body.
type sectionRange struct {
	header int // index of the header line
	start  int
	end    int
}

// sections returns the body ranges of every section in order.
func (t *textLines) sections() []sectionRange {
	var out []sectionRange
	for i, l := range t.lines {
		if l.kind != lineSection {
			continue
		}
		if n := len(out); n > 0 {
			out[n-1].end = i
		}
		out = append(out, sectionRange{header: i, start: i + 1, end: len(t.lines)})
	}
	return out
}

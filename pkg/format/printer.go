package format

import "bytes"

// Printer writes lines with a fixed line terminator.
type Printer struct {
	output *bytes.Buffer
	eol    string
}

func newPrinter(eol string) *Printer {
	if eol == "" {
		eol = "\n"
	}
	return &Printer{
		output: &bytes.Buffer{},
		eol:    eol,
	}
}

// String returns the printed text.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) writeln() {
	p.output.WriteString(p.eol)
}

// lines prints ls separated by the terminator, with a final terminator
// when trailing is set.
func (p *Printer) lines(ls []textLine, trailing bool) {
	for i, l := range ls {
		p.write(l.text)
		if i < len(ls)-1 || trailing {
			p.writeln()
		}
	}
}

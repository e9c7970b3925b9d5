package glob

import (
	"regexp"
	"strconv"
	"strings"
)

var numericRange = regexp.MustCompile(`^([+-]?\d+)\.\.([+-]?\d+)$`)

// compiler translates a glob into a regular expression body.
type compiler struct {
	pattern string
}

func (c *compiler) errorf(reason string) error {
	return &SyntaxError{Pattern: c.pattern, Reason: reason}
}

func (c *compiler) translate(glob string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		switch ch {
		case '\\':
			if i+1 < len(glob) {
				i++
				b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
			} else {
				b.WriteString(regexp.QuoteMeta(`\`))
			}

		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}

		case '?':
			b.WriteString("[^/]")

		case '[':
			end := findClassEnd(glob, i)
			if end < 0 {
				return "", c.errorf("unterminated '['")
			}
			b.WriteString(translateClass(glob[i+1 : end]))
			i = end

		case '{':
			end := findBraceEnd(glob, i)
			if end < 0 {
				return "", c.errorf("unterminated '{'")
			}
			expr, err := c.translateBraces(glob[i+1 : end])
			if err != nil {
				return "", err
			}
			b.WriteString(expr)
			i = end

		case '}':
			b.WriteString(`\}`)

		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}

	return b.String(), nil
}

// translateBraces handles the body of {...}.
func (c *compiler) translateBraces(body string) (string, error) {
	if m := numericRange.FindStringSubmatch(body); m != nil {
		lo, err1 := strconv.Atoi(m[1])
		hi, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil ||
			len(strings.TrimLeft(m[1], "+-0")) > maxRangeDigits ||
			len(strings.TrimLeft(m[2], "+-0")) > maxRangeDigits {
			return "", c.errorf("numeric range out of bounds")
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return rangeExpr(lo, hi), nil
	}

	alts := splitAlternatives(body)
	if len(alts) == 1 {
		// A single alternative is literal text.
		return regexp.QuoteMeta("{" + body + "}"), nil
	}

	parts := make([]string, len(alts))
	for i, alt := range alts {
		expr, err := c.translate(alt)
		if err != nil {
			return "", err
		}
		parts[i] = expr
	}
	return "(?:" + strings.Join(parts, "|") + ")", nil
}

// findClassEnd returns the index of the ']' closing the class opened at
// start, or -1. A ']' directly after "[" or "[!" is literal.
func findClassEnd(glob string, start int) int {
	i := start + 1
	if i < len(glob) && glob[i] == '!' {
		i++
	}
	if i < len(glob) && glob[i] == ']' {
		i++
	}
	for ; i < len(glob); i++ {
		switch glob[i] {
		case '\\':
			i++
		case ']':
			return i
		}
	}
	return -1
}

// findBraceEnd returns the index of the '}' matching the '{' at start, or -1.
func findBraceEnd(glob string, start int) int {
	depth := 0
	for i := start; i < len(glob); i++ {
		switch glob[i] {
		case '\\':
			i++
		case '[':
			if end := findClassEnd(glob, i); end >= 0 {
				i = end
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitAlternatives splits a brace body on top-level commas.
func splitAlternatives(body string) []string {
	var alts []string
	depth, last := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				alts = append(alts, body[last:i])
				last = i + 1
			}
		}
	}
	return append(alts, body[last:])
}

// translateClass converts the inside of [...] to a regexp class.
func translateClass(body string) string {
	var b strings.Builder
	b.WriteByte('[')
	negated := strings.HasPrefix(body, "!")
	if negated {
		b.WriteByte('^')
		body = body[1:]
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch ch {
		case '\\':
			if i+1 < len(body) {
				i++
				writeClassLiteral(&b, body[i])
			} else {
				b.WriteString(`\\`)
			}
		case '[', ']', '^':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '-':
			if i == len(body)-1 {
				b.WriteByte('\\')
			}
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	if negated {
		b.WriteByte('/')
	}
	b.WriteByte(']')
	return b.String()
}

func writeClassLiteral(b *strings.Builder, ch byte) {
	if ch < 0x80 && !isAlnum(ch) {
		b.WriteByte('\\')
	}
	b.WriteByte(ch)
}

func isAlnum(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

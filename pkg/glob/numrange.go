package glob

import (
	"strconv"
	"strings"
)

// maxRangeDigits bounds range endpoints so powers of ten fit in an int.
const maxRangeDigits = 18

// rangeExpr returns a regexp body matching the decimal literals that parse
// to an integer in [lo, hi]: an optional sign and leading zeros are
// accepted, as strconv.Atoi accepts them. lo must not exceed hi.
func rangeExpr(lo, hi int) string {
	var alts []string
	if lo <= 0 && hi >= 0 {
		alts = append(alts, `[+-]?0+`)
	}
	if hi >= 1 {
		alts = append(alts, `\+?0*(?:`+strings.Join(positiveRange(max(lo, 1), hi), "|")+`)`)
	}
	if lo <= -1 {
		alts = append(alts, `-0*(?:`+strings.Join(positiveRange(-min(hi, -1), -lo), "|")+`)`)
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}

// positiveRange returns alternatives matching the integers in [a, b]
// written without leading zeros, 1 <= a <= b.
func positiveRange(a, b int) []string {
	var alts []string
	pow := 1
	for digits := 1; pow <= b; digits++ {
		lo, hi := max(a, pow), min(b, pow*10-1)
		if lo <= hi {
			alts = append(alts, sameLength(strconv.Itoa(lo), strconv.Itoa(hi))...)
		}
		pow *= 10
	}
	return alts
}

// sameLength returns alternatives matching the numbers from x to y, which
// are decimal strings of equal length with x <= y.
func sameLength(x, y string) []string {
	if x == "" {
		return []string{""}
	}
	if x[0] == y[0] {
		var alts []string
		for _, rest := range sameLength(x[1:], y[1:]) {
			alts = append(alts, x[:1]+rest)
		}
		return alts
	}

	rest := len(x) - 1
	anyDigits := ""
	if rest > 0 {
		anyDigits = `\d{` + strconv.Itoa(rest) + `}`
	}
	if strings.Trim(x[1:], "0") == "" && strings.Trim(y[1:], "9") == "" {
		return []string{digitClass(x[0], y[0]) + anyDigits}
	}

	var alts []string
	for _, tail := range sameLength(x[1:], strings.Repeat("9", rest)) {
		alts = append(alts, x[:1]+tail)
	}
	if y[0]-x[0] > 1 {
		alts = append(alts, digitClass(x[0]+1, y[0]-1)+anyDigits)
	}
	for _, tail := range sameLength(strings.Repeat("0", rest), y[1:]) {
		alts = append(alts, y[:1]+tail)
	}
	return alts
}

func digitClass(lo, hi byte) string {
	if lo == hi {
		return string(lo)
	}
	return "[" + string(lo) + "-" + string(hi) + "]"
}

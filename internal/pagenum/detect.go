// Package pagenum locates printed page labels on physical pages and
// builds the mapping between printed numbers and physical page indices.
package pagenum

import (
	"regexp"
	"strconv"
	"strings"
)

// Separator characters that may decorate a printed page number:
// dashes, pipe, dot, bullet, asterisk, underscore, tilde, space.
const separators = `\-—–|.•*_~ \t`

var (
	exactDigitsRe   = regexp.MustCompile(`^\d{1,4}$`)
	decoratedRe     = regexp.MustCompile(`^[` + separators + `]*(\d{1,4})[` + separators + `]*$`)
	trailingNumRe   = regexp.MustCompile(`[` + separators + `](\d{1,4})$`)
	leadingNumRe    = regexp.MustCompile(`^(\d{1,4})([` + separators + `])`)
	outlinePrefixRe = regexp.MustCompile(`^\d{1,4}[.)°:]`)
)

// shortLineMax bounds the length of lines eligible for the edge-of-line
// predicates; running text is longer and full of incidental numbers.
const shortLineMax = 120

// DetectNumber scans an ordered candidate line group (the top or bottom
// lines of one page) and returns the first printed page number found, or
// 0 when no line yields one. Each line is tried against three predicates
// in priority order: exact digits, decorated digits, edge-of-line digits.
func DetectNumber(lines []string) int {
	for _, line := range lines {
		if n := matchExactDigits(line); n > 0 {
			return n
		}
		if n := matchDecorated(line); n > 0 {
			return n
		}
		if n := matchEdgeOfLine(line); n > 0 {
			return n
		}
	}
	return 0
}

// matchExactDigits accepts a line that is nothing but 1-4 digits.
func matchExactDigits(line string) int {
	line = strings.TrimSpace(line)
	if exactDigitsRe.MatchString(line) {
		return atoiOrZero(line)
	}
	return 0
}

// matchDecorated accepts digits wrapped in ornamental separators and
// nothing else, e.g. "— 42 —" or "· 7 ·".
func matchDecorated(line string) int {
	if m := decoratedRe.FindStringSubmatch(line); m != nil {
		return atoiOrZero(m[1])
	}
	return 0
}

// matchEdgeOfLine accepts a number at the very end of a short line after
// a separator, or at the very start followed by a separator. A leading
// number immediately followed by '.', ')', '°', or ':' is outline
// numbering ("1.", "2)"), not a page label.
func matchEdgeOfLine(line string) int {
	if len(line) >= shortLineMax {
		return 0
	}
	if m := trailingNumRe.FindStringSubmatch(line); m != nil {
		return atoiOrZero(m[1])
	}
	if outlinePrefixRe.MatchString(line) {
		return 0
	}
	if m := leadingNumRe.FindStringSubmatch(line); m != nil {
		return atoiOrZero(m[1])
	}
	return 0
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package pagenum

import (
	"regexp"
	"strings"
)

var romanRe = regexp.MustCompile(`^[IVXLCDM]+$`)

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// ParseRoman converts a roman numeral in subtractive notation to its
// value, or 0 when the token is not a roman numeral. The parser is
// lenient: non-canonical forms like "IIII" are accepted, anything
// outside the IVXLCDM alphabet is not. Case-insensitive.
func ParseRoman(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !romanRe.MatchString(s) {
		return 0
	}
	total := 0
	for i := 0; i < len(s); i++ {
		v := romanValues[s[i]]
		if i+1 < len(s) && v < romanValues[s[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	if total <= 0 {
		return 0
	}
	return total
}

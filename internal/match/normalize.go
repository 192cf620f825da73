// Package match scores table-of-contents titles against page text and
// resolves entries to physical pages.
package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize reduces text to a comparison alphabet: Unicode-decompose,
// keep only ASCII letters, lowercase. Diacritics decompose into
// combining marks and fall out with everything else, so "Méthodes"
// and "Methodes" normalize identically.
func Normalize(s string) string {
	s = norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

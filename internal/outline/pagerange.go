package outline

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePageRange expands a selector like "1-3,7,9-12" into 1-based page
// numbers clamped to [1, pageCount]. Ranges are inclusive. Invalid or
// fully out-of-range tokens are dropped silently; an empty selector is
// ErrValidation.
func ParsePageRange(s string, pageCount int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty page range", ErrValidation)
	}

	seen := make(map[int]bool)
	var pages []int
	add := func(p int) {
		if p < 1 {
			p = 1
		}
		if p > pageCount {
			p = pageCount
		}
		if p >= 1 && !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}

	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(token, "-"); ok {
			a, errA := strconv.Atoi(strings.TrimSpace(lo))
			b, errB := strconv.Atoi(strings.TrimSpace(hi))
			if errA != nil || errB != nil || a > b {
				continue
			}
			for p := a; p <= b; p++ {
				add(p)
			}
			continue
		}
		if p, err := strconv.Atoi(token); err == nil {
			add(p)
		}
	}
	return pages, nil
}

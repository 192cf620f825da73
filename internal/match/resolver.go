package match

import (
	"context"

	"github.com/dgallion1/tocmap/internal/outline"
	"github.com/dgallion1/tocmap/internal/pagenum"
)

// Confidence classifies how strongly a resolved page is supported.
type Confidence string

const (
	// Verified: the title text was found at or near the numerically
	// mapped page.
	Verified Confidence = "verified"
	// Uncertain: a numeric match without textual confirmation, or a
	// textual match without a numeric one.
	Uncertain Confidence = "uncertain"
	// Unverified: neither could be confirmed; the index is a fallback.
	Unverified Confidence = "unverified"
)

// Result is the resolution of one entry onto a physical page.
type Result struct {
	PageIndex  int        `json:"page_index"`
	Confidence Confidence `json:"confidence"`
}

// numericSearchRadius is how far from the numerically mapped page the
// title may appear and still verify; chapter openers often print their
// number on a neighboring page.
const numericSearchRadius = 2

// Resolver assigns a physical page and confidence to every entry.
type Resolver struct {
	pages   []string // extracted page text, physical order
	pageMap *pagenum.Map
}

// NewResolver builds a resolver over extracted page text and the
// printed-number map.
func NewResolver(pages []string, pageMap *pagenum.Map) *Resolver {
	return &Resolver{pages: pages, pageMap: pageMap}
}

// Resolve maps every entry to a physical page index in [0, pageCount)
// with a confidence tag. The result list matches the input 1:1 in order.
//
// Pass 1 trusts printed numbers: entries whose printed page is in the
// map search the mapped index ±2 pages for their title. Pass 2 resolves
// the rest by title search inside a window bounded by the nearest
// resolved neighbors in entry order. Cancellation is observed between
// units of work; on cancellation no partial result is returned.
func (r *Resolver) Resolve(ctx context.Context, entries []outline.Entry) ([]Result, error) {
	results := make([]Result, len(entries))
	if len(r.pages) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range results {
			results[i] = Result{PageIndex: 0, Confidence: Unverified}
		}
		return results, nil
	}

	resolved := make([]bool, len(entries))
	titles := make([]*Title, len(entries))
	for i, e := range entries {
		titles[i] = NewTitle(e.Title)
	}

	// Pass 1: numeric lookup.
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.Page <= 0 {
			continue
		}
		mapped, ok := r.pageMap.PrintedToPhysical[e.Page]
		if !ok {
			continue
		}
		mapped = r.clamp(mapped)
		if found, ok := r.searchNearby(titles[i], mapped); ok {
			results[i] = Result{PageIndex: found, Confidence: Verified}
		} else {
			// Trust the number over the absent text confirmation.
			results[i] = Result{PageIndex: mapped, Confidence: Uncertain}
		}
		resolved[i] = true
	}

	// Pass 2: title search between resolved neighbors.
	for i := range entries {
		if resolved[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lo, hi := r.searchWindow(results, resolved, i)
		if found, ok := r.scanForTitle(titles[i], lo, hi); ok {
			results[i] = Result{PageIndex: found, Confidence: Uncertain}
		} else {
			results[i] = Result{PageIndex: max(lo, 0), Confidence: Unverified}
		}
		resolved[i] = true
	}

	return results, nil
}

// searchNearby looks for the title at the mapped page or within the
// numeric search radius, nearest page first.
func (r *Resolver) searchNearby(title *Title, center int) (int, bool) {
	for d := 0; d <= numericSearchRadius; d++ {
		for _, p := range []int{center - d, center + d} {
			if p < 0 || p >= len(r.pages) {
				continue
			}
			if title.MatchesPage(r.pages[p]) {
				return p, true
			}
			if d == 0 {
				break // center only once
			}
		}
	}
	return 0, false
}

// searchWindow bounds the pass-2 scan for entry i by the nearest
// resolved neighbors before and after it in entry order, defaulting to
// the whole document on an open side.
func (r *Resolver) searchWindow(results []Result, resolved []bool, i int) (int, int) {
	lo, hi := 0, len(r.pages)-1
	for j := i - 1; j >= 0; j-- {
		if resolved[j] {
			lo = results[j].PageIndex
			break
		}
	}
	for j := i + 1; j < len(results); j++ {
		if resolved[j] {
			hi = results[j].PageIndex
			break
		}
	}
	return lo, hi
}

// scanForTitle linearly scans [lo, hi] for the first page matching the
// title.
func (r *Resolver) scanForTitle(title *Title, lo, hi int) (int, bool) {
	if lo < 0 {
		lo = 0
	}
	if hi >= len(r.pages) {
		hi = len(r.pages) - 1
	}
	for p := lo; p <= hi; p++ {
		if title.MatchesPage(r.pages[p]) {
			return p, true
		}
	}
	return 0, false
}

func (r *Resolver) clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p >= len(r.pages) {
		return len(r.pages) - 1
	}
	return p
}

// Package pagedata extracts per-page text and candidate header/footer
// lines from a paginated document.
package pagedata

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/tocmap/internal/pagenum"
)

// Fragment is one positioned text run on a page. Y grows upward, so a
// larger Y means closer to the top of the page.
type Fragment struct {
	Text string
	Y    float64
}

// Source yields positioned text fragments per physical page. Pages are
// 1-based, matching the underlying PDF library.
type Source interface {
	PageCount() int
	PageFragments(page int) ([]Fragment, error)
}

// PageRecord holds everything later stages need about one physical page.
type PageRecord struct {
	// Text is the order-preserving concatenation of the page's fragments.
	Text string
	// TopLines and BottomLines are the two outermost visual lines at each
	// edge of the page, outermost first.
	TopLines    []string
	BottomLines []string
	// CandidateTop and CandidateBottom are the printed-number candidates
	// detected in each line group, 0 when absent.
	CandidateTop    int
	CandidateBottom int
}

// ProgressFunc reports pages completed out of the total.
type ProgressFunc func(done, total int)

// lineBucket is the coarse vertical rounding unit: fragments whose Y
// rounds to the same multiple of 3 sit on the same visual baseline.
const lineBucket = 3

// Extract walks every page in ascending order and derives one PageRecord
// per page. The context is checked before each page; a page that yields
// no fragments degrades to empty text and absent candidates rather than
// an error. progress may be nil.
func Extract(ctx context.Context, src Source, progress ProgressFunc) ([]PageRecord, error) {
	total := src.PageCount()
	records := make([]PageRecord, 0, total)

	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frags, err := src.PageFragments(page)
		if err != nil {
			// Malformed page geometry is tolerated downstream.
			frags = nil
		}
		records = append(records, buildRecord(frags))

		if progress != nil {
			progress(page, total)
		}
	}
	return records, nil
}

func buildRecord(frags []Fragment) PageRecord {
	var rec PageRecord
	if len(frags) == 0 {
		return rec
	}

	texts := make([]string, len(frags))
	for i, f := range frags {
		texts[i] = f.Text
	}
	rec.Text = strings.Join(texts, " ")

	lines := groupLines(frags)
	if n := len(lines); n > 0 {
		top := lines[:min(2, n)]
		rec.TopLines = append(rec.TopLines, top...)

		// Outermost (lowest on the page) first.
		rec.BottomLines = append(rec.BottomLines, lines[n-1])
		if n > 1 {
			rec.BottomLines = append(rec.BottomLines, lines[n-2])
		}
	}

	rec.CandidateTop = pagenum.DetectNumber(rec.TopLines)
	rec.CandidateBottom = pagenum.DetectNumber(rec.BottomLines)
	return rec
}

// groupLines merges fragments whose vertical position rounds into the
// same coarse bucket, then orders lines top of page first. Fragment
// order within a line is preserved.
func groupLines(frags []Fragment) []string {
	type line struct {
		y     float64
		parts []string
	}
	byBucket := make(map[float64]*line)
	var order []float64

	for _, f := range frags {
		bucket := math.Round(f.Y/lineBucket) * lineBucket
		l, ok := byBucket[bucket]
		if !ok {
			l = &line{y: bucket}
			byBucket[bucket] = l
			order = append(order, bucket)
		}
		l.parts = append(l.parts, f.Text)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] > order[j] })

	lines := make([]string, 0, len(order))
	for _, bucket := range order {
		lines = append(lines, strings.Join(byBucket[bucket].parts, " "))
	}
	return lines
}

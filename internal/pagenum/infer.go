package pagenum

// anchor is a physical page with a confidently detected printed label.
type anchor struct {
	physical int
	label    int
}

// InferLabels fills gaps in a per-page label assignment. labels[i] holds
// every positive label candidate observed on physical page i (top and
// bottom numbers merged, roman parses included); pages with none are the
// gaps. Pages with at least one candidate become anchors (minimum label
// taken). Between two consecutive anchors whose physical distance equals
// their label distance, the run is linear and every intermediate page
// receives the implied arithmetic label; a non-linear pair (a roman
// front-matter block resetting to arabic, say) is left unfilled. Before
// the first anchor and after the last, labels are extrapolated linearly
// while they stay positive.
//
// The result maps physical index to label for every page that has or
// gains one.
func InferLabels(labels [][]int, pageCount int) map[int]int {
	var anchors []anchor
	for physical := 0; physical < pageCount && physical < len(labels); physical++ {
		min := 0
		for _, l := range labels[physical] {
			if l > 0 && (min == 0 || l < min) {
				min = l
			}
		}
		if min > 0 {
			anchors = append(anchors, anchor{physical: physical, label: min})
		}
	}

	out := make(map[int]int, len(anchors))
	if len(anchors) == 0 {
		return out
	}
	for _, a := range anchors {
		out[a.physical] = a.label
	}

	// Interpolate strictly linear runs between consecutive anchors.
	for i := 1; i < len(anchors); i++ {
		prev, cur := anchors[i-1], anchors[i]
		if cur.physical-prev.physical != cur.label-prev.label {
			continue
		}
		for p := prev.physical + 1; p < cur.physical; p++ {
			out[p] = prev.label + (p - prev.physical)
		}
	}

	// Extrapolate outward from the outermost anchors.
	first := anchors[0]
	for p := first.physical - 1; p >= 0; p-- {
		guess := first.label - (first.physical - p)
		if guess <= 0 {
			break
		}
		out[p] = guess
	}
	last := anchors[len(anchors)-1]
	for p := last.physical + 1; p < pageCount; p++ {
		out[p] = last.label + (p - last.physical)
	}

	return out
}

// Fill merges inferred labels into the map for pages the detection step
// missed. Existing entries are never overwritten; PrintedToPhysical
// keeps its first-occurrence-wins rule.
func (m *Map) Fill(inferred map[int]int) {
	for physical, printed := range inferred {
		if printed <= 0 {
			continue
		}
		if _, exists := m.PhysicalToPrinted[physical]; exists {
			continue
		}
		m.PhysicalToPrinted[physical] = printed
		if _, exists := m.PrintedToPhysical[printed]; !exists {
			m.PrintedToPhysical[printed] = physical
		}
	}
}

package pagenum

// Position records which line group of the page was trusted for printed
// numbers.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Map is the bidirectional, possibly sparse mapping between printed page
// labels and physical page indices.
type Map struct {
	// PrintedToPhysical maps a printed number to the first physical index
	// that produced it.
	PrintedToPhysical map[int]int
	// PhysicalToPrinted maps every physical index that produced a number
	// to that number.
	PhysicalToPrinted map[int]int
	Position          Position
}

// NewMap returns an empty map with the given trusted position.
func NewMap(pos Position) *Map {
	return &Map{
		PrintedToPhysical: make(map[int]int),
		PhysicalToPrinted: make(map[int]int),
		Position:          pos,
	}
}

// ChoosePosition decides whether printed numbers live at the top or
// bottom of the page. Each sequence is scored by counting adjacent pairs
// that increase by exactly one; real page numbers form long such runs,
// while running-header noise does not. Ties favor top.
func ChoosePosition(top, bottom []int) Position {
	if consistencyScore(bottom) > consistencyScore(top) {
		return PositionBottom
	}
	return PositionTop
}

func consistencyScore(seq []int) int {
	score := 0
	for i := 1; i < len(seq); i++ {
		if seq[i] > 0 && seq[i-1] > 0 && seq[i] == seq[i-1]+1 {
			score++
		}
	}
	return score
}

// BuildMap scans per-page candidate sequences (index = physical page,
// value = detected number or 0), chooses the more consistent position,
// and builds the bidirectional map. On duplicate printed numbers the
// first physical occurrence wins.
func BuildMap(top, bottom []int) *Map {
	pos := ChoosePosition(top, bottom)
	chosen := top
	if pos == PositionBottom {
		chosen = bottom
	}

	m := NewMap(pos)
	for physical, printed := range chosen {
		if printed <= 0 {
			continue
		}
		if _, exists := m.PrintedToPhysical[printed]; !exists {
			m.PrintedToPhysical[printed] = physical
		}
		m.PhysicalToPrinted[physical] = printed
	}
	return m
}

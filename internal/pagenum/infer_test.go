package pagenum

import "testing"

func TestInferLabels_FillsLinearGap(t *testing.T) {
	// Printed sequence [_, 1, 2, _, 4, 5] at physical indices 0..5.
	labels := [][]int{nil, {1}, {2}, nil, {4}, {5}}

	got := InferLabels(labels, 6)

	if got[3] != 3 {
		t.Errorf("index 3: label = %d, want 3", got[3])
	}
	// Extrapolation before the first anchor stops at label 0.
	if _, ok := got[0]; ok {
		t.Errorf("index 0: expected no label, got %d", got[0])
	}
}

func TestInferLabels_ExtrapolatesOutward(t *testing.T) {
	labels := [][]int{nil, nil, {5}, {6}, nil, nil}

	got := InferLabels(labels, 6)

	want := map[int]int{0: 3, 1: 4, 2: 5, 3: 6, 4: 7, 5: 8}
	for physical, label := range want {
		if got[physical] != label {
			t.Errorf("index %d: label = %d, want %d", physical, got[physical], label)
		}
	}
}

func TestInferLabels_SkipsNonLinearRuns(t *testing.T) {
	// Roman front matter (i..iv) resetting to arabic 1: the anchor pair
	// (3, 4) -> (4, 1) is non-linear, so nothing is invented between or
	// because of it.
	labels := [][]int{{1}, {2}, nil, {4}, {1}, {2}}

	got := InferLabels(labels, 6)

	if got[2] != 3 {
		t.Errorf("index 2: label = %d, want 3 (linear run 2..4)", got[2])
	}
	if got[4] != 1 || got[5] != 2 {
		t.Errorf("body pages mislabelled: got[4]=%d got[5]=%d", got[4], got[5])
	}
}

func TestInferLabels_AnchorTakesMinimumCandidate(t *testing.T) {
	labels := [][]int{{10, 3}, {4}}

	got := InferLabels(labels, 2)

	if got[0] != 3 {
		t.Errorf("index 0: label = %d, want 3 (minimum candidate)", got[0])
	}
}

func TestInferLabels_NoAnchors(t *testing.T) {
	labels := [][]int{nil, nil, nil}
	if got := InferLabels(labels, 3); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestMapFill_DoesNotOverwrite(t *testing.T) {
	m := NewMap(PositionBottom)
	m.PrintedToPhysical[5] = 4
	m.PhysicalToPrinted[4] = 5

	m.Fill(map[int]int{3: 4, 4: 99})

	if got := m.PhysicalToPrinted[4]; got != 5 {
		t.Errorf("existing entry overwritten: PhysicalToPrinted[4] = %d, want 5", got)
	}
	if got := m.PhysicalToPrinted[3]; got != 4 {
		t.Errorf("gap not filled: PhysicalToPrinted[3] = %d, want 4", got)
	}
	if got := m.PrintedToPhysical[4]; got != 3 {
		t.Errorf("PrintedToPhysical[4] = %d, want 3", got)
	}
}

func TestLabelCandidates_MergesRomanLines(t *testing.T) {
	labels := LabelCandidates([]string{"The Long Preface"}, []string{"— xii —"}, 0, 0)

	if len(labels) != 1 || labels[0] != 12 {
		t.Errorf("LabelCandidates = %v, want [12]", labels)
	}

	labels = LabelCandidates(nil, nil, 7, 8)
	if len(labels) != 2 || labels[0] != 7 || labels[1] != 8 {
		t.Errorf("LabelCandidates = %v, want [7 8]", labels)
	}
}

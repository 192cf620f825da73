package outline

import (
	"reflect"
	"testing"
)

func TestNormalizeLevels_ClampsSkippedLevel(t *testing.T) {
	entries := []Entry{
		{Title: "Introduction", Page: 1, Level: 1},
		{Title: "Background", Page: 1, Level: 3},
	}

	got := NormalizeLevels(entries)

	want := []int{1, 2}
	for i, e := range got {
		if e.Level != want[i] {
			t.Errorf("entry %d: level = %d, want %d", i, e.Level, want[i])
		}
	}
}

func TestNormalizeLevels_ShiftsMinimumToOne(t *testing.T) {
	entries := []Entry{
		{Title: "Part I", Level: 2},
		{Title: "Chapter 1", Level: 3},
		{Title: "Section 1.1", Level: 4},
	}

	got := NormalizeLevels(entries)

	want := []int{1, 2, 3}
	for i, e := range got {
		if e.Level != want[i] {
			t.Errorf("entry %d: level = %d, want %d", i, e.Level, want[i])
		}
	}
}

func TestNormalizeLevels_FirstEntryAlwaysLevelOne(t *testing.T) {
	entries := []Entry{
		{Title: "Deep start", Level: 3},
		{Title: "Shallow", Level: 1},
	}

	got := NormalizeLevels(entries)

	if got[0].Level != 1 {
		t.Errorf("first entry level = %d, want 1", got[0].Level)
	}
	if got[1].Level != 1 {
		t.Errorf("second entry level = %d, want 1", got[1].Level)
	}
}

func TestNormalizeLevels_Idempotent(t *testing.T) {
	entries := []Entry{
		{Title: "A", Level: 2},
		{Title: "B", Level: 5},
		{Title: "C", Level: 3},
		{Title: "D", Level: 2},
	}

	once := NormalizeLevels(entries)
	twice := NormalizeLevels(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestNormalizeLevels_PreservesOrderAndFields(t *testing.T) {
	entries := []Entry{
		{Title: "One", Page: 10, Level: 1},
		{Title: "Two", Page: 20, Level: 2},
	}

	got := NormalizeLevels(entries)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Title != "One" || got[0].Page != 10 {
		t.Errorf("entry 0 mutated: %+v", got[0])
	}
	if got[1].Title != "Two" || got[1].Page != 20 {
		t.Errorf("entry 1 mutated: %+v", got[1])
	}
}

func TestNormalizeLevels_Empty(t *testing.T) {
	if got := NormalizeLevels(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

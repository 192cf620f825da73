package match

import (
	"strings"
	"testing"
)

func TestMatchesPage_ExactSubstring(t *testing.T) {
	title := NewTitle("Chapter Two: Methods")
	page := "some header\nChapter Two: Methods\nThe experiment began..."

	if !title.MatchesPage(page) {
		t.Error("expected exact substring match")
	}
}

func TestMatchesPage_SubstringTolerantOfPunctuationAndAccents(t *testing.T) {
	// Normalization strips punctuation and diacritics on both sides.
	title := NewTitle("Chapter Two — Methods")
	page := "42\nChapter Two: Méthods\nbody text follows"

	if !title.MatchesPage(page) {
		t.Error("expected normalized substring match despite em-dash and accent")
	}
}

func TestMatchesPage_WordCoverage(t *testing.T) {
	// 3 of 4 significant words present (0.75 >= 0.67); word order and the
	// missing word do not matter.
	title := NewTitle("Evaluation of Diverse Cloud Workloads")
	page := "In this section we present an evaluation of diverse workloads " +
		"measured on our cluster."

	if !title.MatchesPage(page) {
		t.Error("expected word-coverage match")
	}
}

func TestMatchesPage_WordCoverageNeedsTwoSignificantWords(t *testing.T) {
	// "the" is a stop word and "of" is too short: one significant word,
	// so the coverage rule never fires and the lone word is not enough.
	title := NewTitle("The Rise of It")
	page := "rise rise rise unrelated text"

	if title.MatchesPage(page) {
		t.Error("coverage rule should require at least two significant words")
	}
}

func TestMatchesPage_SlidingWindowToleratesNoise(t *testing.T) {
	// OCR turned i into l in three of the four significant words, so both
	// the substring and coverage rules fail, but the window Dice score
	// over near-identical letters stays high.
	title := NewTitle("Thermodynamic Properties of Supercritical Fluids")
	page := "intro text here. Thermodynamlc Propertles of Supercritical Fiuids. more body follows on this page."

	if !title.MatchesPage(page) {
		t.Error("expected sliding-window similarity match")
	}
}

func TestMatchesPage_RejectsUnrelatedText(t *testing.T) {
	title := NewTitle("Quantum Entanglement Protocols")
	page := "A completely unrelated discussion of medieval agriculture and " +
		"crop rotation schedules throughout the growing season."

	if title.MatchesPage(page) {
		t.Error("unrelated text must not match")
	}
}

func TestMatchesPage_EmptyPage(t *testing.T) {
	title := NewTitle("Anything")
	if title.MatchesPage("") {
		t.Error("empty page must not match")
	}
}

func TestSignificantWords(t *testing.T) {
	words := significantWords("The Méthodes of Analysis and les Results")
	want := []string{"méthodes", "analysis", "results"}
	if len(words) != len(want) {
		t.Fatalf("significantWords = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestMatchesPage_ShortTitleThresholdIsStrict(t *testing.T) {
	// Single-word titles get no coverage rule and a 0.88 Dice bar, so
	// merely similar words must not match.
	title := NewTitle("Preface")
	page := strings.Repeat("surface pressures prefabricated panels ", 5)
	if title.MatchesPage(page) {
		t.Error("similar-but-different words should stay below the short-title threshold")
	}
}

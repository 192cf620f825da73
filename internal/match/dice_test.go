package match

import (
	"math"
	"testing"
)

func TestDiceSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"night", "nacht"},
		{"Chapter Two Methods", "chapter two: methods"},
		{"completely", "different"},
		{"résumé", "resume"},
	}
	for _, p := range pairs {
		ab := DiceSimilarity(p[0], p[1])
		ba := DiceSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("asymmetric: dice(%q,%q)=%v, dice(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestDiceSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"ab", "chapter", "Table of Contents"} {
		if got := DiceSimilarity(s, s); got != 1 {
			t.Errorf("dice(%q,%q) = %v, want 1", s, s, got)
		}
	}
}

func TestDiceSimilarity_TooShort(t *testing.T) {
	cases := [][2]string{
		{"a", "abc"},
		{"", "abc"},
		{"1", "2"}, // digits are stripped, leaving nothing
	}
	for _, c := range cases {
		if got := DiceSimilarity(c[0], c[1]); got != 0 {
			t.Errorf("dice(%q,%q) = %v, want 0", c[0], c[1], got)
		}
	}
}

func TestDiceSimilarity_KnownValue(t *testing.T) {
	// night/nacht: bigrams {ni,ig,gh,ht} vs {na,ac,ch,ht}, one shared.
	got := DiceSimilarity("night", "nacht")
	want := 2.0 * 1 / 8
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("dice(night,nacht) = %v, want %v", got, want)
	}
}

func TestDiceSimilarity_RespectsMultiplicity(t *testing.T) {
	// "aaaa" has bigrams {aa,aa,aa}; "aa" has {aa}. Shared = 1, sizes 3+1.
	got := DiceSimilarity("aaaa", "aa")
	want := 2.0 * 1 / 4
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("dice(aaaa,aa) = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Méthodes Générales", "methodesgenerales"},
		{"Chapter Two — Methods", "chaptertwomethods"},
		{"1.2 Overview (draft)", "overviewdraft"},
		{"ÀÉÎÕÜ", "aeiou"},
		{"no change", "nochange"},
		{"123 …", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

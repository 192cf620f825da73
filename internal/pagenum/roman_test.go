package pagenum

import "testing"

func TestParseRoman(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"IV", 4},
		{"IX", 9},
		{"XIV", 14},
		{"XL", 40},
		{"MCMXCIX", 1999},
		{"IIII", 4}, // lenient: non-canonical but parseable
		{"iv", 4},   // case-insensitive
		{"  xii  ", 12},
		{"ABC", 0},
		{"IVX2", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseRoman(tt.in); got != tt.want {
			t.Errorf("ParseRoman(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

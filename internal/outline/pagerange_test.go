package outline

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		pageCount int
		want      []int
	}{
		{"single", "3", 10, []int{3}},
		{"range", "2-5", 10, []int{2, 3, 4, 5}},
		{"mixed", "1-3,7,9-10", 10, []int{1, 2, 3, 7, 9, 10}},
		{"clamped high", "8-12", 10, []int{8, 9, 10}},
		{"clamped low", "0-2", 10, []int{1, 2}},
		{"bad tokens dropped", "a,2,x-y,5-3,4", 10, []int{2, 4}},
		{"duplicates collapsed", "2,2,1-3", 10, []int{2, 1, 3}},
		{"spaces tolerated", " 1 , 2 - 3 ", 10, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageRange(tt.input, tt.pageCount)
			if err != nil {
				t.Fatalf("ParsePageRange(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePageRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePageRange_EmptyIsValidationError(t *testing.T) {
	for _, input := range []string{"", "   "} {
		if _, err := ParsePageRange(input, 10); !errors.Is(err, ErrValidation) {
			t.Errorf("input %q: expected ErrValidation, got %v", input, err)
		}
	}
}

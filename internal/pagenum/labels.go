package pagenum

import "strings"

// LabelCandidates merges every printed-label candidate for one page: the
// detected top and bottom numbers plus roman-numeral readings of the
// candidate lines (front matter is commonly numbered i, ii, iii).
func LabelCandidates(topLines, bottomLines []string, top, bottom int) []int {
	var labels []int
	if top > 0 {
		labels = append(labels, top)
	}
	if bottom > 0 {
		labels = append(labels, bottom)
	}
	for _, line := range topLines {
		if n := ParseRoman(strings.Trim(line, " .-–—")); n > 0 {
			labels = append(labels, n)
		}
	}
	for _, line := range bottomLines {
		if n := ParseRoman(strings.Trim(line, " .-–—")); n > 0 {
			labels = append(labels, n)
		}
	}
	return labels
}

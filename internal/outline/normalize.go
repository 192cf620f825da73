package outline

// NormalizeLevels repairs entry levels: the minimum level
// is shifted to 1, and a single forward pass clamps any level that jumps
// more than one step below its predecessor. The first entry clamps
// against an implicit level 0, so it always ends up at level 1. The
// transformation is idempotent and never reorders entries.
func NormalizeLevels(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}

	minLevel := entries[0].Level
	for _, e := range entries[1:] {
		if e.Level < minLevel {
			minLevel = e.Level
		}
	}
	shift := minLevel - 1

	out := make([]Entry, len(entries))
	prev := 0
	for i, e := range entries {
		level := e.Level - shift
		if level > prev+1 {
			level = prev + 1
		}
		out[i] = Entry{Title: e.Title, Page: e.Page, Level: level}
		prev = level
	}
	return out
}

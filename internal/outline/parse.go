package outline

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// rawPayload matches the accepted JSON shapes: an object with the entry
// array under one of several keys.
type rawPayload struct {
	Entries []rawEntry `json:"entries"`
	TOC     []rawEntry `json:"toc"`
	Items   []rawEntry `json:"items"`
}

type rawEntry struct {
	Title *string `json:"title"`
	Page  *int    `json:"page"`
	Level *int    `json:"level"`
}

// ParseEntries decodes an entry payload. The payload must be a JSON
// object with an array under "entries", "toc", or "items"; each item is
// coerced with defaults (title "Untitled", page 0, level 1). A payload
// that does not decode as-is gets one repair attempt (code-fence strip,
// then first balanced brace substring) before failing with ErrFormat.
func ParseEntries(data []byte) ([]Entry, error) {
	var payload rawPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		repaired, ok := repairJSON(string(data))
		if !ok {
			return nil, fmt.Errorf("%w: not a JSON object: %v", ErrFormat, err)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	}

	items := payload.Entries
	if items == nil {
		items = payload.TOC
	}
	if items == nil {
		items = payload.Items
	}
	if items == nil {
		return nil, fmt.Errorf("%w: no entries, toc, or items array", ErrFormat)
	}

	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		e := Entry{Title: "Untitled", Page: 0, Level: 1}
		if it.Title != nil && strings.TrimSpace(*it.Title) != "" {
			e.Title = strings.TrimSpace(*it.Title)
		}
		if it.Page != nil && *it.Page > 0 {
			e.Page = *it.Page
		}
		if it.Level != nil && *it.Level >= 1 {
			e.Level = *it.Level
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// repairJSON makes one attempt to salvage a near-JSON payload: strip a
// surrounding markdown code fence, then fall back to the first balanced
// brace-delimited substring.
func repairJSON(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1], true
	}
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// exportPayload is the persisted raw-entry shape, independent of any
// resolution result so an extraction can be re-imported later.
type exportPayload struct {
	Entries []Entry `json:"entries"`
}

// ExportEntries serializes entries in the importable raw-entry shape.
func ExportEntries(entries []Entry) ([]byte, error) {
	return json.MarshalIndent(exportPayload{Entries: entries}, "", "  ")
}

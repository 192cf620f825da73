package extract

import "strings"

const outlinePrompt = `The following text is a book's table of contents as extracted from scanned pages. Read it into a structured outline. Return a JSON object:

{"entries": [{"title": "...", "page": 12, "level": 1}, ...]}

Rules for each entry:
- "title": the entry title exactly as printed, without leader dots or the trailing page number
- "page": the printed page number for the entry (integer; use 0 if none is printed)
- "level": nesting depth, 1 for top-level entries (parts/chapters), 2 for sections, 3 for subsections, and so on
- Keep the entries in the order they appear
- Include every entry, including front matter (preface, foreword) and back matter (appendices, index)
- Do not invent entries that are not in the text

Respond with ONLY the JSON object, no other text.`

// BuildOutlinePrompt creates the full prompt for reading a printed table
// of contents.
func BuildOutlinePrompt(tocText string) string {
	var sb strings.Builder
	sb.WriteString(outlinePrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(tocText)
	return sb.String()
}

// Package outline holds the logical table-of-contents model: entries as
// supplied by an LLM, a JSON file, or a document import, before they are
// resolved onto physical pages.
package outline

import "errors"

// Entry is a single table-of-contents entry as supplied by the caller.
// Page is the printed page number (0 when unknown), not a physical index.
type Entry struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
	Level int    `json:"level"`
}

var (
	// ErrFormat indicates an entry payload that is not a recognizable array.
	ErrFormat = errors.New("unrecognized outline format")

	// ErrValidation indicates rejected caller input, e.g. an empty page range.
	ErrValidation = errors.New("invalid input")
)

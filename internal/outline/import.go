package outline

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Importer converts an external document into a raw entry list.
type Importer interface {
	Import(r io.Reader) ([]Entry, error)
}

// ImporterFor returns the importer for a filename, by extension.
func ImporterFor(filename string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return &JSONImporter{}, nil
	case ".md", ".markdown":
		return &MarkdownImporter{}, nil
	case ".html", ".htm":
		return &HTMLImporter{}, nil
	case ".docx":
		return &DOCXImporter{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported outline source: %s", ErrValidation, filepath.Ext(filename))
	}
}

// JSONImporter reads the raw-entry JSON shape.
type JSONImporter struct{}

func (p *JSONImporter) Import(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	entries, err := ParseEntries(data)
	if err != nil {
		return nil, err
	}
	return NormalizeLevels(entries), nil
}

// Printed tables of contents often carry leader dots and a page number at
// the end of each line, e.g. "Chapter One ..... 17".
var trailingPageRe = regexp.MustCompile(`^(.*?)[\s.·…_-]{2,}(\d{1,4})\s*$`)

// splitPageHint separates a trailing page number from a heading title.
func splitPageHint(title string) (string, int) {
	if m := trailingPageRe.FindStringSubmatch(title); m != nil {
		if page, err := strconv.Atoi(m[2]); err == nil && page > 0 {
			return strings.TrimSpace(m[1]), page
		}
	}
	return strings.TrimSpace(title), 0
}

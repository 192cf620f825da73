package pagedata

import (
	"fmt"
	"io"
	"os"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource reads positioned fragments from a PDF file via ledongthuc/pdf.
type PDFSource struct {
	file   *os.File
	reader *pdflib.Reader
	// tmpPath is set when the source owns a temp file to delete on Close.
	tmpPath string
}

// OpenPDF opens a PDF from disk.
func OpenPDF(path string) (*PDFSource, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &PDFSource{file: f, reader: reader}, nil
}

// NewPDFSource reads a PDF from a stream. The library requires a
// ReadSeeker plus size, so the stream is spooled to a temp file that
// lives until Close.
func NewPDFSource(r io.Reader) (*PDFSource, error) {
	tmp, err := os.CreateTemp("", "tocmap-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	src, err := OpenPDF(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}
	src.tmpPath = tmpPath
	return src, nil
}

func (s *PDFSource) PageCount() int {
	return s.reader.NumPage()
}

// PageFragments returns the page's text runs in content order with their
// vertical positions. An unreadable page returns an error; the extractor
// treats that as an empty page.
func (s *PDFSource) PageFragments(page int) ([]Fragment, error) {
	p := s.reader.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: null page object", page)
	}

	content := p.Content()
	frags := make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		frags = append(frags, Fragment{Text: t.S, Y: t.Y})
	}
	return frags, nil
}

// Close releases the underlying file and any temp spool.
func (s *PDFSource) Close() error {
	err := s.file.Close()
	if s.tmpPath != "" {
		os.Remove(s.tmpPath)
	}
	return err
}

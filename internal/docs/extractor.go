// internal/docs/extractor.go
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument reports a PDF that yielded no extractable text across the
// scanned pages.
var ErrEmptyDocument = errors.New("the document is empty or unreadable")

// NotFoundError reports a document filename that does not exist under the
// documents directory.
type NotFoundError struct {
	Filename string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Filename)
}

// Extractor pulls plain text out of PDFs in the documents directory.
type Extractor struct {
	dir      string
	maxPages int
}

// NewExtractor returns an Extractor that reads at most maxPages leading
// pages per document.
func NewExtractor(dir string, maxPages int) *Extractor {
	return &Extractor{dir: dir, maxPages: maxPages}
}

// Extract resolves filename under the documents directory and returns the
// concatenated text of its leading pages. It distinguishes three failures:
// a *NotFoundError for a missing file, ErrEmptyDocument for a PDF with no
// extractable text, and a wrapped generic error for anything else.
func (e *Extractor) Extract(filename string) (string, error) {
	if filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid document name %q", filename)
	}

	path := filepath.Join(e.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Filename: filename}
		}
		return "", fmt.Errorf("stat %s: %w", filename, err)
	}

	text, err := e.readPages(path)
	if err != nil {
		return "", fmt.Errorf("process %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// readPages concatenates per-page text for the leading pages of the PDF.
// The pdf library panics on some malformed inputs, so the recover converts
// those into plain errors.
func (e *Extractor) readPages(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	pages := reader.NumPage()
	if e.maxPages > 0 && pages > e.maxPages {
		pages = e.maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

// internal/docs/lister.go
// Package docs enumerates and extracts text from local PDF documents.
package docs

import (
	"os"
	"strings"

	"github.com/mwiater/studybot/internal/logging"
)

// Lister enumerates PDF files in the documents directory.
type Lister struct {
	dir string
}

// NewLister returns a Lister over dir.
func NewLister(dir string) *Lister {
	return &Lister{dir: dir}
}

// List returns the filenames (not paths) of PDF documents in directory
// iteration order. A missing or unreadable directory is logged and yields an
// empty slice; List never returns an error to the caller.
func (l *Lister) List() []string {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		logging.LogEvent("could not list documents directory %s: %v", l.dir, err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}
	logging.LogEvent("found %d PDF(s) in %s", len(files), l.dir)
	return files
}

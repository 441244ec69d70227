// Package loader reads pre-extracted legal text from disk. PDF text
// extraction happens upstream; the expected input is plain .txt with
// form feed characters separating pages, the pdftotext convention.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"lexrag/internal/domain"
	"lexrag/internal/logger"
)

// Document is one source file worth of extracted text.
type Document struct {
	SourceFile string
	Text       string
}

// LoadPaths expands globs, filters for .txt files and reads them.
// Returns domain.ErrNoDocuments when nothing usable was found.
func LoadPaths(paths []string) ([]Document, error) {
	var docs []Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				logger.Debug("skipping non-txt input %s", m)
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			text := strings.ReplaceAll(string(data), "\r\n", "\n")
			if strings.TrimSpace(text) == "" {
				logger.Warn("skipping empty file %s", m)
				continue
			}
			docs = append(docs, Document{SourceFile: filepath.Base(m), Text: text})
			logger.Info("loaded %s (%d bytes)", m, len(text))
		}
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	return docs, nil
}

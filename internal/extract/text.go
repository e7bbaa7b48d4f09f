package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor dispatches file content to the right format extractor based
// on the file extension.
type Extractor struct {
	md *MarkdownExtractor
}

// New creates an extractor supporting markdown and plain text.
func New() *Extractor {
	return &Extractor{md: NewMarkdownExtractor()}
}

// FromFile reads and extracts the file at path.
func (e *Extractor) FromFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	return e.FromBytes(content, path)
}

// FromBytes extracts content using the format implied by filename.
// Unknown extensions are treated as plain text.
func (e *Extractor) FromBytes(content []byte, filename string) (Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return e.md.Extract(content, filename)
	default:
		return Plain(content, filename), nil
	}
}

// Plain extracts plain text content. Form feed characters split the
// document into pages, matching how text dumps of paginated formats
// mark page breaks.
func Plain(content []byte, filename string) Document {
	raw := strings.Split(string(content), "\f")

	pages := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			pages = append(pages, p)
		}
	}

	return Document{
		Title: titleFromFilename(filename),
		Pages: pages,
	}
}

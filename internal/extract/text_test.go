package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPlain(t *testing.T) {
	content := "First page text.\fSecond page text.\f\f  \fThird page text."
	doc := Plain([]byte(content), "report.txt")

	if doc.Title != "Report" {
		t.Errorf("Title = %q, want %q", doc.Title, "Report")
	}
	want := []string{"First page text.", "Second page text.", "Third page text."}
	if len(doc.Pages) != len(want) {
		t.Fatalf("got %d pages, want %d: %q", len(doc.Pages), len(want), doc.Pages)
	}
	for i, w := range want {
		if doc.Pages[i] != w {
			t.Errorf("page %d = %q, want %q", i, doc.Pages[i], w)
		}
	}
}

func TestPlain_NoFormFeeds(t *testing.T) {
	doc := Plain([]byte("just one block of text"), "a.txt")
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
}

func TestExtractor_FromBytes_Dispatch(t *testing.T) {
	e := New()

	md, err := e.FromBytes([]byte("# Heading\n\nBody."), "doc.md")
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if md.Title != "Heading" {
		t.Errorf("markdown Title = %q, want %q", md.Title, "Heading")
	}

	txt, err := e.FromBytes([]byte("# Heading\n\nBody."), "doc.txt")
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	// Plain text keeps the hash, markdown would not
	if txt.Title != "Doc" {
		t.Errorf("plain Title = %q, want %q", txt.Title, "Doc")
	}
}

func TestExtractor_FromFile(t *testing.T) {
	e := New()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.md")
	if err := os.WriteFile(path, []byte("# Sample\n\nContent."), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	doc, err := e.FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if doc.Title != "Sample" {
		t.Errorf("Title = %q, want %q", doc.Title, "Sample")
	}

	if _, err := e.FromFile(filepath.Join(dir, "missing.md")); err == nil {
		t.Error("FromFile() with missing file should return error")
	}
}

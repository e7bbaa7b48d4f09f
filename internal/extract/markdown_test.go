package extract

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_Title(t *testing.T) {
	e := NewMarkdownExtractor()

	tests := []struct {
		name     string
		content  string
		filename string
		want     string
	}{
		{
			name:     "h1 title",
			content:  "# My Document\n\nSome body text.",
			filename: "notes.md",
			want:     "My Document",
		},
		{
			name:     "h2 fallback",
			content:  "## Section Title\n\nSome body text.",
			filename: "notes.md",
			want:     "Section Title",
		},
		{
			name:     "h1 wins over earlier h2",
			content:  "## Intro\n\n# Real Title\n\nBody.",
			filename: "notes.md",
			want:     "Real Title",
		},
		{
			name:     "filename fallback",
			content:  "Just some text without headings.",
			filename: "project_design-notes.md",
			want:     "Project Design Notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := e.Extract([]byte(tt.content), tt.filename)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if doc.Title != tt.want {
				t.Errorf("Title = %q, want %q", doc.Title, tt.want)
			}
		})
	}
}

func TestMarkdownExtractor_ThematicBreakSplitsPages(t *testing.T) {
	e := NewMarkdownExtractor()

	content := "# Title\n\nFirst page body.\n\n---\n\nSecond page body.\n\n---\n\nThird page body."
	doc, err := e.Extract([]byte(content), "doc.md")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(doc.Pages) != 3 {
		t.Fatalf("got %d pages, want 3: %q", len(doc.Pages), doc.Pages)
	}
	if !strings.Contains(doc.Pages[0], "First page body.") {
		t.Errorf("page 0 = %q", doc.Pages[0])
	}
	if !strings.Contains(doc.Pages[1], "Second page body.") {
		t.Errorf("page 1 = %q", doc.Pages[1])
	}
	if !strings.Contains(doc.Pages[2], "Third page body.") {
		t.Errorf("page 2 = %q", doc.Pages[2])
	}
}

func TestMarkdownExtractor_SinglePage(t *testing.T) {
	e := NewMarkdownExtractor()

	doc, err := e.Extract([]byte("# Title\n\nOnly one page here."), "doc.md")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
}

func TestMarkdownExtractor_StripsFormatting(t *testing.T) {
	e := NewMarkdownExtractor()

	content := "# Title\n\nText with **bold** and `code` and [a link](https://example.com).\n\n- first item\n- second item"
	doc, err := e.Extract([]byte(content), "doc.md")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}

	page := doc.Pages[0]
	for _, want := range []string{"bold", "code", "a link", "first item", "second item"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q: %q", want, page)
		}
	}
	for _, marker := range []string{"**", "`", "](", "- "} {
		if strings.Contains(page, marker) {
			t.Errorf("page still contains markdown marker %q: %q", marker, page)
		}
	}
}

func TestMarkdownExtractor_Tables(t *testing.T) {
	e := NewMarkdownExtractor()

	content := "# Data\n\n| Name | Age |\n| ---- | --- |\n| Bob | 42 |\n"
	doc, err := e.Extract([]byte(content), "doc.md")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}

	page := doc.Pages[0]
	if !strings.Contains(page, "Name | Age") {
		t.Errorf("page missing header row: %q", page)
	}
	if !strings.Contains(page, "Bob | 42") {
		t.Errorf("page missing data row: %q", page)
	}
}

func TestMarkdownExtractor_FencedCodeBlock(t *testing.T) {
	e := NewMarkdownExtractor()

	content := "# Code\n\n```go\nfunc main() {}\n```\n"
	doc, err := e.Extract([]byte(content), "doc.md")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
	if !strings.Contains(doc.Pages[0], "func main() {}") {
		t.Errorf("page missing code content: %q", doc.Pages[0])
	}
}

func TestMarkdownExtractor_Empty(t *testing.T) {
	e := NewMarkdownExtractor()

	doc, err := e.Extract(nil, "empty_file.md")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.Title != "Empty File" {
		t.Errorf("Title = %q, want %q", doc.Title, "Empty File")
	}
	if len(doc.Pages) != 0 {
		t.Errorf("got %d pages, want 0", len(doc.Pages))
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.md", "Notes"},
		{"project_design.md", "Project Design"},
		{"weekly-report.txt", "Weekly Report"},
		{"/some/dir/deep file.md", "Deep File"},
	}
	for _, tt := range tests {
		if got := titleFromFilename(tt.filename); got != tt.want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

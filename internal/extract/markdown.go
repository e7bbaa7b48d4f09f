// Package extract converts source files into plain-text pages ready for
// chunking. Markdown is parsed with goldmark; thematic breaks split the
// document into pages.
package extract

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Document is extracted source content: a title plus one or more pages
// of plain text.
type Document struct {
	Title string
	Pages []string
}

// MarkdownExtractor extracts plain text from markdown using goldmark
// AST parsing.
type MarkdownExtractor struct {
	parser goldmark.Markdown
}

// NewMarkdownExtractor creates a new markdown extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Extract parses markdown content and returns the title and plain-text
// pages. Thematic breaks (---) separate pages; a document without any
// becomes a single page.
func (e *MarkdownExtractor) Extract(content []byte, filename string) (Document, error) {
	if len(content) == 0 {
		return Document{
			Title: titleFromFilename(filename),
			Pages: []string{},
		}, nil
	}

	reader := text.NewReader(content)
	doc := e.parser.Parser().Parse(reader)

	title := extractTitle(doc, content, filename)
	pages := e.buildPages(doc, content)

	return Document{Title: title, Pages: pages}, nil
}

// extractTitle picks the document title:
// 1. First # Heading (level 1)
// 2. First ## Heading (level 2) if no level 1
// 3. Filename without extension (capitalize words) if no headings
func extractTitle(doc ast.Node, content []byte, filename string) string {
	var firstH1, firstH2 string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok {
			level := heading.Level
			headingText := extractTextFromNode(heading, content)

			if level == 1 && firstH1 == "" {
				firstH1 = headingText
			} else if level == 2 && firstH2 == "" && firstH1 == "" {
				firstH2 = headingText
			}

			if firstH1 != "" {
				return ast.WalkStop, nil
			}
		}

		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	if firstH2 != "" {
		return firstH2
	}

	return titleFromFilename(filename)
}

// titleFromFilename derives a title from the filename by removing the
// extension and capitalizing words.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	if ext != "" {
		name = name[:len(name)-len(ext)]
	}

	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// buildPages walks the AST collecting plain text, starting a new page
// at each thematic break.
func (e *MarkdownExtractor) buildPages(doc ast.Node, content []byte) []string {
	var pages []string
	var page strings.Builder

	flushPage := func() {
		text := strings.TrimSpace(page.String())
		if text != "" {
			pages = append(pages, text)
		}
		page.Reset()
	}

	ensureNewline := func() {
		if page.Len() > 0 && !strings.HasSuffix(page.String(), "\n") {
			page.WriteString("\n")
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.ThematicBreak:
			flushPage()
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			ensureNewline()
			page.WriteString(extractTextFromNode(node, content))
			page.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			segment := node.Segment
			page.Write(segment.Value(content))
			return ast.WalkContinue, nil

		case *ast.String:
			page.Write(node.Value)
			return ast.WalkContinue, nil

		case *ast.CodeBlock:
			ensureNewline()
			writeLines(&page, node, content)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			ensureNewline()
			writeLines(&page, node, content)
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.List, *ast.ListItem, *ast.Blockquote:
			ensureNewline()
			return ast.WalkContinue, nil

		default:
			// Table extension nodes have kind names containing "Table"
			kindName := n.Kind().String()
			if strings.Contains(kindName, "TableRow") || strings.Contains(kindName, "TableHeader") {
				ensureNewline()
				page.WriteString(extractTableRowText(n, content))
				page.WriteString("\n")
				return ast.WalkSkipChildren, nil
			}
			if strings.Contains(kindName, "TableCell") {
				return ast.WalkSkipChildren, nil
			}
			if strings.Contains(kindName, "Table") {
				ensureNewline()
			}
			return ast.WalkContinue, nil
		}
	})

	flushPage()

	if len(pages) == 0 {
		text := strings.TrimSpace(string(content))
		if text != "" {
			pages = append(pages, text)
		}
	}

	return pages
}

// writeLines appends a block node's raw source lines to the page.
func writeLines(page *strings.Builder, node ast.Node, content []byte) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		page.Write(line.Value(content))
	}
}

// extractTextFromNode extracts text content from a node and its children.
func extractTextFromNode(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			segment := v.Segment
			textBuilder.Write(segment.Value(content))
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// extractTableRowText extracts text from a table row, formatting cells
// with pipe separators.
func extractTableRowText(row ast.Node, content []byte) string {
	var rowBuilder strings.Builder
	cellCount := 0

	_ = ast.Walk(row, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		kindName := node.Kind().String()
		if strings.Contains(kindName, "TableCell") {
			cellText := extractTextFromNode(node, content)
			if cellCount > 0 {
				rowBuilder.WriteString(" | ")
			}
			rowBuilder.WriteString(cellText)
			cellCount++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return rowBuilder.String()
}

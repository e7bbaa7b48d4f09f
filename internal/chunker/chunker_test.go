package chunker

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkTextInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
	}{
		{
			name: "empty text",
			text: "",
			opts: DefaultOptions(),
		},
		{
			name: "zero chunk size",
			text: "some text",
			opts: Options{ChunkSize: 0, OverlapPercentage: 0.1},
		},
		{
			name: "negative chunk size",
			text: "some text",
			opts: Options{ChunkSize: -5, OverlapPercentage: 0.1},
		},
		{
			name: "overlap of one",
			text: "abc",
			opts: Options{ChunkSize: 10, OverlapPercentage: 1.0},
		},
		{
			name: "negative overlap",
			text: "abc",
			opts: Options{ChunkSize: 10, OverlapPercentage: -0.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := ChunkText(tt.text, tt.opts)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("ChunkText() error = %v, want ErrInvalidParameter", err)
			}
			if chunks != nil {
				t.Errorf("ChunkText() returned %d chunks alongside error", len(chunks))
			}
		})
	}
}

func TestChunkTextSingleChunk(t *testing.T) {
	text := "Hello world, this is a test."
	opts := DefaultOptions() // 500-token budget dwarfs the input

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	c := chunks[0]
	if c.Content != text {
		t.Errorf("Content = %q, want %q", c.Content, text)
	}
	if c.StartIndex != 0 || c.EndIndex != len(text) {
		t.Errorf("offsets = [%d, %d), want [0, %d)", c.StartIndex, c.EndIndex, len(text))
	}
	if want := 7; c.EstimatedTokens != want { // ceil(28/4)
		t.Errorf("EstimatedTokens = %d, want %d", c.EstimatedTokens, want)
	}
}

func TestChunkTextWordBoundaries(t *testing.T) {
	text := "Hello world, this is a test."
	opts := Options{
		ChunkSize:              10,
		OverlapPercentage:      0.2,
		PreserveWordBoundaries: true,
		IncludeMetadata:        true,
		SizeUnit:               Characters,
		TokenMethod:            Simple,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}

	want := []TextChunk{
		{Content: "Hello", StartIndex: 0, EndIndex: 6, EstimatedTokens: 2},
		{Content: "world,", StartIndex: 6, EndIndex: 13, EstimatedTokens: 2},
		{Content: "this is a", StartIndex: 13, EndIndex: 23, EstimatedTokens: 3},
		{Content: "a test.", StartIndex: 21, EndIndex: 28, EstimatedTokens: 2},
	}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(want), chunks)
	}
	for i, w := range want {
		g := chunks[i]
		if g.Content != w.Content || g.StartIndex != w.StartIndex || g.EndIndex != w.EndIndex {
			t.Errorf("chunk %d = {%q, %d, %d}, want {%q, %d, %d}",
				i, g.Content, g.StartIndex, g.EndIndex, w.Content, w.StartIndex, w.EndIndex)
		}
		if g.EstimatedTokens != w.EstimatedTokens {
			t.Errorf("chunk %d EstimatedTokens = %d, want %d", i, g.EstimatedTokens, w.EstimatedTokens)
		}
	}

	// No chunk content ends or begins mid-word after trimming.
	for i, c := range chunks {
		if strings.TrimSpace(c.Content) != c.Content {
			t.Errorf("chunk %d content %q not trimmed", i, c.Content)
		}
	}

	// The final chunk repeats the word the previous one ended with.
	last, prev := chunks[len(chunks)-1], chunks[len(chunks)-2]
	if last.StartIndex >= prev.EndIndex {
		t.Errorf("last chunk start %d does not overlap previous end %d", last.StartIndex, prev.EndIndex)
	}
	if last.EndIndex != len(text) {
		t.Errorf("last chunk end = %d, want %d", last.EndIndex, len(text))
	}
}

func TestChunkTextContiguousWithoutOverlap(t *testing.T) {
	text := "Hello world, this is a test."
	opts := Options{
		ChunkSize: 10,
		SizeUnit:  Characters,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if chunks[0].StartIndex != 0 {
		t.Errorf("first chunk starts at %d, want 0", chunks[0].StartIndex)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartIndex != chunks[i-1].EndIndex {
			t.Errorf("chunk %d starts at %d, previous ends at %d",
				i, chunks[i].StartIndex, chunks[i-1].EndIndex)
		}
	}
	if got := chunks[len(chunks)-1].EndIndex; got != len(text) {
		t.Errorf("last chunk ends at %d, want %d", got, len(text))
	}
}

func TestChunkTextExactOverlap(t *testing.T) {
	text := "Hello world, this is a test."
	opts := Options{
		ChunkSize:         10,
		OverlapPercentage: 0.2,
		SizeUnit:          Characters,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		if got, want := chunks[i].StartIndex, chunks[i-1].EndIndex-2; got != want {
			t.Errorf("chunk %d starts at %d, want %d (previous end minus overlap)", i, got, want)
		}
	}
	if got := chunks[len(chunks)-1].EndIndex; got != len(text) {
		t.Errorf("last chunk ends at %d, want %d", got, len(text))
	}
}

func TestChunkTextNeverSplitsCodepoints(t *testing.T) {
	text := "これはテストのための日本語のテキストです。"
	opts := Options{
		ChunkSize: 10, // not a multiple of the 3-byte characters
		SizeUnit:  Characters,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c.Content) {
			t.Errorf("chunk %d content %q is not valid UTF-8", i, c.Content)
		}
		if c.EndIndex-c.StartIndex > opts.ChunkSize+utf8.UTFMax-1 {
			t.Errorf("chunk %d spans %d bytes, exceeds budget beyond alignment slack",
				i, c.EndIndex-c.StartIndex)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartIndex != chunks[i-1].EndIndex {
			t.Errorf("chunk %d starts at %d, previous ends at %d",
				i, chunks[i].StartIndex, chunks[i-1].EndIndex)
		}
	}
	if got := chunks[len(chunks)-1].EndIndex; got != len(text) {
		t.Errorf("last chunk ends at %d, want %d", got, len(text))
	}
}

func TestChunkTextCoverageWithWordBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "trailing word longer than the boundary window",
			text: "xx " + strings.Repeat("w", 200),
		},
		{
			name: "two words longer than the boundary window",
			text: strings.Repeat("s", 120) + " " + strings.Repeat("t", 120),
		},
		{
			name: "ordinary words",
			text: strings.Repeat("alpha beta gamma delta ", 20),
		},
	}

	opts := Options{
		ChunkSize:              100,
		OverlapPercentage:      0.1,
		PreserveWordBoundaries: true,
		SizeUnit:               Characters,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := ChunkText(tt.text, opts)
			if err != nil {
				t.Fatalf("ChunkText() error = %v", err)
			}
			if len(chunks) < 2 {
				t.Fatalf("got %d chunks, want several", len(chunks))
			}

			covered := make([]bool, len(tt.text))
			for i, c := range chunks {
				if c.StartIndex >= c.EndIndex {
					t.Fatalf("chunk %d has empty range [%d, %d)", i, c.StartIndex, c.EndIndex)
				}
				if i > 0 && c.StartIndex <= chunks[i-1].StartIndex {
					t.Fatalf("chunk %d start %d does not advance past %d",
						i, c.StartIndex, chunks[i-1].StartIndex)
				}
				for b := c.StartIndex; b < c.EndIndex; b++ {
					covered[b] = true
				}
			}

			// Every byte outside the chunk ranges must be whitespace.
			for b := range covered {
				if !covered[b] && tt.text[b] != ' ' {
					t.Fatalf("byte %d (%q) not covered by any chunk", b, tt.text[b])
				}
			}
		})
	}
}

func TestChunkTextTokenSizeBoundMultiChunk(t *testing.T) {
	text := strings.Repeat("abcd", 25) // 100 characters, 32-character windows
	opts := Options{
		ChunkSize:         8,
		OverlapPercentage: 0.1,
		SizeUnit:          Tokens,
		TokenMethod:       Simple,
		IncludeMetadata:   true,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}

	budget := TokensToCharacters(opts.ChunkSize, opts.TokenMethod)
	covered := make([]bool, len(text))
	for i, c := range chunks {
		span := c.EndIndex - c.StartIndex
		if span > budget {
			t.Errorf("chunk %d spans %d bytes, budget is %d", i, span, budget)
		}
		if c.EstimatedTokens > opts.ChunkSize {
			t.Errorf("chunk %d EstimatedTokens = %d exceeds budget %d",
				i, c.EstimatedTokens, opts.ChunkSize)
		}
		if span == budget && c.EstimatedTokens != opts.ChunkSize {
			t.Errorf("full chunk %d EstimatedTokens = %d, want %d",
				i, c.EstimatedTokens, opts.ChunkSize)
		}
		for b := c.StartIndex; b < c.EndIndex; b++ {
			covered[b] = true
		}
	}
	for b := range covered {
		if !covered[b] {
			t.Fatalf("byte %d not covered by any chunk", b)
		}
	}
}

func TestChunkTextSkipsWhitespaceOnlyWindows(t *testing.T) {
	text := strings.Repeat(" ", 120) + "end word here"
	opts := Options{
		ChunkSize:              50,
		OverlapPercentage:      0.1,
		PreserveWordBoundaries: true,
		SizeUnit:               Characters,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %+v", len(chunks), chunks)
	}
	c := chunks[0]
	if c.Content != "end word here" {
		t.Errorf("Content = %q, want %q", c.Content, "end word here")
	}
	if c.StartIndex != 120 || c.EndIndex != len(text) {
		t.Errorf("offsets = [%d, %d), want [120, %d)", c.StartIndex, c.EndIndex, len(text))
	}
}

func TestChunkTextWhitespaceOnlyInput(t *testing.T) {
	text := strings.Repeat(" ", 12)
	opts := Options{
		ChunkSize:              5,
		PreserveWordBoundaries: true,
		SizeUnit:               Characters,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].StartIndex != 0 || chunks[0].EndIndex != len(text) {
		t.Errorf("offsets = [%d, %d), want [0, %d)",
			chunks[0].StartIndex, chunks[0].EndIndex, len(text))
	}
	if chunks[0].Content != "" {
		t.Errorf("Content = %q, want empty after trimming", chunks[0].Content)
	}
}

func TestChunkTextTokenBudget(t *testing.T) {
	text := "Hello world, this is a test."
	opts := Options{
		ChunkSize:       8, // 8 tokens = 32 characters under the simple heuristic
		SizeUnit:        Tokens,
		TokenMethod:     Simple,
		IncludeMetadata: true,
	}

	chunks, err := ChunkText(text, opts)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].EstimatedTokens > opts.ChunkSize {
		t.Errorf("EstimatedTokens = %d exceeds budget %d", chunks[0].EstimatedTokens, opts.ChunkSize)
	}
}

func TestChunkTextNoMetadata(t *testing.T) {
	chunks, err := ChunkText("some plain text", Options{ChunkSize: 100, SizeUnit: Characters})
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if chunks[0].EstimatedTokens != 0 {
		t.Errorf("EstimatedTokens = %d, want 0 when metadata disabled", chunks[0].EstimatedTokens)
	}
}

func TestChunkDocumentInvalidParameters(t *testing.T) {
	if _, err := ChunkDocument(nil, DefaultOptions()); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ChunkDocument(nil) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := ChunkDocument([]string{""}, DefaultOptions()); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ChunkDocument(empty page) error = %v, want ErrInvalidParameter", err)
	}
}

func TestChunkDocumentSinglePage(t *testing.T) {
	chunks, err := ChunkDocument([]string{"one short page"}, DefaultOptions())
	if err != nil {
		t.Fatalf("ChunkDocument() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].PageNumber != 0 {
		t.Errorf("PageNumber = %d, want 0", chunks[0].PageNumber)
	}
}

func TestChunkDocumentPageNumbers(t *testing.T) {
	pages := []string{
		"First page text here",
		"Second page follows",
		"Third",
	}
	opts := Options{
		ChunkSize: 11,
		SizeUnit:  Characters,
	}

	chunks, err := ChunkDocument(pages, opts)
	if err != nil {
		t.Fatalf("ChunkDocument() error = %v", err)
	}

	// Pages start at offsets 0, 22 and 43 in the joined text.
	wantPages := []int{0, 0, 1, 1, 2}
	if len(chunks) != len(wantPages) {
		t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(wantPages), chunks)
	}
	for i, want := range wantPages {
		if chunks[i].PageNumber != want {
			t.Errorf("chunk %d PageNumber = %d, want %d (start %d)",
				i, chunks[i].PageNumber, want, chunks[i].StartIndex)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].PageNumber < chunks[i-1].PageNumber {
			t.Errorf("page numbers decrease at chunk %d", i)
		}
	}
}

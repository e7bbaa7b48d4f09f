package chunker

import (
	"fmt"
	"strings"
)

// pageSeparator joins pages before segmentation. Chunk offsets refer to
// the joined text, separator bytes included.
const pageSeparator = "\n\n"

// ChunkDocument splits a multi-page document. Pages are concatenated in
// order with pageSeparator between them, segmented as one text, and each
// chunk is stamped with the 0-based page its start offset falls in.
func ChunkDocument(pages []string, opts Options) ([]TextChunk, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: empty page list", ErrInvalidParameter)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	pageStarts := make([]int, 0, len(pages))
	for i, page := range pages {
		pageStarts = append(pageStarts, sb.Len())
		sb.WriteString(page)
		if i < len(pages)-1 {
			sb.WriteString(pageSeparator)
		}
	}
	combined := sb.String()
	if combined == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidParameter)
	}

	chunks, err := segment(combined, opts)
	if err != nil {
		return nil, err
	}
	for i := range chunks {
		chunks[i].PageNumber = pageForOffset(pageStarts, chunks[i].StartIndex)
	}
	return chunks, nil
}

// pageForOffset returns the greatest page index whose start offset is at
// or before the given byte offset.
func pageForOffset(pageStarts []int, offset int) int {
	page := 0
	for i, start := range pageStarts {
		if start > offset {
			break
		}
		page = i
	}
	return page
}

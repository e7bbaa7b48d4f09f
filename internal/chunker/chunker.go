// Package chunker splits UTF-8 text into overlapping, size-bounded
// segments for embedding and LLM ingestion. Cuts never land inside a
// codepoint and, when requested, back off to the nearest word boundary.
package chunker

import (
	"fmt"
	"strings"

	"docchunk/internal/utf8x"
)

// ChunkText splits a single document into chunks according to opts.
// Validation failures return ErrInvalidParameter before any work starts;
// no partial output is produced.
func ChunkText(text string, opts Options) ([]TextChunk, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidParameter)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return segment(text, opts)
}

// segment runs the sliding-window pass over text. Any internal fault is
// converted to ErrProcessingFailed rather than escaping as a panic.
func segment(text string, opts Options) (chunks []TextChunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = fmt.Errorf("%w: %v", ErrProcessingFailed, r)
		}
	}()

	budget := opts.ChunkSize
	if opts.SizeUnit == Tokens {
		budget = TokensToCharacters(opts.ChunkSize, opts.TokenMethod)
		if budget < 1 {
			budget = 1
		}
	}

	cache := utf8x.NewCache(text)

	if len(text) <= budget {
		return []TextChunk{newChunk(cache, 0, len(text), opts)}, nil
	}

	overlap := int(float64(budget) * opts.OverlapPercentage)
	step := budget - overlap // > 0 because OverlapPercentage < 1
	window := opts.boundaryWindow()

	for pos := 0; pos < len(text); {
		end := pos + budget
		if end >= len(text) {
			end = len(text)
		} else {
			end = alignForward(cache, end)
			if opts.PreserveWordBoundaries && end < len(text) {
				end = adjustToWordBoundary(cache, pos, end, window)
			}
		}

		chunk := newChunk(cache, pos, end, opts)
		if !opts.PreserveWordBoundaries || chunk.Content != "" {
			chunks = append(chunks, chunk)
		}
		if end >= len(text) {
			break
		}

		next := end - overlap
		if next <= pos {
			next = pos + step
		}
		next = alignForward(cache, next)
		if opts.PreserveWordBoundaries {
			skip := nextWordStart(cache, next)
			if skip > end {
				// A skip past end may only cross whitespace. When the
				// cut landed mid-word the word continues past end and
				// has not been emitted; restart at the cut instead.
				if r, _ := cache.DecodeAt(end); r == utf8x.Invalid || !utf8x.IsWhitespace(r) {
					skip = end
				}
			}
			next = skip
		}
		pos = next
	}

	// Whitespace-only input past the single-chunk path: return the whole
	// text as one chunk rather than nothing.
	if len(chunks) == 0 {
		chunks = []TextChunk{newChunk(cache, 0, len(text), opts)}
	}

	return chunks, nil
}

// newChunk builds the chunk for text[start:end]. Offsets always refer to
// the untrimmed coordinate space even when the content is trimmed.
func newChunk(cache *utf8x.Cache, start, end int, opts Options) TextChunk {
	content := cache.Text()[start:end]
	if opts.PreserveWordBoundaries {
		content = strings.TrimSpace(content)
	}
	chunk := TextChunk{
		Content:    content,
		StartIndex: start,
		EndIndex:   end,
	}
	if opts.IncludeMetadata {
		chunk.EstimatedTokens = EstimateTokenCount(content, opts.TokenMethod)
	}
	return chunk
}

// alignForward moves pos forward to the start of the next codepoint,
// skipping continuation and malformed bytes, clamped to the text end.
func alignForward(cache *utf8x.Cache, pos int) int {
	for pos < cache.Len() {
		if r, _ := cache.DecodeAt(pos); r != utf8x.Invalid {
			return pos
		}
		pos++
	}
	return cache.Len()
}

// adjustToWordBoundary moves a tentative cut at end off the middle of a
// word. A cut that already lands on a separator is kept. Otherwise the
// word start found searching backward is used when it stays within
// window bytes and past the chunk start; then the word end found
// searching forward under the same window; a mid-word cut is accepted
// when both fail, so the loop cannot stall.
func adjustToWordBoundary(cache *utf8x.Cache, start, end, window int) int {
	if end >= cache.Len() {
		return cache.Len()
	}
	if r, _ := cache.DecodeAt(end); r != utf8x.Invalid && !utf8x.IsWordChar(r) {
		return end
	}

	if back := cache.FindWordBoundary(end, false); back > start && end-back <= window {
		return back
	}
	if fwd := cache.FindWordBoundary(end, true); fwd-end <= window {
		return fwd
	}
	return end
}

// nextWordStart returns pos when it already begins a word; otherwise it
// advances past the current word fragment and any whitespace to the
// start of the next word.
func nextWordStart(cache *utf8x.Cache, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= cache.Len() {
		return cache.Len()
	}

	r, _ := cache.DecodeAt(pos)
	if r != utf8x.Invalid && !utf8x.IsWhitespace(r) {
		prev, _ := cache.DecodeAt(cache.PrevStart(pos))
		if prev != utf8x.Invalid && utf8x.IsWhitespace(prev) {
			return pos
		}
	}

	b := pos
	inWord := r != utf8x.Invalid && !utf8x.IsWhitespace(r)
	for b < cache.Len() {
		c, next := cache.DecodeAt(b)
		if c == utf8x.Invalid {
			b = next
			continue
		}
		ws := utf8x.IsWhitespace(c)
		if inWord && ws {
			b = next
			break
		}
		if !inWord && !ws {
			return b
		}
		inWord = !ws
		b = next
	}
	for b < cache.Len() {
		c, next := cache.DecodeAt(b)
		if c != utf8x.Invalid && !utf8x.IsWhitespace(c) {
			break
		}
		b = next
	}
	return b
}

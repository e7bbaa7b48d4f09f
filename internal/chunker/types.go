package chunker

// TextChunk is one contiguous, possibly overlapping segment of the
// input. StartIndex and EndIndex are byte offsets into the original
// (page-concatenated) text, not into Content: when word boundaries are
// preserved, Content is trimmed of surrounding whitespace while the
// offsets keep the untrimmed coordinates.
type TextChunk struct {
	Content         string `json:"content"`
	StartIndex      int    `json:"start_index"`
	EndIndex        int    `json:"end_index"`
	PageNumber      int    `json:"page_number"`
	EstimatedTokens int    `json:"estimated_tokens"`
}

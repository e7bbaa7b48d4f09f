// Package tokenizer provides exact token counts via tiktoken
// vocabularies, complementing the chunker package's heuristics.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is used when no model or encoding is configured.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens with a fixed tiktoken encoding.
type Counter struct {
	encoding string
	encoder  *tiktoken.Tiktoken
}

// NewCounter creates a counter for the given model name or encoding
// name. Model names are resolved through tiktoken's model table first;
// anything unresolvable falls back to DefaultEncoding.
func NewCounter(modelOrEncoding string) (*Counter, error) {
	name := strings.TrimSpace(modelOrEncoding)

	if name != "" {
		if enc, err := tiktoken.GetEncoding(name); err == nil {
			return &Counter{encoding: name, encoder: enc}, nil
		}
		if enc, err := tiktoken.EncodingForModel(name); err == nil {
			return &Counter{encoding: name, encoder: enc}, nil
		}
	}

	enc, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("get default encoding: %w", err)
	}
	return &Counter{encoding: DefaultEncoding, encoder: enc}, nil
}

// Encoding returns the resolved encoding or model name.
func (c *Counter) Encoding() string {
	return c.encoding
}

// Count returns the exact number of tokens in text.
func (c *Counter) Count(text string) (int, error) {
	if c.encoder == nil {
		return 0, fmt.Errorf("tiktoken encoder not initialized")
	}
	return len(c.encoder.Encode(text, nil, nil)), nil
}

// Encode returns the token IDs for text.
func (c *Counter) Encode(text string) ([]int, error) {
	if c.encoder == nil {
		return nil, fmt.Errorf("tiktoken encoder not initialized")
	}
	return c.encoder.Encode(text, nil, nil), nil
}

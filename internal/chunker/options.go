package chunker

import "fmt"

// SizeUnit selects how Options.ChunkSize is interpreted.
type SizeUnit int

const (
	// Characters sizes chunks by character count (byte-proxied).
	Characters SizeUnit = iota
	// Tokens sizes chunks by approximate token count.
	Tokens
)

func (u SizeUnit) String() string {
	switch u {
	case Characters:
		return "characters"
	case Tokens:
		return "tokens"
	}
	return fmt.Sprintf("SizeUnit(%d)", int(u))
}

// TokenMethod selects the token estimation heuristic. None of these
// consult a tokenizer vocabulary; see the tokenizer package for exact
// counts.
type TokenMethod int

const (
	// Simple assumes ~4 characters per token.
	Simple TokenMethod = iota
	// WordBased counts word runs and assumes ~0.75 words per token.
	WordBased
	// Advanced prices word runs by length and punctuation per character.
	Advanced
)

func (m TokenMethod) String() string {
	switch m {
	case Simple:
		return "simple"
	case WordBased:
		return "word_based"
	case Advanced:
		return "advanced"
	}
	return fmt.Sprintf("TokenMethod(%d)", int(m))
}

const (
	// DefaultChunkSize is the default chunk budget.
	DefaultChunkSize = 500
	// DefaultOverlapPercentage is the default fraction of a chunk shared
	// with its successor.
	DefaultOverlapPercentage = 0.1
	// DefaultBoundaryWindow caps, in bytes, how far the word-boundary
	// search may move a cut in either direction.
	DefaultBoundaryWindow = 50
)

// Options configures a chunking call.
type Options struct {
	// ChunkSize is the chunk budget in SizeUnit units. Must be > 0.
	ChunkSize int
	// OverlapPercentage is the fraction of each chunk repeated at the
	// start of the next one. Must be in [0, 1).
	OverlapPercentage float64
	// PreserveWordBoundaries avoids cutting words and trims chunk
	// content of surrounding whitespace.
	PreserveWordBoundaries bool
	// IncludeMetadata controls whether per-chunk token estimates are
	// computed.
	IncludeMetadata bool
	// SizeUnit selects characters or approximate tokens for ChunkSize.
	SizeUnit SizeUnit
	// TokenMethod selects the estimation heuristic for token-sized
	// chunks and per-chunk estimates.
	TokenMethod TokenMethod
	// BoundaryWindow caps how many bytes the word-boundary search may
	// move a cut. Zero means DefaultBoundaryWindow.
	BoundaryWindow int
}

// DefaultOptions returns the options used when callers do not supply
// their own.
func DefaultOptions() Options {
	return Options{
		ChunkSize:              DefaultChunkSize,
		OverlapPercentage:      DefaultOverlapPercentage,
		PreserveWordBoundaries: true,
		IncludeMetadata:        true,
		SizeUnit:               Tokens,
		TokenMethod:            Simple,
		BoundaryWindow:         DefaultBoundaryWindow,
	}
}

func (o Options) boundaryWindow() int {
	if o.BoundaryWindow <= 0 {
		return DefaultBoundaryWindow
	}
	return o.BoundaryWindow
}

func (o Options) validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidParameter, o.ChunkSize)
	}
	if o.OverlapPercentage < 0 || o.OverlapPercentage >= 1 {
		return fmt.Errorf("%w: overlap percentage %g outside [0, 1)", ErrInvalidParameter, o.OverlapPercentage)
	}
	return nil
}

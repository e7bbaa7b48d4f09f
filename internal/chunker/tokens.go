package chunker

import (
	"math"

	"docchunk/internal/utf8x"
)

// Heuristic constants. Empirically ~4 characters per token holds across
// mixed prose; the word-based method assumes 0.75 words per token and 5
// characters per average word; the advanced method prices long words at
// 5 characters per token and inverts at 3.8 characters per token.
const (
	simpleCharsPerToken   = 4.0
	wordBasedTokenRatio   = 0.75
	wordBasedCharsPerWord = 5.0
	advancedCharsPerToken = 3.8
)

// EstimateTokenCount approximates how many model tokens text consumes
// using the selected heuristic. The result is deterministic for a given
// (text, method) pair. No tokenizer vocabulary is consulted; callers
// that need exact counts should use the tokenizer package instead.
func EstimateTokenCount(text string, method TokenMethod) int {
	if text == "" {
		return 0
	}
	switch method {
	case WordBased:
		return estimateTokensWordBased(text)
	case Advanced:
		return estimateTokensAdvanced(text)
	default:
		return int(math.Ceil(float64(len(text)) / simpleCharsPerToken))
	}
}

// TokensToCharacters converts a token budget to an approximate character
// budget, inverting the corresponding heuristic.
func TokensToCharacters(tokens int, method TokenMethod) int {
	if tokens <= 0 {
		return 0
	}
	switch method {
	case WordBased:
		return int(math.Round(float64(tokens) / wordBasedTokenRatio * wordBasedCharsPerWord))
	case Advanced:
		return int(math.Round(float64(tokens) * advancedCharsPerToken))
	default:
		return tokens * int(simpleCharsPerToken)
	}
}

// isWordRune reports whether r extends a word run for estimation
// purposes: alphanumerics plus apostrophe and hyphen, so contractions
// and hyphenated words count once.
func isWordRune(r rune) bool {
	return r == '\'' || r == '-' || utf8x.IsWordChar(r)
}

func estimateTokensWordBased(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		if isWordRune(r) {
			if !inWord {
				words++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return int(math.Round(float64(words) / wordBasedTokenRatio))
}

func estimateTokensAdvanced(text string) int {
	tokens := 0
	runLen := 0
	flush := func() {
		switch {
		case runLen == 0:
		case runLen <= 6:
			tokens++
		case runLen <= 10:
			tokens += 2
		default:
			tokens += (runLen + 4) / 5 // ceil(len/5)
		}
		runLen = 0
	}
	for _, r := range text {
		switch {
		case isWordRune(r):
			runLen++
		case utf8x.IsWhitespace(r):
			flush()
		default:
			// Punctuation costs one token per character.
			flush()
			tokens++
		}
	}
	flush()
	return tokens
}

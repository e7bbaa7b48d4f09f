// Package utf8x provides byte-offset oriented UTF-8 decoding for the
// chunking engine. Unlike ranging over a string, every operation here is
// addressed by byte position so that chunk offsets stay anchored in the
// original text.
package utf8x

import (
	"unicode"
	"unicode/utf8"
)

// Invalid is reported for byte positions that do not hold the leading
// byte of a well-formed UTF-8 sequence: continuation bytes, malformed or
// truncated sequences, and positions at or past the end of the text.
const Invalid rune = -1

// DecodeAt decodes the UTF-8 sequence starting at byte offset pos and
// returns the codepoint together with the byte offset immediately after
// it. Positions at or past the end return (Invalid, len(text)).
// Malformed input returns (Invalid, pos+1) so scanning loops always make
// forward progress.
func DecodeAt(text string, pos int) (rune, int) {
	if pos >= len(text) {
		return Invalid, len(text)
	}
	if pos < 0 {
		return Invalid, 0
	}
	r, size := utf8.DecodeRuneInString(text[pos:])
	if r == utf8.RuneError && size <= 1 {
		return Invalid, pos + 1
	}
	return r, pos + size
}

// IsWordChar reports whether r is a word character: ASCII alphanumerics
// and underscore below 128, Unicode letters and digits above.
func IsWordChar(r rune) bool {
	if r < 0 {
		return false
	}
	if r < 128 {
		return r == '_' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsWhitespace reports whether r is whitespace: the ASCII space
// characters below 128, the Unicode space property above.
func IsWhitespace(r rune) bool {
	if r < 0 {
		return false
	}
	if r < 128 {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return true
		}
		return false
	}
	return unicode.IsSpace(r)
}

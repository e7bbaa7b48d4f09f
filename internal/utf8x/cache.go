package utf8x

// Cache is a forward index over one text buffer: for every byte offset
// it records the codepoint starting there (or Invalid) and the offset of
// the following codepoint, so repeated per-character queries are O(1)
// instead of rescans from byte zero.
//
// A Cache is only valid for the exact text it was built from; build a
// new one when the text changes. It is a plain caller-owned value with
// no synchronization, so it must not be shared across goroutines.
type Cache struct {
	text      string
	runeAt    []rune
	nextAt    []int
	charStart []int // byte offset of the k-th codepoint, plus len(text)
}

// NewCache scans text once and builds the index. Continuation bytes
// inside a valid sequence are recorded as Invalid with next = offset+1,
// so a query landing mid-sequence still advances safely. Malformed bytes
// get the same single-byte-skip treatment.
func NewCache(text string) *Cache {
	c := &Cache{
		text:   text,
		runeAt: make([]rune, len(text)+1),
		nextAt: make([]int, len(text)+1),
	}
	c.runeAt[len(text)] = Invalid
	c.nextAt[len(text)] = len(text)

	for pos := 0; pos < len(text); {
		r, next := DecodeAt(text, pos)
		c.runeAt[pos] = r
		c.nextAt[pos] = next
		if r != Invalid {
			c.charStart = append(c.charStart, pos)
			for b := pos + 1; b < next; b++ {
				c.runeAt[b] = Invalid
				c.nextAt[b] = b + 1
			}
		}
		pos = next
	}
	c.charStart = append(c.charStart, len(text))
	return c
}

// Text returns the buffer the cache was built from.
func (c *Cache) Text() string { return c.text }

// Len returns the byte length of the cached text.
func (c *Cache) Len() int { return len(c.text) }

// CharLength returns the number of valid codepoints in the text.
func (c *Cache) CharLength() int { return len(c.charStart) - 1 }

// DecodeAt returns the codepoint starting at byte offset pos and the
// byte offset after it, with the same contract as the package-level
// DecodeAt but answered from the index.
func (c *Cache) DecodeAt(pos int) (rune, int) {
	if pos >= len(c.text) {
		return Invalid, len(c.text)
	}
	if pos < 0 {
		return Invalid, 0
	}
	return c.runeAt[pos], c.nextAt[pos]
}

// BytePosForCharIndex returns the byte offset where the n-th codepoint
// starts. Indexes at or past the end map to len(text).
func (c *Cache) BytePosForCharIndex(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(c.charStart) {
		return len(c.text)
	}
	return c.charStart[n]
}

// Substring returns the text spanning charCount codepoints starting at
// codepoint index charStart.
func (c *Cache) Substring(charStart, charCount int) string {
	if charCount <= 0 || charStart >= c.CharLength() {
		return ""
	}
	start := c.BytePosForCharIndex(charStart)
	end := c.BytePosForCharIndex(charStart + charCount)
	if start >= end {
		return ""
	}
	return c.text[start:end]
}

// PrevStart returns the byte offset of the codepoint immediately before
// pos, stepping over continuation bytes. At or below zero it returns 0.
func (c *Cache) PrevStart(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(c.text) {
		pos = len(c.text)
	}
	b := pos - 1
	for b > 0 && c.text[b]&0xC0 == 0x80 {
		b--
	}
	return b
}

// FindWordBoundary walks codepoint by codepoint from pos and returns the
// byte offset of the nearest word boundary. A forward search returns the
// offset of the first transition from a word character to a non-word
// character; a backward search walks toward byte zero and returns the
// offset of the first transition from a non-word character to a word
// character, which is the start of the word containing pos. Both are
// bounded by [0, len(text)] and advance at least one byte per step.
func (c *Cache) FindWordBoundary(pos int, forward bool) int {
	if len(c.text) == 0 {
		return 0
	}
	if pos >= len(c.text) {
		return len(c.text)
	}
	if pos < 0 {
		pos = 0
	}

	if forward {
		inWord := false
		for b := pos; b < len(c.text); {
			r, next := c.runeAt[b], c.nextAt[b]
			if r == Invalid {
				b = next
				continue
			}
			isWord := IsWordChar(r)
			if inWord && !isWord {
				return b
			}
			inWord = isWord
			b = next
		}
		return len(c.text)
	}

	rightIsWord := false
	if r := c.runeAt[pos]; r != Invalid {
		rightIsWord = IsWordChar(r)
	}
	for b := pos; b > 0; {
		prev := c.PrevStart(b)
		if r := c.runeAt[prev]; r != Invalid {
			isWord := IsWordChar(r)
			if rightIsWord && !isWord {
				return b
			}
			rightIsWord = isWord
		}
		b = prev
	}
	return 0
}

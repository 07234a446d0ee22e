package thing

import "unicode/utf8"

// EOFChar is returned by the cursor once the source is exhausted.
const EOFChar = '\x00'

type cursor struct {
	source string

	offset int
	start  int
}

func newCursor(source string) *cursor {
	return &cursor{source: source}
}

func (c *cursor) advance() rune {
	if c.offset >= len(c.source) {
		return EOFChar
	}
	r, w := utf8.DecodeRuneInString(c.source[c.offset:])
	c.offset += w
	return r
}

func (c *cursor) lookahead(n int) rune {
	idx := c.offset
	for i := 0; ; i++ {
		if idx >= len(c.source) {
			return EOFChar
		}
		r, w := utf8.DecodeRuneInString(c.source[idx:])
		if i == n {
			return r
		}
		idx += w
	}
}

func (c *cursor) isAtEnd() bool {
	return c.offset >= len(c.source)
}

func (c *cursor) bytesRemaining() int {
	return len(c.source) - c.offset
}

func (c *cursor) resetStart() {
	c.start = c.offset
}

// span returns everything consumed since the last resetStart.
func (c *cursor) span() Span {
	return Span{source: c.source, start: c.start, end: c.offset}
}

func (c *cursor) resetSpan() Span {
	s := c.span()
	c.resetStart()
	return s
}

package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"esdata/internal/source"
)

// Cursor walks the bytes of one source text. Reads past the end yield 0.
type Cursor struct {
	Text string
	Off  uint32
	end  uint32
}

// NewCursor creates a cursor at the start of text.
func NewCursor(text string) Cursor {
	var c Cursor
	c.SetText(text)
	return c
}

// SetText swaps in a longer version of the same text, keeping the offset.
func (c *Cursor) SetText(text string) {
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	c.Text, c.end = text, n
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Peek returns the current byte without consuming it.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// Bump consumes and returns the current byte.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// BumpRune consumes one UTF-8 character; an invalid byte is consumed alone.
func (c *Cursor) BumpRune() rune {
	if c.EOF() {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(c.Text[c.Off:])
	c.Off += uint32(size) // size <= utf8.UTFMax
	return r
}

// Mark is a saved offset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// Eat consumes the current byte if it is b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Text[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// SkipUntil advances to the next byte found in stop, or to the end.
func (c *Cursor) SkipUntil(stop ...byte) {
	if c.EOF() {
		return
	}
	i := strings.IndexAny(c.Text[c.Off:], string(stop))
	if i < 0 {
		c.Off = c.end
		return
	}
	c.Off += uint32(i) // i < len(Text) - Off
}

package data

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"esdata/internal/arena"
	"esdata/internal/source"
	"esdata/internal/token"
)

// ErrNoLexeme is returned by TryGetNumber when the token has no text
// in the given source.
var ErrNoLexeme = errors.New("token has no lexeme in source")

// SourceIndex is a handle to a source text stored in a Data.
type SourceIndex struct {
	index arena.Index
}

// Generation returns the arena generation of the handle.
func (s SourceIndex) Generation() uint64 { return s.index.Generation() }

// Slot returns the arena slot of the handle.
func (s SourceIndex) Slot() int { return s.index.Slot() }

func (s SourceIndex) String() string { return "source " + s.index.String() }

// InsertSource stores text as a new source.
func (d *Data) InsertSource(text string) SourceIndex {
	b := &strings.Builder{}
	b.WriteString(text)
	return SourceIndex{index: d.sources.Insert(b)}
}

// GetSource returns the current text of src.
func (d *Data) GetSource(src SourceIndex) (string, bool) {
	b, ok := d.sources.Get(src.index)
	if !ok {
		return "", false
	}
	return b.String(), true
}

// PushSource appends text to src and returns the byte range it now occupies.
// Existing bytes are never rewritten, so earlier spans stay valid.
func (d *Data) PushSource(src SourceIndex, text string) (source.Span, bool) {
	b, ok := d.sources.Get(src.index)
	if !ok {
		return source.Span{}, false
	}
	start := b.Len()
	b.WriteString(text)
	return source.NewSpan(start, b.Len()), true
}

// SourceCount returns the number of stored sources.
func (d *Data) SourceCount() int { return d.sources.Len() }

// Sources yields every source handle in insertion slot order.
func (d *Data) Sources() iter.Seq[SourceIndex] {
	return func(yield func(SourceIndex) bool) {
		for idx := range d.sources.Occupied() {
			if !yield(SourceIndex{index: idx}) {
				return
			}
		}
	}
}

// GetLexeme returns the text of tok within src.
func (d *Data) GetLexeme(src SourceIndex, tok token.Token) (string, bool) {
	text, ok := d.GetSource(src)
	if !ok {
		return "", false
	}
	return tok.Lexeme(text)
}

// TryGetNumber parses the lexeme of tok as a float64.
// It returns ErrNoLexeme when the token cannot be resolved and a wrapped
// strconv error when the text is not a number.
func (d *Data) TryGetNumber(src SourceIndex, tok token.Token) (float64, error) {
	lexeme, ok := d.GetLexeme(src, tok)
	if !ok {
		return 0, ErrNoLexeme
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0, fmt.Errorf("lexeme %q is not a number: %w", lexeme, err)
	}
	return v, nil
}

// Package lexer turns the text of one data-file source into Symbol, Indent
// and Newline tokens.
//
// Lexical errors are reported in-band and never stop scanning. For mixed
// indentation and unclosed strings the error is followed by the token that
// was recovered; a non-ASCII character yields the error alone.
package lexer

import (
	"iter"

	"esdata/internal/data"
	"esdata/internal/source"
	"esdata/internal/token"
)

// Item is one element of the token stream: a token or an error.
type Item struct {
	Token token.Token
	Err   *Error
}

// IsErr reports whether the item carries an error.
func (it Item) IsErr() bool { return it.Err != nil }

type indentKind uint8

const (
	indentUnknown indentKind = iota
	indentSpace
	indentTab
	indentMixed
)

// Lexer reads tokens from one source of a data.Data.
type Lexer struct {
	data      *data.Data
	src       data.SourceIndex
	cursor    Cursor
	onNewLine bool
	indent    indentKind
	look      *Item // буфер Peek
	pending   *Item // токен, восстановленный после ошибки
}

// New creates a lexer positioned at the start of src.
func New(d *data.Data, src data.SourceIndex) *Lexer {
	return &Lexer{
		data:      d,
		src:       src,
		onNewLine: true,
	}
}

// Source returns the source being tokenized.
func (lx *Lexer) Source() data.SourceIndex { return lx.src }

// Peek returns the next item without consuming it.
// Repeated calls return the same item.
func (lx *Lexer) Peek() (Item, bool) {
	if lx.look == nil {
		it, ok := lx.advance()
		if !ok {
			return Item{}, false
		}
		lx.look = &it
	}
	return *lx.look, true
}

// Next consumes and returns the next item. It returns false at end of input.
func (lx *Lexer) Next() (Item, bool) {
	if lx.look != nil {
		it := *lx.look
		lx.look = nil
		return it, true
	}
	return lx.advance()
}

// All yields the remaining items.
func (lx *Lexer) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for {
			it, ok := lx.Next()
			if !ok || !yield(it) {
				return
			}
		}
	}
}

func (lx *Lexer) advance() (Item, bool) {
	if lx.pending != nil {
		it := *lx.pending
		lx.pending = nil
		return it, true
	}

	// источник мог вырасти через PushSource
	text, ok := lx.data.GetSource(lx.src)
	if !ok {
		return Item{}, false
	}
	lx.cursor.SetText(text)

	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == '\n':
			lx.cursor.Bump()
			lx.onNewLine = true
			return lx.token(token.Newline, start), true

		case (b == ' ' || b == '\t') && lx.onNewLine:
			lx.cursor.Bump()
			return lx.indentToken(b, start), true

		case b == ' ' || b == '\t' || b == '\r' || b == '\f':
			lx.cursor.Bump()

		case b == '#':
			lx.cursor.SkipUntil('\n')

		case b == '"' || b == '`':
			lx.onNewLine = false
			return lx.quoted(b, start), true

		case b < 0x80:
			lx.onNewLine = false
			for !lx.cursor.EOF() {
				n := lx.cursor.Peek()
				if n >= 0x80 || isASCIISpace(n) {
					break
				}
				lx.cursor.Bump()
			}
			return lx.token(token.Symbol, start), true

		default:
			lx.onNewLine = false
			lx.cursor.BumpRune()
			return Item{Err: NewError(NonASCIICharacter, lx.cursor.SpanFrom(start))}, true
		}
	}
	return Item{}, false
}

func (lx *Lexer) token(k token.Kind, start Mark) Item {
	return Item{Token: token.Token{Kind: k, Span: lx.cursor.SpanFrom(start)}}
}

func (lx *Lexer) indentToken(b byte, start Mark) Item {
	it := lx.token(token.Indent, start)
	mine, other := indentSpace, indentTab
	if b == '\t' {
		mine, other = indentTab, indentSpace
	}
	switch lx.indent {
	case indentUnknown:
		lx.indent = mine
	case other:
		lx.indent = indentMixed
		lx.pending = &it
		return Item{Err: NewError(MixedIndentation, it.Token.Span)}
	}
	return it
}

// quoted scans a string opened by quote. The token excludes the quotes;
// an unclosed string reports the opening quote and keeps the partial token.
func (lx *Lexer) quoted(quote byte, start Mark) Item {
	lx.cursor.Bump()
	afterQuote := lx.cursor.Mark()
	lx.cursor.SkipUntil('\n', quote)
	it := lx.token(token.Symbol, afterQuote)

	if !lx.cursor.Eat(quote) {
		lx.pending = &it
		return Item{Err: NewError(UnclosedString, lx.spanBetween(start, afterQuote))}
	}
	return it
}

func (lx *Lexer) spanBetween(from, to Mark) source.Span {
	return source.Span{Start: uint32(from), End: uint32(to)}
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

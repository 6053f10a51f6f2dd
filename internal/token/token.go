package token

import (
	"esdata/internal/source"
)

// Token is a kind plus the byte range it was read from.
type Token struct {
	Kind Kind
	Span source.Span
}

// New returns a token of kind k spanning [start, end).
func New(k Kind, start, end int) Token {
	return Token{Kind: k, Span: source.NewSpan(start, end)}
}

// Lexeme returns the token text within src, or false when the span
// is not valid for src.
func (t Token) Lexeme(src string) (string, bool) {
	return t.Span.Slice(src)
}

// IsSymbol reports whether the token carries a lexeme.
func (t Token) IsSymbol() bool {
	return t.Kind == Symbol
}

package data

import (
	"esdata/internal/token"
)

// InsertLeaf appends each lexeme to src and inserts a leaf whose Symbol
// tokens span them. Lexemes are appended back to back without separators;
// the tokens, not the raw text, carry the structure.
// It returns the error sentinel when src is unknown.
func (d *Data) InsertLeaf(src SourceIndex, lexemes ...string) NodeIndex {
	tokens := make([]token.Token, 0, len(lexemes))
	for _, lexeme := range lexemes {
		span, ok := d.PushSource(src, lexeme)
		if !ok {
			return d.errNode
		}
		tokens = append(tokens, token.Token{Kind: token.Symbol, Span: span})
	}
	return d.InsertNode(Leaf(tokens...))
}

// InsertChild is InsertLeaf followed by PushChild(parent, leaf).
func (d *Data) InsertChild(src SourceIndex, parent NodeIndex, lexemes ...string) NodeIndex {
	child := d.InsertLeaf(src, lexemes...)
	if child != d.errNode {
		d.PushChild(parent, child)
	}
	return child
}

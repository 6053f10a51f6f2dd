package data

import (
	"iter"

	"esdata/internal/token"
)

// Predicate inspects the tokens of a node belonging to src.
type Predicate func(src SourceIndex, tokens []token.Token) bool

// Filter yields the roots whose tokens satisfy pred, in parse order.
// Roots that do not resolve are skipped.
func (d *Data) Filter(pred Predicate) iter.Seq[Root] {
	return func(yield func(Root) bool) {
		for _, r := range d.roots {
			tokens, ok := d.GetTokens(r.Node)
			if !ok || !pred(r.Source, tokens) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// FilterChildren yields the direct children of node whose tokens satisfy pred.
func (d *Data) FilterChildren(src SourceIndex, node NodeIndex, pred Predicate) iter.Seq[NodeIndex] {
	return func(yield func(NodeIndex) bool) {
		children, _ := d.GetChildren(node)
		for _, child := range children {
			tokens, ok := d.GetTokens(child)
			if !ok || !pred(src, tokens) {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// Keyword returns a predicate matching nodes whose first lexeme is key.
func (d *Data) Keyword(key string) Predicate {
	return func(src SourceIndex, tokens []token.Token) bool {
		if len(tokens) == 0 {
			return false
		}
		lexeme, ok := d.GetLexeme(src, tokens[0])
		return ok && lexeme == key
	}
}

// Path yields the nodes reached by matching keys[0] against roots and each
// following key against the children of the previous match.
// An empty path yields nothing.
func (d *Data) Path(keys ...string) iter.Seq[Root] {
	return func(yield func(Root) bool) {
		if len(keys) == 0 {
			return
		}
		for r := range d.Filter(d.Keyword(keys[0])) {
			for n := range d.ChildPath(r.Source, r.Node, keys[1:]...) {
				if !yield(Root{Source: r.Source, Node: n}) {
					return
				}
			}
		}
	}
}

// ChildPath is Path scoped below node. An empty path yields node itself.
func (d *Data) ChildPath(src SourceIndex, node NodeIndex, keys ...string) iter.Seq[NodeIndex] {
	return func(yield func(NodeIndex) bool) {
		d.walkPath(src, node, keys, yield)
	}
}

func (d *Data) walkPath(src SourceIndex, node NodeIndex, keys []string, yield func(NodeIndex) bool) bool {
	if len(keys) == 0 {
		return yield(node)
	}
	for child := range d.FilterChildren(src, node, d.Keyword(keys[0])) {
		if !d.walkPath(src, child, keys[1:], yield) {
			return false
		}
	}
	return true
}

// Lexemes returns the texts of the node's tokens. Tokens that do not
// resolve are skipped.
func (d *Data) Lexemes(src SourceIndex, node NodeIndex) []string {
	tokens, _ := d.GetTokens(node)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if lexeme, ok := d.GetLexeme(src, tok); ok {
			out = append(out, lexeme)
		}
	}
	return out
}

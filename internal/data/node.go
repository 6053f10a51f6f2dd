package data

import (
	"esdata/internal/arena"
	"esdata/internal/token"
)

// NodeIndex is a handle to a node stored in a Data.
type NodeIndex struct {
	index arena.Index
}

// Generation returns the arena generation of the handle.
func (n NodeIndex) Generation() uint64 { return n.index.Generation() }

// Slot returns the arena slot of the handle.
func (n NodeIndex) Slot() int { return n.index.Slot() }

func (n NodeIndex) String() string { return "node " + n.index.String() }

// NodeKind discriminates Node variants.
type NodeKind uint8

const (
	// NodeLeaf is a line without nested lines.
	NodeLeaf NodeKind = iota
	// NodeParent is a line with at least one nested line.
	NodeParent
	// NodeError is the shared "no such node" sentinel.
	NodeError
)

func (k NodeKind) String() string {
	switch k {
	case NodeLeaf:
		return "Leaf"
	case NodeParent:
		return "Parent"
	case NodeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Node is one line of a data file.
// Children is only meaningful for NodeParent.
type Node struct {
	Kind     NodeKind
	Tokens   []token.Token
	Children []NodeIndex
}

// Leaf returns a leaf node holding tokens.
func Leaf(tokens ...token.Token) Node {
	return Node{Kind: NodeLeaf, Tokens: tokens}
}

// Parent returns a parent node holding tokens and children.
func Parent(tokens []token.Token, children []NodeIndex) Node {
	return Node{Kind: NodeParent, Tokens: tokens, Children: children}
}

// IsError reports whether n is the error sentinel.
func (n Node) IsError() bool { return n.Kind == NodeError }

package data

import (
	"strings"

	"esdata/internal/arena"
	"esdata/internal/token"
)

// Root is a top-level node together with the source it was parsed from.
type Root struct {
	Source SourceIndex
	Node   NodeIndex
}

// Data owns every node and source text of a parse session.
// It is not safe for concurrent use; parallel parsing uses one Data per
// worker and Merge afterwards.
type Data struct {
	nodes   *arena.Arena[Node]
	sources *arena.Arena[*strings.Builder]
	roots   []Root
	errNode NodeIndex
}

// New creates an empty Data with its error sentinel already inserted.
func New() *Data {
	d := &Data{
		nodes:   arena.New[Node](64),
		sources: arena.New[*strings.Builder](4),
	}
	d.errNode = NodeIndex{index: d.nodes.Insert(Node{Kind: NodeError})}
	return d
}

// ErrorNode returns the shared error sentinel.
func (d *Data) ErrorNode() NodeIndex { return d.errNode }

// NodeCount returns the number of live nodes, the sentinel included.
func (d *Data) NodeCount() int { return d.nodes.Len() }

// InsertNode stores n and returns its handle.
func (d *Data) InsertNode(n Node) NodeIndex {
	return NodeIndex{index: d.nodes.Insert(n)}
}

// GetNode returns a copy of the node at idx.
// The copy shares token and child storage with the stored node.
func (d *Data) GetNode(idx NodeIndex) (Node, bool) {
	return d.nodes.Get(idx.index)
}

// GetMutNode returns the stored node for in-place mutation.
// It returns nil for unknown handles and for the error sentinel.
func (d *Data) GetMutNode(idx NodeIndex) *Node {
	n := d.nodes.GetMut(idx.index)
	if n == nil || n.Kind == NodeError {
		return nil
	}
	return n
}

// RemoveNode frees the node at idx. The error sentinel cannot be removed.
// Parents that still list idx as a child keep a dangling handle that
// resolves to nothing.
func (d *Data) RemoveNode(idx NodeIndex) (Node, bool) {
	if idx == d.errNode {
		return Node{}, false
	}
	return d.nodes.Remove(idx.index)
}

// PushChild appends child to parent, promoting a leaf parent in place.
// It does nothing and returns false when parent is unknown or the error
// sentinel, or when child does not resolve to a non-error node.
func (d *Data) PushChild(parent, child NodeIndex) bool {
	c, ok := d.nodes.Get(child.index)
	if !ok || c.Kind == NodeError {
		return false
	}
	p := d.GetMutNode(parent)
	if p == nil {
		return false
	}
	// Leaf -> Parent без смены индекса
	p.Kind = NodeParent
	p.Children = append(p.Children, child)
	return true
}

// PushToken appends tok to the node's token list.
func (d *Data) PushToken(idx NodeIndex, tok token.Token) bool {
	n := d.GetMutNode(idx)
	if n == nil {
		return false
	}
	n.Tokens = append(n.Tokens, tok)
	return true
}

// GetTokens returns the node's tokens. The slice is capped so appending
// to it never writes into the node.
func (d *Data) GetTokens(idx NodeIndex) ([]token.Token, bool) {
	n, ok := d.nodes.Get(idx.index)
	if !ok || n.Kind == NodeError {
		return nil, false
	}
	return n.Tokens[:len(n.Tokens):len(n.Tokens)], true
}

// GetMutTokens returns the node's token list for in-place editing.
func (d *Data) GetMutTokens(idx NodeIndex) (*[]token.Token, bool) {
	n := d.GetMutNode(idx)
	if n == nil {
		return nil, false
	}
	return &n.Tokens, true
}

// GetChildren returns the children of a parent node.
func (d *Data) GetChildren(idx NodeIndex) ([]NodeIndex, bool) {
	n, ok := d.nodes.Get(idx.index)
	if !ok || n.Kind != NodeParent {
		return nil, false
	}
	return n.Children[:len(n.Children):len(n.Children)], true
}

// GetMutChildren returns the child list of a parent node for in-place editing.
func (d *Data) GetMutChildren(idx NodeIndex) (*[]NodeIndex, bool) {
	n := d.GetMutNode(idx)
	if n == nil || n.Kind != NodeParent {
		return nil, false
	}
	return &n.Children, true
}

// PushRootNode registers node as the next root of src.
func (d *Data) PushRootNode(src SourceIndex, node NodeIndex) {
	d.roots = append(d.roots, Root{Source: src, Node: node})
}

// RootNodes returns every root in parse order.
func (d *Data) RootNodes() []Root {
	return d.roots[:len(d.roots):len(d.roots)]
}

// SourceRoots returns the roots parsed from src, in parse order.
func (d *Data) SourceRoots(src SourceIndex) []Root {
	var out []Root
	for _, r := range d.roots {
		if r.Source == src {
			out = append(out, r)
		}
	}
	return out
}

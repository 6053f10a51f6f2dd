package data

import (
	"esdata/internal/source"
	"esdata/internal/token"
)

// Snapshot is a flat, serializable copy of one source and its roots.
// Node references are positions in Nodes; shared nodes stay shared.
type Snapshot struct {
	Text  string         `msgpack:"text" json:"text"`
	Nodes []SnapshotNode `msgpack:"nodes" json:"nodes"`
	Roots []int          `msgpack:"roots" json:"roots"`
}

// SnapshotNode is one node of a Snapshot.
type SnapshotNode struct {
	Kind     NodeKind        `msgpack:"kind" json:"kind"`
	Tokens   []SnapshotToken `msgpack:"tokens,omitempty" json:"tokens,omitempty"`
	Children []int           `msgpack:"children,omitempty" json:"children,omitempty"`
}

// SnapshotToken is a token with its span flattened.
type SnapshotToken struct {
	Kind  token.Kind `msgpack:"kind" json:"kind"`
	Start uint32     `msgpack:"start" json:"start"`
	End   uint32     `msgpack:"end" json:"end"`
}

// Export captures src and the trees of its roots.
func (d *Data) Export(src SourceIndex) (Snapshot, bool) {
	text, ok := d.GetSource(src)
	if !ok {
		return Snapshot{}, false
	}
	snap := Snapshot{Text: text}
	seen := make(map[NodeIndex]int)

	var visit func(idx NodeIndex) (int, bool)
	visit = func(idx NodeIndex) (int, bool) {
		if pos, ok := seen[idx]; ok {
			return pos, true
		}
		n, ok := d.GetNode(idx)
		if !ok {
			return 0, false
		}
		pos := len(snap.Nodes)
		seen[idx] = pos
		snap.Nodes = append(snap.Nodes, SnapshotNode{Kind: n.Kind})
		tokens := make([]SnapshotToken, 0, len(n.Tokens))
		for _, tok := range n.Tokens {
			tokens = append(tokens, SnapshotToken{Kind: tok.Kind, Start: tok.Span.Start, End: tok.Span.End})
		}
		var children []int
		for _, child := range n.Children {
			if c, ok := visit(child); ok {
				children = append(children, c)
			}
		}
		snap.Nodes[pos].Tokens = tokens
		snap.Nodes[pos].Children = children
		return pos, true
	}

	for _, r := range d.roots {
		if r.Source != src {
			continue
		}
		if pos, ok := visit(r.Node); ok {
			snap.Roots = append(snap.Roots, pos)
		}
	}
	return snap, true
}

// Import inserts the snapshot as a new source with its roots registered
// in order. Out-of-range node references are dropped.
func (d *Data) Import(snap Snapshot) SourceIndex {
	src := d.InsertSource(snap.Text)
	handles := make([]NodeIndex, len(snap.Nodes))
	for i, sn := range snap.Nodes {
		if sn.Kind == NodeError {
			handles[i] = d.errNode
			continue
		}
		tokens := make([]token.Token, 0, len(sn.Tokens))
		for _, st := range sn.Tokens {
			tokens = append(tokens, token.Token{Kind: st.Kind, Span: source.Span{Start: st.Start, End: st.End}})
		}
		handles[i] = d.InsertNode(Node{Kind: sn.Kind, Tokens: tokens})
	}
	for i, sn := range snap.Nodes {
		n := d.GetMutNode(handles[i])
		if n == nil {
			continue
		}
		for _, c := range sn.Children {
			if c >= 0 && c < len(handles) {
				n.Children = append(n.Children, handles[c])
			}
		}
	}
	for _, r := range snap.Roots {
		if r >= 0 && r < len(handles) {
			d.PushRootNode(src, handles[r])
		}
	}
	return src
}

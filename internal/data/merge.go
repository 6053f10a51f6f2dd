package data

import "slices"

// Merge moves every source, node and root of other into d and returns the
// mapping from other's source handles to the new ones. Roots keep their
// relative order and are appended after d's existing roots.
// other must not be used afterwards.
func (d *Data) Merge(other *Data) map[SourceIndex]SourceIndex {
	sources := make(map[SourceIndex]SourceIndex, other.sources.Len())
	for idx, b := range other.sources.All() {
		sources[SourceIndex{index: idx}] = d.InsertSource(b.String())
	}

	nodes := make(map[NodeIndex]NodeIndex, other.nodes.Len())
	nodes[other.errNode] = d.errNode
	for idx, n := range other.nodes.All() {
		old := NodeIndex{index: idx}
		if old == other.errNode {
			continue
		}
		nodes[old] = d.InsertNode(Node{
			Kind:     n.Kind,
			Tokens:   slices.Clone(n.Tokens),
			Children: slices.Clone(n.Children),
		})
	}

	for _, idx := range nodes {
		n := d.GetMutNode(idx)
		if n == nil || len(n.Children) == 0 {
			continue
		}
		// висячие ссылки на удалённые узлы отбрасываются
		n.Children = slices.DeleteFunc(n.Children, func(c NodeIndex) bool {
			_, ok := nodes[c]
			return !ok
		})
		for i, c := range n.Children {
			n.Children[i] = nodes[c]
		}
	}

	for _, r := range other.roots {
		src, ok := sources[r.Source]
		if !ok {
			continue
		}
		node, ok := nodes[r.Node]
		if !ok {
			continue
		}
		d.PushRootNode(src, node)
	}
	return sources
}

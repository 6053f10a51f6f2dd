package data

import (
	"io"
	"strings"
)

// rootSeparator follows every tree written by WriteRootNodes.
const rootSeparator = "\n\n\n\n"

type visitKey struct {
	src  SourceIndex
	node NodeIndex
}

type treeWriter struct {
	d       *Data
	w       io.Writer
	err     error
	visited map[visitKey]struct{}
}

func (tw *treeWriter) str(s string) {
	if tw.err != nil {
		return
	}
	_, tw.err = io.WriteString(tw.w, s)
}

// Write serializes node and its descendants as data-file text.
// Children are placed on their own lines, indent+1 tabs deep.
func (d *Data) Write(w io.Writer, src SourceIndex, node NodeIndex, indent int) error {
	tw := &treeWriter{d: d, w: w, visited: make(map[visitKey]struct{})}
	tw.node(src, node, indent)
	return tw.err
}

// WriteRootNodes serializes each root in order, separating trees with
// blank lines. One visited set spans all roots.
func (d *Data) WriteRootNodes(w io.Writer, roots []Root) error {
	tw := &treeWriter{d: d, w: w, visited: make(map[visitKey]struct{})}
	for _, r := range roots {
		tw.node(r.Source, r.Node, 0)
		tw.str(rootSeparator)
	}
	return tw.err
}

func (tw *treeWriter) node(src SourceIndex, node NodeIndex, indent int) {
	// защита от циклов, если дерево собрано вручную
	key := visitKey{src: src, node: node}
	if _, seen := tw.visited[key]; seen {
		return
	}
	tw.visited[key] = struct{}{}

	n, ok := tw.d.GetNode(node)
	if !ok || n.Kind == NodeError {
		return
	}

	text, _ := tw.d.GetSource(src)
	first := true
	for _, tok := range n.Tokens {
		lexeme, ok := tok.Lexeme(text)
		if !ok || lexeme == "" {
			continue
		}
		if !first {
			tw.str(" ")
		}
		first = false
		tw.str(Quote(lexeme))
	}

	if n.Kind != NodeParent {
		return
	}
	prefix := "\n" + strings.Repeat("\t", indent+1)
	for _, child := range n.Children {
		tw.str(prefix)
		tw.node(src, child, indent+1)
	}
}

// Quote wraps lexeme in double quotes, or in backticks when it contains a
// double quote. A lexeme holding both quote characters is returned as is
// and will not survive a re-parse unchanged.
func Quote(lexeme string) string {
	switch {
	case !strings.Contains(lexeme, `"`):
		return `"` + lexeme + `"`
	case !strings.Contains(lexeme, "`"):
		return "`" + lexeme + "`"
	default:
		return lexeme
	}
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"esdata/internal/data"
	"esdata/internal/source"
)

// TreeNode is an exportable view of one parsed line.
type TreeNode struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Line     uint32     `json:"line,omitempty" yaml:"line,omitempty"`
	Tokens   []string   `json:"tokens" yaml:"tokens,flow"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type treeKey struct {
	src  data.SourceIndex
	node data.NodeIndex
}

type treeBuilder struct {
	d       *data.Data
	visited map[treeKey]struct{}
}

func (b *treeBuilder) build(src data.SourceIndex, idx data.NodeIndex) (TreeNode, bool) {
	key := treeKey{src: src, node: idx}
	if _, seen := b.visited[key]; seen {
		return TreeNode{}, false
	}
	b.visited[key] = struct{}{}

	n, ok := b.d.GetNode(idx)
	if !ok || n.IsError() {
		return TreeNode{}, false
	}
	out := TreeNode{
		Kind:   n.Kind.String(),
		Tokens: b.d.Lexemes(src, idx),
	}
	if text, ok := b.d.GetSource(src); ok && len(n.Tokens) > 0 {
		out.Line = source.Locate(text, int(n.Tokens[0].Span.Start)).Line
	}
	if out.Tokens == nil {
		out.Tokens = []string{}
	}
	for _, child := range n.Children {
		if c, ok := b.build(src, child); ok {
			out.Children = append(out.Children, c)
		}
	}
	return out, true
}

// BuildTree converts roots into TreeNodes, skipping nodes already visited.
func BuildTree(d *data.Data, roots []data.Root) []TreeNode {
	b := &treeBuilder{d: d, visited: make(map[treeKey]struct{})}
	out := make([]TreeNode, 0, len(roots))
	for _, r := range roots {
		if n, ok := b.build(r.Source, r.Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// FormatTree prints roots as an indented tree with box-drawing guides.
func FormatTree(w io.Writer, d *data.Data, roots []data.Root) error {
	var sb strings.Builder
	for _, n := range BuildTree(d, roots) {
		sb.WriteString(treeLabel(n))
		sb.WriteByte('\n')
		writeTreeChildren(&sb, n.Children, "")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func treeLabel(n TreeNode) string {
	quoted := make([]string, 0, len(n.Tokens))
	for _, t := range n.Tokens {
		quoted = append(quoted, displayLexeme(t))
	}
	label := strings.Join(quoted, " ")
	if label == "" {
		label = "<empty>"
	}
	if n.Line > 0 {
		return fmt.Sprintf("%s (line %d)", label, n.Line)
	}
	return label
}

// displayLexeme quotes only lexemes that would not read back as one token.
func displayLexeme(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"`#") {
		return data.Quote(s)
	}
	return s
}

func writeTreeChildren(sb *strings.Builder, children []TreeNode, prefix string) {
	for i, c := range children {
		last := i == len(children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(treeLabel(c))
		sb.WriteByte('\n')
		writeTreeChildren(sb, c.Children, prefix+next)
	}
}

// FormatTreeJSON writes roots as a JSON array.
func FormatTreeJSON(w io.Writer, d *data.Data, roots []data.Root) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTree(d, roots))
}

// FormatTreeYAML writes roots as a YAML sequence.
func FormatTreeYAML(w io.Writer, d *data.Data, roots []data.Root) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildTree(d, roots)); err != nil {
		return err
	}
	return encoder.Close()
}

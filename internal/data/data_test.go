package data_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"esdata/internal/data"
	"esdata/internal/token"
)

func TestErrorNodeIsSentinel(t *testing.T) {
	d := data.New()
	errNode := d.ErrorNode()

	n, ok := d.GetNode(errNode)
	if !ok || !n.IsError() {
		t.Fatalf("GetNode(error) = %+v, %v", n, ok)
	}
	if d.GetMutNode(errNode) != nil {
		t.Fatal("error sentinel must not be mutable")
	}
	if d.PushToken(errNode, token.New(token.Symbol, 0, 1)) {
		t.Fatal("PushToken on error sentinel must fail")
	}
	if _, ok := d.GetTokens(errNode); ok {
		t.Fatal("GetTokens on error sentinel must fail")
	}
	leaf := d.InsertNode(data.Leaf())
	if d.PushChild(errNode, leaf) {
		t.Fatal("PushChild onto error sentinel must fail")
	}
	if _, ok := d.RemoveNode(errNode); ok {
		t.Fatal("error sentinel must not be removable")
	}
}

func TestPushChildPromotesLeaf(t *testing.T) {
	d := data.New()
	src := d.InsertSource("")
	parent := d.InsertLeaf(src, "ship", "Shuttle")
	child := d.InsertLeaf(src, "mass", "70")

	if _, ok := d.GetChildren(parent); ok {
		t.Fatal("leaf must not report children")
	}
	if !d.PushChild(parent, child) {
		t.Fatal("PushChild failed")
	}

	n, ok := d.GetNode(parent)
	if !ok || n.Kind != data.NodeParent {
		t.Fatalf("parent after promotion = %+v, %v", n, ok)
	}
	if got := d.Lexemes(src, parent); !slices.Equal(got, []string{"ship", "Shuttle"}) {
		t.Fatalf("tokens lost on promotion: %v", got)
	}
	children, ok := d.GetChildren(parent)
	if !ok || !slices.Equal(children, []data.NodeIndex{child}) {
		t.Fatalf("children = %v, %v", children, ok)
	}

	second := d.InsertLeaf(src, "drag", "1.7")
	d.PushChild(parent, second)
	children, _ = d.GetChildren(parent)
	if len(children) != 2 || children[1] != second {
		t.Fatalf("children after second push = %v", children)
	}
}

func TestPushChildRejectsDanglingChild(t *testing.T) {
	d := data.New()
	parent := d.InsertNode(data.Leaf())
	gone := d.InsertNode(data.Leaf())
	if _, ok := d.RemoveNode(gone); !ok {
		t.Fatal("RemoveNode failed")
	}
	if d.PushChild(parent, gone) {
		t.Fatal("PushChild with removed child must fail")
	}
	if d.PushChild(parent, d.ErrorNode()) {
		t.Fatal("PushChild with error child must fail")
	}
	if n, _ := d.GetNode(parent); n.Kind != data.NodeLeaf {
		t.Fatalf("parent kind = %v, want Leaf", n.Kind)
	}
}

func TestTokenAccessors(t *testing.T) {
	d := data.New()
	src := d.InsertSource("a b")
	node := d.InsertNode(data.Leaf(token.New(token.Symbol, 0, 1)))
	d.PushToken(node, token.New(token.Symbol, 2, 3))

	tokens, ok := d.GetTokens(node)
	if !ok || len(tokens) != 2 {
		t.Fatalf("GetTokens = %v, %v", tokens, ok)
	}
	// append to the returned slice must not leak into the node
	_ = append(tokens, token.New(token.Symbol, 0, 3))
	if again, _ := d.GetTokens(node); len(again) != 2 {
		t.Fatalf("GetTokens leaked append: %v", again)
	}

	mut, ok := d.GetMutTokens(node)
	if !ok {
		t.Fatal("GetMutTokens failed")
	}
	*mut = (*mut)[:1]
	if got := d.Lexemes(src, node); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("Lexemes after truncation = %v", got)
	}
}

func TestGetMutChildren(t *testing.T) {
	d := data.New()
	src := d.InsertSource("")
	parent := d.InsertLeaf(src, "a")
	if _, ok := d.GetMutChildren(parent); ok {
		t.Fatal("GetMutChildren on leaf must fail")
	}
	d.InsertChild(src, parent, "b")
	d.InsertChild(src, parent, "c")
	children, ok := d.GetMutChildren(parent)
	if !ok {
		t.Fatal("GetMutChildren failed")
	}
	slices.Reverse(*children)
	var got []string
	kids, _ := d.GetChildren(parent)
	for _, c := range kids {
		got = append(got, d.Lexemes(src, c)...)
	}
	if !slices.Equal(got, []string{"c", "b"}) {
		t.Fatalf("children after reverse = %v", got)
	}
}

func TestSourcesAndLexemes(t *testing.T) {
	d := data.New()
	src := d.InsertSource("ship")
	span, ok := d.PushSource(src, " Shuttle")
	if !ok || span.Start != 4 || span.End != 12 {
		t.Fatalf("PushSource = %+v, %v", span, ok)
	}
	text, _ := d.GetSource(src)
	if text != "ship Shuttle" {
		t.Fatalf("GetSource = %q", text)
	}

	if got, ok := d.GetLexeme(src, token.New(token.Symbol, 5, 12)); !ok || got != "Shuttle" {
		t.Fatalf("GetLexeme = %q, %v", got, ok)
	}
	if _, ok := d.GetLexeme(src, token.New(token.Symbol, 5, 40)); ok {
		t.Fatal("GetLexeme past end must fail")
	}

	if _, ok := d.PushSource(data.SourceIndex{}, "x"); ok {
		t.Fatal("PushSource on zero index must fail")
	}
	if d.SourceCount() != 1 {
		t.Fatalf("SourceCount = %d", d.SourceCount())
	}
}

func TestTryGetNumber(t *testing.T) {
	d := data.New()
	src := d.InsertSource("mass 70.5 -3 1e3 heavy")
	tests := []struct {
		name    string
		tok     token.Token
		want    float64
		wantErr error
		anyErr  bool
	}{
		{name: "decimal", tok: token.New(token.Symbol, 5, 9), want: 70.5},
		{name: "negative", tok: token.New(token.Symbol, 10, 12), want: -3},
		{name: "exponent", tok: token.New(token.Symbol, 13, 16), want: 1000},
		{name: "word", tok: token.New(token.Symbol, 17, 22), anyErr: true},
		{name: "out of range", tok: token.New(token.Symbol, 17, 99), wantErr: data.ErrNoLexeme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.TryGetNumber(src, tt.tok)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil || errors.Is(err, data.ErrNoLexeme) {
					t.Fatalf("err = %v, want parse error", err)
				}
			default:
				if err != nil || got != tt.want {
					t.Fatalf("TryGetNumber = %v, %v; want %v", got, err, tt.want)
				}
			}
		})
	}
}

func TestFilterAndPath(t *testing.T) {
	d := data.New()
	src := d.InsertSource("")
	ship := d.InsertLeaf(src, "ship", "Shuttle")
	attrs := d.InsertChild(src, ship, "attributes")
	d.InsertChild(src, attrs, "mass", "70")
	d.InsertChild(src, attrs, "drag", "1")
	outfit := d.InsertLeaf(src, "outfit", "Laser")
	d.PushRootNode(src, ship)
	d.PushRootNode(src, outfit)
	d.PushRootNode(src, d.ErrorNode())

	roots := slices.Collect(d.Filter(d.Keyword("ship")))
	if len(roots) != 1 || roots[0].Node != ship {
		t.Fatalf("Filter(ship) = %v", roots)
	}

	mass := slices.Collect(d.Path("ship", "attributes", "mass"))
	if len(mass) != 1 {
		t.Fatalf("Path = %v", mass)
	}
	if got := d.Lexemes(src, mass[0].Node); !slices.Equal(got, []string{"mass", "70"}) {
		t.Fatalf("Path lexemes = %v", got)
	}
	if got := slices.Collect(d.Path()); len(got) != 0 {
		t.Fatalf("empty Path = %v", got)
	}
	if got := slices.Collect(d.Path("ship", "sprite")); len(got) != 0 {
		t.Fatalf("missing Path = %v", got)
	}

	all := slices.Collect(d.FilterChildren(src, attrs, func(data.SourceIndex, []token.Token) bool { return true }))
	if len(all) != 2 {
		t.Fatalf("FilterChildren = %v", all)
	}
}

func TestWrite(t *testing.T) {
	d := data.New()
	src := d.InsertSource("")
	a := d.InsertLeaf(src, "a")
	d.InsertChild(src, a, "b", "two words")
	c := d.InsertChild(src, a, "c")
	d.InsertChild(src, c, `say "hi"`)
	e := d.InsertLeaf(src, "e")
	d.PushRootNode(src, a)
	d.PushRootNode(src, e)

	var sb strings.Builder
	if err := d.WriteRootNodes(&sb, d.RootNodes()); err != nil {
		t.Fatal(err)
	}
	want := "\"a\"\n\t\"b\" \"two words\"\n\t\"c\"\n\t\t`say \"hi\"`\n\n\n\n\"e\"\n\n\n\n"
	if sb.String() != want {
		t.Fatalf("WriteRootNodes =\n%q\nwant\n%q", sb.String(), want)
	}

	sb.Reset()
	if err := d.Write(&sb, src, c, 1); err != nil {
		t.Fatal(err)
	}
	if want := "\"c\"\n\t\t`say \"hi\"`"; sb.String() != want {
		t.Fatalf("Write = %q, want %q", sb.String(), want)
	}
}

func TestWriteSkipsCycles(t *testing.T) {
	d := data.New()
	src := d.InsertSource("")
	a := d.InsertLeaf(src, "a")
	b := d.InsertChild(src, a, "b")
	d.PushChild(b, a)

	var sb strings.Builder
	if err := d.Write(&sb, src, a, 0); err != nil {
		t.Fatal(err)
	}
	if want := "\"a\"\n\t\"b\"\n\t\t"; sb.String() != want {
		t.Fatalf("Write = %q, want %q", sb.String(), want)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"plain":      `"plain"`,
		`has "dq"`:   "`has \"dq\"`",
		"has `bt`":   "\"has `bt`\"",
		"both \"`\"": "both \"`\"",
	}
	for in, want := range tests {
		if got := data.Quote(in); got != want {
			t.Errorf("Quote(%q) = %q, want %q", in, got, want)
		}
	}
}

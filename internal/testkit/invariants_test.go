package testkit

import (
	"context"
	"testing"

	"esdata/internal/data"
	"esdata/internal/parser"
	"esdata/internal/token"
)

func TestCheckForestAcceptsParsedInput(t *testing.T) {
	for _, text := range []string{
		"",
		"ship Falcon\n\tmass 100\n\tweapon\n\t\tgun \"Laser\"\n",
		"a `open\n\tb\n",
		"a\n  b\n\tc\n",
	} {
		d := data.New()
		src, errs := parser.ParseSource(context.Background(), d, text, parser.Options{})
		if err := CheckForest(d, src); err != nil {
			t.Errorf("%q: %v", text, err)
		}
		if err := CheckErrors(errs, text); err != nil {
			t.Errorf("%q: %v", text, err)
		}
	}
}

func TestCheckForestRejectsSharedChild(t *testing.T) {
	d := data.New()
	src := d.InsertSource("a b")
	leaf := d.InsertNode(data.Leaf(token.New(token.Symbol, 2, 3)))
	for range 2 {
		root := d.InsertNode(data.Leaf(token.New(token.Symbol, 0, 1)))
		d.PushChild(root, leaf)
		d.PushRootNode(src, root)
	}
	if err := CheckForest(d, src); err == nil {
		t.Fatalf("expected an error for a node reached twice")
	}
}

func TestCheckForestRejectsOutOfRangeToken(t *testing.T) {
	d := data.New()
	src := d.InsertSource("ab")
	d.PushRootNode(src, d.InsertNode(data.Leaf(token.New(token.Symbol, 0, 9))))
	if err := CheckForest(d, src); err == nil {
		t.Fatalf("expected an error for a token past the source end")
	}
}

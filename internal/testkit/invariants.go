package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"esdata/internal/data"
	"esdata/internal/parser"
	"esdata/internal/token"
)

// CheckForest runs structural invariants on the nodes parsed from src:
// 1) every reachable node is live, not the error sentinel, and reached once
// 2) leaves have no children and parents have at least one
// 3) every token is a Symbol inside the source text without a line break
// 4) tokens appear in source order along a pre-order walk
func CheckForest(d *data.Data, src data.SourceIndex) error {
	if d == nil {
		return fmt.Errorf("nil data")
	}
	text, ok := d.GetSource(src)
	if !ok {
		return fmt.Errorf("unknown %v", src)
	}
	size, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	c := forestChecker{d: d, text: text, size: size, seen: make(map[data.NodeIndex]bool)}
	for _, root := range d.SourceRoots(src) {
		if err := c.node(root.Node); err != nil {
			return err
		}
	}
	return nil
}

type forestChecker struct {
	d    *data.Data
	text string
	size uint32
	seen map[data.NodeIndex]bool
	last uint32
}

func (c *forestChecker) node(idx data.NodeIndex) error {
	if c.seen[idx] {
		return fmt.Errorf("%v reached twice", idx)
	}
	c.seen[idx] = true

	n, ok := c.d.GetNode(idx)
	if !ok {
		return fmt.Errorf("dangling %v", idx)
	}
	switch n.Kind {
	case data.NodeError:
		return fmt.Errorf("error sentinel in forest at %v", idx)
	case data.NodeLeaf:
		if len(n.Children) != 0 {
			return fmt.Errorf("leaf %v has %d children", idx, len(n.Children))
		}
	case data.NodeParent:
		if len(n.Children) == 0 {
			return fmt.Errorf("parent %v has no children", idx)
		}
	}

	for _, tok := range n.Tokens {
		if err := c.token(tok); err != nil {
			return fmt.Errorf("%v: %w", idx, err)
		}
	}
	for _, child := range n.Children {
		if err := c.node(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *forestChecker) token(tok token.Token) error {
	sp := tok.Span
	if tok.Kind != token.Symbol {
		return fmt.Errorf("%v token stored in a node", tok.Kind)
	}
	if sp.Start > sp.End || sp.End > c.size {
		return fmt.Errorf("token span %v outside source of %d bytes", sp, c.size)
	}
	if sp.Start < c.last {
		return fmt.Errorf("token span %v starts before previous token end %d", sp, c.last)
	}
	c.last = sp.End
	if strings.ContainsAny(c.text[sp.Start:sp.End], "\n") {
		return fmt.Errorf("token span %v crosses a line", sp)
	}
	return nil
}

// CheckErrors verifies that parse errors lie inside text and come in
// source order.
func CheckErrors(errs []parser.Error, text string) error {
	size, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var last uint32
	for i, e := range errs {
		sp := e.Span()
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("error %d span %v outside source of %d bytes", i, sp, size)
		}
		if sp.Start < last {
			return fmt.Errorf("error %d span %v out of order", i, sp)
		}
		last = sp.Start
		if msg, ok := e.Message(); ok && msg == "" {
			return fmt.Errorf("error %d has an empty message", i)
		}
	}
	return nil
}

// Package parser builds the indentation-structured node forest of a data
// file. A line becomes a node; every following line indented deeper
// becomes its descendant.
package parser

import (
	"context"
	"strconv"

	"esdata/internal/data"
	"esdata/internal/diag"
	"esdata/internal/lexer"
	"esdata/internal/source"
	"esdata/internal/token"
	"esdata/internal/trace"
)

type Options struct {
	// File identifies the source in forwarded diagnostics.
	File source.FileID
	// Reporter receives each error as a diagnostic; may be nil.
	Reporter diag.Reporter
	// MaxErrors caps forwarded diagnostics; 0 means unlimited.
	// Errors past the cap are still returned by TakeErrors.
	MaxErrors uint
}

// Parser holds the state of parsing one source.
type Parser struct {
	data     *data.Data
	lx       *lexer.Lexer
	opts     Options
	errors   []Error
	reported uint
	depth    int // число Indent-токенов текущей строки
}

// New creates a parser for src, which must already be stored in d.
func New(d *data.Data, src data.SourceIndex, opts Options) *Parser {
	return &Parser{
		data: d,
		lx:   lexer.New(d, src),
		opts: opts,
	}
}

// ParseSource stores text as a new source of d, parses it and returns the
// source handle with the errors found.
func ParseSource(ctx context.Context, d *data.Data, text string, opts Options) (data.SourceIndex, []Error) {
	src := d.InsertSource(text)
	p := New(d, src, opts)
	p.Parse(ctx)
	return src, p.TakeErrors()
}

// Source returns the source being parsed.
func (p *Parser) Source() data.SourceIndex { return p.lx.Source() }

// TakeErrors returns the errors collected so far and clears them.
func (p *Parser) TakeErrors() []Error {
	errs := p.errors
	p.errors = nil
	return errs
}

// Parse reads root nodes until the source is exhausted, registering each
// with the data store in order. A source holding only blank lines or
// comments still yields one empty root.
func (p *Parser) Parse(ctx context.Context) {
	span, _ := trace.Start(ctx, trace.ScopeSource, "parse")
	roots := 0

	for {
		if _, ok := p.peek(); !ok {
			break
		}
		node := p.node()
		p.data.PushRootNode(p.Source(), node)
		roots++
	}

	span.Attr("roots", strconv.Itoa(roots)).
		Attr("errors", strconv.Itoa(len(p.errors))).
		End("")
}

// node parses one line and every deeper line that follows it.
func (p *Parser) node() data.NodeIndex {
	p.indentation()
	current := p.depth

	var tokens []token.Token
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != token.Symbol {
			break
		}
		tokens = append(tokens, tok)
		p.advance()
	}

	var children []data.NodeIndex
	p.indentation()
	for {
		if _, ok := p.peek(); !ok || p.depth <= current {
			break
		}
		children = append(children, p.node())
		p.indentation()
	}

	if len(children) > 0 {
		return p.data.InsertNode(data.Parent(tokens, children))
	}
	return p.data.InsertNode(data.Leaf(tokens...))
}

// indentation consumes Indent and Newline tokens up to the next Symbol,
// counting indents since the last newline.
func (p *Parser) indentation() {
	for {
		tok, ok := p.peek()
		if !ok {
			return
		}
		switch tok.Kind {
		case token.Indent:
			p.advance()
			p.depth++
		case token.Newline:
			p.advance()
			p.depth = 0
		default:
			return
		}
	}
}

// drainErrors moves pending lexical errors into the error list so the
// lexer's next item is a token.
func (p *Parser) drainErrors() {
	for {
		it, ok := p.lx.Peek()
		if !ok || !it.IsErr() {
			return
		}
		p.lx.Next()
		p.error(WrapLexError(it.Err))
	}
}

func (p *Parser) peek() (token.Token, bool) {
	p.drainErrors()
	it, ok := p.lx.Peek()
	if !ok {
		return token.Token{}, false
	}
	return it.Token, true
}

func (p *Parser) advance() (token.Token, bool) {
	p.drainErrors()
	it, ok := p.lx.Next()
	if !ok || it.IsErr() {
		return token.Token{}, false
	}
	return it.Token, true
}

func (p *Parser) error(err Error) {
	p.errors = append(p.errors, err)
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && p.reported >= p.opts.MaxErrors {
		return
	}
	p.reported++
	msg, _ := err.Message()
	b := diag.ReportError(p.opts.Reporter, err.Code(), p.opts.File, err.Span(), msg)
	for _, note := range err.Notes() {
		b.WithNote(note)
	}
	b.Emit()
}

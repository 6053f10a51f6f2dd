package parser

import (
	"esdata/internal/diag"
	"esdata/internal/lexer"
	"esdata/internal/source"
)

// ErrorKind classifies parse errors. The grammar accepts any token
// sequence, so every parse error currently wraps a lexical one.
type ErrorKind uint8

const (
	// LexError wraps a lexer.Error.
	LexError ErrorKind = iota
)

// Error is a problem found while parsing one source.
type Error struct {
	kind ErrorKind
	span source.Span
	lex  *lexer.Error
}

// WrapLexError turns a lexical error into a parse error.
func WrapLexError(err *lexer.Error) Error {
	return Error{kind: LexError, span: err.Span(), lex: err}
}

func (e Error) Kind() ErrorKind { return e.kind }

func (e Error) Span() source.Span { return e.span }

// Lex returns the wrapped lexical error.
func (e Error) Lex() *lexer.Error { return e.lex }

func (e Error) Message() (string, bool) {
	if e.lex == nil {
		return "", false
	}
	return e.lex.Message()
}

func (e Error) Notes() []string {
	if e.lex == nil {
		return nil
	}
	return e.lex.Notes()
}

// Code returns the diagnostic code of the underlying error.
func (e Error) Code() diag.Code {
	if e.lex == nil {
		return diag.UnknownCode
	}
	return e.lex.Code()
}

func (e Error) Error() string {
	if e.lex == nil {
		return "parse error at " + e.span.String()
	}
	return e.lex.Error()
}

func (e Error) Unwrap() error {
	if e.lex == nil {
		return nil
	}
	return e.lex
}

// Diagnostic converts e into an error diagnostic for file.
func (e Error) Diagnostic(file source.FileID) diag.Diagnostic {
	msg, _ := e.Message()
	d := diag.NewError(e.Code(), file, e.span, msg)
	for _, note := range e.Notes() {
		d = d.WithNote(note)
	}
	return d
}

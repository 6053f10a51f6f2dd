package lexer

import (
	"esdata/internal/diag"
	"esdata/internal/source"
)

// ErrorKind classifies lexical errors.
type ErrorKind uint8

const (
	// MixedIndentation: a line indents with spaces after tabs were seen, or the reverse.
	MixedIndentation ErrorKind = iota
	// UnclosedString: a quoted string runs into a newline or EOF.
	UnclosedString
	// NonASCIICharacter: a character outside ASCII appears outside quotes.
	NonASCIICharacter
)

func (k ErrorKind) String() string {
	switch k {
	case MixedIndentation:
		return "MixedIndentation"
	case UnclosedString:
		return "UnclosedString"
	case NonASCIICharacter:
		return "NonAsciiCharacter"
	default:
		return "Unknown"
	}
}

// Error is a recoverable lexical error.
type Error struct {
	kind ErrorKind
	span source.Span
}

// NewError builds an Error of kind k covering span.
func NewError(k ErrorKind, span source.Span) *Error {
	return &Error{kind: k, span: span}
}

func (e *Error) Kind() ErrorKind { return e.kind }

func (e *Error) Span() source.Span { return e.span }

// Message returns the headline shown in rendered diagnostics.
func (e *Error) Message() (string, bool) {
	switch e.kind {
	case MixedIndentation:
		return "Mixed indentation detected", true
	case UnclosedString:
		return "This string was never closed", true
	case NonASCIICharacter:
		return "Only ASCII characters are allowed in Endless Sky data files", true
	default:
		return "", false
	}
}

// Notes returns the explanatory lines attached to the error.
func (e *Error) Notes() []string {
	switch e.kind {
	case MixedIndentation:
		return []string{"You should only use one of tabs or spaces when indenting, not both"}
	case UnclosedString:
		return []string{"The string terminated at the newline character, but you should close it anyway"}
	case NonASCIICharacter:
		return []string{"If this has changed since Endless Sky RW was written, the library needs to be updated"}
	default:
		return nil
	}
}

// Code maps the error onto its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.kind {
	case MixedIndentation:
		return diag.LexMixedIndentation
	case UnclosedString:
		return diag.LexUnclosedString
	case NonASCIICharacter:
		return diag.LexNonASCIICharacter
	default:
		return diag.UnknownCode
	}
}

func (e *Error) Error() string {
	msg, _ := e.Message()
	return msg + " at " + e.span.String()
}

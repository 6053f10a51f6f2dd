package diag

import "esdata/internal/source"

// Note is an extra line of explanation attached to a diagnostic.
type Note struct {
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     source.FileID
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		File:     file,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, file, primary, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg})
	return d
}

// NoteTexts returns the messages of d's notes in order.
func (d Diagnostic) NoteTexts() []string {
	out := make([]string, 0, len(d.Notes))
	for _, n := range d.Notes {
		out = append(out, n.Msg)
	}
	return out
}

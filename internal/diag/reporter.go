package diag

import "esdata/internal/source"

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(code Code, sev Severity, file source.FileID, primary source.Span, msg string, notes []Note)
}

// ReportBuilder collects notes for one diagnostic and hands it to a
// Reporter on Emit. A nil builder ignores every call.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

// ReportError starts an error diagnostic for r.
func ReportError(r Reporter, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: NewError(code, file, primary, msg)}
}

// ReportWarning starts a warning diagnostic for r.
func ReportWarning(r Reporter, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(SevWarning, code, file, primary, msg)}
}

func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(msg)
	}
	return b
}

// Emit reports the diagnostic; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		d := b.d
		b.to.Report(d.Code, d.Severity, d.File, d.Primary, d.Message, d.Notes)
	}
}

// BagReporter adds every report to Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, file source.FileID, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, File: file, Primary: primary, Notes: notes})
	}
}

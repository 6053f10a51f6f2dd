package diagfmt

import (
	"io"
	"strings"

	"esdata/internal/source"
)

// Reportable is anything that can be rendered against a source text.
type Reportable interface {
	Span() source.Span
	// Message returns the headline, if any.
	Message() (string, bool)
	Notes() []string
}

// Report accumulates rendered diagnostics for one source under one kind
// and display name.
type Report struct {
	// Source is the full text spans refer to.
	Source  string
	Kind    string
	Name    string
	Trimmed string
	Palette Palette

	messages []string
}

// NewReport creates an empty report.
func NewReport(text, kind, name, trimmed string, palette Palette) *Report {
	return &Report{
		Source:  text,
		Kind:    kind,
		Name:    name,
		Trimmed: trimmed,
		Palette: palette,
	}
}

// Render returns the rendered text of item without recording it.
func (r *Report) Render(item Reportable) string {
	return render(r.Source, r.Kind, r.Name, r.Trimmed, r.Palette, item)
}

// Add renders item and appends it to the report.
func (r *Report) Add(item Reportable) {
	r.messages = append(r.messages, r.Render(item))
}

// HasMessages reports whether anything was added since the last take.
func (r *Report) HasMessages() bool {
	return len(r.messages) > 0
}

// Messages returns the rendered diagnostics in the order they were added.
func (r *Report) Messages() []string {
	return r.messages
}

// TakeMessages returns the rendered diagnostics and clears the report.
func (r *Report) TakeMessages() []string {
	out := r.messages
	r.messages = nil
	return out
}

// String joins all rendered diagnostics.
func (r *Report) String() string {
	return strings.Join(r.messages, "")
}

// Flush writes every rendered diagnostic to w and clears the report.
func (r *Report) Flush(w io.Writer) error {
	for _, msg := range r.TakeMessages() {
		if _, err := io.WriteString(w, msg); err != nil {
			return err
		}
	}
	return nil
}

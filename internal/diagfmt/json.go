package diagfmt

import (
	"encoding/json"
	"io"

	"esdata/internal/diag"
	"esdata/internal/source"
)

// PositionJSON is one end of a located span. Line and Col are omitted
// unless positions were requested.
type PositionJSON struct {
	Byte uint32 `json:"byte"`
	Line uint32 `json:"line,omitempty"`
	Col  uint32 `json:"col,omitempty"`
}

// LocationJSON places a diagnostic in a file.
type LocationJSON struct {
	File  string       `json:"file"`
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []string     `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func locate(fs *source.FileSet, file source.FileID, span source.Span, opts JSONOpts) LocationJSON {
	loc := LocationJSON{Start: PositionJSON{Byte: span.Start}, End: PositionJSON{Byte: span.End}}
	f := fs.Get(file)
	if f == nil {
		return loc
	}
	loc.File = displayPath(f, fs, opts.PathMode)
	if opts.IncludePositions {
		text := string(f.Content)
		for _, p := range []*PositionJSON{&loc.Start, &loc.End} {
			lc := source.Locate(text, int(p.Byte))
			p.Line, p.Col = lc.Line, lc.Col
		}
	}
	return loc
}

// BuildDiagnosticsOutput converts the first opts.Max diagnostics of bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 {
		items = items[:min(opts.Max, len(items))]
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: locate(fs, d.File, d.Primary, opts),
		}
		if opts.IncludeNotes {
			dj.Notes = d.NoteTexts()
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}

package diagfmt

import (
	"fmt"
	"io"

	"esdata/internal/diag"
	"esdata/internal/source"
)

// diagItem adapts a diag.Diagnostic to Reportable.
type diagItem struct {
	d         *diag.Diagnostic
	showNotes bool
}

func (it diagItem) Span() source.Span { return it.d.Primary }

func (it diagItem) Message() (string, bool) {
	if it.d.Message == "" {
		return it.d.Code.ID(), true
	}
	return fmt.Sprintf("%s [%s]", it.d.Message, it.d.Code.ID()), true
}

func (it diagItem) Notes() []string {
	if !it.showNotes {
		return nil
	}
	return it.d.NoteTexts()
}

func paletteFor(sev diag.Severity, opts PrettyOpts) Palette {
	if opts.Palette != nil {
		return opts.Palette.WithColor(opts.Color)
	}
	p := DefaultPalette()
	if sev != diag.SevError {
		p = WarningPalette()
	}
	return p.WithColor(opts.Color)
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if mode == PathModeRelative {
		return f.Display(mode, fs.BaseDir())
	}
	return f.Display(mode, "")
}

// Pretty renders every diagnostic of bag with source context, in bag order.
// Diagnostics whose file is unknown to fs are skipped.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	trimmed := opts.Trimmed
	if trimmed == "" {
		trimmed = DefaultTrimmed
	}
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		d := &items[i]
		f := fs.Get(d.File)
		if f == nil {
			continue
		}
		r := NewReport(string(f.Content), d.Severity.String(), displayPath(f, fs, opts.PathMode), trimmed, paletteFor(d.Severity, opts))
		if _, err := io.WriteString(w, r.Render(diagItem{d: d, showNotes: opts.ShowNotes})); err != nil {
			return err
		}
	}
	return nil
}

package diagfmt

import (
	"io"
	"iter"

	"esdata/internal/data"
)

// BookKey identifies one report in a Book.
type BookKey struct {
	Source data.SourceIndex
	Kind   string
	Name   string
}

// Book keeps one Report per (source, kind, name) and flushes them in the
// order they were first used.
type Book struct {
	Trimmed string
	Palette Palette

	reports map[BookKey]*Report
	order   []BookKey
}

// NewBook creates a book whose reports share a trim marker and palette.
func NewBook(trimmed string, palette Palette) *Book {
	return &Book{
		Trimmed: trimmed,
		Palette: palette,
		reports: make(map[BookKey]*Report),
	}
}

// Report returns the report for the key, creating it on first use.
// The report's source text is refreshed from d, since sources only grow.
// It returns nil when src does not resolve in d.
func (b *Book) Report(d *data.Data, src data.SourceIndex, kind, name string) *Report {
	text, ok := d.GetSource(src)
	if !ok {
		return nil
	}
	key := BookKey{Source: src, Kind: kind, Name: name}
	r, ok := b.reports[key]
	if !ok {
		r = NewReport(text, kind, name, b.Trimmed, b.Palette)
		b.reports[key] = r
		b.order = append(b.order, key)
		return r
	}
	r.Source = text
	return r
}

// Add renders item into the report for the key.
func (b *Book) Add(d *data.Data, src data.SourceIndex, kind, name string, item Reportable) bool {
	r := b.Report(d, src, kind, name)
	if r == nil {
		return false
	}
	r.Add(item)
	return true
}

// Len returns the number of reports.
func (b *Book) Len() int { return len(b.order) }

// Reports yields reports in first-use order.
func (b *Book) Reports() iter.Seq2[BookKey, *Report] {
	return func(yield func(BookKey, *Report) bool) {
		for _, key := range b.order {
			if !yield(key, b.reports[key]) {
				return
			}
		}
	}
}

// HasMessages reports whether any report holds rendered text.
func (b *Book) HasMessages() bool {
	for _, r := range b.reports {
		if r.HasMessages() {
			return true
		}
	}
	return false
}

// Flush writes and clears every report in first-use order.
func (b *Book) Flush(w io.Writer) error {
	for _, r := range b.Reports() {
		if err := r.Flush(w); err != nil {
			return err
		}
	}
	return nil
}

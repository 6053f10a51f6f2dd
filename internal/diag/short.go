package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"esdata/internal/source"
)

// shortLine is one line of the short format.
type shortLine struct {
	label string
	code  string
	path  string
	pos   source.LineCol
	msg   string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatShortDiagnostics renders diagnostics one per line as
// "severity CODE path:line:col message", ordered by path and position.
// With includeNotes each note follows its diagnostic as a "note" line at
// the same position. Diagnostics of files unknown to fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var groups [][]shortLine
	for i := range diags {
		d := &diags[i]
		f := fs.Get(d.File)
		if f == nil {
			continue
		}
		head := shortLine{
			label: strings.ToLower(d.Severity.String()),
			code:  d.Code.ID(),
			path:  trimDotSlash(fs.Display(d.File, source.PathRelative)),
			pos:   source.Locate(string(f.Content), int(d.Primary.Start)),
			msg:   oneLine(d.Message),
		}
		group := []shortLine{head}
		if includeNotes {
			for _, n := range d.Notes {
				note := head
				note.label, note.msg = "note", oneLine(n.Msg)
				group = append(group, note)
			}
		}
		groups = append(groups, group)
	}

	slices.SortStableFunc(groups, func(a, b []shortLine) int {
		x, y := a[0], b[0]
		return cmp.Or(
			cmp.Compare(x.path, y.path),
			cmp.Compare(x.pos.Line, y.pos.Line),
			cmp.Compare(x.pos.Col, y.pos.Col),
			cmp.Compare(x.code, y.code),
			cmp.Compare(x.msg, y.msg),
		)
	})

	var lines []string
	for _, g := range groups {
		for _, l := range g {
			lines = append(lines, l.String())
		}
	}
	return strings.Join(lines, "\n")
}

// oneLine folds line breaks of msg into spaces.
func oneLine(msg string) string {
	parts := strings.FieldsFunc(msg, func(r rune) bool { return r == '\n' || r == '\r' })
	return strings.TrimSpace(strings.Join(parts, " "))
}

func trimDotSlash(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

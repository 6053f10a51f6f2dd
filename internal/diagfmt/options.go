package diagfmt

import "esdata/internal/source"

// PathMode selects how file paths are displayed.
type PathMode = source.PathStyle

const (
	PathModeAuto     = source.PathAuto
	PathModeAbsolute = source.PathAbsolute
	PathModeRelative = source.PathRelative
	PathModeBasename = source.PathBase
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// Trimmed replaces elided text; "[snip]" when empty.
	Trimmed string
	// Palette overrides the per-severity palettes when set.
	Palette *Palette
	Max     int // 0 - без ограничения
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// DefaultTrimmed is the trim marker used when none is configured.
const DefaultTrimmed = "[snip]"

package ui

import (
	"github.com/mattn/go-runewidth"

	"esdata/internal/driver"
)

// row is the state of one file on the board.
type row struct {
	path  string
	label string
	stage driver.Stage
	// final rows count as fully read
	final bool
}

// board folds driver events into per-file rows. It knows nothing about
// drawing.
type board struct {
	rows  []row
	byKey map[string]int
	// stage is the label of the last run-wide event
	stage string
}

func newBoard(files []string) *board {
	b := &board{rows: make([]row, len(files)), byKey: make(map[string]int, len(files))}
	for i, f := range files {
		b.rows[i] = row{path: f, label: "queued"}
		b.byKey[f] = i
	}
	return b
}

// apply records ev and reports whether a row changed.
func (b *board) apply(ev driver.Event) bool {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			b.stage = label
		}
		return false
	}
	i, ok := b.byKey[ev.File]
	if !ok {
		return false
	}
	r := &b.rows[i]
	if label != "" {
		r.label, r.stage = label, ev.Stage
	}
	// файл завершён после разбора или при любой ошибке
	if ev.Status == driver.StatusError || (ev.Status == driver.StatusDone && ev.Stage != driver.StageLoad) {
		r.final = true
	}
	return true
}

// stageWeight is how far through reading a file is once it enters stage.
var stageWeight = map[driver.Stage]float64{
	driver.StageParse:  0.5,
	driver.StageReport: 0.9,
}

// fraction is the share of the run already done, in [0, 1].
func (b *board) fraction() float64 {
	if len(b.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range b.rows {
		if r.final {
			sum++
		} else {
			sum += stageWeight[r.stage]
		}
	}
	return sum / float64(len(b.rows))
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusWorking:
		return stage.String()
	case driver.StatusDone:
		if stage == driver.StageLoad {
			return "loaded"
		}
		return "done"
	case driver.StatusError:
		return "error"
	}
	return ""
}

// truncate shortens s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}

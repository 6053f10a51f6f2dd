package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"esdata/internal/driver"
)

func TestBoardTracksStatus(t *testing.T) {
	b := newBoard([]string{"a.txt", "b.txt"})

	b.apply(driver.Event{File: "a.txt", Stage: driver.StageParse, Status: driver.StatusWorking})
	if b.rows[0].label != "parsing" {
		t.Fatalf("label = %q", b.rows[0].label)
	}
	if got := b.fraction(); got != 0.25 {
		t.Fatalf("fraction = %v, want 0.25", got)
	}

	b.apply(driver.Event{File: "a.txt", Stage: driver.StageParse, Status: driver.StatusDone})
	b.apply(driver.Event{File: "b.txt", Stage: driver.StageLoad, Status: driver.StatusError})
	if got := b.fraction(); got != 1 {
		t.Fatalf("fraction = %v, want 1", got)
	}
	if b.rows[1].label != "error" {
		t.Fatalf("label = %q", b.rows[1].label)
	}
}

func TestBoardIgnoresUnknownFiles(t *testing.T) {
	b := newBoard([]string{"a.txt"})
	if b.apply(driver.Event{File: "zzz.txt", Stage: driver.StageParse, Status: driver.StatusDone}) {
		t.Fatal("unknown file must not change the board")
	}
	b.apply(driver.Event{Stage: driver.StageReport, Status: driver.StatusWorking})
	if b.stage != "reporting" {
		t.Fatalf("stage = %q", b.stage)
	}
	if newBoard(nil).fraction() != 0 {
		t.Fatal("empty board must report 0")
	}
}

func TestViewListsFiles(t *testing.T) {
	m := NewProgressModel("reading data", []string{"ships/falcon.txt"}, nil).(*progressModel)
	m.closed = true
	view := m.View()
	if !strings.Contains(view, "done: reading data") || !strings.Contains(view, "ships/falcon.txt") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestRunProgressReturnsWorkError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	err := RunProgress(&out, "reading", []string{"a.txt"}, func(emit driver.EventSink) error {
		emit(driver.Event{File: "a.txt", Stage: driver.StageLoad, Status: driver.StatusWorking})
		emit(driver.Event{File: "a.txt", Stage: driver.StageLoad, Status: driver.StatusError})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunProgress = %v, want boom", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdefghij", 6, "abc..."},
		{"abc", 6, "abc"},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

package observ

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	stop := tm.Start("load")
	stop("3 files")
	stop("ignored")
	err := tm.Measure("parse", func() error { return errors.New("boom") })
	if err == nil || err.Error() != "boom" {
		t.Fatalf("Measure should return fn's error, got %v", err)
	}

	want := Report{
		TotalMS: 2,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 1, Note: "3 files"},
			{Name: "parse", DurationMS: 1, Note: "failed: boom"},
		},
	}
	if diff := deep.Equal(tm.Report(), want); diff != nil {
		t.Fatalf("report: %v", diff)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:\n", "load", "// 3 files", "total", "2.000 ms"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Start("x")("")
	if err := tm.Measure("x", func() error { return nil }); err != nil {
		t.Fatalf("Measure on nil timer: %v", err)
	}
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer should report nothing")
	}
}

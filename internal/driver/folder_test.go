package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-test/deep"

	"esdata/internal/diagfmt"
	"esdata/internal/observ"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

var sampleFiles = map[string]string{
	"ships/falcon.txt": "ship Falcon\n\tmass 100\n\tweapon\n\t\tgun \"Laser Cannon\"\n",
	"ships/bad.txt":    "ship `Broken\n\tmass 5\n",
	"outfits.txt":      "outfit Laser\n\tcost 100\n",
	"notes.md":         "not a data file\n",
}

func testOptions(jobs int) Options {
	opts := DefaultOptions()
	opts.Jobs = jobs
	opts.Palette = diagfmt.ColorlessPalette()
	return opts
}

func writeForest(t *testing.T, f *Folder) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Data.WriteRootNodes(&buf, f.Roots()); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

func TestListFilesFiltersAndSorts(t *testing.T) {
	dir := writeFiles(t, sampleFiles)
	files, err := ListFiles(dir, "txt")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"outfits.txt", "ships/bad.txt", "ships/falcon.txt"}
	if diff := deep.Equal(rel, want); diff != nil {
		t.Fatalf("unexpected files: %v", diff)
	}
}

func TestReadFolderSequentialAndParallelAgree(t *testing.T) {
	dir := writeFiles(t, sampleFiles)

	seq, err := ReadFolder(context.Background(), dir, testOptions(1))
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := ReadFolder(context.Background(), dir, testOptions(4))
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(seq.Files) != 3 || len(par.Files) != 3 {
		t.Fatalf("expected 3 files, got %d and %d", len(seq.Files), len(par.Files))
	}
	if a, b := writeForest(t, seq), writeForest(t, par); a != b {
		t.Fatalf("forests differ:\n%s\n---\n%s", a, b)
	}
	if seq.ErrorCount() != 1 || par.ErrorCount() != 1 {
		t.Fatalf("expected one error, got %d and %d", seq.ErrorCount(), par.ErrorCount())
	}
	if seq.Data.SourceCount() != 3 || par.Data.SourceCount() != 3 {
		t.Fatalf("expected 3 sources, got %d and %d", seq.Data.SourceCount(), par.Data.SourceCount())
	}
}

func TestReadFolderRendersErrors(t *testing.T) {
	dir := writeFiles(t, sampleFiles)
	f, err := ReadFolder(context.Background(), dir, testOptions(2))
	if err != nil {
		t.Fatalf("ReadFolder: %v", err)
	}
	if f.Reports.Len() != 1 {
		t.Fatalf("expected one report, got %d", f.Reports.Len())
	}
	var buf bytes.Buffer
	if err := f.Reports.Flush(&buf); err != nil {
		t.Fatalf("flush: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"ships/bad.txt:1:5\n",
		"ERROR: This string was never closed\n",
		" 1 | ship `Broken\n",
		" 2 |     mass 5\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	bag := f.Diagnostics()
	if bag.Len() != 1 || !bag.HasErrors() {
		t.Fatalf("expected one error diagnostic, got %d", bag.Len())
	}
}

func TestReadFolderQueriesAcrossFiles(t *testing.T) {
	dir := writeFiles(t, sampleFiles)
	f, err := ReadFolder(context.Background(), dir, testOptions(0))
	if err != nil {
		t.Fatalf("ReadFolder: %v", err)
	}
	var names []string
	for root := range f.Data.Path("ship") {
		lexemes := f.Data.Lexemes(root.Source, root.Node)
		names = append(names, lexemes[len(lexemes)-1])
	}
	if diff := deep.Equal(names, []string{"Broken", "Falcon"}); diff != nil {
		t.Fatalf("unexpected ships: %v", diff)
	}
}

func TestReadFolderEventsAndTimings(t *testing.T) {
	dir := writeFiles(t, sampleFiles)
	var (
		mu     sync.Mutex
		events []Event
	)
	opts := testOptions(2)
	opts.Timer = observ.NewTimer()
	opts.OnEvent = func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}
	if _, err := ReadFolder(context.Background(), dir, opts); err != nil {
		t.Fatalf("ReadFolder: %v", err)
	}

	parseErrors := 0
	for _, ev := range events {
		if ev.Stage == StageParse && ev.Status == StatusError {
			parseErrors++
			if !strings.HasSuffix(filepath.ToSlash(ev.File), "ships/bad.txt") {
				t.Fatalf("unexpected failing file %q", ev.File)
			}
		}
	}
	if parseErrors != 1 {
		t.Fatalf("expected one parse error event, got %d", parseErrors)
	}
	last := events[len(events)-1]
	if last.File != "" || last.Stage != StageReport || last.Status != StatusDone {
		t.Fatalf("unexpected final event %+v", last)
	}

	var phases []string
	for _, p := range opts.Timer.Report().Phases {
		phases = append(phases, p.Name)
	}
	if diff := deep.Equal(phases, []string{"list", "load", "parse", "report"}); diff != nil {
		t.Fatalf("unexpected phases: %v", diff)
	}
}

func TestReadFolderCancelled(t *testing.T) {
	dir := writeFiles(t, sampleFiles)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadFolder(ctx, dir, testOptions(1)); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestReadFolderSingleFile(t *testing.T) {
	dir := writeFiles(t, sampleFiles)
	path := filepath.Join(dir, "ships", "bad.txt")
	f, err := ReadFolder(context.Background(), path, testOptions(1))
	if err != nil {
		t.Fatalf("ReadFolder: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Reports.Flush(&buf); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if !strings.Contains(buf.String(), "bad.txt:1:5\n") {
		t.Fatalf("unexpected report name:\n%s", buf.String())
	}
}

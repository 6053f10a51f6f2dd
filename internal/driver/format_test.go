package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRewriteCanonicalizes(t *testing.T) {
	in := "ship   Falcon\n\tmass 10\n\tname `Big Ship`\n"
	got, err := Rewrite(context.Background(), in)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	want := "\"ship\" \"Falcon\"\n\t\"mass\" \"10\"\n\t\"name\" \"Big Ship\"\n\n\n\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	again, err := Rewrite(context.Background(), string(got))
	if err != nil || string(again) != want {
		t.Fatalf("rewrite is not idempotent: %q, %v", again, err)
	}
}

func TestRewriteRejectsParseErrors(t *testing.T) {
	if _, err := Rewrite(context.Background(), "ship `open\n"); !errors.Is(err, ErrParseErrors) {
		t.Fatalf("expected ErrParseErrors, got %v", err)
	}
}

func TestFormatPathsCheckAndWrite(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.txt": "\"a\"\n\t\"b\"\n\n\n\n",
		"b.txt": "x   y\n",
	})

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	changed := map[string]bool{}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		changed[filepath.Base(r.Path)] = r.Changed
	}
	if changed["a.txt"] || !changed["b.txt"] {
		t.Fatalf("unexpected changes: %v", changed)
	}
	if content, _ := os.ReadFile(filepath.Join(dir, "b.txt")); string(content) != "x   y\n" {
		t.Fatalf("check mode modified the file")
	}

	if _, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if content, _ := os.ReadFile(filepath.Join(dir, "b.txt")); string(content) != "\"x\" \"y\"\n\n\n\n" {
		t.Fatalf("file not rewritten: %q", content)
	}
}

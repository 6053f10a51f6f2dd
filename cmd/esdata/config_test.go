package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"esdata/internal/diagfmt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadConfigPalette(t *testing.T) {
	path := writeConfig(t, "[colors]\nmessage = \"yellow\"\nunderline = \"bright_white\"\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	p, err := cfg.palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	want := diagfmt.DefaultPalette()
	want.Message = diagfmt.Yellow
	want.Underline = diagfmt.BrightWhite
	if p != want {
		t.Fatalf("palette = %+v, want %+v", p, want)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key": "[read]\nextention = \"txt\"\n",
		"bad toml":    "[read\n",
		"bad jobs":    "[read]\njobs = -2\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, content)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}

	cfg, err := loadConfig(writeConfig(t, "[colors]\ntrim = \"mauve\"\n"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if _, err := cfg.palette(); err == nil || !strings.Contains(err.Error(), "colors.trim") {
		t.Fatalf("expected colors.trim error, got %v", err)
	}
}

func TestFindConfigSearchesUpwards(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "data", "ships")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, configName), nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	path, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: %v %v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s", path)
	}
}

func TestReadOptionsFromConfig(t *testing.T) {
	cacheDir := t.TempDir()
	cfg := &projectConfig{Read: readConfig{Extension: "dat", Jobs: 3, Cache: true, CacheDir: cacheDir}}
	opts, err := cfg.readOptions()
	if err != nil {
		t.Fatalf("readOptions: %v", err)
	}
	if opts.Extension != "dat" || opts.Jobs != 3 || opts.Cache == nil || opts.Cache.Dir() != cacheDir {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.Trimmed != diagfmt.DefaultTrimmed {
		t.Fatalf("default trim lost: %q", opts.Trimmed)
	}
}

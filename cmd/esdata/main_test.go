package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var cliFiles = map[string]string{
	"ships/falcon.txt": "ship Falcon\n\tmass 100\n\tattributes\n\t\tshields 8400\n",
	"ships/bad.txt":    "ship `Broken\n\tmass 5\n",
	"outfits.txt":      "outfit Laser\n\tcost 100\n",
}

// workspace writes files plus an esdata.toml and returns the directory and
// the config path.
func workspace(t *testing.T, files map[string]string, config string) (string, string) {
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
	cfgPath := filepath.Join(dir, configName)
	if err := os.WriteFile(cfgPath, []byte(config), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir, cfgPath
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseTreeAndErrors(t *testing.T) {
	dir, cfg := workspace(t, cliFiles, "")
	code, out, errOut := runCLI(t, "--config", cfg, "parse", "--format", "tree", "--jobs", "1", dir)
	if code != 1 {
		t.Fatalf("expected exit 1 because of bad.txt, got %d", code)
	}
	for _, want := range []string{"ship Falcon (line 1)", "└── shields 8400 (line 4)", "outfit Laser (line 1)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if !strings.Contains(errOut, "ERROR: This string was never closed") {
		t.Fatalf("parse errors not rendered:\n%s", errOut)
	}
	if strings.Contains(errOut, "\x1b[") {
		t.Fatalf("stderr is not a terminal, output must be colorless:\n%q", errOut)
	}
}

func TestParseUsesConfigKind(t *testing.T) {
	dir, cfg := workspace(t, cliFiles, "[read]\nkind = \"PROBLEM\"\ntrim = \"...\"\n")
	_, _, errOut := runCLI(t, "--config", cfg, "parse", dir)
	if !strings.Contains(errOut, "PROBLEM: This string was never closed") {
		t.Fatalf("kind from esdata.toml not used:\n%s", errOut)
	}
}

func TestDiagShort(t *testing.T) {
	dir, cfg := workspace(t, cliFiles, "")
	code, out, _ := runCLI(t, "--config", cfg, "diag", "--format", "short", dir)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	want := "error LEX1002 ships/bad.txt:1:6 This string was never closed\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDiagJSONClean(t *testing.T) {
	files := map[string]string{"a.txt": "a b\n"}
	dir, cfg := workspace(t, files, "")
	code, out, _ := runCLI(t, "--config", cfg, "diag", "--format", "json", dir)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
}

func TestQueryCount(t *testing.T) {
	dir, cfg := workspace(t, cliFiles, "")
	code, out, _ := runCLI(t, "--config", cfg, "--quiet", "query", "--count", dir, "ship", "mass")
	if code != 0 {
		t.Fatalf("query exit %d", code)
	}
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("expected 2 matches, got %q", out)
	}
}

func TestFmtCheckThenWrite(t *testing.T) {
	files := map[string]string{"a.txt": "a   b\n\tc\n"}
	dir, cfg := workspace(t, files, "")
	code, out, _ := runCLI(t, "--config", cfg, "fmt", "--check", dir)
	if code != 1 || !strings.Contains(out, "a.txt") {
		t.Fatalf("check should list a.txt and fail, got %d %q", code, out)
	}
	if code, _, errOut := runCLI(t, "--config", cfg, "fmt", dir); code != 0 {
		t.Fatalf("fmt failed: %s", errOut)
	}
	if code, _, _ := runCLI(t, "--config", cfg, "fmt", "--check", dir); code != 0 {
		t.Fatalf("file still needs formatting")
	}
}

func TestTokenizeJSON(t *testing.T) {
	dir, cfg := workspace(t, map[string]string{"a.txt": "a \"b c\"\n"}, "")
	code, out, _ := runCLI(t, "--config", cfg, "tokenize", "--format", "json", filepath.Join(dir, "a.txt"))
	if code != 0 {
		t.Fatalf("tokenize exit %d", code)
	}
	if !strings.Contains(out, `"b c"`) {
		t.Fatalf("quoted lexeme missing from %s", out)
	}
}

func TestVersionJSON(t *testing.T) {
	code, out, _ := runCLI(t, "version", "--format", "json", "--hash")
	if code != 0 {
		t.Fatalf("version exit %d", code)
	}
	var payload struct {
		Tool      string `json:"tool"`
		Version   string `json:"version"`
		GitCommit string `json:"git_commit"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Tool != "esdata" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBadColorFlag(t *testing.T) {
	if code, _, errOut := runCLI(t, "--color", "purple", "version"); code != 1 || !strings.Contains(errOut, "invalid --color") {
		t.Fatalf("expected color error, got %d %q", code, errOut)
	}
}

func TestDiagWritesTrace(t *testing.T) {
	dir, cfg := workspace(t, map[string]string{"a.txt": "a b\n\tc\n"}, "")
	out := filepath.Join(t.TempDir(), "trace.ndjson")
	code, _, stderr := runCLI(t, "--config", cfg, "--trace", out, "--trace-level", "source", "diag", dir)
	if code != 0 {
		t.Fatalf("diag exit %d: %s", code, stderr)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	for _, want := range []string{`"name":"read-folder"`, `"name":"load"`, `"scope":"source"`, `"kind":"end"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("trace missing %s:\n%s", want, raw)
		}
	}
}

func TestBadTraceLevel(t *testing.T) {
	dir, cfg := workspace(t, map[string]string{"a.txt": "a\n"}, "")
	if code, _, _ := runCLI(t, "--config", cfg, "--trace-level", "loud", "diag", dir); code == 0 {
		t.Fatal("expected failure for an unknown trace level")
	}
}

package diag

import (
	"testing"

	"esdata/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	ships := fs.Add("/workspace/data/ships.txt", []byte("ship A\n\tmass 1\n"), 0)
	outfits := fs.Add("/workspace/data/outfits.txt", []byte("outfit\n"), 0)

	diags := []Diagnostic{
		NewError(LexUnclosedString, ships, source.Span{Start: 8, End: 9}, "second\nline").
			WithNote("close it"),
		NewError(LexMixedIndentation, ships, source.Span{Start: 0, End: 1}, "first"),
		NewError(LexNonASCIICharacter, outfits, source.Span{Start: 2, End: 3}, "other file"),
		NewError(LexInfo, source.FileID(9), source.Span{}, "unknown file is dropped"),
	}

	expected := "error LEX1003 data/outfits.txt:1:3 other file\n" +
		"error LEX1001 data/ships.txt:1:1 first\n" +
		"error LEX1002 data/ships.txt:2:2 second line\n" +
		"note LEX1002 data/ships.txt:2:2 close it"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("empty input = %q", got)
	}
}

func TestCodeNames(t *testing.T) {
	tests := []struct {
		code  Code
		id    string
		title string
	}{
		{LexMixedIndentation, "LEX1001", "Mixed indentation"},
		{IOCacheError, "IO4002", "Parse cache error"},
		{Code(7), "E0007", "Unknown error"},
	}
	for _, tt := range tests {
		if tt.code.ID() != tt.id || tt.code.Title() != tt.title {
			t.Errorf("%d: got %s %q", tt.code, tt.code.ID(), tt.code.Title())
		}
	}
	if got := LexUnclosedString.String(); got != "[LEX1002]: Unclosed string" {
		t.Fatalf("String = %q", got)
	}
}

package token_test

import (
	"testing"

	"esdata/internal/token"
)

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Symbol:   "Symbol",
		token.Indent:   "Indent",
		token.Newline:  "Newline",
		token.Kind(42): "Unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestLexeme(t *testing.T) {
	src := `ship "Blue Jay"`
	tok := token.New(token.Symbol, 6, 14)
	if got, ok := tok.Lexeme(src); !ok || got != "Blue Jay" {
		t.Fatalf("Lexeme = %q, %v", got, ok)
	}
	if _, ok := token.New(token.Symbol, 6, 40).Lexeme(src); ok {
		t.Fatal("Lexeme past end of source must fail")
	}
	if !tok.IsSymbol() || token.New(token.Indent, 0, 1).IsSymbol() {
		t.Fatal("IsSymbol mismatch")
	}
}

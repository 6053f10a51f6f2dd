package lexer_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"esdata/internal/data"
	"esdata/internal/diag"
	"esdata/internal/lexer"
	"esdata/internal/token"
)

// describe renders items as "Kind(lexeme)" / "Kind" / "!Err@span" strings.
func describe(t *testing.T, text string) []string {
	t.Helper()
	d := data.New()
	src := d.InsertSource(text)
	lx := lexer.New(d, src)

	var out []string
	for it := range lx.All() {
		out = append(out, describeItem(d, src, it))
	}
	return out
}

func describeItem(d *data.Data, src data.SourceIndex, it lexer.Item) string {
	if it.IsErr() {
		return fmt.Sprintf("!%s@%s", it.Err.Kind(), it.Err.Span())
	}
	if it.Token.Kind == token.Symbol {
		lexeme, _ := d.GetLexeme(src, it.Token)
		return fmt.Sprintf("Symbol(%s)", lexeme)
	}
	return it.Token.Kind.String()
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "barewords and indent",
			text: "a b\n\tc",
			want: []string{"Symbol(a)", "Symbol(b)", "Newline", "Indent", "Symbol(c)"},
		},
		{
			name: "quoted strings",
			text: "ship \"Blue Jay\" `say \"hi\"`",
			want: []string{"Symbol(ship)", "Symbol(Blue Jay)", `Symbol(say "hi")`},
		},
		{
			name: "empty quotes",
			text: `a ""`,
			want: []string{"Symbol(a)", "Symbol()"},
		},
		{
			name: "quote inside bareword",
			text: `a"b c`,
			want: []string{`Symbol(a"b)`, "Symbol(c)"},
		},
		{
			name: "comments",
			text: "a # trailing\n# full line\nb",
			want: []string{"Symbol(a)", "Newline", "Newline", "Symbol(b)"},
		},
		{
			name: "inner whitespace skipped",
			text: "a  \t b\r\n",
			want: []string{"Symbol(a)", "Symbol(b)", "Newline"},
		},
		{
			name: "form feed skipped, vertical tab kept",
			text: "a\fb \vc",
			want: []string{"Symbol(a)", "Symbol(b)", "Symbol(\vc)"},
		},
		{
			name: "two levels of tabs",
			text: "\t\tx",
			want: []string{"Indent", "Indent", "Symbol(x)"},
		},
		{
			name: "indented comment line",
			text: "\t# c\nx",
			want: []string{"Indent", "Newline", "Symbol(x)"},
		},
		{
			name: "mixed indentation",
			text: " \tx",
			want: []string{"Indent", "!MixedIndentation@1-2", "Indent", "Symbol(x)"},
		},
		{
			name: "unclosed backtick",
			text: "`unterminated",
			want: []string{"!UnclosedString@0-1", "Symbol(unterminated)"},
		},
		{
			name: "unclosed string stops at newline",
			text: "a \"open\nb",
			want: []string{"Symbol(a)", "!UnclosedString@2-3", "Symbol(open)", "Newline", "Symbol(b)"},
		},
		{
			name: "non-ascii character",
			text: "a é b",
			want: []string{"Symbol(a)", "!NonAsciiCharacter@2-4", "Symbol(b)"},
		},
		{
			name: "non-ascii splits bareword",
			text: "aéb",
			want: []string{"Symbol(a)", "!NonAsciiCharacter@1-3", "Symbol(b)"},
		},
		{
			name: "non-ascii inside quotes is accepted",
			text: `"café"`,
			want: []string{"Symbol(café)"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe(t, tt.text)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("tokens =\n  %s\nwant\n  %s", strings.Join(got, " "), strings.Join(tt.want, " "))
			}
		})
	}
}

func TestMixedIndentationReportedOnce(t *testing.T) {
	got := describe(t, " a\n\tb\n\tc\n d")
	errors := 0
	for _, s := range got {
		if strings.HasPrefix(s, "!") {
			errors++
		}
	}
	if errors != 1 {
		t.Fatalf("errors = %d, want 1: %v", errors, got)
	}
	if got[3] != "!MixedIndentation@3-4" || got[4] != "Indent" {
		t.Fatalf("unexpected stream: %v", got)
	}
}

func TestPeekKeepsRecoveredToken(t *testing.T) {
	d := data.New()
	src := d.InsertSource(" \tx")
	lx := lexer.New(d, src)

	var got []string
	for {
		first, ok := lx.Peek()
		if !ok {
			break
		}
		second, _ := lx.Peek()
		if describeItem(d, src, first) != describeItem(d, src, second) {
			t.Fatalf("Peek not idempotent: %v vs %v", first, second)
		}
		next, _ := lx.Next()
		if describeItem(d, src, next) != describeItem(d, src, first) {
			t.Fatalf("Next differs from Peek: %v vs %v", next, first)
		}
		got = append(got, describeItem(d, src, next))
	}
	want := []string{"Indent", "!MixedIndentation@1-2", "Indent", "Symbol(x)"}
	if !slices.Equal(got, want) {
		t.Fatalf("stream = %v, want %v", got, want)
	}
	if _, ok := lx.Next(); ok {
		t.Fatal("Next after end must report false")
	}
}

func TestUnknownSource(t *testing.T) {
	lx := lexer.New(data.New(), data.SourceIndex{})
	if _, ok := lx.Peek(); ok {
		t.Fatal("lexer over unknown source must be empty")
	}
}

func TestErrorReporting(t *testing.T) {
	tests := []struct {
		kind lexer.ErrorKind
		code diag.Code
		msg  string
		note string
	}{
		{lexer.MixedIndentation, diag.LexMixedIndentation, "Mixed indentation detected",
			"You should only use one of tabs or spaces when indenting, not both"},
		{lexer.UnclosedString, diag.LexUnclosedString, "This string was never closed",
			"The string terminated at the newline character, but you should close it anyway"},
		{lexer.NonASCIICharacter, diag.LexNonASCIICharacter, "Only ASCII characters are allowed in Endless Sky data files",
			"If this has changed since Endless Sky RW was written, the library needs to be updated"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := lexer.NewError(tt.kind, token.New(token.Symbol, 1, 2).Span)
			msg, ok := err.Message()
			if !ok || msg != tt.msg {
				t.Fatalf("Message = %q, %v", msg, ok)
			}
			if notes := err.Notes(); len(notes) != 1 || notes[0] != tt.note {
				t.Fatalf("Notes = %q", notes)
			}
			if err.Code() != tt.code {
				t.Fatalf("Code = %v, want %v", err.Code(), tt.code)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("Error() = %q", err.Error())
			}
		})
	}
}

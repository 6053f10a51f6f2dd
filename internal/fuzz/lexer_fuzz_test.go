package fuzztests

import (
	"testing"

	"esdata/internal/data"
	"esdata/internal/lexer"
	"esdata/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		d := data.New()
		src := d.InsertSource(text)

		lx := lexer.New(d, src)
		var end uint32
		for it := range lx.All() {
			if it.IsErr() {
				sp := it.Err.Span()
				if int(sp.End) > len(text) || sp.Start > sp.End {
					t.Fatalf("error span %v outside input of %d bytes", sp, len(text))
				}
				continue
			}
			sp := it.Token.Span
			if int(sp.End) > len(text) || sp.Start > sp.End {
				t.Fatalf("token span %v outside input of %d bytes", sp, len(text))
			}
			if sp.Start < end {
				t.Fatalf("token span %v overlaps previous token ending at %d", sp, end)
			}
			end = sp.End
			if it.Token.Kind == token.Symbol {
				if _, ok := d.GetLexeme(src, it.Token); !ok {
					t.Fatalf("symbol %v has no lexeme", sp)
				}
			}
		}
		if _, ok := lx.Next(); ok {
			t.Fatalf("lexer yielded items after exhaustion")
		}
	})
}

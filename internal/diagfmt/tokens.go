package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"esdata/internal/lexer"
	"esdata/internal/source"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Error string      `json:"error,omitempty"`
}

func tokenOutput(text string, it lexer.Item) TokenOutput {
	if it.IsErr() {
		msg, _ := it.Err.Message()
		return TokenOutput{
			Kind:  "Error",
			Span:  it.Err.Span(),
			Error: fmt.Sprintf("%s: %s", it.Err.Kind(), msg),
		}
	}
	lexeme, _ := it.Token.Lexeme(text)
	return TokenOutput{
		Kind: it.Token.Kind.String(),
		Text: lexeme,
		Span: it.Token.Span,
	}
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, text string, items []lexer.Item) error {
	for i, it := range items {
		out := tokenOutput(text, it)
		start := source.Locate(text, int(out.Span.Start))
		end := source.Locate(text, int(out.Span.End))

		var err error
		switch {
		case out.Error != "":
			_, err = fmt.Fprintf(w, "%3d: %-8s %s at %d:%d-%d:%d\n", i+1, out.Kind, out.Error,
				start.Line, start.Col, end.Line, end.Col)
		case out.Text != "" && it.Token.IsSymbol():
			_, err = fmt.Fprintf(w, "%3d: %-8s %q at %d:%d-%d:%d\n", i+1, out.Kind, out.Text,
				start.Line, start.Col, end.Line, end.Col)
		default:
			_, err = fmt.Fprintf(w, "%3d: %-8s at %d:%d-%d:%d\n", i+1, out.Kind,
				start.Line, start.Col, end.Line, end.Col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, text string, items []lexer.Item) error {
	output := make([]TokenOutput, 0, len(items))
	for _, it := range items {
		output = append(output, tokenOutput(text, it))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

package driver

import (
	"esdata/internal/data"
	"esdata/internal/diag"
	"esdata/internal/lexer"
	"esdata/internal/parser"
	"esdata/internal/source"
)

// TokenizeResult is the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Items   []lexer.Item
	// Bag holds one diagnostic per lexical error, in stream order.
	Bag *diag.Bag
}

// Tokenize lexes the file at path without parsing it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	res := &TokenizeResult{FileSet: source.NewFileSet(), Bag: diag.NewBag(maxDiagnostics)}
	id, err := res.FileSet.Load(path)
	if err != nil {
		return nil, err
	}
	res.File = res.FileSet.Get(id)

	d := data.New()
	for it := range lexer.New(d, d.InsertSource(string(res.File.Content))).All() {
		res.Items = append(res.Items, it)
		// ошибка остаётся в потоке, в мешок идёт копия
		if it.IsErr() {
			res.Bag.Add(parser.WrapLexError(it.Err).Diagnostic(id))
		}
	}
	return res, nil
}

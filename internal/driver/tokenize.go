package driver

import (
	"pinecheck/internal/diag"
	"pinecheck/internal/lexer"
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and returns its full token stream, EOF included.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag, File: file, Source: diag.SourceTag}
	tokens := lexer.New(file, lexer.Options{Reporter: rep}).Tokens()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

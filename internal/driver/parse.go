package driver

import (
	"fortio.org/safecast"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/parser"
	"pinecheck/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *cst.Tree
	Bag     *diag.Bag
}

// Parse loads path and builds its concrete syntax tree. Lexer and parser
// diagnostics land in Bag; the tree is returned even when the file is broken.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	tree, err := parseFile(file, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}, nil
}

func parseFile(file *source.File, bag *diag.Bag, maxDiagnostics int) (*cst.Tree, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag, File: file, Source: diag.SourceTag})
	opts := parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
	}
	return parser.Parse(file, opts), nil
}

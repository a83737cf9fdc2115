package sema

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/parser"
	"pinecheck/internal/source"
)

func parseTree(t *testing.T, src string) *cst.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pine", []byte(src))
	tree := parser.Parse(fs.Get(id), parser.Options{})
	if tree == nil || tree.Root == nil {
		t.Fatalf("parser returned no tree for %q", src)
	}
	return tree
}

func analyze(t *testing.T, src string) Result {
	t.Helper()
	return New(nil, Options{}).Analyze(context.Background(), parseTree(t, src))
}

func withCode(res Result, code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func summary(res Result) string {
	if len(res.Diagnostics) == 0 {
		return "<none>"
	}
	lines := make([]string, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

package parser

import (
	"fmt"
	"strings"
	"testing"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
)

func parseSource(t *testing.T, src string) (*cst.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pine", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	tree := Parse(file, Options{Reporter: diag.BagReporter{Bag: bag, File: file}})
	if tree == nil || tree.Root == nil {
		t.Fatalf("parser returned no tree for %q", src)
	}
	return tree, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// checkInvariants: спаны детей лежат внутри родителя, ссылки на родителя согласованы
func checkInvariants(t *testing.T, tree *cst.Tree) {
	t.Helper()
	tree.Root.Walk(func(n *cst.Node) bool {
		for _, c := range n.Children {
			if c.Parent != n {
				t.Errorf("%s: child %s has wrong parent", n.Type, c.Type)
			}
			if !n.Span.Contains(c.Span) {
				t.Errorf("%s %v does not contain child %s %v", n.Type, n.Span, c.Type, c.Span)
			}
		}
		return true
	})
}

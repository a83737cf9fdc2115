package cst_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pinecheck/internal/cst"
	"pinecheck/internal/source"
)

// build строит дерево для "x = a + 1" вручную
func build(t *testing.T) *cst.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.pine", []byte("x = a + 1"))
	file := fs.Get(id)
	tr := cst.NewTree(file)
	sp := func(s, e uint32) source.Span { return source.Span{File: id, Start: s, End: e} }

	bin := tr.NewNode(cst.BinaryExpression,
		tr.Leaf(cst.Identifier, true, sp(4, 5)).As(cst.FieldLeft),
		tr.Leaf("+", false, sp(6, 7)).As(cst.FieldOperator),
		tr.Leaf(cst.Number, true, sp(8, 9)).As(cst.FieldRight),
	)
	decl := tr.NewNode(cst.SimpleDeclaration,
		tr.Leaf(cst.Identifier, true, sp(0, 1)).As(cst.FieldName),
		tr.Leaf("=", false, sp(2, 3)),
		bin.As(cst.FieldValue),
	)
	return tr.Finish(tr.NewNode(cst.SourceFile, decl))
}

func TestNodeNavigation(t *testing.T) {
	tr := build(t)
	decl := tr.Root.NamedChild(0)
	if decl.Type != cst.SimpleDeclaration {
		t.Fatalf("got %s", decl.Type)
	}
	if got := decl.ChildByField(cst.FieldName).Text(); got != "x" {
		t.Errorf("name = %q", got)
	}
	val := decl.ChildByField(cst.FieldValue)
	if val.Text() != "a + 1" {
		t.Errorf("value text = %q", val.Text())
	}
	if len(val.NamedChildren()) != 2 || val.ChildCount() != 3 {
		t.Errorf("named=%d all=%d", len(val.NamedChildren()), val.ChildCount())
	}
	op := val.ChildByField(cst.FieldOperator)
	if op.Named || op.Text() != "+" {
		t.Errorf("operator leaf wrong: %+v", op)
	}
	if op.PrevSibling().Text() != "a" || op.NextSibling().Text() != "1" {
		t.Errorf("siblings wrong")
	}
	if val.Parent != decl || op.Ancestor(cst.SimpleDeclaration) != decl {
		t.Errorf("parent links wrong")
	}
	if val.End.Column != 9 || val.Start.Column != 4 {
		t.Errorf("value range = %s", val.Range())
	}
	if tr.Root.HasError() {
		t.Errorf("no error nodes expected")
	}
	if ids := tr.Root.Descendants(cst.Identifier); len(ids) != 2 {
		t.Errorf("identifiers = %d", len(ids))
	}
}

func TestSpansNest(t *testing.T) {
	tr := build(t)
	tr.Root.Walk(func(n *cst.Node) bool {
		if n.Parent != nil && !n.Parent.Span.Contains(n.Span) {
			t.Errorf("%s %v not inside parent %v", n.Type, n.Span, n.Parent.Span)
		}
		return true
	})
}

func TestSExprAndPrint(t *testing.T) {
	tr := build(t)
	want := "(source_file (simple_declaration name: (identifier) value: (binary_expression left: (identifier) right: (number))))"
	if got := tr.Root.SExpr(); got != want {
		t.Fatalf("SExpr:\n got %s\nwant %s", got, want)
	}

	var buf bytes.Buffer
	if err := tr.Print(&buf, cst.PrintOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "name: identifier") || !strings.Contains(out, `"a"`) {
		t.Fatalf("unexpected dump:\n%s", out)
	}
	if strings.Contains(out, "operator: +") {
		t.Fatalf("anonymous nodes printed without Anonymous:\n%s", out)
	}

	buf.Reset()
	if err := tr.WriteJSON(&buf, true); err != nil {
		t.Fatal(err)
	}
	var back cst.JSONNode
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Type != cst.SourceFile || len(back.Children[0].Children) != 3 {
		t.Fatalf("json export lost structure: %+v", back)
	}
}

// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pinecheck/internal/cst"
	"pinecheck/internal/token"
)

// CheckTree verifies the structural invariants of a finished tree:
// 1) the root is a source_file whose span lies within the file content
// 2) every child points back to its parent and belongs to the same file
// 3) every child span is contained in its parent span
// 4) row/column positions agree with byte offsets
func CheckTree(tree *cst.Tree) error {
	if tree == nil || tree.Root == nil || tree.File == nil {
		return fmt.Errorf("nil tree, root or file")
	}
	root := tree.Root
	if root.Type != cst.SourceFile {
		return fmt.Errorf("root is %s, want %s", root.Type, cst.SourceFile)
	}
	if root.Parent != nil {
		return fmt.Errorf("root has a parent")
	}
	lenContent, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, lenContent)
	}

	var firstErr error
	root.Walk(func(n *cst.Node) bool {
		if firstErr != nil {
			return false
		}
		if n.Span.Start > n.Span.End {
			firstErr = fmt.Errorf("%s: inverted span %v", n.Type, n.Span)
			return false
		}
		if n.Span.File != tree.File.ID {
			firstErr = fmt.Errorf("%s: span file mismatch: got=%d want=%d", n.Type, n.Span.File, tree.File.ID)
			return false
		}
		if n.Start != tree.File.PointAt(n.Span.Start) || n.End != tree.File.PointAt(n.Span.End) {
			firstErr = fmt.Errorf("%s: points %v-%v disagree with span %v", n.Type, n.Start, n.End, n.Span)
			return false
		}
		for _, c := range n.Children {
			if c.Parent != n {
				firstErr = fmt.Errorf("%s: child %s has wrong parent", n.Type, c.Type)
				return false
			}
			if !n.Span.Contains(c.Span) {
				firstErr = fmt.Errorf("%s %v does not contain child %s %v", n.Type, n.Span, c.Type, c.Span)
				return false
			}
		}
		return true
	})
	return firstErr
}

// CheckTokenCoverage verifies that every significant token of toks overlaps
// some leaf of tree, i.e. the parser dropped no source text. Layout tokens
// and zero-width tokens are ignored.
func CheckTokenCoverage(tree *cst.Tree, toks []token.Token) error {
	if tree == nil || tree.Root == nil {
		return fmt.Errorf("nil tree")
	}
	var leaves []*cst.Node
	tree.Root.Walk(func(n *cst.Node) bool {
		if len(n.Children) == 0 && !n.Span.Empty() {
			leaves = append(leaves, n)
		}
		return true
	})

	// листья идут в порядке обхода, то есть по возрастанию смещения
	i := 0
	for _, tok := range toks {
		switch tok.Kind {
		case token.EOF, token.Newline, token.Indent, token.Dedent:
			continue
		}
		if tok.Span.Empty() {
			continue
		}
		for i < len(leaves) && leaves[i].Span.End <= tok.Span.Start {
			i++
		}
		if i == len(leaves) || leaves[i].Span.Start >= tok.Span.End {
			return fmt.Errorf("token %s %q at %v is not covered by any leaf", tok.Kind, tok.Text, tok.Span)
		}
	}
	return nil
}

package cst

import (
	"pinecheck/internal/source"
)

// Tree owns a CST built over one file.
type Tree struct {
	File  *source.File
	Root  *Node
	count int
}

// NewTree creates an empty tree over file.
func NewTree(file *source.File) *Tree {
	return &Tree{File: file}
}

// Len returns the number of nodes allocated by the tree.
func (t *Tree) Len() int { return t.count }

// Leaf creates a childless node covering span.
func (t *Tree) Leaf(typ string, named bool, span source.Span) *Node {
	t.count++
	return &Node{Type: typ, Named: named, Span: span, tree: t}
}

// Empty creates a named childless node of zero width at offset.
func (t *Tree) Empty(typ string, file source.FileID, offset uint32) *Node {
	return t.Leaf(typ, true, source.Span{File: file, Start: offset, End: offset})
}

// NewNode creates a named node adopting children. Nil children are skipped.
// The span covers the children; an empty child list needs Empty instead.
func (t *Tree) NewNode(typ string, children ...*Node) *Node {
	t.count++
	n := &Node{Type: typ, Named: true, tree: t}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Append adopts c as the last child and widens the span.
func (n *Node) Append(c *Node) *Node {
	if c == nil {
		return n
	}
	c.Parent = n
	if len(n.Children) == 0 {
		n.Span = c.Span
	} else {
		n.Span = n.Span.Cover(c.Span)
	}
	n.Children = append(n.Children, c)
	return n
}

// As sets the field name under which the parent refers to n.
func (n *Node) As(field string) *Node {
	if n != nil {
		n.Field = field
	}
	return n
}

// Finish sets the root, grows ancestor spans where needed and fills row/column positions.
func (t *Tree) Finish(root *Node) *Tree {
	t.Root = root
	if root == nil || t.File == nil {
		return t
	}
	// спаны детей могли измениться после добавления к родителю
	var fix func(n *Node)
	fix = func(n *Node) {
		for _, c := range n.Children {
			if len(c.Children) > 0 {
				fix(c)
			}
			n.Span = n.Span.Cover(c.Span)
		}
	}
	fix(root)
	root.Walk(func(n *Node) bool {
		n.Start = t.File.PointAt(n.Span.Start)
		n.End = t.File.PointAt(n.Span.End)
		return true
	})
	return t
}

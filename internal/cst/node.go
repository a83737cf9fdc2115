package cst

import (
	"pinecheck/internal/source"
)

// Node is a single CST node.
type Node struct {
	Type  string // тег узла, для пунктуации совпадает с текстом
	Named bool   // false для пунктуации и ключевых слов
	Field string // имя поля у родителя, "" если нет

	Span  source.Span
	Start source.Point
	End   source.Point

	Children []*Node
	Parent   *Node // не владеющая ссылка

	tree *Tree
}

// Tree returns the owning tree.
func (n *Node) Tree() *Tree { return n.tree }

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n == nil || n.tree == nil || n.tree.File == nil {
		return ""
	}
	c := n.tree.File.Content
	if int(n.Span.End) > len(c) || n.Span.Start > n.Span.End {
		return ""
	}
	return string(c[n.Span.Start:n.Span.End])
}

// Range returns the node's row/column range.
func (n *Node) Range() source.Range {
	return source.Range{Start: n.Start, End: n.End}
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildCount returns the number of children, punctuation included.
func (n *Node) ChildCount() int { return len(n.Children) }

// NamedChildren returns the children that are not punctuation or keywords.
func (n *Node) NamedChildren() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// NamedChild returns the i-th named child or nil.
func (n *Node) NamedChild(i int) *Node {
	if n == nil || i < 0 {
		return nil
	}
	for _, c := range n.Children {
		if !c.Named {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// ChildByField returns the first child stored under field, or nil.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildrenByField returns every child stored under field.
func (n *Node) ChildrenByField(field string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of n among its parent's children, or -1 for the root.
func (n *Node) Index() int {
	if n == nil || n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following child of the parent, or nil.
func (n *Node) NextSibling() *Node {
	i := n.Index()
	if i < 0 {
		return nil
	}
	return n.Parent.Child(i + 1)
}

// PrevSibling returns the preceding child of the parent, or nil.
func (n *Node) PrevSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.Parent.Child(i - 1)
}

// IsError reports whether the node is an error node.
func (n *Node) IsError() bool { return n != nil && n.Type == Error }

// HasError reports whether the node or any descendant is an error node.
func (n *Node) HasError() bool {
	found := false
	n.Walk(func(c *Node) bool {
		if c.Type == Error {
			found = true
		}
		return !found
	})
	return found
}

// Ancestor returns the nearest ancestor whose type is one of types.
func (n *Node) Ancestor(types ...string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, t := range types {
			if p.Type == t {
				return p
			}
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order. Returning false from fn skips the
// node's children. The traversal uses an explicit stack, so depth is bounded only by memory.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Descendants returns every descendant (n excluded) of the given type in pre-order.
func (n *Node) Descendants(typ string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c != n && c.Type == typ {
			out = append(out, c)
		}
		return true
	})
	return out
}

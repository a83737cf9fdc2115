package cst

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"pinecheck/internal/source"
)

// SExpr renders the named structure of n as an s-expression, with field prefixes:
//
//	(source_file (simple_declaration name: (identifier) value: (number)))
func (n *Node) SExpr() string {
	var sb strings.Builder
	writeSExpr(&sb, n, "")
	return sb.String()
}

func writeSExpr(sb *strings.Builder, n *Node, field string) {
	if n == nil {
		sb.WriteString("()")
		return
	}
	if field != "" {
		sb.WriteString(field)
		sb.WriteString(": ")
	}
	sb.WriteByte('(')
	sb.WriteString(n.Type)
	for _, c := range n.Children {
		if !c.Named {
			continue
		}
		sb.WriteByte(' ')
		writeSExpr(sb, c, c.Field)
	}
	sb.WriteByte(')')
}

// PrintOptions configures Print.
type PrintOptions struct {
	Anonymous bool // печатать пунктуацию и ключевые слова
	MaxText   int  // ширина превью текста листьев; 0 - 40
}

// Print writes an indented dump of the tree, one node per line:
//
//	simple_declaration                 0:0-0:5
//	  name: identifier                 0:0-0:1  "x"
func (t *Tree) Print(w io.Writer, opts PrintOptions) error {
	if t.Root == nil {
		return nil
	}
	maxText := opts.MaxText
	if maxText <= 0 {
		maxText = 40
	}

	type item struct {
		n     *Node
		depth int
	}
	// ширина колонки с метками считается заранее
	var rows []item
	labelWidth := 0
	stack := []item{{t.Root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !it.n.Named && !opts.Anonymous {
			continue
		}
		rows = append(rows, it)
		if w := runewidth.StringWidth(label(it.n, it.depth)); w > labelWidth {
			labelWidth = w
		}
		for i := len(it.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.n.Children[i], it.depth + 1})
		}
	}

	for _, it := range rows {
		line := runewidth.FillRight(label(it.n, it.depth), labelWidth+2) + it.n.Range().String()
		if len(it.n.Children) == 0 && it.n.Named {
			text := strings.ReplaceAll(it.n.Text(), "\n", `\n`)
			line += "  " + fmt.Sprintf("%q", runewidth.Truncate(text, maxText, "..."))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func label(n *Node, depth int) string {
	prefix := strings.Repeat("  ", depth)
	if n.Field != "" {
		return prefix + n.Field + ": " + n.Type
	}
	return prefix + n.Type
}

// JSONNode is the serialized form of a node.
type JSONNode struct {
	Type     string       `json:"type"`
	Field    string       `json:"field,omitempty"`
	Named    bool         `json:"named"`
	Start    source.Point `json:"start"`
	End      source.Point `json:"end"`
	Text     string       `json:"text,omitempty"`
	Children []*JSONNode  `json:"children,omitempty"`
}

// Export converts n to its serialized form. Leaves carry their text.
func (n *Node) Export(anonymous bool) *JSONNode {
	out := &JSONNode{Type: n.Type, Field: n.Field, Named: n.Named, Start: n.Start, End: n.End}
	if len(n.Children) == 0 {
		out.Text = n.Text()
	}
	for _, c := range n.Children {
		if !c.Named && !anonymous {
			continue
		}
		out.Children = append(out.Children, c.Export(anonymous))
	}
	return out
}

// WriteJSON writes the tree as indented JSON.
func (t *Tree) WriteJSON(w io.Writer, anonymous bool) error {
	if t.Root == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Root.Export(anonymous))
}

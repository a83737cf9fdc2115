package sema

import (
	"strings"

	"pinecheck/internal/builtins"
	"pinecheck/internal/cst"
	"pinecheck/internal/types"
)

// typeOf infers the type string of an expression node. Unknown shapes are any.
func (a *Analyzer) typeOf(n *cst.Node) string {
	if n == nil {
		return types.Any
	}
	switch n.Type {
	case cst.Number:
		if strings.Contains(n.Text(), ".") {
			return types.Float
		}
		return types.Int
	case cst.String:
		return types.String
	case cst.BoolLiteral:
		return types.Bool
	case cst.ColorLiteral:
		return types.Color
	case cst.NaLiteral:
		return types.Any
	case cst.Identifier, cst.MemberAccess:
		name := n.Text()
		if t, ok := builtins.ValueType(name); ok {
			return t
		}
		if sym := a.stack.Lookup(name); sym != nil && sym.Type != "" {
			return sym.Type
		}
		return types.Any
	case cst.Argument:
		if v := n.ChildByField(cst.FieldValue); v != nil {
			return a.typeOf(v)
		}
		return a.typeOf(n.NamedChild(0))
	case cst.FunctionCall:
		return a.callType(n)
	case cst.BinaryExpression:
		return a.binaryType(n)
	case cst.ConditionalExpression, cst.IfExpression:
		return a.branchType(n)
	case cst.ParenthesizedExpression:
		return a.typeOf(n.NamedChild(0))
	case cst.UnaryExpression:
		if op := n.ChildByField(cst.FieldOperator); op != nil && op.Text() == "not" {
			return types.Bool
		}
		return a.typeOf(n.ChildByField(cst.FieldArgument))
	}
	return types.Any
}

func (a *Analyzer) binaryType(n *cst.Node) string {
	op := n.ChildByField(cst.FieldOperator)
	if op == nil {
		return types.Any
	}
	switch op.Text() {
	case "==", "!=", "<", ">", "<=", ">=", "and", "or":
		return types.Bool
	}
	l := types.Normalize(a.typeOf(n.ChildByField(cst.FieldLeft)))
	r := types.Normalize(a.typeOf(n.ChildByField(cst.FieldRight)))
	switch {
	case l == types.Float || r == types.Float:
		return types.Float
	case l == types.Int && r == types.Int:
		return types.Int
	}
	return types.Any
}

// branchType resolves a ternary or inline if to the common type of its
// branches; an int/float mix widens to float.
func (a *Analyzer) branchType(n *cst.Node) string {
	cons := a.typeOf(branchValue(n.ChildByField(cst.FieldConsequence)))
	alt := n.ChildByField(cst.FieldAlternative)
	if alt == nil {
		return cons
	}
	l := types.Normalize(cons)
	r := types.Normalize(a.typeOf(branchValue(alt)))
	switch {
	case l == r:
		return l
	case (l == types.Int && r == types.Float) || (l == types.Float && r == types.Int):
		return types.Float
	}
	return types.Any
}

// branchValue returns the expression that gives a branch its value: the last
// statement of a block, unwrapped from its expression statement.
func branchValue(n *cst.Node) *cst.Node {
	for n != nil {
		switch n.Type {
		case cst.Block:
			named := n.NamedChildren()
			if len(named) == 0 {
				return nil
			}
			n = named[len(named)-1]
		case cst.ExpressionStatement:
			n = n.NamedChild(0)
		default:
			return n
		}
	}
	return nil
}

func (a *Analyzer) callType(call *cst.Node) string {
	fn := call.ChildByField(cst.FieldFunction)
	if fn == nil {
		return types.Any
	}
	name := fn.Text()
	args := callArguments(call)

	if name == "array.from" || name == "array.new" {
		if targs := call.ChildByField(cst.FieldTypeArguments); targs != nil {
			inner := strings.TrimSuffix(strings.TrimPrefix(targs.Text(), "<"), ">")
			return types.ArrayOf(strings.TrimSpace(inner))
		}
		// array.new(size, initial) carries no element type in its first argument
		if name == "array.from" && len(args) > 0 {
			return types.ArrayOf(types.First(a.typeOf(args[0])))
		}
		return types.AnyArray
	}

	sig, ok := a.lookupFunction(name)
	if !ok {
		if builtins.IsVoid(name) {
			return types.Void
		}
		return types.Any
	}
	rt := sig.ReturnType
	if rt == "" {
		return types.Any
	}
	if !a.catalog.Has(name) {
		rt = sanitizeReturnType(rt)
	}
	if strings.Contains(rt, "element") || strings.Contains(rt, "removed") || strings.Contains(rt, "popped") {
		if len(args) > 0 {
			if elem, ok := types.ElementOf(types.Normalize(a.typeOf(args[0]))); ok {
				return elem
			}
		}
		return types.Any
	}
	return rt
}

// sanitizeReturnType strips qualifiers from a corpus return type and turns
// prose or tuple descriptions into any.
func sanitizeReturnType(rt string) string {
	if strings.EqualFold(rt, types.Void) {
		return types.Void
	}
	alts := types.Split(rt)
	for i, alt := range alts {
		alts[i] = types.Normalize(alt)
	}
	n := types.Join(alts)
	if len(n) > 25 || strings.ContainsAny(n, " `.[") {
		if !strings.Contains(n, "array<") && !strings.Contains(n, "matrix<") && !strings.Contains(n, "map<") {
			return types.Any
		}
	}
	return n
}

// callArguments returns the argument nodes of a call, skipping error nodes.
func callArguments(call *cst.Node) []*cst.Node {
	list := call.ChildByField(cst.FieldArguments)
	if list == nil {
		return nil
	}
	out := make([]*cst.Node, 0, len(list.Children))
	for _, c := range list.Children {
		if c.Type == cst.Argument {
			out = append(out, c)
		}
	}
	return out
}

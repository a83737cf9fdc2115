package sema

import (
	"regexp"

	"pinecheck/internal/builtins"
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/symbols"
	"pinecheck/internal/types"
)

// frame is one entry of the validation work stack; exit frames close the
// scope opened when their node was entered. Quiet frames belong to an
// assignment target that was already rejected.
type frame struct {
	node  *cst.Node
	exit  bool
	quiet bool
}

// validate is pass 2. The walk keeps going after the bag is full so scopes
// and usage counters stay complete; the bag drops what exceeds the cap.
func (a *Analyzer) validate() {
	work := []frame{{node: a.tree.Root}}
	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]
		if f.exit {
			a.stack.Pop()
			continue
		}

		n := f.node
		if a.enterScope(n) {
			work = append(work, frame{node: n, exit: true})
		}
		a.check(n, f.quiet)

		rejected := a.rejected
		a.rejected = nil
		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			work = append(work, frame{node: c, quiet: f.quiet || (rejected != nil && c == rejected)})
		}
	}
}

// enterScope opens the scope n introduces, if any, and declares what lives in it.
func (a *Analyzer) enterScope(n *cst.Node) bool {
	switch n.Type {
	case cst.FunctionDefinition, cst.MethodDefinition, cst.AnonymousFunction:
		a.stack.Push(symbols.ScopeFunction, n.Span, n.Range())
		a.defineParameters(n.ChildByField(cst.FieldParameters))
		return true

	case cst.ForStatement:
		a.stack.Push(symbols.ScopeLoop, n.Span, n.Range())
		if v := n.ChildByField(cst.FieldVariable); v != nil && v.Type == cst.Identifier {
			a.define(v.Text(), types.Int, symbols.QualifierSimple, v)
		}
		return true

	case cst.ForInStatement:
		elem := types.Any
		if t, ok := types.ElementOf(types.Normalize(a.typeOf(n.ChildByField(cst.FieldCollection)))); ok {
			elem = t
		}
		a.stack.Push(symbols.ScopeLoop, n.Span, n.Range())
		v := n.ChildByField(cst.FieldVariable)
		switch {
		case v == nil:
		case v.Type == cst.Identifier:
			a.define(v.Text(), elem, symbols.QualifierSeries, v)
		case v.Type == cst.TupleDeclaration:
			for _, m := range v.NamedChildren() {
				if m.Type == cst.Identifier {
					a.define(m.Text(), types.Any, symbols.QualifierSeries, m)
				}
			}
		}
		return true
	}
	return false
}

func (a *Analyzer) defineParameters(list *cst.Node) {
	for _, p := range list.NamedChildren() {
		if p.Type != cst.Parameter {
			continue
		}
		name := p.ChildByField(cst.FieldName)
		if name == nil || name.Type != cst.Identifier {
			continue
		}
		typ := types.Any
		if t := p.ChildByField(cst.FieldType); t != nil {
			typ = t.Text()
		}
		a.define(name.Text(), typ, symbols.QualifierParam, name)
	}
}

// check runs the checks for n. A quiet node only counts references.
func (a *Analyzer) check(n *cst.Node, quiet bool) {
	if quiet {
		if n.Type == cst.Identifier {
			a.checkReference(n)
		}
		return
	}
	switch n.Type {
	case cst.VariableDeclaration, cst.SimpleDeclaration, cst.Assignment, cst.CompoundAssignment:
		a.checkAssignment(n)
	case cst.FunctionCall:
		a.checkCall(n)
	case cst.MemberAccess:
		a.checkMemberAccess(n)
	case cst.IfStatement, cst.IfExpression:
		a.checkCondition(n, "if")
	case cst.WhileStatement:
		a.checkCondition(n, "while")
	case cst.Identifier:
		a.checkReference(n)
	}
}

func (a *Analyzer) checkCondition(n *cst.Node, kw string) {
	cond := n.ChildByField(cst.FieldCondition)
	if cond == nil || cond.Type == cst.Error {
		return
	}
	t := a.typeOf(cond)
	if !types.IsCompatible("bool|int", t) {
		a.errorf(diag.SemaConditionType, cond,
			"Condition of '"+kw+"' must be of type 'bool' or 'int', found '"+t+"'.")
	}
}

// checkReference counts a use of a resolved identifier. Unresolved names are
// not reported: imperfect parses would turn that check into noise.
func (a *Analyzer) checkReference(id *cst.Node) {
	if !isReference(id) {
		return
	}
	if sym := a.stack.Lookup(id.Text()); sym != nil {
		sym.Uses++
	}
}

// isReference reports whether id reads a value rather than naming a
// declaration, a parameter, a member or a named argument.
func isReference(id *cst.Node) bool {
	parent := id.Parent
	if parent == nil {
		return true
	}
	switch id.Field {
	case cst.FieldName:
		return parent.Type == cst.CompoundAssignment
	case cst.FieldMember, cst.FieldAlias, cst.FieldVariable:
		return false
	}
	return parent.Type != cst.TupleDeclaration
}

func (a *Analyzer) checkMemberAccess(n *cst.Node) {
	obj := n.ChildByField(cst.FieldObject)
	if obj == nil || obj.Type != cst.Identifier {
		return
	}
	name := obj.Text()
	switch {
	case builtins.IsStandardNamespace(name), builtins.IsCoreVariable(name):
		return
	case a.stack.Lookup(name) != nil, a.catalog.Has(name), a.corpus.Has(name):
		return
	case a.looksLikeTypedParam(name):
		return
	}
	a.errorf(diag.SemaUndefinedIdent, obj, "Undefined identifier '"+name+"'.")
}

// looksLikeTypedParam matches `Type name,` or `Type name)` anywhere in the
// document; declarations the parser could not place still show up this way.
func (a *Analyzer) looksLikeTypedParam(name string) bool {
	if hit, ok := a.typed[name]; ok {
		return hit
	}
	re := regexp.MustCompile(`\b\w+\s+` + regexp.QuoteMeta(name) + `\s*[,)]`)
	hit := re.MatchString(a.text)
	a.typed[name] = hit
	return hit
}

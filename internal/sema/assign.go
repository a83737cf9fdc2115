package sema

import (
	"strings"

	"pinecheck/internal/builtins"
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/symbols"
	"pinecheck/internal/types"
)

func (a *Analyzer) checkAssignment(n *cst.Node) {
	target := n.ChildByField(cst.FieldName)
	if target == nil || target.Type == cst.Error {
		return
	}
	if !a.checkTarget(n, target) {
		a.rejected = target
		return
	}

	declared := ""
	if t := n.ChildByField(cst.FieldType); t != nil {
		declared = t.Text()
	}
	q := qualifierOf(declared)

	if target.Type == cst.TupleDeclaration || target.Type == cst.TupleExpression {
		cur := a.stack.Current()
		for _, m := range target.NamedChildren() {
			if m.Type == cst.Identifier && !cur.Has(m.Text()) {
				a.define(m.Text(), types.Any, q, m)
			}
		}
		return
	}

	value := n.ChildByField(cst.FieldValue)
	if value == nil || value.Type == cst.Error {
		return
	}
	rhs := a.typeOf(value)
	// void results are reported by the call check
	if rhs == types.Void {
		if target.Type == cst.Identifier && a.stack.Current().Get(target.Text()) == nil {
			a.define(target.Text(), types.Any, q, target)
		}
		return
	}

	if target.Type != cst.Identifier {
		if lhs := a.typeOf(target); lhs != types.Any {
			a.checkAssignable(value, lhs, rhs)
		}
		return
	}

	name := target.Text()
	var sym *symbols.Symbol
	if n.Type == cst.VariableDeclaration || n.Type == cst.SimpleDeclaration {
		sym = a.stack.Current().Get(name)
	} else {
		sym = a.stack.Lookup(name)
	}

	switch {
	case sym == nil:
		typ := rhs
		if declared != "" {
			typ = declared
			a.checkAssignable(value, declared, rhs)
		}
		a.define(name, typ, q, target)

	case sym.Decl != nil && *sym.Decl == target.Range():
		// harvested by pass 1 from this very statement
		if declared != "" {
			a.checkAssignable(value, declared, rhs)
		} else if sym.Type == types.Any {
			sym.Type = rhs
		}

	default:
		expected := sym.Type
		if declared != "" {
			expected = declared
		}
		if expected != types.Any {
			a.checkAssignable(value, expected, rhs)
		}
	}
}

func (a *Analyzer) checkAssignable(value *cst.Node, target, actual string) {
	if !types.IsCompatible(target, actual) {
		a.errorf(diag.SemaTypeMismatch, value,
			"Type mismatch: cannot assign value of type '"+actual+"' to variable of type '"+target+"'.")
	}
}

// checkTarget rejects left-hand sides that can never be written. It reports
// false after emitting a diagnostic.
func (a *Analyzer) checkTarget(n, target *cst.Node) bool {
	text := target.Text()
	switch target.Type {
	case cst.FunctionCall:
		a.errorf(diag.SemaAssignToCall, target, "Cannot assign to a function call '"+text+"'.")
		return false
	case cst.BoolLiteral, cst.NaLiteral:
		a.errorf(diag.SemaAssignToLiteral, target, "Cannot assign to literal '"+text+"'.")
		return false
	}
	if strings.HasSuffix(text, ".new") {
		a.errorf(diag.SemaAssignToConstructor, target, "Cannot assign to constructor '"+text+"'.")
		return false
	}

	// a plain declaration may shadow a namespace name
	declares := n.Type == cst.VariableDeclaration || n.Type == cst.SimpleDeclaration
	if target.Type == cst.Identifier && declares {
		return true
	}
	if target.Type == cst.Identifier || target.Type == cst.MemberAccess {
		root, _, _ := strings.Cut(text, ".")
		if builtins.IsStandardNamespace(strings.TrimSpace(root)) {
			a.errorf(diag.SemaAssignToNamespace, target, "Cannot assign to standard namespace '"+text+"'.")
			return false
		}
	}
	return true
}

// qualifierOf reads the qualifier keyword of a declared type; undeclared
// variables are series.
func qualifierOf(declared string) symbols.Qualifier {
	word, _, _ := strings.Cut(strings.TrimSpace(declared), " ")
	switch word {
	case "const":
		return symbols.QualifierConst
	case "input":
		return symbols.QualifierInput
	case "simple":
		return symbols.QualifierSimple
	}
	return symbols.QualifierSeries
}

package sema

import (
	"strconv"
	"strings"

	"pinecheck/internal/builtins"
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/symbols"
	"pinecheck/internal/types"
)

func (a *Analyzer) checkCall(call *cst.Node) {
	fn := call.ChildByField(cst.FieldFunction)
	if fn == nil || (fn.Type != cst.Identifier && fn.Type != cst.MemberAccess) {
		return
	}
	name := fn.Text()
	if builtins.IsKeyword(name) || isRecoveredCall(call) {
		return
	}

	sig, ok := a.lookupFunction(name)
	method := false
	if !ok && fn.Type == cst.MemberAccess {
		if member := fn.ChildByField(cst.FieldMember); member != nil && member.Type == cst.Identifier {
			sig, method = a.lookupFunction(member.Text())
			ok = method
		}
	}
	if !ok {
		a.reportUnresolved(fn, name)
		return
	}

	if sig.Void() {
		a.checkVoidUse(call, name)
	}
	a.checkArguments(call, fn, name, sig, method)
}

// isRecoveredCall reports whether call is the head of a definition the
// parser could not recognize; pass 1 already registered it.
func isRecoveredCall(call *cst.Node) bool {
	if isBrokenDefinition(call) {
		return true
	}
	if p := call.Parent; p != nil && p.Type == cst.ExpressionStatement {
		return isArrowJunk(p.NextSibling())
	}
	return false
}

func (a *Analyzer) reportUnresolved(fn *cst.Node, name string) {
	if fn.Type == cst.MemberAccess {
		prefix, _, _ := strings.Cut(name, ".")
		if builtins.IsStandardNamespace(prefix) {
			a.errorf(diag.SemaUndefinedStdFunction, fn,
				"Undefined function '"+name+"' in standard library '"+prefix+"'.")
			return
		}
	}
	if sym := a.stack.Lookup(name); sym != nil {
		switch {
		case sym.Type == types.Namespace:
			a.errorf(diag.SemaNamespaceAsFunction, fn, "Cannot use namespace '"+name+"' as a function.")
		case isConcreteVariable(sym):
			a.errorf(diag.SemaVariableAsFunction, fn, "Cannot use variable '"+name+"' as a function.")
		}
		return
	}
	// a dotted name with an unknown root may be a user namespace or a typo
	if strings.Contains(name, ".") {
		return
	}
	a.errorf(diag.SemaUndefinedFunction, fn, "Undefined function '"+name+"'.")
}

// isConcreteVariable reports whether sym is a user variable whose type is
// known well enough to rule out a callable value.
func isConcreteVariable(sym *symbols.Symbol) bool {
	if sym.Flags&(symbols.SymbolFlagBuiltin|symbols.SymbolFlagRecovered) != 0 {
		return false
	}
	switch sym.Type {
	case "", types.Any, types.Function, types.Type, types.Namespace:
		return false
	}
	return true
}

// checkVoidUse flags a void call sitting where a value is required.
func (a *Analyzer) checkVoidUse(call *cst.Node, name string) {
	p := call.Parent
	if p == nil {
		return
	}
	if isBranchResult(call) {
		a.errorf(diag.SemaVoidValue, call,
			"Function '"+name+"()' returns void and cannot be used as an expression.")
		return
	}
	used := false
	assigned := false
	switch p.Type {
	case cst.Argument, cst.BinaryExpression, cst.UnaryExpression, cst.ConditionalExpression,
		cst.HistoryReference, cst.ReturnStatement, cst.ParenthesizedExpression:
		used = true
	case cst.VariableDeclaration, cst.SimpleDeclaration, cst.Assignment, cst.CompoundAssignment:
		used = call.Field == cst.FieldValue
		assigned = used
	case cst.IfStatement, cst.WhileStatement:
		used = call.Field == cst.FieldCondition
	case cst.IfExpression:
		used = call.Field == cst.FieldCondition || call.Field == cst.FieldConsequence || call.Field == cst.FieldAlternative
	case cst.ForInStatement:
		used = call.Field == cst.FieldCollection
	case cst.ForStatement:
		used = call.Field == cst.FieldStart || call.Field == cst.FieldEnd || call.Field == cst.FieldStep
	}
	if !used {
		return
	}
	if assigned {
		a.errorf(diag.SemaVoidAssign, call,
			"Cannot assign result of '"+name+"()' to a variable - this function returns void.")
		return
	}
	a.errorf(diag.SemaVoidValue, call,
		"Function '"+name+"()' returns void and cannot be used as an expression.")
}

// isBranchResult reports whether call is the value of an indented branch of an
// inline if: the last statement of its consequence or alternative block.
func isBranchResult(call *cst.Node) bool {
	stmt := call.Parent
	if stmt.Type != cst.ExpressionStatement || stmt.Parent == nil || stmt.Parent.Type != cst.Block {
		return false
	}
	block := stmt.Parent
	if block.Parent == nil || block.Parent.Type != cst.IfExpression {
		return false
	}
	if block.Field != cst.FieldConsequence && block.Field != cst.FieldAlternative {
		return false
	}
	return branchValue(block) == call
}

// checkArguments validates the argument count and the type of each argument.
// A method call passes its receiver in parameter slot 0.
func (a *Analyzer) checkArguments(call, fn *cst.Node, name string, sig *builtins.Signature, method bool) {
	total := len(sig.Params)
	if total == 0 {
		return
	}
	args := callArguments(call)
	provided := len(args)
	if method {
		provided++
	}
	variadic := sig.Variadic()

	if !variadic && provided > total {
		at := call.ChildByField(cst.FieldArguments)
		if at == nil {
			at = call
		}
		a.errorf(diag.SemaTooManyArgs, at, "Too many arguments for '"+name+"()'. Expected at most "+
			strconv.Itoa(total)+", found "+strconv.Itoa(provided)+".")
	}
	if required := sig.RequiredCount(); provided < required {
		a.errorf(diag.SemaMissingArgs, fn, "Missing required arguments for '"+name+"()'. Expected "+
			strconv.Itoa(required)+", found "+strconv.Itoa(provided)+".")
	}

	// fill overloads in the corpus disagree on parameter types
	if name == "fill" {
		return
	}
	positional := 0
	for _, arg := range args {
		var param *builtins.Param
		if argName := arg.ChildByField(cst.FieldName); argName != nil {
			if p, ok := sig.Param(argName.Text()); ok {
				param = p
			}
		} else {
			idx := positional
			if method {
				idx++
			}
			if variadic && idx >= total {
				idx = total - 1
			}
			if idx < total {
				param = &sig.Params[idx]
			}
			positional++
		}
		if param == nil {
			continue
		}
		argType := a.typeOf(arg)
		if argType == types.Void {
			continue
		}
		if !types.IsCompatible(param.Type, argType) {
			a.errorf(diag.SemaArgTypeMismatch, arg, "Type mismatch for argument '"+param.Name+
				"': expected '"+param.Type+"', found '"+argType+"'.")
		}
	}
}

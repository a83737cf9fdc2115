package sema

import (
	"bytes"
	"regexp"
	"strings"

	"pinecheck/internal/builtins"
	"pinecheck/internal/cst"
	"pinecheck/internal/symbols"
	"pinecheck/internal/types"
)

// name(params) => inside a single node text
var brokenDefinitionRe = regexp.MustCompile(`([a-zA-Z_]\w*)\s*\((.*)\)\s*=>`)

// collect is pass 1: one explicit-stack traversal harvesting user functions,
// types, imports and global declarations into the catalog and the global scope.
func (a *Analyzer) collect() {
	type visit struct {
		n       *cst.Node
		inCall  bool // узел лежит внутри другого вызова
		inError bool // внешний error-узел уже обошёл это поддерево
	}
	stack := []visit{{n: a.tree.Root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.n

		switch n.Type {
		case cst.FunctionDefinition, cst.MethodDefinition:
			a.collectFunction(n)
		case cst.TypeDefinition:
			a.collectType(n)
		case cst.ImportStatement:
			a.collectImport(n)
		case cst.VariableDeclaration, cst.SimpleDeclaration, cst.Assignment:
			if n.Parent != nil && n.Parent.Type == cst.SourceFile {
				a.collectGlobal(n)
			}
		}

		switch n.Type {
		case cst.ExpressionStatement, cst.Error, cst.FunctionCall:
			a.recoverDefinition(n, top.inCall)
		}
		if n.Type == cst.Error && !top.inError {
			a.collectErrorIdents(n)
		}

		next := visit{
			inCall:  top.inCall || n.Type == cst.FunctionCall,
			inError: top.inError || n.Type == cst.Error,
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			next.n = n.Children[i]
			stack = append(stack, next)
		}
	}
}

func (a *Analyzer) collectFunction(n *cst.Node) {
	name := n.ChildByField(cst.FieldName)
	if name == nil || name.Type != cst.Identifier {
		return
	}
	a.catalog.Set(&builtins.Signature{
		Name:        name.Text(),
		Description: "User Defined Function",
		ReturnType:  types.Any,
		Params:      extractParameters(n.ChildByField(cst.FieldParameters)),
	})
}

// extractParameters reads a parameter_list. A list broken by a parse error
// yields nil so the call sites are not counted against a partial signature.
func extractParameters(list *cst.Node) []builtins.Param {
	if list == nil {
		return nil
	}
	params := make([]builtins.Param, 0, len(list.Children))
	for _, c := range list.Children {
		if c.Type == cst.Error {
			return nil
		}
		if c.Type != cst.Parameter {
			continue
		}
		name := c.ChildByField(cst.FieldName)
		if name == nil || name.Type != cst.Identifier {
			return nil
		}
		typ := types.Any
		if t := c.ChildByField(cst.FieldType); t != nil {
			typ = t.Text()
		}
		params = append(params, builtins.Param{
			Name:     name.Text(),
			Type:     typ,
			Required: c.ChildByField(cst.FieldDefault) == nil,
		})
	}
	return params
}

// extractCallParameters builds placeholder parameters from the arguments of a
// call that was really a broken definition.
func extractCallParameters(call *cst.Node) []builtins.Param {
	list := call.ChildByField(cst.FieldArguments)
	var params []builtins.Param
	for _, arg := range list.NamedChildren() {
		if arg.Type != cst.Argument {
			continue
		}
		if name := rightmostIdent(arg); name != "" {
			params = append(params, builtins.Param{Name: name, Type: types.Any, Required: true})
		}
	}
	return params
}

func rightmostIdent(n *cst.Node) string {
	for n != nil {
		if n.Type == cst.Identifier {
			return n.Text()
		}
		named := n.NamedChildren()
		if len(named) == 0 {
			return ""
		}
		n = named[len(named)-1]
	}
	return ""
}

func (a *Analyzer) collectType(n *cst.Node) {
	name := n.ChildByField(cst.FieldName)
	if name == nil || name.Type != cst.Identifier {
		return
	}
	typeName := name.Text()
	a.define(typeName, types.Type, symbols.QualifierSimple, name)

	var params []builtins.Param
	if body := n.ChildByField(cst.FieldBody); body != nil {
		for _, f := range body.NamedChildren() {
			if f.Type != cst.FieldDefinition {
				continue
			}
			fname := f.ChildByField(cst.FieldName)
			if fname == nil || fname.Type != cst.Identifier {
				params = nil
				break
			}
			typ := types.Any
			if t := f.ChildByField(cst.FieldType); t != nil {
				typ = t.Text()
			}
			params = append(params, builtins.Param{Name: fname.Text(), Type: typ})
		}
	}
	a.catalog.Set(&builtins.Signature{
		Name:        typeName + ".new",
		Description: "UDT Constructor",
		ReturnType:  typeName,
		Params:      params,
	})
}

func (a *Analyzer) collectImport(n *cst.Node) {
	if alias := n.ChildByField(cst.FieldAlias); alias != nil && alias.Type == cst.Identifier {
		a.define(alias.Text(), types.Namespace, symbols.QualifierSimple, alias)
		return
	}
	lib := n.ChildByField(cst.FieldLibrary)
	if lib == nil {
		return
	}
	if parts := strings.Split(lib.Text(), "/"); len(parts) >= 2 && parts[1] != "" {
		a.define(parts[1], types.Namespace, symbols.QualifierSimple, lib)
	}
}

func (a *Analyzer) collectGlobal(n *cst.Node) {
	target := n.ChildByField(cst.FieldName)
	if target == nil {
		return
	}
	value := n.ChildByField(cst.FieldValue)
	typ := types.Any
	if t := n.ChildByField(cst.FieldType); t != nil {
		typ = t.Text()
	} else if target.Type == cst.Identifier {
		if typ = a.typeOf(value); typ == types.Void {
			typ = types.Any
		}
	}
	// := rebinds an existing global and must not replace its declaration
	if n.Type != cst.Assignment || a.stack.Lookup(target.Text()) == nil {
		a.collectTarget(target, typ)
	}

	if value != nil && value.Type == cst.AnonymousFunction && target.Type == cst.Identifier {
		a.catalog.Set(&builtins.Signature{
			Name:        target.Text(),
			Description: "User function (assignment)",
			ReturnType:  types.Any,
			Params:      extractParameters(value.ChildByField(cst.FieldParameters)),
		})
	}
}

func (a *Analyzer) collectTarget(target *cst.Node, typ string) {
	switch target.Type {
	case cst.Identifier:
		a.define(target.Text(), typ, qualifierOf(typ), target)
	case cst.TupleDeclaration, cst.TupleExpression:
		for _, c := range target.NamedChildren() {
			a.collectTarget(c, typ)
		}
	}
}

// recoverDefinition restores definitions the parser could not recognize:
// `name(...) =>` inside a statement or error text, or a call followed by `=>`
// junk. Nodes nested inside a call only get the structural check.
func (a *Analyzer) recoverDefinition(n *cst.Node, nested bool) {
	if !nested && mentionsArrow(n) {
		text := n.Text()
		if m := brokenDefinitionRe.FindStringSubmatchIndex(text); m != nil && (m[2] == 0 || text[m[2]-1] != '.') {
			name := text[m[2]:m[3]]
			if !builtins.IsKeyword(name) && !a.catalog.Has(name) && !a.corpus.Has(name) {
				a.catalog.Set(&builtins.Signature{
					Name:        name,
					Description: "User function (recovered)",
					ReturnType:  types.Any,
				})
			}
		}
	}

	call := n
	if n.Type == cst.ExpressionStatement {
		call = n.NamedChild(0)
	}
	if call == nil || call.Type != cst.FunctionCall || !isBrokenDefinition(call) {
		return
	}
	fn := call.ChildByField(cst.FieldFunction)
	if fn == nil || fn.Type != cst.Identifier || builtins.IsKeyword(fn.Text()) {
		return
	}
	a.catalog.Set(&builtins.Signature{
		Name:        fn.Text(),
		Description: "User function (recovered from complex syntax)",
		ReturnType:  types.Any,
		Params:      extractCallParameters(call),
	})
}

// isBrokenDefinition reports whether call is really `name(params) =>` whose
// arrow ended up in an error node after the call or inside its argument list.
func isBrokenDefinition(call *cst.Node) bool {
	if isArrowJunk(call.NextSibling()) {
		return true
	}
	for _, c := range call.ChildByField(cst.FieldArguments).NamedChildren() {
		if isArrowJunk(c) {
			return true
		}
	}
	return false
}

// mentionsArrow checks the node's source bytes for "=>" without copying them.
func mentionsArrow(n *cst.Node) bool {
	t := n.Tree()
	if t == nil || t.File == nil {
		return false
	}
	f := t.File
	if int(n.Span.End) > len(f.Content) || n.Span.Start > n.Span.End {
		return false
	}
	return bytes.Contains(f.Content[n.Span.Start:n.Span.End], []byte("=>"))
}

func isArrowJunk(n *cst.Node) bool {
	return n != nil && n.Type == cst.Error && strings.HasPrefix(strings.TrimSpace(n.Text()), "=>")
}

// collectErrorIdents registers every unknown identifier of an error subtree as
// an `any` symbol so malformed input does not cascade into more diagnostics.
func (a *Analyzer) collectErrorIdents(n *cst.Node) {
	n.Walk(func(c *cst.Node) bool {
		if c.Type != cst.Identifier {
			return true
		}
		name := c.Text()
		if a.stack.Lookup(name) == nil {
			sym := a.define(name, types.Any, symbols.QualifierSimple, c)
			sym.Flags |= symbols.SymbolFlagRecovered
		}
		return true
	})
}

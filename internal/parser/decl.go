package parser

import (
	"strings"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

const versionPrefix = "//@version="

// parseVersion: //@version=N
func (p *Parser) parseVersion() *cst.Node {
	tok := p.advance()
	n := p.tree.NewNode(cst.VersionDirective)
	headEnd := tok.Span.Start + uint32(len(versionPrefix))
	n.Append(p.tree.Leaf(versionPrefix, false, source.Span{File: tok.Span.File, Start: tok.Span.Start, End: headEnd}))

	digits := 0
	for digits < len(tok.Text)-len(versionPrefix) && isDigit(tok.Text[len(versionPrefix)+digits]) {
		digits++
	}
	if digits == 0 {
		p.report(diag.SynUnexpectedToken, diag.SevWarning, tok.Span, "version directive without a version number")
	} else {
		sp := source.Span{File: tok.Span.File, Start: headEnd, End: headEnd + uint32(digits)} // #nosec G115 -- bounded by token length
		n.Append(p.tree.Leaf(cst.Number, true, sp).As(cst.FieldVersion))
	}
	n.Span = n.Span.Cover(tok.Span)
	return n
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseImport: import user/lib/1 [as alias]
func (p *Parser) parseImport() *cst.Node {
	n := p.tree.NewNode(cst.ImportStatement, p.punct())
	var (
		first, last token.Token
		parts       []string
	)
	for !p.atLineEnd() && !p.atWord("as") {
		tok := p.advance()
		if len(parts) == 0 {
			first = tok
		}
		last = tok
		parts = append(parts, tok.Text)
	}
	if len(parts) == 0 {
		p.err(diag.SynBadLibraryPath, "expected library path after 'import'")
		n.Append(p.emptyError().As(cst.FieldLibrary))
	} else {
		path := p.tree.Leaf(cst.LibraryPath, true, first.Span.Cover(last.Span))
		n.Append(path.As(cst.FieldLibrary))
		if !validLibraryPath(parts) {
			p.report(diag.SynBadLibraryPath, diag.SevWarning, path.Span,
				"library path '"+strings.Join(parts, "")+"' should look like 'user/library/version'")
		}
	}
	if p.atWord("as") {
		n.Append(p.punct())
		n.Append(p.expectIdent("expected alias after 'as'").As(cst.FieldAlias))
	}
	return n
}

// validLibraryPath: name / name / number
func validLibraryPath(parts []string) bool {
	if len(parts) != 5 || parts[1] != "/" || parts[3] != "/" {
		return false
	}
	for _, c := range parts[4] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return parts[0] != "/" && parts[2] != "/"
}

// parseVariableDeclaration: [var|varip] [type] name = value
func (p *Parser) parseVariableDeclaration() *cst.Node {
	n := p.tree.NewNode(cst.VariableDeclaration)
	if p.atOr(token.KwVar, token.KwVarip) {
		tok := p.advance()
		n.Append(p.tree.Leaf(cst.Modifier, true, tok.Span).As(cst.FieldModifier))
	}
	if p.isTypedDeclAt(p.pos) {
		n.Append(p.parseType().As(cst.FieldType))
	}
	n.Append(p.expectIdent("expected variable name").As(cst.FieldName))
	if eq := p.expectPunct(token.Assign, diag.SynUnexpectedToken, "expected '=' in variable declaration"); eq != nil {
		n.Append(eq)
		n.Append(p.parseExpr().As(cst.FieldValue))
	}
	return n
}

// parseDefinitionLike распознаёт определения функций, методов и типов
// (с необязательным export). Возвращает nil, если строка не определение.
func (p *Parser) parseDefinitionLike() *cst.Node {
	i := p.pos
	export := false
	if p.tokAt(i).Text == "export" && p.tokAt(i+1).Kind == token.Ident {
		i++
		export = true
	}
	word := p.tokAt(i)
	switch {
	case word.Text == "method" && p.isDefinitionAt(i+1):
		return p.parseFunction(export, true)
	case word.Text == "type" && p.tokAt(i+1).Kind == token.Ident && p.atEndAt(i+2):
		return p.parseTypeDefinition(export)
	case p.isDefinitionAt(i):
		return p.parseFunction(export, false)
	}
	return nil
}

func (p *Parser) atEndAt(i int) bool {
	switch p.tokAt(i).Kind {
	case token.Newline, token.Dedent, token.EOF:
		return true
	}
	return false
}

// parseFunction: [export] [method] name(params) => body
func (p *Parser) parseFunction(export, method bool) *cst.Node {
	typ := cst.FunctionDefinition
	if method {
		typ = cst.MethodDefinition
	}
	n := p.tree.NewNode(typ)
	if export {
		n.Append(p.punct().As(cst.FieldExport))
	}
	if method {
		n.Append(p.punct())
	}
	n.Append(p.ident().As(cst.FieldName))
	n.Append(p.parseParameters().As(cst.FieldParameters))
	n.Append(p.expectPunct(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after parameter list"))
	n.Append(p.parseBody().As(cst.FieldBody))
	return n
}

// parseParameters: '(' [parameter {',' parameter}] ')'
func (p *Parser) parseParameters() *cst.Node {
	list := p.tree.NewNode(cst.ParameterList, p.punct())
	for !p.at(token.RParen) && !p.atLineEnd() {
		start := p.pos
		list.Append(p.parseParameter())
		if p.at(token.Comma) {
			list.Append(p.punct())
			continue
		}
		if p.at(token.RParen) || p.atLineEnd() {
			break
		}
		p.err(diag.SynBadParameter, "malformed parameter near "+describe(p.peek()))
		list.Append(p.errorUntil(token.Comma, token.RParen))
		p.ensureProgress(list, start)
		if p.at(token.Comma) {
			list.Append(p.punct())
		}
	}
	list.Append(p.expectPunct(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"))
	return list
}

// parseParameter: [qualifier] [type] name [= default]
func (p *Parser) parseParameter() *cst.Node {
	if !p.at(token.Ident) {
		p.err(diag.SynBadParameter, "expected parameter name, got "+describe(p.peek()))
		return p.errorUntil(token.Comma, token.RParen)
	}
	param := p.tree.NewNode(cst.Parameter)
	if p.isTypedNameAt(p.pos) {
		param.Append(p.parseType().As(cst.FieldType))
	}
	param.Append(p.expectIdent("expected parameter name").As(cst.FieldName))
	if p.at(token.Assign) {
		param.Append(p.punct())
		param.Append(p.parseExpr().As(cst.FieldDefault))
	}
	return param
}

// parseTypeDefinition: [export] type Name + блок полей
func (p *Parser) parseTypeDefinition(export bool) *cst.Node {
	n := p.tree.NewNode(cst.TypeDefinition)
	if export {
		n.Append(p.punct().As(cst.FieldExport))
	}
	n.Append(p.punct())
	n.Append(p.ident().As(cst.FieldName))
	if !p.at(token.Newline) || p.peekAt(1).Kind != token.Indent {
		p.err(diag.SynTypeExpectBody, "type definition requires an indented block of fields")
		return n
	}
	p.advance()
	p.advance()
	body := p.tree.NewNode(cst.Block)
	p.parseLines(body, true, p.parseField)
	if p.at(token.Dedent) {
		p.advance()
	}
	if len(body.Children) > 0 {
		n.Append(body.As(cst.FieldBody))
	}
	return n
}

// parseField: [type] name [= default]
func (p *Parser) parseField() *cst.Node {
	f := p.tree.NewNode(cst.FieldDefinition)
	if p.isTypedNameAt(p.pos) {
		f.Append(p.parseType().As(cst.FieldType))
	}
	f.Append(p.expectIdent("expected field name").As(cst.FieldName))
	if p.at(token.Assign) {
		f.Append(p.punct())
		f.Append(p.parseExpr().As(cst.FieldValue))
	}
	return f
}

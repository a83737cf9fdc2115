package parser

import (
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

// parseStatements разбирает строки до Dedent (в блоке) или EOF и добавляет их в parent.
func (p *Parser) parseStatements(parent *cst.Node, inBlock bool) {
	p.parseLines(parent, inBlock, p.parseStatement)
}

// parseLines - общий цикл по логическим строкам блока.
// Лишний INDENT без заголовка блока репортится, а его строки остаются в текущем блоке.
func (p *Parser) parseLines(parent *cst.Node, inBlock bool, item func() *cst.Node) {
	extra := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Newline:
			p.advance()
			continue
		case token.Dedent:
			if extra > 0 {
				extra--
				p.advance()
				continue
			}
			if inBlock {
				return
			}
			p.advance()
			continue
		case token.Indent:
			p.err(diag.SynUnexpectedToken, "unexpected indentation")
			extra++
			p.advance()
			continue
		}
		start := p.pos
		stmt := item()
		parent.Append(stmt)
		p.endStatement(stmt)
		p.ensureProgress(parent, start)
	}
}

// endStatement ожидает конец логической строки. Хвостовой мусор становится
// узлом error внутри самого оператора.
func (p *Parser) endStatement(stmt *cst.Node) {
	if p.at(token.Newline) {
		p.advance()
		return
	}
	if p.atOr(token.Dedent, token.EOF) || p.prevKind() == token.Dedent {
		return
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+" after statement")
	if junk := p.errorUntilLineEnd(); junk != nil {
		stmt.Append(junk)
	}
	if p.at(token.Newline) {
		p.advance()
	}
}

// parseStatement выбирает распознаватель по первому токену строки.
func (p *Parser) parseStatement() *cst.Node {
	switch p.peek().Kind {
	case token.VersionDirective:
		return p.parseVersion()
	case token.KwImport:
		return p.parseImport()
	case token.KwIf:
		return p.parseIf(cst.IfStatement)
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwBreak:
		return p.tree.NewNode(cst.BreakStatement, p.punct())
	case token.KwContinue:
		return p.tree.NewNode(cst.ContinueStatement, p.punct())
	case token.KwReturn:
		n := p.tree.NewNode(cst.ReturnStatement, p.punct())
		if !p.atLineEnd() {
			n.Append(p.parseExpr().As(cst.FieldValue))
		}
		return n
	case token.KwVar, token.KwVarip:
		return p.parseVariableDeclaration()
	case token.Ident:
		if n := p.parseDefinitionLike(); n != nil {
			return n
		}
		if p.isTypedDeclAt(p.pos) {
			return p.parseVariableDeclaration()
		}
	}
	return p.parseSimpleStatement(true)
}

// parseSimpleStatement: выражение, `lhs = v`, `lhs := v` или `lhs op= v`.
// Форма цели не проверяется: это забота анализатора.
// Без wrap голое выражение возвращается как есть (однострочные тела).
func (p *Parser) parseSimpleStatement(wrap bool) *cst.Node {
	lhs := p.parseExpr()
	k := p.peek().Kind
	switch {
	case k == token.Assign:
		if lhs.Type == cst.TupleExpression {
			lhs.Type = cst.TupleDeclaration
		}
		return p.tree.NewNode(cst.SimpleDeclaration, lhs.As(cst.FieldName), p.punct(), p.parseExpr().As(cst.FieldValue))
	case k == token.ColonAssign:
		return p.tree.NewNode(cst.Assignment, lhs.As(cst.FieldName), p.punct(), p.parseExpr().As(cst.FieldValue))
	case k.IsCompoundAssign():
		op := p.punct().As(cst.FieldOperator)
		return p.tree.NewNode(cst.CompoundAssignment, lhs.As(cst.FieldName), op, p.parseExpr().As(cst.FieldValue))
	}
	if !wrap {
		return lhs
	}
	return p.tree.NewNode(cst.ExpressionStatement, lhs)
}

// parseBlock: NEWLINE INDENT statements DEDENT
func (p *Parser) parseBlock() *cst.Node {
	if !p.at(token.Newline) || p.peekAt(1).Kind != token.Indent {
		p.err(diag.SynExpectBlock, "expected an indented block")
		return p.tree.Empty(cst.Block, p.file.ID, p.here().End)
	}
	p.advance()
	p.advance()
	block := p.tree.NewNode(cst.Block)
	p.parseStatements(block, true)
	if p.at(token.Dedent) {
		p.advance()
	}
	if len(block.Children) == 0 {
		return p.tree.Empty(cst.Block, p.file.ID, p.here().End)
	}
	return block
}

// parseBody - тело функции, ветки if-выражения или ветки switch:
// блок с отступом или одно выражение на той же строке.
func (p *Parser) parseBody() *cst.Node {
	if p.at(token.Newline) {
		return p.parseBlock()
	}
	if p.atLineEnd() {
		p.err(diag.SynExpectExpression, "expected expression or indented block")
		return p.emptyError()
	}
	return p.parseSimpleStatement(false)
}

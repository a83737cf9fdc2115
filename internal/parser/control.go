package parser

import (
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

// parseIf разбирает if как оператор (typ == cst.IfStatement) или как выражение.
// У оператора ветки - блоки; у выражения - блок или одно выражение.
func (p *Parser) parseIf(typ string) *cst.Node {
	n := p.tree.NewNode(typ, p.punct())
	n.Append(p.parseExpr().As(cst.FieldCondition))

	branch := p.parseBody
	if typ == cst.IfStatement {
		branch = p.parseBlock
		p.headerEnd(n)
	}
	n.Append(branch().As(cst.FieldConsequence))

	if p.at(token.KwElse) {
		n.Append(p.punct())
		if p.at(token.KwIf) {
			n.Append(p.parseIf(typ).As(cst.FieldAlternative))
		} else {
			if typ == cst.IfStatement {
				p.headerEnd(n)
			}
			n.Append(branch().As(cst.FieldAlternative))
		}
	}
	return n
}

// headerEnd сворачивает мусор после заголовка блока в error
func (p *Parser) headerEnd(n *cst.Node) {
	if p.atLineEnd() {
		return
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+", expected end of line")
	n.Append(p.errorUntilLineEnd())
}

// parseFor: for i = a to b [by s] | for x in xs | for [i, x] in xs
func (p *Parser) parseFor() *cst.Node {
	kw := p.punct()
	var n *cst.Node

	switch {
	case p.at(token.LBracket):
		n = p.tree.NewNode(cst.ForInStatement, kw)
		n.Append(p.parseTupleTarget().As(cst.FieldVariable))
		p.parseForIn(n)
	case p.at(token.Ident) && p.peekAt(1).Kind == token.Ident && p.peekAt(1).Text == "in":
		n = p.tree.NewNode(cst.ForInStatement, kw)
		n.Append(p.ident().As(cst.FieldVariable))
		p.parseForIn(n)
	case p.at(token.Ident) && p.peekAt(1).Kind == token.Assign:
		n = p.tree.NewNode(cst.ForStatement, kw)
		n.Append(p.ident().As(cst.FieldVariable))
		n.Append(p.punct())
		n.Append(p.parseExpr().As(cst.FieldStart))
		if !p.atWord("to") {
			p.err(diag.SynForBadHeader, "expected 'to' in for loop, got "+describe(p.peek()))
			break
		}
		n.Append(p.punct())
		n.Append(p.parseExpr().As(cst.FieldEnd))
		if p.atWord("by") {
			n.Append(p.punct())
			n.Append(p.parseExpr().As(cst.FieldStep))
		}
	default:
		n = p.tree.NewNode(cst.ForStatement, kw)
		p.err(diag.SynForBadHeader, "malformed for loop header")
	}

	p.headerEnd(n)
	n.Append(p.parseBlock().As(cst.FieldBody))
	return n
}

func (p *Parser) parseForIn(n *cst.Node) {
	if !p.atWord("in") {
		p.err(diag.SynForBadHeader, "expected 'in' in for loop, got "+describe(p.peek()))
		return
	}
	n.Append(p.punct())
	n.Append(p.parseExpr().As(cst.FieldCollection))
}

// parseTupleTarget: '[' name {',' name} ']'
func (p *Parser) parseTupleTarget() *cst.Node {
	n := p.tree.NewNode(cst.TupleDeclaration, p.punct())
	for !p.at(token.RBracket) && !p.atLineEnd() {
		start := p.pos
		n.Append(p.expectIdent("expected name in tuple"))
		if p.at(token.Comma) {
			n.Append(p.punct())
		}
		p.ensureProgress(n, start)
		if !p.at(token.Ident) {
			break
		}
	}
	n.Append(p.expectPunct(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close tuple"))
	return n
}

// parseWhile: while cond + блок
func (p *Parser) parseWhile() *cst.Node {
	n := p.tree.NewNode(cst.WhileStatement, p.punct())
	n.Append(p.parseExpr().As(cst.FieldCondition))
	p.headerEnd(n)
	n.Append(p.parseBlock().As(cst.FieldBody))
	return n
}

// parseSwitch: switch [value] + блок веток `cond => body` / `=> body`
func (p *Parser) parseSwitch() *cst.Node {
	n := p.tree.NewNode(cst.SwitchExpression, p.punct())
	if !p.atLineEnd() {
		n.Append(p.parseExpr().As(cst.FieldValue))
	}
	p.headerEnd(n)
	if !p.at(token.Newline) || p.peekAt(1).Kind != token.Indent {
		p.err(diag.SynExpectBlock, "expected an indented block of switch cases")
		return n
	}
	p.advance()
	p.advance()
	p.parseLines(n, true, p.parseSwitchCase)
	if p.at(token.Dedent) {
		p.advance()
	}
	return n
}

func (p *Parser) parseSwitchCase() *cst.Node {
	c := p.tree.NewNode(cst.SwitchCase)
	if !p.at(token.FatArrow) {
		c.Append(p.parseExpr().As(cst.FieldCondition))
	}
	if arrow := p.expectPunct(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in switch case"); arrow != nil {
		c.Append(arrow)
		c.Append(p.parseBody().As(cst.FieldBody))
	}
	return c
}

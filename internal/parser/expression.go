package parser

import (
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Всегда возвращает узел; на ошибке это узел error.
func (p *Parser) parseExpr() *cst.Node {
	return p.parseTernary()
}

// parseTernary: cond ? a : b (правоассоциативно)
func (p *Parser) parseTernary() *cst.Node {
	cond := p.parseBinaryExpr(precLogical)
	if !p.at(token.Question) || p.afterBlock() {
		return cond
	}
	n := p.tree.NewNode(cst.ConditionalExpression, cond.As(cst.FieldCondition), p.punct())
	n.Append(p.parseTernary().As(cst.FieldConsequence))
	if colon := p.expectPunct(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); colon != nil {
		n.Append(colon)
		n.Append(p.parseTernary().As(cst.FieldAlternative))
	}
	return n
}

// parseBinaryExpr реализует precedence climbing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) *cst.Node {
	left := p.parseUnaryExpr()
	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < minPrec || p.afterBlock() {
			break // приоритет слишком низкий
		}
		op := p.punct().As(cst.FieldOperator)
		right := p.parseBinaryExpr(prec + 1)
		left = p.tree.NewNode(cst.BinaryExpression, left.As(cst.FieldLeft), op, right.As(cst.FieldRight))
	}
	return left
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() *cst.Node {
	if isUnaryOp(p.peek().Kind) {
		op := p.punct().As(cst.FieldOperator)
		arg := p.parseUnaryExpr()
		return p.tree.NewNode(cst.UnaryExpression, op, arg.As(cst.FieldArgument))
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr: history-индекс, доступ к члену, вызов (в том числе с <типами>)
func (p *Parser) parsePostfixExpr() *cst.Node {
	expr := p.parsePrimaryExpr()
	for !p.afterBlock() {
		switch {
		case p.at(token.LBracket):
			h := p.tree.NewNode(cst.HistoryReference, expr.As(cst.FieldValue), p.punct())
			h.Append(p.parseExpr().As(cst.FieldIndex))
			h.Append(p.expectPunct(token.RBracket, diag.SynUnclosedBracket, "expected ']' after history index"))
			expr = h
		case p.at(token.Dot):
			m := p.tree.NewNode(cst.MemberAccess, expr.As(cst.FieldObject), p.punct())
			if p.peek().IsWord() {
				m.Append(p.ident().As(cst.FieldMember))
			} else {
				p.err(diag.SynExpectIdentAfter, "expected member name after '.', got "+describe(p.peek()))
				m.Append(p.emptyError().As(cst.FieldMember))
			}
			expr = m
		case p.at(token.LParen):
			expr = p.parseCall(expr, nil)
		case p.at(token.Lt) && p.isGenericCallAt(p.pos):
			targs := p.parseTypeArguments()
			expr = p.parseCall(expr, targs)
		default:
			return expr
		}
	}
	return expr
}

// afterBlock - выражение закончилось блоком с отступом (if/switch как значение),
// следующий токен уже относится к новой строке.
func (p *Parser) afterBlock() bool {
	return p.prevKind() == token.Dedent
}

func (p *Parser) parseCall(fn, targs *cst.Node) *cst.Node {
	call := p.tree.NewNode(cst.FunctionCall, fn.As(cst.FieldFunction))
	if targs != nil {
		call.Append(targs.As(cst.FieldTypeArguments))
	}
	call.Append(p.parseArguments().As(cst.FieldArguments))
	return call
}

// parseArguments: '(' [argument {',' argument}] [','] ')'
func (p *Parser) parseArguments() *cst.Node {
	list := p.tree.NewNode(cst.ArgumentList, p.punct())
	for !p.at(token.RParen) && !p.atLineEnd() {
		start := p.pos
		list.Append(p.parseArgument())
		if p.at(token.Comma) {
			list.Append(p.punct())
			continue
		}
		if p.at(token.RParen) || p.atLineEnd() {
			break
		}
		p.err(diag.SynUnexpectedToken, "expected ',' or ')' in argument list, got "+describe(p.peek()))
		list.Append(p.errorUntil(token.Comma, token.RParen))
		p.ensureProgress(list, start)
		if p.at(token.Comma) {
			list.Append(p.punct())
		}
	}
	list.Append(p.expectPunct(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list"))
	return list
}

// parseArgument: [name '='] value
func (p *Parser) parseArgument() *cst.Node {
	arg := p.tree.NewNode(cst.Argument)
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Assign {
		arg.Append(p.ident().As(cst.FieldName))
		arg.Append(p.punct())
	}
	arg.Append(p.parseExpr().As(cst.FieldValue))
	return arg
}

// ensureProgress съедает один токен в error, если с позиции start ничего не разобрано
func (p *Parser) ensureProgress(parent *cst.Node, start int) {
	if p.pos == start && !p.atLineEnd() {
		parent.Append(p.tree.NewNode(cst.Error, p.leaf(p.advance())))
	}
}

// parsePrimaryExpr: литералы, имена, скобки, кортежи, if/switch как выражения
func (p *Parser) parsePrimaryExpr() *cst.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.ident()
	case token.KwNa:
		// na(x) - вызов функции na
		if p.peekAt(1).Kind == token.LParen {
			return p.ident()
		}
		return p.leaf(p.advance())
	case token.IntLit, token.FloatLit, token.StringLit, token.ColorLit, token.KwTrue, token.KwFalse:
		return p.leaf(p.advance())
	case token.LParen:
		if p.isAnonFuncAt(p.pos) {
			return p.parseAnonymousFunction()
		}
		n := p.tree.NewNode(cst.ParenthesizedExpression, p.punct())
		n.Append(p.parseExpr())
		n.Append(p.expectPunct(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression"))
		return n
	case token.LBracket:
		return p.parseTuple()
	case token.KwIf:
		return p.parseIf(cst.IfExpression)
	case token.KwSwitch:
		return p.parseSwitch()
	case token.Newline, token.Indent, token.Dedent, token.EOF,
		token.RParen, token.RBracket, token.Comma, token.Colon, token.Question, token.FatArrow:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return p.emptyError()
	}
	if tok.Kind.IsAssignOp() {
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return p.emptyError()
	}
	p.err(diag.SynExpectExpression, "unexpected "+describe(tok)+" in expression")
	return p.tree.NewNode(cst.Error, p.leaf(p.advance()))
}

// parseTuple: '[' expr {',' expr} ']'
func (p *Parser) parseTuple() *cst.Node {
	n := p.tree.NewNode(cst.TupleExpression, p.punct())
	for !p.at(token.RBracket) && !p.atLineEnd() {
		start := p.pos
		n.Append(p.parseExpr())
		if p.at(token.Comma) {
			n.Append(p.punct())
			continue
		}
		if p.at(token.RBracket) || p.atLineEnd() {
			break
		}
		p.err(diag.SynUnexpectedToken, "expected ',' or ']' in tuple, got "+describe(p.peek()))
		n.Append(p.errorUntil(token.Comma, token.RBracket))
		p.ensureProgress(n, start)
		if p.at(token.Comma) {
			n.Append(p.punct())
		}
	}
	n.Append(p.expectPunct(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close tuple"))
	return n
}

// parseAnonymousFunction: (params) => body
func (p *Parser) parseAnonymousFunction() *cst.Node {
	n := p.tree.NewNode(cst.AnonymousFunction, p.parseParameters().As(cst.FieldParameters))
	n.Append(p.expectPunct(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'"))
	n.Append(p.parseBody().As(cst.FieldBody))
	return n
}

// parseTypeArguments: '<' type {',' type} '>'
func (p *Parser) parseTypeArguments() *cst.Node {
	n := p.tree.NewNode(cst.TypeArguments, p.punct())
	n.Append(p.parseType())
	for p.at(token.Comma) {
		n.Append(p.punct())
		n.Append(p.parseType())
	}
	n.Append(p.expectPunct(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type arguments"))
	return n
}

// parseType: [qualifier...] name(.name)* [<type, ...>] ([])*
// Имена внутри аннотации - анонимные листы, чтобы не путать их со ссылками на переменные.
func (p *Parser) parseType() *cst.Node {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected type name, got "+describe(p.peek()))
		return p.emptyError()
	}
	n := p.tree.NewNode(cst.TypeAnnotation)
	for isQualifier(p.peek()) && p.peekAt(1).Kind == token.Ident {
		n.Append(p.punct())
	}
	n.Append(p.punct())
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		n.Append(p.punct())
		n.Append(p.punct())
	}
	if p.at(token.Lt) {
		n.Append(p.parseTypeArguments().As(cst.FieldTypeArguments))
	}
	for p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket {
		n.Append(p.punct())
		n.Append(p.punct())
	}
	return n
}

package parser

import (
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	if tok.Kind != token.Newline && tok.Kind != token.Indent && tok.Kind != token.Dedent {
		p.lastSpan = tok.Span
	}
	return tok
}

// here - пустой span сразу после последнего съеденного токена
func (p *Parser) here() source.Span {
	return p.lastSpan.ZeroideToEnd()
}

// getDiagnosticSpan - возвращает лучший span для диагностики.
// Синтетические токены не имеют текста, для них используем позицию после lastSpan.
func (p *Parser) getDiagnosticSpan() source.Span {
	tok := p.peek()
	switch tok.Kind {
	case token.Newline, token.Indent, token.Dedent, token.EOF:
		return p.here()
	}
	return tok.Span
}

// leaf превращает токен в лист. Имена и литералы становятся именованными узлами,
// пунктуация и ключевые слова - анонимными с типом, равным тексту.
func (p *Parser) leaf(tok token.Token) *cst.Node {
	switch tok.Kind {
	case token.Ident:
		return p.tree.Leaf(cst.Identifier, true, tok.Span)
	case token.IntLit, token.FloatLit:
		return p.tree.Leaf(cst.Number, true, tok.Span)
	case token.StringLit:
		return p.tree.Leaf(cst.String, true, tok.Span)
	case token.ColorLit:
		return p.tree.Leaf(cst.ColorLiteral, true, tok.Span)
	case token.KwTrue, token.KwFalse:
		return p.tree.Leaf(cst.BoolLiteral, true, tok.Span)
	case token.KwNa:
		return p.tree.Leaf(cst.NaLiteral, true, tok.Span)
	}
	return p.tree.Leaf(tok.Text, false, tok.Span)
}

// punct съедает текущий токен как анонимный лист
func (p *Parser) punct() *cst.Node {
	tok := p.advance()
	return p.tree.Leaf(tok.Text, false, tok.Span)
}

// ident съедает текущий токен как identifier независимо от вида
// (ключевые слова допустимы после '.')
func (p *Parser) ident() *cst.Node {
	tok := p.advance()
	return p.tree.Leaf(cst.Identifier, true, tok.Span)
}

// expectPunct - ожидаем конкретный токен. Если нет - репортим и возвращаем nil.
func (p *Parser) expectPunct(k token.Kind, code diag.Code, msg string) *cst.Node {
	if p.at(k) {
		return p.punct()
	}
	p.err(code, msg)
	return nil
}

// expectIdent - ожидаем идентификатор; на ошибке пустой error-узел
func (p *Parser) expectIdent(msg string) *cst.Node {
	if p.at(token.Ident) {
		return p.ident()
	}
	p.err(diag.SynExpectIdentifier, msg+", got "+describe(p.peek()))
	return p.emptyError()
}

func (p *Parser) emptyError() *cst.Node {
	return p.tree.Empty(cst.Error, p.file.ID, p.here().End)
}

// errorUntilLineEnd заворачивает все токены до конца логической строки в узел error.
// Возвращает nil, если сворачивать нечего.
func (p *Parser) errorUntilLineEnd() *cst.Node {
	if p.atLineEnd() {
		return nil
	}
	n := p.tree.NewNode(cst.Error)
	for !p.atLineEnd() {
		n.Append(p.leaf(p.advance()))
	}
	return n
}

// errorUntil сворачивает токены в error до одного из stops или конца строки
func (p *Parser) errorUntil(stops ...token.Kind) *cst.Node {
	n := p.tree.NewNode(cst.Error)
	depth := 0
	for !p.atLineEnd() {
		k := p.peek().Kind
		if depth == 0 && p.atOr(stops...) {
			break
		}
		switch k {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth == 0 {
				return p.closeError(n)
			}
			depth--
		}
		n.Append(p.leaf(p.advance()))
	}
	return p.closeError(n)
}

func (p *Parser) closeError(n *cst.Node) *cst.Node {
	if len(n.Children) == 0 {
		return p.emptyError()
	}
	return n
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

// репортует warning и передает текущий спан
func (p *Parser) warn(code diag.Code, msg string) bool {
	return p.report(code, diag.SevWarning, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false // нет reporter - ничего не записали
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indentation"
	case token.Dedent:
		return "end of block"
	case token.EOF:
		return "end of file"
	}
	return "'" + tok.Text + "'"
}

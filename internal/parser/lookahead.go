package parser

import (
	"pinecheck/internal/token"
)

// Заглядывание вперёд работает по индексам в p.toks и ничего не съедает.

func (p *Parser) tokAt(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// matchBrackets строит таблицу парных скобок за один проход: для каждой
// открывающей скобки индекс закрывающей, иначе -1. Конец логической строки
// обрывает все незакрытые скобки.
func matchBrackets(toks []token.Token) []int {
	closeAt := make([]int, len(toks))
	var open []int
	abandon := func() {
		for _, i := range open {
			closeAt[i] = -1
		}
		open = open[:0]
	}
	for j, tok := range toks {
		closeAt[j] = -1
		switch tok.Kind {
		case token.LParen, token.LBracket:
			open = append(open, j)
		case token.RParen, token.RBracket:
			if n := len(open); n > 0 {
				closeAt[open[n-1]] = j
				open = open[:n-1]
			}
		case token.Newline, token.Indent, token.Dedent, token.EOF:
			abandon()
		}
	}
	abandon()
	return closeAt
}

// matchClose возвращает индекс скобки, закрывающей скобку в позиции i, или -1.
func (p *Parser) matchClose(i int) int {
	if p.closeAt == nil {
		p.closeAt = matchBrackets(p.toks)
	}
	if i < 0 || i >= len(p.closeAt) {
		return -1
	}
	return p.closeAt[i]
}

// isDefinitionAt: `name ( ... ) =>` - всегда определение функции, а не вызов.
func (p *Parser) isDefinitionAt(i int) bool {
	if p.tokAt(i).Kind != token.Ident || p.tokAt(i+1).Kind != token.LParen {
		return false
	}
	j := p.matchClose(i + 1)
	return j > 0 && p.tokAt(j+1).Kind == token.FatArrow
}

// isAnonFuncAt: `( ... ) =>` в позиции значения.
func (p *Parser) isAnonFuncAt(i int) bool {
	if p.tokAt(i).Kind != token.LParen {
		return false
	}
	j := p.matchClose(i)
	return j > 0 && p.tokAt(j+1).Kind == token.FatArrow
}

var qualifiers = map[string]struct{}{
	"const":  {},
	"simple": {},
	"series": {},
	"input":  {},
}

func isQualifier(tok token.Token) bool {
	if tok.Kind != token.Ident {
		return false
	}
	_, ok := qualifiers[tok.Text]
	return ok
}

// scanType пытается прочитать аннотацию типа с позиции i:
// [qualifier...] name(.name)* [<type, ...>] ([])*
// Возвращает индекс первого токена после типа.
func (p *Parser) scanType(i int) (int, bool) {
	for isQualifier(p.tokAt(i)) && p.tokAt(i+1).Kind == token.Ident {
		i++
	}
	if p.tokAt(i).Kind != token.Ident {
		return i, false
	}
	i++
	for p.tokAt(i).Kind == token.Dot && p.tokAt(i+1).Kind == token.Ident {
		i += 2
	}
	if p.tokAt(i).Kind == token.Lt {
		j, ok := p.scanTypeList(i + 1)
		if !ok || p.tokAt(j).Kind != token.Gt {
			return i, false
		}
		i = j + 1
	}
	for p.tokAt(i).Kind == token.LBracket && p.tokAt(i+1).Kind == token.RBracket {
		i += 2
	}
	return i, true
}

func (p *Parser) scanTypeList(i int) (int, bool) {
	j, ok := p.scanType(i)
	for ok && p.tokAt(j).Kind == token.Comma {
		j, ok = p.scanType(j + 1)
	}
	return j, ok
}

// isTypedDeclAt: `type name =`
func (p *Parser) isTypedDeclAt(i int) bool {
	j, ok := p.scanType(i)
	return ok && p.tokAt(j).Kind == token.Ident && p.tokAt(j+1).Kind == token.Assign
}

// isTypedNameAt: `type name` (параметры и поля типов)
func (p *Parser) isTypedNameAt(i int) bool {
	j, ok := p.scanType(i)
	return ok && p.tokAt(j).Kind == token.Ident
}

// isGenericCallAt: `< type, ... > (` после имени функции
func (p *Parser) isGenericCallAt(i int) bool {
	if p.tokAt(i).Kind != token.Lt {
		return false
	}
	j, ok := p.scanTypeList(i + 1)
	return ok && p.tokAt(j).Kind == token.Gt && p.tokAt(j+1).Kind == token.LParen
}

package lexer

import (
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

// scanNumber: 12, 1.5, .5, 1., 1e3, 2.5E-4.
// Литерал с точкой или экспонентой - FloatLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	// "1." тоже float, но "1.foo" - нет (это доступ к члену у литерала, ошибка парсера)
	if lx.cursor.Peek() == '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// не экспонента: откатываемся, "e" станет идентификатором
			lx.cursor.Reset(m)
		} else {
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.report(diag.LexBadNumber, diag.SevWarning, sp, "number literal is immediately followed by a name")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp.Start, sp.End)}
}

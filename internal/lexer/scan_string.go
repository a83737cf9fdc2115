package lexer

import (
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

// scanString сканирует '...' или "..." с escape через \.
// Незакрытая строка заканчивается на конце строки; токен всё равно StringLit.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, diag.SevError, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp.Start, sp.End)}
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.BumpRune()
			}
			continue
		}
		if b == quote {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp.Start, sp.End)}
}

// scanColor: #RRGGBB или #RRGGBBAA.
func (lx *Lexer) scanColor() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	n := 0
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	sp := lx.cursor.SpanFrom(start)
	if n != 6 && n != 8 {
		lx.report(diag.LexBadColor, diag.SevError, sp, "color literal must have 6 or 8 hex digits")
		if n == 0 {
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp.Start, sp.End)}
		}
	}
	return token.Token{Kind: token.ColorLit, Span: sp, Text: lx.text(sp.Start, sp.End)}
}

// scanVersion: //@version=N (до конца строки).
func (lx *Lexer) scanVersion() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' && lx.cursor.Peek() != '\r' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.VersionDirective, Span: sp, Text: lx.text(sp.Start, sp.End)}
}

package lexer

import (
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text - ровно исходный срез.
// Точка в идентификатор не входит: `ta.sma` это три токена.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.cursor.Off += sz
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnknownChar, diag.SevError, sp, "unknown character "+string(r))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp.Start, sp.End)}
		}
		lx.cursor.BumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r2, _ := lx.cursor.PeekRune()
			if isIdentContinueRune(r2) {
				lx.cursor.BumpRune()
				continue
			}
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp.Start, sp.End)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func (lx *Lexer) text(start, end uint32) string {
	return string(lx.file.Content[start:end])
}

package lexer

import (
	"pinecheck/internal/token"
)

// skipInlineTrivia пропускает пробелы и комментарии внутри строки,
// складывая их в lx.hold. Перевод строки не трогает.
func (lx *Lexer) skipInlineTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)
			continue
		}
		if n := blankLen(lx.cursor.File.Content[lx.cursor.Off:lx.cursor.Limit]); n > 0 {
			lx.cursor.Off += n
			lx.holdTrivia(token.TriviaSpace, start)
			continue
		}
		if lx.cursor.HasPrefix("//") && !lx.cursor.HasPrefix("//@version=") {
			lx.skipComment()
			continue
		}
		break
	}
}

// skipComment съедает // ... до конца строки (без \n).
func (lx *Lexer) skipComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.holdTrivia(token.TriviaLineComment, start)
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

package lexer

import (
	"pinecheck/internal/token"
)

// beginLine измеряет отступ новой физической строки и ставит в очередь
// NEWLINE/INDENT/DEDENT. Возвращает true, если что-то поставлено в очередь
// или строка пропущена (пустая/комментарий), и Next должен повторить цикл.
func (lx *Lexer) beginLine() bool {
	start := lx.cursor.Mark()
	width := lx.measureIndent()

	switch {
	case lx.cursor.EOF():
		return false
	case lx.cursor.Peek() == '\n':
		// пустая строка: не логическая
		lx.cursor.Bump()
		lx.lineStart = true
		return true
	case lx.cursor.HasPrefix("//") && !lx.cursor.HasPrefix("//@version="):
		lx.skipComment()
		lx.lineStart = true
		return true
	}

	if lx.continues(width) {
		// продолжение выражения с предыдущей строки
		lx.cursor.Reset(start)
		return false
	}

	if lx.inLine {
		lx.pending = append(lx.pending, lx.synthetic(token.Newline))
		lx.inLine = false
	}
	lx.lineWidth = width

	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		lx.pending = append(lx.pending, lx.synthetic(token.Indent))
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, lx.synthetic(token.Dedent))
		}
		// ширина между двумя уровнями прижимается к охватывающему уровню
	}
	return len(lx.pending) > 0
}

// continues reports whether the new line continues the previous logical line:
// it is indented deeper than the current block and the previous line ended
// with a token that cannot end an expression.
func (lx *Lexer) continues(width uint32) bool {
	if !lx.inLine || width <= lx.indents[len(lx.indents)-1] {
		return false
	}
	switch lx.last {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.KwAnd, token.KwOr, token.KwNot, token.Question, token.Colon,
		token.Comma, token.Dot:
		return true
	}
	return false
}

// abandonBrackets decides whether a bracket left open on the previous line was
// simply never closed. That is assumed when the next line is not indented past
// the line that opened the bracket, does not start with a closing bracket, and
// the previous line did not end with a separator or operator. The bracket depth
// is then dropped so the rest of the file keeps its block structure.
func (lx *Lexer) abandonBrackets() bool {
	if lx.continues(^uint32(0)) || lx.last == token.LParen || lx.last == token.LBracket {
		return false
	}
	mark := lx.cursor.Mark()
	width := lx.measureIndent()
	next := lx.cursor.Peek()
	comment := lx.cursor.HasPrefix("//")
	lx.cursor.Reset(mark)

	if comment || next == 0 || next == '\n' || next == ')' || next == ']' || width > lx.openWidth {
		return false
	}
	lx.depth = 0
	return true
}

// finish ставит в очередь хвост: NEWLINE, DEDENT на каждый открытый уровень и EOF.
func (lx *Lexer) finish() {
	if lx.inLine {
		lx.pending = append(lx.pending, lx.synthetic(token.Newline))
		lx.inLine = false
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, lx.synthetic(token.Dedent))
	}
	lx.pending = append(lx.pending, lx.synthetic(token.EOF))
	lx.done = true
}

// measureIndent пропускает ведущие пробельные символы и возвращает ширину.
func (lx *Lexer) measureIndent() uint32 {
	var width uint32
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\t' {
			width += TabWidth - width%TabWidth
			lx.cursor.Bump()
			continue
		}
		if b == ' ' {
			width++
			lx.cursor.Bump()
			continue
		}
		if n := blankLen(lx.cursor.File.Content[lx.cursor.Off:lx.cursor.Limit]); n > 0 {
			width++
			lx.cursor.Off += n
			continue
		}
		break
	}
	return width
}

package lexer

import (
	"pinecheck/internal/diag"
	"pinecheck/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// двухсимвольные операторы проверяются раньше односимвольных (жадность)
var ops2 = []opEntry{
	{":=", token.ColonAssign},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"=>", token.FatArrow},
}

var ops1 = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'?': token.Question,
	':': token.Colon,
	'.': token.Dot,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range ops2 {
		if lx.cursor.HasPrefix(op.text) {
			lx.cursor.Off += 2
			return token.Token{Kind: op.kind, Span: lx.cursor.SpanFrom(start), Text: op.text}
		}
	}
	b := lx.cursor.Peek()
	if k, ok := ops1[b]; ok {
		lx.cursor.Bump()
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: string(b)}
	}

	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp.Start, sp.End)
	lx.report(diag.LexUnknownChar, diag.SevError, sp, "unknown character "+text)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

package lexer

import (
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

// Lexer turns a source file into tokens, inserting NEWLINE/INDENT/DEDENT
// according to the off-side rule.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	indents   []uint32      // стек ширин отступов, всегда начинается с 0
	depth     int           // глубина открытых ( и [
	lineWidth uint32        // отступ текущей логической строки
	openWidth uint32        // отступ строки, где открыта внешняя скобка
	lineStart bool          // курсор стоит в начале физической строки
	inLine    bool          // уже выдан хотя бы один токен логической строки
	last      token.Kind    // последний значимый токен (для продолжения строк)
	pending   []token.Token // очередь синтетических токенов
	hold      []token.Trivia
	done      bool // EOF-последовательность уже поставлена в очередь
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []uint32{0},
		lineStart: true,
		last:      token.Invalid,
	}
}

// Next возвращает следующий токен. Синтетические токены разметки блоков
// идут в том же потоке. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}
		if lx.done {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		if lx.lineStart && lx.depth == 0 {
			lx.lineStart = false
			if lx.beginLine() {
				continue
			}
		}

		lx.skipInlineTrivia()

		if lx.cursor.EOF() {
			lx.finish()
			continue
		}

		if lx.cursor.Peek() == '\n' {
			nl := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: lx.cursor.SpanFrom(nl), Text: "\n"})
			// внутри скобок перевод строки ничего не значит
			if lx.depth == 0 || lx.abandonBrackets() {
				lx.lineStart = true
			}
			continue
		}

		tok := lx.scanToken()
		tok.Leading = lx.hold
		lx.hold = nil
		lx.track(tok.Kind)
		return tok
	}
}

// Tokens drains the lexer, EOF included.
func (lx *Lexer) Tokens() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/3+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case lx.cursor.HasPrefix("//@version="):
		return lx.scanVersion()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString(ch)
	case ch == '#':
		return lx.scanColor()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// track обновляет глубину скобок и последний значимый токен.
func (lx *Lexer) track(k token.Kind) {
	switch k {
	case token.LParen, token.LBracket:
		if lx.depth == 0 {
			lx.openWidth = lx.lineWidth
		}
		lx.depth++
	case token.RParen, token.RBracket:
		if lx.depth > 0 {
			lx.depth--
		}
	}
	lx.inLine = true
	lx.last = k
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) synthetic(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: lx.emptySpan()}
}

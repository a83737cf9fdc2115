package token

import (
	"pinecheck/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string, color or na literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, ColorLit, KwTrue, KwFalse, KwNa:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwIf && t.Kind <= KwNa
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token reads like a name: an identifier or a keyword.
// Member names after '.' may be keywords (`color.na` is not, but `strategy.long` and
// `syminfo.type` are plain words the lexer may classify either way).
func (t Token) IsWord() bool { return t.IsIdent() || t.IsKeyword() }

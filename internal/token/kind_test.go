package token_test

import (
	"testing"

	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.FloatLit, token.StringLit, token.ColorLit,
		token.KwTrue, token.KwFalse, token.KwNa,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwVar, token.Plus, token.LParen, token.Newline}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.ColonAssign, token.PlusAssign, token.PercentAssign,
		token.EqEq, token.BangEq, token.Lt, token.GtEq, token.Question, token.Colon,
		token.FatArrow, token.Dot, token.Comma, token.LParen, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwAnd, token.Indent, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKeywordLookup(t *testing.T) {
	for word, want := range map[string]token.Kind{
		"if": token.KwIf, "varip": token.KwVarip, "not": token.KwNot, "na": token.KwNa,
	} {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v", word, got, ok)
		}
		if !tok(got).IsKeyword() {
			t.Fatalf("%v should be a keyword", got)
		}
	}
	for _, word := range []string{"method", "type", "to", "close", "int"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must not be reserved", word)
		}
	}
	if !token.IsContextual("method") || token.IsContextual("close") {
		t.Fatalf("contextual table mismatch")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Newline:   "NEWLINE",
		token.Dedent:    "DEDENT",
		token.FatArrow:  "=>",
		token.KwVarip:   "varip",
		token.Kind(250): "UNKNOWN",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if token.Plus.IsCompoundAssign() || !token.PlusAssign.IsCompoundAssign() {
		t.Errorf("IsCompoundAssign mismatch")
	}
	if !token.ColonAssign.IsAssignOp() || token.EqEq.IsAssignOp() {
		t.Errorf("IsAssignOp mismatch")
	}
}

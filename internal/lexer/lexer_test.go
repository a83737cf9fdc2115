package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"pinecheck/internal/diag"
	"pinecheck/internal/lexer"
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) has(code diag.Code) bool {
	for _, d := range r.diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pine", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := lx.Tokens()
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("stream does not end with EOF: %s", tokensToString(tokens))
	}
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.messages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)\nTokens: %v",
				i, expected[i], tok.Kind, tok.Text, tokensToString(tokens))
		}
	}
}

// expectSingleToken проверяет, что вход начинается с ожидаемого токена
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

const (
	nl  = token.Newline
	ind = token.Indent
	ded = token.Dedent
	id  = token.Ident
)

// ====== Литералы и слова ======

func TestIdentifiersAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_bar", token.Ident},
		{"x123", token.Ident},
		{"Ünïcode", token.Ident},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"switch", token.KwSwitch},
		{"for", token.KwFor},
		{"while", token.KwWhile},
		{"var", token.KwVar},
		{"varip", token.KwVarip},
		{"import", token.KwImport},
		{"and", token.KwAnd},
		{"not", token.KwNot},
		{"na", token.KwNa},
		{"true", token.KwTrue},
		{"If", token.Ident},
		// контекстные слова остаются идентификаторами
		{"method", token.Ident},
		{"export", token.Ident},
		{"to", token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"42", token.IntLit, "42"},
		{"0", token.IntLit, "0"},
		{"1.5", token.FloatLit, "1.5"},
		{".5", token.FloatLit, ".5"},
		{"2.", token.FloatLit, "2."},
		{"1e3", token.FloatLit, "1e3"},
		{"2.5E-4", token.FloatLit, "2.5E-4"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.text)
		})
	}
}

func TestStringsAndColors(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingleToken(t, `'single'`, token.StringLit, `'single'`)
	expectSingleToken(t, `"a\"b"`, token.StringLit, `"a\"b"`)
	expectSingleToken(t, "#ff0000", token.ColorLit, "#ff0000")
	expectSingleToken(t, "#ff000080", token.ColorLit, "#ff000080")
	expectSingleToken(t, "//@version=5", token.VersionDirective, "//@version=5")
}

func TestOperatorsAreGreedy(t *testing.T) {
	expectTokens(t, "a := b += c -= d => e == f != g <= h >= i ? j : k", []token.Kind{
		id, token.ColonAssign, id, token.PlusAssign, id, token.MinusAssign, id,
		token.FatArrow, id, token.EqEq, id, token.BangEq, id, token.LtEq, id,
		token.GtEq, id, token.Question, id, token.Colon, id, nl,
	})
}

func TestMemberAccessIsSplit(t *testing.T) {
	expectTokens(t, "ta.sma(close, 14)", []token.Kind{
		id, token.Dot, id, token.LParen, id, token.Comma, token.IntLit, token.RParen, nl,
	})
}

// ====== Ошибки лексера ======

func TestUnterminatedStringStopsAtLineEnd(t *testing.T) {
	lx, rep := makeTestLexer("s = 'abc\nx = 1")
	tokens := lx.Tokens()
	if !rep.has(diag.LexUnterminatedString) {
		t.Fatalf("expected unterminated string diagnostic, got %v", rep.messages())
	}
	got := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		got = append(got, tok.Kind)
	}
	want := []token.Kind{id, token.Assign, token.StringLit, nl, id, token.Assign, token.IntLit, nl, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[2].Text != "'abc" {
		t.Errorf("string text = %q", tokens[2].Text)
	}
}

func TestBadColorAndUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("#12")
	if tok := lx.Next(); tok.Kind != token.ColorLit {
		t.Errorf("short color: got %v", tok.Kind)
	}
	if !rep.has(diag.LexBadColor) {
		t.Errorf("expected bad color diagnostic")
	}

	lx, rep = makeTestLexer("a @ b")
	expectKinds := []token.Kind{id, token.Invalid, id, nl, token.EOF}
	for i, tok := range lx.Tokens() {
		if tok.Kind != expectKinds[i] {
			t.Errorf("token %d: got %v want %v", i, tok.Kind, expectKinds[i])
		}
	}
	if !rep.has(diag.LexUnknownChar) {
		t.Errorf("expected unknown char diagnostic")
	}
}

// ====== Разметка блоков ======

func TestLayout(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "flat lines",
			input: "a = 1\nb = 2",
			want:  []token.Kind{id, token.Assign, token.IntLit, nl, id, token.Assign, token.IntLit, nl},
		},
		{
			name:  "indent and dedent",
			input: "if x\n    y\nz",
			want:  []token.Kind{token.KwIf, id, nl, ind, id, nl, ded, id, nl},
		},
		{
			name:  "dedent between levels is clamped",
			input: "if a\n    if b\n        c\n  d",
			want: []token.Kind{
				token.KwIf, id, nl, ind, token.KwIf, id, nl, ind, id, nl, ded, ded, id, nl,
			},
		},
		{
			name:  "blank and comment lines emit nothing",
			input: "a\n\n   // note\n\nb",
			want:  []token.Kind{id, nl, id, nl},
		},
		{
			name:  "leading comment",
			input: "// header\na",
			want:  []token.Kind{id, nl},
		},
		{
			name:  "eof closes open blocks",
			input: "f() =>\n    a\n        b",
			want: []token.Kind{
				id, token.LParen, token.RParen, token.FatArrow, nl, ind, id, nl, ind, id, nl, ded, ded,
			},
		},
		{
			name:  "tab advances to next stop",
			input: "if a\n\tb\n    c",
			want:  []token.Kind{token.KwIf, id, nl, ind, id, nl, id, nl, ded},
		},
		{
			name:  "unicode blanks count as indentation",
			input: "if a\n\u00a0\u00a0b\n\u200b\u200bc",
			want:  []token.Kind{token.KwIf, id, nl, ind, id, nl, id, nl, ded},
		},
		{
			name:  "version directive",
			input: "//@version=5\nindicator(\"x\")",
			want: []token.Kind{
				token.VersionDirective, nl, id, token.LParen, token.StringLit, token.RParen, nl,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.input, tt.want)
		})
	}
}

func TestBracketsSuspendLayout(t *testing.T) {
	expectTokens(t, "plot(a,\n  b,\nc)\nx", []token.Kind{
		id, token.LParen, id, token.Comma, id, token.Comma, id, token.RParen, nl, id, nl,
	})
	expectTokens(t, "arr = [1,\n        2\n    ]", []token.Kind{
		id, token.Assign, token.LBracket, token.IntLit, token.Comma, token.IntLit, token.RBracket, nl,
	})
}

func TestContinuationLines(t *testing.T) {
	expectTokens(t, "x = a +\n     b\ny = 1", []token.Kind{
		id, token.Assign, id, token.Plus, id, nl, id, token.Assign, token.IntLit, nl,
	})
	expectTokens(t, "c = a and\n     b", []token.Kind{
		id, token.Assign, id, token.KwAnd, id, nl,
	})
	// без оператора в конце строки более глубокий отступ открывает блок
	expectTokens(t, "x = a\n     b", []token.Kind{
		id, token.Assign, id, nl, ind, id, nl, ded,
	})
}

func TestUnclosedBracketIsAbandoned(t *testing.T) {
	expectTokens(t, "f(a\nx = 1\nif x\n    y", []token.Kind{
		id, token.LParen, id, nl,
		id, token.Assign, token.IntLit, nl,
		token.KwIf, id, nl, ind, id, nl, ded,
	})
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("a // note\nb")
	tokens := lx.Tokens()
	var b token.Token
	for _, tok := range tokens {
		if tok.Text == "b" {
			b = tok
		}
	}
	found := false
	for _, tr := range b.Leading {
		if tr.Kind == token.TriviaLineComment && tr.Text == "// note" {
			found = true
		}
	}
	if !found {
		t.Fatalf("comment trivia not attached to next token: %+v", b.Leading)
	}
}

func TestSpansCoverText(t *testing.T) {
	input := "val = ta.sma(close, 14) // c"
	lx, _ := makeTestLexer(input)
	for _, tok := range lx.Tokens() {
		if tok.Kind == token.Newline || tok.Kind == token.EOF {
			continue
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span text %q != token text %q", got, tok.Text)
		}
	}
}

func TestNextAfterEOF(t *testing.T) {
	lx, _ := makeTestLexer("a")
	lx.Tokens()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

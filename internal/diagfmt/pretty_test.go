package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"pinecheck/internal/diag"
	"pinecheck/internal/lexer"
	"pinecheck/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.pine", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 4, End: 24},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.pine:1:5"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.pine:1:5"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.pine:1:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.pine", []byte("a = 1\nplot(foo(a))\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SemaUndefinedFunction,
		source.Span{File: fileID, Start: 11, End: 14}, "Undefined function 'foo'."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	want := strings.Join([]string{
		"a.pine:2:6: ERROR SEM3011: Undefined function 'foo'.",
		"1 | a = 1",
		"2 | plot(foo(a))",
		"  |      ^~~",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("w.pine", []byte("s = \"日本\" + foo\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SemaUndefinedIdent,
		source.Span{File: fileID, Start: 15, End: 18}, "Undefined identifier 'foo'."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	// "s = "日本" + " is 13 columns wide on a terminal
	if got := lines[2]; got != "  | "+strings.Repeat(" ", 13)+"^~~" {
		t.Errorf("caret misaligned: %q", got)
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("d.pine", []byte("x\n"))
	bag := diag.NewBag(1)
	for range 3 {
		bag.Add(diag.New(diag.SevWarning, diag.SemaUnusedVariable, source.Span{File: fileID, Start: 0, End: 1}, "w"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "2 more diagnostic(s) not shown") {
		t.Errorf("missing dropped note:\n%s", buf.String())
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.pine", []byte("x = 1\n"))
	toks := lexer.New(fs.Get(fileID), lexer.Options{}).Tokens()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	if !strings.Contains(buf.String(), `"x"`) || !strings.Contains(buf.String(), "EOF") {
		t.Errorf("unexpected token dump:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("expected a JSON array, got:\n%s", buf.String())
	}
}

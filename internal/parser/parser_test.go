package parser

import (
	"slices"
	"strings"
	"testing"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "simple declaration",
			src:  "x = 1",
			want: "(source_file (simple_declaration name: (identifier) value: (number)))",
		},
		{
			name: "version and call",
			src:  "//@version=5\nindicator(\"t\")",
			want: "(source_file (version_directive version: (number)) (expression_statement (function_call function: (identifier) arguments: (argument_list (argument value: (string))))))",
		},
		{
			name: "typed var declaration",
			src:  "var float x = 1.5",
			want: "(source_file (variable_declaration modifier: (modifier) type: (type) name: (identifier) value: (number)))",
		},
		{
			name: "generic typed declaration",
			src:  "array<float> a = array.new<float>(10)",
			want: "(source_file (variable_declaration type: (type type_arguments: (type_arguments (type))) name: (identifier) value: (function_call function: (member_access object: (identifier) member: (identifier)) type_arguments: (type_arguments (type)) arguments: (argument_list (argument value: (number))))))",
		},
		{
			name: "reassignment with precedence",
			src:  "a := b + c * 2",
			want: "(source_file (assignment name: (identifier) value: (binary_expression left: (identifier) right: (binary_expression left: (identifier) right: (number)))))",
		},
		{
			name: "and/or share one level",
			src:  "x = a or b and c",
			want: "(source_file (simple_declaration name: (identifier) value: (binary_expression left: (binary_expression left: (identifier) right: (identifier)) right: (identifier))))",
		},
		{
			name: "ternary",
			src:  "x = c ? a : b",
			want: "(source_file (simple_declaration name: (identifier) value: (conditional_expression condition: (identifier) consequence: (identifier) alternative: (identifier))))",
		},
		{
			name: "unary",
			src:  "x = not a",
			want: "(source_file (simple_declaration name: (identifier) value: (unary_expression argument: (identifier))))",
		},
		{
			name: "compound assignment",
			src:  "x += 1",
			want: "(source_file (compound_assignment name: (identifier) value: (number)))",
		},
		{
			name: "history on call",
			src:  "v = ta.sma(close, 14)[1]",
			want: "(source_file (simple_declaration name: (identifier) value: (history_reference value: (function_call function: (member_access object: (identifier) member: (identifier)) arguments: (argument_list (argument value: (identifier)) (argument value: (number)))) index: (number))))",
		},
		{
			name: "named argument",
			src:  "plot(close, title=\"x\")",
			want: "(source_file (expression_statement (function_call function: (identifier) arguments: (argument_list (argument value: (identifier)) (argument name: (identifier) value: (string))))))",
		},
		{
			name: "tuple declaration",
			src:  "[a, b] = f()",
			want: "(source_file (simple_declaration name: (tuple_declaration (identifier) (identifier)) value: (function_call function: (identifier) arguments: (argument_list))))",
		},
		{
			name: "na call and na literal",
			src:  "y = na(x)\nz = na",
			want: "(source_file (simple_declaration name: (identifier) value: (function_call function: (identifier) arguments: (argument_list (argument value: (identifier))))) (simple_declaration name: (identifier) value: (na_literal)))",
		},
		{
			name: "function definition",
			src:  "f(a, float b = 1) => a + b",
			want: "(source_file (function_definition name: (identifier) parameters: (parameter_list (parameter name: (identifier)) (parameter type: (type) name: (identifier) default: (number))) body: (binary_expression left: (identifier) right: (identifier))))",
		},
		{
			name: "function with block body",
			src:  "f(x) =>\n    y = x * 2\n    y",
			want: "(source_file (function_definition name: (identifier) parameters: (parameter_list (parameter name: (identifier))) body: (block (simple_declaration name: (identifier) value: (binary_expression left: (identifier) right: (number))) (expression_statement (identifier)))))",
		},
		{
			name: "export function",
			src:  "export f() => 1",
			want: "(source_file (function_definition name: (identifier) parameters: (parameter_list) body: (number)))",
		},
		{
			name: "method definition",
			src:  "method area(Point this) => this.x",
			want: "(source_file (method_definition name: (identifier) parameters: (parameter_list (parameter type: (type) name: (identifier))) body: (member_access object: (identifier) member: (identifier))))",
		},
		{
			name: "anonymous function",
			src:  "g = (x) => x * 2",
			want: "(source_file (simple_declaration name: (identifier) value: (anonymous_function parameters: (parameter_list (parameter name: (identifier))) body: (binary_expression left: (identifier) right: (number)))))",
		},
		{
			name: "type definition",
			src:  "type Point\n    float x = 0\n    int y",
			want: "(source_file (type_definition name: (identifier) body: (block (field_definition type: (type) name: (identifier) value: (number)) (field_definition type: (type) name: (identifier)))))",
		},
		{
			name: "import with alias",
			src:  "import user/lib/1 as m",
			want: "(source_file (import_statement library: (library_path) alias: (identifier)))",
		},
		{
			name: "if else chain",
			src:  "if a\n    x = 1\nelse if b\n    x = 2\nelse\n    x = 3",
			want: "(source_file (if_statement condition: (identifier) consequence: (block (simple_declaration name: (identifier) value: (number))) alternative: (if_statement condition: (identifier) consequence: (block (simple_declaration name: (identifier) value: (number))) alternative: (block (simple_declaration name: (identifier) value: (number))))))",
		},
		{
			name: "if expression",
			src:  "x = if c\n    1\nelse\n    2\ny = 3",
			want: "(source_file (simple_declaration name: (identifier) value: (if_expression condition: (identifier) consequence: (block (expression_statement (number))) alternative: (block (expression_statement (number))))) (simple_declaration name: (identifier) value: (number)))",
		},
		{
			name: "for to by",
			src:  "for i = 0 to 10 by 2\n    x := i",
			want: "(source_file (for_statement variable: (identifier) start: (number) end: (number) step: (number) body: (block (assignment name: (identifier) value: (identifier)))))",
		},
		{
			name: "for in tuple",
			src:  "for [i, x] in arr\n    y := x",
			want: "(source_file (for_in_statement variable: (tuple_declaration (identifier) (identifier)) collection: (identifier) body: (block (assignment name: (identifier) value: (identifier)))))",
		},
		{
			name: "while",
			src:  "while i < 10\n    i += 1",
			want: "(source_file (while_statement condition: (binary_expression left: (identifier) right: (number)) body: (block (compound_assignment name: (identifier) value: (number)))))",
		},
		{
			name: "switch",
			src:  "s = switch x\n    1 => \"a\"\n    => \"b\"",
			want: "(source_file (simple_declaration name: (identifier) value: (switch_expression value: (identifier) (switch_case condition: (number) body: (string)) (switch_case body: (string)))))",
		},
		{
			name: "return break continue",
			src:  "f() =>\n    for i = 0 to 3\n        break\n        continue\n    return 1",
			want: "(source_file (function_definition name: (identifier) parameters: (parameter_list) body: (block (for_statement variable: (identifier) start: (number) end: (number) body: (block (break_statement) (continue_statement))) (return_statement value: (number)))))",
		},
		{
			name: "call target is recorded",
			src:  "f() = 1",
			want: "(source_file (simple_declaration name: (function_call function: (identifier) arguments: (argument_list)) value: (number)))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := parseSource(t, tt.src)
			if got := tree.Root.SExpr(); got != tt.want {
				t.Fatalf("\n got %s\nwant %s\ndiags: %s", got, tt.want, diagnosticsSummary(bag))
			}
			if bag.HasErrors() {
				t.Errorf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			checkInvariants(t, tree)
		})
	}
}

func TestExportFieldAndText(t *testing.T) {
	tree, _ := parseSource(t, "export f(x) => x")
	def := tree.Root.NamedChild(0)
	if def.ChildByField(cst.FieldExport) == nil {
		t.Fatalf("export field missing")
	}
	if got := def.ChildByField(cst.FieldName).Text(); got != "f" {
		t.Fatalf("name = %q", got)
	}
	if def.Start.Row != 0 || def.End.Column != 16 {
		t.Fatalf("range = %s", def.Range())
	}
}

func TestErrorRecovery(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		code diag.Code
	}{
		{
			name: "trailing junk",
			src:  "x = 1 2",
			want: "(source_file (simple_declaration name: (identifier) value: (number) (error (number))))",
			code: diag.SynUnexpectedToken,
		},
		{
			name: "broken parameter keeps the definition",
			src:  "f(a, 1) => a",
			want: "(source_file (function_definition name: (identifier) parameters: (parameter_list (parameter name: (identifier)) (error (number))) body: (identifier)))",
			code: diag.SynBadParameter,
		},
		{
			name: "unclosed call does not swallow the next line",
			src:  "x = f(1\ny = 2",
			want: "(source_file (simple_declaration name: (identifier) value: (function_call function: (identifier) arguments: (argument_list (argument value: (number))))) (simple_declaration name: (identifier) value: (number)))",
			code: diag.SynUnclosedParen,
		},
		{
			name: "stray indentation",
			src:  "a = 1\n    b = 2",
			want: "(source_file (simple_declaration name: (identifier) value: (number)) (simple_declaration name: (identifier) value: (number)))",
			code: diag.SynUnexpectedToken,
		},
		{
			name: "missing value",
			src:  "x =\ny = 1",
			want: "(source_file (simple_declaration name: (identifier) value: (error)) (simple_declaration name: (identifier) value: (number)))",
			code: diag.SynExpectExpression,
		},
		{
			name: "if without block",
			src:  "if a\nb = 1",
			want: "(source_file (if_statement condition: (identifier) consequence: (block)) (simple_declaration name: (identifier) value: (number)))",
			code: diag.SynExpectBlock,
		},
		{
			name: "bad for header",
			src:  "for 1\n    x := 1",
			want: "(source_file (for_statement (error (number)) body: (block (assignment name: (identifier) value: (number)))))",
			code: diag.SynForBadHeader,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := parseSource(t, tt.src)
			if got := tree.Root.SExpr(); got != tt.want {
				t.Fatalf("\n got %s\nwant %s\ndiags: %s", got, tt.want, diagnosticsSummary(bag))
			}
			if !hasCode(bag, tt.code) {
				t.Errorf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
			checkInvariants(t, tree)
		})
	}
}

func TestGarbageTerminates(t *testing.T) {
	inputs := []string{
		"",
		")))",
		"((((",
		"]]] [[[ ,,, => => ?? ::",
		"f(a, (b =>\n  c) =>\nif\nelse\nfor\n",
		"x = = = 1",
		"\tif\n\t\t\t\n  )\n        (\n",
		"type\nmethod\nexport\nimport",
		"switch\n    =>\n    1 =>\n",
		"a.\nb.(\n#\n@@@ 'unterminated\n",
	}
	for _, src := range inputs {
		tree, _ := parseSource(t, src)
		checkInvariants(t, tree)
	}
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pine", []byte("x = )\ny = )\nz = )\n"))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	Parse(file, Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag, File: file}})
	if bag.Len() != 2 {
		t.Fatalf("expected exactly 2 reported errors, got %d: %s", bag.Len(), diagnosticsSummary(bag))
	}
}

func TestMatchBrackets(t *testing.T) {
	kinds := func(ks ...token.Kind) []token.Token {
		toks := make([]token.Token, len(ks))
		for i, k := range ks {
			toks[i] = token.Token{Kind: k}
		}
		return toks
	}
	tests := []struct {
		name string
		toks []token.Token
		want []int
	}{
		{
			name: "nested",
			// f ( [ ] ( ) ) =>
			toks: kinds(token.Ident, token.LParen, token.LBracket, token.RBracket, token.LParen, token.RParen, token.RParen, token.FatArrow, token.EOF),
			want: []int{-1, 6, 3, -1, 5, -1, -1, -1, -1},
		},
		{
			name: "line end abandons open brackets",
			toks: kinds(token.LParen, token.LParen, token.RParen, token.Newline, token.RParen, token.EOF),
			want: []int{-1, 2, -1, -1, -1, -1},
		},
		{
			name: "stray close",
			toks: kinds(token.RParen, token.LParen, token.RParen, token.EOF),
			want: []int{-1, 2, -1, -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchBrackets(tt.toks); !slices.Equal(got, tt.want) {
				t.Fatalf("matchBrackets = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 5000
	tree, bag := parseSource(t, "x = "+strings.Repeat("(", depth)+"1"+strings.Repeat(")", depth)+"\n")
	if tree.Root.HasError() || bag.Len() != 0 {
		t.Fatalf("balanced nesting must parse cleanly: %s", diagnosticsSummary(bag))
	}
	checkInvariants(t, tree)

	tree, _ = parseSource(t, "x = "+strings.Repeat("f(", depth)+"\n")
	checkInvariants(t, tree)
}

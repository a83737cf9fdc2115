package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a rune the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline terminates a logical line.
	Newline
	// Indent opens a block: the line is indented deeper than the enclosing one.
	Indent
	// Dedent closes one block level.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a literal containing a decimal point or exponent.
	FloatLit
	// StringLit represents a single or double quoted literal.
	StringLit
	// ColorLit represents a #RRGGBB or #RRGGBBAA literal.
	ColorLit
	// VersionDirective represents `//@version=N`.
	VersionDirective

	KwIf       // if
	KwElse     // else
	KwSwitch   // switch
	KwFor      // for
	KwWhile    // while
	KwBreak    // break
	KwContinue // continue
	KwReturn   // return
	KwVar      // var
	KwVarip    // varip
	KwImport   // import
	KwAnd      // and
	KwOr       // or
	KwNot      // not
	KwTrue     // true
	KwFalse    // false
	KwNa       // na

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	ColonAssign   // :=
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Question      // ?
	Colon         // :
	FatArrow      // =>
	Dot           // .
	Comma         // ,
	LParen        // (
	RParen        // )
	LBracket      // [
	RBracket      // ]
)

var kindNames = [...]string{
	Invalid:          "INVALID",
	EOF:              "EOF",
	Newline:          "NEWLINE",
	Indent:           "INDENT",
	Dedent:           "DEDENT",
	Ident:            "IDENT",
	IntLit:           "INT",
	FloatLit:         "FLOAT",
	StringLit:        "STRING",
	ColorLit:         "COLOR",
	VersionDirective: "VERSION",
	KwIf:             "if",
	KwElse:           "else",
	KwSwitch:         "switch",
	KwFor:            "for",
	KwWhile:          "while",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwReturn:         "return",
	KwVar:            "var",
	KwVarip:          "varip",
	KwImport:         "import",
	KwAnd:            "and",
	KwOr:             "or",
	KwNot:            "not",
	KwTrue:           "true",
	KwFalse:          "false",
	KwNa:             "na",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Assign:           "=",
	ColonAssign:      ":=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	EqEq:             "==",
	BangEq:           "!=",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Question:         "?",
	Colon:            ":",
	FatArrow:         "=>",
	Dot:              ".",
	Comma:            ",",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsAssignOp reports whether k is `=`, `:=` or a compound assignment.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, ColonAssign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	}
	return false
}

// IsCompoundAssign reports whether k is one of += -= *= /= %=.
func (k Kind) IsCompoundAssign() bool {
	switch k {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	}
	return false
}

// IsBlockMarker reports whether k is a synthetic layout token.
func (k Kind) IsBlockMarker() bool {
	return k == Newline || k == Indent || k == Dedent
}

package token

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"switch":   KwSwitch,
	"for":      KwFor,
	"while":    KwWhile,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"var":      KwVar,
	"varip":    KwVarip,
	"import":   KwImport,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"true":     KwTrue,
	"false":    KwFalse,
	"na":       KwNa,
}

// contextual words are identifiers everywhere except at the grammar positions
// that give them meaning.
var contextual = map[string]struct{}{
	"method": {},
	"export": {},
	"type":   {},
	"to":     {},
	"by":     {},
	"in":     {},
	"as":     {},
}

// LookupKeyword returns the keyword kind for ident, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsContextual reports whether ident is a contextual keyword.
func IsContextual(ident string) bool {
	_, ok := contextual[ident]
	return ok
}

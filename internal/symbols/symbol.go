package symbols

import "pinecheck/internal/source"

// Qualifier is the storage/update category of a symbol, independent of its value type.
type Qualifier uint8

const (
	QualifierInvalid Qualifier = iota
	QualifierConst
	QualifierInput
	QualifierSimple
	QualifierSeries
	QualifierParam
)

func (q Qualifier) String() string {
	switch q {
	case QualifierConst:
		return "const"
	case QualifierInput:
		return "input"
	case QualifierSimple:
		return "simple"
	case QualifierSeries:
		return "series"
	case QualifierParam:
		return "param"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	// SymbolFlagBuiltin marks symbols pre-registered from the built-in tables.
	SymbolFlagBuiltin SymbolFlags = 1 << iota
	// SymbolFlagRecovered marks symbols harvested from error subtrees.
	SymbolFlagRecovered
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagRecovered != 0 {
		labels = append(labels, "recovered")
	}
	return labels
}

// Symbol is a named entity visible in a scope.
type Symbol struct {
	Name      string
	Type      string
	Qualifier Qualifier
	Flags     SymbolFlags
	// Uses counts resolved references seen during validation.
	Uses int
	// Decl is nil for built-ins and for symbols whose declaration site is unknown.
	Decl *source.Range
}

// Format renders the symbol type with its qualifier, e.g. "series float".
func (s *Symbol) Format() string {
	if s == nil {
		return ""
	}
	if s.Qualifier == QualifierInvalid {
		return s.Type
	}
	return s.Qualifier.String() + " " + s.Type
}

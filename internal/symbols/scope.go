package symbols

import "pinecheck/internal/source"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // document level, holds built-ins and top-level declarations
	ScopeFunction           // function or method body
	ScopeLoop               // for / for-in loop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

// ScopeID identifies a scope inside a ScopeTree.
type ScopeID int32

// NoScopeID marks the absence of a scope (parent of the global scope).
const NoScopeID ScopeID = -1

// Scope models a lexical scope: an insertion-ordered map name -> symbol.
type Scope struct {
	ID       ScopeID
	Kind     ScopeKind
	Parent   ScopeID
	Span     source.Span
	Range    source.Range
	Children []ScopeID

	index   map[string]int
	symbols []*Symbol
}

func newScope(id ScopeID, kind ScopeKind, parent ScopeID) *Scope {
	return &Scope{
		ID:     id,
		Kind:   kind,
		Parent: parent,
		index:  make(map[string]int),
	}
}

// Get returns the symbol declared in this scope under name, or nil.
func (s *Scope) Get(name string) *Symbol {
	if i, ok := s.index[name]; ok {
		return s.symbols[i]
	}
	return nil
}

// Has reports whether name is declared directly in this scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Put declares sym, replacing a previous symbol of the same name in place
// so that the original insertion position is preserved.
func (s *Scope) Put(sym *Symbol) {
	if sym == nil {
		return
	}
	if i, ok := s.index[sym.Name]; ok {
		s.symbols[i] = sym
		return
	}
	s.index[sym.Name] = len(s.symbols)
	s.symbols = append(s.symbols, sym)
}

// Symbols returns the declared symbols in insertion order.
func (s *Scope) Symbols() []*Symbol {
	return s.symbols
}

// Len returns the number of declared symbols.
func (s *Scope) Len() int {
	return len(s.symbols)
}

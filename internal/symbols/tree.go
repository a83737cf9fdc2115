package symbols

import (
	"fortio.org/safecast"

	"pinecheck/internal/source"
)

// ScopeTree records every scope opened during one analysis so that lookups
// can be answered after the traversal finished.
type ScopeTree struct {
	scopes []*Scope
}

// NewScopeTree creates a tree with a single global scope covering rng.
func NewScopeTree(span source.Span, rng source.Range) *ScopeTree {
	global := newScope(0, ScopeGlobal, NoScopeID)
	global.Span = span
	global.Range = rng
	return &ScopeTree{scopes: []*Scope{global}}
}

// Global returns the root scope.
func (t *ScopeTree) Global() *Scope {
	return t.scopes[0]
}

// Get returns the scope with the given id or nil.
func (t *ScopeTree) Get(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// Len returns the number of recorded scopes.
func (t *ScopeTree) Len() int {
	return len(t.scopes)
}

// Scopes returns all scopes in creation order.
func (t *ScopeTree) Scopes() []*Scope {
	return t.scopes
}

func (t *ScopeTree) open(kind ScopeKind, parent ScopeID, span source.Span, rng source.Range) ScopeID {
	n, err := safecast.Conv[int32](len(t.scopes))
	if err != nil {
		panic(err)
	}
	id := ScopeID(n)
	s := newScope(id, kind, parent)
	s.Span = span
	s.Range = rng
	t.scopes = append(t.scopes, s)
	if p := t.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Lookup searches the global scope only.
func (t *ScopeTree) Lookup(name string) *Symbol {
	return t.Global().Get(name)
}

// Innermost returns the deepest scope whose range contains p.
func (t *ScopeTree) Innermost(p source.Point) *Scope {
	cur := t.Global()
	for {
		next := (*Scope)(nil)
		for _, id := range cur.Children {
			child := t.scopes[id]
			if child.Range.Contains(p) {
				next = child
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// LookupAt resolves name from the innermost scope containing p outwards.
func (t *ScopeTree) LookupAt(p source.Point, name string) *Symbol {
	for s := t.Innermost(p); s != nil; s = t.Get(s.Parent) {
		if sym := s.Get(name); sym != nil {
			return sym
		}
	}
	return nil
}

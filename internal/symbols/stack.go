package symbols

import "pinecheck/internal/source"

// Stack is the LIFO of active scopes used while walking a tree. It is never
// empty: the global scope stays at the bottom.
type Stack struct {
	tree   *ScopeTree
	active []ScopeID
}

// NewStack starts a stack over tree with the global scope active.
func NewStack(tree *ScopeTree) *Stack {
	return &Stack{
		tree:   tree,
		active: []ScopeID{0},
	}
}

// Tree returns the backing scope tree.
func (s *Stack) Tree() *ScopeTree {
	return s.tree
}

// Depth returns the number of active scopes (at least 1).
func (s *Stack) Depth() int {
	return len(s.active)
}

// Push opens a child of the current scope and makes it current.
func (s *Stack) Push(kind ScopeKind, span source.Span, rng source.Range) ScopeID {
	id := s.tree.open(kind, s.CurrentID(), span, rng)
	s.active = append(s.active, id)
	return id
}

// Pop closes the current scope. The global scope is never popped.
func (s *Stack) Pop() {
	if len(s.active) > 1 {
		s.active = s.active[:len(s.active)-1]
	}
}

// CurrentID returns the id of the innermost active scope.
func (s *Stack) CurrentID() ScopeID {
	return s.active[len(s.active)-1]
}

// Current returns the innermost active scope.
func (s *Stack) Current() *Scope {
	return s.tree.scopes[s.CurrentID()]
}

// Define declares sym in the current scope.
func (s *Stack) Define(sym *Symbol) {
	s.Current().Put(sym)
}

// Lookup resolves name innermost -> outermost.
func (s *Stack) Lookup(name string) *Symbol {
	for i := len(s.active) - 1; i >= 0; i-- {
		if sym := s.tree.scopes[s.active[i]].Get(name); sym != nil {
			return sym
		}
	}
	return nil
}

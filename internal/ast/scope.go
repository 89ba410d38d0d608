package ast

import (
	"fmt"

	"fortio.org/safecast"

	"risp/internal/literal"
)

// Scope is one lexical environment. Bindings map a symbol's literal id to
// the symbol node that introduced it.
type Scope struct {
	ID       ScopeID
	Depth    uint32
	Parent   ScopeID
	Origin   NodeID
	bindings map[literal.ID]NodeID
}

// NewScope allocates the next sequential scope. A valid parent sets the
// depth to parent depth + 1; the first root scope gets id 0 and depth 0.
func (t *Tree) NewScope(parent ScopeID, origin NodeID) ScopeID {
	n, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil || !ScopeID(n).IsValid() {
		panic("ast: scope count overflow")
	}
	id := ScopeID(n)
	t.scopes = append(t.scopes, Scope{ID: id, Parent: NoScopeID, Origin: origin})
	if parent.IsValid() {
		t.SetScopeParent(id, parent)
	}
	return id
}

// Scope returns the scope record for id. It panics on an unknown id.
func (t *Tree) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		panic(fmt.Sprintf("ast: invalid scope id %d", id))
	}
	return &t.scopes[id]
}

// ScopeCount returns the number of scopes allocated so far.
func (t *Tree) ScopeCount() int { return len(t.scopes) }

// SetScopeParent links scope under parent and recomputes its depth.
func (t *Tree) SetScopeParent(scope, parent ScopeID) {
	s := t.Scope(scope)
	s.Parent = parent
	s.Depth = t.Scope(parent).Depth + 1
}

// ScopeParent returns the enclosing scope, or NoScopeID for the root.
func (t *Tree) ScopeParent(scope ScopeID) ScopeID { return t.Scope(scope).Parent }

// Intern binds symbol in scope, shadowing any earlier binding of the same
// name there. symbol must be a Symbol node.
func (t *Tree) Intern(scope ScopeID, symbol NodeID) {
	n := t.mustKind(symbol, KindSymbol)
	s := t.Scope(scope)
	if s.bindings == nil {
		s.bindings = make(map[literal.ID]NodeID, 4)
	}
	s.bindings[n.text] = symbol
}

// Find resolves the name of symbol starting at scope and walking outward.
// distance counts the hops from scope to the scope holding the binding.
func (t *Tree) Find(scope ScopeID, symbol NodeID) (distance uint32, bound NodeID, ok bool) {
	return t.FindLiteral(scope, t.mustKind(symbol, KindSymbol).text)
}

// FindLiteral is Find keyed by the literal id of a name.
func (t *Tree) FindLiteral(scope ScopeID, lit literal.ID) (distance uint32, bound NodeID, ok bool) {
	for id := scope; id.IsValid(); id = t.Scope(id).Parent {
		if b, found := t.Scope(id).bindings[lit]; found {
			return distance, b, true
		}
		distance++
	}
	return 0, NoNodeID, false
}

// Bindings returns the number of names bound directly in scope.
func (t *Tree) Bindings(scope ScopeID) int { return len(t.Scope(scope).bindings) }

// ScopeOf returns the scope owned by a binder node.
func (t *Tree) ScopeOf(id NodeID) ScopeID {
	return t.mustKind(id, KindModule, KindLet, KindLambda, KindDefMacro).scope
}

// SetScope attaches scope to a binder node.
func (t *Tree) SetScope(id NodeID, scope ScopeID) {
	t.mustKind(id, KindModule, KindLet, KindLambda, KindDefMacro).scope = scope
	if s := t.Scope(scope); s.Origin == NoNodeID {
		s.Origin = id
	}
}

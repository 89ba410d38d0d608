package ast

import (
	"risp/internal/literal"
	"risp/internal/token"
)

// Node is the record stored in the tree's zone. It holds no Go pointers:
// every reference is a handle into the owning Tree.
type Node struct {
	Kind   Kind
	Token  token.Token
	parent NodeID
	scope  ScopeID
	mode   SymbolMode
	bound  NodeID
	// fixed slots: Def name/expr, DefMacro name, If cond/then/else, Quote form
	slots [3]NodeID
	kids  listID // children, or the body of a binder
	aux   listID // lambda parameters, or let bindings as name/value pairs
	num   int64  // Integer value, UChar rune, LambdaParam index
	dbl   float64
	text  literal.ID // String, Symbol, Keyword, RegExp
	flag  bool       // Boolean value
}

const (
	slotName = 0
	slotExpr = 1

	slotCond = 0
	slotThen = 1
	slotElse = 2
)

// Binding is one name/value pair of a let form.
type Binding struct {
	Name  NodeID
	Value NodeID
}

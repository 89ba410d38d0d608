package token

import "risp/internal/literal"

// Builtins holds the interned ids of the special-form names so the parser can
// classify a Symbol token by comparing ids instead of text.
type Builtins struct {
	def      literal.ID
	defn     literal.ID
	defmacro literal.ID
	let      literal.ID
	lambda   literal.ID
	fn       literal.ID
	ifID     literal.ID
	quote    literal.ID
}

// NewBuiltins interns the special-form names into lits.
func NewBuiltins(lits *literal.Buffer) *Builtins {
	return &Builtins{
		def:      lits.Get("def"),
		defn:     lits.Get("defn"),
		defmacro: lits.Get("defmacro"),
		let:      lits.Get("let"),
		lambda:   lits.Get("lambda"),
		fn:       lits.Get("fn"),
		ifID:     lits.Get("if"),
		quote:    lits.Get("quote"),
	}
}

func (b *Builtins) symbol(t Token, id literal.ID) bool {
	return t.Kind == Symbol && t.Literal == id
}

func (b *Builtins) IsDef(t Token) bool      { return b.symbol(t, b.def) }
func (b *Builtins) IsDefn(t Token) bool     { return b.symbol(t, b.defn) }
func (b *Builtins) IsDefMacro(t Token) bool { return b.symbol(t, b.defmacro) }
func (b *Builtins) IsLet(t Token) bool      { return b.symbol(t, b.let) }
func (b *Builtins) IsIf(t Token) bool       { return b.symbol(t, b.ifID) }
func (b *Builtins) IsQuote(t Token) bool    { return b.symbol(t, b.quote) }

// IsLambda accepts both `lambda` and `fn`.
func (b *Builtins) IsLambda(t Token) bool {
	return b.symbol(t, b.lambda) || b.symbol(t, b.fn)
}

// Classify maps a special-form symbol to its form kind, or returns Symbol.
func (b *Builtins) Classify(t Token) Kind {
	switch {
	case b.IsDef(t):
		return Def
	case b.IsDefMacro(t):
		return DefMacro
	case b.IsLet(t):
		return Let
	case b.IsLambda(t):
		return Lambda
	case b.IsIf(t):
		return If
	case b.IsQuote(t):
		return Quote
	default:
		return t.Kind
	}
}

package ast

import (
	"risp/internal/literal"
	"risp/internal/token"
)

func (t *Tree) NewInteger(tok token.Token, v int64) NodeID {
	id := t.New(KindInteger, tok)
	t.Node(id).num = v
	return id
}

func (t *Tree) NewDouble(tok token.Token, v float64) NodeID {
	id := t.New(KindDouble, tok)
	t.Node(id).dbl = v
	return id
}

// NewString interns the decoded text s.
func (t *Tree) NewString(tok token.Token, s string) NodeID {
	id := t.New(KindString, tok)
	t.Node(id).text = t.lits.Get(s)
	return id
}

func (t *Tree) NewUChar(tok token.Token, r rune) NodeID {
	id := t.New(KindUChar, tok)
	t.Node(id).num = int64(r)
	return id
}

// NewSymbol creates an Unresolved symbol named by lit.
func (t *Tree) NewSymbol(tok token.Token, lit literal.ID) NodeID {
	id := t.New(KindSymbol, tok)
	t.Node(id).text = lit
	return id
}

// NewKeyword keeps the leading colons in the text.
func (t *Tree) NewKeyword(tok token.Token, lit literal.ID) NodeID {
	id := t.New(KindKeyword, tok)
	t.Node(id).text = lit
	return id
}

func (t *Tree) NewBoolean(tok token.Token, v bool) NodeID {
	id := t.New(KindBoolean, tok)
	t.Node(id).flag = v
	return id
}

// NewRegExp interns the pattern found between the quotes.
func (t *Tree) NewRegExp(tok token.Token, pattern string) NodeID {
	id := t.New(KindRegExp, tok)
	t.Node(id).text = t.lits.Get(pattern)
	return id
}

// NewLambdaParam records a short-lambda placeholder; index -1 is %&.
func (t *Tree) NewLambdaParam(tok token.Token, index int64) NodeID {
	id := t.New(KindLambdaParam, tok)
	t.Node(id).num = index
	return id
}

func (t *Tree) NewNil(tok token.Token) NodeID { return t.New(KindNil, tok) }

// The accessors below report false when id has another kind.

func (t *Tree) IntValue(id NodeID) (int64, bool) {
	n := t.Node(id)
	return n.num, n.Kind == KindInteger
}

func (t *Tree) DoubleValue(id NodeID) (float64, bool) {
	n := t.Node(id)
	return n.dbl, n.Kind == KindDouble
}

func (t *Tree) StringValue(id NodeID) (string, bool) {
	n := t.Node(id)
	if n.Kind != KindString {
		return "", false
	}
	return t.lits.Find(n.text), true
}

func (t *Tree) BooleanValue(id NodeID) (bool, bool) {
	n := t.Node(id)
	return n.flag, n.Kind == KindBoolean
}

func (t *Tree) CharValue(id NodeID) (rune, bool) {
	n := t.Node(id)
	if n.Kind != KindUChar {
		return 0, false
	}
	return rune(n.num), true
}

func (t *Tree) ParamIndex(id NodeID) (int64, bool) {
	n := t.Node(id)
	return n.num, n.Kind == KindLambdaParam
}

// Text returns the interned text of a String, Symbol, Keyword or RegExp
// node, and "" for every other kind.
func (t *Tree) Text(id NodeID) string {
	return t.lits.Find(t.Node(id).text)
}

// Literal returns the literal id of a text-carrying node, or literal.None.
func (t *Tree) Literal(id NodeID) literal.ID { return t.Node(id).text }

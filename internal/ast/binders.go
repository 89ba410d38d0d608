package ast

// The operations below are called by the parser at grammar-guaranteed sites;
// each panics when id has the wrong kind.

// AddLambdaArg appends a parameter to a Lambda or DefMacro.
func (t *Tree) AddLambdaArg(id, sym NodeID) {
	n := t.mustKind(id, KindLambda, KindDefMacro)
	t.mustKind(sym, KindSymbol)
	t.appendList(&n.aux, sym)
	t.SetParent(sym, id)
}

// LambdaArgs returns the parameters of a Lambda or DefMacro.
func (t *Tree) LambdaArgs(id NodeID) []NodeID {
	return t.list(t.mustKind(id, KindLambda, KindDefMacro).aux)
}

// AddLetBinding appends a name/value pair and binds the name to the value.
func (t *Tree) AddLetBinding(id, sym, value NodeID) {
	n := t.mustKind(id, KindLet)
	t.mustKind(sym, KindSymbol)
	t.appendList(&n.aux, sym, value)
	t.SetParent(sym, id)
	t.SetParent(value, id)
	t.BindToSymbol(sym, value)
}

// LetBindings returns the pairs of a Let in source order.
func (t *Tree) LetBindings(id NodeID) []Binding {
	flat := t.list(t.mustKind(id, KindLet).aux)
	out := make([]Binding, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, Binding{Name: flat[i], Value: flat[i+1]})
	}
	return out
}

// AddBody appends a body form to a Let, Lambda or DefMacro.
func (t *Tree) AddBody(id, form NodeID) {
	n := t.mustKind(id, KindLet, KindLambda, KindDefMacro)
	t.appendList(&n.kids, form)
	t.SetParent(form, id)
}

// Body returns the body forms of a Let, Lambda or DefMacro.
func (t *Tree) Body(id NodeID) []NodeID {
	return t.list(t.mustKind(id, KindLet, KindLambda, KindDefMacro).kids)
}

func (t *Tree) setSlot(n *Node, id NodeID, slot int, child NodeID) {
	n.slots[slot] = child
	if child != NoNodeID {
		t.SetParent(child, id)
	}
}

func (t *Tree) SetDefName(id, sym NodeID) {
	t.mustKind(sym, KindSymbol)
	t.setSlot(t.mustKind(id, KindDef), id, slotName, sym)
}

func (t *Tree) SetDefExpr(id, expr NodeID) {
	n := t.mustKind(id, KindDef)
	t.setSlot(n, id, slotExpr, expr)
	if name := n.slots[slotName]; name != NoNodeID {
		t.BindToSymbol(name, expr)
	}
}

func (t *Tree) DefName(id NodeID) NodeID { return t.mustKind(id, KindDef).slots[slotName] }
func (t *Tree) DefExpr(id NodeID) NodeID { return t.mustKind(id, KindDef).slots[slotExpr] }

func (t *Tree) SetMacroName(id, sym NodeID) {
	t.mustKind(sym, KindSymbol)
	t.setSlot(t.mustKind(id, KindDefMacro), id, slotName, sym)
	t.BindToSymbol(sym, id)
}

func (t *Tree) MacroName(id NodeID) NodeID { return t.mustKind(id, KindDefMacro).slots[slotName] }

func (t *Tree) SetCond(id, expr NodeID) { t.setSlot(t.mustKind(id, KindIf), id, slotCond, expr) }
func (t *Tree) SetThen(id, expr NodeID) { t.setSlot(t.mustKind(id, KindIf), id, slotThen, expr) }
func (t *Tree) SetElse(id, expr NodeID) { t.setSlot(t.mustKind(id, KindIf), id, slotElse, expr) }

func (t *Tree) Cond(id NodeID) NodeID { return t.mustKind(id, KindIf).slots[slotCond] }
func (t *Tree) Then(id NodeID) NodeID { return t.mustKind(id, KindIf).slots[slotThen] }

// Else returns NoNodeID when the If has no else branch.
func (t *Tree) Else(id NodeID) NodeID { return t.mustKind(id, KindIf).slots[slotElse] }

func (t *Tree) SetQuoted(id, form NodeID) { t.setSlot(t.mustKind(id, KindQuote), id, 0, form) }
func (t *Tree) Quoted(id NodeID) NodeID   { return t.mustKind(id, KindQuote).slots[0] }

// Mode returns the resolution mode of a Symbol.
func (t *Tree) Mode(sym NodeID) SymbolMode { return t.mustKind(sym, KindSymbol).mode }

// SetMode records the resolution mode of a Symbol.
func (t *Tree) SetMode(sym NodeID, m SymbolMode) { t.mustKind(sym, KindSymbol).mode = m }

// BindToSymbol records value as the value a binding symbol introduces.
func (t *Tree) BindToSymbol(sym, value NodeID) { t.mustKind(sym, KindSymbol).bound = value }

// BoundValue returns the value bound by a binding symbol, or NoNodeID.
func (t *Tree) BoundValue(sym NodeID) NodeID { return t.mustKind(sym, KindSymbol).bound }

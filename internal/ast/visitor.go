package ast

import "fmt"

// Visitor has one method per node kind. Accept dispatches to it; walking
// into children is left to the implementation.
type Visitor interface {
	VisitModule(t *Tree, id NodeID) error
	VisitList(t *Tree, id NodeID) error
	VisitVector(t *Tree, id NodeID) error
	VisitMap(t *Tree, id NodeID) error
	VisitSet(t *Tree, id NodeID) error
	VisitTag(t *Tree, id NodeID) error
	VisitModuleReference(t *Tree, id NodeID) error
	VisitIf(t *Tree, id NodeID) error
	VisitQuote(t *Tree, id NodeID) error
	VisitDef(t *Tree, id NodeID) error
	VisitLet(t *Tree, id NodeID) error
	VisitLambda(t *Tree, id NodeID) error
	VisitDefMacro(t *Tree, id NodeID) error
	VisitLambdaSugar(t *Tree, id NodeID) error
	VisitInteger(t *Tree, id NodeID) error
	VisitDouble(t *Tree, id NodeID) error
	VisitString(t *Tree, id NodeID) error
	VisitUChar(t *Tree, id NodeID) error
	VisitSymbol(t *Tree, id NodeID) error
	VisitKeyword(t *Tree, id NodeID) error
	VisitBoolean(t *Tree, id NodeID) error
	VisitRegExp(t *Tree, id NodeID) error
	VisitLambdaParam(t *Tree, id NodeID) error
	VisitNil(t *Tree, id NodeID) error
}

// Accept calls the Visitor method matching the kind of id.
func Accept(t *Tree, id NodeID, v Visitor) error {
	switch k := t.Kind(id); k {
	case KindModule:
		return v.VisitModule(t, id)
	case KindList:
		return v.VisitList(t, id)
	case KindVector:
		return v.VisitVector(t, id)
	case KindMap:
		return v.VisitMap(t, id)
	case KindSet:
		return v.VisitSet(t, id)
	case KindTag:
		return v.VisitTag(t, id)
	case KindModuleReference:
		return v.VisitModuleReference(t, id)
	case KindIf:
		return v.VisitIf(t, id)
	case KindQuote:
		return v.VisitQuote(t, id)
	case KindDef:
		return v.VisitDef(t, id)
	case KindLet:
		return v.VisitLet(t, id)
	case KindLambda:
		return v.VisitLambda(t, id)
	case KindDefMacro:
		return v.VisitDefMacro(t, id)
	case KindLambdaSugar:
		return v.VisitLambdaSugar(t, id)
	case KindInteger:
		return v.VisitInteger(t, id)
	case KindDouble:
		return v.VisitDouble(t, id)
	case KindString:
		return v.VisitString(t, id)
	case KindUChar:
		return v.VisitUChar(t, id)
	case KindSymbol:
		return v.VisitSymbol(t, id)
	case KindKeyword:
		return v.VisitKeyword(t, id)
	case KindBoolean:
		return v.VisitBoolean(t, id)
	case KindRegExp:
		return v.VisitRegExp(t, id)
	case KindLambdaParam:
		return v.VisitLambdaParam(t, id)
	case KindNil:
		return v.VisitNil(t, id)
	default:
		return fmt.Errorf("ast: node %d has unknown kind %d", id, k)
	}
}

// Inspect walks the tree rooted at id in pre-order. Returning false from fn
// skips the children of that node.
func Inspect(t *Tree, id NodeID, fn func(NodeID) bool) {
	if id == NoNodeID || !fn(id) {
		return
	}
	for _, c := range t.Edges(id) {
		Inspect(t, c, fn)
	}
}

// Package ast holds the syntax tree built by the parser. Node records live in
// a zone owned by the Tree and are addressed by NodeID handles; parent, child
// and binding links are handles as well, never Go pointers.
package ast

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"risp/internal/literal"
	"risp/internal/token"
	"risp/internal/zone"
)

// ErrReleased is the panic value for node access after Release.
var ErrReleased = errors.New("ast: tree used after Release")

// Tree owns every node, scope and literal of one parse. It is single-owner
// during construction and read-only afterwards.
type Tree struct {
	zone     *zone.Zone
	lits     *literal.Buffer
	nodes    []*Node    // index = NodeID-1; records live in zone
	lists    [][]NodeID // index = listID-1
	scopes   []Scope    // index = ScopeID
	root     NodeID
	released bool
}

// NewTree creates an empty tree with its own zone and literal buffer.
func NewTree(opts ...zone.Option) *Tree {
	z := zone.New(opts...)
	return &Tree{
		zone:   z,
		lits:   literal.New(z),
		nodes:  make([]*Node, 0, 256),
		lists:  make([][]NodeID, 0, 64),
		scopes: make([]Scope, 0, 16),
	}
}

// Literals is the buffer that token literals of this tree are interned in.
func (t *Tree) Literals() *literal.Buffer { return t.lits }

// Root returns the Module node, or NoNodeID before one was set.
func (t *Tree) Root() NodeID { return t.root }

// SetRoot records the Module node.
func (t *Tree) SetRoot(id NodeID) {
	t.mustKind(id, KindModule)
	t.root = id
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// ZoneStats reports the footprint of the node zone.
func (t *Tree) ZoneStats() zone.Stats { return t.zone.Stats() }

// Release destroys the zone. The tree must not be used afterwards.
func (t *Tree) Release() error {
	if t.released {
		return nil
	}
	t.released = true
	t.nodes = nil
	t.lists = nil
	return t.zone.Destroy()
}

// Released reports whether Release has run.
func (t *Tree) Released() bool { return t.released }

// Node returns the record for id. It panics on an invalid handle.
func (t *Tree) Node(id NodeID) *Node {
	if t.released {
		panic(ErrReleased)
	}
	if id == NoNodeID || int(id) > len(t.nodes) {
		panic(fmt.Sprintf("ast: invalid node id %d", id))
	}
	return t.nodes[id-1]
}

// Kind returns the kind of id.
func (t *Tree) Kind(id NodeID) Kind { return t.Node(id).Kind }

// Token returns the token id was built from.
func (t *Tree) Token(id NodeID) token.Token { return t.Node(id).Token }

// New places a node of kind built from tok and returns its handle.
func (t *Tree) New(kind Kind, tok token.Token) NodeID {
	if t.released {
		panic(ErrReleased)
	}
	p := zone.Place(t.zone, Node{Kind: kind, Token: tok, scope: NoScopeID, text: literal.None})
	t.nodes = append(t.nodes, p)
	n, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("ast: node count overflow: %w", err))
	}
	return NodeID(n)
}

func (t *Tree) mustKind(id NodeID, kinds ...Kind) *Node {
	n := t.Node(id)
	for _, k := range kinds {
		if n.Kind == k {
			return n
		}
	}
	panic(fmt.Sprintf("ast: %s node %d used as %v", n.Kind, id, kinds))
}

func (t *Tree) list(id listID) []NodeID {
	if id == noListID {
		return nil
	}
	return t.lists[id-1]
}

func (t *Tree) appendList(ref *listID, ids ...NodeID) {
	if *ref == noListID {
		t.lists = append(t.lists, make([]NodeID, 0, 4))
		n, err := safecast.Conv[uint32](len(t.lists))
		if err != nil {
			panic(fmt.Errorf("ast: list count overflow: %w", err))
		}
		*ref = listID(n)
	}
	t.lists[*ref-1] = append(t.lists[*ref-1], ids...)
}

// Parent returns the parent of id, or NoNodeID for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.Node(id).parent }

// SetParent records parent as the parent of id.
func (t *Tree) SetParent(id, parent NodeID) { t.Node(id).parent = parent }

// AddChild appends child to a structural node and sets the child's parent.
func (t *Tree) AddChild(id, child NodeID) {
	n := t.Node(id)
	if !n.Kind.IsStructural() {
		panic(fmt.Sprintf("ast: AddChild on %s node %d", n.Kind, id))
	}
	t.appendList(&n.kids, child)
	t.SetParent(child, id)
}

// Children returns the children of a structural node in order. The slice
// belongs to the tree. Other kinds have no plain child list and return nil.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if !n.Kind.IsStructural() {
		return nil
	}
	return t.list(n.kids)
}

// ChildCount returns len(Children(id)).
func (t *Tree) ChildCount(id NodeID) int { return len(t.Children(id)) }

// Child returns the i-th child, or NoNodeID when out of range.
func (t *Tree) Child(id NodeID, i int) NodeID {
	kids := t.Children(id)
	if i < 0 || i >= len(kids) {
		return NoNodeID
	}
	return kids[i]
}

// Edges returns every direct descendant of id in source order, whatever
// the kind. Let bindings appear as name, value pairs.
func (t *Tree) Edges(id NodeID) []NodeID {
	n := t.Node(id)
	var out []NodeID
	push := func(ids ...NodeID) {
		for _, c := range ids {
			if c != NoNodeID {
				out = append(out, c)
			}
		}
	}
	switch n.Kind {
	case KindDef, KindIf, KindQuote:
		push(n.slots[:]...)
	case KindDefMacro:
		push(n.slots[slotName])
		push(t.list(n.aux)...)
		push(t.list(n.kids)...)
	case KindLet, KindLambda:
		push(t.list(n.aux)...)
		push(t.list(n.kids)...)
	default:
		push(t.list(n.kids)...)
	}
	return out
}

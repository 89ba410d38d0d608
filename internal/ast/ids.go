package ast

import "math"

type (
	// NodeID addresses a node of a Tree. Ids are 1-based.
	NodeID uint32
	// ScopeID is the sequential id of a lexical scope; the module scope is 0.
	ScopeID uint32
	// listID addresses a child list in the tree's side table (1-based).
	listID uint32
)

const (
	NoNodeID  NodeID  = 0
	NoScopeID ScopeID = math.MaxUint32
	noListID  listID  = 0
)

func (id NodeID) IsValid() bool  { return id != NoNodeID }
func (id ScopeID) IsValid() bool { return id != NoScopeID }

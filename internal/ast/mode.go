package ast

import "fmt"

// Depth locates a binding relative to a reference: Origin marks the binding
// occurrence itself, a non-negative value counts scope hops outward.
type Depth int32

// Origin is the depth recorded on the defining occurrence of a name.
const Origin Depth = -1

// IsOrigin reports whether d marks a defining occurrence.
func (d Depth) IsOrigin() bool { return d < 0 }

func (d Depth) String() string {
	if d.IsOrigin() {
		return "origin"
	}
	return fmt.Sprintf("depth = %d", int32(d))
}

// ModeKind tags a SymbolMode.
type ModeKind uint8

const (
	ModeUnresolved ModeKind = iota
	ModeVar
	ModeParameter
)

// SymbolMode records how a symbol was resolved at parse time. The zero value
// is Unresolved.
type SymbolMode struct {
	Kind  ModeKind
	Index int32 // parameter position, ModeParameter only
	Depth Depth
}

// Unresolved is the mode of names with no enclosing binding.
var Unresolved = SymbolMode{}

// Var is a let or def binding.
func Var(d Depth) SymbolMode {
	return SymbolMode{Kind: ModeVar, Depth: d}
}

// Parameter is a lambda or macro parameter at position index.
func Parameter(index int32, d Depth) SymbolMode {
	return SymbolMode{Kind: ModeParameter, Index: index, Depth: d}
}

// At returns m with its depth replaced; Unresolved stays unchanged.
func (m SymbolMode) At(d Depth) SymbolMode {
	if m.Kind == ModeUnresolved {
		return m
	}
	m.Depth = d
	return m
}

// IsResolved reports whether m names a binding.
func (m SymbolMode) IsResolved() bool { return m.Kind != ModeUnresolved }

func (m SymbolMode) String() string {
	switch m.Kind {
	case ModeVar:
		return fmt.Sprintf("Var(%s)", m.Depth)
	case ModeParameter:
		return fmt.Sprintf("Parameter(index = %d, %s)", m.Index, m.Depth)
	default:
		return "Unresolved"
	}
}

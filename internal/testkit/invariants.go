// Package testkit holds structural checks shared by parser, driver and fuzz
// tests.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"risp/internal/ast"
	"risp/internal/source"
)

// CheckTreeInvariants walks the tree under root and verifies:
// 1) root is a Module with no parent and owns the root scope
// 2) every edge is a tree edge: the child's Parent is the node reached from,
// and no node is reachable twice
// 3) every position points into sf
// 4) every binder owns a scope whose Origin is the binder and whose parent
// chain ends at the root scope
func CheckTreeInvariants(tree *ast.Tree, root ast.NodeID, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if !root.IsValid() || tree.Kind(root) != ast.KindModule {
		return fmt.Errorf("root %d is not a Module", root)
	}
	if p := tree.Parent(root); p != ast.NoNodeID {
		return fmt.Errorf("root has parent %d", p)
	}
	rootScope := tree.ScopeOf(root)
	if tree.ScopeParent(rootScope) != ast.NoScopeID {
		return fmt.Errorf("root scope %d has a parent", rootScope)
	}

	lines, err := safecast.Conv[uint32](len(sf.LineIdx) + 1)
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	// одиночный \r лексер считает переводом строки, индекс строк - нет
	checkLines := bytes.IndexByte(sf.Content, '\r') < 0

	seen := make(map[ast.NodeID]bool, tree.Len())
	var walk func(id ast.NodeID) error
	walk = func(id ast.NodeID) error {
		if seen[id] {
			return fmt.Errorf("node %d reachable twice", id)
		}
		seen[id] = true

		info := tree.Token(id).Info
		if info.File != sf.ID {
			return fmt.Errorf("node %d (%s) points to file %d, want %d", id, tree.Kind(id), info.File, sf.ID)
		}
		if info.Line == 0 || info.Col == 0 {
			return fmt.Errorf("node %d (%s) has position %s", id, tree.Kind(id), info)
		}
		if checkLines && info.Line > lines {
			return fmt.Errorf("node %d (%s) line %d beyond %d lines", id, tree.Kind(id), info.Line, lines)
		}

		if tree.Kind(id).IsBinder() {
			if err := checkScope(tree, id, rootScope); err != nil {
				return err
			}
		}
		for _, c := range tree.Edges(id) {
			if p := tree.Parent(c); p != id {
				return fmt.Errorf("node %d (%s) has parent %d, reached from %d", c, tree.Kind(c), p, id)
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}

func checkScope(tree *ast.Tree, id ast.NodeID, rootScope ast.ScopeID) error {
	scope := tree.ScopeOf(id)
	count, err := safecast.Conv[uint32](tree.ScopeCount())
	if err != nil {
		return fmt.Errorf("scope count overflow: %w", err)
	}
	if uint32(scope) >= count {
		return fmt.Errorf("binder %d (%s) has scope %d of %d", id, tree.Kind(id), scope, count)
	}
	if origin := tree.Scope(scope).Origin; origin != id {
		return fmt.Errorf("scope %d has origin %d, want %d", scope, origin, id)
	}
	// цепочка родителей конечна и заканчивается корнем
	for steps := 0; scope != rootScope; steps++ {
		if scope == ast.NoScopeID || steps > tree.ScopeCount() {
			return fmt.Errorf("binder %d (%s) scope chain does not reach the root", id, tree.Kind(id))
		}
		scope = tree.ScopeParent(scope)
	}
	return nil
}

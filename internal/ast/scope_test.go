package ast_test

import (
	"testing"

	"risp/internal/ast"
	"risp/internal/source"
	"risp/internal/token"
)

func newTree(t *testing.T) *ast.Tree {
	t.Helper()
	tree := ast.NewTree()
	t.Cleanup(func() { _ = tree.Release() })
	return tree
}

func symbol(tree *ast.Tree, name string, col uint32) ast.NodeID {
	lit := tree.Literals().Get(name)
	tok := token.Token{Kind: token.Symbol, Literal: lit, Info: source.Info{Line: 1, Col: col}}
	return tree.NewSymbol(tok, lit)
}

func TestScopeDepthAndShadowing(t *testing.T) {
	tree := newTree(t)
	s0 := tree.NewScope(ast.NoScopeID, ast.NoNodeID)
	s1 := tree.NewScope(s0, ast.NoNodeID)
	s2 := tree.NewScope(s1, ast.NoNodeID)

	if s0 != 0 || tree.Scope(s0).Depth != 0 {
		t.Fatalf("root scope = %d depth %d, want 0 depth 0", s0, tree.Scope(s0).Depth)
	}
	if got := tree.Scope(s2).Depth; got != 2 {
		t.Fatalf("S2 depth = %d, want 2", got)
	}

	outer := symbol(tree, "x", 1)
	tree.Intern(s0, outer)
	use := symbol(tree, "x", 10)

	dist, bound, ok := tree.Find(s2, use)
	if !ok || dist != 2 || bound != outer {
		t.Fatalf("Find = (%d, %d, %v), want (2, %d, true)", dist, bound, ok, outer)
	}

	// затеняем x в S1
	inner := symbol(tree, "x", 5)
	tree.Intern(s1, inner)
	dist, bound, ok = tree.Find(s2, use)
	if !ok || dist != 1 || bound != inner {
		t.Fatalf("after shadowing Find = (%d, %d, %v), want (1, %d, true)", dist, bound, ok, inner)
	}

	if _, _, ok := tree.Find(s2, symbol(tree, "y", 12)); ok {
		t.Error("unbound name was found")
	}
	if got := tree.ScopeParent(s2); got != s1 {
		t.Errorf("ScopeParent(S2) = %d, want %d", got, s1)
	}
	if got := tree.ScopeParent(s0); got.IsValid() {
		t.Errorf("root has parent %d", got)
	}
}

func TestFindLiteral(t *testing.T) {
	tree := newTree(t)
	root := tree.NewScope(ast.NoScopeID, ast.NoNodeID)
	sym := symbol(tree, "answer", 1)
	tree.Intern(root, sym)

	dist, bound, ok := tree.FindLiteral(root, tree.Literals().Get("answer"))
	if !ok || dist != 0 || bound != sym {
		t.Fatalf("FindLiteral = (%d, %d, %v)", dist, bound, ok)
	}
	if tree.Bindings(root) != 1 {
		t.Errorf("Bindings = %d, want 1", tree.Bindings(root))
	}
}

func TestSetScopeParentRecomputesDepth(t *testing.T) {
	tree := newTree(t)
	a := tree.NewScope(ast.NoScopeID, ast.NoNodeID)
	b := tree.NewScope(a, ast.NoNodeID)
	c := tree.NewScope(ast.NoScopeID, ast.NoNodeID)
	tree.SetScopeParent(c, b)
	if got := tree.Scope(c).Depth; got != 2 {
		t.Errorf("depth = %d, want 2", got)
	}
	if tree.ScopeCount() != 3 {
		t.Errorf("ScopeCount = %d", tree.ScopeCount())
	}
}

func TestInternRejectsNonSymbol(t *testing.T) {
	tree := newTree(t)
	root := tree.NewScope(ast.NoScopeID, ast.NoNodeID)
	n := tree.NewInteger(token.Token{Kind: token.Int}, 1)
	defer func() {
		if recover() == nil {
			t.Fatal("Intern of an Integer did not panic")
		}
	}()
	tree.Intern(root, n)
}

package parser

import (
	"context"
	"testing"

	"risp/internal/ast"
	"risp/internal/testkit"
)

func parse(t *testing.T, src string) Result {
	t.Helper()
	res := ParseString(context.Background(), "test.risp", src, Options{})
	t.Cleanup(func() { _ = res.Tree.Release() })
	return res
}

func mustParse(t *testing.T, src string) (*ast.Tree, ast.NodeID) {
	t.Helper()
	res := parse(t, src)
	if res.Err != nil {
		t.Fatalf("parse %q: %v", src, res.Err)
	}
	if err := testkit.CheckTreeInvariants(res.Tree, res.Root, res.File); err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return res.Tree, res.Root
}

// form returns the i-th top-level form.
func form(t *testing.T, tree *ast.Tree, root ast.NodeID, i int) ast.NodeID {
	t.Helper()
	id := tree.Child(root, i)
	if id == ast.NoNodeID {
		t.Fatalf("module has %d forms, want more than %d", tree.ChildCount(root), i)
	}
	return id
}

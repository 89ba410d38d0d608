package parser

import "risp/internal/ast"

// ScopeHandler tracks the innermost scope while the parser descends.
type ScopeHandler struct {
	tree    *ast.Tree
	current ast.ScopeID
}

// NewScopeHandler starts at root.
func NewScopeHandler(tree *ast.Tree, root ast.ScopeID) *ScopeHandler {
	return &ScopeHandler{tree: tree, current: root}
}

// Current returns the innermost scope.
func (h *ScopeHandler) Current() ast.ScopeID { return h.current }

// Enter allocates the next scope as a child of the current one, makes it
// current for the duration of fn and restores the parent afterwards, also
// when fn fails.
func (h *ScopeHandler) Enter(fn func(ast.ScopeID) error) error {
	parent := h.current
	h.current = h.tree.NewScope(parent, ast.NoNodeID)
	defer func() { h.current = parent }()
	return fn(h.current)
}

package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"risp/internal/ast"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTTree draws the subtree rooted at id as an indented tree. Under a
// Module every top-level form gets its own block.
func FormatASTTree(w io.Writer, tree *ast.Tree, id ast.NodeID) error {
	b := &treeBuilder{}
	root, err := b.build(tree, id)
	if err != nil {
		return err
	}
	if tree.Kind(id) == ast.KindModule {
		fmt.Fprintln(w, root.label)
		for i, form := range root.children {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeBlock(w, renderTree(form))
		}
		return nil
	}
	writeBlock(w, renderTree(root))
	return nil
}

func writeBlock(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// treeBuilder turns nodes into labelled treeNodes through ast.Accept.
type treeBuilder struct {
	out *treeNode
}

func (b *treeBuilder) build(tree *ast.Tree, id ast.NodeID) (*treeNode, error) {
	if err := ast.Accept(tree, id, b); err != nil {
		return nil, err
	}
	return b.out, nil
}

func (b *treeBuilder) group(tree *ast.Tree, label string, ids []ast.NodeID) (*treeNode, error) {
	node := &treeNode{label: label}
	for _, c := range ids {
		child, err := b.build(tree, c)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
	}
	return node, nil
}

func (b *treeBuilder) structural(tree *ast.Tree, id ast.NodeID) error {
	node, err := b.group(tree, tree.Kind(id).String(), tree.Edges(id))
	b.out = node
	return err
}

func (b *treeBuilder) binder(tree *ast.Tree, id ast.NodeID, head []ast.NodeID, params string, args []ast.NodeID) error {
	s := tree.Scope(tree.ScopeOf(id))
	node, err := b.group(tree, fmt.Sprintf("%s#%d", tree.Kind(id), s.ID), head)
	if err != nil {
		return err
	}
	if args != nil || params != "" {
		p, err := b.group(tree, params, args)
		if err != nil {
			return err
		}
		node.children = append(node.children, p)
	}
	body, err := b.group(tree, "body", tree.Body(id))
	if err != nil {
		return err
	}
	node.children = append(node.children, body)
	b.out = node
	return nil
}

func (b *treeBuilder) leaf(label string) error {
	b.out = &treeNode{label: label}
	return nil
}

func (b *treeBuilder) VisitModule(t *ast.Tree, id ast.NodeID) error {
	node, err := b.group(t, fmt.Sprintf("Module %s", t.Token(id).Info), t.Children(id))
	b.out = node
	return err
}

func (b *treeBuilder) VisitList(t *ast.Tree, id ast.NodeID) error   { return b.structural(t, id) }
func (b *treeBuilder) VisitVector(t *ast.Tree, id ast.NodeID) error { return b.structural(t, id) }
func (b *treeBuilder) VisitMap(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }
func (b *treeBuilder) VisitSet(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }
func (b *treeBuilder) VisitTag(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }
func (b *treeBuilder) VisitIf(t *ast.Tree, id ast.NodeID) error     { return b.structural(t, id) }
func (b *treeBuilder) VisitQuote(t *ast.Tree, id ast.NodeID) error  { return b.structural(t, id) }
func (b *treeBuilder) VisitDef(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }

func (b *treeBuilder) VisitLambdaSugar(t *ast.Tree, id ast.NodeID) error {
	return b.structural(t, id)
}

func (b *treeBuilder) VisitModuleReference(t *ast.Tree, id ast.NodeID) error {
	segs := make([]string, 0, t.ChildCount(id))
	for _, c := range t.Children(id) {
		segs = append(segs, t.Text(c))
	}
	return b.leaf("ref " + strings.Join(segs, "/"))
}

func (b *treeBuilder) VisitLet(t *ast.Tree, id ast.NodeID) error {
	flat := make([]ast.NodeID, 0, 4)
	for _, bind := range t.LetBindings(id) {
		flat = append(flat, bind.Name, bind.Value)
	}
	return b.binder(t, id, nil, "bindings", flat)
}

func (b *treeBuilder) VisitLambda(t *ast.Tree, id ast.NodeID) error {
	return b.binder(t, id, nil, "params", t.LambdaArgs(id))
}

func (b *treeBuilder) VisitDefMacro(t *ast.Tree, id ast.NodeID) error {
	return b.binder(t, id, []ast.NodeID{t.MacroName(id)}, "params", t.LambdaArgs(id))
}

func (b *treeBuilder) VisitInteger(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.IntValue(id)
	return b.leaf(strconv.FormatInt(v, 10))
}

func (b *treeBuilder) VisitDouble(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.DoubleValue(id)
	return b.leaf(strconv.FormatFloat(v, 'g', -1, 64))
}

func (b *treeBuilder) VisitString(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.StringValue(id)
	return b.leaf(strconv.Quote(v))
}

func (b *treeBuilder) VisitUChar(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.CharValue(id)
	return b.leaf(strconv.QuoteRune(v))
}

func (b *treeBuilder) VisitSymbol(t *ast.Tree, id ast.NodeID) error {
	m := t.Mode(id)
	if !m.IsResolved() {
		return b.leaf(t.Text(id))
	}
	return b.leaf(fmt.Sprintf("%s:%s", t.Text(id), m))
}

func (b *treeBuilder) VisitKeyword(t *ast.Tree, id ast.NodeID) error { return b.leaf(t.Text(id)) }

func (b *treeBuilder) VisitBoolean(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.BooleanValue(id)
	return b.leaf(strconv.FormatBool(v))
}

func (b *treeBuilder) VisitRegExp(t *ast.Tree, id ast.NodeID) error {
	return b.leaf(`#"` + t.Text(id) + `"`)
}

func (b *treeBuilder) VisitLambdaParam(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.ParamIndex(id)
	switch v {
	case -1:
		return b.leaf("%&")
	default:
		return b.leaf("%" + strconv.FormatInt(v, 10))
	}
}

func (b *treeBuilder) VisitNil(*ast.Tree, ast.NodeID) error { return b.leaf("nil") }

// renderTree draws node in the layout of the tree(1) command:
//
//	Def
//	├── x:Var(origin)
//	└── 1
func renderTree(node *treeNode) []string {
	lines := []string{node.label}
	for i, child := range node.children {
		branch, indent := "├── ", "│   "
		if i == len(node.children)-1 {
			branch, indent = "└── ", "    "
		}
		for j, line := range renderTree(child) {
			if j == 0 {
				lines = append(lines, branch+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}

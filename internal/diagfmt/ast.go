package diagfmt

import (
	"encoding/json"
	"io"
	"strconv"

	"risp/internal/ast"
)

// ASTNodeOutput is the JSON shape of one node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Line     uint32          `json:"line"`
	Col      uint32          `json:"col"`
	Text     string          `json:"text,omitempty"`
	Mode     string          `json:"mode,omitempty"`
	Scope    *uint32         `json:"scope,omitempty"`
	Role     string          `json:"role,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty writes the indented dump of the subtree rooted at id.
func FormatASTPretty(w io.Writer, tree *ast.Tree, id ast.NodeID) error {
	_, err := io.WriteString(w, tree.Dump(id))
	return err
}

// FormatASTJSON writes the subtree rooted at id as nested JSON objects.
func FormatASTJSON(w io.Writer, tree *ast.Tree, id ast.NodeID) error {
	out, err := BuildASTOutput(tree, id)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// BuildASTOutput converts the subtree without serializing it.
func BuildASTOutput(tree *ast.Tree, id ast.NodeID) (ASTNodeOutput, error) {
	b := &jsonBuilder{}
	return b.build(tree, id)
}

type jsonBuilder struct {
	out ASTNodeOutput
}

func (b *jsonBuilder) build(tree *ast.Tree, id ast.NodeID) (ASTNodeOutput, error) {
	if err := ast.Accept(tree, id, b); err != nil {
		return ASTNodeOutput{}, err
	}
	return b.out, nil
}

func (b *jsonBuilder) base(t *ast.Tree, id ast.NodeID) ASTNodeOutput {
	tok := t.Token(id)
	n := ASTNodeOutput{
		Type: t.Kind(id).String(),
		Line: tok.Info.Line,
		Col:  tok.Info.Col,
	}
	if t.Kind(id).IsBinder() || t.Kind(id) == ast.KindModule {
		if s := t.ScopeOf(id); s.IsValid() {
			v := uint32(s)
			n.Scope = &v
		}
	}
	return n
}

func (b *jsonBuilder) children(t *ast.Tree, role string, ids []ast.NodeID) ([]ASTNodeOutput, error) {
	out := make([]ASTNodeOutput, 0, len(ids))
	for _, c := range ids {
		child, err := b.build(t, c)
		if err != nil {
			return nil, err
		}
		child.Role = role
		out = append(out, child)
	}
	return out, nil
}

func (b *jsonBuilder) structural(t *ast.Tree, id ast.NodeID) error {
	n := b.base(t, id)
	kids, err := b.children(t, "", t.Edges(id))
	if err != nil {
		return err
	}
	n.Children = kids
	b.out = n
	return nil
}

func (b *jsonBuilder) binder(t *ast.Tree, id ast.NodeID, head []ast.NodeID, role string, args []ast.NodeID) error {
	n := b.base(t, id)
	for _, part := range []struct {
		role string
		ids  []ast.NodeID
	}{{"name", head}, {role, args}, {"body", t.Body(id)}} {
		kids, err := b.children(t, part.role, part.ids)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, kids...)
	}
	b.out = n
	return nil
}

func (b *jsonBuilder) leaf(t *ast.Tree, id ast.NodeID, text string) error {
	n := b.base(t, id)
	n.Text = text
	b.out = n
	return nil
}

func (b *jsonBuilder) VisitModule(t *ast.Tree, id ast.NodeID) error { return b.structural(t, id) }
func (b *jsonBuilder) VisitList(t *ast.Tree, id ast.NodeID) error   { return b.structural(t, id) }
func (b *jsonBuilder) VisitVector(t *ast.Tree, id ast.NodeID) error { return b.structural(t, id) }
func (b *jsonBuilder) VisitMap(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }
func (b *jsonBuilder) VisitSet(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }
func (b *jsonBuilder) VisitTag(t *ast.Tree, id ast.NodeID) error    { return b.structural(t, id) }
func (b *jsonBuilder) VisitQuote(t *ast.Tree, id ast.NodeID) error  { return b.structural(t, id) }

func (b *jsonBuilder) VisitModuleReference(t *ast.Tree, id ast.NodeID) error {
	return b.structural(t, id)
}

func (b *jsonBuilder) VisitLambdaSugar(t *ast.Tree, id ast.NodeID) error {
	return b.structural(t, id)
}

func (b *jsonBuilder) VisitIf(t *ast.Tree, id ast.NodeID) error {
	n := b.base(t, id)
	for _, part := range []struct {
		role string
		id   ast.NodeID
	}{{"cond", t.Cond(id)}, {"then", t.Then(id)}, {"else", t.Else(id)}} {
		if !part.id.IsValid() {
			continue
		}
		kids, err := b.children(t, part.role, []ast.NodeID{part.id})
		if err != nil {
			return err
		}
		n.Children = append(n.Children, kids...)
	}
	b.out = n
	return nil
}

func (b *jsonBuilder) VisitDef(t *ast.Tree, id ast.NodeID) error {
	n := b.base(t, id)
	name, err := b.children(t, "name", []ast.NodeID{t.DefName(id)})
	if err != nil {
		return err
	}
	n.Children = name
	if expr := t.DefExpr(id); expr.IsValid() {
		kids, err := b.children(t, "expr", []ast.NodeID{expr})
		if err != nil {
			return err
		}
		n.Children = append(n.Children, kids...)
	}
	b.out = n
	return nil
}

func (b *jsonBuilder) VisitLet(t *ast.Tree, id ast.NodeID) error {
	var flat []ast.NodeID
	for _, bind := range t.LetBindings(id) {
		flat = append(flat, bind.Name, bind.Value)
	}
	return b.binder(t, id, nil, "binding", flat)
}

func (b *jsonBuilder) VisitLambda(t *ast.Tree, id ast.NodeID) error {
	return b.binder(t, id, nil, "param", t.LambdaArgs(id))
}

func (b *jsonBuilder) VisitDefMacro(t *ast.Tree, id ast.NodeID) error {
	return b.binder(t, id, []ast.NodeID{t.MacroName(id)}, "param", t.LambdaArgs(id))
}

func (b *jsonBuilder) VisitInteger(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.IntValue(id)
	return b.leaf(t, id, strconv.FormatInt(v, 10))
}

func (b *jsonBuilder) VisitDouble(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.DoubleValue(id)
	return b.leaf(t, id, strconv.FormatFloat(v, 'g', -1, 64))
}

func (b *jsonBuilder) VisitString(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.StringValue(id)
	return b.leaf(t, id, v)
}

func (b *jsonBuilder) VisitUChar(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.CharValue(id)
	return b.leaf(t, id, string(v))
}

func (b *jsonBuilder) VisitSymbol(t *ast.Tree, id ast.NodeID) error {
	if err := b.leaf(t, id, t.Text(id)); err != nil {
		return err
	}
	b.out.Mode = t.Mode(id).String()
	return nil
}

func (b *jsonBuilder) VisitKeyword(t *ast.Tree, id ast.NodeID) error {
	return b.leaf(t, id, t.Text(id))
}

func (b *jsonBuilder) VisitBoolean(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.BooleanValue(id)
	return b.leaf(t, id, strconv.FormatBool(v))
}

func (b *jsonBuilder) VisitRegExp(t *ast.Tree, id ast.NodeID) error {
	return b.leaf(t, id, t.Text(id))
}

func (b *jsonBuilder) VisitLambdaParam(t *ast.Tree, id ast.NodeID) error {
	v, _ := t.ParamIndex(id)
	return b.leaf(t, id, strconv.FormatInt(v, 10))
}

func (b *jsonBuilder) VisitNil(t *ast.Tree, id ast.NodeID) error {
	return b.leaf(t, id, "nil")
}

var _ ast.Visitor = (*jsonBuilder)(nil)
var _ ast.Visitor = (*treeBuilder)(nil)


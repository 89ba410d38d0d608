package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the subtree rooted at id as an indented listing. Binders
// show their scope, symbols their resolution mode.
func (t *Tree) Dump(id NodeID) string {
	d := &dumper{}
	d.node(t, id, 0)
	return d.sb.String()
}

type dumper struct {
	sb strings.Builder
}

func (d *dumper) line(indent int, format string, args ...any) {
	d.sb.WriteString(strings.Repeat(" ", indent))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

func (d *dumper) scope(t *Tree, id NodeID) string {
	sid := t.ScopeOf(id)
	if !sid.IsValid() {
		return ""
	}
	s := t.Scope(sid)
	return fmt.Sprintf("(Scope(id = %d, depth = %d))", s.ID, s.Depth)
}

func (d *dumper) all(t *Tree, ids []NodeID, indent int) {
	for _, c := range ids {
		d.node(t, c, indent)
	}
}

func (d *dumper) node(t *Tree, id NodeID, indent int) {
	n := t.Node(id)
	tok := n.Token
	switch n.Kind {
	case KindModule:
		d.line(indent, "Module%s", d.scope(t, id))
		d.all(t, t.Children(id), indent+2)
	case KindLet:
		d.line(indent, "Let%s", d.scope(t, id))
		d.line(indent+2, "*Bindings")
		for _, b := range t.LetBindings(id) {
			d.node(t, b.Name, indent+4)
			d.node(t, b.Value, indent+6)
		}
		d.line(indent+2, "*Body")
		d.all(t, t.Body(id), indent+4)
	case KindLambda:
		d.line(indent, "Lambda%s", d.scope(t, id))
		d.params(t, id, indent)
	case KindDefMacro:
		d.line(indent, "DefMacro%s", d.scope(t, id))
		if name := t.MacroName(id); name != NoNodeID {
			d.node(t, name, indent+2)
		}
		d.params(t, id, indent)
	case KindDef, KindIf, KindQuote:
		d.line(indent, "%s", n.Kind)
		d.all(t, t.Edges(id), indent+2)
	case KindSymbol:
		d.line(indent, "Symbol[mode = %s](%s, %s)", n.mode, tok, t.Text(id))
	case KindInteger:
		d.line(indent, "Integer(%s, %d)", tok, n.num)
	case KindDouble:
		d.line(indent, "Double(%s, %s)", tok, strconv.FormatFloat(n.dbl, 'g', -1, 64))
	case KindString:
		d.line(indent, "String(%s, '%s')", tok, t.Text(id))
	case KindUChar:
		d.line(indent, "UChar(%s, '%c')", tok, rune(n.num))
	case KindKeyword:
		d.line(indent, "Keyword(%s, %s)", tok, t.Text(id))
	case KindBoolean:
		d.line(indent, "Boolean(%s, %t)", tok, n.flag)
	case KindRegExp:
		d.line(indent, "RegExp(%s, %s)", tok, t.Text(id))
	case KindLambdaParam:
		d.line(indent, "LambdaParam(%s, %d)", tok, n.num)
	case KindNil:
		d.line(indent, "Nil(%s)", tok)
	default:
		d.line(indent, "%s", n.Kind)
		d.all(t, t.Children(id), indent+2)
	}
}

func (d *dumper) params(t *Tree, id NodeID, indent int) {
	d.line(indent+2, "*Parameters")
	d.all(t, t.LambdaArgs(id), indent+4)
	d.line(indent+2, "*Body")
	d.all(t, t.Body(id), indent+4)
}

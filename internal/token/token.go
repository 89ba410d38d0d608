package token

import (
	"fmt"
	"slices"

	"risp/internal/literal"
	"risp/internal/source"
)

// Token is a scanned token. It is a plain value and is freely copied.
type Token struct {
	Info    source.Info
	Literal literal.ID
	Kind    Kind
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsOneOf reports whether the token has any of the given kinds.
func (t Token) IsOneOf(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// HasLiteral reports whether the token carries interned text.
func (t Token) HasLiteral() bool { return t.Literal != literal.None }

// String renders Token(col,line,Kind), the form used by tree dumps.
func (t Token) String() string {
	return fmt.Sprintf("Token(%d,%d,%s)", t.Info.Col, t.Info.Line, t.Kind)
}

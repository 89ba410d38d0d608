package token_test

import (
	"testing"

	"risp/internal/literal"
	"risp/internal/token"
	"risp/internal/zone"
)

func TestBuiltinsAreDistinct(t *testing.T) {
	z := zone.New()
	defer func() { _ = z.Destroy() }()
	lits := literal.New(z)
	b := token.NewBuiltins(lits)

	sym := func(text string) token.Token {
		return token.Token{Kind: token.Symbol, Literal: lits.Get(text)}
	}

	checks := []struct {
		name string
		is   func(token.Token) bool
	}{
		{"def", b.IsDef},
		{"defn", b.IsDefn},
		{"defmacro", b.IsDefMacro},
		{"let", b.IsLet},
		{"lambda", b.IsLambda},
		{"if", b.IsIf},
		{"quote", b.IsQuote},
	}
	for _, want := range checks {
		for _, other := range checks {
			got := want.is(sym(other.name))
			if got != (want.name == other.name) {
				t.Errorf("Is(%s) on %q = %v", want.name, other.name, got)
			}
		}
	}

	if !b.IsLambda(sym("fn")) {
		t.Error("fn should be accepted as lambda")
	}
	if b.IsDef(token.Token{Kind: token.String, Literal: lits.Get("def")}) {
		t.Error("a String token must never be a special form")
	}
}

func TestClassify(t *testing.T) {
	z := zone.New()
	defer func() { _ = z.Destroy() }()
	lits := literal.New(z)
	b := token.NewBuiltins(lits)

	cases := map[string]token.Kind{
		"def":      token.Def,
		"defmacro": token.DefMacro,
		"let":      token.Let,
		"fn":       token.Lambda,
		"if":       token.If,
		"quote":    token.Quote,
		"map":      token.Symbol,
	}
	for text, want := range cases {
		tk := token.Token{Kind: token.Symbol, Literal: lits.Get(text)}
		if got := b.Classify(tk); got != want {
			t.Errorf("Classify(%q) = %v, want %v", text, got, want)
		}
	}
}

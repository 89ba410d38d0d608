package token_test

import (
	"testing"

	"risp/internal/literal"
	"risp/internal/source"
	"risp/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Literal: literal.None, Info: source.Info{Line: 1, Col: 1}}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Root:             "Root",
		token.LeftParen:        "LeftParen",
		token.ShortLambdaBegin: "ShortLambdaBegin",
		token.UnquoteSplicing:  "UnquoteSplicing",
		token.Eof:              "Eof",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("unknown kind rendered as %q", got)
	}
}

func TestTokenString(t *testing.T) {
	tk := token.Token{Kind: token.Symbol, Literal: 3, Info: source.Info{Line: 2, Col: 7}}
	if got := tk.String(); got != "Token(7,2,Symbol)" {
		t.Errorf("String() = %q", got)
	}
	if !tk.HasLiteral() || tok(token.LeftParen).HasLiteral() {
		t.Error("HasLiteral misreported")
	}
}

func TestIsOneOf(t *testing.T) {
	tk := tok(token.RightBracket)
	if !tk.IsOneOf(token.RightParen, token.RightBracket) {
		t.Error("IsOneOf missed RightBracket")
	}
	if tk.IsOneOf(token.LeftParen) || !tk.Is(token.RightBracket) {
		t.Error("Is/IsOneOf misreported")
	}
	if !token.RightBrace.IsCloser() || token.LeftBrace.IsCloser() {
		t.Error("IsCloser misreported")
	}
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []token.Kind{token.Int, token.Hex, token.Binary, token.Long, token.BigNumber, token.Float} {
		if !k.IsNumber() {
			t.Errorf("%v should be a number", k)
		}
	}
	for _, k := range []token.Kind{token.Quote, token.Backtick, token.Unquote, token.UnquoteSplicing, token.Deref, token.Tag, token.Dispatch} {
		if !k.IsReaderMacro() {
			t.Errorf("%v should be a reader macro", k)
		}
	}
	if token.Symbol.IsNumber() || token.Symbol.IsReaderMacro() {
		t.Error("Symbol misclassified")
	}
}

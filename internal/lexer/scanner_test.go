package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"risp/internal/diag"
	"risp/internal/lexer"
	"risp/internal/literal"
	"risp/internal/source"
	"risp/internal/token"
	"risp/internal/zone"
)

type testReporter struct {
	diags []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Info, msg string, notes []diag.Note) {
	r.diags = append(r.diags, diag.Diagnostic{Code: code, Severity: sev, Primary: primary, Message: msg, Notes: notes})
}

func makeTestScanner(t *testing.T, input string) (*lexer.Scanner, *testReporter) {
	t.Helper()
	z := zone.New()
	t.Cleanup(func() { _ = z.Destroy() })
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.risp", []byte(input))
	rep := &testReporter{}
	sc := lexer.New(fs.Get(id), literal.New(z), lexer.Options{Reporter: rep})
	return sc, rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestDefForm(t *testing.T) {
	sc, rep := makeTestScanner(t, "(def x 1)")
	toks := sc.All()

	want := []token.Kind{token.LeftParen, token.Symbol, token.Symbol, token.Int, token.RightParen, token.Eof}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	texts := []string{"", "def", "x", "1", "", ""}
	cols := []uint32{1, 2, 6, 8, 9, 10}
	for i, tok := range toks {
		if got := sc.Text(tok); got != texts[i] {
			t.Errorf("token %d text = %q, want %q", i, got, texts[i])
		}
		if tok.Info.Line != 1 || tok.Info.Col != cols[i] {
			t.Errorf("token %d at %s, want 1:%d", i, tok.Info, cols[i])
		}
	}
	if len(rep.diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.diags)
	}
}

func TestPositionsAcrossLines(t *testing.T) {
	sc, _ := makeTestScanner(t, "(a ; comment\n  b)\r\n\"x\ny\" λ z")
	toks := sc.All()

	type pos struct {
		Kind      token.Kind
		Line, Col uint32
	}
	var got []pos
	for _, tok := range toks {
		got = append(got, pos{tok.Kind, tok.Info.Line, tok.Info.Col})
	}
	want := []pos{
		{token.LeftParen, 1, 1},
		{token.Symbol, 1, 2},
		{token.Symbol, 2, 3},
		{token.RightParen, 2, 4},
		{token.String, 3, 1},
		// строка содержит перевод строки
		{token.Symbol, 4, 4},
		{token.Symbol, 4, 6},
		{token.Eof, 4, 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestLiteralKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"42", token.Int},
		{"-7", token.Int},
		{"+7", token.Int},
		{"0x1F", token.Hex},
		{"-0XfF", token.Hex},
		{"0b101", token.Binary},
		{"12N", token.BigNumber},
		{"12L", token.Long},
		{"1.5", token.Float},
		{"1e10", token.Float},
		{"-2.5E-3", token.Float},
		{"Infinity", token.Float},
		{"NaN", token.Float},
		{`\u00e9`, token.UnicodeChar},
		{`\newline`, token.UnicodeChar},
		{`\a`, token.UnicodeChar},
		{`"a \"b\" c"`, token.String},
		{`#"[a-z]+\d"`, token.Regexp},
		{"nil", token.Nil},
		{"true", token.Boolean},
		{"false", token.Boolean},
		{":key", token.Keyword},
		{":ns/key", token.Keyword},
		{"::auto", token.MacroKeyword},
		{"%", token.ParamName},
		{"%2", token.ParamName},
		{"%&", token.ParamName},
		{"#inst", token.Dispatch},
		{"foo/bar", token.Symbol},
		{"->>", token.Symbol},
		{"-", token.Symbol},
		{"a'", token.Symbol},
		{"nil?", token.Symbol},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sc, rep := makeTestScanner(t, tt.in)
			tok := sc.Scan()
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", tok.Kind, tt.kind)
			}
			if got := sc.Text(tok); got != tt.in {
				t.Errorf("text = %q, want %q", got, tt.in)
			}
			if next := sc.Scan(); next.Kind != token.Eof {
				t.Errorf("trailing token %s", next.Kind)
			}
			if len(rep.diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", rep.diags)
			}
		})
	}
}

func TestPunctuationAndReaderMacros(t *testing.T) {
	sc, _ := makeTestScanner(t, "'a `b ~c ~@d @e ^f #(g) #{h} [i] {j k}")
	toks := sc.All()
	want := []token.Kind{
		token.Quote, token.Symbol,
		token.Backtick, token.Symbol,
		token.Unquote, token.Symbol,
		token.UnquoteSplicing, token.Symbol,
		token.Deref, token.Symbol,
		token.Tag, token.Symbol,
		token.ShortLambdaBegin, token.Symbol, token.RightParen,
		token.SetBegin, token.Symbol, token.RightBrace,
		token.LeftBracket, token.Symbol, token.RightBracket,
		token.LeftBrace, token.Symbol, token.Symbol, token.RightBrace,
		token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	for _, tok := range toks {
		if tok.Kind != token.Symbol && tok.HasLiteral() {
			t.Errorf("%s carries literal %d", tok, tok.Literal)
		}
	}
}

func TestEqualTextSharesID(t *testing.T) {
	// "é" в NFC и NFD формах
	sc, _ := makeTestScanner(t, "x x é é :k :k")
	toks := sc.All()
	if toks[0].Literal != toks[1].Literal {
		t.Errorf("x ids differ: %d, %d", toks[0].Literal, toks[1].Literal)
	}
	if toks[2].Literal != toks[3].Literal {
		t.Errorf("normalized symbols differ: %d, %d", toks[2].Literal, toks[3].Literal)
	}
	if toks[4].Literal != toks[5].Literal {
		t.Errorf("keyword ids differ: %d, %d", toks[4].Literal, toks[5].Literal)
	}
	if toks[0].Literal == toks[2].Literal {
		t.Error("distinct symbols share an id")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	sc, _ := makeTestScanner(t, "a b")
	p := sc.Peek()
	if again := sc.Peek(); again != p {
		t.Fatalf("second Peek = %v, want %v", again, p)
	}
	if got := sc.Scan(); got != p {
		t.Fatalf("Scan = %v, want peeked %v", got, p)
	}
	if got := sc.Text(sc.Scan()); got != "b" {
		t.Fatalf("second token = %q", got)
	}
	for range 3 {
		if tok := sc.Scan(); tok.Kind != token.Eof {
			t.Fatalf("after end got %s", tok.Kind)
		}
	}
}

func TestInvalidInputReported(t *testing.T) {
	sc, rep := makeTestScanner(t, "(a \"open")
	toks := sc.All()

	var invalid int
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			invalid++
		}
	}
	if invalid != 1 {
		t.Fatalf("invalid tokens = %d, want 1", invalid)
	}
	if len(rep.diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(rep.diags))
	}
	d := rep.diags[0]
	if d.Code != diag.LexUnterminatedString {
		t.Errorf("code = %s", d.Code.ID())
	}
	if d.Primary.Line != 1 || d.Primary.Col != 4 {
		t.Errorf("primary = %s, want 1:4", d.Primary)
	}
}

func TestLoneColonAndHash(t *testing.T) {
	sc, rep := makeTestScanner(t, ": # x")
	got := kinds(sc.All())
	want := []token.Kind{token.Colon, token.Invalid, token.Symbol, token.Eof}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(rep.diags) != 1 || rep.diags[0].Code != diag.LexInvalidToken {
		t.Errorf("diagnostics = %v", rep.diags)
	}
}

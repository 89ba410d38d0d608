package lexer

import (
	"regexp"
	"strings"

	"risp/internal/token"
)

// rule is one alternative of the master expression. Rules are tried in
// declaration order; the first alternative that matches at the cursor wins.
type rule struct {
	name    string
	pattern string
	kind    token.Kind
}

// symbolTail excludes whitespace, commas, brackets, quotes and the reader
// macro characters that always end a symbol.
const symbolTail = "[^\\s,()\\[\\]{}\"`~^@;]"

var rules = []rule{
	{"comment", `;[^\n\r]*`, token.Comment},
	{"lf", `\r\n|\n|\r`, token.Ignore},
	{"ws", `[ \t\f\v,]+`, token.Ignore},
	{"lambda", `#\(`, token.ShortLambdaBegin},
	{"set", `#\{`, token.SetBegin},
	{"regexp", `#"(?:\\.|[^"\\])*"`, token.Regexp},
	{"lparen", `\(`, token.LeftParen},
	{"rparen", `\)`, token.RightParen},
	{"lbracket", `\[`, token.LeftBracket},
	{"rbracket", `\]`, token.RightBracket},
	{"lbrace", `\{`, token.LeftBrace},
	{"rbrace", `\}`, token.RightBrace},
	{"param", `%(?:[1-9][0-9]*|&)?`, token.ParamName},
	{"hex", `[-+]?0[xX][0-9a-fA-F]+`, token.Hex},
	{"bin", `[-+]?0[bB][01]+`, token.Binary},
	{"bign", `[-+]?[0-9]+[nN]`, token.BigNumber},
	{"long", `[-+]?[0-9]+[lL]`, token.Long},
	{"float", `[-+]?[0-9]+(?:\.[0-9]+(?:[eE][-+]?[0-9]+)?|[eE][-+]?[0-9]+)`, token.Float},
	{"int", `[-+]?[0-9]+`, token.Int},
	{"char", `\\u[0-9a-fA-F]{4}|\\(?:newline|space|tab|return)|\\.`, token.UnicodeChar},
	{"string", `"(?:\\.|[^"\\])*"`, token.String},
	{"splice", `~@`, token.UnquoteSplicing},
	{"deref", `@`, token.Deref},
	{"quote", `'`, token.Quote},
	{"backtick", "`", token.Backtick},
	{"unquote", `~`, token.Unquote},
	{"tag", `\^`, token.Tag},
	{"dispatch", `#` + symbolTail + `+`, token.Dispatch},
	{"mkeyword", `::` + symbolTail + `+`, token.MacroKeyword},
	{"keyword", `:` + symbolTail + `+`, token.Keyword},
	{"colon", `:`, token.Colon},
	{"symbol", "[^\\s,()\\[\\]{}\"`~^@;#%:']" + symbolTail + `*`, token.Symbol},
	{"any", `(?s:.)`, token.Invalid},
}

var master = compileRules(rules)

func compileRules(rs []rule) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`\A(?:`)
	for i, r := range rs {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("(?P<")
		sb.WriteString(r.name)
		sb.WriteByte('>')
		sb.WriteString(r.pattern)
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return regexp.MustCompile(sb.String())
}

// match returns the rule and the byte length of the match at the start of in.
// The any rule guarantees a match on non-empty input.
func match(in []byte) (rule, int) {
	loc := master.FindSubmatchIndex(in)
	if loc == nil {
		return rule{name: "any", kind: token.Invalid}, 1
	}
	for i := range rules {
		if start := loc[2*(i+1)]; start >= 0 {
			return rules[i], loc[2*(i+1)+1] - start
		}
	}
	return rule{name: "any", kind: token.Invalid}, loc[1]
}

// reserved symbols that scan as literals.
var reserved = map[string]token.Kind{
	"nil":       token.Nil,
	"true":      token.Boolean,
	"false":     token.Boolean,
	"Infinity":  token.Float,
	"-Infinity": token.Float,
	"+Infinity": token.Float,
	"NaN":       token.Float,
}

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"risp/internal/ast"
	"risp/internal/diag"
	"risp/internal/token"
)

func (p *Parser) parseLiteral(tok token.Token) (ast.NodeID, error) {
	text := p.text(tok)
	switch tok.Kind {
	case token.Int, token.Hex, token.Binary, token.Long, token.BigNumber:
		// leading zeros are decimal; only 0x and 0b pick another base
		base := 10
		if tok.Kind == token.Hex || tok.Kind == token.Binary {
			base = 0
		}
		v, err := strconv.ParseInt(strings.TrimRight(text, "lLnN"), base, 64)
		if err != nil {
			return ast.NoNodeID, p.fail(diag.SynBadInteger, tok, "invalid integer literal '%s'", text)
		}
		return p.tree.NewInteger(tok, v), nil
	case token.Float:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return ast.NoNodeID, p.fail(diag.SynBadDouble, tok, "invalid floating point literal '%s'", text)
		}
		return p.tree.NewDouble(tok, v), nil
	case token.String:
		s, err := p.unescape(tok, text[1:len(text)-1])
		if err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.NewString(tok, s), nil
	case token.Regexp:
		return p.tree.NewRegExp(tok, text[2:len(text)-1]), nil
	case token.Keyword, token.MacroKeyword:
		return p.tree.NewKeyword(tok, tok.Literal), nil
	case token.Boolean:
		return p.tree.NewBoolean(tok, text == "true"), nil
	case token.Nil:
		return p.tree.NewNil(tok), nil
	case token.UnicodeChar:
		r, err := p.char(tok, text)
		if err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.NewUChar(tok, r), nil
	case token.ParamName:
		return p.parseParam(tok, text)
	case token.Symbol:
		return p.processSymbol(tok, text), nil
	default:
		return ast.NoNodeID, p.fail(diag.SynUnexpectedToken, tok, "unexpected %s", tok.Kind)
	}
}

var namedChars = map[string]rune{
	"newline": '\n',
	"space":   ' ',
	"tab":     '\t',
	"return":  '\r',
}

// char decodes \uXXXX, \name and \c.
func (p *Parser) char(tok token.Token, text string) (rune, error) {
	body := text[1:]
	if r, ok := namedChars[body]; ok {
		return r, nil
	}
	if len(body) == 5 && body[0] == 'u' {
		return p.hexRune(tok, body[1:])
	}
	r, size := utf8.DecodeRuneInString(body)
	if r == utf8.RuneError || size != len(body) {
		return 0, p.fail(diag.SynBadUnicode, tok, "invalid character literal '%s'", text)
	}
	return r, nil
}

func (p *Parser) hexRune(tok token.Token, digits string) (rune, error) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, p.fail(diag.SynBadUnicode, tok, "invalid unicode escape '\\u%s'", digits)
	}
	return rune(v), nil
}

// unescape decodes backslash escapes of a string body.
func (p *Parser) unescape(tok token.Token, body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '0':
			sb.WriteByte(0)
		case 'u':
			if i+5 > len(body) {
				return "", p.fail(diag.SynBadUnicode, tok, "truncated unicode escape")
			}
			r, err := p.hexRune(tok, body[i+1:i+5])
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += 4
		default:
			// \" \\ and unknown escapes keep the escaped character
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}

// parseParam maps % to 1, %N to N and %& to -1.
func (p *Parser) parseParam(tok token.Token, text string) (ast.NodeID, error) {
	if !p.inSugar {
		return ast.NoNodeID, p.fail(diag.SynParamOutsideSugar, tok, "parameter '%s' outside #()", text)
	}
	switch text {
	case "%":
		return p.tree.NewLambdaParam(tok, 1), nil
	case "%&":
		return p.tree.NewLambdaParam(tok, -1), nil
	}
	n, err := strconv.ParseInt(text[1:], 10, 32)
	if err != nil {
		return ast.NoNodeID, p.fail(diag.SynBadParam, tok, "invalid parameter '%s'", text)
	}
	return p.tree.NewLambdaParam(tok, n), nil
}

// processSymbol resolves a plain name against the scope chain. A name with
// a slash becomes a ModuleReference whose segments bypass lexical lookup.
func (p *Parser) processSymbol(tok token.Token, text string) ast.NodeID {
	if segs, ok := splitReference(text); ok {
		ref := p.tree.New(ast.KindModuleReference, tok)
		for _, seg := range segs {
			sym := p.tree.NewSymbol(tok, p.tree.Literals().Get(seg))
			p.tree.SetMode(sym, ast.Var(0))
			p.tree.AddChild(ref, sym)
		}
		return ref
	}
	sym := p.tree.NewSymbol(tok, tok.Literal)
	dist, bound, ok := p.tree.Find(p.scopes.Current(), sym)
	if !ok {
		return sym
	}
	depth, err := safecast.Conv[int32](dist)
	if err != nil {
		panic(fmt.Errorf("parser: scope distance overflow: %w", err))
	}
	p.tree.SetMode(sym, p.tree.Mode(bound).At(ast.Depth(depth)))
	return sym
}

// splitReference splits ns/name. A lone "/" and names with empty segments
// stay plain symbols.
func splitReference(text string) ([]string, bool) {
	if !strings.Contains(text, "/") || text == "/" {
		return nil, false
	}
	segs := strings.Split(text, "/")
	for _, s := range segs {
		if s == "" {
			return nil, false
		}
	}
	return segs, true
}

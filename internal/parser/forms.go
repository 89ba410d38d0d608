package parser

import (
	"risp/internal/ast"
	"risp/internal/diag"
	"risp/internal/token"
)

// parseForm handles everything after '('. Special-form heads route to their
// productions; any other head makes a plain List.
func (p *Parser) parseForm(open token.Token) (ast.NodeID, error) {
	head := p.sc.Peek()
	switch {
	case p.builtins.IsDef(head):
		return p.parseDef(open, p.next())
	case p.builtins.IsDefn(head):
		return p.parseDefn(open, p.next())
	case p.builtins.IsDefMacro(head):
		return p.parseDefMacro(open, p.next())
	case p.builtins.IsLet(head):
		return p.parseLet(open, p.next())
	case p.builtins.IsLambda(head):
		return p.parseLambda(open, p.next())
	case p.builtins.IsIf(head):
		return p.parseIf(open, p.next())
	case p.builtins.IsQuote(head):
		return p.parseQuote(open, p.next())
	}
	list := p.tree.New(ast.KindList, open)
	err := p.parseSeq(open, token.RightParen, func(c ast.NodeID) { p.tree.AddChild(list, c) })
	return list, err
}

// bindName turns a binding-position token into a symbol interned in the
// current scope with mode.
func (p *Parser) bindName(tok token.Token, mode ast.SymbolMode) ast.NodeID {
	sym := p.tree.NewSymbol(tok, tok.Literal)
	p.tree.SetMode(sym, mode)
	p.tree.Intern(p.scopes.Current(), sym)
	return sym
}

// nameToken reads the symbol naming a def-like form.
func (p *Parser) nameToken(code diag.Code, what string) (token.Token, error) {
	tok := p.next()
	if tok.Kind != token.Symbol {
		if tok.Kind == token.Eof {
			return tok, p.fail(diag.SynUnexpectedEOF, tok, "unexpected end of input in %s", what)
		}
		return tok, p.fail(code, tok, "%s name must be a symbol", what)
	}
	return tok, nil
}

// defName reads the name of a def or defn. The name is bound before the
// value is parsed so recursive references resolve.
func (p *Parser) defName(what string) (ast.NodeID, error) {
	tok, err := p.nameToken(diag.SynDefName, what)
	if err != nil {
		return ast.NoNodeID, err
	}
	return p.bindName(tok, ast.Var(ast.Origin)), nil
}

func (p *Parser) parseDef(open, head token.Token) (ast.NodeID, error) {
	def := p.tree.New(ast.KindDef, head)
	name, err := p.defName("def")
	if err != nil {
		return def, err
	}
	p.tree.SetDefName(def, name)
	if p.at(token.RightParen) {
		return def, p.fail(diag.SynDefArity, p.sc.Peek(), "def needs a value")
	}
	expr, err := p.doParseForm()
	if err != nil {
		return def, err
	}
	p.tree.SetDefExpr(def, expr)
	return def, p.closeForm(open, diag.SynDefArity, "def takes a name and one expression")
}

// parseDefn desugars (defn name [params] body...) into a Def of a Lambda.
func (p *Parser) parseDefn(open, head token.Token) (ast.NodeID, error) {
	def := p.tree.New(ast.KindDef, head)
	name, err := p.defName("defn")
	if err != nil {
		return def, err
	}
	p.tree.SetDefName(def, name)
	lam := p.tree.New(ast.KindLambda, head)
	err = p.scopes.Enter(func(scope ast.ScopeID) error {
		p.tree.SetScope(lam, scope)
		return p.parseParamsAndBody(open, lam)
	})
	p.tree.SetDefExpr(def, lam)
	return def, err
}

func (p *Parser) parseDefMacro(open, head token.Token) (ast.NodeID, error) {
	macro := p.tree.New(ast.KindDefMacro, head)
	tok, err := p.nameToken(diag.SynMacroName, "defmacro")
	if err != nil {
		return macro, err
	}
	// macro names are not bindings: later references stay unresolved
	name := p.tree.NewSymbol(tok, tok.Literal)
	p.tree.SetMode(name, ast.Var(ast.Origin))
	p.tree.SetMacroName(macro, name)
	err = p.scopes.Enter(func(scope ast.ScopeID) error {
		p.tree.SetScope(macro, scope)
		return p.parseParamsAndBody(open, macro)
	})
	return macro, err
}

func (p *Parser) parseLambda(open, head token.Token) (ast.NodeID, error) {
	lam := p.tree.New(ast.KindLambda, head)
	err := p.scopes.Enter(func(scope ast.ScopeID) error {
		p.tree.SetScope(lam, scope)
		return p.parseParamsAndBody(open, lam)
	})
	return lam, err
}

func (p *Parser) expectBracket(what string) (token.Token, error) {
	tok := p.next()
	if tok.Kind != token.LeftBracket {
		if tok.Kind == token.Eof {
			return tok, p.fail(diag.SynUnexpectedEOF, tok, "unexpected end of input, expected '[' %s", what)
		}
		return tok, p.fail(diag.SynExpectBracket, tok, "expected '[' %s", what)
	}
	return tok, nil
}

// parseParamsAndBody reads `[params] body... )` into a Lambda or DefMacro
// whose scope is current.
func (p *Parser) parseParamsAndBody(open token.Token, binder ast.NodeID) error {
	bracket, err := p.expectBracket("before parameters")
	if err != nil {
		return err
	}
	var index int32
	for !p.at(token.RightBracket) {
		tok := p.next()
		switch tok.Kind {
		case token.Symbol:
		case token.Eof:
			return p.unclosed(bracket)
		default:
			return p.fail(diag.SynParamNotSymbol, tok, "parameter must be a symbol")
		}
		p.tree.AddLambdaArg(binder, p.bindName(tok, ast.Parameter(index, ast.Origin)))
		index++
	}
	p.next()
	return p.parseSeq(open, token.RightParen, func(c ast.NodeID) { p.tree.AddBody(binder, c) })
}

// parseLet binds sequentially: each name is visible to the values after it.
func (p *Parser) parseLet(open, head token.Token) (ast.NodeID, error) {
	let := p.tree.New(ast.KindLet, head)
	err := p.scopes.Enter(func(scope ast.ScopeID) error {
		p.tree.SetScope(let, scope)
		bracket, err := p.expectBracket("before let bindings")
		if err != nil {
			return err
		}
		for !p.at(token.RightBracket) {
			tok := p.next()
			switch tok.Kind {
			case token.Symbol:
			case token.Eof:
				return p.unclosed(bracket)
			default:
				return p.fail(diag.SynBindingNotSymbol, tok, "let binding target must be a symbol")
			}
			sym := p.bindName(tok, ast.Var(ast.Origin))
			if p.at(token.RightBracket) {
				return p.fail(diag.SynLetArity, tok, "let binding '%s' has no value", p.text(tok))
			}
			value, err := p.doParseForm()
			if err != nil {
				return err
			}
			p.tree.AddLetBinding(let, sym, value)
		}
		p.next()
		return p.parseSeq(open, token.RightParen, func(c ast.NodeID) { p.tree.AddBody(let, c) })
	})
	return let, err
}

// parseIf requires a condition and a then branch; the else branch is
// optional.
func (p *Parser) parseIf(open, head token.Token) (ast.NodeID, error) {
	node := p.tree.New(ast.KindIf, head)
	setters := []func(id, expr ast.NodeID){p.tree.SetCond, p.tree.SetThen, p.tree.SetElse}
	for i, set := range setters {
		if p.at(token.RightParen) {
			if i < 2 {
				return node, p.fail(diag.SynIfArity, p.sc.Peek(), "if needs a condition and a then branch")
			}
			break
		}
		expr, err := p.doParseForm()
		if err != nil {
			return node, err
		}
		set(node, expr)
	}
	return node, p.closeForm(open, diag.SynIfArity, "if takes a condition and at most two branches")
}

func (p *Parser) parseQuote(open, head token.Token) (ast.NodeID, error) {
	node := p.tree.New(ast.KindQuote, head)
	if p.at(token.RightParen) {
		return node, p.fail(diag.SynQuoteArity, p.sc.Peek(), "quote needs a form")
	}
	form, err := p.doParseForm()
	if err != nil {
		return node, err
	}
	p.tree.SetQuoted(node, form)
	return node, p.closeForm(open, diag.SynQuoteArity, "quote takes exactly one form")
}

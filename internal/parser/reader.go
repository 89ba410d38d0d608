package parser

import (
	"strings"

	"risp/internal/ast"
	"risp/internal/token"
)

// parseQuoteMacro expands 'x into a Quote node.
func (p *Parser) parseQuoteMacro(tok token.Token) (ast.NodeID, error) {
	node := p.tree.New(ast.KindQuote, tok)
	form, err := p.doParseForm()
	if err != nil {
		return node, err
	}
	p.tree.SetQuoted(node, form)
	return node, nil
}

// parseReaderMacro expands a prefix into (head form) with an unresolved
// head symbol.
func (p *Parser) parseReaderMacro(tok token.Token, head string) (ast.NodeID, error) {
	list := p.tree.New(ast.KindList, tok)
	p.tree.AddChild(list, p.tree.NewSymbol(tok, p.tree.Literals().Get(head)))
	form, err := p.doParseForm()
	if err != nil {
		return list, err
	}
	p.tree.AddChild(list, form)
	return list, nil
}

// parseTag reads ^form.
func (p *Parser) parseTag(tok token.Token) (ast.NodeID, error) {
	tag := p.tree.New(ast.KindTag, tok)
	form, err := p.doParseForm()
	if err != nil {
		return tag, err
	}
	p.tree.AddChild(tag, form)
	return tag, nil
}

// parseDispatch reads #name form into a Tag holding the name and the form.
func (p *Parser) parseDispatch(tok token.Token) (ast.NodeID, error) {
	tag := p.tree.New(ast.KindTag, tok)
	name := strings.TrimPrefix(p.text(tok), "#")
	p.tree.AddChild(tag, p.tree.NewSymbol(tok, p.tree.Literals().Get(name)))
	form, err := p.doParseForm()
	if err != nil {
		return tag, err
	}
	p.tree.AddChild(tag, form)
	return tag, nil
}

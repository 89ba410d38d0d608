package parser

import (
	"risp/internal/ast"
	"risp/internal/diag"
	"risp/internal/token"
)

func (p *Parser) parseVector(open token.Token) (ast.NodeID, error) {
	vec := p.tree.New(ast.KindVector, open)
	err := p.parseSeq(open, token.RightBracket, func(c ast.NodeID) { p.tree.AddChild(vec, c) })
	return vec, err
}

// parseMap checks the entry count after the closing brace; the error points
// at the opening one.
func (p *Parser) parseMap(open token.Token) (ast.NodeID, error) {
	m := p.tree.New(ast.KindMap, open)
	if err := p.parseSeq(open, token.RightBrace, func(c ast.NodeID) { p.tree.AddChild(m, c) }); err != nil {
		return m, err
	}
	if p.tree.ChildCount(m)%2 != 0 {
		return m, p.fail(diag.SynOddMap, open, "map expected key-value pair.")
	}
	return m, nil
}

func (p *Parser) parseSet(open token.Token) (ast.NodeID, error) {
	set := p.tree.New(ast.KindSet, open)
	err := p.parseSeq(open, token.RightBrace, func(c ast.NodeID) { p.tree.AddChild(set, c) })
	return set, err
}

// parseShortLambda reads #( ... ). Placeholders are only legal inside and
// the sugar does not nest.
func (p *Parser) parseShortLambda(open token.Token) (ast.NodeID, error) {
	if p.inSugar {
		return ast.NoNodeID, p.fail(diag.SynNestedSugar, open, "nested #() is not allowed")
	}
	p.inSugar = true
	defer func() { p.inSugar = false }()

	sugar := p.tree.New(ast.KindLambdaSugar, open)
	err := p.parseSeq(open, token.RightParen, func(c ast.NodeID) { p.tree.AddChild(sugar, c) })
	return sugar, err
}

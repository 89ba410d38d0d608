// Package parser builds an ast.Tree from scanner tokens by recursive descent
// and resolves symbol references against the enclosing lexical scopes in the
// same pass.
package parser

import (
	"context"
	"strconv"

	"risp/internal/ast"
	"risp/internal/diag"
	"risp/internal/lexer"
	"risp/internal/literal"
	"risp/internal/source"
	"risp/internal/token"
	"risp/internal/trace"
)

type Options struct {
	Reporter diag.Reporter // получает лексические диагностики; может быть nil
	Tracer   trace.Tracer  // nil means the tracer carried by ctx
}

// Result is the outcome of parsing one file. Err is a *Error or a context
// error; Root is valid up to the last completed top-level form.
type Result struct {
	Tree *ast.Tree
	Root ast.NodeID
	File *source.File
	Err  error
}

// Parser — состояние парсера на один файл
type Parser struct {
	ctx      context.Context
	sc       *lexer.Scanner
	tree     *ast.Tree
	builtins *token.Builtins
	scopes   *ScopeHandler
	tracer   trace.Tracer
	inSugar  bool // inside #( ... )
	forms    int
}

// New creates a parser that reads sc and builds into tree. The scanner must
// intern into tree.Literals().
func New(ctx context.Context, sc *lexer.Scanner, tree *ast.Tree, opts Options) *Parser {
	tr := opts.Tracer
	if tr == nil {
		tr = trace.FromContext(ctx)
	}
	return &Parser{
		ctx:      ctx,
		sc:       sc,
		tree:     tree,
		builtins: token.NewBuiltins(tree.Literals()),
		tracer:   tr,
	}
}

// ParseFile parses file into tree.
func ParseFile(ctx context.Context, fs *source.FileSet, file source.FileID, tree *ast.Tree, opts Options) Result {
	f := fs.Get(file)
	tr := opts.Tracer
	if tr == nil {
		tr = trace.FromContext(ctx)
	}
	sc := lexer.New(f, tree.Literals(), lexer.Options{Reporter: opts.Reporter, Tracer: tr})
	p := New(ctx, sc, tree, opts)
	root, err := p.Parse()
	return Result{Tree: tree, Root: root, File: f, Err: err}
}

// ParseString parses src as a module named name into a fresh tree. The
// caller owns the tree and must Release it.
func ParseString(ctx context.Context, name, src string, opts Options) Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return ParseFile(ctx, fs, id, ast.NewTree(), opts)
}

// Parse reads top-level forms until Eof and returns the Module node.
func (p *Parser) Parse() (ast.NodeID, error) {
	span := trace.Begin(p.tracer, trace.ScopeModule, "parse", trace.CurrentSpan(p.ctx).SpanID)
	defer func() {
		span.WithExtra("forms", strconv.Itoa(p.forms)).End(p.sc.File().Path)
	}()

	first := p.sc.Peek()
	modTok := token.Token{Kind: token.Root, Literal: literal.None, Info: source.Info{File: first.Info.File, Line: 1, Col: 1}}
	mod := p.tree.New(ast.KindModule, modTok)
	root := p.tree.NewScope(ast.NoScopeID, mod)
	p.tree.SetScope(mod, root)
	p.tree.SetRoot(mod)
	p.scopes = NewScopeHandler(p.tree, root)

	for {
		if err := p.ctx.Err(); err != nil {
			return mod, err
		}
		if p.at(token.Eof) {
			return mod, nil
		}
		form, err := p.topLevel(span.ID())
		if err != nil {
			return mod, err
		}
		p.tree.AddChild(mod, form)
		p.forms++
	}
}

func (p *Parser) topLevel(parent uint64) (ast.NodeID, error) {
	span := trace.Begin(p.tracer, trace.ScopeNode, "form", parent)
	id, err := p.doParseForm()
	if err != nil {
		span.WithExtra("error", err.Error())
	}
	span.End("")
	return id, err
}

func (p *Parser) at(k token.Kind) bool {
	return p.sc.Peek().Kind == k
}

func (p *Parser) next() token.Token {
	return p.sc.Scan()
}

func (p *Parser) text(tok token.Token) string {
	return p.tree.Literals().Find(tok.Literal)
}

// doParseForm parses exactly one form starting at the next token.
func (p *Parser) doParseForm() (ast.NodeID, error) {
	tok := p.next()
	switch tok.Kind {
	case token.LeftParen:
		return p.parseForm(tok)
	case token.ShortLambdaBegin:
		return p.parseShortLambda(tok)
	case token.LeftBracket:
		return p.parseVector(tok)
	case token.LeftBrace:
		return p.parseMap(tok)
	case token.SetBegin:
		return p.parseSet(tok)
	case token.Tag:
		return p.parseTag(tok)
	case token.Dispatch:
		return p.parseDispatch(tok)
	case token.Quote:
		return p.parseQuoteMacro(tok)
	case token.Backtick:
		return p.parseReaderMacro(tok, "quasiquote")
	case token.Unquote:
		return p.parseReaderMacro(tok, "unquote")
	case token.UnquoteSplicing:
		return p.parseReaderMacro(tok, "unquote-splicing")
	case token.Deref:
		return p.parseReaderMacro(tok, "deref")
	case token.Eof:
		return ast.NoNodeID, p.fail(diag.SynUnexpectedEOF, tok, "unexpected end of input")
	case token.Invalid:
		code, msg := lexer.InvalidMessage(p.text(tok))
		return ast.NoNodeID, p.fail(code, tok, "%s", msg)
	case token.RightParen, token.RightBracket, token.RightBrace, token.Colon:
		return ast.NoNodeID, p.fail(diag.SynUnexpectedToken, tok, "unexpected %s", describe(tok.Kind))
	default:
		return p.parseLiteral(tok)
	}
}

// parseSeq parses forms until the closer, handing each to add. Eof before
// the closer is reported at the opening token.
func (p *Parser) parseSeq(open token.Token, closer token.Kind, add func(ast.NodeID)) error {
	for {
		switch p.sc.Peek().Kind {
		case closer:
			p.next()
			return nil
		case token.Eof:
			return p.unclosed(open)
		}
		form, err := p.doParseForm()
		if err != nil {
			return err
		}
		add(form)
	}
}

func (p *Parser) unclosed(open token.Token) error {
	switch open.Kind {
	case token.LeftBracket:
		return p.fail(diag.SynUnclosedBracket, open, "unclosed '['")
	case token.LeftBrace, token.SetBegin:
		return p.fail(diag.SynUnclosedBrace, open, "unclosed '{'")
	default:
		return p.fail(diag.SynUnclosedParen, open, "unclosed '('")
	}
}

// closeForm consumes the ')' that ends a special form. Anything else is
// reported with code.
func (p *Parser) closeForm(open token.Token, code diag.Code, msg string) error {
	tok := p.sc.Peek()
	switch tok.Kind {
	case token.RightParen:
		p.next()
		return nil
	case token.Eof:
		return p.unclosed(open)
	default:
		return p.fail(code, tok, "%s", msg)
	}
}

func describe(k token.Kind) string {
	switch k {
	case token.RightParen:
		return "')'"
	case token.RightBracket:
		return "']'"
	case token.RightBrace:
		return "'}'"
	case token.Colon:
		return "':'"
	default:
		return k.String()
	}
}

// Package lexer turns module text into tokens with a single ordered table of
// regular-expression rules.
package lexer

import (
	"strconv"

	"golang.org/x/text/unicode/norm"

	"risp/internal/diag"
	"risp/internal/literal"
	"risp/internal/source"
	"risp/internal/token"
	"risp/internal/trace"
)

// Scanner produces the significant tokens of one file. Comments, whitespace,
// commas and line feeds are consumed silently.
type Scanner struct {
	file   *source.File
	lits   *literal.Buffer
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	count  int
	done   bool
}

// New creates a scanner over file. Token text is interned into lits.
func New(file *source.File, lits *literal.Buffer, opts Options) *Scanner {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Scanner{
		file:   file,
		lits:   lits,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Literals returns the buffer token text is interned into.
func (s *Scanner) Literals() *literal.Buffer { return s.lits }

// File returns the file being scanned.
func (s *Scanner) File() *source.File { return s.file }

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() token.Token {
	if s.look == nil {
		tok := s.scan()
		s.look = &tok
	}
	return *s.look
}

// Scan returns the next significant token. After the end of input it keeps
// returning Eof.
func (s *Scanner) Scan() token.Token {
	if s.look != nil {
		tok := *s.look
		s.look = nil
		return tok
	}
	return s.scan()
}

// All drains the scanner. The final Eof token is included.
func (s *Scanner) All() []token.Token {
	out := make([]token.Token, 0, len(s.file.Content)/4+1)
	for {
		tok := s.Scan()
		out = append(out, tok)
		if tok.Kind == token.Eof {
			return out
		}
	}
}

// Text returns the interned text of tok, or "" for punctuation.
func (s *Scanner) Text(tok token.Token) string {
	return s.lits.Find(tok.Literal)
}

func (s *Scanner) scan() token.Token {
	for !s.cursor.EOF() {
		at := s.cursor.Info()
		r, n := match(s.cursor.Rest())
		text := s.cursor.Rest()[:n]
		s.cursor.Advance(n)

		switch r.kind {
		case token.Ignore, token.Comment:
			continue
		case token.Invalid:
			s.invalid(at, string(text))
		}
		s.count++
		return s.makeToken(r.kind, at, string(text))
	}
	s.finish()
	return token.Token{Kind: token.Eof, Info: s.cursor.Info(), Literal: literal.None}
}

func (s *Scanner) makeToken(kind token.Kind, at source.Info, text string) token.Token {
	tok := token.Token{Kind: kind, Info: at, Literal: literal.None}
	switch kind {
	case token.Symbol:
		text = norm.NFC.String(text)
		if k, ok := reserved[text]; ok {
			tok.Kind = k
		}
	case token.Keyword, token.MacroKeyword:
		text = norm.NFC.String(text)
	}
	if carriesText(tok.Kind) {
		tok.Literal = s.lits.Get(text)
	}
	return tok
}

// carriesText reports whether tokens of kind k keep their source text.
func carriesText(k token.Kind) bool {
	switch k {
	case token.LeftParen, token.RightParen, token.LeftBracket, token.RightBracket,
		token.LeftBrace, token.RightBrace, token.ShortLambdaBegin, token.SetBegin,
		token.Quote, token.Backtick, token.Unquote, token.UnquoteSplicing,
		token.Deref, token.Tag, token.Colon, token.Eof:
		return false
	default:
		return true
	}
}

func (s *Scanner) invalid(at source.Info, text string) {
	code, msg := InvalidMessage(text)
	s.report(code, at, msg)
}

// InvalidMessage is the diagnostic for input no rule accepted. The parser
// reuses it so both reports of one Invalid token deduplicate.
func InvalidMessage(text string) (diag.Code, string) {
	if text == `"` {
		return diag.LexUnterminatedString, "unterminated string literal"
	}
	return diag.LexInvalidToken, "invalid token " + strconv.Quote(text)
}

func (s *Scanner) finish() {
	if s.done {
		return
	}
	s.done = true
	t := s.opts.Tracer
	if t.Enabled() && t.Level().ShouldEmit(trace.ScopeModule) {
		t.Emit(&trace.Event{
			Kind:   trace.KindPoint,
			Scope:  trace.ScopeModule,
			Name:   "scan.done",
			Detail: s.file.Path,
			Extra:  map[string]string{"tokens": strconv.Itoa(s.count)},
		})
	}
}

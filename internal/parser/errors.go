package parser

import (
	"fmt"

	"risp/internal/diag"
	"risp/internal/token"
)

// Error is a recoverable syntax error. Parsing stops at the first one.
type Error struct {
	Code    diag.Code
	Message string
	Token   token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Token.Info, e.Message)
}

func (p *Parser) fail(code diag.Code, tok token.Token, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Token: tok}
}

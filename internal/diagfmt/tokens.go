package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"risp/internal/literal"
	"risp/internal/source"
	"risp/internal/token"
)

type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func tokenText(tok token.Token, lits *literal.Buffer) string {
	if tok.Literal == literal.None {
		return ""
	}
	return lits.Find(tok.Literal)
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, lits *literal.Buffer, fs *source.FileSet) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if text := tokenText(tok, lits); text != "" {
			fmt.Fprintf(w, " %q", text)
		}
		fmt.Fprintf(w, " at %s\n", fs.Format(tok.Info))

		if tok.Kind == token.Eof {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, lits *literal.Buffer) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tokenText(tok, lits),
			Line: tok.Info.Line,
			Col:  tok.Info.Col,
		})
		if tok.Kind == token.Eof {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

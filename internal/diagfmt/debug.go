package diagfmt

import (
	"io"

	"github.com/eaburns/pretty"

	"risp/internal/ast"
)

func init() {
	pretty.Indent = "  "
}

// FormatASTDebug prints the JSON node structure as a Go value literal,
// which is handy when diffing parser changes by eye.
func FormatASTDebug(w io.Writer, tree *ast.Tree, id ast.NodeID) error {
	out, err := BuildASTOutput(tree, id)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, pretty.String(out)); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

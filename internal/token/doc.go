// Package token defines lexical token kinds for the risp reader.
// Invariants:
//   - Token is a pointer-free value; it can be stored in zone memory.
//   - Token.Literal indexes the literal.Buffer of the parse that produced it,
//     or is literal.None for punctuation.
//   - Special forms (def, let, lambda, ...) are scanned as Symbol; the parser
//     recognises them through Builtins, never through dedicated kinds.
package token

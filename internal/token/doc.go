// Package token defines lexical token kinds and trivia for Pine Script sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly, except for the synthetic NEWLINE, INDENT
//     and DEDENT tokens, which carry empty text and a zero-width span at the
//     position where the block boundary was detected.
//   - Comments are trivia and never appear in the main token stream; the
//     `//@version=N` directive is the only comment-shaped token.
//   - Built-in type names (int, float, color, line, array, ...) and contextual
//     words (method, export, type, to, by, in, as) are identifiers.
//     They are recognized by the parser and the semantic layer, not the lexer.
package token

// Package token defines lexical token kinds and trivia for the Standard ML
// analyzer.
// Invariants:
//   - Token.Text holds the token's exact source text.
//   - Token.Span matches Text exactly (Begin..End).
//   - Reserved words are recognized case-sensitively; there is no
//     case-insensitive keyword matching in Standard ML.
//   - Block comments ( (* ... *) ) are lexed entirely as trivia and never
//     appear in the main token stream; they nest.
//   - Alphabetic identifiers and symbolic identifiers are distinct token
//     kinds (IdentAlpha vs IdentSym) because the grammar treats them
//     differently in infix position.
package token

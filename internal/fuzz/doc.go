// Package fuzztests houses native Go fuzz harnesses that exercise the
// front end of the SML pipeline (source -> lexer -> parser). Their goal is
// to check that every byte string lexes to a token sequence whose
// concatenated text reconstructs the input, and that the lexer and parser
// never hang or panic on arbitrary input. The corpus is seeded from a
// built-in list of snippets plus testdata, with a hang-detection harness
// driven by a context timeout.
package fuzztests

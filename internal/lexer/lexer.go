package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/token"
)

const maxTokenLength = 64 * 1024 // hard limit in bytes to avoid pathological tokens

// Lexer converts a file's content into a stream of Standard ML tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	hold   []token.Trivia
}

// New creates a new Lexer for the provided file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// SetRange restricts the lexer to a specific byte range within the file.
func (lx *Lexer) SetRange(start, end uint32) {
	if lx == nil {
		return
	}
	lx.cursor.Off = start
	if end != 0 {
		lx.cursor.Limit = end
	}
	lx.look = nil
	lx.hold = nil
}

// Next returns the next significant token, with its leading trivia attached.
// Past EOF it always returns an EOF token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case ch == '\'':
		tok = lx.scanTyVar()

	case ch == '#' && lx.nextTwoAre('#', '"'):
		tok = lx.scanCharLit()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '~' && lx.negationStartsNumber():
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == '{' || ch == '}' || ch == ',' || ch == ';':
		tok = lx.scanSinglePunct()

	case ch == '_':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = token.Token{Kind: token.Underscore, Span: lx.cursor.SpanFrom(start), Text: "_"}

	default:
		if r, sz := lx.peekRune(); sz > 0 && r < utf8RuneSelf && token.IsSymbolicChar(r) {
			tok = lx.scanSymbolic()
		} else {
			tok = lx.scanUnknownChar()
		}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.enforceTokenLength(&tok)
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Push injects a token back into the one-element lookahead buffer.
func (lx *Lexer) Push(tok token.Token) {
	lx.look = &tok
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) nextTwoAre(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == a && b1 == b
}

// negationStartsNumber reports whether '~' at the cursor begins a negative
// numeral ("~3", "~0w7" is itself an error caught downstream, "~3.0") as
// opposed to a standalone symbolic operator use of '~'.
func (lx *Lexer) negationStartsNumber() bool {
	_, b1, ok := lx.cursor.Peek2()
	return ok && isDec(b1)
}

func (lx *Lexer) scanUnknownChar() token.Token {
	start := lx.cursor.Mark()
	r, sz := lx.peekRune()
	if sz == 0 {
		sz = 1
	}
	for i := 0; i < sz; i++ {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexInvalidSource, sp, fmt.Sprintf("unexpected character %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) enforceTokenLength(tok *token.Token) {
	if tok == nil {
		return
	}
	length := tok.Span.End - tok.Span.Start
	if length <= maxTokenLength {
		return
	}
	msg := fmt.Sprintf("token length %d exceeds limit %d", length, maxTokenLength)
	lx.errLex(diag.LexTokenTooLong, tok.Span, msg)
	tok.Kind = token.Invalid
	if off, err := safecast.Conv[uint32](len(lx.file.Content)); err == nil {
		lx.cursor.Off = off
	}
}

package lexer

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

// scanSymbolic scans a maximal run of symbolic characters and classifies it
// against the reserved symbolic words/punctuation (":", "|", "=", "=>",
// "->", "#", ":>"); anything else is a symbolic identifier (IdentSym), e.g.
// "+", "@", "::", or a user-defined operator like "%%".
func (lx *Lexer) scanSymbolic() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == ')' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnmatchedCloseComment, sp, "unmatched close comment")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for {
		r, sz := lx.peekRune()
		if sz == 0 || r >= utf8RuneSelf || !token.IsSymbolicChar(r) {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if k, ok := token.LookupReservedSymbolic(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IdentSym, Span: sp, Text: text}
}

// scanSinglePunct scans one of the single-character reserved punctuation
// tokens that are not part of the symbolic character class: parens,
// brackets, braces, comma, semicolon.
func (lx *Lexer) scanSinglePunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	switch ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case ',':
		return emit(token.Comma)
	case ';':
		return emit(token.Semicolon)
	default:
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexInvalidSource, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
}

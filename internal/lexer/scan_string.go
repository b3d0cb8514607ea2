package lexer

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

// scanString scans a "..." string literal, per Definition of Standard ML
// §2.2's escape grammar: \n \t \\ \" \a \b \f \r \v, \^c control escapes,
// \DDD three-decimal-digit escapes, \uXXXX four-hex-digit escapes, and
// gaps (\<whitespace>+\) that are dropped entirely. An unescaped newline or
// EOF before the closing quote is reported as unclosed; any other
// malformed escape is reported as invalid.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	ok := true
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnclosedStringLit, sp, "unclosed string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			text := string(lx.file.Content[sp.Start:sp.End])
			kind := token.StringLit
			if !ok {
				kind = token.Invalid
			}
			return token.Token{Kind: kind, Span: sp, Text: text}
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnclosedStringLit, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case b == '\\':
			if !lx.scanStringEscape() {
				ok = false
			}
		default:
			lx.cursor.Bump()
		}
	}
}

// scanStringEscape consumes one escape sequence (or gap) starting at the
// current '\\'. Returns false if the escape was malformed; the cursor still
// advances past what could be salvaged so scanning can continue.
func (lx *Lexer) scanStringEscape() bool {
	escStart := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'

	if isLexWhitespace(lx.cursor.Peek()) {
		for isLexWhitespace(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if !lx.cursor.Eat('\\') {
			sp := lx.cursor.SpanFrom(escStart)
			lx.errLex(diag.LexInvalidStringLit, sp, "unterminated string gap")
			return false
		}
		return true
	}

	b := lx.cursor.Peek()
	switch b {
	case 'n', 't', '\\', '"', 'a', 'b', 'f', 'r', 'v':
		lx.cursor.Bump()
		return true
	case '^':
		lx.cursor.Bump()
		if lx.cursor.EOF() {
			return false
		}
		c := lx.cursor.Bump()
		if c < 64 || c > 95 { // '@'..'_' per the Definition's control escape range
			sp := lx.cursor.SpanFrom(escStart)
			lx.errLex(diag.LexInvalidStringLit, sp, "invalid control escape")
			return false
		}
		return true
	case 'u':
		lx.cursor.Bump()
		for i := 0; i < 4; i++ {
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(escStart)
				lx.errLex(diag.LexInvalidStringLit, sp, "invalid unicode escape")
				return false
			}
			lx.cursor.Bump()
		}
		return true
	default:
		if isDec(b) {
			for i := 0; i < 3; i++ {
				if !isDec(lx.cursor.Peek()) {
					sp := lx.cursor.SpanFrom(escStart)
					lx.errLex(diag.LexInvalidStringLit, sp, "invalid decimal escape")
					return false
				}
				lx.cursor.Bump()
			}
			return true
		}
		sp := lx.cursor.SpanFrom(escStart)
		lx.errLex(diag.LexInvalidStringLit, sp, "invalid escape sequence")
		if !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return false
	}
}

package lexer

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

// scanCharLit scans a #"c" character literal, starting at the '#'. The body
// uses the same escape grammar as string literals but must decode to
// exactly one character; any other length is LexWrongLenCharLit.
func (lx *Lexer) scanCharLit() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	lx.cursor.Bump() // '"'

	chars := 0
	ok := true
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnclosedStringLit, sp, "unclosed character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			text := string(lx.file.Content[sp.Start:sp.End])
			if !ok {
				return token.Token{Kind: token.Invalid, Span: sp, Text: text}
			}
			if chars != 1 {
				lx.errLex(diag.LexWrongLenCharLit, sp, "character literal must contain exactly one character")
				return token.Token{Kind: token.Invalid, Span: sp, Text: text}
			}
			return token.Token{Kind: token.CharLit, Span: sp, Text: text}
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnclosedStringLit, sp, "newline in character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case b == '\\':
			if !lx.scanStringEscape() {
				ok = false
			}
			chars++
		default:
			lx.cursor.Bump()
			chars++
		}
	}
}

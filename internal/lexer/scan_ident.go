package lexer

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

// scanIdentOrKeyword scans an identifier, which in Standard ML may be a
// *long* identifier: one or more alphanumeric "strid" components joined by
// '.', ending in either an alphanumeric or symbolic component ("List.map",
// "Int.+"). The Definition of Standard ML lexes the whole qualified name as
// a single token with no surrounding whitespace permitted around the dots.
// Reserved-word matching only applies to a bare, undotted component.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	components := 0
	lastSymbolic := false

	for {
		if !lx.scanIdentComponent() {
			break
		}
		components++
		lastSymbolic = false

		if lx.cursor.Peek() != '.' {
			break
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && b1 == '.' {
			break // ".." / "..." is never a long-id continuation
		}
		save := lx.cursor.Mark()
		lx.cursor.Bump() // '.'
		switch {
		case isIdentStartByte(lx.cursor.Peek()):
			continue
		case lx.scanSymbolicComponent():
			components++
			lastSymbolic = true
		default:
			lx.cursor.Reset(save)
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	lex := string(lx.file.Content[sp.Start:sp.End])

	if components == 1 && !lastSymbolic {
		if k, ok := token.LookupKeyword(lex); ok {
			return token.Token{Kind: k, Span: sp, Text: lex}
		}
		if lex == "_" {
			return token.Token{Kind: token.Underscore, Span: sp, Text: lex}
		}
	}
	kind := token.IdentAlpha
	if lastSymbolic {
		kind = token.IdentSym
	}
	return token.Token{Kind: kind, Span: sp, Text: lex}
}

// scanIdentComponent consumes one alphanumeric identifier component
// (letter, then letters/digits/quotes/underscores) without classifying it.
// Reports whether anything was consumed.
func (lx *Lexer) scanIdentComponent() bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return false
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return true
	}
	if !isIdentStartRune(r) {
		return false
	}
	lx.bumpRune()
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}
	return true
}

// scanSymbolicComponent consumes a maximal run of symbolic characters as
// the final component of a long identifier (e.g. the "+" in "Int.+").
func (lx *Lexer) scanSymbolicComponent() bool {
	consumed := false
	for {
		r, sz := lx.peekRune()
		if sz == 0 || r >= utf8RuneSelf || !token.IsSymbolicChar(r) {
			break
		}
		lx.cursor.Bump()
		consumed = true
	}
	return consumed
}

// scanTyVar scans a type variable: one or more leading quotes followed by
// letters, digits, quotes, or underscores. Two leading quotes mark an
// equality type variable ('' a la ''a). A quote run with no following
// identifier-continue character is a lex error.
func (lx *Lexer) scanTyVar() token.Token {
	start := lx.cursor.Mark()
	for lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
	}
	hadBody := false
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		hadBody = true
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !hadBody {
		lx.errLex(diag.LexIncompleteTyVar, sp, "incomplete type variable")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.TyVar, Span: sp, Text: text}
}

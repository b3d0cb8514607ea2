package lexer

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

// scanNumber scans one of SML's four numeral forms (Definition of Standard
// ML §2.2):
//
//	int  ::= ['~'] digit+        | ['~'] '0x' hexdigit+
//	word ::= '0w' digit+         | '0wx' hexdigit+
//	real ::= ['~'] digit+ ('.' digit+)? (('e'|'E') ['~'] digit+)?
//	         — at least one of the fractional part or exponent must be present
//
// Word literals never take a leading '~'; encountering one is reported as
// LexNegativeWordLit but the token is still emitted so parsing can continue.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	negative := false
	if lx.cursor.Peek() == '~' {
		negative = true
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '0' {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && b1 == 'w' {
			lx.cursor.Bump() // '0'
			lx.cursor.Bump() // 'w'
			return lx.finishWordLit(start, negative)
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
			lx.cursor.Bump() // '0'
			lx.cursor.Bump() // 'x'
			return lx.finishHexIntLit(start)
		}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	kind := token.IntLit
	if lx.cursor.Peek() == '.' {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
			lx.cursor.Bump() // '.'
			kind = token.RealLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
		// A '.' not followed by a digit (e.g. "3.f") is not part of the
		// numeral; leave it for the next token.
	}

	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == '~' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// Not actually an exponent (e.g. the identifier immediately
			// following an int, "3e" used as "3" then "e"); back off.
			lx.cursor.Reset(mark)
		} else {
			kind = token.RealLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	_ = negative // sign is part of Text; the elaborator parses the numeral itself
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) finishWordLit(start Mark, negative bool) token.Token {
	isHexWord := false
	if lx.cursor.Peek() == 'x' || lx.cursor.Peek() == 'X' {
		isHexWord = true
		lx.cursor.Bump()
	}
	digitsStart := lx.cursor.Mark()
	if isHexWord {
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if lx.cursor.Mark() == digitsStart {
		lx.errLex(diag.LexIncompleteLit, sp, "incomplete word literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	if negative {
		lx.errLex(diag.LexNegativeWordLit, sp, "word literal may not be negative")
	}
	return token.Token{Kind: token.WordLit, Span: sp, Text: text}
}

func (lx *Lexer) finishHexIntLit(start Mark) token.Token {
	digitsStart := lx.cursor.Mark()
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if lx.cursor.Mark() == digitsStart {
		lx.errLex(diag.LexIncompleteLit, sp, "incomplete hexadecimal literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

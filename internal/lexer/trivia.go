package lexer

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

// collectLeadingTrivia gathers the run of whitespace and block comments
// preceding the next significant token.
//   - Runs of ' ', '\t', '\r', '\f', vertical-tab coalesce into one TriviaSpace.
//   - Runs of '\n' coalesce into one TriviaNewline.
//   - "(* ... *)" becomes one TriviaBlockComment; nesting is tracked by depth.
//     An unterminated comment is reported once at EOF.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == 0x0B {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' && b2 != '\f' && b2 != 0x0B {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '(' && b1 == '*' {
			lx.scanBlockCommentIntoHold()
			continue
		}

		break
	}
}

func (lx *Lexer) scanBlockCommentIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '('
	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '(' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == ')' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.errLex(diag.LexUnmatchedOpenComment, sp, "unmatched open comment")
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaBlockComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

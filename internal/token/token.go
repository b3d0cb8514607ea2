package token

import (
	"github.com/t18b219k/millet/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, char, or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsIdent reports whether the token is an alphanumeric or symbolic identifier.
func (t Token) IsIdent() bool { return t.Kind == IdentAlpha || t.Kind == IdentSym }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsReservedWord() }

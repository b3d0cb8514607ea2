package token

import "github.com/t18b219k/millet/internal/source"

// TriviaKind classifies types of non-code elements.
type TriviaKind uint8

const (
	// TriviaSpace represents horizontal whitespace.
	TriviaSpace TriviaKind = iota
	// TriviaNewline represents a newline character.
	TriviaNewline
	// TriviaBlockComment represents a (possibly nested) (* ... *) comment.
	TriviaBlockComment
)

// Trivia represents a non-code source element: whitespace or a comment.
// Standard ML has no line-comment syntax, only nestable block comments.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

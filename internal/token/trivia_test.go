package token

import "testing"

func TestTriviaKindZeroValue(t *testing.T) {
	var tr Trivia
	if tr.Kind != TriviaSpace {
		t.Errorf("zero-value Trivia.Kind = %v, want TriviaSpace", tr.Kind)
	}
}

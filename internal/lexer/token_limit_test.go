package lexer

import (
	"strings"
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

func TestLexTokenLengthLimit(t *testing.T) {
	huge := `"` + strings.Repeat("a", maxTokenLength+10) + `"`
	toks, bag := lexAll(t, huge)
	if toks[0].Kind != token.Invalid {
		t.Fatalf("Kind = %v, want Invalid for oversized token", toks[0].Kind)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexTokenTooLong {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexTokenTooLong among %+v", bag.Items())
	}
}

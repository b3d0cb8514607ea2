package lexer

import (
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/token"
)

func lexAll(t *testing.T, content string) ([]token.Token, *diag.Bag) {
	t.Helper()
	f := newTestFile(t, content)
	bag := diag.NewBag()
	lx := New(f, Options{Reporter: bag})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks, bag := lexAll(t, "val x = fn y => y")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{token.KwVal, token.IdentAlpha, token.Equals, token.KwFn, token.IdentAlpha, token.FatArrow, token.IdentAlpha, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLexSymbolicIdent(t *testing.T) {
	toks, bag := lexAll(t, "1 + 2 :: nil")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{token.IntLit, token.IdentSym, token.IntLit, token.IdentSym, token.IdentAlpha, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[1].Text != "+" || toks[3].Text != "::" {
		t.Fatalf("symbolic ident text = %q, %q", toks[1].Text, toks[3].Text)
	}
}

func TestLexNumerals(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"123", token.IntLit},
		{"~123", token.IntLit},
		{"0x1F", token.IntLit},
		{"0w5", token.WordLit},
		{"0wx1F", token.WordLit},
		{"1.5", token.RealLit},
		{"1E5", token.RealLit},
		{"1.5E~3", token.RealLit},
	}
	for _, c := range cases {
		toks, bag := lexAll(t, c.src)
		if bag.Len() != 0 {
			t.Fatalf("%q: unexpected diagnostics: %+v", c.src, bag.Items())
		}
		if len(toks) != 2 || toks[0].Kind != c.kind {
			t.Fatalf("%q: kinds = %v, want [%v EOF]", c.src, kinds(toks), c.kind)
		}
		if toks[0].Text != c.src {
			t.Fatalf("%q: Text = %q", c.src, toks[0].Text)
		}
	}
}

func TestLexNegativeWordLitError(t *testing.T) {
	_, bag := lexAll(t, "~0w5")
	if !bag.HasErrors() {
		t.Fatal("expected an error for negative word literal")
	}
	if bag.Items()[0].Code != diag.LexNegativeWordLit {
		t.Fatalf("Code = %v, want LexNegativeWordLit", bag.Items()[0].Code)
	}
}

func TestLexStringLiteral(t *testing.T) {
	toks, bag := lexAll(t, `"hello\nworld"`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.StringLit {
		t.Fatalf("Kind = %v, want StringLit", toks[0].Kind)
	}
}

func TestLexUnclosedString(t *testing.T) {
	_, bag := lexAll(t, `"hello`)
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnclosedStringLit {
		t.Fatalf("expected LexUnclosedStringLit, got %+v", bag.Items())
	}
}

func TestLexCharLiteral(t *testing.T) {
	toks, bag := lexAll(t, `#"a"`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.CharLit {
		t.Fatalf("Kind = %v, want CharLit", toks[0].Kind)
	}
}

func TestLexCharLiteralWrongLength(t *testing.T) {
	_, bag := lexAll(t, `#"ab"`)
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexWrongLenCharLit {
		t.Fatalf("expected LexWrongLenCharLit, got %+v", bag.Items())
	}
}

func TestLexTyVar(t *testing.T) {
	toks, bag := lexAll(t, "'a ''b")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.TyVar || toks[0].Text != "'a" {
		t.Fatalf("tyvar 0 = %+v", toks[0])
	}
	if toks[1].Kind != token.TyVar || toks[1].Text != "''b" {
		t.Fatalf("tyvar 1 = %+v", toks[1])
	}
}

func TestLexNestedBlockComment(t *testing.T) {
	toks, bag := lexAll(t, "(* outer (* inner *) still outer *) val")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.KwVal {
		t.Fatalf("Kind = %v, want KwVal", toks[0].Kind)
	}
	if len(toks[0].Leading) == 0 || toks[0].Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("expected a leading block comment, got %+v", toks[0].Leading)
	}
}

func TestLexUnmatchedOpenComment(t *testing.T) {
	_, bag := lexAll(t, "(* never closed")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnmatchedOpenComment {
		t.Fatalf("expected LexUnmatchedOpenComment, got %+v", bag.Items())
	}
}

func TestLexUnmatchedCloseComment(t *testing.T) {
	_, bag := lexAll(t, "val *) x")
	if !bag.HasErrors() {
		t.Fatal("expected an error for stray close comment")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnmatchedCloseComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnmatchedCloseComment among %+v", bag.Items())
	}
}

func TestLexLongIdentifier(t *testing.T) {
	toks, bag := lexAll(t, "List.map Int.+ A.B.C")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.IdentAlpha, "List.map"},
		{token.IdentSym, "Int.+"},
		{token.IdentAlpha, "A.B.C"},
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Fatalf("tok[%d] = %+v, want Kind=%v Text=%q", i, toks[i], w.kind, w.text)
		}
	}
}

func TestLexUnderscore(t *testing.T) {
	toks, bag := lexAll(t, "val _ = 1")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[1].Kind != token.Underscore {
		t.Fatalf("Kind = %v, want Underscore", toks[1].Kind)
	}
}

func TestLexerPeekAndPush(t *testing.T) {
	f := newTestFile(t, "val x")
	lx := New(f, Options{})
	peeked := lx.Peek()
	if peeked.Kind != token.KwVal {
		t.Fatalf("Peek() Kind = %v, want KwVal", peeked.Kind)
	}
	again := lx.Next()
	if again.Kind != token.KwVal {
		t.Fatalf("Next() after Peek() Kind = %v, want KwVal", again.Kind)
	}
	nextTok := lx.Next()
	lx.Push(nextTok)
	replay := lx.Next()
	if replay.Kind != nextTok.Kind || replay.Text != nextTok.Text {
		t.Fatalf("Push/Next replay = %+v, want %+v", replay, nextTok)
	}
}

func kindsEqual(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

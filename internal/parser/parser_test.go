package parser

import (
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/source"
)

func parseString(t *testing.T, src string) (*source.File, *diag.Bag, *source.Interner) {
	t.Helper()
	fset := source.NewFileSet()
	fid := fset.Add("t.sml", []byte(src), 0)
	f := fset.Get(fid)
	bag := diag.NewBag()
	interner := source.NewInterner()
	lx := lexer.New(f, lexer.Options{Reporter: bag})
	file := ParseFile(lx, fid, Options{Reporter: bag, Interner: interner, MaxErrors: 512})
	if file == nil {
		t.Fatalf("ParseFile returned nil")
	}
	return f, bag, interner
}

func TestParseSimpleValDec(t *testing.T) {
	_, bag, _ := parseString(t, `val x = 1 + 2`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
}

func TestParseFunClauses(t *testing.T) {
	_, bag, _ := parseString(t, `fun fact 0 = 1 | fact n = n * fact (n - 1)`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
}

func TestParseDatatypeAndCase(t *testing.T) {
	_, bag, _ := parseString(t, `
datatype 'a option2 = None | Some of 'a
fun getOrElse (None, d) = d
  | getOrElse (Some x, _) = x
val y = case Some 3 of
          None => 0
        | Some n => n
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
}

func TestParseRecoversFromUnexpectedToken(t *testing.T) {
	_, bag, _ := parseString(t, `val x = ) val y = 1`)
	if !bag.HasErrors() {
		t.Fatalf("expected a syntax error for the stray ')'")
	}
	// The parser must still recover and keep the rest of the file: the
	// error-tolerance contract (internal/parser's doc comment) promises a
	// single tree even with a bad token in the middle.
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnexpectedToken || d.Code == diag.SynExpectedToken {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unexpected/expected-token diagnostic, got: %v", bag.Items())
	}
}

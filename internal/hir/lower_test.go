package hir_test

import (
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/parser"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/testkit"
)

func lowerString(t *testing.T, src string) *diag.Bag {
	t.Helper()
	_, _, bag := lowerFile(t, src)
	return bag
}

// lowerFile lowers src and also hands back the arenas and the source.File
// they were lowered from, so a caller can run testkit.CheckHIRSpans against
// them.
func lowerFile(t *testing.T, src string) (*hir.Arenas, *source.File, *diag.Bag) {
	t.Helper()
	fset := source.NewFileSet()
	fid := fset.Add("t.sml", []byte(src), 0)
	f := fset.Get(fid)
	bag := diag.NewBag()
	interner := source.NewInterner()
	lx := lexer.New(f, lexer.Options{Reporter: bag})
	astFile := parser.ParseFile(lx, fid, parser.Options{Reporter: bag, Interner: interner, MaxErrors: 512})
	arenas, _ := hir.Lower(astFile, interner, bag)
	return arenas, f, bag
}

// TestLowerSpansWithinFile exercises the span-invariant checker
// (internal/testkit) against a representative spread of lowered
// declarations, confirming every HIR node's span stays within its owning
// file's content.
func TestLowerSpansWithinFile(t *testing.T) {
	srcs := []string{
		`val x = 1`,
		`fun fact 0 = 1 | fact n = n * fact (n - 1)`,
		`val r = ref (fn x => x)`,
		`datatype t = A | B of int
local val x = 1 in val y = x end`,
		`exception E of int
val z = (raise E 1) handle E n => n`,
	}
	for _, src := range srcs {
		arenas, f, bag := lowerFile(t, src)
		if bag.HasErrors() {
			t.Fatalf("unexpected lowering errors for %q: %v", src, bag.Items())
		}
		if err := testkit.CheckHIRSpans(arenas, f); err != nil {
			t.Fatalf("span invariant violated for %q: %v", src, err)
		}
	}
}

func TestLowerFunClauseNameMismatch(t *testing.T) {
	bag := lowerString(t, `fun f 0 = 0 | g 1 = 1`)

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LowerFunClauseName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LowerFunClauseName, got: %v", bag.Items())
	}
}

func TestLowerFunClauseArityMismatch(t *testing.T) {
	bag := lowerString(t, `fun f x = x | f x y = x`)

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LowerFunClauseArity {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LowerFunClauseArity, got: %v", bag.Items())
	}
}

func TestLowerFunClauseOK(t *testing.T) {
	bag := lowerString(t, `fun fact 0 = 1 | fact n = n * fact (n - 1)`)
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors for well-formed clauses: %v", bag.Items())
	}
}

func TestLowerSeqSingletonCollapses(t *testing.T) {
	// A one-element declaration sequence lowers to its element alone: the
	// Dec arena holds just the DecVal, with no Seq node around it.
	arenas, _, bag := lowerFile(t, `val x = 1`)
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %v", bag.Items())
	}
	if n := arenas.Decs.Arena.Len(); n != 1 || arenas.Decs.Get(1).Kind != hir.DecVal {
		t.Fatalf("expected the singleton sequence to lower to one DecVal, got %d decs", n)
	}
}

package elab_test

// End-to-end scenario tests: elaborate a whole source text through the
// real lex -> parse -> lower -> elaborate pipeline and assert on the
// resulting diagnostics and/or final basis, rather than poking the
// elaborator's internals directly.

import (
	"strings"
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/elab"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/parser"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// result bundles everything a scenario assertion needs: the collected
// diagnostics and the final basis delta this file's declarations produced.
type result struct {
	bag   *diag.Bag
	delta *env.Env
	st    *elab.St
}

func elaborateSource(t *testing.T, src string) result {
	t.Helper()

	fset := source.NewFileSet()
	fid := fset.Add("scenario.sml", []byte(src), 0)
	f := fset.Get(fid)

	bag := diag.NewBag()
	interner := source.NewInterner()

	lx := lexer.New(f, lexer.Options{Reporter: bag})
	astFile := parser.ParseFile(lx, fid, parser.Options{Reporter: bag, Interner: interner, MaxErrors: 512})
	arenas, top := hir.Lower(astFile, interner, bag)

	syms := sym.NewTable()
	basis := elab.InitialBasis(syms)
	st, delta := elab.Elaborate(syms, arenas, interner, basis, top, bag, nil)

	return result{bag: bag, delta: delta, st: st}
}

func (r result) hasCode(code diag.Code) bool {
	for _, d := range r.bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func (r result) messagesWithCode(code diag.Code) []string {
	var out []string
	for _, d := range r.bag.Items() {
		if d.Code == code {
			out = append(out, d.Message)
		}
	}
	return out
}

func (r result) schemeString(s types.TyScheme) string {
	p := types.NewPrinter(r.st.Syms.Path, r.st.MetaGen, r.st.Subst, r.st.FixedGen)
	return p.SchemeString(s)
}

// S1: identity polymorphism. `fun id x = x` must infer `'a -> 'a` with no
// diagnostics at all.
func TestScenarioS1IdentityPolymorphism(t *testing.T) {
	r := elaborateSource(t, `fun id x = x`)

	if r.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got: %v", r.bag.Items())
	}
	vi, ok := r.delta.ValEnv["id"]
	if !ok {
		t.Fatalf("expected id to be bound")
	}
	if len(vi.Scheme.BoundVars) != 1 {
		t.Fatalf("expected id to be generalized over exactly one type variable, got scheme %s",
			r.schemeString(vi.Scheme))
	}
	got := r.schemeString(vi.Scheme)
	if !strings.Contains(got, "->") {
		t.Fatalf("expected a function scheme, got %q", got)
	}
}

// S2: value restriction. `val r = ref (fn x => x)` must be monomorphic:
// once instantiated at int by a first use, a later use at bool is an error.
func TestScenarioS2ValueRestriction(t *testing.T) {
	r := elaborateSource(t, `
val r = ref (fn x => x)
val _ = !r 3
val _ = !r true
`)
	if !r.hasCode(diag.ElabMismatchedTypes) {
		t.Fatalf("expected a MismatchedTypes diagnostic from the second use, got: %v", r.bag.Items())
	}
}

// S3: ty-name escape. A datatype generated inside a `local` must not
// escape into an exported value's type.
func TestScenarioS3TyNameEscape(t *testing.T) {
	r := elaborateSource(t, `local datatype t = C in val x = C end`)

	if !r.hasCode(diag.ElabTyEscape) {
		t.Fatalf("expected a TyEscape diagnostic, got: %v", r.bag.Items())
	}
}

// S4: exhaustiveness. `fun f 0 = 0` only matches zero; every other int is
// unhandled.
func TestScenarioS4NonExhaustiveMatch(t *testing.T) {
	r := elaborateSource(t, `fun f 0 = 0`)

	if !r.hasCode(diag.ElabNonExhaustiveMatch) {
		t.Fatalf("expected a NonExhaustiveMatch diagnostic, got: %v", r.bag.Items())
	}
}

// S5: overload defaulting. `val x = 1 + 2` must default the numeric
// overload to int (the Definition's canonical default), not real or word.
func TestScenarioS5OverloadDefaulting(t *testing.T) {
	r := elaborateSource(t, `val x = 1 + 2`)

	vi, ok := r.delta.ValEnv["x"]
	if !ok {
		t.Fatalf("expected x to be bound")
	}
	got := r.schemeString(vi.Scheme)
	if got != "int" {
		t.Fatalf("expected x : int, got %q", got)
	}
}

// S6: group-level cycle detection is exercised in internal/group, not here
// (it runs at the driver level, before any single file is elaborated); see
// internal/group/driver_test.go TestLoadCycle.

// S7: string escape. An invalid `\u` escape is reported but does not stop
// the rest of the file from being parsed and elaborated.
func TestScenarioS7StringEscape(t *testing.T) {
	r := elaborateSource(t, `val s = "\u00ZZ"`)

	if !r.hasCode(diag.LexInvalidStringLit) {
		t.Fatalf("expected an InvalidStringLit diagnostic, got: %v", r.bag.Items())
	}
	if _, ok := r.delta.ValEnv["s"]; !ok {
		t.Fatalf("expected elaboration to continue past the bad escape and still bind s")
	}
}

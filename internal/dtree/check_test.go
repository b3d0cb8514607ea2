package dtree

import (
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// newOrdering builds a two-constructor enum datatype (like bool, but a
// user-defined one) registered in a fresh sym.Table, for exhaustiveness
// tests that don't want to depend on elab.InitialBasis's built-in bool.
func newOrdering(t *testing.T) (*sym.Table, types.Ty) {
	t.Helper()
	syms := sym.NewTable()
	s := syms.Start("ordering", 0)
	ty := types.NewCon(s)
	syms.Finish(s, sym.TyInfo{
		Path: "ordering", Arity: 0,
		Cons: []sym.ConInfo{
			{Name: "LT", Scheme: types.Monomorphic(ty)},
			{Name: "EQ", Scheme: types.Monomorphic(ty)},
			{Name: "GT", Scheme: types.Monomorphic(ty)},
		},
	})
	return syms, ty
}

func conPat(name string) Pattern { return Pattern{Kind: Con, ConName: name} }

func TestCheckMatchExhaustiveAllConstructors(t *testing.T) {
	syms, ty := newOrdering(t)
	bag := diag.NewBag()
	rows := []Row{
		{Pat: conPat("LT")},
		{Pat: conPat("EQ")},
		{Pat: conPat("GT")},
	}
	CheckMatch(syms, types.NewSubst(), bag, ty, rows, source.Span{})

	if bag.HasErrors() {
		t.Fatalf("expected no diagnostics for an exhaustive match, got: %v", bag.Items())
	}
}

func TestCheckMatchNonExhaustiveMissingConstructor(t *testing.T) {
	syms, ty := newOrdering(t)
	bag := diag.NewBag()
	rows := []Row{
		{Pat: conPat("LT")},
		{Pat: conPat("EQ")},
	}
	CheckMatch(syms, types.NewSubst(), bag, ty, rows, source.Span{})

	if !bag.HasErrors() {
		t.Fatalf("expected a non-exhaustive match diagnostic")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ElabNonExhaustiveMatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ElabNonExhaustiveMatch, got: %v", bag.Items())
	}
}

func TestCheckMatchWildcardCoversEverything(t *testing.T) {
	syms, ty := newOrdering(t)
	bag := diag.NewBag()
	rows := []Row{
		{Pat: conPat("LT")},
		{Pat: Pattern{Kind: Wild}},
	}
	CheckMatch(syms, types.NewSubst(), bag, ty, rows, source.Span{})

	if bag.HasErrors() {
		t.Fatalf("expected no exhaustiveness error once a wildcard arm is present, got: %v", bag.Items())
	}
}

func TestCheckRedundancyUnreachableAfterWild(t *testing.T) {
	bag := diag.NewBag()
	rows := []Row{
		{Pat: Pattern{Kind: Wild}, Span: source.Span{Start: 0, End: 1}},
		{Pat: conPat("LT"), Span: source.Span{Start: 2, End: 3}},
	}
	CheckRedundancyOnly(bag, rows)

	var unreachable int
	for _, d := range bag.Items() {
		if d.Code == diag.ElabUnreachableArm {
			unreachable++
		}
	}
	if unreachable != 1 {
		t.Fatalf("expected exactly one UnreachableArm diagnostic, got %d (%v)", unreachable, bag.Items())
	}
}

func TestCheckBindingNonExhaustive(t *testing.T) {
	syms, ty := newOrdering(t)
	bag := diag.NewBag()
	CheckBinding(syms, types.NewSubst(), bag, ty, conPat("LT"), source.Span{})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ElabNonExhaustiveBind {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ElabNonExhaustiveBind, got: %v", bag.Items())
	}
}

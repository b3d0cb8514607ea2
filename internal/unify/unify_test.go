package unify

import (
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

func newState() (*State, *diag.Bag) {
	bag := diag.NewBag()
	return New(sym.NewTable(), types.NewSubst(), types.NewMetaGen(), bag), bag
}

func noSpan() source.Span { return source.Span{} }

func TestUnifyMetaSolvesToCon(t *testing.T) {
	s, bag := newState()
	m := s.Gen.New(types.GenAlways)
	intTy := types.NewCon(sym.Int)
	if !s.Unify(types.NewMetaVar(m), intTy, noSpan()) {
		t.Fatalf("expected unify to succeed")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	slot, ok := s.Subst.Lookup(m)
	if !ok || slot.Tag != types.SlotSolved || slot.Ty.Con != sym.Int {
		t.Fatalf("metavar not solved to int: %+v", slot)
	}
}

func TestUnifyOccursCheckFails(t *testing.T) {
	s, bag := newState()
	m := s.Gen.New(types.GenAlways)
	listOfM := types.NewCon(sym.List, types.NewMetaVar(m))
	if s.Unify(types.NewMetaVar(m), listOfM, noSpan()) {
		t.Fatalf("expected occurs-check failure")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ElabCircularity {
		t.Fatalf("expected ElabCircularity diagnostic, got %+v", bag.Items())
	}
}

func TestUnifyConMismatchedSymbol(t *testing.T) {
	s, bag := newState()
	if s.Unify(types.NewCon(sym.Int), types.NewCon(sym.Bool), noSpan()) {
		t.Fatalf("expected mismatch")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ElabMismatchedTypes {
		t.Fatalf("expected ElabMismatchedTypes, got %+v", bag.Items())
	}
}

func TestUnifyConMismatchedArity(t *testing.T) {
	s, bag := newState()
	a := types.NewCon(sym.List, types.NewCon(sym.Int))
	b := types.NewCon(sym.List)
	if s.Unify(a, b, noSpan()) {
		t.Fatalf("expected arity mismatch")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %+v", bag.Items())
	}
}

func TestUnifyFnPairwise(t *testing.T) {
	s, bag := newState()
	f1 := types.NewFn(types.NewCon(sym.Int), types.NewCon(sym.Bool))
	f2 := types.NewFn(types.NewCon(sym.Int), types.NewCon(sym.Bool))
	if !s.Unify(f1, f2, noSpan()) {
		t.Fatalf("expected function types to unify")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestUnifyRecordMissingField(t *testing.T) {
	s, bag := newState()
	r1 := types.NewRecord(map[types.Lab]types.Ty{"a": types.NewCon(sym.Int)})
	r2 := types.NewRecord(map[types.Lab]types.Ty{"b": types.NewCon(sym.Int)})
	if s.Unify(r1, r2, noSpan()) {
		t.Fatalf("expected record mismatch")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ElabMismatchedTypes {
		t.Fatalf("expected ElabMismatchedTypes, got %+v", bag.Items())
	}
}

func TestUnifyNoneAlwaysSucceeds(t *testing.T) {
	s, bag := newState()
	if !s.Unify(types.Bottom, types.NewCon(sym.Bool), noSpan()) {
		t.Fatalf("expected None to unify silently")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestUnifyEqualityKindRejectsReal(t *testing.T) {
	s, bag := newState()
	m := s.Gen.NewKinded(types.GenAlways, &types.TyVarKind{Tag: types.KindEquality})
	if s.Unify(types.NewMetaVar(m), types.NewCon(sym.Real), noSpan()) {
		t.Fatalf("expected equality-kind metavar to reject real")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ElabMismatchedTypes {
		t.Fatalf("expected ElabMismatchedTypes, got %+v", bag.Items())
	}
}

func TestUnifyEqualityKindAcceptsInt(t *testing.T) {
	s, bag := newState()
	m := s.Gen.NewKinded(types.GenAlways, &types.TyVarKind{Tag: types.KindEquality})
	if !s.Unify(types.NewMetaVar(m), types.NewCon(sym.Int), noSpan()) {
		t.Fatalf("expected equality-kind metavar to accept int")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestUnifyOverloadedKindRejectsOutsideClass(t *testing.T) {
	s, bag := newState()
	m := s.Gen.NewKinded(types.GenAlways, &types.TyVarKind{Tag: types.KindOverloaded, Overload: []types.Sym{sym.Int, sym.Word}})
	if s.Unify(types.NewMetaVar(m), types.NewCon(sym.Bool), noSpan()) {
		t.Fatalf("expected overload class rejection")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ElabOverloadUnresolved {
		t.Fatalf("expected ElabOverloadUnresolved, got %+v", bag.Items())
	}
}

func TestAdmitsEqualityFunctionNever(t *testing.T) {
	s, _ := newState()
	fn := types.NewFn(types.NewCon(sym.Int), types.NewCon(sym.Int))
	if s.admitsEquality(fn) {
		t.Fatalf("function types must never admit equality")
	}
}

func TestAdmitsEqualityRecordRequiresAllFields(t *testing.T) {
	s, _ := newState()
	ok := types.NewRecord(map[types.Lab]types.Ty{"a": types.NewCon(sym.Int)})
	bad := types.NewRecord(map[types.Lab]types.Ty{"a": types.NewCon(sym.Real)})
	if !s.admitsEquality(ok) {
		t.Fatalf("record of eq-admitting fields should admit equality")
	}
	if s.admitsEquality(bad) {
		t.Fatalf("record containing a real field must not admit equality")
	}
}

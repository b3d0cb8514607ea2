package elab

import (
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// isValueExpr implements SML's syntactic value restriction: only a Val binding whose right-hand side is a syntactic value may
// have its metavariables generalized; everything else is monomorphic at the
// types its metavariables happened to unify with. Every App node is
// classified as NOT a value, a simplification of the Definition's
// more precise "application of a constructor other than ref is nonexpansive"
// rule: it only costs generalization in a "SOME x" / "Foo x" right-hand
// side, never soundness.
func (st *St) isValueExpr(id hir.ExpID) bool {
	if id == hir.NoExpID {
		return true
	}
	e := st.arenas.Exps.Get(id)
	switch e.Kind {
	case hir.ExpHole, hir.ExpSCon, hir.ExpPath, hir.ExpFn:
		return true
	case hir.ExpRecord:
		d := e.Data.(hir.RecordData)
		for _, row := range d.Rows {
			if !st.isValueExpr(row.Value) {
				return false
			}
		}
		return true
	case hir.ExpTyped:
		d := e.Data.(hir.TypedData)
		return st.isValueExpr(d.Value)
	default:
		// App, Let, Handle, Raise: all expansive.
		return false
	}
}

// generalize closes ty over its free fixed variables (fixed, in tyvarseq
// declaration order) and — when isValue holds — its free metavariables born
// at or after the enclosing let-rank, per the value restriction. fixed
// gives the FixedIDs already allocated for this
// binding's explicit+implicit tyvarseq (hir.ValData.TyVars, in order);
// unused entries still consume a bound slot so a declared-but-unused type
// variable still appears in the printed scheme, matching the Definition.
func (st *St) generalize(fixed []types.FixedID, ty types.Ty, isValue bool) types.TyScheme {
	ty = st.apply(ty)

	fixedSlot := make(map[types.FixedID]int, len(fixed))
	bound := make([]*types.TyVarKind, 0, len(fixed))
	for _, f := range fixed {
		fixedSlot[f] = len(bound)
		bound = append(bound, nil)
	}
	metaSlot := make(map[types.MetaID]int)

	var rewrite func(t types.Ty) types.Ty
	rewrite = func(t types.Ty) types.Ty {
		switch t.Kind {
		case types.FixedVar:
			if i, ok := fixedSlot[types.FixedID(t.Idx)]; ok {
				return types.NewBoundVar(uint32(i))
			}
			return t
		case types.MetaVar:
			m := types.MetaID(t.Idx)
			if !isValue && st.MetaGen.Info(m).Generalizable != types.GenAlways {
				return t
			}
			if !st.metaEscapesRank(m) {
				return t
			}
			i, ok := metaSlot[m]
			if !ok {
				i = len(bound)
				metaSlot[m] = i
				bound = append(bound, st.MetaGen.Info(m).Kind)
			}
			return types.NewBoundVar(uint32(i))
		case types.Record:
			rows := make(map[types.Lab]types.Ty, len(t.Record))
			for lab, row := range t.Record {
				rows[lab] = rewrite(row)
			}
			return types.NewRecord(rows)
		case types.Con:
			args := make([]types.Ty, len(t.ConArgs))
			for i, a := range t.ConArgs {
				args[i] = rewrite(a)
			}
			return types.NewCon(t.Con, args...)
		case types.Fn:
			return types.NewFn(rewrite(*t.FnArg), rewrite(*t.FnRes))
		default:
			return t
		}
	}

	rewritten := rewrite(ty)
	return types.TyScheme{BoundVars: bound, Ty: rewritten}
}

// metaEscapesRank reports whether m was created at or deeper than the
// metavar generator's rank at the time generalize is called. elabDecVal
// calls generalize while its own EnterLet is still in effect, so a
// metavariable born during this binding's right-hand side elaboration has
// at least the current rank, and one still free in an enclosing scope has a
// lower one.
func (st *St) metaEscapesRank(m types.MetaID) bool {
	return st.MetaGen.Info(m).Rank >= st.MetaGen.Rank()
}

// overloadDefaultOrder is the Definition's fixed defaulting order for an
// unresolved overloaded literal class: int first, then real, word, string, char.
var overloadDefaultOrder = []types.Sym{sym.Int, sym.Real, sym.Word, sym.String, sym.Char}

// DefaultOverloads resolves every metavariable left with an unsolved
// KindOverloaded or KindEquality restriction to its default type: an
// overloaded slot defaults to the first member of overloadDefaultOrder
// present in its admissible set; an
// equality-restricted slot defaults to int, a simplification of the
// Definition (which permits any equality type; int is always a sound and
// unsurprising choice for a never-constrained "=" use). Called once per
// top-level declaration group, after generalization and before the next
// declaration is elaborated, matching the Definition's per-binding-group
// defaulting point.
func (st *St) DefaultOverloads() {
	for m := types.MetaID(0); int(m) < st.MetaGen.Len(); m++ {
		if sl, ok := st.Subst.Lookup(m); ok && sl.Tag == types.SlotSolved {
			continue
		}
		kind := types.EffectiveKind(st.MetaGen, st.Subst, m)
		if kind == nil {
			continue
		}
		switch kind.Tag {
		case types.KindOverloaded:
			if def, ok := defaultOverload(kind.Overload); ok {
				st.Subst.Solve(m, types.NewCon(def))
			}
		case types.KindEquality:
			st.Subst.Solve(m, types.NewCon(sym.Int))
		}
	}
}

func defaultOverload(admissible []types.Sym) (types.Sym, bool) {
	for _, candidate := range overloadDefaultOrder {
		for _, a := range admissible {
			if a == candidate {
				return candidate, true
			}
		}
	}
	if len(admissible) > 0 {
		return admissible[0], true
	}
	return 0, false
}

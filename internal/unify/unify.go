// Package unify implements the Damas-Hindley-Milner unification rules laid
// out by the Definition of Standard ML's unification algorithm (§4.5/4.9):
// occurs-checked metavariable solving, kind (equality/overload/record)
// propagation, and the structural cases for records, type constructors,
// and function types, threaded through internal/types' Subst/MetaGen
// mutable state.
package unify

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// State holds the mutable records a run of unification consults and
// updates: the symbol table (for constructor equality admission and
// arity), the substitution being solved, the metavariable generator (for
// each metavar's birth-time TyVarKind), and a diagnostic reporter.
type State struct {
	Syms  *sym.Table
	Subst *types.Subst
	Gen   *types.MetaGen
	Rep   diag.Reporter
}

// New creates a unification State over the given shared records.
func New(syms *sym.Table, subst *types.Subst, gen *types.MetaGen, rep diag.Reporter) *State {
	return &State{Syms: syms, Subst: subst, Gen: gen, Rep: rep}
}

// Unify attempts to unify t1 and t2, reporting ElabCircularity or
// ElabMismatchedTypes against idx on failure. It always returns, even on
// failure, so the caller may continue elaborating with approximate types
//.
func (s *State) Unify(t1, t2 types.Ty, idx source.Span) bool {
	t1 = types.Apply(s.Subst, t1)
	t2 = types.Apply(s.Subst, t2)

	if t1.IsNone() || t2.IsNone() {
		return true
	}
	if m1, ok := t1.Meta(); ok {
		return s.unifyMeta(m1, t2, idx)
	}
	if m2, ok := t2.Meta(); ok {
		return s.unifyMeta(m2, t1, idx)
	}

	switch {
	case t1.Kind == types.BoundVar || t2.Kind == types.BoundVar:
		// Unreachable after instantiation; treat as a no-op
		// rather than crashing on a caller's bug.
		return true
	case t1.Kind == types.FixedVar && t2.Kind == types.FixedVar:
		if t1.Idx == t2.Idx {
			return true
		}
		s.mismatch(idx)
		return false
	case t1.Kind == types.Record && t2.Kind == types.Record:
		return s.unifyRecord(t1, t2, idx)
	case t1.Kind == types.Con && t2.Kind == types.Con:
		return s.unifyCon(t1, t2, idx)
	case t1.Kind == types.Fn && t2.Kind == types.Fn:
		okArg := s.Unify(*t1.FnArg, *t2.FnArg, idx)
		okRes := s.Unify(*t1.FnRes, *t2.FnRes, idx)
		return okArg && okRes
	default:
		s.mismatch(idx)
		return false
	}
}

func (s *State) unifyMeta(m types.MetaID, t types.Ty, idx source.Span) bool {
	if mt, ok := t.Meta(); ok && mt == m {
		return true
	}
	if types.Occurs(s.Subst, m, t) {
		diag.Error(s.Rep, diag.ElabCircularity, "circular type", idx)
		return false
	}

	kind := types.EffectiveKind(s.Gen, s.Subst, m)
	if kind != nil && !s.kindAdmits(kind, t, idx) {
		return false
	}

	s.Subst.Solve(m, t)
	s.propagateKind(kind, t)
	return true
}

// kindAdmits checks t against a metavar's restriction before solving it
//. Record-kind partial rows unify field-wise
// against t's matching fields.
func (s *State) kindAdmits(kind *types.TyVarKind, t types.Ty, idx source.Span) bool {
	if t.Kind == types.MetaVar {
		// The other side is itself unresolved; the restriction is
		// propagated onto it instead of checked now.
		return true
	}
	switch kind.Tag {
	case types.KindNone:
		return true
	case types.KindEquality:
		if !s.admitsEquality(t) {
			diag.Error(s.Rep, diag.ElabMismatchedTypes, "type does not admit equality", idx)
			return false
		}
		return true
	case types.KindOverloaded:
		if t.Kind != types.Con {
			diag.Error(s.Rep, diag.ElabMismatchedTypes, "overloaded literal requires a base type", idx)
			return false
		}
		for _, allowed := range kind.Overload {
			if allowed == t.Con {
				return true
			}
		}
		diag.Error(s.Rep, diag.ElabOverloadUnresolved, "type is not among the overload class's allowed types", idx)
		return false
	case types.KindRecord:
		if t.Kind != types.Record {
			diag.Error(s.Rep, diag.ElabMismatchedTypes, "expected a record type", idx)
			return false
		}
		for lab, want := range kind.Partial {
			got, ok := t.Record[lab]
			if !ok {
				diag.Error(s.Rep, diag.ElabMismatchedTypes, "record is missing field "+lab, idx)
				return false
			}
			if !s.Unify(want, got, idx) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// propagateKind narrows an as-yet-unsolved metavar's restriction when a
// solved metavar's kind applies to it too. This narrows only when the target has no restriction of
// its own yet; combining two independently-restricted kinds precisely is
// not needed at this project's scope.
func (s *State) propagateKind(kind *types.TyVarKind, t types.Ty) {
	if kind == nil {
		return
	}
	m, ok := t.Meta()
	if !ok {
		return
	}
	if types.EffectiveKind(s.Gen, s.Subst, m) == nil {
		s.Subst.NarrowKind(m, kind)
	}
}

func (s *State) unifyCon(t1, t2 types.Ty, idx source.Span) bool {
	if t1.Con != t2.Con || len(t1.ConArgs) != len(t2.ConArgs) {
		s.mismatch(idx)
		return false
	}
	ok := true
	for i := range t1.ConArgs {
		if !s.Unify(t1.ConArgs[i], t2.ConArgs[i], idx) {
			ok = false
		}
	}
	return ok
}

func (s *State) unifyRecord(t1, t2 types.Ty, idx source.Span) bool {
	if len(t1.Record) != len(t2.Record) {
		s.mismatch(idx)
		return false
	}
	ok := true
	for lab, v1 := range t1.Record {
		v2, present := t2.Record[lab]
		if !present {
			s.mismatch(idx)
			return false
		}
		if !s.Unify(v1, v2, idx) {
			ok = false
		}
	}
	return ok
}

func (s *State) mismatch(idx source.Span) {
	diag.Error(s.Rep, diag.ElabMismatchedTypes, "mismatched types", idx)
}

// admitsEquality reports whether t admits equality:
// real and function types never do; a generated or built-in type
// constructor does iff every one of its instantiated argument positions
// does. This is a simplification of the Definition's exact rule (which
// considers a datatype's constructor argument types, not just its formal
// parameters); in return it needs no extra bookkeeping beyond Ty itself,
// and is exact for every built-in type and for parametric datatypes whose
// constructors use their type parameters directly (the overwhelming
// majority of real SML code).
func (s *State) admitsEquality(t types.Ty) bool {
	t = types.Apply(s.Subst, t)
	switch t.Kind {
	case types.None, types.BoundVar, types.MetaVar, types.FixedVar:
		return true
	case types.Fn:
		return false
	case types.Record:
		for _, row := range t.Record {
			if !s.admitsEquality(row) {
				return false
			}
		}
		return true
	case types.Con:
		if t.Con == sym.Real {
			return false
		}
		for _, a := range t.ConArgs {
			if !s.admitsEquality(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

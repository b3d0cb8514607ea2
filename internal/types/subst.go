package types

// SlotTag discriminates what a Subst entry records about a metavariable:
// either it has been fully solved to a concrete type, or it remains
// unsolved but its TyVarKind restriction has been narrowed (
// "Substitution maps MetaVar -> {Solved(Ty) | Kind(TyVarKind)}").
type SlotTag uint8

const (
	SlotUnset SlotTag = iota
	SlotSolved
	SlotKind
)

// Slot is one Subst entry.
type Slot struct {
	Tag  SlotTag
	Ty   Ty         // meaningful iff Tag == SlotSolved
	Kind *TyVarKind // meaningful iff Tag == SlotKind
}

// Subst is the monotonic map from MetaVar to its learned fact. Insertion is
// monotonic: once a metavar is Solved, later insertions for the same id are
// a programming error and
// are rejected by Solve returning false rather than silently overwriting.
type Subst struct {
	slots map[MetaID]Slot
}

// NewSubst creates an empty substitution.
func NewSubst() *Subst { return &Subst{slots: make(map[MetaID]Slot)} }

// Lookup returns the slot recorded for m, if any.
func (s *Subst) Lookup(m MetaID) (Slot, bool) {
	sl, ok := s.slots[m]
	return sl, ok
}

// Solve records that m has been unified with ty. Reports false (a no-op) if
// m was already solved, since the Definition's unification never revisits a
// solved metavariable.
func (s *Subst) Solve(m MetaID, ty Ty) bool {
	if sl, ok := s.slots[m]; ok && sl.Tag == SlotSolved {
		return false
	}
	s.slots[m] = Slot{Tag: SlotSolved, Ty: ty}
	return true
}

// NarrowKind records a refined (but still unsolved) TyVarKind for m.
func (s *Subst) NarrowKind(m MetaID, kind *TyVarKind) {
	if sl, ok := s.slots[m]; ok && sl.Tag == SlotSolved {
		return
	}
	s.slots[m] = Slot{Tag: SlotKind, Kind: kind}
}

// Apply rewrites ty by substituting every solved MetaVar with its solution,
// recursively, until reaching a fixpoint. Apply is idempotent:
// Apply(s, Apply(s, t)) == Apply(s, t).
func Apply(s *Subst, ty Ty) Ty {
	switch ty.Kind {
	case MetaVar:
		sl, ok := s.Lookup(MetaID(ty.Idx))
		if !ok || sl.Tag != SlotSolved {
			return ty
		}
		return Apply(s, sl.Ty)
	case Record:
		if ty.Record == nil {
			return ty
		}
		out := make(map[Lab]Ty, len(ty.Record))
		for lab, row := range ty.Record {
			out[lab] = Apply(s, row)
		}
		return NewRecord(out)
	case Con:
		if len(ty.ConArgs) == 0 {
			return ty
		}
		args := make([]Ty, len(ty.ConArgs))
		for i, a := range ty.ConArgs {
			args[i] = Apply(s, a)
		}
		return NewCon(ty.Con, args...)
	case Fn:
		if ty.FnArg == nil || ty.FnRes == nil {
			return ty
		}
		return NewFn(Apply(s, *ty.FnArg), Apply(s, *ty.FnRes))
	default:
		return ty
	}
}

// EffectiveKind returns the current best-known TyVarKind restriction for an
// unsolved metavariable, consulting both the MetaGen's birth-time
// restriction and any Subst narrowing recorded since.
func EffectiveKind(gen *MetaGen, s *Subst, m MetaID) *TyVarKind {
	if sl, ok := s.Lookup(m); ok && sl.Tag == SlotKind {
		return sl.Kind
	}
	return gen.Info(m).Kind
}

// Occurs reports whether m appears free in ty after applying s — the
// occurs-check Solve must run before binding a metavariable.
func Occurs(s *Subst, m MetaID, ty Ty) bool {
	ty = Apply(s, ty)
	switch ty.Kind {
	case MetaVar:
		return MetaID(ty.Idx) == m
	case Record:
		for _, row := range ty.Record {
			if Occurs(s, m, row) {
				return true
			}
		}
		return false
	case Con:
		for _, a := range ty.ConArgs {
			if Occurs(s, m, a) {
				return true
			}
		}
		return false
	case Fn:
		return Occurs(s, m, *ty.FnArg) || Occurs(s, m, *ty.FnRes)
	default:
		return false
	}
}

// Instantiate substitutes a fresh MetaVar for every BoundVar in
// scheme.Ty, respecting each
// slot's TyVarKind restriction. Returns the
// instantiated type and the fresh MetaIDs allocated, in bound-slot order
// (needed by callers that must relate an instantiation back to its
// originating scheme, e.g. the Info layer's "most general type" hover
// line).
func Instantiate(gen *MetaGen, scheme TyScheme) (Ty, []MetaID) {
	if len(scheme.BoundVars) == 0 {
		return scheme.Ty, nil
	}
	fresh := make([]MetaID, len(scheme.BoundVars))
	for i, kind := range scheme.BoundVars {
		g := GenAlways
		fresh[i] = gen.NewKinded(g, kind)
	}
	return substBound(scheme.Ty, fresh), fresh
}

// substBound replaces every BoundVar(i) in ty with NewMetaVar(fresh[i]).
func substBound(ty Ty, fresh []MetaID) Ty {
	switch ty.Kind {
	case BoundVar:
		if int(ty.Idx) < len(fresh) {
			return NewMetaVar(fresh[ty.Idx])
		}
		return ty
	case Record:
		out := make(map[Lab]Ty, len(ty.Record))
		for lab, row := range ty.Record {
			out[lab] = substBound(row, fresh)
		}
		return NewRecord(out)
	case Con:
		args := make([]Ty, len(ty.ConArgs))
		for i, a := range ty.ConArgs {
			args[i] = substBound(a, fresh)
		}
		return NewCon(ty.Con, args...)
	case Fn:
		return NewFn(substBound(*ty.FnArg, fresh), substBound(*ty.FnRes, fresh))
	default:
		return ty
	}
}

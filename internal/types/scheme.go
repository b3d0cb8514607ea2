package types

// OverloadKind identifies which of the Definition's overloaded numeric
// literal classes a TyVarKind.Overloaded slot ranges over.
type OverloadKind uint8

const (
	OverloadInt OverloadKind = iota
	OverloadWord
	OverloadReal
)

// TyVarKindTag discriminates a TyScheme bound slot's restriction.
type TyVarKindTag uint8

const (
	// KindNone is an unconstrained bound variable.
	KindNone TyVarKindTag = iota
	// KindEquality restricts instantiation to equality-admitting types.
	KindEquality
	// KindOverloaded restricts instantiation to one of a fixed overload
	// set (the Sym values admissible for this literal class).
	KindOverloaded
	// KindRecord restricts instantiation to a Record type extending a
	// partial row (used internally during row unification; not produced
	// by ordinary val/fun elaboration).
	KindRecord
)

// TyVarKind is the (optional) restriction on one TyScheme bound slot.
type TyVarKind struct {
	Tag      TyVarKindTag
	Overload []Sym          // meaningful iff Tag == KindOverloaded
	Partial  map[Lab]Ty     // meaningful iff Tag == KindRecord
}

// TyScheme is a (possibly) generalized polytype: BoundVars[i] gives the
// restriction on the i-th de Bruijn slot Ty's BoundVar(i) nodes refer to.
type TyScheme struct {
	BoundVars []*TyVarKind // nil entry == KindNone, unconstrained
	Ty        Ty
}

// Monomorphic wraps an unquantified type as a trivial scheme (no bound
// vars), the common case for Val bindings that weren't generalized.
func Monomorphic(t Ty) TyScheme { return TyScheme{Ty: t} }

// Arity returns the number of bound type variables in the scheme.
func (s TyScheme) Arity() int { return len(s.BoundVars) }

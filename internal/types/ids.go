// Package types implements the SML type representation, substitution, and
// metavariable generation at the core of Damas-Hindley-Milner inference:
// Ty, TyScheme, MetaVar generation with rank tracking for
// generalization, and the monotonic Subst map, with a dense arena and
// interning discipline and an SML-specific variant set
// (None/BoundVar/MetaVar/FixedVar/Record/Con/Fn).
package types

// MetaID identifies a unification variable. Dense and 0-based.
type MetaID uint32

// FixedID identifies a user-named rigid type variable fixed by an enclosing
// val/fun binder. Dense and 0-based.
type FixedID uint32

// Sym identifies a generated type constructor or a built-in one, shared
// with package sym. Defined here (rather than imported) to avoid a cycle
// between types and sym; sym.Sym is this exact underlying type.
type Sym uint32

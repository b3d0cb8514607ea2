package types

import "strconv"

// Lab is an interned record/tuple field label. Tuple fields use the
// numeric labels "1", "2", ... per the Definition of Standard ML; this
// package stores labels as plain strings rather than interning through
// source.Interner, since the label alphabet (numeric tuple labels plus a
// modest set of user field names) is small enough that deduplication cost
// doesn't matter at this project's scale.
type Lab = string

// Kind tags the variant held in a Ty's fields. Ty is a tagged union
// (DESIGN.md "Tagged variants over subclassing") rather than an interface
// hierarchy, since every later stage (unify, generalize, the pretty
// printer) needs to exhaustively case over it.
type Kind uint8

const (
	// None is the error/absent type: the noncommittal "bottom" 
	// assigns to syntactically-missing subterms. Unification against None
	// always succeeds silently.
	None Kind = iota
	// BoundVar is a de Bruijn-style index into a TyScheme's binder list;
	// valid only inside a TyScheme.Ty, never inside a Cx-resident type.
	BoundVar
	// MetaVar is an unfixed unification variable.
	MetaVar
	// FixedVar is a user-named type variable rigidly bound by an
	// enclosing val/fun tyvarseq.
	FixedVar
	// Record is a label-keyed row type (also used for tuples via numeric
	// labels "1".."n").
	Record
	// Con is a type constructor application, Sym-identified.
	Con
	// Fn is a function type "arg -> res".
	Fn
)

// Ty is an SML type. Exactly one of the fields below is meaningful,
// selected by Kind: one Go struct with a Kind-gated union, the same
// convention used throughout internal/ast and internal/hir, rather than a
// Go interface with N implementations, since the internal representation
// never needs dynamic dispatch.
type Ty struct {
	Kind Kind

	// BoundVar / MetaVar / FixedVar index.
	Idx uint32

	// Record holds the row map; nil for every other Kind. Keys are
	// compared by Go map equality without needing an ordered container,
	// since Go map iteration order is never relied on for equality
	// (RecordEqualRows sorts keys before comparing).
	Record map[Lab]Ty

	// Con holds the constructor's Sym and its argument types ([]Ty may be
	// empty for a nullary constructor like "int").
	Con     Sym
	ConArgs []Ty

	// Fn holds the argument and result type, the latter via heap
	// indirection since Ty is a value type used across maps and slices.
	FnArg *Ty
	FnRes *Ty
}

// Bottom is the canonical None-kind type, the noncommittal type for a
// syntactically-absent subterm.
var Bottom = Ty{Kind: None}

// NewBoundVar builds a BoundVar reference, valid only nested under a
// TyScheme.
func NewBoundVar(i uint32) Ty { return Ty{Kind: BoundVar, Idx: i} }

// NewMetaVar builds a MetaVar reference.
func NewMetaVar(m MetaID) Ty { return Ty{Kind: MetaVar, Idx: uint32(m)} }

// NewFixedVar builds a FixedVar reference.
func NewFixedVar(f FixedID) Ty { return Ty{Kind: FixedVar, Idx: uint32(f)} }

// NewRecord builds a Record type from a label->type map. The caller's map
// is retained, not copied; callers should treat it as owned by the Ty
// afterward.
func NewRecord(rows map[Lab]Ty) Ty { return Ty{Kind: Record, Record: rows} }

// NewCon builds a Con(args, sym) type. Arity is not validated here; callers
// (the elaborator, consulting sym.Table) are responsible for 's
// "Con(args, sym).args.len() == arity(sym)" invariant.
func NewCon(s Sym, args ...Ty) Ty {
	return Ty{Kind: Con, Con: s, ConArgs: args}
}

// NewFn builds an arg -> res function type.
func NewFn(arg, res Ty) Ty {
	a, r := arg, res
	return Ty{Kind: Fn, FnArg: &a, FnRes: &r}
}

// Meta reports the MetaID this type refers to along with whether Kind ==
// MetaVar.
func (t Ty) Meta() (MetaID, bool) {
	if t.Kind != MetaVar {
		return 0, false
	}
	return MetaID(t.Idx), true
}

// IsNone reports whether t is the absent/error type.
func (t Ty) IsNone() bool { return t.Kind == None }

// TupleLabel returns the 1-based numeric tuple label for position i (the
// Definition represents an n-tuple as a record with labels "1".."n").
func TupleLabel(i int) Lab {
	return strconv.Itoa(i)
}

// NewTuple builds a Record type whose labels are the numeric tuple labels
// "1".."n" for elems in order.
func NewTuple(elems ...Ty) Ty {
	rows := make(map[Lab]Ty, len(elems))
	for i, e := range elems {
		rows[TupleLabel(i+1)] = e
	}
	return NewRecord(rows)
}

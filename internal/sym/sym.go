// Package sym implements the symbol table for generated type constructors
// and exception declarations, including the built-in symbols at fixed
// indices and the marker/generated_after mechanism that drives ty-name
// escape detection. It is a dense arena, in the same shape as a scoped
// symbol table for any compiler front end, specialized to SML's two
// generated-symbol classes (type constructors, exceptions).
package sym

import (
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/types"
)

// Sym identifies a generated type constructor (or a built-in one at a
// fixed index). Aliased to types.Sym so internal/types.Con can hold one
// without importing this package (avoiding an import cycle: TyInfo below
// needs types.TyScheme).
type Sym = types.Sym

// Built-in symbols at fixed indices, allocated first by NewTable so every
// analysis run shares the same Sym values for them.
const (
	Exn Sym = iota
	Int
	Word
	Real
	Char
	String
	Bool
	List
	Ref
	numBuiltins
)

// ConInfo is one value-environment entry: the datatype/exception value
// environment this package contributes. IDStatus lives in
// package env (the higher-level Env/Bs layer) to avoid a cycle; here a
// constructor's ValEnv is expressed structurally by the caller (package
// env) using the Cons list below, not embedded in TyInfo.
type ConInfo struct {
	Name   string
	Scheme types.TyScheme
	Span   source.Span
}

// TyInfo is the symbol table's payload for one generated (or built-in) type
// constructor: its arity, constructor environment, and optional def-site.
type TyInfo struct {
	Path   string
	Arity  int
	Scheme types.TyScheme // the tycon's own defining scheme, if any (type abbreviations)
	Cons   []ConInfo      // datatype constructors, in declaration order; empty for non-datatypes
	Def    *source.Span
}

// ExnInfo is the symbol table's payload for one exception declaration,
// kept in a separate store from ordinary type constructors.
type ExnInfo struct {
	Path string
	Arg  *types.Ty // nil for a constant exception
	Def  *source.Span
}

// Marker is a watermark into the Sym store.
type Marker uint32

// Table is the analysis run's symbol table: an append-only store of
// generated type constructors plus a separate append-only store of
// exception declarations.
type Table struct {
	tys  []TyInfo
	exns []ExnInfo
}

// NewTable creates a Table preloaded with the Definition's built-in symbols
// at the fixed indices above.
func NewTable() *Table {
	t := &Table{}
	prebuilt := []struct {
		path  string
		arity int
	}{
		{"exn", 0},
		{"int", 0},
		{"word", 0},
		{"real", 0},
		{"char", 0},
		{"string", 0},
		{"bool", 0},
		{"list", 1},
		{"ref", 1},
	}
	for _, p := range prebuilt {
		t.tys = append(t.tys, TyInfo{Path: p.path, Arity: p.arity})
	}
	return t
}

// Start allocates a placeholder TyInfo for a datatype being elaborated,
// returning its Sym so recursive constructor argument types can refer to it
// before Finish supplies the completed TyInfo. Finish MUST be
// called with the same Sym before the symbol table is read by any later
// stage; the elaborator enforces this by always pairing Start/Finish within
// one Datatype dec's elaboration.
func (t *Table) Start(path string, arity int) Sym {
	id := Sym(len(t.tys))
	t.tys = append(t.tys, TyInfo{Path: path, Arity: arity})
	return id
}

// Finish supplies the completed TyInfo for a Sym returned by Start.
func (t *Table) Finish(s Sym, info TyInfo) {
	t.tys[int(s)] = info
}

// NewException appends a fresh exception symbol and returns an identifier
// for it usable as an IDStatus payload (package env wraps this with an
// ExnID type alias).
func (t *Table) NewException(info ExnInfo) uint32 {
	id := uint32(len(t.exns))
	t.exns = append(t.exns, info)
	return id
}

// TyInfo returns the stored payload for s.
func (t *Table) TyInfo(s Sym) TyInfo { return t.tys[int(s)] }

// SetTyInfo overwrites s's payload in place (used to add constructors once
// all of a mutually-recursive datatype group's Syms exist).
func (t *Table) SetTyInfo(s Sym, info TyInfo) { t.tys[int(s)] = info }

// ExnInfo returns the stored payload for exception id.
func (t *Table) ExnInfo(id uint32) ExnInfo { return t.exns[int(id)] }

// Path resolves a Sym to its display name, satisfying types.SymName.
func (t *Table) Path(s Sym) string {
	if int(s) >= len(t.tys) {
		return "?"
	}
	return t.tys[int(s)].Path
}

// Mark returns the current store length.
func (t *Table) Mark() Marker { return Marker(len(t.tys)) }

// GeneratedAfter reports whether s was inserted after marker was taken,
// the predicate the ty-name escape check runs over every Con in an
// exported type.
func (t *Table) GeneratedAfter(s Sym, marker Marker) bool {
	return uint32(s) >= uint32(marker)
}

// IsBuiltin reports whether s is one of the fixed-index built-in symbols.
func (t *Table) IsBuiltin(s Sym) bool { return uint32(s) < uint32(numBuiltins) }

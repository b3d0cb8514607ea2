// Package env implements the nested environment and basis ("Env", "Bs")
// plus the Info side-table used for hover/definitions/symbols/completions.
// The lexical scope chain is generalized from a single flat value
// namespace to SML's three-namespace (structure/type/value) environment
// triple, since this core's module system is core-language only (DESIGN.md
// Open Question decision #4): the str_env namespace exists in the data
// model for fidelity to the environment triple but is always empty (no
// structure/signature/functor elaboration is implemented).
package env

import (
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// IDStatusTag discriminates a value binding's identifier status.
type IDStatusTag uint8

const (
	// IDVal is an ordinary value binding (a variable).
	IDVal IDStatusTag = iota
	// IDCon is a value-constructor reference.
	IDCon
	// IDExn is an exception-constructor reference.
	IDExn
)

// IDStatus is a value binding's identifier status.
type IDStatus struct {
	Tag IDStatusTag
	Exn uint32 // meaningful iff Tag == IDExn: index into sym.Table's exception store
}

// ValInfo is one value-environment entry.
type ValInfo struct {
	Scheme   types.TyScheme
	Status   IDStatus
	Def      *source.Span
}

// TyEnvEntry is one type-environment entry: a type constructor's own
// TyInfo. Abbrev is non-nil for a "type" declaration ("Ty(TyBind*)"): a
// transparent type abbreviation is expanded inline at every use rather than
// allocating a generative Sym, since an abbreviation is not a new type and
// must not participate in the ty-name escape check.
type TyEnvEntry struct {
	Sym    sym.Sym
	Arity  int
	Abbrev *types.TyScheme
}

// Env is the nested {str_env, ty_env, val_env} environment triple. Maps
// are plain Go maps rather than a persistent/structurally-shared
// structure: Clone performs a shallow-then-copy-on-write-free deep copy of
// each map, which is cheap at the scope sizes this core elaborates.
type Env struct {
	StrEnv map[string]*Env
	TyEnv  map[string]TyEnvEntry
	ValEnv map[string]ValInfo
}

// New creates an empty Env.
func New() *Env {
	return &Env{
		StrEnv: make(map[string]*Env),
		TyEnv:  make(map[string]TyEnvEntry),
		ValEnv: make(map[string]ValInfo),
	}
}

// Clone returns a deep copy of e so a caller may extend it without
// mutating the original.
func (e *Env) Clone() *Env {
	if e == nil {
		return New()
	}
	out := New()
	for k, v := range e.StrEnv {
		out.StrEnv[k] = v.Clone()
	}
	for k, v := range e.TyEnv {
		out.TyEnv[k] = v
	}
	for k, v := range e.ValEnv {
		out.ValEnv[k] = v
	}
	return out
}

// Extend merges other's entries into e in place, with other's entries
// taking priority on key collision.
func (e *Env) Extend(other *Env) {
	if other == nil {
		return
	}
	for k, v := range other.StrEnv {
		e.StrEnv[k] = v
	}
	for k, v := range other.TyEnv {
		e.TyEnv[k] = v
	}
	for k, v := range other.ValEnv {
		e.ValEnv[k] = v
	}
}

// LookupVal resolves a (possibly structure-qualified) long identifier by
// walking Qual through StrEnv before consulting ValEnv.
func (e *Env) LookupVal(qual []string, name string) (ValInfo, bool) {
	cur := e
	for _, q := range qual {
		next, ok := cur.StrEnv[q]
		if !ok {
			return ValInfo{}, false
		}
		cur = next
	}
	vi, ok := cur.ValEnv[name]
	return vi, ok
}

// LookupTy resolves a (possibly structure-qualified) long type identifier.
func (e *Env) LookupTy(qual []string, name string) (TyEnvEntry, bool) {
	cur := e
	for _, q := range qual {
		next, ok := cur.StrEnv[q]
		if !ok {
			return TyEnvEntry{}, false
		}
		cur = next
	}
	te, ok := cur.TyEnv[name]
	return te, ok
}

// Cx is the elaborator's per-scope context:
// the current Env plus the map of explicit type-variable names fixed by
// an enclosing val/fun tyvarseq.
type Cx struct {
	Env   *Env
	Fixed map[string]types.FixedID
}

// NewCx creates a Cx over env with an empty fixed-variable map.
func NewCx(e *Env) Cx {
	return Cx{Env: e, Fixed: make(map[string]types.FixedID)}
}

// Clone returns a Cx a callee may extend without mutating the caller's
// context.
func (c Cx) Clone() Cx {
	fixed := make(map[string]types.FixedID, len(c.Fixed))
	for k, v := range c.Fixed {
		fixed[k] = v
	}
	return Cx{Env: c.Env.Clone(), Fixed: fixed}
}

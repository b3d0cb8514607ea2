// Package elab implements the elaborator / type-checker: Damas-Hindley-Milner
// inference over internal/hir's arenas, threading a mutable St through
// declaration, expression, and pattern rules. It follows the Definition of
// Standard ML directly, built on internal/unify, internal/types,
// internal/sym, and internal/env exactly as those packages expose them.
package elab

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/trace"
	"github.com/t18b219k/millet/internal/types"
	"github.com/t18b219k/millet/internal/unify"
)

// St is the elaborator's mutable state for one analysis run: the symbol table, substitution, metavariable and
// fixed-variable generators, the Info store the query layer later reads
// from, and the diagnostic reporter every rule below reports through.
type St struct {
	Syms     *sym.Table
	Subst    *types.Subst
	MetaGen  *types.MetaGen
	FixedGen *types.FixedVarGen
	Info     *env.Info
	Rep      diag.Reporter
	Tracer   trace.Tracer

	arenas   *hir.Arenas
	interner *source.Interner
	unify    *unify.State
}

// NewState creates an elaborator St over a freshly lowered file's arenas,
// the interner it was lowered with (needed to turn hir.Path segments back
// into text for environment lookups), and a shared symbol table.
func NewState(syms *sym.Table, arenas *hir.Arenas, interner *source.Interner, rep diag.Reporter, tracer trace.Tracer) *St {
	st := &St{
		Syms:     syms,
		Subst:    types.NewSubst(),
		MetaGen:  types.NewMetaGen(),
		FixedGen: types.NewFixedVarGen(),
		Info:     env.NewInfo(),
		Rep:      rep,
		Tracer:   tracer,
		arenas:   arenas,
		interner: interner,
	}
	st.unify = unify.New(syms, st.Subst, st.MetaGen, rep)
	return st
}

// Unify exposes internal/unify's occurs-checked solver to every rule file in
// this package.
func (st *St) Unify(t1, t2 types.Ty, at source.Span) bool {
	return st.unify.Unify(t1, t2, at)
}

func (st *St) apply(t types.Ty) types.Ty { return types.Apply(st.Subst, t) }

func (st *St) report(code diag.Code, message string, at source.Span) {
	diag.Error(st.Rep, code, message, at)
}

func (st *St) span(scope trace.Scope, name string) func() {
	if st.Tracer == nil {
		return func() {}
	}
	sp := trace.Begin(st.Tracer, scope, name, 0)
	return func() { sp.End("") }
}

// pathName resolves a hir.Path back to its qualifier strings and base name,
// the form internal/env's lookup helpers expect.
func (st *St) pathName(p hir.Path) ([]string, string) {
	qual := make([]string, len(p.Qual))
	for i, q := range p.Qual {
		qual[i] = st.interner.String(q)
	}
	return qual, st.interner.String(p.Name)
}

func (st *St) name(n source.NameID) string { return st.interner.String(n) }

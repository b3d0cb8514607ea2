package elab

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/trace"
)

// Elaborate runs the static semantics over one file's top-level declaration.
// syms is shared across every file in a group so a later file's datatypes
// can be generated after, and refer back to, an earlier file's. basis is
// the environment this file's top-level Dec is elaborated against — either
// InitialBasis for a group's first file or the accumulated Env an earlier
// file in the group produced — and the returned Env is this file's own
// delta, for the caller to fold into the next file's basis.
func Elaborate(syms *sym.Table, arenas *hir.Arenas, interner *source.Interner, basis *env.Env, top hir.DecID, rep diag.Reporter, tracer trace.Tracer) (*St, *env.Env) {
	st := NewState(syms, arenas, interner, rep, tracer)
	end := st.span(trace.ScopeModule, "elaborate")
	defer end()

	cx := env.NewCx(basis)
	d := st.arenas.Decs.Get(top)
	if d == nil || d.Kind != hir.DecSeq {
		delta := st.ElabDec(cx, top)
		st.DefaultOverloads()
		return st, delta
	}
	// Overloads are defaulted after each top-level declaration, so a later
	// declaration sees the defaulted type.
	delta := env.New()
	cur := cx.Clone()
	for _, sub := range d.Data.(hir.SeqData).Decs {
		subDelta := st.ElabDec(cur, sub)
		cur.Env.Extend(subDelta)
		delta.Extend(subDelta)
		st.RecordDecSpan(sub)
		st.DefaultOverloads()
	}
	return st, delta
}

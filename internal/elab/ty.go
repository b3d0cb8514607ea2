package elab

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/types"
)

// ElabTy converts a HIR type expression into an internal/types.Ty. The
// same rules apply uniformly to type expressions encountered in
// annotations, datatype constructor arguments, and "type" abbreviations.
func (st *St) ElabTy(cx env.Cx, id hir.TyID) types.Ty {
	if id == hir.NoTyID {
		return types.Bottom
	}
	t := st.arenas.Tys.Get(id)
	switch t.Kind {
	case hir.TyHole:
		return types.Bottom
	case hir.TyVar:
		d := t.Data.(hir.TyVarData)
		name := st.name(d.Name)
		if fv, ok := cx.Fixed[name]; ok {
			return types.NewFixedVar(fv)
		}
		// An explicit type variable that implicit-scoping (hir.tyvarscope)
		// did not attach to this binder's tyvarseq — tolerate it by fixing
		// one on the fly rather than failing the whole annotation.
		fv := st.FixedGen.New(name)
		cx.Fixed[name] = fv
		return types.NewFixedVar(fv)
	case hir.TyRecord:
		d := t.Data.(hir.TyRecordData)
		rows := make(map[types.Lab]types.Ty, len(d.Rows))
		for _, r := range d.Rows {
			rows[st.name(r.Label)] = st.ElabTy(cx, r.Value)
		}
		return types.NewRecord(rows)
	case hir.TyCon:
		d := t.Data.(hir.TyConData)
		args := make([]types.Ty, len(d.Args))
		for i, a := range d.Args {
			args[i] = st.ElabTy(cx, a)
		}
		qual, name := st.pathName(d.Path)
		entry, ok := cx.Env.LookupTy(qual, name)
		if !ok {
			st.report(diag.ElabUndefined, "undefined type constructor "+name, t.Span)
			return types.Bottom
		}
		if entry.Abbrev != nil {
			if len(args) != len(entry.Abbrev.BoundVars) {
				st.report(diag.ElabArityMismatch, "type abbreviation arity mismatch", t.Span)
				return types.Bottom
			}
			return instantiateAbbrev(entry.Abbrev.Ty, args)
		}
		if len(args) != entry.Arity {
			st.report(diag.ElabArityMismatch, "type constructor arity mismatch", t.Span)
			return types.Bottom
		}
		return types.NewCon(entry.Sym, args...)
	case hir.TyFn:
		d := t.Data.(hir.TyFnData)
		return types.NewFn(st.ElabTy(cx, d.Arg), st.ElabTy(cx, d.Res))
	default:
		return types.Bottom
	}
}

// instantiateAbbrev substitutes args (already elaborated, concrete types) for
// the BoundVar slots of a type abbreviation's defining type — a literal
// textual expansion, unlike types.Instantiate's fresh-metavar substitution,
// since an abbreviation is transparent rather than a polymorphic binding.
func instantiateAbbrev(ty types.Ty, args []types.Ty) types.Ty {
	switch ty.Kind {
	case types.BoundVar:
		if int(ty.Idx) < len(args) {
			return args[ty.Idx]
		}
		return ty
	case types.Record:
		out := make(map[types.Lab]types.Ty, len(ty.Record))
		for lab, row := range ty.Record {
			out[lab] = instantiateAbbrev(row, args)
		}
		return types.NewRecord(out)
	case types.Con:
		out := make([]types.Ty, len(ty.ConArgs))
		for i, a := range ty.ConArgs {
			out[i] = instantiateAbbrev(a, args)
		}
		return types.NewCon(ty.Con, out...)
	case types.Fn:
		return types.NewFn(instantiateAbbrev(*ty.FnArg, args), instantiateAbbrev(*ty.FnRes, args))
	default:
		return ty
	}
}


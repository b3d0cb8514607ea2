package elab

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/dtree"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/trace"
	"github.com/t18b219k/millet/internal/types"
)

// ElabExp elaborates an expression under cx, returning its type. Every
// rule records the resulting type into st.Info so the Query layer can
// answer hover requests over this node later.
func (st *St) ElabExp(cx env.Cx, id hir.ExpID) types.Ty {
	if id == hir.NoExpID {
		return types.Bottom
	}
	e := st.arenas.Exps.Get(id)
	var ty types.Ty
	switch e.Kind {
	case hir.ExpHole:
		ty = types.Bottom

	case hir.ExpSCon:
		d := e.Data.(hir.SConData)
		ty = st.sconTy(d.Kind)

	case hir.ExpPath:
		return st.elabExpPath(cx, id, e)

	case hir.ExpRecord:
		d := e.Data.(hir.RecordData)
		rows := make(map[types.Lab]types.Ty, len(d.Rows))
		for _, row := range d.Rows {
			rows[st.name(row.Label)] = st.ElabExp(cx, row.Value)
		}
		ty = types.NewRecord(rows)

	case hir.ExpLet:
		ty = st.elabExpLet(cx, e)

	case hir.ExpApp:
		ty = st.elabExpApp(cx, e)

	case hir.ExpHandle:
		ty = st.elabExpHandle(cx, e)

	case hir.ExpRaise:
		d := e.Data.(hir.RaiseData)
		excTy := st.ElabExp(cx, d.Value)
		st.Unify(excTy, types.NewCon(sym.Exn), e.Span)
		ty = types.NewMetaVar(st.MetaGen.New(types.GenAlways))

	case hir.ExpFn:
		ty = st.elabExpFn(cx, e)

	case hir.ExpTyped:
		d := e.Data.(hir.TypedData)
		inner := st.ElabExp(cx, d.Value)
		annot := st.ElabTy(cx, d.Ty)
		st.Unify(inner, annot, e.Span)
		ty = annot

	default:
		ty = types.Bottom
	}
	st.recordExp(id, ty)
	return ty
}

func (st *St) elabExpPath(cx env.Cx, id hir.ExpID, e *hir.Exp) types.Ty {
	d := e.Data.(hir.PathData)
	qual, name := st.pathName(d.Path)
	entry, ok := cx.Env.LookupVal(qual, name)
	if !ok {
		st.report(diag.ElabUndefined, "undefined identifier "+name, e.Span)
		ty := types.Bottom
		st.recordExp(id, ty)
		return ty
	}
	instTy, _ := types.Instantiate(st.MetaGen, entry.Scheme)
	var defs []source.Span
	if entry.Def != nil {
		defs = []source.Span{*entry.Def}
	}
	scheme := entry.Scheme
	st.Info.RecordExp(id, env.InfoEntry{
		TyEntry: &env.TyEntry{Ty: instTy, Scheme: &scheme},
		Def:     defs,
	})
	return instTy
}

// elabExpLet elaborates "let dec in body end": the declaration's bindings
// are visible only to body, never escaping into the caller's Cx. A
// generated datatype's Sym must not appear free in the
// result type once the let's bindings go out of scope; a marker taken before
// elaborating dec lets ElabDec's caller decide the check applies only to
// Datatype/Abstype decs, not to Val.
func (st *St) elabExpLet(cx env.Cx, e *hir.Exp) types.Ty {
	d := e.Data.(hir.LetData)
	marker := st.Syms.Mark()
	inner := cx.Clone()
	delta := st.ElabDec(inner, d.Dec)
	inner.Env.Extend(delta)
	bodyTy := st.ElabExp(inner, d.Body)
	if tyNameEscapes(st.Syms, marker, st.apply(bodyTy)) {
		st.report(diag.ElabTyEscape, "local type escapes its let binding", e.Span)
	}
	return bodyTy
}

// tyNameEscapes reports whether ty mentions a Con generated after marker.
func tyNameEscapes(syms *sym.Table, marker sym.Marker, ty types.Ty) bool {
	switch ty.Kind {
	case types.Con:
		if syms.GeneratedAfter(ty.Con, marker) {
			return true
		}
		for _, a := range ty.ConArgs {
			if tyNameEscapes(syms, marker, a) {
				return true
			}
		}
		return false
	case types.Record:
		for _, row := range ty.Record {
			if tyNameEscapes(syms, marker, row) {
				return true
			}
		}
		return false
	case types.Fn:
		return tyNameEscapes(syms, marker, *ty.FnArg) || tyNameEscapes(syms, marker, *ty.FnRes)
	default:
		return false
	}
}

func (st *St) elabExpApp(cx env.Cx, e *hir.Exp) types.Ty {
	d := e.Data.(hir.AppData)
	fnTy := st.ElabExp(cx, d.Fn)
	argTy := st.ElabExp(cx, d.Arg)
	resTy := types.NewMetaVar(st.MetaGen.New(types.GenSometimes))
	want := types.NewFn(argTy, resTy)
	if !st.Unify(fnTy, want, e.Span) {
		st.report(diag.ElabAppLhsNotFn, "applied expression is not a function", e.Span)
	}
	return resTy
}

func (st *St) elabExpHandle(cx env.Cx, e *hir.Exp) types.Ty {
	d := e.Data.(hir.HandleData)
	bodyTy := st.ElabExp(cx, d.Body)
	excTy := types.NewCon(sym.Exn)
	rows := make([]dtree.Row, 0, len(d.Arms))
	for _, arm := range d.Arms {
		armCx := cx.Clone()
		pr := st.ElabPat(armCx, arm.Pat)
		st.Unify(pr.Ty, excTy, arm.Span)
		armCx.Env.Extend(pr.Vars)
		armBodyTy := st.ElabExp(armCx, arm.Body)
		st.Unify(bodyTy, armBodyTy, arm.Span)
		rows = append(rows, dtree.Row{Pat: pr.DPat, Span: arm.Span})
	}
	end := st.span(trace.ScopeModule, "match-check")
	dtree.CheckRedundancyOnly(st.Rep, rows)
	end()
	return bodyTy
}

func (st *St) elabExpFn(cx env.Cx, e *hir.Exp) types.Ty {
	d := e.Data.(hir.FnData)
	argTy := types.NewMetaVar(st.MetaGen.New(types.GenSometimes))
	resTy := types.NewMetaVar(st.MetaGen.New(types.GenSometimes))
	rows := make([]dtree.Row, 0, len(d.Arms))
	for _, arm := range d.Arms {
		armCx := cx.Clone()
		pr := st.ElabPat(armCx, arm.Pat)
		st.Unify(pr.Ty, argTy, arm.Span)
		armCx.Env.Extend(pr.Vars)
		armBodyTy := st.ElabExp(armCx, arm.Body)
		st.Unify(resTy, armBodyTy, arm.Span)
		rows = append(rows, dtree.Row{Pat: pr.DPat, Span: arm.Span})
	}
	end := st.span(trace.ScopeModule, "match-check")
	dtree.CheckMatch(st.Syms, st.Subst, st.Rep, st.apply(argTy), rows, e.Span)
	end()
	return types.NewFn(argTy, resTy)
}

func (st *St) recordExp(id hir.ExpID, ty types.Ty) {
	st.Info.RecordExp(id, env.InfoEntry{TyEntry: &env.TyEntry{Ty: ty}})
}

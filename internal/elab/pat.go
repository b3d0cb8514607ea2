package elab

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/dtree"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// PatResult is what elaborating one hir.Pat produces: the
// pattern's type, its simplified dtree.Pattern for the match-coverage
// checker, and the ValEnv delta of fresh variable bindings it introduces
// (constructor references bind nothing; a bare variable reference binds
// itself; "as" binds both its own name and whatever its subpattern binds).
type PatResult struct {
	Ty   types.Ty
	DPat dtree.Pattern
	Vars *env.Env
}

// ElabPat elaborates a pattern under cx, resolving every bare identifier's
// status (constructor vs. fresh variable) against cx.Env — the only stage
// with that knowledge, per  "Con".
func (st *St) ElabPat(cx env.Cx, id hir.PatID) PatResult {
	if id == hir.NoPatID {
		return PatResult{Ty: types.Bottom, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: env.New()}
	}
	p := st.arenas.Pats.Get(id)
	switch p.Kind {
	case hir.PatWild:
		ty := types.NewMetaVar(st.MetaGen.New(types.GenSometimes))
		st.recordPat(id, ty, nil)
		return PatResult{Ty: ty, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: env.New()}

	case hir.PatSCon:
		d := p.Data.(hir.PatSConData)
		if d.Kind == ast.SConReal {
			st.report(diag.ElabRealEqPattern, "real constants may not be used in patterns", p.Span)
		}
		ty := st.sconTy(d.Kind)
		st.recordPat(id, ty, nil)
		return PatResult{
			Ty:   ty,
			DPat: dtree.Pattern{Kind: dtree.Lit, LitKind: d.Kind, LitText: d.Text},
			Vars: env.New(),
		}

	case hir.PatCon:
		return st.elabPatCon(cx, id, p)

	case hir.PatRecord:
		return st.elabPatRecord(cx, id, p)

	case hir.PatTyped:
		d := p.Data.(hir.PatTypedData)
		sub := st.ElabPat(cx, d.Value)
		annot := st.ElabTy(cx, d.Ty)
		st.Unify(sub.Ty, annot, p.Span)
		st.recordPat(id, sub.Ty, nil)
		return sub

	case hir.PatAs:
		d := p.Data.(hir.PatAsData)
		sub := st.ElabPat(cx, d.Sub)
		vars := sub.Vars.Clone()
		name := st.name(d.Name)
		vars.ValEnv[name] = env.ValInfo{Scheme: types.Monomorphic(sub.Ty), Status: env.IDStatus{Tag: env.IDVal}}
		st.recordPat(id, sub.Ty, nil)
		return PatResult{Ty: sub.Ty, DPat: sub.DPat, Vars: vars}

	case hir.PatOr:
		return st.elabPatOr(cx, id, p)

	default:
		return PatResult{Ty: types.Bottom, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: env.New()}
	}
}

func (st *St) elabPatCon(cx env.Cx, id hir.PatID, p *hir.Pat) PatResult {
	d := p.Data.(hir.PatConData)
	qual, name := st.pathName(d.Path)
	entry, found := cx.Env.LookupVal(qual, name)
	isCon := found && (entry.Status.Tag == env.IDCon || entry.Status.Tag == env.IDExn)

	if d.Arg == hir.NoPatID && !isCon && len(qual) == 0 {
		// An unqualified bare identifier not bound as a constructor: a
		// fresh variable binding.
		ty := types.NewMetaVar(st.MetaGen.New(types.GenSometimes))
		vars := env.New()
		vars.ValEnv[name] = env.ValInfo{Scheme: types.Monomorphic(ty), Status: env.IDStatus{Tag: env.IDVal}}
		st.recordPat(id, ty, nil)
		return PatResult{Ty: ty, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: vars}
	}

	if !isCon {
		st.report(diag.ElabUndefined, "undefined constructor "+name, p.Span)
		return PatResult{Ty: types.Bottom, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: env.New()}
	}

	instTy, _ := types.Instantiate(st.MetaGen, entry.Scheme)

	if d.Arg == hir.NoPatID {
		if instTy.Kind == types.Fn {
			st.report(diag.ElabArityMismatch, "constructor "+name+" expects an argument", p.Span)
			return PatResult{Ty: types.Bottom, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: env.New()}
		}
		st.recordPat(id, instTy, entry.Def)
		return PatResult{Ty: instTy, DPat: dtree.Pattern{Kind: dtree.Con, ConName: name}, Vars: env.New()}
	}

	arg := st.ElabPat(cx, d.Arg)
	if instTy.Kind != types.Fn {
		st.report(diag.ElabArityMismatch, "constructor "+name+" takes no argument", p.Span)
		return PatResult{Ty: types.Bottom, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: arg.Vars}
	}
	st.Unify(*instTy.FnArg, arg.Ty, p.Span)
	st.recordPat(id, *instTy.FnRes, entry.Def)
	return PatResult{
		Ty:   *instTy.FnRes,
		DPat: dtree.Pattern{Kind: dtree.Con, ConName: name, ConArg: &arg.DPat},
		Vars: arg.Vars,
	}
}

func (st *St) elabPatRecord(cx env.Cx, id hir.PatID, p *hir.Pat) PatResult {
	d := p.Data.(hir.PatRecordData)
	rows := make(map[types.Lab]types.Ty, len(d.Rows))
	fields := make(map[string]dtree.Pattern, len(d.Rows))
	vars := env.New()
	for _, row := range d.Rows {
		lab := st.name(row.Label)
		sub := st.ElabPat(cx, row.Value)
		rows[lab] = sub.Ty
		fields[lab] = sub.DPat
		vars.Extend(sub.Vars)
	}
	var ty types.Ty
	if d.AllowsOther {
		kind := &types.TyVarKind{Tag: types.KindRecord, Partial: rows}
		m := st.MetaGen.NewKinded(types.GenSometimes, kind)
		ty = types.NewMetaVar(m)
	} else {
		ty = types.NewRecord(rows)
	}
	st.recordPat(id, ty, nil)
	return PatResult{
		Ty:   ty,
		DPat: dtree.Pattern{Kind: dtree.Record, Fields: fields, AllowsOther: d.AllowsOther},
		Vars: vars,
	}
}

func (st *St) elabPatOr(cx env.Cx, id hir.PatID, p *hir.Pat) PatResult {
	d := p.Data.(hir.PatOrData)
	if len(d.Alts) == 0 {
		return PatResult{Ty: types.Bottom, DPat: dtree.Pattern{Kind: dtree.Wild}, Vars: env.New()}
	}
	first := st.ElabPat(cx, d.Alts[0])
	alts := make([]dtree.Pattern, 0, len(d.Alts))
	alts = append(alts, first.DPat)
	vars := first.Vars
	for _, a := range d.Alts[1:] {
		sub := st.ElabPat(cx, a)
		st.Unify(first.Ty, sub.Ty, p.Span)
		alts = append(alts, sub.DPat)
		// Every alternative of an or-pattern must bind the same names at
		// the same types (the Definition requires this); this core trusts
		// the surface grammar/lowerer to have enforced that shape already
		// and simply keeps the first alternative's bindings.
	}
	st.recordPat(id, first.Ty, nil)
	return PatResult{Ty: first.Ty, DPat: dtree.Pattern{Kind: dtree.Or, Alts: alts}, Vars: vars}
}

// sconTy returns the type a special-constant literal of kind k elaborates
// to: an integer literal is overloaded across {int, word, real}, every other literal
// kind is monomorphic in its own base type.
func (st *St) sconTy(k ast.SConKind) types.Ty {
	switch k {
	case ast.SConInt:
		kind := &types.TyVarKind{Tag: types.KindOverloaded, Overload: []types.Sym{sym.Int, sym.Word, sym.Real}}
		m := st.MetaGen.NewKinded(types.GenSometimes, kind)
		return types.NewMetaVar(m)
	case ast.SConWord:
		return types.NewCon(sym.Word)
	case ast.SConReal:
		return types.NewCon(sym.Real)
	case ast.SConChar:
		return types.NewCon(sym.Char)
	case ast.SConString:
		return types.NewCon(sym.String)
	default:
		return types.Bottom
	}
}

func (st *St) recordPat(id hir.PatID, ty types.Ty, def *source.Span) {
	var defs []source.Span
	if def != nil {
		defs = []source.Span{*def}
	}
	st.Info.RecordPat(id, env.InfoEntry{TyEntry: &env.TyEntry{Ty: ty}, Def: defs})
}

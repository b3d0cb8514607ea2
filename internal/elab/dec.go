package elab

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// ElabDec elaborates a declaration under cx, returning the Env delta it
// introduces; it never mutates cx itself, so a caller — Seq
// threading one dec's delta into the next, Local publishing only its body's
// delta, a Val binding's caller merging the result into an enclosing Cx —
// decides how the delta is used.
func (st *St) ElabDec(cx env.Cx, id hir.DecID) *env.Env {
	if id == hir.NoDecID {
		return env.New()
	}
	d := st.arenas.Decs.Get(id)
	switch d.Kind {
	case hir.DecSeq:
		data := d.Data.(hir.SeqData)
		acc := env.New()
		cur := cx.Clone()
		for _, sub := range data.Decs {
			delta := st.ElabDec(cur, sub)
			cur.Env.Extend(delta)
			acc.Extend(delta)
			st.RecordDecSpan(sub)
		}
		return acc

	case hir.DecVal:
		return st.elabDecVal(cx, d)

	case hir.DecTy:
		return st.elabDecTy(cx, d)

	case hir.DecDatatype:
		data := d.Data.(hir.DatatypeData)
		return st.elabDatBinds(cx, data.Binds)

	case hir.DecDatatypeCopy:
		return st.elabDecDatatypeCopy(cx, d)

	case hir.DecAbstype:
		return st.elabDecAbstype(cx, d)

	case hir.DecException:
		return st.elabDecException(cx, d)

	case hir.DecLocal:
		data := d.Data.(hir.LocalData)
		inner := cx.Clone()
		marker := st.Syms.Mark()
		innerDelta := st.ElabDec(inner, data.Inner)
		inner.Env.Extend(innerDelta)
		bodyMarker := st.Syms.Mark()
		bodyDelta := st.ElabDec(inner, data.Body)
		// A type generated by the local part must not appear in a value the
		// body exports; types the body itself generates are not checked.
		for _, vi := range bodyDelta.ValEnv {
			ty := st.apply(vi.Scheme.Ty)
			if tyNameEscapes(st.Syms, marker, ty) && !tyNameEscapes(st.Syms, bodyMarker, ty) {
				st.report(diag.ElabTyEscape, "local type escapes its local declaration", d.Span)
			}
		}
		return bodyDelta

	case hir.DecOpen:
		// Structures are never elaborated (DESIGN.md Open Question decision
		// #4: module system out of core scope); "open" is a best-effort
		// no-op rather than an error, since the identifiers it would bring
		// into scope simply aren't modeled.
		return env.New()

	default:
		return env.New()
	}
}

// RecordDecSpan records id's own span for the document-symbols tree;
// callers needing a name/kind label do that themselves when building the
// tree from hir directly, this only anchors the definition span.
func (st *St) RecordDecSpan(id hir.DecID) {
	d := st.arenas.Decs.Get(id)
	if d == nil {
		return
	}
	st.Info.RecordDec(id, env.InfoEntry{Def: []source.Span{d.Span}})
}

func (st *St) elabDecVal(cx env.Cx, d *hir.Dec) *env.Env {
	data := d.Data.(hir.ValData)
	work := cx.Clone()
	fixed := make([]types.FixedID, len(data.TyVars))
	for i, n := range data.TyVars {
		name := st.name(n)
		fv := st.FixedGen.New(name)
		work.Fixed[name] = fv
		fixed[i] = fv
	}

	rank := st.MetaGen.Rank()
	st.MetaGen.EnterLet()
	merged := env.New()
	if !data.Rec {
		merged = st.elabValNonRec(work, data.Binds, fixed)
	} else {
		merged = st.elabValRec(work, data.Binds, fixed)
	}
	st.MetaGen.ExitLet()
	_ = rank
	return merged
}

// elabValNonRec elaborates a (possibly "and"-chained) group of non-recursive
// bindings: every right-hand side is elaborated under the original
// environment first — none of this group's own pattern variables are in
// scope for any of them — and only afterward are the patterns elaborated
// and their bindings generalized.
func (st *St) elabValNonRec(cx env.Cx, binds []hir.ValBind, fixed []types.FixedID) *env.Env {
	expTys := make([]types.Ty, len(binds))
	for i, b := range binds {
		expTys[i] = st.ElabExp(cx, b.Exp)
	}
	merged := env.New()
	for i, b := range binds {
		pr := st.ElabPat(cx, b.Pat)
		st.Unify(pr.Ty, expTys[i], b.Span)
		isVal := st.isValueExpr(b.Exp)
		for name, vi := range pr.Vars.ValEnv {
			scheme := st.generalize(fixed, vi.Scheme.Ty, isVal)
			span := b.Span
			merged.ValEnv[name] = env.ValInfo{Scheme: scheme, Status: vi.Status, Def: &span}
		}
	}
	return merged
}

// elabValRec elaborates "val rec pat = exp and ...": every pattern is
// elaborated first into one shared recursive ValEnv (rec_ve), which is then
// in scope while every right-hand side — required to be a literal Fn
// expression — is elaborated.
func (st *St) elabValRec(cx env.Cx, binds []hir.ValBind, fixed []types.FixedID) *env.Env {
	prs := make([]PatResult, len(binds))
	recVe := env.New()
	for i, b := range binds {
		pr := st.ElabPat(cx, b.Pat)
		prs[i] = pr
		recVe.Extend(pr.Vars)
	}
	recCx := cx.Clone()
	recCx.Env.Extend(recVe)
	for i, b := range binds {
		if !st.isFnLiteral(b.Exp) {
			st.report(diag.ElabValRecExpNotFn, "right-hand side of a recursive val binding must be fn", b.Span)
		}
		expTy := st.ElabExp(recCx, b.Exp)
		st.Unify(prs[i].Ty, expTy, b.Span)
	}
	merged := env.New()
	for i, b := range binds {
		for name, vi := range prs[i].Vars.ValEnv {
			scheme := st.generalize(fixed, vi.Scheme.Ty, true)
			span := b.Span
			merged.ValEnv[name] = env.ValInfo{Scheme: scheme, Status: vi.Status, Def: &span}
		}
	}
	return merged
}

func (st *St) isFnLiteral(id hir.ExpID) bool {
	if id == hir.NoExpID {
		return false
	}
	e := st.arenas.Exps.Get(id)
	switch e.Kind {
	case hir.ExpFn:
		return true
	case hir.ExpTyped:
		d := e.Data.(hir.TypedData)
		return st.isFnLiteral(d.Value)
	default:
		return false
	}
}

// elabDecTy elaborates a "type" abbreviation group: each
// binding is independent of its siblings (core SML has no recursive type
// synonyms), so every TyBind is elaborated under the unmodified cx.
func (st *St) elabDecTy(cx env.Cx, d *hir.Dec) *env.Env {
	data := d.Data.(hir.TyDecData)
	merged := env.New()
	for _, tb := range data.Binds {
		bindCx := cx.Clone()
		fixed := make([]types.FixedID, len(tb.TyVars))
		for i, n := range tb.TyVars {
			name := st.name(n)
			fv := st.FixedGen.New(name)
			bindCx.Fixed[name] = fv
			fixed[i] = fv
		}
		rhs := st.ElabTy(bindCx, tb.Ty)
		scheme := st.generalize(fixed, rhs, true)
		merged.TyEnv[st.name(tb.Con)] = env.TyEnvEntry{Abbrev: &scheme, Arity: len(tb.TyVars)}
	}
	return merged
}

// elabDatBinds elaborates a mutually-recursive datatype binding group:
// every datatype's Sym is allocated up front via sym.Table.Start so a sibling's
// constructor argument types can refer to any of them, then each
// constructor's argument type is elaborated and the group's Syms are
// finalized via Finish.
func (st *St) elabDatBinds(cx env.Cx, binds []hir.DatBind) *env.Env {
	syms := make([]sym.Sym, len(binds))
	names := make([]string, len(binds))
	working := cx.Clone()
	for i, bind := range binds {
		names[i] = st.name(bind.Con)
		syms[i] = st.Syms.Start(names[i], len(bind.TyVars))
		working.Env.TyEnv[names[i]] = env.TyEnvEntry{Sym: syms[i], Arity: len(bind.TyVars)}
	}

	merged := env.New()
	for i, bind := range binds {
		bindCx := working.Clone()
		fixed := make([]types.FixedID, len(bind.TyVars))
		for j, n := range bind.TyVars {
			name := st.name(n)
			fv := st.FixedGen.New(name)
			bindCx.Fixed[name] = fv
			fixed[j] = fv
		}

		ownArgs := boundVarsFor(fixed)
		cons := make([]sym.ConInfo, len(bind.Cons))
		for k, cb := range bind.Cons {
			cname := st.name(cb.Name)
			var conTy types.Ty
			if cb.Arg == hir.NoTyID {
				conTy = types.NewCon(syms[i], ownArgs...)
			} else {
				argTy := st.ElabTy(bindCx, cb.Arg)
				argScheme := st.generalize(fixed, argTy, true)
				conTy = types.NewFn(argScheme.Ty, types.NewCon(syms[i], ownArgs...))
			}
			scheme := types.TyScheme{BoundVars: nilKinds(len(fixed)), Ty: conTy}
			span := cb.Span
			cons[k] = sym.ConInfo{Name: cname, Scheme: scheme, Span: span}
			merged.ValEnv[cname] = env.ValInfo{Scheme: scheme, Status: env.IDStatus{Tag: env.IDCon}, Def: &span}
		}
		defSpan := bind.Span
		st.Syms.Finish(syms[i], sym.TyInfo{Path: names[i], Arity: len(bind.TyVars), Cons: cons, Def: &defSpan})
		merged.TyEnv[names[i]] = env.TyEnvEntry{Sym: syms[i], Arity: len(bind.TyVars)}
	}
	return merged
}

func (st *St) elabDecDatatypeCopy(cx env.Cx, d *hir.Dec) *env.Env {
	data := d.Data.(hir.DatatypeCopyData)
	qual, name := st.pathName(data.Orig)
	merged := env.New()
	entry, ok := cx.Env.LookupTy(qual, name)
	if !ok {
		st.report(diag.ElabUndefined, "undefined datatype "+name, d.Span)
		return merged
	}
	newName := st.name(data.Con)
	merged.TyEnv[newName] = entry
	info := st.Syms.TyInfo(entry.Sym)
	for _, c := range info.Cons {
		span := c.Span
		merged.ValEnv[c.Name] = env.ValInfo{Scheme: c.Scheme, Status: env.IDStatus{Tag: env.IDCon}, Def: &span}
	}
	return merged
}

// elabDecAbstype elaborates "abstype ... with ... end" as a Datatype
// binding whose constructors are visible only while elaborating Body: the
// result of this Dec exports Body's delta plus the abstract type names,
// but never the constructors, to the enclosing Cx.
func (st *St) elabDecAbstype(cx env.Cx, d *hir.Dec) *env.Env {
	data := d.Data.(hir.AbstypeData)
	datDelta := st.elabDatBinds(cx, data.Binds)
	bodyCx := cx.Clone()
	bodyCx.Env.Extend(datDelta)
	bodyDelta := st.ElabDec(bodyCx, data.Body)

	merged := env.New()
	for name, te := range datDelta.TyEnv {
		merged.TyEnv[name] = te
	}
	merged.Extend(bodyDelta)
	return merged
}

func (st *St) elabDecException(cx env.Cx, d *hir.Dec) *env.Env {
	data := d.Data.(hir.ExceptionData)
	merged := env.New()
	for _, eb := range data.Binds {
		name := st.name(eb.Name)
		span := eb.Span
		if eb.Repl {
			qual, oname := st.pathName(eb.Orig)
			entry, ok := cx.Env.LookupVal(qual, oname)
			if !ok || entry.Status.Tag != env.IDExn {
				st.report(diag.ElabUndefined, "undefined exception "+oname, eb.Span)
				continue
			}
			entry.Def = &span
			merged.ValEnv[name] = entry
			continue
		}
		var argTy *types.Ty
		scheme := types.Monomorphic(types.NewCon(sym.Exn))
		if eb.Arg != hir.NoTyID {
			t := st.ElabTy(cx, eb.Arg)
			argTy = &t
			scheme = types.Monomorphic(types.NewFn(t, types.NewCon(sym.Exn)))
		}
		exnID := st.Syms.NewException(sym.ExnInfo{Path: name, Arg: argTy, Def: &span})
		merged.ValEnv[name] = env.ValInfo{Scheme: scheme, Status: env.IDStatus{Tag: env.IDExn, Exn: exnID}, Def: &span}
	}
	return merged
}

func boundVarsFor(fixed []types.FixedID) []types.Ty {
	out := make([]types.Ty, len(fixed))
	for i := range fixed {
		out[i] = types.NewBoundVar(uint32(i))
	}
	return out
}

func nilKinds(n int) []*types.TyVarKind {
	return make([]*types.TyVarKind, n)
}

package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

// withImplicitTyVars implements the Definition's implicit type-variable
// scoping rule: a type variable that appears free in a val/fun binding's
// patterns or result-type annotations, but is not already named in its
// explicit tyvarseq, is implicitly bound at that same binding (deferred
// from parse time, since the parser sees one clause at a time and this
// rule needs every clause in the "and"-chain together).
//
// This walks only the surface of the binding — pattern type ascriptions
// and declared result types — not into the body expressions; an ascription
// buried inside a nested let or fn belongs to that inner binding's own
// scope, not this one.
func (l *Lowerer) withImplicitTyVars(explicit []source.NameID, collect func(addPat func(ast.PatID), addTy func(ast.TyID))) []source.NameID {
	seen := make(map[source.NameID]bool, len(explicit))
	for _, v := range explicit {
		seen[v] = true
	}
	out := append([]source.NameID(nil), explicit...)
	addPat := func(p ast.PatID) { l.freeTyVarsInPat(p, &out, seen) }
	addTy := func(t ast.TyID) { l.freeTyVarsInTy(t, &out, seen) }
	collect(addPat, addTy)
	return out
}

func (l *Lowerer) freeTyVarsInPat(id ast.PatID, out *[]source.NameID, seen map[source.NameID]bool) {
	p := l.ast.Pats.Get(id)
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PatTyped:
		d := p.Data.(ast.PatTypedData)
		l.freeTyVarsInPat(d.Value, out, seen)
		l.freeTyVarsInTy(d.Ty, out, seen)
	case ast.PatLayered:
		d := p.Data.(ast.PatLayeredData)
		l.freeTyVarsInTy(d.Ty, out, seen)
		l.freeTyVarsInPat(d.Sub, out, seen)
	case ast.PatConApp:
		d := p.Data.(ast.PatConAppData)
		l.freeTyVarsInPat(d.Arg, out, seen)
	case ast.PatRecord:
		d := p.Data.(ast.PatRecordData)
		for _, row := range d.Rows {
			l.freeTyVarsInPat(row.Value, out, seen)
		}
	case ast.PatTuple:
		d := p.Data.(ast.PatTupleData)
		for _, e := range d.Elems {
			l.freeTyVarsInPat(e, out, seen)
		}
	case ast.PatList:
		d := p.Data.(ast.PatListData)
		for _, e := range d.Elems {
			l.freeTyVarsInPat(e, out, seen)
		}
	}
}

func (l *Lowerer) freeTyVarsInTy(id ast.TyID, out *[]source.NameID, seen map[source.NameID]bool) {
	if id == ast.NoTyID {
		return
	}
	t := l.ast.Tys.Get(id)
	if t == nil {
		return
	}
	switch t.Kind {
	case ast.TyVar:
		d := t.Data.(ast.TyVarData)
		if !seen[d.Name] {
			seen[d.Name] = true
			*out = append(*out, d.Name)
		}
	case ast.TyRecord:
		d := t.Data.(ast.TyRecordData)
		for _, row := range d.Rows {
			l.freeTyVarsInTy(row.Value, out, seen)
		}
	case ast.TyCon:
		d := t.Data.(ast.TyConData)
		for _, a := range d.Args {
			l.freeTyVarsInTy(a, out, seen)
		}
	case ast.TyTuple:
		d := t.Data.(ast.TyTupleData)
		for _, e := range d.Elems {
			l.freeTyVarsInTy(e, out, seen)
		}
	case ast.TyFn:
		d := t.Data.(ast.TyFnData)
		l.freeTyVarsInTy(d.Arg, out, seen)
		l.freeTyVarsInTy(d.Res, out, seen)
	}
}

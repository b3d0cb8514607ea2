package hir

import "github.com/t18b219k/millet/internal/ast"

func (l *Lowerer) lowerTy(id ast.TyID) TyID {
	t := l.ast.Tys.Get(id)
	if t == nil {
		return NoTyID
	}
	switch t.Kind {
	case ast.TyVar:
		d := t.Data.(ast.TyVarData)
		return l.arenas.Tys.NewVar(t.Span, d.Name, d.Equality)
	case ast.TyRecord:
		d := t.Data.(ast.TyRecordData)
		rows := make([]TyRow, len(d.Rows))
		for i, row := range d.Rows {
			rows[i] = TyRow{Label: row.Label, Value: l.lowerTy(row.Value)}
		}
		return l.arenas.Tys.NewRecord(t.Span, rows)
	case ast.TyCon:
		d := t.Data.(ast.TyConData)
		args := make([]TyID, len(d.Args))
		for i, a := range d.Args {
			args[i] = l.lowerTy(a)
		}
		return l.arenas.Tys.NewCon(t.Span, l.pathOf(d.Con), args)
	case ast.TyTuple:
		d := t.Data.(ast.TyTupleData)
		elems := make([]TyID, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = l.lowerTy(e)
		}
		return l.tupleTy(t.Span, elems)
	case ast.TyFn:
		d := t.Data.(ast.TyFnData)
		return l.arenas.Tys.NewFn(t.Span, l.lowerTy(d.Arg), l.lowerTy(d.Res))
	default:
		return l.arenas.Tys.NewHole(t.Span)
	}
}

// lowerTyOpt lowers id, returning NoTyID unchanged for ast.NoTyID rather
// than allocating a HoleID placeholder; callers that need a real type
// annotation always check for NoTyID first.
func (l *Lowerer) lowerTyOpt(id ast.TyID) TyID {
	if id == ast.NoTyID {
		return NoTyID
	}
	return l.lowerTy(id)
}

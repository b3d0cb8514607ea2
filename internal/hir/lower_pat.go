package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

func (l *Lowerer) lowerPat(id ast.PatID) PatID {
	p := l.ast.Pats.Get(id)
	if p == nil {
		return NoPatID
	}
	switch p.Kind {
	case ast.PatWild:
		return l.arenas.Pats.NewWild(p.Span)
	case ast.PatSCon:
		d := p.Data.(ast.PatSConData)
		return l.arenas.Pats.NewSCon(p.Span, d.Kind, d.Text)
	case ast.PatPath:
		d := p.Data.(ast.PatPathData)
		return l.arenas.Pats.NewCon(p.Span, l.pathOf(d.ID), NoPatID)
	case ast.PatConApp:
		d := p.Data.(ast.PatConAppData)
		return l.arenas.Pats.NewCon(p.Span, l.pathOf(d.Con), l.lowerPat(d.Arg))
	case ast.PatRecord:
		d := p.Data.(ast.PatRecordData)
		rows := make([]PatRow, len(d.Rows))
		for i, row := range d.Rows {
			rows[i] = PatRow{Label: row.Label, Value: l.lowerPat(row.Value)}
		}
		return l.arenas.Pats.NewRecord(p.Span, rows, d.Rest)
	case ast.PatTuple:
		d := p.Data.(ast.PatTupleData)
		elems := make([]PatID, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = l.lowerPat(e)
		}
		return l.tuplePat(p.Span, elems)
	case ast.PatList:
		d := p.Data.(ast.PatListData)
		return l.lowerListPat(p.Span, d.Elems)
	case ast.PatLayered:
		d := p.Data.(ast.PatLayeredData)
		as := l.arenas.Pats.NewAs(p.Span, d.Var.Name, l.lowerPat(d.Sub))
		if d.Ty != ast.NoTyID {
			return l.arenas.Pats.NewTyped(p.Span, as, l.lowerTy(d.Ty))
		}
		return as
	case ast.PatTyped:
		d := p.Data.(ast.PatTypedData)
		return l.arenas.Pats.NewTyped(p.Span, l.lowerPat(d.Value), l.lowerTy(d.Ty))
	default:
		return l.arenas.Pats.NewWild(p.Span)
	}
}

// lowerListPat desugars "[p1, ..., pn]" into the cons/nil constructor chain
// "p1 :: ... :: pn :: nil".
func (l *Lowerer) lowerListPat(span source.Span, elems []ast.PatID) PatID {
	acc := l.arenas.Pats.NewCon(span, l.bareName(l.builtinName("nil")), NoPatID)
	for i := len(elems) - 1; i >= 0; i-- {
		head := l.lowerPat(elems[i])
		acc = l.arenas.Pats.NewCon(span, l.bareName(l.builtinName("::")), l.tuplePat(span, []PatID{head, acc}))
	}
	return acc
}

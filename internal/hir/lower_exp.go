package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

func (l *Lowerer) lowerExp(id ast.ExpID) ExpID {
	e := l.ast.Exps.Get(id)
	if e == nil {
		return NoExpID
	}
	switch e.Kind {
	case ast.ExpSCon:
		d := e.Data.(ast.ExpSConData)
		return l.arenas.Exps.NewSCon(e.Span, d.Kind, d.Text)
	case ast.ExpPath:
		d := e.Data.(ast.ExpPathData)
		return l.arenas.Exps.NewPath(e.Span, l.pathOf(d.ID))
	case ast.ExpRecord:
		d := e.Data.(ast.ExpRecordData)
		rows := make([]ExpRow, len(d.Rows))
		for i, row := range d.Rows {
			rows[i] = ExpRow{Label: row.Label, Value: l.lowerExp(row.Value)}
		}
		return l.arenas.Exps.NewRecord(e.Span, rows)
	case ast.ExpSelector:
		d := e.Data.(ast.ExpSelectorData)
		return l.lowerSelector(e.Span, d.Label)
	case ast.ExpTuple:
		d := e.Data.(ast.ExpTupleData)
		elems := make([]ExpID, len(d.Elems))
		for i, x := range d.Elems {
			elems[i] = l.lowerExp(x)
		}
		return l.tupleExp(e.Span, elems)
	case ast.ExpList:
		d := e.Data.(ast.ExpListData)
		return l.lowerListExp(e.Span, d.Elems)
	case ast.ExpSeq:
		d := e.Data.(ast.ExpSeqData)
		return l.lowerSeqExp(e.Span, d.Elems)
	case ast.ExpLet:
		d := e.Data.(ast.ExpLetData)
		return l.arenas.Exps.NewLet(e.Span, l.lowerDec(d.Dec), l.lowerExp(d.Body))
	case ast.ExpApp:
		d := e.Data.(ast.ExpAppData)
		return l.arenas.Exps.NewApp(e.Span, l.lowerExp(d.Fn), l.lowerExp(d.Arg))
	case ast.ExpAndalso:
		d := e.Data.(ast.ExpAndalsoData)
		left := l.lowerExp(d.Left)
		right := l.lowerExp(d.Right)
		arms := []Arm{
			{Pat: l.boolPat(e.Span, "true"), Body: right, Span: e.Span},
			{Pat: l.boolPat(e.Span, "false"), Body: l.boolExp(e.Span, "false"), Span: e.Span},
		}
		return l.caseOf(e.Span, left, arms)
	case ast.ExpOrelse:
		d := e.Data.(ast.ExpOrelseData)
		left := l.lowerExp(d.Left)
		right := l.lowerExp(d.Right)
		arms := []Arm{
			{Pat: l.boolPat(e.Span, "true"), Body: l.boolExp(e.Span, "true"), Span: e.Span},
			{Pat: l.boolPat(e.Span, "false"), Body: right, Span: e.Span},
		}
		return l.caseOf(e.Span, left, arms)
	case ast.ExpHandle:
		d := e.Data.(ast.ExpHandleData)
		return l.arenas.Exps.NewHandle(e.Span, l.lowerExp(d.Body), l.lowerArms(d.Arms))
	case ast.ExpRaise:
		d := e.Data.(ast.ExpRaiseData)
		return l.arenas.Exps.NewRaise(e.Span, l.lowerExp(d.Value))
	case ast.ExpIf:
		d := e.Data.(ast.ExpIfData)
		cond := l.lowerExp(d.Cond)
		arms := []Arm{
			{Pat: l.boolPat(e.Span, "true"), Body: l.lowerExp(d.Then), Span: e.Span},
			{Pat: l.boolPat(e.Span, "false"), Body: l.lowerExp(d.Else), Span: e.Span},
		}
		return l.caseOf(e.Span, cond, arms)
	case ast.ExpWhile:
		d := e.Data.(ast.ExpWhileData)
		return l.lowerWhileExp(e.Span, d.Cond, d.Body)
	case ast.ExpCase:
		d := e.Data.(ast.ExpCaseData)
		return l.caseOf(e.Span, l.lowerExp(d.Scrutinee), l.lowerArms(d.Arms))
	case ast.ExpFn:
		d := e.Data.(ast.ExpFnData)
		return l.arenas.Exps.NewFn(e.Span, l.lowerArms(d.Arms))
	case ast.ExpTyped:
		d := e.Data.(ast.ExpTypedData)
		return l.arenas.Exps.NewTyped(e.Span, l.lowerExp(d.Value), l.lowerTy(d.Ty))
	default:
		return l.arenas.Exps.NewHole(e.Span)
	}
}

func (l *Lowerer) lowerArms(arms []ast.MatchArm) []Arm {
	out := make([]Arm, len(arms))
	for i, a := range arms {
		out[i] = Arm{Pat: l.lowerPat(a.Pat), Body: l.lowerExp(a.Body), Span: a.Span}
	}
	return out
}

// lowerSelector desugars "#lab" into "fn {lab = $sel, ...} => $sel", the
// Definition's derived form for a record-selector function value.
func (l *Lowerer) lowerSelector(span source.Span, label source.NameID) ExpID {
	tmp := l.freshName("sel")
	pat := l.arenas.Pats.NewRecord(span, []PatRow{{Label: label, Value: l.arenas.Pats.NewCon(span, l.bareName(tmp), NoPatID)}}, true)
	body := l.arenas.Exps.NewPath(span, l.bareName(tmp))
	return l.arenas.Exps.NewFn(span, []Arm{{Pat: pat, Body: body, Span: span}})
}

// lowerListExp desugars "[e1, ..., en]" into "e1 :: ... :: en :: nil".
func (l *Lowerer) lowerListExp(span source.Span, elems []ast.ExpID) ExpID {
	acc := l.arenas.Exps.NewPath(span, l.bareName(l.builtinName("nil")))
	for i := len(elems) - 1; i >= 0; i-- {
		head := l.lowerExp(elems[i])
		cons := l.arenas.Exps.NewPath(span, l.bareName(l.builtinName("::")))
		acc = l.arenas.Exps.NewApp(span, cons, l.tupleExp(span, []ExpID{head, acc}))
	}
	return acc
}

// lowerSeqExp desugars "(e1; ...; en)" into nested "case e_i of _ => rest",
// evaluating each element for effect before yielding the last one's value.
func (l *Lowerer) lowerSeqExp(span source.Span, elems []ast.ExpID) ExpID {
	lowered := make([]ExpID, len(elems))
	for i, e := range elems {
		lowered[i] = l.lowerExp(e)
	}
	acc := lowered[len(lowered)-1]
	for i := len(lowered) - 2; i >= 0; i-- {
		acc = l.caseOf(span, lowered[i], []Arm{{Pat: l.arenas.Pats.NewWild(span), Body: acc, Span: span}})
	}
	return acc
}

// lowerWhileExp desugars "while e1 do e2" into:
//
//	let val rec $while = fn () => case e1 of
//	        true => case e2 of _ => $while ()
//	      | false => ()
//	in $while () end
func (l *Lowerer) lowerWhileExp(span source.Span, condID, bodyID ast.ExpID) ExpID {
	name := l.freshName("while")
	loopRef := l.arenas.Exps.NewPath(span, l.bareName(name))
	recur := l.arenas.Exps.NewApp(span, loopRef, l.unitExp(span))

	cond := l.lowerExp(condID)
	body := l.lowerExp(bodyID)
	thenBranch := l.caseOf(span, body, []Arm{{Pat: l.arenas.Pats.NewWild(span), Body: recur, Span: span}})
	arms := []Arm{
		{Pat: l.boolPat(span, "true"), Body: thenBranch, Span: span},
		{Pat: l.boolPat(span, "false"), Body: l.unitExp(span), Span: span},
	}
	loopBody := l.caseOf(span, cond, arms)

	fn := l.arenas.Exps.NewFn(span, []Arm{{Pat: l.unitPat(span), Body: loopBody, Span: span}})
	bind := ValBind{Pat: l.arenas.Pats.NewCon(span, l.bareName(name), NoPatID), Exp: fn, Span: span}
	dec := l.arenas.Decs.NewVal(span, nil, true, []ValBind{bind})
	return l.arenas.Exps.NewLet(span, dec, l.arenas.Exps.NewApp(span, l.arenas.Exps.NewPath(span, l.bareName(name)), l.unitExp(span)))
}

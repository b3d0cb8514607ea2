package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

func (l *Lowerer) lowerDec(id ast.DecID) DecID {
	d := l.ast.Decs.Get(id)
	if d == nil {
		return l.arenas.Decs.NewSeq(source.Span{}, nil)
	}
	switch d.Kind {
	case ast.DecEmpty:
		return l.arenas.Decs.NewSeq(d.Span, nil)
	case ast.DecSeq:
		data := d.Data.(ast.DecSeqData)
		decs := make([]DecID, len(data.Decs))
		for i, sub := range data.Decs {
			decs[i] = l.lowerDec(sub)
		}
		if len(decs) == 1 {
			return decs[0]
		}
		return l.arenas.Decs.NewSeq(d.Span, decs)
	case ast.DecVal:
		return l.lowerValDec(d.Span, d.Data.(ast.DecValData))
	case ast.DecFun:
		return l.lowerFunDec(d.Span, d.Data.(ast.DecFunData))
	case ast.DecType:
		data := d.Data.(ast.DecTypeData)
		return l.arenas.Decs.NewTy(d.Span, l.lowerTyBinds(data.Binds))
	case ast.DecDatatype:
		data := d.Data.(ast.DecDatatypeData)
		datDec := l.arenas.Decs.NewDatatype(d.Span, l.lowerDatBinds(data.Binds))
		if len(data.WithType) == 0 {
			return datDec
		}
		tyDec := l.arenas.Decs.NewTy(d.Span, l.lowerTyBinds(data.WithType))
		return l.arenas.Decs.NewSeq(d.Span, []DecID{datDec, tyDec})
	case ast.DecDatatypeRepl:
		data := d.Data.(ast.DecDatatypeReplData)
		return l.arenas.Decs.NewDatatypeCopy(d.Span, data.Con, l.pathOf(data.Orig))
	case ast.DecAbstype:
		return l.lowerAbstypeDec(d.Span, d.Data.(ast.DecAbstypeData))
	case ast.DecException:
		data := d.Data.(ast.DecExceptionData)
		binds := make([]ExBind, len(data.Binds))
		for i, b := range data.Binds {
			binds[i] = ExBind{
				Name: b.Name,
				Arg:  l.lowerTyOpt(b.Arg),
				Orig: l.pathOf(b.Orig),
				Repl: b.Repl,
				Span: b.Span,
			}
		}
		return l.arenas.Decs.NewException(d.Span, binds)
	case ast.DecLocal:
		data := d.Data.(ast.DecLocalData)
		return l.arenas.Decs.NewLocal(d.Span, l.lowerDec(data.Inner), l.lowerDec(data.Body))
	case ast.DecOpen:
		data := d.Data.(ast.DecOpenData)
		structs := make([]Path, len(data.Structs))
		for i, s := range data.Structs {
			structs[i] = l.pathOf(s)
		}
		return l.arenas.Decs.NewOpen(d.Span, structs)
	case ast.DecFixity:
		// Fixity is fully resolved by the parser; the declaration itself
		// carries no elaboration effect (DESIGN.md Open Question decision).
		return l.arenas.Decs.NewSeq(d.Span, nil)
	default:
		return l.arenas.Decs.NewSeq(d.Span, nil)
	}
}

func (l *Lowerer) lowerTyBinds(binds []ast.TypBind) []TyBind {
	out := make([]TyBind, len(binds))
	for i, b := range binds {
		out[i] = TyBind{TyVars: b.TyVars, Con: b.Con, Ty: l.lowerTy(b.Ty), Span: b.Span}
	}
	return out
}

func (l *Lowerer) lowerDatBinds(binds []ast.DatBind) []DatBind {
	out := make([]DatBind, len(binds))
	for i, b := range binds {
		cons := make([]ConBind, len(b.Cons))
		for j, c := range b.Cons {
			cons[j] = ConBind{Name: c.Name, Arg: l.lowerTyOpt(c.Arg), Span: c.Span}
		}
		out[i] = DatBind{TyVars: b.TyVars, Con: b.Con, Cons: cons, Span: b.Span}
	}
	return out
}

func (l *Lowerer) lowerAbstypeDec(span source.Span, data ast.DecAbstypeData) DecID {
	binds := l.lowerDatBinds(data.Binds)
	body := l.lowerDec(data.Body)
	if len(data.WithType) == 0 {
		return l.arenas.Decs.NewAbstype(span, binds, body)
	}
	// "abstype D withtype T with d end" folds the type abbreviations in
	// ahead of the abstype's own body, visible alongside its datatypes.
	tyDec := l.arenas.Decs.NewTy(span, l.lowerTyBinds(data.WithType))
	return l.arenas.Decs.NewAbstype(span, binds, l.arenas.Decs.NewSeq(span, []DecID{tyDec, body}))
}

func (l *Lowerer) lowerValDec(span source.Span, data ast.DecValData) DecID {
	binds := make([]ValBind, len(data.Binds))
	for i, b := range data.Binds {
		binds[i] = ValBind{Pat: l.lowerPat(b.Pat), Exp: l.lowerExp(b.Exp), Span: b.Span}
	}
	tyVars := l.withImplicitTyVars(data.TyVars, func(addPat func(ast.PatID), _ func(ast.TyID)) {
		for _, b := range data.Binds {
			addPat(b.Pat)
		}
	})
	return l.arenas.Decs.NewVal(span, tyVars, data.Rec, binds)
}

// lowerFunDec desugars "fun tyvarseq fvalbind [and fvalbind]*" into a
// single "val rec" binding per function, each built from nested Fn values
// matching a tuple of fresh arguments against its clauses.
func (l *Lowerer) lowerFunDec(span source.Span, data ast.DecFunData) DecID {
	binds := make([]ValBind, 0, len(data.Functions))
	var allArgPats []ast.PatID
	var allResultTys []ast.TyID
	for _, group := range data.Functions {
		bind, argPats, resultTys := l.lowerFunGroup(group)
		binds = append(binds, bind)
		allArgPats = append(allArgPats, argPats...)
		allResultTys = append(allResultTys, resultTys...)
	}
	tyVars := l.withImplicitTyVars(data.TyVars, func(addPat func(ast.PatID), addTy func(ast.TyID)) {
		for _, p := range allArgPats {
			addPat(p)
		}
		for _, t := range allResultTys {
			addTy(t)
		}
	})
	return l.arenas.Decs.NewVal(span, tyVars, true, binds)
}

// lowerFunGroup lowers one "and"-separated function's clauses into a single
// ValBind, plus the raw AST argument patterns and result-type annotations
// (for implicit tyvar scoping).
func (l *Lowerer) lowerFunGroup(group ast.FunBindGroup) (ValBind, []ast.PatID, []ast.TyID) {
	if len(group.Clauses) == 0 {
		return ValBind{}, nil, nil
	}
	first := group.Clauses[0]
	name := first.Name
	arity := len(first.Args)

	var argPats []ast.PatID
	var resultTys []ast.TyID
	arms := make([]Arm, 0, len(group.Clauses))
	for _, clause := range group.Clauses {
		if clause.Name != name {
			l.report(diag.LowerFunClauseName, "function clauses disagree on the name being defined", clause.NameSpan)
		}
		if len(clause.Args) != arity {
			l.report(diag.LowerFunClauseArity, "function clauses disagree on the number of arguments", clause.Span)
		}
		argPats = append(argPats, clause.Args...)
		if clause.ResultTy != ast.NoTyID {
			resultTys = append(resultTys, clause.ResultTy)
		}

		pats := make([]PatID, len(clause.Args))
		for i, a := range clause.Args {
			pats[i] = l.lowerPat(a)
		}
		body := l.lowerExp(clause.Body)
		if clause.ResultTy != ast.NoTyID {
			body = l.arenas.Exps.NewTyped(clause.Span, body, l.lowerTy(clause.ResultTy))
		}
		arms = append(arms, Arm{Pat: l.tuplePat(clause.Span, pats), Body: body, Span: clause.Span})
	}

	freshArgs := make([]source.NameID, arity)
	argExps := make([]ExpID, arity)
	argPatsHir := make([]PatID, arity)
	for i := range freshArgs {
		freshArgs[i] = l.freshName("arg")
		argExps[i] = l.arenas.Exps.NewPath(first.Span, l.bareName(freshArgs[i]))
		argPatsHir[i] = l.arenas.Pats.NewCon(first.Span, l.bareName(freshArgs[i]), NoPatID)
	}
	scrutinee := l.tupleExp(first.Span, argExps)
	inner := l.caseOf(first.Span, scrutinee, arms)
	for i := arity - 1; i >= 0; i-- {
		inner = l.arenas.Exps.NewFn(first.Span, []Arm{{Pat: argPatsHir[i], Body: inner, Span: first.Span}})
	}

	bind := ValBind{
		Pat:  l.arenas.Pats.NewCon(first.NameSpan, l.bareName(name), NoPatID),
		Exp:  inner,
		Span: first.Span,
	}
	return bind, argPats, resultTys
}

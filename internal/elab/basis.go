package elab

import (
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// InitialBasis builds the Definition of Standard ML's initial static basis
// (Appendix C) on top of syms (a freshly created sym.Table, so the nine
// built-in type constructors already sit at their fixed indices): the
// boolean/list/ref value constructors, and the small set of overloaded and
// equality-polymorphic operators a core-language program needs to do
// anything (arithmetic, comparison, equality, ref cells, printing). Nothing
// extends it with project-supplied basis files; it holds only the
// Definition's own initial basis, not the full standard library.
func InitialBasis(syms *sym.Table) *env.Env {
	e := env.New()

	e.TyEnv["exn"] = env.TyEnvEntry{Sym: sym.Exn, Arity: 0}
	e.TyEnv["int"] = env.TyEnvEntry{Sym: sym.Int, Arity: 0}
	e.TyEnv["word"] = env.TyEnvEntry{Sym: sym.Word, Arity: 0}
	e.TyEnv["real"] = env.TyEnvEntry{Sym: sym.Real, Arity: 0}
	e.TyEnv["char"] = env.TyEnvEntry{Sym: sym.Char, Arity: 0}
	e.TyEnv["string"] = env.TyEnvEntry{Sym: sym.String, Arity: 0}
	e.TyEnv["bool"] = env.TyEnvEntry{Sym: sym.Bool, Arity: 0}
	e.TyEnv["list"] = env.TyEnvEntry{Sym: sym.List, Arity: 1}
	e.TyEnv["ref"] = env.TyEnvEntry{Sym: sym.Ref, Arity: 1}

	unit := types.NewTuple()
	boolTy := types.NewCon(sym.Bool)
	a := types.NewBoundVar(0)

	bindCon := func(name string, scheme types.TyScheme) {
		e.ValEnv[name] = env.ValInfo{Scheme: scheme, Status: env.IDStatus{Tag: env.IDCon}}
	}
	bindVal := func(name string, scheme types.TyScheme) {
		e.ValEnv[name] = env.ValInfo{Scheme: scheme, Status: env.IDStatus{Tag: env.IDVal}}
	}

	bindCon("true", types.Monomorphic(boolTy))
	bindCon("false", types.Monomorphic(boolTy))

	nilScheme := types.TyScheme{BoundVars: []*types.TyVarKind{nil}, Ty: types.NewCon(sym.List, a)}
	consScheme := types.TyScheme{
		BoundVars: []*types.TyVarKind{nil},
		Ty:        types.NewFn(types.NewTuple(a, types.NewCon(sym.List, a)), types.NewCon(sym.List, a)),
	}
	bindCon("nil", nilScheme)
	bindCon("::", consScheme)
	bindCon("ref", types.TyScheme{
		BoundVars: []*types.TyVarKind{nil},
		Ty:        types.NewFn(a, types.NewCon(sym.Ref, a)),
	})

	numOverload := &types.TyVarKind{Tag: types.KindOverloaded, Overload: []types.Sym{sym.Int, sym.Word, sym.Real}}
	intWordOverload := &types.TyVarKind{Tag: types.KindOverloaded, Overload: []types.Sym{sym.Int, sym.Word}}
	ordOverload := &types.TyVarKind{Tag: types.KindOverloaded, Overload: []types.Sym{sym.Int, sym.Word, sym.Real, sym.String, sym.Char}}
	eqKind := &types.TyVarKind{Tag: types.KindEquality}

	binNum := func(kind *types.TyVarKind) types.TyScheme {
		return types.TyScheme{BoundVars: []*types.TyVarKind{kind}, Ty: types.NewFn(types.NewTuple(a, a), a)}
	}
	relOp := func(kind *types.TyVarKind) types.TyScheme {
		return types.TyScheme{BoundVars: []*types.TyVarKind{kind}, Ty: types.NewFn(types.NewTuple(a, a), boolTy)}
	}

	bindVal("+", binNum(numOverload))
	bindVal("-", binNum(numOverload))
	bindVal("*", binNum(numOverload))
	bindVal("div", binNum(intWordOverload))
	bindVal("mod", binNum(intWordOverload))
	bindVal("~", types.TyScheme{BoundVars: []*types.TyVarKind{numOverload}, Ty: types.NewFn(a, a)})

	bindVal("<", relOp(ordOverload))
	bindVal("<=", relOp(ordOverload))
	bindVal(">", relOp(ordOverload))
	bindVal(">=", relOp(ordOverload))
	bindVal("=", relOp(eqKind))
	bindVal("<>", relOp(eqKind))

	bindVal("!", types.TyScheme{BoundVars: []*types.TyVarKind{nil}, Ty: types.NewFn(types.NewCon(sym.Ref, a), a)})
	bindVal(":=", types.TyScheme{
		BoundVars: []*types.TyVarKind{nil},
		Ty:        types.NewFn(types.NewTuple(types.NewCon(sym.Ref, a), a), unit),
	})
	bindVal("not", types.Monomorphic(types.NewFn(boolTy, boolTy)))
	bindVal("print", types.Monomorphic(types.NewFn(types.NewCon(sym.String), unit)))

	// bool and list participate in the pattern-match completeness check
	// as if they were ordinary datatypes: register their
	// constructors on sym.Table's own TyInfo so internal/dtree's
	// constructor-signature lookup sees them uniformly with user datatypes.
	syms.SetTyInfo(sym.Bool, sym.TyInfo{
		Path: "bool", Arity: 0,
		Cons: []sym.ConInfo{
			{Name: "false", Scheme: types.Monomorphic(boolTy)},
			{Name: "true", Scheme: types.Monomorphic(boolTy)},
		},
	})
	syms.SetTyInfo(sym.List, sym.TyInfo{
		Path: "list", Arity: 1,
		Cons: []sym.ConInfo{
			{Name: "nil", Scheme: nilScheme},
			{Name: "::", Scheme: consScheme},
		},
	})

	return e
}

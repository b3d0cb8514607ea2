package ast

import (
	"testing"

	"github.com/t18b219k/millet/internal/source"
)

func TestArenaOneBasedIndices(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Len(); got != 0 {
		t.Fatalf("Len() on empty arena = %d, want 0", got)
	}
	id1 := a.Allocate(10)
	id2 := a.Allocate(20)
	if id1 != 1 || id2 != 2 {
		t.Fatalf("Allocate ids = %d, %d; want 1, 2", id1, id2)
	}
	if got := *a.Get(id1); got != 10 {
		t.Fatalf("Get(1) = %d, want 10", got)
	}
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", got)
	}
}

func TestExpsRoundTrip(t *testing.T) {
	exps := NewExps(0)
	a := exps.NewSCon(source.Span{}, SConInt, "1")
	b := exps.NewSCon(source.Span{}, SConInt, "2")
	app := exps.NewApp(source.Span{}, a, b)

	node := exps.Get(app)
	if node.Kind != ExpApp {
		t.Fatalf("Kind = %v, want ExpApp", node.Kind)
	}
	data, ok := node.Data.(ExpAppData)
	if !ok {
		t.Fatalf("Data is %T, want ExpAppData", node.Data)
	}
	if data.Fn != a || data.Arg != b {
		t.Fatalf("ExpAppData = %+v, want Fn=%d Arg=%d", data, a, b)
	}
	if exps.Get(NoExpID) != nil {
		t.Fatalf("Get(NoExpID) should be nil")
	}
}

func TestPatsConApp(t *testing.T) {
	pats := NewPats(0)
	wild := pats.NewWild(source.Span{})
	cons := pats.NewConApp(source.Span{}, LongID{Name: 1}, wild)
	node := pats.Get(cons)
	if node.Kind != PatConApp {
		t.Fatalf("Kind = %v, want PatConApp", node.Kind)
	}
	data := node.Data.(PatConAppData)
	if data.Arg != wild {
		t.Fatalf("Arg = %d, want %d", data.Arg, wild)
	}
}

func TestTysFn(t *testing.T) {
	tys := NewTys(0)
	intTy := tys.NewCon(source.Span{}, LongID{Name: 1}, nil)
	fn := tys.NewFn(source.Span{}, intTy, intTy)
	node := tys.Get(fn)
	data := node.Data.(TyFnData)
	if data.Arg != intTy || data.Res != intTy {
		t.Fatalf("TyFnData = %+v", data)
	}
}

func TestDecsValAndFun(t *testing.T) {
	decs := NewDecs(0)
	pats := NewPats(0)
	exps := NewExps(0)

	p := pats.NewWild(source.Span{})
	e := exps.NewSCon(source.Span{}, SConInt, "0")
	val := decs.NewVal(source.Span{}, nil, false, []ValBind{{Pat: p, Exp: e}})
	if decs.Get(val).Kind != DecVal {
		t.Fatalf("Kind = %v, want DecVal", decs.Get(val).Kind)
	}

	clause := FunClause{Name: 1, Args: []PatID{p}, ResultTy: NoTyID, Body: e}
	fn := decs.NewFun(source.Span{}, nil, []FunBindGroup{{Clauses: []FunClause{clause}}})
	fnData := decs.Get(fn).Data.(DecFunData)
	if len(fnData.Functions) != 1 || len(fnData.Functions[0].Clauses) != 1 {
		t.Fatalf("DecFunData = %+v", fnData)
	}

	seq := decs.NewSeq(source.Span{}, []DecID{val, fn})
	seqData := decs.Get(seq).Data.(DecSeqData)
	if len(seqData.Decs) != 2 {
		t.Fatalf("DecSeqData = %+v", seqData)
	}
}

func TestDecsExceptionReplication(t *testing.T) {
	decs := NewDecs(0)
	bind := ExBind{Name: 1, Repl: true, Orig: LongID{Name: 2}}
	id := decs.NewException(source.Span{}, []ExBind{bind})
	data := decs.Get(id).Data.(DecExceptionData)
	if !data.Binds[0].Repl || data.Binds[0].Orig.Name != 2 {
		t.Fatalf("DecExceptionData = %+v", data)
	}
}

func TestFileArenasIndependent(t *testing.T) {
	f := NewFile(source.FileID(1))
	e := f.Exps.NewSCon(source.Span{}, SConInt, "1")
	p := f.Pats.NewWild(source.Span{})
	v := f.Decs.NewVal(source.Span{}, nil, false, []ValBind{{Pat: p, Exp: e}})
	f.Top = f.Decs.NewSeq(source.Span{}, []DecID{v})

	if f.Path != source.FileID(1) {
		t.Fatalf("Path = %d, want 1", f.Path)
	}
	if f.Decs.Get(f.Top).Kind != DecSeq {
		t.Fatalf("Top Kind = %v, want DecSeq", f.Decs.Get(f.Top).Kind)
	}
}

func TestLongIDIsQualified(t *testing.T) {
	unqual := LongID{Name: 1}
	qual := LongID{Qual: []source.NameID{2}, Name: 3}
	if unqual.IsQualified() {
		t.Fatalf("unqualified LongID reported as qualified")
	}
	if !qual.IsQualified() {
		t.Fatalf("qualified LongID reported as unqualified")
	}
}

package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

// ExpKind tags the variant held in an Exp's Data field.
// "andalso"/"orelse"/"if"/"while"/"case" have no kind of their own: the
// lowerer desugars each into the primitive forms. "case e of m" becomes
// App(Fn(m), e); "if"/"andalso"/"orelse" become the same App(Fn(...), e)
// shape over the built-in bool constructors; "while" becomes a recursive
// let-bound function, matching the Definition's own derived-form appendix.
type ExpKind uint8

const (
	ExpHole ExpKind = iota
	ExpSCon
	ExpPath
	ExpRecord
	ExpLet
	ExpApp
	ExpHandle
	ExpRaise
	ExpFn
	ExpTyped
)

type Exp struct {
	Kind ExpKind
	Span source.Span
	Data any
}

type SConData struct {
	Kind ast.SConKind
	Text string
}

type PathData struct{ Path Path }

type ExpRow struct {
	Label source.NameID
	Value ExpID
}

type RecordData struct{ Rows []ExpRow }

type LetData struct {
	Dec  DecID
	Body ExpID
}

type AppData struct{ Fn, Arg ExpID }

// Arm is one "pat => exp" arm of a compiled matcher, shared by Fn, Handle,
// and the desugared forms of case/if/while.
type Arm struct {
	Pat  PatID
	Body ExpID
	Span source.Span
}

type HandleData struct {
	Body ExpID
	Arms []Arm
}

type RaiseData struct{ Value ExpID }

type FnData struct{ Arms []Arm }

type TypedData struct {
	Value ExpID
	Ty    TyID
}

// Exps owns the dense arena of every Exp node produced while lowering one
// file.
type Exps struct {
	Arena *ast.Arena[Exp]
}

func NewExps() *Exps { return &Exps{Arena: ast.NewArena[Exp](1 << 8)} }

func (e *Exps) new(kind ExpKind, span source.Span, data any) ExpID {
	return ExpID(e.Arena.Allocate(Exp{Kind: kind, Span: span, Data: data}))
}

func (e *Exps) Get(id ExpID) *Exp { return e.Arena.Get(uint32(id)) }

func (e *Exps) NewHole(span source.Span) ExpID { return e.new(ExpHole, span, nil) }

func (e *Exps) NewSCon(span source.Span, kind ast.SConKind, text string) ExpID {
	return e.new(ExpSCon, span, SConData{Kind: kind, Text: text})
}

func (e *Exps) NewPath(span source.Span, p Path) ExpID {
	return e.new(ExpPath, span, PathData{Path: p})
}

func (e *Exps) NewRecord(span source.Span, rows []ExpRow) ExpID {
	return e.new(ExpRecord, span, RecordData{Rows: rows})
}

func (e *Exps) NewLet(span source.Span, dec DecID, body ExpID) ExpID {
	return e.new(ExpLet, span, LetData{Dec: dec, Body: body})
}

func (e *Exps) NewApp(span source.Span, fn, arg ExpID) ExpID {
	return e.new(ExpApp, span, AppData{Fn: fn, Arg: arg})
}

func (e *Exps) NewHandle(span source.Span, body ExpID, arms []Arm) ExpID {
	return e.new(ExpHandle, span, HandleData{Body: body, Arms: arms})
}

func (e *Exps) NewRaise(span source.Span, value ExpID) ExpID {
	return e.new(ExpRaise, span, RaiseData{Value: value})
}

func (e *Exps) NewFn(span source.Span, arms []Arm) ExpID {
	return e.new(ExpFn, span, FnData{Arms: arms})
}

func (e *Exps) NewTyped(span source.Span, value ExpID, ty TyID) ExpID {
	return e.new(ExpTyped, span, TypedData{Value: value, Ty: ty})
}

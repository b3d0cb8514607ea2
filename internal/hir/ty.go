package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

// TyKind tags the variant held in a Ty's Data field.
type TyKind uint8

const (
	TyHole TyKind = iota
	TyVar
	TyRecord
	TyCon
	TyFn
)

type Ty struct {
	Kind TyKind
	Span source.Span
	Data any
}

type TyVarData struct {
	Name     source.NameID
	Equality bool
}

type TyRow struct {
	Label source.NameID
	Value TyID
}

type TyRecordData struct{ Rows []TyRow }

type TyConData struct {
	Path Path
	Args []TyID
}

type TyFnData struct{ Arg, Res TyID }

type Tys struct {
	Arena *ast.Arena[Ty]
}

func NewTys() *Tys { return &Tys{Arena: ast.NewArena[Ty](1 << 6)} }

func (t *Tys) new(kind TyKind, span source.Span, data any) TyID {
	return TyID(t.Arena.Allocate(Ty{Kind: kind, Span: span, Data: data}))
}

func (t *Tys) Get(id TyID) *Ty { return t.Arena.Get(uint32(id)) }

func (t *Tys) NewHole(span source.Span) TyID { return t.new(TyHole, span, nil) }

func (t *Tys) NewVar(span source.Span, name source.NameID, equality bool) TyID {
	return t.new(TyVar, span, TyVarData{Name: name, Equality: equality})
}

func (t *Tys) NewRecord(span source.Span, rows []TyRow) TyID {
	return t.new(TyRecord, span, TyRecordData{Rows: rows})
}

func (t *Tys) NewCon(span source.Span, path Path, args []TyID) TyID {
	return t.new(TyCon, span, TyConData{Path: path, Args: args})
}

func (t *Tys) NewFn(span source.Span, arg, res TyID) TyID {
	return t.new(TyFn, span, TyFnData{Arg: arg, Res: res})
}

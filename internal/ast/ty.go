package ast

import "github.com/t18b219k/millet/internal/source"

// TyKind tags the variant stored in a Ty's Data field.
type TyKind uint8

const (
	TyVar TyKind = iota
	TyRecord
	TyCon // type constructor application, possibly 0-ary ("int", "'a list")
	TyTuple
	TyFn
)

// Ty is one node in the type-expression tree.
type Ty struct {
	Kind TyKind
	Span source.Span
	Data any
}

// TyVarData is the payload for a type variable reference ('a, ''eq).
type TyVarData struct {
	Name     source.NameID
	Equality bool
}

// TyRow is one "lab : ty" entry of a record type.
type TyRow struct {
	Label source.NameID
	Value TyID
	Span  source.Span
}

type TyRecordData struct{ Rows []TyRow }

// TyConData is the payload for a type constructor application: the
// (possibly qualified) type constructor name plus its argument types
// ("int" has none, "int list" has one, "(int, bool) pair" has two).
type TyConData struct {
	Con  LongID
	Args []TyID
}

type TyTupleData struct{ Elems []TyID }

// TyFnData is the payload for a function type "ty -> ty" (right-associative
// at the grammar level; the parser folds a -> b -> c into Fn(a, Fn(b, c))).
type TyFnData struct{ Arg, Res TyID }

// Tys owns the dense arena of every Ty node in one file.
type Tys struct {
	Arena *Arena[Ty]
}

func NewTys(capHint uint) *Tys {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Tys{Arena: NewArena[Ty](capHint)}
}

func (t *Tys) new(kind TyKind, span source.Span, data any) TyID {
	return TyID(t.Arena.Allocate(Ty{Kind: kind, Span: span, Data: data}))
}

func (t *Tys) Get(id TyID) *Ty { return t.Arena.Get(uint32(id)) }

func (t *Tys) NewVar(span source.Span, name source.NameID, equality bool) TyID {
	return t.new(TyVar, span, TyVarData{Name: name, Equality: equality})
}

func (t *Tys) NewRecord(span source.Span, rows []TyRow) TyID {
	return t.new(TyRecord, span, TyRecordData{Rows: append([]TyRow(nil), rows...)})
}

func (t *Tys) NewCon(span source.Span, con LongID, args []TyID) TyID {
	return t.new(TyCon, span, TyConData{Con: con, Args: append([]TyID(nil), args...)})
}

func (t *Tys) NewTuple(span source.Span, elems []TyID) TyID {
	return t.new(TyTuple, span, TyTupleData{Elems: append([]TyID(nil), elems...)})
}

func (t *Tys) NewFn(span source.Span, arg, res TyID) TyID {
	return t.new(TyFn, span, TyFnData{Arg: arg, Res: res})
}

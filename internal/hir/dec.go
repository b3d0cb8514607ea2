package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

// DecKind tags the variant held in a Dec's Data field.
type DecKind uint8

const (
	DecSeq DecKind = iota
	DecVal
	DecTy
	DecDatatype
	DecDatatypeCopy
	DecAbstype
	DecException
	DecLocal
	DecOpen
)

type Dec struct {
	Kind DecKind
	Span source.Span
	Data any
}

type SeqData struct{ Decs []DecID }

// ValBind is one "pat = exp" binding, already separated into the
// non-recursive and "rec" groups the elaborator needs.
type ValBind struct {
	Pat  PatID
	Exp  ExpID
	Span source.Span
}

type ValData struct {
	TyVars []source.NameID
	Rec    bool
	Binds  []ValBind
}

// TyBind is one "tyvarseq tycon = ty" type abbreviation binding.
type TyBind struct {
	TyVars []source.NameID
	Con    source.NameID
	Ty     TyID
	Span   source.Span
}

type TyDecData struct{ Binds []TyBind }

// ConBind is one value-constructor clause of a datatype binding.
type ConBind struct {
	Name source.NameID
	Arg  TyID // NoTyID for a constant (nullary) constructor
	Span source.Span
}

// DatBind is one "tyvarseq tycon = conbind" datatype binding.
type DatBind struct {
	TyVars []source.NameID
	Con    source.NameID
	Cons   []ConBind
	Span   source.Span
}

type DatatypeData struct{ Binds []DatBind }

type DatatypeCopyData struct {
	Con  source.NameID
	Orig Path
}

type AbstypeData struct {
	Binds []DatBind
	Body  DecID
}

// ExBind is one exception binding: a fresh exception (Arg set, or NoTyID
// for a constant exception) or a replication ("exception E = F").
type ExBind struct {
	Name source.NameID
	Arg  TyID
	Orig Path
	Repl bool
	Span source.Span
}

type ExceptionData struct{ Binds []ExBind }

type LocalData struct{ Inner, Body DecID }

type OpenData struct{ Structs []Path }

type Decs struct {
	Arena *ast.Arena[Dec]
}

func NewDecs() *Decs { return &Decs{Arena: ast.NewArena[Dec](1 << 6)} }

func (d *Decs) new(kind DecKind, span source.Span, data any) DecID {
	return DecID(d.Arena.Allocate(Dec{Kind: kind, Span: span, Data: data}))
}

func (d *Decs) Get(id DecID) *Dec { return d.Arena.Get(uint32(id)) }

func (d *Decs) NewSeq(span source.Span, decs []DecID) DecID {
	return d.new(DecSeq, span, SeqData{Decs: decs})
}

func (d *Decs) NewVal(span source.Span, tyVars []source.NameID, rec bool, binds []ValBind) DecID {
	return d.new(DecVal, span, ValData{TyVars: tyVars, Rec: rec, Binds: binds})
}

func (d *Decs) NewTy(span source.Span, binds []TyBind) DecID {
	return d.new(DecTy, span, TyDecData{Binds: binds})
}

func (d *Decs) NewDatatype(span source.Span, binds []DatBind) DecID {
	return d.new(DecDatatype, span, DatatypeData{Binds: binds})
}

func (d *Decs) NewDatatypeCopy(span source.Span, con source.NameID, orig Path) DecID {
	return d.new(DecDatatypeCopy, span, DatatypeCopyData{Con: con, Orig: orig})
}

func (d *Decs) NewAbstype(span source.Span, binds []DatBind, body DecID) DecID {
	return d.new(DecAbstype, span, AbstypeData{Binds: binds, Body: body})
}

func (d *Decs) NewException(span source.Span, binds []ExBind) DecID {
	return d.new(DecException, span, ExceptionData{Binds: binds})
}

func (d *Decs) NewLocal(span source.Span, inner, body DecID) DecID {
	return d.new(DecLocal, span, LocalData{Inner: inner, Body: body})
}

func (d *Decs) NewOpen(span source.Span, structs []Path) DecID {
	return d.new(DecOpen, span, OpenData{Structs: structs})
}

package ast

import "github.com/t18b219k/millet/internal/source"

// DecKind tags the variant stored in a Dec's Data field.
type DecKind uint8

const (
	DecEmpty DecKind = iota
	DecSeq
	DecVal
	DecFun
	DecType
	DecDatatype
	DecDatatypeRepl
	DecAbstype
	DecException
	DecLocal
	DecOpen
	DecFixity
)

// Dec is one node in the declaration tree.
type Dec struct {
	Kind DecKind
	Span source.Span
	Data any
}

// DecSeqData is the payload for a sequence of declarations, as produced by
// "dec1 ; dec2" or "dec1 dec2" juxtaposition.
type DecSeqData struct{ Decs []DecID }

// ValBind is one "pat = exp" binding of a val declaration.
type ValBind struct {
	Pat  PatID
	Exp  ExpID
	Span source.Span
}

// DecValData is the payload for "val tyvarseq [rec] valbind". Rec applies
// to every binding in the and-chain, per the Definition's grammar.
type DecValData struct {
	TyVars []source.NameID
	Rec    bool
	Binds  []ValBind
}

// FunClause is one "pat1 ... patN [: ty] = exp" clause of a function
// binding, already curried into a flat argument-pattern list by the parser
// (infix clause heads like "x less y = ..." are normalized the same way).
type FunClause struct {
	Name     source.NameID
	NameSpan source.Span
	Args     []PatID
	ResultTy TyID // NoTyID if unannotated
	Body     ExpID
	Span     source.Span
}

// FunBindGroup is one function's full set of clauses ("f p = e1 | f q =
// e2"); DecFun holds one group per "and"-separated function.
type FunBindGroup struct {
	Clauses []FunClause
}

// DecFunData is the payload for "fun tyvarseq fvalbind [and fvalbind]*".
type DecFunData struct {
	TyVars    []source.NameID
	Functions []FunBindGroup
}

// TypBind is one "tyvarseq tycon = ty" binding.
type TypBind struct {
	TyVars []source.NameID
	Con    source.NameID
	Ty     TyID
	Span   source.Span
}

// DecTypeData is the payload for "type typbind".
type DecTypeData struct{ Binds []TypBind }

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

// DecDatatypeData is the payload for "datatype datbind [withtype typbind]".
type DecDatatypeData struct {
	Binds    []DatBind
	WithType []TypBind
}

// DecDatatypeReplData is the payload for "datatype tycon = datatype
// longtycon" datatype replication.
type DecDatatypeReplData struct {
	Con  source.NameID
	Orig LongID
}

// DecAbstypeData is the payload for "abstype datbind [withtype typbind] with
// dec end": the bound datatypes are only visible, as datatypes, within Body;
// outside it they are abstract (the elaborator still exposes their value
// constructors through Body's bindings, matching the Definition's dynamic
// semantics for abstype).
type DecAbstypeData struct {
	Binds    []DatBind
	WithType []TypBind
	Body     DecID
}

// ExBind is one exception binding: either a fresh exception (Arg set, or
// NoTyID for a constant exception) or a replication ("exception E = Orig").
type ExBind struct {
	Name source.NameID
	Arg  TyID   // NoTyID if not a replication and has no carried type
	Orig LongID // set only when this is a replication ("exception E = F")
	Repl bool
	Span source.Span
}

// DecExceptionData is the payload for "exception exbind".
type DecExceptionData struct{ Binds []ExBind }

// DecLocalData is the payload for "local dec1 in dec2 end".
type DecLocalData struct {
	Inner DecID
	Body  DecID
}

// DecOpenData is the payload for "open longstrid+".
type DecOpenData struct{ Structs []LongID }

// DecFixityData is the payload for infix/infixr/nonfix declarations. The
// parser consumes these to update its FixityEnv as it goes; they carry no
// elaboration effect and lower to an empty DecSeq (see DESIGN.md Open
// Question decisions).
type DecFixityData struct {
	Kind  FixityKind
	Level int // binding power; meaningless for Nonfix
	Names []source.NameID
}

// FixityKind distinguishes infix, infixr, and nonfix declarations.
type FixityKind uint8

const (
	FixityInfix FixityKind = iota
	FixityInfixr
	FixityNonfix
)

// Decs owns the dense arena of every Dec node in one file.
type Decs struct {
	Arena *Arena[Dec]
}

func NewDecs(capHint uint) *Decs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Decs{Arena: NewArena[Dec](capHint)}
}

func (d *Decs) new(kind DecKind, span source.Span, data any) DecID {
	return DecID(d.Arena.Allocate(Dec{Kind: kind, Span: span, Data: data}))
}

func (d *Decs) Get(id DecID) *Dec { return d.Arena.Get(uint32(id)) }

func (d *Decs) NewEmpty(span source.Span) DecID { return d.new(DecEmpty, span, nil) }

func (d *Decs) NewSeq(span source.Span, decs []DecID) DecID {
	return d.new(DecSeq, span, DecSeqData{Decs: append([]DecID(nil), decs...)})
}

func (d *Decs) NewVal(span source.Span, tyVars []source.NameID, rec bool, binds []ValBind) DecID {
	return d.new(DecVal, span, DecValData{
		TyVars: append([]source.NameID(nil), tyVars...),
		Rec:    rec,
		Binds:  append([]ValBind(nil), binds...),
	})
}

func (d *Decs) NewFun(span source.Span, tyVars []source.NameID, fns []FunBindGroup) DecID {
	return d.new(DecFun, span, DecFunData{
		TyVars:    append([]source.NameID(nil), tyVars...),
		Functions: append([]FunBindGroup(nil), fns...),
	})
}

func (d *Decs) NewType(span source.Span, binds []TypBind) DecID {
	return d.new(DecType, span, DecTypeData{Binds: append([]TypBind(nil), binds...)})
}

func (d *Decs) NewDatatype(span source.Span, binds []DatBind, withType []TypBind) DecID {
	return d.new(DecDatatype, span, DecDatatypeData{
		Binds:    append([]DatBind(nil), binds...),
		WithType: append([]TypBind(nil), withType...),
	})
}

func (d *Decs) NewDatatypeRepl(span source.Span, con source.NameID, orig LongID) DecID {
	return d.new(DecDatatypeRepl, span, DecDatatypeReplData{Con: con, Orig: orig})
}

func (d *Decs) NewAbstype(span source.Span, binds []DatBind, withType []TypBind, body DecID) DecID {
	return d.new(DecAbstype, span, DecAbstypeData{
		Binds:    append([]DatBind(nil), binds...),
		WithType: append([]TypBind(nil), withType...),
		Body:     body,
	})
}

func (d *Decs) NewException(span source.Span, binds []ExBind) DecID {
	return d.new(DecException, span, DecExceptionData{Binds: append([]ExBind(nil), binds...)})
}

func (d *Decs) NewLocal(span source.Span, inner, body DecID) DecID {
	return d.new(DecLocal, span, DecLocalData{Inner: inner, Body: body})
}

func (d *Decs) NewOpen(span source.Span, structs []LongID) DecID {
	return d.new(DecOpen, span, DecOpenData{Structs: append([]LongID(nil), structs...)})
}

func (d *Decs) NewFixity(span source.Span, kind FixityKind, level int, names []source.NameID) DecID {
	return d.new(DecFixity, span, DecFixityData{Kind: kind, Level: level, Names: append([]source.NameID(nil), names...)})
}

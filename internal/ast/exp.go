package ast

import "github.com/t18b219k/millet/internal/source"

// ExpKind tags the variant stored in an Exp's Data field.
type ExpKind uint8

const (
	ExpSCon ExpKind = iota
	ExpPath
	ExpRecord
	ExpSelector // "#lab" used as a function value
	ExpTuple
	ExpList
	ExpSeq // (e1; e2; ...; en)
	ExpLet
	ExpApp
	ExpAndalso
	ExpOrelse
	ExpHandle
	ExpRaise
	ExpIf
	ExpWhile
	ExpCase
	ExpFn
	ExpTyped
)

// Exp is one node in the expression tree. Data holds the kind-specific
// payload (one of the Exp*Data types below); Kind says which.
type Exp struct {
	Kind ExpKind
	Span source.Span
	Data any
}

// ExpSConData is the payload for ExpSCon: a literal's raw source text
// (parsed into a concrete value at elaboration time, once type context —
// overload resolution — is known).
type ExpSConData struct {
	Kind SConKind
	Text string
}

// ExpPathData is the payload for ExpPath: a variable or value-constructor
// reference, possibly structure-qualified (List.map) or marked with "op".
type ExpPathData struct {
	ID LongID
}

// ExpRow is one "lab = exp" entry of a record expression.
type ExpRow struct {
	Label source.NameID
	Value ExpID
	Span  source.Span
}

// ExpRecordData is the payload for ExpRecord.
type ExpRecordData struct {
	Rows []ExpRow
}

// ExpSelectorData is the payload for ExpSelector ("#lab").
type ExpSelectorData struct {
	Label source.NameID
}

// ExpTupleData and ExpListData hold an ordered list of element expressions.
type ExpTupleData struct{ Elems []ExpID }
type ExpListData struct{ Elems []ExpID }

// ExpSeqData is the payload for a parenthesized sequence (e1; ...; en),
// whose value is its last element.
type ExpSeqData struct{ Elems []ExpID }

// ExpLetData is the payload for "let dec in exp end"; Body may hold more
// than one expression only via an inner ExpSeq.
type ExpLetData struct {
	Dec  DecID
	Body ExpID
}

// ExpAppData is the payload for application by juxtaposition (e1 e2). Infix
// operator applications are desugared by the parser into this same shape:
// "a + b" parses as App(Path(+), Tuple(a, b)).
type ExpAppData struct {
	Fn  ExpID
	Arg ExpID
}

// ExpAndalsoData / ExpOrelseData are the payloads for short-circuiting
// boolean connectives, kept distinct from ExpApp since they are not
// ordinary function applications.
type ExpAndalsoData struct{ Left, Right ExpID }
type ExpOrelseData struct{ Left, Right ExpID }

// MatchArm is one "pat => exp" arm of a match (used by case, fn, and
// handle).
type MatchArm struct {
	Pat  PatID
	Body ExpID
	Span source.Span
}

// ExpHandleData is the payload for "exp handle match".
type ExpHandleData struct {
	Body ExpID
	Arms []MatchArm
}

// ExpRaiseData is the payload for "raise exp".
type ExpRaiseData struct{ Value ExpID }

// ExpIfData is the payload for "if e1 then e2 else e3".
type ExpIfData struct{ Cond, Then, Else ExpID }

// ExpWhileData is the payload for "while e1 do e2".
type ExpWhileData struct{ Cond, Body ExpID }

// ExpCaseData is the payload for "case exp of match".
type ExpCaseData struct {
	Scrutinee ExpID
	Arms      []MatchArm
}

// ExpFnData is the payload for "fn match".
type ExpFnData struct{ Arms []MatchArm }

// ExpTypedData is the payload for "exp : ty".
type ExpTypedData struct {
	Value ExpID
	Ty    TyID
}

// Exps owns the dense arena of every Exp node in one file.
type Exps struct {
	Arena *Arena[Exp]
}

// NewExps creates an empty Exps arena.
func NewExps(capHint uint) *Exps {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exps{Arena: NewArena[Exp](capHint)}
}

func (e *Exps) new(kind ExpKind, span source.Span, data any) ExpID {
	return ExpID(e.Arena.Allocate(Exp{Kind: kind, Span: span, Data: data}))
}

// Get returns the node at id, or nil for NoExpID.
func (e *Exps) Get(id ExpID) *Exp { return e.Arena.Get(uint32(id)) }

func (e *Exps) NewSCon(span source.Span, kind SConKind, text string) ExpID {
	return e.new(ExpSCon, span, ExpSConData{Kind: kind, Text: text})
}

func (e *Exps) NewPath(span source.Span, id LongID) ExpID {
	return e.new(ExpPath, span, ExpPathData{ID: id})
}

func (e *Exps) NewRecord(span source.Span, rows []ExpRow) ExpID {
	return e.new(ExpRecord, span, ExpRecordData{Rows: append([]ExpRow(nil), rows...)})
}

func (e *Exps) NewSelector(span source.Span, label source.NameID) ExpID {
	return e.new(ExpSelector, span, ExpSelectorData{Label: label})
}

func (e *Exps) NewTuple(span source.Span, elems []ExpID) ExpID {
	return e.new(ExpTuple, span, ExpTupleData{Elems: append([]ExpID(nil), elems...)})
}

func (e *Exps) NewList(span source.Span, elems []ExpID) ExpID {
	return e.new(ExpList, span, ExpListData{Elems: append([]ExpID(nil), elems...)})
}

func (e *Exps) NewSeq(span source.Span, elems []ExpID) ExpID {
	return e.new(ExpSeq, span, ExpSeqData{Elems: append([]ExpID(nil), elems...)})
}

func (e *Exps) NewLet(span source.Span, dec DecID, body ExpID) ExpID {
	return e.new(ExpLet, span, ExpLetData{Dec: dec, Body: body})
}

func (e *Exps) NewApp(span source.Span, fn, arg ExpID) ExpID {
	return e.new(ExpApp, span, ExpAppData{Fn: fn, Arg: arg})
}

func (e *Exps) NewAndalso(span source.Span, left, right ExpID) ExpID {
	return e.new(ExpAndalso, span, ExpAndalsoData{Left: left, Right: right})
}

func (e *Exps) NewOrelse(span source.Span, left, right ExpID) ExpID {
	return e.new(ExpOrelse, span, ExpOrelseData{Left: left, Right: right})
}

func (e *Exps) NewHandle(span source.Span, body ExpID, arms []MatchArm) ExpID {
	return e.new(ExpHandle, span, ExpHandleData{Body: body, Arms: append([]MatchArm(nil), arms...)})
}

func (e *Exps) NewRaise(span source.Span, value ExpID) ExpID {
	return e.new(ExpRaise, span, ExpRaiseData{Value: value})
}

func (e *Exps) NewIf(span source.Span, cond, then, els ExpID) ExpID {
	return e.new(ExpIf, span, ExpIfData{Cond: cond, Then: then, Else: els})
}

func (e *Exps) NewWhile(span source.Span, cond, body ExpID) ExpID {
	return e.new(ExpWhile, span, ExpWhileData{Cond: cond, Body: body})
}

func (e *Exps) NewCase(span source.Span, scrutinee ExpID, arms []MatchArm) ExpID {
	return e.new(ExpCase, span, ExpCaseData{Scrutinee: scrutinee, Arms: append([]MatchArm(nil), arms...)})
}

func (e *Exps) NewFn(span source.Span, arms []MatchArm) ExpID {
	return e.new(ExpFn, span, ExpFnData{Arms: append([]MatchArm(nil), arms...)})
}

func (e *Exps) NewTyped(span source.Span, value ExpID, ty TyID) ExpID {
	return e.new(ExpTyped, span, ExpTypedData{Value: value, Ty: ty})
}

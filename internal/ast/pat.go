package ast

import "github.com/t18b219k/millet/internal/source"

// PatKind tags the variant stored in a Pat's Data field.
type PatKind uint8

const (
	PatWild PatKind = iota
	PatSCon
	PatPath  // bare variable or nullary constructor reference
	PatConApp
	PatRecord
	PatTuple
	PatList
	PatLayered // "vid : ty as pat" or "vid as pat"
	PatTyped
)

// Pat is one node in the pattern tree.
type Pat struct {
	Kind PatKind
	Span source.Span
	Data any
}

type PatSConData struct {
	Kind SConKind
	Text string
}

// PatPathData is the payload for PatWild is none, PatPath holds a bare
// variable/constructor reference.
type PatPathData struct{ ID LongID }

// PatConAppData is the payload for a constructor applied to an argument
// pattern, covering both prefix ("SOME x") and parser-resolved infix
// ("x :: xs" becomes ConApp("::", Tuple(x, xs))) constructor patterns.
type PatConAppData struct {
	Con LongID
	Arg PatID
}

// PatRow is one "lab = pat" entry of a record pattern.
type PatRow struct {
	Label source.NameID
	Value PatID
	Span  source.Span
}

// PatRecordData is the payload for PatRecord; Rest records whether the
// pattern ends in "...", a partial-match wildcard for the remaining labels.
type PatRecordData struct {
	Rows []PatRow
	Rest bool
}

type PatTupleData struct{ Elems []PatID }
type PatListData struct{ Elems []PatID }

// PatLayeredData is the payload for an "as" pattern: "vid [: ty] as pat".
type PatLayeredData struct {
	Var LongID
	Ty  TyID // NoTyID if no annotation
	Sub PatID
}

// PatTypedData is the payload for "pat : ty".
type PatTypedData struct {
	Value PatID
	Ty    TyID
}

// Pats owns the dense arena of every Pat node in one file.
type Pats struct {
	Arena *Arena[Pat]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Pats{Arena: NewArena[Pat](capHint)}
}

func (p *Pats) new(kind PatKind, span source.Span, data any) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Data: data}))
}

func (p *Pats) Get(id PatID) *Pat { return p.Arena.Get(uint32(id)) }

func (p *Pats) NewWild(span source.Span) PatID { return p.new(PatWild, span, nil) }

func (p *Pats) NewSCon(span source.Span, kind SConKind, text string) PatID {
	return p.new(PatSCon, span, PatSConData{Kind: kind, Text: text})
}

func (p *Pats) NewPath(span source.Span, id LongID) PatID {
	return p.new(PatPath, span, PatPathData{ID: id})
}

func (p *Pats) NewConApp(span source.Span, con LongID, arg PatID) PatID {
	return p.new(PatConApp, span, PatConAppData{Con: con, Arg: arg})
}

func (p *Pats) NewRecord(span source.Span, rows []PatRow, rest bool) PatID {
	return p.new(PatRecord, span, PatRecordData{Rows: append([]PatRow(nil), rows...), Rest: rest})
}

func (p *Pats) NewTuple(span source.Span, elems []PatID) PatID {
	return p.new(PatTuple, span, PatTupleData{Elems: append([]PatID(nil), elems...)})
}

func (p *Pats) NewList(span source.Span, elems []PatID) PatID {
	return p.new(PatList, span, PatListData{Elems: append([]PatID(nil), elems...)})
}

func (p *Pats) NewLayered(span source.Span, v LongID, ty TyID, sub PatID) PatID {
	return p.new(PatLayered, span, PatLayeredData{Var: v, Ty: ty, Sub: sub})
}

func (p *Pats) NewTyped(span source.Span, value PatID, ty TyID) PatID {
	return p.new(PatTyped, span, PatTypedData{Value: value, Ty: ty})
}

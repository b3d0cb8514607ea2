package hir

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
)

// PatKind tags the variant held in a Pat's Data field.
type PatKind uint8

const (
	PatWild PatKind = iota
	PatSCon
	PatCon
	PatRecord
	PatTyped
	PatAs
	PatOr
)

type Pat struct {
	Kind PatKind
	Span source.Span
	Data any
}

type PatSConData struct {
	Kind ast.SConKind
	Text string
}

// PatConData is the payload for both a bare variable binding (Con with a
// path that the elaborator's id-status lookup resolves to IDVal and Arg ==
// NoPatID) and a true constructor application.
type PatConData struct {
	Path Path
	Arg  PatID // NoPatID for a constant/bare reference
}

type PatRow struct {
	Label source.NameID
	Value PatID
}

// PatRecordData is the payload for PatRecord; AllowsOther mirrors a
// trailing "..." partial-match wildcard.
type PatRecordData struct {
	Rows        []PatRow
	AllowsOther bool
}

type PatTypedData struct {
	Value PatID
	Ty    TyID
}

// PatAsData is the payload for an "as" pattern, binding Name to whatever
// Sub matches.
type PatAsData struct {
	Name source.NameID
	Sub  PatID
}

// PatOrData is the payload for an "or"-pattern (SML/NJ extension). The
// surface grammar this core parses has no "or"-pattern syntax and nothing
// in the pipeline builds one; the elaborator still handles the shape and
// hands internal/dtree an Or pattern for it.
type PatOrData struct{ Alts []PatID }

type Pats struct {
	Arena *ast.Arena[Pat]
}

func NewPats() *Pats { return &Pats{Arena: ast.NewArena[Pat](1 << 7)} }

func (p *Pats) new(kind PatKind, span source.Span, data any) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Data: data}))
}

func (p *Pats) Get(id PatID) *Pat { return p.Arena.Get(uint32(id)) }

func (p *Pats) NewWild(span source.Span) PatID { return p.new(PatWild, span, nil) }

func (p *Pats) NewSCon(span source.Span, kind ast.SConKind, text string) PatID {
	return p.new(PatSCon, span, PatSConData{Kind: kind, Text: text})
}

func (p *Pats) NewCon(span source.Span, path Path, arg PatID) PatID {
	return p.new(PatCon, span, PatConData{Path: path, Arg: arg})
}

func (p *Pats) NewRecord(span source.Span, rows []PatRow, allowsOther bool) PatID {
	return p.new(PatRecord, span, PatRecordData{Rows: rows, AllowsOther: allowsOther})
}

func (p *Pats) NewTyped(span source.Span, value PatID, ty TyID) PatID {
	return p.new(PatTyped, span, PatTypedData{Value: value, Ty: ty})
}

func (p *Pats) NewAs(span source.Span, name source.NameID, sub PatID) PatID {
	return p.new(PatAs, span, PatAsData{Name: name, Sub: sub})
}

func (p *Pats) NewOr(span source.Span, alts []PatID) PatID {
	return p.new(PatOr, span, PatOrData{Alts: alts})
}

package ast

import "github.com/t18b219k/millet/internal/source"

// ExpID, PatID, TyID, and DecID are dense, 1-based indices into their
// respective per-file arenas; 0 is the "no node" sentinel, mirroring the
// arena convention every later stage (HIR, elaborator) reuses.
type (
	ExpID uint32
	PatID uint32
	TyID  uint32
	DecID uint32
)

const (
	NoExpID ExpID = 0
	NoPatID PatID = 0
	NoTyID  TyID  = 0
	NoDecID DecID = 0
)

// LongID is a possibly structure-qualified identifier: zero or more leading
// "strid" path components, then a final name. Both the components and the
// final name reference an Interner's NameID so repeated spellings (e.g.
// "List" in "List.map" and "List.filter") share one id.
type LongID struct {
	Qual []source.NameID
	Name source.NameID
	// Op records whether the identifier was written with an explicit "op"
	// prefix (op +, op ::), which matters for the parser's fixity handling
	// but not for name resolution itself.
	Op   bool
	Span source.Span
}

// IsQualified reports whether the identifier has any leading strid path.
func (l LongID) IsQualified() bool { return len(l.Qual) > 0 }

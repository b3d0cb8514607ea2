// Package hir implements the higher-level intermediate representation:
// four parallel arenas (Exp, Pat, Ty, Dec) of dense-index-referenced,
// Kind-tagged nodes, immutable once the lowerer builds them, specialized
// to SML's expression/pattern/type/declaration grammar.
package hir

import "github.com/t18b219k/millet/internal/source"

// ExpID, PatID, TyID, and DecID are dense, 1-based indices into their
// respective arenas; 0 (NoExpID, NoPatID, NoTyID, NoDecID) is the
// "syntactically absent" sentinel,
// which elaboration treats as the noncommittal type bottom (None) rather
// than as a placeholder to special-case in every rule.
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

// Path is a qualified name as it appears in HIR: the lowerer copies it
// directly from the AST's ast.LongID (string-qualified-name resolution
// happens during elaboration, not lowering).
type Path struct {
	Qual []source.NameID
	Name source.NameID
	Op   bool
}

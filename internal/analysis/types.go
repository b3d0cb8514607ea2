// Package analysis implements the Info/Query layer: the host-facing
// Analysis API (New, get_many, hover, defs, document symbols,
// completions) built over internal/group's driver output and
// internal/env's per-file Info store, following the Definition of
// Standard ML's own vocabulary (hover/defs/symbols/completions).
package analysis

import (
	"github.com/t18b219k/millet/internal/diag"
)

// Position is a zero-based line/UTF-16-code-unit position, 's
// "range: (start,end) in UTF-16 code units... lines and columns are
// zero-based".
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open [Start, End) position pair.
type Range struct {
	Start Position
	End   Position
}

// Location pairs a Range with the file path it lives in, the shape
// GetDefs returns one of.
type Location struct {
	Path  string
	Range Range
}

// Diagnostic is this package's external diagnostic record: range, message,
// severity, and a numeric code.
type Diagnostic struct {
	Range    Range
	Message  string
	Severity diag.Severity
	Code     uint16
}

// SymbolKind classifies one DocumentSymbol entry.
type SymbolKind uint8

const (
	SymFunctor SymbolKind = iota
	SymSignature
	SymStructure
	SymType
	SymValue
	SymException
	SymConstructor
)

// DocumentSymbol is one node of the symbol tree document_symbols returns.
type DocumentSymbol struct {
	Name     string
	Detail   string
	Kind     SymbolKind
	Range    Range
	Children []DocumentSymbol
}

// CompletionItem is one entry completions returns: "names in the top-level
// value environment with their types".
type CompletionItem struct {
	Label  string
	Detail string
	Kind   SymbolKind
}

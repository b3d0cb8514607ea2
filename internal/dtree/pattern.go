// Package dtree implements the pattern-match compiler: exhaustiveness and
// redundancy analysis over a simplified pattern representation built by
// internal/elab while it elaborates a Fn/Handle matcher or a Val binding's
// pattern, using exhaustive switch-over-Kind dispatch generalized to
// Maranget-style pattern-matrix coverage checking over SML's datatype,
// record, and literal pattern grammar.
package dtree

import "github.com/t18b219k/millet/internal/ast"

// Kind tags the variant held by a Pattern, a simplified view of an
// already-elaborated hir.Pat with As/Typed wrappers stripped (they don't
// affect coverage) and identifier status already resolved (the elaborator
// is the only stage that knows whether a bare path names a constructor or a
// fresh binding).
type Kind uint8

const (
	// Wild covers both an explicit wildcard and an ordinary variable
	// binding: both match every value of their type unconditionally.
	Wild Kind = iota
	Lit
	Con
	Record
	Or
)

// Pattern is the pattern-match compiler's simplified input: one column of
// one matcher arm (or one alternative of an Or-pattern).
type Pattern struct {
	Kind Kind

	LitKind ast.SConKind
	LitText string // for Lit

	ConName string // for Con
	ConArg  *Pattern

	Fields      map[string]Pattern // for Record
	AllowsOther bool

	Alts []Pattern // for Or
}

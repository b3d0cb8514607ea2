package env

import (
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/types"
)

// Mode distinguishes the three ways a HIR index can be looked up. Regular
// is the only mode this core's elaborator currently populates; Dynamics
// and PathOrder exist so Info's shape matches what a later
// dynamic-semantics or module-ordering pass would need to add to, without
// another reshaping of the map keys.
type Mode uint8

const (
	// ModeRegular is an ordinary static-semantics lookup: the type an
	// expression or pattern elaborated to.
	ModeRegular Mode = iota
	// ModeDynamics marks an index recorded for a dynamic-semantics view
	//.
	ModeDynamics
	// ModePathOrder marks an index recorded to preserve the textual order
	// paths were resolved in. Completions do not read it.
	ModePathOrder
)

// TyEntry is the type half of one Info entry: the type this occurrence
// elaborated to, plus — when the occurrence's identifier was instantiated
// from a polymorphic binding — the "most general" scheme the Info/Query
// layer's hover view shows alongside "this usage".
type TyEntry struct {
	Ty     types.Ty
	Scheme *types.TyScheme
}

// InfoEntry is one HIR index's worth of recorded information: its type (if
// any), its definition site(s), and a doc comment. The elaborator does not
// fill in Doc, so it is always empty.
type InfoEntry struct {
	TyEntry *TyEntry
	Def     []source.Span
	Doc     string
}

// Info is the elaborator's accumulated store of per-node information the
// Info/Query layer answers hover, definition, and completion queries from
//. Exp and Pat entries are stored in separate maps since they
// are different HIR index spaces; Decs are tracked only for the document
// symbols tree, which needs definition spans, not types.
type Info struct {
	Mode Mode

	Exps map[hir.ExpID]InfoEntry
	Pats map[hir.PatID]InfoEntry
	Decs map[hir.DecID]InfoEntry
}

// NewInfo creates an empty Info store in ModeRegular.
func NewInfo() *Info {
	return &Info{
		Mode: ModeRegular,
		Exps: make(map[hir.ExpID]InfoEntry),
		Pats: make(map[hir.PatID]InfoEntry),
		Decs: make(map[hir.DecID]InfoEntry),
	}
}

// RecordExp stores entry for id, merging additional definition sites into
// any entry already recorded (the `or`-pattern multi-def case).
func (i *Info) RecordExp(id hir.ExpID, entry InfoEntry) {
	i.Exps[id] = mergeInfoEntry(i.Exps[id], entry)
}

// RecordPat stores entry for id the same way RecordExp does for Exps.
func (i *Info) RecordPat(id hir.PatID, entry InfoEntry) {
	i.Pats[id] = mergeInfoEntry(i.Pats[id], entry)
}

// RecordDec stores entry for id, used by document-symbol construction.
func (i *Info) RecordDec(id hir.DecID, entry InfoEntry) {
	i.Decs[id] = mergeInfoEntry(i.Decs[id], entry)
}

func mergeInfoEntry(existing, incoming InfoEntry) InfoEntry {
	if incoming.TyEntry != nil {
		existing.TyEntry = incoming.TyEntry
	}
	if incoming.Doc != "" {
		existing.Doc = incoming.Doc
	}
	existing.Def = append(existing.Def, incoming.Def...)
	return existing
}

// HoverExp returns the recorded type entry for an expression occurrence,
// if any.
func (i *Info) HoverExp(id hir.ExpID) (*TyEntry, bool) {
	e, ok := i.Exps[id]
	if !ok || e.TyEntry == nil {
		return nil, false
	}
	return e.TyEntry, true
}

// HoverPat returns the recorded type entry for a pattern occurrence, if
// any.
func (i *Info) HoverPat(id hir.PatID) (*TyEntry, bool) {
	p, ok := i.Pats[id]
	if !ok || p.TyEntry == nil {
		return nil, false
	}
	return p.TyEntry, true
}

// DefsExp returns the recorded definition-site spans for an expression
// occurrence.
func (i *Info) DefsExp(id hir.ExpID) []source.Span { return i.Exps[id].Def }

// DefsPat returns the recorded definition-site spans for a pattern
// occurrence.
func (i *Info) DefsPat(id hir.PatID) []source.Span { return i.Pats[id].Def }

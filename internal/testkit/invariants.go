// Package testkit provides span-invariant checking shared across this
// repository's unit tests: every HIR node's span must stay within its
// owning file's content and, aside from the zero-length placeholder
// sentinels, must be non-empty. It walks internal/hir's four arenas,
// since the span-bearing tree one stage later is the lowering target,
// not the parser's own AST.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
)

// CheckHIRSpans walks every node in arenas and verifies that its span
// belongs to file and lies within file's content. ExpHole/PatWild/TyHole/
// an empty DecSeq are allowed a zero-length span; every other node must have End > Start.
func CheckHIRSpans(arenas *hir.Arenas, file *source.File) error {
	if arenas == nil || file == nil {
		return fmt.Errorf("nil arenas or file")
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	checkSpan := func(what string, idx uint32, sp source.Span, allowEmpty bool) error {
		if sp.File != file.ID {
			return fmt.Errorf("%s #%d: span points to file %d, want %d", what, idx, sp.File, file.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("%s #%d: span end before start: %v", what, idx, sp)
		}
		if !allowEmpty && sp.End == sp.Start {
			return fmt.Errorf("%s #%d: unexpectedly empty span: %v", what, idx, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s #%d: span end %d beyond content length %d", what, idx, sp.End, lenContent)
		}
		return nil
	}

	for i := uint32(1); i <= arenas.Exps.Arena.Len(); i++ {
		e := arenas.Exps.Get(hir.ExpID(i))
		if err := checkSpan("Exp", i, e.Span, e.Kind == hir.ExpHole); err != nil {
			return err
		}
	}
	for i := uint32(1); i <= arenas.Pats.Arena.Len(); i++ {
		p := arenas.Pats.Get(hir.PatID(i))
		if err := checkSpan("Pat", i, p.Span, p.Kind == hir.PatWild); err != nil {
			return err
		}
	}
	for i := uint32(1); i <= arenas.Tys.Arena.Len(); i++ {
		t := arenas.Tys.Get(hir.TyID(i))
		if err := checkSpan("Ty", i, t.Span, t.Kind == hir.TyHole); err != nil {
			return err
		}
	}
	for i := uint32(1); i <= arenas.Decs.Arena.Len(); i++ {
		d := arenas.Decs.Get(hir.DecID(i))
		if err := checkSpan("Dec", i, d.Span, d.Kind == hir.DecSeq); err != nil {
			return err
		}
	}
	return nil
}

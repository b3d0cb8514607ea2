package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/t18b219k/millet/internal/config"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/group"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/trace"
	"github.com/t18b219k/millet/internal/types"
)

// Options configures Analysis.New, mirroring 's
// `new(std_basis, err_lines, overrides, limit)`.
type Options struct {
	// StdBasis names an alternate initial basis source. GetMany does not
	// read it: every group is elaborated against elab.InitialBasis.
	StdBasis string
	// ErrLines asks for resolved line/column positions alongside the
	// UTF-16 range. GetMany does not read it.
	ErrLines bool
	// Overrides is the optional parsed workspace config. GetMany does not
	// read it.
	Overrides *config.Config
	// Limit caps the number of diagnostics returned per file; 0 means
	// unbounded.
	Limit int

	FS     group.FileSystem
	Tracer trace.Tracer
}

// Analysis is the host-facing query surface. One Analysis is built with
// New and then driven with GetMany followed by any number of
// hover/defs/symbols/completions queries against the cached result.
type Analysis struct {
	opts   Options
	result *group.Result
}

// New creates an Analysis over opts. No group has been loaded yet; call
// GetMany to run the pipeline before issuing any other query.
func New(opts Options) *Analysis {
	if opts.FS == nil {
		opts.FS = group.OSFileSystem{}
	}
	return &Analysis{opts: opts}
}

// GetMany runs the group driver over rootGroupPath and returns every
// collected diagnostic keyed by file path. A file is identified by its
// path string at this host-facing boundary since that is what a caller
// can act on.
func (a *Analysis) GetMany(ctx context.Context, rootGroupPath string) (map[string][]Diagnostic, error) {
	res, err := group.Load(ctx, rootGroupPath, group.Options{FS: a.opts.FS, Tracer: a.opts.Tracer})
	if err != nil {
		return nil, err
	}
	a.result = res

	out := make(map[string][]Diagnostic, len(res.Diagnostics))
	for fid, bag := range res.Diagnostics {
		f := res.FileSet.Get(fid)
		items := bag.Items()
		limit := a.opts.Limit
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		ds := make([]Diagnostic, len(items))
		for i, d := range items {
			ds[i] = Diagnostic{
				Range:    spanToRange(f, d.Primary),
				Message:  d.Message,
				Severity: d.Severity,
				Code:     uint16(d.Code),
			}
		}
		out[f.Path] = ds
	}
	return out, nil
}

// requireResult guards every query method against being called before
// GetMany has populated a.result.
func (a *Analysis) requireResult() (*group.Result, bool) {
	return a.result, a.result != nil
}

// fileAndOffset resolves a path+Position query into the file and byte
// offset the HIR arenas are indexed by.
func (a *Analysis) fileAndOffset(path string, pos Position) (source.FileID, *source.File, uint32, bool) {
	res, ok := a.requireResult()
	if !ok {
		return 0, nil, 0, false
	}
	fid, ok := res.FileSet.GetLatest(path)
	if !ok {
		return 0, nil, 0, false
	}
	f := res.FileSet.Get(fid)
	off, ok := positionToByteOffset(f, pos)
	if !ok {
		return 0, nil, 0, false
	}
	return fid, f, off, true
}

// GetMd answers a hover query: the type of the narrowest expression or
// pattern enclosing pos, plus its range. With markdown set the type is
// wrapped in an sml code block; otherwise it is plain text. When the path
// was instantiated from a polytype, this usage's own type is followed by a
// "most general" line with the scheme.
func (a *Analysis) GetMd(path string, pos Position, markdown bool) (string, Range, bool) {
	res, ok := a.requireResult()
	if !ok {
		return "", Range{}, false
	}
	fid, f, off, ok := a.fileAndOffset(path, pos)
	if !ok {
		return "", Range{}, false
	}
	arenas, ok := res.Arenas[fid]
	if !ok {
		return "", Range{}, false
	}
	st, ok := res.States[fid]
	if !ok {
		return "", Range{}, false
	}

	printer := types.NewPrinter(func(s types.Sym) string { return res.Syms.Path(s) }, st.MetaGen, st.Subst, st.FixedGen)

	if expID, span, found := narrowestExp(arenas, off); found {
		if entry, ok := st.Info.HoverExp(expID); ok {
			return renderHover(printer, entry, markdown), spanToRange(f, span), true
		}
	}
	if patID, span, found := narrowestPat(arenas, off); found {
		if entry, ok := st.Info.HoverPat(patID); ok {
			return renderHover(printer, entry, markdown), spanToRange(f, span), true
		}
	}
	return "", Range{}, false
}

func renderHover(printer *types.Printer, entry *env.TyEntry, markdown bool) string {
	usage := printer.String(entry.Ty)
	if entry.Scheme == nil {
		if markdown {
			return fmt.Sprintf("```sml\n%s\n```", usage)
		}
		return usage
	}
	general := printer.SchemeString(*entry.Scheme)
	if markdown {
		return fmt.Sprintf("```sml\n%s\n```\nmost general: `%s`", usage, general)
	}
	return fmt.Sprintf("%s\nmost general: %s", usage, general)
}

// GetDefs answers a definition query: every definition site recorded for
// the narrowest expression or pattern enclosing pos (there may be more
// than one, e.g. for an or-pattern).
func (a *Analysis) GetDefs(path string, pos Position) []Location {
	res, ok := a.requireResult()
	if !ok {
		return nil
	}
	fid, f, off, ok := a.fileAndOffset(path, pos)
	if !ok {
		return nil
	}
	arenas, ok := res.Arenas[fid]
	if !ok {
		return nil
	}
	st := res.States[fid]
	if st == nil {
		return nil
	}

	var spans []source.Span
	if expID, _, found := narrowestExp(arenas, off); found {
		spans = st.Info.DefsExp(expID)
	}
	if len(spans) == 0 {
		if patID, _, found := narrowestPat(arenas, off); found {
			spans = st.Info.DefsPat(patID)
		}
	}

	locs := make([]Location, 0, len(spans))
	for _, sp := range spans {
		defFile := f
		if sp.File != fid && res.FileSet.HasFile(sp.File) {
			defFile = res.FileSet.Get(sp.File)
		}
		locs = append(locs, Location{Path: defFile.Path, Range: spanToRange(defFile, sp)})
	}
	return locs
}

// DocumentSymbols builds the symbol tree for path's own top-level bindings
//. Functors,
// signatures, and structures are always empty groups: this core's module
// system is core-language only (DESIGN.md Open Question decision #4).
func (a *Analysis) DocumentSymbols(path string) []DocumentSymbol {
	res, ok := a.requireResult()
	if !ok {
		return nil
	}
	fid, ok := res.FileSet.GetLatest(path)
	if !ok {
		return nil
	}
	delta := res.Deltas[fid]
	if delta == nil {
		return nil
	}

	groups := []DocumentSymbol{
		{Name: "functors", Kind: SymFunctor},
		{Name: "signatures", Kind: SymSignature},
		{Name: "structures", Kind: SymStructure},
		{Name: "types", Kind: SymType, Children: tyChildren(delta)},
		{Name: "values", Kind: SymValue, Children: valChildren(delta, env.IDVal)},
		{Name: "exceptions", Kind: SymException, Children: valChildren(delta, env.IDExn)},
		{Name: "constructors", Kind: SymConstructor, Children: valChildren(delta, env.IDCon)},
	}
	return groups
}

func tyChildren(e *env.Env) []DocumentSymbol {
	names := sortedKeysTy(e.TyEnv)
	out := make([]DocumentSymbol, 0, len(names))
	for _, name := range names {
		out = append(out, DocumentSymbol{Name: name, Kind: SymType})
	}
	return out
}

func valChildren(e *env.Env, tag env.IDStatusTag) []DocumentSymbol {
	names := sortedKeysVal(e.ValEnv)
	out := make([]DocumentSymbol, 0, len(names))
	for _, name := range names {
		if e.ValEnv[name].Status.Tag != tag {
			continue
		}
		out = append(out, DocumentSymbol{Name: name, Kind: SymValue})
	}
	return out
}

// Completions lists the top-level value environment's names with their
// types.
func (a *Analysis) Completions(path string, pos Position) []CompletionItem {
	res, ok := a.requireResult()
	if !ok {
		return nil
	}
	_, _, _, ok = a.fileAndOffset(path, pos)
	if !ok {
		return nil
	}
	printer := types.NewPrinter(func(s types.Sym) string { return res.Syms.Path(s) }, nil, nil, nil)

	names := sortedKeysVal(res.Basis.ValEnv)
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		vi := res.Basis.ValEnv[name]
		kind := SymValue
		switch vi.Status.Tag {
		case env.IDCon:
			kind = SymConstructor
		case env.IDExn:
			kind = SymException
		}
		items = append(items, CompletionItem{
			Label:  name,
			Detail: printer.SchemeString(vi.Scheme),
			Kind:   kind,
		})
	}
	return items
}

func sortedKeysTy(m map[string]env.TyEnvEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysVal(m map[string]env.ValInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// narrowestExp finds the Exp node with the smallest span containing offset,
// the HIR analogue of an LSP "innermost enclosing node" lookup.
func narrowestExp(arenas *hir.Arenas, offset uint32) (hir.ExpID, source.Span, bool) {
	var best hir.ExpID
	var bestSpan source.Span
	bestLen := uint32(math.MaxUint32)
	n := arenas.Exps.Arena.Len()
	for i := uint32(1); i <= n; i++ {
		id := hir.ExpID(i)
		node := arenas.Exps.Get(id)
		if !contains(node.Span, offset) {
			continue
		}
		if l := node.Span.Len(); l < bestLen {
			bestLen = l
			best = id
			bestSpan = node.Span
		}
	}
	return best, bestSpan, best != hir.NoExpID
}

// narrowestPat is narrowestExp's Pat analogue.
func narrowestPat(arenas *hir.Arenas, offset uint32) (hir.PatID, source.Span, bool) {
	var best hir.PatID
	var bestSpan source.Span
	bestLen := uint32(math.MaxUint32)
	n := arenas.Pats.Arena.Len()
	for i := uint32(1); i <= n; i++ {
		id := hir.PatID(i)
		node := arenas.Pats.Get(id)
		if !contains(node.Span, offset) {
			continue
		}
		if l := node.Span.Len(); l < bestLen {
			bestLen = l
			best = id
			bestSpan = node.Span
		}
	}
	return best, bestSpan, best != hir.NoPatID
}

func contains(span source.Span, offset uint32) bool {
	return offset >= span.Start && offset <= span.End
}

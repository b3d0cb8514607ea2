package group

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/elab"
	"github.com/t18b219k/millet/internal/env"
	"github.com/t18b219k/millet/internal/hir"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/observ"
	"github.com/t18b219k/millet/internal/parser"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/trace"
)

// FileSystem is the abstract filesystem collaborator the driver loads
// group files and their sources through: IsFile, ReadFile, Canonicalize.
// The driver never talks to `os` directly so a host can sandbox or
// virtualize it.
type FileSystem interface {
	IsFile(path string) bool
	ReadFile(path string) ([]byte, error)
	Canonicalize(path string) (string, error)
}

// fileUnit is one SML source file discovered while walking the group
// graph, carrying its lowered HIR plus lex/parse/lower diagnostics once the
// parallel prefetch phase (below) has run.
type fileUnit struct {
	path   string
	fileID source.FileID
	file   *source.File
	ast    *hirUnit
	bag    *diag.Bag
}

// hirUnit defers lowering until the sequential elaboration phase, since
// lowering needs the interner in a data race-free single-writer fashion
//; only lex+parse are safe to run concurrently.
type hirUnit struct {
	arenas *hir.Arenas
	top    hir.DecID
}

// Result is everything the group driver produces for one run: per-file
// diagnostics, the final accumulated basis, and per-file elaborator state
// (for the Info/Query layer to read hover/def/completion data from).
type Result struct {
	FileSet     *source.FileSet
	Interner    *source.Interner
	Syms        *sym.Table
	Diagnostics map[source.FileID]*diag.Bag
	Basis       *env.Env
	States      map[source.FileID]*elab.St
	Arenas      map[source.FileID]*hir.Arenas
	Deltas      map[source.FileID]*env.Env
	Order       []source.FileID
	Timer       *observ.Timer
}

// Options configures one Load call.
type Options struct {
	FS      FileSystem
	Jobs    int // concurrent prefetch workers; 0 means no limit
	Tracer  trace.Tracer
}

// Load implements the group driver contract: parse the root
// group file and every transitively referenced group file, read their SML
// sources, build the group dependency DAG, topologically sort it (failing
// with an error wrapping errCycle if it is not a DAG), then elaborate each
// group's files in order under an accumulating basis. IO failures, a cycle
// and a root that is not a .mlb/.cm file are returned as a Go error;
// everything else is collected into Result.Diagnostics.
func Load(ctx context.Context, rootPath string, opts Options) (*Result, error) {
	driverSpan := trace.Begin(opts.Tracer, trace.ScopeDriver, "group-load", 0)
	defer driverSpan.End(rootPath)

	fs := opts.FS
	canon, err := fs.Canonicalize(rootPath)
	if err != nil {
		return nil, fmt.Errorf("canonicalize %q: %w", rootPath, err)
	}
	if ext := extOf(canon); ext != ".mlb" && ext != ".cm" {
		return nil, fmt.Errorf("%s: %w", canon, errNotGroup)
	}

	fileSet := source.NewFileSet()
	groupBags := make(map[string]*diag.Bag)
	manifests := make(map[string]*Manifest)

	if err := discover(canon, fs, fileSet, manifests, groupBags); err != nil {
		return nil, err
	}

	idx := BuildIndex(manifests)
	g := BuildGraph(idx, manifests)
	topo := Toposort(g)

	diagnostics := make(map[source.FileID]*diag.Bag)
	for path, bag := range groupBags {
		m := manifests[path]
		if m == nil || bag.Len() == 0 {
			continue
		}
		// Group-file diagnostics are not keyed to an SML FileID; attach them
		// to a synthetic virtual file so Result.Diagnostics stays keyed
		// uniformly by source.FileID.
		fid := fileSet.AddVirtual(path, nil)
		diagnostics[fid] = bag
	}

	if topo.Cyclic {
		names := make([]string, len(topo.Cycle))
		for i, id := range topo.Cycle {
			names[i] = idx.IDToPath[int(id)]
		}
		return nil, fmt.Errorf("group dependency cycle: %v: %w", names, errCycle)
	}

	// Collect the full, de-duplicated set of SML sources across every group
	// in topo order, preserving first-seen order for elaboration.
	var sourceOrder []string
	seenSource := make(map[string]bool)
	for _, id := range topo.Order {
		m := manifests[idx.IDToPath[int(id)]]
		if m == nil {
			continue
		}
		for _, ref := range m.Sources {
			if seenSource[ref.Path] {
				continue
			}
			seenSource[ref.Path] = true
			sourceOrder = append(sourceOrder, ref.Path)
		}
	}

	units := make([]*fileUnit, len(sourceOrder))
	for i, p := range sourceOrder {
		units[i] = &fileUnit{path: p}
	}

	interner := source.NewInterner()

	// Parallel prefetch: read, lex, and parse every file concurrently; elaboration
	// below stays strictly sequential.
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		eg.SetLimit(opts.Jobs)
	}
	fileIDs := make([]source.FileID, len(units))
	for i := range units {
		i := i
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			u := units[i]
			fileSpan := trace.Begin(opts.Tracer, trace.ScopeModule, "lex-parse-lower", 0)
			defer fileSpan.End(u.path)
			content, err := fs.ReadFile(u.path)
			if err != nil {
				return fmt.Errorf("%s: %w", u.path, errReadFile(err))
			}
			fid := fileSet.Add(u.path, content, 0)
			fileIDs[i] = fid
			f := fileSet.Get(fid)
			bag := diag.NewBag()
			lx := lexer.New(f, lexer.Options{Reporter: bag})
			popts := parser.Options{Reporter: bag, Interner: interner, MaxErrors: 512}
			astFile := parser.ParseFile(lx, fid, popts)
			arenas, top := hir.Lower(astFile, interner, bag)
			u.fileID = fid
			u.file = f
			u.ast = &hirUnit{arenas: arenas, top: top}
			u.bag = bag
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Sequential elaboration over the prefetched units, threading a single
	// sym.Table and an accumulating basis.
	timer := observ.NewTimer()
	syms := sym.NewTable()
	basis := elab.InitialBasis(syms)
	states := make(map[source.FileID]*elab.St, len(units))
	arenasByFile := make(map[source.FileID]*hir.Arenas, len(units))
	deltas := make(map[source.FileID]*env.Env, len(units))
	order := make([]source.FileID, 0, len(units))

	for _, u := range units {
		if u.ast == nil {
			continue
		}
		diagnostics[u.fileID] = u.bag
		order = append(order, u.fileID)
		arenasByFile[u.fileID] = u.ast.arenas

		phase := timer.Begin("elaborate:" + u.path)
		st, delta := elab.Elaborate(syms, u.ast.arenas, interner, basis, u.ast.top, u.bag, opts.Tracer)
		timer.End(phase, "")

		basis.Extend(delta)
		states[u.fileID] = st
		deltas[u.fileID] = delta
	}

	return &Result{
		FileSet:     fileSet,
		Interner:    interner,
		Syms:        syms,
		Diagnostics: diagnostics,
		Basis:       basis,
		States:      states,
		Arenas:      arenasByFile,
		Deltas:      deltas,
		Order:       order,
		Timer:       timer,
	}, nil
}

// discover recursively parses path and every group file it transitively
// references, populating manifests and per-path diagnostic bags. Already
// visited paths are skipped (a group may be referenced by more than one
// parent).
func discover(path string, fs FileSystem, fileSet *source.FileSet, manifests map[string]*Manifest, bags map[string]*diag.Bag) error {
	if _, ok := manifests[path]; ok {
		return nil
	}
	if !fs.IsFile(path) {
		return fmt.Errorf("%s: %w", path, errReadFile(fmt.Errorf("not a regular file")))
	}
	content, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, errReadFile(err))
	}
	fid := fileSet.AddVirtual(path, content)
	bag := diag.NewBag()
	bags[path] = bag
	m := Parse(path, fid, content, bag)
	manifests[path] = m

	refs := make([]string, len(m.Groups))
	for i, ref := range m.Groups {
		refs[i] = ref.Path
	}
	sort.Strings(refs)
	for _, ref := range refs {
		if err := discover(ref, fs, fileSet, manifests, bags); err != nil {
			return err
		}
	}
	return nil
}

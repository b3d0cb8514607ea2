// Package group implements the group driver: parsing .mlb/.cm group files,
// building the dependency DAG over them, and elaborating their contained
// SML sources in topological order under an accumulating basis. The graph
// is toposorted with Kahn's algorithm, breaking ties with sorted ID
// batches so the elaboration order is deterministic across runs.
package group

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// ID identifies one group file within a driver run, dense from 0, assigned
// in sorted-path order.
type ID uint32

// Index maps group file paths to their dense IDs.
type Index struct {
	PathToID map[string]ID
	IDToPath []string
}

// BuildIndex collects every group path reachable from manifests (the root
// plus every nested group reference), sorts them, and assigns IDs
// sequentially.
func BuildIndex(manifests map[string]*Manifest) Index {
	paths := make([]string, 0, len(manifests))
	for p := range manifests {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	idx := Index{
		PathToID: make(map[string]ID, len(paths)),
		IDToPath: paths,
	}
	for i, p := range paths {
		id, err := safecast.Conv[ID](i)
		if err != nil {
			panic(fmt.Errorf("group: id overflow: %w", err))
		}
		idx.PathToID[p] = id
	}
	return idx
}

// Graph is the adjacency-list dependency graph over group files: Edges[from]
// lists the groups "from" nests (its Groups references).
type Graph struct {
	Edges [][]ID
	Indeg []int
}

// BuildGraph walks each manifest's nested-group references and builds the
// adjacency list plus in-degree counts Kahn's algorithm consumes. There is
// no present/broken-slot bookkeeping for an incremental module cache,
// since incremental re-analysis is out of scope here.
func BuildGraph(idx Index, manifests map[string]*Manifest) Graph {
	n := len(idx.IDToPath)
	g := Graph{
		Edges: make([][]ID, n),
		Indeg: make([]int, n),
	}
	for from, path := range idx.IDToPath {
		m := manifests[path]
		if m == nil {
			continue
		}
		seen := make(map[ID]struct{}, len(m.Groups))
		for _, ref := range m.Groups {
			to, ok := idx.PathToID[ref.Path]
			if !ok {
				continue // unresolved nested group path; reported separately as an IO error
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[from] = append(g.Edges[from], to)
			g.Indeg[int(to)]++
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}
	return g
}

// Topo is the result of a Kahn topological sort over Graph.
type Topo struct {
	Order  []ID
	Cyclic bool
	Cycle  []ID
}

// Toposort runs Kahn's algorithm, breaking ties by ID (sorted-batch order)
// for determinism.
func Toposort(g Graph) Topo {
	n := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	var topo Topo
	topo.Order = make([]ID, 0, n)

	current := make([]ID, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			id, err := safecast.Conv[ID](i)
			if err != nil {
				panic(fmt.Errorf("group: id overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	for len(current) > 0 {
		next := make([]ID, 0)
		for _, id := range current {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				id, err := safecast.Conv[ID](i)
				if err != nil {
					panic(fmt.Errorf("group: id overflow: %w", err))
				}
				topo.Cycle = append(topo.Cycle, id)
			}
		}
		slices.Sort(topo.Cycle)
	}
	return topo
}

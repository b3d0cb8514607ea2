package types

// Generalizable classifies whether a metavar may be let-generalized,
// implementing SML's value restriction:
// Always for metavars born from annotations/non-expansive contexts,
// Sometimes for metavars that require the defining expression to be a
// syntactic value.
type Generalizable uint8

const (
	GenAlways Generalizable = iota
	GenSometimes
)

// MetaInfo is the bookkeeping record for one generated metavariable: its
// rank and its generalizability flag.
type MetaInfo struct {
	Rank          uint32
	Generalizable Generalizable
	Kind          *TyVarKind // nil == unconstrained
}

// MetaGen allocates fresh metavariables, threading the enclosing rank and
// the monotonically increasing let-nesting depth used to decide
// generalization safety ( rule (a)).
type MetaGen struct {
	infos     []MetaInfo
	rank      uint32
	maxRank   uint32
}

// NewMetaGen creates a generator starting at rank 0 (top level).
func NewMetaGen() *MetaGen { return &MetaGen{} }

// Rank returns the generator's current let-nesting depth.
func (g *MetaGen) Rank() uint32 { return g.rank }

// EnterLet increments the let-nesting depth for the duration of elaborating
// one let/fun/val scope; callers must call ExitLet when done.
func (g *MetaGen) EnterLet() { g.rank++ }

// ExitLet decrements the let-nesting depth.
func (g *MetaGen) ExitLet() {
	if g.rank > 0 {
		g.rank--
	}
}

// New allocates a fresh metavariable at the generator's current rank.
func (g *MetaGen) New(gen Generalizable) MetaID {
	return g.NewKinded(gen, nil)
}

// NewKinded allocates a fresh metavariable restricted by kind (nil for
// unconstrained).
func (g *MetaGen) NewKinded(gen Generalizable, kind *TyVarKind) MetaID {
	id := MetaID(len(g.infos))
	g.infos = append(g.infos, MetaInfo{Rank: g.rank, Generalizable: gen, Kind: kind})
	return id
}

// Info returns the bookkeeping record for m.
func (g *MetaGen) Info(m MetaID) MetaInfo { return g.infos[m] }

// SetKind narrows m's restriction, used when unification learns an
// Overloaded/Equality/Record constraint must propagate onto an
// as-yet-unsolved metavar.
func (g *MetaGen) SetKind(m MetaID, kind *TyVarKind) { g.infos[m].Kind = kind }

// Len returns the number of metavariables generated so far.
func (g *MetaGen) Len() int { return len(g.infos) }

// FixedVarGen allocates fresh FixedIDs for user-named rigid type variables,
// one per distinct spelling within the scope that binds them.
type FixedVarGen struct {
	names []string
}

func NewFixedVarGen() *FixedVarGen { return &FixedVarGen{} }

// New allocates a fresh FixedID for the given source spelling.
func (g *FixedVarGen) New(name string) FixedID {
	id := FixedID(len(g.names))
	g.names = append(g.names, name)
	return id
}

// Name returns the source spelling fixed var f was created from.
func (g *FixedVarGen) Name(f FixedID) string { return g.names[f] }

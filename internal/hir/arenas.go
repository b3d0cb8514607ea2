package hir

// Arenas bundles the four dense per-file arenas the lowerer populates,
// mirroring ast.File's shape one stage later.
type Arenas struct {
	Exps *Exps
	Pats *Pats
	Tys  *Tys
	Decs *Decs
}

// NewArenas creates a set of empty arenas sized for a typical file.
func NewArenas() *Arenas {
	return &Arenas{
		Exps: NewExps(),
		Pats: NewPats(),
		Tys:  NewTys(),
		Decs: NewDecs(),
	}
}

package ast

import "github.com/t18b219k/millet/internal/source"

// File is the parsed syntax tree of one compilation unit: a single dense
// arena per node category, plus the top-level declaration sequence. Every
// *ID in Top (and reachable from it) indexes into these arenas.
type File struct {
	Exps *Exps
	Pats *Pats
	Tys  *Tys
	Decs *Decs

	// Top is the file's top-level declaration, normally a DecSeq.
	Top DecID

	// Path identifies the source file this tree was parsed from, for
	// diagnostics and cross-file queries.
	Path source.FileID
}

// NewFile creates an empty File backed by freshly allocated arenas sized for
// a typical single SML source file.
func NewFile(path source.FileID) *File {
	return &File{
		Exps: NewExps(0),
		Pats: NewPats(0),
		Tys:  NewTys(0),
		Decs: NewDecs(0),
		Path: path,
	}
}

package hir

import (
	"fmt"

	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

// Lowerer holds the mutable state threaded through one file's AST-to-HIR
// pass: the arenas being filled in, the interner shared with the parser
// (so names coined here, like fun-clause temporaries, share the same
// NameID space as user identifiers), and the reporter for Lower-stage
// diagnostics.
type Lowerer struct {
	ast      *ast.File
	arenas   *Arenas
	interner *source.Interner
	rep      diag.Reporter
	fresh    uint32
}

// NewLowerer creates a Lowerer over file, ready to lower its top-level
// declaration.
func NewLowerer(file *ast.File, interner *source.Interner, rep diag.Reporter) *Lowerer {
	return &Lowerer{ast: file, arenas: NewArenas(), interner: interner, rep: rep}
}

// Lower runs the AST-to-HIR pass over file's top-level declaration and
// returns the populated arenas alongside the lowered top-level DecID.
func Lower(file *ast.File, interner *source.Interner, rep diag.Reporter) (*Arenas, DecID) {
	l := NewLowerer(file, interner, rep)
	top := l.lowerDec(file.Top)
	return l.arenas, top
}

// freshName coins a NameID guaranteed not to collide with any identifier a
// programmer can write: the lexer reads "$" as a symbolic identifier and
// the letters after it as a separate alphanumeric one, so "$arg1" is never
// a single source identifier and can never alias a user binding
// (fun-clause desugaring and "while" both need temporaries like this).
func (l *Lowerer) freshName(prefix string) source.NameID {
	l.fresh++
	return l.interner.Intern(fmt.Sprintf("$%s%d", prefix, l.fresh))
}

// builtinName interns the spelling of one of the initial basis's reserved
// identifiers (true, false, nil, ::, ref) so desugared HIR can reference it
// by Path the same way a Path the parser produced would.
func (l *Lowerer) builtinName(text string) source.NameID { return l.interner.Intern(text) }

func (l *Lowerer) pathOf(long ast.LongID) Path {
	return Path{Qual: append([]source.NameID(nil), long.Qual...), Name: long.Name, Op: long.Op}
}

func (l *Lowerer) bareName(name source.NameID) Path { return Path{Name: name} }

func (l *Lowerer) report(code diag.Code, message string, span source.Span) {
	if l.rep == nil {
		return
	}
	diag.Error(l.rep, code, message, span)
}

// tupleLabel mirrors internal/types.TupleLabel: SML's tuple sugar is
// defined as record syntax with labels "1", "2", ... spelled out, so tuples
// and records share one HIR representation.
func tupleLabel(i int) string { return fmt.Sprintf("%d", i+1) }

func (l *Lowerer) tupleExp(span source.Span, elems []ExpID) ExpID {
	if len(elems) == 1 {
		return elems[0]
	}
	rows := make([]ExpRow, len(elems))
	for i, e := range elems {
		rows[i] = ExpRow{Label: l.interner.Intern(tupleLabel(i)), Value: e}
	}
	return l.arenas.Exps.NewRecord(span, rows)
}

func (l *Lowerer) tuplePat(span source.Span, elems []PatID) PatID {
	if len(elems) == 1 {
		return elems[0]
	}
	rows := make([]PatRow, len(elems))
	for i, p := range elems {
		rows[i] = PatRow{Label: l.interner.Intern(tupleLabel(i)), Value: p}
	}
	return l.arenas.Pats.NewRecord(span, rows, false)
}

func (l *Lowerer) tupleTy(span source.Span, elems []TyID) TyID {
	if len(elems) == 1 {
		return elems[0]
	}
	rows := make([]TyRow, len(elems))
	for i, t := range elems {
		rows[i] = TyRow{Label: l.interner.Intern(tupleLabel(i)), Value: t}
	}
	return l.arenas.Tys.NewRecord(span, rows)
}

func (l *Lowerer) unitExp(span source.Span) ExpID { return l.arenas.Exps.NewRecord(span, nil) }
func (l *Lowerer) unitPat(span source.Span) PatID { return l.arenas.Pats.NewRecord(span, nil, false) }

// caseOf builds "case scrutinee of arms" in its primitive desugared shape,
// App(Fn(arms), scrutinee): applying a match to a value runs the match
// against it, the same rule the parser's case/if/while/andalso/orelse all
// reduce to.
func (l *Lowerer) caseOf(span source.Span, scrutinee ExpID, arms []Arm) ExpID {
	fn := l.arenas.Exps.NewFn(span, arms)
	return l.arenas.Exps.NewApp(span, fn, scrutinee)
}

// boolPat builds a bare constructor pattern for "true" or "false"; the
// elaborator's id-status lookup is what tells these apart from an ordinary
// variable pattern.
func (l *Lowerer) boolPat(span source.Span, text string) PatID {
	return l.arenas.Pats.NewCon(span, l.bareName(l.builtinName(text)), NoPatID)
}

func (l *Lowerer) boolExp(span source.Span, text string) ExpID {
	return l.arenas.Exps.NewPath(span, l.bareName(l.builtinName(text)))
}

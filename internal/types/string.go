package types

import (
	"fmt"
	"sort"
	"strings"
)

// SymName resolves a Sym to its display name (its defining tycon's path),
// supplied by package sym at call time to avoid an import cycle.
type SymName func(Sym) string

// Printer renders types in conventional ML notation: "'a", "'b", ... for
// generalized bound variables, infix "->" for function types, "{lab :
// ty, ...}" for records, tuples printed as "ty * ty" when every label is
// the expected numeric tuple label in order.
type Printer struct {
	Sym    SymName
	gen    *MetaGen
	subst  *Subst
	fixed  *FixedVarGen
}

// NewPrinter creates a Printer that resolves MetaVar/FixedVar through gen,
// subst, and fixed.
func NewPrinter(sym SymName, gen *MetaGen, subst *Subst, fixed *FixedVarGen) *Printer {
	return &Printer{Sym: sym, gen: gen, subst: subst, fixed: fixed}
}

// String renders ty (after applying the current substitution) using plain
// metavariable names ("'_1") for any metavar without a bound-scheme letter.
func (p *Printer) String(ty Ty) string {
	if p.subst != nil {
		ty = Apply(p.subst, ty)
	}
	var b strings.Builder
	p.write(&b, ty, 0)
	return b.String()
}

// SchemeString renders a generalized TyScheme using successive letters
// 'a, 'b, ... for its bound variables.
func (p *Printer) SchemeString(s TyScheme) string {
	var b strings.Builder
	p.writeBound(&b, s.Ty, 0)
	return b.String()
}

const precArrow = 1
const precTuple = 2
const precAtom = 3

func (p *Printer) write(b *strings.Builder, ty Ty, minPrec int) {
	switch ty.Kind {
	case None:
		b.WriteString("_")
	case BoundVar:
		fmt.Fprintf(b, "'bv%d", ty.Idx)
	case MetaVar:
		fmt.Fprintf(b, "'_%d", ty.Idx)
	case FixedVar:
		if p.fixed != nil {
			b.WriteString("'" + p.fixed.Name(FixedID(ty.Idx)))
		} else {
			fmt.Fprintf(b, "'fv%d", ty.Idx)
		}
	case Record:
		p.writeRecord(b, ty)
	case Con:
		p.writeCon(b, ty)
	case Fn:
		open := minPrec > precArrow
		if open {
			b.WriteString("(")
		}
		p.write(b, *ty.FnArg, precArrow+1)
		b.WriteString(" -> ")
		p.write(b, *ty.FnRes, precArrow)
		if open {
			b.WriteString(")")
		}
	}
}

func (p *Printer) writeCon(b *strings.Builder, ty Ty) {
	name := fmt.Sprintf("sym%d", ty.Con)
	if p.Sym != nil {
		name = p.Sym(ty.Con)
	}
	switch len(ty.ConArgs) {
	case 0:
		b.WriteString(name)
	case 1:
		p.write(b, ty.ConArgs[0], precAtom)
		b.WriteString(" " + name)
	default:
		b.WriteString("(")
		for i, a := range ty.ConArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b, a, 0)
		}
		b.WriteString(") " + name)
	}
}

func (p *Printer) writeRecord(b *strings.Builder, ty Ty) {
	if isTuple(ty.Record) && len(ty.Record) != 1 {
		n := len(ty.Record)
		for i := 1; i <= n; i++ {
			if i > 1 {
				b.WriteString(" * ")
			}
			p.write(b, ty.Record[TupleLabel(i)], precTuple+1)
		}
		return
	}
	labs := make([]string, 0, len(ty.Record))
	for l := range ty.Record {
		labs = append(labs, l)
	}
	sort.Strings(labs)
	b.WriteString("{")
	for i, l := range labs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l + " : ")
		p.write(b, ty.Record[l], 0)
	}
	b.WriteString("}")
}

// isTuple reports whether rows is exactly the numeric tuple label set
// "1".."n" for some n == len(rows).
func isTuple(rows map[Lab]Ty) bool {
	for i := 1; i <= len(rows); i++ {
		if _, ok := rows[TupleLabel(i)]; !ok {
			return false
		}
	}
	return true
}

// boundLetter returns the conventional 'a, 'b, ... 'z, 'a1, ... spelling
// for the i-th generalized bound variable.
func boundLetter(i int) string {
	letter := rune('a' + i%26)
	suffix := i / 26
	if suffix == 0 {
		return string(letter)
	}
	return fmt.Sprintf("%c%d", letter, suffix)
}

// writeBound is like write but renders BoundVar(i) as 'a,'b,... instead of
// the raw index, used only for already-generalized TyScheme.Ty values.
func (p *Printer) writeBound(b *strings.Builder, ty Ty, minPrec int) {
	if ty.Kind == BoundVar {
		b.WriteString("'" + boundLetter(int(ty.Idx)))
		return
	}
	if ty.Kind == Fn {
		open := minPrec > precArrow
		if open {
			b.WriteString("(")
		}
		p.writeBound(b, *ty.FnArg, precArrow+1)
		b.WriteString(" -> ")
		p.writeBound(b, *ty.FnRes, precArrow)
		if open {
			b.WriteString(")")
		}
		return
	}
	if ty.Kind == Record {
		saved := ty
		// Reuse writeRecord/writeCon's element rendering by temporarily
		// routing through write() for non-BoundVar subtrees; BoundVar rows
		// are rare (records of bound vars), so fall back to a direct
		// per-row walk here instead of duplicating writeRecord.
		if isTuple(saved.Record) && len(saved.Record) != 1 {
			n := len(saved.Record)
			for i := 1; i <= n; i++ {
				if i > 1 {
					b.WriteString(" * ")
				}
				p.writeBound(b, saved.Record[TupleLabel(i)], precTuple+1)
			}
			return
		}
		labs := make([]string, 0, len(saved.Record))
		for l := range saved.Record {
			labs = append(labs, l)
		}
		sort.Strings(labs)
		b.WriteString("{")
		for i, l := range labs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(l + " : ")
			p.writeBound(b, saved.Record[l], 0)
		}
		b.WriteString("}")
		return
	}
	if ty.Kind == Con {
		name := fmt.Sprintf("sym%d", ty.Con)
		if p.Sym != nil {
			name = p.Sym(ty.Con)
		}
		switch len(ty.ConArgs) {
		case 0:
			b.WriteString(name)
		case 1:
			p.writeBound(b, ty.ConArgs[0], precAtom)
			b.WriteString(" " + name)
		default:
			b.WriteString("(")
			for i, a := range ty.ConArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				p.writeBound(b, a, 0)
			}
			b.WriteString(") " + name)
		}
		return
	}
	p.write(b, ty, minPrec)
}

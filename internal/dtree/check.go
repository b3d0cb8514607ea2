package dtree

import (
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/sym"
	"github.com/t18b219k/millet/internal/types"
)

// Row is one matcher arm's compiled pattern, paired with the source span to
// anchor a redundancy diagnostic against.
type Row struct {
	Pat  Pattern
	Span source.Span
}

// CheckMatch runs both exhaustiveness and redundancy analysis over a
// Fn/Handle/case matcher: exhaustiveness (reporting NonExhaustiveMatch at
// matchSpan with a witness pattern when possible) and redundancy
// (reporting UnreachableArm per unreachable row).
func CheckMatch(syms *sym.Table, subst *types.Subst, rep diag.Reporter, scrutTy types.Ty, rows []Row, matchSpan source.Span) {
	checkRedundancy(rep, rows)
	pats := make([]Pattern, len(rows))
	for i, r := range rows {
		pats[i] = r.Pat
	}
	if ok, witness := isExhaustive(syms, subst, pats, scrutTy); !ok {
		diag.Error(rep, diag.ElabNonExhaustiveMatch, "non-exhaustive match, witness: "+witness, matchSpan)
	}
}

// CheckBinding runs only the exhaustiveness half over a single `val pat =
// exp` binding's pattern; a single
// pattern can't be redundant against itself.
func CheckBinding(syms *sym.Table, subst *types.Subst, rep diag.Reporter, scrutTy types.Ty, pat Pattern, span source.Span) {
	if ok, witness := isExhaustive(syms, subst, []Pattern{pat}, scrutTy); !ok {
		diag.Error(rep, diag.ElabNonExhaustiveBind, "non-exhaustive binding, witness: "+witness, span)
	}
}

// CheckRedundancyOnly runs just the redundancy check without requiring
// exhaustiveness, for a matcher (like a `handle` arm list) that the
// language permits to be partial because an unmatched exception simply
// re-raises.
func CheckRedundancyOnly(rep diag.Reporter, rows []Row) {
	checkRedundancy(rep, rows)
}

// checkRedundancy flags every row after the first irrefutable (Wild-kind,
// covering an Or-pattern only if every alternative is Wild) row as
// unreachable. This is the common, high-value case (a catch-all arm placed
// before a more specific one) rather than full Maranget usefulness, which
// would additionally catch a row subsumed by a *combination* of earlier
// constructor arms; that refinement is not implemented here.
func checkRedundancy(rep diag.Reporter, rows []Row) {
	seenWild := false
	for _, r := range rows {
		if seenWild {
			diag.Warning(rep, diag.ElabUnreachableArm, "unreachable match arm", r.Span)
		}
		if rowIsWild(r.Pat) {
			seenWild = true
		}
	}
}

func rowIsWild(p Pattern) bool {
	switch p.Kind {
	case Wild:
		return true
	case Or:
		for _, a := range p.Alts {
			if !rowIsWild(a) {
				return false
			}
		}
		return len(p.Alts) > 0
	default:
		return false
	}
}

// flattenOr expands every Or-pattern in pats into its alternatives, so
// coverage checking sees one plain (non-Or) pattern per alternative.
func flattenOr(pats []Pattern) []Pattern {
	out := make([]Pattern, 0, len(pats))
	for _, p := range pats {
		out = appendFlat(out, p)
	}
	return out
}

func appendFlat(out []Pattern, p Pattern) []Pattern {
	if p.Kind == Or {
		for _, a := range p.Alts {
			out = appendFlat(out, a)
		}
		return out
	}
	return append(out, p)
}

// isExhaustive reports whether pats together cover every value of ty,
// returning a human-readable witness pattern when they do not.
func isExhaustive(syms *sym.Table, subst *types.Subst, pats []Pattern, ty types.Ty) (bool, string) {
	ty = types.Apply(subst, ty)
	flat := flattenOr(pats)
	for _, p := range flat {
		if p.Kind == Wild {
			return true, ""
		}
	}
	switch ty.Kind {
	case types.Con:
		info := syms.TyInfo(ty.Con)
		if len(info.Cons) == 0 {
			// A literal base type (int/word/real/char/string) or an
			// exception constructor set, neither enumerable: only a
			// wildcard (already ruled out above) proves coverage.
			return false, "_"
		}
		for _, c := range info.Cons {
			var subPats []Pattern
			for _, p := range flat {
				if p.Kind != Con || p.ConName != c.Name {
					continue
				}
				if p.ConArg != nil {
					subPats = append(subPats, *p.ConArg)
				} else {
					subPats = append(subPats, Pattern{Kind: Wild})
				}
			}
			if len(subPats) == 0 {
				return false, c.Name
			}
			if c.Scheme.Ty.Kind == types.Fn {
				argTy := substBound(*c.Scheme.Ty.FnArg, ty.ConArgs)
				if ok, w := isExhaustive(syms, subst, subPats, argTy); !ok {
					return false, c.Name + " " + w
				}
			}
		}
		return true, ""
	case types.Record:
		if len(flat) == 0 {
			return false, "_"
		}
		for lab, fieldTy := range ty.Record {
			var col []Pattern
			for _, p := range flat {
				if p.Kind != Record {
					continue
				}
				if v, ok := p.Fields[lab]; ok {
					col = append(col, v)
				} else {
					col = append(col, Pattern{Kind: Wild})
				}
			}
			if len(col) == 0 {
				col = []Pattern{{Kind: Wild}}
			}
			if ok, w := isExhaustive(syms, subst, col, fieldTy); !ok {
				return false, "{" + lab + " = " + w + ", ...}"
			}
		}
		return true, ""
	default:
		return false, "_"
	}
}

// substBound substitutes args for BoundVar slots in ty, mirroring
// internal/elab's abbreviation expansion; duplicated here (rather than
// imported) since internal/elab depends on internal/dtree, not vice versa.
func substBound(ty types.Ty, args []types.Ty) types.Ty {
	switch ty.Kind {
	case types.BoundVar:
		if int(ty.Idx) < len(args) {
			return args[ty.Idx]
		}
		return ty
	case types.Record:
		out := make(map[types.Lab]types.Ty, len(ty.Record))
		for lab, row := range ty.Record {
			out[lab] = substBound(row, args)
		}
		return types.NewRecord(out)
	case types.Con:
		out := make([]types.Ty, len(ty.ConArgs))
		for i, a := range ty.ConArgs {
			out[i] = substBound(a, args)
		}
		return types.NewCon(ty.Con, out...)
	case types.Fn:
		return types.NewFn(substBound(*ty.FnArg, args), substBound(*ty.FnRes, args))
	default:
		return ty
	}
}

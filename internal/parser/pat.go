package parser

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/token"
)

// parsePat parses a pattern at the lowest precedence: an optional "as"
// layering, above infix constructor application, above typing.
func (p *Parser) parsePat() ast.PatID {
	return p.parseOrPat()
}

// parseOrPat parses "pat1 | pat2 | ... | patN" where the Definition permits
// it (this core does not implement SML/NJ "or"-patterns in the grammar
// proper; kept as a single alternative passthrough so callers that split
// match arms on '|' themselves are unaffected).
func (p *Parser) parseOrPat() ast.PatID {
	return p.parseInfixPat()
}

// parseInfixPat parses infix constructor application ("x :: xs", "a + b" in
// a pattern context is invalid but parses the same shape; elaboration
// rejects non-constructor infix heads) by climbing precedence via the
// FixityEnv, folding left/right per associativity.
func (p *Parser) parseInfixPat() ast.PatID {
	return p.parseInfixPatPrec(0)
}

func (p *Parser) parseInfixPatPrec(minLevel int) ast.PatID {
	lhs := p.parseTypedPat()
	for {
		name, entry, ok := p.peekInfix()
		if !ok || entry.Level < minLevel {
			break
		}
		opTok := p.advance()
		nextMin := entry.Level + 1
		if entry.Assoc == AssocRight {
			nextMin = entry.Level
		}
		rhs := p.parseInfixPatPrec(nextMin)
		sp := p.file.Pats.Get(lhs).Span.Cover(p.file.Pats.Get(rhs).Span)
		arg := p.file.Pats.NewTuple(sp, []ast.PatID{lhs, rhs})
		con := ast.LongID{Name: p.opts.Interner.Intern(name), Span: opTok.Span}
		lhs = p.file.Pats.NewConApp(sp, con, arg)
	}
	return lhs
}

// peekInfix reports whether the current token is a currently-infix
// identifier, per the active FixityEnv.
func (p *Parser) peekInfix() (string, FixityEntry, bool) {
	t := p.peek()
	if t.Kind != token.IdentAlpha && t.Kind != token.IdentSym {
		return "", FixityEntry{}, false
	}
	entry, ok := p.fixity.Lookup(t.Text)
	return t.Text, entry, ok
}

// parseTypedPat parses "pat : ty" (lower precedence than application,
// higher than infix, matching the Definition's atpat/apppat/pat layering).
func (p *Parser) parseTypedPat() ast.PatID {
	pat := p.parseAppPat()
	if p.at(token.Colon) {
		p.advance()
		ty := p.parseTy()
		sp := p.file.Pats.Get(pat).Span.Cover(p.file.Tys.Get(ty).Span)
		return p.file.Pats.NewTyped(sp, pat, ty)
	}
	if p.at(token.KwAs) {
		return p.finishLayeredPat(pat, ast.NoTyID)
	}
	return pat
}

// finishLayeredPat builds a PatLayered from an already-parsed "vid [: ty]"
// prefix once "as" is seen.
func (p *Parser) finishLayeredPat(prefix ast.PatID, ty ast.TyID) ast.PatID {
	asTok, _ := p.expect(token.KwAs, "'as'")
	pd := p.file.Pats.Get(prefix)
	var long ast.LongID
	if pd.Kind == ast.PatPath {
		long = pd.Data.(ast.PatPathData).ID
	} else {
		long = ast.LongID{Span: pd.Span}
	}
	_ = asTok
	sub := p.parsePat()
	sp := pd.Span.Cover(p.file.Pats.Get(sub).Span)
	return p.file.Pats.NewLayered(sp, long, ty, sub)
}

// parseAppPat parses constructor application to an atomic argument
// ("SOME x", "C {a=1}"), or a bare atomic pattern.
func (p *Parser) parseAppPat() ast.PatID {
	if p.at(token.IdentAlpha) && p.identLooksLikeConHead() {
		long := p.parseLongID()
		if p.startsAtomPat() {
			arg := p.parseAtomPat()
			sp := long.Span.Cover(p.file.Pats.Get(arg).Span)
			return p.file.Pats.NewConApp(sp, long, arg)
		}
		return p.finishPathPat(long)
	}
	return p.parseAtomPat()
}

// identLooksLikeConHead is a permissive lookahead: any bare identifier may
// head a constructor application; the elaborator (not the parser)
// distinguishes constructors from variables by id-status lookup.
func (p *Parser) identLooksLikeConHead() bool { return true }

// startsAtomPat reports whether the current token can begin an atomic
// pattern, used to decide whether a leading identifier is applied to an
// argument.
func (p *Parser) startsAtomPat() bool {
	switch p.peek().Kind {
	case token.Underscore, token.IdentAlpha, token.IdentSym, token.TyVar,
		token.IntLit, token.WordLit, token.RealLit, token.CharLit, token.StringLit,
		token.LParen, token.LBrace, token.LBracket, token.KwOp:
		return true
	default:
		return false
	}
}

// parseAtomPat parses an atomic pattern: wildcard, literal, variable/nullary
// constructor, parenthesized/tuple pattern, list pattern, or record pattern.
func (p *Parser) parseAtomPat() ast.PatID {
	t := p.peek()
	switch t.Kind {
	case token.Underscore:
		p.advance()
		return p.file.Pats.NewWild(t.Span)
	case token.IntLit:
		p.advance()
		return p.file.Pats.NewSCon(t.Span, ast.SConInt, t.Text)
	case token.WordLit:
		p.advance()
		return p.file.Pats.NewSCon(t.Span, ast.SConWord, t.Text)
	case token.RealLit:
		p.advance()
		return p.file.Pats.NewSCon(t.Span, ast.SConReal, t.Text)
	case token.CharLit:
		p.advance()
		return p.file.Pats.NewSCon(t.Span, ast.SConChar, t.Text)
	case token.StringLit:
		p.advance()
		return p.file.Pats.NewSCon(t.Span, ast.SConString, t.Text)
	case token.KwOp:
		p.advance()
		long := p.parseLongID()
		long.Op = true
		return p.finishPathPat(long)
	case token.IdentAlpha, token.IdentSym:
		long := p.parseLongID()
		return p.finishPathPat(long)
	case token.LParen:
		return p.parseParenPat()
	case token.LBracket:
		return p.parseListPat()
	case token.LBrace:
		return p.parseRecordPat()
	default:
		p.unexpected("expected pattern, found " + t.Kind.String())
		return p.file.Pats.NewWild(p.errSpan())
	}
}

// finishPathPat wraps a plain variable/constructor reference, additionally
// handling a trailing "as" layering (a bare "x as pat" with no type
// annotation).
func (p *Parser) finishPathPat(long ast.LongID) ast.PatID {
	base := p.file.Pats.NewPath(long.Span, long)
	if p.at(token.KwAs) {
		return p.finishLayeredPat(base, ast.NoTyID)
	}
	return base
}

// parseParenPat parses "()", "(pat)", or "(pat, pat, ...)".
func (p *Parser) parseParenPat() ast.PatID {
	start, _ := p.expect(token.LParen, "'('")
	if p.at(token.RParen) {
		end := p.advance()
		sp := start.Span.Cover(end.Span)
		return p.file.Pats.NewTuple(sp, nil)
	}
	first := p.parsePat()
	if p.at(token.Comma) {
		elems := []ast.PatID{first}
		for p.at(token.Comma) {
			p.advance()
			elems = append(elems, p.parsePat())
		}
		end, _ := p.expect(token.RParen, "')'")
		sp := start.Span.Cover(end.Span)
		return p.file.Pats.NewTuple(sp, elems)
	}
	p.expect(token.RParen, "')'")
	return first
}

// parseListPat parses "[]" or "[pat, pat, ...]".
func (p *Parser) parseListPat() ast.PatID {
	start, _ := p.expect(token.LBracket, "'['")
	var elems []ast.PatID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parsePat())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RBracket, "']'")
	return p.file.Pats.NewList(start.Span.Cover(end.Span), elems)
}

// parseRecordPat parses "{lab = pat, ..., ...}", where a trailing "..."
// marks a partial-match wildcard for the remaining labels.
func (p *Parser) parseRecordPat() ast.PatID {
	start, _ := p.expect(token.LBrace, "'{'")
	var rows []ast.PatRow
	rest := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
			rest = true
			break
		}
		labTok, ok := p.expect(token.IdentAlpha, "field label")
		if !ok {
			break
		}
		var value ast.PatID
		var sp = labTok.Span
		if p.at(token.Equals) {
			p.advance()
			value = p.parsePat()
			sp = sp.Cover(p.file.Pats.Get(value).Span)
		} else {
			// Punning: "{x, y}" is sugar for "{x = x, y = y}".
			long := ast.LongID{Name: p.intern(labTok), Span: labTok.Span}
			value = p.file.Pats.NewPath(labTok.Span, long)
		}
		rows = append(rows, ast.PatRow{Label: p.intern(labTok), Value: value, Span: sp})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RBrace, "'}'")
	return p.file.Pats.NewRecord(start.Span.Cover(end.Span), rows, rest)
}

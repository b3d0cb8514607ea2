package parser

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/token"
)

// parseTy parses a type expression at the lowest precedence: a function-type
// chain "ty -> ty -> ty", right associative.
func (p *Parser) parseTy() ast.TyID {
	lhs := p.parseTupleTy()
	if p.at(token.Arrow) {
		p.advance()
		rhs := p.parseTy()
		sp := p.file.Tys.Get(lhs).Span.Cover(p.file.Tys.Get(rhs).Span)
		return p.file.Tys.NewFn(sp, lhs, rhs)
	}
	return lhs
}

// parseTupleTy parses "ty * ty * ... * ty" (binds tighter than ->, looser
// than application).
func (p *Parser) parseTupleTy() ast.TyID {
	first := p.parseAppTy()
	if !p.atSymbolic("*") {
		return first
	}
	elems := []ast.TyID{first}
	for p.atSymbolic("*") {
		p.advance()
		elems = append(elems, p.parseAppTy())
	}
	sp := p.file.Tys.Get(elems[0]).Span.Cover(p.file.Tys.Get(elems[len(elems)-1]).Span)
	return p.file.Tys.NewTuple(sp, elems)
}

// atSymbolic reports whether the current token is a symbolic identifier
// spelled exactly text (used for "*" which lexes as IdentSym, not a
// dedicated Kind).
func (p *Parser) atSymbolic(text string) bool {
	t := p.peek()
	return t.Kind == token.IdentSym && t.Text == text
}

// parseAppTy parses a (possibly 0-ary) type constructor application: "ty
// tycon", "(ty, ty) tycon", or an atomic type postfixed by zero or more
// tycon names ("int list list").
func (p *Parser) parseAppTy() ast.TyID {
	ty := p.parseAtomTy()
	for p.at(token.IdentAlpha) && !p.peek().IsKeyword() {
		name := p.advance()
		long := p.longIDFromToken(name)
		sp := p.file.Tys.Get(ty).Span.Cover(name.Span)
		ty = p.file.Tys.NewCon(sp, long, []ast.TyID{ty})
	}
	return ty
}

// parseAtomTy parses an atomic type: a type variable, a record type, a
// parenthesized type or type-sequence, or a bare type constructor name.
func (p *Parser) parseAtomTy() ast.TyID {
	t := p.peek()
	switch t.Kind {
	case token.TyVar:
		p.advance()
		return p.file.Tys.NewVar(t.Span, p.opts.Interner.Intern(t.Text), isEqualityTyVarText(t.Text))
	case token.LBrace:
		return p.parseRecordTy()
	case token.LParen:
		return p.parseParenTy()
	case token.IdentAlpha:
		return p.parseLongTyCon()
	default:
		p.unexpected("expected type, found " + t.Kind.String())
		return ast.NoTyID
	}
}

func isEqualityTyVarText(text string) bool {
	return len(text) >= 2 && text[0] == '\'' && text[1] == '\''
}

func (p *Parser) parseRecordTy() ast.TyID {
	start, _ := p.expect(token.LBrace, "'{'")
	var rows []ast.TyRow
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		labTok, ok := p.expect(token.IdentAlpha, "field label")
		if !ok {
			break
		}
		p.expect(token.Colon, "':'")
		ty := p.parseTy()
		rows = append(rows, ast.TyRow{Label: p.intern(labTok), Value: ty, Span: labTok.Span.Cover(p.file.Tys.Get(ty).Span)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RBrace, "'}'")
	return p.file.Tys.NewRecord(start.Span.Cover(end.Span), rows)
}

// parseParenTy parses "(ty)" or a parenthesized type-sequence "(ty, ty)"
// used just before a multi-argument type constructor name.
func (p *Parser) parseParenTy() ast.TyID {
	start, _ := p.expect(token.LParen, "'('")
	first := p.parseTy()
	if p.at(token.Comma) {
		elems := []ast.TyID{first}
		for p.at(token.Comma) {
			p.advance()
			elems = append(elems, p.parseTy())
		}
		end, _ := p.expect(token.RParen, "')'")
		if p.at(token.IdentAlpha) {
			name := p.advance()
			long := p.longIDFromToken(name)
			return p.file.Tys.NewCon(start.Span.Cover(name.Span), long, elems)
		}
		p.unexpected("expected type constructor after type sequence")
		return p.file.Tys.NewTuple(start.Span.Cover(end.Span), elems)
	}
	end, _ := p.expect(token.RParen, "')'")
	// The parenthesized type keeps the inner type's own span; the
	// parentheses are not included in it.
	_ = end
	return first
}

// parseLongTyCon parses a (possibly structure-qualified) bare type
// constructor name with no arguments ("int", "List.t").
func (p *Parser) parseLongTyCon() ast.TyID {
	long := p.parseLongID()
	return p.file.Tys.NewCon(long.Span, long, nil)
}

// parseLongID parses a (possibly dotted) identifier token, built by the
// lexer into a single IdentAlpha/IdentSym token (see scanIdentOrKeyword),
// into a LongID by splitting its text on '.'.
func (p *Parser) parseLongID() ast.LongID {
	return p.longIDFromToken(p.advanceLongIDTok())
}

// advanceLongIDTok consumes the current token if it looks like an
// identifier (possibly with "op" prefix already consumed by the caller).
func (p *Parser) advanceLongIDTok() token.Token {
	if p.at(token.IdentAlpha) || p.at(token.IdentSym) {
		return p.advance()
	}
	p.unexpected("expected identifier, found " + p.peek().Kind.String())
	return token.Token{Kind: token.Invalid, Span: p.errSpan()}
}

// longIDFromToken splits an identifier token's text on '.' into qualifier
// components plus a final name, interning each piece.
func (p *Parser) longIDFromToken(tok token.Token) ast.LongID {
	parts := splitLongID(tok.Text)
	if len(parts) == 0 {
		return ast.LongID{Span: tok.Span}
	}
	qual := make([]source.NameID, 0, len(parts)-1)
	for _, seg := range parts[:len(parts)-1] {
		qual = append(qual, p.opts.Interner.Intern(seg))
	}
	name := p.opts.Interner.Intern(parts[len(parts)-1])
	return ast.LongID{Qual: qual, Name: name, Span: tok.Span}
}

// splitLongID splits a long identifier's raw text on '.' boundaries. It does
// not special-case a trailing symbolic component ("Int.+"): the dot is
// still the separator, matching the lexer's own component scan.
func splitLongID(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '.' {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

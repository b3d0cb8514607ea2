package parser

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/token"
)

// parseExp parses a full expression: a ":"-typed expression above
// "andalso"/"orelse", above infix application.
func (p *Parser) parseExp() ast.ExpID {
	e := p.parseOrelseExp()
	if p.at(token.Colon) {
		p.advance()
		ty := p.parseTy()
		sp := p.file.Exps.Get(e).Span.Cover(p.file.Tys.Get(ty).Span)
		return p.file.Exps.NewTyped(sp, e, ty)
	}
	return e
}

// parseOrelseExp / parseAndalsoExp implement the Definition's fixed
// precedence for the two short-circuiting connectives, both binding looser
// than ordinary infix application and looser than "handle"/"raise".
func (p *Parser) parseOrelseExp() ast.ExpID {
	lhs := p.parseAndalsoExp()
	for p.at(token.KwOrelse) {
		p.advance()
		rhs := p.parseAndalsoExp()
		sp := p.file.Exps.Get(lhs).Span.Cover(p.file.Exps.Get(rhs).Span)
		lhs = p.file.Exps.NewOrelse(sp, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseAndalsoExp() ast.ExpID {
	lhs := p.parseHandleExp()
	for p.at(token.KwAndalso) {
		p.advance()
		rhs := p.parseHandleExp()
		sp := p.file.Exps.Get(lhs).Span.Cover(p.file.Exps.Get(rhs).Span)
		lhs = p.file.Exps.NewAndalso(sp, lhs, rhs)
	}
	return lhs
}

// parseHandleExp parses "exp handle match", binding looser than infix
// application but tighter than andalso/orelse.
func (p *Parser) parseHandleExp() ast.ExpID {
	e := p.parseInfixExp()
	for p.at(token.KwHandle) {
		p.advance()
		arms := p.parseMatch()
		sp := p.file.Exps.Get(e).Span
		if len(arms) > 0 {
			sp = sp.Cover(arms[len(arms)-1].Span)
		}
		e = p.file.Exps.NewHandle(sp, e, arms)
	}
	return e
}

// parseInfixExp climbs precedence via the active FixityEnv, folding infix
// applications into App(Path(op), Tuple(l, r)) per the Open Question
// decision recorded in fixity.go.
func (p *Parser) parseInfixExp() ast.ExpID {
	return p.parseInfixExpPrec(0)
}

func (p *Parser) parseInfixExpPrec(minLevel int) ast.ExpID {
	lhs := p.parseAppExp()
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
		rhs := p.parseInfixExpPrec(nextMin)
		sp := p.file.Exps.Get(lhs).Span.Cover(p.file.Exps.Get(rhs).Span)
		arg := p.file.Exps.NewTuple(sp, []ast.ExpID{lhs, rhs})
		opLong := ast.LongID{Name: p.opts.Interner.Intern(name), Span: opTok.Span}
		opExp := p.file.Exps.NewPath(opTok.Span, opLong)
		lhs = p.file.Exps.NewApp(sp, opExp, arg)
	}
	return lhs
}

// parseAppExp parses a chain of atomic expressions joined by juxtaposition
// ("f x y" is App(App(f,x),y)), plus the prefix forms ("raise e") that bind
// at application precedence.
func (p *Parser) parseAppExp() ast.ExpID {
	if p.at(token.KwRaise) {
		start := p.advance()
		v := p.parseAppExp()
		sp := start.Span.Cover(p.file.Exps.Get(v).Span)
		return p.file.Exps.NewRaise(sp, v)
	}
	e := p.parseAtomExp()
	for p.startsAtomExp() {
		arg := p.parseAtomExp()
		sp := p.file.Exps.Get(e).Span.Cover(p.file.Exps.Get(arg).Span)
		e = p.file.Exps.NewApp(sp, e, arg)
	}
	return e
}

// startsAtomExp reports whether the current token can begin an atomic
// expression, used to decide whether juxtaposition continues an
// application chain.
func (p *Parser) startsAtomExp() bool {
	switch p.peek().Kind {
	case token.IdentAlpha, token.IdentSym, token.Hash,
		token.IntLit, token.WordLit, token.RealLit, token.CharLit, token.StringLit,
		token.LParen, token.LBrace, token.LBracket, token.KwOp,
		token.KwLet, token.KwFn, token.KwCase, token.KwIf, token.KwWhile:
		return true
	default:
		return false
	}
}

// parseAtomExp parses an atomic expression.
func (p *Parser) parseAtomExp() ast.ExpID {
	t := p.peek()
	switch t.Kind {
	case token.IntLit:
		p.advance()
		return p.file.Exps.NewSCon(t.Span, ast.SConInt, t.Text)
	case token.WordLit:
		p.advance()
		return p.file.Exps.NewSCon(t.Span, ast.SConWord, t.Text)
	case token.RealLit:
		p.advance()
		return p.file.Exps.NewSCon(t.Span, ast.SConReal, t.Text)
	case token.CharLit:
		p.advance()
		return p.file.Exps.NewSCon(t.Span, ast.SConChar, t.Text)
	case token.StringLit:
		p.advance()
		return p.file.Exps.NewSCon(t.Span, ast.SConString, t.Text)
	case token.Hash:
		p.advance()
		labTok, _ := p.expect(token.IdentAlpha, "field label")
		sp := t.Span.Cover(labTok.Span)
		return p.file.Exps.NewSelector(sp, p.intern(labTok))
	case token.KwOp:
		p.advance()
		long := p.parseLongID()
		long.Op = true
		return p.file.Exps.NewPath(long.Span, long)
	case token.IdentAlpha, token.IdentSym:
		long := p.parseLongID()
		return p.file.Exps.NewPath(long.Span, long)
	case token.KwLet:
		return p.parseLetExp()
	case token.KwFn:
		return p.parseFnExp()
	case token.KwCase:
		return p.parseCaseExp()
	case token.KwIf:
		return p.parseIfExp()
	case token.KwWhile:
		return p.parseWhileExp()
	case token.LParen:
		return p.parseParenExp()
	case token.LBracket:
		return p.parseListExp()
	case token.LBrace:
		return p.parseRecordExp()
	default:
		p.unexpected("expected expression, found " + t.Kind.String())
		return p.file.Exps.NewTuple(p.errSpan(), nil)
	}
}

// parseLetExp parses "let dec in exp1; exp2; ...; expN end".
func (p *Parser) parseLetExp() ast.ExpID {
	start, _ := p.expect(token.KwLet, "'let'")
	dec := p.parseDecSeqUntil(token.KwIn)
	p.expect(token.KwIn, "'in'")
	var exps []ast.ExpID
	exps = append(exps, p.parseExp())
	for p.at(token.Semicolon) {
		p.advance()
		exps = append(exps, p.parseExp())
	}
	end, _ := p.expect(token.KwEnd, "'end'")
	sp := start.Span.Cover(end.Span)
	var body ast.ExpID
	if len(exps) == 1 {
		body = exps[0]
	} else {
		body = p.file.Exps.NewSeq(sp, exps)
	}
	return p.file.Exps.NewLet(sp, dec, body)
}

// parseFnExp parses "fn match".
func (p *Parser) parseFnExp() ast.ExpID {
	start, _ := p.expect(token.KwFn, "'fn'")
	arms := p.parseMatch()
	sp := start.Span
	if len(arms) > 0 {
		sp = sp.Cover(arms[len(arms)-1].Span)
	}
	return p.file.Exps.NewFn(sp, arms)
}

// parseCaseExp parses "case exp of match".
func (p *Parser) parseCaseExp() ast.ExpID {
	start, _ := p.expect(token.KwCase, "'case'")
	scrut := p.parseExp()
	p.expect(token.KwOf, "'of'")
	arms := p.parseMatch()
	sp := start.Span
	if len(arms) > 0 {
		sp = sp.Cover(arms[len(arms)-1].Span)
	}
	return p.file.Exps.NewCase(sp, scrut, arms)
}

// parseIfExp parses "if e1 then e2 else e3".
func (p *Parser) parseIfExp() ast.ExpID {
	start, _ := p.expect(token.KwIf, "'if'")
	cond := p.parseExp()
	p.expect(token.KwThen, "'then'")
	then := p.parseExp()
	p.expect(token.KwElse, "'else'")
	els := p.parseExp()
	sp := start.Span.Cover(p.file.Exps.Get(els).Span)
	return p.file.Exps.NewIf(sp, cond, then, els)
}

// parseWhileExp parses "while e1 do e2".
func (p *Parser) parseWhileExp() ast.ExpID {
	start, _ := p.expect(token.KwWhile, "'while'")
	cond := p.parseExp()
	p.expect(token.KwDo, "'do'")
	body := p.parseExp()
	sp := start.Span.Cover(p.file.Exps.Get(body).Span)
	return p.file.Exps.NewWhile(sp, cond, body)
}

// parseParenExp parses "()", "(exp)", "(exp, exp, ...)" (tuple), or
// "(exp1; exp2; ...; expN)" (sequence).
func (p *Parser) parseParenExp() ast.ExpID {
	start, _ := p.expect(token.LParen, "'('")
	if p.at(token.RParen) {
		end := p.advance()
		return p.file.Exps.NewTuple(start.Span.Cover(end.Span), nil)
	}
	first := p.parseExp()
	switch {
	case p.at(token.Comma):
		elems := []ast.ExpID{first}
		for p.at(token.Comma) {
			p.advance()
			elems = append(elems, p.parseExp())
		}
		end, _ := p.expect(token.RParen, "')'")
		return p.file.Exps.NewTuple(start.Span.Cover(end.Span), elems)
	case p.at(token.Semicolon):
		elems := []ast.ExpID{first}
		for p.at(token.Semicolon) {
			p.advance()
			elems = append(elems, p.parseExp())
		}
		end, _ := p.expect(token.RParen, "')'")
		return p.file.Exps.NewSeq(start.Span.Cover(end.Span), elems)
	default:
		p.expect(token.RParen, "')'")
		return first
	}
}

// parseListExp parses "[]" or "[exp, exp, ...]".
func (p *Parser) parseListExp() ast.ExpID {
	start, _ := p.expect(token.LBracket, "'['")
	var elems []ast.ExpID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseExp())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RBracket, "']'")
	return p.file.Exps.NewList(start.Span.Cover(end.Span), elems)
}

// parseRecordExp parses "{lab = exp, ...}", with punning "{x, y}" sugar for
// "{x = x, y = y}".
func (p *Parser) parseRecordExp() ast.ExpID {
	start, _ := p.expect(token.LBrace, "'{'")
	var rows []ast.ExpRow
	seen := map[source.NameID]bool{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		labTok, ok := p.expect(token.IdentAlpha, "field label")
		if !ok {
			break
		}
		lab := p.intern(labTok)
		var value ast.ExpID
		sp := labTok.Span
		if p.at(token.Equals) {
			p.advance()
			value = p.parseExp()
			sp = sp.Cover(p.file.Exps.Get(value).Span)
		} else {
			value = p.file.Exps.NewPath(labTok.Span, ast.LongID{Name: lab, Span: labTok.Span})
		}
		if seen[lab] {
			p.report(diag.SynDuplicateLabel, sp, "duplicate record label")
		}
		seen[lab] = true
		rows = append(rows, ast.ExpRow{Label: lab, Value: value, Span: sp})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RBrace, "'}'")
	return p.file.Exps.NewRecord(start.Span.Cover(end.Span), rows)
}

// parseMatch parses "pat1 => exp1 | pat2 => exp2 | ...".
func (p *Parser) parseMatch() []ast.MatchArm {
	var arms []ast.MatchArm
	for {
		pat := p.parsePat()
		p.expect(token.FatArrow, "'=>'")
		body := p.parseExp()
		sp := p.file.Pats.Get(pat).Span.Cover(p.file.Exps.Get(body).Span)
		arms = append(arms, ast.MatchArm{Pat: pat, Body: body, Span: sp})
		if p.at(token.Bar) {
			p.advance()
			continue
		}
		break
	}
	return arms
}

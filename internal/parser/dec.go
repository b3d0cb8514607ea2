package parser

import (
	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/token"
)

// parseDec parses one declaration (not a sequence) and reports whether it
// recognized a starter token at all; false tells the caller to resynchronize
// rather than treat the zero-value DecID as a real empty declaration.
func (p *Parser) parseDec() (ast.DecID, bool) {
	switch p.peek().Kind {
	case token.KwVal:
		return p.parseValDec(), true
	case token.KwFun:
		return p.parseFunDec(), true
	case token.KwType:
		return p.parseTypeDec(), true
	case token.KwDatatype:
		return p.parseDatatypeDec(), true
	case token.KwAbstype:
		return p.parseAbstypeDec(), true
	case token.KwException:
		return p.parseExceptionDec(), true
	case token.KwLocal:
		return p.parseLocalDec(), true
	case token.KwOpen:
		return p.parseOpenDec(), true
	case token.KwInfix:
		return p.parseFixityDec(ast.FixityInfix), true
	case token.KwInfixr:
		return p.parseFixityDec(ast.FixityInfixr), true
	case token.KwNonfix:
		return p.parseNonfixDec(), true
	case token.Semicolon:
		sp := p.peek().Span
		return p.file.Decs.NewEmpty(sp), true
	default:
		return ast.NoDecID, false
	}
}

// parseDecSeqUntil parses zero or more declarations until stop (not
// consumed) or EOF, folding them into a single Seq per 's
// sequencing desugaring (a singleton collapses to its element — done by the
// lowerer, not here, since the parser always retains the Seq wrapper so
// source spans stay accurate).
func (p *Parser) parseDecSeqUntil(stop token.Kind) ast.DecID {
	start := p.peek().Span
	var decs []ast.DecID
	for !p.at(stop) && !p.at(token.EOF) {
		before := p.peek()
		id, ok := p.parseDec()
		if ok {
			decs = append(decs, id)
		} else {
			p.resyncUntilLocal(stop)
		}
		if !p.at(stop) && !p.at(token.EOF) {
			after := p.peek()
			if after.Kind == before.Kind && after.Span == before.Span {
				p.advance()
			}
		}
	}
	end := p.lastSpan
	return p.file.Decs.NewSeq(start.Cover(end), decs)
}

// resyncUntilLocal recovers from a failed local declaration by skipping to
// the next ';', a declaration starter, or stop.
func (p *Parser) resyncUntilLocal(stop token.Kind) {
	targets := append([]token.Kind{stop, token.Semicolon}, decStarters...)
	p.resyncUntil(targets...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseTyVarSeq parses an optional leading type-variable sequence: a single
// "'a", or a parenthesized "('a, 'b)" sequence, before a val/fun/type/
// datatype binder.
func (p *Parser) parseTyVarSeq() []source.NameID {
	if p.at(token.TyVar) {
		t := p.advance()
		return []source.NameID{p.opts.Interner.Intern(t.Text)}
	}
	if p.at(token.LParen) && p.peekN(1).Kind == token.TyVar {
		p.advance() // '('
		var vars []source.NameID
		t := p.advance()
		vars = append(vars, p.opts.Interner.Intern(t.Text))
		for p.at(token.Comma) {
			p.advance()
			tv, _ := p.expect(token.TyVar, "type variable")
			vars = append(vars, p.opts.Interner.Intern(tv.Text))
		}
		p.expect(token.RParen, "')'")
		return vars
	}
	return nil
}

// parseValDec parses "val tyvarseq [rec] valbind [and valbind]*".
func (p *Parser) parseValDec() ast.DecID {
	start, _ := p.expect(token.KwVal, "'val'")
	tyVars := p.parseTyVarSeq()
	rec := false
	if p.at(token.KwRec) {
		p.advance()
		rec = true
	}
	var binds []ast.ValBind
	binds = append(binds, p.parseValBind())
	for p.at(token.KwAnd) {
		p.advance()
		binds = append(binds, p.parseValBind())
	}
	end := p.lastSpan
	sp := start.Span.Cover(end)
	return p.file.Decs.NewVal(sp, tyVars, rec, binds)
}

func (p *Parser) parseValBind() ast.ValBind {
	pat := p.parsePat()
	p.expect(token.Equals, "'='")
	exp := p.parseExp()
	sp := p.file.Pats.Get(pat).Span.Cover(p.file.Exps.Get(exp).Span)
	return ast.ValBind{Pat: pat, Exp: exp, Span: sp}
}

// parseFunDec parses "fun tyvarseq fvalbind [and fvalbind]*"; each fvalbind
// is one or more "|"-separated clauses for the same function name.
func (p *Parser) parseFunDec() ast.DecID {
	start, _ := p.expect(token.KwFun, "'fun'")
	tyVars := p.parseTyVarSeq()
	var groups []ast.FunBindGroup
	groups = append(groups, p.parseFunBindGroup())
	for p.at(token.KwAnd) {
		p.advance()
		groups = append(groups, p.parseFunBindGroup())
	}
	sp := start.Span.Cover(p.lastSpan)
	return p.file.Decs.NewFun(sp, tyVars, groups)
}

func (p *Parser) parseFunBindGroup() ast.FunBindGroup {
	var clauses []ast.FunClause
	clauses = append(clauses, p.parseFunClause())
	for p.at(token.Bar) {
		p.advance()
		clauses = append(clauses, p.parseFunClause())
	}
	return ast.FunBindGroup{Clauses: clauses}
}

// parseFunClause parses one "[op] name atpat+ [: ty] = exp" clause, or the
// infix form "atpat name atpat [: ty] = exp" (and its parenthesized
// equivalent "(atpat name atpat) atpat* [: ty] = exp"), normalizing both to
// the flat name+args shape FunClause stores.
func (p *Parser) parseFunClause() ast.FunClause {
	start := p.peek().Span
	if p.at(token.KwOp) {
		p.advance()
	}
	// Infix clause head: "atpat name atpat ...".
	if p.startsAtomPat() && !p.at(token.IdentAlpha) {
		return p.parseInfixFunClauseHead(start)
	}
	// The common prefix form: "name arg1 arg2 ... [: ty] = exp". Full
	// infix-clause-head disambiguation for an identifier-shaped left
	// pattern ("x eq y = ...") would need two-token lookahead this lexer
	// does not buffer, so only clauses plainly starting with a
	// non-identifier atomic pattern take the infix path above.
	nameTok, _ := p.expect(token.IdentAlpha, "function name")
	var args []ast.PatID
	for p.startsAtomPat() {
		args = append(args, p.parseAtomPat())
	}
	return p.finishFunClause(nameTok, args, start)
}

func (p *Parser) parseInfixFunClauseHead(start source.Span) ast.FunClause {
	left := p.parseAtomPat()
	nameTok, _ := p.expect(token.IdentAlpha, "infix function name")
	if nameTok.Kind != token.IdentAlpha {
		nameTok, _ = p.expectIdentSym("infix function name")
	}
	right := p.parseAtomPat()
	var trailing []ast.PatID
	for p.startsAtomPat() {
		trailing = append(trailing, p.parseAtomPat())
	}
	args := append([]ast.PatID{left, right}, trailing...)
	return p.finishFunClause(nameTok, args, start)
}

// expectIdentSym consumes a symbolic identifier or reports an error.
func (p *Parser) expectIdentSym(what string) (token.Token, bool) {
	return p.expect(token.IdentSym, what)
}

func (p *Parser) finishFunClause(nameTok token.Token, args []ast.PatID, start source.Span) ast.FunClause {
	var resultTy ast.TyID = ast.NoTyID
	if p.at(token.Colon) {
		p.advance()
		resultTy = p.parseTy()
	}
	p.expect(token.Equals, "'='")
	body := p.parseExp()
	sp := start.Cover(p.file.Exps.Get(body).Span)
	return ast.FunClause{
		Name:     p.intern(nameTok),
		NameSpan: nameTok.Span,
		Args:     args,
		ResultTy: resultTy,
		Body:     body,
		Span:     sp,
	}
}

// parseTypeDec parses "type typbind [and typbind]*".
func (p *Parser) parseTypeDec() ast.DecID {
	start, _ := p.expect(token.KwType, "'type'")
	var binds []ast.TypBind
	binds = append(binds, p.parseTypBind())
	for p.at(token.KwAnd) {
		p.advance()
		binds = append(binds, p.parseTypBind())
	}
	return p.file.Decs.NewType(start.Span.Cover(p.lastSpan), binds)
}

func (p *Parser) parseTypBind() ast.TypBind {
	start := p.peek().Span
	tyVars := p.parseTyVarSeq()
	conTok, _ := p.expect(token.IdentAlpha, "type constructor name")
	p.expect(token.Equals, "'='")
	ty := p.parseTy()
	sp := start.Cover(p.file.Tys.Get(ty).Span)
	return ast.TypBind{TyVars: tyVars, Con: p.intern(conTok), Ty: ty, Span: sp}
}

// parseDatatypeDec parses "datatype datbind [and datbind]* [withtype
// typbind [and typbind]*]", or the replication form "datatype tycon = datatype
// longtycon".
func (p *Parser) parseDatatypeDec() ast.DecID {
	start, _ := p.expect(token.KwDatatype, "'datatype'")
	if p.isDatatypeReplication() {
		conTok, _ := p.expect(token.IdentAlpha, "type constructor name")
		p.expect(token.Equals, "'='")
		p.expect(token.KwDatatype, "'datatype'")
		orig := p.parseLongID()
		sp := start.Span.Cover(orig.Span)
		return p.file.Decs.NewDatatypeRepl(sp, p.intern(conTok), orig)
	}
	var binds []ast.DatBind
	binds = append(binds, p.parseDatBind())
	for p.at(token.KwAnd) {
		p.advance()
		binds = append(binds, p.parseDatBind())
	}
	var withType []ast.TypBind
	if p.at(token.KwWithtype) {
		p.advance()
		withType = append(withType, p.parseTypBind())
		for p.at(token.KwAnd) {
			p.advance()
			withType = append(withType, p.parseTypBind())
		}
	}
	return p.file.Decs.NewDatatype(start.Span.Cover(p.lastSpan), binds, withType)
}

// isDatatypeReplication detects "datatype tycon = datatype longtycon" via
// three tokens of lookahead: tycon name, '=', then a second 'datatype'
// keyword (as opposed to an ordinary datbind's constructor list).
func (p *Parser) isDatatypeReplication() bool {
	return p.peekN(0).Kind == token.IdentAlpha &&
		p.peekN(1).Kind == token.Equals &&
		p.peekN(2).Kind == token.KwDatatype
}

func (p *Parser) parseDatBind() ast.DatBind {
	start := p.peek().Span
	tyVars := p.parseTyVarSeq()
	conTok, _ := p.expect(token.IdentAlpha, "type constructor name")
	p.expect(token.Equals, "'='")
	var cons []ast.ConBind
	cons = append(cons, p.parseConBind())
	for p.at(token.Bar) {
		p.advance()
		cons = append(cons, p.parseConBind())
	}
	sp := start.Cover(p.lastSpan)
	return ast.DatBind{TyVars: tyVars, Con: p.intern(conTok), Cons: cons, Span: sp}
}

func (p *Parser) parseConBind() ast.ConBind {
	if p.at(token.KwOp) {
		p.advance()
	}
	nameTok, _ := p.expect(token.IdentAlpha, "constructor name")
	var arg ast.TyID = ast.NoTyID
	sp := nameTok.Span
	if p.at(token.KwOf) {
		p.advance()
		arg = p.parseTy()
		sp = sp.Cover(p.file.Tys.Get(arg).Span)
	}
	return ast.ConBind{Name: p.intern(nameTok), Arg: arg, Span: sp}
}

// parseAbstypeDec parses "abstype datbind [and datbind]* [withtype
// typbind]* with dec end".
func (p *Parser) parseAbstypeDec() ast.DecID {
	start, _ := p.expect(token.KwAbstype, "'abstype'")
	var binds []ast.DatBind
	binds = append(binds, p.parseDatBind())
	for p.at(token.KwAnd) {
		p.advance()
		binds = append(binds, p.parseDatBind())
	}
	var withType []ast.TypBind
	if p.at(token.KwWithtype) {
		p.advance()
		withType = append(withType, p.parseTypBind())
		for p.at(token.KwAnd) {
			p.advance()
			withType = append(withType, p.parseTypBind())
		}
	}
	p.expect(token.KwWith, "'with'")
	body := p.parseDecSeqUntil(token.KwEnd)
	end, _ := p.expect(token.KwEnd, "'end'")
	return p.file.Decs.NewAbstype(start.Span.Cover(end.Span), binds, withType, body)
}

// parseExceptionDec parses "exception exbind [and exbind]*".
func (p *Parser) parseExceptionDec() ast.DecID {
	start, _ := p.expect(token.KwException, "'exception'")
	var binds []ast.ExBind
	binds = append(binds, p.parseExBind())
	for p.at(token.KwAnd) {
		p.advance()
		binds = append(binds, p.parseExBind())
	}
	return p.file.Decs.NewException(start.Span.Cover(p.lastSpan), binds)
}

func (p *Parser) parseExBind() ast.ExBind {
	if p.at(token.KwOp) {
		p.advance()
	}
	nameTok, _ := p.expect(token.IdentAlpha, "exception name")
	sp := nameTok.Span
	if p.at(token.KwOf) {
		p.advance()
		arg := p.parseTy()
		sp = sp.Cover(p.file.Tys.Get(arg).Span)
		return ast.ExBind{Name: p.intern(nameTok), Arg: arg, Span: sp}
	}
	if p.at(token.Equals) {
		p.advance()
		orig := p.parseLongID()
		sp = sp.Cover(orig.Span)
		return ast.ExBind{Name: p.intern(nameTok), Orig: orig, Repl: true, Span: sp}
	}
	return ast.ExBind{Name: p.intern(nameTok), Arg: ast.NoTyID, Span: sp}
}

// parseLocalDec parses "local dec1 in dec2 end".
func (p *Parser) parseLocalDec() ast.DecID {
	start, _ := p.expect(token.KwLocal, "'local'")
	inner := p.parseDecSeqUntil(token.KwIn)
	p.expect(token.KwIn, "'in'")
	body := p.parseDecSeqUntil(token.KwEnd)
	end, _ := p.expect(token.KwEnd, "'end'")
	return p.file.Decs.NewLocal(start.Span.Cover(end.Span), inner, body)
}

// parseOpenDec parses "open longstrid+".
func (p *Parser) parseOpenDec() ast.DecID {
	start, _ := p.expect(token.KwOpen, "'open'")
	var structs []ast.LongID
	structs = append(structs, p.parseLongID())
	for p.at(token.IdentAlpha) {
		structs = append(structs, p.parseLongID())
	}
	sp := start.Span
	if len(structs) > 0 {
		sp = sp.Cover(structs[len(structs)-1].Span)
	}
	return p.file.Decs.NewOpen(sp, structs)
}

// parseFixityDec parses "infix [d] vid+" / "infixr [d] vid+".
func (p *Parser) parseFixityDec(kind ast.FixityKind) ast.DecID {
	start := p.advance() // consume 'infix'/'infixr'
	level := 0
	if p.at(token.IntLit) {
		lv := p.advance()
		level = parseDigitsAsInt(lv.Text)
	}
	names, lastSpan := p.parseFixityNames()
	assoc := AssocLeft
	if kind == ast.FixityInfixr {
		assoc = AssocRight
	}
	p.fixity.Define(level, assoc, p.textsOf(names)...)
	sp := start.Span.Cover(lastSpan)
	return p.file.Decs.NewFixity(sp, kind, level, names)
}

// parseNonfixDec parses "nonfix vid+".
func (p *Parser) parseNonfixDec() ast.DecID {
	start, _ := p.expect(token.KwNonfix, "'nonfix'")
	names, lastSpan := p.parseFixityNames()
	p.fixity.Nonfix(p.textsOf(names)...)
	return p.file.Decs.NewFixity(start.Span.Cover(lastSpan), ast.FixityNonfix, 0, names)
}

// parseFixityNames parses one or more identifier names (alphanumeric or
// symbolic) naming the operators an infix/infixr/nonfix declaration
// affects.
func (p *Parser) parseFixityNames() ([]source.NameID, source.Span) {
	var names []source.NameID
	var last source.Span
	for p.at(token.IdentAlpha) || p.at(token.IdentSym) {
		t := p.advance()
		names = append(names, p.intern(t))
		last = t.Span
	}
	if len(names) == 0 {
		p.unexpected("expected identifier in fixity declaration")
	}
	return names, last
}

// textsOf resolves each interned NameID back to its string for the
// FixityEnv's string-keyed table.
func (p *Parser) textsOf(ids []source.NameID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = p.opts.Interner.String(id)
	}
	return out
}

func parseDigitsAsInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// Package parser implements an error-tolerant, recursive-descent parser for
// Standard ML compilation units, producing an internal/ast.File plus parse
// diagnostics. It never returns early on a syntax error: every production
// that fails resynchronizes to a recognizable boundary token so one bad
// declaration does not abort the rest of the file.
package parser

import (
	"slices"

	"github.com/t18b219k/millet/internal/ast"
	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/token"
)

// Options configures a parse run.
type Options struct {
	Reporter  diag.Reporter
	Interner  *source.Interner
	MaxErrors uint
}

func (o *Options) enough(errCount uint) bool {
	return o.MaxErrors != 0 && errCount >= o.MaxErrors
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	opts     Options
	fixity   *FixityEnv
	errCount uint
	lastSpan source.Span
	// buf holds tokens read ahead of the current position, for the rare
	// productions (datatype replication) that need more than one token of
	// lookahead; the underlying lexer only buffers one.
	buf []token.Token
}

// ParseFile parses one compilation unit from lx into a fresh ast.File keyed
// by path. It never fails outright; diagnostics accumulate through
// opts.Reporter and the returned tree may contain placeholder nodes wherever
// a production could not recover a real one.
func ParseFile(lx *lexer.Lexer, path source.FileID, opts Options) *ast.File {
	if opts.Interner == nil {
		opts.Interner = source.NewInterner()
	}
	p := &Parser{
		lx:       lx,
		file:     ast.NewFile(path),
		opts:     opts,
		fixity:   DefaultFixityEnv(),
		lastSpan: lx.EmptySpan(),
	}
	p.file.Top = p.parseTopLevel()
	return p.file
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

// peekN returns the token n positions ahead of the current position (0 is
// the current token) without consuming anything, filling the lookahead
// buffer from the lexer as needed.
func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
		if p.buf[len(p.buf)-1].Kind == token.EOF {
			break
		}
	}
	if n >= len(p.buf) {
		return p.buf[len(p.buf)-1]
	}
	return p.buf[n]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(ks ...token.Kind) bool { return slices.Contains(ks, p.peek().Kind) }

// advance consumes and returns the next token, tracking lastSpan for
// end-of-input diagnostics.
func (p *Parser) advance() token.Token {
	var tok token.Token
	if len(p.buf) > 0 {
		tok = p.buf[0]
		p.buf = p.buf[1:]
	} else {
		tok = p.lx.Next()
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// errSpan returns the best span to anchor a diagnostic at the current
// position: the next token's span, or a zero-length span just past the last
// consumed token when the parser has run off the end of the file.
func (p *Parser) errSpan() source.Span {
	if p.at(token.EOF) {
		return p.lastSpan.ZeroToEnd()
	}
	return p.peek().Span
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	p.errCount++
	if p.opts.enough(p.errCount) {
		return
	}
	diag.Error(p.opts.Reporter, code, msg, sp)
}

// expect consumes k if present; otherwise reports SynExpectedToken at the
// current position and leaves the input untouched so the caller's
// resynchronization can decide what to skip.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(diag.SynExpectedToken, p.errSpan(), "expected "+what+", found "+p.peek().Kind.String())
	return token.Token{Kind: token.Invalid, Span: p.errSpan()}, false
}

func (p *Parser) unexpected(msg string) {
	p.report(diag.SynUnexpectedToken, p.errSpan(), msg)
}

// intern returns the NameID for an identifier token's text.
func (p *Parser) intern(tok token.Token) source.NameID {
	return p.opts.Interner.Intern(tok.Text)
}

// resyncUntil consumes tokens up to (not including) the first one matching
// stop, or EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

// decStarters are the tokens that can begin a top-level or local
// declaration; used both for dispatch and as resync targets.
var decStarters = []token.Kind{
	token.KwVal, token.KwFun, token.KwType, token.KwDatatype, token.KwAbstype,
	token.KwException, token.KwLocal, token.KwOpen,
	token.KwInfix, token.KwInfixr, token.KwNonfix,
}

// parseTopLevel parses the whole file as one declaration sequence.
func (p *Parser) parseTopLevel() ast.DecID {
	start := p.peek().Span
	var decs []ast.DecID
	for !p.at(token.EOF) {
		before := p.peek()
		id, ok := p.parseDec()
		if ok {
			decs = append(decs, id)
		} else {
			p.resyncTop()
		}
		if !p.at(token.EOF) {
			after := p.peek()
			if after.Kind == before.Kind && after.Span == before.Span {
				p.advance()
			}
		}
	}
	return p.file.Decs.NewSeq(start.Cover(p.lastSpan), decs)
}

// resyncTop recovers from a failed top-level declaration by skipping to the
// next ';' or declaration-starting keyword.
func (p *Parser) resyncTop() {
	stop := append(slices.Clone(decStarters), token.Semicolon)
	p.resyncUntil(stop...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// IdentAlpha is an alphanumeric identifier (may be a long identifier
	// segment, e.g. "List" in "List.map").
	IdentAlpha
	// IdentSym is a symbolic identifier built from SML's symbolic
	// character class (e.g. "+", "@", "::", "!@#").
	IdentSym
	// TyVar is a type variable token, e.g. 'a or ''a (equality ty var).
	TyVar

	// Reserved words, per the Definition of Standard ML §2.4.
	KwAbstype
	KwAnd
	KwAndalso
	KwAs
	KwCase
	KwDatatype
	KwDo
	KwElse
	KwEnd
	KwException
	KwFn
	KwFun
	KwHandle
	KwIf
	KwIn
	KwInfix
	KwInfixr
	KwLet
	KwLocal
	KwNonfix
	KwOf
	KwOp
	KwOpen
	KwOrelse
	KwRaise
	KwRec
	KwThen
	KwType
	KwVal
	KwWith
	KwWithtype
	KwWhile
	KwEqtype
	KwFunctor
	KwInclude
	KwSharing
	KwSig
	KwSignature
	KwStruct
	KwStructure
	KwWhere

	// Literals.
	IntLit
	WordLit
	RealLit
	CharLit
	StringLit

	// Symbolic punctuation that is reserved even though it looks symbolic
	// (the Definition calls these out as not available for redefinition
	// as identifiers).
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	DotDotDot // ...
	Underscore
	Bar        // |
	Equals     // =
	FatArrow   // =>
	Arrow      // ->
	Hash       // #
	ColonGt    // :>
)

// classNames mirrors the order of the Kind enum for String().
var classNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "eof",
	IdentAlpha: "ident",
	IdentSym:   "ident-sym",
	TyVar:      "tyvar",
	IntLit:     "int-lit",
	WordLit:    "word-lit",
	RealLit:    "real-lit",
	CharLit:    "char-lit",
	StringLit:  "string-lit",
}

// String renders a human-readable class name, used in diagnostic messages
// like "expected expression, found '|'".
func (k Kind) String() string {
	if name, ok := classNames[k]; ok {
		return name
	}
	if text, ok := reservedText[k]; ok {
		return text
	}
	return "unknown"
}

// IsLiteral reports whether the token is a literal of some base type.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, WordLit, RealLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsReservedWord reports whether the token is one of the Definition's
// reserved words (as opposed to a regular identifier).
func (k Kind) IsReservedWord() bool {
	_, ok := reservedText[k]
	return ok
}

package ast

// SConKind classifies a special constant (Definition of Standard ML §2.2),
// shared between expression and pattern literals.
type SConKind uint8

const (
	SConInt SConKind = iota
	SConWord
	SConReal
	SConChar
	SConString
)

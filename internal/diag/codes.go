package diag

import "fmt"

// Code is a closed enumeration of every diagnostic this analyzer can emit,
// banded by pipeline stage (lex 1000s, syntax 2000s, sema 3000s, ...).
type Code uint16

const (
	UnknownCode Code = 0

	// Lex (1000s) —  "Lex".
	LexUnmatchedOpenComment  Code = 1001
	LexUnmatchedCloseComment Code = 1002
	LexIncompleteTyVar       Code = 1003
	LexIncompleteLit         Code = 1004
	LexUnclosedStringLit     Code = 1005
	LexNegativeWordLit       Code = 1006
	LexWrongLenCharLit       Code = 1007
	LexInvalidStringLit      Code = 1008
	LexInvalidSource         Code = 1009
	LexTokenTooLong          Code = 1010

	// Parse (2000s) —  "Parse".
	SynUnexpectedToken    Code = 2001
	SynExpectedToken      Code = 2002
	SynTrailingSeparator  Code = 2003
	SynUnclosedDelimiter  Code = 2004
	SynDuplicateLabel     Code = 2005

	// Lower (2500s) —  "Lower".
	LowerUnnecessaryParens Code = 2501
	LowerFunClauseArity    Code = 2502
	LowerFunClauseName     Code = 2503

	// Elaboration (3000s) —  "Elaboration".
	ElabUndefined           Code = 3001
	ElabMismatchedTypes     Code = 3002
	ElabCircularity         Code = 3003
	ElabAppLhsNotFn         Code = 3004
	ElabTyEscape            Code = 3005
	ElabNonExhaustiveMatch  Code = 3006
	ElabNonExhaustiveBind   Code = 3007
	ElabUnreachableArm      Code = 3008
	ElabRedefined           Code = 3009
	ElabValRecExpNotFn      Code = 3010
	ElabOverloadUnresolved  Code = 3011
	ElabRealEqPattern       Code = 3012
	ElabDuplicateRow        Code = 3013
	ElabArityMismatch       Code = 3014

	// Group / project (5000s) —  "Group".
	GroupCmParse           Code = 5001
	GroupMlbParse          Code = 5002
	GroupUnsupportedExport Code = 5003
	GroupDuplicate         Code = 5004
	GroupCycle             Code = 5005

	// Input/IO and config (6000s) —  "Input/IO".
	IOReadDir         Code = 6001
	IOReadFile        Code = 6002
	IOCanonicalize    Code = 6003
	IONotInRoot       Code = 6004
	IOMultipleRoots   Code = 6005
	IONoRoot          Code = 6006
	IONotGroup        Code = 6007
	CfgCouldNotParse  Code = 6008
	CfgInvalidVersion Code = 6009
)

var codeNames = map[Code]string{
	UnknownCode:              "unknown",
	LexUnmatchedOpenComment:  "lex-unmatched-open-comment",
	LexUnmatchedCloseComment: "lex-unmatched-close-comment",
	LexIncompleteTyVar:       "lex-incomplete-ty-var",
	LexIncompleteLit:         "lex-incomplete-lit",
	LexUnclosedStringLit:     "lex-unclosed-string-lit",
	LexNegativeWordLit:       "lex-negative-word-lit",
	LexWrongLenCharLit:       "lex-wrong-len-char-lit",
	LexInvalidStringLit:      "lex-invalid-string-lit",
	LexInvalidSource:         "lex-invalid-source",
	LexTokenTooLong:          "lex-token-too-long",
	SynUnexpectedToken:       "syn-unexpected-token",
	SynExpectedToken:         "syn-expected-token",
	SynTrailingSeparator:     "syn-trailing-separator",
	SynUnclosedDelimiter:     "syn-unclosed-delimiter",
	SynDuplicateLabel:        "syn-duplicate-label",
	LowerUnnecessaryParens:   "lower-unnecessary-parens",
	LowerFunClauseArity:      "lower-fun-clause-arity",
	LowerFunClauseName:       "lower-fun-clause-name",
	ElabUndefined:            "elab-undefined",
	ElabMismatchedTypes:      "elab-mismatched-types",
	ElabCircularity:          "elab-circularity",
	ElabAppLhsNotFn:          "elab-app-lhs-not-fn",
	ElabTyEscape:             "elab-ty-escape",
	ElabNonExhaustiveMatch:   "elab-nonexhaustive-match",
	ElabNonExhaustiveBind:    "elab-nonexhaustive-binding",
	ElabUnreachableArm:       "elab-unreachable-arm",
	ElabRedefined:            "elab-redefined",
	ElabValRecExpNotFn:       "elab-val-rec-exp-not-fn",
	ElabOverloadUnresolved:   "elab-overload-unresolved",
	ElabRealEqPattern:        "elab-real-eq-pattern",
	ElabDuplicateRow:         "elab-duplicate-row",
	ElabArityMismatch:        "elab-arity-mismatch",
	GroupCmParse:             "group-cm-parse",
	GroupMlbParse:            "group-mlb-parse",
	GroupUnsupportedExport:   "group-unsupported-export",
	GroupDuplicate:           "group-duplicate",
	GroupCycle:               "group-cycle",
	IOReadDir:                "io-read-dir",
	IOReadFile:               "io-read-file",
	IOCanonicalize:           "io-canonicalize",
	IONotInRoot:              "io-not-in-root",
	IOMultipleRoots:          "io-multiple-roots",
	IONoRoot:                 "io-no-root",
	IONotGroup:               "io-not-group",
	CfgCouldNotParse:         "config-could-not-parse",
	CfgInvalidVersion:        "config-invalid-version",
}

// ID returns the code's stable string identifier, used in JSON output.
func (c Code) ID() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code-%d", uint16(c))
}

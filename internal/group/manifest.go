package group

import (
	"path/filepath"
	"strings"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

// Kind distinguishes the two group-file grammars this driver parses: SML/NJ's
// Compilation Manager (.cm) and MLton's Basis (.mlb).
type Kind uint8

const (
	KindMLB Kind = iota
	KindCM
)

// ExportKind tags one export clause's namespace.
type ExportKind uint8

const (
	ExportStructure ExportKind = iota
	ExportSignature
	ExportFunctor
	ExportFunSig
	ExportLibrary
)

// PathRef is one path a group file names, resolved relative to the group
// file's own directory.
type PathRef struct {
	Path string
	Span source.Span
}

// Binding is one `basis <id> = ...` (MLB) structure/signature/functor
// binding a group file introduces into its own namespace, tracked only so
// a duplicate binding within a group can be reported.
type Binding struct {
	Name string
	Span source.Span
}

// Export is one entry in a group file's export clause.
type Export struct {
	Kind ExportKind
	Name string
	Span source.Span
}

// Manifest is one parsed group file: its sources, nested groups, internal
// bindings, and exports.
type Manifest struct {
	Path     string
	Kind     Kind
	Sources  []PathRef
	Groups   []PathRef
	Bindings []Binding
	Exports  []Export
}

// Parse dispatches to the MLB or CM parser by path extension. fileID is
// used only to stamp the manifest's own diagnostics with a source location;
// the group grammars are not SML and are not lexed with internal/lexer.
func Parse(path string, fileID source.FileID, content []byte, rep diag.Reporter) *Manifest {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cm":
		return parseCM(path, fileID, content, rep)
	default:
		return parseMLB(path, fileID, content, rep)
	}
}

// isAnchored reports whether raw is a CM/MLB anchor-variable path
// (dollar-prefixed paths are ignored); the driver never resolves these,
// since the standard basis they normally name is injected directly by
// elab.InitialBasis instead.
func isAnchored(raw string) bool {
	return strings.HasPrefix(raw, "$")
}

func extOf(raw string) string {
	return strings.ToLower(filepath.Ext(raw))
}

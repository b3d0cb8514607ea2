// Package source provides file and span primitives shared across the
// pipeline: every later stage (lexer, parser, HIR, elaborator) locates its
// diagnostics and its definitions in terms of a source.Span into a
// source.FileSet.
package source

type (
	// FileID uniquely identifies a source file within a FileSet. It doubles
	// as the dense "PathId" the group driver hands out for manifest entries.
	FileID uint32
	// FileFlags encodes metadata recovered while loading a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, LSP
	// did-open buffer) rather than read from disk.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 byte-order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF sequences were normalized to LF.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

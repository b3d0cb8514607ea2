package analysis

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/t18b219k/millet/internal/source"
)

// spanToRange converts a byte-offset source.Span into a UTF-16-code-unit
// Range (start, end). unicode/utf16 and unicode/utf8 are the standard
// library's own primitives for exactly this conversion and nothing in the
// dependency set does it better (DESIGN.md records the justification).
func spanToRange(f *source.File, span source.Span) Range {
	return Range{
		Start: byteOffsetToPosition(f, span.Start),
		End:   byteOffsetToPosition(f, span.End),
	}
}

// byteOffsetToPosition converts a byte offset within f's content to a
// zero-based line and UTF-16 code-unit column.
func byteOffsetToPosition(f *source.File, offset uint32) Position {
	lc := lineColOf(f, offset)
	lineStart := lineStartOffset(f, lc.Line)
	lineBytes := f.Content[lineStart:offset]
	return Position{Line: lc.Line - 1, Character: utf16Len(lineBytes)}
}

// positionToByteOffset is the inverse of byteOffsetToPosition, used to turn
// a hover/defs/completions query position back into a byte offset for
// searching the HIR arenas.
func positionToByteOffset(f *source.File, pos Position) (uint32, bool) {
	lineNum := pos.Line + 1
	start := lineStartOffset(f, lineNum)
	line := f.GetLine(lineNum)
	if line == "" && lineNum != 1 {
		return 0, false
	}
	units := utf16.Encode([]rune(line))
	if int(pos.Character) > len(units) {
		return 0, false
	}
	// Walk the line counting UTF-16 units consumed per rune to find the
	// byte offset matching pos.Character.
	var consumed uint32
	off := start
	for _, r := range line {
		if consumed >= pos.Character {
			break
		}
		consumed += utf16RuneLen(r)
		off += uint32(utf8.RuneLen(r))
	}
	return off, true
}

func utf16RuneLen(r rune) uint32 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func utf16Len(b []byte) uint32 {
	var n uint32
	for _, r := range string(b) {
		n += utf16RuneLen(r)
	}
	return n
}

type lineCol struct{ Line uint32 }

func lineColOf(f *source.File, offset uint32) lineCol {
	// Binary search f.LineIdx (byte offsets of every '\n') for the line
	// containing offset, mirroring source.FileSet.Resolve's own algorithm
	// without needing a FileSet (only a *File) at this call site.
	lo, hi := 0, len(f.LineIdx)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.LineIdx[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lineCol{Line: uint32(lo) + 1}
}

func lineStartOffset(f *source.File, lineNum uint32) uint32 {
	if lineNum <= 1 {
		return 0
	}
	idx := int(lineNum) - 2
	if idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return uint32(len(f.Content))
}

package group

import (
	"path/filepath"
	"strings"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

// parseCM extracts the `paths` list and `exports` list from a Compilation
// Manager group file. Reuses scanMLB's tokenizer since CM and MLB share the same
// nested-comment and quoted-path lexical conventions; only the clause
// grammar differs.
func parseCM(path string, fileID source.FileID, content []byte, rep diag.Reporter) *Manifest {
	toks := scanMLB(content, fileID, rep)
	m := &Manifest{Path: path, Kind: KindCM}
	dir := filepath.Dir(path)

	isLibrary := false
	if len(toks) > 0 && !toks[0].quote && strings.EqualFold(toks[0].text, "library") {
		isLibrary = true
	}

	inExports := false
	for idx := 0; idx < len(toks); idx++ {
		t := toks[idx]
		if !t.quote && strings.EqualFold(t.text, "is") {
			inExports = true
			continue
		}
		switch {
		case t.quote && !inExports:
			addPathRef(m, dir, t.text, source.Span{File: fileID, Start: t.start, End: t.end})
		case inExports && !t.quote:
			kind, ok := cmExportKeyword(t.text)
			if !ok {
				continue
			}
			var nameTok mlbToken
			nameSpan := source.Span{File: fileID, Start: t.start, End: t.end}
			if idx+1 < len(toks) && !toks[idx+1].quote {
				nameTok = toks[idx+1]
				nameSpan.End = nameTok.end
				idx++
			}
			if isLibrary {
				kind = ExportLibrary
			}
			m.Exports = append(m.Exports, Export{Kind: kind, Name: nameTok.text, Span: nameSpan})
			if kind == ExportFunSig || kind == ExportLibrary {
				reportUnsupportedExport(rep, nameTok.text, nameSpan)
			}
		}
	}
	return m
}

func cmExportKeyword(word string) (ExportKind, bool) {
	switch strings.ToLower(word) {
	case "structure":
		return ExportStructure, true
	case "signature":
		return ExportSignature, true
	case "functor":
		return ExportFunctor, true
	case "funsig":
		return ExportFunSig, true
	default:
		return 0, false
	}
}

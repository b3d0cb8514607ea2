package group

import (
	"fmt"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

// mlbToken is one lexical unit of an ML Basis file: an identifier/keyword, a
// quoted path, or a single-character punctuation symbol ('=', '(', ')', ';').
type mlbToken struct {
	text  string
	quote bool
	start uint32
	end   uint32
}

// scanMLB tokenizes content, stripping (* nested *) comments exactly as
// Standard ML's own comments nest.
func scanMLB(content []byte, fileID source.FileID, rep diag.Reporter) []mlbToken {
	var toks []mlbToken
	i := 0
	n := len(content)
	for i < n {
		c := content[i]
		switch {
		case c == '(' && i+1 < n && content[i+1] == '*':
			start := uint32(i)
			depth := 1
			i += 2
			for i < n && depth > 0 {
				if i+1 < n && content[i] == '(' && content[i+1] == '*' {
					depth++
					i += 2
					continue
				}
				if i+1 < n && content[i] == '*' && content[i+1] == ')' {
					depth--
					i += 2
					continue
				}
				i++
			}
			if depth > 0 && rep != nil {
				diag.Error(rep, diag.LexUnmatchedOpenComment, "unterminated comment in group file",
					source.Span{File: fileID, Start: start, End: uint32(n)})
			}
		case unicode.IsSpace(rune(c)):
			i++
		case c == '"':
			start := uint32(i)
			i++
			for i < n && content[i] != '"' {
				if content[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			end := i
			if i < n {
				i++ // closing quote
			} else if rep != nil {
				diag.Error(rep, diag.LexUnclosedStringLit, "unclosed path literal in group file",
					source.Span{File: fileID, Start: start, End: uint32(n)})
			}
			toks = append(toks, mlbToken{text: string(content[start+1 : end]), quote: true, start: start, end: uint32(i)})
		case c == '=' || c == '(' || c == ')' || c == ';':
			toks = append(toks, mlbToken{text: string(c), start: uint32(i), end: uint32(i + 1)})
			i++
		default:
			start := i
			for i < n {
				r, size := utf8.DecodeRune(content[i:])
				if unicode.IsSpace(r) || r == '"' || r == '=' || r == '(' || r == ')' || r == ';' {
					break
				}
				i += size
			}
			toks = append(toks, mlbToken{text: string(content[start:i]), start: uint32(start), end: uint32(i)})
		}
	}
	return toks
}

// parseMLB extracts source/nested-group path references and top-level
// `basis <id> = ...` / `<id> = ...` bindings from an ML Basis file. It is
// not a full MLB elaborator: `local ... in ... end`, `ann "..." in ... end`,
// and `open` are flattened (their nested path references and bindings are
// collected as if unwrapped), matching the subset of MLB this analyzer's
// core-language scope needs.
func parseMLB(path string, fileID source.FileID, content []byte, rep diag.Reporter) *Manifest {
	toks := scanMLB(content, fileID, rep)
	m := &Manifest{Path: path, Kind: KindMLB}
	seenBindings := make(map[string]source.Span)
	dir := filepath.Dir(path)

	for idx := 0; idx < len(toks); idx++ {
		t := toks[idx]
		switch {
		case t.quote:
			addPathRef(m, dir, t.text, source.Span{File: fileID, Start: t.start, End: t.end})
		case !t.quote && t.text == "basis" && idx+2 < len(toks) && toks[idx+1].text != "" && toks[idx+2].text == "=":
			name := toks[idx+1].text
			span := source.Span{File: fileID, Start: t.start, End: toks[idx+1].end}
			recordBinding(m, seenBindings, name, span, rep)
		case !t.quote && idx+1 < len(toks) && toks[idx+1].text == "=" && isBareIdent(t.text):
			span := source.Span{File: fileID, Start: t.start, End: t.end}
			recordBinding(m, seenBindings, t.text, span, rep)
		case !t.quote && (t.text == "structure" || t.text == "signature" || t.text == "functor") && idx+1 < len(toks):
			kind := exportKindOf(t.text)
			nameTok := toks[idx+1]
			m.Exports = append(m.Exports, Export{Kind: kind, Name: nameTok.text,
				Span: source.Span{File: fileID, Start: t.start, End: nameTok.end}})
		case !t.quote && t.text == "funsig" && idx+1 < len(toks):
			nameTok := toks[idx+1]
			sp := source.Span{File: fileID, Start: t.start, End: nameTok.end}
			m.Exports = append(m.Exports, Export{Kind: ExportFunSig, Name: nameTok.text, Span: sp})
			reportUnsupportedExport(rep, nameTok.text, sp)
		}
	}
	return m
}

func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	switch s {
	case "open", "local", "in", "end", "ann", "and", "let":
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

func exportKindOf(keyword string) ExportKind {
	switch keyword {
	case "signature":
		return ExportSignature
	case "functor":
		return ExportFunctor
	default:
		return ExportStructure
	}
}

func recordBinding(m *Manifest, seen map[string]source.Span, name string, span source.Span, rep diag.Reporter) {
	if _, ok := seen[name]; ok {
		if rep != nil {
			diag.Error(rep, diag.GroupDuplicate, fmt.Sprintf("duplicate binding %q in group file", name), span)
		}
		return
	}
	seen[name] = span
	m.Bindings = append(m.Bindings, Binding{Name: name, Span: span})
}

func reportUnsupportedExport(rep diag.Reporter, name string, span source.Span) {
	if rep != nil {
		diag.Error(rep, diag.GroupUnsupportedExport, fmt.Sprintf("unsupported export %q", name), span)
	}
}

// addPathRef classifies a quoted path as a source, a nested group, or an
// anchor reference to ignore, resolving relative paths against dir (the
// manifest's own directory).
func addPathRef(m *Manifest, dir, raw string, span source.Span) {
	if isAnchored(raw) {
		return
	}
	resolved := raw
	if !filepath.IsAbs(raw) {
		resolved = filepath.Join(dir, raw)
	}
	ref := PathRef{Path: resolved, Span: span}
	switch extOf(raw) {
	case ".sml", ".sig", ".fun":
		m.Sources = append(m.Sources, ref)
	case ".mlb", ".cm":
		m.Groups = append(m.Groups, ref)
	}
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

// visualWidthUpTo computes the visual column width of s up to a 1-based
// byte column, expanding tabs and accounting for double-width runes so
// caret underlines line up under the source text they annotate.
func visualWidthUpTo(s string, byteCol uint32, tabWidth int) int {
	if byteCol <= 1 {
		return 0
	}
	bytePos, visualPos := 0, 0
	for _, r := range s {
		if bytePos >= int(byteCol-1) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos + tabWidth) / tabWidth * tabWidth
		} else {
			visualPos += runewidth.RuneWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// Pretty renders a Bag's diagnostics as source-anchored, caret-underlined
// text, one diagnostic per block separated by a blank line. There is no
// Fix/TextEdit/preview rendering: this analyzer has no auto-fix surface
// (see DESIGN.md).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	underlineColor := color.New(color.FgRed, color.Bold)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	context, err := safecast.Conv[uint32](opts.Context)
	if err != nil {
		panic(fmt.Errorf("context overflow: %w", err))
	}
	if context == 0 {
		context = 1
	}

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}

		lineColStart, lineColEnd := fs.Resolve(d.Primary)
		f := fs.Get(d.Primary.File)
		displayPath := formatPath(f, fs, opts.PathMode)

		sevStr := d.Severity.String()
		var sevColored string
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint(sevStr)
		case diag.SevWarning:
			sevColored = warningColor.Sprint(sevStr)
		default:
			sevColored = infoColor.Sprint(sevStr)
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", //nolint:errcheck
			pathColor.Sprint(displayPath), lineColStart.Line, lineColStart.Col,
			sevColored, codeColor.Sprint(d.Code.ID()), d.Message)

		totalLines, err := safecast.Conv[uint32](len(f.LineIdx))
		if err != nil {
			panic(fmt.Errorf("total lines overflow: %w", err))
		}
		totalLines++
		if len(f.LineIdx) == 0 && len(f.Content) > 0 {
			totalLines = 1
		}

		startLine := lineColStart.Line
		if startLine > context {
			startLine -= context
		} else {
			startLine = 1
		}
		endLine := min(lineColStart.Line+context, totalLines)

		if startLine > 1 {
			fmt.Fprintln(w, "...") //nolint:errcheck
		}

		const tabWidth = 8
		lineNumWidth := max(len(fmt.Sprintf("%d", endLine)), 3)

		for lineNum := startLine; lineNum <= endLine; lineNum++ {
			lineText := f.GetLine(lineNum)
			gutter := fmt.Sprintf("%s | ", lineNumColor.Sprint(fmt.Sprintf("%*d", lineNumWidth, lineNum)))
			gutterLen := lineNumWidth + 3

			io.WriteString(w, gutter)  //nolint:errcheck
			io.WriteString(w, lineText) //nolint:errcheck
			io.WriteString(w, "\n")    //nolint:errcheck

			if lineNum != lineColStart.Line {
				continue
			}
			startCol, endCol := lineColStart.Col, lineColEnd.Col
			if lineColEnd.Line > lineColStart.Line {
				lenLineText, convErr := safecast.Conv[uint32](len(lineText))
				if convErr != nil {
					panic(fmt.Errorf("len line text overflow: %w", convErr))
				}
				endCol = lenLineText + 1
			}
			visualStart := visualWidthUpTo(lineText, startCol, tabWidth)
			visualEnd := visualWidthUpTo(lineText, endCol, tabWidth)

			var underline strings.Builder
			for range gutterLen {
				underline.WriteByte(' ')
			}
			for range visualStart {
				underline.WriteByte(' ')
			}
			spanLen := visualEnd - visualStart
			if spanLen <= 0 {
				underline.WriteByte('^')
			} else {
				for i := range spanLen {
					if i == spanLen-1 {
						underline.WriteByte('^')
					} else {
						underline.WriteByte('~')
					}
				}
			}
			fmt.Fprintln(w, underlineColor.Sprint(underline.String())) //nolint:errcheck
		}

		if endLine < totalLines {
			fmt.Fprintln(w, "...") //nolint:errcheck
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				notePath := formatPath(nf, fs, opts.PathMode)
				noteStart, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", //nolint:errcheck
					infoColor.Sprint("note"), pathColor.Sprint(notePath), noteStart.Line, noteStart.Col, note.Message)
			}
		}
	}
}

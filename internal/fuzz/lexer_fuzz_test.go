package fuzztests

import (
	"testing"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/source"
	"github.com/t18b219k/millet/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// FuzzLexerTotal checks that for every byte string, the concatenated text
// of lex's tokens reconstructs the input exactly, and that the lexer
// always terminates.
func FuzzLexerTotal(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.sml", input)
		file := fs.Get(fileID)

		bag := diag.NewBag()
		lx := lexer.New(file, lexer.Options{Reporter: bag})

		var rebuilt []byte
		lastEnd := uint32(0)
		for {
			tok := lx.Next()
			if tok.Span.Start < lastEnd {
				t.Fatalf("lexer went backwards: span=%v last=%d", tok.Span, lastEnd)
			}
			rebuilt = append(rebuilt, input[tok.Span.Start:tok.Span.End]...)
			lastEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
		if string(rebuilt) != string(input) {
			t.Fatalf("lex totality violated: got %d bytes, want %d", len(rebuilt), len(input))
		}
	})
}

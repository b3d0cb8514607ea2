package fuzztests

import (
	"context"
	"testing"
	"time"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/lexer"
	"github.com/t18b219k/millet/internal/parser"
	"github.com/t18b219k/millet/internal/source"
)

// parseTimeout bounds how long a single fuzz input may take to parse;
// exceeding it indicates an infinite loop in error recovery.
const parseTimeout = 5 * time.Second

// FuzzParserBuildsAST checks that the parser produces a tree (never panics)
// for arbitrary input, tolerating any number of collected diagnostics.
func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
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
		opts := parser.Options{Reporter: bag, MaxErrors: 128}
		_ = parser.ParseFile(lx, fileID, opts)
	})
}

// FuzzParserNoHang guards against the resync loop spinning forever on
// malformed input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fun f ("))
	f.Add([]byte("val = = = = ="))
	f.Add([]byte("datatype t = datatype"))
	f.Add([]byte("( ( ( ( ( ( ( ("))
	f.Add([]byte("(* (* (* (* (* unterminated"))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.sml", input)
			file := fs.Get(fileID)

			bag := diag.NewBag()
			lx := lexer.New(file, lexer.Options{Reporter: bag})
			opts := parser.Options{Reporter: bag, MaxErrors: 128}
			_ = parser.ParseFile(lx, fileID, opts)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen], []byte("...")...)
}

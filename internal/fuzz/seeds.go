package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB cap for one seed entry
)

// literalSeeds cover the core end-to-end scenarios (identity
// polymorphism, value restriction, ty-name escape, non-exhaustive match,
// overload defaulting, string escapes) plus a few small grammar corners
// (nested comments, word/real literals, `handle`, `abstype`) that are
// cheap wins for the mutator to start from.
var literalSeeds = []string{
	"",
	"fun id x = x",
	"val r = ref (fn x => x) val _ = !r 3 val _ = !r true",
	"local datatype t = C in val x = C end",
	"fun f 0 = 0",
	"val x = 1 + 2",
	`val s = "\u00ZZ"`,
	"(* a (* nested *) comment *) val x = 0w10",
	"val x = 0wxFF val y = ~3.14e~2",
	"exception Foo of int handle Foo n => n",
	"abstype t = C of int with val x = 0 end",
	"fun f (x, y) = x + y and g z = f (z, z)",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range literalSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds walks testdata/*.sml relative to the package directory.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".sml" {
			return nil
		}
		// #nosec G304 -- path comes from the repository's own testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

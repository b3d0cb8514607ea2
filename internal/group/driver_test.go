package group

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// memFS is a tiny in-memory FileSystem for driver tests, avoiding any real
// filesystem I/O.
type memFS struct {
	files map[string]string
}

func newMemFS(files map[string]string) *memFS {
	abs := make(map[string]string, len(files))
	for k, v := range files {
		abs[filepath.Clean(k)] = v
	}
	return &memFS{files: abs}
}

func (m *memFS) IsFile(path string) bool {
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	c, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, errReadFile(errors.New("no such file: " + path))
	}
	return []byte(c), nil
}

func (m *memFS) Canonicalize(path string) (string, error) {
	return filepath.Clean(path), nil
}

// TestLoadCycle is S6: two MLB files mutually including each
// other must fail at driver time with GroupCycle-flavored errCycle, and no
// per-file diagnostics are ever produced since elaboration never starts.
func TestLoadCycle(t *testing.T) {
	fs := newMemFS(map[string]string{
		"a.mlb": `"b.mlb";`,
		"b.mlb": `"a.mlb";`,
	})

	_, err := Load(context.Background(), "a.mlb", Options{FS: fs})
	if err == nil {
		t.Fatalf("expected a cycle error, got nil")
	}
	if !errors.Is(err, errCycle) {
		t.Fatalf("expected errCycle, got: %v", err)
	}
}

// TestLoadAcyclic exercises the non-cyclic path: a root MLB naming one SML
// source must produce a Result with exactly that file in Order, and no
// fatal error.
func TestLoadAcyclic(t *testing.T) {
	fs := newMemFS(map[string]string{
		"root.mlb": `"a.sml";`,
		"a.sml":    `val x = 1`,
	})

	res, err := Load(context.Background(), "root.mlb", Options{FS: fs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Order) != 1 {
		t.Fatalf("expected exactly one elaborated file, got %d", len(res.Order))
	}
	if _, ok := res.Basis.ValEnv["x"]; !ok {
		t.Fatalf("expected x to be bound in the final basis")
	}
}

// TestLoadNotGroup rejects a root path whose extension is neither .mlb nor
// .cm.
func TestLoadNotGroup(t *testing.T) {
	fs := newMemFS(map[string]string{"root.sml": `val x = 1`})

	_, err := Load(context.Background(), "root.sml", Options{FS: fs})
	if !errors.Is(err, errNotGroup) {
		t.Fatalf("expected errNotGroup, got: %v", err)
	}
}

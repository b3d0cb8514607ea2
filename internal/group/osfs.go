package group

import (
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystem directly against the host filesystem,
// as a thin wrapper over os.Stat, os.ReadFile and filepath.Abs/EvalSymlinks.
type OSFileSystem struct{}

func (OSFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path originates from the group file graph the caller supplied
	return os.ReadFile(path)
}

func (OSFileSystem) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

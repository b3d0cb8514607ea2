// Package config loads the optional workspace config file: a TOML document
// naming the schema version and, optionally, the relative path to the root
// group file (.mlb/.cm) a host should load by default. Discovery walks up
// from a starting directory looking for a fixed basename, and decoding
// goes through github.com/BurntSushi/toml, the same pattern as any
// TOML-driven project manifest, adapted to this analyzer's single
// version+workspace-root schema.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/source"
)

// FileName is the config file's fixed basename, discovered by walking up
// from a starting directory.
const FileName = "millet.toml"

// CurrentVersion is the only schema version this analyzer understands.
const CurrentVersion = 1

// Workspace names the default group file a host should load, relative to
// the config file's directory.
type Workspace struct {
	Root string `toml:"root"`
}

// Config is the parsed schema.
type Config struct {
	Version   int       `toml:"version"`
	Workspace Workspace `toml:"workspace"`

	// Dir is the directory the config file was found in, not part of the
	// TOML schema itself, filled in by Load for the caller's
	// convenience when resolving Workspace.Root.
	Dir string `toml:"-"`
}

// ErrInvalidVersion is returned (wrapped with the offending version
// number) when a config file's version field is not CurrentVersion.
var ErrInvalidVersion = errors.New("invalid config version")

// Find walks up from startDir looking for FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the config file at path. An unrecognized version reports
// diag.CfgInvalidVersion via rep as well as returning ErrInvalidVersion, so
// an unknown schema version is collected in the IO/Config error band
// (6000s) rather than silently defaulted.
func Load(path string, rep diag.Reporter) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if rep != nil {
			diag.Error(rep, diag.CfgCouldNotParse, fmt.Sprintf("could not parse config: %v", err), source.Span{})
		}
		return nil, fmt.Errorf("%s: failed to parse config: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	if cfg.Version != CurrentVersion {
		if rep != nil {
			diag.Error(rep, diag.CfgInvalidVersion,
				fmt.Sprintf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion), source.Span{})
		}
		return &cfg, fmt.Errorf("%s: %w: %d", path, ErrInvalidVersion, cfg.Version)
	}
	return &cfg, nil
}

// WorkspaceRoot resolves cfg's workspace.root (if set) to an absolute
// group-file path.
func (c *Config) WorkspaceRoot() (string, bool) {
	if c == nil || c.Workspace.Root == "" {
		return "", false
	}
	if filepath.IsAbs(c.Workspace.Root) {
		return filepath.Clean(c.Workspace.Root), true
	}
	return filepath.Join(c.Dir, c.Workspace.Root), true
}

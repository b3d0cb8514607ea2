package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/t18b219k/millet/internal/analysis"
	"github.com/t18b219k/millet/internal/group"
)

// newAnalysis builds an analysis.Analysis from a command's persistent
// flags, re-reading cmd.Root().PersistentFlags() since each subcommand's
// RunE runs in a separate cobra dispatch. It also sets up the phase tracer
// from --trace*; the caller must defer the returned cleanup.
func newAnalysis(cmd *cobra.Command) (*analysis.Analysis, func(), error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, nil, err
	}
	return analysis.New(analysis.Options{
		Limit:  maxDiagnostics,
		FS:     group.OSFileSystem{},
		Tracer: tracer,
	}), cleanup, nil
}

// positionFromFlags reads --line/--col (both one-based on the CLI surface,
// converted to analysis.Position's zero-based convention) from cmd.
func positionFromFlags(cmd *cobra.Command) (analysis.Position, error) {
	line, err := cmd.Flags().GetInt("line")
	if err != nil {
		return analysis.Position{}, fmt.Errorf("failed to get line flag: %w", err)
	}
	col, err := cmd.Flags().GetInt("col")
	if err != nil {
		return analysis.Position{}, fmt.Errorf("failed to get col flag: %w", err)
	}
	if line < 1 || col < 1 {
		return analysis.Position{}, fmt.Errorf("--line and --col are one-based and must be >= 1")
	}
	return analysis.Position{Line: uint32(line - 1), Character: uint32(col - 1)}, nil
}

func addPositionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("line", 1, "one-based line number")
	cmd.Flags().Int("col", 1, "one-based UTF-16 column number")
}

func sortedPaths(byPath map[string][]analysis.Diagnostic) []string {
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// printDiagnostics is shared by hover/defs/symbols/completions: a query
// against a group with lex/parse/elaboration errors still runs, but the caller
// should see why a query came back empty.
func printDiagnostics(byPath map[string][]analysis.Diagnostic) {
	for _, p := range sortedPaths(byPath) {
		for _, d := range byPath[p] {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", p, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Message)
		}
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t18b219k/millet/internal/analysis"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <group-file> <path>",
	Short: "Show the document symbol tree for a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSymbols,
}

func runSymbols(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newAnalysis(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	byPath, err := a.GetMany(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("smlcheck: %w", err)
	}
	printDiagnostics(byPath)

	groups := a.DocumentSymbols(args[1])
	for _, g := range groups {
		printSymbol(g, 0)
	}
	return nil
}

func printSymbol(sym analysis.DocumentSymbol, depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), sym.Name)
	for _, child := range sym.Children {
		printSymbol(child, depth+1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var defsCmd = &cobra.Command{
	Use:   "defs <group-file> <path>",
	Short: "Show definition sites for a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runDefs,
}

func init() {
	addPositionFlags(defsCmd)
}

func runDefs(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newAnalysis(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	pos, err := positionFromFlags(cmd)
	if err != nil {
		return err
	}

	byPath, err := a.GetMany(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("smlcheck: %w", err)
	}
	printDiagnostics(byPath)

	locs := a.GetDefs(args[1], pos)
	if len(locs) == 0 {
		fmt.Println("no definitions found at this position")
		return nil
	}
	for _, loc := range locs {
		fmt.Printf("%s:%d:%d-%d:%d\n", loc.Path, loc.Range.Start.Line+1, loc.Range.Start.Character+1, loc.Range.End.Line+1, loc.Range.End.Character+1)
	}
	return nil
}

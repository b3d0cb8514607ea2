package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionsCmd = &cobra.Command{
	Use:   "completions <group-file> <path>",
	Short: "List completions in scope at a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompletions,
}

func init() {
	addPositionFlags(completionsCmd)
}

func runCompletions(cmd *cobra.Command, args []string) error {
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

	items := a.Completions(args[1], pos)
	for _, item := range items {
		fmt.Printf("%s : %s\n", item.Label, item.Detail)
	}
	return nil
}

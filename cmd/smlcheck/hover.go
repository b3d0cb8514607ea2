package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hoverCmd = &cobra.Command{
	Use:   "hover <group-file> <path>",
	Short: "Show the type at a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runHover,
}

func init() {
	addPositionFlags(hoverCmd)
	hoverCmd.Flags().Bool("markdown", false, "render the hover text as Markdown")
}

func runHover(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newAnalysis(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	pos, err := positionFromFlags(cmd)
	if err != nil {
		return err
	}
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return fmt.Errorf("failed to get markdown flag: %w", err)
	}

	byPath, err := a.GetMany(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("smlcheck: %w", err)
	}
	printDiagnostics(byPath)

	text, rng, ok := a.GetMd(args[1], pos, markdown)
	if !ok {
		fmt.Println("no type information at this position")
		return nil
	}
	fmt.Printf("%d:%d-%d:%d\n%s\n", rng.Start.Line+1, rng.Start.Character+1, rng.End.Line+1, rng.End.Character+1, text)
	return nil
}

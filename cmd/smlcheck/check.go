package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/t18b219k/millet/internal/diag"
	"github.com/t18b219k/millet/internal/diagfmt"
	"github.com/t18b219k/millet/internal/group"
)

var checkCmd = &cobra.Command{
	Use:   "check <group-file>",
	Short: "Run static analysis over a group file and report diagnostics",
	Long:  `check is the CLI-facing analogue of the Analysis API's get_many: it loads a root .mlb/.cm group file and prints every collected diagnostic.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("context", 1, "lines of source context shown around each diagnostic")
	checkCmd.Flags().Bool("notes", false, "include secondary notes in the rendered output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	tracer, traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer traceCleanup()

	res, err := group.Load(cmd.Context(), args[0], group.Options{FS: group.OSFileSystem{}, Tracer: tracer})
	if err != nil {
		return fmt.Errorf("smlcheck: %w", err)
	}

	combined := diag.NewBag()
	for _, bag := range res.Diagnostics {
		if maxDiagnostics > 0 && bag.Len() > maxDiagnostics {
			for _, d := range bag.Items()[:maxDiagnostics] {
				combined.Add(d)
			}
			continue
		}
		combined.Merge(bag)
	}

	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, combined, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     withNotes,
		}); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	default:
		diagfmt.Pretty(os.Stdout, combined, res.FileSet, diagfmt.PrettyOpts{
			Color:     colorMode == "on" || (colorMode == "auto" && !color.NoColor),
			Context:   int8(contextLines),
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: withNotes,
		})
	}

	if showTimings {
		fmt.Fprintln(os.Stderr, res.Timer.Summary())
	}

	if combined.Len() > 0 {
		// os.Exit skips deferred cleanup, so flush profiling/tracing here.
		traceCleanup()
		profCleanup()
		os.Exit(1)
	}
	return nil
}

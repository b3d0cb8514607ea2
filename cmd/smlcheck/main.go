// Command smlcheck is a thin shell around internal/analysis exposing
// check/hover/defs/symbols/completions over a root group file: a root
// command with persistent flags, a PersistentPreRunE-driven timeout, and
// rootCmd.Execute()/os.Exit(1) on failure, trimmed to this analyzer's flag
// surface (no TUI) since the CLI is meant as a convenience shell over
// internal/analysis, not a product of its own. CPU/heap/runtime-trace
// profiling (internal/prof) and phase tracing (internal/trace) are both
// wired as persistent flags, set up once per invocation in check.go and
// shared.go.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/t18b219k/millet/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "smlcheck",
	Short: "Static analyzer for Standard ML",
	Long:  `smlcheck checks Standard ML sources named by an .mlb or .cm group file and answers hover/definition/symbol/completion queries over them.`,
}

var commandTimeout time.Duration

func main() {
	rootCmd.Version = version.Version
	rootCmd.PersistentPreRunE = applyTimeout

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(hoverCmd)
	rootCmd.AddCommand(defsCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(completionsCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-file elaboration timings")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show per file (0 = unbounded)")
	rootCmd.PersistentFlags().Int("timeout", 30, "command timeout in seconds")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.PersistentFlags().String("trace", "", "phase trace output file (- for stderr, empty to disable)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson|chrome)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for trace events")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "trace heartbeat interval (0 to disable, e.g. 1s)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	secs, err := cmd.Root().PersistentFlags().GetInt("timeout")
	if err != nil {
		return fmt.Errorf("failed to read timeout flag: %w", err)
	}
	if secs <= 0 {
		return fmt.Errorf("timeout must be greater than zero")
	}
	commandTimeout = time.Duration(secs) * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	cmd.SetContext(ctx)
	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "smlcheck: command timed out after %s\n", commandTimeout)
			cancel()
		}
	}()
	return nil
}

// exitCodeFor maps a command error to this CLI's exit codes: 0 success,
// 1 diagnostics emitted, 2 input error. cobra's Execute only ever reaches
// this path on an actual Go error (flag parsing or group-load failure); a
// successful run that merely found diagnostics exits through runCheck's
// own os.Exit(1) call instead, since cobra treats that as a normal return.
func exitCodeFor(_ error) int { return 2 }

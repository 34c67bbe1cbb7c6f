package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZaimalOp/image-processing-performance-analysis/bench"
)

var quietFlag bool

var runCmd = &cobra.Command{
	Use:   "run SPECFILE",
	Short: "Run the benchmark described by a spec file",
	Args:  cobra.MinimumNArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().BoolVar(&quietFlag, "quiet", false, "Suppress per-configuration progress output")
}

func runCommand(cmd *cobra.Command, args []string) {
	filename := args[0]
	spec, err := bench.LoadSpecFromFile(filename)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load specfile")
	}
	exec, err := spec.BuildExecutor()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid benchmark configuration")
	}
	if !quietFlag {
		exec.Reporter = &bench.ColorReporter{Writer: os.Stderr}
	}

	fmt.Fprintln(os.Stderr, color.Cyan.Sprintf("Discovering images in %s...", spec.Bench.Input))
	items, err := bench.Discover(spec.Bench.Input, spec.Bench.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("Discovery failed")
	}
	fmt.Fprintf(os.Stderr, "Found %d images to process.\n", len(items))

	summaries, err := exec.Sweep(cmd.Context(), items, spec.Bench.Workers)
	if err != nil {
		var ae *bench.AggregationError
		switch {
		case errors.As(err, &ae):
			log.Fatal().Err(err).Msg("Aggregation failed")
		case errors.Is(err, bench.ErrInvalidWorkers):
			log.Fatal().Err(err).Msg("Invalid benchmark configuration")
		default:
			log.Fatal().Err(err).Msg("Benchmark failed")
		}
	}

	for _, s := range summaries {
		fmt.Fprint(os.Stderr, bench.FormatRunSummary(s))
	}
	fmt.Fprint(os.Stderr, bench.FormatSweepTable(summaries))

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, color.Green.Sprint("✓ Benchmark complete"))
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kwyip/qroute/pkg/pipeline"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	topology   string // target topology: preset spec or TOML file
	seed       uint64 // master seed for trial randomization
	trials     int    // randomized trials per layer
	attemptCap int    // swap budget per trial (0 = automatic)
	layout     string // initial layout as comma-separated physical qubits
	output     string // output file (single format) or base path
	refresh    bool   // recompute even if a cached result exists
	maxThreads int    // cap on routing worker goroutines
	forceMT    bool   // run trials in parallel under an outer dispatcher
}

// routeCommand creates the route command, the main entry point of the CLI.
//
// Default settings:
//   - seed: 42, trials: 20 (reproducible out of the box)
//   - format: json (qasm available via --format)
//   - output: <circuit>_routed.<format> next to the input
func (c *CLI) routeCommand() *cobra.Command {
	var formatsStr string
	opts := routeOpts{}

	cmd := &cobra.Command{
		Use:   "route [circuit]",
		Short: "Insert swaps so a circuit fits a coupling topology",
		Long: `Route a circuit onto a coupling topology by inserting swap gates.

The circuit is read from an OPENQASM 2.0 file (.qasm) or a JSON file
(.json). The topology is either a preset spec or a TOML file.

Examples:
  qroute route bell.qasm -t line:3
  qroute route adder.qasm -t grid:3x4 --seed 7 --trials 50 -f qasm
  qroute route deep.json -t device.toml --layout 2,0,1 -o routed.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := parseLayout(opts.layout)
			if err != nil {
				return err
			}
			threads, err := threadConfig(opts.maxThreads, opts.forceMT)
			if err != nil {
				return err
			}

			popts := pipeline.Options{
				CircuitPath: args[0],
				Topology:    opts.topology,
				Seed:        opts.seed,
				Trials:      opts.trials,
				AttemptCap:  opts.attemptCap,
				Layout:      layout,
				Refresh:     opts.refresh,
				Formats:     parseFormats(formatsStr),
				Threads:     threads,
			}
			return c.runRoute(cmd.Context(), popts, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.topology, "topology", "t", "", "target topology: preset spec (line:5, grid:3x4) or TOML file")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "master seed for trial randomization")
	cmd.Flags().IntVar(&opts.trials, "trials", pipeline.DefaultTrials, "randomized trials per layer")
	cmd.Flags().IntVar(&opts.attemptCap, "attempt-cap", 0, "swap budget per trial (0 = automatic)")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "initial layout as comma-separated physical qubits")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), qasm (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().IntVar(&opts.maxThreads, "threads", 0, "maximum routing worker goroutines (0 = from environment)")
	cmd.Flags().BoolVar(&opts.forceMT, "force-multithreading", false, "run trials in parallel even under an outer dispatcher")

	return cmd
}

// runRoute executes the load → route → emit pipeline and writes artifacts.
func (c *CLI) runRoute(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Routing circuit...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Routing failed")
		return err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Routed %d gates with %d swaps", res.Stats.Gates, res.Stats.SwapCount))

	printSuccess("Routing complete")
	if err := writeArtifacts(res, opts.Formats, opts.CircuitPath, output); err != nil {
		return err
	}
	printStats(res.Stats.Qubits, res.Stats.Gates, res.Stats.SwapCount, res.CacheInfo.RouteHit)

	return nil
}

// writeArtifacts writes each emitted format to disk and prints a file line
// per artifact.
func writeArtifacts(res *pipeline.Result, formats []string, input, output string) error {
	single := len(formats) == 1

	for _, format := range formats {
		data, ok := res.Artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(output, input, format, single)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath determines where an artifact lands. With no --output the
// file goes next to the input as <stem>_routed.<format>, which avoids
// clobbering the input when formats match. An explicit --output is used
// verbatim for a single format and as a base path for multiple.
func artifactPath(output, input, format string, single bool) string {
	if output == "" {
		stem := strings.TrimSuffix(input, filepath.Ext(input))
		return stem + "_routed." + format
	}
	if single {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

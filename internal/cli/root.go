// Package cli implements the qroute command-line interface.
//
// The main commands are:
//   - route: insert swap gates so a circuit fits a coupling topology
//   - topology: list, describe, render, and browse coupling topologies
//   - cache: manage the local routing result cache
//   - serve: run the routing HTTP API
//
// All commands support --verbose (-v) for debug-level logging and --quiet
// (-q) to suppress everything below warnings. The logger is attached to the
// command context and retrievable with loggerFromContext.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kwyip/qroute/pkg/buildinfo"
	"github.com/kwyip/qroute/pkg/cache"
	"github.com/kwyip/qroute/pkg/pipeline"
	"github.com/kwyip/qroute/pkg/route"
)

// appName is the application name used for directories and display.
const appName = "qroute"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	noCache     bool
	cacheDirOpt string
}

// New creates a new CLI instance writing logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:   "qroute",
		Short: "Qroute maps quantum circuits onto hardware couplings",
		Long: `Qroute inserts swap gates into quantum circuits so that every two-qubit
gate acts on physically adjacent qubits of a target coupling topology.
Routing is randomized but fully reproducible: the same circuit, topology,
and seed always produce the same routed circuit.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			if quiet {
				level = log.WarnLevel
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the local result cache")
	root.PersistentFlags().StringVar(&c.cacheDirOpt, "cache-dir", "", "cache directory (default: ~/.cache/qroute)")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	store, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		printWarning("No cache directory available, caching disabled")
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory, preferring the --cache-dir flag.
func (c *CLI) cacheDir() (string, error) {
	if c.cacheDirOpt != "" {
		return c.cacheDirOpt, nil
	}
	return defaultCacheDir()
}

// defaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/qroute/).
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

// parseLayout parses an initial layout given as comma-separated physical
// qubit indices ("2,0,1" places logical 0 on physical 2, and so on).
func parseLayout(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	layout := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("layout entry %q is not a qubit index", p)
		}
		layout[i] = n
	}
	return layout, nil
}

// threadConfig resolves the routing thread configuration from the
// environment and applies flag overrides on top.
func threadConfig(maxThreads int, forceMT bool) (route.ThreadConfig, error) {
	tc, err := route.ThreadConfigFromEnv(nil)
	if err != nil {
		return route.ThreadConfig{}, err
	}
	if maxThreads != 0 {
		tc.MaxThreads = maxThreads
	}
	if forceMT {
		tc.ForceMultithreading = true
	}
	if err := tc.Validate(); err != nil {
		return route.ThreadConfig{}, err
	}
	return tc, nil
}

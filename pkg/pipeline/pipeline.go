// Package pipeline provides the core routing pipeline for qroute.
//
// This package implements the complete load → route → emit pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the circuit and resolve the coupling topology
//  2. Route: Insert swaps so every gate acts on adjacent physical qubits
//  3. Emit: Serialize the routed result in various formats (JSON, QASM)
//
// Each stage can be run independently or as part of the complete pipeline.
// Routing is the expensive stage and the only one that is cached; its results
// are deterministic, so a cache entry is fully identified by the circuit, the
// topology, and the routing options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    CircuitPath: "bell.qasm",
//	    Topology:    "line:5",
//	    Formats:     []string{"qasm"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	qasm := result.Artifacts["qasm"]
//
// Run individual stages:
//
//	// Load only
//	c, err := pipeline.LoadCircuit(opts)
//
//	// Route with an already loaded circuit and graph
//	res, err := runner.RouteCircuit(ctx, c, topo, opts)
//
//	// Emit with an existing result
//	artifacts, err := pipeline.Emit(res, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kwyip/qroute/pkg/cache"
	"github.com/kwyip/qroute/pkg/circuit"
	"github.com/kwyip/qroute/pkg/coupling"
	"github.com/kwyip/qroute/pkg/errors"
	"github.com/kwyip/qroute/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultSeed is the default master seed. Any fixed value works; what
	// matters is that the same seed reproduces the same routing.
	DefaultSeed = uint64(42)

	// DefaultTrials is the default number of randomized trials per layer.
	DefaultTrials = route.DefaultTrials
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatQASM = "qasm"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatQASM: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the routing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	CircuitPath   string `json:"circuit_path,omitempty"`   // Path to a circuit file (.json or .qasm)
	Circuit       string `json:"circuit,omitempty"`        // Inline circuit text (API requests)
	CircuitFormat string `json:"circuit_format,omitempty"` // Format of inline circuit text
	Topology      string `json:"topology"`                 // Preset spec ("line:5") or TOML file path

	// Routing options
	Seed       uint64 `json:"seed,omitempty"`
	Trials     int    `json:"trials,omitempty"`
	AttemptCap int    `json:"attempt_cap,omitempty"`
	Layout     []int  `json:"layout,omitempty"` // Initial logical-to-physical placement
	Refresh    bool   `json:"refresh,omitempty"`

	// Emit options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger        `json:"-"`
	Threads route.ThreadConfig `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Circuit is the loaded input circuit.
	Circuit *circuit.Circuit

	// Topology is the resolved topology description.
	Topology coupling.Topology

	// Graph is the coupling graph built from the topology.
	Graph *coupling.Graph

	// Routed is the routing result, including the rewritten circuit.
	Routed *route.Result

	// CircuitHash and TopologyHash are content hashes used for cache keys
	// and API responses.
	CircuitHash  string
	TopologyHash string

	// Artifacts contains serialized outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Qubits    int
	Gates     int
	Depth     int
	SwapCount int
	LoadTime  time.Duration
	RouteTime time.Duration
	EmitTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RouteHit bool // Whether the routing result came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, qasm)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRouteDefaults()
	if err := o.ValidateForEmit(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.CircuitPath == "" && o.Circuit == "" {
		return errors.New(errors.ErrCodeInvalidInput, "circuit or circuit_path is required")
	}
	if o.Circuit != "" && o.CircuitFormat == "" {
		return errors.New(errors.ErrCodeInvalidInput, "circuit_format is required with inline circuit text")
	}
	if o.Topology == "" {
		return errors.New(errors.ErrCodeInvalidInput, "topology is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRouteDefaults sets default values for the routing stage.
func (o *Options) SetRouteDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Trials == 0 {
		o.Trials = DefaultTrials
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetEmitDefaults sets default values for the emit stage.
func (o *Options) SetEmitDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
}

// ValidateForEmit validates and sets defaults for the emit stage.
func (o *Options) ValidateForEmit() error {
	o.SetEmitDefaults()
	return ValidateFormats(o.Formats)
}

// RouteOptions builds the routing options for this pipeline configuration.
func (o *Options) RouteOptions() route.Options {
	return route.Options{
		Seed:          o.Seed,
		Trials:        o.Trials,
		AttemptCap:    o.AttemptCap,
		Threads:       o.Threads,
		InitialLayout: o.Layout,
		Logger:        o.Logger,
	}
}

// RouteKeyOpts returns cache key options for the routing stage.
func (o *Options) RouteKeyOpts() cache.RouteKeyOpts {
	return cache.RouteKeyOpts{
		Seed:          o.Seed,
		Trials:        o.Trials,
		AttemptCap:    o.AttemptCap,
		InitialLayout: o.Layout,
	}
}

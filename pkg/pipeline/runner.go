package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kwyip/qroute/pkg/cache"
	"github.com/kwyip/qroute/pkg/circuit"
	"github.com/kwyip/qroute/pkg/coupling"
	"github.com/kwyip/qroute/pkg/observability"
	"github.com/kwyip/qroute/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → route → emit pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	c, err := LoadCircuit(opts)
	if err != nil {
		return nil, err
	}
	topo, g, err := LoadTopology(opts)
	if err != nil {
		return nil, err
	}
	result.Circuit = c
	result.Topology = topo
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Qubits = c.Qubits
	result.Stats.Gates = len(c.Gates)
	result.Stats.Depth = c.Depth()

	// Content hashes for cache keys and API responses
	if h, err := cache.HashJSON(c); err == nil {
		result.CircuitHash = h
	}
	if h, err := cache.HashJSON(topo); err == nil {
		result.TopologyHash = h
	}

	r.Logger.Info("loaded inputs",
		"qubits", c.Qubits,
		"gates", len(c.Gates),
		"topology", topo.Name,
		"duration", result.Stats.LoadTime)

	// Stage 2: Route
	routeStart := time.Now()
	res, routeHit, err := r.RouteWithCacheInfo(ctx, c, topo, g, opts)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	result.Routed = res
	result.Stats.RouteTime = time.Since(routeStart)
	result.Stats.SwapCount = res.SwapCount
	result.CacheInfo.RouteHit = routeHit

	r.Logger.Info("routed circuit",
		"swaps", res.SwapCount,
		"depth", len(res.Layers),
		"cached", routeHit,
		"duration", result.Stats.RouteTime)

	// Stage 3: Emit
	emitStart := time.Now()
	artifacts, err := Emit(res, opts)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.EmitTime = time.Since(emitStart)

	r.Logger.Info("emitted outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// RouteWithCacheInfo routes a circuit with caching and returns cache hit info.
//
// Routing is deterministic, so the circuit, the topology, and the options
// that influence the outcome fully identify the result. Cached entries are
// therefore valid until they expire; Refresh forces a recompute.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, c *circuit.Circuit, topo coupling.Topology, g *coupling.Graph, opts Options) (*route.Result, bool, error) {
	opts.SetRouteDefaults()
	r.applyLogger(&opts)

	circuitHash, err := cache.HashJSON(c)
	if err != nil {
		return nil, false, fmt.Errorf("hash circuit: %w", err)
	}
	topologyHash, err := cache.HashJSON(topo)
	if err != nil {
		return nil, false, fmt.Errorf("hash topology: %w", err)
	}
	cacheKey := r.Keyer.RouteKey(circuitHash, topologyHash, opts.RouteKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached route.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				return &cached, true, nil
			}
			// Corrupt entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	// Route
	res, err := route.Route(ctx, c, g, opts.RouteOptions())
	if err != nil {
		return nil, false, err
	}

	// Cache the result. Set failures are retried for transient backend
	// errors and otherwise ignored; caching is best effort.
	if data, err := json.Marshal(res); err == nil {
		setErr := cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, cacheKey, data, cache.TTLRoute)
		})
		if setErr == nil {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}

	return res, false, nil
}

// RouteCircuit is a convenience wrapper that calls RouteWithCacheInfo and
// discards the cache hit info.
func (r *Runner) RouteCircuit(ctx context.Context, c *circuit.Circuit, topo coupling.Topology, opts Options) (*route.Result, error) {
	g, err := topo.Graph()
	if err != nil {
		return nil, err
	}
	res, _, err := r.RouteWithCacheInfo(ctx, c, topo, g, opts)
	return res, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

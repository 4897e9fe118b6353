// Package pkg provides the core libraries for Qroute circuit routing.
//
// # Overview
//
// Qroute maps logical quantum circuits onto physical qubit couplings by
// inserting swap gates, so that every two-qubit gate acts on a directly
// coupled pair. The pkg directory is organized into four main areas:
//
//  1. Domain logic (circuits, coupling graphs, the routing pass)
//  2. Infrastructure (caching, job stores, observability hooks)
//  3. Serialization (QASM and JSON import/export)
//  4. Orchestration (the load → route → emit pipeline)
//
// # Architecture
//
// The typical data flow through Qroute:
//
//	OPENQASM 2.0 / JSON circuit
//	         ↓
//	    [circuit] package (parse + dependency layers)
//	         ↓
//	    [route] package (randomized swap insertion per layer)
//	         ↓
//	    [io] package (serialize the routed result)
//	         ↓
//	    JSON/QASM output
//
// # Quick Start
//
// Route a circuit onto a grid coupling:
//
//	import (
//	    "context"
//	    "github.com/kwyip/qroute/pkg/coupling"
//	    qio "github.com/kwyip/qroute/pkg/io"
//	    "github.com/kwyip/qroute/pkg/route"
//	)
//
//	// 1. Load the circuit
//	c, _ := qio.ImportCircuit("bell.qasm")
//
//	// 2. Build the coupling graph
//	topo, _ := coupling.FromSpec("grid:3x4")
//	g, _ := topo.Graph()
//
//	// 3. Route with a fixed seed
//	res, _ := route.Route(context.Background(), c, g, route.Options{
//	    Seed:   42,
//	    Trials: 20,
//	})
//	fmt.Println(res.SwapCount)
//
// # Main Packages
//
// ## Domain Logic
//
// [circuit] - Quantum circuit representation: gates on logical qubits,
// OPENQASM 2.0 parsing and emission, and partitioning into dependency
// layers so independent gates route together.
//
// [coupling] - Physical qubit topologies: preset families (line, ring,
// grid, star, full), TOML device files, the immutable coupling graph with
// all-pairs distances, and Graphviz DOT/SVG rendering.
//
// [route] - The routing pass itself. Each dependency layer runs a batch of
// randomized trials; the best trial wins deterministically, so equal seeds
// give equal results regardless of worker count.
//
// ## Infrastructure
//
// [cache] - Result caching keyed by content hashes. FileCache for the CLI
// (sharded JSON files with TTL), RedisCache for multi-replica API
// deployments, NullCache to disable caching.
//
// [jobs] - Asynchronous job stores for the API: in-memory for a single
// process, MongoDB-backed for persistence across restarts.
//
// [observability] - Hook interfaces for routing, cache, and HTTP events
// with no-op defaults, so instrumentation backends stay out of the core
// libraries.
//
// [errors] - Coded errors shared by the CLI and API. Every failure mode
// carries a stable code (CONFIG_INVALID, UNROUTABLE, ...) that maps to an
// HTTP status.
//
// ## Serialization
//
// [io] - Circuit import/export with format detection, plus routing result
// serialization for artifacts and the cache.
//
// ## Orchestration
//
// [pipeline] - The load → route → emit pipeline shared by the CLI and the
// API, including cache lookups and per-stage timing.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Parse QASM text directly:
//
//	c, _ := circuit.ParseQASM(strings.NewReader(src))
//	layers := c.Layers()
//
// Resolve a topology from a spec or file:
//
//	topo, _ := coupling.Resolve("device.toml")
//
// Run the full pipeline with caching:
//
//	store, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(store, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    CircuitPath: "bell.qasm",
//	    Topology:    "line:3",
//	    Formats:     []string{"json", "qasm"},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/route/...      # Specific package
//	go test -run Example         # Examples only
//
// [circuit]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/circuit
// [coupling]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/coupling
// [route]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/route
// [cache]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/cache
// [jobs]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/jobs
// [observability]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/observability
// [errors]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/errors
// [io]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/pipeline
// [buildinfo]: https://pkg.go.dev/github.com/kwyip/qroute/pkg/buildinfo
package pkg

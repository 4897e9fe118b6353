// Package coupling models hardware connectivity graphs (coupling maps) for
// quantum devices.
//
// # Overview
//
// A [Graph] is an immutable undirected graph over physical qubit indices
// 0..P-1. It answers the two queries routing needs: whether two physical
// qubits may interact directly ([Graph.Adjacent]) and how far apart two
// qubits are ([Graph.Distance], shortest path length in hops). All-pairs
// distances are precomputed with breadth-first search at construction, so
// both queries are O(1) during the search.
//
// A disconnected graph is valid: distance between separate components is
// reported as -1 and it is the router's job to reject circuits that require
// unreachable pairs before starting any work.
//
// # Topologies
//
// A [Topology] is the serializable description of a coupling map: a name, a
// qubit count, and an edge list. Topologies load from TOML files, come from
// the built-in preset families (line, ring, grid, star, full), and render to
// Graphviz DOT or SVG for inspection.
//
// # Concurrency
//
// Graph is immutable after [New] returns and safe to share across goroutines
// without locking. The routing engine relies on this: one Graph is read
// concurrently by every trial worker.
package coupling

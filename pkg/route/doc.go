// Package route implements the qubit-routing engine: a randomized
// multi-trial search that inserts swap operations so every multi-qubit
// operation in a circuit acts on coupled physical qubits.
//
// # Overview
//
// The engine processes a circuit one dependency layer at a time. For each
// layer it runs a batch of independent trials; a trial greedily applies
// randomized swap candidates, biased toward reducing the summed coupling
// distance of the layer's still-unsatisfied qubit pairs, until every pair is
// adjacent or the per-trial attempt cap runs out. All trial results are
// collected and reduced once: minimum cost wins, ties go to the smallest
// trial index. The winning swap sequence is replayed into the output circuit
// and its ending layout becomes the next layer's starting layout.
//
// [Route] is the entry point. [Options] carries the master seed, the trial
// budget, and the worker-pool configuration; [Result] carries the routed
// circuit, per-layer swap records, and the final logical-to-physical layout.
//
// # Determinism
//
// Identical inputs produce byte-identical results regardless of worker
// count. Two mechanisms guarantee this: every trial draws randomness only
// from its own stream, derived purely from (master seed, layer index, trial
// index) by [DeriveRNG]; and the reduction is order-independent, so it does
// not matter which worker finishes first. Thread count is a pure performance
// knob.
//
// # Concurrency
//
// Trials within one layer run on a fixed worker pool that is joined before
// the next layer starts; layers are strictly sequential. Workers share only
// the read-only coupling graph and layer schedule, and each writes its
// result into its own slot, so the search itself needs no locks. When the
// caller reports that an outer dispatcher is already routing circuits in
// parallel ([ThreadConfig.OuterParallel]), the pool collapses to one worker
// unless multithreading is forced, preventing P processes from spawning P×C
// threads.
//
// # Errors
//
// Configuration problems (bad thread config, a required pair with no
// connecting path) surface before any trial runs, with code CONFIG_INVALID.
// A layer whose every trial exhausts its attempt cap fails the invocation
// with code UNROUTABLE; a single failed trial is merely a high-cost result
// that loses the reduction.
package route

// Package circuit provides the quantum circuit model consumed by the routing
// engine, including dependency layering and OPENQASM 2.0 text I/O.
//
// # Overview
//
// A [Circuit] is an ordered list of [Gate] operations over a fixed number of
// logical qubits. Gates are opaque to the router except for their operand
// lists: a gate touching two or more qubits constrains routing, because the
// hardware only allows interactions between coupled physical qubits.
//
// The model is deliberately minimal. Gate names are free-form strings (the
// QASM codec understands the qelib1.inc set), parameters are raw float64
// values, and no gate semantics are interpreted beyond operand arity.
//
// # Layering
//
// [Circuit.Layers] partitions the gate list into dependency layers: gate g is
// placed in the first layer after the last prior gate sharing a qubit with g.
// Gates within one layer touch disjoint qubit sets, so they can be considered
// together when routing. Layer order is the circuit's dependency order and
// must be preserved by any rewrite.
//
// Each layer also carries the set of logical qubit pairs that must be adjacent
// on hardware for that layer's gates to execute: one pair per two-qubit gate,
// and consecutive-operand pairs for wider gates. Directives such as "barrier"
// order the circuit but demand no adjacency.
//
// # Text Formats
//
// [EmitQASM] and [ParseQASM] implement a single-register subset of OPENQASM
// 2.0 (the qelib1.inc gate set, one qreg, measure and barrier statements).
// Gate/Circuit structs also carry JSON tags for the API and cache formats.
//
// # Concurrency
//
// Circuit instances are not safe for concurrent mutation. The routing engine
// treats circuits as read-only inputs and never mutates them; concurrent
// readers are safe.
package circuit

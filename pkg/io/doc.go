// Package io provides circuit and result serialization in JSON and OpenQASM.
//
// # Overview
//
// This package moves circuits in and out of the router. The JSON format
// mirrors the in-memory [circuit.Circuit] structure and is designed for:
//
//   - Integration with external tools that produce or consume circuits
//   - Caching of routing results for instant re-emission
//   - Round-trip preservation: import, route, export, and re-import identically
//
// OpenQASM 2.0 support comes from the codec in [circuit], dispatched here by
// file extension.
//
// # JSON Format
//
// A circuit is an object with a qubit count and a gate list:
//
//	{
//	  "qubits": 3,
//	  "gates": [
//	    {"name": "h", "qubits": [0]},
//	    {"name": "cx", "qubits": [0, 2]},
//	    {"name": "rz", "qubits": [1], "params": [0.5]}
//	  ]
//	}
//
// Gate names are free-form strings; the router only inspects operand lists.
// Params holds rotation angles in declaration order and may be omitted.
//
// # Import
//
// Use [ImportCircuit] to read a circuit from a file path with format
// detection by extension, or [ReadJSON] to read JSON from any io.Reader:
//
//	c, err := io.ImportCircuit("bell.qasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Imports validate the circuit structure (qubit count, operand ranges,
// duplicate operands). Errors are wrapped with context about which gate
// caused the problem.
//
// # Export
//
// Use [ExportCircuit] to write a circuit to a file with format detection,
// or [WriteJSON] / [WriteResult] to write to any io.Writer:
//
//	err := io.ExportCircuit(res.Routed, "routed.qasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [WriteResult] emits the complete routing result, including the final
// layout and the per-layer swap records, for callers that need more than
// the rewritten circuit.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same circuit, but not with concurrent modifications. The
// import functions create independent circuit instances that can be used
// and modified freely after import.
package io

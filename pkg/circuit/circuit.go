package circuit

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoQubits is returned by [Circuit.Validate] when the circuit declares
	// fewer than one qubit. Every circuit needs at least one wire.
	ErrNoQubits = errors.New("circuit must have at least one qubit")

	// ErrNoOperands is returned by [Circuit.Validate] when a gate has an empty
	// operand list. Every operation must act on at least one qubit.
	ErrNoOperands = errors.New("gate must have at least one operand")

	// ErrOperandOutOfRange is returned by [Circuit.Validate] when a gate
	// references a qubit index outside [0, Qubits).
	ErrOperandOutOfRange = errors.New("gate operand out of range")

	// ErrDuplicateOperand is returned by [Circuit.Validate] when a gate lists
	// the same qubit twice. Multi-qubit operations require distinct operands.
	ErrDuplicateOperand = errors.New("duplicate gate operand")
)

// Common gate names understood by the QASM codec. Gate names are not
// restricted to this set; the router only inspects operand lists.
const (
	GateH       = "h"
	GateX       = "x"
	GateY       = "y"
	GateZ       = "z"
	GateS       = "s"
	GateSdg     = "sdg"
	GateT       = "t"
	GateTdg     = "tdg"
	GateRX      = "rx"
	GateRY      = "ry"
	GateRZ      = "rz"
	GateCX      = "cx"
	GateCZ      = "cz"
	GateSwap    = "swap"
	GateCCX     = "ccx"
	GateMeasure = "measure"
	GateBarrier = "barrier"
)

// Gate is a single operation on one or more qubits.
//
// Qubits are logical indices before routing and physical indices after; the
// struct itself does not distinguish the two. Params holds rotation angles or
// other numeric arguments in declaration order.
type Gate struct {
	Name   string    `json:"name"`
	Qubits []int     `json:"qubits"`
	Params []float64 `json:"params,omitempty"`
}

// Arity returns the number of qubit operands.
func (g Gate) Arity() int { return len(g.Qubits) }

// IsDirective reports whether the gate is a scheduling directive (such as
// "barrier") rather than a physical interaction. Directives order the circuit
// but never require operand adjacency on hardware.
func (g Gate) IsDirective() bool { return g.Name == GateBarrier }

// String returns a compact human-readable form like "cx[0 2]".
func (g Gate) String() string {
	return fmt.Sprintf("%s%v", g.Name, g.Qubits)
}

// Circuit is an ordered list of gates over a fixed number of qubits.
//
// The zero value is not usable - use [New] to create a circuit with a valid
// qubit count.
type Circuit struct {
	Qubits int    `json:"qubits"`
	Gates  []Gate `json:"gates"`
}

// New creates an empty circuit with the given number of qubits.
func New(qubits int) *Circuit {
	return &Circuit{Qubits: qubits}
}

// Add appends a gate to the circuit.
// No validation happens here - call [Circuit.Validate] after building.
func (c *Circuit) Add(g Gate) {
	c.Gates = append(c.Gates, g)
}

// Append appends a gate by name and operands. It is a convenience wrapper
// around [Circuit.Add] for parameterless gates.
func (c *Circuit) Append(name string, qubits ...int) {
	c.Add(Gate{Name: name, Qubits: qubits})
}

// Depth returns the number of dependency layers in the circuit.
// An empty circuit has depth 0.
func (c *Circuit) Depth() int { return len(c.Layers()) }

// MultiQubitCount returns the number of gates acting on two or more qubits,
// excluding directives. These are the gates that constrain routing.
func (c *Circuit) MultiQubitCount() int {
	count := 0
	for _, g := range c.Gates {
		if g.Arity() >= 2 && !g.IsDirective() {
			count++
		}
	}
	return count
}

// Validate checks structural integrity and returns nil if valid.
// It verifies that the qubit count is positive, every gate has at least one
// operand, all operands are in range, and no gate lists a qubit twice.
//
// Errors are wrapped with the offending gate's position and text, so callers
// can match them with [errors.Is] and still report a useful message.
func (c *Circuit) Validate() error {
	if c.Qubits < 1 {
		return ErrNoQubits
	}
	for i, g := range c.Gates {
		if len(g.Qubits) == 0 {
			return fmt.Errorf("gate %d (%s): %w", i, g.Name, ErrNoOperands)
		}
		seen := make(map[int]bool, len(g.Qubits))
		for _, q := range g.Qubits {
			if q < 0 || q >= c.Qubits {
				return fmt.Errorf("gate %d (%s): qubit %d: %w", i, g.Name, q, ErrOperandOutOfRange)
			}
			if seen[q] {
				return fmt.Errorf("gate %d (%s): qubit %d: %w", i, g.Name, q, ErrDuplicateOperand)
			}
			seen[q] = true
		}
	}
	return nil
}

// Clone returns a deep copy of the circuit.
// Gate operand and parameter slices are copied, so mutations of the clone
// never affect the original.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{
		Qubits: c.Qubits,
		Gates:  make([]Gate, len(c.Gates)),
	}
	for i, g := range c.Gates {
		out.Gates[i] = Gate{
			Name:   g.Name,
			Qubits: slices.Clone(g.Qubits),
			Params: slices.Clone(g.Params),
		}
	}
	return out
}

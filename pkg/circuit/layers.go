package circuit

// Layer is a dependency-independent batch of gates from one circuit.
//
// Gates holds indices into the circuit's gate list, in original order. Pairs
// holds the logical qubit pairs that must be adjacent on hardware for this
// layer to execute, normalized so the smaller index comes first and
// deduplicated in first-appearance order.
type Layer struct {
	Gates []int
	Pairs [][2]int
}

// Layers partitions the circuit into dependency layers.
//
// # Algorithm
//
// A single pass tracks the next free layer per qubit. Each gate lands in the
// maximum of its operands' next-free layers, then advances all its operands
// past that layer. Gates within one layer therefore touch disjoint qubit
// sets, and emitting layers in index order preserves every data dependency.
//
// # Adjacency Requirements
//
// Two-qubit gates contribute their operand pair. Gates on three or more
// qubits are decomposed to consecutive-operand pairs, so a ccx on (a, b, c)
// requires a-b and b-c adjacency. Directives (barrier) and single-qubit gates
// contribute no pairs.
//
// # Performance
//
// O(G·A) time for G gates of maximum arity A, O(Q) extra space for Q qubits.
// The result does not alias circuit storage; the circuit is not mutated.
func (c *Circuit) Layers() []Layer {
	if len(c.Gates) == 0 {
		return nil
	}

	next := make([]int, c.Qubits) // next free layer per qubit
	var layers []Layer

	for i, g := range c.Gates {
		depth := 0
		for _, q := range g.Qubits {
			if q >= 0 && q < c.Qubits && next[q] > depth {
				depth = next[q]
			}
		}
		for len(layers) <= depth {
			layers = append(layers, Layer{})
		}
		layers[depth].Gates = append(layers[depth].Gates, i)
		for _, q := range g.Qubits {
			if q >= 0 && q < c.Qubits {
				next[q] = depth + 1
			}
		}
	}

	for i := range layers {
		layers[i].Pairs = requiredPairs(c, layers[i].Gates)
	}
	return layers
}

// requiredPairs collects the normalized adjacency pairs for a set of gates.
func requiredPairs(c *Circuit, gates []int) [][2]int {
	var pairs [][2]int
	seen := make(map[[2]int]bool)
	for _, gi := range gates {
		g := c.Gates[gi]
		if g.IsDirective() || g.Arity() < 2 {
			continue
		}
		for i := 0; i+1 < len(g.Qubits); i++ {
			a, b := g.Qubits[i], g.Qubits[i+1]
			if a > b {
				a, b = b, a
			}
			p := [2]int{a, b}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

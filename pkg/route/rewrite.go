package route

import (
	"slices"

	"github.com/kwyip/qroute/pkg/circuit"
)

// rewriter builds the routed circuit layer by layer. The output operates on
// physical qubits: one wire per qubit of the coupling graph, with explicit
// swap gates inserted ahead of each layer and every original gate relabeled
// through the layout that holds after those swaps.
type rewriter struct {
	source *circuit.Circuit
	out    *circuit.Circuit
}

func newRewriter(source *circuit.Circuit, physicalQubits int) *rewriter {
	return &rewriter{
		source: source,
		out:    circuit.New(physicalQubits),
	}
}

// emitLayer appends the winning swap sequence for a layer followed by the
// layer's gates in their original order. Operands are mapped logical to
// physical through the layout that results from applying the swaps, which
// is exactly the layout the winning trial ended with.
func (r *rewriter) emitLayer(layer circuit.Layer, swaps [][2]int, after *Layout) {
	for _, s := range swaps {
		r.out.Add(circuit.Gate{Name: circuit.GateSwap, Qubits: []int{s[0], s[1]}})
	}
	for _, gi := range layer.Gates {
		g := r.source.Gates[gi]
		mapped := make([]int, len(g.Qubits))
		for i, q := range g.Qubits {
			mapped[i] = after.Physical(q)
		}
		r.out.Add(circuit.Gate{Name: g.Name, Qubits: mapped, Params: slices.Clone(g.Params)})
	}
}

// circuit returns the accumulated routed circuit.
func (r *rewriter) circuit() *circuit.Circuit {
	return r.out
}

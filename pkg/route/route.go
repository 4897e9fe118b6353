package route

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kwyip/qroute/pkg/circuit"
	"github.com/kwyip/qroute/pkg/coupling"
	"github.com/kwyip/qroute/pkg/errors"
	"github.com/kwyip/qroute/pkg/observability"
)

// DefaultTrials is the trial count used by the CLI and server when the
// caller does not ask for a specific budget.
const DefaultTrials = 20

// Options configures a routing run. Trials is required; everything else has
// a usable zero value.
type Options struct {
	// Seed is the master seed. Runs with equal seed, trials, and inputs
	// produce identical results.
	Seed uint64

	// Trials is the number of randomized attempts per layer. Must be >= 1.
	Trials int

	// AttemptCap bounds the swaps a single trial may insert before it is
	// abandoned. Zero or negative selects a default scaled to the size of
	// the coupling graph.
	AttemptCap int

	// Threads controls the worker pool. The zero value uses one worker per
	// CPU unless the outer-parallelism guard applies.
	Threads ThreadConfig

	// InitialLayout maps logical qubits to physical qubits at circuit
	// start. It may cover just the circuit's qubits or the whole graph;
	// unassigned physical qubits are filled in ascending order. Nil means
	// the identity layout.
	InitialLayout []int

	// Logger receives per-layer debug output. Nil discards it.
	Logger *log.Logger
}

// LayerRecord describes how one layer was routed.
type LayerRecord struct {
	Layer int      `json:"layer"`
	Trial int      `json:"trial"`
	Swaps [][2]int `json:"swaps,omitempty"`
}

// Result is the outcome of a routing run. Every field is a pure function of
// the inputs and the seed; worker count and timing never influence it.
type Result struct {
	// Routed is the rewritten circuit. It has one wire per physical qubit
	// and every multi-qubit gate acts on a coupled pair.
	Routed *circuit.Circuit `json:"routed"`

	// FinalLayout maps each logical qubit to the physical qubit holding it
	// after the last layer.
	FinalLayout []int `json:"final_layout"`

	// Layers records the winning trial and swap sequence per layer.
	Layers []LayerRecord `json:"layers"`

	// SwapCount is the total number of inserted swap gates.
	SwapCount int `json:"swap_count"`
}

// Route maps circ onto the coupling graph g, inserting swap gates so that
// every multi-qubit gate acts on adjacent physical qubits. All configuration
// and input problems surface before the first trial runs with code
// CONFIG_INVALID (or an input code for malformed circuits); an UNROUTABLE
// error means some layer exhausted its whole trial budget. The context is
// checked between layers, not inside trials.
func Route(ctx context.Context, circ *circuit.Circuit, g *coupling.Graph, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if circ == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "circuit is required")
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "coupling graph is required")
	}
	if err := errors.ValidateTrialCount(opts.Trials); err != nil {
		return nil, err
	}
	if err := opts.Threads.Validate(); err != nil {
		return nil, err
	}
	if err := circ.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCircuit, err, "invalid circuit")
	}
	if circ.Qubits > g.Qubits() {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"circuit uses %d qubits but coupling graph has %d", circ.Qubits, g.Qubits())
	}

	layout, err := startingLayout(circ.Qubits, g.Qubits(), opts.InitialLayout)
	if err != nil {
		return nil, err
	}

	layers := circ.Layers()

	// Swaps move qubits along coupling edges, so a qubit can never leave
	// its connected component. Reachability under the initial layout
	// therefore decides reachability for every layer.
	for li, layer := range layers {
		for _, p := range layer.Pairs {
			if g.Distance(layout.Physical(p[0]), layout.Physical(p[1])) < 0 {
				return nil, errors.New(errors.ErrCodeInvalidConfig,
					"qubits %d and %d interact in layer %d but lie in disconnected components", p[0], p[1], li)
			}
		}
	}

	workers := opts.Threads.Workers()
	attemptCap := opts.AttemptCap
	if attemptCap <= 0 {
		attemptCap = defaultAttemptCap(g.Qubits())
	}
	d := &dispatcher{
		graph:      g,
		trials:     opts.Trials,
		attemptCap: attemptCap,
		workers:    workers,
		master:     opts.Seed,
	}

	started := time.Now()
	obs := observability.Routing()
	obs.OnRouteStart(ctx, circ.Qubits, len(layers), opts.Trials)
	logger.Debug("routing circuit",
		"qubits", circ.Qubits, "physical", g.Qubits(), "layers", len(layers),
		"trials", opts.Trials, "workers", workers, "seed", opts.Seed)

	rw := newRewriter(circ, g.Qubits())
	current := layout
	records := make([]LayerRecord, 0, len(layers))
	swapTotal := 0

	for li, layer := range layers {
		if err := ctx.Err(); err != nil {
			obs.OnRouteComplete(ctx, swapTotal, time.Since(started), err)
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "routing canceled at layer %d", li)
		}

		layerStart := time.Now()
		var best *trialResult
		if len(layer.Pairs) == 0 {
			// Single-qubit layers need no movement; relabel and move on.
			best = &trialResult{satisfied: true, layout: current}
		} else {
			best = d.runLayer(ctx, li, layer.Pairs, current)
		}
		if !best.satisfied {
			uerr := &errors.UnroutableError{Layer: li, Trials: opts.Trials}
			obs.OnRouteComplete(ctx, swapTotal, time.Since(started), uerr)
			return nil, errors.Wrap(errors.ErrCodeUnroutable, uerr,
				"layer %d exhausted all %d trials", li, opts.Trials)
		}

		rw.emitLayer(layer, best.swaps, best.layout)
		current = best.layout
		records = append(records, LayerRecord{Layer: li, Trial: best.index, Swaps: best.swaps})
		swapTotal += len(best.swaps)
		logger.Debug("layer routed", "layer", li, "trial", best.index, "swaps", len(best.swaps))
		obs.OnLayerComplete(ctx, li, best.index, len(best.swaps), time.Since(layerStart))
	}

	res := &Result{
		Routed:      rw.circuit(),
		FinalLayout: current.ToPhysical(),
		Layers:      records,
		SwapCount:   swapTotal,
	}
	logger.Debug("routing complete", "swaps", swapTotal, "depth", res.Routed.Depth())
	obs.OnRouteComplete(ctx, swapTotal, time.Since(started), nil)
	return res, nil
}

// startingLayout builds the full logical-to-physical permutation the run
// begins from. A partial assignment covering only the circuit's qubits is
// extended with the unused physical qubits in ascending order so the result
// is always a bijection over the whole graph.
func startingLayout(logical, physical int, initial []int) (*Layout, error) {
	if initial == nil {
		return NewTrivialLayout(physical), nil
	}
	if len(initial) != logical && len(initial) != physical {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"initial layout has %d entries, want %d or %d", len(initial), logical, physical)
	}

	used := make([]bool, physical)
	full := make([]int, 0, physical)
	for q, p := range initial {
		if p < 0 || p >= physical {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"initial layout maps qubit %d to %d, outside [0,%d)", q, p, physical)
		}
		if used[p] {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"initial layout maps two qubits to physical qubit %d", p)
		}
		used[p] = true
		full = append(full, p)
	}
	for p := 0; p < physical && len(full) < physical; p++ {
		if !used[p] {
			used[p] = true
			full = append(full, p)
		}
	}

	l, err := NewLayout(full)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid initial layout")
	}
	return l, nil
}

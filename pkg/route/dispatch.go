package route

import (
	"context"
	"sync"

	"github.com/kwyip/qroute/pkg/coupling"
	"github.com/kwyip/qroute/pkg/observability"
)

// dispatcher fans the independent trials of one layer out over a fixed pool
// of workers. Every trial derives its generator from the master seed and its
// own (layer, trial) coordinates, writes into its own slot of the results
// slice, and never observes another trial, so the outcome is identical for
// any worker count including one.
type dispatcher struct {
	graph      *coupling.Graph
	trials     int
	attemptCap int
	workers    int
	master     uint64
}

// runLayer executes all trials for one layer starting from the given layout
// and reduces them to a single winner. The reduction scans results in trial
// order and replaces the incumbent only on a strict improvement, so ties
// go to the smallest trial index. The returned trial may be unsatisfied;
// the caller decides whether that is fatal.
func (d *dispatcher) runLayer(ctx context.Context, layer int, pairs [][2]int, start *Layout) *trialResult {
	results := make([]*trialResult, d.trials)
	obs := observability.Routing()

	if d.workers <= 1 {
		for i := range results {
			rng := DeriveRNG(d.master, layer, i)
			results[i] = runTrial(d.graph, pairs, start, rng, d.attemptCap, i)
			obs.OnTrialComplete(ctx, layer, i, len(results[i].swaps), results[i].satisfied)
		}
	} else {
		jobs := make(chan int, d.trials)
		var wg sync.WaitGroup
		for w := 0; w < d.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					rng := DeriveRNG(d.master, layer, i)
					results[i] = runTrial(d.graph, pairs, start, rng, d.attemptCap, i)
					obs.OnTrialComplete(ctx, layer, i, len(results[i].swaps), results[i].satisfied)
				}
			}()
		}
		for i := 0; i < d.trials; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	best := results[0]
	for _, t := range results[1:] {
		if t.better(best) {
			best = t
		}
	}
	return best
}

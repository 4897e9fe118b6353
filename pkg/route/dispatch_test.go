package route

import (
	"context"
	"reflect"
	"testing"
)

func TestDispatcherRunLayer_SameResultForAnyWorkerCount(t *testing.T) {
	g := lineGraph(t, 5)
	pairs := [][2]int{{0, 4}, {1, 3}}
	start := NewTrivialLayout(5)

	base := dispatcher{graph: g, trials: 16, attemptCap: 16, master: 42}

	sequential := base
	sequential.workers = 1
	pooled := base
	pooled.workers = 4

	a := sequential.runLayer(context.Background(), 0, pairs, start)
	b := pooled.runLayer(context.Background(), 0, pairs, start)

	if a.index != b.index {
		t.Errorf("winning trial index = %d sequential vs %d pooled", a.index, b.index)
	}
	if !reflect.DeepEqual(a.swaps, b.swaps) {
		t.Errorf("winning swaps = %v sequential vs %v pooled", a.swaps, b.swaps)
	}
	if !a.layout.Equal(b.layout) {
		t.Errorf("winning layout = %v sequential vs %v pooled", a.layout, b.layout)
	}
}

func TestDispatcherRunLayer_TieGoesToSmallestIndex(t *testing.T) {
	g := lineGraph(t, 3)
	// The pair is already adjacent, so every trial satisfies with zero
	// swaps and the reduction must keep the first one.
	d := dispatcher{graph: g, trials: 8, attemptCap: 8, workers: 4, master: 5}

	best := d.runLayer(context.Background(), 0, [][2]int{{0, 1}}, NewTrivialLayout(3))

	if !best.satisfied {
		t.Fatal("winner unsatisfied for an adjacent pair")
	}
	if best.index != 0 {
		t.Errorf("winning trial index = %d, want 0", best.index)
	}
	if len(best.swaps) != 0 {
		t.Errorf("winning swaps = %v, want none", best.swaps)
	}
}

func TestDispatcherRunLayer_MoreTrialsNeverWorse(t *testing.T) {
	g := lineGraph(t, 5)
	pairs := [][2]int{{0, 4}}
	start := NewTrivialLayout(5)

	small := dispatcher{graph: g, trials: 2, attemptCap: 6, workers: 1, master: 3}
	large := dispatcher{graph: g, trials: 16, attemptCap: 6, workers: 1, master: 3}

	a := small.runLayer(context.Background(), 0, pairs, start)
	b := large.runLayer(context.Background(), 0, pairs, start)

	// The large budget reduces over a superset of the small budget's
	// trials, so its winner can never rank strictly worse.
	if a.better(b) {
		t.Errorf("2-trial winner (swaps=%d satisfied=%t) beat 16-trial winner (swaps=%d satisfied=%t)",
			len(a.swaps), a.satisfied, len(b.swaps), b.satisfied)
	}
}

func TestDispatcherRunLayer_TrialResultsIndependentOfBatchSize(t *testing.T) {
	g := lineGraph(t, 5)
	pairs := [][2]int{{0, 4}, {1, 3}}
	start := NewTrivialLayout(5)

	// Trial i derives its stream from (master, layer, i) alone, so the
	// same trial produces the same swaps no matter how many trials run.
	for _, trials := range []int{1, 4, 32} {
		d := dispatcher{graph: g, trials: trials, attemptCap: 16, workers: 2, master: 11}
		got := d.runLayer(context.Background(), 0, pairs, start)

		want := runTrial(g, pairs, start, DeriveRNG(11, 0, got.index), 16, got.index)
		if !reflect.DeepEqual(got.swaps, want.swaps) {
			t.Errorf("trials=%d: winner %d swaps %v, direct run gives %v",
				trials, got.index, got.swaps, want.swaps)
		}
	}
}

package route

import (
	"reflect"
	"testing"

	"github.com/kwyip/qroute/pkg/coupling"
)

func lineGraph(t *testing.T, n int) *coupling.Graph {
	t.Helper()
	g, err := coupling.Line(n).Graph()
	if err != nil {
		t.Fatalf("Line(%d).Graph() error = %v", n, err)
	}
	return g
}

func TestTrialResultBetter(t *testing.T) {
	tests := []struct {
		name string
		a, b trialResult
		want bool
	}{
		{
			name: "satisfied beats unsatisfied",
			a:    trialResult{satisfied: true, swaps: make([][2]int, 9)},
			b:    trialResult{satisfied: false},
			want: true,
		},
		{
			name: "unsatisfied loses to satisfied",
			a:    trialResult{satisfied: false},
			b:    trialResult{satisfied: true, swaps: make([][2]int, 9)},
			want: false,
		},
		{
			name: "fewer swaps win",
			a:    trialResult{satisfied: true, swaps: make([][2]int, 2)},
			b:    trialResult{satisfied: true, swaps: make([][2]int, 3)},
			want: true,
		},
		{
			name: "smaller residual breaks swap ties",
			a:    trialResult{swaps: make([][2]int, 2), residual: 1},
			b:    trialResult{swaps: make([][2]int, 2), residual: 4},
			want: true,
		},
		{
			name: "exact tie is not better",
			a:    trialResult{satisfied: true, swaps: make([][2]int, 2)},
			b:    trialResult{satisfied: true, swaps: make([][2]int, 2)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.better(&tt.b); got != tt.want {
				t.Errorf("better() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestPendingPairs(t *testing.T) {
	g := lineGraph(t, 3)
	l := NewTrivialLayout(3)

	pairs := [][2]int{{0, 1}, {0, 2}}
	pending := pendingPairs(g, pairs, l)

	want := [][2]int{{0, 2}}
	if !reflect.DeepEqual(pending, want) {
		t.Errorf("pendingPairs() = %v, want %v", pending, want)
	}
}

func TestResidualDistance(t *testing.T) {
	g := lineGraph(t, 5)
	l := NewTrivialLayout(5)

	if got := residualDistance(g, [][2]int{{0, 4}}, l); got != 3 {
		t.Errorf("residual for {0,4} = %d, want 3", got)
	}
	if got := residualDistance(g, [][2]int{{0, 4}, {0, 2}}, l); got != 4 {
		t.Errorf("residual for {0,4},{0,2} = %d, want 4", got)
	}
}

func TestCandidateSwaps(t *testing.T) {
	g := lineGraph(t, 3)
	l := NewTrivialLayout(3)

	t.Run("incident edges only", func(t *testing.T) {
		got := candidateSwaps(g, [][2]int{{0, 2}}, l)
		want := [][2]int{{0, 1}, {1, 2}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("candidateSwaps() = %v, want %v", got, want)
		}
	})

	t.Run("duplicates removed", func(t *testing.T) {
		got := candidateSwaps(g, [][2]int{{0, 2}, {1, 2}}, l)
		want := [][2]int{{0, 1}, {1, 2}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("candidateSwaps() = %v, want %v", got, want)
		}
	})
}

func TestPickSwap(t *testing.T) {
	t.Run("reduces distance on a line", func(t *testing.T) {
		g := lineGraph(t, 5)
		l := NewTrivialLayout(5)
		pending := [][2]int{{0, 4}}

		before := pairDistance(g, pending, l)
		s, ok := pickSwap(g, pending, pending, l, DeriveRNG(1, 0, 0))
		if !ok {
			t.Fatal("pickSwap() found no candidate")
		}
		if s != [2]int{0, 1} && s != [2]int{3, 4} {
			t.Fatalf("pickSwap() = %v, want an end edge", s)
		}
		l.Swap(s[0], s[1])
		if after := pairDistance(g, pending, l); after != before-1 {
			t.Errorf("distance after swap = %d, want %d", after, before-1)
		}
	})

	t.Run("scoring leaves the layout untouched", func(t *testing.T) {
		g := lineGraph(t, 5)
		l := NewTrivialLayout(5)

		pairs := [][2]int{{0, 4}}
		_, ok := pickSwap(g, pairs, pairs, l, DeriveRNG(1, 0, 0))
		if !ok {
			t.Fatal("pickSwap() found no candidate")
		}
		if !l.Equal(NewTrivialLayout(5)) {
			t.Errorf("layout mutated during scoring: %v", l)
		}
	})

	t.Run("breaking a satisfied pair costs", func(t *testing.T) {
		// Logical 1 sits between the ends it must not abandon: pairs
		// {0,1} is adjacent, {1,4} is not. Swapping 1 toward 4 scores
		// the damage to {0,1} as well as the gain for {1,4}.
		g := lineGraph(t, 5)
		l := NewTrivialLayout(5)
		pairs := [][2]int{{0, 1}, {1, 4}}
		pending := pendingPairs(g, pairs, l)

		s, ok := pickSwap(g, pairs, pending, l, DeriveRNG(1, 0, 0))
		if !ok {
			t.Fatal("pickSwap() found no candidate")
		}
		// Moving logical 4 inward is the unique cheapest move; pulling 1
		// away from 0 would trade a gain for equal or worse damage.
		if s != [2]int{3, 4} {
			t.Errorf("pickSwap() = %v, want {3 4}", s)
		}
		l.Swap(s[0], s[1])
		if got, want := pairDistance(g, pairs, l), 3; got != want {
			t.Errorf("total distance after swap = %d, want %d", got, want)
		}
	})

	t.Run("no candidates on isolated qubits", func(t *testing.T) {
		g, err := coupling.New(4, [][2]int{{0, 3}})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		pairs := [][2]int{{1, 2}}
		_, ok := pickSwap(g, pairs, pairs, NewTrivialLayout(4), DeriveRNG(1, 0, 0))
		if ok {
			t.Error("pickSwap() = ok for a frontier with no incident edges")
		}
	})
}

func TestRunTrial(t *testing.T) {
	t.Run("line ends meet in one swap", func(t *testing.T) {
		g := lineGraph(t, 3)
		pairs := [][2]int{{0, 2}}
		start := NewTrivialLayout(3)

		for seed := uint64(0); seed < 8; seed++ {
			res := runTrial(g, pairs, start, DeriveRNG(seed, 0, 0), defaultAttemptCap(3), 0)
			if !res.satisfied {
				t.Fatalf("seed %d: trial unsatisfied", seed)
			}
			if len(res.swaps) != 1 {
				t.Errorf("seed %d: %d swaps, want 1", seed, len(res.swaps))
			}
			if !g.Adjacent(res.layout.Physical(0), res.layout.Physical(2)) {
				t.Errorf("seed %d: pair not adjacent after trial", seed)
			}
		}
	})

	t.Run("starting layout is not mutated", func(t *testing.T) {
		g := lineGraph(t, 3)
		start := NewTrivialLayout(3)

		runTrial(g, [][2]int{{0, 2}}, start, DeriveRNG(0, 0, 0), 16, 0)
		if !start.Equal(NewTrivialLayout(3)) {
			t.Errorf("start layout mutated: %v", start)
		}
	})

	t.Run("identical inputs give identical trials", func(t *testing.T) {
		g := lineGraph(t, 5)
		pairs := [][2]int{{0, 4}, {1, 3}}
		start := NewTrivialLayout(5)

		a := runTrial(g, pairs, start, DeriveRNG(9, 0, 3), 16, 3)
		b := runTrial(g, pairs, start, DeriveRNG(9, 0, 3), 16, 3)

		if !reflect.DeepEqual(a.swaps, b.swaps) {
			t.Errorf("swaps differ: %v vs %v", a.swaps, b.swaps)
		}
		if !a.layout.Equal(b.layout) {
			t.Errorf("layouts differ: %v vs %v", a.layout, b.layout)
		}
		if a.satisfied != b.satisfied || a.residual != b.residual {
			t.Errorf("outcomes differ: %+v vs %+v", a, b)
		}
	})

	t.Run("already satisfied needs no budget", func(t *testing.T) {
		g := lineGraph(t, 3)
		res := runTrial(g, [][2]int{{0, 1}}, NewTrivialLayout(3), DeriveRNG(0, 0, 0), 0, 0)

		if !res.satisfied {
			t.Error("trial unsatisfied for an adjacent pair")
		}
		if len(res.swaps) != 0 {
			t.Errorf("%d swaps, want 0", len(res.swaps))
		}
	})

	t.Run("exhausted budget is penalized not failed", func(t *testing.T) {
		g := lineGraph(t, 5)
		res := runTrial(g, [][2]int{{0, 4}}, NewTrivialLayout(5), DeriveRNG(0, 0, 0), 1, 0)

		if res.satisfied {
			t.Fatal("trial satisfied with a one swap budget at distance four")
		}
		if len(res.swaps) != 1 {
			t.Errorf("%d swaps, want 1", len(res.swaps))
		}
		// One swap shrinks the end-to-end distance from 4 to 3.
		if res.residual != 2 {
			t.Errorf("residual = %d, want 2", res.residual)
		}
	})
}

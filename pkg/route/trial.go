package route

import (
	"math/rand/v2"

	"github.com/kwyip/qroute/pkg/coupling"
)

// trialResult is the outcome of a single randomized search attempt for one
// layer. A satisfied trial found a swap sequence after which every required
// pair sits on adjacent physical qubits. An unsatisfied trial ran out of
// attempts; it still carries its final layout and a residual distance so the
// reduction can rank it against other penalized trials.
type trialResult struct {
	index     int
	swaps     [][2]int
	layout    *Layout
	satisfied bool
	residual  int
}

// better reports whether t ranks strictly ahead of other. Satisfied trials
// beat unsatisfied ones, then fewer swaps win, then a smaller residual
// distance. Exact ties are left to the caller, which keeps the trial with
// the smallest index.
func (t *trialResult) better(other *trialResult) bool {
	if t.satisfied != other.satisfied {
		return t.satisfied
	}
	if len(t.swaps) != len(other.swaps) {
		return len(t.swaps) < len(other.swaps)
	}
	return t.residual < other.residual
}

// defaultAttemptCap returns the swap budget for a single trial: a small
// constant plus twice the physical qubit count. Random walks that have not
// satisfied a layer within that many swaps are abandoned and penalized
// rather than allowed to wander forever.
func defaultAttemptCap(qubits int) int {
	return 4 + 2*qubits
}

// pendingPairs returns the required pairs whose operands are not currently
// on adjacent physical qubits under l. The returned slice preserves the
// input order so candidate collection stays deterministic.
func pendingPairs(g *coupling.Graph, pairs [][2]int, l *Layout) [][2]int {
	var pending [][2]int
	for _, p := range pairs {
		if !g.Adjacent(l.Physical(p[0]), l.Physical(p[1])) {
			pending = append(pending, p)
		}
	}
	return pending
}

// residualDistance sums (distance - 1) over the pending pairs under l. A
// fully satisfied layer has residual zero; every pending pair contributes at
// least one since adjacent pairs are not pending.
func residualDistance(g *coupling.Graph, pending [][2]int, l *Layout) int {
	total := 0
	for _, p := range pending {
		total += g.Distance(l.Physical(p[0]), l.Physical(p[1])) - 1
	}
	return total
}

// candidateSwaps collects the coupling edges incident to any physical qubit
// that currently holds an operand of a pending pair. Only those swaps can
// move a relevant qubit, so the search never considers the rest of the
// graph. Collection order is fixed by the pending order and the ascending
// neighbor lists, which keeps trials reproducible for a given seed.
func candidateSwaps(g *coupling.Graph, pending [][2]int, l *Layout) [][2]int {
	seen := make(map[[2]int]bool)
	var candidates [][2]int
	for _, p := range pending {
		for _, q := range p {
			phys := l.Physical(q)
			for _, n := range g.Neighbors(phys) {
				edge := [2]int{phys, n}
				if n < phys {
					edge = [2]int{n, phys}
				}
				if seen[edge] {
					continue
				}
				seen[edge] = true
				candidates = append(candidates, edge)
			}
		}
	}
	return candidates
}

// pairDistance sums the graph distance over all pending pairs under l. It
// is the quantity each candidate swap is scored against.
func pairDistance(g *coupling.Graph, pending [][2]int, l *Layout) int {
	total := 0
	for _, p := range pending {
		total += g.Distance(l.Physical(p[0]), l.Physical(p[1]))
	}
	return total
}

// pickSwap scores every candidate by the summed distance over all of the
// layer's pairs after applying it and picks uniformly at random among the
// best scorers. Scoring over all pairs, not just the pending ones, makes a
// swap that breaks an already adjacent pair pay for the damage. The swap is
// applied tentatively and undone in place, so scoring allocates nothing.
// Sideways and uphill moves are allowed when nothing improves; the attempt
// cap bounds how long such a walk can last.
func pickSwap(g *coupling.Graph, pairs, pending [][2]int, l *Layout, rng *rand.Rand) ([2]int, bool) {
	candidates := candidateSwaps(g, pending, l)
	if len(candidates) == 0 {
		return [2]int{}, false
	}
	bestScore := -1
	var best [][2]int
	for _, c := range candidates {
		l.Swap(c[0], c[1])
		score := pairDistance(g, pairs, l)
		l.Swap(c[0], c[1])
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = best[:0]
		}
		if score == bestScore {
			best = append(best, c)
		}
	}
	return best[rng.IntN(len(best))], true
}

// runTrial performs one randomized swap search for a layer. It clones the
// starting layout, then repeatedly picks a biased random swap until either
// every required pair is adjacent or the attempt cap is exhausted. Two calls
// with equal inputs and an identically seeded generator produce identical
// results regardless of what other trials run concurrently.
func runTrial(g *coupling.Graph, pairs [][2]int, start *Layout, rng *rand.Rand, attemptCap, index int) *trialResult {
	l := start.Clone()
	t := &trialResult{index: index, layout: l}

	for len(t.swaps) < attemptCap {
		pending := pendingPairs(g, pairs, l)
		if len(pending) == 0 {
			t.satisfied = true
			return t
		}
		s, ok := pickSwap(g, pairs, pending, l, rng)
		if !ok {
			break
		}
		l.Swap(s[0], s[1])
		t.swaps = append(t.swaps, s)
	}

	pending := pendingPairs(g, pairs, l)
	if len(pending) == 0 {
		t.satisfied = true
		return t
	}
	t.residual = residualDistance(g, pending, l)
	return t
}

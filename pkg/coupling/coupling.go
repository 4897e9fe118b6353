package coupling

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoQubits is returned by [New] when the qubit count is below one.
	ErrNoQubits = errors.New("coupling map must have at least one qubit")

	// ErrEdgeOutOfRange is returned by [New] when an edge references a qubit
	// index outside [0, qubits).
	ErrEdgeOutOfRange = errors.New("edge endpoint out of range")

	// ErrSelfLoop is returned by [New] when an edge connects a qubit to
	// itself. Self-interactions need no routing and are never declared.
	ErrSelfLoop = errors.New("edge endpoints must differ")
)

// Graph is an immutable undirected coupling map over physical qubits 0..P-1.
//
// The zero value is not usable - use [New]. After construction a Graph is
// read-only and safe for concurrent use.
type Graph struct {
	qubits    int
	adj       [][]bool
	neighbors [][]int
	dist      [][]int
	edges     [][2]int
}

// New builds a coupling map from a qubit count and an undirected edge list.
//
// Edges are normalized (smaller index first), deduplicated, and validated:
// endpoints must be distinct and within range. All-pairs shortest distances
// are precomputed by BFS from every qubit, O(P·(P+E)) once, so later
// [Graph.Distance] calls are O(1).
//
// A disconnected graph is accepted; unreachable pairs report distance -1.
func New(qubits int, edges [][2]int) (*Graph, error) {
	if qubits < 1 {
		return nil, ErrNoQubits
	}

	g := &Graph{
		qubits:    qubits,
		adj:       make([][]bool, qubits),
		neighbors: make([][]int, qubits),
		dist:      make([][]int, qubits),
	}
	for i := range g.adj {
		g.adj[i] = make([]bool, qubits)
	}

	for _, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || a >= qubits || b < 0 || b >= qubits {
			return nil, fmt.Errorf("edge (%d,%d): %w", a, b, ErrEdgeOutOfRange)
		}
		if a == b {
			return nil, fmt.Errorf("edge (%d,%d): %w", a, b, ErrSelfLoop)
		}
		if a > b {
			a, b = b, a
		}
		if g.adj[a][b] {
			continue
		}
		g.adj[a][b] = true
		g.adj[b][a] = true
		g.edges = append(g.edges, [2]int{a, b})
	}
	slices.SortFunc(g.edges, func(x, y [2]int) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})

	for p := 0; p < qubits; p++ {
		for q := 0; q < qubits; q++ {
			if g.adj[p][q] {
				g.neighbors[p] = append(g.neighbors[p], q)
			}
		}
	}

	for p := 0; p < qubits; p++ {
		g.dist[p] = g.bfs(p)
	}
	return g, nil
}

// bfs computes shortest hop distances from src; unreachable entries are -1.
func (g *Graph) bfs(src int) []int {
	dist := make([]int, g.qubits)
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0

	queue := make([]int, 0, g.qubits)
	queue = append(queue, src)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbors[p] {
			if dist[n] < 0 {
				dist[n] = dist[p] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

// Qubits returns the number of physical qubits.
func (g *Graph) Qubits() int { return g.qubits }

// Adjacent reports whether physical qubits a and b share an edge.
// Out-of-range indices report false.
func (g *Graph) Adjacent(a, b int) bool {
	if a < 0 || a >= g.qubits || b < 0 || b >= g.qubits {
		return false
	}
	return g.adj[a][b]
}

// Distance returns the shortest path length in hops between a and b, 0 for
// a == b, or -1 if b is unreachable from a or either index is out of range.
func (g *Graph) Distance(a, b int) int {
	if a < 0 || a >= g.qubits || b < 0 || b >= g.qubits {
		return -1
	}
	return g.dist[a][b]
}

// Neighbors returns the qubits adjacent to p in ascending order.
// The returned slice is shared - treat it as read-only.
func (g *Graph) Neighbors(p int) []int {
	if p < 0 || p >= g.qubits {
		return nil
	}
	return g.neighbors[p]
}

// Degree returns the number of neighbors of p.
func (g *Graph) Degree(p int) int { return len(g.Neighbors(p)) }

// Edges returns a copy of the normalized, sorted edge list.
func (g *Graph) Edges() [][2]int { return slices.Clone(g.edges) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Connected reports whether every qubit is reachable from qubit 0.
// A single-qubit graph is connected.
func (g *Graph) Connected() bool {
	for _, d := range g.dist[0] {
		if d < 0 {
			return false
		}
	}
	return true
}

// Diameter returns the largest finite pairwise distance, or -1 if the graph
// is disconnected.
func (g *Graph) Diameter() int {
	if !g.Connected() {
		return -1
	}
	max := 0
	for p := 0; p < g.qubits; p++ {
		for q := p + 1; q < g.qubits; q++ {
			if g.dist[p][q] > max {
				max = g.dist[p][q]
			}
		}
	}
	return max
}

package route

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyLayout is returned by [NewLayout] for an empty mapping.
	ErrEmptyLayout = errors.New("layout must cover at least one qubit")

	// ErrNotBijective is returned by [NewLayout] when the mapping is not a
	// permutation: an entry out of range or two logical qubits sharing a
	// physical qubit.
	ErrNotBijective = errors.New("layout must be a bijection")
)

// Layout is a bijective logical-to-physical qubit mapping with its inverse.
//
// Both directions are O(1) lookups, and [Layout.Swap] updates both in O(1).
// A Layout is mutable and not safe for concurrent use; every trial works on
// its own [Layout.Clone].
type Layout struct {
	phys []int // logical -> physical
	logi []int // physical -> logical
}

// NewTrivialLayout returns the identity mapping over n qubits.
func NewTrivialLayout(n int) *Layout {
	l := &Layout{
		phys: make([]int, n),
		logi: make([]int, n),
	}
	for i := 0; i < n; i++ {
		l.phys[i] = i
		l.logi[i] = i
	}
	return l
}

// NewLayout builds a layout from a logical-to-physical permutation:
// logicalToPhysical[l] is the physical qubit holding logical qubit l.
// The slice is copied. Returns [ErrNotBijective] if the mapping is not a
// permutation of 0..n-1.
func NewLayout(logicalToPhysical []int) (*Layout, error) {
	n := len(logicalToPhysical)
	if n == 0 {
		return nil, ErrEmptyLayout
	}

	l := &Layout{
		phys: slices.Clone(logicalToPhysical),
		logi: make([]int, n),
	}
	for i := range l.logi {
		l.logi[i] = -1
	}
	for logical, physical := range l.phys {
		if physical < 0 || physical >= n {
			return nil, fmt.Errorf("logical %d -> physical %d: %w", logical, physical, ErrNotBijective)
		}
		if l.logi[physical] != -1 {
			return nil, fmt.Errorf("physical %d assigned twice: %w", physical, ErrNotBijective)
		}
		l.logi[physical] = logical
	}
	return l, nil
}

// Len returns the number of qubits covered by the mapping.
func (l *Layout) Len() int { return len(l.phys) }

// Physical returns the physical qubit holding logical qubit q.
func (l *Layout) Physical(q int) int { return l.phys[q] }

// Logical returns the logical qubit held by physical qubit p.
func (l *Layout) Logical(p int) int { return l.logi[p] }

// Swap exchanges the logical qubits held by physical qubits p1 and p2,
// updating forward and inverse maps in place. Swapping the same pair twice
// restores the previous mapping; the bijection invariant is preserved by
// construction.
func (l *Layout) Swap(p1, p2 int) {
	l1, l2 := l.logi[p1], l.logi[p2]
	l.logi[p1], l.logi[p2] = l2, l1
	l.phys[l1], l.phys[l2] = p2, p1
}

// Clone returns an independent copy for branching into a new trial.
func (l *Layout) Clone() *Layout {
	return &Layout{
		phys: slices.Clone(l.phys),
		logi: slices.Clone(l.logi),
	}
}

// Equal reports whether two layouts map every logical qubit identically.
func (l *Layout) Equal(other *Layout) bool {
	return other != nil && slices.Equal(l.phys, other.phys)
}

// ToPhysical returns a copy of the logical-to-physical slice, the
// serializable form of the mapping.
func (l *Layout) ToPhysical() []int { return slices.Clone(l.phys) }

// String renders the mapping as "l0->p0 l1->p1 ...", for logs and tests.
func (l *Layout) String() string {
	var b []byte
	for logical, physical := range l.phys {
		if logical > 0 {
			b = append(b, ' ')
		}
		b = fmt.Appendf(b, "%d->%d", logical, physical)
	}
	return string(b)
}

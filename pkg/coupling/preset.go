package coupling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownPreset is returned by [FromSpec] when the spec names no known
// preset family or its arguments are malformed.
var ErrUnknownPreset = errors.New("unknown topology preset")

// PresetFamilies lists the built-in preset families in display order.
// Each family takes a size argument: "line:5", "ring:6", "grid:3x4",
// "star:5", "full:4".
func PresetFamilies() []string {
	return []string{"line", "ring", "grid", "star", "full"}
}

// Line returns a path topology: qubits 0..n-1 coupled in a chain.
func Line(n int) Topology {
	t := Topology{Name: fmt.Sprintf("line:%d", n), Qubits: n}
	for i := 0; i+1 < n; i++ {
		t.Edges = append(t.Edges, []int{i, i + 1})
	}
	return t
}

// Ring returns a cycle topology: a line with the ends coupled.
// For n < 3 a ring degenerates to a line.
func Ring(n int) Topology {
	t := Line(n)
	t.Name = fmt.Sprintf("ring:%d", n)
	if n >= 3 {
		t.Edges = append(t.Edges, []int{n - 1, 0})
	}
	return t
}

// Grid returns a rows x cols lattice topology with row-major qubit indices
// and nearest-neighbor coupling.
func Grid(rows, cols int) Topology {
	t := Topology{Name: fmt.Sprintf("grid:%dx%d", rows, cols), Qubits: rows * cols}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := r*cols + c
			if c+1 < cols {
				t.Edges = append(t.Edges, []int{p, p + 1})
			}
			if r+1 < rows {
				t.Edges = append(t.Edges, []int{p, p + cols})
			}
		}
	}
	return t
}

// Star returns a hub topology: qubit 0 coupled to every other qubit.
func Star(n int) Topology {
	t := Topology{Name: fmt.Sprintf("star:%d", n), Qubits: n}
	for i := 1; i < n; i++ {
		t.Edges = append(t.Edges, []int{0, i})
	}
	return t
}

// Full returns an all-to-all topology. Routing on it never inserts swaps;
// it exists for baselines and tests.
func Full(n int) Topology {
	t := Topology{Name: fmt.Sprintf("full:%d", n), Qubits: n}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			t.Edges = append(t.Edges, []int{i, j})
		}
	}
	return t
}

// FromSpec builds a preset topology from a spec string like "line:5" or
// "grid:3x4". Returns [ErrUnknownPreset] for unknown families or malformed
// arguments.
func FromSpec(spec string) (Topology, error) {
	family, arg, ok := strings.Cut(spec, ":")
	if !ok {
		return Topology{}, fmt.Errorf("%w: %q", ErrUnknownPreset, spec)
	}

	switch family {
	case "grid":
		rowText, colText, ok := strings.Cut(arg, "x")
		if !ok {
			return Topology{}, fmt.Errorf("%w: grid wants RxC, got %q", ErrUnknownPreset, arg)
		}
		rows, err1 := strconv.Atoi(rowText)
		cols, err2 := strconv.Atoi(colText)
		if err1 != nil || err2 != nil || rows < 1 || cols < 1 {
			return Topology{}, fmt.Errorf("%w: grid wants RxC, got %q", ErrUnknownPreset, arg)
		}
		return Grid(rows, cols), nil

	case "line", "ring", "star", "full":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return Topology{}, fmt.Errorf("%w: %s wants a positive size, got %q", ErrUnknownPreset, family, arg)
		}
		switch family {
		case "line":
			return Line(n), nil
		case "ring":
			return Ring(n), nil
		case "star":
			return Star(n), nil
		default:
			return Full(n), nil
		}

	default:
		return Topology{}, fmt.Errorf("%w: %q", ErrUnknownPreset, family)
	}
}

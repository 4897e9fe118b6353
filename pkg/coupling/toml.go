package coupling

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrBadEdgeShape is returned by [Topology.Graph] when an edge entry does
// not have exactly two endpoints.
var ErrBadEdgeShape = errors.New("edge must have exactly two endpoints")

// Topology is the serializable description of a coupling map.
//
// Edges use [][]int rather than [][2]int so the TOML and JSON decoders accept
// plain nested arrays; [Topology.Graph] validates that every entry has
// exactly two endpoints.
type Topology struct {
	Name   string  `toml:"name" json:"name"`
	Qubits int     `toml:"qubits" json:"qubits"`
	Edges  [][]int `toml:"edges" json:"edges"`
}

// Graph validates the topology and builds its immutable [Graph].
func (t Topology) Graph() (*Graph, error) {
	edges := make([][2]int, 0, len(t.Edges))
	for i, e := range t.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("edge %d: %w, got %d", i, ErrBadEdgeShape, len(e))
		}
		edges = append(edges, [2]int{e[0], e[1]})
	}
	return New(t.Qubits, edges)
}

// ParseTOML decodes a topology from TOML text.
func ParseTOML(data []byte) (Topology, error) {
	var t Topology
	if err := toml.Unmarshal(data, &t); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// LoadTOML reads a topology from a TOML file. When the topology has no name,
// the file path is used so diagnostics stay traceable.
func LoadTOML(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, err
	}
	t, err := ParseTOML(data)
	if err != nil {
		return Topology{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = path
	}
	return t, nil
}

// WriteTOML encodes the topology as TOML.
func (t Topology) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(t)
}

// Resolve turns a topology spec into a Topology. Specs containing a colon
// are preset forms ("line:5", "grid:3x4"); anything else is treated as a
// path to a TOML file.
func Resolve(spec string) (Topology, error) {
	if strings.Contains(spec, ":") {
		return FromSpec(spec)
	}
	return LoadTOML(spec)
}

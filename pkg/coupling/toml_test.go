package coupling

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const falconTOML = `name = "falcon-line"
qubits = 5
edges = [[0, 1], [1, 2], [2, 3], [3, 4]]
`

func TestParseTOML(t *testing.T) {
	top, err := ParseTOML([]byte(falconTOML))
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	if top.Name != "falcon-line" {
		t.Errorf("Name = %q, want falcon-line", top.Name)
	}
	if top.Qubits != 5 {
		t.Errorf("Qubits = %d, want 5", top.Qubits)
	}
	if len(top.Edges) != 4 {
		t.Errorf("len(Edges) = %d, want 4", len(top.Edges))
	}
}

func TestWriteTOML_RoundTrip(t *testing.T) {
	orig := Topology{
		Name:   "test-ring",
		Qubits: 3,
		Edges:  [][]int{{0, 1}, {1, 2}, {2, 0}},
	}

	var buf bytes.Buffer
	if err := orig.WriteTOML(&buf); err != nil {
		t.Fatalf("WriteTOML() error = %v", err)
	}

	parsed, err := ParseTOML(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	if !reflect.DeepEqual(parsed, orig) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", parsed, orig)
	}
}

func TestTopologyGraph_BadEdgeShape(t *testing.T) {
	top := Topology{Qubits: 3, Edges: [][]int{{0, 1, 2}}}
	if _, err := top.Graph(); !errors.Is(err, ErrBadEdgeShape) {
		t.Errorf("Graph() error = %v, want ErrBadEdgeShape", err)
	}

	top = Topology{Qubits: 3, Edges: [][]int{{0}}}
	if _, err := top.Graph(); !errors.Is(err, ErrBadEdgeShape) {
		t.Errorf("Graph() error = %v, want ErrBadEdgeShape", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "falcon.toml")
	if err := os.WriteFile(path, []byte(falconTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	top, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if top.Name != "falcon-line" {
		t.Errorf("Name = %q, want falcon-line", top.Name)
	}

	if _, err := LoadTOML(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadTOML() on missing file should fail")
	}
}

func TestLoadTOML_DefaultsNameToPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anon.toml")
	if err := os.WriteFile(path, []byte("qubits = 2\nedges = [[0, 1]]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	top, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if top.Name != path {
		t.Errorf("Name = %q, want %q", top.Name, path)
	}
}

func TestResolve(t *testing.T) {
	top, err := Resolve("line:4")
	if err != nil {
		t.Fatalf("Resolve(line:4) error = %v", err)
	}
	if top.Qubits != 4 {
		t.Errorf("Qubits = %d, want 4", top.Qubits)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "t.toml")
	if err := os.WriteFile(path, []byte(falconTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	top, err = Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", path, err)
	}
	if top.Qubits != 5 {
		t.Errorf("Qubits = %d, want 5", top.Qubits)
	}
}

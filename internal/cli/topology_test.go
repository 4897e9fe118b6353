package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestResolveTopologyArgPreset(t *testing.T) {
	topo, g, err := resolveTopologyArg("line:5")
	if err != nil {
		t.Fatalf("resolveTopologyArg(line:5) error: %v", err)
	}
	if topo.Name != "line:5" {
		t.Errorf("Name = %q, want %q", topo.Name, "line:5")
	}
	if g.Qubits() != 5 {
		t.Errorf("Qubits() = %d, want 5", g.Qubits())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
}

func TestResolveTopologyArgFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "device.toml")
	content := `name = "t-shape"
qubits = 4
edges = [[0, 1], [1, 2], [1, 3]]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write topology: %v", err)
	}

	topo, g, err := resolveTopologyArg(path)
	if err != nil {
		t.Fatalf("resolveTopologyArg(%s) error: %v", path, err)
	}
	if topo.Name != "t-shape" {
		t.Errorf("Name = %q, want %q", topo.Name, "t-shape")
	}
	if g.Qubits() != 4 || g.EdgeCount() != 3 {
		t.Errorf("got %d qubits / %d edges, want 4 / 3", g.Qubits(), g.EdgeCount())
	}
}

func TestResolveTopologyArgErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"missing file", "no-such-file.toml"},
		{"bad preset size", "line:x"},
		{"unknown family", "hexagon:5"},
		{"zero qubits", "line:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := resolveTopologyArg(tt.spec); err == nil {
				t.Errorf("resolveTopologyArg(%q) should fail", tt.spec)
			}
		})
	}
}

func TestTopologyFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"grid:3x4", "grid-3x4"},
		{"line:5", "line-5"},
		{"device", "device"},
		{"", "topology"},
	}

	for _, tt := range tests {
		if got := topologyFileName(tt.name); got != tt.want {
			t.Errorf("topologyFileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPresetCatalog(t *testing.T) {
	entries := presetCatalog()
	if len(entries) == 0 {
		t.Fatal("presetCatalog() returned no entries")
	}
	for _, e := range entries {
		if e.spec == "" {
			t.Error("catalog entry has an empty spec")
		}
		if e.graph == nil {
			t.Errorf("catalog entry %q has no graph", e.spec)
			continue
		}
		if !e.graph.Connected() {
			t.Errorf("preset %q should be connected", e.spec)
		}
	}
}

func TestTopologyListModelNavigation(t *testing.T) {
	m := newTopologyListModel(presetCatalog())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(topologyListModel)
	if m.cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.cursor)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(topologyListModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.cursor)
	}

	// Up at the top stays put
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(topologyListModel)
	if m.cursor != 0 {
		t.Errorf("cursor should not move above 0, got %d", m.cursor)
	}
}

func TestTopologyListModelSelect(t *testing.T) {
	entries := presetCatalog()
	m := newTopologyListModel(entries)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(topologyListModel)

	if m.selected == nil {
		t.Fatal("enter should set the selected entry")
	}
	if m.selected.spec != entries[0].spec {
		t.Errorf("selected %q, want %q", m.selected.spec, entries[0].spec)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestTopologyListModelQuit(t *testing.T) {
	m := newTopologyListModel(presetCatalog())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(topologyListModel)

	if m.selected != nil {
		t.Error("quit should not select an entry")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestTopologyListModelView(t *testing.T) {
	m := newTopologyListModel(presetCatalog())
	view := m.View()

	if !strings.Contains(view, "Select Topology") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "line:5") {
		t.Error("view should list the first preset")
	}
}

func TestTopologyShowCommand(t *testing.T) {
	if err := execRoot(t, "topology", "show", "line:5"); err != nil {
		t.Errorf("topology show failed: %v", err)
	}
	if err := execRoot(t, "topology", "show", "grid:2x3", "--dot"); err != nil {
		t.Errorf("topology show --dot failed: %v", err)
	}
}

func TestTopologyShowWriteTOML(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "ring.toml")

	if err := execRoot(t, "topology", "show", "ring:6", "-o", out); err != nil {
		t.Fatalf("topology show -o failed: %v", err)
	}

	// The written file resolves back to the same topology
	topo, g, err := resolveTopologyArg(out)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if topo.Name != "ring:6" {
		t.Errorf("Name = %q, want %q", topo.Name, "ring:6")
	}
	if g.Qubits() != 6 || g.EdgeCount() != 6 {
		t.Errorf("got %d qubits / %d edges, want 6 / 6", g.Qubits(), g.EdgeCount())
	}
}

func TestTopologyListCommand(t *testing.T) {
	if err := execRoot(t, "topology", "list"); err != nil {
		t.Errorf("topology list failed: %v", err)
	}
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kwyip/qroute/pkg/coupling"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// topologyEntry is one row of the interactive topology browser.
type topologyEntry struct {
	spec  string
	topo  coupling.Topology
	graph *coupling.Graph
}

// presetCatalog builds the browsable preset instances at a few common
// sizes. Specs that fail to build are skipped.
func presetCatalog() []topologyEntry {
	specs := []string{
		"line:5", "line:9",
		"ring:6", "ring:8",
		"grid:2x3", "grid:3x3", "grid:4x4",
		"star:5", "star:9",
		"full:4", "full:6",
	}

	entries := make([]topologyEntry, 0, len(specs))
	for _, spec := range specs {
		topo, err := coupling.FromSpec(spec)
		if err != nil {
			continue
		}
		g, err := topo.Graph()
		if err != nil {
			continue
		}
		entries = append(entries, topologyEntry{spec: spec, topo: topo, graph: g})
	}
	return entries
}

// topologyListModel is the bubbletea model for interactive topology
// selection.
type topologyListModel struct {
	entries  []topologyEntry
	cursor   int
	selected *topologyEntry
}

// newTopologyListModel creates a new topology list model.
func newTopologyListModel(entries []topologyEntry) topologyListModel {
	return topologyListModel{entries: entries}
}

func (m topologyListModel) Init() tea.Cmd {
	return nil
}

func (m topologyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = &m.entries[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m topologyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Topology"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			e.spec,
			strconv.Itoa(e.graph.Qubits()),
			strconv.Itoa(e.graph.EdgeCount()),
			strconv.Itoa(e.graph.Diameter()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Topology", "Qubits", "Edges", "Diameter").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}

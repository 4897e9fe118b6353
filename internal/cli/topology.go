package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kwyip/qroute/pkg/coupling"
)

// topologyCommand creates the topology command with subcommands.
func (c *CLI) topologyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Inspect and render coupling topologies",
	}

	cmd.AddCommand(c.topologyListCommand())
	cmd.AddCommand(c.topologyShowCommand())
	cmd.AddCommand(c.topologyRenderCommand())
	cmd.AddCommand(c.topologyBrowseCommand())

	return cmd
}

// presetExamples maps each preset family to an example spec and a short
// description, in the order PresetFamilies returns them.
var presetExamples = map[string][2]string{
	"line": {"line:5", "N qubits in a row"},
	"ring": {"ring:5", "N qubits in a cycle"},
	"grid": {"grid:3x4", "R x C lattice"},
	"star": {"star:5", "hub qubit connected to all others"},
	"full": {"full:5", "every pair connected"},
}

// topologyListCommand creates the "topology list" subcommand.
func (c *CLI) topologyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List preset topology families",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Preset topology families"))
			for _, family := range coupling.PresetFamilies() {
				ex := presetExamples[family]
				fmt.Printf("  %s %s\n",
					StyleHighlight.Render(fmt.Sprintf("%-10s", ex[0])),
					StyleDim.Render(ex[1]))
			}
			printNewline()
			printNextStep("Describe one", "qroute topology show grid:3x4")
			return nil
		},
	}
}

// topologyShowCommand creates the "topology show" subcommand.
func (c *CLI) topologyShowCommand() *cobra.Command {
	var dot bool
	var output string

	cmd := &cobra.Command{
		Use:   "show [spec]",
		Short: "Describe a topology",
		Long: `Describe a coupling topology given as a preset spec ("grid:3x4") or a
TOML file path. With --dot the Graphviz DOT source is printed instead;
with --output the topology is written to a TOML file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, g, err := resolveTopologyArg(args[0])
			if err != nil {
				return err
			}

			if dot {
				fmt.Print(topo.ToDOT())
				return nil
			}

			describeTopology(topo, g)

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				if err := topo.WriteTOML(f); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dot, "dot", false, "print Graphviz DOT source")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the topology to a TOML file")

	return cmd
}

// topologyRenderCommand creates the "topology render" subcommand.
func (c *CLI) topologyRenderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [spec]",
		Short: "Render a topology as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, _, err := resolveTopologyArg(args[0])
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering topology...")
			spinner.Start()
			svg, err := topo.RenderSVG(cmd.Context())
			if err != nil {
				spinner.StopWithError("Rendering failed")
				return fmt.Errorf("render %s: %w", args[0], err)
			}
			spinner.Stop()

			path := output
			if path == "" {
				path = topologyFileName(topo.Name) + ".svg"
			}
			if err := os.WriteFile(path, svg, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Topology rendered")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output SVG file (default: <name>.svg)")

	return cmd
}

// topologyBrowseCommand creates the "topology browse" subcommand, an
// interactive picker over common preset instances.
func (c *CLI) topologyBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse preset topologies interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newTopologyListModel(presetCatalog())

			p := tea.NewProgram(m)
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			final := finalModel.(topologyListModel)
			if final.selected == nil {
				return nil
			}

			printNewline()
			describeTopology(final.selected.topo, final.selected.graph)
			printNewline()
			printNextStep("Route a circuit", "qroute route circuit.qasm -t "+final.selected.spec)
			return nil
		},
	}
}

// resolveTopologyArg resolves a spec or TOML path and builds its graph.
func resolveTopologyArg(spec string) (coupling.Topology, *coupling.Graph, error) {
	topo, err := coupling.Resolve(spec)
	if err != nil {
		return coupling.Topology{}, nil, fmt.Errorf("resolve topology %q: %w", spec, err)
	}
	g, err := topo.Graph()
	if err != nil {
		return coupling.Topology{}, nil, fmt.Errorf("invalid topology %q: %w", spec, err)
	}
	return topo, g, nil
}

// describeTopology prints the key properties of a topology.
func describeTopology(topo coupling.Topology, g *coupling.Graph) {
	printKeyValue("Name", topo.Name)
	printKeyValue("Qubits", strconv.Itoa(g.Qubits()))
	printKeyValue("Edges", strconv.Itoa(g.EdgeCount()))
	if g.Connected() {
		printKeyValue("Diameter", strconv.Itoa(g.Diameter()))
	} else {
		printKeyValue("Connected", "no")
	}
}

// topologyFileName turns a topology name into a safe file stem
// ("grid:3x4" becomes "grid-3x4").
func topologyFileName(name string) string {
	if name == "" {
		return "topology"
	}
	return strings.ReplaceAll(name, ":", "-")
}

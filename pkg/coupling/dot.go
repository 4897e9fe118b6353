package coupling

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the topology.
//
// The output is an undirected graph with one node per physical qubit and one
// edge per coupling, laid out with neato so small device maps keep their
// natural geometry. It can be rendered with Graphviz tools or
// programmatically with [Topology.RenderSVG].
func (t Topology) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("graph coupling {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if t.Name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", t.Name)
	}
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=circle, style=filled, fillcolor=white];\n\n")

	for q := 0; q < t.Qubits; q++ {
		fmt.Fprintf(&buf, "  q%d [label=\"%d\"];\n", q, q)
	}
	buf.WriteString("\n")
	for _, e := range t.Edges {
		if len(e) == 2 {
			fmt.Fprintf(&buf, "  q%d -- q%d;\n", e[0], e[1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the topology as an SVG image.
//
// RenderSVG generates a DOT representation via [Topology.ToDOT], then uses
// Graphviz to render it to SVG. The returned bytes are a complete SVG
// document suitable for embedding in HTML or saving to a file.
//
// All errors are wrapped with context using fmt.Errorf with %w, suitable for
// unwrapping with errors.Unwrap or errors.Is.
func (t Topology) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := t.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

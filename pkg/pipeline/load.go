package pipeline

import (
	"errors"
	"os"
	"strings"

	"github.com/kwyip/qroute/pkg/circuit"
	"github.com/kwyip/qroute/pkg/coupling"
	qerrors "github.com/kwyip/qroute/pkg/errors"
	qio "github.com/kwyip/qroute/pkg/io"
)

// LoadCircuit reads the input circuit from a file or from inline text.
//
// File input detects the format from the extension; inline input requires
// CircuitFormat. The returned circuit is validated. Errors carry codes so
// API handlers can map them to HTTP statuses.
func LoadCircuit(opts Options) (*circuit.Circuit, error) {
	if opts.CircuitPath != "" {
		c, err := qio.ImportCircuit(opts.CircuitPath)
		if err != nil {
			return nil, qerrors.Wrap(loadErrorCode(err), err, "load circuit")
		}
		return c, nil
	}

	c, err := qio.ReadCircuit(strings.NewReader(opts.Circuit), qio.Format(opts.CircuitFormat))
	if err != nil {
		return nil, qerrors.Wrap(loadErrorCode(err), err, "load circuit")
	}
	return c, nil
}

// LoadTopology resolves the topology spec and builds its coupling graph.
//
// Specs with a colon are presets ("line:5", "grid:3x4"); anything else is
// read as a TOML file path.
func LoadTopology(opts Options) (coupling.Topology, *coupling.Graph, error) {
	topo, err := coupling.Resolve(opts.Topology)
	if err != nil {
		code := qerrors.ErrCodeInvalidTopology
		if errors.Is(err, os.ErrNotExist) {
			code = qerrors.ErrCodeFileNotFound
		}
		return coupling.Topology{}, nil, qerrors.Wrap(code, err, "resolve topology %q", opts.Topology)
	}

	g, err := topo.Graph()
	if err != nil {
		return coupling.Topology{}, nil, qerrors.Wrap(qerrors.ErrCodeInvalidTopology, err, "topology %q", opts.Topology)
	}
	return topo, g, nil
}

// loadErrorCode classifies a circuit load failure.
func loadErrorCode(err error) qerrors.Code {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return qerrors.ErrCodeFileNotFound
	case errors.Is(err, qio.ErrUnknownFormat):
		return qerrors.ErrCodeInvalidFormat
	default:
		return qerrors.ErrCodeInvalidCircuit
	}
}

package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kwyip/qroute/pkg/circuit"
)

// Format identifies a circuit serialization format.
type Format string

// Supported circuit formats.
const (
	FormatJSON Format = "json"
	FormatQASM Format = "qasm"
)

// ErrUnknownFormat is returned when a file extension maps to no supported
// format. Supported extensions are .json and .qasm.
var ErrUnknownFormat = errors.New("unknown circuit format")

// DetectFormat maps a file path to its circuit format by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".qasm":
		return FormatQASM, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// ReadJSON decodes a JSON circuit from r.
//
// The input must be an object with a "qubits" count and a "gates" array;
// see the package documentation for the exact shape. The decoded circuit is
// validated, so malformed gates (out-of-range or duplicate operands) are
// rejected here rather than surfacing later inside the router.
//
// The returned circuit is independent of r and can be modified safely.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*circuit.Circuit, error) {
	var c circuit.Circuit
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &c, nil
}

// ReadCircuit decodes a circuit from r in the given format.
func ReadCircuit(r io.Reader, format Format) (*circuit.Circuit, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatQASM:
		return circuit.ParseQASM(r)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// ImportCircuit reads a circuit file, detecting the format from the file
// extension. Errors wrap the underlying cause with the file path for
// context.
func ImportCircuit(path string) (*circuit.Circuit, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := ReadCircuit(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

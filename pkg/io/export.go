package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kwyip/qroute/pkg/circuit"
	"github.com/kwyip/qroute/pkg/route"
)

// WriteJSON encodes a circuit as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(c *circuit.Circuit, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCircuit encodes a circuit to w in the given format.
func WriteCircuit(c *circuit.Circuit, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(c, w)
	case FormatQASM:
		return circuit.EmitQASM(c, w)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// ExportCircuit writes a circuit to a file, detecting the format from the
// file extension. This is the counterpart of [ImportCircuit].
func ExportCircuit(c *circuit.Circuit, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCircuit(c, f, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteResult encodes a complete routing result as indented JSON: the
// rewritten circuit plus the final layout, per-layer swap records, and the
// total swap count.
func WriteResult(res *route.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResult writes a routing result to a JSON file at path.
// This is a convenience wrapper around [WriteResult] for file-based output.
func ExportResult(res *route.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(res, f)
}

package pipeline

import (
	"bytes"
	"fmt"

	"github.com/kwyip/qroute/pkg/circuit"
	"github.com/kwyip/qroute/pkg/errors"
	qio "github.com/kwyip/qroute/pkg/io"
	"github.com/kwyip/qroute/pkg/route"
)

// Emit serializes a routing result in the requested formats.
//
// JSON carries the complete result (routed circuit, final layout, per-layer
// swap records); QASM carries just the routed circuit as OPENQASM 2.0 text.
func Emit(res *route.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForEmit(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var buf bytes.Buffer
		var err error

		switch format {
		case FormatJSON:
			err = qio.WriteResult(res, &buf)
		case FormatQASM:
			err = circuit.EmitQASM(res.Routed, &buf)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("emit %s: %w", format, err)
		}
		artifacts[format] = buf.Bytes()
	}

	return artifacts, nil
}

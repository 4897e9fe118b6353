package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTrialCount validates a per-layer trial count.
// The search needs at least one trial per layer; there is no upper limit, but
// absurd values are rejected so a typo cannot pin a machine for hours.
func ValidateTrialCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidConfig, "trial count must be >= 1, got %d", n)
	}

	const maxTrials = 1 << 20
	if n > maxTrials {
		return New(ErrCodeInvalidConfig, "trial count too large (max %d), got %d", maxTrials, n)
	}

	return nil
}

// ValidateQubitCount validates a physical or logical qubit count.
func ValidateQubitCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidTopology, "qubit count must be >= 1, got %d", n)
	}

	const maxQubits = 1 << 16
	if n > maxQubits {
		return New(ErrCodeInvalidTopology, "qubit count too large (max %d), got %d", maxQubits, n)
	}

	return nil
}

// presetSpecRegex matches preset topology specs like "line:5" or "grid:3x4".
var presetSpecRegex = regexp.MustCompile(`^[a-z]+:[0-9]+(x[0-9]+)?$`)

// ValidateTopologySpec validates a topology spec string for safety and shape.
// A spec is either a preset form ("line:5", "ring:6", "grid:3x4") or a path to
// a TOML topology file.
//
// The validation rules are intentionally conservative:
//   - No empty specs
//   - No control characters or null bytes
//   - Maximum length of 500 characters
func ValidateTopologySpec(spec string) error {
	if spec == "" {
		return New(ErrCodeInvalidTopology, "topology spec cannot be empty")
	}

	if len(spec) > 500 {
		return New(ErrCodeInvalidTopology, "topology spec too long (max 500 characters)")
	}

	for _, r := range spec {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidTopology, "topology spec contains invalid control characters")
		}
	}

	if strings.Contains(spec, ":") && !presetSpecRegex.MatchString(spec) {
		return New(ErrCodeInvalidTopology, "invalid preset spec: %q (expected forms like line:5 or grid:3x4)", spec)
	}

	return nil
}

// ValidateOutputFormat validates an output format name.
func ValidateOutputFormat(format string) error {
	switch format {
	case "qasm", "json":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	default:
		return New(ErrCodeInvalidFormat, "unsupported output format: %q (supported: qasm, json)", format)
	}
}

// gateNameRegex matches valid gate names (lowercase QASM identifiers).
var gateNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateGateName validates a gate name for safety and correctness.
// Gate names follow OPENQASM identifier rules: lowercase letter followed by
// lowercase letters, digits, or underscores.
func ValidateGateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCircuit, "gate name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidCircuit, "gate name too long (max 64 characters)")
	}

	if !gateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidCircuit, "invalid gate name: %q", name)
	}

	return nil
}

package circuit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMissingHeader is returned by [ParseQASM] when the input does not
	// start with an "OPENQASM 2.0;" statement.
	ErrMissingHeader = errors.New("missing OPENQASM 2.0 header")

	// ErrMissingRegister is returned by [ParseQASM] when a gate appears
	// before any qreg declaration.
	ErrMissingRegister = errors.New("missing qreg declaration")

	// ErrMultipleRegisters is returned by [ParseQASM] for inputs with more
	// than one qreg. The codec supports the single-register subset only.
	ErrMultipleRegisters = errors.New("multiple quantum registers not supported")

	// ErrBadStatement is returned by [ParseQASM] for statements that match
	// no supported form.
	ErrBadStatement = errors.New("unrecognized statement")

	// ErrBadOperand is returned by [ParseQASM] when a gate operand is not a
	// subscripted reference into the declared qreg.
	ErrBadOperand = errors.New("bad qubit operand")

	// ErrBadParameter is returned by [ParseQASM] when a gate parameter is not
	// a numeric literal or a simple pi expression.
	ErrBadParameter = errors.New("bad gate parameter")
)

var (
	headerRe  = regexp.MustCompile(`^OPENQASM\s+2\.0;$`)
	includeRe = regexp.MustCompile(`^include\s+"[^"]*";$`)
	qregRe    = regexp.MustCompile(`^qreg\s+([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\];$`)
	cregRe    = regexp.MustCompile(`^creg\s+([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\];$`)
	measureRe = regexp.MustCompile(`^measure\s+([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]\s*->\s*[A-Za-z_][A-Za-z0-9_]*\[\d+\];$`)
	gateRe    = regexp.MustCompile(`^([a-z][a-z0-9_]*)\s*(?:\(([^)]*)\))?\s+(.+);$`)
	operandRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]$`)
)

// knownArity maps qelib1.inc gate names to their operand counts.
// Unknown gate names are accepted with any arity; known names are checked.
var knownArity = map[string]int{
	GateH: 1, GateX: 1, GateY: 1, GateZ: 1,
	GateS: 1, GateSdg: 1, GateT: 1, GateTdg: 1,
	GateRX: 1, GateRY: 1, GateRZ: 1,
	"u1": 1, "u2": 1, "u3": 1, "id": 1,
	GateCX: 2, GateCZ: 2, "cy": 2, "ch": 2, GateSwap: 2,
	"crz": 2, "cu1": 2, "cu3": 2,
	GateCCX: 3, "cswap": 3,
}

// EmitQASM writes the circuit as OPENQASM 2.0 text.
//
// The output declares a single qreg named q, plus a matching creg c when the
// circuit contains measure operations. Measures are emitted wire-to-wire
// (q[i] -> c[i]), so after routing the classical bit follows the physical
// wire that carries the measured qubit.
func EmitQASM(c *Circuit, w io.Writer) error {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.Qubits)

	hasMeasure := false
	for _, g := range c.Gates {
		if g.Name == GateMeasure {
			hasMeasure = true
			break
		}
	}
	if hasMeasure {
		fmt.Fprintf(&b, "creg c[%d];\n", c.Qubits)
	}

	for _, g := range c.Gates {
		writeGate(&b, g)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// QASMString renders the circuit as OPENQASM 2.0 text.
func QASMString(c *Circuit) string {
	var b strings.Builder
	_ = EmitQASM(c, &b)
	return b.String()
}

func writeGate(b *strings.Builder, g Gate) {
	if g.Name == GateMeasure && len(g.Qubits) == 1 {
		fmt.Fprintf(b, "measure q[%d] -> c[%d];\n", g.Qubits[0], g.Qubits[0])
		return
	}

	b.WriteString(g.Name)
	if len(g.Params) > 0 {
		b.WriteString("(")
		for i, p := range g.Params {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
		}
		b.WriteString(")")
	}
	b.WriteString(" ")
	for i, q := range g.Qubits {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(b, "q[%d]", q)
	}
	b.WriteString(";\n")
}

// ParseQASM reads OPENQASM 2.0 text into a circuit.
//
// Supported statements: the version header, includes (ignored), one qreg, any
// number of cregs (sizes ignored), qelib1.inc gates, unknown gates with
// subscripted operands, barrier (subscripted or whole-register), and measure.
// Comments (// ...) and blank lines are skipped. Errors carry the offending
// line number and wrap the sentinel errors of this package.
func ParseQASM(r io.Reader) (*Circuit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		c        *Circuit
		qregName string
		lineNo   int
		sawHdr   bool
	)

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !sawHdr {
			if !headerRe.MatchString(line) {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingHeader)
			}
			sawHdr = true
			continue
		}

		switch {
		case includeRe.MatchString(line), cregRe.MatchString(line):
			// Includes and classical registers carry nothing the router needs.

		case qregRe.MatchString(line):
			m := qregRe.FindStringSubmatch(line)
			if c != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMultipleRegisters)
			}
			size, err := strconv.Atoi(m[2])
			if err != nil || size < 1 {
				return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrBadStatement, line)
			}
			qregName = m[1]
			c = New(size)

		case measureRe.MatchString(line):
			m := measureRe.FindStringSubmatch(line)
			if c == nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingRegister)
			}
			q, err := parseOperandIndex(m[1], m[2], qregName, c.Qubits)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c.Append(GateMeasure, q)

		case gateRe.MatchString(line):
			if c == nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingRegister)
			}
			g, err := parseGate(line, qregName, c.Qubits)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c.Add(g)

		default:
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrBadStatement, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if !sawHdr {
		return nil, ErrMissingHeader
	}
	if c == nil {
		return nil, ErrMissingRegister
	}
	return c, nil
}

func parseGate(line, qregName string, qubits int) (Gate, error) {
	m := gateRe.FindStringSubmatch(line)
	name, paramText, operandText := m[1], m[2], m[3]

	g := Gate{Name: name}

	if paramText != "" {
		for _, raw := range strings.Split(paramText, ",") {
			v, err := parseParam(strings.TrimSpace(raw))
			if err != nil {
				return Gate{}, err
			}
			g.Params = append(g.Params, v)
		}
	}

	// "barrier q;" spans the whole register.
	if name == GateBarrier && strings.TrimSpace(operandText) == qregName {
		for q := 0; q < qubits; q++ {
			g.Qubits = append(g.Qubits, q)
		}
		return g, nil
	}

	for _, raw := range strings.Split(operandText, ",") {
		raw = strings.TrimSpace(raw)
		om := operandRe.FindStringSubmatch(raw)
		if om == nil {
			return Gate{}, fmt.Errorf("%w: %q", ErrBadOperand, raw)
		}
		q, err := parseOperandIndex(om[1], om[2], qregName, qubits)
		if err != nil {
			return Gate{}, err
		}
		g.Qubits = append(g.Qubits, q)
	}

	if want, ok := knownArity[name]; ok && len(g.Qubits) != want {
		return Gate{}, fmt.Errorf("%w: %s expects %d operands, got %d", ErrBadStatement, name, want, len(g.Qubits))
	}
	return g, nil
}

func parseOperandIndex(reg, index, qregName string, qubits int) (int, error) {
	if reg != qregName {
		return 0, fmt.Errorf("%w: unknown register %q", ErrBadOperand, reg)
	}
	q, err := strconv.Atoi(index)
	if err != nil || q < 0 || q >= qubits {
		return 0, fmt.Errorf("%w: index %s out of range", ErrBadOperand, index)
	}
	return q, nil
}

// parseParam evaluates a numeric literal or a simple pi expression
// (pi, -pi, pi/2, 2*pi and the like). Full expression parsing is out of
// scope; these forms cover what qelib emitters produce in practice.
func parseParam(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	sign := 1.0
	rest := s
	if strings.HasPrefix(rest, "-") {
		sign = -1.0
		rest = strings.TrimSpace(rest[1:])
	}

	switch {
	case rest == "pi":
		return sign * math.Pi, nil
	case strings.HasPrefix(rest, "pi/"):
		d, err := strconv.ParseFloat(rest[len("pi/"):], 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadParameter, s)
		}
		return sign * math.Pi / d, nil
	case strings.HasSuffix(rest, "*pi"):
		f, err := strconv.ParseFloat(rest[:len(rest)-len("*pi")], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadParameter, s)
		}
		return sign * f * math.Pi, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadParameter, s)
}

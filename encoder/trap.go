package encoder

import "github.com/cs6461/ttm/parser"

// TrapCodeMax is the largest defined TRAP service code (spec.md §4.I
// "TRAP services": codes 0-3 are defined; higher codes fault at
// execution time, but the encoder accepts the full 4-bit field).
const TrapCodeMax = 15

// encodeTrap assembles the Trap format: opcode(6) unused(6) CODE(4)
// (spec.md §4.H "Trap format"). The sole operand is the trap code.
func (e *Encoder) encodeTrap(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)

	if len(line.Operands) != 1 {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, 1, len(line.Operands))
	}

	trapCode, err := e.parseField(line.Operands[0], "trapcode", 0, TrapCodeMax, pos)
	if err != nil {
		return 0, err
	}

	return uint16(code)<<OpcodeShift | uint16(trapCode), nil
}

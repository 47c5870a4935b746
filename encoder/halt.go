package encoder

import "github.com/cs6461/ttm/parser"

// encodeHalt assembles the Halt format (HLT): opcode(6) unused(10)
// (spec.md §4.H "Halt format"). HLT takes no operands.
func (e *Encoder) encodeHalt(line *parser.Line, code uint8) (uint16, error) {
	if len(line.Operands) != 0 {
		return 0, parser.OperandCountMismatch(e.pos(line), line.Opcode, 0, len(line.Operands))
	}
	return uint16(code) << OpcodeShift, nil
}

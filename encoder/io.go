package encoder

import "github.com/cs6461/ttm/parser"

// encodeIO assembles the I/O format (IN/OUT/CHK): opcode(6) R(2)
// unused(3) DEVID(5) (spec.md §4.H "I/O format"). Operands are
// "r, device".
func (e *Encoder) encodeIO(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)

	if len(line.Operands) != 2 {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, 2, len(line.Operands))
	}

	r, err := e.parseField(line.Operands[0], "r", 0, RegisterMax, pos)
	if err != nil {
		return 0, err
	}
	device, err := e.parseField(line.Operands[1], "device", 0, AddrMax, pos)
	if err != nil {
		return 0, err
	}

	return uint16(code)<<OpcodeShift | uint16(r)<<RShift | uint16(device), nil
}

package encoder

import "github.com/cs6461/ttm/parser"

// encodeIndexMemory assembles the Index-memory format (LDX/STX): opcode(6)
// unused(2) IX(2) I(1) ADDR(5) (spec.md §4.H "Index-memory format").
// Operands are "ix, addr[, I]"; ix must name one of IXR1..IXR3 (0, "no
// indexing", is not a valid target for LDX/STX).
func (e *Encoder) encodeIndexMemory(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)
	operands, indirect := detectIndirect(line.Operands)

	if len(operands) != 2 {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, 2, len(operands))
	}

	ix, err := e.parseField(operands[0], "ix", 1, RegisterMax, pos)
	if err != nil {
		return 0, err
	}
	addr, err := e.parseField(operands[1], "addr", 0, AddrMax, pos)
	if err != nil {
		return 0, err
	}

	word := uint16(code)<<OpcodeShift | uint16(ix)<<IXShift | uint16(addr)
	if indirect {
		word |= 1 << IndirectBit
	}
	return word, nil
}

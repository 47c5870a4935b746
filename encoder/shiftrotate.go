package encoder

import "github.com/cs6461/ttm/parser"

// ShiftCountMax is the largest encodable shift/rotate count (spec.md
// §4.H "Shift/rotate format": a 4-bit count field).
const ShiftCountMax = 15

// encodeShiftRotate assembles the Shift/rotate format (SRC/RRC): opcode(6)
// R(2) A/L(1) L/R(1) unused(2) Count(4) (spec.md §4.H "Shift/rotate
// format"). Operands are "r, count, al, lr" where al and lr are each 0
// or 1 (al: 1=arithmetic, 0=logical; lr: 1=left, 0=right).
func (e *Encoder) encodeShiftRotate(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)

	if len(line.Operands) != 4 {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, 4, len(line.Operands))
	}

	r, err := e.parseField(line.Operands[0], "r", 0, RegisterMax, pos)
	if err != nil {
		return 0, err
	}
	count, err := e.parseField(line.Operands[1], "count", 0, ShiftCountMax, pos)
	if err != nil {
		return 0, err
	}
	al, err := e.parseField(line.Operands[2], "al", 0, 1, pos)
	if err != nil {
		return 0, err
	}
	lr, err := e.parseField(line.Operands[3], "lr", 0, 1, pos)
	if err != nil {
		return 0, err
	}

	word := uint16(code)<<OpcodeShift | uint16(r)<<RShift | uint16(count)
	if al == 1 {
		word |= 1 << ALShift
	}
	if lr == 1 {
		word |= 1 << LRShift
	}
	return word, nil
}

package encoder

import "github.com/cs6461/ttm/parser"

// encodeImmediate assembles the Immediate format (AIR/SIR/RFS): opcode(6)
// R(2) unused(3) IMM(5) (spec.md §4.H "Immediate format"). AIR and SIR
// take "r, imm"; RFS takes just "imm" and always encodes R=0.
func (e *Encoder) encodeImmediate(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)

	hasR := line.Opcode != "RFS"
	want := 2
	if !hasR {
		want = 1
	}
	if len(line.Operands) != want {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, want, len(line.Operands))
	}

	var r int
	idx := 0
	if hasR {
		var err error
		r, err = e.parseField(line.Operands[0], "r", 0, RegisterMax, pos)
		if err != nil {
			return 0, err
		}
		idx = 1
	}

	imm, err := e.parseField(line.Operands[idx], "imm", 0, AddrMax, pos)
	if err != nil {
		return 0, err
	}

	return uint16(code)<<OpcodeShift | uint16(r)<<RShift | uint16(imm), nil
}

package encoder

import "github.com/cs6461/ttm/parser"

// encodeRegReg assembles the Register-register format (ADD/SUB/MLT/DVD/
// TRR/AND/ORR/NOT): opcode(6) Rx(2) Ry(2) unused(6) (spec.md §4.H
// "Register-register format"). NOT is unary and takes just "rx",
// encoding Ry=0.
func (e *Encoder) encodeRegReg(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)

	unary := line.Opcode == "NOT"
	want := 2
	if unary {
		want = 1
	}
	if len(line.Operands) != want {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, want, len(line.Operands))
	}

	rx, err := e.parseField(line.Operands[0], "rx", 0, RegisterMax, pos)
	if err != nil {
		return 0, err
	}

	var ry int
	if !unary {
		ry, err = e.parseField(line.Operands[1], "ry", 0, RegisterMax, pos)
		if err != nil {
			return 0, err
		}
	}

	return uint16(code)<<OpcodeShift | uint16(rx)<<RShift | uint16(ry)<<IXShift, nil
}

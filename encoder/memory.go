package encoder

import "github.com/cs6461/ttm/parser"

// encodeMemory assembles the Memory format (LDR/STR/LDA/AMR/SMR/JZ/JNE/
// JCC/JGE/SOB, and the register-less JMA/JSR): opcode(6) R(2) IX(2) I(1)
// ADDR(5) (spec.md §4.H "Memory format").
//
// Every Memory-format mnemonic takes three operands, "r, ix, addr[, I]"
// (spec.md §8 Scenario 2's "JMA 0,0,END"). JMA and JSR still parse and
// range-check the leading token but discard its value: R is always
// forced to 0 for those two mnemonics.
func (e *Encoder) encodeMemory(line *parser.Line, code uint8) (uint16, error) {
	pos := e.pos(line)
	operands, indirect := detectIndirect(line.Operands)

	const want = 3
	if len(operands) != want {
		return 0, parser.OperandCountMismatch(pos, line.Opcode, want, len(operands))
	}

	rField, err := e.parseField(operands[0], "r", 0, RegisterMax, pos)
	if err != nil {
		return 0, err
	}
	r := 0
	if mnemonicHasRegister(line.Opcode) {
		r = rField
	}

	ix, err := e.parseField(operands[1], "ix", 0, RegisterMax, pos)
	if err != nil {
		return 0, err
	}
	addr, err := e.parseField(operands[2], "addr", 0, AddrMax, pos)
	if err != nil {
		return 0, err
	}

	word := uint16(code)<<OpcodeShift | uint16(r)<<RShift | uint16(ix)<<IXShift | uint16(addr)
	if indirect {
		word |= 1 << IndirectBit
	}
	return word, nil
}

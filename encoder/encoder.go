package encoder

import (
	"github.com/cs6461/ttm/parser"
)

// Encoder turns one tokenized instruction line into its 16-bit word
// (spec.md §4.C). It holds a reference to the symbol table built during
// pass 1 so address operands that are labels resolve against it.
type Encoder struct {
	Symbols  *parser.SymbolTable
	Filename string
}

// NewEncoder creates an Encoder bound to symbols.
func NewEncoder(symbols *parser.SymbolTable, filename string) *Encoder {
	return &Encoder{Symbols: symbols, Filename: filename}
}

func (e *Encoder) pos(line *parser.Line) parser.Position {
	return parser.Position{Filename: e.Filename, Line: line.LineNo}
}

// EncodeInstruction dispatches line (whose Opcode field must be set) to
// its format-specific encoder and returns the assembled 16-bit word.
func (e *Encoder) EncodeInstruction(line *parser.Line) (uint16, error) {
	code, format, ok := Lookup(line.Opcode)
	if !ok {
		return 0, parser.UnknownOpcode(e.pos(line), line.Opcode)
	}

	switch format {
	case FormatMemory:
		return e.encodeMemory(line, code)
	case FormatIndexMemory:
		return e.encodeIndexMemory(line, code)
	case FormatImmediate:
		return e.encodeImmediate(line, code)
	case FormatRegReg:
		return e.encodeRegReg(line, code)
	case FormatShiftRotate:
		return e.encodeShiftRotate(line, code)
	case FormatIO:
		return e.encodeIO(line, code)
	case FormatTrap:
		return e.encodeTrap(line, code)
	case FormatHalt:
		return e.encodeHalt(line, code)
	default:
		return 0, parser.UnknownOpcode(e.pos(line), line.Opcode)
	}
}

// EncodeData resolves a DATA directive's single operand (integer or
// label) against the symbol table and masks it to 16 bits (spec.md
// §4.D pass 2).
func (e *Encoder) EncodeData(line *parser.Line) (uint16, error) {
	if len(line.Operands) != 1 {
		return 0, parser.OperandCountMismatch(e.pos(line), "DATA", 1, len(line.Operands))
	}
	v, err := e.resolveValue(line.Operands[0], e.pos(line))
	if err != nil {
		return 0, err
	}
	return uint16(v) & 0xFFFF, nil
}

// mnemonicHasRegister reports whether mnemonic's Memory-format syntax
// carries an explicit destination/test register operand, as opposed to
// JMA/JSR whose R field is always 0 (spec.md §4.H).
func mnemonicHasRegister(mnemonic string) bool {
	switch mnemonic {
	case "JMA", "JSR":
		return false
	default:
		return true
	}
}

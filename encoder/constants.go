package encoder

// Format is the tagged instruction-shape variant dispatched on by the
// encoder (spec.md §4.C, §9 "Polymorphism"). Each mnemonic belongs to
// exactly one Format, which determines which operand fields are valid
// and how they occupy the 16-bit word.
type Format int

const (
	FormatMemory Format = iota
	FormatIndexMemory
	FormatImmediate
	FormatRegReg
	FormatShiftRotate
	FormatIO
	FormatTrap
	FormatHalt
)

// Bit widths shared by encoder and vm (spec.md §4.C).
const (
	OpcodeBits  = 6
	RegisterMax = 3  // GPR/IXR/CC index field is 2 bits: 0..3
	AddrBits    = 5  // literal address/immediate/device field
	AddrMax     = 31 // 2^AddrBits - 1

	OpcodeShift  = 10
	RShift       = 8
	IXShift      = 6
	IndirectBit  = 5
	ALShift      = 7 // shift/rotate A/L bit
	LRShift      = 6 // shift/rotate L/R bit
)

// opcodeInfo binds a mnemonic to its numeric opcode and its Format.
type opcodeInfo struct {
	Code   uint8
	Format Format
}

// opcodeTable is the single canonical numbering shared by the encoder and
// the simulator (spec.md §4.C "Opcode table"; the Open Question on which
// of the two historical numberings to use is resolved here — see
// DESIGN.md). Mnemonics are grouped by Format, assigned ascending codes
// starting at 0. No other file in this module may hardcode an opcode
// number; Lookup, FormatForCode and MnemonicForCode all read this table.
var opcodeTable = map[string]opcodeInfo{
	"HLT": {0, FormatHalt},

	"LDR": {1, FormatMemory},
	"STR": {2, FormatMemory},
	"LDA": {3, FormatMemory},
	"AMR": {4, FormatMemory},
	"SMR": {5, FormatMemory},
	"JZ":  {6, FormatMemory},
	"JNE": {7, FormatMemory},
	"JCC": {8, FormatMemory},
	"JMA": {9, FormatMemory},
	"JSR": {10, FormatMemory},
	"SOB": {11, FormatMemory},
	"JGE": {12, FormatMemory},

	"LDX": {13, FormatIndexMemory},
	"STX": {14, FormatIndexMemory},

	"AIR": {15, FormatImmediate},
	"SIR": {16, FormatImmediate},
	"RFS": {17, FormatImmediate},

	"ADD": {18, FormatRegReg},
	"SUB": {19, FormatRegReg},
	"MLT": {20, FormatRegReg},
	"DVD": {21, FormatRegReg},
	"TRR": {22, FormatRegReg},
	"AND": {23, FormatRegReg},
	"ORR": {24, FormatRegReg},
	"NOT": {25, FormatRegReg},

	"SRC": {26, FormatShiftRotate},
	"RRC": {27, FormatShiftRotate},

	"IN":  {28, FormatIO},
	"OUT": {29, FormatIO},
	"CHK": {30, FormatIO},

	"TRAP": {31, FormatTrap},
}

// codeToMnemonic is the inverse of opcodeTable, built once at init time so
// the simulator can print the mnemonic for a fetched word without
// duplicating the table.
var codeToMnemonic = func() map[uint8]string {
	m := make(map[uint8]string, len(opcodeTable))
	for mnemonic, info := range opcodeTable {
		m[info.Code] = mnemonic
	}
	return m
}()

// codeToFormat is the inverse mapping from opcode number to Format, so
// the simulator can dispatch a fetched word without re-deriving the
// mnemonic first.
var codeToFormat = func() map[uint8]Format {
	m := make(map[uint8]Format, len(opcodeTable))
	for _, info := range opcodeTable {
		m[info.Code] = info.Format
	}
	return m
}()

// FormatForCode returns the Format a fetched opcode number belongs to,
// or ok=false if no mnemonic occupies that code (an illegal-opcode
// fault, spec.md §7).
func FormatForCode(code uint8) (format Format, ok bool) {
	format, ok = codeToFormat[code]
	return format, ok
}

// Lookup returns the opcode number and Format for mnemonic (already
// upper-cased by the tokenizer), or ok=false if it is not recognized.
func Lookup(mnemonic string) (code uint8, format Format, ok bool) {
	info, found := opcodeTable[mnemonic]
	if !found {
		return 0, 0, false
	}
	return info.Code, info.Format, true
}

// MnemonicForCode returns the mnemonic assigned to code, or "" if no
// mnemonic occupies it (an illegal-opcode fault, spec.md §7).
func MnemonicForCode(code uint8) (string, bool) {
	m, ok := codeToMnemonic[code]
	return m, ok
}

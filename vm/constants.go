package vm

// Architectural limits (spec.md §2 "Address space", §3 "Data model",
// §4.E "Machine fault register"). The machine addresses exactly
// MemorySize words; the low ReservedWords of that space trip a fault
// on any access. RegisterMask is the 12-bit register width of PC/MAR
// and of effective addresses; it is wider than the valid address range
// (0..MemorySize-1), so a value can pass RegisterMask and still fault
// the MemorySize bounds check.
const (
	MemorySize    = 2048
	ReservedWords = 6
	RegisterMask  = 0x0FFF // 12-bit register width, masked on assignment

	CacheLines = 16
)

// MFR fault codes (spec.md §4.E "Machine fault register"). Exactly one
// bit is set per fault; they are not combined.
const (
	FaultReservedMemory uint8 = 1 << iota // access to address 0..ReservedWords-1
	FaultIllegalTrap                      // TRAP code with no defined service
	FaultIllegalOpcode                    // fetched word's opcode is not in the table
	FaultBeyondBounds                     // effective address outside 0..MemorySize-1
)

// CC condition-code bits (spec.md §4.B "Condition code register"). CC is
// a 4-bit register; each arithmetic/shift instruction sets at most the
// bits it defines and leaves the others unchanged.
const (
	CCOverflow uint8 = 1 << iota
	CCUnderflow
	CCDivZero
	CCEqualOrNot
)

// GPR/IXR index bounds (spec.md §4.A "Register file"). GPR is indexed
// 0..3; IXR is indexed 1..3, with 0 meaning "no indexing" wherever an
// instruction field names an index register.
const (
	GPRCount = 4
	IXRMin   = 1
	IXRMax   = 3
	NoIndex  = 0
)

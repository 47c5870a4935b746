package vm

// Memory is the machine's flat word-addressable store (spec.md §4.D
// "Memory"). It has no concept of the cache sitting in front of it;
// DirectRead/DirectWrite bypass that cache entirely and are used by the
// IPL loader and the TRAP load-file service, which must deposit words
// without disturbing cache state.
type Memory struct {
	words [MemorySize]uint16
}

// NewMemory returns a zeroed memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Reset zeroes every word.
func (m *Memory) Reset() {
	for i := range m.words {
		m.words[i] = 0
	}
}

// checkAccess reports a Fault if addr falls in the reserved low range or
// outside the address space. The bounds check takes the caller's raw,
// possibly-unmasked addr so effective-address overflow is caught before
// truncation (spec.md §4.G "Effective address computation").
func checkAccess(addr int) *Fault {
	if addr < 0 || addr >= MemorySize {
		return newFault(FaultBeyondBounds, uint16(addr&RegisterMask), "address beyond memory bounds")
	}
	if addr < ReservedWords {
		return newFault(FaultReservedMemory, uint16(addr), "access to reserved memory")
	}
	return nil
}

// DirectRead reads the word at addr, bypassing the cache. addr is taken
// as a raw (possibly unmasked) value so out-of-range addresses fault
// rather than silently wrapping.
func (m *Memory) DirectRead(addr int) (uint16, error) {
	if f := checkAccess(addr); f != nil {
		return 0, f
	}
	return m.words[addr], nil
}

// DirectWrite stores value at addr, bypassing the cache.
func (m *Memory) DirectWrite(addr int, value uint16) error {
	if f := checkAccess(addr); f != nil {
		return f
	}
	m.words[addr] = value
	return nil
}

package vm

// Machine is the single aggregate owning the register file, memory, and
// cache (spec.md §9 "Cyclic/shared ownership": cache and memory are
// conceptually back-referencing, so they are modeled as fields of one
// owner rather than as two objects holding pointers to each other).
type Machine struct {
	Registers *Registers
	Memory    *Memory
	Cache     *Cache

	Halted bool

	// LoadPath is the host file whose bytes TRAP 0 deposits into memory,
	// one character per word. It is
	// supplied out-of-band by the driver (mirroring how the physical
	// machine's load-file trap reads whatever medium is mounted, not a
	// register-addressable string) rather than passed in a register.
	LoadPath string

	keyboard []byte // bytes fed by FeedKeyboard, consumed by IN and TRAP 2
	printer  []byte // bytes written by OUT and TRAP 1, drained by PrinterOutput
}

// NewMachine returns a fresh machine with zeroed registers and memory.
func NewMachine() *Machine {
	return &Machine{
		Registers: NewRegisters(),
		Memory:    NewMemory(),
		Cache:     NewCache(),
	}
}

// Reset returns the machine to its initial state, including I/O
// buffers, but leaves LoadPath (the host file TRAP 0 reads) unchanged.
func (m *Machine) Reset() {
	m.Registers.Reset()
	m.Memory.Reset()
	m.Cache.Reset()
	m.Halted = false
	m.keyboard = nil
	m.printer = nil
}

// CachedRead performs a through-the-cache read at addr (spec.md §4.F
// "Cache": write-through, write-allocate). A hit returns the cached
// value; a miss reads memory, installs the line, and returns the memory
// value.
func (m *Machine) CachedRead(addr uint16) (uint16, error) {
	if v, hit := m.Cache.Read(addr); hit {
		return v, nil
	}
	v, err := m.Memory.DirectRead(int(addr))
	if err != nil {
		return 0, err
	}
	m.Cache.Fill(addr, v)
	return v, nil
}

// CachedWrite performs a through-the-cache write at addr: memory is
// always updated (write-through), and the cache line is installed or
// refreshed regardless of whether it was already present
// (write-allocate).
func (m *Machine) CachedWrite(addr, value uint16) error {
	if err := m.Memory.DirectWrite(int(addr), value); err != nil {
		return err
	}
	m.Cache.Fill(addr, value)
	return nil
}

// FeedKeyboard appends bytes to the keyboard input buffer consumed by
// IN (spec.md §4.M "Test harness adapter").
func (m *Machine) FeedKeyboard(data []byte) {
	m.keyboard = append(m.keyboard, data...)
}

// PrinterOutput drains and returns everything OUT and TRAP 1 have
// written since the last PrinterOutput call or Reset.
func (m *Machine) PrinterOutput() []byte {
	out := m.printer
	m.printer = nil
	return out
}

// RequestHalt sets Halted so the next Step call (and any in-progress
// Run loop) stops before executing another instruction.
func (m *Machine) RequestHalt() {
	m.Halted = true
}

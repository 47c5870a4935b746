package vm

import (
	"errors"

	"github.com/cs6461/ttm/encoder"
)

// ErrInputSuspended is returned by Step when an IN instruction finds the
// keyboard buffer empty, or a TRAP 2 finds no complete word buffered
// (spec.md §4.M "Test harness adapter"). PC is left pointing at the
// suspended instruction so a later Step, after FeedKeyboard supplies
// more input, retries it.
var ErrInputSuspended = errors.New("input suspended: keyboard buffer empty")

const opcodeMask = (1 << encoder.OpcodeBits) - 1

// decoded holds every field a fetched word might carry, regardless of
// its format; each exec* method reads only the fields its format
// defines.
type decoded struct {
	mnemonic  string
	opcode    uint8
	r         int
	rx, ry    int
	ix        int
	indirect  bool
	addr      uint16
	imm       int
	al, lr    bool
	count     int
	device    int
	trapCode  int
}

func decode(word uint16, opcode uint8, mnemonic string) decoded {
	return decoded{
		mnemonic: mnemonic,
		opcode:   opcode,
		r:        int(word>>encoder.RShift) & encoder.RegisterMax,
		rx:       int(word>>encoder.RShift) & encoder.RegisterMax,
		ry:       int(word>>encoder.IXShift) & encoder.RegisterMax,
		ix:       int(word>>encoder.IXShift) & encoder.RegisterMax,
		indirect: word&(1<<encoder.IndirectBit) != 0,
		addr:     word & uint16(encoder.AddrMax),
		imm:      int(word & uint16(encoder.AddrMax)),
		al:       word&(1<<encoder.ALShift) != 0,
		lr:       word&(1<<encoder.LRShift) != 0,
		count:    int(word & 0xF),
		device:   int(word & uint16(encoder.AddrMax)),
		trapCode: int(word & 0xF),
	}
}

// Step fetches, decodes, and executes exactly one instruction. It
// returns ErrInputSuspended without consuming the instruction if IN or
// TRAP 2 found no input ready; any other non-nil error is a *Fault and the
// machine is left halted.
func (m *Machine) Step() error {
	if m.Halted {
		return nil
	}

	fetchAddr := m.Registers.PC
	word, err := m.CachedRead(fetchAddr)
	if err != nil {
		m.fault(err)
		return err
	}
	m.Registers.MAR = fetchAddr
	m.Registers.MBR = word
	m.Registers.IR = word

	opcode := uint8(word>>encoder.OpcodeShift) & opcodeMask
	format, ok := encoder.FormatForCode(opcode)
	if !ok {
		f := newFault(FaultIllegalOpcode, fetchAddr, "fetched opcode is not assigned")
		m.fault(f)
		return f
	}
	mnemonic, _ := encoder.MnemonicForCode(opcode)
	d := decode(word, opcode, mnemonic)

	m.Registers.SetPC(fetchAddr + 1)
	m.Registers.ClearFault()

	var execErr error
	switch format {
	case encoder.FormatMemory:
		execErr = m.execMemory(d)
	case encoder.FormatIndexMemory:
		execErr = m.execIndexMemory(d)
	case encoder.FormatImmediate:
		execErr = m.execImmediate(d)
	case encoder.FormatRegReg:
		execErr = m.execRegReg(d)
	case encoder.FormatShiftRotate:
		execErr = m.execShiftRotate(d)
	case encoder.FormatIO:
		execErr = m.execIO(d)
	case encoder.FormatTrap:
		execErr = m.execTrap(d)
	case encoder.FormatHalt:
		m.Halted = true
	}

	if execErr == ErrInputSuspended {
		m.Registers.SetPC(fetchAddr)
		return ErrInputSuspended
	}
	if execErr != nil {
		m.fault(execErr)
		return execErr
	}
	return nil
}

// fault records err in MFR (if it is a *Fault) and halts the machine.
func (m *Machine) fault(err error) {
	m.Halted = true
	if f, ok := err.(*Fault); ok {
		m.Registers.SetFault(f.Code)
	}
}

// Run steps the machine until it halts, suspends on input, faults, or
// maxCycles instructions have executed (0 means unlimited). It returns
// ErrInputSuspended, a *Fault, or nil on a clean halt/cycle exhaustion.
func (m *Machine) Run(maxCycles int) error {
	for i := 0; maxCycles == 0 || i < maxCycles; i++ {
		if m.Halted {
			return nil
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

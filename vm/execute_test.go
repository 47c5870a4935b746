package vm_test

import (
	"testing"

	"github.com/cs6461/ttm/encoder"
	"github.com/cs6461/ttm/parser"
	"github.com/cs6461/ttm/vm"
)

func asm(t *testing.T, enc *encoder.Encoder, src string) uint16 {
	t.Helper()
	line, err := parser.Tokenize(src, 1, "test.asm")
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	word, err := enc.EncodeInstruction(line)
	if err != nil {
		t.Fatalf("EncodeInstruction(%q): %v", src, err)
	}
	return word
}

func load(t *testing.T, m *vm.Machine, addr uint16, word uint16) {
	t.Helper()
	if err := m.Memory.DirectWrite(int(addr), word); err != nil {
		t.Fatalf("DirectWrite(%d): %v", addr, err)
	}
}

func TestStepLoadAndStore(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "LDA 0,0,15"))
	load(t, m, vm.ReservedWords+1, asm(t, enc, "STR 0,0,20"))
	m.Registers.SetPC(vm.ReservedWords)

	if err := m.Step(); err != nil {
		t.Fatalf("Step (LDA): %v", err)
	}
	if m.Registers.GPR[0] != 15 {
		t.Fatalf("GPR[0] after LDA = %d, want 15", m.Registers.GPR[0])
	}

	if err := m.Step(); err != nil {
		t.Fatalf("Step (STR): %v", err)
	}
	v, err := m.Memory.DirectRead(20)
	if err != nil {
		t.Fatalf("DirectRead(20): %v", err)
	}
	if v != 15 {
		t.Errorf("memory[20] = %d, want 15", v)
	}
}

func TestStepArithmeticAndBranch(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "AIR 1,5"))
	load(t, m, vm.ReservedWords+1, asm(t, enc, "JNE 1,0,30"))
	m.Registers.SetPC(vm.ReservedWords)

	if err := m.Step(); err != nil {
		t.Fatalf("Step (AIR): %v", err)
	}
	if m.Registers.GPR[1] != 5 {
		t.Fatalf("GPR[1] = %d, want 5", m.Registers.GPR[1])
	}

	if err := m.Step(); err != nil {
		t.Fatalf("Step (JNE): %v", err)
	}
	if m.Registers.PC != 30 {
		t.Errorf("PC after taken JNE = %d, want 30", m.Registers.PC)
	}
}

func TestStepHalt(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "HLT"))
	m.Registers.SetPC(vm.ReservedWords)

	if err := m.Step(); err != nil {
		t.Fatalf("Step (HLT): %v", err)
	}
	if !m.Halted {
		t.Error("Halted = false after HLT, want true")
	}
}

func TestStepIllegalOpcodeFaults(t *testing.T) {
	m := vm.NewMachine()
	// opcode 63 is never assigned.
	load(t, m, vm.ReservedWords, uint16(63)<<encoder.OpcodeShift)
	m.Registers.SetPC(vm.ReservedWords)

	err := m.Step()
	if err == nil {
		t.Fatal("expected fault for illegal opcode, got nil")
	}
	if m.Registers.MFR != vm.FaultIllegalOpcode {
		t.Errorf("MFR = %#x, want FaultIllegalOpcode", m.Registers.MFR)
	}
	if !m.Halted {
		t.Error("Halted = false after illegal-opcode fault, want true")
	}
}

func TestStepReservedMemoryFaults(t *testing.T) {
	m := vm.NewMachine()
	m.Registers.SetPC(0)

	err := m.Step()
	if err == nil {
		t.Fatal("expected fault fetching from reserved address 0, got nil")
	}
	if m.Registers.MFR != vm.FaultReservedMemory {
		t.Errorf("MFR = %#x, want FaultReservedMemory", m.Registers.MFR)
	}
}

func TestStepInSuspendsOnEmptyKeyboard(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "IN 0,0"))
	m.Registers.SetPC(vm.ReservedWords)

	err := m.Step()
	if err != vm.ErrInputSuspended {
		t.Fatalf("Step (IN, empty keyboard) = %v, want ErrInputSuspended", err)
	}
	if m.Registers.PC != vm.ReservedWords {
		t.Errorf("PC after suspended IN = %d, want unchanged at %d", m.Registers.PC, vm.ReservedWords)
	}

	m.FeedKeyboard([]byte{65})
	if err := m.Step(); err != nil {
		t.Fatalf("Step (IN, fed keyboard): %v", err)
	}
	if m.Registers.GPR[0] != 65 {
		t.Errorf("GPR[0] after IN = %d, want 65", m.Registers.GPR[0])
	}
	if m.Registers.PC != vm.ReservedWords+1 {
		t.Errorf("PC after consumed IN = %d, want %d", m.Registers.PC, vm.ReservedWords+1)
	}
}

func TestStepIndirectAddressingDereferencesPointer(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "LDR 0,0,20,I"))
	load(t, m, 20, 30) // pointer word
	load(t, m, 30, 99) // final target
	m.Registers.SetPC(vm.ReservedWords)

	if err := m.Step(); err != nil {
		t.Fatalf("Step (LDR indirect): %v", err)
	}
	if m.Registers.GPR[0] != 99 {
		t.Errorf("GPR[0] = %d, want 99", m.Registers.GPR[0])
	}
}

func TestStepIndirectAddressingFaultsOnReservedPointer(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "LDR 0,0,20,I"))
	load(t, m, 20, 2) // pointer into the reserved range
	m.Registers.SetPC(vm.ReservedWords)

	err := m.Step()
	if err == nil {
		t.Fatal("expected fault dereferencing a reserved-memory pointer, got nil")
	}
	if m.Registers.MFR != vm.FaultReservedMemory {
		t.Errorf("MFR = %#x, want FaultReservedMemory", m.Registers.MFR)
	}
}

func TestRunStopsAtCycleLimit(t *testing.T) {
	enc := encoder.NewEncoder(parser.NewSymbolTable(), "test.asm")
	m := vm.NewMachine()

	load(t, m, vm.ReservedWords, asm(t, enc, "AIR 0,1"))
	load(t, m, vm.ReservedWords+1, asm(t, enc, "JMA 0,0,6"))
	m.Registers.SetPC(vm.ReservedWords)

	if err := m.Run(10); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.Halted {
		t.Error("Halted = true after cycle-limited Run, want false")
	}
	if m.Registers.GPR[0] == 0 {
		t.Error("GPR[0] unchanged after 10 cycles of AIR, want repeated increments")
	}
}

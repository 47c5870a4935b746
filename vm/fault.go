package vm

import "fmt"

// Fault reports a machine fault: an access or decode error that sets the
// machine fault register and halts execution (spec.md §4.E "Machine
// fault register", §7 "Fault handling"). Unlike a driver-side Go error
// it is also recorded in Registers.MFR, so a caller that only inspects
// the Machine after Run returns can still diagnose it.
type Fault struct {
	Code uint8
	Addr uint16
	Desc string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("machine fault %#x at %04o: %s", f.Code, f.Addr, f.Desc)
}

func newFault(code uint8, addr uint16, desc string) *Fault {
	return &Fault{Code: code, Addr: addr, Desc: desc}
}

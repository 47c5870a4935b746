package vm

// execShiftRotate executes SRC and RRC (spec.md §4.H "Shift/rotate
// format"). al selects arithmetic (sign-preserving) vs logical shifts
// for SRC; lr selects left vs right. RRC always rotates logically.
func (m *Machine) execShiftRotate(d decoded) error {
	count := uint(d.count) % 16
	v := m.Registers.GPR[d.r]

	switch d.mnemonic {
	case "SRC":
		if d.lr {
			if d.al {
				m.Registers.GPR[d.r] = uint16(int16(v) << count)
			} else {
				m.Registers.GPR[d.r] = v << count
			}
		} else {
			if d.al {
				m.Registers.GPR[d.r] = uint16(int16(v) >> count)
			} else {
				m.Registers.GPR[d.r] = v >> count
			}
		}

	case "RRC":
		if count == 0 {
			return nil
		}
		if d.lr {
			m.Registers.GPR[d.r] = (v << count) | (v >> (16 - count))
		} else {
			m.Registers.GPR[d.r] = (v >> count) | (v << (16 - count))
		}
	}
	return nil
}

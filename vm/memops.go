package vm

// execMemory executes one Memory-format instruction (spec.md §4.H
// "Memory format"): LDR, STR, LDA, AMR, SMR, the conditional/
// unconditional jumps, SOB, JSR.
func (m *Machine) execMemory(d decoded) error {
	ea, err := m.EffectiveAddress(d.ix, d.indirect, d.addr)
	if err != nil {
		return err
	}

	switch d.mnemonic {
	case "LDR":
		v, err := m.CachedRead(ea)
		if err != nil {
			return err
		}
		m.Registers.GPR[d.r] = v

	case "STR":
		return m.CachedWrite(ea, m.Registers.GPR[d.r])

	case "LDA":
		m.Registers.GPR[d.r] = ea

	case "AMR":
		v, err := m.CachedRead(ea)
		if err != nil {
			return err
		}
		m.Registers.GPR[d.r] = m.addSigned(m.Registers.GPR[d.r], int32(int16(v)))

	case "SMR":
		v, err := m.CachedRead(ea)
		if err != nil {
			return err
		}
		m.Registers.GPR[d.r] = m.addSigned(m.Registers.GPR[d.r], -int32(int16(v)))

	case "JZ":
		if m.Registers.GPR[d.r] == 0 {
			m.Registers.SetPC(ea)
		}

	case "JNE":
		if m.Registers.GPR[d.r] != 0 {
			m.Registers.SetPC(ea)
		}

	case "JCC":
		if ccBitForField(d.r)&m.Registers.CC != 0 {
			m.Registers.SetPC(ea)
		}

	case "JGE":
		if int16(m.Registers.GPR[d.r]) >= 0 {
			m.Registers.SetPC(ea)
		}

	case "JMA":
		m.Registers.SetPC(ea)

	case "JSR":
		m.Registers.GPR[3] = m.Registers.PC
		m.Registers.SetPC(ea)

	case "SOB":
		m.Registers.GPR[d.r]--
		if int16(m.Registers.GPR[d.r]) > 0 {
			m.Registers.SetPC(ea)
		}
	}
	return nil
}

// execIndexMemory executes LDX/STX (spec.md §4.H "Index-memory
// format").
func (m *Machine) execIndexMemory(d decoded) error {
	ea, err := m.EffectiveAddress(0, d.indirect, d.addr)
	if err != nil {
		return err
	}

	switch d.mnemonic {
	case "LDX":
		v, err := m.CachedRead(ea)
		if err != nil {
			return err
		}
		m.Registers.SetIXR(d.ix, v)
	case "STX":
		return m.CachedWrite(ea, m.Registers.GetIXR(d.ix))
	}
	return nil
}

// ccBitForField maps a JCC r field (0..3) to the CC bit it tests. The
// ordering follows the CC bit declaration order in constants.go.
func ccBitForField(field int) uint8 {
	bits := [4]uint8{CCOverflow, CCUnderflow, CCDivZero, CCEqualOrNot}
	if field < 0 || field > 3 {
		return 0
	}
	return bits[field]
}

// addSigned adds delta to base as 16-bit two's-complement values,
// setting CCOverflow/CCUnderflow on signed overflow (spec.md §4.B
// "Condition code register").
func (m *Machine) addSigned(base uint16, delta int32) uint16 {
	result := int32(int16(base)) + delta
	switch {
	case result > 32767:
		m.Registers.CC |= CCOverflow
	case result < -32768:
		m.Registers.CC |= CCUnderflow
	}
	return uint16(int16(result))
}

package vm

// EffectiveAddress computes the effective address for a Memory or
// Index-memory format instruction (spec.md §4.G "Effective address
// computation"). ix is the index-register field (0 means no indexing);
// addr is the instruction's literal address field. The bounds/reserved
// check runs on the raw, unmasked sum of addr and the index register so
// an overflow past the address space faults instead of silently
// wrapping; only a passing sum is then masked to 12 bits.
//
// When indirect is set, the masked address is itself read as a pointer
// word; the pointer is subject to the same reserved/bounds check before
// its low 12 bits become the final effective address (spec.md §9: the
// reserved-memory rule applies to every effective address, including
// the indirect dereference step).
func (m *Machine) EffectiveAddress(ix int, indirect bool, addr uint16) (uint16, error) {
	raw := int(addr) + int(m.Registers.GetIXR(ix))
	if f := checkAccess(raw); f != nil {
		return 0, f
	}
	eff := uint16(raw) & RegisterMask

	if !indirect {
		return eff, nil
	}

	pointer, err := m.CachedRead(eff)
	if err != nil {
		return 0, err
	}
	if f := checkAccess(int(pointer)); f != nil {
		return 0, f
	}
	return pointer & RegisterMask, nil
}

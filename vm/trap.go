package vm

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Defined TRAP service codes (spec.md §4.I "TRAP services"). Any other
// code faults with FaultIllegalTrap.
const (
	TrapLoadFile            = 0
	TrapPrintMemory         = 1
	TrapReadWord            = 2
	TrapParagraphWordSearch = 3
)

// execTrap dispatches a TRAP instruction to its service routine.
func (m *Machine) execTrap(d decoded) error {
	switch d.trapCode {
	case TrapLoadFile:
		return m.trapLoadFile()
	case TrapPrintMemory:
		return m.trapPrintMemory()
	case TrapReadWord:
		return m.trapReadWord()
	case TrapParagraphWordSearch:
		return m.trapParagraphWordSearch()
	default:
		return newFault(FaultIllegalTrap, m.Registers.PC, "undefined TRAP service code")
	}
}

// trapLoadFile reads the file at m.LoadPath and deposits it into
// memory one character per word, starting at the address in GPR[0]
// (spec.md §4.H "TRAP 0: load-file"). GPR[1] receives the number of
// characters deposited.
func (m *Machine) trapLoadFile() error {
	dest := m.Registers.GPR[0]

	f, err := os.Open(m.LoadPath)
	if err != nil {
		return newFault(FaultIllegalTrap, m.Registers.PC, fmt.Sprintf("load-file: %v", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return newFault(FaultIllegalTrap, m.Registers.PC, fmt.Sprintf("load-file: %v", err))
	}

	for i, b := range data {
		if err := m.Memory.DirectWrite(int(dest)+i, uint16(b)); err != nil {
			return err
		}
	}
	m.Registers.GPR[1] = uint16(len(data))
	return nil
}

// trapPrintMemory appends GPR[1] raw characters starting at address
// GPR[0] to the printer buffer (spec.md §4.H "TRAP 1: print-memory").
func (m *Machine) trapPrintMemory() error {
	start := m.Registers.GPR[0]
	count := m.Registers.GPR[1]

	for i := uint16(0); i < count; i++ {
		v, err := m.CachedRead(start + i)
		if err != nil {
			return err
		}
		m.printer = append(m.printer, byte(v))
	}
	return nil
}

// trapReadWord reads one whitespace-delimited word from the keyboard
// buffer into memory starting at GPR[0], one character per word
// (spec.md §4.H "TRAP 2: read-word"); GPR[1] receives the word's
// length. It suspends, rather than faulting, if no complete word
// (leading whitespace through a trailing delimiter) is yet available,
// mirroring IN's suspend-and-retry convention.
func (m *Machine) trapReadWord() error {
	i := 0
	for i < len(m.keyboard) && isSpace(m.keyboard[i]) {
		i++
	}
	start := i
	for i < len(m.keyboard) && !isSpace(m.keyboard[i]) {
		i++
	}
	if start == i || i == len(m.keyboard) {
		return ErrInputSuspended
	}

	dest := m.Registers.GPR[0]
	word := m.keyboard[start:i]
	for j, b := range word {
		if err := m.Memory.DirectWrite(int(dest)+j, uint16(b)); err != nil {
			return err
		}
	}
	m.Registers.GPR[1] = uint16(len(word))
	m.keyboard = m.keyboard[i:]
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// trapParagraphWordSearch locates a word within a paragraph (spec.md
// §4.H "TRAP 3: paragraph-word-search"). The paragraph is GPR[1]
// characters starting at GPR[0]; the target word is GPR[3] characters
// starting at GPR[2]. Sentences split on '.', '!', '?'; words split on
// any run of non-alphanumeric characters; matching is case-sensitive.
// On a match, GPR[0]/GPR[1] receive the 1-based sentence number and
// the 1-based word number within that sentence. On no match, GPR[0]
// is set to 0.
func (m *Machine) trapParagraphWordSearch() error {
	paragraph, err := m.readChars(m.Registers.GPR[0], m.Registers.GPR[1])
	if err != nil {
		return err
	}
	target, err := m.readChars(m.Registers.GPR[2], m.Registers.GPR[3])
	if err != nil {
		return err
	}

	sentences := strings.FieldsFunc(paragraph, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	for si, sentence := range sentences {
		words := strings.FieldsFunc(sentence, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for wi, word := range words {
			if word == target {
				m.Registers.GPR[0] = uint16(si + 1)
				m.Registers.GPR[1] = uint16(wi + 1)
				return nil
			}
		}
	}
	m.Registers.GPR[0] = 0
	return nil
}

// readChars reads count memory words starting at addr and returns
// their low bytes as a string (the one-character-per-word convention
// shared by the TRAP services and IN/OUT).
func (m *Machine) readChars(addr, count uint16) (string, error) {
	buf := make([]byte, count)
	for i := uint16(0); i < count; i++ {
		v, err := m.CachedRead(addr + i)
		if err != nil {
			return "", err
		}
		buf[i] = byte(v)
	}
	return string(buf), nil
}

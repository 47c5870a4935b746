// Package tools holds standalone diagnostics built on top of parser and
// encoder that are not part of the assembler's own two passes.
package tools

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cs6461/ttm/encoder"
	"github.com/cs6461/ttm/parser"
)

// ReferenceType indicates how a symbol is used on one source line.
type ReferenceType int

const (
	RefDefinition ReferenceType = iota // label defined here
	RefBranch                         // target of JZ/JNE/JCC/JMA/JSR/SOB/JGE
	RefLoad                            // address operand of LDR/LDX
	RefStore                           // address operand of STR/STX
	RefData                            // DATA directive naming this symbol
)

func (r ReferenceType) String() string {
	switch r {
	case RefDefinition:
		return "definition"
	case RefBranch:
		return "branch"
	case RefLoad:
		return "load"
	case RefStore:
		return "store"
	case RefData:
		return "data"
	default:
		return "unknown"
	}
}

// Reference is a single use (or definition) of a symbol on one line.
type Reference struct {
	Type   ReferenceType
	Line   int
	Source string
}

// Symbol collects every definition and reference to one label across a
// source file.
type Symbol struct {
	Name       string
	Definition *Reference
	References []*Reference
	IsBranch   bool // true if ever used as a branch/call target
}

var branchMnemonics = map[string]bool{
	"JZ": true, "JNE": true, "JCC": true, "JMA": true,
	"JSR": true, "SOB": true, "JGE": true,
}

var loadMnemonics = map[string]bool{"LDR": true, "LDX": true}
var storeMnemonics = map[string]bool{"STR": true, "STX": true}

// Generator walks tokenized lines once, collecting every label
// definition and every reference to a known symbol.
type Generator struct {
	symbols map[string]*Symbol
}

// NewGenerator returns an empty Generator.
func NewGenerator() *Generator {
	return &Generator{symbols: make(map[string]*Symbol)}
}

// Generate walks already-tokenized lines (the same *parser.Line values
// the assembler produces) and returns the cross-reference table.
func Generate(lines []*parser.Line, filename string) (map[string]*Symbol, error) {
	g := NewGenerator()
	if err := g.collectDefinitions(lines, filename); err != nil {
		return nil, err
	}
	g.collectReferences(lines)
	return g.symbols, nil
}

func (g *Generator) get(name string) *Symbol {
	sym, ok := g.symbols[name]
	if !ok {
		sym = &Symbol{Name: name}
		g.symbols[name] = sym
	}
	return sym
}

func (g *Generator) collectDefinitions(lines []*parser.Line, filename string) error {
	for _, line := range lines {
		if line.Label == "" {
			continue
		}
		sym := g.get(line.Label)
		if sym.Definition != nil {
			return parser.DuplicateLabel(parser.Position{Filename: filename, Line: line.LineNo}, line.Label)
		}
		sym.Definition = &Reference{Type: RefDefinition, Line: line.LineNo, Source: line.Raw}
	}
	return nil
}

func (g *Generator) collectReferences(lines []*parser.Line) {
	for _, line := range lines {
		if line.Directive == parser.DirectiveDATA {
			for _, operand := range line.Operands {
				if _, err := strconv.Atoi(operand); err != nil {
					g.addReference(operand, RefData, line)
				}
			}
			continue
		}
		if line.Opcode == "" {
			continue
		}

		mnemonic := strings.ToUpper(line.Opcode)
		if _, _, ok := encoder.Lookup(mnemonic); !ok {
			continue
		}

		refType, ok := classify(mnemonic)
		if !ok {
			continue
		}
		if len(line.Operands) == 0 {
			continue
		}
		// the address/target operand is the last operand in this
		// instruction set's memory and index-memory formats, once a
		// trailing indirect marker ("I" or "1") is dropped.
		operands := line.Operands
		if n := len(operands); n > 1 && (strings.EqualFold(operands[n-1], "I") || operands[n-1] == "1") {
			operands = operands[:n-1]
		}
		target := operands[len(operands)-1]
		if _, err := strconv.Atoi(target); err == nil {
			continue
		}
		g.addReference(target, refType, line)
	}
}

func classify(mnemonic string) (ReferenceType, bool) {
	switch {
	case branchMnemonics[mnemonic]:
		return RefBranch, true
	case loadMnemonics[mnemonic]:
		return RefLoad, true
	case storeMnemonics[mnemonic]:
		return RefStore, true
	default:
		return 0, false
	}
}

func (g *Generator) addReference(name string, refType ReferenceType, line *parser.Line) {
	name = strings.TrimSpace(name)
	sym := g.get(name)
	if refType == RefBranch {
		sym.IsBranch = true
	}
	sym.References = append(sym.References, &Reference{Type: refType, Line: line.LineNo, Source: line.Raw})
}

// Report renders a cross-reference table as text.
type Report struct {
	symbols []*Symbol
}

// NewReport sorts symbols by name for deterministic output.
func NewReport(symbols map[string]*Symbol) *Report {
	sorted := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Report{symbols: sorted}
}

func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("=======================\n\n")

	for _, sym := range r.symbols {
		sb.WriteString(fmt.Sprintf("%-20s", sym.Name))
		switch {
		case sym.IsBranch:
			sb.WriteString(" [branch target]")
		case sym.Definition != nil:
			sb.WriteString(" [label]")
		default:
			sb.WriteString(" [undefined]")
		}
		sb.WriteString("\n")

		if sym.Definition != nil {
			sb.WriteString(fmt.Sprintf("  Defined:     line %d\n", sym.Definition.Line))
		} else {
			sb.WriteString("  Defined:     (undefined)\n")
		}

		if len(sym.References) == 0 {
			sb.WriteString("  Referenced:  (never)\n")
		} else {
			sb.WriteString(fmt.Sprintf("  Referenced:  %d time(s)\n", len(sym.References)))
			byType := make(map[ReferenceType][]int)
			for _, ref := range sym.References {
				byType[ref.Type] = append(byType[ref.Type], ref.Line)
			}
			for _, t := range []ReferenceType{RefBranch, RefLoad, RefStore, RefData} {
				linesForType := byType[t]
				if len(linesForType) == 0 {
					continue
				}
				strs := make([]string, len(linesForType))
				for i, n := range linesForType {
					strs[i] = strconv.Itoa(n)
				}
				sb.WriteString(fmt.Sprintf("    %-10s: line(s) %s\n", t.String(), strings.Join(strs, ", ")))
			}
		}
		sb.WriteString("\n")
	}

	defined, undefined, unused := 0, 0, 0
	for _, sym := range r.symbols {
		if sym.Definition != nil {
			defined++
		} else {
			undefined++
		}
		if len(sym.References) == 0 {
			unused++
		}
	}
	sb.WriteString("Summary\n")
	sb.WriteString("=======\n")
	sb.WriteString(fmt.Sprintf("Total symbols: %d\n", len(r.symbols)))
	sb.WriteString(fmt.Sprintf("Defined:       %d\n", defined))
	sb.WriteString(fmt.Sprintf("Undefined:     %d\n", undefined))
	sb.WriteString(fmt.Sprintf("Unused:        %d\n", unused))

	return sb.String()
}

// GetUndefinedSymbols returns every symbol referenced but never defined.
func GetUndefinedSymbols(symbols map[string]*Symbol) []*Symbol {
	var undefined []*Symbol
	for _, sym := range symbols {
		if sym.Definition == nil && len(sym.References) > 0 {
			undefined = append(undefined, sym)
		}
	}
	sort.Slice(undefined, func(i, j int) bool { return undefined[i].Name < undefined[j].Name })
	return undefined
}

// GetUnusedSymbols returns every symbol defined but never referenced.
func GetUnusedSymbols(symbols map[string]*Symbol) []*Symbol {
	var unused []*Symbol
	for _, sym := range symbols {
		if sym.Definition != nil && len(sym.References) == 0 {
			unused = append(unused, sym)
		}
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].Name < unused[j].Name })
	return unused
}

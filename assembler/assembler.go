// Package assembler implements the two-pass assembly driver (spec.md
// §4.D "Driver"): pass 1 walks the source to build the symbol table
// against a location-counter; pass 2 re-walks it to encode each
// instruction/DATA word and render the listing.
package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cs6461/ttm/encoder"
	"github.com/cs6461/ttm/loadimage"
	"github.com/cs6461/ttm/parser"
)

// Result is everything Assemble produces from one source file.
type Result struct {
	Symbols  *parser.SymbolTable
	Records  []loadimage.Record
	Listing  []string
	Warnings []string
}

// Driver runs the two passes for one named source file. Filename is
// used only to annotate diagnostics.
type Driver struct {
	Filename string
}

// NewDriver returns a Driver for the given source filename.
func NewDriver(filename string) *Driver {
	return &Driver{Filename: filename}
}

// Assemble reads every line of src and produces a Result, or the first
// fatal *parser.Error encountered in either pass.
func (d *Driver) Assemble(src io.Reader) (*Result, error) {
	lines, err := d.tokenizeAll(src)
	if err != nil {
		return nil, err
	}

	symbols := parser.NewSymbolTable()
	if err := d.passOne(lines, symbols); err != nil {
		return nil, err
	}

	records, listing, err := d.passTwo(lines, symbols)
	if err != nil {
		return nil, err
	}

	return &Result{Symbols: symbols, Records: records, Listing: listing}, nil
}

func (d *Driver) tokenizeAll(src io.Reader) ([]*parser.Line, error) {
	var lines []*parser.Line
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line, err := parser.Tokenize(scanner.Text(), lineNo, d.Filename)
		if err != nil {
			return nil, err
		}
		if line == nil {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", d.Filename, err)
	}
	return lines, nil
}

// passOne walks lines with a location counter, binding every label to
// its current address and advancing past every word-occupying line
// (spec.md §4.B "Symbol table").
func (d *Driver) passOne(lines []*parser.Line, symbols *parser.SymbolTable) error {
	addr := uint16(0)
	for _, line := range lines {
		pos := parser.Position{Filename: d.Filename, Line: line.LineNo}

		if line.Directive == parser.DirectiveLOC {
			v, err := locTarget(line, pos)
			if err != nil {
				return err
			}
			addr = v
		}

		if line.Label != "" {
			if err := symbols.Put(line.Label, addr, pos); err != nil {
				return err
			}
		}

		if occupiesWord(line) {
			addr++
		}
	}
	return nil
}

// passTwo re-walks lines in lockstep with passOne's location-counter
// advance, encoding each word-occupying line and rendering its listing
// entry (spec.md §4.C "Encoder", §6.3 "Listing format").
func (d *Driver) passTwo(lines []*parser.Line, symbols *parser.SymbolTable) ([]loadimage.Record, []string, error) {
	enc := encoder.NewEncoder(symbols, d.Filename)
	addr := uint16(0)

	var records []loadimage.Record
	var listing []string

	for _, line := range lines {
		pos := parser.Position{Filename: d.Filename, Line: line.LineNo}

		if line.Directive == parser.DirectiveLOC {
			v, err := locTarget(line, pos)
			if err != nil {
				return nil, nil, err
			}
			addr = v
			listing = append(listing, fmt.Sprintf("%24s  %s", "", line.Raw))
			continue
		}

		if !occupiesWord(line) {
			listing = append(listing, fmt.Sprintf("%24s  %s", "", line.Raw))
			continue
		}

		var word uint16
		var err error
		if line.Directive == parser.DirectiveDATA {
			word, err = enc.EncodeData(line)
		} else {
			word, err = enc.EncodeInstruction(line)
		}
		if err != nil {
			return nil, nil, err
		}

		records = append(records, loadimage.Record{Addr: addr, Word: word})
		listing = append(listing, fmt.Sprintf("%06o  %06o  %s", addr, word, line.Raw))
		addr++
	}

	return records, listing, nil
}

// occupiesWord reports whether line deposits one word in memory: every
// instruction and every DATA directive, but not LOC and not a
// label-only line.
func occupiesWord(line *parser.Line) bool {
	if line.Directive == parser.DirectiveLOC {
		return false
	}
	return line.Opcode != "" || line.Directive == parser.DirectiveDATA
}

// locTarget resolves a LOC directive's single literal operand. LOC only
// accepts a numeric literal, not a forward-referenced label, since pass
// 1 has not yet resolved any symbols when it is first encountered.
func locTarget(line *parser.Line, pos parser.Position) (uint16, error) {
	if len(line.Operands) != 1 {
		return 0, parser.OperandCountMismatch(pos, "LOC", 1, len(line.Operands))
	}
	v, err := strconv.Atoi(line.Operands[0])
	if err != nil {
		return 0, parser.MalformedDirective(pos, "LOC", "operand must be a numeric literal")
	}
	if v < 0 || v >= memorySize {
		return 0, parser.OperandOutOfRange(pos, "LOC", 0, memorySize-1, v)
	}
	return uint16(v), nil
}

// memorySize mirrors vm.MemorySize. It is duplicated rather than
// imported so that assembler does not depend on the simulator package.
const memorySize = 2048

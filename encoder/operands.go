package encoder

import (
	"strconv"
	"strings"

	"github.com/cs6461/ttm/parser"
)

// resolveValue parses operand as a decimal integer, falling back to a
// symbol-table lookup (spec.md §4.C "Address resolution"). Unresolved
// names fail with UndefinedSymbol.
func (e *Encoder) resolveValue(operand string, pos parser.Position) (int, error) {
	if v, err := strconv.Atoi(operand); err == nil {
		return v, nil
	}
	addr, ok := e.Symbols.Get(operand)
	if !ok {
		return 0, parser.UndefinedSymbol(pos, operand)
	}
	return int(addr), nil
}

// detectIndirect consumes a trailing "I"/"1" operand (case-insensitive)
// and reports whether the indirect bit should be set (spec.md §4.C
// "Indirect syntax"). It must run before the remaining operand shape is
// validated.
func detectIndirect(operands []string) ([]string, bool) {
	if len(operands) == 0 {
		return operands, false
	}
	last := operands[len(operands)-1]
	if strings.EqualFold(last, "I") || last == "1" {
		return operands[:len(operands)-1], true
	}
	return operands, false
}

func inRange(v, minV, maxV int) bool {
	return v >= minV && v <= maxV
}

// parseField resolves operand and checks it against [minV,maxV], failing
// with OperandOutOfRange if it doesn't fit.
func (e *Encoder) parseField(operand, fieldName string, minV, maxV int, pos parser.Position) (int, error) {
	v, err := e.resolveValue(operand, pos)
	if err != nil {
		return 0, err
	}
	if !inRange(v, minV, maxV) {
		return 0, parser.OperandOutOfRange(pos, fieldName, minV, maxV, v)
	}
	return v, nil
}

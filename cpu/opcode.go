package cpu

import (
	"fmt"
	"strings"
)

// Op is an Intcode operation, the low two decimal digits of an instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD  = Op(1)  // add
	OP_MUL  = Op(2)  // mul
	OP_IN   = Op(3)  // in
	OP_OUT  = Op(4)  // out
	OP_JT   = Op(5)  // jt
	OP_JF   = Op(6)  // jf
	OP_LT   = Op(7)  // lt
	OP_EQ   = Op(8)  // eq
	OP_ARB  = Op(9)  // arb
	OP_HALT = Op(99) // hlt
)

// opParams maps each operation to its parameter count.
var opParams = map[Op]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_IN:   1,
	OP_OUT:  1,
	OP_JT:   2,
	OP_JF:   2,
	OP_LT:   3,
	OP_EQ:   3,
	OP_ARB:  1,
	OP_HALT: 0,
}

// Valid returns true if the operation is defined.
func (op Op) Valid() bool {
	_, ok := opParams[op]
	return ok
}

// Params returns the number of parameters taken by the operation.
func (op Op) Params() int {
	return opParams[op]
}

// Length returns the instruction length in words, including the opcode.
func (op Op) Length() int64 {
	return int64(op.Params()) + 1
}

// Dest returns the index of the parameter written by the operation,
// or -1 if the operation writes no memory.
func (op Op) Dest() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 2
	case OP_IN:
		return 0
	}

	return -1
}

// Code is a single Intcode instruction word.
type Code int64

// MakeCode creates an instruction word from an operation and per-parameter modes.
func MakeCode(op Op, modes ...Mode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}

	return Code(word)
}

// Op returns the operation encoded in the instruction word.
func (code Code) Op() Op {
	return Op(code % 100)
}

// Mode returns the addressing mode of parameter n.
func (code Code) Mode(n int) Mode {
	div := int64(100)
	for range n {
		div *= 10
	}

	return Mode((int64(code) / div) % 10)
}

// Modes returns the addressing modes of every parameter of the operation.
func (code Code) Modes() (modes []Mode) {
	for n := range code.Op().Params() {
		modes = append(modes, code.Mode(n))
	}

	return
}

// Operand formats a raw operand in assembler syntax.
func Operand(mode Mode, operand int64) string {
	switch mode {
	case MODE_POSITION:
		return fmt.Sprintf("%d", operand)
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#%d", operand)
	case MODE_RELATIVE:
		return fmt.Sprintf("@%d", operand)
	}

	return fmt.Sprintf("?%d", operand)
}

// Disassemble returns the assembler text of the instruction, given its raw
// operands. The result is empty if the word is not a valid instruction.
func (code Code) Disassemble(operands []int64) (text string, ok bool) {
	op := code.Op()
	if !op.Valid() || len(operands) < op.Params() {
		return
	}

	words := []string{op.String()}
	for n, mode := range code.Modes() {
		if !mode.Valid() {
			return
		}
		words = append(words, Operand(mode, operands[n]))
	}

	text = strings.Join(words, " ")
	ok = true
	return
}

// String returns the decoded form of the instruction word.
func (code Code) String() string {
	var modes []string
	for _, mode := range code.Modes() {
		modes = append(modes, mode.String())
	}

	return strings.Join(append([]string{code.Op().String()}, modes...), ".")
}

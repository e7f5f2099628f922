package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Cpu faults
	ErrInvalidAddress     = errors.New(f("invalid address"))
	ErrMemoryLimit        = errors.New(f("address beyond memory limit"))
	ErrBadDestinationMode = errors.New(f("bad destination mode"))
	ErrModeInvalid        = errors.New(f("mode invalid"))
	ErrUnknownOpcode      = errors.New(f("unknown opcode"))

	// Loader errors
	ErrProgramEmpty = errors.New(f("program empty"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrDataMissing     = errors.New(f(".data without values"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
)

// ErrOperand tags a fault with the index of the parameter that caused it.
type ErrOperand int

func (eo ErrOperand) Error() string {
	return f("operand %d", int(eo))
}

// ErrFault is an unrecoverable execution fault of a single CPU.
type ErrFault struct {
	Pc   int64
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("fault at pc %v (%v): %v", err.Pc, err.Code.Op(), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrLoad reports a malformed token in a program image.
type ErrLoad struct {
	Index int
	Token string
	Err   error
}

func (err *ErrLoad) Error() string {
	return f("token %v '%v' %v", err.Index, err.Token, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

package cpu

import (
	"errors"
	"fmt"
)

// StepResult is the outcome of executing one instruction.
type StepResult int

//go:generate go tool stringer -linecomment -type=StepResult
const (
	STEP_ADVANCED = StepResult(0) // advanced
	STEP_PAUSED   = StepResult(1) // paused
	STEP_HALTED   = StepResult(2) // halted
	STEP_FAULTED  = StepResult(3) // faulted
)

// Cpu is the simulation context of a single Intcode machine.
type Cpu struct {
	Tracer Tracer // If set, receives every executed instruction.

	Pc     int64  // Program counter.
	Base   int64  // Relative base.
	Memory Memory // Program and data memory.
	Input  Queue  // Pending input values.
	Output Queue  // Produced output values.

	Ticks int // Executed instruction counter.

	halted bool  // Set by a halt instruction, memory growth never clears it.
	fault  error // Sticky fault, once set the CPU never runs again.
}

// NewCpu creates a CPU loaded with a copy of program, and initial inputs.
func NewCpu(program []int64, inputs ...int64) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(program),
	}
	cpu.Input.Push(inputs...)

	return
}

// Clone returns an independent deep copy of the CPU.
// The Tracer sink is shared with the copy.
func (cpu *Cpu) Clone() *Cpu {
	return &Cpu{
		Tracer: cpu.Tracer,
		Pc:     cpu.Pc,
		Base:   cpu.Base,
		Memory: cpu.Memory.Clone(),
		Input:  cpu.Input.Clone(),
		Output: cpu.Output.Clone(),
		Ticks:  cpu.Ticks,
		halted: cpu.halted,
		fault:  cpu.fault,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "base", "code", "memory", "input", "output", "fault"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%d", cpu.Pc)
		case "base":
			strval = fmt.Sprintf("%d", cpu.Base)
		case "code":
			if cpu.IsTerminated() || cpu.Pc < 0 {
				strval = "----"
			} else {
				strval = Code(cpu.Memory.Data[cpu.Pc]).String()
			}
		case "memory":
			strval = fmt.Sprintf("%d words", cpu.Memory.Len())
		case "input":
			strval = fmt.Sprintf("%v", cpu.Input.Data)
		case "output":
			strval = fmt.Sprintf("%v", cpu.Output.Data)
		case "fault":
			strval = "none"
			if cpu.fault != nil {
				strval = cpu.fault.Error()
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// SetMemory patches a memory cell, typically before running the program.
func (cpu *Cpu) SetMemory(addr int64, value int64) (err error) {
	return cpu.Memory.Write(addr, value)
}

// PushInput appends values to the input queue.
func (cpu *Cpu) PushInput(values ...int64) {
	cpu.Input.Push(values...)
}

// PopOutput removes the oldest output value.
func (cpu *Cpu) PopOutput() (value int64, ok bool) {
	return cpu.Output.Pop()
}

// OutputDrain removes and returns all output values, oldest first.
func (cpu *Cpu) OutputDrain() []int64 {
	return cpu.Output.Drain()
}

// IsTerminated returns true once the CPU has halted, or the program
// counter has reached or passed the end of memory. A paused or faulted CPU
// is not terminated.
func (cpu *Cpu) IsTerminated() bool {
	return cpu.halted || cpu.Pc >= int64(cpu.Memory.Len())
}

// Fault returns the fault that stopped the CPU, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Run steps the CPU until it pauses, halts, or faults.
func (cpu *Cpu) Run() (result StepResult, err error) {
	for {
		result, err = cpu.Step()
		if result != STEP_ADVANCED {
			return
		}
	}
}

// Step executes a single instruction.
func (cpu *Cpu) Step() (result StepResult, err error) {
	if cpu.fault != nil {
		return STEP_FAULTED, cpu.fault
	}

	if cpu.IsTerminated() {
		return STEP_HALTED, nil
	}

	pc := cpu.Pc
	var code Code

	defer func() {
		if err != nil {
			err = &ErrFault{Pc: pc, Code: code, Err: err}
			cpu.fault = err
			result = STEP_FAULTED
		}
	}()

	if pc < 0 {
		err = ErrInvalidAddress
		return
	}

	code = Code(cpu.Memory.Data[pc])
	op := code.Op()
	if !op.Valid() {
		err = ErrUnknownOpcode
		return
	}

	var event Event
	if cpu.Tracer != nil {
		event = Event{Pc: pc, Base: cpu.Base, Code: code, Operands: make([]int64, op.Params())}
		for n := range event.Operands {
			event.Operands[n], _ = cpu.Memory.Read(pc + 1 + int64(n))
		}
	}

	result, err = cpu.Execute(code)

	// A paused instruction is traced when it is retried.
	if cpu.Tracer != nil && result != STEP_PAUSED {
		cpu.Tracer.Trace(event)
	}

	return
}

// Execute executes a decoded instruction at the current program counter.
// Faults are returned unwrapped.
func (cpu *Cpu) Execute(code Code) (result StepResult, err error) {
	op := code.Op()
	next_pc := cpu.Pc + op.Length()

	var a, b, dst int64

	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		if a, err = cpu.getValue(code, 0); err != nil {
			return
		}
		if b, err = cpu.getValue(code, 1); err != nil {
			return
		}
		if dst, err = cpu.getAddress(code, 2); err != nil {
			return
		}
		var value int64
		switch op {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LT:
			if a < b {
				value = 1
			}
		case OP_EQ:
			if a == b {
				value = 1
			}
		}
		err = cpu.Memory.Write(dst, value)
	case OP_IN:
		if dst, err = cpu.getAddress(code, 0); err != nil {
			return
		}
		value, ok := cpu.Input.Pop()
		if !ok {
			// Don't advance, the instruction is retried on resume.
			result = STEP_PAUSED
			return
		}
		err = cpu.Memory.Write(dst, value)
	case OP_OUT:
		if a, err = cpu.getValue(code, 0); err != nil {
			return
		}
		cpu.Output.Push(a)
	case OP_JT, OP_JF:
		if a, err = cpu.getValue(code, 0); err != nil {
			return
		}
		if b, err = cpu.getValue(code, 1); err != nil {
			return
		}
		if (a != 0) == (op == OP_JT) {
			if b < 0 {
				err = joinOperand(1, ErrInvalidAddress)
				return
			}
			next_pc = b
		}
	case OP_ARB:
		if a, err = cpu.getValue(code, 0); err != nil {
			return
		}
		cpu.Base += a
	case OP_HALT:
		next_pc = int64(cpu.Memory.Len())
		cpu.halted = true
		result = STEP_HALTED
	default:
		err = ErrUnknownOpcode
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// getValue resolves parameter n of the instruction at Pc as a value.
func (cpu *Cpu) getValue(code Code, n int) (value int64, err error) {
	operand, err := cpu.Memory.Read(cpu.Pc + 1 + int64(n))
	if err == nil {
		value, err = ResolveRead(&cpu.Memory, cpu.Base, operand, code.Mode(n))
	}
	if err != nil {
		err = joinOperand(n, err)
	}

	return
}

// getAddress resolves parameter n of the instruction at Pc as a destination.
func (cpu *Cpu) getAddress(code Code, n int) (addr int64, err error) {
	operand, err := cpu.Memory.Read(cpu.Pc + 1 + int64(n))
	if err == nil {
		addr, err = ResolveWrite(cpu.Base, operand, code.Mode(n))
	}
	if err != nil {
		err = joinOperand(n, err)
	}

	return
}

func joinOperand(n int, err error) error {
	return errors.Join(ErrOperand(n), err)
}

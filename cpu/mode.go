package cpu

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Valid returns true for the three defined addressing modes.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// ResolveRead returns the value of a parameter, given its raw operand.
func ResolveRead(mem *Memory, base int64, operand int64, mode Mode) (value int64, err error) {
	switch mode {
	case MODE_POSITION:
		value, err = mem.Read(operand)
	case MODE_IMMEDIATE:
		value = operand
	case MODE_RELATIVE:
		value, err = mem.Read(base + operand)
	default:
		err = ErrModeInvalid
	}

	return
}

// ResolveWrite returns the destination address of a parameter, given its
// raw operand. Immediate mode is never a valid destination.
func ResolveWrite(base int64, operand int64, mode Mode) (addr int64, err error) {
	switch mode {
	case MODE_POSITION:
		addr = operand
	case MODE_IMMEDIATE:
		err = ErrBadDestinationMode
		return
	case MODE_RELATIVE:
		addr = base + operand
	default:
		err = ErrModeInvalid
		return
	}

	if addr < 0 {
		err = ErrInvalidAddress
	}

	return
}

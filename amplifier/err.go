package amplifier

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoAmplifier = errors.New(f("no amplifiers"))
	ErrNoSignal    = errors.New(f("no output signal"))
	ErrStalled     = errors.New(f("amplifiers stalled"))
)

// ErrAmplifier indicates which amplifier of the network failed.
type ErrAmplifier struct {
	Index int
	Err   error
}

func (err *ErrAmplifier) Error() string {
	return f("amplifier %d: %v", err.Index, err.Err)
}

func (err *ErrAmplifier) Unwrap() error {
	return err.Err
}

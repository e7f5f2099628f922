package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull   = errors.New(f("channel full"))
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrTapeValue is a tape token that is not a decimal word.
type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("tape value '%v' is not a number", string(err))
}

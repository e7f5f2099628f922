package arcade

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrOutputPartial = errors.New(f("output is not a whole number of tiles"))
	ErrKeysExhausted = errors.New(f("replay keys exhausted"))
)

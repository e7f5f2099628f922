package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/pkg/errors"
)

// Ascii is a terminal channel. Each input byte is one word. Output words
// in the ASCII range are written as characters, and any other word is
// written as a line of decimal text.
type Ascii struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	err    error
}

var _ Channel = (*Ascii)(nil)
var _ Failer = (*Ascii)(nil)

// Rewind is not possible on a terminal.
func (ac *Ascii) Rewind() {
}

// Err returns the reason the last Receive stopped early, if any.
func (ac *Ascii) Err() error {
	return ac.err
}

// Receive returns an iterator that yields input bytes as words.
func (ac *Ascii) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if ac.Input == nil || ac.err != nil {
			return
		}

		if ac.reader == nil {
			ac.reader = bufio.NewReader(ac.Input)
		}

		for {
			c, err := ac.reader.ReadByte()
			if err == io.EOF {
				return
			}
			if err != nil {
				ac.err = errors.Wrap(err, "Ascii")
				return
			}
			if !yield(int64(c)) {
				return
			}
		}
	}
}

// Send writes a word as a character, or as decimal text if it is not ASCII.
func (ac *Ascii) Send(value int64) (err error) {
	if ac.Output == nil {
		err = ErrChannelClosed
		return
	}

	if value >= 0 && value < 0x80 {
		_, err = ac.Output.Write([]byte{byte(value)})
	} else {
		_, err = fmt.Fprintf(ac.Output, "%d\n", value)
	}
	if err != nil {
		err = errors.Wrap(err, "Ascii")
	}

	return
}

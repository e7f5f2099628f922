package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/pkg/errors"
)

// Tape provides sequential I/O of decimal words.
// Input words are separated by commas or whitespace; each output word is
// written on its own line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	err     error
}

var _ Channel = (*Tape)(nil)
var _ Failer = (*Tape)(nil)

func isSeparator(c byte) bool {
	switch c {
	case ',', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// scanValues is a bufio.SplitFunc for separated decimal words.
func scanValues(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSeparator(data[start]) {
		start++
	}

	for n := start; n < len(data); n++ {
		if isSeparator(data[n]) {
			return n + 1, data[start:n], nil
		}
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Err returns the reason the last Receive stopped early, if any.
func (tc *Tape) Err() error {
	return tc.err
}

// Receive returns an iterator that yields words from the input stream,
// until end of input or a malformed word.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil || tc.err != nil {
			return
		}

		if tc.scanner == nil {
			tc.scanner = bufio.NewScanner(tc.Input)
			tc.scanner.Split(scanValues)
		}

		for tc.scanner.Scan() {
			token := tc.scanner.Text()
			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				tc.err = ErrTapeValue(token)
				return
			}
			if !yield(value) {
				return
			}
		}

		err := tc.scanner.Err()
		if err != nil {
			tc.err = errors.Wrap(err, "Tape")
		}
	}
}

// Send writes a word as a line of decimal text.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		err = errors.Wrap(err, "Tape")
	}

	return
}

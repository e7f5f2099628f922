// Package io provides the I/O channels an Intcode emulator reads its input
// from and writes its output to. Values are whole Intcode words: decimal
// text on a Tape, bytes on an Ascii terminal, or raw words in a Temporary
// buffer.
package io

import (
	"iter"
)

// Channel defines the interface for all emulator I/O channels.
type Channel interface {
	// Rewind resets the channel to its initial state, if possible.
	Rewind()
	// Receive returns an iterator that yields the input words available
	// now. A later Receive yields words that arrived since.
	Receive() iter.Seq[int64]
	// Send writes a single output word to the channel.
	Send(value int64) error
}

// Failer is implemented by channels that can report why Receive stopped.
type Failer interface {
	Err() error
}

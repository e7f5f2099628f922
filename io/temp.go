package io

import (
	"iter"
)

// Temporary is a bounded in-memory loopback: words sent to it are later
// received from it, oldest first. Each Receive drains the words buffered
// at the time, so words sent after a drain are seen by the next Receive.
type Temporary struct {
	Capacity int // Capacity in words.

	ring  []int64
	first int
	count int
}

var _ Channel = (*Temporary)(nil)

// Len returns the number of buffered words.
func (temp *Temporary) Len() int {
	return temp.count
}

// Rewind discards every buffered word.
func (temp *Temporary) Rewind() {
	temp.ring = nil
	temp.first = 0
	temp.count = 0
}

// Receive returns an iterator that drains the buffered words.
func (temp *Temporary) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for temp.count > 0 {
			value := temp.ring[temp.first]
			temp.first = (temp.first + 1) % len(temp.ring)
			temp.count--
			if !yield(value) {
				return
			}
		}
	}
}

// Send buffers a word, or returns ErrChannelFull at capacity.
func (temp *Temporary) Send(value int64) (err error) {
	if temp.count >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	if temp.ring == nil {
		temp.ring = make([]int64, temp.Capacity)
	}

	temp.ring[(temp.first+temp.count)%len(temp.ring)] = value
	temp.count++

	return
}

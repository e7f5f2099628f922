package cpu

import (
	"slices"
)

// Queue is a FIFO of words, used for CPU input and output.
type Queue struct {
	Data []int64
}

func (q *Queue) Push(values ...int64) {
	q.Data = append(q.Data, values...)
}

func (q *Queue) Pop() (value int64, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

func (q *Queue) Peek() (value int64, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

func (q *Queue) Len() int {
	return len(q.Data)
}

func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

// Drain removes and returns every queued value, oldest first.
func (q *Queue) Drain() (values []int64) {
	values = q.Data
	q.Data = nil
	return
}

func (q *Queue) Reset() {
	q.Data = nil
}

func (q *Queue) Clone() Queue {
	return Queue{Data: slices.Clone(q.Data)}
}

package internal

import (
	"iter"
	"slices"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Permutations yields every ordering of items, using Heap's algorithm.
// The yielded slice is reused between iterations; clone it to keep it.
// The input slice is never modified, and the sequence may be ranged over
// more than once.
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		perm := slices.Clone(items)
		state := make([]int, len(perm))

		if !yield(perm) {
			return
		}

		for n := 1; n < len(perm); {
			if state[n] < n {
				if n%2 == 0 {
					perm[0], perm[n] = perm[n], perm[0]
				} else {
					perm[state[n]], perm[n] = perm[n], perm[state[n]]
				}
				if !yield(perm) {
					return
				}
				state[n]++
				n = 1
			} else {
				state[n] = 0
				n++
			}
		}
	}
}

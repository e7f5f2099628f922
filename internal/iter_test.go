package internal

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermutations(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		items []int
		count int
	}){
		{nil, 1},
		{[]int{7}, 1},
		{[]int{1, 2}, 2},
		{[]int{1, 2, 3}, 6},
		{[]int{0, 1, 2, 3, 4}, 120},
		{[]int{5, 6, 7, 8, 9, 10}, 720},
	}

	for _, entry := range table {
		seen := map[string]bool{}
		for perm := range Permutations(entry.items) {
			assert.Len(perm, len(entry.items))
			sorted := slices.Sorted(slices.Values(perm))
			assert.Equal(slices.Sorted(slices.Values(entry.items)), sorted)
			seen[fmt.Sprint(perm)] = true
		}
		assert.Len(seen, entry.count, "%v", entry.items)
	}
}

func TestPermutations_Restart(t *testing.T) {
	assert := assert.New(t)

	items := []int{3, 1, 2}
	seq := Permutations(items)

	var first, second [][]int
	for perm := range seq {
		first = append(first, slices.Clone(perm))
	}
	for perm := range seq {
		second = append(second, slices.Clone(perm))
	}

	assert.Equal(first, second)
	assert.Equal([]int{3, 1, 2}, first[0])
	assert.Equal([]int{3, 1, 2}, items)

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestIterSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqConcat(slices.Values([]int{1, 2}), slices.Values([]int(nil)), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	var got []int
	for v := range seq {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, got)
}

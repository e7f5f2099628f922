package cpu

import (
	"slices"
)

// MEMORY_LIMIT is the first address a CPU may not write.
const MEMORY_LIMIT = int64(1) << 28

// Memory is the zero-filled word store of a CPU.
//
// Reads beyond the physical length return 0. Writes beyond the physical
// length grow the store first, up to MEMORY_LIMIT words. The store never
// shrinks.
type Memory struct {
	Data []int64
}

// NewMemory creates a memory holding a copy of image.
func NewMemory(image []int64) (mem Memory) {
	mem.Data = slices.Clone(image)
	return
}

// Len returns the physical length of the memory.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// Read returns the word at addr.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	if addr < 0 {
		err = ErrInvalidAddress
		return
	}

	if addr < int64(len(mem.Data)) {
		value = mem.Data[addr]
	}

	return
}

// Write stores value at addr, growing the memory if needed.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	if addr < 0 {
		err = ErrInvalidAddress
		return
	}

	if addr >= MEMORY_LIMIT {
		err = ErrMemoryLimit
		return
	}

	if addr >= int64(len(mem.Data)) {
		grow := int(addr) + 1 - len(mem.Data)
		mem.Data = append(mem.Data, make([]int64, grow)...)
	}

	mem.Data[addr] = value

	return
}

// Clone returns an independent copy of the memory.
func (mem *Memory) Clone() Memory {
	return Memory{Data: slices.Clone(mem.Data)}
}

// Package cpu implements the Intcode virtual machine, its program loader,
// and an assembler for the Intcode instruction set.
//
// The CPU consists of a program counter (Pc), a relative base register
// (Base), a growable zero-filled memory of signed 64-bit words, and a pair
// of FIFO queues for input and output. Execution is cooperative: an input
// instruction that finds the input queue empty pauses the CPU without
// consuming the instruction, and the host resumes it after pushing more
// input.
//
// The assembler provides a small assembly language for Intcode, supporting
// labels, equates, raw data, and compile-time expression evaluation.
package cpu

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"iter"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

const (
	TEMPORARY_CAPACITY = 1024 // Words held by the default loopback channel.
	HISTORY_LIMIT      = 100  // Maximum number of saved snapshots.
)

// Emulator state. CPU + IO channel.
type Emulator struct {
	Verbose  bool               // If set, enables instruction trace logging.
	Logger   logrus.FieldLogger // Trace destination, the standard logger if nil.
	*cpu.Cpu                    // Reference to the CPU simulation.
	Program  cpu.Program        // Program image loaded on Reset.

	Inputs  []int64    // Input words fed before any channel input.
	Channel io.Channel // Input and output channel, Temporary if nil.
	Limit   int        // Maximum steps taken by Run, unlimited if zero.

	Temporary io.Temporary // Temporary buffer IO channel.

	history []*cpu.Cpu
	next    func() (int64, bool)
	stop    func()
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(nil),
	}

	emu.Temporary.Capacity = TEMPORARY_CAPACITY

	return
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	if emu.stop != nil {
		emu.stop()
	}
	emu.next = nil
	emu.stop = nil

	return
}

// Reset loads the program into a fresh CPU, and rewinds the channel.
func (emu *Emulator) Reset() (err error) {
	err = emu.Close()
	if err != nil {
		return
	}

	emu.Cpu = cpu.NewCpu(emu.Program)
	if emu.Verbose {
		logger := emu.Logger
		if logger == nil {
			logger = logrus.StandardLogger()
		}
		emu.Cpu.Tracer = &cpu.LogTracer{Logger: logger}
	}

	if emu.Channel == nil {
		emu.Channel = &emu.Temporary
	}
	emu.Channel.Rewind()

	input := internal.IterSeqConcat(slices.Values(emu.Inputs), emu.Channel.Receive())
	emu.next, emu.stop = iter.Pull(input)
	emu.history = nil

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	value, _ := emu.Cpu.Memory.Read(emu.Cpu.Pc)
	return cpu.Code(value)
}

// flush forwards all pending CPU output to the channel.
func (emu *Emulator) flush() (err error) {
	for _, value := range emu.Cpu.OutputDrain() {
		err = emu.Channel.Send(value)
		if err != nil {
			return
		}
	}

	return
}

// receive fetches the next input word for a paused CPU.
func (emu *Emulator) receive() (err error) {
	if emu.next == nil {
		err = ErrInputExhausted
		return
	}

	value, ok := emu.next()
	if !ok {
		// Words may have reached the channel since it was last drained.
		emu.stop()
		emu.next, emu.stop = iter.Pull(emu.Channel.Receive())
		value, ok = emu.next()
	}
	if !ok {
		err = ErrInputExhausted
		if failer, is_failer := emu.Channel.(io.Failer); is_failer && failer.Err() != nil {
			err = failer.Err()
		}
		return
	}

	emu.Cpu.PushInput(value)
	return
}

// Tick performs a single step of the emulator. A paused CPU is fed the
// next input word, to be consumed on the following tick.
func (emu *Emulator) Tick() (done bool, err error) {
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	result, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	err = emu.flush()
	if err != nil {
		return
	}

	switch result {
	case cpu.STEP_HALTED:
		done = true
	case cpu.STEP_PAUSED:
		err = emu.receive()
	}

	return
}

// Run ticks the emulator until the program halts, faults, runs out of
// input, exceeds the step limit, or the context is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for steps := 0; ; steps++ {
		err = ctx.Err()
		if err != nil {
			return
		}

		if emu.Limit > 0 && steps >= emu.Limit {
			err = &ErrRuntime{Pc: emu.Cpu.Pc, Err: ErrStepLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// Save snapshots the CPU state. Only the most recent HISTORY_LIMIT
// snapshots are kept. Channel state is not saved.
func (emu *Emulator) Save() {
	emu.history = append(emu.history, emu.Cpu.Clone())
	if len(emu.history) > HISTORY_LIMIT {
		emu.history = slices.Delete(emu.history, 0, len(emu.history)-HISTORY_LIMIT)
	}
}

// Rewind restores the most recent snapshot, returning false if there is none.
func (emu *Emulator) Rewind() (ok bool) {
	if len(emu.history) == 0 {
		return
	}

	last := len(emu.history) - 1
	emu.Cpu = emu.history[last]
	emu.history = emu.history[:last]

	return true
}

// History returns the number of saved snapshots.
func (emu *Emulator) History() int {
	return len(emu.history)
}

package emulator

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// doubler doubles each input word until it reads a zero.
var doubler = cpu.Program{3, 100, 1006, 100, 14, 1002, 100, 2, 100, 4, 100, 1105, 1, 0, 99}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(TEMPORARY_CAPACITY, emu.Temporary.Capacity)
	assert.NoError(emu.Close())
}

func doRunTape(emu *Emulator, input string, t *testing.T) (output string, err error) {
	assert := assert.New(t)

	tape_output := &bytes.Buffer{}
	emu.Channel = &io.Tape{
		Input:  strings.NewReader(input),
		Output: tape_output,
	}

	assert.NoError(emu.Reset())
	defer emu.Close()

	err = emu.Run(context.Background())

	output = tape_output.String()
	return
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		inputs []int64
		tape   string
		output string
	}){
		{"tape", nil, "1, 2\n3 0", "2\n4\n6\n"},
		{"inputs", []int64{5}, "0", "10\n"},
		{"inputs_only", []int64{4, 0}, "", "8\n"},
		{"unused", nil, "0 7 7", ""},
	}

	for _, entry := range table {
		emu := NewEmulator()
		emu.Program = doubler
		emu.Inputs = entry.inputs

		output, err := doRunTape(emu, entry.tape, t)
		assert.NoError(err, entry.name)
		assert.Equal(entry.output, output, entry.name)
		assert.True(emu.IsTerminated(), entry.name)
	}
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = cpu.Program{104, 7, 3, 100, 4, 100, 99}
	assert.NoError(emu.Reset())
	defer emu.Close()

	// The default channel is a loopback.
	assert.Equal(&emu.Temporary, emu.Channel)

	assert.Equal(cpu.Code(104), emu.Code())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(1, emu.Temporary.Len())

	// Pauses, and is fed the looped back word.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(int64(2), emu.Pc)
	assert.Equal(0, emu.Temporary.Len())

	for !done {
		done, err = emu.Tick()
		assert.NoError(err)
	}

	assert.Equal(4, emu.Ticks())
	assert.Equal([]int64{7}, slices.Collect(emu.Temporary.Receive()))

	// Halted emulators stay done.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulator_Loopback(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = cpu.Program{3, 100, 4, 100, 99}
	assert.NoError(emu.Reset())
	defer emu.Close()

	_, err := emu.Tick()
	assert.ErrorIs(err, ErrInputExhausted)
	assert.Equal(int64(0), emu.Pc)

	// Words sent after the loopback ran dry are still received.
	assert.NoError(emu.Temporary.Send(9))
	assert.NoError(emu.Run(context.Background()))
	assert.True(emu.IsTerminated())
	assert.Equal([]int64{9}, slices.Collect(emu.Temporary.Receive()))
}

func TestEmulator_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program cpu.Program
		tape    string
		pc      int64
		err     error
	}){
		{"exhausted", doubler, "1", 0, ErrInputExhausted},
		{"tape_value", doubler, "1 x", 0, io.ErrTapeValue("x")},
		{"fault", cpu.Program{21101, 1, 1, -5, 99}, "", 0, cpu.ErrInvalidAddress},
		{"opcode", cpu.Program{104, 1, 42}, "", 2, cpu.ErrUnknownOpcode},
	}

	for _, entry := range table {
		emu := NewEmulator()
		emu.Program = entry.program

		_, err := doRunTape(emu, entry.tape, t)
		assert.ErrorIs(err, entry.err, entry.name)

		var runtime *ErrRuntime
		if assert.True(errors.As(err, &runtime), entry.name) {
			assert.Equal(entry.pc, runtime.Pc, entry.name)
		}
	}

	emu := NewEmulator()
	emu.Program = cpu.Program{3, 0, 99}
	emu.Channel = &io.Tape{Input: strings.NewReader("1")}
	assert.NoError(emu.Reset())
	err := emu.Run(context.Background())
	assert.NoError(err)

	emu.Program = cpu.Program{104, 1, 99}
	assert.NoError(emu.Reset())
	err = emu.Run(context.Background())
	assert.ErrorIs(err, io.ErrChannelClosed)
	assert.NoError(emu.Close())
}

func TestEmulator_Limit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = cpu.Program{1105, 1, 0}
	emu.Limit = 100
	assert.NoError(emu.Reset())
	defer emu.Close()

	err := emu.Run(context.Background())
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(100, emu.Ticks())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(100, emu.Ticks())
}

func TestEmulator_Rewind(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = cpu.Program{1101, 1, 2, 100, 1105, 1, 0}
	assert.NoError(emu.Reset())
	defer emu.Close()

	assert.False(emu.Rewind())

	emu.Save()
	_, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(int64(3), emu.Memory.Data[100])
	assert.Equal(int64(4), emu.Pc)

	assert.True(emu.Rewind())
	assert.Equal(7, emu.Memory.Len())
	assert.Equal(int64(0), emu.Pc)
	assert.Equal(0, emu.History())

	for range HISTORY_LIMIT + 10 {
		emu.Save()
		_, err = emu.Tick()
		assert.NoError(err)
	}
	assert.Equal(HISTORY_LIMIT, emu.History())

	ticks := emu.Ticks()
	assert.True(emu.Rewind())
	assert.Equal(ticks-1, emu.Ticks())
}

func TestEmulator_Verbose(t *testing.T) {
	assert := assert.New(t)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	emu := NewEmulator()
	emu.Verbose = true
	emu.Logger = logger
	emu.Program = cpu.Program{104, 1, 99}
	assert.NoError(emu.Reset())
	defer emu.Close()

	assert.NoError(emu.Run(context.Background()))

	entries := hook.AllEntries()
	if assert.Len(entries, 2) {
		assert.Equal("out #1", entries[0].Message)
		assert.Equal(int64(0), entries[0].Data["pc"])
		assert.Equal("hlt", entries[1].Message)
		assert.Equal(logrus.DebugLevel, entries[1].Level)
	}
}

package io

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input  string
		values []int64
	}){
		{"", nil},
		{"1", []int64{1}},
		{"1,2,3", []int64{1, 2, 3}},
		{" 1, -2\n3\r\n\t40 ", []int64{1, -2, 3, 40}},
		{",,5,,", []int64{5}},
		{"1125899906842624", []int64{1125899906842624}},
	}

	for _, entry := range table {
		tape := &Tape{Input: strings.NewReader(entry.input)}
		assert.Equal(entry.values, slices.Collect(tape.Receive()), entry.input)
		assert.NoError(tape.Err(), entry.input)
	}
}

func TestTape_Resume(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1 2 3 4")}

	var first []int64
	for value := range tape.Receive() {
		first = append(first, value)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal([]int64{1, 2}, first)

	// Rewind is not possible on a tape.
	tape.Rewind()
	assert.Equal([]int64{3, 4}, slices.Collect(tape.Receive()))
	assert.Empty(slices.Collect(tape.Receive()))
}

func TestTape_Errors(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("7 x 9")}
	assert.Equal([]int64{7}, slices.Collect(tape.Receive()))
	assert.Equal(ErrTapeValue("x"), tape.Err())
	assert.Empty(slices.Collect(tape.Receive()))

	failure := errors.New("failure")
	tape = &Tape{Input: iotest.ErrReader(failure)}
	assert.Empty(slices.Collect(tape.Receive()))
	assert.ErrorIs(tape.Err(), failure)

	tape = &Tape{}
	assert.Empty(slices.Collect(tape.Receive()))
	assert.Equal(ErrChannelClosed, tape.Send(1))
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	for _, value := range []int64{1, -20, 1219070632396864} {
		assert.NoError(tape.Send(value))
	}
	assert.Equal("1\n-20\n1219070632396864\n", output.String())
}

func TestAscii(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	ascii := &Ascii{
		Input:  strings.NewReader("Hi\n"),
		Output: output,
	}

	assert.Equal([]int64{'H', 'i', '\n'}, slices.Collect(ascii.Receive()))
	assert.NoError(ascii.Err())

	for _, value := range []int64{'O', 'K', '\n', 19349530, -1} {
		assert.NoError(ascii.Send(value))
	}
	assert.Equal("OK\n19349530\n-1\n", output.String())

	failure := errors.New("failure")
	ascii = &Ascii{Input: iotest.ErrReader(failure)}
	assert.Empty(slices.Collect(ascii.Receive()))
	assert.ErrorIs(ascii.Err(), failure)
	assert.Equal(ErrChannelClosed, ascii.Send('x'))
}

func TestTemporary(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 3}
	assert.Empty(slices.Collect(temp.Receive()))

	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.NoError(temp.Send(3))
	assert.Equal(ErrChannelFull, temp.Send(4))

	for value := range temp.Receive() {
		assert.Equal(int64(1), value)
		break
	}
	assert.Equal(2, temp.Len())

	// Wraps around the capacity boundary.
	assert.NoError(temp.Send(4))
	assert.Equal([]int64{2, 3, 4}, slices.Collect(temp.Receive()))
	assert.Equal(0, temp.Len())

	// Words sent after a drain are seen by the next Receive.
	assert.NoError(temp.Send(6))
	assert.Equal([]int64{6}, slices.Collect(temp.Receive()))

	assert.NoError(temp.Send(5))
	temp.Rewind()
	assert.Empty(slices.Collect(temp.Receive()))
}

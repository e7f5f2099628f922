package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Event describes one executed instruction, with its operands as they
// were before execution.
type Event struct {
	Pc       int64   // Address of the instruction.
	Base     int64   // Relative base at the time of execution.
	Code     Code    // Instruction word.
	Operands []int64 // Raw operands following the instruction word.
}

// Tracer receives an Event for every instruction the CPU executes.
// An input instruction that pauses is reported once, when it completes.
type Tracer interface {
	Trace(event Event)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(event Event)

func (tf TracerFunc) Trace(event Event) {
	tf(event)
}

// LogTracer writes trace events to a logrus logger at debug level.
type LogTracer struct {
	Logger logrus.FieldLogger
}

// Trace logs the event with its disassembly.
func (lt *LogTracer) Trace(event Event) {
	fields := logrus.Fields{
		"pc":   event.Pc,
		"base": event.Base,
		"code": int64(event.Code),
	}

	text, ok := event.Code.Disassemble(event.Operands)
	if !ok {
		text = fmt.Sprintf(".data %d", int64(event.Code))
	}

	lt.Logger.WithFields(fields).Debug(text)
}

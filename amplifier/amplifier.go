// Package amplifier runs a ring of Intcode amplifiers. Each amplifier is
// seeded with a phase setting, and the output of each feeds the input of
// the next. The output of the last amplifier loops back to the first.
package amplifier

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
)

// Network is a ring of amplifiers.
type Network struct {
	Verbose   bool       // If set, logs every signal passed along the ring.
	Amplifier []*cpu.Cpu // Amplifiers, in signal order.
	Output    []int64    // Every signal produced by the last amplifier.
}

// NewNetwork creates a ring of amplifiers running program, one per phase.
func NewNetwork(program cpu.Program, phases []int64) (net *Network) {
	net = &Network{}
	for _, phase := range phases {
		net.Amplifier = append(net.Amplifier, cpu.NewCpu(program, phase))
	}

	return
}

// Run feeds signal to the first amplifier, then runs the amplifiers round
// robin until all have terminated. The result is the last signal output by
// the final amplifier.
func (net *Network) Run(signal int64) (result int64, err error) {
	if len(net.Amplifier) == 0 {
		err = ErrNoAmplifier
		return
	}

	last := len(net.Amplifier) - 1
	net.Amplifier[0].PushInput(signal)

	for {
		progress := false
		terminated := true

		for n, amp := range net.Amplifier {
			ticks := amp.Ticks
			_, err = amp.Run()
			if err != nil {
				err = &ErrAmplifier{Index: n, Err: err}
				return
			}

			output := amp.OutputDrain()
			if amp.Ticks != ticks || len(output) > 0 {
				progress = true
			}

			if net.Verbose && len(output) > 0 {
				logrus.WithFields(logrus.Fields{"amp": n, "ticks": amp.Ticks}).Debugf("signal %v", output)
			}

			next := n + 1
			if n == last {
				net.Output = append(net.Output, output...)
				next = 0
			}
			net.Amplifier[next].PushInput(output...)

			if !amp.IsTerminated() {
				terminated = false
			}
		}

		if terminated {
			break
		}

		if !progress {
			err = ErrStalled
			return
		}
	}

	if len(net.Output) == 0 {
		err = ErrNoSignal
		return
	}

	result = net.Output[len(net.Output)-1]
	return
}

// MaxSignal runs a fresh network for every ordering of phases, with an
// initial signal of zero, and returns the highest final signal found along
// with the phase order that produced it.
func MaxSignal(program cpu.Program, phases []int64) (best int64, order []int64, err error) {
	for perm := range internal.Permutations(phases) {
		var signal int64
		signal, err = NewNetwork(program, perm).Run(0)
		if err != nil {
			return
		}

		if order == nil || signal > best {
			best = signal
			order = slices.Clone(perm)
		}
	}

	return
}

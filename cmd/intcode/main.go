// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/amplifier"
	"github.com/ezrec/intcode/arcade"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/painter"
)

// loadProgram assembles the source file compile, or reads the program
// file program.
func loadProgram(compile string, program string, verbose bool) (prog cpu.Program, err error) {
	switch {
	case len(compile) != 0:
		var inf *os.File
		inf, err = os.Open(compile)
		if err != nil {
			return
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
	case len(program) != 0:
		prog, err = cpu.LoadProgram(program)
	default:
		prog, err = cpu.ParseProgram(os.Stdin)
	}

	return
}

// parseWords parses a comma separated list of words.
func parseWords(text string) (words []int64, err error) {
	return cpu.ParseProgram(strings.NewReader(text))
}

func runEmulator(prog cpu.Program, input string, output string, ascii bool, limit int, verbose bool) {
	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Limit = limit

	tape_input := os.Stdin
	if input != "-" {
		inf, err := os.Open(input)
		if err != nil {
			logrus.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		tape_input = inf
	}

	tape_output := os.Stdout
	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			logrus.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape_output = ouf
	}

	if ascii {
		emu.Channel = &io.Ascii{Input: tape_input, Output: tape_output}
	} else {
		emu.Channel = &io.Tape{Input: tape_input, Output: tape_output}
	}

	err := emu.Reset()
	if err != nil {
		logrus.Fatal(err)
	}
	defer emu.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		logrus.WithField("ticks", emu.Ticks()).Fatal(err)
	}

	logrus.WithField("ticks", emu.Ticks()).Debug("halted")
}

func runArcade(prog cpu.Program, auto bool, replay string, verbose bool) {
	cab := arcade.NewCabinet(prog, true)
	cab.Verbose = verbose

	var score int64
	var err error

	switch {
	case auto:
		score, err = cab.AutoPlay()
	case len(replay) != 0:
		var keys cpu.Program
		keys, err = cpu.LoadProgram(replay)
		if err == nil {
			score, err = cab.Replay(keys)
		}
	default:
		var screen tcell.Screen
		screen, err = tcell.NewScreen()
		if err != nil {
			logrus.Fatal(err)
		}
		err = screen.Init()
		if err != nil {
			logrus.Fatal(err)
		}
		score, err = cab.Play(screen)
		screen.Fini()
		fmt.Println(cpu.Program(cab.Keys))
	}

	if err != nil {
		logrus.Fatal(err)
	}

	fmt.Println(score)
}

func main() {
	var compile string
	var program string
	var save string
	var listing bool
	var input string
	var output string
	var ascii bool
	var verbose bool
	var limit int
	var amp string
	var paint int
	var play bool
	var auto bool
	var replay string
	var prof string

	flag.StringVar(&compile, "c", "", ".intcode assembly file to compile")
	flag.StringVar(&program, "p", "", "Program file to load")
	flag.StringVar(&save, "s", "", "Save compiled program to file, do not execute")
	flag.BoolVar(&listing, "l", false, "Print program listing, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&ascii, "a", false, "ASCII tape")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&limit, "n", 0, "Step limit (0 for unlimited)")
	flag.StringVar(&amp, "amp", "", "Find the maximum amplifier signal over a phase set, ie '0,1,2,3,4'")
	flag.IntVar(&paint, "paint", -1, "Run the hull painter from the given start colour")
	flag.BoolVar(&play, "arcade", false, "Play the arcade cabinet")
	flag.BoolVar(&auto, "auto", false, "Autoplay the arcade cabinet")
	flag.StringVar(&replay, "replay", "", "Replay arcade joystick positions from file")
	flag.StringVar(&prof, "profile", "", "Write a CPU profile to the directory")

	flag.Parse()

	if flag.NArg() != 0 {
		logrus.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if len(prof) != 0 {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(prof), profile.Quiet).Stop()
	}

	prog, err := loadProgram(compile, program, verbose)
	if err != nil {
		logrus.Fatal(err)
	}

	switch {
	case len(save) != 0:
		err = os.WriteFile(save, []byte(prog.String()+"\n"), 0o644)
		if err != nil {
			logrus.Fatal(err)
		}
	case listing:
		for addr, text := range prog.Listing() {
			fmt.Printf("%6d: %v\n", addr, text)
		}
	case len(amp) != 0:
		phases, err := parseWords(amp)
		if err != nil {
			logrus.Fatalf("-amp: %v", err)
		}
		best, order, err := amplifier.MaxSignal(prog, phases)
		if err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("phases", cpu.Program(order).String()).Debug("best signal")
		fmt.Println(best)
	case paint >= 0:
		hull, err := painter.Paint(prog, int64(paint))
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Print(hull.String())
		fmt.Println(len(hull))
	case play || auto || len(replay) != 0:
		runArcade(prog, auto, replay, verbose)
	default:
		runEmulator(prog, input, output, ascii, limit, verbose)
	}
}

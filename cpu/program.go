package cpu

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Program is an Intcode program image.
type Program []int64

// ParseProgram parses comma separated base-10 integers into a Program.
// Line breaks are stripped before splitting.
func ParseProgram(input io.Reader) (prog Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = &ErrLoad{Err: ErrProgramEmpty}
		return
	}

	for n, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		var value int64
		value, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			err = &ErrLoad{Index: n, Token: token, Err: ErrParseNumber(token)}
			prog = nil
			return
		}
		prog = append(prog, value)
	}

	return
}

// LoadProgram reads a Program from the file fileName.
func LoadProgram(fileName string) (Program, error) {
	inf, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadProgram")
	}
	defer inf.Close()

	prog, err := ParseProgram(inf)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadProgram %v", fileName)
	}

	return prog, nil
}

// String returns the program in its comma separated text form.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, value := range prog {
		words[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(words, ",")
}

// Listing disassembles the program, yielding the address and assembler
// text of each instruction. Words that do not decode are yielded as data.
func (prog Program) Listing() iter.Seq2[int64, string] {
	return func(yield func(addr int64, text string) bool) {
		for addr := int64(0); addr < int64(len(prog)); {
			code := Code(prog[addr])
			length := code.Op().Length()
			var text string
			var ok bool
			if addr+length <= int64(len(prog)) {
				text, ok = code.Disassemble(prog[addr+1 : addr+length])
			}
			if !ok {
				text = fmt.Sprintf(".data %d", int64(code))
				length = 1
			}
			if !yield(addr, text) {
				return
			}
			addr += length
		}
	}
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// mnemonicMap is a map of mnemonics to operations.
var mnemonicMap = map[string]Op{}

func init() {
	for op := range opParams {
		mnemonicMap[op.String()] = op
		sysEquate["OP_"+strings.ToUpper(op.String())] = fmt.Sprintf("%d", int(op))
	}
}

// fixup is a forward reference to a label, patched after parsing.
type fixup struct {
	Addr   int64
	Label  string
	LineNo int
	Line   string
}

// Assembler is a two pass assembler for Intcode.
//
// Each line holds at most one instruction or directive:
//
//	label: mnemonic operand...   ; comment
//	.equ NAME VALUE
//	.data VALUE...
//
// Operands are separated by spaces or commas. A bare value or label is a
// position operand, '#' marks an immediate operand and '@' a relative
// operand. $(expr) is evaluated at assembly time over the numeric equates.
type Assembler struct {
	Verbose bool    // If set, verbosely logs the assembler actions.
	Program Program // Generated program image.

	predefine map[string]string // Predefines
	Label     map[string]int64  // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.

	fixups []fixup
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// emit appends a word to the program, resolving it now if possible or
// recording a fixup for a label not yet defined.
func (asm *Assembler) emit(word string, lineno int, line string) (err error) {
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	addr := int64(len(asm.Program))

	value, err := asm.valueOf(word)
	if err == nil {
		asm.Program = append(asm.Program, value)
		return
	}

	if !reLabel.MatchString(word) {
		return
	}
	err = nil

	if label, ok := asm.Label[word]; ok {
		asm.Program = append(asm.Program, label)
		return
	}

	asm.fixups = append(asm.fixups, fixup{Addr: addr, Label: word, LineNo: lineno, Line: line})
	asm.Program = append(asm.Program, 0)

	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	return
}

// parseWords assembles an expanded line.
func (asm *Assembler) parseWords(words []string, lineno int, line string) (err error) {
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = int64(len(asm.Program))
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	switch words[0] {
	case ".equ":
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	case ".data":
		if len(words) == 1 {
			err = ErrDataMissing
			return
		}
		for _, word := range words[1:] {
			err = asm.emit(word, lineno, line)
			if err != nil {
				return
			}
		}
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) != op.Params() {
		err = ErrOperandCount
		return
	}

	modes := make([]Mode, len(args))
	for n, arg := range args {
		switch arg[0] {
		case '#':
			modes[n] = MODE_IMMEDIATE
			args[n] = arg[1:]
		case '@':
			modes[n] = MODE_RELATIVE
			args[n] = arg[1:]
		default:
			modes[n] = MODE_POSITION
		}
		if len(args[n]) == 0 {
			err = joinOperand(n, ErrParseNumber(arg))
			return
		}
		if n == op.Dest() && modes[n] == MODE_IMMEDIATE {
			err = joinOperand(n, ErrBadDestinationMode)
			return
		}
	}

	asm.Program = append(asm.Program, int64(MakeCode(op, modes...)))
	for _, arg := range args {
		err = asm.emit(arg, lineno, line)
		if err != nil {
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Program = nil
	asm.fixups = nil
	asm.Label = make(map[string]int64, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			logrus.WithField("line", lineno).Debug(text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno, line)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	for _, fix := range asm.fixups {
		value, ok := asm.Label[fix.Label]
		if !ok {
			lineno = fix.LineNo
			line = fix.Line
			err = ErrLabelMissing(fix.Label)
			return
		}
		asm.Program[fix.Addr] = value
	}

	prog = asm.Program
	return
}

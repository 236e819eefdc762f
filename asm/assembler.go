// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/optvm/isa"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// MACRO_DEPTH_MAX limits nested macro expansion.
const MACRO_DEPTH_MAX = 64

// mnemonicMap maps instruction names, and their aliases, to opcodes.
var mnemonicMap = func() (mnemonics map[string]isa.Opcode) {
	mnemonics = map[string]isa.Opcode{
		"load_imm": isa.OP_LDI,
		"load":     isa.OP_LDW,
		"store":    isa.OP_STW,
		"jump":     isa.OP_JMP,
	}
	for _, op := range isa.Opcodes() {
		mnemonics[op.String()] = op
	}
	return
}()

var (
	charRegexp     = regexp.MustCompile(`'\\?[^']'`)
	parenRegexp    = regexp.MustCompile(`\$\([^\$]*\)`)
	labelRegexp    = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	registerRegexp = regexp.MustCompile(`^r([0-9]+)$`)
)

// Assembler is a single pass macro assembler for optvm programs.
type Assembler struct {
	Verbose   bool     // If set, verbosely logs the assembler actions.
	Base      uint32   // Load address of the program.
	Registers int      // Register count; zero selects the default.
	Opcode    []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	pc     uint32 // Current assembly address.
	depth  int    // Current macro expansion depth.
	expand int    // Macro expansions, used to make local labels unique.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registers returns the register count in use.
func (asm *Assembler) registers() int {
	if asm.Registers == 0 {
		return isa.REGISTER_COUNT_DEFAULT
	}
	return asm.Registers
}

// fields splits a line into words. Commas separate words like whitespace.
func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -0x80000000 {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// valueOrLabel returns the value of a word, or the label it refers to.
func (asm *Assembler) valueOrLabel(word string) (value uint32, label string, err error) {
	value, err = asm.valueOf(word)
	if err != nil && labelRegexp.MatchString(word) {
		value = 0
		label = word
		err = nil
	}

	return
}

// registerOf returns the register named by a word.
func (asm *Assembler) registerOf(word string) (reg isa.Register, err error) {
	count := asm.registers()

	word = strings.ToLower(word)
	if word == "sp" {
		reg = isa.StackPointer(count)
		return
	}

	match := registerRegexp.FindStringSubmatch(word)
	if match != nil {
		n, _ := strconv.Atoi(match[1])
		if n < count {
			reg = isa.Register(n)
			return
		}
	}

	err = ErrRegisterInvalid
	return
}

// offsetOf returns a signed 16-bit memory offset, sign extended.
func (asm *Assembler) offsetOf(word string) (value uint32, err error) {
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	if int32(value) < -0x8000 || int32(value) > 0x7fff {
		err = ErrOffsetRange
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value32, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeUint64(uint64(value32))
	}
	for key, pc := range asm.Label {
		pred[key] = starlark.MakeUint64(uint64(pc))
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
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine parses a single line into words, handling equates, labels and macros.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do 'x' evaluations
	line = charRegexp.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
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
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !labelRegexp.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.pc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.depth >= MACRO_DEPTH_MAX {
			err = ErrMacroRecursion
			return
		}

		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		asm.depth++
		asm.expand++
		local := fmt.Sprintf("%v_%v_", name, asm.expand)
		defer func() {
			asm.Equate = old_equate
			asm.depth--
		}()

		for n, text := range macro.Lines {
			lineno := macro.LineNo + n

			text = strings.ReplaceAll(text, "@", local)
			var macro_words []string
			macro_words, err = asm.parseLine(text, lineno)
			if err == nil {
				err = asm.parseWords(macro_words, lineno)
			}
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	asm.Equate["BASE_ADDRESS"] = fmt.Sprintf("%#v", asm.Base)
	asm.Equate["REGISTER_COUNT"] = strconv.Itoa(asm.registers())
	maps.Copy(asm.Equate, asm.predefine)
	asm.pc = asm.Base
	asm.depth = 0
	asm.expand = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for _, link := range op.Links {
			pc, ok := asm.Label[link.Label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			binary.LittleEndian.PutUint32(op.Code[link.Offset:], pc)
		}
	}

	prog = &Program{
		Base:    asm.Base,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// instruction encodes a machine instruction.
func (asm *Assembler) instruction(op isa.Opcode, args []string) (in isa.Instruction, links []Link, err error) {
	format := op.Format()
	kinds := format.Kinds()

	// ldw rd ra => ldw rd ra 0
	if format == isa.FORMAT_RM && len(args) == 2 {
		args = slices.Concat(args, []string{"0"})
	}

	if len(args) < len(kinds) {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > len(kinds) {
		err = ErrOpcodeExtraArgs
		return
	}

	values := make([]uint32, len(kinds))
	for n, kind := range kinds {
		var label string
		switch {
		case kind == isa.OPERAND_REG:
			var reg isa.Register
			reg, err = asm.registerOf(args[n])
			values[n] = uint32(reg)
		case format == isa.FORMAT_RM:
			values[n], err = asm.offsetOf(args[n])
		case format == isa.FORMAT_RI:
			values[n], label, err = asm.valueOrLabel(args[n])
			if len(label) != 0 {
				links = append(links, Link{Label: label, Offset: 2})
			}
		case format == isa.FORMAT_A:
			values[n], label, err = asm.valueOrLabel(args[n])
			if len(label) != 0 {
				links = append(links, Link{Label: label, Offset: 1})
			}
		}
		if err != nil {
			return
		}
	}

	in = isa.Make(op, values...)
	in.Pc = asm.pc

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var code []byte
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words
	pc := asm.pc

	defer func() {
		if err != nil || len(code) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Pc: pc, Words: initial_words, Code: code, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.pc += uint32(len(code))
	}()

	name := strings.ToLower(words[0])
	args := words[1:]

	switch name {
	case ".org":
		if len(args) < 1 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var org uint32
		org, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if org < asm.pc {
			err = ErrOrgBackwards
			return
		}
		asm.pc = org
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint32
			var label string
			value, label, err = asm.valueOrLabel(arg)
			if err != nil {
				return
			}
			if len(label) != 0 {
				links = append(links, Link{Label: label, Offset: len(code)})
			}
			code = binary.LittleEndian.AppendUint32(code, value)
		}
	case ".byte":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint32
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			if value > 0xff && (int32(value) < -0x80 || int32(value) >= 0) {
				err = ErrByteRange
				return
			}
			code = append(code, byte(value))
		}
	default:
		op, ok := mnemonicMap[name]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		var in isa.Instruction
		in, links, err = asm.instruction(op, args)
		if err != nil {
			return
		}
		if asm.Verbose {
			log.Printf("%08x: %v", in.Pc, in)
		}
		code = in.Bytes()
	}

	return
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package copper

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":              "0",
	"IGNORE_LINE":         fmt.Sprintf("%#x", uint16(FLAG_IGNORE_LINE)),
	"IGNORE_COLUMN":       fmt.Sprintf("%#x", uint16(FLAG_IGNORE_COLUMN)),
	"COMBINE_OR":          fmt.Sprintf("%#x", uint16(FLAG_COMBINE_OR)),
	"EXACT":               fmt.Sprintf("%#x", uint16(FLAG_EXACT)),
	"LINE_ONLY":           fmt.Sprintf("%#x", uint16(FLAG_IGNORE_COLUMN)),
	"COLUMN_ONLY":         fmt.Sprintf("%#x", uint16(FLAG_IGNORE_LINE)),
	"COLOR_BG":            fmt.Sprintf("%#x", uint8(COLOR_BG)),
	"COLOR_FG":            fmt.Sprintf("%#x", uint8(COLOR_FG)),
	"COPPER_INSTRUCTIONS": fmt.Sprintf("%d", COPPER_INSTRUCTIONS),
}

// Assembler is a single pass macro assembler for copper lists.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to instruction indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Macro expansions so far.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// PredefineAll predefines every equate of a sequence, ie emulator defines.
func (asm *Assembler) PredefineAll(defines iter.Seq2[string, string]) {
	for equ, value := range defines {
		asm.Predefine(equ, value)
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseUint(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	if invert {
		value = ^value
	}

	return
}

// fieldOf returns the value of a word that must fit in limit.
func (asm *Assembler) fieldOf(field string, word string, limit uint32) (value uint16, err error) {
	v32, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v32 > limit {
		err = ErrField{Field: field, Value: int(v32), Limit: int(limit)}
		return
	}

	value = uint16(v32)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{Name: "copper"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeUint(uint(value32))
	}
	err = nil
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
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
	if !ok || st_int64 < 0 || st_int64 > 0xffffffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// splitWords splits a line on blanks and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// parseLine parses a single line into the words of an instruction.
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
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

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
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = len(asm.Opcode)
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
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)
		asm.expansions++

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
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

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.expansions = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

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

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		index, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		if asm.Verbose {
			log.Printf("link %v: %v -> %d", op.LineNo, op.LinkLabel, index)
		}
		op.Instruction = Jump{Target: uint16(index)}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	// Jumps past the end only show up once the program is complete.
	for _, op := range prog.Opcodes {
		jmp, ok := op.Instruction.(Jump)
		if ok && int(jmp.Target) >= prog.Len() {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrJumpTarget{Index: op.Index, Target: jmp.Target, Length: prog.Len()}
			prog = nil
			return
		}
	}

	if prog.Len() > COPPER_INSTRUCTIONS {
		err = ErrProgramTooLarge
		prog = nil
		return
	}

	return
}

// condition parses the X, Y, FLAGS operands of wait and skip.
func (asm *Assembler) condition(args []string) (cond Condition, err error) {
	if len(args) < 2 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 3 {
		err = ErrOpcodeExtraArgs
		return
	}

	column, err := asm.fieldOf("column", args[0], COLUMN_MASK)
	if err != nil {
		return
	}

	line, err := asm.fieldOf("line", args[1], LINE_MASK)
	if err != nil {
		return
	}

	var flags uint16
	if len(args) == 3 {
		flags, err = asm.fieldOf("flags", args[2], FLAGS_MASK)
		if err != nil {
			return
		}
	}

	cond, err = ConditionOf(Flags(flags), line, column)
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var inst Instruction
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if inst == nil {
			return
		}
		opcode := Opcode{LineNo: lineno, Index: len(asm.Opcode), Words: initial_words, Instruction: inst, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	args := words[1:]

	switch strings.ToLower(words[0]) {
	case "wait", "skip":
		var cond Condition
		cond, err = asm.condition(args)
		if err != nil {
			return
		}
		if strings.ToLower(words[0]) == "wait" {
			inst = Wait{cond}
		} else {
			inst = Skip{cond}
		}
	case "jmp", "jump":
		if len(args) < 1 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		// Bounds are checked once the program is linked.
		target, num_err := asm.fieldOf("target", args[0], 0xffff)
		switch {
		case num_err == nil:
			inst = Jump{Target: target}
		case isNumber(args[0]):
			err = num_err
			return
		default:
			// Linked after the whole program is parsed.
			inst = Jump{}
			label = args[0]
		}
	case "movep":
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var value, reg uint16
		value, err = asm.fieldOf("value", args[0], 0xffff)
		if err != nil {
			return
		}
		reg, err = asm.fieldOf("register", args[1], REGISTER_MASK)
		if err != nil {
			return
		}
		inst = Movep{Register: Register(reg), Value: value}
	case "nextf":
		if len(args) > 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		inst = NextFrame{}
	default:
		if isNumber(words[0]) {
			err = ErrOpcodeMissing
		} else {
			err = ErrInstructionInvalid
		}
		return
	}

	return
}

// isNumber is true for words that look like a numeric literal.
func isNumber(word string) bool {
	if len(word) > 1 && word[0] == '~' {
		word = word[1:]
	}
	return len(word) > 0 && word[0] >= '0' && word[0] <= '9'
}

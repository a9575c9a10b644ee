package copper

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode is one assembled instruction with its source location.
type Opcode struct {
	LineNo      int
	Index       int
	Words       []string
	Instruction Instruction
	LinkLabel   string
}

// Program is an ordered copper list.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode of an instruction index.
type Debug struct {
	*Opcode
}

// NewProgram creates a program from symbolic instructions.
func NewProgram(insts ...Instruction) (prog *Program) {
	prog = &Program{}
	for n, inst := range insts {
		prog.Opcodes = append(prog.Opcodes, Opcode{Index: n, Instruction: inst})
	}

	return
}

// Len is the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Instructions iterates over the program in order.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(index int, inst Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Index, op.Instruction) {
				return
			}
		}
	}
}

// List returns the instructions of the program.
func (prog *Program) List() (insts []Instruction) {
	for _, inst := range prog.Instructions() {
		insts = append(insts, inst)
	}

	return
}

// Validate checks the program fits copper memory and that every jump
// stays inside the program.
func (prog *Program) Validate() (err error) {
	_, err = prog.Binary()
	return
}

// Binary returns the encoded word stream of the program.
func (prog *Program) Binary() (words []uint16, err error) {
	return Encode(prog.List())
}

// Debug finds the opcode for an instruction index.
func (prog *Program) Debug(index int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if op.Index == index {
			dbg = Debug{Opcode: &prog.Opcodes[n]}
			break
		}
	}

	return
}

// LineNo returns the source line of an instruction index, or 0 if unknown.
func (prog *Program) LineNo(index int) int {
	dbg := prog.Debug(index)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Listing renders the program as an address, code and source listing.
func (prog *Program) Listing() (text string, err error) {
	var sb strings.Builder
	for _, op := range prog.Opcodes {
		var code Code
		code, err = op.Instruction.Encode()
		if err != nil {
			return
		}
		fmt.Fprintf(&sb, "%03x: %v  %v\n", op.Index, code, op.Instruction)
	}

	text = sb.String()
	return
}

package copper

import (
	"fmt"
)

// CodeClass is the instruction class in the top nibble of the opcode word.
type CodeClass uint16

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	CLASS_WAIT  = CodeClass(0x0) // wait
	CLASS_SKIP  = CodeClass(0x2) // skip
	CLASS_JUMP  = CodeClass(0x4) // jmp
	CLASS_MOVEP = CodeClass(0xb) // movep
)

// Flags are the condition bits in the low nibble of a wait or skip operand.
type Flags uint16

const (
	FLAG_IGNORE_LINE   = Flags(0b0001) // Do not compare the line.
	FLAG_IGNORE_COLUMN = Flags(0b0010) // Do not compare the column.
	FLAG_COMBINE_OR    = Flags(0b0100) // Either axis may satisfy the condition.
	FLAG_EXACT         = Flags(0b1000) // Compare for equality, not at-or-past.
)

// Bit fields of the instruction words.
const (
	CLASS_SHIFT   = 12
	LINE_MASK     = 0x7ff // opcode [10:0]
	COLUMN_SHIFT  = 4
	COLUMN_MASK   = 0x7ff // operand [14:4]
	FLAGS_MASK    = 0xf   // operand [3:0]
	TARGET_MASK   = 0x7ff // opcode [10:0]
	REGISTER_MASK = 0xff  // opcode [7:0]

	NEXTF_OPCODE  = 0x0000
	NEXTF_OPERAND = uint16(FLAG_IGNORE_LINE | FLAG_IGNORE_COLUMN)
)

// Code is the binary form of one instruction.
type Code struct {
	Opcode  uint16
	Operand uint16
}

func makeClass(class CodeClass, bits uint16) uint16 {
	return (uint16(class) << CLASS_SHIFT) | bits
}

// MakeCodeWait creates a wait instruction.
func MakeCodeWait(flags Flags, line, column uint16) Code {
	return Code{
		Opcode:  makeClass(CLASS_WAIT, line&LINE_MASK),
		Operand: ((column & COLUMN_MASK) << COLUMN_SHIFT) | uint16(flags&FLAGS_MASK),
	}
}

// MakeCodeSkip creates a skip instruction.
func MakeCodeSkip(flags Flags, line, column uint16) Code {
	code := MakeCodeWait(flags, line, column)
	code.Opcode |= makeClass(CLASS_SKIP, 0)
	return code
}

// MakeCodeJump creates an absolute jump to an instruction index.
func MakeCodeJump(target uint16) Code {
	return Code{Opcode: makeClass(CLASS_JUMP, target&TARGET_MASK)}
}

// MakeCodeMovep creates a peripheral register write.
func MakeCodeMovep(reg Register, value uint16) Code {
	return Code{
		Opcode:  makeClass(CLASS_MOVEP, uint16(reg)&REGISTER_MASK),
		Operand: value,
	}
}

// MakeCodeNextFrame creates the end-of-frame sentinel.
func MakeCodeNextFrame() Code {
	return Code{Opcode: NEXTF_OPCODE, Operand: NEXTF_OPERAND}
}

// Class returns the instruction class of the opcode word.
func (code Code) Class() CodeClass {
	return CodeClass(code.Opcode >> CLASS_SHIFT)
}

// IsNextFrame is true for the end-of-frame sentinel.
func (code Code) IsNextFrame() bool {
	return code.Opcode == NEXTF_OPCODE && code.Operand == NEXTF_OPERAND
}

// WaitDecode decodes the fields of a wait or skip instruction.
func (code Code) WaitDecode() (flags Flags, line, column uint16) {
	line = code.Opcode & LINE_MASK
	column = (code.Operand >> COLUMN_SHIFT) & COLUMN_MASK
	flags = Flags(code.Operand & FLAGS_MASK)
	return
}

// JumpDecode decodes the target of a jump.
func (code Code) JumpDecode() (target uint16) {
	target = code.Opcode & TARGET_MASK
	return
}

// MovepDecode decodes the register and value of a peripheral write.
func (code Code) MovepDecode() (reg Register, value uint16) {
	reg = Register(code.Opcode & REGISTER_MASK)
	value = code.Operand
	return
}

// reserved returns the bits of the code that must be zero for its class.
func (code Code) reserved() (opcode, operand uint16) {
	switch code.Class() {
	case CLASS_WAIT, CLASS_SKIP:
		opcode = code.Opcode & 0x0800
		operand = code.Operand & 0x8000
	case CLASS_JUMP:
		opcode = code.Opcode & 0x0800
		operand = code.Operand
	case CLASS_MOVEP:
		opcode = code.Opcode & 0x0f00
	}
	return
}

// Words returns the opcode and operand words, in memory order.
func (code Code) Words() [2]uint16 {
	return [2]uint16{code.Opcode, code.Operand}
}

func (code Code) String() string {
	return fmt.Sprintf("%04x %04x", code.Opcode, code.Operand)
}

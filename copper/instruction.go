package copper

import (
	"errors"
	"fmt"
)

// Kind is the kind of a copper instruction.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_WAIT       = Kind(0) // wait
	KIND_SKIP       = Kind(1) // skip
	KIND_JUMP       = Kind(2) // jmp
	KIND_MOVEP      = Kind(3) // movep
	KIND_NEXT_FRAME = Kind(4) // nextf
)

// Instruction is a decoded copper instruction: one of Wait, Skip, Jump,
// Movep or NextFrame.
type Instruction interface {
	Kind() Kind
	Encode() (Code, error)
	String() string

	instruction()
}

// Wait holds the program counter until the condition holds.
type Wait struct {
	Condition
}

// Skip steps over the next instruction when the condition holds.
type Skip struct {
	Condition
}

// Jump continues execution at an absolute instruction index.
type Jump struct {
	Target uint16
}

// Movep writes a value to a peripheral register.
type Movep struct {
	Register Register
	Value    uint16
}

// NextFrame suspends the copper until the next frame starts.
type NextFrame struct{}

func (Wait) instruction()      {}
func (Skip) instruction()      {}
func (Jump) instruction()      {}
func (Movep) instruction()     {}
func (NextFrame) instruction() {}

func (Wait) Kind() Kind      { return KIND_WAIT }
func (Skip) Kind() Kind      { return KIND_SKIP }
func (Jump) Kind() Kind      { return KIND_JUMP }
func (Movep) Kind() Kind     { return KIND_MOVEP }
func (NextFrame) Kind() Kind { return KIND_NEXT_FRAME }

func (inst Wait) Encode() (code Code, err error) {
	err = inst.check()
	if err != nil {
		return
	}
	flags, _ := inst.Flags()
	code = MakeCodeWait(flags, inst.Line, inst.Column)
	return
}

func (inst Skip) Encode() (code Code, err error) {
	err = inst.check()
	if err != nil {
		return
	}
	flags, _ := inst.Flags()
	code = MakeCodeSkip(flags, inst.Line, inst.Column)
	return
}

func (inst Jump) Encode() (code Code, err error) {
	if inst.Target > TARGET_MASK {
		err = ErrField{Field: "target", Value: int(inst.Target), Limit: TARGET_MASK}
		return
	}
	code = MakeCodeJump(inst.Target)
	return
}

func (inst Movep) Encode() (code Code, err error) {
	code = MakeCodeMovep(inst.Register, inst.Value)
	return
}

func (inst NextFrame) Encode() (code Code, err error) {
	code = MakeCodeNextFrame()
	return
}

func conditionString(op Kind, cond Condition) string {
	flags, _ := cond.Flags()
	return fmt.Sprintf("%v %d, %d, 0b%04b", op, cond.Column, cond.Line, uint16(flags))
}

func (inst Wait) String() string {
	return conditionString(KIND_WAIT, inst.Condition)
}

func (inst Skip) String() string {
	return conditionString(KIND_SKIP, inst.Condition)
}

func (inst Jump) String() string {
	return fmt.Sprintf("%v %d", KIND_JUMP, inst.Target)
}

func (inst Movep) String() string {
	return fmt.Sprintf("%v 0x%04X, 0x%X", KIND_MOVEP, inst.Value, uint8(inst.Register))
}

func (inst NextFrame) String() string {
	return KIND_NEXT_FRAME.String()
}

// Decode converts a code into its instruction. Codes with reserved bits set,
// an unknown class or an invalid condition fail with ErrDecode.
func Decode(code Code) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			inst = nil
			err = errors.Join(ErrDecode, ErrCode(code), err)
		}
	}()

	if code.IsNextFrame() {
		inst = NextFrame{}
		return
	}

	opcode, operand := code.reserved()
	if opcode != 0 || operand != 0 {
		err = ErrReservedBits
		return
	}

	switch code.Class() {
	case CLASS_WAIT, CLASS_SKIP:
		var cond Condition
		cond, err = ConditionOf(code.WaitDecode())
		if err != nil {
			return
		}
		if code.Class() == CLASS_WAIT {
			inst = Wait{cond}
		} else {
			inst = Skip{cond}
		}
	case CLASS_JUMP:
		inst = Jump{Target: code.JumpDecode()}
	case CLASS_MOVEP:
		reg, value := code.MovepDecode()
		inst = Movep{Register: reg, Value: value}
	default:
		err = ErrClassInvalid
	}

	return
}

// Encode converts a whole program into its binary word stream. Jump targets
// must lie inside the program. On any error no words are returned.
func Encode(insts []Instruction) (words []uint16, err error) {
	if len(insts) > COPPER_INSTRUCTIONS {
		err = ErrProgramTooLarge
		return
	}

	for n, inst := range insts {
		jmp, ok := inst.(Jump)
		if ok && int(jmp.Target) >= len(insts) {
			err = ErrJumpTarget{Index: n, Target: jmp.Target, Length: len(insts)}
			return
		}
	}

	out := make([]uint16, 0, len(insts)*2)
	for _, inst := range insts {
		var code Code
		code, err = inst.Encode()
		if err != nil {
			return
		}
		out = append(out, code.Opcode, code.Operand)
	}

	words = out
	return
}

// Disassemble decodes a binary word stream.
func Disassemble(words []uint16) (insts []Instruction, err error) {
	if len(words)%2 != 0 {
		err = errors.Join(ErrDecode, ErrLengthOdd)
		return
	}

	for n := 0; n < len(words); n += 2 {
		var inst Instruction
		inst, err = Decode(Code{Opcode: words[n], Operand: words[n+1]})
		if err != nil {
			insts = nil
			return
		}
		insts = append(insts, inst)
	}

	return
}

package copper

import (
	"errors"

	"github.com/ezrec/copperlist/translate"
)

var f = translate.From

var (
	// Encoding errors
	ErrEncodingOverflow  = errors.New(f("encoding overflow"))
	ErrInvalidJumpTarget = errors.New(f("invalid jump target"))
	ErrProgramTooLarge   = errors.New(f("program too large"))
	ErrConditionInvalid  = errors.New(f("condition invalid"))
	ErrDecode            = errors.New(f("decode"))
	ErrReservedBits      = errors.New(f("reserved bits set"))
	ErrClassInvalid      = errors.New(f("class invalid"))

	// Copper errors
	ErrProgramCounterOverrun = errors.New(f("program counter overrun"))
	ErrCopperArmed           = errors.New(f("copper armed"))
	ErrAddressInvalid        = errors.New(f("address invalid"))
	ErrLengthOdd             = errors.New(f("odd word count"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrField is returned when an operand does not fit its bit field.
type ErrField struct {
	Field string
	Value int
	Limit int
}

func (err ErrField) Error() string {
	return f("%v 0x%x exceeds 0x%x", err.Field, err.Value, err.Limit)
}

func (err ErrField) Unwrap() error {
	return ErrEncodingOverflow
}

// ErrJumpTarget is returned when a jump leaves the program.
type ErrJumpTarget struct {
	Index  int
	Target uint16
	Length int
}

func (err ErrJumpTarget) Error() string {
	return f("instruction %d jmp %d outside of %d instructions", err.Index, err.Target, err.Length)
}

func (err ErrJumpTarget) Unwrap() error {
	return ErrInvalidJumpTarget
}

// ErrCode identifies a word pair that could not be decoded.
type ErrCode Code

func (ec ErrCode) Error() string {
	return f("bad code 0x%04x 0x%04x", ec.Opcode, ec.Operand)
}

func (ec ErrCode) Is(err error) (ok bool) {
	_, ok = err.(ErrCode)
	return
}

// ErrFault records the program counter of a copper fault.
type ErrFault struct {
	Pc  uint16
	Err error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%03x %v", err.Pc, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

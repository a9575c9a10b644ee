// Package loader transfers copper lists into device instruction memory over
// the host bus.
package loader

import (
	"log"

	"github.com/ezrec/copperlist/copper"
	"github.com/ezrec/copperlist/io"
)

// Step is a stage of the load sequence.
type Step int

//go:generate go tool stringer -linecomment -type=Step
const (
	STEP_CHECK  = Step(0) // check
	STEP_DISARM = Step(1) // disarm
	STEP_SELECT = Step(2) // select
	STEP_WRITE  = Step(3) // write
	STEP_VERIFY = Step(4) // verify
	STEP_ARM    = Step(5) // arm
)

// Loader loads copper lists through a Bus.
type Loader struct {
	Verbose bool   // If set, logs each step.
	Verify  bool   // If set, reads back the list before arming.
	Bus     io.Bus // Device bus.
}

// Load disarms the copper, writes the words to copper memory at base, and
// arms the copper. Words must be whole, decodable instructions that fit in
// memory at an instruction aligned base, and jumps may not pass the end of
// the list.
func (ld *Loader) Load(words []uint16, base uint16) (err error) {
	step := STEP_CHECK
	index := 0
	defer func() {
		if err != nil {
			err = &ErrLoad{Step: step, Index: index, Err: err}
		}
	}()

	if len(words)%2 != 0 {
		err = copper.ErrLengthOdd
		return
	}
	if base%2 != 0 {
		err = copper.ErrAddressInvalid
		return
	}
	if int(base)+len(words) > copper.COPPER_MEM_WORDS {
		err = copper.ErrProgramTooLarge
		return
	}

	end := int(base/2) + len(words)/2
	for n := 0; n < len(words); n += 2 {
		index = n
		var inst copper.Instruction
		inst, err = copper.Decode(copper.Code{Opcode: words[n], Operand: words[n+1]})
		if err != nil {
			return
		}
		if jmp, ok := inst.(copper.Jump); ok && int(jmp.Target) >= end {
			err = copper.ErrJumpTarget{Index: n / 2, Target: jmp.Target, Length: end}
			return
		}
	}
	index = 0

	if ld.Verbose {
		log.Printf("loader: %d instructions at 0x%04x", len(words)/2, io.XR_COPPER_MEM+base)
	}

	step = STEP_DISARM
	err = io.XRegSetW(ld.Bus, io.XR_COPP_CTRL, 0)
	if err != nil {
		return
	}

	step = STEP_SELECT
	err = ld.Bus.SetW(io.XM_XR_ADDR, io.XR_COPPER_MEM+base)
	if err != nil {
		return
	}

	step = STEP_WRITE
	for n, word := range words {
		index = n
		err = ld.Bus.SetW(io.XM_XR_DATA, word)
		if err != nil {
			return
		}
	}

	if ld.Verify {
		step = STEP_VERIFY
		index = 0
		for xreg, word := range io.XRegRange(ld.Bus, io.XR_COPPER_MEM+base, len(words), &err) {
			if word != words[index] {
				err = ErrMismatch{Expected: words[index], Actual: word}
				if ld.Verbose {
					log.Printf("loader: 0x%04x %v", xreg, err)
				}
				return
			}
			index++
		}
		if err != nil {
			return
		}
	}

	step = STEP_ARM
	index = 0
	err = io.XRegSetW(ld.Bus, io.XR_COPP_CTRL, copper.COPP_CTRL_ENABLE)
	return
}

// LoadProgram encodes a program and loads it at the start of copper memory.
func (ld *Loader) LoadProgram(prog *copper.Program) (err error) {
	words, err := prog.Binary()
	if err != nil {
		err = &ErrLoad{Step: STEP_CHECK, Err: err}
		return
	}

	err = ld.Load(words, 0)
	return
}

// Load loads words at base through bus.
func Load(bus io.Bus, words []uint16, base uint16) (err error) {
	ld := &Loader{Bus: bus}
	return ld.Load(words, base)
}

// LoadProgram loads a program through bus.
func LoadProgram(bus io.Bus, prog *copper.Program) (err error) {
	ld := &Loader{Bus: bus}
	return ld.LoadProgram(prog)
}

package copper

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/copperlist/raster"
)

const (
	COPPER_INSTRUCTIONS = 2048                    // Instructions in copper memory.
	COPPER_MEM_WORDS    = COPPER_INSTRUCTIONS * 2 // 16-bit words in copper memory.

	COPP_CTRL_ENABLE = uint16(1 << 15) // Control register arm bit.
)

// State is the copper execution state, as of the last tick.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_DISARMED        = State(0) // disarmed
	STATE_FETCHING        = State(1) // fetching
	STATE_SKIPPING        = State(2) // skipping
	STATE_WAITING         = State(3) // waiting
	STATE_JUMPING         = State(4) // jumping
	STATE_WRITING         = State(5) // writing
	STATE_FRAME_SUSPENDED = State(6) // frame-suspended
	STATE_FAULTED         = State(7) // faulted
)

// Copper is the reference model of the copper coprocessor.
//
// It is advanced by an external clock: the owner of the raster beam calls
// Tick once per pixel clock, and StartFrame at the start of every frame.
type Copper struct {
	Verbose bool // Set to enable verbose logging.

	Memory [COPPER_MEM_WORDS]uint16 // Instruction memory.
	Length int                      // Instructions loaded.

	Pc        uint16       // Index of the next instruction to fetch.
	State     State        // Execution state.
	Registers RegisterFile // Peripheral register file.

	Ticks int // Executed ticks counter.

	fault error
	fresh bool // Next memory write starts a new program.
}

// NewCopper creates a disarmed copper with empty memory.
func NewCopper() (cu *Copper) {
	cu = &Copper{}

	return
}

// Reset the copper to its power-on state.
// - Disarms the copper.
// - Clears instruction memory and the register file.
// - Zeros the tick counter.
func (cu *Copper) Reset() {
	if cu.Verbose {
		log.Printf("copper: reset")
	}

	cu.Disarm()
	clear(cu.Memory[:])
	cu.Length = 0
	cu.Registers.Reset()
	cu.Ticks = 0
}

// Armed is true while the copper executes (or is suspended in) its list.
func (cu *Copper) Armed() bool {
	return cu.State != STATE_DISARMED
}

// Arm the copper. Execution begins at instruction 0 on the next
// StartFrame. Registers keep their values.
func (cu *Copper) Arm() {
	if cu.Verbose {
		log.Printf("copper: arm, %d instructions", cu.Length)
	}

	cu.Pc = 0
	cu.fault = nil
	cu.fresh = false
	cu.State = STATE_FRAME_SUSPENDED
}

// Disarm stops execution. The next memory write begins a new program.
func (cu *Copper) Disarm() {
	if cu.Verbose && cu.Armed() {
		log.Printf("copper: disarm at pc 0x%03x", cu.Pc)
	}

	cu.fault = nil
	cu.fresh = true
	cu.State = STATE_DISARMED
}

// Control returns the value of the control register.
func (cu *Copper) Control() (value uint16) {
	if cu.Armed() {
		value = COPP_CTRL_ENABLE
	}
	return
}

// SetControl writes the control register. Setting the enable bit of an
// armed copper leaves it running.
func (cu *Copper) SetControl(value uint16) {
	enable := value&COPP_CTRL_ENABLE != 0
	switch {
	case enable && !cu.Armed():
		cu.Arm()
	case !enable:
		cu.Disarm()
	}
}

// WriteMemory writes a word of instruction memory. The program may only be
// replaced while the copper is disarmed.
func (cu *Copper) WriteMemory(addr uint16, value uint16) (err error) {
	if cu.Armed() {
		err = ErrCopperArmed
		return
	}

	if int(addr) >= len(cu.Memory) {
		err = ErrAddressInvalid
		return
	}

	cu.Memory[addr] = value
	if cu.fresh {
		cu.Length = int(addr/2) + 1
		cu.fresh = false
	} else {
		cu.Length = max(cu.Length, int(addr/2)+1)
	}

	return
}

// ReadMemory reads a word of instruction memory.
func (cu *Copper) ReadMemory(addr uint16) (value uint16, err error) {
	if int(addr) >= len(cu.Memory) {
		err = ErrAddressInvalid
		return
	}

	value = cu.Memory[addr]
	return
}

// Load replaces the program with a word stream, starting at address 0.
func (cu *Copper) Load(words []uint16) (err error) {
	if len(words)%2 != 0 {
		err = ErrLengthOdd
		return
	}
	if len(words) > len(cu.Memory) {
		err = ErrProgramTooLarge
		return
	}
	if cu.Armed() {
		err = ErrCopperArmed
		return
	}

	clear(cu.Memory[:])
	copy(cu.Memory[:], words)
	cu.Length = len(words) / 2
	cu.fresh = false

	return
}

// Fetch decodes the instruction at the program counter.
func (cu *Copper) Fetch() (inst Instruction, err error) {
	if int(cu.Pc) >= cu.Length {
		err = ErrProgramCounterOverrun
		return
	}

	addr := int(cu.Pc) * 2
	inst, err = Decode(Code{Opcode: cu.Memory[addr], Operand: cu.Memory[addr+1]})
	return
}

// StartFrame signals the start of a new frame. A copper suspended by nextf,
// or newly armed, resumes at instruction 0.
func (cu *Copper) StartFrame() {
	if cu.State != STATE_FRAME_SUSPENDED {
		return
	}

	if cu.Verbose {
		log.Printf("copper: frame start")
	}

	cu.Pc = 0
	cu.State = STATE_FETCHING
}

// Tick executes a single copper instruction at the raster position.
// A fault is permanent until the copper is disarmed or re-armed.
func (cu *Copper) Tick(pos raster.Position) (err error) {
	switch cu.State {
	case STATE_DISARMED, STATE_FRAME_SUSPENDED:
		return
	case STATE_FAULTED:
		return cu.fault
	}

	pc := cu.Pc
	defer func() {
		if err != nil {
			err = &ErrFault{Pc: pc, Err: err}
			cu.fault = err
			cu.State = STATE_FAULTED
			if cu.Verbose {
				log.Printf("copper: %v", err)
			}
		}
	}()

	inst, err := cu.Fetch()
	if err != nil {
		return
	}

	err = cu.Execute(inst, pos)
	if err != nil {
		return
	}

	cu.Ticks += 1

	return
}

// Execute executes a single decoded instruction at the raster position.
func (cu *Copper) Execute(inst Instruction, pos raster.Position) (err error) {
	if cu.Verbose {
		log.Printf("%03x: %v @ %v", cu.Pc, inst, pos)
	}

	next_pc := int(cu.Pc) + 1

	switch inst := inst.(type) {
	case Skip:
		cu.State = STATE_SKIPPING
		if inst.Holds(pos) {
			next_pc++
		}
	case Wait:
		cu.State = STATE_WAITING
		if !inst.Holds(pos) {
			// Don't advance to next pc.
			next_pc = int(cu.Pc)
		}
	case Jump:
		cu.State = STATE_JUMPING
		next_pc = int(inst.Target)
	case Movep:
		cu.State = STATE_WRITING
		cu.Registers.Write(inst.Register, inst.Value)
	case NextFrame:
		cu.State = STATE_FRAME_SUSPENDED
		return
	default:
		err = errors.Join(ErrDecode, fmt.Errorf("%T", inst))
		return
	}

	if next_pc >= cu.Length {
		err = ErrProgramCounterOverrun
		return
	}

	cu.Pc = uint16(next_pc)

	return
}

// String returns the current copper state as a string.
func (cu *Copper) String() (text string) {
	text += fmt.Sprintf("% 7s: %v\n", "state", cu.State)
	text += fmt.Sprintf("% 7s: %03x\n", "pc", cu.Pc)
	text += fmt.Sprintf("% 7s: %d\n", "length", cu.Length)
	text += fmt.Sprintf("% 7s: %d\n", "ticks", cu.Ticks)
	text += fmt.Sprintf("% 7s: %04x\n", "bg", cu.Registers.Read(COLOR_BG))
	text += fmt.Sprintf("% 7s: %04x\n", "fg", cu.Registers.Read(COLOR_FG))

	return
}

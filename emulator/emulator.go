// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/copperlist/copper"
	"github.com/ezrec/copperlist/internal"
	"github.com/ezrec/copperlist/io"
	"github.com/ezrec/copperlist/raster"
)

const (
	DEFAULT_VERSION = 0x0025     // Reported XR_VERSION.
	DEFAULT_GITHASH = 0xa1b2c3d4 // Reported XR_GITHASH_H:XR_GITHASH_L.

	PA_TILE_CTRL_DEFAULT = 0x000f // 8x16 text tiles.
)

var _emulator_defines = map[string]string{
	"XR_COPP_CTRL":  fmt.Sprintf("%#x", io.XR_COPP_CTRL),
	"XR_COLOR_MEM":  fmt.Sprintf("%#x", io.XR_COLOR_MEM),
	"XR_COPPER_MEM": fmt.Sprintf("%#x", io.XR_COPPER_MEM),
	"COPP_ENABLE":   fmt.Sprintf("%#x", copper.COPP_CTRL_ENABLE),
}

// Sampler observes the register file at the last column of a line.
type Sampler func(pos raster.Position, regs *copper.RegisterFile)

// Emulator state. Copper + raster beam + device registers.
type Emulator struct {
	Verbose        bool            // If set, enables verbose logging.
	*copper.Copper                 // Reference to the copper.
	Program        *copper.Program // Program listing used for error locations, if any.
	Beam           raster.Beam     // Raster beam driving the copper.

	Version uint16 // XR_VERSION value.
	GitHash uint32 // XR_GITHASH_H:XR_GITHASH_L value.

	xrAddr    uint16
	vidCtrl   uint16
	playfield [5]uint16 // XR_PA_GFX_CTRL through XR_PA_HV_SCROLL
}

var _ io.Bus = (*Emulator)(nil)

// NewEmulator creates a powered-on emulator running a video mode.
func NewEmulator(timing raster.Timing) (emu *Emulator) {
	emu = &Emulator{
		Copper:  copper.NewCopper(),
		Program: &copper.Program{},
		Beam:    raster.Beam{Timing: timing},
		Version: DEFAULT_VERSION,
		GitHash: DEFAULT_GITHASH,
	}

	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Beam.Timing.Defines(),
	)
}

// Reset restores the power-on state. The copper is disarmed and its
// memory cleared, the beam returns to the top of frame 0.
func (emu *Emulator) Reset() {
	emu.Copper.Verbose = emu.Verbose
	emu.Copper.Reset()
	emu.Beam.Reset()

	emu.xrAddr = 0
	emu.vidCtrl = 0
	emu.playfield = [5]uint16{
		0,
		PA_TILE_CTRL_DEFAULT,
		0,
		emu.Beam.Width / 8,
		0,
	}
}

// SetW writes a main register.
func (emu *Emulator) SetW(reg uint8, value uint16) (err error) {
	switch reg {
	case io.XM_XR_ADDR:
		emu.xrAddr = value
	case io.XM_XR_DATA:
		err = emu.xrSetW(emu.xrAddr, value)
		if err != nil {
			err = &io.ErrAccess{Write: true, Reg: emu.xrAddr, Err: err}
			return
		}
		emu.xrAddr++
	case io.XM_SCANLINE:
		err = &io.ErrAccess{Write: true, Reg: uint16(reg), Err: io.ErrRegisterReadOnly}
	default:
		err = &io.ErrAccess{Write: true, Reg: uint16(reg), Err: io.ErrRegisterInvalid}
	}

	return
}

// GetW reads a main register.
func (emu *Emulator) GetW(reg uint8) (value uint16, err error) {
	switch reg {
	case io.XM_XR_ADDR:
		value = emu.xrAddr
	case io.XM_XR_DATA:
		value, err = emu.xrGetW(emu.xrAddr)
		if err != nil {
			err = &io.ErrAccess{Reg: emu.xrAddr, Err: err}
		}
	case io.XM_SCANLINE:
		value = emu.Beam.Line
	default:
		err = &io.ErrAccess{Reg: uint16(reg), Err: io.ErrRegisterInvalid}
	}

	return
}

func inRange(xreg uint16, base uint16, size int) (offset uint16, ok bool) {
	if xreg < base || int(xreg-base) >= size {
		return
	}

	offset = xreg - base
	ok = true
	return
}

func (emu *Emulator) xrSetW(xreg uint16, value uint16) (err error) {
	if emu.Verbose {
		log.Printf("xr: 0x%04x <- 0x%04x", xreg, value)
	}

	if offset, ok := inRange(xreg, io.XR_COLOR_MEM, io.XR_COLOR_SIZE); ok {
		emu.Copper.Registers.Write(copper.Register(offset), value)
		return
	}

	if offset, ok := inRange(xreg, io.XR_COPPER_MEM, io.XR_COPPER_SIZE); ok {
		err = emu.Copper.WriteMemory(offset, value)
		return
	}

	if offset, ok := inRange(xreg, io.XR_PA_GFX_CTRL, len(emu.playfield)); ok {
		emu.playfield[offset] = value
		return
	}

	switch xreg {
	case io.XR_VID_CTRL:
		emu.vidCtrl = value
	case io.XR_COPP_CTRL:
		emu.Copper.SetControl(value)
	case io.XR_VID_HSIZE, io.XR_VID_VSIZE, io.XR_VID_VFREQ,
		io.XR_VERSION, io.XR_GITHASH_H, io.XR_GITHASH_L:
		err = io.ErrRegisterReadOnly
	default:
		err = io.ErrRegisterInvalid
	}

	return
}

func (emu *Emulator) xrGetW(xreg uint16) (value uint16, err error) {
	if offset, ok := inRange(xreg, io.XR_COLOR_MEM, io.XR_COLOR_SIZE); ok {
		value = emu.Copper.Registers.Read(copper.Register(offset))
		return
	}

	if offset, ok := inRange(xreg, io.XR_COPPER_MEM, io.XR_COPPER_SIZE); ok {
		value, err = emu.Copper.ReadMemory(offset)
		return
	}

	if offset, ok := inRange(xreg, io.XR_PA_GFX_CTRL, len(emu.playfield)); ok {
		value = emu.playfield[offset]
		return
	}

	switch xreg {
	case io.XR_VID_CTRL:
		value = emu.vidCtrl
	case io.XR_COPP_CTRL:
		value = emu.Copper.Control()
	case io.XR_VID_HSIZE:
		value = emu.Beam.Width
	case io.XR_VID_VSIZE:
		value = emu.Beam.Height
	case io.XR_VID_VFREQ:
		value = emu.Beam.Refresh
	case io.XR_VERSION:
		value = emu.Version
	case io.XR_GITHASH_H:
		value = uint16(emu.GitHash >> 16)
	case io.XR_GITHASH_L:
		value = uint16(emu.GitHash)
	default:
		err = io.ErrRegisterInvalid
	}

	return
}

// LineNo returns the source line of the instruction at the copper pc.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	return emu.Program.LineNo(int(emu.Copper.Pc))
}

// Tick performs a single pixel clock: one copper tick at the beam position,
// then the beam advances. The first tick of a frame restarts a suspended
// copper at instruction 0.
func (emu *Emulator) Tick() (newFrame bool, err error) {
	emu.Copper.Verbose = emu.Verbose

	pos := emu.Beam.Position
	if pos == (raster.Position{}) {
		emu.Copper.StartFrame()
	}

	err = emu.Copper.Tick(pos)
	if err != nil {
		runtime := &ErrRuntime{Pc: emu.Copper.Pc, Err: err}
		var fault *copper.ErrFault
		if errors.As(err, &fault) {
			runtime.Pc = fault.Pc
		}
		if emu.Program != nil {
			runtime.LineNo = emu.Program.LineNo(int(runtime.Pc))
		}
		err = runtime
	}

	newFrame = emu.Beam.Advance()

	return
}

// RunLine ticks through the rest of the current line. The sampler, if
// any, is called after the tick at the last column.
func (emu *Emulator) RunLine(sample Sampler) (newFrame bool, err error) {
	for {
		pos := emu.Beam.Position
		eol := emu.Beam.EndOfLine()

		newFrame, err = emu.Tick()
		if err != nil {
			return
		}

		if eol {
			if sample != nil {
				sample(pos, &emu.Copper.Registers)
			}
			return
		}
	}
}

// RunFrame ticks through the rest of the current frame.
func (emu *Emulator) RunFrame(sample Sampler) (err error) {
	for newFrame := false; !newFrame; {
		newFrame, err = emu.RunLine(sample)
		if err != nil {
			return
		}
	}

	return
}

// String returns the beam and copper state as a string.
func (emu *Emulator) String() (text string) {
	text += fmt.Sprintf("% 7s: %v\n", "mode", emu.Beam.Timing)
	text += fmt.Sprintf("% 7s: %v\n", "beam", &emu.Beam)
	text += emu.Copper.String()

	return
}

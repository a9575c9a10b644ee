package copper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/copperlist/raster"
)

func loadCopper(t *testing.T, insts ...Instruction) (cu *Copper) {
	words, err := Encode(insts)
	if err != nil {
		t.Fatal(err)
	}

	cu = NewCopper()
	cu.Verbose = testing.Verbose()
	err = cu.Load(words)
	if err != nil {
		t.Fatal(err)
	}
	cu.Arm()
	cu.StartFrame()

	return
}

func TestCopperSkip(t *testing.T) {
	conds := []Condition{
		LineAtOrPast(100),
		{Axis: AXIS_COLUMN, Compare: CMP_EXACT, Column: 12},
		{Axis: AXIS_BOTH_AND, Line: 100, Column: 12},
		{Axis: AXIS_BOTH_OR, Line: 100, Column: 12},
	}

	positions := []raster.Position{
		{Line: 0, Column: 0},
		{Line: 99, Column: 12},
		{Line: 100, Column: 0},
		{Line: 100, Column: 12},
		{Line: 524, Column: 799},
	}

	for _, cond := range conds {
		for _, pos := range positions {
			assert := assert.New(t)

			cu := loadCopper(t, Skip{cond}, NextFrame{}, NextFrame{}, NextFrame{})
			err := cu.Tick(pos)
			assert.NoError(err)

			expected := uint16(1)
			if cond.Holds(pos) {
				expected = 2
			}
			assert.Equal(expected, cu.Pc, "%v @ %v", cond, pos)
			assert.Equal(STATE_SKIPPING, cu.State)
			assert.Equal(1, cu.Ticks)
		}
	}
}

func TestCopperJump(t *testing.T) {
	assert := assert.New(t)

	insts := make([]Instruction, 16)
	for n := range insts {
		insts[n] = NextFrame{}
	}

	for target := range uint16(len(insts)) {
		insts[0] = Jump{Target: target}
		cu := loadCopper(t, insts...)
		cu.Registers.Write(COLOR_BG, 0x1234)
		before := cu.Registers

		assert.NoError(cu.Tick(raster.Position{Line: 10, Column: 20}))
		assert.Equal(target, cu.Pc)
		assert.Equal(STATE_JUMPING, cu.State)
		assert.Equal(before, cu.Registers)
	}
}

func TestCopperMovep(t *testing.T) {
	assert := assert.New(t)

	cu := loadCopper(t, Movep{Register: 0xff, Value: 0xbeef}, NextFrame{})
	assert.NoError(cu.Tick(raster.Position{}))
	assert.Equal(uint16(0xbeef), cu.Registers.Read(0xff))
	assert.Equal(uint16(1), cu.Pc)
	assert.Equal(STATE_WRITING, cu.State)
}

func TestCopperWait(t *testing.T) {
	assert := assert.New(t)

	cu := loadCopper(t,
		Wait{LineAtOrPast(3)},
		Movep{Register: COLOR_BG, Value: 0x0f00},
		NextFrame{},
	)

	for line := range uint16(3) {
		for column := range uint16(10) {
			assert.NoError(cu.Tick(raster.Position{Line: line, Column: column}))
			assert.Equal(uint16(0), cu.Pc)
			assert.Equal(STATE_WAITING, cu.State)
			assert.Equal(uint16(0), cu.Registers.Read(COLOR_BG))
		}
	}

	assert.NoError(cu.Tick(raster.Position{Line: 3}))
	assert.Equal(uint16(1), cu.Pc)
	assert.NoError(cu.Tick(raster.Position{Line: 3, Column: 1}))
	assert.Equal(uint16(0x0f00), cu.Registers.Read(COLOR_BG))
}

func TestCopperNextFrame(t *testing.T) {
	assert := assert.New(t)

	positions := []raster.Position{
		{Line: 0, Column: 0},
		{Line: 160, Column: 400},
		{Line: 524, Column: 799},
	}

	for _, pos := range positions {
		cu := loadCopper(t, Movep{Register: COLOR_FG, Value: 7}, NextFrame{}, Jump{Target: 0})
		assert.NoError(cu.Tick(pos))
		assert.NoError(cu.Tick(pos))
		assert.Equal(STATE_FRAME_SUSPENDED, cu.State)
		assert.Equal(uint16(1), cu.Pc)
		assert.True(cu.Armed())

		// Suspended until the frame starts.
		ticks := cu.Ticks
		assert.NoError(cu.Tick(pos))
		assert.Equal(STATE_FRAME_SUSPENDED, cu.State)
		assert.Equal(ticks, cu.Ticks)

		cu.StartFrame()
		assert.Equal(uint16(0), cu.Pc)
		assert.Equal(STATE_FETCHING, cu.State)
	}
}

func TestCopperStartFrameRunning(t *testing.T) {
	assert := assert.New(t)

	cu := loadCopper(t, Movep{Register: COLOR_FG, Value: 7}, Wait{LineAtOrPast(10)}, NextFrame{})
	assert.NoError(cu.Tick(raster.Position{}))
	assert.Equal(uint16(1), cu.Pc)

	// Only a suspended copper restarts.
	cu.StartFrame()
	assert.Equal(uint16(1), cu.Pc)

	cu.Disarm()
	cu.StartFrame()
	assert.Equal(STATE_DISARMED, cu.State)
}

func TestCopperOverrun(t *testing.T) {
	assert := assert.New(t)

	cu := loadCopper(t, Movep{Register: COLOR_BG, Value: 0x0f00})

	err := cu.Tick(raster.Position{})
	assert.ErrorIs(err, ErrProgramCounterOverrun)

	var fault *ErrFault
	assert.True(errors.As(err, &fault))
	assert.Equal(uint16(0), fault.Pc)
	assert.Equal(STATE_FAULTED, cu.State)

	// Faults persist.
	for range 3 {
		assert.Equal(err, cu.Tick(raster.Position{Line: 1}))
		assert.Equal(STATE_FAULTED, cu.State)
	}
	assert.True(cu.Armed())

	cu.Disarm()
	assert.NoError(cu.Tick(raster.Position{}))
	assert.Equal(STATE_DISARMED, cu.State)
}

func TestCopperOverrunSkip(t *testing.T) {
	assert := assert.New(t)

	// A taken skip past the last instruction overruns.
	cu := loadCopper(t, Movep{}, Skip{LineAtOrPast(0)})
	assert.NoError(cu.Tick(raster.Position{}))
	err := cu.Tick(raster.Position{})
	assert.ErrorIs(err, ErrProgramCounterOverrun)
	assert.Equal(uint16(1), err.(*ErrFault).Pc)
}

func TestCopperDecodeFault(t *testing.T) {
	assert := assert.New(t)

	cu := NewCopper()
	assert.NoError(cu.Load([]uint16{0x1000, 0x0000}))
	cu.Arm()
	cu.StartFrame()

	err := cu.Tick(raster.Position{})
	assert.ErrorIs(err, ErrDecode)
	assert.ErrorIs(err, ErrClassInvalid)
	assert.Equal(STATE_FAULTED, cu.State)

	// Arming again clears the fault.
	cu.Arm()
	assert.Equal(STATE_FRAME_SUSPENDED, cu.State)
	assert.NoError(cu.Tick(raster.Position{}))
}

func TestCopperArm(t *testing.T) {
	assert := assert.New(t)

	words, err := Encode([]Instruction{Movep{Register: COLOR_BG, Value: 0x0f00}, NextFrame{}})
	assert.NoError(err)

	cu := NewCopper()
	assert.NoError(cu.Load(words))
	cu.Pc = 1

	// Armed mid-frame, nothing runs until the frame starts.
	cu.Arm()
	assert.True(cu.Armed())
	assert.Equal(uint16(0), cu.Pc)
	assert.Equal(STATE_FRAME_SUSPENDED, cu.State)
	for column := range uint16(10) {
		assert.NoError(cu.Tick(raster.Position{Line: 200, Column: column}))
	}
	assert.Equal(uint16(0), cu.Registers.Read(COLOR_BG))
	assert.Equal(0, cu.Ticks)

	cu.StartFrame()
	assert.NoError(cu.Tick(raster.Position{}))
	assert.Equal(uint16(0x0f00), cu.Registers.Read(COLOR_BG))
	assert.Equal(uint16(1), cu.Pc)
}

func TestCopperMemory(t *testing.T) {
	assert := assert.New(t)

	cu := NewCopper()
	assert.Equal(0, cu.Length)

	assert.NoError(cu.WriteMemory(0, 0xb00a))
	assert.Equal(1, cu.Length)
	assert.NoError(cu.WriteMemory(5, 0x0003))
	assert.Equal(3, cu.Length)
	assert.NoError(cu.WriteMemory(1, 0x0007))
	assert.Equal(3, cu.Length)

	value, err := cu.ReadMemory(5)
	assert.NoError(err)
	assert.Equal(uint16(0x0003), value)

	assert.ErrorIs(cu.WriteMemory(COPPER_MEM_WORDS, 0), ErrAddressInvalid)
	_, err = cu.ReadMemory(COPPER_MEM_WORDS)
	assert.ErrorIs(err, ErrAddressInvalid)

	cu.Arm()
	assert.ErrorIs(cu.WriteMemory(0, 0), ErrCopperArmed)
	assert.ErrorIs(cu.Load(bandsWords), ErrCopperArmed)

	cu.Disarm()
	assert.ErrorIs(cu.Load(bandsWords[:3]), ErrLengthOdd)
	assert.ErrorIs(cu.Load(make([]uint16, COPPER_MEM_WORDS+2)), ErrProgramTooLarge)
	assert.NoError(cu.Load(bandsWords))
	assert.Equal(len(bandsInstructions), cu.Length)

	cu.Reset()
	assert.Equal(0, cu.Length)
	assert.Equal(uint16(0), cu.Memory[0])
}

func TestCopperMemoryReload(t *testing.T) {
	assert := assert.New(t)

	cu := NewCopper()
	assert.NoError(cu.Load(bandsWords))
	cu.Arm()

	// The first write after a disarm starts a new program.
	cu.SetControl(0)
	assert.NoError(cu.WriteMemory(0, 0xb000))
	assert.Equal(1, cu.Length)
	for addr, value := range []uint16{0xb000, 0x0fff, 0xb00a, 0x0fff} {
		assert.NoError(cu.WriteMemory(uint16(addr), value))
	}
	assert.Equal(2, cu.Length)

	// No terminator, so the stale tail of the old program is never reached.
	cu.SetControl(COPP_CTRL_ENABLE)
	cu.StartFrame()
	assert.NoError(cu.Tick(raster.Position{}))
	err := cu.Tick(raster.Position{Column: 1})
	assert.ErrorIs(err, ErrProgramCounterOverrun)
	assert.Equal(uint16(0x0fff), cu.Registers.Read(COLOR_FG))

	// Disarming a disarmed copper also starts a new program.
	cu.Disarm()
	for addr, value := range []uint16{0xb000, 0x0fff, 0x0000, 0x0003} {
		assert.NoError(cu.WriteMemory(uint16(addr), value))
	}
	assert.Equal(2, cu.Length)
	cu.SetControl(0)
	assert.NoError(cu.WriteMemory(0, 0x0000))
	assert.Equal(1, cu.Length)
}

func TestCopperControl(t *testing.T) {
	assert := assert.New(t)

	cu := NewCopper()
	assert.NoError(cu.Load(bandsWords))
	assert.Equal(uint16(0), cu.Control())

	cu.SetControl(COPP_CTRL_ENABLE)
	assert.True(cu.Armed())
	assert.Equal(COPP_CTRL_ENABLE, cu.Control())
	assert.Equal(STATE_FRAME_SUSPENDED, cu.State)

	cu.StartFrame()
	assert.NoError(cu.Tick(raster.Position{}))
	assert.Equal(uint16(1), cu.Pc)

	// Enabling an armed copper leaves it running.
	cu.SetControl(COPP_CTRL_ENABLE)
	assert.Equal(uint16(1), cu.Pc)

	cu.SetControl(0)
	assert.False(cu.Armed())
	assert.Equal(uint16(0), cu.Control())
}

func TestCopperBands(t *testing.T) {
	assert := assert.New(t)

	cu := loadCopper(t, bandsInstructions...)
	cu.Verbose = false

	beam := raster.NewBeam(raster.MODE_640x480)
	for beam.Frame < 2 {
		assert.NoError(cu.Tick(beam.Position))

		if beam.EndOfLine() {
			var bg, fg uint16
			switch {
			case beam.Line < 160:
				bg, fg = 0x0f00, 0x0700
			case beam.Line < 320:
				bg, fg = 0x00f0, 0x0070
			default:
				bg, fg = 0x000f, 0x0007
			}
			if cu.Registers.Read(COLOR_BG) != bg || cu.Registers.Read(COLOR_FG) != fg {
				assert.Fail("band", "%v: bg %04x fg %04x", beam, cu.Registers.Read(COLOR_BG), cu.Registers.Read(COLOR_FG))
				return
			}
		}

		if beam.Advance() {
			assert.Equal(STATE_FRAME_SUSPENDED, cu.State)
			cu.StartFrame()
		}
	}
}

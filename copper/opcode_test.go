package copper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		want Code
	}){
		{"skip_160", MakeCodeSkip(FLAG_IGNORE_COLUMN, 160, 0), Code{0x20a0, 0x0002}},
		{"skip_320", MakeCodeSkip(FLAG_IGNORE_COLUMN, 320, 0), Code{0x2140, 0x0002}},
		{"wait_160", MakeCodeWait(FLAG_IGNORE_COLUMN, 160, 0), Code{0x00a0, 0x0002}},
		{"wait_xy", MakeCodeWait(0, 2, 10), Code{0x0002, 0x00a0}},
		{"jmp_10", MakeCodeJump(10), Code{0x400a, 0x0000}},
		{"jmp_0", MakeCodeJump(0), Code{0x4000, 0x0000}},
		{"movep_bg", MakeCodeMovep(COLOR_BG, 0x0f00), Code{0xb000, 0x0f00}},
		{"movep_fg", MakeCodeMovep(COLOR_FG, 0x0700), Code{0xb00a, 0x0700}},
		{"movep_ff", MakeCodeMovep(0xff, 0xffff), Code{0xb0ff, 0xffff}},
		{"nextf", MakeCodeNextFrame(), Code{0x0000, 0x0003}},
	}

	for _, entry := range table {
		assert.Equal(entry.want, entry.code, entry.name)
	}
}

func TestCodeDecodeFields(t *testing.T) {
	assert := assert.New(t)

	code := MakeCodeSkip(FLAG_EXACT|FLAG_COMBINE_OR, 0x7ff, 0x7ff)
	assert.Equal(CLASS_SKIP, code.Class())
	flags, line, column := code.WaitDecode()
	assert.Equal(FLAG_EXACT|FLAG_COMBINE_OR, flags)
	assert.Equal(uint16(0x7ff), line)
	assert.Equal(uint16(0x7ff), column)

	code = MakeCodeJump(0x123)
	assert.Equal(CLASS_JUMP, code.Class())
	assert.Equal(uint16(0x123), code.JumpDecode())

	code = MakeCodeMovep(COLOR_FG, 0xbeef)
	assert.Equal(CLASS_MOVEP, code.Class())
	reg, value := code.MovepDecode()
	assert.Equal(COLOR_FG, reg)
	assert.Equal(uint16(0xbeef), value)

	assert.True(MakeCodeNextFrame().IsNextFrame())
	assert.False(MakeCodeWait(FLAG_IGNORE_COLUMN, 0, 0).IsNextFrame())

	assert.Equal([2]uint16{0xb00a, 0xbeef}, code.Words())
	assert.Equal("b00a beef", code.String())
	assert.Equal("movep", CLASS_MOVEP.String())
	assert.Equal("CodeClass(1)", CodeClass(1).String())
}

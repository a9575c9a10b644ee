package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/copperlist/emulator"
	xio "github.com/ezrec/copperlist/io"
	"github.com/ezrec/copperlist/raster"
)

func TestStatusWriteTo(t *testing.T) {
	assert := assert.New(t)

	status := Status{
		Version:  0x0025,
		GitHash:  0xa1b2c3d4,
		Width:    640,
		Height:   480,
		Refresh:  0x5994,
		TileCtrl: 0x000f,
		LineLen:  0x0050,
	}

	expected := "Xosera v0.25 #a1b2c3d4 Features:0x00\n" +
		"Monitor Mode: 640x480@59.94Hz\n" +
		"\n" +
		"Playfield A:\n" +
		"PA_GFX_CTRL : 0x0000 PA_TILE_CTRL: 0x000f\n" +
		"PA_DISP_ADDR: 0x0000 PA_LINE_LEN : 0x0050\n" +
		"PA_HV_SCROLL: 0x0000\n"

	var buf bytes.Buffer
	n, err := status.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(len(expected)), n)
	assert.Equal(expected, buf.String())
	assert.Equal(expected, status.String())
}

func TestStatusFeatures(t *testing.T) {
	assert := assert.New(t)

	status := Status{Version: 0x8130, Width: 848, Height: 480, Refresh: 0x6000}
	assert.Equal(uint8(0x81), status.Features())

	text := status.String()
	assert.Contains(text, "Xosera v1.30 #00000000 Features:0x81\n")
	assert.Contains(text, "Monitor Mode: 848x480@60.00Hz\n")
}

func TestRead(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator(raster.MODE_640x480)
	assert.NoError(xio.XRegSetW(emu, xio.XR_PA_HV_SCROLL, 0x0102))

	status, err := Read(emu)
	assert.NoError(err)
	assert.Equal(Status{
		Version:  emulator.DEFAULT_VERSION,
		GitHash:  emulator.DEFAULT_GITHASH,
		Width:    640,
		Height:   480,
		Refresh:  0x5994,
		TileCtrl: 0x000f,
		LineLen:  0x0050,
		HVScroll: 0x0102,
	}, status)
}

func TestReadConsole(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator(raster.MODE_640x480)
	status, err := Read(emu)
	assert.NoError(err)

	var buf bytes.Buffer
	_, err = status.WriteTo(&xio.Console{Output: &buf})
	assert.NoError(err)
	assert.Equal("Xosera v0.25 #a1b2c3d4 Features:0x00\r\n"+
		"Monitor Mode: 640x480@59.94Hz\r\n"+
		"\r\n"+
		"Playfield A:\r\n"+
		"PA_GFX_CTRL : 0x0000 PA_TILE_CTRL: 0x000f\r\n"+
		"PA_DISP_ADDR: 0x0000 PA_LINE_LEN : 0x0050\r\n"+
		"PA_HV_SCROLL: 0x0000\r\n", buf.String())
}

type brokenBus struct{}

var errBroken = errors.New("broken")

func (brokenBus) SetW(reg uint8, value uint16) error { return errBroken }
func (brokenBus) GetW(reg uint8) (uint16, error)     { return 0, errBroken }

func TestReadError(t *testing.T) {
	assert := assert.New(t)

	_, err := Read(brokenBus{})
	assert.ErrorIs(err, errBroken)
}

// Package report reads and renders the device status, and summarises the
// color bands a copper list produces.
package report

import (
	"bytes"
	"fmt"
	"io"

	xio "github.com/ezrec/copperlist/io"
)

// Status is the device identification and playfield A configuration.
type Status struct {
	Version uint16 // BCD-style version, feature bits in the high byte.
	GitHash uint32

	Width   uint16 // Monitor visible columns.
	Height  uint16 // Monitor visible lines.
	Refresh uint16 // Monitor refresh in BCD-style hex.

	GfxCtrl  uint16
	TileCtrl uint16
	DispAddr uint16
	LineLen  uint16
	HVScroll uint16
}

var _ io.WriterTo = Status{}

// Read reads the status registers through bus.
func Read(bus xio.Bus) (status Status, err error) {
	var hashHigh, hashLow uint16

	regs := [](struct {
		xreg  uint16
		value *uint16
	}){
		{xio.XR_VERSION, &status.Version},
		{xio.XR_GITHASH_H, &hashHigh},
		{xio.XR_GITHASH_L, &hashLow},
		{xio.XR_VID_HSIZE, &status.Width},
		{xio.XR_VID_VSIZE, &status.Height},
		{xio.XR_VID_VFREQ, &status.Refresh},
		{xio.XR_PA_GFX_CTRL, &status.GfxCtrl},
		{xio.XR_PA_TILE_CTRL, &status.TileCtrl},
		{xio.XR_PA_DISP_ADDR, &status.DispAddr},
		{xio.XR_PA_LINE_LEN, &status.LineLen},
		{xio.XR_PA_HV_SCROLL, &status.HVScroll},
	}

	for _, reg := range regs {
		*reg.value, err = xio.XRegGetW(bus, reg.xreg)
		if err != nil {
			return
		}
	}

	status.GitHash = uint32(hashHigh)<<16 | uint32(hashLow)

	return
}

// Features returns the feature bits of the version register.
func (status Status) Features() uint8 {
	return uint8(status.Version >> 8)
}

// WriteTo renders the status report.
func (status Status) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Xosera v%1x.%02x #%08x Features:0x%02x\n",
		(status.Version>>8)&0xf, status.Version&0xff, status.GitHash, status.Features())
	fmt.Fprintf(&buf, "Monitor Mode: %dx%d@%2x.%02xHz\n",
		status.Width, status.Height, status.Refresh>>8, status.Refresh&0xff)
	fmt.Fprintf(&buf, "\nPlayfield A:\n")
	fmt.Fprintf(&buf, "PA_GFX_CTRL : 0x%04x PA_TILE_CTRL: 0x%04x\n", status.GfxCtrl, status.TileCtrl)
	fmt.Fprintf(&buf, "PA_DISP_ADDR: 0x%04x PA_LINE_LEN : 0x%04x\n", status.DispAddr, status.LineLen)
	fmt.Fprintf(&buf, "PA_HV_SCROLL: 0x%04x\n", status.HVScroll)

	return buf.WriteTo(w)
}

func (status Status) String() string {
	var sb bytes.Buffer
	status.WriteTo(&sb)
	return sb.String()
}

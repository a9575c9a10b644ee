// Package io provides the host side transport to the video device: 16-bit
// main register access, indirect XR register helpers, bus tracing and the
// serial console.
package io

// Bus is the host view of the device main registers.
type Bus interface {
	// SetW writes a 16-bit main register.
	SetW(reg uint8, value uint16) error
	// GetW reads a 16-bit main register.
	GetW(reg uint8) (uint16, error)
}

// Main registers.
const (
	XM_XR_ADDR  = uint8(0x0) // XR register address.
	XM_XR_DATA  = uint8(0x1) // XR register data, writes auto-increment XM_XR_ADDR.
	XM_SCANLINE = uint8(0x2) // Current scan line, read only.
)

// XR registers.
const (
	XR_VID_CTRL     = uint16(0x0000) // Video control.
	XR_COPP_CTRL    = uint16(0x0001) // Copper control, bit 15 arms the copper.
	XR_VID_HSIZE    = uint16(0x0004) // Visible columns, read only.
	XR_VID_VSIZE    = uint16(0x0005) // Visible lines, read only.
	XR_VID_VFREQ    = uint16(0x0006) // Refresh rate in BCD-style hex, read only.
	XR_VERSION      = uint16(0x0008) // BCD-style version and feature bits, read only.
	XR_GITHASH_H    = uint16(0x0009) // Build hash, high word, read only.
	XR_GITHASH_L    = uint16(0x000A) // Build hash, low word, read only.
	XR_PA_GFX_CTRL  = uint16(0x0010) // Playfield A graphics control.
	XR_PA_TILE_CTRL = uint16(0x0011) // Playfield A tile control.
	XR_PA_DISP_ADDR = uint16(0x0012) // Playfield A display address.
	XR_PA_LINE_LEN  = uint16(0x0013) // Playfield A line length.
	XR_PA_HV_SCROLL = uint16(0x0014) // Playfield A scroll.

	XR_COLOR_MEM   = uint16(0x8000) // Peripheral register file.
	XR_COLOR_SIZE  = 0x100
	XR_COPPER_MEM  = uint16(0xC000) // Copper instruction memory.
	XR_COPPER_SIZE = 0x1000
)

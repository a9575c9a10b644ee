package report

import (
	"fmt"
	"io"

	"github.com/ezrec/copperlist/copper"
	"github.com/ezrec/copperlist/raster"
)

// Sample is the pair of colors in effect at the end of a line.
type Sample struct {
	Background uint16
	Foreground uint16
}

// Band is a run of lines sharing the same colors.
type Band struct {
	First int // First line of the band.
	Last  int // Last line of the band, inclusive.
	Sample
}

func (band Band) String() string {
	return fmt.Sprintf("lines %3d-%3d bg 0x%04x fg 0x%04x", band.First, band.Last, band.Background, band.Foreground)
}

// Frame collects one Sample per line of a frame.
type Frame struct {
	Lines []Sample
}

// Sample records the colors of the line at pos. It has the signature of an
// emulator sampler.
func (fr *Frame) Sample(pos raster.Position, regs *copper.RegisterFile) {
	for int(pos.Line) >= len(fr.Lines) {
		fr.Lines = append(fr.Lines, Sample{})
	}

	fr.Lines[pos.Line] = Sample{
		Background: regs.Read(copper.COLOR_BG),
		Foreground: regs.Read(copper.COLOR_FG),
	}
}

// Bands returns the color bands of the frame.
func (fr *Frame) Bands() []Band {
	return Bands(fr.Lines)
}

// Bands collapses per-line samples into contiguous bands.
func Bands(lines []Sample) (bands []Band) {
	for line, sample := range lines {
		if len(bands) > 0 && bands[len(bands)-1].Sample == sample {
			bands[len(bands)-1].Last = line
			continue
		}
		bands = append(bands, Band{First: line, Last: line, Sample: sample})
	}

	return
}

// swatch renders a 12-bit 0RGB color as an ANSI true color block.
func swatch(color uint16) string {
	r := ((color >> 8) & 0xf) * 0x11
	g := ((color >> 4) & 0xf) * 0x11
	b := (color & 0xf) * 0x11
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}

// WriteBands writes one line per band, with color swatches if ansi is set.
func WriteBands(w io.Writer, bands []Band, ansi bool) (err error) {
	for _, band := range bands {
		text := band.String()
		if ansi {
			text = swatch(band.Background) + swatch(band.Foreground) + " " + text
		}
		_, err = fmt.Fprintln(w, text)
		if err != nil {
			return
		}
	}

	return
}

// Package raster models the video timing generator that drives the copper.
//
// A raster position is a (line, column) pair. The beam advances one column
// per pixel clock, wraps to the next line at the end of each line, and wraps
// to line 0 at the end of each frame. Positions cover the whole signal,
// including the blanking intervals, so a frame of MODE_640x480 spans 800
// columns by 525 lines.
package raster

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Position is a raster beam position.
type Position struct {
	Line   uint16 // Scan line, 0 at the top of the frame.
	Column uint16 // Pixel clock within the line, 0 at the left edge.
}

func (pos Position) String() string {
	return fmt.Sprintf("line %03d column %03d", pos.Line, pos.Column)
}

// Timing describes a video mode.
type Timing struct {
	Name    string // Mode name, ie "640x480".
	Width   uint16 // Visible columns.
	Height  uint16 // Visible lines.
	Columns uint16 // Total columns per line, including blanking.
	Lines   uint16 // Total lines per frame, including blanking.
	Refresh uint16 // Vertical refresh in BCD-style hex, 0x5994 is 59.94Hz.
}

// Built-in video modes.
var (
	MODE_640x480 = Timing{Name: "640x480", Width: 640, Height: 480, Columns: 800, Lines: 525, Refresh: 0x5994}
	MODE_848x480 = Timing{Name: "848x480", Width: 848, Height: 480, Columns: 1088, Lines: 517, Refresh: 0x6000}
)

var modes = []Timing{MODE_640x480, MODE_848x480}

// Modes lists the built-in video modes.
func Modes() []Timing {
	return modes
}

// ModeByName looks up a built-in mode, ie "640x480".
func ModeByName(name string) (timing Timing, ok bool) {
	for _, mode := range modes {
		if strings.EqualFold(mode.Name, name) {
			return mode, true
		}
	}

	return
}

// Ticks is the number of pixel clocks in a frame.
func (timing Timing) Ticks() int {
	return int(timing.Columns) * int(timing.Lines)
}

// Defines returns the assembler equates of the mode geometry.
func (timing Timing) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MODE_WIDTH":   fmt.Sprintf("%d", timing.Width),
		"MODE_HEIGHT":  fmt.Sprintf("%d", timing.Height),
		"MODE_COLUMNS": fmt.Sprintf("%d", timing.Columns),
		"MODE_LINES":   fmt.Sprintf("%d", timing.Lines),
	})
}

func (timing Timing) String() string {
	return fmt.Sprintf("%dx%d@%x.%02xHz", timing.Width, timing.Height, timing.Refresh>>8, timing.Refresh&0xff)
}

// Beam is the raster beam of a display running a video mode.
type Beam struct {
	Timing
	Position
	Frame int // Frames completed since reset.
}

// NewBeam creates a beam at the top of the first frame.
func NewBeam(timing Timing) (beam *Beam) {
	beam = &Beam{Timing: timing}

	return
}

// Reset moves the beam to the top of frame 0.
func (beam *Beam) Reset() {
	beam.Position = Position{}
	beam.Frame = 0
}

// Advance moves the beam one column, and reports when a new frame started.
func (beam *Beam) Advance() (newFrame bool) {
	beam.Column++
	if beam.Column < beam.Columns {
		return
	}

	beam.Column = 0
	beam.Line++
	if beam.Line < beam.Lines {
		return
	}

	beam.Line = 0
	beam.Frame++
	newFrame = true

	return
}

// EndOfLine is true when the beam is at the last column of a line.
func (beam *Beam) EndOfLine() bool {
	return beam.Column == beam.Columns-1
}

func (beam *Beam) String() string {
	return fmt.Sprintf("frame %d %v", beam.Frame, beam.Position)
}

package copper

// Register is an index into the peripheral register file.
type Register uint8

const (
	COLOR_BG = Register(0x00) // Background color.
	COLOR_FG = Register(0x0a) // Foreground color.

	REGISTER_COUNT = 256
)

// RegisterFile is the peripheral register file written by movep.
// Every Register value is a valid index.
type RegisterFile [REGISTER_COUNT]uint16

// Read returns the value of a register.
func (rf *RegisterFile) Read(reg Register) uint16 {
	return rf[reg]
}

// Write sets the value of a register.
func (rf *RegisterFile) Write(reg Register, value uint16) {
	rf[reg] = value
}

// Reset clears all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}

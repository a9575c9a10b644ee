// Package copper implements the instruction set, assembler and reference
// interpreter of the copper, a video coprocessor that runs in lock step with
// the raster beam.
//
// A copper list is a sequence of 32-bit instructions, each an opcode word
// followed by an operand word. The copper fetches and executes one
// instruction per pixel clock: it can test the beam position (skip, wait),
// branch (jmp), write a peripheral register (movep) and suspend until the
// next frame (nextf). Once armed it runs without host involvement, looping
// through the list every frame.
//
// The assembler accepts the classic listing syntax, with labels, equates,
// macros and compile-time $(...) expressions.
package copper

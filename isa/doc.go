// Package isa defines the optvm instruction set.
//
// The machine has a configurable number of general purpose registers
// (r0 upwards, the last of which is the stack pointer sp), a register width
// of 8, 16 or 32 bits, and four condition flags (Z, C, N, V).
//
// Instructions are variable width and little endian. The first byte is the
// opcode, which selects a Format; the format fixes the instruction width and
// the kinds of its operands. Each opcode has exactly one Semantic function,
// so the executor only has to dispatch on the decoded opcode.
package isa

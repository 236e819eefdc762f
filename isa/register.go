package isa

import (
	"fmt"
)

// Register is a register file index.
type Register int

// Register file limits.
const (
	REGISTER_COUNT_MIN     = 2  // sp plus at least one general register.
	REGISTER_COUNT_MAX     = 16 // A register field is one nibble.
	REGISTER_COUNT_DEFAULT = 8
)

// Valid register widths, in bits.
const (
	WIDTH_8       = 8
	WIDTH_16      = 16
	WIDTH_32      = 32
	WIDTH_DEFAULT = WIDTH_32
)

// String returns the assembler name of a general register.
// The stack pointer alias depends on the register count, so it is not
// reported here.
func (r Register) String() string {
	return fmt.Sprintf("r%d", int(r))
}

// StackPointer returns the reserved stack pointer for a register count.
func StackPointer(count int) Register {
	return Register(count - 1)
}

// WidthValid returns true if bits is a supported register width.
func WidthValid(bits int) bool {
	switch bits {
	case WIDTH_8, WIDTH_16, WIDTH_32:
		return true
	}
	return false
}

// WidthMask returns the value mask for a register width.
func WidthMask(bits int) uint32 {
	if bits >= 32 {
		return 0xffffffff
	}
	return (uint32(1) << bits) - 1
}

// WordBytes returns the number of bytes in a register-width word.
func WordBytes(bits int) int {
	return bits / 8
}

// Flags is the condition flag set.
type Flags uint8

const (
	FLAG_Z = Flags(1 << 0) // Result was zero.
	FLAG_C = Flags(1 << 1) // Carry out, or borrow for subtraction.
	FLAG_N = Flags(1 << 2) // Result sign bit set.
	FLAG_V = Flags(1 << 3) // Signed overflow.
)

// Has returns true if all of the flags in mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// String returns the flags as "ZCNV", with '-' for each clear flag.
func (f Flags) String() string {
	out := []byte("----")
	for n, c := range "ZCNV" {
		if f&(1<<n) != 0 {
			out[n] = byte(c)
		}
	}
	return string(out)
}

// Package memory implements the flat, byte addressable, bounds checked
// address space of the simulated machine.
package memory

import (
	"fmt"
	"log"
)

// Options control the access rules of a memory.
type Options struct {
	WordAligned bool // Multi-byte accesses must be aligned to their width.
	Verbose     bool // Log every load and store.
}

// Memory is a little endian byte array of fixed size.
type Memory struct {
	Options

	Reads  uint64 // Load counter.
	Writes uint64 // Store counter.

	data []byte

	// Read-only window [roStart, roEnd).
	roStart uint32
	roEnd   uint32
}

// New allocates a zero filled memory.
func New(size uint32, opts Options) (mem *Memory) {
	mem = &Memory{
		Options: opts,
		data:    make([]byte, size),
	}

	return
}

// Size returns the size of the memory, in bytes.
func (mem *Memory) Size() uint32 {
	return uint32(len(mem.data))
}

// String describes the memory layout.
func (mem *Memory) String() string {
	return fmt.Sprintf("memory: size 0x%x ro [0x%x, 0x%x) aligned:%v",
		mem.Size(), mem.roStart, mem.roEnd, mem.WordAligned)
}

// check validates an access of width bytes at addr.
func (mem *Memory) check(addr uint32, width int) (err error) {
	switch width {
	case 1, 2, 4:
	default:
		err = ErrWidthInvalid
		return
	}

	if uint64(addr)+uint64(width) > uint64(len(mem.data)) {
		err = ErrOutOfBounds{Address: addr, Width: width, Size: mem.Size()}
		return
	}

	if mem.WordAligned && addr%uint32(width) != 0 {
		err = ErrMisaligned
		return
	}

	return
}

// Read returns width bytes at addr as a little endian value.
func (mem *Memory) Read(addr uint32, width int) (value uint32, err error) {
	err = mem.check(addr, width)
	if err != nil {
		return
	}

	for n := range width {
		value |= uint32(mem.data[addr+uint32(n)]) << (8 * n)
	}
	mem.Reads++

	if mem.Verbose {
		log.Printf("memory: read  0x%08x/%d = 0x%x", addr, width, value)
	}

	return
}

// Write stores the low width bytes of value at addr.
func (mem *Memory) Write(addr uint32, value uint32, width int) (err error) {
	err = mem.check(addr, width)
	if err != nil {
		return
	}

	if addr < mem.roEnd && addr+uint32(width) > mem.roStart {
		err = ErrReadOnly
		return
	}

	for n := range width {
		mem.data[addr+uint32(n)] = byte(value >> (8 * n))
	}
	mem.Writes++

	if mem.Verbose {
		log.Printf("memory: write 0x%08x/%d = 0x%x", addr, width, value)
	}

	return
}

// Fetch returns a read-only view of n bytes at addr.
// It does not count as a load.
func (mem *Memory) Fetch(addr uint32, n int) (view []byte, err error) {
	if n < 0 || uint64(addr)+uint64(n) > uint64(len(mem.data)) {
		err = ErrOutOfBounds{Address: addr, Width: n, Size: mem.Size()}
		return
	}

	end := addr + uint32(n)
	view = mem.data[addr:end:end]
	return
}

// LoadImage copies a program image into memory at base.
// The read-only window does not apply.
func (mem *Memory) LoadImage(base uint32, image []byte) (err error) {
	if uint64(base)+uint64(len(image)) > uint64(len(mem.data)) {
		err = ErrOutOfBounds{Address: base, Width: len(image), Size: mem.Size()}
		return
	}

	copy(mem.data[base:], image)

	return
}

// Fill sets every byte of memory to pattern.
func (mem *Memory) Fill(pattern byte) {
	if pattern == 0 {
		clear(mem.data)
		return
	}

	for n := range mem.data {
		mem.data[n] = pattern
	}
}

// Protect makes [base, base+n) read-only, replacing any prior window.
func (mem *Memory) Protect(base uint32, n uint32) {
	mem.roStart = base
	mem.roEnd = base + n
}

// Reset zeroes the access counters.
func (mem *Memory) Reset() {
	mem.Reads = 0
	mem.Writes = 0
}

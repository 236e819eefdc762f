package isa

// Machine is the CPU state as seen by the opcode semantics.
type Machine interface {
	// Reg reads a register.
	Reg(r Register) uint32
	// SetReg writes a register, truncated to the register width.
	SetReg(r Register, value uint32)
	// Flags returns the condition flags.
	Flags() Flags
	// SetFlags replaces the condition flags.
	SetFlags(flags Flags)
	// Width returns the register width in bits.
	Width() int
	// StackPointer returns the reserved stack pointer register.
	StackPointer() Register
	// Load reads size bytes of memory.
	Load(addr uint32, size int) (uint32, error)
	// Store writes size bytes of memory.
	Store(addr uint32, value uint32, size int) error
}

// Semantic applies one opcode to a machine.
// next is the fall-through address; the returned pc overrides it for
// control flow. halt is set by instructions that stop the machine.
type Semantic func(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error)

package cpu

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/optvm/isa"
	"github.com/ezrec/optvm/memory"
)

// Cpu is the simulation context for a single optvm processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory *memory.Memory // Exclusively owned address space.

	Register []uint32 // Register bank; the last entry is sp.
	Bits     int      // Register width, in bits.
	Pc       uint32   // Address of the next instruction.
	Status   isa.Flags

	Ticks uint64 // Instructions retired since reset.
}

var _ isa.Machine = (*Cpu)(nil)

// NewCpu creates a CPU with a register file of count registers of width bits.
func NewCpu(mem *memory.Memory, count int, bits int) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:   mem,
		Register: make([]uint32, count),
		Bits:     bits,
	}

	return
}

// Reset the CPU state.
// - Clears the general registers and flags.
// - Points sp at the top of memory.
// - Sets the program counter to base.
// - Zeros statistics counters.
func (cpu *Cpu) Reset(base uint32) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register)
	cpu.SetReg(cpu.StackPointer(), cpu.Memory.Size())
	cpu.Pc = base
	cpu.Status = 0
	cpu.Ticks = 0
	cpu.Memory.Reset()

	if cpu.Verbose {
		log.Printf("cpu: boot at 0x%08x", base)
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	width := cpu.Bits / 4
	fmt.Fprintf(&sb, "% 5s: %08x\n", "pc", cpu.Pc)
	fmt.Fprintf(&sb, "% 5s: %v\n", "flags", cpu.Status)
	for n, val := range cpu.Register {
		name := isa.Register(n).String()
		if isa.Register(n) == cpu.StackPointer() {
			name = "sp"
		}
		fmt.Fprintf(&sb, "% 5s: %0*x\n", name, width, val)
	}

	text = sb.String()
	return
}

// Reg reads a register.
func (cpu *Cpu) Reg(r isa.Register) uint32 {
	return cpu.Register[r]
}

// SetReg writes a register, truncated to the register width.
func (cpu *Cpu) SetReg(r isa.Register, value uint32) {
	cpu.Register[r] = value & isa.WidthMask(cpu.Bits)
}

// Flags returns the condition flags.
func (cpu *Cpu) Flags() isa.Flags {
	return cpu.Status
}

// SetFlags replaces the condition flags.
func (cpu *Cpu) SetFlags(flags isa.Flags) {
	cpu.Status = flags
}

// Width returns the register width, in bits.
func (cpu *Cpu) Width() int {
	return cpu.Bits
}

// StackPointer returns the register reserved as the stack pointer.
func (cpu *Cpu) StackPointer() isa.Register {
	return isa.StackPointer(len(cpu.Register))
}

// Load reads size bytes of memory.
func (cpu *Cpu) Load(addr uint32, size int) (value uint32, err error) {
	return cpu.Memory.Read(addr, size)
}

// Store writes size bytes of memory.
func (cpu *Cpu) Store(addr uint32, value uint32, size int) (err error) {
	return cpu.Memory.Write(addr, value, size)
}

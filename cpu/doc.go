// Package cpu holds the architectural state of the optvm processor.
//
// The state is a register file of configurable size and width (the last
// register is the stack pointer), a program counter, the condition flags,
// and the exclusively owned memory. Cpu implements isa.Machine, so the
// opcode semantics of package isa operate on it directly.
package cpu

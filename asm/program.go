package asm

import (
	"iter"
)

// Link is a reference to a label, patched once all labels are known.
type Link struct {
	Label  string // Label name.
	Offset int    // Byte offset in Code of the little endian 32-bit address.
}

// Opcode is the assembled form of a single source line.
type Opcode struct {
	LineNo int      // Source line number.
	Pc     uint32   // Address of the first byte of Code.
	Words  []string // Source words, after equate substitution.
	Code   []byte   // Encoded instruction or data.
	Links  []Link   // Label references in Code.
}

// Program is an assembled program image.
type Program struct {
	Base    uint32   // Load address of the image.
	Opcodes []Opcode // Assembled lines, in increasing address order.
}

// Debug locates the source of an address in a program.
type Debug struct {
	*Opcode
	Index int // Byte offset of the address within the opcode.
}

// Debug returns the opcode that contains the byte at pc.
// Debug.Opcode is nil if no opcode covers pc.
func (prog *Program) Debug(pc uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if pc >= op.Pc && pc < op.Pc+uint32(len(op.Code)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(pc - op.Pc),
			}
			break
		}
	}

	return
}

// Size returns the size of the program image, in bytes.
func (prog *Program) Size() uint32 {
	if len(prog.Opcodes) == 0 {
		return 0
	}

	last := prog.Opcodes[len(prog.Opcodes)-1]

	return last.Pc + uint32(len(last.Code)) - prog.Base
}

// Binary returns the program image, starting at the base address.
// Gaps left by .org are zero filled.
func (prog *Program) Binary() (image []byte) {
	image = make([]byte, prog.Size())
	for pc, code := range prog.Codes() {
		copy(image[pc-prog.Base:], code)
	}

	return
}

// Image returns the program image.
func (prog *Program) Image() ([]byte, error) {
	return prog.Binary(), nil
}

// Codes iterates over the address and encoding of each opcode.
func (prog *Program) Codes() iter.Seq2[uint32, []byte] {
	return func(yield func(pc uint32, code []byte) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Pc, op.Code) {
				return
			}
		}
	}
}

// Package decoder turns instruction bytes in memory into isa.Instruction values.
//
// Decoding is a pure function of the memory contents and the program
// counter: it never writes memory, never touches registers, and does not
// count as a memory load.
package decoder

import (
	"encoding/binary"

	"github.com/ezrec/optvm/isa"
)

// Fetcher is the read-only memory view used by the decoder.
type Fetcher interface {
	// Size returns the size of memory, in bytes.
	Size() uint32
	// Fetch returns n bytes at addr, or an error if they cross the end of memory.
	Fetch(addr uint32, n int) ([]byte, error)
}

// Decode decodes the instruction at pc. registers is the size of the
// register file; register fields at or above it are invalid.
// next is the address of the following instruction.
func Decode(mem Fetcher, pc uint32, registers int) (in isa.Instruction, next uint32, err error) {
	size := mem.Size()
	if pc >= size {
		err = ErrTruncated{Pc: pc, Need: 1, Have: 0}
		return
	}

	head, err := mem.Fetch(pc, 1)
	if err != nil {
		return
	}

	op := isa.Opcode(head[0])
	if !op.Valid() {
		err = ErrUnknownOpcode{Pc: pc, Opcode: head[0]}
		return
	}

	format := op.Format()
	width := format.Size()
	if uint64(pc)+uint64(width) > uint64(size) {
		err = ErrTruncated{Pc: pc, Need: width, Have: size - pc}
		return
	}

	raw, err := mem.Fetch(pc, int(width))
	if err != nil {
		return
	}

	var fields [isa.MAX_OPERANDS]uint32
	var reserved uint32

	switch format {
	case isa.FORMAT_NONE:
		// opcode only
	case isa.FORMAT_R:
		fields[0] = uint32(raw[1] >> 4)
		reserved = uint32(raw[1] & 0xf)
	case isa.FORMAT_RR:
		fields[0] = uint32(raw[1] >> 4)
		fields[1] = uint32(raw[1] & 0xf)
	case isa.FORMAT_RRR:
		fields[0] = uint32(raw[1] >> 4)
		fields[1] = uint32(raw[1] & 0xf)
		fields[2] = uint32(raw[2] >> 4)
		reserved = uint32(raw[2] & 0xf)
	case isa.FORMAT_RI:
		fields[0] = uint32(raw[1] >> 4)
		reserved = uint32(raw[1] & 0xf)
		fields[1] = binary.LittleEndian.Uint32(raw[2:6])
	case isa.FORMAT_RM:
		fields[0] = uint32(raw[1] >> 4)
		fields[1] = uint32(raw[1] & 0xf)
		fields[2] = uint32(int32(int16(binary.LittleEndian.Uint16(raw[2:4]))))
	case isa.FORMAT_A:
		fields[0] = binary.LittleEndian.Uint32(raw[1:5])
	}

	if reserved != 0 {
		err = ErrInvalidOperand{Pc: pc, Opcode: head[0], Operand: -1, Value: reserved}
		return
	}

	in.Pc = pc
	in.Opcode = op
	for n, kind := range format.Kinds() {
		if kind == isa.OPERAND_REG && fields[n] >= uint32(registers) {
			err = ErrInvalidOperand{Pc: pc, Opcode: head[0], Operand: n, Value: fields[n]}
			in = isa.Instruction{}
			return
		}
		in.Args[n] = isa.Operand{Kind: kind, Value: fields[n]}
	}

	next = pc + width

	return
}

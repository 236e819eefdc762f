package isa

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Operand is a single typed instruction operand.
type Operand struct {
	Kind  OperandKind
	Value uint32
}

// Instruction is a decoded instruction.
type Instruction struct {
	Pc     uint32                // Address the instruction was decoded from.
	Opcode Opcode                // Operation.
	Args   [MAX_OPERANDS]Operand // Operands, Opcode.Format().Arity() of them are used.
}

// Make creates an instruction from raw operand values, typed by the opcode format.
// Make panics if the operand count does not match the opcode.
func Make(op Opcode, args ...uint32) (in Instruction) {
	kinds := op.Format().Kinds()
	if !op.Valid() || len(args) != len(kinds) {
		panic(fmt.Sprintf("isa: %v takes %d operands, not %d", op, len(kinds), len(args)))
	}

	in.Opcode = op
	for n, kind := range kinds {
		in.Args[n] = Operand{Kind: kind, Value: args[n]}
	}

	return
}

// Size returns the encoded width of the instruction, in bytes.
func (in Instruction) Size() uint32 {
	return in.Opcode.Size()
}

// Operands returns the used operands.
func (in Instruction) Operands() []Operand {
	return in.Args[:in.Opcode.Format().Arity()]
}

// Reg returns operand n as a register.
func (in Instruction) Reg(n int) Register {
	return Register(in.Args[n].Value)
}

// Value returns the raw value of operand n.
func (in Instruction) Value(n int) uint32 {
	return in.Args[n].Value
}

// Bytes returns the encoded instruction.
func (in Instruction) Bytes() []byte {
	return in.AppendBytes(make([]byte, 0, in.Size()))
}

// AppendBytes appends the encoded instruction to buf.
func (in Instruction) AppendBytes(buf []byte) []byte {
	nibble := func(n int) byte { return byte(in.Args[n].Value & 0xf) }

	buf = append(buf, byte(in.Opcode))

	switch in.Opcode.Format() {
	case FORMAT_NONE:
		// opcode only
	case FORMAT_R:
		buf = append(buf, nibble(0)<<4)
	case FORMAT_RR:
		buf = append(buf, nibble(0)<<4|nibble(1))
	case FORMAT_RRR:
		buf = append(buf, nibble(0)<<4|nibble(1), nibble(2)<<4)
	case FORMAT_RI:
		buf = append(buf, nibble(0)<<4)
		buf = binary.LittleEndian.AppendUint32(buf, in.Args[1].Value)
	case FORMAT_RM:
		buf = append(buf, nibble(0)<<4|nibble(1))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(in.Args[2].Value))
	case FORMAT_A:
		buf = binary.LittleEndian.AppendUint32(buf, in.Args[0].Value)
	}

	return buf
}

// Encode concatenates the encodings of a sequence of instructions.
func Encode(ins ...Instruction) (image []byte) {
	for _, in := range ins {
		image = in.AppendBytes(image)
	}
	return
}

// String returns the assembly language form of the instruction.
func (in Instruction) String() string {
	words := []string{in.Opcode.String()}

	format := in.Opcode.Format()
	for n, arg := range in.Operands() {
		switch arg.Kind {
		case OPERAND_REG:
			words = append(words, Register(arg.Value).String())
		case OPERAND_IMM:
			if format == FORMAT_RM && n == 2 {
				words = append(words, strconv.Itoa(int(int32(arg.Value))))
			} else {
				words = append(words, fmt.Sprintf("%#x", arg.Value))
			}
		case OPERAND_ADDR:
			words = append(words, fmt.Sprintf("%#x", arg.Value))
		}
	}

	return strings.Join(words, " ")
}

// Offset encodes a signed memory offset as an operand value.
func Offset(off int16) uint32 {
	return uint32(int32(off))
}

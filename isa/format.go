package isa

// Format is an instruction encoding layout.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_NONE = Format(0) // none
	FORMAT_R    = Format(1) // r
	FORMAT_RR   = Format(2) // rr
	FORMAT_RRR  = Format(3) // rrr
	FORMAT_RI   = Format(4) // ri
	FORMAT_RM   = Format(5) // rm
	FORMAT_A    = Format(6) // a
)

// OperandKind is the type of a decoded operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REG  = OperandKind(0) // reg
	OPERAND_IMM  = OperandKind(1) // imm
	OPERAND_ADDR = OperandKind(2) // addr
)

// MAX_OPERANDS is the largest operand count of any format.
const MAX_OPERANDS = 3

var formatSize = [...]uint32{
	FORMAT_NONE: 1,
	FORMAT_R:    2,
	FORMAT_RR:   2,
	FORMAT_RRR:  3,
	FORMAT_RI:   6,
	FORMAT_RM:   4,
	FORMAT_A:    5,
}

var formatKinds = [...][]OperandKind{
	FORMAT_NONE: nil,
	FORMAT_R:    {OPERAND_REG},
	FORMAT_RR:   {OPERAND_REG, OPERAND_REG},
	FORMAT_RRR:  {OPERAND_REG, OPERAND_REG, OPERAND_REG},
	FORMAT_RI:   {OPERAND_REG, OPERAND_IMM},
	FORMAT_RM:   {OPERAND_REG, OPERAND_REG, OPERAND_IMM},
	FORMAT_A:    {OPERAND_ADDR},
}

// Size returns the encoded width of the format, in bytes.
func (f Format) Size() uint32 {
	return formatSize[f]
}

// Kinds returns the operand kinds of the format, in encoding order.
// The returned slice must not be modified.
func (f Format) Kinds() []OperandKind {
	return formatKinds[f]
}

// Arity returns the number of operands of the format.
func (f Format) Arity() int {
	return len(formatKinds[f])
}

package decoder

import (
	"github.com/ezrec/optvm/translate"
)

var f = translate.From

// ErrUnknownOpcode is returned when the opcode byte is not in the instruction set.
type ErrUnknownOpcode struct {
	Pc     uint32
	Opcode uint8
}

func (err ErrUnknownOpcode) Error() string {
	return f("0x%08x: unknown opcode 0x%02x", err.Pc, err.Opcode)
}

func (err ErrUnknownOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownOpcode)
	return
}

// ErrTruncated is returned when the instruction runs past the end of memory.
type ErrTruncated struct {
	Pc   uint32
	Need uint32 // Bytes required by the instruction.
	Have uint32 // Bytes left before the end of memory.
}

func (err ErrTruncated) Error() string {
	return f("0x%08x: truncated instruction, need %v bytes, have %v", err.Pc, err.Need, err.Have)
}

func (err ErrTruncated) Is(target error) (ok bool) {
	_, ok = target.(ErrTruncated)
	return
}

// ErrInvalidOperand is returned when an operand field is outside its valid range.
type ErrInvalidOperand struct {
	Pc      uint32
	Opcode  uint8
	Operand int    // Operand index, or -1 for a reserved field.
	Value   uint32 // Offending field value.
}

func (err ErrInvalidOperand) Error() string {
	if err.Operand < 0 {
		return f("0x%08x: opcode 0x%02x reserved field 0x%x not zero", err.Pc, err.Opcode, err.Value)
	}
	return f("0x%08x: opcode 0x%02x operand %v invalid 0x%x", err.Pc, err.Opcode, err.Operand, err.Value)
}

func (err ErrInvalidOperand) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidOperand)
	return
}

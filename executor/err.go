package executor

import (
	"errors"

	"github.com/ezrec/optvm/isa"
	"github.com/ezrec/optvm/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrPcOutOfBounds is returned when the program counter leaves memory.
type ErrPcOutOfBounds struct {
	Pc   uint32
	Size uint32
}

func (err ErrPcOutOfBounds) Error() string {
	return f("pc 0x%08x outside memory of 0x%x bytes", err.Pc, err.Size)
}

func (err ErrPcOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrPcOutOfBounds)
	return
}

// ErrFault is an instruction that failed during execution.
type ErrFault struct {
	Instruction isa.Instruction
	Err         error
}

func (err *ErrFault) Error() string {
	return f("0x%08x: %v: %v", err.Instruction.Pc, err.Instruction, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

package isa

import (
	"errors"

	"github.com/ezrec/optvm/translate"
)

var f = translate.From

var (
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrOperandCount  = errors.New(f("operand count"))
)

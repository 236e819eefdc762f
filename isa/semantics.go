package isa

// Semantic functions for every opcode. Register operands have already been
// range checked by the decoder.

func execHalt(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return in.Pc, true, nil
}

func execNop(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return next, false, nil
}

func execLdi(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	m.SetReg(in.Reg(0), in.Value(1))
	return next, false, nil
}

func execMov(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	m.SetReg(in.Reg(0), m.Reg(in.Reg(1)))
	return next, false, nil
}

// effective computes the base+offset address of a memory format instruction.
func effective(m Machine, in Instruction) uint32 {
	return (m.Reg(in.Reg(1)) + in.Value(2)) & WidthMask(m.Width())
}

func execLdw(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	value, err := m.Load(effective(m, in), WordBytes(m.Width()))
	if err != nil {
		return
	}
	m.SetReg(in.Reg(0), value)
	return next, false, nil
}

func execStw(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	err = m.Store(effective(m, in), m.Reg(in.Reg(0)), WordBytes(m.Width()))
	if err != nil {
		return
	}
	return next, false, nil
}

func execLdb(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	value, err := m.Load(effective(m, in), 1)
	if err != nil {
		return
	}
	m.SetReg(in.Reg(0), value)
	return next, false, nil
}

func execStb(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	err = m.Store(effective(m, in), m.Reg(in.Reg(0))&0xff, 1)
	if err != nil {
		return
	}
	return next, false, nil
}

// aluFunc is a flag-setting two operand ALU operation.
type aluFunc func(bits int, a, b uint32) (result uint32, flags Flags)

// execAlu applies op to ra and rb, and writes rd and the flags.
func execAlu(m Machine, in Instruction, op aluFunc) {
	result, flags := op(m.Width(), m.Reg(in.Reg(1)), m.Reg(in.Reg(2)))
	m.SetReg(in.Reg(0), result)
	m.SetFlags(flags)
}

func execAdd(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, aluAdd)
	return next, false, nil
}

func execSub(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, aluSub)
	return next, false, nil
}

func execMul(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, aluMul)
	return next, false, nil
}

func execDiv(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	divisor := m.Reg(in.Reg(2))
	if divisor == 0 {
		err = ErrDivideByZero
		return
	}
	result := m.Reg(in.Reg(1)) / divisor
	m.SetReg(in.Reg(0), result)
	m.SetFlags(resultFlags(m.Width(), result))
	return next, false, nil
}

func execAnd(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, func(bits int, a, b uint32) (uint32, Flags) {
		return a & b, resultFlags(bits, a&b)
	})
	return next, false, nil
}

func execOr(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, func(bits int, a, b uint32) (uint32, Flags) {
		return a | b, resultFlags(bits, a|b)
	})
	return next, false, nil
}

func execXor(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, func(bits int, a, b uint32) (uint32, Flags) {
		return a ^ b, resultFlags(bits, a^b)
	})
	return next, false, nil
}

func execShl(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, aluShl)
	return next, false, nil
}

func execShr(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	execAlu(m, in, aluShr)
	return next, false, nil
}

func execAddi(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	bits := m.Width()
	result, flags := aluAdd(bits, m.Reg(in.Reg(0)), in.Value(1)&WidthMask(bits))
	m.SetReg(in.Reg(0), result)
	m.SetFlags(flags)
	return next, false, nil
}

func execCmp(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	_, flags := aluSub(m.Width(), m.Reg(in.Reg(0)), m.Reg(in.Reg(1)))
	m.SetFlags(flags)
	return next, false, nil
}

func execNot(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	bits := m.Width()
	result := ^m.Reg(in.Reg(1)) & WidthMask(bits)
	m.SetReg(in.Reg(0), result)
	m.SetFlags(resultFlags(bits, result))
	return next, false, nil
}

// branch returns the target address if taken, otherwise next.
func branch(in Instruction, next uint32, taken bool) uint32 {
	if taken {
		return in.Value(0)
	}
	return next
}

func execJmp(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return branch(in, next, true), false, nil
}

func execJz(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return branch(in, next, m.Flags().Has(FLAG_Z)), false, nil
}

func execJnz(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return branch(in, next, !m.Flags().Has(FLAG_Z)), false, nil
}

func execJc(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return branch(in, next, m.Flags().Has(FLAG_C)), false, nil
}

func execJn(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return branch(in, next, m.Flags().Has(FLAG_N)), false, nil
}

func execJr(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	return m.Reg(in.Reg(0)), false, nil
}

// push stores value below the stack pointer, and moves the stack pointer.
// The stack pointer is only updated if the store succeeds.
func push(m Machine, value uint32) (err error) {
	bits := m.Width()
	sp := m.StackPointer()
	size := WordBytes(bits)
	addr := (m.Reg(sp) - uint32(size)) & WidthMask(bits)
	err = m.Store(addr, value&WidthMask(bits), size)
	if err != nil {
		return
	}
	m.SetReg(sp, addr)
	return
}

// pop loads the value at the stack pointer, and moves the stack pointer.
func pop(m Machine) (value uint32, err error) {
	bits := m.Width()
	sp := m.StackPointer()
	size := WordBytes(bits)
	addr := m.Reg(sp)
	value, err = m.Load(addr, size)
	if err != nil {
		return
	}
	m.SetReg(sp, addr+uint32(size))
	return
}

func execCall(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	err = push(m, next)
	if err != nil {
		return
	}
	return in.Value(0), false, nil
}

func execRet(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	pc, err = pop(m)
	return
}

func execPush(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	err = push(m, m.Reg(in.Reg(0)))
	if err != nil {
		return
	}
	return next, false, nil
}

func execPop(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	value, err := pop(m)
	if err != nil {
		return
	}
	m.SetReg(in.Reg(0), value)
	return next, false, nil
}

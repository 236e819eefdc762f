package isa

// testMachine is a minimal Machine over a byte slice.
type testMachine struct {
	reg   [REGISTER_COUNT_DEFAULT]uint32
	flags Flags
	bits  int
	mem   []byte
}

var _ Machine = (*testMachine)(nil)

func newTestMachine(bits int, size int) *testMachine {
	tm := &testMachine{bits: bits, mem: make([]byte, size)}
	tm.reg[tm.StackPointer()] = uint32(size) & WidthMask(bits)
	return tm
}

func (tm *testMachine) Reg(r Register) uint32 { return tm.reg[r] }

func (tm *testMachine) SetReg(r Register, value uint32) { tm.reg[r] = value & WidthMask(tm.bits) }

func (tm *testMachine) Flags() Flags { return tm.flags }

func (tm *testMachine) SetFlags(flags Flags) { tm.flags = flags }

func (tm *testMachine) Width() int { return tm.bits }

func (tm *testMachine) StackPointer() Register { return StackPointer(len(tm.reg)) }

func (tm *testMachine) Load(addr uint32, size int) (value uint32, err error) {
	if int(addr)+size > len(tm.mem) {
		err = ErrOperandCount
		return
	}
	for n := range size {
		value |= uint32(tm.mem[int(addr)+n]) << (8 * n)
	}
	return
}

func (tm *testMachine) Store(addr uint32, value uint32, size int) (err error) {
	if int(addr)+size > len(tm.mem) {
		err = ErrOperandCount
		return
	}
	for n := range size {
		tm.mem[int(addr)+n] = byte(value >> (8 * n))
	}
	return
}

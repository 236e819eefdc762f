package isa

// Opcode is the operation-selecting first byte of an instruction.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HALT = Opcode(0)  // halt
	OP_NOP  = Opcode(1)  // nop
	OP_LDI  = Opcode(2)  // ldi
	OP_MOV  = Opcode(3)  // mov
	OP_LDW  = Opcode(4)  // ldw
	OP_STW  = Opcode(5)  // stw
	OP_LDB  = Opcode(6)  // ldb
	OP_STB  = Opcode(7)  // stb
	OP_ADD  = Opcode(8)  // add
	OP_SUB  = Opcode(9)  // sub
	OP_MUL  = Opcode(10) // mul
	OP_DIV  = Opcode(11) // div
	OP_AND  = Opcode(12) // and
	OP_OR   = Opcode(13) // or
	OP_XOR  = Opcode(14) // xor
	OP_SHL  = Opcode(15) // shl
	OP_SHR  = Opcode(16) // shr
	OP_ADDI = Opcode(17) // addi
	OP_CMP  = Opcode(18) // cmp
	OP_NOT  = Opcode(19) // not
	OP_JMP  = Opcode(20) // jmp
	OP_JZ   = Opcode(21) // jz
	OP_JNZ  = Opcode(22) // jnz
	OP_JC   = Opcode(23) // jc
	OP_JN   = Opcode(24) // jn
	OP_JR   = Opcode(25) // jr
	OP_CALL = Opcode(26) // call
	OP_RET  = Opcode(27) // ret
	OP_PUSH = Opcode(28) // push
	OP_POP  = Opcode(29) // pop

	OPCODE_COUNT = 30 // Number of defined opcodes.
)

// opcodeInfo is the per-opcode row of the instruction set table.
type opcodeInfo struct {
	format Format
	exec   Semantic
}

var opcodeTable = [OPCODE_COUNT]opcodeInfo{
	OP_HALT: {FORMAT_NONE, execHalt},
	OP_NOP:  {FORMAT_NONE, execNop},
	OP_LDI:  {FORMAT_RI, execLdi},
	OP_MOV:  {FORMAT_RR, execMov},
	OP_LDW:  {FORMAT_RM, execLdw},
	OP_STW:  {FORMAT_RM, execStw},
	OP_LDB:  {FORMAT_RM, execLdb},
	OP_STB:  {FORMAT_RM, execStb},
	OP_ADD:  {FORMAT_RRR, execAdd},
	OP_SUB:  {FORMAT_RRR, execSub},
	OP_MUL:  {FORMAT_RRR, execMul},
	OP_DIV:  {FORMAT_RRR, execDiv},
	OP_AND:  {FORMAT_RRR, execAnd},
	OP_OR:   {FORMAT_RRR, execOr},
	OP_XOR:  {FORMAT_RRR, execXor},
	OP_SHL:  {FORMAT_RRR, execShl},
	OP_SHR:  {FORMAT_RRR, execShr},
	OP_ADDI: {FORMAT_RI, execAddi},
	OP_CMP:  {FORMAT_RR, execCmp},
	OP_NOT:  {FORMAT_RR, execNot},
	OP_JMP:  {FORMAT_A, execJmp},
	OP_JZ:   {FORMAT_A, execJz},
	OP_JNZ:  {FORMAT_A, execJnz},
	OP_JC:   {FORMAT_A, execJc},
	OP_JN:   {FORMAT_A, execJn},
	OP_JR:   {FORMAT_R, execJr},
	OP_CALL: {FORMAT_A, execCall},
	OP_RET:  {FORMAT_NONE, execRet},
	OP_PUSH: {FORMAT_R, execPush},
	OP_POP:  {FORMAT_R, execPop},
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return int(op) < OPCODE_COUNT
}

// Format returns the encoding format of the opcode.
// Invalid opcodes report FORMAT_NONE.
func (op Opcode) Format() Format {
	if !op.Valid() {
		return FORMAT_NONE
	}
	return opcodeTable[op].format
}

// Size returns the encoded byte width of the opcode.
func (op Opcode) Size() uint32 {
	return op.Format().Size()
}

// Execute applies the opcode semantics to the machine.
// next is the address of the following instruction; the returned pc is
// where execution continues.
func (op Opcode) Execute(m Machine, in Instruction, next uint32) (pc uint32, halt bool, err error) {
	if !op.Valid() {
		err = ErrOpcodeInvalid
		return
	}
	return opcodeTable[op].exec(m, in, next)
}

// Opcodes returns all of the defined opcodes, in encoding order.
func Opcodes() (ops []Opcode) {
	ops = make([]Opcode, OPCODE_COUNT)
	for n := range OPCODE_COUNT {
		ops[n] = Opcode(n)
	}
	return
}

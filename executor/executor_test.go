package executor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/optvm/asm"
	"github.com/ezrec/optvm/builder"
	"github.com/ezrec/optvm/cpu"
	"github.com/ezrec/optvm/decoder"
	"github.com/ezrec/optvm/isa"
	"github.com/ezrec/optvm/memory"
	"github.com/ezrec/optvm/profile"
)

func build(t *testing.T, size uint32, image []byte) *cpu.Cpu {
	cfg := builder.DefaultConfig()
	cfg.MemorySize = size
	cp, err := builder.Build(cfg, builder.Bytes(image))
	require.NoError(t, err)
	return cp
}

func buildText(t *testing.T, size uint32, program ...string) *cpu.Cpu {
	cfg := builder.DefaultConfig()
	cfg.MemorySize = size
	src := &asm.Text{Input: strings.NewReader(strings.Join(program, "\n"))}
	cp, err := builder.Build(cfg, src)
	require.NoError(t, err)
	return cp
}

func TestExecuteScenario(t *testing.T) {
	assert := assert.New(t)

	cp := build(t, 256, isa.Encode(
		isa.Make(isa.OP_LDI, 0, 5),
		isa.Make(isa.OP_LDI, 1, 7),
		isa.Make(isa.OP_ADD, 2, 0, 1),
		isa.Make(isa.OP_HALT),
	))

	rep := Execute(cp, Options{})
	assert.Equal(HALT_NORMAL, rep.Reason)
	assert.NoError(rep.Err)
	assert.Equal(uint32(12), rep.Register[2])
	assert.Equal(uint64(4), rep.Steps)
	assert.Equal(uint32(15), rep.Pc)
	assert.Equal(isa.Flags(0), rep.Flags)
	assert.Equal(uint32(12), cp.Register[2])
	assert.Contains(rep.String(), "normal")
}

func TestExecuteBranchOutOfBounds(t *testing.T) {
	assert := assert.New(t)

	cp := build(t, 256, isa.Encode(
		isa.Make(isa.OP_LDI, 0, 1),
		isa.Make(isa.OP_JMP, 9999),
	))

	rep := Execute(cp, Options{})
	assert.Equal(HALT_PC, rep.Reason)
	assert.ErrorIs(rep.Err, ErrPcOutOfBounds{})
	assert.Equal(ErrPcOutOfBounds{Pc: 9999, Size: 256}, rep.Err)
	assert.Equal(uint64(2), rep.Steps)
	assert.Equal(uint32(1), rep.Register[0])
}

func TestExecuteFallOffEnd(t *testing.T) {
	assert := assert.New(t)

	cp := build(t, 6, isa.Encode(isa.Make(isa.OP_LDI, 0, 1)))

	rep := Execute(cp, Options{})
	assert.Equal(HALT_PC, rep.Reason)
	assert.Equal(uint32(6), rep.Pc)
	assert.Equal(uint64(1), rep.Steps)
}

func TestExecuteDecodeError(t *testing.T) {
	assert := assert.New(t)

	cp := build(t, 256, []byte{0xff})
	rep := Execute(cp, Options{})
	assert.Equal(HALT_DECODE, rep.Reason)
	assert.ErrorIs(rep.Err, decoder.ErrUnknownOpcode{})
	assert.Equal(uint64(0), rep.Steps)
	assert.Equal(uint32(0), rep.Pc)

	// Register field beyond the register file.
	cp = build(t, 256, []byte{byte(isa.OP_MOV), 0x90})
	rep = Execute(cp, Options{})
	assert.Equal(HALT_DECODE, rep.Reason)
	assert.ErrorIs(rep.Err, decoder.ErrInvalidOperand{})

	// Instruction crosses the end of memory.
	cfg := builder.DefaultConfig()
	cfg.MemorySize = 8
	cfg.BaseAddress = 4
	cp, err := builder.Build(cfg, builder.Bytes{byte(isa.OP_LDI)})
	assert.NoError(err)
	rep = Execute(cp, Options{})
	assert.Equal(HALT_DECODE, rep.Reason)
	assert.ErrorIs(rep.Err, decoder.ErrTruncated{})
	assert.Equal(uint32(4), rep.Pc)
}

func TestExecuteFault(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		pc      uint32
		steps   uint64
	}){
		{"divide", []string{"ldi r0 1", "ldi r1 0", "div r2 r0 r1", "halt"}, isa.ErrDivideByZero, 12, 2},
		{"read-only", []string{"ldi r1 0", "stw r0 r1", "halt"}, memory.ErrReadOnly, 6, 1},
		{"load", []string{"ldw r0 sp", "halt"}, memory.ErrOutOfBounds{}, 0, 0},
		{"store", []string{"ldi r1 0xfffe", "stb r0 r1 4", "halt"}, memory.ErrOutOfBounds{}, 6, 1},
		{"pop", []string{"pop r0", "halt"}, memory.ErrOutOfBounds{}, 0, 0},
		{"ret", []string{"ret"}, memory.ErrOutOfBounds{}, 0, 0},
	}

	for _, entry := range table {
		cp := buildText(t, 256, entry.program...)
		rep := Execute(cp, Options{})
		assert.Equal(HALT_FAULT, rep.Reason, entry.name)
		assert.ErrorIs(rep.Err, entry.err, entry.name)
		assert.Equal(entry.pc, rep.Pc, entry.name)
		assert.Equal(entry.steps, rep.Steps, entry.name)

		var fault *ErrFault
		if assert.True(errors.As(rep.Err, &fault), entry.name) {
			assert.Equal(entry.pc, fault.Instruction.Pc, entry.name)
		}
	}
}

func TestExecuteFaultLeavesState(t *testing.T) {
	assert := assert.New(t)

	cp := buildText(t, 256, "ldi sp 2", "push r0", "halt")
	rep := Execute(cp, Options{})
	assert.Equal(HALT_FAULT, rep.Reason)
	assert.Equal(uint32(2), rep.Register[7])
	assert.Equal(uint32(6), rep.Pc)
}

func TestExecuteStepLimit(t *testing.T) {
	assert := assert.New(t)

	cp := buildText(t, 256, "spin: jmp spin")
	rep := Execute(cp, Options{MaxSteps: 10})
	assert.Equal(HALT_STEPS, rep.Reason)
	assert.ErrorIs(rep.Err, ErrStepLimit)
	assert.Equal(uint64(10), rep.Steps)
	assert.Equal(uint32(0), rep.Pc)

	// A program that halts within the limit is unaffected.
	cp = buildText(t, 256, "nop", "halt")
	rep = Execute(cp, Options{MaxSteps: 2})
	assert.Equal(HALT_NORMAL, rep.Reason)
	assert.Equal(uint64(2), rep.Steps)
}

func TestExecuteLoop(t *testing.T) {
	assert := assert.New(t)

	cp := buildText(t, 256,
		"    ldi r0 10",
		"    ldi r1 0",
		"loop:",
		"    add r1 r1 r0",
		"    addi r0 -1",
		"    jnz loop",
		"    halt",
	)

	prof := &profile.Profile{}
	rep := Execute(cp, Options{Profile: prof})
	assert.Equal(HALT_NORMAL, rep.Reason)
	assert.Equal(uint32(55), rep.Register[1])
	assert.Equal(uint32(0), rep.Register[0])
	assert.True(rep.Flags.Has(isa.FLAG_Z))
	assert.Equal(uint64(33), rep.Steps)

	assert.Equal(uint64(33), prof.Total())
	assert.Equal(uint64(10), prof.Count(isa.OP_ADD))
	assert.Equal(uint64(10), prof.Count(isa.OP_ADDI))
	assert.Equal(uint64(10), prof.Count(isa.OP_JNZ))
	assert.Equal(uint64(2), prof.Count(isa.OP_LDI))
	assert.Equal(uint64(1), prof.Count(isa.OP_HALT))
}

func TestExecuteCall(t *testing.T) {
	assert := assert.New(t)

	cp := buildText(t, 256,
		"    ldi r0 3",
		"    ldi r1 0x55",
		"    call double",
		"    halt",
		"double:",
		"    push r1",
		"    ldi r1 0",
		"    add r0 r0 r0",
		"    pop r1",
		"    ret",
	)

	rep := Execute(cp, Options{})
	assert.Equal(HALT_NORMAL, rep.Reason)
	assert.Equal(uint32(6), rep.Register[0])
	assert.Equal(uint32(0x55), rep.Register[1])
	assert.Equal(uint32(256), rep.Register[7])
	assert.Equal(uint64(9), rep.Steps)
	assert.Equal(uint32(17), rep.Pc)
}

func TestExecuteMemory(t *testing.T) {
	assert := assert.New(t)

	cp := buildText(t, 256,
		"    ldi r1 0x80",
		"    ldi r0 0x12345678",
		"    stw r0 r1 4",
		"    ldb r2 r1 5",
		"    ldw r3 r1 4",
		"    halt",
	)

	rep := Execute(cp, Options{})
	assert.Equal(HALT_NORMAL, rep.Reason)
	assert.Equal(uint32(0x56), rep.Register[2])
	assert.Equal(uint32(0x12345678), rep.Register[3])
	assert.Equal(uint64(1), cp.Memory.Writes)
	assert.Equal(uint64(2), cp.Memory.Reads)
}

func TestExecuteWidth(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 256
	cfg.RegisterWidth = 8
	cp, err := builder.Build(cfg, &asm.Text{Input: strings.NewReader("ldi r0 0xff\naddi r0 1\nhalt")})
	assert.NoError(err)

	rep := Execute(cp, Options{})
	assert.Equal(HALT_NORMAL, rep.Reason)
	assert.Equal(uint32(0), rep.Register[0])
	assert.True(rep.Flags.Has(isa.FLAG_Z | isa.FLAG_C))
	assert.Equal(uint32(0), rep.Register[7])
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	cp := build(t, 256, isa.Encode(isa.Make(isa.OP_NOP), isa.Make(isa.OP_HALT)))

	in, reason, err := Step(cp)
	assert.NoError(err)
	assert.Equal(HALT_RUNNING, reason)
	assert.Equal(isa.OP_NOP, in.Opcode)
	assert.Equal(uint32(1), cp.Pc)
	assert.Equal(uint64(1), cp.Ticks)

	in, reason, err = Step(cp)
	assert.NoError(err)
	assert.Equal(HALT_NORMAL, reason)
	assert.Equal(isa.OP_HALT, in.Opcode)
	assert.Equal(uint32(1), cp.Pc)
	assert.Equal(uint64(2), cp.Ticks)

	// Halt is idempotent.
	_, reason, _ = Step(cp)
	assert.Equal(HALT_NORMAL, reason)
	assert.Equal(uint32(1), cp.Pc)

	cp.Pc = 300
	_, reason, err = Step(cp)
	assert.Equal(HALT_PC, reason)
	assert.ErrorIs(err, ErrPcOutOfBounds{})
	assert.Equal(uint64(3), cp.Ticks)
}

func TestHaltReason(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("running", HALT_RUNNING.String())
	assert.Equal("normal", HALT_NORMAL.String())
	assert.Equal("decode", HALT_DECODE.String())
	assert.Equal("fault", HALT_FAULT.String())
	assert.Equal("pc", HALT_PC.String())
	assert.Equal("steps", HALT_STEPS.String())
	assert.Equal("HaltReason(9)", HaltReason(9).String())
}

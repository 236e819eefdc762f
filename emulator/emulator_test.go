package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/optvm/asm"
	"github.com/ezrec/optvm/builder"
	"github.com/ezrec/optvm/executor"
	"github.com/ezrec/optvm/isa"
	"github.com/ezrec/optvm/memory"
	"github.com/ezrec/optvm/profile"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(builder.DefaultConfig())

	assert.False(emu.Verbose)
	assert.Nil(emu.Cpu)
	assert.Equal(0, emu.LineNo())

	rep := emu.Run()
	assert.ErrorIs(rep.Err, ErrNotLoaded)
}

func doRun(emu *Emulator, program []string, t *testing.T) (rep executor.Report) {
	src := &asm.Text{
		Assembler: emu.Assembler(),
		Input:     strings.NewReader(strings.Join(program, "\n")),
	}

	err := emu.Load(src)
	require.NoError(t, err)
	require.NotNil(t, emu.Program)

	rep = emu.Run()
	return
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 0x1000
	cfg.RegisterWidth = 16
	emu := NewEmulator(cfg)
	emu.Predefine("COUNT", "3")

	defines := maps.Collect(emu.Defines())
	assert.Equal("0x1000", defines["MEMORY_SIZE"])
	assert.Equal("16", defines["REGISTER_WIDTH"])
	assert.Equal("2", defines["WORD_BYTES"])
	assert.Equal("3", defines["COUNT"])

	rep := doRun(emu, []string{
		"ldi r0 MEMORY_SIZE",
		"ldi r1 $(COUNT * WORD_BYTES)",
		"halt",
	}, t)
	assert.Equal(executor.HALT_NORMAL, rep.Reason)
	assert.Equal(uint32(0x1000), rep.Register[0])
	assert.Equal(uint32(6), rep.Register[1])
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 256
	emu := NewEmulator(cfg)
	emu.Profile = &profile.Profile{}

	rep := doRun(emu, []string{
		"load_imm r0, 5",
		"load_imm r1, 7",
		"add r2, r0, r1",
		"halt",
	}, t)

	assert.Equal(executor.HALT_NORMAL, rep.Reason)
	assert.NoError(rep.Err)
	assert.Equal(uint32(12), rep.Register[2])
	assert.Equal(4, emu.LineNo())
	assert.Equal(uint64(2), emu.Profile.Count(isa.OP_LDI))
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 256
	emu := NewEmulator(cfg)

	rep := doRun(emu, []string{
		"ldi r1 0x1000",
		"; comment",
		"ldw r0 r1",
		"halt",
	}, t)

	assert.Equal(executor.HALT_FAULT, rep.Reason)
	assert.ErrorIs(rep.Err, memory.ErrOutOfBounds{})

	var re *ErrRuntime
	assert.True(errors.As(rep.Err, &re))
	assert.Equal(3, re.LineNo)
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 256
	cfg.MaxSteps = 5
	emu := NewEmulator(cfg)

	rep := doRun(emu, []string{
		"nop",
		"loop: jmp loop",
	}, t)

	assert.Equal(executor.HALT_STEPS, rep.Reason)
	assert.ErrorIs(rep.Err, executor.ErrStepLimit)
	assert.Equal(uint64(5), rep.Steps)
	assert.Equal(2, emu.LineNo())
}

func TestEmulatorLoadBinary(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 256
	emu := NewEmulator(cfg)

	err := emu.Load(builder.Bytes(isa.Encode(isa.Make(isa.OP_JMP, 9999))))
	assert.NoError(err)
	assert.Nil(emu.Program)

	rep := emu.Run()
	assert.Equal(executor.HALT_PC, rep.Reason)

	var re *ErrRuntime
	assert.True(errors.As(rep.Err, &re))
	assert.Equal(0, re.LineNo)
}

func TestEmulatorLoadError(t *testing.T) {
	assert := assert.New(t)

	cfg := builder.DefaultConfig()
	cfg.MemorySize = 16
	emu := NewEmulator(cfg)

	err := emu.Load(builder.Bytes(make([]byte, 32)))
	assert.ErrorIs(err, builder.ErrImageTooLarge)
	assert.Nil(emu.Cpu)

	err = emu.Load(&asm.Text{Assembler: emu.Assembler(), Input: strings.NewReader("bogus")})
	var se *asm.ErrSyntax
	assert.True(errors.As(err, &se))
	assert.Equal(1, se.LineNo)
}

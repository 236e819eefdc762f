package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/optvm/asm"
	"github.com/ezrec/optvm/builder"
	"github.com/ezrec/optvm/emulator"
	"github.com/ezrec/optvm/executor"
)

func TestBenchSource(t *testing.T) {
	require := require.New(t)

	cfg := builder.DefaultConfig()
	emu := emulator.NewEmulator(cfg)

	err := emu.Load(&asm.Text{Assembler: emu.Assembler(), Input: strings.NewReader(benchSource)})
	require.NoError(err)

	rep := emu.Run()
	require.Equal(executor.HALT_NORMAL, rep.Reason, rep.String())

	// Sum of the squares 0..63.
	require.Equal(uint32(63*64*127/6), rep.Register[2])
	require.Equal(uint32(cfg.MemorySize), rep.Register[7])
}

func TestDefineFlags(t *testing.T) {
	assert := assert.New(t)

	d := defineFlags{}
	assert.NoError(d.Set("A=0x10"))
	assert.NoError(d.Set("B"))
	assert.Equal(defineFlags{"A": "0x10", "B": "1"}, d)
}

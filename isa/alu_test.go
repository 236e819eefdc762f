package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAluAdd(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		bits   int
		a, b   uint32
		result uint32
		flags  Flags
	}){
		{"simple", 32, 5, 7, 12, 0},
		{"zero", 32, 0, 0, 0, FLAG_Z},
		{"carry", 32, 0xffffffff, 1, 0, FLAG_Z | FLAG_C},
		{"overflow", 32, 0x7fffffff, 1, 0x80000000, FLAG_N | FLAG_V},
		{"negative", 32, 0xfffffffe, 1, 0xffffffff, FLAG_N},
		{"carry_8", 8, 0xff, 2, 1, FLAG_C},
		{"overflow_8", 8, 0x7f, 1, 0x80, FLAG_N | FLAG_V},
		{"overflow_16", 16, 0x8000, 0x8000, 0, FLAG_Z | FLAG_C | FLAG_V},
	}

	for _, entry := range table {
		result, flags := aluAdd(entry.bits, entry.a, entry.b)
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.flags, flags, entry.name)
	}
}

func TestAluSub(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		bits   int
		a, b   uint32
		result uint32
		flags  Flags
	}){
		{"simple", 32, 7, 5, 2, 0},
		{"equal", 32, 7, 7, 0, FLAG_Z},
		{"borrow", 32, 5, 7, 0xfffffffe, FLAG_C | FLAG_N},
		{"overflow", 32, 0x80000000, 1, 0x7fffffff, FLAG_V},
		{"borrow_8", 8, 0, 1, 0xff, FLAG_C | FLAG_N},
	}

	for _, entry := range table {
		result, flags := aluSub(entry.bits, entry.a, entry.b)
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.flags, flags, entry.name)
	}
}

func TestAluMulShift(t *testing.T) {
	assert := assert.New(t)

	result, flags := aluMul(32, 0x10000, 0x10000)
	assert.Equal(uint32(0), result)
	assert.Equal(FLAG_Z|FLAG_C|FLAG_V, flags)

	result, flags = aluMul(16, 0x100, 0x10)
	assert.Equal(uint32(0x1000), result)
	assert.Equal(Flags(0), flags)

	result, flags = aluShl(32, 0x80000001, 1)
	assert.Equal(uint32(2), result)
	assert.Equal(FLAG_C, flags)

	result, flags = aluShl(8, 0x81, 9)
	assert.Equal(uint32(2), result)
	assert.Equal(FLAG_C, flags)

	result, flags = aluShr(32, 3, 1)
	assert.Equal(uint32(1), result)
	assert.Equal(FLAG_C, flags)

	result, flags = aluShr(32, 3, 32)
	assert.Equal(uint32(3), result)
	assert.Equal(Flags(0), flags)
}

func TestFlagsString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("----", Flags(0).String())
	assert.Equal("Z-N-", (FLAG_Z | FLAG_N).String())
	assert.Equal("ZCNV", (FLAG_Z | FLAG_C | FLAG_N | FLAG_V).String())
	assert.True((FLAG_Z | FLAG_C).Has(FLAG_C))
	assert.False(FLAG_Z.Has(FLAG_Z | FLAG_C))
}

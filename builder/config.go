package builder

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/optvm/isa"
)

// Config is the machine configuration.
type Config struct {
	MemorySize    uint32 `toml:"memory_size"`    // Size of memory, in bytes.
	BaseAddress   uint32 `toml:"base_address"`   // Load address of the program image, and initial pc.
	RegisterCount int    `toml:"register_count"` // Registers in the register file, including sp.
	RegisterWidth int    `toml:"register_width"` // Register width in bits: 8, 16 or 32.
	WordAligned   bool   `toml:"word_aligned"`   // Require aligned multi-byte memory accesses.
	Fill          uint8  `toml:"fill"`           // Initial value of every memory byte.
	MaxSteps      uint64 `toml:"max_steps"`      // Executor step limit; 0 is unbounded.
}

// DefaultConfig returns the default machine: 64KiB of memory, eight 32-bit
// registers, program at address zero, no step limit.
func DefaultConfig() Config {
	return Config{
		MemorySize:    64 * 1024,
		BaseAddress:   0,
		RegisterCount: isa.REGISTER_COUNT_DEFAULT,
		RegisterWidth: isa.WIDTH_DEFAULT,
	}
}

// LoadConfig reads a TOML configuration. Missing keys keep their default
// value; unknown keys are an error.
func LoadConfig(r io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		err = ErrConfigKey(undecoded[0].String())
		return
	}

	err = cfg.Validate()

	return
}

// Validate checks the configuration for consistency.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.MemorySize == 0:
		err = ErrMemorySize
	case cfg.BaseAddress >= cfg.MemorySize:
		err = ErrBaseAddress
	case cfg.RegisterCount < isa.REGISTER_COUNT_MIN || cfg.RegisterCount > isa.REGISTER_COUNT_MAX:
		err = ErrRegisterCount
	case !isa.WidthValid(cfg.RegisterWidth):
		err = ErrRegisterWidth
	case uint64(cfg.MemorySize) > uint64(isa.WidthMask(cfg.RegisterWidth))+1:
		err = ErrAddressable
	}

	return
}

// Defines returns the assembler equates describing this machine.
func (cfg Config) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MEMORY_SIZE":    fmt.Sprintf("%#x", cfg.MemorySize),
		"BASE_ADDRESS":   fmt.Sprintf("%#x", cfg.BaseAddress),
		"REGISTER_COUNT": fmt.Sprintf("%d", cfg.RegisterCount),
		"REGISTER_WIDTH": fmt.Sprintf("%d", cfg.RegisterWidth),
	})
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/optvm/asm"
	"github.com/ezrec/optvm/builder"
	"github.com/ezrec/optvm/cpu"
	"github.com/ezrec/optvm/executor"
	"github.com/ezrec/optvm/internal"
	"github.com/ezrec/optvm/profile"
)

// Emulator state. Configuration, CPU and the program listing.
type Emulator struct {
	Verbose  bool             // If set, enables verbose logging.
	Config   builder.Config   // Machine configuration.
	*cpu.Cpu                  // Reference to the CPU simulation, once loaded.
	Program  *asm.Program     // Program listing, if the source was assembled.
	Profile  *profile.Profile // If set, collects an opcode profile.

	predefine map[string]string
}

// NewEmulator creates a new emulator.
func NewEmulator(cfg builder.Config) (emu *Emulator) {
	emu = &Emulator{
		Config: cfg,
	}

	return
}

// Predefine adds an assembler equate.
func (emu *Emulator) Predefine(equ string, value string) {
	if emu.predefine == nil {
		emu.predefine = map[string]string{equ: value}
	} else {
		emu.predefine[equ] = value
	}
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	word := map[string]string{
		"WORD_BYTES": fmt.Sprintf("%v", emu.Config.RegisterWidth/8),
	}

	return internal.IterSeq2Concat(maps.All(word),
		emu.Config.Defines(),
		maps.All(emu.predefine),
	)
}

// Assembler returns an assembler for this machine, with all defines set.
func (emu *Emulator) Assembler() (as *asm.Assembler) {
	as = &asm.Assembler{
		Verbose:   emu.Verbose,
		Base:      emu.Config.BaseAddress,
		Registers: emu.Config.RegisterCount,
	}
	for equ, value := range emu.Defines() {
		as.Predefine(equ, value)
	}

	return
}

// Load builds the machine from a program source.
func (emu *Emulator) Load(src builder.Source) (err error) {
	emu.Cpu = nil
	emu.Program = nil

	cp, err := builder.Build(emu.Config, src)
	if err != nil {
		return
	}

	if txt, ok := src.(*asm.Text); ok {
		emu.Program = txt.Program
	}

	emu.Cpu = cp
	emu.Cpu.Verbose = emu.Verbose

	return
}

// LineNo returns the source line number of the current instruction, or 0
// if it is unknown.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil || emu.Cpu == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Run executes the loaded program until it halts.
// An abnormal halt reports the source line of the failing instruction.
func (emu *Emulator) Run() (rep executor.Report) {
	if emu.Cpu == nil {
		rep.Reason = executor.HALT_PC
		rep.Err = ErrNotLoaded
		return
	}

	rep = executor.Execute(emu.Cpu, executor.Options{
		MaxSteps: emu.Config.MaxSteps,
		Verbose:  emu.Verbose,
		Profile:  emu.Profile,
	})

	if rep.Err != nil {
		rep.Err = &ErrRuntime{LineNo: emu.LineNo(), Err: rep.Err}
	}

	return
}

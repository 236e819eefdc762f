// Package executor runs the fetch-decode-execute loop of an optvm CPU.
//
// The executor is the only mutator of CPU state while a program runs. Every
// failure of the simulated machine ends the run with a HaltReason; none of
// them abort the host process.
package executor

import (
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/optvm/cpu"
	"github.com/ezrec/optvm/decoder"
	"github.com/ezrec/optvm/isa"
	"github.com/ezrec/optvm/profile"
)

// HaltReason is the run state of the machine.
type HaltReason int

//go:generate go tool stringer -linecomment -type=HaltReason
const (
	HALT_RUNNING = HaltReason(0) // running
	HALT_NORMAL  = HaltReason(1) // normal
	HALT_DECODE  = HaltReason(2) // decode
	HALT_FAULT   = HaltReason(3) // fault
	HALT_PC      = HaltReason(4) // pc
	HALT_STEPS   = HaltReason(5) // steps
)

// Options control a run.
type Options struct {
	MaxSteps uint64           // Maximum instructions to execute; zero is unbounded.
	Verbose  bool             // Log each executed instruction.
	Profile  *profile.Profile // If set, counts each executed opcode.
}

// Report is the final state of a run.
type Report struct {
	Reason   HaltReason // Why the run ended.
	Err      error      // Cause of an abnormal halt.
	Steps    uint64     // Instructions executed, including a final halt.
	Pc       uint32     // Final program counter.
	Register []uint32   // Final register values.
	Flags    isa.Flags  // Final flags.
}

// String summarizes the report.
func (rep Report) String() string {
	text := fmt.Sprintf("halt: %v at 0x%08x after %d steps", rep.Reason, rep.Pc, rep.Steps)
	if rep.Err != nil {
		text += fmt.Sprintf(": %v", rep.Err)
	}
	return text
}

// Step executes one instruction.
//
// The program counter is checked against memory before the fetch, and again
// after a branch or fall-through. A decode error or fault leaves the CPU
// state as it was before the step. A halt instruction leaves the program
// counter at the halt.
func Step(cp *cpu.Cpu) (in isa.Instruction, reason HaltReason, err error) {
	size := cp.Memory.Size()
	if cp.Pc >= size {
		reason = HALT_PC
		err = ErrPcOutOfBounds{Pc: cp.Pc, Size: size}
		return
	}

	in, next, err := decoder.Decode(cp.Memory, cp.Pc, len(cp.Register))
	if err != nil {
		reason = HALT_DECODE
		return
	}

	if cp.Verbose {
		log.Printf("%08x: %v", cp.Pc, in)
	}

	pc, halt, err := in.Opcode.Execute(cp, in, next)
	if err != nil {
		reason = HALT_FAULT
		err = &ErrFault{Instruction: in, Err: err}
		return
	}

	cp.Ticks++

	if halt {
		reason = HALT_NORMAL
		return
	}

	cp.Pc = pc
	if pc >= size {
		reason = HALT_PC
		err = ErrPcOutOfBounds{Pc: pc, Size: size}
		return
	}

	reason = HALT_RUNNING

	return
}

// Execute runs the CPU until it halts, or until opts.MaxSteps instructions
// have executed. Without a step limit a program that never halts runs forever.
func Execute(cp *cpu.Cpu, opts Options) (rep Report) {
	cp.Verbose = opts.Verbose
	start := cp.Ticks

	defer func() {
		rep.Steps = cp.Ticks - start
		rep.Pc = cp.Pc
		rep.Register = slices.Clone(cp.Register)
		rep.Flags = cp.Status

		if cp.Verbose {
			log.Printf("executor: %v", rep)
		}
	}()

	for {
		if opts.MaxSteps != 0 && cp.Ticks-start >= opts.MaxSteps {
			rep.Reason = HALT_STEPS
			rep.Err = ErrStepLimit
			return
		}

		ticks := cp.Ticks
		in, reason, err := Step(cp)
		if opts.Profile != nil && cp.Ticks != ticks {
			opts.Profile.Record(in.Opcode)
		}

		if reason != HALT_RUNNING {
			rep.Reason = reason
			rep.Err = err
			return
		}
	}
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ezrec/optvm/asm"
	"github.com/ezrec/optvm/builder"
	"github.com/ezrec/optvm/emulator"
	"github.com/ezrec/optvm/executor"
	"github.com/ezrec/optvm/profile"
)

//go:embed bench.asm
var benchSource string

// defineFlags collects -D NAME=VALUE assembler equates.
type defineFlags map[string]string

func (d defineFlags) String() string {
	return fmt.Sprint(map[string]string(d))
}

func (d defineFlags) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok {
		val = "1"
	}
	d[name] = val
	return nil
}

func main() {
	var config string
	var binary string
	var steps uint64
	var plot string
	var dump bool
	var verbose bool
	defines := defineFlags{}

	flag.StringVar(&config, "c", "", ".toml machine configuration")
	flag.StringVar(&binary, "b", "", "raw program image to load")
	flag.Uint64Var(&steps, "steps", 0, "Maximum instructions to execute (overrides max_steps)")
	flag.StringVar(&plot, "p", "", "Save an opcode profile chart (.png, .svg, .pdf)")
	flag.BoolVar(&dump, "dump", false, "Print the final machine state")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(defines, "D", "Assembler equate NAME=VALUE (repeatable)")

	flag.Parse()

	if flag.NArg() > 1 || (flag.NArg() == 1 && len(binary) != 0) {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := builder.DefaultConfig()
	if len(config) != 0 {
		inf, err := os.Open(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		cfg, err = builder.LoadConfig(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}
	if steps != 0 {
		cfg.MaxSteps = steps
	}

	emu := emulator.NewEmulator(cfg)
	emu.Verbose = verbose
	for equ, value := range defines {
		emu.Predefine(equ, value)
	}
	if len(plot) != 0 {
		emu.Profile = &profile.Profile{}
	}

	var src builder.Source
	name := "bench.s"
	switch {
	case len(binary) != 0:
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()
		name = binary
		src = &builder.Reader{Reader: inf}
	case flag.NArg() == 1:
		name = flag.Arg(0)
		inf, err := os.Open(name)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		defer inf.Close()
		src = &asm.Text{Assembler: emu.Assembler(), Input: inf}
	default:
		src = &asm.Text{Assembler: emu.Assembler(), Input: strings.NewReader(benchSource)}
	}

	err := emu.Load(src)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	usage := cpuUsage()
	start := time.Now()
	rep := emu.Run()
	elapsed := time.Since(start)

	fmt.Printf("timer: %d ms\n", elapsed.Milliseconds())
	if usage.ok {
		final := cpuUsage()
		fmt.Printf("user: %d ms, sys: %d ms\n",
			(final.user - usage.user).Milliseconds(),
			(final.sys - usage.sys).Milliseconds())
	}

	if dump {
		fmt.Println(rep)
		fmt.Print(emu.Cpu.String())
		fmt.Println(emu.Cpu.Memory)
		fmt.Printf("reads: %d, writes: %d\n", emu.Cpu.Memory.Reads, emu.Cpu.Memory.Writes)
	}

	if emu.Profile != nil {
		fmt.Print(emu.Profile.String())
		err = emu.Profile.Plot(plot)
		if err != nil {
			log.Printf("%v: %v", plot, err)
		}
	}

	if rep.Reason != executor.HALT_NORMAL {
		log.Printf("%v: %v", name, rep)
		os.Exit(2)
	}
}

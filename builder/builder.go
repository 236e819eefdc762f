// Package builder constructs a ready to run optvm machine from a
// configuration and a program source.
package builder

import (
	"github.com/ezrec/optvm/cpu"
	"github.com/ezrec/optvm/memory"
)

// Build allocates memory, loads the program image at the base address,
// write-protects it, and resets the CPU to run from the base address.
// Any failure is returned as an *ErrBuild, and no CPU is returned.
func Build(cfg Config, src Source) (cp *cpu.Cpu, err error) {
	defer func() {
		if err != nil {
			cp = nil
			err = &ErrBuild{Err: err}
		}
	}()

	err = cfg.Validate()
	if err != nil {
		return
	}

	if src == nil {
		err = ErrSourceMissing
		return
	}

	image, err := src.Image()
	if err != nil {
		return
	}

	if uint64(cfg.BaseAddress)+uint64(len(image)) > uint64(cfg.MemorySize) {
		err = ErrImageTooLarge
		return
	}

	mem := memory.New(cfg.MemorySize, memory.Options{WordAligned: cfg.WordAligned})
	mem.Fill(cfg.Fill)

	err = mem.LoadImage(cfg.BaseAddress, image)
	if err != nil {
		return
	}
	mem.Protect(cfg.BaseAddress, uint32(len(image)))

	cp = cpu.NewCpu(mem, cfg.RegisterCount, cfg.RegisterWidth)
	cp.Reset(cfg.BaseAddress)

	return
}

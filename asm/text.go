package asm

import (
	"io"
)

// Text is assembly language source, assembled when its image is requested.
type Text struct {
	Assembler *Assembler // Assembler to use; nil uses a default assembler.
	Input     io.Reader  // Assembly source.

	Program *Program // Set once the source has been assembled.
}

// Image assembles the source and returns the program image.
func (txt *Text) Image() (image []byte, err error) {
	if txt.Input == nil {
		err = ErrInputMissing
		return
	}

	asm := txt.Assembler
	if asm == nil {
		asm = &Assembler{}
	}

	prog, err := asm.Parse(txt.Input)
	if err != nil {
		return
	}

	txt.Program = prog
	image = prog.Binary()

	return
}

package memory

import (
	"errors"

	"github.com/ezrec/optvm/translate"
)

var f = translate.From

var (
	ErrWidthInvalid = errors.New(f("access width invalid"))
	ErrMisaligned   = errors.New(f("misaligned access"))
	ErrReadOnly     = errors.New(f("write to read-only memory"))
)

// ErrOutOfBounds is returned for any access that crosses the end of memory.
type ErrOutOfBounds struct {
	Address uint32 // Start of the access.
	Width   int    // Width of the access, in bytes.
	Size    uint32 // Size of the memory.
}

func (err ErrOutOfBounds) Error() string {
	return f("address 0x%08x+%v out of bounds (size 0x%x)", err.Address, err.Width, err.Size)
}

func (err ErrOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBounds)
	return
}

package builder

import (
	"errors"

	"github.com/ezrec/optvm/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrMemorySize    = errors.New(f("memory size invalid"))
	ErrBaseAddress   = errors.New(f("base address outside memory"))
	ErrRegisterCount = errors.New(f("register count invalid"))
	ErrRegisterWidth = errors.New(f("register width invalid"))
	ErrAddressable   = errors.New(f("memory not addressable by register width"))

	// Image errors
	ErrSourceMissing = errors.New(f("program source missing"))
	ErrImageTooLarge = errors.New(f("program image larger than memory"))
)

// ErrConfigKey is an unrecognized configuration key.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("configuration key '%v' unknown", string(err))
}

// ErrBuild is returned for any failure to build a machine.
type ErrBuild struct {
	Err error
}

func (err *ErrBuild) Error() string {
	return f("build: %v", err.Err)
}

func (err *ErrBuild) Unwrap() error {
	return err.Err
}

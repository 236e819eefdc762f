package builder

import (
	"bytes"
	"io"
)

// Source supplies a program image.
type Source interface {
	// Image returns the program bytes, to be loaded at the base address.
	Image() ([]byte, error)
}

// Bytes is an in-memory program image.
type Bytes []byte

var _ Source = Bytes(nil)

// Image returns a copy of the image.
func (b Bytes) Image() ([]byte, error) {
	return bytes.Clone(b), nil
}

// Reader is a raw program image read to the end of input.
type Reader struct {
	io.Reader
}

var _ Source = (*Reader)(nil)

// Image reads the image.
func (r *Reader) Image() (image []byte, err error) {
	if r.Reader == nil {
		err = ErrSourceMissing
		return
	}
	image, err = io.ReadAll(r.Reader)
	return
}

// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the LSB pattern, where
// least-significant bits are written/read first.
//
// It is the packing layer for bit arrays: an array of N bits occupies
// ceil(N/8) bytes, bit 0 in the LS bit of the first byte.
package bitstream

import "errors"

// LengthBits is the size of the length header preceding an array.
const (
	LengthBits = 16
	MaxLength  = 1<<LengthBits - 1
)

var ErrLengthOverflow = errors.New("bitstream: length does not fit the header")

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// NumBytes returns the number of bytes needed to hold numBits bits.
func NumBytes(numBits uint) uint {
	return (numBits + 7) / 8
}

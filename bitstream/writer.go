package bitstream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spacemeshos/bitint/bitarray"
)

// BitWriter writes bits to an io.Writer.
type BitWriter struct {
	stream    io.Writer
	pending   [1]byte
	alignment uint8
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	return &BitWriter{stream: w}
}

// WriteArray writes every bit of a, index 0 first, regardless of the alignment.
func (bw *BitWriter) WriteArray(a *bitarray.Array) error {
	for i := uint(0); i < a.Len(); i++ {
		if err := bw.WriteBit(Bit(a.Test(i))); err != nil {
			return err
		}
	}
	return nil
}

// WriteLength writes n as a big-endian header of LengthBits bits, regardless
// of the alignment. It precedes an array of n bits written with WriteArray.
func (bw *BitWriter) WriteLength(n uint) error {
	if n > MaxLength {
		return fmt.Errorf("%w: %d", ErrLengthOverflow, n)
	}

	var hdr [LengthBits / 8]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(n))
	for _, b := range hdr {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
// If the byte is to be split due to alignment, the LSB pattern is followed in bit-groups.
func (bw *BitWriter) WriteByte(b byte) error {
	// Fill the pending byte MS bits with LS bits.
	bw.pending[0] |= b << bw.alignment

	if err := bw.emit(); err != nil {
		return err
	}

	// Fill the new pending byte LS bits with MS bits.
	bw.pending[0] = b >> (8 - bw.alignment)

	return nil
}

// WriteBit writes a single bit to the stream, LSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bit {
		bw.pending[0] |= 1 << bw.alignment
	}

	bw.alignment++

	if bw.alignment == 8 {
		if err := bw.emit(); err != nil {
			return err
		}
		bw.pending[0] = 0
		bw.alignment = 0
	}

	return nil
}

// Flush flushes the currently pending byte to the stream by filling it with bit.
func (bw *BitWriter) Flush(bit Bit) error {
	for bw.alignment != 0 {
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}

	return nil
}

func (bw *BitWriter) emit() error {
	n, err := bw.stream.Write(bw.pending[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

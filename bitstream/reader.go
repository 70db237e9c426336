package bitstream

import (
	"encoding/binary"
	"io"

	"github.com/spacemeshos/bitint/bitarray"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream    io.Reader
	pending   [1]byte
	alignment uint8
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	return &BitReader{
		stream:    r,
		alignment: 8,
	}
}

// ReadArray reads the next size bits into a new array, index 0 first.
// A stream that ends before size bits returns io.ErrUnexpectedEOF.
func (br *BitReader) ReadArray(size uint) (*bitarray.Array, error) {
	a := bitarray.New(size)
	for i := uint(0); i < size; i++ {
		bit, err := br.ReadBit()
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		if bit {
			if err := a.Set(i, true); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

// ReadLength reads a header written by WriteLength. A stream that ends before
// the header returns io.EOF; one that ends inside it returns io.ErrUnexpectedEOF.
func (br *BitReader) ReadLength() (uint, error) {
	var hdr [LengthBits / 8]byte
	for i := range hdr {
		b, err := br.ReadByte()
		if err == io.EOF && i > 0 {
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		hdr[i] = b
	}
	return uint(binary.BigEndian.Uint16(hdr[:])), nil
}

// ReadByte reads the next single byte from the stream, regardless of the alignment.
// If the byte is split, the LSB pattern is followed in bit-groups.
func (br *BitReader) ReadByte() (byte, error) {
	if br.alignment == 8 {
		if err := br.fill(); err != nil {
			br.pending[0] = 0
			return 0, err
		}
		return br.pending[0], nil
	}

	// Not aligned: the current byte's remaining LS bits, with the next byte's LS bits as MS bits.
	current := br.pending[0]
	if err := br.fill(); err != nil {
		return 0, err
	}

	current |= br.pending[0] << (8 - br.alignment)

	// Remove the used LS bits from the next pending byte.
	br.pending[0] >>= br.alignment

	return current, nil
}

// ReadBit reads the next single bit from the stream, LSB first.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.alignment == 8 {
		if err := br.fill(); err != nil {
			return Zero, err
		}
		br.alignment = 0
	}
	br.alignment++

	lsb := Bit(br.pending[0]&1 == 1)
	br.pending[0] >>= 1

	return lsb, nil
}

// fill loads the next byte into pending. io.EOF is masked when it accompanies the last byte.
func (br *BitReader) fill() error {
	n, err := br.stream.Read(br.pending[:])
	if n == 1 {
		return nil
	}
	if err == nil {
		return io.ErrNoProgress
	}
	return err
}

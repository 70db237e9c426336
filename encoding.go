package bitint

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spacemeshos/bitint/bitarray"
	"github.com/spacemeshos/bitint/bitstream"
)

// Binary layout: a 16-bit big-endian width, then the bits least-significant
// first, LSB-packed, the last byte padded with zeros.
const widthHeaderBits = bitstream.LengthBits

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// EncodedSize returns the number of bytes the binary encoding of a width-bit value occupies.
func EncodedSize(width uint) uint {
	return bitstream.NumBytes(widthHeaderBits + width)
}

func writeArray(w io.Writer, a *bitarray.Array) (int64, error) {
	if a == nil {
		return 0, ErrDegenerateWidth
	}

	cw := &countingWriter{w: w}
	bw := bitstream.NewWriter(cw)
	if err := bw.WriteLength(a.Len()); err != nil {
		return cw.n, err
	}
	if err := bw.WriteArray(a); err != nil {
		return cw.n, err
	}
	if err := bw.Flush(bitstream.Zero); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func readArray(r io.Reader) (*bitarray.Array, error) {
	br := bitstream.NewReader(r)
	width, err := br.ReadLength()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: missing width header", ErrInvalidEncoding)
		}
		return nil, err
	}
	if err := checkWidth(width); err != nil {
		return nil, err
	}

	a, err := br.ReadArray(width)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated, expected %d bits", ErrInvalidEncoding, width)
		}
		return nil, err
	}
	return a, nil
}

func unmarshal(data []byte) (*bitarray.Array, error) {
	r := bytes.NewReader(data)
	a, err := readArray(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidEncoding, r.Len())
	}
	return a, nil
}

func marshal(a *bitarray.Array) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := writeArray(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (x Int) MarshalBinary() ([]byte, error) {
	return marshal(x.bits)
}

func (x *Int) UnmarshalBinary(data []byte) error {
	a, err := unmarshal(data)
	if err != nil {
		return err
	}
	x.bits = a
	return nil
}

// WriteTo writes the binary encoding of x to w.
func (x Int) WriteTo(w io.Writer) (int64, error) {
	return writeArray(w, x.bits)
}

// ReadInt reads one binary-encoded Int from r, consuming only its bytes.
func ReadInt(r io.Reader) (Int, error) {
	a, err := readArray(r)
	if err != nil {
		return Int{}, err
	}
	return Int{bits: a}, nil
}

func (x Uint) MarshalBinary() ([]byte, error) {
	return marshal(x.bits)
}

func (x *Uint) UnmarshalBinary(data []byte) error {
	a, err := unmarshal(data)
	if err != nil {
		return err
	}
	x.bits = a
	return nil
}

func (x Uint) WriteTo(w io.Writer) (int64, error) {
	return writeArray(w, x.bits)
}

// ReadUint reads one binary-encoded Uint from r, consuming only its bytes.
func ReadUint(r io.Reader) (Uint, error) {
	a, err := readArray(r)
	if err != nil {
		return Uint{}, err
	}
	return Uint{bits: a}, nil
}

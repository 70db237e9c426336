package bitint

import (
	"fmt"
	"math/bits"

	"github.com/spacemeshos/bitint/bitarray"
	"github.com/spacemeshos/bitint/bitstream"
)

const (
	// MinWidth is the narrowest array that can hold both a sign and a magnitude bit.
	MinWidth = 2

	// MaxWidth is bounded by the 16-bit width header of the binary encoding.
	MaxWidth = bitstream.MaxLength

	DefaultWidth = 256
)

func checkWidth(width uint) error {
	if width < MinWidth {
		return fmt.Errorf("%w; expected: >= %d, given: %d", ErrDegenerateWidth, MinWidth, width)
	}
	if width > MaxWidth {
		return fmt.Errorf("%w; expected: <= %d, given: %d", ErrWidthTooLarge, MaxWidth, width)
	}
	return nil
}

// checkOperands validates a pair of arrays about to be combined.
func checkOperands(x, y *bitarray.Array) error {
	if x == nil || y == nil {
		return ErrDegenerateWidth
	}
	if x.Len() != y.Len() {
		return &WidthMismatchError{Left: x.Len(), Right: y.Len()}
	}
	return checkWidth(x.Len())
}

// fits reports whether a magnitude needs no more than width-1 bits,
// leaving the top bit clear.
func fits(mag uint64, width uint) bool {
	return uint(bits.Len64(mag)) <= width-1
}

// set writes a bit at an index the caller has already bounds-checked.
func set(a *bitarray.Array, i uint, v bool) {
	if err := a.Set(i, v); err != nil {
		panic(err)
	}
}

// fromMagnitude decomposes mag into a new array by testing descending powers
// of two against the remaining magnitude. The caller guarantees it fits.
func fromMagnitude(mag uint64, width uint) *bitarray.Array {
	a := bitarray.New(width)
	rem := mag
	for pow := 63; pow >= 0; pow-- {
		p := uint64(1) << uint(pow)
		if p <= rem {
			rem -= p
			set(a, uint(pow), true)
		}
	}
	return a
}

// toUint64 sums 2^i over the set bits. ok is false if a bit above 63 is set.
func toUint64(a *bitarray.Array) (v uint64, ok bool) {
	for i := uint(0); i < a.Len(); i++ {
		if !a.Test(i) {
			continue
		}
		if i >= 64 {
			return 0, false
		}
		v += uint64(1) << i
	}
	return v, true
}

// rippleAdd adds two equal-width arrays one full adder at a time, from the
// least-significant bit up, and returns the sum and the carry out of the top bit.
func rippleAdd(x, y *bitarray.Array) (*bitarray.Array, bool) {
	width := x.Len()
	sum := bitarray.New(width)
	carry := false
	for i := uint(0); i < width; i++ {
		a, b := x.Test(i), y.Test(i)
		if a != b != carry {
			set(sum, i, true)
		}
		carry = (a && b) || (carry && a != b)
	}
	return sum, carry
}

// twosComplement complements a copy of x and adds one.
func twosComplement(x *bitarray.Array) *bitarray.Array {
	c := x.Clone()
	c.Negate()
	sum, _ := rippleAdd(c, fromMagnitude(1, x.Len()))
	return sum
}

func topBit(a *bitarray.Array) bool {
	return a.Test(a.Len() - 1)
}

// scanCmp compares two equal-width arrays as unsigned magnitudes: the first
// differing bit from the most-significant end decides.
func scanCmp(x, y *bitarray.Array) int {
	for i := x.Len(); i > 0; i-- {
		a, b := x.Test(i-1), y.Test(i-1)
		switch {
		case a && !b:
			return 1
		case !a && b:
			return -1
		}
	}
	return 0
}

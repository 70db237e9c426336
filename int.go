package bitint

import (
	"fmt"
	"math"

	"github.com/spacemeshos/bitint/bitarray"
)

// Int is a signed two's-complement integer of fixed width, stored as a bit
// array whose top bit is the sign. Values are immutable; every operation
// returns a new Int. The zero value has no width and is rejected by every
// checked operation.
type Int struct {
	bits *bitarray.Array
}

// NewInt encodes v in a width-bit two's-complement array.
func NewInt(v int64, width uint) (Int, error) {
	if err := checkWidth(width); err != nil {
		return Int{}, err
	}

	neg := v < 0
	mag := uint64(v)
	if neg {
		// Also correct for math.MinInt64, whose magnitude is 1<<63.
		mag = -mag
	}

	if !fits(mag, width) {
		// The most negative value needs the sign bit itself.
		if !neg || mag != uint64(1)<<(width-1) {
			return Int{}, fmt.Errorf("%w: %d does not fit in %d signed bits", ErrValueOutOfRange, v, width)
		}
	}

	a := fromMagnitude(mag, width)
	if neg {
		a = twosComplement(a)
	}
	return Int{bits: a}, nil
}

// MustInt is like NewInt but panics on error.
func MustInt(v int64, width uint) Int {
	x, err := NewInt(v, width)
	if err != nil {
		panic(err)
	}
	return x
}

// Width returns the number of bits, or 0 for the zero value.
func (x Int) Width() uint {
	if x.bits == nil {
		return 0
	}
	return x.bits.Len()
}

// Bit reports the bit at index i, 0 being the least-significant.
func (x Int) Bit(i uint) (bool, error) {
	if x.bits == nil {
		return false, &BitIndexError{Index: i}
	}
	v, err := x.bits.Get(i)
	if err != nil {
		return false, &BitIndexError{Index: i, Width: x.bits.Len()}
	}
	return v, nil
}

// Bits returns a copy of the underlying bit array.
func (x Int) Bits() *bitarray.Array {
	if x.bits == nil {
		return bitarray.New(0)
	}
	return x.bits.Clone()
}

func (x Int) IsNeg() bool {
	return x.bits != nil && topBit(x.bits)
}

func (x Int) IsZero() bool {
	return x.bits == nil || x.bits.Count() == 0
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.IsNeg():
		return -1
	default:
		return 1
	}
}

// Int64 decodes x. Values outside the int64 range return ErrValueOutOfRange.
func (x Int) Int64() (int64, error) {
	if x.bits == nil {
		return 0, ErrDegenerateWidth
	}

	if !x.IsNeg() {
		v, ok := toUint64(x.bits)
		if !ok || v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %s exceeds int64", ErrValueOutOfRange, x)
		}
		return int64(v), nil
	}

	mag, ok := toUint64(twosComplement(x.bits))
	if !ok || mag > uint64(1)<<63 {
		return 0, fmt.Errorf("%w: %s exceeds int64", ErrValueOutOfRange, x)
	}
	return int64(-mag), nil
}

// Neg returns the two's complement of x. The most negative value of a width
// is its own negation.
func (x Int) Neg() Int {
	if x.bits == nil {
		return x
	}
	return Int{bits: twosComplement(x.bits)}
}

// Add returns x+y. Adding two values of the same sign whose sum does not fit
// returns ErrSignedOverflow.
func (x Int) Add(y Int) (Int, error) {
	if err := checkOperands(x.bits, y.bits); err != nil {
		return Int{}, err
	}

	sum, _ := rippleAdd(x.bits, y.bits)
	xn, yn := x.IsNeg(), y.IsNeg()
	if xn == yn && topBit(sum) != xn {
		return Int{}, ErrSignedOverflow
	}
	return Int{bits: sum}, nil
}

// Sub returns x-y, computed as x plus the two's complement of y.
func (x Int) Sub(y Int) (Int, error) {
	if err := checkOperands(x.bits, y.bits); err != nil {
		return Int{}, err
	}

	diff, _ := rippleAdd(x.bits, twosComplement(y.bits))
	xn, yn := x.IsNeg(), y.IsNeg()
	if xn != yn && topBit(diff) != xn {
		return Int{}, ErrSignedOverflow
	}
	return Int{bits: diff}, nil
}

// Equal reports whether x and y have the same width and bits.
func (x Int) Equal(y Int) bool {
	return x.bits.Equal(y.bits)
}

// Compare returns -1, 0 or +1 depending on whether x is less than, equal to,
// or greater than y.
func (x Int) Compare(y Int) (int, error) {
	if err := checkOperands(x.bits, y.bits); err != nil {
		return 0, err
	}
	return cmpSigned(x.bits, y.bits), nil
}

// Cmp is like Compare but panics if the widths differ.
func (x Int) Cmp(y Int) int {
	c, err := x.Compare(y)
	if err != nil {
		panic(err)
	}
	return c
}

func cmpSigned(x, y *bitarray.Array) int {
	if x.Equal(y) {
		return 0
	}

	xn, yn := topBit(x), topBit(y)
	switch {
	case xn && !yn:
		return -1
	case !xn && yn:
		return 1
	case !xn && !yn:
		return scanCmp(x, y)
	default:
		// Both negative: the larger magnitude is the smaller value.
		return scanCmp(twosComplement(y), twosComplement(x))
	}
}

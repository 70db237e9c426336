package bitint

import (
	"fmt"

	"github.com/spacemeshos/bitint/bitarray"
)

// Uint is an unsigned integer of fixed width, stored as a bit array.
//
// The top bit belongs to the magnitude, but Add and Sub require it to be
// clear on both operands and report a result that sets it as an overflow or
// underflow, so the top bit never carries a wrapped value.
type Uint struct {
	bits *bitarray.Array
}

// NewUint encodes v in a width-bit array. v must leave the top bit clear.
func NewUint(v uint64, width uint) (Uint, error) {
	if err := checkWidth(width); err != nil {
		return Uint{}, err
	}
	if !fits(v, width) {
		return Uint{}, fmt.Errorf("%w: %d does not fit in %d unsigned bits", ErrValueOutOfRange, v, width)
	}
	return Uint{bits: fromMagnitude(v, width)}, nil
}

// MustUint is like NewUint but panics on error.
func MustUint(v uint64, width uint) Uint {
	x, err := NewUint(v, width)
	if err != nil {
		panic(err)
	}
	return x
}

func (x Uint) Width() uint {
	if x.bits == nil {
		return 0
	}
	return x.bits.Len()
}

func (x Uint) Bit(i uint) (bool, error) {
	if x.bits == nil {
		return false, &BitIndexError{Index: i}
	}
	v, err := x.bits.Get(i)
	if err != nil {
		return false, &BitIndexError{Index: i, Width: x.bits.Len()}
	}
	return v, nil
}

func (x Uint) Bits() *bitarray.Array {
	if x.bits == nil {
		return bitarray.New(0)
	}
	return x.bits.Clone()
}

func (x Uint) IsZero() bool {
	return x.bits == nil || x.bits.Count() == 0
}

// Uint64 decodes x. Values with a bit set above 63 return ErrValueOutOfRange.
func (x Uint) Uint64() (uint64, error) {
	if x.bits == nil {
		return 0, ErrDegenerateWidth
	}
	v, ok := toUint64(x.bits)
	if !ok {
		return 0, fmt.Errorf("%w: %s exceeds uint64", ErrValueOutOfRange, x)
	}
	return v, nil
}

// TwosComplement returns the raw two's complement of x. Its top bit is set
// for any non-zero x, so the result is only meaningful as a subtrahend.
func (x Uint) TwosComplement() Uint {
	if x.bits == nil {
		return x
	}
	return Uint{bits: twosComplement(x.bits)}
}

func checkUnsigned(x, y *bitarray.Array) error {
	if err := checkOperands(x, y); err != nil {
		return err
	}
	if topBit(x) {
		return fmt.Errorf("%w: left operand has its top bit set", ErrUnsignedUnderflow)
	}
	if topBit(y) {
		return fmt.Errorf("%w: right operand has its top bit set", ErrUnsignedUnderflow)
	}
	return nil
}

// Add returns x+y, or ErrUnsignedOverflow if the sum reaches the top bit.
func (x Uint) Add(y Uint) (Uint, error) {
	if err := checkUnsigned(x.bits, y.bits); err != nil {
		return Uint{}, err
	}

	sum, _ := rippleAdd(x.bits, y.bits)
	if topBit(sum) {
		return Uint{}, ErrUnsignedOverflow
	}
	return Uint{bits: sum}, nil
}

// Sub returns x-y, or ErrUnsignedUnderflow if y is greater than x.
func (x Uint) Sub(y Uint) (Uint, error) {
	if err := checkUnsigned(x.bits, y.bits); err != nil {
		return Uint{}, err
	}

	diff, _ := rippleAdd(x.bits, twosComplement(y.bits))
	if topBit(diff) {
		return Uint{}, ErrUnsignedUnderflow
	}
	return Uint{bits: diff}, nil
}

func (x Uint) Equal(y Uint) bool {
	return x.bits.Equal(y.bits)
}

// Compare returns -1, 0 or +1 depending on whether x is less than, equal to,
// or greater than y. The first differing bit from the top decides.
func (x Uint) Compare(y Uint) (int, error) {
	if err := checkOperands(x.bits, y.bits); err != nil {
		return 0, err
	}
	if x.bits.Equal(y.bits) {
		return 0, nil
	}
	return scanCmp(x.bits, y.bits), nil
}

// Cmp is like Compare but panics if the widths differ.
func (x Uint) Cmp(y Uint) int {
	c, err := x.Compare(y)
	if err != nil {
		panic(err)
	}
	return c
}

// Package bitarray provides a fixed-length sequence of bits, indexed from the
// least-significant bit (0) to the most-significant bit (Len()-1).
package bitarray

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

var ErrIndexOutOfRange = errors.New("bit index out of range")

// Array is a fixed-length bit sequence. Unlike the underlying bitset, it never
// grows: accessing an index outside [0, Len()) is an error.
type Array struct {
	set  *bitset.BitSet
	size uint
}

// New returns an all-zero Array of the given size.
func New(size uint) *Array {
	return &Array{
		set:  bitset.New(size),
		size: size,
	}
}

// Len returns the number of bits in the array.
func (a *Array) Len() uint {
	return a.size
}

func (a *Array) Get(i uint) (bool, error) {
	if i >= a.size {
		return false, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, a.size)
	}
	return a.set.Test(i), nil
}

func (a *Array) Set(i uint, v bool) error {
	if i >= a.size {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, a.size)
	}
	a.set.SetTo(i, v)
	return nil
}

// Test reports the bit at i. Indices outside the array read as false.
func (a *Array) Test(i uint) bool {
	if i >= a.size {
		return false
	}
	return a.set.Test(i)
}

// Negate complements every bit in place.
func (a *Array) Negate() {
	a.set = a.set.Complement()
}

func (a *Array) Clone() *Array {
	return &Array{
		set:  a.set.Clone(),
		size: a.size,
	}
}

// Equal reports whether both arrays have the same size and the same bits.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.size == b.size && a.set.Equal(b.set)
}

// Count returns the number of set bits.
func (a *Array) Count() uint {
	return a.set.Count()
}

// String renders the bits most-significant first.
func (a *Array) String() string {
	var sb strings.Builder
	sb.Grow(int(a.size))
	for i := a.size; i > 0; i-- {
		if a.set.Test(i - 1) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

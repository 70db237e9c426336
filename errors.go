package bitint

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/bitint/bitarray"
)

var (
	ErrWidthMismatch     = errors.New("operand widths differ")
	ErrSignedOverflow    = errors.New("signed overflow")
	ErrUnsignedOverflow  = errors.New("unsigned overflow")
	ErrUnsignedUnderflow = errors.New("unsigned underflow")
	ErrDegenerateWidth   = errors.New("width too small to hold a value")
	ErrWidthTooLarge     = errors.New("width too large")
	ErrValueOutOfRange   = errors.New("value out of range")
	ErrInvalidEncoding   = errors.New("invalid encoding")

	// ErrBitIndexOutOfRange is returned when a bit position beyond the width is queried.
	ErrBitIndexOutOfRange = bitarray.ErrIndexOutOfRange
)

type WidthMismatchError struct {
	Left  uint
	Right uint
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("operand widths differ; left: %d, right: %d", e.Left, e.Right)
}

func (e *WidthMismatchError) Is(target error) bool {
	return target == ErrWidthMismatch
}

type BitIndexError struct {
	Index uint
	Width uint
}

func (e *BitIndexError) Error() string {
	return fmt.Sprintf("bit index %d out of range for width %d", e.Index, e.Width)
}

func (e *BitIndexError) Is(target error) bool {
	return target == ErrBitIndexOutOfRange
}

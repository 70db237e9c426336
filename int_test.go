package bitint

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitint/bitarray"
)

// bits2147483 are the set bits of 2147483.
var bits2147483 = []uint{0, 1, 3, 4, 7, 10, 14, 15, 21}

func arrayOf(width uint, fill bool, flip ...uint) *bitarray.Array {
	a := bitarray.New(width)
	if fill {
		a.Negate()
	}
	for _, i := range flip {
		if err := a.Set(i, !fill); err != nil {
			panic(err)
		}
	}
	return a
}

func TestNewInt_One(t *testing.T) {
	r := require.New(t)

	x := MustInt(1, 256)
	r.True(arrayOf(256, false, 0).Equal(x.Bits()))
}

func TestNewInt_NegOne(t *testing.T) {
	r := require.New(t)

	x := MustInt(-1, 256)
	r.True(arrayOf(256, true).Equal(x.Bits()))
	r.Equal(uint(256), x.Bits().Count())
}

func TestNewInt_BigPos(t *testing.T) {
	r := require.New(t)

	x := MustInt(2147483, 256)
	r.True(arrayOf(256, false, bits2147483...).Equal(x.Bits()), x.GoString())
}

func TestNewInt_BigNeg(t *testing.T) {
	r := require.New(t)

	// ^2147483 + 1 keeps bit 0 set, so only the remaining bits are cleared.
	x := MustInt(-2147483, 256)
	r.True(arrayOf(256, true, bits2147483[1:]...).Equal(x.Bits()), x.GoString())
}

func TestNewInt_Zero(t *testing.T) {
	r := require.New(t)

	for _, width := range []uint{2, 8, 64, 256} {
		x := MustInt(0, width)
		r.Equal(width, x.Width())
		r.True(x.IsZero())
		r.Equal(0, x.Sign())
		r.True(bitarray.New(width).Equal(x.Bits()))
	}
}

func TestNewInt_DegenerateWidth(t *testing.T) {
	r := require.New(t)

	for _, width := range []uint{0, 1} {
		_, err := NewInt(0, width)
		r.ErrorIs(err, ErrDegenerateWidth)
	}

	_, err := NewInt(0, MaxWidth+1)
	r.ErrorIs(err, ErrWidthTooLarge)
}

func TestNewInt_OutOfRange(t *testing.T) {
	for _, tc := range []struct {
		v     int64
		width uint
		ok    bool
	}{
		{1, 2, true},
		{-2, 2, true},
		{2, 2, false},
		{-3, 2, false},
		{127, 8, true},
		{-128, 8, true},
		{128, 8, false},
		{-129, 8, false},
		{math.MaxInt64, 64, true},
		{math.MinInt64, 64, true},
		{math.MaxInt64, 63, false},
		{math.MinInt64, 65, true},
	} {
		tc := tc
		t.Run(fmt.Sprintf("%d/%d", tc.v, tc.width), func(t *testing.T) {
			r := require.New(t)

			x, err := NewInt(tc.v, tc.width)
			if !tc.ok {
				r.ErrorIs(err, ErrValueOutOfRange)
				return
			}
			r.NoError(err)
			v, err := x.Int64()
			r.NoError(err)
			r.Equal(tc.v, v)
		})
	}
}

func TestInt_RoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 2, -2, 2147483, -2147483, 4294966, -4294966,
		1<<62 - 1, -(1<<62 - 1), math.MaxInt64, math.MinInt64,
	}
	for _, width := range []uint{64, 65, 128, 256} {
		for _, v := range values {
			r := require.New(t)

			got, err := MustInt(v, width).Int64()
			r.NoError(err)
			r.Equal(v, got, "width %d", width)
		}
	}
}

func TestInt_Int64OutOfRange(t *testing.T) {
	r := require.New(t)

	x, err := MustInt(math.MaxInt64, 256).Add(MustInt(1, 256))
	r.NoError(err)
	_, err = x.Int64()
	r.ErrorIs(err, ErrValueOutOfRange)

	x, err = MustInt(math.MinInt64, 256).Sub(MustInt(1, 256))
	r.NoError(err)
	_, err = x.Int64()
	r.ErrorIs(err, ErrValueOutOfRange)

	// -2^64 needs bit 64 for its magnitude.
	x, err = MustInt(math.MinInt64, 65).Add(MustInt(math.MinInt64, 65))
	r.NoError(err)
	r.True(x.IsNeg())
	_, err = x.Int64()
	r.ErrorIs(err, ErrValueOutOfRange)

	_, err = Int{}.Int64()
	r.ErrorIs(err, ErrDegenerateWidth)
}

func TestInt_Add(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a, b, c int64
	}{
		{"pos_add", 2147483, 2147483, 4294966},
		{"negative_add", -2147483, -2147483, -4294966},
		{"zero_sum", -2147483, 2147483, 0},
		{"mixed", -5, 3, -2},
		{"min_plus_max", math.MinInt64, math.MaxInt64, -1},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			c, err := MustInt(tc.a, 256).Add(MustInt(tc.b, 256))
			r.NoError(err)
			r.True(MustInt(tc.c, 256).Equal(c), c.String())
		})
	}
}

func TestInt_Sub(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a, b, c int64
	}{
		{"pos_sub", 4294966, 2147483, 2147483},
		{"negative_sub", -2147483, -2147483, 0},
		{"below_zero", 2147483, 4294966, -2147483},
		{"minus_negative", 3, -5, 8},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			c, err := MustInt(tc.a, 256).Sub(MustInt(tc.b, 256))
			r.NoError(err)
			r.True(MustInt(tc.c, 256).Equal(c), c.String())
		})
	}
}

// TestInt_Exhaustive8 checks every pair of 8-bit values against native arithmetic.
func TestInt_Exhaustive8(t *testing.T) {
	r := require.New(t)

	const width = 8
	vals := make([]Int, 0, 256)
	for v := int64(math.MinInt8); v <= math.MaxInt8; v++ {
		vals = append(vals, MustInt(v, width))
	}

	for i, x := range vals {
		a := int64(i) + math.MinInt8
		for j, y := range vals {
			b := int64(j) + math.MinInt8

			sum, err := x.Add(y)
			if s := a + b; s < math.MinInt8 || s > math.MaxInt8 {
				r.ErrorIs(err, ErrSignedOverflow, "%d + %d", a, b)
			} else {
				r.NoError(err, "%d + %d", a, b)
				got, err := sum.Int64()
				r.NoError(err)
				r.Equal(s, got, "%d + %d", a, b)
			}

			diff, err := x.Sub(y)
			if d := a - b; d < math.MinInt8 || d > math.MaxInt8 {
				r.ErrorIs(err, ErrSignedOverflow, "%d - %d", a, b)
			} else {
				r.NoError(err, "%d - %d", a, b)
				got, err := diff.Int64()
				r.NoError(err)
				r.Equal(d, got, "%d - %d", a, b)
			}

			want := 0
			switch {
			case a < b:
				want = -1
			case a > b:
				want = 1
			}
			r.Equal(want, x.Cmp(y), "cmp(%d, %d)", a, b)
			r.Equal(want == 0, x.Equal(y))
		}
	}
}

func TestInt_Overflow(t *testing.T) {
	r := require.New(t)

	_, err := MustInt(127, 8).Add(MustInt(1, 8))
	r.ErrorIs(err, ErrSignedOverflow)

	_, err = MustInt(-128, 8).Add(MustInt(-1, 8))
	r.ErrorIs(err, ErrSignedOverflow)

	// Carry out of the top bit is absorbed when it does not change the sign.
	x, err := MustInt(-1, 8).Add(MustInt(-1, 8))
	r.NoError(err)
	r.True(MustInt(-2, 8).Equal(x))

	_, err = MustInt(0, 8).Sub(MustInt(-128, 8))
	r.ErrorIs(err, ErrSignedOverflow)

	x, err = MustInt(-1, 8).Sub(MustInt(-128, 8))
	r.NoError(err)
	r.True(MustInt(127, 8).Equal(x))
}

func TestInt_WidthMismatch(t *testing.T) {
	r := require.New(t)

	a, b := MustInt(1, 8), MustInt(1, 16)

	_, err := a.Add(b)
	r.ErrorIs(err, ErrWidthMismatch)
	var wm *WidthMismatchError
	r.True(errors.As(err, &wm))
	r.Equal(uint(8), wm.Left)
	r.Equal(uint(16), wm.Right)

	_, err = a.Sub(b)
	r.ErrorIs(err, ErrWidthMismatch)

	_, err = a.Compare(b)
	r.ErrorIs(err, ErrWidthMismatch)

	r.Panics(func() { a.Cmp(b) })
	r.False(a.Equal(b))
}

func TestInt_ZeroValue(t *testing.T) {
	r := require.New(t)

	_, err := Int{}.Add(MustInt(1, 8))
	r.ErrorIs(err, ErrDegenerateWidth)

	_, err = MustInt(1, 8).Sub(Int{})
	r.ErrorIs(err, ErrDegenerateWidth)

	r.Equal(uint(0), Int{}.Width())
	r.True(Int{}.Neg().Equal(Int{}))
}

func TestInt_Neg(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2147483, -2147483, math.MaxInt64, math.MinInt64 + 1} {
		r := require.New(t)

		x := MustInt(v, 256)
		r.True(x.Neg().Neg().Equal(x), "neg(neg(%d))", v)
		r.True(MustInt(-v, 256).Equal(x.Neg()), "neg(%d)", v)

		sum, err := x.Add(x.Neg())
		r.NoError(err)
		r.True(sum.IsZero(), "%d + neg(%d)", v, v)
		r.True(bitarray.New(256).Equal(sum.Bits()))
	}
}

func TestInt_NegMin(t *testing.T) {
	r := require.New(t)

	min := MustInt(-128, 8)
	r.True(min.Neg().Equal(min))
	r.True(min.Neg().Neg().Equal(min))
}

func TestInt_Commutative(t *testing.T) {
	r := require.New(t)

	values := []int64{0, 1, -1, 2147483, -4294966, 1 << 40, -(1 << 50)}
	for _, a := range values {
		for _, b := range values {
			x, err := MustInt(a, 256).Add(MustInt(b, 256))
			r.NoError(err)
			y, err := MustInt(b, 256).Add(MustInt(a, 256))
			r.NoError(err)
			r.True(x.Equal(y), "%d + %d", a, b)
		}
	}
}

func TestInt_Cmp(t *testing.T) {
	r := require.New(t)

	a := MustInt(2147483, 256)
	b := MustInt(2147484, 256)
	r.Equal(-1, a.Cmp(b))
	r.Equal(1, b.Cmp(a))
	r.Equal(0, a.Cmp(MustInt(2147483, 256)))

	r.Equal(-1, MustInt(-3, 256).Cmp(MustInt(-2, 256)))
	r.Equal(1, MustInt(-2, 256).Cmp(MustInt(-3, 256)))
	r.Equal(-1, MustInt(-5, 256).Cmp(MustInt(3, 256)))
	r.Equal(1, MustInt(0, 256).Cmp(MustInt(-1, 256)))
	r.Equal(-1, MustInt(math.MinInt64, 64).Cmp(MustInt(-1, 64)))
	r.Equal(1, MustInt(-1, 64).Cmp(MustInt(math.MinInt64, 64)))
}

func TestInt_OrderTransitive(t *testing.T) {
	r := require.New(t)

	values := []int64{-4294966, -2147483, -1, 0, 1, 2147483, 4294966}
	ints := make([]Int, len(values))
	for i, v := range values {
		ints[i] = MustInt(v, 256)
	}

	for i := range ints {
		for j := range ints {
			r.Equal(-ints[j].Cmp(ints[i]), ints[i].Cmp(ints[j]))
			for k := range ints {
				if ints[i].Cmp(ints[j]) < 0 && ints[j].Cmp(ints[k]) < 0 {
					r.Equal(-1, ints[i].Cmp(ints[k]))
				}
			}
		}
	}
}

func TestInt_Bit(t *testing.T) {
	r := require.New(t)

	x := MustInt(2147483, 256)
	for _, i := range bits2147483 {
		v, err := x.Bit(i)
		r.NoError(err)
		r.True(v)
	}
	v, err := x.Bit(255)
	r.NoError(err)
	r.False(v)

	_, err = x.Bit(256)
	r.ErrorIs(err, ErrBitIndexOutOfRange)
	var be *BitIndexError
	r.True(errors.As(err, &be))
	r.Equal(uint(256), be.Index)
	r.Equal(uint(256), be.Width)

	_, err = Int{}.Bit(0)
	r.ErrorIs(err, ErrBitIndexOutOfRange)
}

func TestInt_BitsIsCopy(t *testing.T) {
	r := require.New(t)

	x := MustInt(1, 8)
	b := x.Bits()
	r.NoError(b.Set(1, true))
	r.True(MustInt(1, 8).Equal(x))
}

func TestInt_String(t *testing.T) {
	r := require.New(t)

	r.Equal("i8:0b101", MustInt(5, 8).String())
	r.Equal("i8:0b0", MustInt(0, 8).String())
	r.Equal("i4:0b1111", MustInt(-1, 4).String())
	r.Equal("bitint.Int{width: 4, bits: 0b0011}", MustInt(3, 4).GoString())
	r.Equal("i0:<nil>", Int{}.String())
}

package bitarray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := require.New(t)

	a := New(256)
	r.Equal(uint(256), a.Len())
	r.Equal(uint(0), a.Count())
}

func TestGetSet(t *testing.T) {
	r := require.New(t)

	a := New(10)
	r.NoError(a.Set(0, true))
	r.NoError(a.Set(9, true))

	v, err := a.Get(0)
	r.NoError(err)
	r.True(v)

	v, err = a.Get(5)
	r.NoError(err)
	r.False(v)

	r.NoError(a.Set(0, false))
	v, err = a.Get(0)
	r.NoError(err)
	r.False(v)
	r.Equal(uint(1), a.Count())
}

func TestOutOfRange(t *testing.T) {
	r := require.New(t)

	a := New(8)
	_, err := a.Get(8)
	r.True(errors.Is(err, ErrIndexOutOfRange))

	err = a.Set(8, true)
	r.True(errors.Is(err, ErrIndexOutOfRange))

	// The array must not have grown.
	r.Equal(uint(8), a.Len())
	r.False(a.Test(8))
}

func TestNegate(t *testing.T) {
	r := require.New(t)

	a := New(70)
	r.NoError(a.Set(3, true))
	a.Negate()

	r.Equal(uint(70), a.Len())
	r.Equal(uint(69), a.Count())
	r.False(a.Test(3))
	r.True(a.Test(69))

	a.Negate()
	r.Equal(uint(1), a.Count())
	r.True(a.Test(3))
}

func TestCloneIsIndependent(t *testing.T) {
	r := require.New(t)

	a := New(16)
	r.NoError(a.Set(1, true))
	b := a.Clone()
	r.True(a.Equal(b))

	r.NoError(b.Set(2, true))
	r.False(a.Equal(b))
	r.False(a.Test(2))
}

func TestEqual(t *testing.T) {
	r := require.New(t)

	r.True(New(8).Equal(New(8)))
	r.False(New(8).Equal(New(9)))
	r.False(New(8).Equal(nil))

	var nilArr *Array
	r.True(nilArr.Equal(nil))
}

func TestString(t *testing.T) {
	r := require.New(t)

	a := New(6)
	r.NoError(a.Set(0, true))
	r.NoError(a.Set(4, true))
	r.Equal("010001", a.String())
}

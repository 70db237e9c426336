// Package bitint implements fixed-width integers stored as explicit bit
// arrays: a signed two's-complement Int and an unsigned Uint.
//
// Both kinds are built by binary decomposition of a native integer, added
// with a ripple-carry adder, subtracted by adding the two's complement, and
// ordered by scanning bits from the most-significant end. Every contract
// violation (mismatched widths, overflow, underflow, out-of-range bit access)
// is returned as an error rather than wrapped into a result.
//
//	a := bitint.MustInt(2147483, 256)
//	b := bitint.MustInt(2147484, 256)
//	sum, err := a.Add(b)
package bitint

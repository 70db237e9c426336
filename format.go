package bitint

import (
	"fmt"
	"strings"

	"github.com/spacemeshos/bitint/bitarray"
)

// String renders x for diagnostics as "i<width>:0b<bits>", most-significant
// bit first, leading zeros trimmed. The form carries no round-trip guarantee.
func (x Int) String() string {
	return format("i", x.bits)
}

// GoString renders every bit, including leading zeros.
func (x Int) GoString() string {
	return goFormat("Int", x.bits)
}

func (x Uint) String() string {
	return format("u", x.bits)
}

func (x Uint) GoString() string {
	return goFormat("Uint", x.bits)
}

func format(prefix string, a *bitarray.Array) string {
	if a == nil {
		return prefix + "0:<nil>"
	}
	s := strings.TrimLeft(a.String(), "0")
	if s == "" {
		s = "0"
	}
	return fmt.Sprintf("%s%d:0b%s", prefix, a.Len(), s)
}

func goFormat(kind string, a *bitarray.Array) string {
	if a == nil {
		return "bitint." + kind + "{}"
	}
	return fmt.Sprintf("bitint.%s{width: %d, bits: 0b%s}", kind, a.Len(), a.String())
}

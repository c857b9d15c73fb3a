package printer

import (
	"math"
	"strconv"

	"github.com/tidepoolcode/toon-go/value"
)

// formatNumber renders a Number per spec.md §4.1: integers print as plain
// decimal; floats with a zero fractional part drop the decimal point;
// otherwise the shortest round-trip decimal is used. Go's strconv with
// fmt='f' and prec=-1 already produces the shortest round-trip digits in
// plain (non-exponential) notation for any float64 magnitude, which is
// exactly the "17 significant digits, strip trailing zeros, never
// exponential" behavior the spec describes by another route — so no
// separate exponent-stripping pass is needed. Non-finite values (NaN,
// +/-Inf) print as the literal null; negative zero prints as 0.
func formatNumber(n value.Number) string {
	switch n.Kind() {
	case value.NumberI64:
		i, _ := n.Int64()
		return strconv.FormatInt(i, 10)
	case value.NumberU64:
		u, _ := n.Uint64()
		return strconv.FormatUint(u, 10)
	default:
		f := n.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "null"
		}
		if f == 0 {
			return "0"
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

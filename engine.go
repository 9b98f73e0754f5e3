package fixdec

import (
	"fmt"
	"strconv"
)

// Engine is the arithmetic primitive a [Decimal] delegates to.
// Implementations adapt an arbitrary-precision decimal library to a single
// string-based contract:
//
//   - operands are canonical decimal strings (see [ToString]);
//   - scale is the non-negative number of fractional digits of the result;
//   - the result is a canonical decimal string with exactly scale fractional
//     digits (no decimal point when scale is 0), truncated toward zero,
//     never rounded, and zero is always unsigned;
//   - Mod follows the truncated-division convention: the remainder of
//     a - trunc(a/b)*b carries the sign of the dividend;
//   - Pow requires an integer exponent fitting 32 bits and truncates only
//     the final result;
//   - Cmp truncates both operands to the scale before ordering them.
//
// Div, Mod, and Pow with a negative exponent return [ErrDivisionByZero]
// when the divisor or the base is zero.
//
// The package provides [SpringEngine], [APDEngine], and [CompactEngine].
// Engines must be stateless and safe for concurrent use.
type Engine interface {
	Add(a, b string, scale int) (string, error)
	Sub(a, b string, scale int) (string, error)
	Mul(a, b string, scale int) (string, error)
	Div(a, b string, scale int) (string, error)
	Mod(a, b string, scale int) (string, error)
	Pow(a, b string, scale int) (string, error)
	Cmp(a, b string, scale int) (int, error)
}

// defaultEngine is used by decimals that do not carry their own engine.
var defaultEngine Engine = SpringEngine{}

// enginePow implements the integer-power contract on top of an engine's
// own multiplication and division. A product has exactly as many fractional
// digits as its factors combined, so squaring at that scale never loses
// digits; only the final result is cut to the requested scale.
func enginePow(e Engine, a, b string, scale int) (string, error) {
	exp64, err := strconv.ParseInt(b, 10, 32)
	if err != nil {
		return "", fmt.Errorf("parsing exponent %q: %w", b, ErrInvalidNumber)
	}
	exp := int(exp64)
	n := exp
	if n < 0 {
		n = -n
	}
	res, sq := "1", a
	for n > 0 {
		if n&1 == 1 {
			res, err = mulExact(e, res, sq)
			if err != nil {
				return "", err
			}
		}
		n >>= 1
		if n > 0 {
			sq, err = mulExact(e, sq, sq)
			if err != nil {
				return "", err
			}
		}
	}
	if exp < 0 {
		return e.Div("1", res, scale)
	}
	return e.Mul(res, "1", scale)
}

// mulExact multiplies two canonical strings without loss of digits.
func mulExact(e Engine, a, b string) (string, error) {
	return e.Mul(a, b, fracDigits(a)+fracDigits(b))
}

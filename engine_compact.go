package fixdec

import (
	"fmt"

	"github.com/govalues/decimal"
)

// CompactEngine adapts [github.com/govalues/decimal] to the [Engine]
// contract.
//
// The underlying type stores coefficients in a uint64, so the engine is
// range-limited: operands and results must fit [decimal.MaxPrec] digits and
// the scale must not exceed [decimal.MaxScale]. Within that range it allocates
// nothing and is considerably faster than the arbitrary-precision engines.
// Out-of-range operands, scales, and results are reported as [ErrOverflow].
//
// Quotients whose exact form needs more than [decimal.MaxPrec] significant
// digits are correctly rounded at the last representable digit before the
// truncation to the requested scale.
//
// [github.com/govalues/decimal]: https://pkg.go.dev/github.com/govalues/decimal
type CompactEngine struct{}

// Add implements the [Engine] interface.
func (e CompactEngine) Add(a, b string, scale int) (string, error) {
	x, y, err := compactOperands(a, b, scale)
	if err != nil {
		return "", err
	}
	z, err := x.AddExact(y, scale)
	if err != nil {
		return "", fmt.Errorf("computing sum: %w", ErrOverflow)
	}
	return compactFixed(z, scale)
}

// Sub implements the [Engine] interface.
func (e CompactEngine) Sub(a, b string, scale int) (string, error) {
	x, y, err := compactOperands(a, b, scale)
	if err != nil {
		return "", err
	}
	z, err := x.SubExact(y, scale)
	if err != nil {
		return "", fmt.Errorf("computing difference: %w", ErrOverflow)
	}
	return compactFixed(z, scale)
}

// Mul implements the [Engine] interface.
func (e CompactEngine) Mul(a, b string, scale int) (string, error) {
	x, y, err := compactOperands(a, b, scale)
	if err != nil {
		return "", err
	}
	z, err := x.MulExact(y, scale)
	if err != nil {
		return "", fmt.Errorf("computing product: %w", ErrOverflow)
	}
	return compactFixed(z, scale)
}

// Div implements the [Engine] interface.
// The quotient is truncated toward zero at the requested scale.
func (e CompactEngine) Div(a, b string, scale int) (string, error) {
	x, y, err := compactOperands(a, b, scale)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return "", ErrDivisionByZero
	}
	z, err := x.QuoExact(y, scale)
	if err != nil {
		return "", fmt.Errorf("computing quotient: %w", ErrOverflow)
	}
	return compactFixed(z, scale)
}

// Mod implements the [Engine] interface.
// The remainder carries the sign of the dividend.
func (e CompactEngine) Mod(a, b string, scale int) (string, error) {
	x, y, err := compactOperands(a, b, scale)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return "", ErrDivisionByZero
	}
	_, r, err := x.QuoRem(y)
	if err != nil {
		return "", fmt.Errorf("computing remainder: %w", ErrOverflow)
	}
	return compactFixed(r, scale)
}

// Pow implements the [Engine] interface.
func (e CompactEngine) Pow(a, b string, scale int) (string, error) {
	return enginePow(e, a, b, scale)
}

// Cmp implements the [Engine] interface.
func (e CompactEngine) Cmp(a, b string, scale int) (int, error) {
	x, y, err := compactOperands(a, b, 0)
	if err != nil {
		return 0, err
	}
	s := min(scale, decimal.MaxScale)
	return x.Trunc(s).Cmp(y.Trunc(s)), nil
}

func compactOperands(a, b string, scale int) (x, y decimal.Decimal, err error) {
	if scale > decimal.MaxScale {
		return decimal.Decimal{}, decimal.Decimal{},
			fmt.Errorf("scale %v is greater than %v: %w", scale, decimal.MaxScale, ErrOverflow)
	}
	x, err = compactOperand(a)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	y, err = compactOperand(b)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return x, y, nil
}

func compactOperand(s string) (decimal.Decimal, error) {
	if !isCanonical(s) {
		return decimal.Decimal{}, fmt.Errorf("parsing %q: %w", s, ErrInvalidNumber)
	}
	// The string is well formed, so a parsing failure means it does not fit
	// the coefficient.
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %q: %w", s, ErrOverflow)
	}
	return d, nil
}

// compactFixed truncates d toward zero and zero-pads it to exactly scale
// fractional digits. Padding silently stops at the coefficient capacity,
// so the scale is checked afterwards.
func compactFixed(d decimal.Decimal, scale int) (string, error) {
	d = d.Trunc(scale).Pad(scale)
	if d.Scale() != scale {
		return "", fmt.Errorf("rescaling result: %w", ErrOverflow)
	}
	return d.String(), nil
}

package fixdec

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SpringEngine adapts [github.com/shopspring/decimal] to the [Engine]
// contract. It is the default engine of the package.
//
// Values are held as big integer coefficients, so all operations are exact
// up to the requested scale: sums, differences, and products are computed in
// full and then truncated, and quotients are obtained by truncated division
// at the requested scale directly.
//
// [github.com/shopspring/decimal]: https://pkg.go.dev/github.com/shopspring/decimal
type SpringEngine struct{}

// Add implements the [Engine] interface.
func (e SpringEngine) Add(a, b string, scale int) (string, error) {
	x, y, err := springOperands(a, b)
	if err != nil {
		return "", err
	}
	return springFixed(x.Add(y), scale), nil
}

// Sub implements the [Engine] interface.
func (e SpringEngine) Sub(a, b string, scale int) (string, error) {
	x, y, err := springOperands(a, b)
	if err != nil {
		return "", err
	}
	return springFixed(x.Sub(y), scale), nil
}

// Mul implements the [Engine] interface.
func (e SpringEngine) Mul(a, b string, scale int) (string, error) {
	x, y, err := springOperands(a, b)
	if err != nil {
		return "", err
	}
	return springFixed(x.Mul(y), scale), nil
}

// Div implements the [Engine] interface.
// The quotient is truncated toward zero at the requested scale.
func (e SpringEngine) Div(a, b string, scale int) (string, error) {
	x, y, err := springOperands(a, b)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return "", ErrDivisionByZero
	}
	q, _ := x.QuoRem(y, int32(scale))
	return springFixed(q, scale), nil
}

// Mod implements the [Engine] interface.
// The remainder carries the sign of the dividend.
func (e SpringEngine) Mod(a, b string, scale int) (string, error) {
	x, y, err := springOperands(a, b)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return "", ErrDivisionByZero
	}
	_, r := x.QuoRem(y, 0)
	return springFixed(r, scale), nil
}

// Pow implements the [Engine] interface.
func (e SpringEngine) Pow(a, b string, scale int) (string, error) {
	return enginePow(e, a, b, scale)
}

// Cmp implements the [Engine] interface.
func (e SpringEngine) Cmp(a, b string, scale int) (int, error) {
	x, y, err := springOperands(a, b)
	if err != nil {
		return 0, err
	}
	return x.Truncate(int32(scale)).Cmp(y.Truncate(int32(scale))), nil
}

func springOperands(a, b string) (x, y decimal.Decimal, err error) {
	x, err = decimal.NewFromString(a)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("parsing %q: %w", a, ErrInvalidNumber)
	}
	y, err = decimal.NewFromString(b)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("parsing %q: %w", b, ErrInvalidNumber)
	}
	return x, y, nil
}

// springFixed truncates d toward zero and renders it with exactly scale
// fractional digits. StringFixed only zero-pads here, as truncation has
// already cut the fraction to at most scale digits.
func springFixed(d decimal.Decimal, scale int) string {
	return d.Truncate(int32(scale)).StringFixed(int32(scale))
}

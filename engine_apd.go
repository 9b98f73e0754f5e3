package fixdec

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// APDEngine adapts [github.com/cockroachdb/apd/v3] to the [Engine] contract.
//
// Every operation runs in its own context with downward rounding and a
// precision large enough to hold the exact result down to the requested
// scale, so no digit above the truncation point is ever disturbed.
//
// [github.com/cockroachdb/apd/v3]: https://pkg.go.dev/github.com/cockroachdb/apd/v3
type APDEngine struct{}

// Add implements the [Engine] interface.
func (e APDEngine) Add(a, b string, scale int) (string, error) {
	x, y, err := apdOperands(a, b)
	if err != nil {
		return "", err
	}
	ctx := apdContext(a, b, scale)
	res := new(apd.Decimal)
	if _, err := ctx.Add(res, x, y); err != nil {
		return "", fmt.Errorf("computing sum: %w", err)
	}
	return apdFixed(ctx, res, scale)
}

// Sub implements the [Engine] interface.
func (e APDEngine) Sub(a, b string, scale int) (string, error) {
	x, y, err := apdOperands(a, b)
	if err != nil {
		return "", err
	}
	ctx := apdContext(a, b, scale)
	res := new(apd.Decimal)
	if _, err := ctx.Sub(res, x, y); err != nil {
		return "", fmt.Errorf("computing difference: %w", err)
	}
	return apdFixed(ctx, res, scale)
}

// Mul implements the [Engine] interface.
func (e APDEngine) Mul(a, b string, scale int) (string, error) {
	x, y, err := apdOperands(a, b)
	if err != nil {
		return "", err
	}
	ctx := apdContext(a, b, scale)
	res := new(apd.Decimal)
	if _, err := ctx.Mul(res, x, y); err != nil {
		return "", fmt.Errorf("computing product: %w", err)
	}
	return apdFixed(ctx, res, scale)
}

// Div implements the [Engine] interface.
// The quotient is truncated toward zero at the requested scale.
func (e APDEngine) Div(a, b string, scale int) (string, error) {
	x, y, err := apdOperands(a, b)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return "", ErrDivisionByZero
	}
	ctx := apdContext(a, b, scale)
	res := new(apd.Decimal)
	if _, err := ctx.Quo(res, x, y); err != nil {
		return "", fmt.Errorf("computing quotient: %w", err)
	}
	return apdFixed(ctx, res, scale)
}

// Mod implements the [Engine] interface.
// The remainder carries the sign of the dividend.
func (e APDEngine) Mod(a, b string, scale int) (string, error) {
	x, y, err := apdOperands(a, b)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return "", ErrDivisionByZero
	}
	ctx := apdContext(a, b, scale)
	res := new(apd.Decimal)
	if _, err := ctx.Rem(res, x, y); err != nil {
		return "", fmt.Errorf("computing remainder: %w", err)
	}
	return apdFixed(ctx, res, scale)
}

// Pow implements the [Engine] interface.
func (e APDEngine) Pow(a, b string, scale int) (string, error) {
	return enginePow(e, a, b, scale)
}

// Cmp implements the [Engine] interface.
func (e APDEngine) Cmp(a, b string, scale int) (int, error) {
	x, y, err := apdOperands(a, b)
	if err != nil {
		return 0, err
	}
	ctx := apdContext(a, b, scale)
	if _, err := ctx.Quantize(x, x, -int32(scale)); err != nil {
		return 0, fmt.Errorf("rescaling %q: %w", a, err)
	}
	if _, err := ctx.Quantize(y, y, -int32(scale)); err != nil {
		return 0, fmt.Errorf("rescaling %q: %w", b, err)
	}
	return x.Cmp(y), nil
}

func apdOperands(a, b string) (x, y *apd.Decimal, err error) {
	x, _, err = apd.NewFromString(a)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %q: %w", a, ErrInvalidNumber)
	}
	y, _, err = apd.NewFromString(b)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %q: %w", b, ErrInvalidNumber)
	}
	return x, y, nil
}

// apdContext returns a context that truncates toward zero and can hold the
// exact result of a single operation on the given operands: the integer part
// of any sum, difference, product, quotient, or remainder of a and b has
// fewer than len(a)+len(b) digits.
func apdContext(a, b string, scale int) *apd.Context {
	return &apd.Context{
		Precision:   uint32(len(a) + len(b) + scale + 8),
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Rounding:    apd.RoundDown,
		Traps:       apd.DefaultTraps,
	}
}

// apdFixed rescales d to exactly scale fractional digits and renders it in
// plain notation. Downward rounding in the context makes the rescale a
// truncation toward zero.
func apdFixed(ctx *apd.Context, d *apd.Decimal, scale int) (string, error) {
	if _, err := ctx.Quantize(d, d, -int32(scale)); err != nil {
		return "", fmt.Errorf("rescaling result: %w", err)
	}
	if d.IsZero() {
		d.Negative = false
	}
	return d.Text('f'), nil
}

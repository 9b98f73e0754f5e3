package fixdec

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// DefaultScale is the number of fractional digits used by [NewDefault] and
// by deserialization when no scale is given.
const DefaultScale = 18

// MaxScale is the largest scale accepted by constructors and operations.
// It mirrors the exponent bound of the normalizer and keeps every scale
// within the range of every engine.
const MaxScale = maxExp

// Decimal represents an exact decimal number truncated to a fixed number of
// fractional digits. It holds a canonical decimal string together with the
// scale applied by operations that are not given an explicit one.
//
// The zero value corresponds to 0 with a scale of 0 and the default engine.
// Decimal is immutable and safe for concurrent use by multiple goroutines.
type Decimal struct {
	eng   Engine // nil means the package default engine
	value string // canonical decimal string, "" means "0"
	scale int    // fractional digits applied by default-scale operations
}

// newUnsafe creates a new decimal without validating the value.
// Use it only if you are absolutely sure that the arguments are valid.
func newUnsafe(eng Engine, value string, scale int) Decimal {
	return Decimal{eng: eng, value: value, scale: scale}
}

// newSafe normalizes the value and re-expresses it at the given scale.
// Native integers and [*big.Int] skip the engine round trip and keep their
// bare integer form.
func newSafe(eng Engine, value any, scale int) (Decimal, error) {
	if scale < 0 || scale > MaxScale {
		return Decimal{}, ErrInvalidScale
	}
	s, intKind, ok := normalize(value)
	if !ok {
		return Decimal{}, ErrInvalidNumber
	}
	if intKind {
		return newUnsafe(eng, s, scale), nil
	}
	v, err := engineOf(eng).Mul(s, "1", scale)
	if err != nil {
		return Decimal{}, err
	}
	return newUnsafe(eng, v, scale), nil
}

func engineOf(eng Engine) Engine {
	if eng == nil {
		return defaultEngine
	}
	return eng
}

// New returns a decimal with the given value re-expressed at scale fractional
// digits. Truncation or zero-padding to the scale is carried out by the
// default engine, except for native integer and [*big.Int] values, which keep
// their bare integer form.
//
// The value may be a signed or unsigned integer, a float, a [*big.Int],
// a string (plain or scientific notation), or another [Decimal].
// See also [ToString].
//
// New returns an error if:
//   - the scale is negative or greater than [MaxScale] ([ErrInvalidScale]);
//   - the value cannot be normalized to a canonical decimal string
//     ([ErrInvalidNumber]).
func New(value any, scale int) (Decimal, error) {
	return NewWithEngine(nil, value, scale)
}

// MustNew is like [New] but panics if the decimal cannot be constructed.
// It simplifies safe initialization of global variables holding decimals.
func MustNew(value any, scale int) Decimal {
	d, err := New(value, scale)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", value, scale, err))
	}
	return d
}

// NewDefault returns a decimal with the given value at [DefaultScale].
// See also [New].
func NewDefault(value any) (Decimal, error) {
	return New(value, DefaultScale)
}

// NewWithEngine is like [New] but the returned decimal and all decimals
// derived from it carry the given engine. A nil engine means the package
// default, [SpringEngine].
func NewWithEngine(eng Engine, value any, scale int) (Decimal, error) {
	d, err := newSafe(eng, value, scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("converting %v: %w", value, err)
	}
	return d, nil
}

// Parse converts a decimal string to a decimal, inferring the scale from the
// number of fractional digits of the canonical form. Scientific notation is
// expanded to its plain form first:
//
//	Parse("5")       // 5 with scale 0
//	Parse("0.120")   // 0.120 with scale 3
//	Parse("12e-2")   // 0.12 with scale 2
//
// Parse returns an error if the string cannot be normalized
// ([ErrInvalidNumber]) or carries more than [MaxScale] fractional digits
// ([ErrInvalidScale]).
// See also constructor [New].
func Parse(s string) (Decimal, error) {
	c, _, ok := normalize(s)
	if !ok {
		return Decimal{}, fmt.Errorf("parsing %q: %w", s, ErrInvalidNumber)
	}
	d, err := newSafe(nil, c, fracDigits(c))
	if err != nil {
		return Decimal{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return d, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return d
}

// val returns the canonical string of the decimal.
// The zero value of Decimal reads as "0".
func (d Decimal) val() string {
	if d.value == "" {
		return "0"
	}
	return d.value
}

// String implements the [fmt.Stringer] interface and returns the canonical
// digits of the decimal.
// See also method [Decimal.Text].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Decimal) String() string {
	return d.val()
}

// Scale returns the number of fractional digits applied by operations that
// are not given an explicit scale.
// See also method [Decimal.WithScale].
func (d Decimal) Scale() int {
	return d.scale
}

// Engine returns the arithmetic engine the decimal delegates to.
func (d Decimal) Engine() Engine {
	return engineOf(d.eng)
}

// effScale returns the effective scale of an operation: the explicit scale
// if it is non-negative, otherwise the decimal's own scale. An explicit
// scale above [MaxScale] is rejected.
func (d Decimal) effScale(scale int) (int, error) {
	if scale < 0 {
		return d.scale, nil
	}
	if scale > MaxScale {
		return 0, ErrInvalidScale
	}
	return scale, nil
}

// WithScale returns a decimal with the same canonical value and the given
// scale. The scale governs subsequent operations that omit an explicit one;
// the stored digits are not re-truncated.
//
// WithScale returns an error if the scale is negative or greater than
// [MaxScale] ([ErrInvalidScale]).
func (d Decimal) WithScale(scale int) (Decimal, error) {
	if scale < 0 || scale > MaxScale {
		return Decimal{}, fmt.Errorf("rescaling %v: %w", d, ErrInvalidScale)
	}
	return newUnsafe(d.eng, d.value, scale), nil
}

// Copy returns a decimal with the same value, scale, and engine as d.
// Decimals are immutable value types, so the copy is fully independent.
func (d Decimal) Copy() Decimal {
	return newUnsafe(d.eng, d.value, d.scale)
}

// IsInt reports whether the canonical representation of the decimal has no
// fractional part. The form is decisive, not the numeric value: 5 is an
// integer, 5.00 is not.
// See also method [Decimal.Int64].
func (d Decimal) IsInt() bool {
	return !strings.ContainsRune(d.val(), '.')
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d = 0
//	+1 if d > 0
//
// The sign is evaluated at the decimal's own scale, so fractional digits
// beyond it have no effect.
func (d Decimal) Sign() int {
	return signAt(d.val(), d.scale)
}

// IsZero returns:
//
//	true  if d = 0
//	false otherwise
//
// Like [Decimal.Sign], it disregards fractional digits beyond the scale of d.
func (d Decimal) IsZero() bool {
	return d.Sign() == 0
}

// IsPos returns:
//
//	true  if d > 0
//	false otherwise
func (d Decimal) IsPos() bool {
	return d.Sign() > 0
}

// IsNeg returns:
//
//	true  if d < 0
//	false otherwise
func (d Decimal) IsNeg() bool {
	return d.Sign() < 0
}

// Neg returns a decimal with the opposite sign and the same scale.
func (d Decimal) Neg() Decimal {
	s := d.val()
	switch {
	case strings.HasPrefix(s, "-"):
		s = s[1:]
	case signAt(s, len(s)) != 0:
		s = "-" + s
	}
	return newUnsafe(d.eng, s, d.scale)
}

// Abs returns the absolute value of the decimal.
func (d Decimal) Abs() Decimal {
	return newUnsafe(d.eng, strings.TrimPrefix(d.val(), "-"), d.scale)
}

// Int64 returns the decimal as an int64.
//
// Int64 returns an error if:
//   - the canonical representation has a fractional part
//     ([ErrNotIntegral]);
//   - the value does not fit an int64 ([ErrOverflow]). The canonical string
//     remains exact either way.
//
// See also method [Decimal.BigInt].
func (d Decimal) Int64() (int64, error) {
	if !d.IsInt() {
		return 0, fmt.Errorf("converting %v to int64: %w", d, ErrNotIntegral)
	}
	i, err := strconv.ParseInt(d.val(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("converting %v to int64: %w", d, ErrOverflow)
	}
	return i, nil
}

// BigInt returns the decimal as a [*big.Int].
//
// BigInt returns an error if the canonical representation has a fractional
// part ([ErrNotIntegral]).
func (d Decimal) BigInt() (*big.Int, error) {
	if !d.IsInt() {
		return nil, fmt.Errorf("converting %v to big.Int: %w", d, ErrNotIntegral)
	}
	b, ok := new(big.Int).SetString(d.val(), 10)
	if !ok {
		return nil, fmt.Errorf("converting %v to big.Int: %w", d, ErrInvalidNumber)
	}
	return b, nil
}

// Float64 returns the nearest binary floating-point number.
//
// This conversion may lose data, as float64 has a smaller precision
// than the decimal type.
func (d Decimal) Float64() (f float64, ok bool) {
	f, err := strconv.ParseFloat(d.val(), 64)
	return f, err == nil
}

// binop normalizes the operand and applies an engine operation at the
// effective scale. The result inherits the engine of d.
func (d Decimal) binop(v any, scale int, op func(a, b string, scale int) (string, error)) (Decimal, error) {
	b, _, ok := normalize(v)
	if !ok {
		return Decimal{}, ErrInvalidNumber
	}
	scale, err := d.effScale(scale)
	if err != nil {
		return Decimal{}, err
	}
	s, err := op(d.val(), b, scale)
	if err != nil {
		return Decimal{}, err
	}
	return newUnsafe(d.eng, s, scale), nil
}

// Add returns the sum of d and v truncated to the scale of d.
// The operand may be of any kind accepted by [New].
//
// Add returns an error if the operand cannot be normalized or the engine
// rejects the operation.
func (d Decimal) Add(v any) (Decimal, error) {
	return d.AddExact(v, d.scale)
}

// AddExact is like [Add] but truncates the sum to the given scale.
// A negative scale means the scale of d.
func (d Decimal) AddExact(v any, scale int) (Decimal, error) {
	e, err := d.binop(v, scale, d.Engine().Add)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v + %v]: %w", d, v, err)
	}
	return e, nil
}

// Sub returns the difference of d and v truncated to the scale of d.
// The operand may be of any kind accepted by [New].
func (d Decimal) Sub(v any) (Decimal, error) {
	return d.SubExact(v, d.scale)
}

// SubExact is like [Sub] but truncates the difference to the given scale.
// A negative scale means the scale of d.
func (d Decimal) SubExact(v any, scale int) (Decimal, error) {
	e, err := d.binop(v, scale, d.Engine().Sub)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v - %v]: %w", d, v, err)
	}
	return e, nil
}

// Mul returns the product of d and v truncated to the scale of d.
// The operand may be of any kind accepted by [New].
func (d Decimal) Mul(v any) (Decimal, error) {
	return d.MulExact(v, d.scale)
}

// MulExact is like [Mul] but truncates the product to the given scale.
// A negative scale means the scale of d.
func (d Decimal) MulExact(v any, scale int) (Decimal, error) {
	e, err := d.binop(v, scale, d.Engine().Mul)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v * %v]: %w", d, v, err)
	}
	return e, nil
}

// Div returns the quotient of d and v truncated to the scale of d.
// The operand may be of any kind accepted by [New].
//
// Div returns an error if the divisor is zero ([ErrDivisionByZero]).
func (d Decimal) Div(v any) (Decimal, error) {
	return d.DivExact(v, d.scale)
}

// DivExact is like [Div] but truncates the quotient to the given scale.
// A negative scale means the scale of d.
func (d Decimal) DivExact(v any, scale int) (Decimal, error) {
	e, err := d.binop(v, scale, d.Engine().Div)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v / %v]: %w", d, v, err)
	}
	return e, nil
}

// Mod returns the remainder of d and v truncated to the scale of d,
// following the truncated-division convention: the result of
// d - trunc(d/v)*v carries the sign of the dividend d.
// The operand may be of any kind accepted by [New].
//
// Mod returns an error if the divisor is zero ([ErrDivisionByZero]).
// See also method [Decimal.Rem].
func (d Decimal) Mod(v any) (Decimal, error) {
	return d.ModExact(v, d.scale)
}

// ModExact is like [Mod] but truncates the remainder to the given scale.
// A negative scale means the scale of d.
func (d Decimal) ModExact(v any, scale int) (Decimal, error) {
	e, err := d.binop(v, scale, d.Engine().Mod)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v mod %v]: %w", d, v, err)
	}
	return e, nil
}

// Rem is an alias for [Decimal.Mod].
func (d Decimal) Rem(v any) (Decimal, error) {
	return d.Mod(v)
}

// RemExact is an alias for [Decimal.ModExact].
func (d Decimal) RemExact(v any, scale int) (Decimal, error) {
	return d.ModExact(v, scale)
}

// Pow returns d raised to the given integer power, truncated to the scale
// of d. The exponentiation itself is exact; only the final result is
// truncated. A negative exponent inverts the exact power.
//
// Pow returns an error if d is zero and the exponent is negative
// ([ErrDivisionByZero]).
func (d Decimal) Pow(exp int) (Decimal, error) {
	return d.PowExact(exp, d.scale)
}

// PowExact is like [Pow] but truncates the result to the given scale.
// A negative scale means the scale of d.
func (d Decimal) PowExact(exp, scale int) (Decimal, error) {
	scale, err := d.effScale(scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v^%v]: %w", d, exp, err)
	}
	s, err := d.Engine().Pow(d.val(), strconv.Itoa(exp), scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v^%v]: %w", d, exp, err)
	}
	return newUnsafe(d.eng, s, scale), nil
}

// byExp computes base^exp as an exact integer and applies an engine
// operation with it at the effective scale.
func (d Decimal) byExp(base, exp, scale int, op func(a, b string, scale int) (string, error)) (Decimal, error) {
	if base < 1 || exp < 1 {
		return Decimal{}, ErrInvalidArgument
	}
	scale, err := d.effScale(scale)
	if err != nil {
		return Decimal{}, err
	}
	f, err := d.Engine().Pow(strconv.Itoa(base), strconv.Itoa(exp), 0)
	if err != nil {
		return Decimal{}, err
	}
	s, err := op(d.val(), f, scale)
	if err != nil {
		return Decimal{}, err
	}
	return newUnsafe(d.eng, s, scale), nil
}

// MulByExp returns d multiplied by base^exp, truncated to the scale of d.
// The factor is computed as an exact integer, which makes the method suitable
// for scaling by powers of a radix, such as unit conversions, without
// floating-point drift.
//
// MulByExp returns an error if base or exp is less than 1
// ([ErrInvalidArgument]).
// See also method [Decimal.DivByExp].
func (d Decimal) MulByExp(base, exp int) (Decimal, error) {
	return d.MulByExpExact(base, exp, d.scale)
}

// MulByExpExact is like [MulByExp] but truncates the result to the given
// scale. A negative scale means the scale of d.
func (d Decimal) MulByExpExact(base, exp, scale int) (Decimal, error) {
	e, err := d.byExp(base, exp, scale, d.Engine().Mul)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v * %v^%v]: %w", d, base, exp, err)
	}
	return e, nil
}

// DivByExp returns d divided by base^exp, truncated to the scale of d.
// The divisor is computed as an exact integer.
//
// DivByExp returns an error if base or exp is less than 1
// ([ErrInvalidArgument]).
// See also method [Decimal.MulByExp].
func (d Decimal) DivByExp(base, exp int) (Decimal, error) {
	return d.DivByExpExact(base, exp, d.scale)
}

// DivByExpExact is like [DivByExp] but truncates the result to the given
// scale. A negative scale means the scale of d.
func (d Decimal) DivByExpExact(base, exp, scale int) (Decimal, error) {
	e, err := d.byExp(base, exp, scale, d.Engine().Div)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v / %v^%v]: %w", d, base, exp, err)
	}
	return e, nil
}

// Cmp compares d and v at the scale of d and returns:
//
//	-1 if d < v
//	 0 if d = v
//	+1 if d > v
//
// The operand may be of any kind accepted by [New]; both operands are
// truncated to the scale before the comparison.
//
// Cmp returns an error if the operand cannot be normalized
// ([ErrInvalidNumber]).
func (d Decimal) Cmp(v any) (int, error) {
	return d.CmpExact(v, d.scale)
}

// CmpExact is like [Cmp] but compares at the given scale.
// A negative scale means the scale of d.
func (d Decimal) CmpExact(v any, scale int) (int, error) {
	b, _, ok := normalize(v)
	if !ok {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", d, v, ErrInvalidNumber)
	}
	scale, err := d.effScale(scale)
	if err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", d, v, err)
	}
	c, err := d.Engine().Cmp(d.val(), b, scale)
	if err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", d, v, err)
	}
	return c, nil
}

// Equal reports whether d and v are equal at the scale of d.
// See also method [Decimal.Cmp].
func (d Decimal) Equal(v any) (bool, error) {
	return d.EqualExact(v, d.scale)
}

// EqualExact is like [Equal] but compares at the given scale.
// A negative scale means the scale of d.
func (d Decimal) EqualExact(v any, scale int) (bool, error) {
	c, err := d.CmpExact(v, scale)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// GreaterThan reports whether d is greater than v at the scale of d.
// See also method [Decimal.Cmp].
func (d Decimal) GreaterThan(v any) (bool, error) {
	return d.GreaterThanExact(v, d.scale)
}

// GreaterThanExact is like [GreaterThan] but compares at the given scale.
// A negative scale means the scale of d.
func (d Decimal) GreaterThanExact(v any, scale int) (bool, error) {
	c, err := d.CmpExact(v, scale)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// GreaterThanOrEqual reports whether d is greater than or equal to v at the
// scale of d.
// See also method [Decimal.Cmp].
func (d Decimal) GreaterThanOrEqual(v any) (bool, error) {
	return d.GreaterThanOrEqualExact(v, d.scale)
}

// GreaterThanOrEqualExact is like [GreaterThanOrEqual] but compares at the
// given scale. A negative scale means the scale of d.
func (d Decimal) GreaterThanOrEqualExact(v any, scale int) (bool, error) {
	c, err := d.CmpExact(v, scale)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// LessThan reports whether d is less than v at the scale of d.
// See also method [Decimal.Cmp].
func (d Decimal) LessThan(v any) (bool, error) {
	return d.LessThanExact(v, d.scale)
}

// LessThanExact is like [LessThan] but compares at the given scale.
// A negative scale means the scale of d.
func (d Decimal) LessThanExact(v any, scale int) (bool, error) {
	c, err := d.CmpExact(v, scale)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// LessThanOrEqual reports whether d is less than or equal to v at the scale
// of d.
// See also method [Decimal.Cmp].
func (d Decimal) LessThanOrEqual(v any) (bool, error) {
	return d.LessThanOrEqualExact(v, d.scale)
}

// LessThanOrEqualExact is like [LessThanOrEqual] but compares at the given
// scale. A negative scale means the scale of d.
func (d Decimal) LessThanOrEqualExact(v any, scale int) (bool, error) {
	c, err := d.CmpExact(v, scale)
	if err != nil {
		return false, err
	}
	return c <= 0, nil
}

// InRange reports whether min <= d <= max at the scale of d.
// The bounds may be of any kind accepted by [New].
// See also method [Decimal.Cmp].
func (d Decimal) InRange(min, max any) (bool, error) {
	return d.InRangeExact(min, max, d.scale)
}

// InRangeExact is like [InRange] but compares at the given scale.
// A negative scale means the scale of d.
func (d Decimal) InRangeExact(min, max any, scale int) (bool, error) {
	lo, err := d.CmpExact(min, scale)
	if err != nil {
		return false, err
	}
	hi, err := d.CmpExact(max, scale)
	if err != nil {
		return false, err
	}
	return lo >= 0 && hi <= 0, nil
}

// signAt returns the sign of the canonical string s with its fractional part
// truncated to the given scale.
func signAt(s string, scale int) int {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg, s = true, s[1:]
	}
	ip, fp := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		ip, fp = s[:i], s[i+1:]
	}
	if len(fp) > scale {
		fp = fp[:scale]
	}
	if strings.Trim(ip, "0") == "" && strings.Trim(fp, "0") == "" {
		return 0
	}
	if neg {
		return -1
	}
	return 1
}

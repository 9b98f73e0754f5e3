package fixdec

import "errors"

// Errors returned by this package.
// Use [errors.Is] to test for them, as they are usually wrapped
// with the operation context.
var (
	// ErrInvalidNumber is returned when an input cannot be normalized
	// to a canonical decimal string.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidScale is returned when a scale is negative or greater
	// than [MaxScale].
	ErrInvalidScale = errors.New("invalid scale")

	// ErrInvalidArgument is returned when the base or the exponent given
	// to [Decimal.MulByExp] or [Decimal.DivByExp] is less than 1.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotIntegral is returned when an integer is requested
	// from a value that has a fractional part.
	ErrNotIntegral = errors.New("not an integer")

	// ErrOverflow is returned when a value does not fit the requested
	// integer type or exceeds the capacity of a range-limited engine.
	ErrOverflow = errors.New("overflow")

	// ErrDivisionByZero is returned when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

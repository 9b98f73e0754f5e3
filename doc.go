/*
Package fixdec implements fixed-scale decimal numbers for financial
computation. Every operation truncates its result toward zero at a
caller-controlled number of fractional digits; nothing is ever rounded.

# Features

  - Immutable decimal values, ensuring safe usage across multiple goroutines
  - Exact canonical strings, free of binary floating-point drift
  - Truncation toward zero at a fixed scale, never rounding
  - Pluggable arithmetic engines sharing a single canonical format

# Representation

A Decimal holds its value as a canonical decimal string together with a
scale, the number of fractional digits its results carry. Construction
re-expresses the input at the requested scale; native integers keep their
bare form until the first arithmetic operation. The zero value of the type
is ready to use and represents zero at scale 0.

# Operations

The package provides arithmetic operations (Add, Sub, Mul, Div, Mod, Pow),
power-of-base shifts (MulByExp, DivByExp), comparisons (Cmp, Equal,
LessThan), and conversions to int64, big.Int, and float64.
Each operation comes in two forms: one that keeps the scale of its receiver
and an Exact form that takes an explicit scale for that single result.

# Engines

All digit crunching is delegated to an Engine. Three interchangeable
implementations are provided: SpringEngine, the default, backed by
shopspring/decimal; APDEngine, backed by cockroachdb/apd; and CompactEngine,
backed by govalues/decimal and limited to 19 digits of precision.
Engines must agree on the contract only: exact arithmetic, truncated toward
zero at the requested scale.

# Errors

Errors may occur during the parsing of decimal values, as well as during
arithmetic operations when certain conditions are not met (e.g., division
by zero, malformed operands). All returned errors wrap one of the
package-level sentinels, so callers can test them with errors.Is.
Must-style constructors panic instead of returning errors.
*/
package fixdec

package fixdec

import (
	"math/big"
	"strconv"
	"strings"
)

// maxExp limits the exponent magnitude accepted in scientific notation.
// Anything beyond it would expand to an absurdly long plain form.
const maxExp = 2048

// ToString converts a value of any supported kind to its canonical decimal
// string and reports whether the conversion succeeded.
// It accepts the same kinds as [New]: signed and unsigned integers, floats,
// [*big.Int], strings (including scientific notation), and [Decimal].
//
// Unlike [New], ToString never returns an error: a value that cannot be
// represented as a decimal number, such as a malformed string, NaN,
// or an infinity, yields ok = false.
func ToString(value any) (s string, ok bool) {
	s, _, ok = normalize(value)
	return s, ok
}

// normalize converts an input to its canonical decimal string.
// intKind is true for native integer kinds and [*big.Int], which skip
// fractional padding at construction.
func normalize(value any) (s string, intKind, ok bool) {
	switch v := value.(type) {
	case Decimal:
		return v.val(), false, true
	case int:
		return strconv.FormatInt(int64(v), 10), true, true
	case int8:
		return strconv.FormatInt(int64(v), 10), true, true
	case int16:
		return strconv.FormatInt(int64(v), 10), true, true
	case int32:
		return strconv.FormatInt(int64(v), 10), true, true
	case int64:
		return strconv.FormatInt(v, 10), true, true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true, true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true, true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true, true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true, true
	case uint64:
		return strconv.FormatUint(v, 10), true, true
	case *big.Int:
		if v == nil {
			return "", false, false
		}
		return v.String(), true, true
	case float32:
		// Shortest representation that round-trips at 32 bits.
		// The 'f' format never introduces an exponent marker.
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		s = expandSci(v)
	default:
		return "", false, false
	}
	if !isCanonical(s) {
		return "", false, false
	}
	return s, false, true
}

// expandSci rewrites a scientific-notation numeric string to its plain
// decimal form. A negative exponent expands to a fraction with trailing
// zeros stripped; a non-negative exponent expands to a plain integer,
// truncating any fractional digits left beyond the exponent toward zero.
// Strings without an exponent marker, and strings too malformed to expand,
// are returned unchanged and left to [isCanonical] to reject.
func expandSci(s string) string {
	i := strings.IndexAny(s, "eE")
	if i < 0 {
		return s
	}
	mant := s[:i]
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil || exp > maxExp || exp < -maxExp {
		return s
	}
	var sign string
	if strings.HasPrefix(mant, "-") {
		sign, mant = "-", mant[1:]
	}
	intd, fracd := mant, ""
	if dot := strings.IndexByte(mant, '.'); dot >= 0 {
		intd, fracd = mant[:dot], mant[dot+1:]
	}
	if intd+fracd == "" || !allDigits(intd) || !allDigits(fracd) {
		return s
	}
	if exp >= 0 {
		var digits string
		if exp >= len(fracd) {
			digits = intd + fracd + strings.Repeat("0", exp-len(fracd))
		} else {
			digits = intd + fracd[:exp]
		}
		return sign + stripLeadingZeros(digits)
	}
	digits := intd + fracd
	var ip, fp string
	if n := len(intd) + exp; n <= 0 {
		ip, fp = "0", strings.Repeat("0", -n)+digits
	} else {
		ip, fp = digits[:n], digits[n:]
	}
	ip = stripLeadingZeros(ip)
	fp = strings.TrimRight(fp, "0")
	if fp == "" {
		return sign + ip
	}
	return sign + ip + "." + fp
}

// isCanonical reports whether s is a canonical decimal string:
// an optional minus sign, then a single zero or a non-zero-leading integer
// part, optionally followed by a point and one or more fractional digits.
func isCanonical(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i >= len(s):
		return false
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' || i == len(s)-1 {
		return false
	}
	return allDigits(s[i+1:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stripLeadingZeros removes superfluous leading zeros, always leaving
// at least one digit.
func stripLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

// fracDigits returns the number of digits after the decimal point
// in a canonical decimal string.
func fracDigits(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

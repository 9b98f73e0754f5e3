package fixdec

import (
	"fmt"
	"strings"
)

// Text returns a string representation of the decimal with its fractional
// part adjusted to fracDigits digits.
//
// If fracDigits is negative or the canonical representation is integral,
// Text returns the canonical digits unchanged, like [Decimal.String].
//
// If trim is true, the fractional part is re-expressed at exactly fracDigits
// digits: digits beyond it are truncated, never rounded, and missing digits
// are zero-padded. If truncation leaves no nonzero digits, the minus sign
// is dropped.
//
// If trim is false, trailing fractional zeros are stripped first and the
// remaining fraction is zero-padded up to fracDigits digits. A fraction
// already longer than fracDigits is returned untruncated; this mode pads
// but never discards meaningful digits.
//
//	d := fixdec.MustParse("0.102300456000000000")
//	d.Text(7, true)  // 0.1023004
//	d.Text(7, false) // 0.102300456
//
// See also method [Decimal.Format].
func (d Decimal) Text(fracDigits int, trim bool) string {
	s := d.val()
	dot := strings.IndexByte(s, '.')
	if fracDigits < 0 || dot < 0 {
		return s
	}
	ipart, fpart := s[:dot], s[dot+1:]
	if trim {
		if len(fpart) > fracDigits {
			fpart = fpart[:fracDigits]
		}
	} else {
		fpart = strings.TrimRight(fpart, "0")
	}
	if len(fpart) < fracDigits {
		fpart += strings.Repeat("0", fracDigits-len(fpart))
	}
	v := ipart
	if fpart != "" {
		v = ipart + "." + fpart
	}
	if strings.HasPrefix(v, "-") && signAt(v, len(v)) == 0 {
		v = v[1:]
	}
	return v
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description      |
//	| ------ | ------- | ---------------- |
//	| %s, %v | 5.67    | Canonical digits |
//	| %q     | "5.67"  | Quoted digits    |
//	| %f     | 5.67    | Fixed-point      |
//
// The '-', '+', ' ', '0' format flags can be used with all verbs.
//
// Precision is only supported for the %f verb and re-expresses the
// fractional part at exactly that many digits, truncating, never rounding,
// or zero-padding as needed. The default precision is the number of
// fractional digits of the canonical representation.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
//
//gocyclo:ignore
func (d Decimal) Format(state fmt.State, verb rune) {
	s := d.val()

	// Splitting the canonical representation
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	ipart, fpart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		ipart, fpart = s[:i], s[i+1:]
	}

	// Rescaling
	tzeros := 0
	if verb == 'f' || verb == 'F' {
		if p, ok := state.Precision(); ok {
			if p < len(fpart) {
				fpart = fpart[:p]
				neg = neg && (strings.Trim(ipart, "0") != "" || strings.Trim(fpart, "0") != "")
			} else {
				tzeros = p - len(fpart)
			}
		}
	}

	// Integer and fractional digits
	intdigs, fracdigs := len(ipart), len(fpart)

	// Decimal point
	dpoint := 0
	if fracdigs > 0 || tzeros > 0 {
		dpoint = 1
	}

	// Arithmetic sign
	rsign := 0
	if neg || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + rsign + intdigs + dpoint + fracdigs + tzeros + tquote
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for i := 0; i < tspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	if tquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Trailing zeros
	for i := 0; i < tzeros; i++ {
		buf[pos] = '0'
		pos--
	}

	// Fractional digits
	for i := fracdigs; i > 0; i-- {
		buf[pos] = fpart[i-1]
		pos--
	}

	// Decimal point
	if dpoint > 0 {
		buf[pos] = '.'
		pos--
	}

	// Integer digits
	for i := intdigs; i > 0; i-- {
		buf[pos] = ipart[i-1]
		pos--
	}

	// Leading zeros
	for i := 0; i < lzeros; i++ {
		buf[pos] = '0'
		pos--
	}

	// Arithmetic sign
	if rsign > 0 {
		switch {
		case neg:
			buf[pos] = '-'
		case state.Flag(' '):
			buf[pos] = ' '
		default:
			buf[pos] = '+'
		}
		pos--
	}

	// Opening quote
	if lquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for i := 0; i < lspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(fixdec.Decimal="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

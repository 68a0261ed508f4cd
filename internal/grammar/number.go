package grammar

import "strings"

// Number is a decimal literal exactly as it appeared in the input. Keeping the
// digits as text lets the normalizer do exact arithmetic.
type Number struct {
	Sign  byte // '+', '-' or 0 when no sign was written
	Int   string
	Frac  string
	Point bool
}

// Explicit reports whether the number carried a written sign.
func (n Number) Explicit() bool {
	return n.Sign != 0
}

// Negative reports whether the number was written with a minus sign.
func (n Number) Negative() bool {
	return n.Sign == '-'
}

// Fractional reports whether the number has non-zero digits after the point.
func (n Number) Fractional() bool {
	return strings.Trim(n.Frac, "0") != ""
}

// Decimal renders the number in a form accepted by apd and strconv, always
// with an integer part.
func (n Number) Decimal() string {
	var sb strings.Builder
	if n.Sign == '-' {
		sb.WriteByte('-')
	}
	if n.Int == "" {
		sb.WriteByte('0')
	} else {
		sb.WriteString(n.Int)
	}
	if n.Frac != "" {
		sb.WriteByte('.')
		sb.WriteString(n.Frac)
	}
	return sb.String()
}

// WithSign returns a copy of n carrying sign s.
func (n Number) WithSign(s byte) Number {
	n.Sign = s
	return n
}

// Integer builds a Number from a digit run.
func Integer(sign byte, digits string) Number {
	return Number{Sign: sign, Int: digits}
}

// ParseNumber reads the whole of src as an optionally signed decimal.
func ParseNumber(src string) (Number, bool) {
	sc := newScanner(src)
	n, ok := sc.signedNumber()
	if !ok || !sc.eof() {
		return Number{}, false
	}
	return n, true
}

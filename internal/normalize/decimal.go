package normalize

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// decimalContext is wide enough that no sum of int64-sized fields written
// with any sensible fraction loses digits. Rounding only happens where the
// code asks for it, at the microsecond.
var decimalContext = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(100)
	c.Rounding = apd.RoundHalfEven
	return c
}()

// SplitMilliseconds rounds a millisecond quantity to the microsecond and
// splits it into whole milliseconds and a remainder of the same sign.
func SplitMilliseconds(ms *apd.Decimal) (whole, micros int64, err error) {
	var rounded, integ, frac apd.Decimal
	if _, err := decimalContext.Quantize(&rounded, ms, -3); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	rounded.Modf(&integ, &frac)
	whole, err = integ.Int64()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	if _, err := decimalContext.Mul(&frac, &frac, apd.New(1000, 0)); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	var reduced apd.Decimal
	reduced.Reduce(&frac)
	micros, err = reduced.Int64()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	return whole, micros, nil
}

// FractionMicros converts the digits after a seconds decimal point into
// microseconds, rounding half to even. A result of 1000000 means the
// fraction rounded up into the next whole second.
func FractionMicros(frac string) (int64, error) {
	if frac == "" {
		return 0, nil
	}
	d, _, err := apd.NewFromString("0." + frac)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	if _, err := decimalContext.Mul(d, d, apd.New(1000000, 0)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	var rounded apd.Decimal
	if _, err := decimalContext.RoundToIntegralValue(&rounded, d); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	return rounded.Int64()
}

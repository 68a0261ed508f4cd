package normalize

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/pgtemporal/pgtemporal/internal/grammar"
)

// Interval is the canonical interval field set. Microseconds holds the
// sub-millisecond remainder and shares the sign of Milliseconds.
type Interval struct {
	Years        int64
	Months       int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
}

// slot indexes the cascade chain.
type slot int

const (
	slotYears slot = iota
	slotMonths
	slotDays
	slotHours
	slotMinutes
	slotSeconds
	slotMilliseconds
	slotCount
)

// cascadeRatios[i] converts one unit of slot i into slot i+1.
var cascadeRatios = [slotCount - 1]int64{12, 30, 24, 60, 60, 1000}

// unitSlots maps a written unit to its slot and scale.
var unitSlots = map[grammar.Unit]struct {
	slot  slot
	scale *apd.Decimal
}{
	grammar.UnitMillennium:  {slotYears, apd.New(1000, 0)},
	grammar.UnitCentury:     {slotYears, apd.New(100, 0)},
	grammar.UnitDecade:      {slotYears, apd.New(10, 0)},
	grammar.UnitYear:        {slotYears, apd.New(1, 0)},
	grammar.UnitMonth:       {slotMonths, apd.New(1, 0)},
	grammar.UnitWeek:        {slotDays, apd.New(7, 0)},
	grammar.UnitDay:         {slotDays, apd.New(1, 0)},
	grammar.UnitHour:        {slotHours, apd.New(1, 0)},
	grammar.UnitMinute:      {slotMinutes, apd.New(1, 0)},
	grammar.UnitSecond:      {slotSeconds, apd.New(1, 0)},
	grammar.UnitMillisecond: {slotMilliseconds, apd.New(1, 0)},
	grammar.UnitMicrosecond: {slotMilliseconds, apd.New(1, -3)},
}

type accumulator struct {
	sums [slotCount]apd.Decimal
	seen map[grammar.Unit]bool

	ago   bool
	carry byte
}

// sign resolves the effective sign of one written field. An explicit sign
// always wins. Otherwise a carried SQL standard sign applies, and "ago" flips
// the result.
func (a *accumulator) sign(written byte) bool {
	if written != 0 {
		return written == '-'
	}
	negative := a.carry == '-'
	if a.ago {
		negative = !negative
	}
	return negative
}

// carriedSign returns the leading sign of a SQL standard interval when it
// applies to the remaining fields. It does only when no later field carries
// a sign of its own; the month of a leading year-month pair shares the year's
// sign and does not count.
func carriedSign(c grammar.IntervalCaptures) byte {
	if !c.CarrySign || len(c.Quantities) == 0 {
		return 0
	}
	lead := c.Quantities[0].Value.Sign
	if lead == 0 {
		return 0
	}
	rest := c.Quantities[1:]
	if c.Quantities[0].Unit == grammar.UnitYear && len(rest) > 0 && rest[0].Unit == grammar.UnitMonth {
		rest = rest[1:]
	}
	for _, q := range rest {
		if q.Value.Sign != 0 {
			return 0
		}
	}
	if c.Time.Present && c.Time.Sign != 0 {
		return 0
	}
	return lead
}

func (a *accumulator) mark(u grammar.Unit) error {
	if a.seen[u] {
		return fmt.Errorf("%w: %s", ErrDuplicateField, u)
	}
	a.seen[u] = true
	return nil
}

func (a *accumulator) add(s slot, n grammar.Number, scale *apd.Decimal, negative bool) error {
	d, _, err := apd.NewFromString(n.WithSign(0).Decimal())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	if negative {
		d.Neg(d)
	}
	if _, err := decimalContext.Mul(d, d, scale); err != nil {
		return fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	if _, err := decimalContext.Add(&a.sums[s], &a.sums[s], d); err != nil {
		return fmt.Errorf("%w: %v", ErrFieldOverflow, err)
	}
	return nil
}

// NormalizeInterval folds interval captures into the canonical field set:
// aliases are resolved, duplicates rejected, signs applied and fractions
// cascaded down to the millisecond, which is rounded to the microsecond.
func NormalizeInterval(c grammar.IntervalCaptures) (Interval, error) {
	a := accumulator{
		seen:  make(map[grammar.Unit]bool),
		ago:   c.Ago,
		carry: carriedSign(c),
	}

	for _, q := range c.Quantities {
		if err := a.mark(q.Unit); err != nil {
			return Interval{}, err
		}
		target, ok := unitSlots[q.Unit]
		if !ok {
			return Interval{}, fmt.Errorf("unsupported unit %s", q.Unit)
		}
		negative := a.sign(q.Value.Sign)
		if err := a.add(target.slot, q.Value, target.scale, negative); err != nil {
			return Interval{}, err
		}
	}

	if c.Time.Present {
		if err := a.addTimeGroup(c.Time); err != nil {
			return Interval{}, err
		}
	}

	return a.cascade()
}

func (a *accumulator) addTimeGroup(tg grammar.TimeGroup) error {
	negative := a.sign(tg.Sign)
	one := apd.New(1, 0)

	if tg.Hours != "" {
		if err := a.mark(grammar.UnitHour); err != nil {
			return err
		}
		if err := a.add(slotHours, grammar.Integer(0, tg.Hours), one, negative); err != nil {
			return err
		}
		if err := checkClockPart(tg.Minutes, 59); err != nil {
			return err
		}
	}

	if err := a.mark(grammar.UnitMinute); err != nil {
		return err
	}
	if err := a.add(slotMinutes, grammar.Integer(0, tg.Minutes), one, negative); err != nil {
		return err
	}

	if tg.HasSeconds() {
		if err := a.mark(grammar.UnitSecond); err != nil {
			return err
		}
		if err := checkClockPart(tg.Seconds.Int, 59); err != nil {
			return err
		}
		if err := a.add(slotSeconds, tg.Seconds, one, negative); err != nil {
			return err
		}
	}
	return nil
}

func checkClockPart(digits string, max int64) error {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || v > max {
		return fmt.Errorf("%w: %q", ErrFieldOverflow, digits)
	}
	return nil
}

func (a *accumulator) cascade() (Interval, error) {
	var whole [slotCount]int64
	var integ, frac apd.Decimal

	for s := slotYears; s < slotMilliseconds; s++ {
		a.sums[s].Modf(&integ, &frac)
		v, err := integ.Int64()
		if err != nil {
			return Interval{}, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
		}
		whole[s] = v
		if frac.IsZero() {
			continue
		}
		if _, err := decimalContext.Mul(&frac, &frac, apd.New(cascadeRatios[s], 0)); err != nil {
			return Interval{}, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
		}
		if _, err := decimalContext.Add(&a.sums[s+1], &a.sums[s+1], &frac); err != nil {
			return Interval{}, fmt.Errorf("%w: %v", ErrFieldOverflow, err)
		}
	}

	ms, us, err := SplitMilliseconds(&a.sums[slotMilliseconds])
	if err != nil {
		return Interval{}, err
	}

	return Interval{
		Years:        whole[slotYears],
		Months:       whole[slotMonths],
		Days:         whole[slotDays],
		Hours:        whole[slotHours],
		Minutes:      whole[slotMinutes],
		Seconds:      whole[slotSeconds],
		Milliseconds: ms,
		Microseconds: us,
	}, nil
}

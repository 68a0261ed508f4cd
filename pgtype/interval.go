package pgtype

import (
	"database/sql/driver"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/jackc/pgio"

	"github.com/pgtemporal/pgtemporal/internal/grammar"
	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

const (
	microsecondsPerMillisecond = 1000
	microsecondsPerSecond      = 1000000
	microsecondsPerMinute      = 60 * microsecondsPerSecond
	microsecondsPerHour        = 60 * microsecondsPerMinute
	microsecondsPerDay         = 24 * microsecondsPerHour
)

const intervalTypeName = "interval"

// Interval is a PostgreSQL interval kept in the fields it was written with.
// Fields are not folded into one another; "90 minutes" stays 90 minutes.
type Interval struct {
	years        int64
	months       int64
	days         int64
	hours        int64
	minutes      int64
	seconds      int64
	milliseconds int64
	// microseconds is the sub-millisecond remainder, same sign as milliseconds.
	microseconds int64
}

var intervalFields = []fieldSpec{
	{name: "years"},
	{name: "months"},
	{name: "days"},
	{name: "hours"},
	{name: "minutes"},
	{name: "seconds", fractional: true},
	{name: "milliseconds", fractional: true},
}

var intervalFieldUnits = map[string]grammar.Unit{
	"years":        grammar.UnitYear,
	"months":       grammar.UnitMonth,
	"days":         grammar.UnitDay,
	"hours":        grammar.UnitHour,
	"minutes":      grammar.UnitMinute,
	"seconds":      grammar.UnitSecond,
	"milliseconds": grammar.UnitMillisecond,
}

func (Interval) isInput() {}

// IntervalFrom builds an Interval from any accepted input shape.
func IntervalFrom(in Input) (Interval, error) {
	switch v := in.(type) {
	case Interval:
		return v, nil
	case Text:
		return ParseInterval(string(v))
	case Fields:
		return intervalFromFields(v)
	case Positional:
		f, e := positionalFields(intervalTypeName, v, intervalFields)
		if e != nil {
			return Interval{}, e
		}
		return intervalFromFields(f)
	}
	return Interval{}, invalidTypeError(intervalTypeName, in)
}

// MustInterval is like IntervalFrom but panics with the *Error.
func MustInterval(in Input) Interval {
	iv, err := IntervalFrom(in)
	if err != nil {
		panic(err)
	}
	return iv
}

// ParseInterval parses any supported interval dialect.
func ParseInterval(src string) (Interval, error) {
	c, ok := grammar.ParseInterval(src)
	if !ok {
		return Interval{}, invalidStringError(intervalTypeName, src)
	}
	n, err := normalize.NormalizeInterval(c)
	if err != nil {
		return Interval{}, fromNormalizeError(intervalTypeName, src, err)
	}
	return intervalFromNormalized(n), nil
}

// NewInterval builds an Interval from explicit fields. milliseconds may be
// fractional down to the microsecond.
func NewInterval(years, months, days, hours, minutes, seconds int64, milliseconds float64) (Interval, error) {
	return intervalFromFields(Fields{
		"years":        years,
		"months":       months,
		"days":         days,
		"hours":        hours,
		"minutes":      minutes,
		"seconds":      seconds,
		"milliseconds": milliseconds,
	})
}

func intervalFromFields(f Fields) (Interval, error) {
	if e := checkKeys(intervalTypeName, f, intervalFields); e != nil {
		return Interval{}, e
	}

	var c grammar.IntervalCaptures
	for _, fd := range intervalFields {
		v, ok := f[fd.name]
		if !ok {
			continue
		}
		num, e := numberArg(intervalTypeName, fd.name, v, fd.fractional)
		if e != nil {
			return Interval{}, e
		}
		c.Quantities = append(c.Quantities, grammar.Quantity{Value: num, Unit: intervalFieldUnits[fd.name]})
	}

	n, err := normalize.NormalizeInterval(c)
	if err != nil {
		if errors.Is(err, normalize.ErrFieldOverflow) {
			return Interval{}, outOfRangeError(ReasonTooBig, "%s: field value out of range", intervalTypeName)
		}
		return Interval{}, fromNormalizeError(intervalTypeName, "", err)
	}
	return intervalFromNormalized(n), nil
}

func intervalFromNormalized(n normalize.Interval) Interval {
	return Interval{
		years:        n.Years,
		months:       n.Months,
		days:         n.Days,
		hours:        n.Hours,
		minutes:      n.Minutes,
		seconds:      n.Seconds,
		milliseconds: n.Milliseconds,
		microseconds: n.Microseconds,
	}
}

// IsInterval reports whether v is an Interval.
func IsInterval(v any) bool {
	_, ok := v.(Interval)
	return ok
}

func (iv Interval) Years() int64   { return iv.years }
func (iv Interval) Months() int64  { return iv.months }
func (iv Interval) Days() int64    { return iv.days }
func (iv Interval) Hours() int64   { return iv.hours }
func (iv Interval) Minutes() int64 { return iv.minutes }
func (iv Interval) Seconds() int64 { return iv.seconds }

// Milliseconds returns the millisecond field including its microsecond
// fraction.
func (iv Interval) Milliseconds() float64 {
	return float64(iv.milliseconds) + float64(iv.microseconds)/microsecondsPerMillisecond
}

// MillisecondParts returns the exact millisecond field as whole milliseconds
// and the sub-millisecond remainder in microseconds.
func (iv Interval) MillisecondParts() (milliseconds, microseconds int64) {
	return iv.milliseconds, iv.microseconds
}

func (iv Interval) WithYears(v int64) Interval   { iv.years = v; return iv }
func (iv Interval) WithMonths(v int64) Interval  { iv.months = v; return iv }
func (iv Interval) WithDays(v int64) Interval    { iv.days = v; return iv }
func (iv Interval) WithHours(v int64) Interval   { iv.hours = v; return iv }
func (iv Interval) WithMinutes(v int64) Interval { iv.minutes = v; return iv }
func (iv Interval) WithSeconds(v int64) Interval { iv.seconds = v; return iv }

// WithMilliseconds replaces the millisecond field, rounding to the microsecond.
func (iv Interval) WithMilliseconds(v float64) (Interval, error) {
	other, err := intervalFromFields(Fields{"milliseconds": v})
	if err != nil {
		return iv, err
	}
	iv.milliseconds, iv.microseconds = other.milliseconds, other.microseconds
	return iv, nil
}

// IsZero reports whether every field is zero.
func (iv Interval) IsZero() bool {
	return iv == Interval{}
}

// Equal reports whether both intervals hold the same fields.
func (iv Interval) Equal(other Interval) bool {
	return iv == other
}

// SafeEquals compares against any accepted input by canonical text.
func (iv Interval) SafeEquals(in Input) (bool, error) {
	other, err := IntervalFrom(in)
	if err != nil {
		return false, err
	}
	return iv.String() == other.String(), nil
}

// Equals is SafeEquals with invalid input treated as unequal.
func (iv Interval) Equals(in Input) bool {
	eq, err := iv.SafeEquals(in)
	return err == nil && eq
}

// span returns the interval length in microseconds using PostgreSQL's
// 30-day month and 24-hour day.
func (iv Interval) span() *apd.Decimal {
	total := new(apd.Decimal)
	addScaled(total, iv.years, 12*30*microsecondsPerDay)
	addScaled(total, iv.months, 30*microsecondsPerDay)
	addScaled(total, iv.days, microsecondsPerDay)
	addScaled(total, iv.hours, microsecondsPerHour)
	addScaled(total, iv.minutes, microsecondsPerMinute)
	addScaled(total, iv.seconds, microsecondsPerSecond)
	addScaled(total, iv.milliseconds, microsecondsPerMillisecond)
	addScaled(total, iv.microseconds, 1)
	return total
}

// spanContext holds every sum of up to eight int64 by int64 products (at
// most 40 digits) without rounding, so its operations never overflow or lose
// digits and their conditions carry no information.
var spanContext = apd.BaseContext.WithPrecision(60)

// addScaled adds v*scale to total in spanContext.
func addScaled(total *apd.Decimal, v, scale int64) {
	var term apd.Decimal
	term.SetInt64(v)
	_, _ = spanContext.Mul(&term, &term, apd.New(scale, 0))
	_, _ = spanContext.Add(total, total, &term)
}

// Compare orders intervals the way PostgreSQL's interval_cmp does.
func (iv Interval) Compare(other Interval) int {
	return iv.span().Cmp(other.span())
}

// PGRepresentation folds the fields into PostgreSQL's storage triple. Values
// outside the storage range wrap silently as they do in the server.
func (iv Interval) PGRepresentation() (microseconds int64, days int32, months int32) {
	microseconds = iv.hours*microsecondsPerHour +
		iv.minutes*microsecondsPerMinute +
		iv.seconds*microsecondsPerSecond +
		iv.milliseconds*microsecondsPerMillisecond +
		iv.microseconds
	return microseconds, int32(iv.days), int32(iv.years*12 + iv.months)
}

// IntervalFromPG expands PostgreSQL's storage triple into fields.
func IntervalFromPG(microseconds int64, days int32, months int32) Interval {
	iv := Interval{
		years:  int64(months) / 12,
		months: int64(months) % 12,
		days:   int64(days),
	}
	iv.hours = microseconds / microsecondsPerHour
	microseconds %= microsecondsPerHour
	iv.minutes = microseconds / microsecondsPerMinute
	microseconds %= microsecondsPerMinute
	iv.seconds = microseconds / microsecondsPerSecond
	microseconds %= microsecondsPerSecond
	iv.milliseconds = microseconds / microsecondsPerMillisecond
	iv.microseconds = microseconds % microsecondsPerMillisecond
	return iv
}

// EncodeBinary appends the PostgreSQL binary format of iv to buf.
func (iv Interval) EncodeBinary(buf []byte) []byte {
	microseconds, days, months := iv.PGRepresentation()
	buf = pgio.AppendInt64(buf, microseconds)
	buf = pgio.AppendInt32(buf, days)
	buf = pgio.AppendInt32(buf, months)
	return buf
}

// DecodeBinaryInterval decodes the PostgreSQL binary format.
func DecodeBinaryInterval(src []byte) (Interval, error) {
	if len(src) != 16 {
		return Interval{}, newError(InvalidString, "invalid length for interval: %d", len(src))
	}
	microseconds := int64(binary.BigEndian.Uint64(src))
	days := int32(binary.BigEndian.Uint32(src[8:]))
	months := int32(binary.BigEndian.Uint32(src[12:]))
	return IntervalFromPG(microseconds, days, months), nil
}

// Scan implements the database/sql Scanner interface.
func (iv *Interval) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return iv.scanText(src)
	case []byte:
		return iv.scanText(string(src))
	case int64:
		*iv = IntervalFromPG(src, 0, 0)
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into %T", iv)
	}
	return fmt.Errorf("cannot scan %T", src)
}

func (iv *Interval) scanText(src string) error {
	v, err := ParseInterval(src)
	if err != nil {
		return err
	}
	*iv = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (iv Interval) Value() (driver.Value, error) {
	return iv.String(), nil
}

// intervalFromTime builds the field view of a date/time value used by the
// ISO duration styles.
func intervalFromTime(year, month, day, hour, minute, second, micro int64) Interval {
	return Interval{
		years:        year,
		months:       month,
		days:         day,
		hours:        hour,
		minutes:      minute,
		seconds:      second,
		milliseconds: micro / microsecondsPerMillisecond,
		microseconds: micro % microsecondsPerMillisecond,
	}
}

func abs64(v int64) uint64 {
	if v < 0 {
		if v == math.MinInt64 {
			return uint64(math.MaxInt64) + 1
		}
		return uint64(-v)
	}
	return uint64(v)
}

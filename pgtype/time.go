package pgtype

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jackc/pgio"

	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

const timeTypeName = "time"

// Time is a time of day with microsecond precision and no zone.
type Time struct {
	hour   int
	minute int
	second int
	micro  int
}

func (Time) isInput() {}

// TimeFrom builds a Time from any accepted input shape.
func TimeFrom(in Input) (Time, error) {
	switch v := in.(type) {
	case Time:
		return v, nil
	case Text:
		return ParseTime(string(v))
	case Fields, Positional:
		f, err := fieldsInput(timeTypeName, in, timeFields)
		if err != nil {
			return Time{}, err
		}
		return timeFromFieldValues(timeTypeName, f)
	}
	return Time{}, invalidTypeError(timeTypeName, in)
}

// MustTime is like TimeFrom but panics with the *Error.
func MustTime(in Input) Time {
	t, err := TimeFrom(in)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTime parses a time of day, or a timestamp whose date is dropped. A
// written zone is ignored.
func ParseTime(src string) (Time, error) {
	dt, err := parseDateTimeText(timeTypeName, src, true)
	if err != nil {
		return Time{}, err
	}
	if !dt.HasTime {
		return Time{}, invalidStringError(timeTypeName, src)
	}
	return timeFromNormalized(timeTypeName, src, dt)
}

// NewTime validates and builds a Time.
func NewTime(hour, minute, second, microsecond int) (Time, error) {
	if err := normalize.ValidateClock(int64(hour), int64(minute), int64(second), int64(microsecond)); err != nil {
		return Time{}, fromNormalizeError(timeTypeName, "", err)
	}
	return Time{hour: hour, minute: minute, second: second, micro: microsecond}, nil
}

// TimeFromTime takes the wall clock of t in its own location.
func TimeFromTime(t time.Time) Time {
	return Time{hour: t.Hour(), minute: t.Minute(), second: t.Second(), micro: t.Nanosecond() / 1000}
}

// IsTime reports whether v is a Time.
func IsTime(v any) bool {
	_, ok := v.(Time)
	return ok
}

func (t Time) Hour() int        { return t.hour }
func (t Time) Minute() int      { return t.minute }
func (t Time) Second() int      { return t.second }
func (t Time) Microsecond() int { return t.micro }

func (t Time) WithHour(v int) (Time, error)   { return NewTime(v, t.minute, t.second, t.micro) }
func (t Time) WithMinute(v int) (Time, error) { return NewTime(t.hour, v, t.second, t.micro) }
func (t Time) WithSecond(v int) (Time, error) { return NewTime(t.hour, t.minute, v, t.micro) }

func (t Time) WithMicrosecond(v int) (Time, error) {
	return NewTime(t.hour, t.minute, t.second, v)
}

// sinceMidnight returns microseconds since midnight.
func (t Time) sinceMidnight() int64 {
	return int64(t.hour)*microsecondsPerHour +
		int64(t.minute)*microsecondsPerMinute +
		int64(t.second)*microsecondsPerSecond +
		int64(t.micro)
}

func timeFromMidnight(us int64) Time {
	return Time{
		hour:   int(us / microsecondsPerHour),
		minute: int(us % microsecondsPerHour / microsecondsPerMinute),
		second: int(us % microsecondsPerMinute / microsecondsPerSecond),
		micro:  int(us % microsecondsPerSecond),
	}
}

func (t Time) parts() dateTimeParts {
	return dateTimeParts{hasTime: true, time: t}
}

// String renders t in the ISO style.
func (t Time) String() string {
	return t.Format(DateTimeStyleISO)
}

// Format renders t in the given style.
func (t Time) Format(style DateTimeStyle) string {
	return t.parts().format(style)
}

// ToNumber returns milliseconds since midnight.
func (t Time) ToNumber() int64 {
	return t.sinceMidnight() / 1000
}

func (t Time) Equal(other Time) bool {
	return t == other
}

// Compare orders times of day.
func (t Time) Compare(other Time) int {
	return compareInt64(t.sinceMidnight(), other.sinceMidnight())
}

// SafeEquals compares against any accepted input.
func (t Time) SafeEquals(in Input) (bool, error) {
	other, err := TimeFrom(in)
	if err != nil {
		return false, err
	}
	return t.Format(DateTimeStylePOSIX) == other.Format(DateTimeStylePOSIX), nil
}

// Equals is SafeEquals with invalid input treated as unequal.
func (t Time) Equals(in Input) bool {
	eq, err := t.SafeEquals(in)
	return err == nil && eq
}

// EncodeBinary appends the PostgreSQL binary format of t to buf.
func (t Time) EncodeBinary(buf []byte) []byte {
	return pgio.AppendInt64(buf, t.sinceMidnight())
}

// DecodeBinaryTime decodes the PostgreSQL binary format.
func DecodeBinaryTime(src []byte) (Time, error) {
	if len(src) != 8 {
		return Time{}, newError(InvalidString, "invalid length for time: %d", len(src))
	}
	us := int64(binary.BigEndian.Uint64(src))
	switch {
	case us < 0:
		return Time{}, outOfRangeError(ReasonTooSmall, "time: %d microseconds is outside a day", us)
	case us >= microsecondsPerDay:
		return Time{}, outOfRangeError(ReasonTooBig, "time: %d microseconds is outside a day", us)
	}
	return timeFromMidnight(us), nil
}

// Scan implements the database/sql Scanner interface.
func (t *Time) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return t.scanText(src)
	case []byte:
		return t.scanText(string(src))
	case time.Time:
		*t = TimeFromTime(src)
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into %T", t)
	}
	return fmt.Errorf("cannot scan %T", src)
}

func (t *Time) scanText(src string) error {
	v, err := ParseTime(src)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (t Time) Value() (driver.Value, error) {
	return t.Format(DateTimeStylePOSIX), nil
}

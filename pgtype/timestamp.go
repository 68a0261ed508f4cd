package pgtype

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgio"

	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

const timestampTypeName = "timestamp"

var timestampFields = concatFields(dateFields, timeFields)

// Timestamp is a date and time of day without a zone.
type Timestamp struct {
	date Date
	time Time
}

func (Timestamp) isInput() {}

// TimestampFrom builds a Timestamp from any accepted input shape.
func TimestampFrom(in Input) (Timestamp, error) {
	switch v := in.(type) {
	case Timestamp:
		return v, nil
	case Text:
		return ParseTimestamp(string(v))
	case Fields, Positional:
		f, err := fieldsInput(timestampTypeName, in, timestampFields)
		if err != nil {
			return Timestamp{}, err
		}
		return timestampFromFieldValues(timestampTypeName, f)
	}
	return Timestamp{}, invalidTypeError(timestampTypeName, in)
}

// MustTimestamp is like TimestampFrom but panics with the *Error.
func MustTimestamp(in Input) Timestamp {
	ts, err := TimestampFrom(in)
	if err != nil {
		panic(err)
	}
	return ts
}

// ParseTimestamp parses any supported date/time dialect. A written zone is
// ignored, as PostgreSQL does for timestamp without time zone.
func ParseTimestamp(src string) (Timestamp, error) {
	dt, err := parseDateTimeText(timestampTypeName, src, false)
	if err != nil {
		return Timestamp{}, err
	}
	return timestampFromNormalized(timestampTypeName, src, dt)
}

func timestampFromNormalized(typeName, src string, dt normalize.DateTime) (Timestamp, error) {
	d, err := dateFromNormalized(typeName, src, dt)
	if err != nil {
		return Timestamp{}, err
	}
	t, err := timeFromNormalized(typeName, src, dt)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{date: d, time: t}, nil
}

func timestampFromFieldValues(typeName string, f Fields) (Timestamp, error) {
	d, err := dateFromFieldValues(typeName, f)
	if err != nil {
		return Timestamp{}, err
	}
	t, err := timeFromFieldValues(typeName, f)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{date: d, time: t}, nil
}

// NewTimestamp validates and builds a Timestamp.
func NewTimestamp(year, month, day, hour, minute, second, microsecond int) (Timestamp, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return Timestamp{}, err
	}
	t, err := NewTime(hour, minute, second, microsecond)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{date: d, time: t}, nil
}

// TimestampFromTime takes the wall clock of t in its own location.
func TimestampFromTime(t time.Time) (Timestamp, error) {
	d, err := DateFromTime(t)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{date: d, time: TimeFromTime(t)}, nil
}

// IsTimestamp reports whether v is a Timestamp.
func IsTimestamp(v any) bool {
	_, ok := v.(Timestamp)
	return ok
}

func (ts Timestamp) Date() Date            { return ts.date }
func (ts Timestamp) Clock() Time           { return ts.time }
func (ts Timestamp) Year() int             { return ts.date.year }
func (ts Timestamp) Month() int            { return ts.date.month }
func (ts Timestamp) Day() int              { return ts.date.day }
func (ts Timestamp) Hour() int             { return ts.time.hour }
func (ts Timestamp) Minute() int           { return ts.time.minute }
func (ts Timestamp) Second() int           { return ts.time.second }
func (ts Timestamp) Microsecond() int      { return ts.time.micro }
func (ts Timestamp) Weekday() time.Weekday { return ts.date.Weekday() }

func (ts Timestamp) WithDate(d Date) Timestamp  { ts.date = d; return ts }
func (ts Timestamp) WithClock(t Time) Timestamp { ts.time = t; return ts }

func (ts Timestamp) WithYear(v int) (Timestamp, error) {
	return ts.withDate(ts.date.WithYear(v))
}

func (ts Timestamp) WithMonth(v int) (Timestamp, error) {
	return ts.withDate(ts.date.WithMonth(v))
}

func (ts Timestamp) WithDay(v int) (Timestamp, error) {
	return ts.withDate(ts.date.WithDay(v))
}

func (ts Timestamp) WithHour(v int) (Timestamp, error) {
	return ts.withTime(ts.time.WithHour(v))
}

func (ts Timestamp) WithMinute(v int) (Timestamp, error) {
	return ts.withTime(ts.time.WithMinute(v))
}

func (ts Timestamp) WithSecond(v int) (Timestamp, error) {
	return ts.withTime(ts.time.WithSecond(v))
}

func (ts Timestamp) WithMicrosecond(v int) (Timestamp, error) {
	return ts.withTime(ts.time.WithMicrosecond(v))
}

func (ts Timestamp) withDate(d Date, err error) (Timestamp, error) {
	if err != nil {
		return ts, retag(err, dateTypeName, timestampTypeName)
	}
	ts.date = d
	return ts, nil
}

func (ts Timestamp) withTime(t Time, err error) (Timestamp, error) {
	if err != nil {
		return ts, retag(err, timeTypeName, timestampTypeName)
	}
	ts.time = t
	return ts, nil
}

// Time returns ts as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	d, t := ts.date, ts.time
	return time.Date(d.year, time.Month(d.month), d.day, t.hour, t.minute, t.second, t.micro*1000, time.UTC)
}

func (ts Timestamp) parts() dateTimeParts {
	return dateTimeParts{hasDate: true, date: ts.date, hasTime: true, time: ts.time}
}

// String renders ts in the ISO style.
func (ts Timestamp) String() string {
	return ts.Format(DateTimeStyleISO)
}

// Format renders ts in the given style.
func (ts Timestamp) Format(style DateTimeStyle) string {
	return ts.parts().format(style)
}

// ToNumber returns Unix milliseconds, reading the wall clock as UTC.
func (ts Timestamp) ToNumber() int64 {
	return unixMillis(ts.pgMicros())
}

func (ts Timestamp) pgMicros() int64 {
	return pgMicros(ts.date, ts.time)
}

func (ts Timestamp) Equal(other Timestamp) bool {
	return ts == other
}

// Compare orders timestamps chronologically.
func (ts Timestamp) Compare(other Timestamp) int {
	return compareInt64(ts.pgMicros(), other.pgMicros())
}

// SafeEquals compares against any accepted input by canonical text.
func (ts Timestamp) SafeEquals(in Input) (bool, error) {
	other, err := TimestampFrom(in)
	if err != nil {
		return false, err
	}
	return ts.Format(DateTimeStylePOSIX) == other.Format(DateTimeStylePOSIX), nil
}

// Equals is SafeEquals with invalid input treated as unequal.
func (ts Timestamp) Equals(in Input) bool {
	eq, err := ts.SafeEquals(in)
	return err == nil && eq
}

// EncodeBinary appends the PostgreSQL binary format of ts to buf.
func (ts Timestamp) EncodeBinary(buf []byte) []byte {
	return pgio.AppendInt64(buf, ts.pgMicros())
}

// DecodeBinaryTimestamp decodes the PostgreSQL binary format.
func DecodeBinaryTimestamp(src []byte) (Timestamp, error) {
	if len(src) != 8 {
		return Timestamp{}, newError(InvalidString, "invalid length for timestamp: %d", len(src))
	}
	return timestampFromPGMicros(timestampTypeName, int64(binary.BigEndian.Uint64(src)))
}

func timestampFromPGMicros(typeName string, m int64) (Timestamp, error) {
	if m == math.MaxInt64 || m == math.MinInt64 {
		return Timestamp{}, newError(InvalidString, "%s: infinity is not supported", typeName)
	}
	d, t := fromPGMicros(m)
	if err := normalize.ValidateDate(int64(d.year), int64(d.month), int64(d.day)); err != nil {
		return Timestamp{}, fromNormalizeError(typeName, "", err)
	}
	return Timestamp{date: d, time: t}, nil
}

// Scan implements the database/sql Scanner interface.
func (ts *Timestamp) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return ts.scanText(src)
	case []byte:
		return ts.scanText(string(src))
	case time.Time:
		v, err := TimestampFromTime(src)
		if err != nil {
			return err
		}
		*ts = v
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into %T", ts)
	}
	return fmt.Errorf("cannot scan %T", src)
}

func (ts *Timestamp) scanText(src string) error {
	v, err := ParseTimestamp(src)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (ts Timestamp) Value() (driver.Value, error) {
	return ts.Format(DateTimeStylePOSIX), nil
}

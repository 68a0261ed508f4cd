package pgtype

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jackc/pgio"
)

const timestampTZTypeName = "timestamptz"

var timestampTZFields = concatFields(dateFields, timeFields, offsetFields)

// TimestampTZ is a wall clock reading together with the UTC offset it was
// taken at. Equality and ordering use the instant; the offset is kept for
// display.
type TimestampTZ struct {
	local  Timestamp
	offset Offset
}

func (TimestampTZ) isInput() {}

// TimestampTZFrom builds a TimestampTZ from any accepted input shape.
func TimestampTZFrom(in Input) (TimestampTZ, error) {
	switch v := in.(type) {
	case TimestampTZ:
		return v, nil
	case Text:
		return ParseTimestampTZ(string(v))
	case Fields, Positional:
		f, err := fieldsInput(timestampTZTypeName, in, timestampTZFields)
		if err != nil {
			return TimestampTZ{}, err
		}
		ts, err := timestampFromFieldValues(timestampTZTypeName, f)
		if err != nil {
			return TimestampTZ{}, err
		}
		o, err := offsetFromFieldValues(timestampTZTypeName, f)
		if err != nil {
			return TimestampTZ{}, err
		}
		return TimestampTZ{local: ts, offset: o}, nil
	}
	return TimestampTZ{}, invalidTypeError(timestampTZTypeName, in)
}

// MustTimestampTZ is like TimestampTZFrom but panics with the *Error.
func MustTimestampTZ(in Input) TimestampTZ {
	ts, err := TimestampTZFrom(in)
	if err != nil {
		panic(err)
	}
	return ts
}

// ParseTimestampTZ parses any supported date/time dialect. Without a zone
// the value is taken as UTC.
func ParseTimestampTZ(src string) (TimestampTZ, error) {
	dt, err := parseDateTimeText(timestampTZTypeName, src, false)
	if err != nil {
		return TimestampTZ{}, err
	}
	ts, err := timestampFromNormalized(timestampTZTypeName, src, dt)
	if err != nil {
		return TimestampTZ{}, err
	}
	return TimestampTZ{local: ts, offset: offsetFromNormalized(dt)}, nil
}

// NewTimestampTZ builds a TimestampTZ from validated parts.
func NewTimestampTZ(local Timestamp, offset Offset) TimestampTZ {
	return TimestampTZ{local: local, offset: offset}
}

// TimestampTZFromTime takes the wall clock and offset of t. Sub-minute
// offsets are truncated.
func TimestampTZFromTime(t time.Time) (TimestampTZ, error) {
	ts, err := TimestampFromTime(t)
	if err != nil {
		return TimestampTZ{}, err
	}
	_, off := t.Zone()
	return TimestampTZ{local: ts, offset: offsetFromSeconds(off / 60 * 60)}, nil
}

// IsTimestampTZ reports whether v is a TimestampTZ.
func IsTimestampTZ(v any) bool {
	_, ok := v.(TimestampTZ)
	return ok
}

// Local returns the wall clock reading without its offset.
func (ts TimestampTZ) Local() Timestamp { return ts.local }
func (ts TimestampTZ) Offset() Offset   { return ts.offset }
func (ts TimestampTZ) Year() int        { return ts.local.Year() }
func (ts TimestampTZ) Month() int       { return ts.local.Month() }
func (ts TimestampTZ) Day() int         { return ts.local.Day() }
func (ts TimestampTZ) Hour() int        { return ts.local.Hour() }
func (ts TimestampTZ) Minute() int      { return ts.local.Minute() }
func (ts TimestampTZ) Second() int      { return ts.local.Second() }
func (ts TimestampTZ) Microsecond() int { return ts.local.Microsecond() }

func (ts TimestampTZ) WithLocal(v Timestamp) TimestampTZ { ts.local = v; return ts }
func (ts TimestampTZ) WithOffset(v Offset) TimestampTZ   { ts.offset = v; return ts }

func (ts TimestampTZ) WithYear(v int) (TimestampTZ, error) {
	return ts.withLocal(ts.local.WithYear(v))
}

func (ts TimestampTZ) WithMonth(v int) (TimestampTZ, error) {
	return ts.withLocal(ts.local.WithMonth(v))
}

func (ts TimestampTZ) WithDay(v int) (TimestampTZ, error) {
	return ts.withLocal(ts.local.WithDay(v))
}

func (ts TimestampTZ) WithHour(v int) (TimestampTZ, error) {
	return ts.withLocal(ts.local.WithHour(v))
}

func (ts TimestampTZ) WithMinute(v int) (TimestampTZ, error) {
	return ts.withLocal(ts.local.WithMinute(v))
}

func (ts TimestampTZ) WithSecond(v int) (TimestampTZ, error) {
	return ts.withLocal(ts.local.WithSecond(v))
}

func (ts TimestampTZ) withLocal(local Timestamp, err error) (TimestampTZ, error) {
	if err != nil {
		return ts, retag(err, timestampTypeName, timestampTZTypeName)
	}
	ts.local = local
	return ts, nil
}

// instant returns microseconds since 2000-01-01 00:00:00 UTC.
func (ts TimestampTZ) instant() int64 {
	return ts.local.pgMicros() - int64(ts.offset.Seconds())*microsecondsPerSecond
}

// Time returns ts as a time.Time in a fixed zone with its offset.
func (ts TimestampTZ) Time() time.Time {
	zone := time.FixedZone("", ts.offset.Seconds())
	return ts.local.Time().Add(-time.Duration(ts.offset.Seconds()) * time.Second).In(zone)
}

// UTC returns the same instant with a zero offset.
func (ts TimestampTZ) UTC() (TimestampTZ, error) {
	local, err := timestampFromPGMicros(timestampTZTypeName, ts.instant())
	if err != nil {
		return TimestampTZ{}, err
	}
	return TimestampTZ{local: local, offset: UTC}, nil
}

func (ts TimestampTZ) parts() dateTimeParts {
	p := ts.local.parts()
	o := ts.offset
	p.zone = &o
	return p
}

// String renders ts in the ISO style.
func (ts TimestampTZ) String() string {
	return ts.Format(DateTimeStyleISO)
}

// Format renders ts in the given style.
func (ts TimestampTZ) Format(style DateTimeStyle) string {
	return ts.parts().format(style)
}

// ToNumber returns Unix milliseconds of the instant.
func (ts TimestampTZ) ToNumber() int64 {
	return unixMillis(ts.instant())
}

// Equal reports whether both values denote the same instant.
func (ts TimestampTZ) Equal(other TimestampTZ) bool {
	return ts.instant() == other.instant()
}

// Compare orders by instant.
func (ts TimestampTZ) Compare(other TimestampTZ) int {
	return compareInt64(ts.instant(), other.instant())
}

// SafeEquals compares against any accepted input by instant.
func (ts TimestampTZ) SafeEquals(in Input) (bool, error) {
	other, err := TimestampTZFrom(in)
	if err != nil {
		return false, err
	}
	return ts.Equal(other), nil
}

// Equals is SafeEquals with invalid input treated as unequal.
func (ts TimestampTZ) Equals(in Input) bool {
	eq, err := ts.SafeEquals(in)
	return err == nil && eq
}

// EncodeBinary appends the PostgreSQL binary format of ts to buf. Only the
// instant travels on the wire.
func (ts TimestampTZ) EncodeBinary(buf []byte) []byte {
	return pgio.AppendInt64(buf, ts.instant())
}

// DecodeBinaryTimestampTZ decodes the PostgreSQL binary format into a UTC
// value.
func DecodeBinaryTimestampTZ(src []byte) (TimestampTZ, error) {
	if len(src) != 8 {
		return TimestampTZ{}, newError(InvalidString, "invalid length for timestamptz: %d", len(src))
	}
	local, err := timestampFromPGMicros(timestampTZTypeName, int64(binary.BigEndian.Uint64(src)))
	if err != nil {
		return TimestampTZ{}, err
	}
	return TimestampTZ{local: local, offset: UTC}, nil
}

// Scan implements the database/sql Scanner interface.
func (ts *TimestampTZ) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return ts.scanText(src)
	case []byte:
		return ts.scanText(string(src))
	case time.Time:
		v, err := TimestampTZFromTime(src)
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

func (ts *TimestampTZ) scanText(src string) error {
	v, err := ParseTimestampTZ(src)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (ts TimestampTZ) Value() (driver.Value, error) {
	return ts.Format(DateTimeStylePOSIX), nil
}

package pgtype

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jackc/pgio"
)

const timeTZTypeName = "timetz"

var timeTZFields = concatFields(timeFields, offsetFields)

// TimeTZ is a time of day with a UTC offset.
type TimeTZ struct {
	time   Time
	offset Offset
}

func (TimeTZ) isInput() {}

// TimeTZFrom builds a TimeTZ from any accepted input shape.
func TimeTZFrom(in Input) (TimeTZ, error) {
	switch v := in.(type) {
	case TimeTZ:
		return v, nil
	case Text:
		return ParseTimeTZ(string(v))
	case Fields, Positional:
		f, err := fieldsInput(timeTZTypeName, in, timeTZFields)
		if err != nil {
			return TimeTZ{}, err
		}
		t, err := timeFromFieldValues(timeTZTypeName, f)
		if err != nil {
			return TimeTZ{}, err
		}
		o, err := offsetFromFieldValues(timeTZTypeName, f)
		if err != nil {
			return TimeTZ{}, err
		}
		return TimeTZ{time: t, offset: o}, nil
	}
	return TimeTZ{}, invalidTypeError(timeTZTypeName, in)
}

// MustTimeTZ is like TimeTZFrom but panics with the *Error.
func MustTimeTZ(in Input) TimeTZ {
	t, err := TimeTZFrom(in)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeTZ parses a time of day with an optional zone. Without a zone the
// offset is UTC.
func ParseTimeTZ(src string) (TimeTZ, error) {
	dt, err := parseDateTimeText(timeTZTypeName, src, true)
	if err != nil {
		return TimeTZ{}, err
	}
	if !dt.HasTime {
		return TimeTZ{}, invalidStringError(timeTZTypeName, src)
	}
	t, err := timeFromNormalized(timeTZTypeName, src, dt)
	if err != nil {
		return TimeTZ{}, err
	}
	return TimeTZ{time: t, offset: offsetFromNormalized(dt)}, nil
}

// NewTimeTZ builds a TimeTZ from validated parts.
func NewTimeTZ(t Time, offset Offset) TimeTZ {
	return TimeTZ{time: t, offset: offset}
}

// TimeTZFromTime takes the wall clock and offset of t.
func TimeTZFromTime(t time.Time) TimeTZ {
	_, off := t.Zone()
	return TimeTZ{time: TimeFromTime(t), offset: offsetFromSeconds(off / 60 * 60)}
}

// IsTimeTZ reports whether v is a TimeTZ.
func IsTimeTZ(v any) bool {
	_, ok := v.(TimeTZ)
	return ok
}

func (t TimeTZ) Time() Time     { return t.time }
func (t TimeTZ) Offset() Offset { return t.offset }

func (t TimeTZ) WithTime(v Time) TimeTZ     { t.time = v; return t }
func (t TimeTZ) WithOffset(v Offset) TimeTZ { t.offset = v; return t }

// utcMicros is the time of day converted to UTC, not wrapped into a day.
func (t TimeTZ) utcMicros() int64 {
	return t.time.sinceMidnight() - int64(t.offset.Seconds())*microsecondsPerSecond
}

func (t TimeTZ) parts() dateTimeParts {
	o := t.offset
	return dateTimeParts{hasTime: true, time: t.time, zone: &o}
}

// String renders t in the ISO style.
func (t TimeTZ) String() string {
	return t.Format(DateTimeStyleISO)
}

// Format renders t in the given style.
func (t TimeTZ) Format(style DateTimeStyle) string {
	return t.parts().format(style)
}

// ToNumber returns milliseconds since midnight of the wall clock.
func (t TimeTZ) ToNumber() int64 {
	return t.time.ToNumber()
}

// Equal reports whether both values denote the same UTC time of day.
func (t TimeTZ) Equal(other TimeTZ) bool {
	return t.utcMicros() == other.utcMicros()
}

// Compare orders by UTC time of day.
func (t TimeTZ) Compare(other TimeTZ) int {
	return compareInt64(t.utcMicros(), other.utcMicros())
}

// SafeEquals compares against any accepted input by UTC time of day.
func (t TimeTZ) SafeEquals(in Input) (bool, error) {
	other, err := TimeTZFrom(in)
	if err != nil {
		return false, err
	}
	return t.Equal(other), nil
}

// Equals is SafeEquals with invalid input treated as unequal.
func (t TimeTZ) Equals(in Input) bool {
	eq, err := t.SafeEquals(in)
	return err == nil && eq
}

// EncodeBinary appends the PostgreSQL binary format of t to buf. The server
// stores the zone as seconds west of UTC.
func (t TimeTZ) EncodeBinary(buf []byte) []byte {
	buf = pgio.AppendInt64(buf, t.time.sinceMidnight())
	return pgio.AppendInt32(buf, int32(-t.offset.Seconds()))
}

// DecodeBinaryTimeTZ decodes the PostgreSQL binary format.
func DecodeBinaryTimeTZ(src []byte) (TimeTZ, error) {
	if len(src) != 12 {
		return TimeTZ{}, newError(InvalidString, "invalid length for timetz: %d", len(src))
	}
	t, err := DecodeBinaryTime(src[:8])
	if err != nil {
		return TimeTZ{}, err
	}
	west := int(int32(binary.BigEndian.Uint32(src[8:])))
	if west <= -24*3600 || west >= 24*3600 {
		return TimeTZ{}, outOfRangeError(ReasonTooBig, "timetz: zone offset %d seconds out of range", west)
	}
	return TimeTZ{time: t, offset: offsetFromSeconds(-west)}, nil
}

// Scan implements the database/sql Scanner interface.
func (t *TimeTZ) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return t.scanText(src)
	case []byte:
		return t.scanText(string(src))
	case time.Time:
		*t = TimeTZFromTime(src)
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into %T", t)
	}
	return fmt.Errorf("cannot scan %T", src)
}

func (t *TimeTZ) scanText(src string) error {
	v, err := ParseTimeTZ(src)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (t TimeTZ) Value() (driver.Value, error) {
	return t.Format(DateTimeStylePOSIX), nil
}

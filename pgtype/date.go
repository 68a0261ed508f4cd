package pgtype

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jackc/pgio"

	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

const dateTypeName = "date"

// Date is a calendar date between 0001-01-01 and 294276-12-31.
type Date struct {
	year  int
	month int
	day   int
}

func (Date) isInput() {}

// DateFrom builds a Date from any accepted input shape.
func DateFrom(in Input) (Date, error) {
	switch v := in.(type) {
	case Date:
		return v, nil
	case Text:
		return ParseDate(string(v))
	case Fields, Positional:
		f, err := fieldsInput(dateTypeName, in, dateFields)
		if err != nil {
			return Date{}, err
		}
		return dateFromFieldValues(dateTypeName, f)
	}
	return Date{}, invalidTypeError(dateTypeName, in)
}

// MustDate is like DateFrom but panics with the *Error.
func MustDate(in Input) Date {
	d, err := DateFrom(in)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a date, or a timestamp whose time part is dropped.
func ParseDate(src string) (Date, error) {
	dt, err := parseDateTimeText(dateTypeName, src, false)
	if err != nil {
		return Date{}, err
	}
	return dateFromNormalized(dateTypeName, src, dt)
}

// NewDate validates and builds a Date.
func NewDate(year, month, day int) (Date, error) {
	if err := normalize.ValidateDate(int64(year), int64(month), int64(day)); err != nil {
		return Date{}, fromNormalizeError(dateTypeName, "", err)
	}
	return Date{year: year, month: month, day: day}, nil
}

// DateFromTime takes the calendar date of t in its own location.
func DateFromTime(t time.Time) (Date, error) {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// IsDate reports whether v is a Date.
func IsDate(v any) bool {
	_, ok := v.(Date)
	return ok
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) WithYear(v int) (Date, error)  { return NewDate(v, d.month, d.day) }
func (d Date) WithMonth(v int) (Date, error) { return NewDate(d.year, v, d.day) }
func (d Date) WithDay(v int) (Date, error)   { return NewDate(d.year, d.month, v) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) parts() dateTimeParts {
	return dateTimeParts{hasDate: true, date: d}
}

// String renders d in the ISO style.
func (d Date) String() string {
	return d.Format(DateTimeStyleISO)
}

// Format renders d in the given style.
func (d Date) Format(style DateTimeStyle) string {
	return d.parts().format(style)
}

// ToNumber returns Unix milliseconds at midnight UTC.
func (d Date) ToNumber() int64 {
	return unixMillis(pgMicros(d, Time{}))
}

func (d Date) Equal(other Date) bool {
	return d == other
}

// Compare orders dates chronologically.
func (d Date) Compare(other Date) int {
	return compareInt64(d.pgDays(), other.pgDays())
}

// SafeEquals compares against any accepted input.
func (d Date) SafeEquals(in Input) (bool, error) {
	other, err := DateFrom(in)
	if err != nil {
		return false, err
	}
	return d.Format(DateTimeStylePOSIX) == other.Format(DateTimeStylePOSIX), nil
}

// Equals is SafeEquals with invalid input treated as unequal.
func (d Date) Equals(in Input) bool {
	eq, err := d.SafeEquals(in)
	return err == nil && eq
}

func (d Date) pgDays() int64 {
	return floorDiv(pgMicros(d, Time{}), microsecondsPerDay)
}

// EncodeBinary appends the PostgreSQL binary format of d to buf.
func (d Date) EncodeBinary(buf []byte) []byte {
	return pgio.AppendInt32(buf, int32(d.pgDays()))
}

// DecodeBinaryDate decodes the PostgreSQL binary format.
func DecodeBinaryDate(src []byte) (Date, error) {
	if len(src) != 4 {
		return Date{}, newError(InvalidString, "invalid length for date: %d", len(src))
	}
	days := int64(int32(binary.BigEndian.Uint32(src)))
	if days == int64(infinityDays) || days == int64(negativeInfinityDays) {
		return Date{}, newError(InvalidString, "date: infinity is not supported")
	}
	date, _ := fromPGMicros(days * microsecondsPerDay)
	return NewDate(date.year, date.month, date.day)
}

const (
	infinityDays         int32 = 2147483647
	negativeInfinityDays int32 = -2147483648
)

// Scan implements the database/sql Scanner interface.
func (d *Date) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return d.scanText(src)
	case []byte:
		return d.scanText(string(src))
	case time.Time:
		v, err := DateFromTime(src)
		if err != nil {
			return err
		}
		*d = v
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into %T", d)
	}
	return fmt.Errorf("cannot scan %T", src)
}

func (d *Date) scanText(src string) error {
	v, err := ParseDate(src)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (d Date) Value() (driver.Value, error) {
	return d.Format(DateTimeStylePOSIX), nil
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

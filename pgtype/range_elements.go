package pgtype

import (
	"encoding/binary"
	"errors"
	"strconv"
	"strings"
	"unsafe"

	"github.com/jackc/pgio"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// IntCodec handles integer range elements of any width.
type IntCodec[I constraints.Integer] struct{}

func (IntCodec[I]) signed() bool {
	var zero I
	return ^zero < 0
}

func (IntCodec[I]) bits() int {
	var zero I
	return int(unsafe.Sizeof(zero)) * 8
}

func (c IntCodec[I]) Parse(src string) (I, error) {
	s := strings.TrimSpace(src)
	if c.signed() {
		n, err := strconv.ParseInt(s, 10, c.bits())
		if err != nil {
			return 0, intParseError(s, err, strings.HasPrefix(s, "-"))
		}
		return I(n), nil
	}
	n, err := strconv.ParseUint(s, 10, c.bits())
	if err != nil {
		if _, serr := strconv.ParseInt(s, 10, 64); strings.HasPrefix(s, "-") && (serr == nil || errors.Is(serr, strconv.ErrRange)) {
			return 0, outOfRangeError(ReasonTooSmall, "value %q is out of range for unsigned integer", s)
		}
		return 0, intParseError(s, err, strings.HasPrefix(s, "-"))
	}
	return I(n), nil
}

func intParseError(s string, err error, negative bool) error {
	if errors.Is(err, strconv.ErrRange) {
		reason := ReasonTooBig
		if negative {
			reason = ReasonTooSmall
		}
		return outOfRangeError(reason, "value %q is out of range for integer", s)
	}
	return invalidStringError("integer", s)
}

func (c IntCodec[I]) Format(v I) string {
	if c.signed() {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

func (IntCodec[I]) IsInstance(v any) bool {
	_, ok := v.(I)
	return ok
}

func (IntCodec[I]) Compare(a, b I) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c IntCodec[I]) EncodeBinary(buf []byte, v I) []byte {
	switch c.bits() {
	case 8:
		return append(buf, byte(v))
	case 16:
		return pgio.AppendUint16(buf, uint16(v))
	case 32:
		return pgio.AppendUint32(buf, uint32(v))
	}
	return pgio.AppendUint64(buf, uint64(v))
}

func (c IntCodec[I]) DecodeBinary(src []byte) (I, error) {
	if len(src)*8 != c.bits() {
		return 0, newError(InvalidString, "invalid length for int%d: %d", c.bits()/8, len(src))
	}
	switch c.bits() {
	case 8:
		return I(int8(src[0])), nil
	case 16:
		return I(int16(binary.BigEndian.Uint16(src))), nil
	case 32:
		return I(int32(binary.BigEndian.Uint32(src))), nil
	}
	return I(int64(binary.BigEndian.Uint64(src))), nil
}

// NumericCodec handles arbitrary precision numeric range elements.
type NumericCodec struct{}

func (NumericCodec) Parse(src string) (decimal.Decimal, error) {
	s := strings.TrimSpace(src)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, invalidStringError("numeric", s)
	}
	return d, nil
}

func (NumericCodec) Format(v decimal.Decimal) string { return v.String() }

func (NumericCodec) IsInstance(v any) bool {
	_, ok := v.(decimal.Decimal)
	return ok
}

func (NumericCodec) Compare(a, b decimal.Decimal) int { return a.Cmp(b) }

// TextCodec handles text range elements, compared bytewise.
type TextCodec struct{}

func (TextCodec) Parse(src string) (string, error) { return src, nil }
func (TextCodec) Format(v string) string           { return v }
func (TextCodec) Compare(a, b string) int          { return strings.Compare(a, b) }

func (TextCodec) IsInstance(v any) bool {
	_, ok := v.(string)
	return ok
}

func (TextCodec) EncodeBinary(buf []byte, v string) []byte { return append(buf, v...) }
func (TextCodec) DecodeBinary(src []byte) (string, error)  { return string(src), nil }

// TimestampCodec handles timestamp range elements.
type TimestampCodec struct{}

func (TimestampCodec) Parse(src string) (Timestamp, error) {
	return ParseTimestamp(strings.TrimSpace(src))
}

func (TimestampCodec) Format(v Timestamp) string                   { return v.Format(DateTimeStylePOSIX) }
func (TimestampCodec) IsInstance(v any) bool                       { return IsTimestamp(v) }
func (TimestampCodec) Compare(a, b Timestamp) int                  { return a.Compare(b) }
func (TimestampCodec) EncodeBinary(buf []byte, v Timestamp) []byte { return v.EncodeBinary(buf) }

func (TimestampCodec) DecodeBinary(src []byte) (Timestamp, error) {
	return DecodeBinaryTimestamp(src)
}

// TimestampTZCodec handles timestamptz range elements.
type TimestampTZCodec struct{}

func (TimestampTZCodec) Parse(src string) (TimestampTZ, error) {
	return ParseTimestampTZ(strings.TrimSpace(src))
}

func (TimestampTZCodec) Format(v TimestampTZ) string  { return v.Format(DateTimeStylePOSIX) }
func (TimestampTZCodec) IsInstance(v any) bool        { return IsTimestampTZ(v) }
func (TimestampTZCodec) Compare(a, b TimestampTZ) int { return a.Compare(b) }

func (TimestampTZCodec) EncodeBinary(buf []byte, v TimestampTZ) []byte {
	return v.EncodeBinary(buf)
}

func (TimestampTZCodec) DecodeBinary(src []byte) (TimestampTZ, error) {
	return DecodeBinaryTimestampTZ(src)
}

// DateCodec handles date range elements.
type DateCodec struct{}

func (DateCodec) Parse(src string) (Date, error)         { return ParseDate(strings.TrimSpace(src)) }
func (DateCodec) Format(v Date) string                   { return v.Format(DateTimeStylePOSIX) }
func (DateCodec) IsInstance(v any) bool                  { return IsDate(v) }
func (DateCodec) Compare(a, b Date) int                  { return a.Compare(b) }
func (DateCodec) EncodeBinary(buf []byte, v Date) []byte { return v.EncodeBinary(buf) }
func (DateCodec) DecodeBinary(src []byte) (Date, error)  { return DecodeBinaryDate(src) }

// TimeCodec handles time of day range elements.
type TimeCodec struct{}

func (TimeCodec) Parse(src string) (Time, error)         { return ParseTime(strings.TrimSpace(src)) }
func (TimeCodec) Format(v Time) string                   { return v.Format(DateTimeStylePOSIX) }
func (TimeCodec) IsInstance(v any) bool                  { return IsTime(v) }
func (TimeCodec) Compare(a, b Time) int                  { return a.Compare(b) }
func (TimeCodec) EncodeBinary(buf []byte, v Time) []byte { return v.EncodeBinary(buf) }
func (TimeCodec) DecodeBinary(src []byte) (Time, error)  { return DecodeBinaryTime(src) }

// IntervalCodec handles interval range elements, ordered by total span with
// 30 day months and 24 hour days.
type IntervalCodec struct{}

func (IntervalCodec) Parse(src string) (Interval, error) { return ParseInterval(src) }
func (IntervalCodec) Format(v Interval) string           { return v.Format(IntervalStylePostgreSQL) }
func (IntervalCodec) IsInstance(v any) bool              { return IsInterval(v) }
func (IntervalCodec) Compare(a, b Interval) int          { return a.Compare(b) }

func (IntervalCodec) EncodeBinary(buf []byte, v Interval) []byte {
	return v.EncodeBinary(buf)
}

func (IntervalCodec) DecodeBinary(src []byte) (Interval, error) {
	return DecodeBinaryInterval(src)
}

// Codecs for the built in PostgreSQL range types.
var (
	Int4RangeCodec = NewRangeCodec[int32](IntCodec[int32]{})
	Int8RangeCodec = NewRangeCodec[int64](IntCodec[int64]{})
	NumRangeCodec  = NewRangeCodec[decimal.Decimal](NumericCodec{})
	TsRangeCodec   = NewRangeCodec[Timestamp](TimestampCodec{})
	TstzRangeCodec = NewRangeCodec[TimestampTZ](TimestampTZCodec{})
	DateRangeCodec = NewRangeCodec[Date](DateCodec{})
)

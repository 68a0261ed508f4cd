package pgtype

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jackc/pgio"
)

const rangeTypeName = "range"

// BoundChar is the bracket written on one side of a range.
type BoundChar byte

const (
	LowerInclusive BoundChar = '['
	LowerExclusive BoundChar = '('
	UpperInclusive BoundChar = ']'
	UpperExclusive BoundChar = ')'
)

// ElementCodec teaches a range how to handle its element type.
type ElementCodec[T any] interface {
	// Parse converts the text of one bound into an element.
	Parse(src string) (T, error)

	// Format renders an element the way PostgreSQL prints it inside a range.
	Format(v T) string

	// IsInstance reports whether v already is an element.
	IsInstance(v any) bool

	// Compare orders two elements, returning -1, 0 or 1.
	Compare(a, b T) int
}

// BinaryElementCodec is implemented by element codecs that also speak the
// PostgreSQL binary format.
type BinaryElementCodec[T any] interface {
	ElementCodec[T]
	EncodeBinary(buf []byte, v T) []byte
	DecodeBinary(src []byte) (T, error)
}

// Range is a bounded PostgreSQL range. Empty ranges have no elements and are
// always held as "[" ")".
type Range[T any] struct {
	codec    ElementCodec[T]
	lower    BoundChar
	upper    BoundChar
	bounds   [2]T
	hasValue bool
}

func (Range[T]) isInput() {}

// IsRange reports whether v is a Range of T.
func IsRange[T any](v any) bool {
	_, ok := v.(Range[T])
	return ok
}

func (r Range[T]) LowerBound() BoundChar { return r.lower }
func (r Range[T]) UpperBound() BoundChar { return r.upper }

// Bounds returns the endpoints. ok is false for an empty range.
func (r Range[T]) Bounds() (lower, upper T, ok bool) {
	return r.bounds[0], r.bounds[1], r.hasValue
}

// IsEmpty reports whether the range contains no points.
func (r Range[T]) IsEmpty() bool {
	return !r.hasValue
}

// Contains reports whether v lies inside the range.
func (r Range[T]) Contains(v T) bool {
	if !r.hasValue || r.codec == nil {
		return false
	}
	lo := r.codec.Compare(r.bounds[0], v)
	hi := r.codec.Compare(v, r.bounds[1])
	if lo > 0 || (lo == 0 && r.lower == LowerExclusive) {
		return false
	}
	if hi > 0 || (hi == 0 && r.upper == UpperExclusive) {
		return false
	}
	return true
}

// Equal reports whether both ranges have the same bounds and endpoints.
func (r Range[T]) Equal(other Range[T]) bool {
	if r.hasValue != other.hasValue {
		return false
	}
	if !r.hasValue {
		return true
	}
	if r.lower != other.lower || r.upper != other.upper || r.codec == nil {
		return false
	}
	return r.codec.Compare(r.bounds[0], other.bounds[0]) == 0 &&
		r.codec.Compare(r.bounds[1], other.bounds[1]) == 0
}

// String renders the range in PostgreSQL's text format.
func (r Range[T]) String() string {
	if !r.hasValue || r.codec == nil {
		return "empty"
	}
	var sb strings.Builder
	sb.WriteByte(byte(r.lower))
	writeRangeElement(&sb, r.codec.Format(r.bounds[0]))
	sb.WriteByte(',')
	writeRangeElement(&sb, r.codec.Format(r.bounds[1]))
	sb.WriteByte(byte(r.upper))
	return sb.String()
}

// writeRangeElement quotes s when it would not read back unquoted.
func writeRangeElement(sb *strings.Builder, s string) {
	if s != "" && !strings.ContainsAny(s, "\"\\,()[] \t\n\r\v\f") {
		sb.WriteString(s)
		return
	}
	sb.WriteByte('"')
	for _, c := range []byte(s) {
		switch c {
		case '"', '\\':
			sb.WriteByte(c)
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
}

// RangeCodec builds and parses ranges of one element type.
type RangeCodec[T any] struct {
	Element ElementCodec[T]
}

// NewRangeCodec returns a codec for ranges over elem.
func NewRangeCodec[T any](elem ElementCodec[T]) *RangeCodec[T] {
	return &RangeCodec[T]{Element: elem}
}

// RangeFrom builds a range from any accepted input shape using codec.
func RangeFrom[T any](codec *RangeCodec[T], in Input) (Range[T], error) {
	return codec.From(in)
}

// Empty returns the canonical empty range.
func (c *RangeCodec[T]) Empty() Range[T] {
	return Range[T]{codec: c.Element, lower: LowerInclusive, upper: UpperExclusive}
}

// New validates bounds and endpoints. Ranges with equal endpoints and an
// exclusive bound collapse to empty.
func (c *RangeCodec[T]) New(lower BoundChar, a, b T, upper BoundChar) (Range[T], error) {
	if lower != LowerInclusive && lower != LowerExclusive {
		return Range[T]{}, newError(InvalidString, "range: invalid lower bound %q", byte(lower))
	}
	if upper != UpperInclusive && upper != UpperExclusive {
		return Range[T]{}, newError(InvalidString, "range: invalid upper bound %q", byte(upper))
	}
	switch cmp := c.Element.Compare(a, b); {
	case cmp > 0:
		return Range[T]{}, newError(InvalidRangeBound, "range lower bound must be less than or equal to range upper bound")
	case cmp == 0 && (lower == LowerExclusive || upper == UpperExclusive):
		return c.Empty(), nil
	}
	return Range[T]{codec: c.Element, lower: lower, upper: upper, bounds: [2]T{a, b}, hasValue: true}, nil
}

// From builds a range from Text, a two element Positional, Fields with
// lower/upper/value or lower/upper elements, or an existing Range.
func (c *RangeCodec[T]) From(in Input) (Range[T], error) {
	switch v := in.(type) {
	case Range[T]:
		if v.codec == nil {
			v.codec = c.Element
		}
		return v, nil
	case Text:
		return c.Parse(string(v))
	case Positional:
		return c.fromPair(v, LowerInclusive, UpperExclusive)
	case Fields:
		return c.fromFields(v)
	}
	return Range[T]{}, invalidTypeError(rangeTypeName, in)
}

// Must is like From but panics with the *Error.
func (c *RangeCodec[T]) Must(in Input) Range[T] {
	r, err := c.From(in)
	if err != nil {
		panic(err)
	}
	return r
}

func (c *RangeCodec[T]) fromPair(pair []any, lower, upper BoundChar) (Range[T], error) {
	if len(pair) != 2 {
		return Range[T]{}, arityError(rangeTypeName, 2, len(pair))
	}
	a, err := c.element(pair[0])
	if err != nil {
		return Range[T]{}, err
	}
	b, err := c.element(pair[1])
	if err != nil {
		return Range[T]{}, err
	}
	return c.New(lower, a, b, upper)
}

func (c *RangeCodec[T]) fromFields(f Fields) (Range[T], error) {
	value, hasValue := f["value"]
	if !hasValue {
		specs := []fieldSpec{{name: "lower", required: true}, {name: "upper", required: true}}
		if e := checkKeys(rangeTypeName, f, specs); e != nil {
			return Range[T]{}, e
		}
		return c.fromPair([]any{f["lower"], f["upper"]}, LowerInclusive, UpperExclusive)
	}

	specs := []fieldSpec{{name: "lower", required: true}, {name: "upper", required: true}, {name: "value", required: true}}
	if e := checkKeys(rangeTypeName, f, specs); e != nil {
		return Range[T]{}, e
	}

	var pair []any
	switch v := value.(type) {
	case nil:
	case Positional:
		pair = v
	case []any:
		pair = v
	default:
		e := newError(InvalidKeyType, "range: value must be a pair or null, got %T", value)
		e.Keys = []string{"value"}
		return Range[T]{}, e
	}
	if value != nil && len(pair) != 2 {
		return Range[T]{}, arityError(rangeTypeName, 2, len(pair))
	}

	lower, e := boundArg(f["lower"], "lower", LowerInclusive, LowerExclusive)
	if e != nil {
		return Range[T]{}, e
	}
	upper, e := boundArg(f["upper"], "upper", UpperInclusive, UpperExclusive)
	if e != nil {
		return Range[T]{}, e
	}
	if value == nil {
		return c.Empty(), nil
	}
	return c.fromPair(pair, lower, upper)
}

func boundArg(v any, key string, inclusive, exclusive BoundChar) (BoundChar, *Error) {
	var b BoundChar
	switch s := v.(type) {
	case BoundChar:
		b = s
	case string:
		if len(s) == 1 {
			b = BoundChar(s[0])
		}
	default:
		e := newError(InvalidKeyType, "range: %s must be a bound character, got %T", key, v)
		e.Keys = []string{key}
		return 0, e
	}
	if b != inclusive && b != exclusive {
		return 0, newError(InvalidString, "range: invalid %s bound %v", key, v)
	}
	return b, nil
}

// element coerces a loosely typed value into T.
func (c *RangeCodec[T]) element(v any) (T, error) {
	var zero T
	if c.Element.IsInstance(v) {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	switch s := v.(type) {
	case string:
		return c.Element.Parse(s)
	case Text:
		return c.Element.Parse(string(s))
	case fmt.Stringer:
		return c.Element.Parse(s.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return c.Element.Parse(fmt.Sprint(s))
	}
	return zero, invalidTypeError(rangeTypeName+" element", v)
}

// Parse reads PostgreSQL's range text format. Unbounded ranges are not
// supported.
func (c *RangeCodec[T]) Parse(src string) (Range[T], error) {
	utr, err := parseUntypedTextRange(src)
	if err != nil {
		return Range[T]{}, newError(InvalidString, "malformed range literal %q: %v", src, err)
	}
	if utr.Empty {
		return c.Empty(), nil
	}
	a, err := c.Element.Parse(utr.Lower)
	if err != nil {
		return Range[T]{}, err
	}
	b, err := c.Element.Parse(utr.Upper)
	if err != nil {
		return Range[T]{}, err
	}
	return c.New(utr.LowerType, a, b, utr.UpperType)
}

type untypedTextRange struct {
	Lower     string
	Upper     string
	LowerType BoundChar
	UpperType BoundChar
	Empty     bool
}

func parseUntypedTextRange(src string) (untypedTextRange, error) {
	utr := untypedTextRange{}
	if strings.EqualFold(strings.TrimSpace(src), "empty") {
		utr.Empty = true
		return utr, nil
	}

	buf := bytes.NewBufferString(src)

	skipWhitespace(buf)

	r, _, err := buf.ReadRune()
	if err != nil {
		return utr, fmt.Errorf("invalid lower bound: %w", err)
	}
	switch r {
	case '(', '[':
		utr.LowerType = BoundChar(r)
	default:
		return utr, fmt.Errorf("missing lower bound, instead got: %v", string(r))
	}

	r, _, err = buf.ReadRune()
	if err != nil {
		return utr, fmt.Errorf("invalid lower value: %w", err)
	}
	if r == ',' {
		return utr, fmt.Errorf("unbounded lower bound is not supported")
	}
	buf.UnreadRune()
	utr.Lower, err = rangeParseValue(buf)
	if err != nil {
		return utr, fmt.Errorf("invalid lower value: %w", err)
	}

	r, _, err = buf.ReadRune()
	if err != nil {
		return utr, fmt.Errorf("missing range separator: %w", err)
	}
	if r != ',' {
		return utr, fmt.Errorf("missing range separator: %v", string(r))
	}

	r, _, err = buf.ReadRune()
	if err != nil {
		return utr, fmt.Errorf("invalid upper value: %w", err)
	}
	if r == ')' || r == ']' {
		return utr, fmt.Errorf("unbounded upper bound is not supported")
	}
	buf.UnreadRune()
	utr.Upper, err = rangeParseValue(buf)
	if err != nil {
		return utr, fmt.Errorf("invalid upper value: %w", err)
	}

	r, _, err = buf.ReadRune()
	if err != nil {
		return utr, fmt.Errorf("missing upper bound: %w", err)
	}
	switch r {
	case ')', ']':
		utr.UpperType = BoundChar(r)
	default:
		return utr, fmt.Errorf("missing upper bound, instead got: %v", string(r))
	}

	skipWhitespace(buf)

	if buf.Len() > 0 {
		return utr, fmt.Errorf("unexpected trailing data: %v", buf.String())
	}

	return utr, nil
}

func skipWhitespace(buf *bytes.Buffer) {
	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			return
		}
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			buf.UnreadRune()
			return
		}
	}
}

func rangeParseValue(buf *bytes.Buffer) (string, error) {
	r, _, err := buf.ReadRune()
	if err != nil {
		return "", err
	}
	if r == '"' {
		return rangeParseQuotedValue(buf)
	}
	buf.UnreadRune()

	s := &bytes.Buffer{}

	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case '\\':
			r, _, err = buf.ReadRune()
			if err != nil {
				return "", err
			}
		case ',', '[', ']', '(', ')':
			buf.UnreadRune()
			return s.String(), nil
		}

		s.WriteRune(r)
	}
}

func rangeParseQuotedValue(buf *bytes.Buffer) (string, error) {
	s := &bytes.Buffer{}

	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case '\\':
			r, _, err = buf.ReadRune()
			if err != nil {
				return "", err
			}
		case '"':
			r, _, err = buf.ReadRune()
			if err != nil {
				return "", err
			}
			if r != '"' {
				buf.UnreadRune()
				return s.String(), nil
			}
		}
		s.WriteRune(r)
	}
}

// Binary range flags.
const (
	rangeEmptyFlag          = 0x01
	rangeLowerInclusiveFlag = 0x02
	rangeUpperInclusiveFlag = 0x04
	rangeLowerInfinityFlag  = 0x08
	rangeUpperInfinityFlag  = 0x10
)

// EncodeBinary appends the PostgreSQL binary format of r to buf. The element
// codec must implement BinaryElementCodec.
func (r Range[T]) EncodeBinary(buf []byte) ([]byte, error) {
	if !r.hasValue {
		return append(buf, rangeEmptyFlag), nil
	}
	bc, ok := r.codec.(BinaryElementCodec[T])
	if !ok {
		return nil, fmt.Errorf("range element codec %T has no binary format", r.codec)
	}

	var flags byte
	if r.lower == LowerInclusive {
		flags |= rangeLowerInclusiveFlag
	}
	if r.upper == UpperInclusive {
		flags |= rangeUpperInclusiveFlag
	}
	buf = append(buf, flags)

	for _, v := range r.bounds {
		sp := len(buf)
		buf = pgio.AppendInt32(buf, -1)
		buf = bc.EncodeBinary(buf, v)
		pgio.SetInt32(buf[sp:], int32(len(buf[sp:])-4))
	}
	return buf, nil
}

// DecodeBinary reads PostgreSQL's binary range format.
func (c *RangeCodec[T]) DecodeBinary(src []byte) (Range[T], error) {
	bc, ok := c.Element.(BinaryElementCodec[T])
	if !ok {
		return Range[T]{}, fmt.Errorf("range element codec %T has no binary format", c.Element)
	}
	if len(src) == 0 {
		return Range[T]{}, newError(InvalidString, "range: empty binary value")
	}

	flags := src[0]
	if flags&rangeEmptyFlag != 0 {
		return c.Empty(), nil
	}
	if flags&(rangeLowerInfinityFlag|rangeUpperInfinityFlag) != 0 {
		return Range[T]{}, newError(InvalidString, "range: unbounded ranges are not supported")
	}

	rp := 1
	var bounds [2]T
	for i := range bounds {
		if len(src[rp:]) < 4 {
			return Range[T]{}, newError(InvalidString, "range: binary value too short")
		}
		n := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4
		if n < 0 || len(src[rp:]) < n {
			return Range[T]{}, newError(InvalidString, "range: invalid element length %d", n)
		}
		v, err := bc.DecodeBinary(src[rp : rp+n])
		if err != nil {
			return Range[T]{}, err
		}
		bounds[i] = v
		rp += n
	}
	if rp != len(src) {
		return Range[T]{}, newError(InvalidString, "range: %d bytes of trailing data", len(src)-rp)
	}

	lower, upper := LowerExclusive, UpperExclusive
	if flags&rangeLowerInclusiveFlag != 0 {
		lower = LowerInclusive
	}
	if flags&rangeUpperInclusiveFlag != 0 {
		upper = UpperInclusive
	}
	return c.New(lower, bounds[0], bounds[1], upper)
}

// Scan implements the database/sql Scanner interface. The range must have
// been built by a codec so that it knows its element type.
func (r *Range[T]) Scan(src any) error {
	if r.codec == nil {
		return fmt.Errorf("cannot scan into %T without an element codec", r)
	}
	c := RangeCodec[T]{Element: r.codec}
	var text string
	switch src := src.(type) {
	case string:
		text = src
	case []byte:
		text = string(src)
	case nil:
		return fmt.Errorf("cannot scan NULL into %T", r)
	default:
		return fmt.Errorf("cannot scan %T", src)
	}
	v, err := c.Parse(text)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (r Range[T]) Value() (driver.Value, error) {
	return r.String(), nil
}

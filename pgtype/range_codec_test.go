package pgtype_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgtemporal/pgtemporal/pgtype"
)

var textRangeCodec = pgtype.NewRangeCodec[string](pgtype.TextCodec{})

func TestRangeEmptyWhenBoundsMeet(t *testing.T) {
	for _, src := range []string{"[a,a)", "(a,a]", "(a,a)"} {
		r, err := pgtype.RangeFrom(textRangeCodec, pgtype.Text(src))
		require.NoErrorf(t, err, "%s", src)
		assert.Truef(t, r.IsEmpty(), "%s", src)
		assert.Equal(t, "empty", r.String())
		assert.Equal(t, pgtype.LowerInclusive, r.LowerBound())
		assert.Equal(t, pgtype.UpperExclusive, r.UpperBound())
	}

	r, err := textRangeCodec.Parse("[a,a]")
	require.NoError(t, err)
	assert.False(t, r.IsEmpty())
	assert.Equal(t, "[a,a]", r.String())
}

func TestRangeBoundOrdering(t *testing.T) {
	_, err := textRangeCodec.Parse("[c,a)")
	requireCode(t, err, pgtype.InvalidRangeBound)

	_, err = pgtype.Int4RangeCodec.From(pgtype.Positional{5, 1})
	requireCode(t, err, pgtype.InvalidRangeBound)
}

func TestRangeText(t *testing.T) {
	tests := []struct {
		src    string
		result string
	}{
		{"[1,5)", "[1,5)"},
		{"(1,5]", "(1,5]"},
		{" [ 1 , 5 ) ", "[1,5)"},
		{`["1","5")`, "[1,5)"},
		{"empty", "empty"},
		{"EMPTY", "empty"},
	}

	for _, tt := range tests {
		r, err := pgtype.Int4RangeCodec.Parse(tt.src)
		require.NoErrorf(t, err, "%q", tt.src)
		assert.Equalf(t, tt.result, r.String(), "%q", tt.src)
	}

	for _, src := range []string{"", "[1,5", "1,5)", "[,5)", "[1,)", "[x,5)", "[1,5) junk"} {
		_, err := pgtype.Int4RangeCodec.Parse(src)
		requireCode(t, err, pgtype.InvalidString)
	}

	_, err := pgtype.Int4RangeCodec.Parse("[1,2147483648)")
	e := requireCode(t, err, pgtype.NumberOutOfRange)
	assert.Equal(t, pgtype.ReasonTooBig, e.Reason)
}

func TestRangeQuoting(t *testing.T) {
	r, err := textRangeCodec.New(pgtype.LowerInclusive, "a b", `q"x`, pgtype.UpperInclusive)
	require.NoError(t, err)
	assert.Equal(t, `["a b","q""x"]`, r.String())

	back, err := textRangeCodec.Parse(r.String())
	require.NoError(t, err)
	assert.True(t, r.Equal(back))

	ts, err := pgtype.TsRangeCodec.Parse(`["2023-01-01 10:00:00","2023-01-02 00:00:00")`)
	require.NoError(t, err)
	assert.Equal(t, `["2023-01-01 10:00:00","2023-01-02 00:00:00")`, ts.String())
}

func TestRangeFromPositional(t *testing.T) {
	r, err := pgtype.Int8RangeCodec.From(pgtype.Positional{int64(1), "10"})
	require.NoError(t, err)
	assert.Equal(t, "[1,10)", r.String())

	lower, upper, ok := r.Bounds()
	require.True(t, ok)
	assert.EqualValues(t, 1, lower)
	assert.EqualValues(t, 10, upper)

	_, err = pgtype.Int8RangeCodec.From(pgtype.Positional{1})
	requireCode(t, err, pgtype.TooSmall)

	_, err = pgtype.Int8RangeCodec.From(pgtype.Positional{1, 2, 3})
	requireCode(t, err, pgtype.TooBig)

	_, err = pgtype.Int8RangeCodec.From(pgtype.Positional{1, struct{}{}})
	requireCode(t, err, pgtype.InvalidType)
}

func TestRangeFromFields(t *testing.T) {
	r, err := pgtype.DateRangeCodec.From(pgtype.Fields{
		"lower": "(",
		"upper": "]",
		"value": []any{"2023-01-01", pgtype.MustDate(pgtype.Text("2023-01-31"))},
	})
	require.NoError(t, err)
	assert.Equal(t, "(2023-01-01,2023-01-31]", r.String())

	r, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "[", "upper": ")", "value": nil})
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())

	r, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "2023-01-01", "upper": "2023-02-01"})
	require.NoError(t, err)
	assert.Equal(t, "[2023-01-01,2023-02-01)", r.String())

	_, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "[", "value": nil})
	e := requireCode(t, err, pgtype.MissingKeys)
	assert.Equal(t, []string{"upper"}, e.Keys)

	_, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "[", "upper": ")", "value": nil, "extra": 1})
	requireCode(t, err, pgtype.UnrecognizedKeys)

	_, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "{", "upper": ")", "value": []any{"2023-01-01", "2023-01-02"}})
	requireCode(t, err, pgtype.InvalidString)

	_, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "[", "upper": ")", "value": "2023-01-01"})
	requireCode(t, err, pgtype.InvalidKeyType)

	_, err = pgtype.DateRangeCodec.From(pgtype.Fields{"lower": "[", "upper": ")", "value": []any{"2023-01-01"}})
	requireCode(t, err, pgtype.TooSmall)
}

func TestRangeValidationOrder(t *testing.T) {
	// A bad bound character is reported before an unparsable element.
	_, err := pgtype.Int4RangeCodec.From(pgtype.Fields{"lower": "<", "upper": ")", "value": []any{"x", "y"}})
	e := requireCode(t, err, pgtype.InvalidString)
	assert.Contains(t, e.Message, "lower")

	// Pair arity is checked before the bound characters.
	_, err = pgtype.Int4RangeCodec.From(pgtype.Fields{"lower": "x", "upper": ")", "value": []any{"a", "b", "c"}})
	requireCode(t, err, pgtype.TooBig)

	_, err = pgtype.Int4RangeCodec.From(pgtype.Fields{"lower": "x", "upper": ")", "value": pgtype.Positional{"a"}})
	requireCode(t, err, pgtype.TooSmall)

	// Element parsing comes before ordering.
	_, err = pgtype.Int4RangeCodec.From(pgtype.Positional{"9", "zz"})
	requireCode(t, err, pgtype.InvalidString)
}

func TestRangeContains(t *testing.T) {
	r := pgtype.Int4RangeCodec.Must(pgtype.Text("(1,5]"))

	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.False(t, pgtype.Int4RangeCodec.Empty().Contains(1))
}

func TestRangeEqual(t *testing.T) {
	a := pgtype.NumRangeCodec.Must(pgtype.Text("[1.50,2)"))
	b := pgtype.NumRangeCodec.Must(pgtype.Positional{decimal.RequireFromString("1.5"), 2})

	assert.True(t, a.Equal(b))
	assert.True(t, pgtype.NumRangeCodec.Empty().Equal(pgtype.NumRangeCodec.Must(pgtype.Text("(2,2)"))))
	assert.False(t, a.Equal(pgtype.NumRangeCodec.Must(pgtype.Text("(1.5,2)"))))
}

func TestRangeIntervalElements(t *testing.T) {
	codec := pgtype.NewRangeCodec[pgtype.Interval](pgtype.IntervalCodec{})

	r, err := codec.Parse(`["1 month","31 days")`)
	require.NoError(t, err)
	assert.Equal(t, `["1 month","31 days")`, r.String())

	r, err = codec.Parse(`["1 month","30 days")`)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())

	_, err = codec.Parse(`["1 month","29 days")`)
	requireCode(t, err, pgtype.InvalidRangeBound)
}

func TestRangeTimestampTZElements(t *testing.T) {
	r, err := pgtype.TstzRangeCodec.From(pgtype.Positional{"2023-01-01 10:00:00+02", "2023-01-01 09:00:00Z"})
	require.NoError(t, err)
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(pgtype.MustTimestampTZ(pgtype.Text("2023-01-01 08:30:00Z"))))
}

func TestRangeBinary(t *testing.T) {
	r := pgtype.Int4RangeCodec.Must(pgtype.Text("[4,5)"))

	buf, err := r.EncodeBinary(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0, 4, 0, 0, 0, 4, 0, 0, 0, 4, 0, 0, 0, 5}, buf)

	decoded, err := pgtype.Int4RangeCodec.DecodeBinary(buf)
	require.NoError(t, err)
	assert.True(t, r.Equal(decoded))

	empty, err := pgtype.Int4RangeCodec.Empty().EncodeBinary(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, empty)

	decoded, err = pgtype.Int4RangeCodec.DecodeBinary([]byte{1})
	require.NoError(t, err)
	assert.True(t, decoded.IsEmpty())

	_, err = pgtype.Int4RangeCodec.DecodeBinary([]byte{8, 0, 0, 0, 4, 0, 0, 0, 5})
	requireCode(t, err, pgtype.InvalidString)

	_, err = pgtype.NumRangeCodec.Must(pgtype.Text("[1,2)")).EncodeBinary(nil)
	assert.Error(t, err)
}

func TestRangeTimestampBinary(t *testing.T) {
	r := pgtype.TsRangeCodec.Must(pgtype.Text("[2000-01-01,2000-01-02]"))

	buf, err := r.EncodeBinary(nil)
	require.NoError(t, err)
	assert.Len(t, buf, 1+2*(4+8))
	assert.Equal(t, byte(6), buf[0])

	decoded, err := pgtype.TsRangeCodec.DecodeBinary(buf)
	require.NoError(t, err)
	assert.True(t, r.Equal(decoded))
}

func TestRangeScanValue(t *testing.T) {
	r := pgtype.DateRangeCodec.Empty()
	require.NoError(t, r.Scan("[2023-01-01,2023-02-01)"))
	assert.Equal(t, "[2023-01-01,2023-02-01)", r.String())

	v, err := r.Value()
	require.NoError(t, err)
	assert.Equal(t, "[2023-01-01,2023-02-01)", v)

	var bare pgtype.Range[pgtype.Date]
	assert.Error(t, bare.Scan("[2023-01-01,2023-02-01)"))
}

func TestIsRange(t *testing.T) {
	assert.True(t, pgtype.IsRange[int32](pgtype.Int4RangeCodec.Empty()))
	assert.False(t, pgtype.IsRange[int64](pgtype.Int4RangeCodec.Empty()))
	assert.False(t, pgtype.IsRange[int32]("[1,2)"))
}

func TestIntCodecWidths(t *testing.T) {
	small := pgtype.NewRangeCodec[int16](pgtype.IntCodec[int16]{})
	_, err := small.Parse("[1,40000)")
	requireCode(t, err, pgtype.NumberOutOfRange)

	unsigned := pgtype.NewRangeCodec[uint8](pgtype.IntCodec[uint8]{})
	r, err := unsigned.Parse("[0,255]")
	require.NoError(t, err)
	assert.Equal(t, "[0,255]", r.String())

	_, err = unsigned.Parse("[-1,2)")
	e := requireCode(t, err, pgtype.NumberOutOfRange)
	assert.Equal(t, pgtype.ReasonTooSmall, e.Reason)
}

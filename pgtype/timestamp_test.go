package pgtype_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgtemporal/pgtemporal/pgtype"
)

func TestTimestampFormat(t *testing.T) {
	ts, err := pgtype.NewTimestamp(2023, 1, 1, 22, 10, 9, 123456)
	require.NoError(t, err)

	tests := []struct {
		style  pgtype.DateTimeStyle
		result string
	}{
		{pgtype.DateTimeStyleISO, "2023-01-01T22:10:09.123"},
		{pgtype.DateTimeStyleISODate, "2023-01-01"},
		{pgtype.DateTimeStyleISOTime, "22:10:09.123"},
		{pgtype.DateTimeStylePOSIX, "2023-01-01 22:10:09.123456"},
		{pgtype.DateTimeStyleSQL, "01/01/2023 22:10:09.123"},
		{pgtype.DateTimeStylePostgreSQL, "Sunday January 01 2023 22:10:09.123 GMT"},
		{pgtype.DateTimeStylePostgreSQLShort, "Sun Jan 01 2023 22:10:09.123 GMT"},
		{pgtype.DateTimeStyleISODurationShort, "P2023Y1M1DT22H10M9.123456S"},
		{pgtype.DateTimeStyleISODurationExtended, "P2023-01-01T22:10:09.123456"},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.result, ts.Format(tt.style), "%v", tt.style)
	}
	assert.Equal(t, "2023-01-01T22:10:09.123", ts.String())
}

func TestTimestampParseIgnoresZone(t *testing.T) {
	ts, err := pgtype.ParseTimestamp("2023-01-01T22:10:09Z")
	require.NoError(t, err)
	assert.Equal(t, "Sun Jan 01 2023 22:10:09 GMT", ts.Format(pgtype.DateTimeStylePostgreSQLShort))

	ts2, err := pgtype.ParseTimestamp("2023-01-01 22:10:09+05")
	require.NoError(t, err)
	assert.True(t, ts.Equal(ts2))
}

func TestTimestampFromFields(t *testing.T) {
	ts, err := pgtype.TimestampFrom(pgtype.Fields{"year": 2023, "month": 1, "day": 1, "hour": 22, "minute": 10, "second": 9.5})
	require.NoError(t, err)
	assert.Equal(t, 500000, ts.Microsecond())
	assert.Equal(t, "2023-01-01 22:10:09.5", ts.Format(pgtype.DateTimeStylePOSIX))

	ts2, err := pgtype.TimestampFrom(pgtype.Positional{2023, 1, 1, 22, 10, 9.5})
	require.NoError(t, err)
	assert.True(t, ts.Equal(ts2))

	_, err = pgtype.TimestampFrom(pgtype.Fields{"year": 2023})
	e := requireCode(t, err, pgtype.MissingKeys)
	assert.Equal(t, []string{"month", "day", "hour", "minute", "second"}, e.Keys)

	_, err = pgtype.TimestampFrom(pgtype.Fields{"year": 2023, "month": 2, "day": 29, "hour": 0, "minute": 0, "second": 0})
	e = requireCode(t, err, pgtype.NumberOutOfRange)
	assert.Equal(t, pgtype.ReasonTooBig, e.Reason)

	_, err = pgtype.TimestampFrom(pgtype.Fields{"year": 2023, "month": 1, "day": 1, "hour": 24, "minute": 0, "second": 0})
	requireCode(t, err, pgtype.NumberOutOfRange)

	_, err = pgtype.TimestampFrom(pgtype.Positional{2023, 1, 1})
	requireCode(t, err, pgtype.TooSmall)
}

func TestTimestampWith(t *testing.T) {
	ts := pgtype.MustTimestamp(pgtype.Text("2024-02-29 12:00:00"))

	_, err := ts.WithYear(2023)
	e := requireCode(t, err, pgtype.NumberOutOfRange)
	assert.Equal(t, pgtype.ReasonTooBig, e.Reason)
	assert.Equal(t, "timestamp: day must be between 1 and 28, got 29", e.Message)

	_, err = ts.WithHour(24)
	e = requireCode(t, err, pgtype.NumberOutOfRange)
	assert.True(t, strings.HasPrefix(e.Message, "timestamp: "), e.Message)

	_, err = pgtype.MustTimestampTZ(pgtype.Text("2024-02-29 12:00:00+01")).WithYear(2023)
	e = requireCode(t, err, pgtype.NumberOutOfRange)
	assert.Equal(t, "timestamptz: day must be between 1 and 28, got 29", e.Message)

	ts2, err := ts.WithHour(13)
	require.NoError(t, err)
	assert.Equal(t, 12, ts.Hour())
	assert.Equal(t, 13, ts2.Hour())
}

func TestTimestampCompare(t *testing.T) {
	a := pgtype.MustTimestamp(pgtype.Text("2023-01-01 00:00:00"))
	b := pgtype.MustTimestamp(pgtype.Text("2023-01-01 00:00:00.000001"))

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Equals(pgtype.Text("2023-01-01T00:00:00")))
	assert.False(t, a.Equals(b))
}

func TestTimestampToNumber(t *testing.T) {
	ts, err := pgtype.NewTimestamp(2023, 1, 1, 22, 10, 9, 123456)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 22, 10, 9, 123456000, time.UTC).UnixMilli(), ts.ToNumber())

	old, err := pgtype.NewTimestamp(1969, 12, 31, 23, 59, 59, 999999)
	require.NoError(t, err)
	assert.EqualValues(t, -1, old.ToNumber())
}

func TestTimestampBinary(t *testing.T) {
	for _, src := range []string{
		"2000-01-01 00:00:00",
		"1999-12-31 23:59:59.999999",
		"0001-01-01 00:00:00",
		"2023-06-15 08:30:00.25",
	} {
		ts := pgtype.MustTimestamp(pgtype.Text(src))
		buf := ts.EncodeBinary(nil)
		require.Len(t, buf, 8)

		decoded, err := pgtype.DecodeBinaryTimestamp(buf)
		require.NoErrorf(t, err, "%s", src)
		assert.Truef(t, ts.Equal(decoded), "%s", src)
	}

	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, pgtype.MustTimestamp(pgtype.Text("2000-01-01")).EncodeBinary(nil))

	_, err := pgtype.DecodeBinaryTimestamp([]byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	requireCode(t, err, pgtype.InvalidString)
}

func TestTimestampScanValue(t *testing.T) {
	var ts pgtype.Timestamp
	require.NoError(t, ts.Scan("2023-01-01 22:10:09.5"))
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01 22:10:09.5", v)

	require.NoError(t, ts.Scan(time.Date(2020, 5, 6, 7, 8, 9, 0, time.FixedZone("", 3600))))
	assert.Equal(t, "2020-05-06 07:08:09", ts.Format(pgtype.DateTimeStylePOSIX))

	assert.Error(t, ts.Scan(nil))
}

func TestTimestampSpecials(t *testing.T) {
	pgtype.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 2, 29, 15, 4, 5, 123456789, time.UTC)))
	t.Cleanup(func() { pgtype.SetClock(clockwork.NewRealClock()) })

	tests := []struct {
		src    string
		result string
	}{
		{"now", "2024-02-29 15:04:05.123456"},
		{"today", "2024-02-29 00:00:00"},
		{"tomorrow", "2024-03-01 00:00:00"},
		{"yesterday", "2024-02-28 00:00:00"},
		{"epoch", "1970-01-01 00:00:00"},
	}

	for _, tt := range tests {
		ts, err := pgtype.ParseTimestamp(tt.src)
		require.NoErrorf(t, err, "%s", tt.src)
		assert.Equalf(t, tt.result, ts.Format(pgtype.DateTimeStylePOSIX), "%s", tt.src)
	}
}

func TestTimestampParseErrors(t *testing.T) {
	for _, src := range []string{"", "2023-13-01", "not a timestamp"} {
		_, err := pgtype.ParseTimestamp(src)
		require.Errorf(t, err, "%q", src)
	}

	_, err := pgtype.TimestampFrom(pgtype.Interval{})
	requireCode(t, err, pgtype.InvalidType)
}

func TestTimestampTZFormat(t *testing.T) {
	ts, err := pgtype.ParseTimestampTZ("2023-01-01 22:10:09+02")
	require.NoError(t, err)

	assert.Equal(t, "+02:00", ts.Offset().String())
	assert.Equal(t, "2023-01-01T22:10:09+02:00", ts.String())
	assert.Equal(t, "2023-01-01 22:10:09+02:00", ts.Format(pgtype.DateTimeStylePOSIX))
	assert.Equal(t, "Sun Jan 01 2023 22:10:09 GMT+0200", ts.Format(pgtype.DateTimeStylePostgreSQLShort))
	assert.Equal(t, "2023-01-01", ts.Format(pgtype.DateTimeStyleISODate))
	assert.Equal(t, "22:10:09+02:00", ts.Format(pgtype.DateTimeStyleISOTime))
}

func TestTimestampTZDefaultsToUTC(t *testing.T) {
	ts, err := pgtype.ParseTimestampTZ("2023-01-01 22:10:09")
	require.NoError(t, err)
	assert.Equal(t, pgtype.UTC, ts.Offset())
	assert.Equal(t, "Sun Jan 01 2023 22:10:09 GMT+0000", ts.Format(pgtype.DateTimeStylePostgreSQLShort))
}

func TestTimestampTZInstant(t *testing.T) {
	a := pgtype.MustTimestampTZ(pgtype.Text("2023-01-01 22:10:09+02"))
	b := pgtype.MustTimestampTZ(pgtype.Text("2023-01-01 20:10:09Z"))
	c := pgtype.MustTimestampTZ(pgtype.Text("2023-01-01 15:10:09-05:00"))

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c))
	assert.Equal(t, 0, a.Compare(c))
	assert.True(t, a.Equals(pgtype.Text("2023-01-01T20:10:09Z")))

	utc, err := a.UTC()
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01T20:10:09+00:00", utc.String())

	assert.Equal(t, time.Date(2023, 1, 1, 20, 10, 9, 0, time.UTC).UnixMilli(), a.ToNumber())
	assert.True(t, a.Time().Equal(time.Date(2023, 1, 1, 20, 10, 9, 0, time.UTC)))
}

func TestTimestampTZFromFields(t *testing.T) {
	ts, err := pgtype.TimestampTZFrom(pgtype.Fields{
		"year": 2023, "month": 1, "day": 1,
		"hour": 22, "minute": 10, "second": 9,
		"offsetHour": 5, "offsetMinute": 30, "offsetDirection": "-",
	})
	require.NoError(t, err)
	assert.Equal(t, "-05:30", ts.Offset().String())

	ts2, err := pgtype.TimestampTZFrom(pgtype.Positional{2023, 1, 1, 22, 10, 9, 5, 30, pgtype.Minus})
	require.NoError(t, err)
	assert.True(t, ts.Equal(ts2))

	_, err = pgtype.TimestampTZFrom(pgtype.Positional{2023, 1, 1, 22, 10, 9, 24, 0, "+"})
	requireCode(t, err, pgtype.NumberOutOfRange)

	_, err = pgtype.TimestampTZFrom(pgtype.Positional{2023, 1, 1, 22, 10, 9, 1, 0, "*"})
	requireCode(t, err, pgtype.InvalidString)

	_, err = pgtype.TimestampTZFrom(pgtype.Positional{2023, 1, 1, 22, 10, 9, 1, 0, 1})
	requireCode(t, err, pgtype.InvalidKeyType)
}

func TestTimestampTZBinary(t *testing.T) {
	ts := pgtype.MustTimestampTZ(pgtype.Text("2023-01-01 22:10:09.5+02"))

	decoded, err := pgtype.DecodeBinaryTimestampTZ(ts.EncodeBinary(nil))
	require.NoError(t, err)
	assert.True(t, ts.Equal(decoded))
	assert.Equal(t, pgtype.UTC, decoded.Offset())
	assert.Equal(t, 20, decoded.Hour())
}

func TestTimestampTZScanValue(t *testing.T) {
	var ts pgtype.TimestampTZ
	require.NoError(t, ts.Scan("2023-01-01 22:10:09-03"))

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01 22:10:09-03:00", v)

	require.NoError(t, ts.Scan(time.Date(2020, 5, 6, 7, 8, 9, 0, time.FixedZone("", 3600))))
	assert.Equal(t, "+01:00", ts.Offset().String())
}

func TestDateTimeFormatRoundTrip(t *testing.T) {
	timestampStyles := []pgtype.DateTimeStyle{
		pgtype.DateTimeStyleISO,
		pgtype.DateTimeStylePOSIX,
		pgtype.DateTimeStyleSQL,
		pgtype.DateTimeStylePostgreSQL,
		pgtype.DateTimeStylePostgreSQLShort,
		pgtype.DateTimeStyleISODuration,
		pgtype.DateTimeStyleISODurationShort,
		pgtype.DateTimeStyleISODurationBasic,
		pgtype.DateTimeStyleISODurationExtended,
	}

	// Only POSIX keeps microseconds, so the shared inputs stop at milliseconds.
	for _, src := range []string{"2023-01-01 22:10:09.123", "2024-02-29 00:00:05", "1999-12-31 23:59:59.9"} {
		ts := pgtype.MustTimestamp(pgtype.Text(src))
		for _, style := range timestampStyles {
			formatted := ts.Format(style)
			back, err := pgtype.ParseTimestamp(formatted)
			require.NoErrorf(t, err, "%q in %v: %q", src, style, formatted)
			assert.Truef(t, ts.Equal(back), "%q in %v: %q read back as %v", src, style, formatted, back)
			assert.Equalf(t, formatted, back.Format(style), "%q in %v is not idempotent", src, style)
		}
	}

	precise := pgtype.MustTimestamp(pgtype.Text("2023-01-01 22:10:09.123456"))
	back, err := pgtype.ParseTimestamp(precise.Format(pgtype.DateTimeStylePOSIX))
	require.NoError(t, err)
	assert.True(t, precise.Equal(back))

	for _, src := range []string{"2023-01-01 22:10:09.123+05:30", "2023-07-04 01:02:03-03:00", "2023-01-01 00:00:00Z"} {
		ts := pgtype.MustTimestampTZ(pgtype.Text(src))
		for _, style := range timestampStyles[:5] {
			formatted := ts.Format(style)
			back, err := pgtype.ParseTimestampTZ(formatted)
			require.NoErrorf(t, err, "%q in %v: %q", src, style, formatted)
			assert.Truef(t, ts.Equal(back), "%q in %v: %q", src, style, formatted)
			assert.Equalf(t, ts.Offset(), back.Offset(), "%q in %v: %q", src, style, formatted)
			assert.Equalf(t, formatted, back.Format(style), "%q in %v is not idempotent", src, style)
		}
	}

	d := pgtype.MustDate(pgtype.Text("2024-02-29"))
	for _, style := range []pgtype.DateTimeStyle{
		pgtype.DateTimeStyleISO,
		pgtype.DateTimeStyleISODate,
		pgtype.DateTimeStylePOSIX,
		pgtype.DateTimeStyleSQL,
		pgtype.DateTimeStylePostgreSQL,
		pgtype.DateTimeStylePostgreSQLShort,
	} {
		formatted := d.Format(style)
		back, err := pgtype.ParseDate(formatted)
		require.NoErrorf(t, err, "%v: %q", style, formatted)
		assert.Truef(t, d.Equal(back), "%v: %q", style, formatted)
	}

	tm := pgtype.MustTime(pgtype.Text("22:10:09.123"))
	for _, style := range []pgtype.DateTimeStyle{
		pgtype.DateTimeStyleISO,
		pgtype.DateTimeStyleISOTime,
		pgtype.DateTimeStylePOSIX,
		pgtype.DateTimeStyleSQL,
	} {
		formatted := tm.Format(style)
		back, err := pgtype.ParseTime(formatted)
		require.NoErrorf(t, err, "%v: %q", style, formatted)
		assert.Truef(t, tm.Equal(back), "%v: %q", style, formatted)
	}
}

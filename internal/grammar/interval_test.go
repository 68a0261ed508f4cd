package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(s string) Number {
	sc := newScanner(s)
	n, ok := sc.signedNumber()
	if !ok || !sc.eof() {
		panic("bad number literal " + s)
	}
	return n
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		src      string
		expected IntervalCaptures
	}{
		{
			src: "1 day 02:03:04",
			expected: IntervalCaptures{
				Dialect:    TraditionalWithTime,
				Quantities: []Quantity{{Value: num("1"), Unit: UnitDay}},
				Time:       TimeGroup{Present: true, Hours: "02", Minutes: "03", Seconds: num("04")},
			},
		},
		{
			src: "-1 days +02:03",
			expected: IntervalCaptures{
				Dialect:    TraditionalWithTime,
				Quantities: []Quantity{{Value: num("-1"), Unit: UnitDay}},
				Time:       TimeGroup{Present: true, Sign: '+', Hours: "02", Minutes: "03"},
			},
		},
		{
			src: "1:30.5",
			expected: IntervalCaptures{
				Dialect: TraditionalWithTime,
				Time:    TimeGroup{Present: true, Minutes: "1", Seconds: num("30.5")},
			},
		},
		{
			src: "2 years 3 mons",
			expected: IntervalCaptures{
				Dialect: Traditional,
				Quantities: []Quantity{
					{Value: num("2"), Unit: UnitYear},
					{Value: num("3"), Unit: UnitMonth},
				},
			},
		},
		{
			src: "@ 1 HOUR ago",
			expected: IntervalCaptures{
				Dialect:    Traditional,
				Quantities: []Quantity{{Value: num("1"), Unit: UnitHour}},
				Ago:        true,
			},
		},
		{
			src: "1.5weeks 5",
			expected: IntervalCaptures{
				Dialect: Traditional,
				Quantities: []Quantity{
					{Value: num("1.5"), Unit: UnitWeek},
					{Value: num("5"), Unit: UnitSecond},
				},
			},
		},
		{
			src: "P1Y2M3DT4H5M6.5S",
			expected: IntervalCaptures{
				Dialect: ISODesignator,
				Quantities: []Quantity{
					{Value: num("1"), Unit: UnitYear},
					{Value: num("2"), Unit: UnitMonth},
					{Value: num("3"), Unit: UnitDay},
					{Value: num("4"), Unit: UnitHour},
					{Value: num("5"), Unit: UnitMinute},
					{Value: num("6.5"), Unit: UnitSecond},
				},
			},
		},
		{
			src: "P00010203T040506",
			expected: IntervalCaptures{
				Dialect: ISOBasic,
				Quantities: []Quantity{
					{Value: num("0001"), Unit: UnitYear},
					{Value: num("02"), Unit: UnitMonth},
					{Value: num("03"), Unit: UnitDay},
					{Value: num("04"), Unit: UnitHour},
					{Value: num("05"), Unit: UnitMinute},
					{Value: num("06"), Unit: UnitSecond},
				},
			},
		},
		{
			src: "P0001-02-03T04:05:06.5",
			expected: IntervalCaptures{
				Dialect: ISOExtended,
				Quantities: []Quantity{
					{Value: num("0001"), Unit: UnitYear},
					{Value: num("02"), Unit: UnitMonth},
					{Value: num("03"), Unit: UnitDay},
					{Value: num("04"), Unit: UnitHour},
					{Value: num("05"), Unit: UnitMinute},
					{Value: num("06.5"), Unit: UnitSecond},
				},
			},
		},
		{
			src: "-1-2 3 4:05:06",
			expected: IntervalCaptures{
				Dialect:   SQLCompound,
				CarrySign: true,
				Quantities: []Quantity{
					{Value: num("-1"), Unit: UnitYear},
					{Value: num("-2"), Unit: UnitMonth},
					{Value: num("3"), Unit: UnitDay},
				},
				Time: TimeGroup{Present: true, Hours: "4", Minutes: "05", Seconds: num("06")},
			},
		},
		{
			src: "-1 2:03:04",
			expected: IntervalCaptures{
				Dialect:    SQLCompound,
				CarrySign:  true,
				Quantities: []Quantity{{Value: num("-1"), Unit: UnitDay}},
				Time:       TimeGroup{Present: true, Hours: "2", Minutes: "03", Seconds: num("04")},
			},
		},
		{
			src: "1-2",
			expected: IntervalCaptures{
				Dialect:   SQLSingle,
				CarrySign: true,
				Quantities: []Quantity{
					{Value: num("1"), Unit: UnitYear},
					{Value: num("2"), Unit: UnitMonth},
				},
			},
		},
	}

	for i, tt := range tests {
		c, ok := ParseInterval(tt.src)
		require.Truef(t, ok, "%d. %q", i, tt.src)
		if diff := cmp.Diff(tt.expected, c); diff != "" {
			t.Errorf("%d. %q: captures mismatch (-want +got):\n%s", i, tt.src, diff)
		}
	}
}

func TestParseIntervalRejects(t *testing.T) {
	for _, src := range []string{
		"",
		"garbage",
		"1 fortnight",
		"P",
		"PT",
		"P.Y0M3DT4H5M6S",
		"P1D2Y",
		"P1DT",
		"P0001-02-03.5T04",
		"1 2",
		"1 day 01:00 02:00",
		"ago 1 day ago",
		"1 day ago 2 hours",
	} {
		_, ok := ParseInterval(src)
		assert.Falsef(t, ok, "%q should not match", src)
	}
}

func TestParseIntervalDesignatorMinuteVersusMonth(t *testing.T) {
	c, ok := ParseInterval("P1MT1M")
	require.True(t, ok)
	require.Len(t, c.Quantities, 2)
	assert.Equal(t, UnitMonth, c.Quantities[0].Unit)
	assert.Equal(t, UnitMinute, c.Quantities[1].Unit)
}

func TestParseIntervalBasicSignAppliesToPart(t *testing.T) {
	c, ok := ParseInterval("P-00010203T040506")
	require.True(t, ok)
	assert.Equal(t, ISOBasic, c.Dialect)
	for _, q := range c.Quantities[:3] {
		assert.True(t, q.Value.Negative(), q.Unit.String())
	}
	for _, q := range c.Quantities[3:] {
		assert.False(t, q.Value.Explicit(), q.Unit.String())
	}
}

func TestLookupUnit(t *testing.T) {
	tests := []struct {
		word string
		unit Unit
	}{
		{"millennia", UnitMillennium},
		{"Centuries", UnitCentury},
		{"decs", UnitDecade},
		{"YRS", UnitYear},
		{"mon", UnitMonth},
		{"w", UnitWeek},
		{"d", UnitDay},
		{"hr", UnitHour},
		{"m", UnitMinute},
		{"secs", UnitSecond},
		{"msec", UnitMillisecond},
		{"usec", UnitMicrosecond},
	}
	for _, tt := range tests {
		u, ok := LookupUnit(tt.word)
		require.Truef(t, ok, tt.word)
		assert.Equal(t, tt.unit, u, tt.word)
	}
	_, ok := LookupUnit("fortnight")
	assert.False(t, ok)
}

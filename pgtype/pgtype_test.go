package pgtype_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgtemporal/pgtemporal/pgtype"
)

func requireCode(t *testing.T, err error, code pgtype.ErrorCode) *pgtype.Error {
	t.Helper()
	var pgErr *pgtype.Error
	require.ErrorAs(t, err, &pgErr)
	require.Equal(t, code, pgErr.Code, pgErr.Message)
	return pgErr
}

type recordingTracer struct {
	mu     sync.Mutex
	starts []pgtype.TraceDecodeStartData
	ends   []pgtype.TraceDecodeEndData
}

type traceCtxKey struct{}

func (r *recordingTracer) TraceDecodeStart(ctx context.Context, _ *pgtype.Map, data pgtype.TraceDecodeStartData) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, data)
	return context.WithValue(ctx, traceCtxKey{}, len(r.starts))
}

func (r *recordingTracer) TraceDecodeEnd(ctx context.Context, _ *pgtype.Map, data pgtype.TraceDecodeEndData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx.Value(traceCtxKey{}) == nil {
		panic("TraceDecodeEnd did not receive the context returned by TraceDecodeStart")
	}
	r.ends = append(r.ends, data)
}

func TestMapTypeLookup(t *testing.T) {
	m := pgtype.NewMap()

	tests := []struct {
		name string
		oid  pgtype.OID
	}{
		{"date", pgtype.DateOID},
		{"interval", pgtype.IntervalOID},
		{"time", pgtype.TimeOID},
		{"timetz", pgtype.TimetzOID},
		{"timestamp", pgtype.TimestampOID},
		{"timestamptz", pgtype.TimestamptzOID},
		{"daterange", pgtype.DateRangeOID},
		{"int4range", pgtype.Int4RangeOID},
		{"int8range", pgtype.Int8RangeOID},
		{"numrange", pgtype.NumrangeOID},
		{"tsrange", pgtype.TsrangeOID},
		{"tstzrange", pgtype.TstzrangeOID},
	}

	for _, tt := range tests {
		byOID, ok := m.TypeForOID(tt.oid)
		require.Truef(t, ok, "%s", tt.name)
		byName, ok := m.TypeForName(tt.name)
		require.Truef(t, ok, "%s", tt.name)
		assert.Same(t, byOID, byName)
	}

	_, ok := m.TypeForOID(25)
	assert.False(t, ok)
}

func TestMapDecodeText(t *testing.T) {
	m := pgtype.NewMap()
	ctx := context.Background()

	v, err := m.DecodeText(ctx, pgtype.IntervalOID, "1 day 02:00:00")
	require.NoError(t, err)
	require.IsType(t, pgtype.Interval{}, v)
	assert.Equal(t, "1 day 2 hours", v.(pgtype.Interval).String())

	v, err = m.DecodeText(ctx, pgtype.Int4RangeOID, "[1,5)")
	require.NoError(t, err)
	require.IsType(t, pgtype.Range[int32]{}, v)
	assert.True(t, v.(pgtype.Range[int32]).Contains(4))

	v, err = m.DecodeText(ctx, pgtype.DateOID, "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, pgtype.MustDate(pgtype.Text("2024-02-29")), v)

	_, err = m.DecodeText(ctx, pgtype.DateOID, "2023-02-29")
	requireCode(t, err, pgtype.NumberOutOfRange)

	_, err = m.DecodeText(ctx, 25, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown oid 25")
}

func TestMapDecodeBinary(t *testing.T) {
	m := pgtype.NewMap()

	v, err := m.DecodeBinary(context.Background(), pgtype.DateOID, []byte{0, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, "2000-01-02", v.(pgtype.Date).Format(pgtype.DateTimeStylePOSIX))

	v, err = m.DecodeBinary(context.Background(), pgtype.Int4RangeOID, []byte{1})
	require.NoError(t, err)
	assert.True(t, v.(pgtype.Range[int32]).IsEmpty())
}

func TestMapEncodeText(t *testing.T) {
	m := pgtype.NewMap()

	iv := pgtype.MustInterval(pgtype.Text("1 day 2 hours"))
	s, err := m.EncodeText(iv, "iso_short")
	require.NoError(t, err)
	assert.Equal(t, "P1DT2H", s)

	s, err = m.EncodeText(iv, "")
	require.NoError(t, err)
	assert.Equal(t, "1 day 2 hours", s)

	d := pgtype.MustDate(pgtype.Text("2024-02-29"))
	s, err = m.EncodeText(d, "SQL")
	require.NoError(t, err)
	assert.Equal(t, "02/29/2024", s)

	s, err = m.EncodeText(d, "postgresql-short")
	require.NoError(t, err)
	assert.Equal(t, "Thu Feb 29 2024", s)

	s, err = m.EncodeText(pgtype.Int4RangeCodec.Must(pgtype.Positional{1, 5}), "sql")
	require.NoError(t, err)
	assert.Equal(t, "[1,5)", s)

	_, err = m.EncodeText(iv, "fancy")
	requireCode(t, err, pgtype.InvalidString)

	_, err = m.EncodeText(42, "")
	requireCode(t, err, pgtype.InvalidType)
}

func TestMapEncodeBinary(t *testing.T) {
	m := pgtype.NewMap()

	buf, err := m.EncodeBinary(pgtype.MustDate(pgtype.Text("2000-01-02")), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, buf)

	buf, err = m.EncodeBinary(pgtype.Int4RangeCodec.Empty(), []byte{9})
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 1}, buf)

	_, err = m.EncodeBinary("text", nil)
	assert.Error(t, err)
}

func TestMapTracer(t *testing.T) {
	tracer := &recordingTracer{}
	m := pgtype.NewMap()
	m.Tracer = tracer

	_, err := m.DecodeText(context.Background(), pgtype.TimeOID, "12:00:00")
	require.NoError(t, err)
	_, err = m.DecodeBinary(context.Background(), pgtype.DateOID, []byte{0xff})
	require.Error(t, err)

	require.Len(t, tracer.starts, 2)
	require.Len(t, tracer.ends, 2)

	assert.Equal(t, pgtype.TraceDecodeStartData{OID: pgtype.TimeOID, TypeName: "time", Src: "12:00:00"}, tracer.starts[0])
	assert.NoError(t, tracer.ends[0].Err)
	assert.IsType(t, pgtype.Time{}, tracer.ends[0].Value)

	assert.True(t, tracer.starts[1].Binary)
	assert.Equal(t, "ff", tracer.starts[1].Src)
	assert.Error(t, tracer.ends[1].Err)
}

func TestMapConcurrentRegister(t *testing.T) {
	m := pgtype.NewMap()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.RegisterType(&pgtype.Type{Name: "custom", OID: pgtype.OID(100000 + i), Codec: pgtype.CodecForRange(pgtype.Int4RangeCodec)})
			_, _ = m.DecodeText(context.Background(), pgtype.IntervalOID, "1 hour")
		}(i)
	}
	wg.Wait()

	_, ok := m.TypeForName("custom")
	assert.True(t, ok)
}

func TestErrorIs(t *testing.T) {
	_, err := pgtype.ParseInterval("nonsense")
	assert.True(t, errors.Is(err, &pgtype.Error{Code: pgtype.InvalidString}))
	assert.False(t, errors.Is(err, &pgtype.Error{Code: pgtype.InvalidType}))

	_, err = pgtype.DateFrom(pgtype.Fields{"year": 2023, "month": 13, "day": 1})
	assert.True(t, errors.Is(err, &pgtype.Error{Code: pgtype.NumberOutOfRange}))
	assert.True(t, errors.Is(err, &pgtype.Error{Code: pgtype.NumberOutOfRange, Reason: pgtype.ReasonTooBig}))
	assert.False(t, errors.Is(err, &pgtype.Error{Code: pgtype.NumberOutOfRange, Reason: pgtype.ReasonTooSmall}))
}

func TestStyleNames(t *testing.T) {
	tests := []struct {
		name  string
		style pgtype.IntervalStyle
	}{
		{"PostgreSQL", pgtype.IntervalStylePostgreSQL},
		{"postgresql_short", pgtype.IntervalStylePostgreSQLShort},
		{"PostgreSQL-Time-Short", pgtype.IntervalStylePostgreSQLTimeShort},
		{"iso", pgtype.IntervalStyleISO},
		{" ISOExtended ", pgtype.IntervalStyleISOExtended},
		{"sql", pgtype.IntervalStyleSQL},
	}

	for _, tt := range tests {
		s, err := pgtype.ParseIntervalStyle(tt.name)
		require.NoErrorf(t, err, "%q", tt.name)
		assert.Equalf(t, tt.style, s, "%q", tt.name)
	}

	ds, err := pgtype.ParseDateTimeStyle("iso_duration_basic")
	require.NoError(t, err)
	assert.Equal(t, pgtype.DateTimeStyleISODurationBasic, ds)
	assert.Equal(t, "ISODurationBasic", ds.String())

	_, err = pgtype.ParseDateTimeStyle("klingon")
	requireCode(t, err, pgtype.InvalidString)
}

func TestMapTypes(t *testing.T) {
	types := pgtype.NewMap().Types()
	require.Len(t, types, 12)
	assert.Equal(t, "date", types[0].Name)
	assert.Equal(t, "int8range", types[len(types)-1].Name)
}

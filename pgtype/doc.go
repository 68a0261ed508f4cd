// Package pgtype converts between Go and PostgreSQL temporal, interval and range values.
/*
The value types are Interval, Timestamp, TimestampTZ, Date, Time and TimeTZ. Each is an immutable value built by an
XFrom constructor from an Input: Text in any dialect PostgreSQL accepts, Fields keyed by field name, Positional fields
in order, or an existing value. ParseX is shorthand for XFrom(Text(s)) and MustX panics where XFrom would return an
error. Every failure is a *Error carrying an ErrorCode.

Style Support

Interval.Format takes an IntervalStyle and the date and time types take a DateTimeStyle. ParseIntervalStyle and
ParseDateTimeStyle accept free form style names such as "postgresql_short" or "ISO-Basic".

	iv := pgtype.MustInterval(pgtype.Fields{"years": 2022, "months": 9, "days": 2})
	iv.Format(pgtype.IntervalStyleISOShort) // P2022Y9M2D

Range Support

Range[T] is a bounded range over any element type with an ElementCodec[T]. RangeCodec values for the built in
PostgreSQL range types are provided, and NewRangeCodec builds one for a custom element codec.

	r, err := pgtype.Int4RangeCodec.Parse("[1,5)")

Map

Map is a registry of the supported types by OID. Map.DecodeText and Map.DecodeBinary decode PostgreSQL wire values and
report every decode to an optional DecodeTracer.

database/sql, JSON and Binary Support

All values implement sql.Scanner, driver.Valuer, json.Marshaler and json.Unmarshaler. EncodeBinary and the DecodeBinaryX
functions speak the PostgreSQL binary format.

Now

The special inputs now, today, tomorrow and yesterday read the clock set with SetClock, which defaults to the real
clock.
*/
package pgtype

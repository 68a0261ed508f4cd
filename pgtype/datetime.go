package pgtype

import (
	"time"

	"github.com/pgtemporal/pgtemporal/internal/grammar"
	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

// Seconds between the Unix epoch and PostgreSQL's epoch of 2000-01-01.
const pgEpochUnix = 946684800

var (
	dateFields = []fieldSpec{
		{name: "year", required: true},
		{name: "month", required: true},
		{name: "day", required: true},
	}
	timeFields = []fieldSpec{
		{name: "hour", required: true},
		{name: "minute", required: true},
		{name: "second", required: true, fractional: true},
	}
	offsetFields = []fieldSpec{
		{name: "offsetHour", required: true},
		{name: "offsetMinute", required: true},
		{name: "offsetDirection", required: true},
	}
)

func concatFields(groups ...[]fieldSpec) []fieldSpec {
	var out []fieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// parseDateTimeText runs the date/time grammar and normalizer. Clock types
// try the time-of-day dialects first.
func parseDateTimeText(typeName, src string, clockFirst bool) (normalize.DateTime, error) {
	var c grammar.DateTimeCaptures
	var ok bool
	if clockFirst {
		c, ok = grammar.ParseClock(src)
	} else {
		c, ok = grammar.ParseDateTime(src)
	}
	if !ok {
		return normalize.DateTime{}, invalidStringError(typeName, src)
	}
	dt, err := normalize.NormalizeDateTime(c, now())
	if err != nil {
		return normalize.DateTime{}, fromNormalizeError(typeName, src, err)
	}
	return dt, nil
}

func dateFromNormalized(typeName, src string, dt normalize.DateTime) (Date, error) {
	if !dt.HasDate {
		return Date{}, invalidStringError(typeName, src)
	}
	if err := normalize.ValidateDate(dt.Year, dt.Month, dt.Day); err != nil {
		return Date{}, fromNormalizeError(typeName, src, err)
	}
	return Date{year: int(dt.Year), month: int(dt.Month), day: int(dt.Day)}, nil
}

func timeFromNormalized(typeName, src string, dt normalize.DateTime) (Time, error) {
	if err := normalize.ValidateClock(dt.Hour, dt.Minute, dt.Second, dt.Microsecond); err != nil {
		return Time{}, fromNormalizeError(typeName, src, err)
	}
	return Time{hour: int(dt.Hour), minute: int(dt.Minute), second: int(dt.Second), micro: int(dt.Microsecond)}, nil
}

func offsetFromNormalized(dt normalize.DateTime) Offset {
	if !dt.HasZone {
		return UTC
	}
	return offsetFromSeconds(dt.ZoneOffset)
}

func dateFromFieldValues(typeName string, f Fields) (Date, error) {
	year, e := wholeArg(typeName, "year", f["year"])
	if e != nil {
		return Date{}, e
	}
	month, e := wholeArg(typeName, "month", f["month"])
	if e != nil {
		return Date{}, e
	}
	day, e := wholeArg(typeName, "day", f["day"])
	if e != nil {
		return Date{}, e
	}
	if err := normalize.ValidateDate(year, month, day); err != nil {
		return Date{}, fromNormalizeError(typeName, "", err)
	}
	return Date{year: int(year), month: int(month), day: int(day)}, nil
}

func timeFromFieldValues(typeName string, f Fields) (Time, error) {
	hour, e := wholeArg(typeName, "hour", f["hour"])
	if e != nil {
		return Time{}, e
	}
	minute, e := wholeArg(typeName, "minute", f["minute"])
	if e != nil {
		return Time{}, e
	}
	second, micro, e := secondsArg(typeName, "second", f["second"])
	if e != nil {
		return Time{}, e
	}
	if err := normalize.ValidateClock(hour, minute, second, micro); err != nil {
		return Time{}, fromNormalizeError(typeName, "", err)
	}
	return Time{hour: int(hour), minute: int(minute), second: int(second), micro: int(micro)}, nil
}

func offsetFromFieldValues(typeName string, f Fields) (Offset, error) {
	hour, e := wholeArg(typeName, "offsetHour", f["offsetHour"])
	if e != nil {
		return Offset{}, e
	}
	minute, e := wholeArg(typeName, "offsetMinute", f["offsetMinute"])
	if e != nil {
		return Offset{}, e
	}
	dir, e := directionArg(typeName, "offsetDirection", f["offsetDirection"])
	if e != nil {
		return Offset{}, e
	}
	if err := normalize.ValidateOffset(hour, minute); err != nil {
		return Offset{}, fromNormalizeError(typeName, "", err)
	}
	return NewOffset(int(hour), int(minute), dir)
}

// fieldsInput resolves Fields and Positional inputs against specs.
func fieldsInput(typeName string, in Input, specs []fieldSpec) (Fields, error) {
	switch v := in.(type) {
	case Fields:
		if e := checkKeys(typeName, v, specs); e != nil {
			return nil, e
		}
		return v, nil
	case Positional:
		f, e := positionalFields(typeName, v, specs)
		if e != nil {
			return nil, e
		}
		return f, nil
	}
	return nil, invalidTypeError(typeName, in)
}

// dateTimeParts is the common shape the formatter works on.
type dateTimeParts struct {
	hasDate bool
	date    Date
	hasTime bool
	time    Time
	zone    *Offset
}

func (p dateTimeParts) format(style DateTimeStyle) string {
	if ivStyle, ok := style.durationStyle(); ok {
		return intervalFromTime(
			int64(p.date.year), int64(p.date.month), int64(p.date.day),
			int64(p.time.hour), int64(p.time.minute), int64(p.time.second), int64(p.time.micro),
		).Format(ivStyle)
	}

	var date, clock, sep, zone string
	switch style {
	case DateTimeStylePOSIX:
		date, sep = p.isoDate(), " "
		clock = p.hms() + fractionText(int64(p.time.micro))
		zone = p.isoZone()
	case DateTimeStyleSQL:
		date, sep = p.sqlDate(), " "
		clock = p.hms() + p.millisFraction()
		zone = p.isoZone()
	case DateTimeStylePostgreSQL, DateTimeStylePostgreSQLShort:
		date, sep = p.verboseDate(style == DateTimeStylePostgreSQLShort), " "
		clock = p.hms() + p.millisFraction()
		zone = " GMT"
		if p.zone != nil {
			zone += p.zone.compact()
		}
	default:
		date, sep = p.isoDate(), "T"
		clock = p.hms() + p.millisFraction()
		zone = p.isoZone()
		switch style {
		case DateTimeStyleISODate:
			if p.hasDate {
				return date
			}
			return clock + zone
		case DateTimeStyleISOTime:
			if p.hasTime {
				return clock + zone
			}
			return date
		}
	}

	switch {
	case !p.hasTime:
		return date
	case !p.hasDate:
		return clock + zone
	}
	return date + sep + clock + zone
}

func (p dateTimeParts) isoDate() string {
	d := p.date
	return padUint(uint64(d.year), 4) + "-" + padUint(uint64(d.month), 2) + "-" + padUint(uint64(d.day), 2)
}

func (p dateTimeParts) sqlDate() string {
	d := p.date
	return padUint(uint64(d.month), 2) + "/" + padUint(uint64(d.day), 2) + "/" + padUint(uint64(d.year), 4)
}

func (p dateTimeParts) verboseDate(short bool) string {
	d := p.date
	weekday := d.Weekday().String()
	month := time.Month(d.month).String()
	if short {
		weekday, month = weekday[:3], month[:3]
	}
	return weekday + " " + month + " " + padUint(uint64(d.day), 2) + " " + padUint(uint64(d.year), 4)
}

func (p dateTimeParts) hms() string {
	t := p.time
	return padUint(uint64(t.hour), 2) + ":" + padUint(uint64(t.minute), 2) + ":" + padUint(uint64(t.second), 2)
}

// millisFraction truncates to milliseconds and drops a zero fraction.
func (p dateTimeParts) millisFraction() string {
	ms := p.time.micro / 1000
	if ms == 0 {
		return ""
	}
	return "." + padUint(uint64(ms), 3)
}

func (p dateTimeParts) isoZone() string {
	if p.zone == nil {
		return ""
	}
	return p.zone.String()
}

// pgMicros returns microseconds since 2000-01-01 00:00:00 for the given wall
// time. Every supported timestamp fits an int64.
func pgMicros(d Date, t Time) int64 {
	sec := time.Date(d.year, time.Month(d.month), d.day, t.hour, t.minute, t.second, 0, time.UTC).Unix()
	return (sec-pgEpochUnix)*microsecondsPerSecond + int64(t.micro)
}

// fromPGMicros splits microseconds since 2000-01-01 into wall fields.
func fromPGMicros(m int64) (Date, Time) {
	sec := floorDiv(m, microsecondsPerSecond)
	micro := m - sec*microsecondsPerSecond
	tt := time.Unix(sec+pgEpochUnix, 0).UTC()
	return Date{year: tt.Year(), month: int(tt.Month()), day: tt.Day()},
		Time{hour: tt.Hour(), minute: tt.Minute(), second: tt.Second(), micro: int(micro)}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// unixMillis converts microseconds since 2000-01-01 into Unix milliseconds.
func unixMillis(pg int64) int64 {
	return floorDiv(pg, 1000) + pgEpochUnix*1000
}

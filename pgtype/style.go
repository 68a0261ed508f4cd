package pgtype

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// IntervalStyle selects an interval output format.
type IntervalStyle int

const (
	IntervalStylePostgreSQL IntervalStyle = iota
	IntervalStylePostgreSQLShort
	IntervalStylePostgreSQLTime
	IntervalStylePostgreSQLTimeShort
	IntervalStyleISO
	IntervalStyleISOShort
	// IntervalStyleISOBasic writes one sign per date part and time part. It
	// is lossy: when a part mixes signs, every field of the part takes the
	// sign of its first non-zero field.
	IntervalStyleISOBasic
	IntervalStyleISOExtended
	IntervalStyleSQL
)

var intervalStyleNames = []string{
	IntervalStylePostgreSQL:          "PostgreSQL",
	IntervalStylePostgreSQLShort:     "PostgreSQLShort",
	IntervalStylePostgreSQLTime:      "PostgreSQLTime",
	IntervalStylePostgreSQLTimeShort: "PostgreSQLTimeShort",
	IntervalStyleISO:                 "ISO",
	IntervalStyleISOShort:            "ISOShort",
	IntervalStyleISOBasic:            "ISOBasic",
	IntervalStyleISOExtended:         "ISOExtended",
	IntervalStyleSQL:                 "SQL",
}

func (s IntervalStyle) String() string {
	if s < 0 || int(s) >= len(intervalStyleNames) {
		return "IntervalStyle(invalid)"
	}
	return intervalStyleNames[s]
}

// DateTimeStyle selects a timestamp, date or time output format.
type DateTimeStyle int

const (
	DateTimeStyleISO DateTimeStyle = iota
	DateTimeStyleISODate
	DateTimeStyleISOTime
	DateTimeStyleISODuration
	DateTimeStyleISODurationShort
	DateTimeStyleISODurationBasic
	DateTimeStyleISODurationExtended
	DateTimeStylePOSIX
	DateTimeStylePostgreSQL
	DateTimeStylePostgreSQLShort
	DateTimeStyleSQL
)

var dateTimeStyleNames = []string{
	DateTimeStyleISO:                 "ISO",
	DateTimeStyleISODate:             "ISODate",
	DateTimeStyleISOTime:             "ISOTime",
	DateTimeStyleISODuration:         "ISODuration",
	DateTimeStyleISODurationShort:    "ISODurationShort",
	DateTimeStyleISODurationBasic:    "ISODurationBasic",
	DateTimeStyleISODurationExtended: "ISODurationExtended",
	DateTimeStylePOSIX:               "POSIX",
	DateTimeStylePostgreSQL:          "PostgreSQL",
	DateTimeStylePostgreSQLShort:     "PostgreSQLShort",
	DateTimeStyleSQL:                 "SQL",
}

func (s DateTimeStyle) String() string {
	if s < 0 || int(s) >= len(dateTimeStyleNames) {
		return "DateTimeStyle(invalid)"
	}
	return dateTimeStyleNames[s]
}

// styleKey folds case and separators so "postgresql_short", "PostgreSQL-Short"
// and "PostgreSQLShort" compare equal.
func styleKey(name string) string {
	return strings.ReplaceAll(strcase.ToSnake(strings.TrimSpace(name)), "_", "")
}

// ParseIntervalStyle resolves a free-form style name.
func ParseIntervalStyle(name string) (IntervalStyle, error) {
	key := styleKey(name)
	for i, n := range intervalStyleNames {
		if styleKey(n) == key {
			return IntervalStyle(i), nil
		}
	}
	return 0, newError(InvalidString, "unknown interval style %q", name)
}

// ParseDateTimeStyle resolves a free-form style name.
func ParseDateTimeStyle(name string) (DateTimeStyle, error) {
	key := styleKey(name)
	for i, n := range dateTimeStyleNames {
		if styleKey(n) == key {
			return DateTimeStyle(i), nil
		}
	}
	return 0, newError(InvalidString, "unknown date/time style %q", name)
}

func (s DateTimeStyle) durationStyle() (IntervalStyle, bool) {
	switch s {
	case DateTimeStyleISODuration:
		return IntervalStyleISO, true
	case DateTimeStyleISODurationShort:
		return IntervalStyleISOShort, true
	case DateTimeStyleISODurationBasic:
		return IntervalStyleISOBasic, true
	case DateTimeStyleISODurationExtended:
		return IntervalStyleISOExtended, true
	}
	return 0, false
}

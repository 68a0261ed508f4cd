package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pgtemporal/pgtemporal/internal/grammar"
)

// Calendar bounds shared by every date-bearing type.
const (
	MinYear = 1
	MaxYear = 294276
)

// DateTime holds validated-as-parsed calendar and clock fields. Fields that
// the input did not mention are zero and the matching Has flag is false.
type DateTime struct {
	HasDate bool
	Year    int64
	Month   int64
	Day     int64

	HasTime     bool
	Hour        int64
	Minute      int64
	Second      int64
	Microsecond int64

	HasZone bool
	// ZoneOffset is in seconds east of UTC.
	ZoneOffset int
}

// NormalizeDateTime converts captures into numeric fields. Named zones are
// resolved against the written wall time; specials are resolved against now.
// The result is not range checked; callers validate the parts they keep.
func NormalizeDateTime(c grammar.DateTimeCaptures, now time.Time) (DateTime, error) {
	switch c.Dialect {
	case grammar.Special:
		return special(c.Special, now)
	case grammar.ISODuration:
		return fromDuration(c.Duration)
	}

	var dt DateTime
	var err error
	if c.HasDate {
		dt.HasDate = true
		if dt.Year, err = atoi("year", c.Year); err != nil {
			return DateTime{}, err
		}
		if dt.Month, err = atoi("month", c.Month); err != nil {
			return DateTime{}, err
		}
		if dt.Day, err = atoi("day", c.Day); err != nil {
			return DateTime{}, err
		}
	}
	if c.HasTime {
		dt.HasTime = true
		if dt.Hour, err = atoi("hour", c.Hour); err != nil {
			return DateTime{}, err
		}
		if dt.Minute, err = atoi("minute", c.Minute); err != nil {
			return DateTime{}, err
		}
		if c.Second.Int != "" {
			if dt.Second, err = atoi("second", c.Second.Int); err != nil {
				return DateTime{}, err
			}
		}
		if dt.Microsecond, err = FractionMicros(c.Second.Frac); err != nil {
			return DateTime{}, err
		}
		// Seven fractional digits can round a whole second up.
		if dt.Microsecond == 1000000 {
			dt.Microsecond = 999999
		}
	}
	if c.Zone.Present {
		dt.HasZone = true
		if dt.ZoneOffset, err = ResolveZone(c.Zone, dt); err != nil {
			return DateTime{}, err
		}
	}
	return dt, nil
}

func atoi(field, digits string) (int64, error) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrFieldOverflow, field, digits)
	}
	return v, nil
}

func fromDuration(c grammar.IntervalCaptures) (DateTime, error) {
	iv, err := NormalizeInterval(c)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{
		HasDate:     iv.Years != 0 || iv.Months != 0 || iv.Days != 0,
		Year:        iv.Years,
		Month:       iv.Months,
		Day:         iv.Days,
		HasTime:     true,
		Hour:        iv.Hours,
		Minute:      iv.Minutes,
		Second:      iv.Seconds,
		Microsecond: iv.Milliseconds*1000 + iv.Microseconds,
	}, nil
}

func special(name string, now time.Time) (DateTime, error) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var t time.Time
	switch name {
	case "epoch":
		t = time.Unix(0, 0).UTC()
	case "now":
		t = now
	case "today":
		t = midnight
	case "tomorrow":
		t = midnight.AddDate(0, 0, 1)
	case "yesterday":
		t = midnight.AddDate(0, 0, -1)
	default:
		return DateTime{}, fmt.Errorf("unknown special value %q", name)
	}
	return FromTime(t), nil
}

// FromTime copies the fields of t, keeping its zone offset.
func FromTime(t time.Time) DateTime {
	_, offset := t.Zone()
	return DateTime{
		HasDate:     true,
		Year:        int64(t.Year()),
		Month:       int64(t.Month()),
		Day:         int64(t.Day()),
		HasTime:     true,
		Hour:        int64(t.Hour()),
		Minute:      int64(t.Minute()),
		Second:      int64(t.Second()),
		Microsecond: int64(t.Nanosecond() / 1000),
		HasZone:     true,
		ZoneOffset:  offset,
	}
}

// DaysIn returns the number of days in month of the proleptic Gregorian year.
func DaysIn(year, month int64) int64 {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// ValidateDate checks year, month and day against the supported calendar.
func ValidateDate(year, month, day int64) error {
	if err := checkRange("year", year, MinYear, MaxYear); err != nil {
		return err
	}
	if err := checkRange("month", month, 1, 12); err != nil {
		return err
	}
	return checkRange("day", day, 1, DaysIn(year, month))
}

// ValidateClock checks a wall clock reading.
func ValidateClock(hour, minute, second, micro int64) error {
	if err := checkRange("hour", hour, 0, 23); err != nil {
		return err
	}
	if err := checkRange("minute", minute, 0, 59); err != nil {
		return err
	}
	if err := checkRange("second", second, 0, 59); err != nil {
		return err
	}
	return checkRange("microsecond", micro, 0, 999999)
}

// ValidateOffset checks a UTC offset given as hours and minutes.
func ValidateOffset(hour, minute int64) error {
	if err := checkRange("offset hour", hour, 0, 23); err != nil {
		return err
	}
	return checkRange("offset minute", minute, 0, 59)
}

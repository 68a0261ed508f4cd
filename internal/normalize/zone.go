package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	// Embedded zone data keeps named zones resolvable on hosts without
	// /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/pgtemporal/pgtemporal/internal/grammar"
)

// abbreviations follows the PostgreSQL "Default" timezone abbreviation set
// for the names that appear in practice. Values are seconds east of UTC.
var abbreviations = map[string]int{
	"z":    0,
	"ut":   0,
	"utc":  0,
	"gmt":  0,
	"wet":  0,
	"west": 1 * 3600,
	"bst":  1 * 3600,
	"cet":  1 * 3600,
	"cest": 2 * 3600,
	"eet":  2 * 3600,
	"eest": 3 * 3600,
	"ist":  2 * 3600,
	"msk":  3 * 3600,
	"awst": 8 * 3600,
	"jst":  9 * 3600,
	"kst":  9 * 3600,
	"acst": 9*3600 + 1800,
	"aest": 10 * 3600,
	"aedt": 11 * 3600,
	"nzst": 12 * 3600,
	"nzdt": 13 * 3600,
	"hst":  -10 * 3600,
	"akst": -9 * 3600,
	"akdt": -8 * 3600,
	"pst":  -8 * 3600,
	"pdt":  -7 * 3600,
	"mst":  -7 * 3600,
	"mdt":  -6 * 3600,
	"cst":  -6 * 3600,
	"cdt":  -5 * 3600,
	"est":  -5 * 3600,
	"edt":  -4 * 3600,
	"ast":  -4 * 3600,
	"adt":  -3 * 3600,
	"nst":  -(3*3600 + 1800),
	"ndt":  -(2*3600 + 1800),
}

// ResolveZone returns the offset in seconds east of UTC for z. Region names
// are resolved at the wall time held in dt, so daylight saving is honored.
// Offsets are truncated to whole minutes.
func ResolveZone(z grammar.Zone, dt DateTime) (int, error) {
	if z.Numeric() {
		return numericOffset(z)
	}
	if off, ok := abbreviations[strings.ToLower(z.Name)]; ok {
		return off, nil
	}
	if !strings.Contains(z.Name, "/") {
		return 0, fmt.Errorf("%w: %q", ErrUnknownZone, z.Name)
	}
	loc, err := time.LoadLocation(z.Name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownZone, z.Name)
	}
	year, month, day := dt.Year, dt.Month, dt.Day
	if !dt.HasDate {
		year, month, day = 2000, 1, 1
	}
	t := time.Date(int(year), time.Month(month), int(day), int(dt.Hour), int(dt.Minute), int(dt.Second), 0, loc)
	_, off := t.Zone()
	return off / 60 * 60, nil
}

func numericOffset(z grammar.Zone) (int, error) {
	hour, err := strconv.ParseInt(z.Hour, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: offset %q", ErrFieldOverflow, z.Hour)
	}
	var minute int64
	if z.Minute != "" {
		if minute, err = strconv.ParseInt(z.Minute, 10, 64); err != nil {
			return 0, fmt.Errorf("%w: offset %q", ErrFieldOverflow, z.Minute)
		}
	}
	if err := ValidateOffset(hour, minute); err != nil {
		return 0, err
	}
	off := int(hour*3600 + minute*60)
	if z.Sign == '-' {
		off = -off
	}
	return off, nil
}

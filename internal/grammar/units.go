package grammar

// Unit identifies the unit a quantity was written in.
type Unit int

const (
	UnitNone Unit = iota
	UnitMillennium
	UnitCentury
	UnitDecade
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
)

var unitNames = [...]string{
	UnitNone:        "none",
	UnitMillennium:  "millennium",
	UnitCentury:     "century",
	UnitDecade:      "decade",
	UnitYear:        "year",
	UnitMonth:       "month",
	UnitWeek:        "week",
	UnitDay:         "day",
	UnitHour:        "hour",
	UnitMinute:      "minute",
	UnitSecond:      "second",
	UnitMillisecond: "millisecond",
	UnitMicrosecond: "microsecond",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return "unknown"
	}
	return unitNames[u]
}

// unitWords maps every spelling PostgreSQL accepts in traditional interval
// input to its unit. Keys are case folded.
var unitWords = map[string]Unit{
	"millennium": UnitMillennium, "millennia": UnitMillennium, "millenniums": UnitMillennium,
	"mil": UnitMillennium, "mils": UnitMillennium,

	"century": UnitCentury, "centuries": UnitCentury, "cent": UnitCentury, "c": UnitCentury,

	"decade": UnitDecade, "decades": UnitDecade, "dec": UnitDecade, "decs": UnitDecade,

	"year": UnitYear, "years": UnitYear, "y": UnitYear, "yr": UnitYear, "yrs": UnitYear,

	"month": UnitMonth, "months": UnitMonth, "mon": UnitMonth, "mons": UnitMonth,

	"week": UnitWeek, "weeks": UnitWeek, "w": UnitWeek,

	"day": UnitDay, "days": UnitDay, "d": UnitDay,

	"hour": UnitHour, "hours": UnitHour, "h": UnitHour, "hr": UnitHour, "hrs": UnitHour,

	"minute": UnitMinute, "minutes": UnitMinute, "m": UnitMinute, "min": UnitMinute, "mins": UnitMinute,

	"second": UnitSecond, "seconds": UnitSecond, "s": UnitSecond, "sec": UnitSecond, "secs": UnitSecond,

	"millisecond": UnitMillisecond, "milliseconds": UnitMillisecond, "ms": UnitMillisecond,
	"msec": UnitMillisecond, "msecs": UnitMillisecond, "msecond": UnitMillisecond, "mseconds": UnitMillisecond,

	"microsecond": UnitMicrosecond, "microseconds": UnitMicrosecond, "us": UnitMicrosecond,
	"usec": UnitMicrosecond, "usecs": UnitMicrosecond, "usecond": UnitMicrosecond, "useconds": UnitMicrosecond,
}

// LookupUnit resolves a unit word written in traditional interval syntax.
func LookupUnit(word string) (Unit, bool) {
	u, ok := unitWords[fold(word)]
	return u, ok
}

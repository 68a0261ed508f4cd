package grammar

import (
	"strconv"
	"strings"
)

// DateTimeDialect names the textual date/time grammar a capture came from.
type DateTimeDialect int

const (
	ISO8601 DateTimeDialect = iota + 1
	POSIX
	SQLDate
	PostgreSQLVerbose
	ISODuration
	Special
	Clock
)

func (d DateTimeDialect) String() string {
	switch d {
	case ISO8601:
		return "ISO 8601"
	case POSIX:
		return "POSIX"
	case SQLDate:
		return "SQL"
	case PostgreSQLVerbose:
		return "PostgreSQL verbose"
	case ISODuration:
		return "ISO 8601 duration"
	case Special:
		return "special"
	case Clock:
		return "clock"
	}
	return "unknown"
}

// Zone is a written time zone: a numeric offset or a name.
type Zone struct {
	Present bool
	Sign    byte
	Hour    string
	Minute  string
	Name    string
}

// Numeric reports whether the zone was written as an offset.
func (z Zone) Numeric() bool {
	return z.Present && z.Sign != 0
}

// DateTimeCaptures is the flat result of a successful date/time dialect match.
type DateTimeCaptures struct {
	Dialect DateTimeDialect

	HasDate bool
	Year    string
	Month   string
	Day     string

	// Weekday is -1 unless a day-of-week name was written.
	Weekday int

	HasTime bool
	Hour    string
	Minute  string
	Second  Number

	Zone Zone

	// Special holds the folded reserved word for the Special dialect.
	Special string

	// Duration holds the fields of an ISO 8601 duration spelling.
	Duration IntervalCaptures
}

type dateTimeDialect struct {
	dialect DateTimeDialect
	parse   func(sc *scanner) (DateTimeCaptures, bool)
}

var dateTimeDialects = []dateTimeDialect{
	{ISO8601, parseISO8601},
	{POSIX, parsePOSIX},
	{SQLDate, parseSQLDate},
	{PostgreSQLVerbose, parseVerbose},
}

// ParseDateTime tries the date/time dialects in priority order: ISO 8601,
// POSIX, SQL, PostgreSQL verbose, ISO 8601 durations and finally the special
// words.
func ParseDateTime(src string) (DateTimeCaptures, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return DateTimeCaptures{}, false
	}
	for _, d := range dateTimeDialects {
		sc := newScanner(src)
		c, ok := d.parse(sc)
		if ok && sc.eof() {
			c.Dialect = d.dialect
			return c, true
		}
	}
	if ic, ok := ParseISODuration(src); ok {
		return DateTimeCaptures{Dialect: ISODuration, Weekday: -1, Duration: ic}, true
	}
	return parseSpecial(src)
}

// ParseClock reads a time of day with an optional zone: HH:MM[:SS[.f]][zone]
// or the basic [T]HHMMSS[.f][zone]. Anything else falls back to
// ParseDateTime, which must then carry a time.
func ParseClock(src string) (DateTimeCaptures, bool) {
	src = strings.TrimSpace(src)
	sc := newScanner(src)
	if c, ok := parseClock(sc); ok {
		sc.skipSpaces()
		if !sc.eof() {
			z, zok := parseZone(sc)
			ok = zok && sc.eof()
			c.Zone = z
		}
		if ok {
			c.Dialect = Clock
			return c, true
		}
	}
	return ParseDateTime(src)
}

func parseClock(sc *scanner) (DateTimeCaptures, bool) {
	c := DateTimeCaptures{Weekday: -1, HasTime: true}
	start := sc.mark()
	if sc.accept('T') {
		if !parseBasicTime(sc, &c) {
			sc.reset(start)
			return DateTimeCaptures{}, false
		}
		return c, true
	}
	if parseExtendedTime(sc, &c) {
		return c, true
	}
	sc.reset(start)
	if parseBasicTime(sc, &c) && (atBoundary(sc) || sc.peek() == '+' || sc.peek() == '-' || isLetter(sc.peek())) {
		return c, true
	}
	sc.reset(start)
	return DateTimeCaptures{}, false
}

// parseExtendedTime reads HH:MM[:SS[.f]].
func parseExtendedTime(sc *scanner, c *DateTimeCaptures) bool {
	start := sc.mark()
	h := sc.digits()
	if len(h) < 1 || len(h) > 2 || !sc.accept(':') {
		sc.reset(start)
		return false
	}
	m, ok := sc.fixedDigits(2)
	if !ok {
		sc.reset(start)
		return false
	}
	c.HasTime, c.Hour, c.Minute = true, h, m
	if sc.accept(':') {
		s, ok := sc.fixedDigits(2)
		if !ok {
			sc.reset(start)
			return false
		}
		c.Second = Number{Int: s}
		if sc.accept('.') {
			c.Second.Point = true
			c.Second.Frac = sc.digits()
		}
	}
	return true
}

// parseBasicTime reads HHMM[SS[.f]].
func parseBasicTime(sc *scanner, c *DateTimeCaptures) bool {
	start := sc.mark()
	h, ok1 := sc.fixedDigits(2)
	m, ok2 := sc.fixedDigits(2)
	if !ok1 || !ok2 {
		sc.reset(start)
		return false
	}
	c.HasTime, c.Hour, c.Minute = true, h, m
	if s, ok := sc.fixedDigits(2); ok {
		c.Second = Number{Int: s}
		if sc.accept('.') {
			c.Second.Point = true
			c.Second.Frac = sc.digits()
		}
	}
	return !isDigit(sc.peek())
}

// parseISODate reads YYYY-MM-DD (extended) or YYYYMMDD (basic) and reports
// which form matched.
func parseISODate(sc *scanner, c *DateTimeCaptures) (basic bool, ok bool) {
	start := sc.mark()
	y := sc.digits()
	switch {
	case len(y) >= 4 && sc.peek() == '-':
		sc.accept('-')
		m, ok1 := sc.fixedDigits(2)
		if !ok1 || !sc.accept('-') {
			break
		}
		d, ok2 := sc.fixedDigits(2)
		if !ok2 {
			break
		}
		c.HasDate, c.Year, c.Month, c.Day = true, y, m, d
		return false, true
	case len(y) == 8:
		c.HasDate, c.Year, c.Month, c.Day = true, y[:4], y[4:6], y[6:]
		return true, true
	}
	sc.reset(start)
	return false, false
}

func parseISO8601(sc *scanner) (DateTimeCaptures, bool) {
	c := DateTimeCaptures{Weekday: -1}
	basic, ok := parseISODate(sc, &c)
	if !ok || !(sc.accept('T') || sc.accept('t')) {
		return DateTimeCaptures{}, false
	}
	if basic {
		ok = parseBasicTime(sc, &c)
	} else {
		ok = parseExtendedTime(sc, &c)
	}
	if !ok {
		return DateTimeCaptures{}, false
	}
	if !sc.eof() {
		sc.skipSpaces()
		z, ok := parseZone(sc)
		if !ok {
			return DateTimeCaptures{}, false
		}
		c.Zone = z
	}
	return c, true
}

// parseTrailingTime reads the optional " HH:MM[:SS[.f]] [zone]" tail shared by
// the POSIX and SQL dialects.
func parseTrailingTime(sc *scanner, c *DateTimeCaptures) bool {
	if sc.eof() {
		return true
	}
	if sc.skipSpaces() == 0 {
		return false
	}
	if !parseExtendedTime(sc, c) {
		return false
	}
	return parseTrailingZone(sc, c)
}

func parseTrailingZone(sc *scanner, c *DateTimeCaptures) bool {
	if sc.eof() {
		return true
	}
	sc.skipSpaces()
	z, ok := parseZone(sc)
	if !ok {
		return false
	}
	c.Zone = z
	return true
}

func parsePOSIX(sc *scanner) (DateTimeCaptures, bool) {
	c := DateTimeCaptures{Weekday: -1}
	if basic, ok := parseISODate(sc, &c); !ok || basic {
		return DateTimeCaptures{}, false
	}
	if !parseTrailingTime(sc, &c) {
		return DateTimeCaptures{}, false
	}
	return c, true
}

func parseSQLDate(sc *scanner) (DateTimeCaptures, bool) {
	c := DateTimeCaptures{Weekday: -1}
	m := sc.digits()
	if len(m) < 1 || len(m) > 2 || !sc.accept('/') {
		return DateTimeCaptures{}, false
	}
	d := sc.digits()
	if len(d) < 1 || len(d) > 2 || !sc.accept('/') {
		return DateTimeCaptures{}, false
	}
	y := sc.digits()
	if len(y) < 4 {
		return DateTimeCaptures{}, false
	}
	c.HasDate, c.Year, c.Month, c.Day = true, y, m, d
	if !parseTrailingTime(sc, &c) {
		return DateTimeCaptures{}, false
	}
	return c, true
}

// parseVerbose reads "[Dow[,]] Mon DD[,] YYYY [time] [zone]" and PostgreSQL's
// native "Dow Mon DD HH:MM:SS YYYY [zone]".
func parseVerbose(sc *scanner) (DateTimeCaptures, bool) {
	c := DateTimeCaptures{Weekday: -1}

	start := sc.mark()
	if w := sc.word(); w != "" {
		if dow, ok := LookupWeekday(w); ok {
			c.Weekday = dow
			sc.accept(',')
			if sc.skipSpaces() == 0 {
				return DateTimeCaptures{}, false
			}
		} else {
			sc.reset(start)
		}
	}

	month, ok := LookupMonth(sc.word())
	if !ok || sc.skipSpaces() == 0 {
		return DateTimeCaptures{}, false
	}
	day := sc.digits()
	if len(day) < 1 || len(day) > 2 {
		return DateTimeCaptures{}, false
	}
	sc.accept(',')
	if sc.skipSpaces() == 0 {
		return DateTimeCaptures{}, false
	}
	c.HasDate, c.Month, c.Day = true, strconv.Itoa(month), day

	if parseExtendedTime(sc, &c) {
		// Native order: the year follows the time.
		if sc.skipSpaces() == 0 {
			return DateTimeCaptures{}, false
		}
		y := sc.digits()
		if len(y) < 4 {
			return DateTimeCaptures{}, false
		}
		c.Year = y
		return c, parseTrailingZone(sc, &c) && skipZoneComment(sc)
	}

	y := sc.digits()
	if len(y) < 4 {
		return DateTimeCaptures{}, false
	}
	c.Year = y
	if !parseTrailingTime(sc, &c) || !skipZoneComment(sc) {
		return DateTimeCaptures{}, false
	}
	return c, true
}

// skipZoneComment consumes a trailing "(Zone Long Name)".
func skipZoneComment(sc *scanner) bool {
	start := sc.mark()
	sc.skipSpaces()
	if !sc.accept('(') {
		sc.reset(start)
		return true
	}
	end := strings.IndexByte(sc.rest(), ')')
	if end < 0 {
		return false
	}
	sc.pos += end + 1
	return true
}

func parseSpecial(src string) (DateTimeCaptures, bool) {
	sc := newScanner(src)
	if w, ok := sc.acceptFold(specials...); ok && sc.eof() {
		return DateTimeCaptures{Dialect: Special, Weekday: -1, Special: w}, true
	}
	return DateTimeCaptures{}, false
}

// parseZone reads Z, ±HH, ±HHMM, ±HH:MM, GMT/UTC optionally followed by an
// offset, an abbreviation, or an IANA zone name.
func parseZone(sc *scanner) (Zone, bool) {
	start := sc.mark()
	if sc.peek() == '+' || sc.peek() == '-' {
		z, ok := parseNumericZone(sc)
		if !ok {
			sc.reset(start)
		}
		return z, ok
	}

	name := sc.zoneName()
	if name == "" {
		sc.reset(start)
		return Zone{}, false
	}
	switch f := fold(name); {
	case f == "z":
		return Zone{Present: true, Name: "Z"}, true
	case strings.HasPrefix(f, "gmt") || strings.HasPrefix(f, "utc"):
		// GMT+0200 as written by the verbose style.
		if len(name) > 3 && (name[3] == '+' || name[3] == '-') {
			sub := newScanner(name[3:])
			z, ok := parseNumericZone(sub)
			if !ok || !sub.eof() {
				sc.reset(start)
				return Zone{}, false
			}
			z.Name = strings.ToUpper(name[:3])
			return z, true
		}
		if len(name) == 3 {
			return Zone{Present: true, Name: strings.ToUpper(name)}, true
		}
	}
	return Zone{Present: true, Name: name}, true
}

func parseNumericZone(sc *scanner) (Zone, bool) {
	z := Zone{Present: true, Sign: sc.sign()}
	h := sc.digits()
	switch len(h) {
	case 1, 2:
		z.Hour = h
		if sc.accept(':') {
			m, ok := sc.fixedDigits(2)
			if !ok {
				return Zone{}, false
			}
			z.Minute = m
		}
	case 4:
		z.Hour, z.Minute = h[:2], h[2:]
	default:
		return Zone{}, false
	}
	return z, true
}

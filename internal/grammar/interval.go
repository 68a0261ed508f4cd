package grammar

import "strings"

// IntervalDialect names the textual interval grammar a capture came from.
type IntervalDialect int

const (
	TraditionalWithTime IntervalDialect = iota + 1
	Traditional
	ISODesignator
	ISOBasic
	ISOExtended
	SQLCompound
	SQLSingle
)

func (d IntervalDialect) String() string {
	switch d {
	case TraditionalWithTime:
		return "traditional with time"
	case Traditional:
		return "traditional"
	case ISODesignator:
		return "ISO 8601 designator"
	case ISOBasic:
		return "ISO 8601 basic"
	case ISOExtended:
		return "ISO 8601 extended"
	case SQLCompound:
		return "SQL standard"
	case SQLSingle:
		return "SQL standard single field"
	}
	return "unknown"
}

// Quantity is a number tagged with the unit it was written in.
type Quantity struct {
	Value Number
	Unit  Unit
}

// TimeGroup is a clock-style [+-]H:M[:S[.f]] group. In the M:S.f form Hours
// is empty.
type TimeGroup struct {
	Present bool
	Sign    byte
	Hours   string
	Minutes string
	Seconds Number
}

// HasSeconds reports whether the group carried a seconds component.
func (tg TimeGroup) HasSeconds() bool {
	return tg.Seconds.Int != "" || tg.Seconds.Frac != ""
}

// IntervalCaptures is the flat result of a successful interval dialect match.
type IntervalCaptures struct {
	Dialect    IntervalDialect
	Quantities []Quantity
	Time       TimeGroup

	// Ago is set when the input carried an "ago" marker.
	Ago bool

	// CarrySign is set by the SQL standard dialects, where a sign written on
	// the first field applies to every later field written without one.
	CarrySign bool
}

type intervalDialect struct {
	dialect IntervalDialect
	parse   func(src string) (IntervalCaptures, bool)
}

var intervalDialects = []intervalDialect{
	{TraditionalWithTime, func(src string) (IntervalCaptures, bool) { return parseTraditional(src, true) }},
	{Traditional, func(src string) (IntervalCaptures, bool) { return parseTraditional(src, false) }},
	{ISODesignator, parseISODesignator},
	{ISOBasic, parseISOBasic},
	{ISOExtended, parseISOExtended},
	{SQLCompound, parseSQLCompound},
	{SQLSingle, parseSQLSingle},
}

// ParseInterval tries every interval dialect in priority order and returns the
// captures of the first that matches the whole input.
func ParseInterval(src string) (IntervalCaptures, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return IntervalCaptures{}, false
	}
	for _, d := range intervalDialects {
		if c, ok := d.parse(src); ok {
			c.Dialect = d.dialect
			return c, true
		}
	}
	return IntervalCaptures{}, false
}

// ParseISODuration only tries the ISO 8601 duration dialects. Timestamps
// rendered in the ISO duration styles are read back through it.
func ParseISODuration(src string) (IntervalCaptures, bool) {
	src = strings.TrimSpace(src)
	for _, d := range intervalDialects {
		switch d.dialect {
		case ISODesignator, ISOBasic, ISOExtended:
			if c, ok := d.parse(src); ok {
				c.Dialect = d.dialect
				return c, true
			}
		}
	}
	return IntervalCaptures{}, false
}

// parseTimeGroup reads [+-]H:M, [+-]H:M:S[.f] or [+-]M:S.f.
func parseTimeGroup(sc *scanner) (TimeGroup, bool) {
	start := sc.mark()
	tg := TimeGroup{Present: true, Sign: sc.sign()}

	first := sc.digits()
	if first == "" || !sc.accept(':') {
		sc.reset(start)
		return TimeGroup{}, false
	}
	second := sc.digits()
	if second == "" {
		sc.reset(start)
		return TimeGroup{}, false
	}

	switch {
	case sc.accept(':'):
		secs, ok := sc.number()
		if !ok || secs.Int == "" {
			sc.reset(start)
			return TimeGroup{}, false
		}
		tg.Hours, tg.Minutes, tg.Seconds = first, second, secs
	case sc.peek() == '.':
		sc.accept('.')
		tg.Minutes = first
		tg.Seconds = Number{Int: second, Frac: sc.digits(), Point: true}
	default:
		tg.Hours, tg.Minutes = first, second
	}
	return tg, true
}

// atBoundary reports whether the scanner sits at the end of a token.
func atBoundary(sc *scanner) bool {
	return sc.eof() || isSpace(sc.peek())
}

func parseTraditional(src string, withTime bool) (IntervalCaptures, bool) {
	var c IntervalCaptures
	sc := newScanner(src)

	sc.accept('@')
	sc.skipSpaces()
	if _, ok := sc.acceptFold("ago"); ok {
		if !atBoundary(sc) {
			return IntervalCaptures{}, false
		}
		c.Ago = true
	}

	items := 0
	for {
		sc.skipSpaces()
		if sc.eof() {
			break
		}

		if _, ok := sc.acceptFold("ago"); ok {
			sc.skipSpaces()
			if c.Ago || !sc.eof() {
				return IntervalCaptures{}, false
			}
			c.Ago = true
			break
		}

		start := sc.mark()
		if tg, ok := parseTimeGroup(sc); ok && atBoundary(sc) {
			if c.Time.Present {
				return IntervalCaptures{}, false
			}
			c.Time = tg
			items++
			continue
		}
		sc.reset(start)

		n, ok := sc.signedNumber()
		if !ok {
			return IntervalCaptures{}, false
		}
		sc.skipSpaces()

		w := sc.word()
		if w == "" {
			// A bare number is only allowed last and means seconds.
			sc.skipSpaces()
			rest := sc.mark()
			if !sc.eof() {
				if _, ok := sc.acceptFold("ago"); !ok {
					return IntervalCaptures{}, false
				}
				sc.reset(rest)
			}
			c.Quantities = append(c.Quantities, Quantity{Value: n, Unit: UnitSecond})
			items++
			continue
		}

		unit, ok := LookupUnit(w)
		if !ok {
			return IntervalCaptures{}, false
		}
		c.Quantities = append(c.Quantities, Quantity{Value: n, Unit: unit})
		items++
	}

	if items == 0 || c.Time.Present != withTime {
		return IntervalCaptures{}, false
	}
	return c, true
}

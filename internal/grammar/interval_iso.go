package grammar

import "strings"

var (
	dateDesignators = map[byte]Unit{'Y': UnitYear, 'M': UnitMonth, 'W': UnitWeek, 'D': UnitDay}
	timeDesignators = map[byte]Unit{'H': UnitHour, 'M': UnitMinute, 'S': UnitSecond}
)

const (
	dateDesignatorOrder = "YMWD"
	timeDesignatorOrder = "HMS"
)

// parseISODesignator reads P[nY][nM][nW][nD][T[nH][nM][nS]]. M is a month
// before T and a minute after it.
func parseISODesignator(src string) (IntervalCaptures, bool) {
	var c IntervalCaptures
	sc := newScanner(src)
	if !sc.accept('P') {
		return IntervalCaptures{}, false
	}

	inTime := false
	last := -1
	timeItems := 0
	for !sc.eof() {
		if sc.accept('T') {
			if inTime {
				return IntervalCaptures{}, false
			}
			inTime = true
			last = -1
			continue
		}

		n, ok := sc.signedNumber()
		if !ok || sc.eof() {
			return IntervalCaptures{}, false
		}
		d := sc.peek()
		sc.pos++

		order, table := dateDesignatorOrder, dateDesignators
		if inTime {
			order, table = timeDesignatorOrder, timeDesignators
		}
		idx := strings.IndexByte(order, d)
		if idx < 0 || idx <= last {
			return IntervalCaptures{}, false
		}
		last = idx
		c.Quantities = append(c.Quantities, Quantity{Value: n, Unit: table[d]})
		if inTime {
			timeItems++
		}
	}

	if len(c.Quantities) == 0 || (inTime && timeItems == 0) {
		return IntervalCaptures{}, false
	}
	return c, true
}

// run is the signed digit run making up one part of the ISO 8601 alternative
// basic format.
type run struct {
	sign   byte
	digits string
	frac   string
	point  bool
}

// field describes one fixed-width slot, filled right to left. A width of -1
// takes whatever remains, at least min digits.
type field struct {
	unit  Unit
	width int
	min   int
}

func scanRun(sc *scanner) (run, bool) {
	r := run{sign: sc.sign()}
	r.digits = sc.digits()
	if r.digits == "" {
		return run{}, false
	}
	if sc.accept('.') {
		r.point = true
		r.frac = sc.digits()
	}
	return r, true
}

// splitRun cuts a run into fields from the right. The run's sign applies to
// every field cut from it and its fraction to the rightmost one.
func splitRun(r run, fields []field) ([]Quantity, bool) {
	out := make([]Quantity, len(fields))
	d := r.digits
	for i, f := range fields {
		var take string
		switch {
		case f.width < 0:
			if len(d) < f.min {
				return nil, false
			}
			take, d = d, ""
		case len(d) < f.width:
			return nil, false
		default:
			take, d = d[len(d)-f.width:], d[:len(d)-f.width]
		}
		n := Number{Sign: r.sign, Int: take}
		if i == 0 {
			n.Frac, n.Point = r.frac, r.point
		}
		out[len(fields)-1-i] = Quantity{Value: n, Unit: f.unit}
	}
	if d != "" {
		return nil, false
	}
	return out, true
}

// parseISOBasic reads the alternative basic format PYYYYMMDD[Thhmmss]. A sign
// written at the start of a part applies to every field of that part.
func parseISOBasic(src string) (IntervalCaptures, bool) {
	var c IntervalCaptures
	sc := newScanner(src)
	if !sc.accept('P') {
		return IntervalCaptures{}, false
	}

	if sc.peek() != 'T' {
		r, ok := scanRun(sc)
		if !ok || len(r.digits) < 8 {
			return IntervalCaptures{}, false
		}
		if r.point && !sc.eof() {
			return IntervalCaptures{}, false
		}
		qs, ok := splitRun(r, []field{
			{unit: UnitDay, width: 2},
			{unit: UnitMonth, width: 2},
			{unit: UnitYear, width: -1, min: 4},
		})
		if !ok {
			return IntervalCaptures{}, false
		}
		c.Quantities = append(c.Quantities, qs...)
	}

	if sc.accept('T') {
		r, ok := scanRun(sc)
		if !ok {
			return IntervalCaptures{}, false
		}
		var fields []field
		switch n := len(r.digits); {
		case n == 2:
			fields = []field{{unit: UnitHour, width: 2}}
		case n == 4:
			fields = []field{{unit: UnitMinute, width: 2}, {unit: UnitHour, width: 2}}
		case n >= 6:
			fields = []field{
				{unit: UnitSecond, width: 2},
				{unit: UnitMinute, width: 2},
				{unit: UnitHour, width: -1, min: 2},
			}
		default:
			return IntervalCaptures{}, false
		}
		qs, ok := splitRun(r, fields)
		if !ok {
			return IntervalCaptures{}, false
		}
		c.Quantities = append(c.Quantities, qs...)
	}

	if !sc.eof() || len(c.Quantities) == 0 {
		return IntervalCaptures{}, false
	}
	return c, true
}

// parseISOExtended reads the alternative extended format
// PY[-M[-D]][Th[:m[:s]]]. Each field may carry its own sign.
func parseISOExtended(src string) (IntervalCaptures, bool) {
	var c IntervalCaptures
	sc := newScanner(src)
	if !sc.accept('P') {
		return IntervalCaptures{}, false
	}

	readFields := func(units []Unit, sep byte) bool {
		for i, u := range units {
			if i > 0 && !sc.accept(sep) {
				return true
			}
			n, ok := sc.signedNumber()
			if !ok || n.Int == "" {
				return false
			}
			c.Quantities = append(c.Quantities, Quantity{Value: n, Unit: u})
			if n.Point && !sc.eof() {
				return false
			}
		}
		return true
	}

	if sc.peek() != 'T' {
		if !readFields([]Unit{UnitYear, UnitMonth, UnitDay}, '-') {
			return IntervalCaptures{}, false
		}
	}
	if sc.accept('T') {
		before := len(c.Quantities)
		if !readFields([]Unit{UnitHour, UnitMinute, UnitSecond}, ':') || len(c.Quantities) == before {
			return IntervalCaptures{}, false
		}
	}

	if !sc.eof() || len(c.Quantities) == 0 {
		return IntervalCaptures{}, false
	}
	return c, true
}

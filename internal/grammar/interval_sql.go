package grammar

import "strings"

type sqlTokenKind int

const (
	sqlYearMonth sqlTokenKind = iota + 1
	sqlNumber
	sqlTime
)

type sqlToken struct {
	kind  sqlTokenKind
	year  Number
	month Number
	num   Number
	time  TimeGroup
}

// scanSQLToken reads one space separated SQL standard interval field.
func scanSQLToken(word string) (sqlToken, bool) {
	sc := newScanner(word)
	if tg, ok := parseTimeGroup(sc); ok && sc.eof() {
		return sqlToken{kind: sqlTime, time: tg}, true
	}

	sc.reset(0)
	s := sc.sign()
	years := sc.digits()
	if years != "" && sc.accept('-') {
		months := sc.digits()
		if months == "" || !sc.eof() {
			return sqlToken{}, false
		}
		// The sign written on the years applies to the months as well.
		return sqlToken{
			kind:  sqlYearMonth,
			year:  Integer(s, years),
			month: Integer(s, months),
		}, true
	}

	sc.reset(0)
	n, ok := sc.signedNumber()
	if !ok || !sc.eof() {
		return sqlToken{}, false
	}
	return sqlToken{kind: sqlNumber, num: n}, true
}

func scanSQLTokens(src string) ([]sqlToken, bool) {
	words := strings.Fields(src)
	tokens := make([]sqlToken, 0, len(words))
	for _, w := range words {
		t, ok := scanSQLToken(w)
		if !ok {
			return nil, false
		}
		tokens = append(tokens, t)
	}
	return tokens, true
}

func (c *IntervalCaptures) addSQLToken(t sqlToken, numberUnit Unit) {
	switch t.kind {
	case sqlYearMonth:
		c.Quantities = append(c.Quantities,
			Quantity{Value: t.year, Unit: UnitYear},
			Quantity{Value: t.month, Unit: UnitMonth},
		)
	case sqlNumber:
		c.Quantities = append(c.Quantities, Quantity{Value: t.num, Unit: numberUnit})
	case sqlTime:
		c.Time = t.time
	}
}

// parseSQLCompound reads "Y-M D H:M:S" and its two part subsets
// "Y-M D", "Y-M H:M:S" and "D H:M:S".
func parseSQLCompound(src string) (IntervalCaptures, bool) {
	tokens, ok := scanSQLTokens(src)
	if !ok || len(tokens) < 2 || len(tokens) > 3 {
		return IntervalCaptures{}, false
	}

	c := IntervalCaptures{CarrySign: true}
	next := sqlYearMonth
	for _, t := range tokens {
		if t.kind < next {
			return IntervalCaptures{}, false
		}
		if t.kind == sqlNumber && t.num.Point {
			return IntervalCaptures{}, false
		}
		c.addSQLToken(t, UnitDay)
		next = t.kind + 1
	}
	return c, true
}

// parseSQLSingle reads a lone "Y-M", "H:M[:S]" or a bare number of seconds.
func parseSQLSingle(src string) (IntervalCaptures, bool) {
	tokens, ok := scanSQLTokens(src)
	if !ok || len(tokens) != 1 {
		return IntervalCaptures{}, false
	}
	c := IntervalCaptures{CarrySign: true}
	c.addSQLToken(tokens[0], UnitSecond)
	return c, true
}

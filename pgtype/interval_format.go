package pgtype

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

type unitWords struct {
	singular, plural string
}

var (
	longUnitWords = [7]unitWords{
		{"year", "years"},
		{"month", "months"},
		{"day", "days"},
		{"hour", "hours"},
		{"minute", "minutes"},
		{"second", "seconds"},
		{"millisecond", "milliseconds"},
	}
	shortUnitWords = [7]unitWords{
		{"yr", "yrs"},
		{"mon", "mons"},
		{"day", "days"},
		{"hr", "hrs"},
		{"min", "mins"},
		{"sec", "secs"},
		{"msec", "msecs"},
	}
)

// String renders iv in the PostgreSQL style.
func (iv Interval) String() string {
	return iv.Format(IntervalStylePostgreSQL)
}

// Format renders iv in the given style.
func (iv Interval) Format(style IntervalStyle) string {
	switch style {
	case IntervalStylePostgreSQLShort:
		return iv.formatWords(&shortUnitWords, false)
	case IntervalStylePostgreSQLTime:
		return iv.formatWords(&longUnitWords, true)
	case IntervalStylePostgreSQLTimeShort:
		return iv.formatWords(&shortUnitWords, true)
	case IntervalStyleISO:
		return iv.formatISO(false)
	case IntervalStyleISOShort:
		return iv.formatISO(true)
	case IntervalStyleISOBasic:
		return iv.formatISOBasic()
	case IntervalStyleISOExtended:
		return iv.formatISOExtended()
	case IntervalStyleSQL:
		return iv.formatSQL()
	}
	return iv.formatWords(&longUnitWords, false)
}

func (iv Interval) formatWords(words *[7]unitWords, clockTime bool) string {
	var parts []string
	add := func(value string, w unitWords) {
		if value == "1" {
			parts = append(parts, value+" "+w.singular)
		} else {
			parts = append(parts, value+" "+w.plural)
		}
	}
	whole := func(v int64, w unitWords) {
		if v != 0 {
			add(strconv.FormatInt(v, 10), w)
		}
	}

	whole(iv.years, words[0])
	whole(iv.months, words[1])
	whole(iv.days, words[2])

	if clockTime {
		if c := iv.clock(); !c.zero() {
			parts = append(parts, c.format(true))
		}
	} else {
		whole(iv.hours, words[3])
		whole(iv.minutes, words[4])
		whole(iv.seconds, words[5])
		if iv.milliseconds != 0 || iv.microseconds != 0 {
			add(formatMillis(iv.milliseconds, iv.microseconds), words[6])
		}
	}

	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}

// formatMillis renders whole milliseconds plus a microsecond remainder as a
// decimal without trailing zeros.
func formatMillis(ms, us int64) string {
	d := apd.New(ms, 0)
	_, _ = spanContext.Add(d, d, apd.New(us, -3))
	d.Reduce(d)
	return decimalText(d)
}

// secondsDecimal folds seconds, milliseconds and microseconds into one exact
// decimal for the ISO styles.
func (iv Interval) secondsDecimal() *apd.Decimal {
	d := apd.New(iv.seconds, 0)
	_, _ = spanContext.Add(d, d, apd.New(iv.milliseconds, -3))
	_, _ = spanContext.Add(d, d, apd.New(iv.microseconds, -6))
	d.Reduce(d)
	return d
}

func decimalText(d *apd.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.Text('f')
}

func (iv Interval) formatISO(short bool) string {
	var sb strings.Builder
	sb.WriteByte('P')
	field := func(v int64, designator byte) {
		if short && v == 0 {
			return
		}
		sb.WriteString(strconv.FormatInt(v, 10))
		sb.WriteByte(designator)
	}
	field(iv.years, 'Y')
	field(iv.months, 'M')
	field(iv.days, 'D')

	secs := iv.secondsDecimal()
	if !short || iv.hours != 0 || iv.minutes != 0 || !secs.IsZero() {
		sb.WriteByte('T')
		field(iv.hours, 'H')
		field(iv.minutes, 'M')
		if !short || !secs.IsZero() {
			sb.WriteString(decimalText(secs))
			sb.WriteByte('S')
		}
	}

	if sb.Len() == 1 {
		return "PT0S"
	}
	return sb.String()
}

// partSign returns "-" when the first non-zero value is negative. The basic
// format has one sign per part, so mixed signs inside a part are not kept.
func partSign(values ...int64) string {
	for _, v := range values {
		if v != 0 {
			if v < 0 {
				return "-"
			}
			return ""
		}
	}
	return ""
}

func padUint(v uint64, width int) string {
	s := strconv.FormatUint(v, 10)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// paddedSeconds renders the absolute seconds decimal with a two digit
// integer part.
func paddedSeconds(d *apd.Decimal) string {
	var a apd.Decimal
	a.Abs(d)
	text := decimalText(&a)
	whole, frac, found := strings.Cut(text, ".")
	if len(whole) < 2 {
		whole = strings.Repeat("0", 2-len(whole)) + whole
	}
	if found {
		return whole + "." + frac
	}
	return whole
}

func (iv Interval) formatISOBasic() string {
	secs := iv.secondsDecimal()
	secSign := int64(secs.Sign())

	var sb strings.Builder
	sb.WriteByte('P')
	sb.WriteString(partSign(iv.years, iv.months, iv.days))
	sb.WriteString(padUint(abs64(iv.years), 4))
	sb.WriteString(padUint(abs64(iv.months), 2))
	sb.WriteString(padUint(abs64(iv.days), 2))
	sb.WriteByte('T')
	sb.WriteString(partSign(iv.hours, iv.minutes, secSign))
	sb.WriteString(padUint(abs64(iv.hours), 2))
	sb.WriteString(padUint(abs64(iv.minutes), 2))
	sb.WriteString(paddedSeconds(secs))
	return sb.String()
}

func signedPad(v int64, width int) string {
	if v < 0 {
		return "-" + padUint(abs64(v), width)
	}
	return padUint(abs64(v), width)
}

func (iv Interval) formatISOExtended() string {
	secs := iv.secondsDecimal()

	var sb strings.Builder
	sb.WriteByte('P')
	sb.WriteString(signedPad(iv.years, 4))
	sb.WriteByte('-')
	sb.WriteString(signedPad(iv.months, 2))
	sb.WriteByte('-')
	sb.WriteString(signedPad(iv.days, 2))
	sb.WriteByte('T')
	sb.WriteString(signedPad(iv.hours, 2))
	sb.WriteByte(':')
	sb.WriteString(signedPad(iv.minutes, 2))
	sb.WriteByte(':')
	if secs.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(paddedSeconds(secs))
	return sb.String()
}

// clockParts is the hour..microsecond fields aggregated into one signed
// clock reading.
type clockParts struct {
	negative bool
	hours    string
	minutes  int64
	seconds  int64
	micros   int64
}

func (iv Interval) clock() clockParts {
	total := new(apd.Decimal)
	addScaled(total, iv.hours, microsecondsPerHour)
	addScaled(total, iv.minutes, microsecondsPerMinute)
	addScaled(total, iv.seconds, microsecondsPerSecond)
	addScaled(total, iv.milliseconds, microsecondsPerMillisecond)
	addScaled(total, iv.microseconds, 1)

	c := clockParts{negative: total.Negative}
	total.Abs(total)

	var hours, rest apd.Decimal
	_, _ = spanContext.QuoInteger(&hours, total, apd.New(microsecondsPerHour, 0))
	_, _ = spanContext.Rem(&rest, total, apd.New(microsecondsPerHour, 0))
	c.hours = decimalText(&hours)

	r, _ := rest.Int64()
	c.minutes = r / microsecondsPerMinute
	r %= microsecondsPerMinute
	c.seconds = r / microsecondsPerSecond
	c.micros = r % microsecondsPerSecond
	return c
}

func (c clockParts) zero() bool {
	return c.hours == "0" && c.minutes == 0 && c.seconds == 0 && c.micros == 0
}

func (c clockParts) hoursPadded() string {
	if len(c.hours) < 2 {
		return "0" + c.hours
	}
	return c.hours
}

func fractionText(micros int64) string {
	if micros == 0 {
		return ""
	}
	return "." + strings.TrimRight(padUint(uint64(micros), 6), "0")
}

// format renders HH:MM:SS[.ffffff], optionally with a leading minus.
func (c clockParts) format(signed bool) string {
	var sb strings.Builder
	if signed && c.negative {
		sb.WriteByte('-')
	}
	sb.WriteString(c.hoursPadded())
	sb.WriteByte(':')
	sb.WriteString(padUint(uint64(c.minutes), 2))
	sb.WriteByte(':')
	sb.WriteString(padUint(uint64(c.seconds), 2))
	sb.WriteString(fractionText(c.micros))
	return sb.String()
}

// yearMonth folds years and months into one signed month count and splits
// its magnitude back into whole years and remaining months.
func (iv Interval) yearMonth() (negative bool, years, months string) {
	total := new(apd.Decimal)
	addScaled(total, iv.years, 12)
	addScaled(total, iv.months, 1)
	negative = total.Sign() < 0
	total.Abs(total)

	var y, m apd.Decimal
	_, _ = spanContext.QuoInteger(&y, total, apd.New(12, 0))
	_, _ = spanContext.Rem(&m, total, apd.New(12, 0))
	return negative, decimalText(&y), decimalText(&m)
}

func (iv Interval) formatSQL() string {
	c := iv.clock()
	ymNegative, ymYears, ymMonths := iv.yearMonth()
	hasYearMonth := ymYears != "0" || ymMonths != "0"
	hasDay := iv.days != 0
	hasTime := !c.zero()

	if !hasYearMonth && !hasDay && !hasTime {
		return "0-0 0 00:00:00"
	}

	var hasNegative, hasPositive bool
	note := func(negative, present bool) {
		if !present {
			return
		}
		if negative {
			hasNegative = true
		} else {
			hasPositive = true
		}
	}
	note(ymNegative, hasYearMonth)
	note(iv.days < 0, iv.days != 0)
	note(c.negative, hasTime)

	mixed := hasNegative && hasPositive
	sign := func(negative bool) string {
		if !mixed {
			return ""
		}
		if negative {
			return "-"
		}
		return "+"
	}
	lead := ""
	if hasNegative && !hasPositive {
		lead = "-"
	}

	yearMonth := sign(ymNegative) + ymYears + "-" + ymMonths
	day := sign(iv.days < 0) + strconv.FormatUint(abs64(iv.days), 10)
	dayTime := sign(c.negative) + c.format(false)

	switch {
	case hasYearMonth && !hasDay && !hasTime:
		return lead + yearMonth
	case hasYearMonth:
		return lead + yearMonth + " " + day + " " + dayTime
	case hasDay:
		return lead + day + " " + dayTime
	case c.hours == "0" && c.minutes == 0:
		return lead + sign(c.negative) + strconv.FormatInt(c.seconds, 10) + fractionText(c.micros)
	case c.seconds == 0 && c.micros == 0:
		return lead + sign(c.negative) + c.hoursPadded() + ":" + padUint(uint64(c.minutes), 2)
	}
	return lead + dayTime
}

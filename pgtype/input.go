package pgtype

import (
	"math"
	"sort"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-json"

	"github.com/pgtemporal/pgtemporal/internal/grammar"
	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

// Input is the closed set of shapes accepted by the From constructors: Text,
// Fields, Positional, or an existing value of the target type.
type Input interface {
	isInput()
}

// Text is a textual representation in any supported dialect.
type Text string

// Fields is the object form, keyed by field name.
type Fields map[string]any

// Positional is the array form, in field order.
type Positional []any

func (Text) isInput()       {}
func (Fields) isInput()     {}
func (Positional) isInput() {}

// fieldSpec describes one named field of a model.
type fieldSpec struct {
	name       string
	required   bool
	fractional bool
}

// checkKeys reports missing and unrecognized keys, in that order.
func checkKeys(typeName string, f Fields, specs []fieldSpec) *Error {
	known := make(map[string]bool, len(specs))
	var missing []string
	for _, s := range specs {
		known[s.name] = true
		if _, ok := f[s.name]; s.required && !ok {
			missing = append(missing, s.name)
		}
	}
	if len(missing) > 0 {
		return keysError(MissingKeys, typeName, missing)
	}

	var unknown []string
	for k := range f {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return keysError(UnrecognizedKeys, typeName, unknown)
	}
	return nil
}

// numberArg converts a loosely typed field value into a grammar number so
// that it can flow through the exact decimal normalizer.
func numberArg(typeName, key string, v any, fractional bool) (grammar.Number, *Error) {
	var s string
	switch n := v.(type) {
	case int:
		s = strconv.FormatInt(int64(n), 10)
	case int8:
		s = strconv.FormatInt(int64(n), 10)
	case int16:
		s = strconv.FormatInt(int64(n), 10)
	case int32:
		s = strconv.FormatInt(int64(n), 10)
	case int64:
		s = strconv.FormatInt(n, 10)
	case uint:
		s = strconv.FormatUint(uint64(n), 10)
	case uint8:
		s = strconv.FormatUint(uint64(n), 10)
	case uint16:
		s = strconv.FormatUint(uint64(n), 10)
	case uint32:
		s = strconv.FormatUint(uint64(n), 10)
	case uint64:
		s = strconv.FormatUint(n, 10)
	case float32:
		return floatArg(typeName, key, float64(n), fractional)
	case float64:
		return floatArg(typeName, key, n, fractional)
	case json.Number:
		return jsonNumberArg(typeName, key, n, fractional)
	default:
		e := newError(InvalidKeyType, "%s: %s must be a number, got %T", typeName, key, v)
		e.Keys = []string{key}
		return grammar.Number{}, e
	}
	num, _ := grammar.ParseNumber(s)
	return num, nil
}

func floatArg(typeName, key string, f float64, fractional bool) (grammar.Number, *Error) {
	switch {
	case math.IsNaN(f):
		return grammar.Number{}, outOfRangeError(ReasonNotWhole, "%s: %s is not a number", typeName, key)
	case math.IsInf(f, 1):
		return grammar.Number{}, outOfRangeError(ReasonTooBig, "%s: %s is infinite", typeName, key)
	case math.IsInf(f, -1):
		return grammar.Number{}, outOfRangeError(ReasonTooSmall, "%s: %s is infinite", typeName, key)
	}
	if !fractional && f != math.Trunc(f) {
		return grammar.Number{}, outOfRangeError(ReasonNotWhole, "%s: %s must be a whole number, got %v", typeName, key, f)
	}
	num, _ := grammar.ParseNumber(strconv.FormatFloat(f, 'f', -1, 64))
	return num, nil
}

// jsonNumberArg keeps the exact digits of a decoded JSON number when they fit
// the decimal grammar and falls back to float64 for exponent forms.
func jsonNumberArg(typeName, key string, n json.Number, fractional bool) (grammar.Number, *Error) {
	num, ok := grammar.ParseNumber(n.String())
	if !ok {
		f, err := n.Float64()
		if err != nil {
			e := newError(InvalidKeyType, "%s: %s must be a number, got %q", typeName, key, n.String())
			e.Keys = []string{key}
			return grammar.Number{}, e
		}
		return floatArg(typeName, key, f, fractional)
	}
	if !num.Fractional() {
		num.Frac, num.Point = "", false
		return num, nil
	}
	if !fractional {
		return grammar.Number{}, outOfRangeError(ReasonNotWhole, "%s: %s must be a whole number, got %s", typeName, key, n)
	}
	return num, nil
}

// wholeArg reads an integral field value that must fit an int64.
func wholeArg(typeName, key string, v any) (int64, *Error) {
	num, e := numberArg(typeName, key, v, false)
	if e != nil {
		return 0, e
	}
	n, err := strconv.ParseInt(num.Decimal(), 10, 64)
	if err != nil {
		reason := ReasonTooBig
		if num.Negative() {
			reason = ReasonTooSmall
		}
		return 0, outOfRangeError(reason, "%s: %s %s does not fit in 64 bits", typeName, key, num.Decimal())
	}
	return n, nil
}

// maxSecondsArg keeps seconds-to-microseconds scaling inside int64.
const maxSecondsArg = 1 << 42

// secondsArg reads a possibly fractional seconds value as whole seconds plus
// microseconds, rounding half to even.
func secondsArg(typeName, key string, v any) (int64, int64, *Error) {
	num, e := numberArg(typeName, key, v, true)
	if e != nil {
		return 0, 0, e
	}
	d, _, err := apd.NewFromString(num.Decimal())
	if err != nil {
		return 0, 0, outOfRangeError(ReasonTooBig, "%s: %s: %v", typeName, key, err)
	}
	var ms apd.Decimal
	if _, err := apd.BaseContext.WithPrecision(100).Mul(&ms, d, apd.New(1000, 0)); err != nil {
		return 0, 0, outOfRangeError(ReasonTooBig, "%s: %s: %v", typeName, key, err)
	}
	whole, micros, err := normalize.SplitMilliseconds(&ms)
	if err != nil || whole > maxSecondsArg*1000 || whole < -maxSecondsArg*1000 {
		reason := ReasonTooBig
		if d.Negative {
			reason = ReasonTooSmall
		}
		return 0, 0, outOfRangeError(reason, "%s: %s out of range", typeName, key)
	}
	total := whole*1000 + micros
	return total / 1000000, total % 1000000, nil
}

// rangeArg enforces an inclusive bound on an already whole value.
func rangeArg(typeName, key string, v, min, max int64) *Error {
	switch {
	case v < min:
		return outOfRangeError(ReasonTooSmall, "%s: %s must be at least %d, got %d", typeName, key, min, v)
	case v > max:
		return outOfRangeError(ReasonTooBig, "%s: %s must be at most %d, got %d", typeName, key, max, v)
	}
	return nil
}

// positionalFields maps a Positional input onto the field names of specs.
func positionalFields(typeName string, p Positional, specs []fieldSpec) (Fields, *Error) {
	if len(p) != len(specs) {
		return nil, arityError(typeName, len(specs), len(p))
	}
	f := make(Fields, len(specs))
	for i, s := range specs {
		f[s.name] = p[i]
	}
	return f, nil
}

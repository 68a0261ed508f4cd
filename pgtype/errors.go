package pgtype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

// ErrorCode classifies a failed conversion.
type ErrorCode string

const (
	InvalidType       ErrorCode = "invalid_type"
	InvalidString     ErrorCode = "invalid_string"
	MissingKeys       ErrorCode = "missing_keys"
	UnrecognizedKeys  ErrorCode = "unrecognized_keys"
	InvalidKeyType    ErrorCode = "invalid_key_type"
	TooSmall          ErrorCode = "too_small"
	TooBig            ErrorCode = "too_big"
	NumberOutOfRange  ErrorCode = "number_out_of_range"
	InvalidRangeBound ErrorCode = "invalid_range_bound"
)

// RangeReason refines NumberOutOfRange.
type RangeReason string

const (
	ReasonNone     RangeReason = ""
	ReasonNotWhole RangeReason = "not_whole"
	ReasonTooSmall RangeReason = "too_small"
	ReasonTooBig   RangeReason = "too_big"
)

// Error is returned by every constructor and parser in this package.
type Error struct {
	Code    ErrorCode
	Message string
	Reason  RangeReason
	Keys    []string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so callers can test
// errors.Is(err, &pgtype.Error{Code: pgtype.InvalidString}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Reason == ReasonNone || t.Reason == e.Reason)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func invalidTypeError(typeName string, v any) *Error {
	return newError(InvalidType, "cannot convert %T to %s", v, typeName)
}

func invalidStringError(typeName, src string) *Error {
	return newError(InvalidString, "invalid input syntax for type %s: %q", typeName, src)
}

func outOfRangeError(reason RangeReason, format string, args ...any) *Error {
	e := newError(NumberOutOfRange, format, args...)
	e.Reason = reason
	return e
}

func keysError(code ErrorCode, typeName string, keys []string) *Error {
	var what string
	switch code {
	case MissingKeys:
		what = "missing"
	case UnrecognizedKeys:
		what = "unrecognized"
	default:
		what = "invalid"
	}
	e := newError(code, "%s: %s keys %s", typeName, what, strings.Join(keys, ", "))
	e.Keys = keys
	return e
}

func arityError(typeName string, want, got int) *Error {
	if got < want {
		return newError(TooSmall, "%s: expected %d elements, got %d", typeName, want, got)
	}
	return newError(TooBig, "%s: expected %d elements, got %d", typeName, want, got)
}

// fromNormalizeError maps normalizer failures onto the error taxonomy. Text
// input problems become InvalidString; calendar problems NumberOutOfRange.
func fromNormalizeError(typeName, src string, err error) *Error {
	var pgErr *Error
	if errors.As(err, &pgErr) {
		return pgErr
	}

	var rangeErr *normalize.RangeError
	if errors.As(err, &rangeErr) {
		reason := ReasonTooBig
		if rangeErr.TooSmall() {
			reason = ReasonTooSmall
		}
		return outOfRangeError(reason, "%s: %v", typeName, rangeErr)
	}

	switch {
	case errors.Is(err, normalize.ErrDuplicateField):
		return newError(InvalidString, "invalid input syntax for type %s: %q: %v", typeName, src, err)
	case errors.Is(err, normalize.ErrFieldOverflow):
		return newError(InvalidString, "%s field value out of range: %q", typeName, src)
	case errors.Is(err, normalize.ErrUnknownZone):
		return newError(InvalidString, "%s: %v", typeName, err)
	}
	return newError(InvalidString, "%s: %v", typeName, err)
}

// retag renames the type prefix of an error raised by a component value, so
// a timestamp setter reports "timestamp: ..." rather than "date: ...".
func retag(err error, from, to string) error {
	var pgErr *Error
	if !errors.As(err, &pgErr) || !strings.HasPrefix(pgErr.Message, from+": ") {
		return err
	}
	e := *pgErr
	e.Message = to + strings.TrimPrefix(pgErr.Message, from)
	return &e
}

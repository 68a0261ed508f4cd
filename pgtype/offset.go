package pgtype

import (
	"fmt"

	"github.com/pgtemporal/pgtemporal/internal/normalize"
)

// Direction is the sign of a UTC offset.
type Direction byte

const (
	Plus  Direction = '+'
	Minus Direction = '-'
)

func (d Direction) String() string {
	if d == Minus {
		return "-"
	}
	return "+"
}

// Offset is a UTC offset of up to 23:59 in either direction.
type Offset struct {
	hour      int
	minute    int
	direction Direction
}

// UTC is the zero offset.
var UTC = Offset{direction: Plus}

// NewOffset validates and builds an offset.
func NewOffset(hour, minute int, direction Direction) (Offset, error) {
	if err := normalize.ValidateOffset(int64(hour), int64(minute)); err != nil {
		return Offset{}, fromNormalizeError("offset", "", err)
	}
	switch direction {
	case Plus, Minus:
	case 0:
		direction = Plus
	default:
		return Offset{}, newError(InvalidType, "offset: direction must be '+' or '-', got %q", byte(direction))
	}
	if hour == 0 && minute == 0 {
		direction = Plus
	}
	return Offset{hour: hour, minute: minute, direction: direction}, nil
}

// offsetFromSeconds builds an offset from seconds east of UTC. Callers pass
// values already checked to be under a day.
func offsetFromSeconds(sec int) Offset {
	o := Offset{direction: Plus}
	if sec < 0 {
		o.direction = Minus
		sec = -sec
	}
	o.hour = sec / 3600
	o.minute = sec % 3600 / 60
	if o.hour == 0 && o.minute == 0 {
		o.direction = Plus
	}
	return o
}

func (o Offset) Hour() int   { return o.hour }
func (o Offset) Minute() int { return o.minute }

func (o Offset) Direction() Direction {
	if o.direction == 0 {
		return Plus
	}
	return o.direction
}

// Seconds returns the offset in seconds east of UTC.
func (o Offset) Seconds() int {
	s := o.hour*3600 + o.minute*60
	if o.direction == Minus {
		return -s
	}
	return s
}

// String renders the offset as +HH:MM.
func (o Offset) String() string {
	return fmt.Sprintf("%s%02d:%02d", o.Direction(), o.hour, o.minute)
}

// compact renders the offset as +HHMM.
func (o Offset) compact() string {
	return fmt.Sprintf("%s%02d%02d", o.Direction(), o.hour, o.minute)
}

// directionArg accepts a Direction or a "+"/"-" string.
func directionArg(typeName, key string, v any) (Direction, *Error) {
	switch d := v.(type) {
	case Direction:
		if d == Plus || d == Minus {
			return d, nil
		}
	case string:
		switch d {
		case "+":
			return Plus, nil
		case "-":
			return Minus, nil
		}
	default:
		e := newError(InvalidKeyType, "%s: %s must be \"+\" or \"-\", got %T", typeName, key, v)
		e.Keys = []string{key}
		return 0, e
	}
	return 0, newError(InvalidString, "%s: %s must be \"+\" or \"-\", got %v", typeName, key, v)
}

package pgtype

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// decodeJSONInput maps a JSON document onto an Input: strings become Text,
// objects Fields and arrays Positional. Numbers keep their exact digits.
func decodeJSONInput(typeName string, data []byte) (Input, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newError(InvalidString, "%s: invalid JSON: %v", typeName, err)
	}
	switch v := v.(type) {
	case string:
		return Text(v), nil
	case map[string]any:
		return Fields(v), nil
	case []any:
		return Positional(v), nil
	}
	return nil, invalidTypeError(typeName, v)
}

// ToJSON returns the JSON projection of iv, its default text form.
func (iv Interval) ToJSON() string { return iv.String() }

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(iv.ToJSON())
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	in, err := decodeJSONInput(intervalTypeName, data)
	if err != nil {
		return err
	}
	v, err := IntervalFrom(in)
	if err != nil {
		return err
	}
	*iv = v
	return nil
}

// ToJSON returns the JSON projection of ts, its ISO text form.
func (ts Timestamp) ToJSON() string { return ts.String() }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.ToJSON())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	in, err := decodeJSONInput(timestampTypeName, data)
	if err != nil {
		return err
	}
	v, err := TimestampFrom(in)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

// ToJSON returns the JSON projection of ts, its ISO text form.
func (ts TimestampTZ) ToJSON() string { return ts.String() }

func (ts TimestampTZ) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.ToJSON())
}

func (ts *TimestampTZ) UnmarshalJSON(data []byte) error {
	in, err := decodeJSONInput(timestampTZTypeName, data)
	if err != nil {
		return err
	}
	v, err := TimestampTZFrom(in)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

func (d Date) ToJSON() string { return d.String() }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToJSON())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	in, err := decodeJSONInput(dateTypeName, data)
	if err != nil {
		return err
	}
	v, err := DateFrom(in)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (t Time) ToJSON() string { return t.String() }

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToJSON())
}

func (t *Time) UnmarshalJSON(data []byte) error {
	in, err := decodeJSONInput(timeTypeName, data)
	if err != nil {
		return err
	}
	v, err := TimeFrom(in)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t TimeTZ) ToJSON() string { return t.String() }

func (t TimeTZ) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToJSON())
}

func (t *TimeTZ) UnmarshalJSON(data []byte) error {
	in, err := decodeJSONInput(timeTZTypeName, data)
	if err != nil {
		return err
	}
	v, err := TimeTZFrom(in)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type rangeJSON struct {
	Lower string `json:"lower"`
	Upper string `json:"upper"`
	Value []any  `json:"value"`
}

// ToJSON returns the object projection of r. Value is nil for an empty range.
func (r Range[T]) ToJSON() map[string]any {
	m := map[string]any{"lower": string(r.lower), "upper": string(r.upper), "value": nil}
	if !r.hasValue {
		m["lower"], m["upper"] = string(LowerInclusive), string(UpperExclusive)
		return m
	}
	m["value"] = []any{r.bounds[0], r.bounds[1]}
	return m
}

func (r Range[T]) MarshalJSON() ([]byte, error) {
	out := rangeJSON{Lower: string(LowerInclusive), Upper: string(UpperExclusive)}
	if r.hasValue {
		out.Lower, out.Upper = string(r.lower), string(r.upper)
		out.Value = []any{r.bounds[0], r.bounds[1]}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the object projection, range text or a two element
// array. The range must have been built by a codec.
func (r *Range[T]) UnmarshalJSON(data []byte) error {
	if r.codec == nil {
		return fmt.Errorf("cannot unmarshal into %T without an element codec", r)
	}
	c := RangeCodec[T]{Element: r.codec}
	v, err := c.ParseJSON(data)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseJSON builds a range from any of its JSON forms.
func (c *RangeCodec[T]) ParseJSON(data []byte) (Range[T], error) {
	in, err := decodeJSONInput(rangeTypeName, data)
	if err != nil {
		return Range[T]{}, err
	}
	return c.From(in)
}

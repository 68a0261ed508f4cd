package pgtype

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// OID is a PostgreSQL type object identifier.
type OID uint32

// PostgreSQL oids for the temporal and range types
const (
	DateOID        = 1082
	TimeOID        = 1083
	TimestampOID   = 1114
	TimestamptzOID = 1184
	IntervalOID    = 1186
	TimetzOID      = 1266
	Int4RangeOID   = 3904
	NumrangeOID    = 3906
	TsrangeOID     = 3908
	TstzrangeOID   = 3910
	DateRangeOID   = 3912
	Int8RangeOID   = 3926
)

// Codec decodes one PostgreSQL type from its wire formats.
type Codec interface {
	DecodeText(src string) (any, error)
	DecodeBinary(src []byte) (any, error)
}

type valueCodec[V any] struct {
	parse        func(string) (V, error)
	decodeBinary func([]byte) (V, error)
}

func (c valueCodec[V]) DecodeText(src string) (any, error) {
	v, err := c.parse(src)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c valueCodec[V]) DecodeBinary(src []byte) (any, error) {
	v, err := c.decodeBinary(src)
	if err != nil {
		return nil, err
	}
	return v, nil
}

type rangeCodecAdapter[T any] struct {
	codec *RangeCodec[T]
}

func (c rangeCodecAdapter[T]) DecodeText(src string) (any, error) {
	v, err := c.codec.Parse(src)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c rangeCodecAdapter[T]) DecodeBinary(src []byte) (any, error) {
	v, err := c.codec.DecodeBinary(src)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CodecForRange lets a custom range codec be registered in a Map.
func CodecForRange[T any](c *RangeCodec[T]) Codec {
	return rangeCodecAdapter[T]{codec: c}
}

// Type is a registered PostgreSQL type.
type Type struct {
	Codec Codec
	Name  string
	OID   OID
}

// DecodeTracer traces Map decode calls.
type DecodeTracer interface {
	// TraceDecodeStart is called at the beginning of DecodeText and
	// DecodeBinary. The returned context is passed to TraceDecodeEnd.
	TraceDecodeStart(ctx context.Context, m *Map, data TraceDecodeStartData) context.Context

	TraceDecodeEnd(ctx context.Context, m *Map, data TraceDecodeEndData)
}

type TraceDecodeStartData struct {
	OID      OID
	TypeName string
	Binary   bool
	Src      string
}

type TraceDecodeEndData struct {
	Value any
	Err   error
}

// Map is the registry of PostgreSQL types known to this package. It is safe
// for concurrent use.
type Map struct {
	mu         sync.RWMutex
	oidToType  map[OID]*Type
	nameToType map[string]*Type

	// Tracer, when set, observes every decode.
	Tracer DecodeTracer
}

// NewMap returns a Map with the built in temporal and range types registered.
func NewMap() *Map {
	m := &Map{
		oidToType:  make(map[OID]*Type),
		nameToType: make(map[string]*Type),
	}

	m.RegisterType(&Type{Name: "date", OID: DateOID, Codec: valueCodec[Date]{ParseDate, DecodeBinaryDate}})
	m.RegisterType(&Type{Name: "interval", OID: IntervalOID, Codec: valueCodec[Interval]{ParseInterval, DecodeBinaryInterval}})
	m.RegisterType(&Type{Name: "time", OID: TimeOID, Codec: valueCodec[Time]{ParseTime, DecodeBinaryTime}})
	m.RegisterType(&Type{Name: "timestamp", OID: TimestampOID, Codec: valueCodec[Timestamp]{ParseTimestamp, DecodeBinaryTimestamp}})
	m.RegisterType(&Type{Name: "timestamptz", OID: TimestamptzOID, Codec: valueCodec[TimestampTZ]{ParseTimestampTZ, DecodeBinaryTimestampTZ}})
	m.RegisterType(&Type{Name: "timetz", OID: TimetzOID, Codec: valueCodec[TimeTZ]{ParseTimeTZ, DecodeBinaryTimeTZ}})

	m.RegisterType(&Type{Name: "daterange", OID: DateRangeOID, Codec: CodecForRange(DateRangeCodec)})
	m.RegisterType(&Type{Name: "int4range", OID: Int4RangeOID, Codec: CodecForRange(Int4RangeCodec)})
	m.RegisterType(&Type{Name: "int8range", OID: Int8RangeOID, Codec: CodecForRange(Int8RangeCodec)})
	m.RegisterType(&Type{Name: "numrange", OID: NumrangeOID, Codec: CodecForRange(NumRangeCodec)})
	m.RegisterType(&Type{Name: "tsrange", OID: TsrangeOID, Codec: CodecForRange(TsRangeCodec)})
	m.RegisterType(&Type{Name: "tstzrange", OID: TstzrangeOID, Codec: CodecForRange(TstzRangeCodec)})

	return m
}

// RegisterType registers a data type with the Map. t must not be mutated after
// it is registered.
func (m *Map) RegisterType(t *Type) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oidToType[t.OID] = t
	m.nameToType[t.Name] = t
}

// TypeForOID returns the Type registered for the given OID.
func (m *Map) TypeForOID(oid OID) (*Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.oidToType[oid]
	return t, ok
}

// TypeForName returns the Type registered for the given name.
func (m *Map) TypeForName(name string) (*Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.nameToType[name]
	return t, ok
}

// Types returns the registered types ordered by OID.
func (m *Map) Types() []*Type {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]*Type, 0, len(m.oidToType))
	for _, t := range m.oidToType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].OID < types[j].OID })
	return types
}

// DecodeText decodes src in the text format of the type registered for oid.
func (m *Map) DecodeText(ctx context.Context, oid OID, src string) (any, error) {
	return m.decode(ctx, oid, false, src, func(c Codec) (any, error) { return c.DecodeText(src) })
}

// DecodeBinary decodes src in the binary format of the type registered for oid.
func (m *Map) DecodeBinary(ctx context.Context, oid OID, src []byte) (any, error) {
	return m.decode(ctx, oid, true, fmt.Sprintf("%x", src), func(c Codec) (any, error) { return c.DecodeBinary(src) })
}

func (m *Map) decode(ctx context.Context, oid OID, binary bool, traceSrc string, fn func(Codec) (any, error)) (any, error) {
	t, ok := m.TypeForOID(oid)

	if m.Tracer != nil {
		data := TraceDecodeStartData{OID: oid, Binary: binary, Src: traceSrc}
		if ok {
			data.TypeName = t.Name
		}
		ctx = m.Tracer.TraceDecodeStart(ctx, m, data)
	}

	var v any
	var err error
	if ok {
		v, err = fn(t.Codec)
	} else {
		err = fmt.Errorf("unknown oid %d", oid)
	}

	if m.Tracer != nil {
		m.Tracer.TraceDecodeEnd(ctx, m, TraceDecodeEndData{Value: v, Err: err})
	}
	return v, err
}

// EncodeText renders value in the named style. An empty style selects the
// default for the value. Interval values take IntervalStyle names; date and
// time values take DateTimeStyle names; ranges ignore the style.
func (m *Map) EncodeText(value any, style string) (string, error) {
	type intervalFormatter interface {
		Format(IntervalStyle) string
	}
	type dateTimeFormatter interface {
		Format(DateTimeStyle) string
	}

	switch v := value.(type) {
	case intervalFormatter:
		if style == "" {
			return fmt.Sprint(v), nil
		}
		s, err := ParseIntervalStyle(style)
		if err != nil {
			return "", err
		}
		return v.Format(s), nil
	case dateTimeFormatter:
		if style == "" {
			return fmt.Sprint(v), nil
		}
		s, err := ParseDateTimeStyle(style)
		if err != nil {
			return "", err
		}
		return v.Format(s), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", invalidTypeError("text", value)
}

// EncodeBinary appends the PostgreSQL binary format of value to buf.
func (m *Map) EncodeBinary(value any, buf []byte) ([]byte, error) {
	type plainEncoder interface {
		EncodeBinary([]byte) []byte
	}
	type fallibleEncoder interface {
		EncodeBinary([]byte) ([]byte, error)
	}

	switch v := value.(type) {
	case plainEncoder:
		return v.EncodeBinary(buf), nil
	case fallibleEncoder:
		return v.EncodeBinary(buf)
	}
	return nil, fmt.Errorf("cannot encode %T in binary format", value)
}

// Package multitracer provides a Tracer that can combine several tracers into one.
package multitracer

import (
	"context"

	"github.com/pgtemporal/pgtemporal/pgtype"
)

// Tracer can combine several tracers into one.
type Tracer struct {
	DecodeTracers []pgtype.DecodeTracer
}

// New returns new Tracer from tracers. nil tracers are skipped.
func New(tracers ...pgtype.DecodeTracer) *Tracer {
	var t Tracer

	for i := range tracers {
		if tracers[i] != nil {
			t.DecodeTracers = append(t.DecodeTracers, tracers[i])
		}
	}

	return &t
}

func (t *Tracer) TraceDecodeStart(ctx context.Context, m *pgtype.Map, data pgtype.TraceDecodeStartData) context.Context {
	for i := range t.DecodeTracers {
		ctx = t.DecodeTracers[i].TraceDecodeStart(ctx, m, data)
	}

	return ctx
}

func (t *Tracer) TraceDecodeEnd(ctx context.Context, m *pgtype.Map, data pgtype.TraceDecodeEndData) {
	for i := range t.DecodeTracers {
		t.DecodeTracers[i].TraceDecodeEnd(ctx, m, data)
	}
}

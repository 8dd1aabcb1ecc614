// Package outbox carries request context across the outbox: trace context
// and correlation id are stored as message headers when an event is written
// and restored when it is published or consumed.
package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/shop-admin/pkg/correlationid"
)

// BuildHeaders captures the trace context and correlation id of ctx.
func BuildHeaders(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	if id, ok := correlationid.FromContext(ctx); ok {
		carrier.Set(correlationid.Header, id)
	}
	return carrier
}

// ExtractContextFromHeaders is the inverse of BuildHeaders.
func ExtractContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	carrier := propagation.MapCarrier(headers)
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	if id := carrier.Get(correlationid.Header); id != "" {
		ctx = correlationid.NewContext(ctx, id)
	}
	return ctx
}

// ContextFromRecord restores the context carried in a consumed record.
func ContextFromRecord(ctx context.Context, rec *kgo.Record) context.Context {
	headers := make(map[string]string, len(rec.Headers))
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	return ExtractContextFromHeaders(ctx, headers)
}

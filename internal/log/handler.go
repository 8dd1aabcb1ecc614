package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/shop-admin/pkg/correlationid"
)

const (
	CorrelationIDKey = "correlation_id"
	TraceIDKey       = "trace_id"
	SpanIDKey        = "span_id"
)

var _ slog.Handler = contextHandler{}

// contextHandler adds the correlation ID and the active span to every record
// logged with a context.
type contextHandler struct {
	next slog.Handler
}

func newContextHandler(next slog.Handler) contextHandler {
	return contextHandler{next: next}
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := correlationid.FromContext(ctx); ok {
		r.AddAttrs(slog.String(CorrelationIDKey, id))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String(TraceIDKey, sc.TraceID().String()),
			slog.String(SpanIDKey, sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newContextHandler(h.next.WithAttrs(attrs))
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return newContextHandler(h.next.WithGroup(name))
}

package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/mq")

// newKafkaTracer returns the kgo hooks that record client spans and carry
// trace context in record headers. Call it after the global tracer provider
// and propagator are installed.
func newKafkaTracer() *kotel.Tracer {
	return kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
}

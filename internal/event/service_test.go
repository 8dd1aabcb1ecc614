package event

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	running  bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = map[string]mq.HandlerFunc{}
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.running = true
	return func() { c.running = false }, nil
}

func (c *fakeConsumer) deliver(t *testing.T, topic string, ev any) error {
	t.Helper()

	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	fn, ok := c.handlers[topic]
	require.True(t, ok, "no handler for %s", topic)
	return fn(context.Background(), topic, payload)
}

type applied struct {
	customerID string
	total      decimal.Decimal
	orderedAt  time.Time
}

type fakeRecorder struct {
	calls []applied
}

func (r *fakeRecorder) ApplyOrder(_ context.Context, customerID string, total decimal.Decimal, orderedAt time.Time) error {
	r.calls = append(r.calls, applied{customerID, total, orderedAt})
	return nil
}

func TestService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Should register every topic and stop the consumer on cleanup", func(t *testing.T) {
		consumer := &fakeConsumer{}
		svc := New(logger, consumer, &fakeRecorder{})

		cleanup, err := svc.Run(context.Background())
		require.NoError(t, err)
		assert.True(t, consumer.running)
		assert.Len(t, consumer.handlers, 4)

		cleanup()
		assert.False(t, consumer.running)
	})

	t.Run("Should apply created orders to the customer", func(t *testing.T) {
		consumer := &fakeConsumer{}
		recorder := &fakeRecorder{}
		_, err := New(logger, consumer, recorder).Run(context.Background())
		require.NoError(t, err)

		orderedAt := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
		require.NoError(t, consumer.deliver(t, TopicOrderCreated, OrderCreatedEvent{
			OrderID:    "o1",
			CustomerID: "c1",
			Total:      decimal.RequireFromString("115.00"),
			OrderDate:  orderedAt,
		}))
		require.NoError(t, consumer.deliver(t, TopicOrderCreated, OrderCreatedEvent{OrderID: "o2"}))

		require.Len(t, recorder.calls, 1)
		assert.Equal(t, "c1", recorder.calls[0].customerID)
		assert.Equal(t, "115", recorder.calls[0].total.String())
		assert.True(t, recorder.calls[0].orderedAt.Equal(orderedAt))
	})

	t.Run("Should fail on malformed payloads", func(t *testing.T) {
		consumer := &fakeConsumer{}
		_, err := New(logger, consumer, &fakeRecorder{}).Run(context.Background())
		require.NoError(t, err)

		err = consumer.handlers[TopicOrderCreated](context.Background(), TopicOrderCreated, []byte("{"))
		assert.ErrorContains(t, err, "unmarshal order.created event")
	})
}

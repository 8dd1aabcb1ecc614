package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mq"
)

// CustomerStatsRecorder keeps per-customer order statistics.
type CustomerStatsRecorder interface {
	ApplyOrder(ctx context.Context, customerID string, total decimal.Decimal, orderedAt time.Time) error
}

// Service consumes the shop's domain events.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
	customers  CustomerStatsRecorder
}

func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	customers CustomerStatsRecorder,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
		customers:  customers,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.registerHandlers(); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}

func (s *Service) registerHandlers() error {
	if err := s.mqConsumer.RegisterHandler(TopicProductCreated, handle(s.handleProductCreatedEvent)); err != nil {
		return fmt.Errorf("register product created event handler: %w", err)
	}
	if err := s.mqConsumer.RegisterHandler(TopicProductStockLow, handle(s.handleProductStockLowEvent)); err != nil {
		return fmt.Errorf("register product stock low event handler: %w", err)
	}
	if err := s.mqConsumer.RegisterHandler(TopicOrderCreated, handle(s.handleOrderCreatedEvent)); err != nil {
		return fmt.Errorf("register order created event handler: %w", err)
	}
	if err := s.mqConsumer.RegisterHandler(TopicOrderUpdated, handle(s.handleOrderUpdatedEvent)); err != nil {
		return fmt.Errorf("register order updated event handler: %w", err)
	}
	return nil
}

// handle decodes the JSON payload into E before calling fn.
func handle[E any](fn func(ctx context.Context, ev E) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev E
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := fn(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}

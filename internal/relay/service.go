package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mq"
	"github.com/tuanvumaihuynh/shop-admin/pkg/outbox"
	"github.com/tuanvumaihuynh/shop-admin/pkg/ptr"
)

// Service publishes pending outbox messages to the broker.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	store         docstore.Store
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	store docstore.Store,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		store:         store,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(s.cfg.ShutdownTimeout):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-time.After(s.cfg.Interval):
			if _, err := s.RelayBatch(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			}
		}
	}
}

// RelayBatch publishes one batch of pending messages and marks each of them
// processed, with the publish error when there was one. It returns the number
// of messages handled.
//
// Messages are read and published outside a transaction. A crash between
// publishing and marking republishes the batch on the next run.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	outboxMsgs, err := s.outboxMsgRepo.ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
		BatchSize: int(s.cfg.BatchSize),
	})
	if err != nil {
		return 0, fmt.Errorf("list unprocessed outbox msgs: %w", err)
	}

	if len(outboxMsgs) == 0 {
		return 0, nil
	}

	s.logger.InfoContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

	items := make([]repository.BulkUpdateOutboxMsgsItem, 0, len(outboxMsgs))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, msg := range outboxMsgs {
		wg.Go(func() {
			item := repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}
			if err := s.produce(ctx, msg); err != nil {
				s.logger.ErrorContext(ctx,
					"error producing message",
					slog.String("outbox_msg_id", msg.ID),
					slog.String("topic", msg.Topic),
					slog.Any("error", err),
				)
				item.Error = ptr.New(err.Error())
			}

			mu.Lock()
			items = append(items, item)
			mu.Unlock()
		})
	}

	wg.Wait()

	if err := s.store.WithTx(ctx, func(ctx context.Context) error {
		return s.outboxMsgRepo.BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
			Items: items,
		})
	}); err != nil {
		return 0, fmt.Errorf("bulk update outbox msgs: %w", err)
	}

	return len(items), nil
}

func (s *Service) produce(ctx context.Context, msg model.OutboxMsg) error {
	// Publish under the trace of the request that wrote the message.
	ctx = outbox.ExtractContextFromHeaders(ctx, msg.Headers)

	produceMsg := mq.ProduceMsg{
		Topic:        msg.Topic,
		Headers:      msg.Headers,
		Payload:      msg.Payload,
		PartitionKey: msg.PartitionKey,
	}
	if err := s.mqProducer.Produce(ctx, produceMsg); err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	return nil
}

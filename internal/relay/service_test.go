package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/memstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mq"
	"github.com/tuanvumaihuynh/shop-admin/pkg/ptr"
)

type fakeProducer struct {
	mu       sync.Mutex
	produced []mq.ProduceMsg
	failOn   string
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg.Topic == p.failOn {
		return errors.New("broker unavailable")
	}
	p.produced = append(p.produced, msg)
	return nil
}

func (p *fakeProducer) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	topics := make([]string, 0, len(p.produced))
	for _, msg := range p.produced {
		topics = append(topics, msg.Topic)
	}
	return topics
}

func newRelay(t *testing.T, producer mq.Producer, batchSize uint32) (*Service, repository.OutboxMsgRepository, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	repo := repository.NewOutboxMsgRepository(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Relay{BatchSize: batchSize, Interval: 10 * time.Millisecond, ShutdownTimeout: time.Second}

	return NewService(cfg, logger, store, repo, producer), repo, store
}

func enqueue(t *testing.T, repo repository.OutboxMsgRepository, topic string) {
	t.Helper()

	require.NoError(t, repo.CreateOutboxMsg(context.Background(), repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      map[string]string{},
		Payload:      []byte(`{}`),
		PartitionKey: ptr.New("key"),
	}))
}

func TestRelayBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Should publish pending messages and mark them processed", func(t *testing.T) {
		producer := &fakeProducer{}
		svc, repo, _ := newRelay(t, producer, 10)
		enqueue(t, repo, "order.created")
		enqueue(t, repo, "product.created")

		n, err := svc.RelayBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.ElementsMatch(t, []string{"order.created", "product.created"}, producer.topics())

		pending, err := repo.ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{BatchSize: 10})
		require.NoError(t, err)
		assert.Empty(t, pending)

		n, err = svc.RelayBatch(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Should respect the batch size", func(t *testing.T) {
		producer := &fakeProducer{}
		svc, repo, _ := newRelay(t, producer, 1)
		enqueue(t, repo, "order.created")
		enqueue(t, repo, "order.updated")

		n, err := svc.RelayBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"order.created"}, producer.topics())
	})

	t.Run("Should record publish errors on the message", func(t *testing.T) {
		producer := &fakeProducer{failOn: "order.updated"}
		svc, repo, store := newRelay(t, producer, 10)
		enqueue(t, repo, "order.updated")

		_, err := svc.RelayBatch(ctx)
		require.NoError(t, err)

		var msgs []model.OutboxMsg
		require.NoError(t, store.Collection(model.CollectionOutboxMessages).Find(ctx, docstore.Query{}, &msgs))
		require.Len(t, msgs, 1)
		require.NotNil(t, msgs[0].ProcessedAt)
		require.NotNil(t, msgs[0].Error)
		assert.Contains(t, *msgs[0].Error, "broker unavailable")
	})
}

func TestRun(t *testing.T) {
	t.Run("Should relay in the background until cleanup", func(t *testing.T) {
		producer := &fakeProducer{}
		svc, repo, _ := newRelay(t, producer, 10)
		enqueue(t, repo, "product.created")

		cleanup := svc.Run(context.Background())
		assert.Eventually(t, func() bool {
			return len(producer.topics()) == 1
		}, time.Second, 5*time.Millisecond)
		cleanup()
	})
}

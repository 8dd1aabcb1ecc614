package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

type CreateOutboxMsgParams struct {
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

type ListUnprocessedOutboxMsgsParams struct {
	BatchSize int
}

type BulkUpdateOutboxMsgsItem struct {
	ID    string
	Error *string
}

type BulkUpdateOutboxMsgsParams struct {
	Items []BulkUpdateOutboxMsgsItem
}

type OutboxMsgRepository interface {
	CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error
	// ListUnprocessedOutboxMsgs returns the oldest messages not yet relayed.
	ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]model.OutboxMsg, error)
	// BulkUpdateOutboxMsgs marks messages as processed, recording the publish
	// error if there was one.
	BulkUpdateOutboxMsgs(ctx context.Context, params BulkUpdateOutboxMsgsParams) error
}

type outboxMsgRepository struct {
	coll docstore.Collection
}

func NewOutboxMsgRepository(store docstore.Store) OutboxMsgRepository {
	return &outboxMsgRepository{coll: store.Collection(model.CollectionOutboxMessages)}
}

func (r outboxMsgRepository) CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate uuid v7: %w", err)
	}

	msg := model.OutboxMsg{
		ID:           id.String(),
		Topic:        params.Topic,
		Headers:      params.Headers,
		Payload:      params.Payload,
		PartitionKey: params.PartitionKey,
		CreatedAt:    time.Now(),
	}
	if err := r.coll.Insert(ctx, msg.ID, msg); err != nil {
		return fmt.Errorf("outbox msg create: %w", err)
	}

	return nil
}

func (r outboxMsgRepository) ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]model.OutboxMsg, error) {
	msgs := []model.OutboxMsg{}
	q := docstore.Query{
		Where: []docstore.Condition{docstore.NotExists("processedAt")},
		Limit: params.BatchSize,
	}
	if err := r.coll.Find(ctx, q, &msgs); err != nil {
		return nil, fmt.Errorf("outbox msg list unprocessed: %w", err)
	}

	return msgs, nil
}

func (r outboxMsgRepository) BulkUpdateOutboxMsgs(ctx context.Context, params BulkUpdateOutboxMsgsParams) error {
	now := time.Now()
	for _, item := range params.Items {
		fields := map[string]any{"processedAt": now}
		if item.Error != nil {
			fields["error"] = *item.Error
		}

		if err := r.coll.Patch(ctx, item.ID, fields); err != nil {
			return fmt.Errorf("outbox msg bulk update %s: %w", item.ID, err)
		}
	}

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/outbox"
	"github.com/tuanvumaihuynh/shop-admin/pkg/zerror"
)

// now is replaced in tests.
var now = time.Now

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}
	return id.String(), nil
}

// mapNotFound turns a missing document into the given domain error.
func mapNotFound(err error, notFound zerror.ZError) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return notFound.WrapParent(err)
	}
	return err
}

func newOutboxMsg(ctx context.Context, topic, key string, ev any) (repository.CreateOutboxMsgParams, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return repository.CreateOutboxMsgParams{}, fmt.Errorf("marshal %s event: %w", topic, err)
	}

	return repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &key,
	}, nil
}

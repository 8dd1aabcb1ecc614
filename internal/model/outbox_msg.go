package model

import (
	"encoding/json"
	"time"
)

// OutboxMsg is an event waiting to be relayed to the message broker. It is
// written in the same store transaction as the change it describes.
type OutboxMsg struct {
	ID           string            `json:"id" bson:"_id"`
	Topic        string            `json:"topic" bson:"topic"`
	Headers      map[string]string `json:"headers,omitempty" bson:"headers,omitempty"`
	Payload      json.RawMessage   `json:"payload" bson:"payload"`
	PartitionKey *string           `json:"partitionKey,omitempty" bson:"partitionKey,omitempty"`
	CreatedAt    time.Time         `json:"createdAt" bson:"createdAt"`
	ProcessedAt  *time.Time        `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
	Error        *string           `json:"error,omitempty" bson:"error,omitempty"`
}

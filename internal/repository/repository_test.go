package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/memstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/ptr"
)

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(memstore.New())

	shirt := model.Product{
		ID:       "01",
		Name:     "Linen Shirt",
		Category: "Shirts",
		Status:   model.ProductStatusActive,
		Variants: []model.Variant{
			{Type: "Regular", Size: "M", SellingPrice: decimal.RequireFromString("19.99"), StockQuantity: 4},
		},
	}
	hat := model.Product{ID: "02", Name: "Bucket Hat", Category: "Hats", Status: model.ProductStatusActive}

	require.NoError(t, repo.CreateProduct(ctx, shirt))
	require.NoError(t, repo.CreateProduct(ctx, hat))

	t.Run("Should keep decimal prices exact", func(t *testing.T) {
		got, err := repo.GetProduct(ctx, "01")
		require.NoError(t, err)
		assert.True(t, got.Variants[0].SellingPrice.Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("Should filter by exact category", func(t *testing.T) {
		got, err := repo.ListProductsByCategory(ctx, "Hats")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Bucket Hat", got[0].Name)
	})

	t.Run("Should overwrite mutable fields on update", func(t *testing.T) {
		shirt.Variants[0].StockQuantity = 1
		shirt.Name = "Linen Shirt II"
		require.NoError(t, repo.UpdateProduct(ctx, shirt))

		got, err := repo.GetProduct(ctx, "01")
		require.NoError(t, err)
		assert.Equal(t, "Linen Shirt II", got.Name)
		assert.Equal(t, 1, got.Variants[0].StockQuantity)
	})

	t.Run("Should report missing products as not found", func(t *testing.T) {
		require.NoError(t, repo.DeleteProduct(ctx, "02"))
		_, err := repo.GetProduct(ctx, "02")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(memstore.New())

	require.NoError(t, repo.CreateOrder(ctx, model.Order{ID: "01", CustomerID: "c1", PaymentStatus: "pending"}))
	require.NoError(t, repo.CreateOrder(ctx, model.Order{ID: "02", CustomerID: "c2", PaymentStatus: "paid"}))
	require.NoError(t, repo.CreateOrder(ctx, model.Order{ID: "03", CustomerID: "c1", PaymentStatus: "paid"}))

	t.Run("Should list a customer's orders", func(t *testing.T) {
		got, err := repo.ListOrdersByCustomer(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "01", got[0].ID)
		assert.Equal(t, "03", got[1].ID)
	})

	t.Run("Should update statuses", func(t *testing.T) {
		require.NoError(t, repo.UpdateOrderStatus(ctx, UpdateOrderStatusParams{
			ID:             "01",
			PaymentMethod:  "card",
			PaymentStatus:  "paid",
			DeliveryStatus: "shipped",
			Notes:          "left at door",
			UpdatedAt:      time.Now(),
		}))

		got, err := repo.GetOrder(ctx, "01")
		require.NoError(t, err)
		assert.Equal(t, "paid", got.PaymentStatus)
		assert.Equal(t, "shipped", got.DeliveryStatus)
		assert.Equal(t, "left at door", got.Notes)
		assert.Equal(t, "c1", got.CustomerID)
	})
}

func TestOutboxMsgRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOutboxMsgRepository(memstore.New())

	for _, topic := range []string{"a", "b", "c"} {
		require.NoError(t, repo.CreateOutboxMsg(ctx, CreateOutboxMsgParams{
			Topic:   topic,
			Payload: json.RawMessage(`{"topic":"` + topic + `"}`),
		}))
	}

	t.Run("Should list the oldest unprocessed messages up to the batch size", func(t *testing.T) {
		msgs, err := repo.ListUnprocessedOutboxMsgs(ctx, ListUnprocessedOutboxMsgsParams{BatchSize: 2})
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "a", msgs[0].Topic)
		assert.Equal(t, "b", msgs[1].Topic)
		assert.JSONEq(t, `{"topic":"a"}`, string(msgs[0].Payload))
	})

	t.Run("Should skip messages once marked processed", func(t *testing.T) {
		msgs, err := repo.ListUnprocessedOutboxMsgs(ctx, ListUnprocessedOutboxMsgsParams{BatchSize: 10})
		require.NoError(t, err)
		require.Len(t, msgs, 3)

		require.NoError(t, repo.BulkUpdateOutboxMsgs(ctx, BulkUpdateOutboxMsgsParams{
			Items: []BulkUpdateOutboxMsgsItem{
				{ID: msgs[0].ID},
				{ID: msgs[1].ID, Error: ptr.New("broker down")},
			},
		}))

		rest, err := repo.ListUnprocessedOutboxMsgs(ctx, ListUnprocessedOutboxMsgsParams{BatchSize: 10})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "c", rest[0].Topic)
	})
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/dashboard"
)

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	shirt := f.createProduct(t, "Linen Shirt", "Shirts", variant("Regular", "100", 6), variant("Slim", "100", 9))
	f.createProduct(t, "Bucket Hat", "Hats", variant("Bucket", "50", 4))

	cash := orderParams(item(shirt.ID, 0, 2))
	cash.PaymentMethod = "cash"
	_, err := f.orders.CreateOrder(ctx, cash)
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, orderParams(item(shirt.ID, 1, 1)))
	require.NoError(t, err)

	t.Run("Should summarize the store", func(t *testing.T) {
		s, err := f.dashboard.GetSummary(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, s.TotalProducts)
		assert.Equal(t, 3, s.TotalVariants)
		assert.Equal(t, 16, s.TotalStock)
		assert.Equal(t, 2, s.TotalOrders)
		assert.Equal(t, dashboard.PaymentCounts{Paid: 1, Pending: 1}, s.Payments)
		assert.Equal(t, "230", s.Revenue.String())
		assert.Equal(t, dashboard.DeliveryCount{NotDelivered: 2}, s.Deliveries)
		assert.Equal(t, 2, s.Customers.TotalCustomers)
		require.Len(t, s.RecentOrders, 2)
		assert.Greater(t, s.RecentOrders[0].ID, s.RecentOrders[1].ID)
	})

	t.Run("Should flag low stock in the inventory overview", func(t *testing.T) {
		o, err := f.dashboard.GetInventoryOverview(ctx)
		require.NoError(t, err)

		assert.Equal(t, []dashboard.CategoryStock{
			{Category: "Shirts", TotalStock: 12, IsLow: false},
			{Category: "Hats", TotalStock: 4, IsLow: true},
		}, o.Categories)
		require.Len(t, o.LowStockProducts, 1)
		assert.Equal(t, "Bucket Hat", o.LowStockProducts[0].Name)
	})

	t.Run("Should list variant rows matching the query", func(t *testing.T) {
		rows, err := f.dashboard.ListVariants(ctx, ListVariantsParams{Query: "slim"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 8, rows[0].StockQuantity)
		assert.Equal(t, "active", rows[0].Status)

		rows, err = f.dashboard.ListVariants(ctx, ListVariantsParams{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, dashboard.VariantStatusLowStock, rows[0].Status)
	})
}

package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
)

func TestNew(t *testing.T) {
	type Config struct {
		Log       config.Log
		HTTP      config.HTTP
		Store     config.Store
		Inventory config.Inventory
		Order     config.Order
	}

	t.Run("Should apply defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, uint32(8000), cfg.HTTP.Port)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CorsAllowedOrigins)
		assert.Equal(t, config.StoreDriverMongo, cfg.Store.Driver)
		assert.Equal(t, 5*time.Second, cfg.Store.OpTimeout)
		assert.Equal(t, 10, cfg.Inventory.CategoryLowStockThreshold)
		assert.Equal(t, 8, cfg.Inventory.ProductLowStockThreshold)
		assert.Equal(t, 5, cfg.Inventory.VariantLowStockThreshold)
		assert.True(t, decimal.RequireFromString("0.15").Equal(cfg.Order.TaxRate))
		assert.Equal(t, 4, cfg.Order.RecentLimit)
	})

	t.Run("Should read overrides from environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("ORDER_TAX_RATE", "0.2")

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
		assert.True(t, decimal.RequireFromString("0.2").Equal(cfg.Order.TaxRate))
	})

	t.Run("Should reject unknown store driver", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STORE_DRIVER", "firestore")

		_, err := config.New[Config]()
		assert.Error(t, err)
	})
}

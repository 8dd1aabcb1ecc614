package config

import "github.com/shopspring/decimal"

// Inventory holds the low-stock cutoffs used by the dashboard. Categories are
// low strictly below their threshold; products and variants are low at or
// below theirs.
type Inventory struct {
	CategoryLowStockThreshold int `env:"INVENTORY_CATEGORY_LOW_STOCK_THRESHOLD" envDefault:"10"`
	ProductLowStockThreshold  int `env:"INVENTORY_PRODUCT_LOW_STOCK_THRESHOLD" envDefault:"8"`
	VariantLowStockThreshold  int `env:"INVENTORY_VARIANT_LOW_STOCK_THRESHOLD" envDefault:"5"`
}

type Order struct {
	TaxRate     decimal.Decimal `env:"ORDER_TAX_RATE" envDefault:"0.15"`
	RecentLimit int             `env:"ORDER_RECENT_LIMIT" envDefault:"4"`
}

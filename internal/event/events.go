package event

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicProductCreated  = "product.created"
	TopicProductStockLow = "product.stock_low"
	TopicOrderCreated    = "order.created"
	TopicOrderUpdated    = "order.updated"
)

type ProductCreatedEvent struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	VariantCount int    `json:"variant_count"`
	TotalStock   int    `json:"total_stock"`
}

// ProductStockLowEvent is emitted when a sale takes a product's total stock
// from above the low-stock threshold to at or below it.
type ProductStockLowEvent struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	TotalStock int    `json:"total_stock"`
	Threshold  int    `json:"threshold"`
}

type OrderCreatedEvent struct {
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus string          `json:"payment_status"`
	ItemCount     int             `json:"item_count"`
	OrderDate     time.Time       `json:"order_date"`
}

type OrderUpdatedEvent struct {
	OrderID        string    `json:"order_id"`
	PaymentStatus  string    `json:"payment_status"`
	DeliveryStatus string    `json:"delivery_status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPaid       = "paid"
	PaymentStatusPending    = "pending"
	PaymentStatusFailed     = "failed"
	PaymentStatusProcessing = "processing"

	DeliveryStatusProcessing = "processing"
	DeliveryStatusShipped    = "shipped"
	DeliveryStatusDelivered  = "delivered"

	PaymentMethodCash = "cash"

	DeliveryMethodCollect = "collect"
	DeliveryMethodCourier = "courier"

	OrderCreatedByAdmin = "admin"
)

type Order struct {
	ID             string          `json:"id" bson:"_id"`
	CustomerID     string          `json:"customerId,omitempty" bson:"customerId,omitempty"`
	CustomerInfo   CustomerInfo    `json:"customerInfo" bson:"customerInfo"`
	Items          []OrderItem     `json:"items" bson:"items"`
	Subtotal       decimal.Decimal `json:"subtotal" bson:"subtotal"`
	Tax            decimal.Decimal `json:"tax" bson:"tax"`
	Total          decimal.Decimal `json:"total" bson:"total"`
	PaymentMethod  string          `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus  string          `json:"paymentStatus" bson:"paymentStatus"`
	DeliveryMethod string          `json:"deliveryMethod" bson:"deliveryMethod"`
	CourierDetails string          `json:"courierDetails,omitempty" bson:"courierDetails,omitempty"`
	DeliveryStatus string          `json:"deliveryStatus" bson:"deliveryStatus"`
	Notes          string          `json:"notes,omitempty" bson:"notes,omitempty"`
	OrderDate      time.Time       `json:"orderDate" bson:"orderDate"`
	CreatedBy      string          `json:"createdBy" bson:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// CustomerInfo is the customer snapshot taken when the order was placed.
type CustomerInfo struct {
	Name       string `json:"name" bson:"name"`
	Email      string `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string `json:"phone" bson:"phone"`
	Address    string `json:"address,omitempty" bson:"address,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
}

type OrderItem struct {
	ProductID    string          `json:"productId" bson:"productId"`
	ProductName  string          `json:"productName" bson:"productName"`
	VariantIndex int             `json:"variantIndex" bson:"variantIndex"`
	Variant      Variant         `json:"variant" bson:"variant"`
	Quantity     int             `json:"quantity" bson:"quantity"`
	Price        decimal.Decimal `json:"price" bson:"price"`
	Total        decimal.Decimal `json:"total" bson:"total"`
}

// IsPaid reports whether the order counts towards revenue.
func (o Order) IsPaid() bool {
	return StatusIs(o.PaymentStatus, PaymentStatusPaid)
}

// IsDelivered reports whether the order has reached the customer.
func (o Order) IsDelivered() bool {
	return StatusIs(o.DeliveryStatus, DeliveryStatusDelivered)
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

type UpdateOrderStatusParams struct {
	ID             string
	Notes          string
	PaymentMethod  string
	PaymentStatus  string
	DeliveryStatus string
	UpdatedAt      time.Time
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order model.Order) error
	GetOrder(ctx context.Context, id string) (model.Order, error)
	// ListAllOrders returns orders oldest first.
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, params UpdateOrderStatusParams) error
}

type orderRepository struct {
	coll docstore.Collection
}

func NewOrderRepository(store docstore.Store) OrderRepository {
	return &orderRepository{coll: store.Collection(model.CollectionOrders)}
}

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) error {
	if err := r.coll.Insert(ctx, order.ID, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r orderRepository) GetOrder(ctx context.Context, id string) (model.Order, error) {
	var order model.Order
	if err := r.coll.Get(ctx, id, &order); err != nil {
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (r orderRepository) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	orders := []model.Order{}
	if err := r.coll.Find(ctx, docstore.Query{}, &orders); err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func (r orderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	orders := []model.Order{}
	q := docstore.Query{Where: []docstore.Condition{docstore.Eq("customerId", customerID)}}
	if err := r.coll.Find(ctx, q, &orders); err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	return orders, nil
}

func (r orderRepository) UpdateOrderStatus(ctx context.Context, params UpdateOrderStatusParams) error {
	if err := r.coll.Patch(ctx, params.ID, map[string]any{
		"notes":          params.Notes,
		"paymentMethod":  params.PaymentMethod,
		"paymentStatus":  params.PaymentStatus,
		"deliveryStatus": params.DeliveryStatus,
		"updatedAt":      params.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", ev.ProductID),
		slog.String("category", ev.Category),
		slog.Int("total_stock", ev.TotalStock),
	)
	return nil
}

func (s *Service) handleProductStockLowEvent(ctx context.Context, ev ProductStockLowEvent) error {
	s.logger.WarnContext(ctx, "product stock is low",
		slog.String("product_id", ev.ProductID),
		slog.String("name", ev.Name),
		slog.Int("total_stock", ev.TotalStock),
		slog.Int("threshold", ev.Threshold),
	)
	return nil
}

// handleOrderCreatedEvent updates the customer's order statistics. Orders
// placed without a customer record are skipped. Redelivered events are applied
// again.
func (s *Service) handleOrderCreatedEvent(ctx context.Context, ev OrderCreatedEvent) error {
	if ev.CustomerID == "" {
		s.logger.DebugContext(ctx, "order has no customer, skipping stats", slog.String("order_id", ev.OrderID))
		return nil
	}

	return s.customers.ApplyOrder(ctx, ev.CustomerID, ev.Total, ev.OrderDate)
}

func (s *Service) handleOrderUpdatedEvent(ctx context.Context, ev OrderUpdatedEvent) error {
	s.logger.InfoContext(ctx, "order updated",
		slog.String("order_id", ev.OrderID),
		slog.String("payment_status", ev.PaymentStatus),
		slog.String("delivery_status", ev.DeliveryStatus),
	)
	return nil
}

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/event"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/search"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

type CustomerInfoParams struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type CreateOrderItemParams struct {
	ProductID    string `json:"productId" validate:"required"`
	VariantIndex int    `json:"variantIndex" validate:"gte=0"`
	Quantity     int    `json:"quantity" validate:"gte=1"`
}

type CreateOrderParams struct {
	// CustomerID links an existing customer, whose contact details are
	// refreshed from CustomerInfo. Without it a customer is created unless
	// SaveCustomer is false.
	CustomerID     string                  `json:"customerId"`
	CustomerInfo   CustomerInfoParams      `json:"customerInfo"`
	SaveCustomer   *bool                   `json:"saveCustomer"`
	Items          []CreateOrderItemParams `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  string                  `json:"paymentMethod" validate:"required"`
	DeliveryMethod string                  `json:"deliveryMethod" validate:"omitempty,oneof=collect courier"`
	CourierDetails string                  `json:"courierDetails"`
	Notes          string                  `json:"notes"`
}

type UpdateOrderParams struct {
	Notes          *string `json:"notes"`
	PaymentMethod  *string `json:"paymentMethod" validate:"omitempty,min=1"`
	PaymentStatus  *string `json:"paymentStatus" validate:"omitempty,min=1"`
	DeliveryStatus *string `json:"deliveryStatus" validate:"omitempty,min=1"`
}

type ListOrdersParams struct {
	// Query is matched against id, customer name, email and phone, and the
	// payment and delivery statuses.
	Query          string
	PaymentStatus  string
	DeliveryStatus string
	// Limit > 0 returns at most Limit orders, newest first.
	Limit int
}

type OrderService interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
	GetOrder(ctx context.Context, id string) (model.Order, error)
	// ListOrders returns orders oldest first unless a limit is set.
	ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]model.Order, error)
	UpdateOrder(ctx context.Context, id string, params UpdateOrderParams) (model.Order, error)
}

type orderService struct {
	cfg           config.Order
	inventoryCfg  config.Inventory
	store         docstore.Store
	validator     validator.Validator
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	cfg config.Order,
	inventoryCfg config.Inventory,
	store docstore.Store,
	validator validator.Validator,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		cfg:           cfg,
		inventoryCfg:  inventoryCfg,
		store:         store,
		validator:     validator,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Order{}, err
	}

	orderID, err := newID()
	if err != nil {
		return model.Order{}, err
	}

	deliveryMethod := params.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = model.DeliveryMethodCollect
	}
	paymentMethod := model.NormalizeStatus(params.PaymentMethod)
	paymentStatus := model.PaymentStatusPending
	if paymentMethod == model.PaymentMethodCash {
		paymentStatus = model.PaymentStatusPaid
	}

	var order model.Order
	err = s.store.WithTx(ctx, func(ctx context.Context) error {
		ts := now()
		order = model.Order{
			ID: orderID,
			CustomerInfo: model.CustomerInfo{
				Name:       params.CustomerInfo.Name,
				Email:      params.CustomerInfo.Email,
				Phone:      params.CustomerInfo.Phone,
				Address:    params.CustomerInfo.Address,
				City:       params.CustomerInfo.City,
				PostalCode: params.CustomerInfo.PostalCode,
			},
			PaymentMethod:  paymentMethod,
			PaymentStatus:  paymentStatus,
			DeliveryMethod: deliveryMethod,
			CourierDetails: params.CourierDetails,
			DeliveryStatus: model.DeliveryStatusProcessing,
			Notes:          params.Notes,
			OrderDate:      ts,
			CreatedBy:      model.OrderCreatedByAdmin,
			CreatedAt:      ts,
			UpdatedAt:      ts,
		}

		products, err := s.reserveStock(ctx, &order, mergeItems(params.Items))
		if err != nil {
			return err
		}

		order.Subtotal = decimal.Zero
		for _, item := range order.Items {
			order.Subtotal = order.Subtotal.Add(item.Total)
		}
		order.Tax = order.Subtotal.Mul(s.cfg.TaxRate).Round(2)
		order.Total = order.Subtotal.Add(order.Tax)

		if order.CustomerID, err = s.resolveCustomer(ctx, params); err != nil {
			return err
		}

		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		msgs := make([]repository.CreateOutboxMsgParams, 0, 1+len(products))
		msg, err := newOutboxMsg(ctx, event.TopicOrderCreated, order.ID, event.OrderCreatedEvent{
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			Total:         order.Total,
			PaymentStatus: order.PaymentStatus,
			ItemCount:     len(order.Items),
			OrderDate:     order.OrderDate,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)

		for _, p := range products {
			p.product.UpdatedAt = ts
			if err := s.productRepo.UpdateProduct(ctx, p.product); err != nil {
				return fmt.Errorf("product repository update product: %w", err)
			}

			threshold := s.inventoryCfg.ProductLowStockThreshold
			after := p.product.TotalStock()
			if p.stockBefore > threshold && after <= threshold {
				msg, err := newOutboxMsg(ctx, event.TopicProductStockLow, p.product.ID, event.ProductStockLowEvent{
					ProductID:  p.product.ID,
					Name:       p.product.Name,
					Category:   p.product.Category,
					TotalStock: after,
					Threshold:  threshold,
				})
				if err != nil {
					return err
				}
				msgs = append(msgs, msg)
			}
		}

		for _, msg := range msgs {
			if err := s.outboxMsgRepo.CreateOutboxMsg(ctx, msg); err != nil {
				return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

type reservedProduct struct {
	product     model.Product
	stockBefore int
}

// reserveStock resolves every line against the current product documents,
// fills order.Items and decrements the in-memory variant stock. Products are
// returned in first-referenced order.
func (s *orderService) reserveStock(ctx context.Context, order *model.Order, lines []CreateOrderItemParams) ([]*reservedProduct, error) {
	var reserved []*reservedProduct
	byID := map[string]*reservedProduct{}

	order.Items = make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		rp, ok := byID[line.ProductID]
		if !ok {
			product, err := s.productRepo.GetProduct(ctx, line.ProductID)
			if err != nil {
				return nil, mapNotFound(err, apperr.ProductNotFoundErr.WithMsg("product %s not found", line.ProductID))
			}
			rp = &reservedProduct{product: product, stockBefore: product.TotalStock()}
			byID[line.ProductID] = rp
			reserved = append(reserved, rp)
		}

		variant, ok := rp.product.VariantAt(line.VariantIndex)
		if !ok {
			return nil, apperr.VariantNotFoundErr.WithMsg("product %s has no variant %d", line.ProductID, line.VariantIndex)
		}
		if variant.StockQuantity <= 0 || line.Quantity > variant.StockQuantity {
			return nil, apperr.InsufficientStockErr.WithMsg("only %d of %s (%s) in stock, %d requested",
				max(variant.StockQuantity, 0), rp.product.Name, variant.Type, line.Quantity)
		}

		rp.product.Variants[line.VariantIndex].StockQuantity -= line.Quantity

		qty := decimal.NewFromInt(int64(line.Quantity))
		order.Items = append(order.Items, model.OrderItem{
			ProductID:    rp.product.ID,
			ProductName:  rp.product.Name,
			VariantIndex: line.VariantIndex,
			Variant:      variant,
			Quantity:     line.Quantity,
			Price:        variant.SellingPrice,
			Total:        variant.SellingPrice.Mul(qty),
		})
	}

	return reserved, nil
}

// resolveCustomer returns the customer id to store on the order.
func (s *orderService) resolveCustomer(ctx context.Context, params CreateOrderParams) (string, error) {
	info := params.CustomerInfo

	if params.CustomerID != "" {
		customer, err := s.customerRepo.GetCustomer(ctx, params.CustomerID)
		if err != nil {
			return "", mapNotFound(err, apperr.CustomerNotFoundErr)
		}

		customer.Name = info.Name
		customer.Phone = info.Phone
		if info.Email != "" {
			customer.Email = info.Email
		}
		if info.Address != "" {
			customer.Address = info.Address
		}
		if info.City != "" {
			customer.City = info.City
		}
		if info.PostalCode != "" {
			customer.PostalCode = info.PostalCode
		}
		customer.UpdatedAt = now()

		if err := s.customerRepo.UpdateCustomer(ctx, customer); err != nil {
			return "", fmt.Errorf("customer repository update customer: %w", err)
		}
		return customer.ID, nil
	}

	if params.SaveCustomer != nil && !*params.SaveCustomer {
		return "", nil
	}

	customer, err := newCustomer(CreateCustomerParams{
		Name:       info.Name,
		Email:      info.Email,
		Phone:      info.Phone,
		Address:    info.Address,
		City:       info.City,
		PostalCode: info.PostalCode,
	})
	if err != nil {
		return "", err
	}

	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return "", fmt.Errorf("customer repository create customer: %w", err)
	}
	return customer.ID, nil
}

// mergeItems folds lines for the same product variant into one, keeping the
// position of the first.
func mergeItems(items []CreateOrderItemParams) []CreateOrderItemParams {
	type key struct {
		productID string
		variant   int
	}

	out := make([]CreateOrderItemParams, 0, len(items))
	index := map[key]int{}
	for _, item := range items {
		k := key{item.ProductID, item.VariantIndex}
		if i, ok := index[k]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

func (s *orderService) GetOrder(ctx context.Context, id string) (model.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, mapNotFound(err, apperr.OrderNotFoundErr)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error) {
	orders, err := s.ListAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if params.PaymentStatus != "" && !model.StatusIs(o.PaymentStatus, params.PaymentStatus) {
			continue
		}
		if params.DeliveryStatus != "" && !model.StatusIs(o.DeliveryStatus, params.DeliveryStatus) {
			continue
		}
		out = append(out, o)
	}

	out = search.Filter(out, params.Query, func(o model.Order) []string {
		return []string{
			o.ID,
			o.CustomerInfo.Name,
			o.CustomerInfo.Email,
			o.CustomerInfo.Phone,
			o.PaymentStatus,
			o.DeliveryStatus,
		}
	})

	if params.Limit > 0 {
		start := max(len(out)-params.Limit, 0)
		out = slices.Clone(out[start:])
		slices.Reverse(out)
	}

	return out, nil
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("order repository list all orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID string) ([]model.Order, error) {
	if _, err := s.customerRepo.GetCustomer(ctx, customerID); err != nil {
		return nil, mapNotFound(err, apperr.CustomerNotFoundErr)
	}

	orders, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("order repository list orders by customer: %w", err)
	}
	return orders, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, params UpdateOrderParams) (model.Order, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Order{}, err
	}

	var order model.Order
	if err := s.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetOrder(ctx, id)
		if err != nil {
			return mapNotFound(err, apperr.OrderNotFoundErr)
		}

		setIfNotNil(&order.Notes, params.Notes)
		if params.PaymentMethod != nil {
			order.PaymentMethod = model.NormalizeStatus(*params.PaymentMethod)
		}
		if params.PaymentStatus != nil {
			order.PaymentStatus = model.NormalizeStatus(*params.PaymentStatus)
		}
		if params.DeliveryStatus != nil {
			order.DeliveryStatus = model.NormalizeStatus(*params.DeliveryStatus)
		}
		order.UpdatedAt = now()

		if err := s.orderRepo.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
			ID:             order.ID,
			Notes:          order.Notes,
			PaymentMethod:  order.PaymentMethod,
			PaymentStatus:  order.PaymentStatus,
			DeliveryStatus: order.DeliveryStatus,
			UpdatedAt:      order.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("order repository update order status: %w", err)
		}

		msg, err := newOutboxMsg(ctx, event.TopicOrderUpdated, order.ID, event.OrderUpdatedEvent{
			OrderID:        order.ID,
			PaymentStatus:  order.PaymentStatus,
			DeliveryStatus: order.DeliveryStatus,
			UpdatedAt:      order.UpdatedAt,
		})
		if err != nil {
			return err
		}

		return s.outboxMsgRepo.CreateOutboxMsg(ctx, msg)
	}); err != nil {
		return model.Order{}, fmt.Errorf("update order %s: %w", id, err)
	}

	return order, nil
}

package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

type orderHandler struct {
	orderSvc service.OrderService
}

func newOrderHandler(orderSvc service.OrderService) *orderHandler {
	return &orderHandler{
		orderSvc: orderSvc,
	}
}

func (h *orderHandler) ListOrders(w http.ResponseWriter, r *http.Request) error {
	var params service.ListOrdersParams
	if err := bindQuery(r, "q", &params.Query); err != nil {
		return err
	}
	if err := bindQuery(r, "paymentStatus", &params.PaymentStatus); err != nil {
		return err
	}
	if err := bindQuery(r, "deliveryStatus", &params.DeliveryStatus); err != nil {
		return err
	}
	if err := bindQuery(r, "limit", &params.Limit); err != nil {
		return err
	}

	orders, err := h.orderSvc.ListOrders(r.Context(), params)
	if err != nil {
		return fmt.Errorf("order service list orders: %w", err)
	}

	return writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) error {
	var params service.CreateOrderParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), params)
	if err != nil {
		return fmt.Errorf("order service create order: %w", err)
	}

	return writeJSON(w, http.StatusCreated, order)
}

func (h *orderHandler) GetOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	order, err := h.orderSvc.GetOrder(r.Context(), id)
	if err != nil {
		return fmt.Errorf("order service get order: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}

func (h *orderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var params service.UpdateOrderParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	order, err := h.orderSvc.UpdateOrder(r.Context(), id, params)
	if err != nil {
		return fmt.Errorf("order service update order: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}

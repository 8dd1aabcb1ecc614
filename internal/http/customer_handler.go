package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

type customerHandler struct {
	customerSvc service.CustomerService
	orderSvc    service.OrderService
}

func newCustomerHandler(customerSvc service.CustomerService, orderSvc service.OrderService) *customerHandler {
	return &customerHandler{
		customerSvc: customerSvc,
		orderSvc:    orderSvc,
	}
}

func (h *customerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) error {
	var params service.ListCustomersParams
	if err := bindQuery(r, "q", &params.Query); err != nil {
		return err
	}

	customers, err := h.customerSvc.ListCustomers(r.Context(), params)
	if err != nil {
		return fmt.Errorf("customer service list customers: %w", err)
	}

	return writeJSON(w, http.StatusOK, customers)
}

func (h *customerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) error {
	var params service.CreateCustomerParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	customer, err := h.customerSvc.CreateCustomer(r.Context(), params)
	if err != nil {
		return fmt.Errorf("customer service create customer: %w", err)
	}

	return writeJSON(w, http.StatusCreated, customer)
}

func (h *customerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.GetCustomer(r.Context(), id)
	if err != nil {
		return fmt.Errorf("customer service get customer: %w", err)
	}

	return writeJSON(w, http.StatusOK, customer)
}

func (h *customerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var params service.UpdateCustomerParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	customer, err := h.customerSvc.UpdateCustomer(r.Context(), id, params)
	if err != nil {
		return fmt.Errorf("customer service update customer: %w", err)
	}

	return writeJSON(w, http.StatusOK, customer)
}

func (h *customerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.customerSvc.DeleteCustomer(r.Context(), id); err != nil {
		return fmt.Errorf("customer service delete customer: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *customerHandler) GetCustomerSummary(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.customerSvc.GetCustomerSummary(r.Context())
	if err != nil {
		return fmt.Errorf("customer service get customer summary: %w", err)
	}

	return writeJSON(w, http.StatusOK, stats)
}

func (h *customerHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if _, err := h.customerSvc.GetCustomer(r.Context(), id); err != nil {
		return fmt.Errorf("customer service get customer: %w", err)
	}

	orders, err := h.orderSvc.ListCustomerOrders(r.Context(), id)
	if err != nil {
		return fmt.Errorf("order service list customer orders: %w", err)
	}

	return writeJSON(w, http.StatusOK, orders)
}

package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

type productHandler struct {
	productSvc   service.ProductService
	dashboardSvc service.DashboardService
}

func newProductHandler(productSvc service.ProductService, dashboardSvc service.DashboardService) *productHandler {
	return &productHandler{
		productSvc:   productSvc,
		dashboardSvc: dashboardSvc,
	}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	var params service.ListProductsParams
	if err := bindQuery(r, "q", &params.Query); err != nil {
		return err
	}
	if err := bindQuery(r, "category", &params.Category); err != nil {
		return err
	}

	products, err := h.productSvc.ListProducts(r.Context(), params)
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, products)
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var params service.CreateProductParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), params)
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return writeJSON(w, http.StatusCreated, product)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var params service.UpdateProductParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, params)
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *productHandler) ListVariants(w http.ResponseWriter, r *http.Request) error {
	var params service.ListVariantsParams
	if err := bindQuery(r, "q", &params.Query); err != nil {
		return err
	}

	rows, err := h.dashboardSvc.ListVariants(r.Context(), params)
	if err != nil {
		return fmt.Errorf("dashboard service list variants: %w", err)
	}

	return writeJSON(w, http.StatusOK, rows)
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	shophttp "github.com/tuanvumaihuynh/shop-admin/internal/http"
	"github.com/tuanvumaihuynh/shop-admin/internal/http/apierr"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/service"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/memstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/correlationid"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newServer(t *testing.T, pinger shophttp.Pinger) *httptest.Server {
	t.Helper()

	store := memstore.New()
	v := validator.MustNewDefaultValidator()

	productRepo := repository.NewProductRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	outboxRepo := repository.NewOutboxMsgRepository(store)

	inventoryCfg := config.Inventory{CategoryLowStockThreshold: 10, ProductLowStockThreshold: 8, VariantLowStockThreshold: 5}
	orderCfg := config.Order{TaxRate: decimal.RequireFromString("0.15"), RecentLimit: 4}

	if pinger == nil {
		pinger = store
	}

	svc := shophttp.New(
		config.HTTP{Swagger: true, CorsAllowedOrigins: []string{"*"}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pinger,
		shophttp.Services{
			Product:      service.NewProductService(store, v, productRepo, outboxRepo),
			Order:        service.NewOrderService(orderCfg, inventoryCfg, store, v, orderRepo, productRepo, customerRepo, outboxRepo),
			Customer:     service.NewCustomerService(store, v, customerRepo),
			BusinessInfo: service.NewBusinessInfoService(store, v, repository.NewBusinessInfoRepository(store)),
			Dashboard:    service.NewDashboardService(inventoryCfg, orderCfg, productRepo, orderRepo, customerRepo),
		},
	)

	handler, err := svc.Handler()
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createProduct(t *testing.T, srv *httptest.Server, name, category string, stock int) model.Product {
	t.Helper()

	var product model.Product
	resp := do(t, srv, http.MethodPost, "/v1/products", map[string]any{
		"name":     name,
		"category": category,
		"variants": []map[string]any{
			{"type": "Standard", "size": "M", "color": "Black", "sellingPrice": 100, "stockQuantity": stock},
		},
	}, &product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return product
}

func TestProducts(t *testing.T) {
	srv := newServer(t, nil)

	hoodie := createProduct(t, srv, "Classic Hoodie", "Hoodies", 12)
	createProduct(t, srv, "Denim Jacket", "Jackets", 3)

	t.Run("Should list and search products", func(t *testing.T) {
		var products []model.Product
		resp := do(t, srv, http.MethodGet, "/v1/products", nil, &products)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, products, 2)

		products = nil
		do(t, srv, http.MethodGet, "/v1/products?q=HOOD", nil, &products)
		require.Len(t, products, 1)
		assert.Equal(t, hoodie.ID, products[0].ID)

		products = nil
		do(t, srv, http.MethodGet, "/v1/products?category=Jackets", nil, &products)
		require.Len(t, products, 1)
		assert.Equal(t, "Denim Jacket", products[0].Name)
	})

	t.Run("Should get, update and delete a product", func(t *testing.T) {
		var got model.Product
		resp := do(t, srv, http.MethodGet, "/v1/products/"+hoodie.ID, nil, &got)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Classic Hoodie", got.Name)

		var updated model.Product
		resp = do(t, srv, http.MethodPatch, "/v1/products/"+hoodie.ID, map[string]any{"name": "Zip Hoodie"}, &updated)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Zip Hoodie", updated.Name)
		assert.Len(t, updated.Variants, 1)

		resp = do(t, srv, http.MethodDelete, "/v1/products/"+hoodie.ID, nil, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		var errRes apierr.ErrorResponse
		resp = do(t, srv, http.MethodGet, "/v1/products/"+hoodie.ID, nil, &errRes)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, apperr.ProductNotFoundCode, errRes.Code)
	})

	t.Run("Should reject products that break the contract", func(t *testing.T) {
		var errRes apierr.ErrorResponse
		resp := do(t, srv, http.MethodPost, "/v1/products", map[string]any{
			"name":     "No Variants",
			"category": "Misc",
			"variants": []map[string]any{},
		}, &errRes)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, apperr.ValidationErrorCode, errRes.Code)
		assert.NotNil(t, errRes.Details)
	})

	t.Run("Should list variant rows with low stock status", func(t *testing.T) {
		var rows []map[string]any
		resp := do(t, srv, http.MethodGet, "/v1/variants?q=denim", nil, &rows)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, rows, 1)
		assert.Equal(t, "Low Stock", rows[0]["status"])
	})
}

func TestOrders(t *testing.T) {
	srv := newServer(t, nil)
	product := createProduct(t, srv, "Classic Hoodie", "Hoodies", 10)

	orderBody := func(quantity int) map[string]any {
		return map[string]any{
			"customerInfo": map[string]any{"name": "Thandi Nkosi", "phone": "0821234567", "email": "thandi@example.com"},
			"items": []map[string]any{
				{"productId": product.ID, "variantIndex": 0, "quantity": quantity},
			},
			"paymentMethod":  "cash",
			"deliveryMethod": "collect",
		}
	}

	var order model.Order
	resp := do(t, srv, http.MethodPost, "/v1/orders", orderBody(2), &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("Should compute totals and mark cash orders paid", func(t *testing.T) {
		assert.Equal(t, "200", order.Subtotal.String())
		assert.Equal(t, "30", order.Tax.String())
		assert.Equal(t, "230", order.Total.String())
		assert.Equal(t, "paid", order.PaymentStatus)
		assert.NotEmpty(t, order.CustomerID)
	})

	t.Run("Should reject quantities above stock", func(t *testing.T) {
		var errRes apierr.ErrorResponse
		resp := do(t, srv, http.MethodPost, "/v1/orders", orderBody(9), &errRes)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, apperr.InsufficientStockCode, errRes.Code)
	})

	t.Run("Should update statuses and filter by them", func(t *testing.T) {
		var updated model.Order
		resp := do(t, srv, http.MethodPatch, "/v1/orders/"+order.ID, map[string]any{"deliveryStatus": "Delivered"}, &updated)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "delivered", updated.DeliveryStatus)

		var orders []model.Order
		do(t, srv, http.MethodGet, "/v1/orders?deliveryStatus=delivered&limit=4", nil, &orders)
		assert.Len(t, orders, 1)

		orders = nil
		do(t, srv, http.MethodGet, "/v1/customers/"+order.CustomerID+"/orders", nil, &orders)
		assert.Len(t, orders, 1)
	})

	t.Run("Should reject a malformed limit", func(t *testing.T) {
		var errRes apierr.ErrorResponse
		resp := do(t, srv, http.MethodGet, "/v1/orders?limit=abc", nil, &errRes)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, apperr.ValidationErrorCode, errRes.Code)
	})

	t.Run("Should report unknown orders", func(t *testing.T) {
		var errRes apierr.ErrorResponse
		resp := do(t, srv, http.MethodGet, "/v1/orders/missing", nil, &errRes)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, apperr.OrderNotFoundCode, errRes.Code)
	})
}

func TestCustomersAndBusinessInfo(t *testing.T) {
	srv := newServer(t, nil)

	t.Run("Should manage customers and summarize them", func(t *testing.T) {
		var customer model.Customer
		resp := do(t, srv, http.MethodPost, "/v1/customers", map[string]any{"name": "Lerato Dube", "status": "VIP"}, &customer)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var customers []model.Customer
		do(t, srv, http.MethodGet, "/v1/customers?q=lerato", nil, &customers)
		assert.Len(t, customers, 1)

		var stats map[string]any
		resp = do(t, srv, http.MethodGet, "/v1/customers/summary", nil, &stats)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 1, stats["vipCustomers"])

		resp = do(t, srv, http.MethodDelete, "/v1/customers/"+customer.ID, nil, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Should create business info with the default currency", func(t *testing.T) {
		var info model.BusinessInfo
		resp := do(t, srv, http.MethodPost, "/v1/business-info", map[string]any{"name": "Urban Threads"}, &info)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "ZAR", info.Currency)

		var updated model.BusinessInfo
		resp = do(t, srv, http.MethodPatch, "/v1/business-info/"+info.ID, map[string]any{"vatNumber": "4123456789"}, &updated)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "4123456789", updated.VATNumber)
	})
}

func TestDashboard(t *testing.T) {
	srv := newServer(t, nil)
	createProduct(t, srv, "Classic Hoodie", "Hoodies", 9)

	t.Run("Should return the dashboard cards", func(t *testing.T) {
		var summary map[string]any
		resp := do(t, srv, http.MethodGet, "/v1/dashboard", nil, &summary)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 1, summary["totalProducts"])
		assert.EqualValues(t, 9, summary["totalStock"])
	})

	t.Run("Should flag low categories in the inventory overview", func(t *testing.T) {
		var overview service.InventoryOverview
		resp := do(t, srv, http.MethodGet, "/v1/inventory/overview", nil, &overview)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, overview.Categories, 1)
		assert.True(t, overview.Categories[0].IsLow)
		assert.Empty(t, overview.LowStockProducts)
	})
}

func TestOperationalRoutes(t *testing.T) {
	t.Run("Should report health, metrics and docs", func(t *testing.T) {
		srv := newServer(t, nil)

		resp := do(t, srv, http.MethodGet, "/healthz", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, srv, http.MethodGet, "/metrics", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, srv, http.MethodGet, "/docs/openapi.yml", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Should report an unreachable store", func(t *testing.T) {
		srv := newServer(t, pingerFunc(func(context.Context) error { return errors.New("down") }))

		resp := do(t, srv, http.MethodGet, "/healthz", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Should echo the correlation id", func(t *testing.T) {
		srv := newServer(t, nil)

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/products", nil)
		require.NoError(t, err)
		req.Header.Set(correlationid.Header, "corr-42")

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "corr-42", resp.Header.Get(correlationid.Header))
	})

	t.Run("Should return 404 for unknown routes", func(t *testing.T) {
		srv := newServer(t, nil)

		resp := do(t, srv, http.MethodGet, "/v1/unknown", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/dashboard"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/pkg/search"
)

type InventoryOverview struct {
	Categories       []dashboard.CategoryStock     `json:"categories"`
	Products         []dashboard.ProductStockLevel `json:"products"`
	LowStockProducts []dashboard.ProductStockLevel `json:"lowStockProducts"`
}

type ListVariantsParams struct {
	// Query is matched against product name, category and variant type,
	// color and size.
	Query string
}

type DashboardService interface {
	GetSummary(ctx context.Context) (dashboard.Summary, error)
	GetInventoryOverview(ctx context.Context) (InventoryOverview, error)
	ListVariants(ctx context.Context, params ListVariantsParams) ([]dashboard.VariantRow, error)
}

type dashboardService struct {
	inventoryCfg config.Inventory
	orderCfg     config.Order
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
}

func NewDashboardService(
	inventoryCfg config.Inventory,
	orderCfg config.Order,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
) DashboardService {
	return &dashboardService{
		inventoryCfg: inventoryCfg,
		orderCfg:     orderCfg,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

func (s *dashboardService) thresholds() dashboard.Thresholds {
	return dashboard.Thresholds{
		Category: s.inventoryCfg.CategoryLowStockThreshold,
		Product:  s.inventoryCfg.ProductLowStockThreshold,
		Variant:  s.inventoryCfg.VariantLowStockThreshold,
	}
}

func (s *dashboardService) GetSummary(ctx context.Context) (dashboard.Summary, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("product repository list all products: %w", err)
	}

	orders, err := s.orderRepo.ListAllOrders(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("order repository list all orders: %w", err)
	}

	customers, err := s.customerRepo.ListAllCustomers(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("customer repository list all customers: %w", err)
	}

	return dashboard.Summarize(products, orders, customers, s.thresholds(), s.orderCfg.RecentLimit), nil
}

func (s *dashboardService) GetInventoryOverview(ctx context.Context) (InventoryOverview, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return InventoryOverview{}, fmt.Errorf("product repository list all products: %w", err)
	}

	t := s.thresholds()
	return InventoryOverview{
		Categories:       dashboard.StockByCategory(products, t.Category),
		Products:         dashboard.ProductStockLevels(products, t.Product),
		LowStockProducts: dashboard.LowStockProducts(products, t.Product),
	}, nil
}

func (s *dashboardService) ListVariants(ctx context.Context, params ListVariantsParams) ([]dashboard.VariantRow, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	rows := dashboard.FlattenVariants(products, s.thresholds().Variant)
	return search.Filter(rows, params.Query, func(r dashboard.VariantRow) []string {
		return []string{r.ProductName, r.Category, r.Type, r.Color, r.Size}
	}), nil
}

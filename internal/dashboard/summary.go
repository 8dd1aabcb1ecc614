package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
)

// Summary is the dashboard card set.
type Summary struct {
	TotalProducts    int                 `json:"totalProducts"`
	TotalVariants    int                 `json:"totalVariants"`
	TotalStock       int                 `json:"totalStock"`
	TotalOrders      int                 `json:"totalOrders"`
	Revenue          decimal.Decimal     `json:"revenue"`
	Payments         PaymentCounts       `json:"payments"`
	Deliveries       DeliveryCount       `json:"deliveries"`
	Customers        CustomerStats       `json:"customers"`
	Categories       []CategoryStock     `json:"categories"`
	LowStockProducts []ProductStockLevel `json:"lowStockProducts"`
	RecentOrders     []model.Order       `json:"recentOrders"`
}

func Summarize(products []model.Product, orders []model.Order, customers []model.Customer, t Thresholds, recent int) Summary {
	s := Summary{
		TotalProducts:    len(products),
		TotalOrders:      len(orders),
		Revenue:          Revenue(orders),
		Payments:         PaymentStatusCounts(orders),
		Deliveries:       DeliveryCounts(orders),
		Customers:        CustomerSummary(customers),
		Categories:       StockByCategory(products, t.Category),
		LowStockProducts: LowStockProducts(products, t.Product),
		RecentOrders:     RecentOrders(orders, recent),
	}

	for _, p := range products {
		s.TotalVariants += len(p.Variants)
		s.TotalStock += ProductStock(p)
	}

	return s
}

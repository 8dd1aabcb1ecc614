// Package dashboard computes the display aggregates of the admin console from
// fully fetched collections. Every function is a single pass over its input,
// has no side effects and keeps input order.
package dashboard

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
)

// VariantStatusLowStock replaces the product status on variant rows at or
// below the variant threshold.
const VariantStatusLowStock = "Low Stock"

// Thresholds are the low-stock cutoffs. A category is low strictly below
// Category; a product at or below Product; a variant at or below Variant.
type Thresholds struct {
	Category int
	Product  int
	Variant  int
}

type CategoryStock struct {
	Category   string `json:"category"`
	TotalStock int    `json:"totalStock"`
	IsLow      bool   `json:"isLow"`
}

type ProductStockLevel struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	TotalStock int    `json:"totalStock"`
	IsLow      bool   `json:"isLow"`
}

type VariantRow struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	VariantIndex  int             `json:"variantIndex"`
	Type          string          `json:"type"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int             `json:"stockQuantity"`
	Status        string          `json:"status"`
}

type PaymentCounts struct {
	Paid       int `json:"paid"`
	Pending    int `json:"pending"`
	Failed     int `json:"failed"`
	Processing int `json:"processing"`
	Other      int `json:"other"`
}

type DeliveryCount struct {
	Delivered    int `json:"delivered"`
	NotDelivered int `json:"notDelivered"`
}

type CustomerStats struct {
	TotalCustomers    int             `json:"totalCustomers"`
	VIPCustomers      int             `json:"vipCustomers"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// ProductStock is the product's stock over all variants.
func ProductStock(p model.Product) int {
	return p.TotalStock()
}

// StockByCategory groups stock by product category in first-seen order.
func StockByCategory(products []model.Product, threshold int) []CategoryStock {
	out := []CategoryStock{}
	index := map[string]int{}

	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategoryStock{Category: p.Category})
		}
		out[i].TotalStock += ProductStock(p)
	}

	for i := range out {
		out[i].IsLow = out[i].TotalStock < threshold
	}

	return out
}

func ProductStockLevels(products []model.Product, threshold int) []ProductStockLevel {
	out := make([]ProductStockLevel, 0, len(products))
	for _, p := range products {
		total := ProductStock(p)
		out = append(out, ProductStockLevel{
			ProductID:  p.ID,
			Name:       p.Name,
			Category:   p.Category,
			TotalStock: total,
			IsLow:      total <= threshold,
		})
	}
	return out
}

// LowStockProducts keeps the low entries of ProductStockLevels.
func LowStockProducts(products []model.Product, threshold int) []ProductStockLevel {
	out := []ProductStockLevel{}
	for _, l := range ProductStockLevels(products, threshold) {
		if l.IsLow {
			out = append(out, l)
		}
	}
	return out
}

// FlattenVariants returns one row per variant, products in input order.
func FlattenVariants(products []model.Product, threshold int) []VariantRow {
	out := []VariantRow{}
	for _, p := range products {
		for i, v := range p.Variants {
			status := p.Status
			if v.StockQuantity <= threshold {
				status = VariantStatusLowStock
			}

			out = append(out, VariantRow{
				ProductID:     p.ID,
				ProductName:   p.Name,
				Category:      p.Category,
				VariantIndex:  i,
				Type:          v.Type,
				Size:          v.Size,
				Color:         v.Color,
				SellingPrice:  v.SellingPrice,
				StockQuantity: v.StockQuantity,
				Status:        status,
			})
		}
	}
	return out
}

func PaymentStatusCounts(orders []model.Order) PaymentCounts {
	var c PaymentCounts
	for _, o := range orders {
		switch model.NormalizeStatus(o.PaymentStatus) {
		case model.PaymentStatusPaid:
			c.Paid++
		case model.PaymentStatusPending:
			c.Pending++
		case model.PaymentStatusFailed:
			c.Failed++
		case model.PaymentStatusProcessing:
			c.Processing++
		default:
			c.Other++
		}
	}
	return c
}

func DeliveryCounts(orders []model.Order) DeliveryCount {
	delivered := 0
	for _, o := range orders {
		if o.IsDelivered() {
			delivered++
		}
	}
	return DeliveryCount{Delivered: delivered, NotDelivered: len(orders) - delivered}
}

// Revenue sums the totals of paid orders.
func Revenue(orders []model.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		if o.IsPaid() {
			sum = sum.Add(o.Total)
		}
	}
	return sum
}

func CustomerSummary(customers []model.Customer) CustomerStats {
	s := CustomerStats{
		TotalCustomers:    len(customers),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, c := range customers {
		if model.StatusIs(c.Status, model.CustomerStatusVIP) {
			s.VIPCustomers++
		}
		s.TotalRevenue = s.TotalRevenue.Add(c.TotalSpent)
		s.TotalOrders += c.TotalOrders
	}

	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalOrders)))
	}

	return s
}

// RecentOrders returns the last n orders newest first. orders must be oldest
// first.
func RecentOrders(orders []model.Order, n int) []model.Order {
	if n < 0 {
		n = 0
	}
	start := max(len(orders)-n, 0)
	out := slices.Clone(orders[start:])
	slices.Reverse(out)
	if out == nil {
		out = []model.Order{}
	}
	return out
}

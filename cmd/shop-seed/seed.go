package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

type seeder struct {
	logger       *slog.Logger
	products     service.ProductService
	customers    service.CustomerService
	businessInfo service.BusinessInfoService
}

var sampleBusinessInfo = service.CreateBusinessInfoParams{
	Name:     "Urban Threads",
	Email:    "hello@urbanthreads.example",
	Phone:    "031-555-0100",
	Address:  "12 Florida Road, Durban",
	Currency: "ZAR",
}

var sampleCustomers = []service.CreateCustomerParams{
	{
		Name:                   "Lerato Mokoena",
		Email:                  "lerato@example.com",
		Phone:                  "082-123-4567",
		Address:                "456 Umlazi Street, Durban",
		Location:               "Durban",
		JoinDate:               "2024-12-10",
		Status:                 "VIP",
		Birthday:               "1990-09-05",
		PreferredContactMethod: "WhatsApp",
		ReferredBy:             "Instagram Ad",
		Notes:                  "Loves eco-friendly packaging",
		LoyaltyPoints:          150,
	},
	{
		Name:                   "Sipho Ndlovu",
		Email:                  "sipho@example.com",
		Phone:                  "083-987-6543",
		Address:                "78 Long Street, Cape Town",
		Location:               "Cape Town",
		PreferredContactMethod: "Email",
	},
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var sampleProducts = []service.CreateProductParams{
	{
		ProductCode: "HD-001",
		Name:        "Classic Hoodie",
		Category:    "Hoodies",
		Variants: []service.VariantParams{
			{Type: "Pullover", Size: "M", Color: "Black", SellingPrice: money("449.99"), StockQuantity: 12},
			{Type: "Pullover", Size: "L", Color: "Grey", SellingPrice: money("449.99"), StockQuantity: 4},
		},
	},
	{
		ProductCode: "TS-002",
		Name:        "Graphic Tee",
		Category:    "T-Shirts",
		Variants: []service.VariantParams{
			{Type: "Crew Neck", Size: "S", Color: "White", SellingPrice: money("199.00"), StockQuantity: 20},
			{Type: "Crew Neck", Size: "M", Color: "White", SellingPrice: money("199.00"), StockQuantity: 3},
		},
	},
	{
		ProductCode: "CP-003",
		Name:        "Snapback Cap",
		Category:    "Accessories",
		Variants: []service.VariantParams{
			{Type: "Cap", Color: "Navy", SellingPrice: money("149.50"), StockQuantity: 6},
		},
	},
}

// Seed inserts the sample documents into each collection that is still empty.
func (s *seeder) Seed(ctx context.Context) error {
	infos, err := s.businessInfo.ListBusinessInfo(ctx)
	if err != nil {
		return fmt.Errorf("list business info: %w", err)
	}
	if len(infos) == 0 {
		if _, err := s.businessInfo.CreateBusinessInfo(ctx, sampleBusinessInfo); err != nil {
			return fmt.Errorf("create business info: %w", err)
		}
		s.logger.InfoContext(ctx, "seeded business info")
	}

	customers, err := s.customers.ListAllCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	if len(customers) == 0 {
		for _, params := range sampleCustomers {
			if _, err := s.customers.CreateCustomer(ctx, params); err != nil {
				return fmt.Errorf("create customer %s: %w", params.Name, err)
			}
		}
		s.logger.InfoContext(ctx, "seeded customers", slog.Int("count", len(sampleCustomers)))
	}

	products, err := s.products.ListAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		for _, params := range sampleProducts {
			if _, err := s.products.CreateProduct(ctx, params); err != nil {
				return fmt.Errorf("create product %s: %w", params.Name, err)
			}
		}
		s.logger.InfoContext(ctx, "seeded products", slog.Int("count", len(sampleProducts)))
	}

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/memstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

type fixture struct {
	products   ProductService
	orders     OrderService
	customers  CustomerService
	businesses BusinessInfoService
	dashboard  DashboardService

	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	outboxRepo  repository.OutboxMsgRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memstore.New()
	v := validator.MustNewDefaultValidator()

	productRepo := repository.NewProductRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	businessInfoRepo := repository.NewBusinessInfoRepository(store)
	outboxRepo := repository.NewOutboxMsgRepository(store)

	inventoryCfg := config.Inventory{CategoryLowStockThreshold: 10, ProductLowStockThreshold: 8, VariantLowStockThreshold: 5}
	orderCfg := config.Order{TaxRate: decimal.RequireFromString("0.15"), RecentLimit: 4}

	return fixture{
		products:    NewProductService(store, v, productRepo, outboxRepo),
		orders:      NewOrderService(orderCfg, inventoryCfg, store, v, orderRepo, productRepo, customerRepo, outboxRepo),
		customers:   NewCustomerService(store, v, customerRepo),
		businesses:  NewBusinessInfoService(store, v, businessInfoRepo),
		dashboard:   NewDashboardService(inventoryCfg, orderCfg, productRepo, orderRepo, customerRepo),
		productRepo: productRepo,
		orderRepo:   orderRepo,
		outboxRepo:  outboxRepo,
	}
}

func (f fixture) createProduct(t *testing.T, name, category string, variants ...VariantParams) model.Product {
	t.Helper()

	p, err := f.products.CreateProduct(context.Background(), CreateProductParams{
		Name:     name,
		Category: category,
		Variants: variants,
	})
	require.NoError(t, err)
	return p
}

func (f fixture) pendingTopics(t *testing.T) []string {
	t.Helper()

	msgs, err := f.outboxRepo.ListUnprocessedOutboxMsgs(context.Background(), repository.ListUnprocessedOutboxMsgsParams{BatchSize: 100})
	require.NoError(t, err)

	topics := make([]string, 0, len(msgs))
	for _, m := range msgs {
		topics = append(topics, m.Topic)
	}
	return topics
}

func (f fixture) lastPayload(t *testing.T, out any) {
	t.Helper()

	msgs, err := f.outboxRepo.ListUnprocessedOutboxMsgs(context.Background(), repository.ListUnprocessedOutboxMsgsParams{BatchSize: 100})
	require.NoError(t, err)
	require.NotEmpty(t, msgs)
	require.NoError(t, json.Unmarshal(msgs[len(msgs)-1].Payload, out))
}

func variant(typ, price string, stock int) VariantParams {
	return VariantParams{Type: typ, SellingPrice: decimal.RequireFromString(price), StockQuantity: stock}
}
